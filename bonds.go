/*
 * bonds.go, part of chemform.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * chemform is developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package chem

import (
	"fmt"
	"strings"
)

// BondOrder is the multiplicity of a bond.
type BondOrder int

const (
	Single BondOrder = 1
	Double BondOrder = 2
	Triple BondOrder = 3
)

func (B BondOrder) String() string {
	switch B {
	case Single:
		return "single"
	case Double:
		return "double"
	case Triple:
		return "triple"
	}
	return fmt.Sprintf("BondOrder(%d)", int(B))
}

// Valid returns true if B is single, double or triple.
func (B BondOrder) Valid() bool {
	return B >= Single && B <= Triple
}

// ParseBondOrder takes "single", "double" or "triple" (any case), or "1", "2", "3".
func ParseBondOrder(s string) (BondOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "1":
		return Single, nil
	case "double", "2":
		return Double, nil
	case "triple", "3":
		return Triple, nil
	}
	return 0, fmt.Errorf("ParseBondOrder: unknown bond type %q", s)
}

// Bond joins two atoms of the same structure.
type Bond struct {
	Index int
	At1   int //index of the first atom in the owning structure
	At2   int
	Dist  float64 //bond length, A
	Order BondOrder
}

// Cross returns the index of the atom at the other end of the bond from origin.
func (B *Bond) Cross(origin int) int {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //programming error
}

// Contains returns true if the atom with index i is one of the ends of the bond.
func (B *Bond) Contains(i int) bool {
	return B.At1 == i || B.At2 == i
}

// Copy returns a copy of the bond.
func (B *Bond) Copy() *Bond {
	b := *B
	return &b
}

// BondLengths is a read-only table of single-bond lengths keyed by
// unordered element pairs, so "C-H" and "H-C" are the same entry.
type BondLengths struct {
	lengths map[string]float64
}

// pairKey returns the key for the unordered pair a, b.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "-" + b
}

// NewBondLengths builds a table from a map with keys of the form "A-B"
// (in any order) and lengths in A. Non-positive lengths, malformed keys
// and pairs given twice are errors.
func NewBondLengths(lengths map[string]float64) (*BondLengths, error) {
	B := &BondLengths{lengths: make(map[string]float64, len(lengths))}
	for k, v := range lengths {
		f := strings.Split(k, "-")
		if len(f) != 2 || f[0] == "" || f[1] == "" {
			return nil, fmt.Errorf("NewBondLengths: malformed pair %q", k)
		}
		if v <= 0 {
			return nil, fmt.Errorf("NewBondLengths: non-positive length %g for %s", v, k)
		}
		key := pairKey(f[0], f[1])
		if _, ok := B.lengths[key]; ok {
			return nil, fmt.Errorf("NewBondLengths: pair %s given twice", key)
		}
		B.lengths[key] = v
	}
	return B, nil
}

// Lookup returns the tabulated length for the pair, if present.
func (B *BondLengths) Lookup(a, b string) (float64, bool) {
	l, ok := B.lengths[pairKey(a, b)]
	return l, ok
}

// Length returns the tabulated length for the pair or, if there isn't
// one, the sum of the covalent radii of both elements in table.
// It returns 0 if the pair is not tabulated and either element is not in table.
func (B *BondLengths) Length(a, b string, table *Table) float64 {
	if l, ok := B.Lookup(a, b); ok {
		return l
	}
	r1, r2 := table.CovRad(a), table.CovRad(b)
	if r1 == 0 || r2 == 0 {
		return 0
	}
	return r1 + r2
}

// Len returns the number of tabulated pairs.
func (B *BondLengths) Len() int {
	return len(B.lengths)
}

// DefaultBondLengths returns the shared table of typical single-bond lengths.
func DefaultBondLengths() *BondLengths {
	return defaultBondLengths
}

var defaultBondLengths = func() *BondLengths {
	b, err := NewBondLengths(map[string]float64{
		"H-H":   0.74,
		"C-H":   1.09,
		"N-H":   1.01,
		"O-H":   0.96,
		"F-H":   0.92,
		"Cl-H":  1.27,
		"Br-H":  1.41,
		"I-H":   1.61,
		"S-H":   1.34,
		"P-H":   1.42,
		"Si-H":  1.48,
		"B-H":   1.19,
		"Se-H":  1.46,
		"C-C":   1.54,
		"C-N":   1.47,
		"C-O":   1.43,
		"C-F":   1.35,
		"C-Cl":  1.77,
		"C-Br":  1.94,
		"C-I":   2.14,
		"C-S":   1.82,
		"C-Si":  1.87,
		"C-P":   1.84,
		"N-N":   1.45,
		"N-O":   1.40,
		"N-F":   1.36,
		"N-Cl":  1.75,
		"O-O":   1.48,
		"O-F":   1.42,
		"S-O":   1.57,
		"S-F":   1.56,
		"S-Cl":  2.07,
		"P-O":   1.63,
		"P-F":   1.54,
		"P-Cl":  2.04,
		"Si-O":  1.63,
		"Si-F":  1.56,
		"Si-Cl": 2.02,
		"B-F":   1.31,
		"B-Cl":  1.75,
		"Al-Cl": 2.06,
		"Al-F":  1.65,
		"Na-Cl": 2.36,
		"Na-F":  1.93,
		"K-Cl":  2.67,
		"Li-F":  1.56,
		"Mg-O":  1.75,
		"Ca-O":  1.82,
		"Fe-O":  2.00,
		"Cu-O":  1.95,
		"Zn-O":  1.95,
		"Cl-Cl": 1.99,
		"Br-Br": 2.28,
		"I-I":   2.67,
		"F-F":   1.42,
	})
	if err != nil {
		panic(err.Error())
	}
	return b
}()
