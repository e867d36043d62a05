/*
 * chem.go, part of chemform.
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

	v3 "github.com/rmera/chemform/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

/**Note: The accessors here panic instead of returning errors
 * when used with out-of-range indexes, since that can only be a programming error.**/

// Geometry is the molecular-geometry classification of a structure.
type Geometry string

const (
	Monatomic           Geometry = "monatomic"
	Linear              Geometry = "linear"
	Bent                Geometry = "bent"
	TrigonalPlanar      Geometry = "trigonal-planar"
	TrigonalPyramidal   Geometry = "trigonal-pyramidal"
	Tetrahedral         Geometry = "tetrahedral"
	TrigonalBipyramidal Geometry = "trigonal-bipyramidal"
	Octahedral          Geometry = "octahedral"
	Complex             Geometry = "complex"
)

var geometries = map[Geometry]bool{Monatomic: true, Linear: true, Bent: true, TrigonalPlanar: true,
	TrigonalPyramidal: true, Tetrahedral: true, TrigonalBipyramidal: true, Octahedral: true, Complex: true}

// ParseGeometry returns the Geometry named by s, or an error if s is not a known geometry.
func ParseGeometry(s string) (Geometry, error) {
	g := Geometry(s)
	if !geometries[g] {
		return "", fmt.Errorf("ParseGeometry: unknown geometry %q", s)
	}
	return g, nil
}

// Provenance tells which resolution tier produced a structure, so
// callers can judge how much to trust it.
type Provenance string

const (
	Predefined  Provenance = "predefined"
	External    Provenance = "external"
	Synthesized Provenance = "synthesized"
	Fallback    Provenance = "fallback"
)

// Atom is an atom in a structure.
type Atom struct {
	Symbol        string
	Pos           r3.Vec
	CovRad        float64 //copied from the element table when the atom is created
	Charge        int     //formal charge, 0 if not set
	Hybridization string  //empty if not set
	Index         int     //index in the owning structure
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	a := *A
	return &a
}

// Structure is a three-dimensional molecular structure. A structure is
// built by one resolution tier, and not modified after it is returned to the
// caller, who owns it.
type Structure struct {
	Formula    string //the formula it was built for
	Atoms      []*Atom
	Bonds      []*Bond
	Geometry   Geometry
	Valid      bool
	Provenance Provenance
}

// NewStructure returns an empty structure for formula, with the given provenance.
func NewStructure(formula string, prov Provenance) *Structure {
	return &Structure{Formula: formula, Provenance: prov}
}

// AddAtom appends a new atom to the structure and returns its index.
func (S *Structure) AddAtom(symbol string, pos r3.Vec, covrad float64) int {
	i := len(S.Atoms)
	S.Atoms = append(S.Atoms, &Atom{Symbol: symbol, Pos: pos, CovRad: covrad, Index: i})
	return i
}

// AddBond bonds the atoms with indexes i and j, and returns the index of the new bond.
// It doesn't check the indexes, that is the Validator's job.
func (S *Structure) AddBond(i, j int, order BondOrder, dist float64) int {
	k := len(S.Bonds)
	S.Bonds = append(S.Bonds, &Bond{Index: k, At1: i, At2: j, Order: order, Dist: dist})
	return k
}

// Atom returns the Atom with index i. Panics if out of range.
func (S *Structure) Atom(i int) *Atom {
	if i >= len(S.Atoms) || i < 0 {
		panic("Structure: Requested Atom out of bounds")
	}
	return S.Atoms[i]
}

// Len returns the number of atoms.
func (S *Structure) Len() int {
	return len(S.Atoms)
}

// Bond returns the Bond with index i. Panics if out of range.
func (S *Structure) Bond(i int) *Bond {
	if i >= len(S.Bonds) || i < 0 {
		panic("Structure: Requested Bond out of bounds")
	}
	return S.Bonds[i]
}

// NBonds returns the number of bonds.
func (S *Structure) NBonds() int {
	return len(S.Bonds)
}

// Census counts the atoms in the structure by element.
func (S *Structure) Census() Formula {
	f := make(Formula)
	for _, a := range S.Atoms {
		f[a.Symbol]++
	}
	return f
}

// Degree returns the sum of the orders of the bonds of atom i.
func (S *Structure) Degree(i int) int {
	d := 0
	for _, b := range S.Bonds {
		if b.Contains(i) {
			d += int(b.Order)
		}
	}
	return d
}

// Neighbors returns the indexes of the atoms bonded to atom i, in bond order.
func (S *Structure) Neighbors(i int) []int {
	var ret []int
	for _, b := range S.Bonds {
		if b.Contains(i) {
			ret = append(ret, b.Cross(i))
		}
	}
	return ret
}

// Hub returns the index of the atom with the most bonds (the first one,
// in case of ties), or -1 for an empty structure.
func (S *Structure) Hub() int {
	bonds := make([]int, len(S.Atoms))
	for _, b := range S.Bonds {
		if b.At1 >= 0 && b.At1 < len(bonds) {
			bonds[b.At1]++
		}
		if b.At2 != b.At1 && b.At2 >= 0 && b.At2 < len(bonds) {
			bonds[b.At2]++
		}
	}
	hub, most := -1, -1
	for i, n := range bonds {
		if n > most {
			hub, most = i, n
		}
	}
	return hub
}

// Coords returns a new matrix with the positions of the atoms, one per row.
func (S *Structure) Coords() *v3.Matrix {
	c := v3.Zeros(len(S.Atoms))
	for i, a := range S.Atoms {
		c.SetVec(i, a.Pos.X, a.Pos.Y, a.Pos.Z)
	}
	return c
}

// Copy returns a deep copy of the structure.
func (S *Structure) Copy() *Structure {
	s := *S
	s.Atoms = make([]*Atom, len(S.Atoms))
	for i, a := range S.Atoms {
		s.Atoms[i] = a.Copy()
	}
	s.Bonds = make([]*Bond, len(S.Bonds))
	for i, b := range S.Bonds {
		s.Bonds[i] = b.Copy()
	}
	return &s
}

// ResetIndexes sets the Index of every atom and bond to its position
// in the structure.
func (S *Structure) ResetIndexes() {
	for i, a := range S.Atoms {
		a.Index = i
	}
	for i, b := range S.Bonds {
		b.Index = i
	}
}
