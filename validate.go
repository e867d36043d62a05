/*
 * validate.go, part of chemform.
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
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mismatch holds the expected and actual number of atoms of one element.
type Mismatch struct {
	Expected int
	Actual   int
}

// ValidationReport is the result of comparing a structure against the composition
// it should have.
type ValidationReport struct {
	Expected      int //total atoms expected
	Actual        int //total atoms in the structure
	Mismatches    map[string]Mismatch
	DanglingBonds []int //bonds with an endpoint out of range, or both endpoints equal
	OverBonded    []int //atoms whose bond orders add to more than their MaxBonds. Informational.
	Passed        bool
}

// String returns a short human-readable summary of the report.
func (R *ValidationReport) String() string {
	if R.Passed {
		return fmt.Sprintf("passed: %d atoms", R.Actual)
	}
	var parts []string
	syms := make([]string, 0, len(R.Mismatches))
	for s := range R.Mismatches {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	for _, s := range syms {
		m := R.Mismatches[s]
		parts = append(parts, fmt.Sprintf("%s expected %d got %d", s, m.Expected, m.Actual))
	}
	if len(R.DanglingBonds) > 0 {
		parts = append(parts, fmt.Sprintf("dangling bonds %v", R.DanglingBonds))
	}
	return fmt.Sprintf("failed: %d of %d atoms; %s", R.Actual, R.Expected, strings.Join(parts, "; "))
}

// Validate recomputes the atom census of S and compares it with expected.
// The structure passes if every element count matches and every bond joins
// two different atoms of the structure. Atoms with more bonds than their
// element allows are reported, but don't make the structure fail.
// A nil table means the default table.
func Validate(S *Structure, expected Formula, table *Table) *ValidationReport {
	if table == nil {
		table = DefaultTable()
	}
	census := S.Census()
	R := &ValidationReport{Expected: expected.Total(), Actual: S.Len(), Mismatches: make(map[string]Mismatch)}
	for s, n := range expected {
		if census[s] != n {
			R.Mismatches[s] = Mismatch{Expected: n, Actual: census[s]}
		}
	}
	for s, n := range census {
		if _, ok := expected[s]; !ok {
			R.Mismatches[s] = Mismatch{Expected: 0, Actual: n}
		}
	}
	degrees := make([]int, S.Len())
	for i, b := range S.Bonds {
		if b.At1 < 0 || b.At2 < 0 || b.At1 >= S.Len() || b.At2 >= S.Len() || b.At1 == b.At2 {
			R.DanglingBonds = append(R.DanglingBonds, i)
			continue
		}
		degrees[b.At1] += int(b.Order)
		degrees[b.At2] += int(b.Order)
	}
	for i, a := range S.Atoms {
		if p, ok := table.Lookup(a.Symbol); ok && degrees[i] > p.MaxBonds {
			R.OverBonded = append(R.OverBonded, i)
		}
	}
	R.Passed = len(R.Mismatches) == 0 && len(R.DanglingBonds) == 0
	return R
}

// Pad adds to S one atom of the element that S lacks the most of, compared to
// expected (hydrogen on ties, or when nothing is clearly missing). The new atom
// is bonded by a single bond to the atom of S with the most bonds, pointing
// away from that atom's other neighbours, at the tabulated bond length.
// Pad modifies S and returns the index of the new atom. It returns an error of
// kind ErrAmbiguousStructure if S has no atoms, or if S doesn't have fewer atoms
// than expected.
func Pad(S *Structure, expected Formula, table *Table, lengths *BondLengths) (int, error) {
	if table == nil {
		table = DefaultTable()
	}
	if lengths == nil {
		lengths = DefaultBondLengths()
	}
	if S.Len() == 0 {
		return -1, errorf(ErrAmbiguousStructure, "Pad", "can't pad an empty structure")
	}
	if S.Len() >= expected.Total() {
		return -1, errorf(ErrAmbiguousStructure, "Pad", "structure has %d atoms, %d expected, nothing to pad", S.Len(), expected.Total())
	}
	el := mostMissing(S.Census(), expected)
	hub := S.Hub()
	d := lengths.Length(S.Atom(hub).Symbol, el, table)
	if d <= 0 {
		d = DefaultSpacing
	}
	dir := freeDirection(S, hub)
	pos := r3.Add(S.Atom(hub).Pos, r3.Scale(d, dir))
	i := S.AddAtom(el, pos, table.CovRad(el))
	S.AddBond(hub, i, Single, d)
	return i, nil
}

// mostMissing returns the element with the largest deficit in census with
// respect to expected. Ties go to hydrogen, then alphabetically. If no element
// has a deficit, it returns hydrogen.
func mostMissing(census, expected Formula) string {
	best, deficit := "H", 0
	if d := expected["H"] - census["H"]; d > 0 {
		deficit = d
	}
	for _, s := range expected.Symbols() {
		if d := expected[s] - census[s]; d > deficit {
			best, deficit = s, d
		}
	}
	return best
}
