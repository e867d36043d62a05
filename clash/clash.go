/*
 * clash.go, part of chemform.
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

// Package clash finds atoms of a structure that are too close to each other
// without being bonded.
package clash

import (
	"math"

	chem "github.com/rmera/chemform"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultTolerance is the fraction of the sum of the covalent radii under which
// two non-bonded atoms clash.
const DefaultTolerance = 0.8

// fallbackRadius is used for atoms with no covalent radius.
const fallbackRadius = 0.75

// Pair is a pair of clashing atoms.
type Pair struct {
	At1, At2 int
	Dist     float64 //distance between the atoms
	Limit    float64 //distance under which they clash
}

// Overlap returns how much closer than allowed the atoms are.
func (P Pair) Overlap() float64 {
	return P.Limit - P.Dist
}

func radius(a *chem.Atom) float64 {
	if a.CovRad <= 0 {
		return fallbackRadius
	}
	return a.CovRad
}

// Find returns the pairs of atoms of S, not bonded to each other, that are closer
// than tolerance times the sum of their covalent radii. Pairs are sorted by
// their first, then their second, atom. A tolerance of 0 or less means DefaultTolerance.
func Find(S chem.Bonder, tolerance float64) []Pair {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	bonded := make(map[[2]int]bool, S.NBonds())
	for i := 0; i < S.NBonds(); i++ {
		b := S.Bond(i)
		bonded[[2]int{b.At1, b.At2}] = true
		bonded[[2]int{b.At2, b.At1}] = true
	}
	var ret []Pair
	for i := 0; i < S.Len(); i++ {
		for j := i + 1; j < S.Len(); j++ {
			limit := tolerance * (radius(S.Atom(i)) + radius(S.Atom(j)))
			if d := dist(S, i, j); d < limit && !bonded[[2]int{i, j}] {
				ret = append(ret, Pair{At1: i, At2: j, Dist: d, Limit: limit})
			}
		}
	}
	return ret
}

// HighestOverlap returns the clashing pair with the largest overlap, and false
// if there are no clashes.
func HighestOverlap(S chem.Bonder, tolerance float64) (Pair, bool) {
	pairs := Find(S, tolerance)
	if len(pairs) == 0 {
		return Pair{}, false
	}
	best := pairs[0]
	for _, p := range pairs[1:] {
		if p.Overlap() > best.Overlap() {
			best = p
		}
	}
	return best, true
}

// LowestDist returns the smallest distance between two atoms of S, bonded or not,
// and their indexes. For structures with less than 2 atoms it returns +Inf
// and {-1, -1}.
func LowestDist(S chem.Atomer) (lowest float64, indexes [2]int) {
	lowest = math.Inf(1)
	indexes = [2]int{-1, -1}
	for i := 0; i < S.Len(); i++ {
		for j := i + 1; j < S.Len(); j++ {
			if d := dist(S, i, j); d < lowest {
				lowest = d
				indexes = [2]int{i, j}
			}
		}
	}
	return
}

func dist(S chem.Atomer, i, j int) float64 {
	return r3.Norm(r3.Sub(S.Atom(i).Pos, S.Atom(j).Pos))
}
