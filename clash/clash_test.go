/*
 * clash_test.go, part of chemform.
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

package clash

import (
	"math"
	"testing"

	chem "github.com/rmera/chemform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestNoClashes(t *testing.T) {
	syn := chem.NewSynthesizer(nil, nil)
	for _, f := range []string{"CH4", "SF6", "PCl5", "C2H6", "IF7"} {
		counts, err := chem.Parse(f)
		require.NoError(t, err)
		S, err := syn.Synthesize(counts)
		require.NoError(t, err)
		assert.Empty(t, Find(S, 0), f)
		_, ok := HighestOverlap(S, 0)
		assert.False(t, ok, f)
	}
	lib := chem.DefaultLibrary()
	for _, f := range lib.Formulas() {
		S, _ := lib.Lookup(f)
		assert.Empty(t, Find(S, 0), f)
	}
}

func TestFind(t *testing.T) {
	S := chem.NewStructure("H3", chem.External)
	S.AddAtom("H", r3.Vec{}, 0.31)
	S.AddAtom("H", r3.Vec{X: 0.3}, 0.31)
	S.AddAtom("H", r3.Vec{X: 0.1, Y: 0.2}, 0)
	S.AddBond(0, 1, chem.Single, 0.3)
	pairs := Find(S, 0)
	require.Len(t, pairs, 2)
	assert.Equal(t, 0, pairs[0].At1)
	assert.Equal(t, 2, pairs[0].At2)
	assert.InDelta(t, 0.8*(0.31+0.75), pairs[0].Limit, 1e-9)
	assert.Equal(t, 1, pairs[1].At1)

	best, ok := HighestOverlap(S, 0)
	require.True(t, ok)
	assert.Equal(t, [2]int{0, 2}, [2]int{best.At1, best.At2})

	assert.Empty(t, Find(S, 0.01))
}

func TestLowestDist(t *testing.T) {
	S := chem.NewStructure("H", chem.Fallback)
	d, idx := LowestDist(S)
	assert.True(t, math.IsInf(d, 1))
	assert.Equal(t, [2]int{-1, -1}, idx)
	S.AddAtom("H", r3.Vec{}, 0.31)
	S.AddAtom("H", r3.Vec{X: 2}, 0.31)
	S.AddAtom("H", r3.Vec{X: 2.5}, 0.31)
	d, idx = LowestDist(S)
	assert.InDelta(t, 0.5, d, 1e-9)
	assert.Equal(t, [2]int{1, 2}, idx)
}
