/*
 * resolver.go, part of chemform.
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

package resolver

import (
	"context"
	"fmt"
	"strings"

	chem "github.com/rmera/chemform"
)

// Resolver obtains, from somewhere else, a text that may contain a structure.
type Resolver interface {

	//Resolve asks for a structure for formula. numbering is the order in
	//which the atoms are expected, which the source may or may not follow.
	//It returns free text, and an error if the source could not be reached
	//or didn't answer. Implementations must return when ctx is done.
	Resolve(ctx context.Context, formula string, numbering Numbering) (string, error)
}

// Func adapts an ordinary function to the Resolver interface.
type Func func(ctx context.Context, formula string, numbering Numbering) (string, error)

func (F Func) Resolve(ctx context.Context, formula string, numbering Numbering) (string, error) {
	return F(ctx, formula, numbering)
}

// NumberedAtom is one entry of a Numbering.
type NumberedAtom struct {
	Index  int
	Symbol string
}

// Numbering is the list of atoms, in order, that a structure is expected to have.
type Numbering []NumberedAtom

// NumberingFor returns the numbering for the composition counts: every
// element in alphabetical order, repeated as many times as it appears.
func NumberingFor(counts chem.Formula) Numbering {
	ret := make(Numbering, 0, counts.Total())
	for _, s := range counts.Symbols() {
		for i := 0; i < counts[s]; i++ {
			ret = append(ret, NumberedAtom{Index: len(ret), Symbol: s})
		}
	}
	return ret
}

// String returns the numbering as a comma-separated list, such as "0:H, 1:H, 2:O".
func (N Numbering) String() string {
	parts := make([]string, len(N))
	for i, a := range N {
		parts[i] = fmt.Sprintf("%d:%s", a.Index, a.Symbol)
	}
	return strings.Join(parts, ", ")
}

// Census returns the composition described by the numbering.
func (N Numbering) Census() chem.Formula {
	f := make(chem.Formula)
	for _, a := range N {
		f[a.Symbol]++
	}
	return f
}

// SystemPrompt is the instruction sent to language models before the request.
const SystemPrompt = `You are a structural chemistry assistant. You answer with exactly one JSON object and nothing else.
The object has the fields "geometry" (one of monatomic, linear, bent, trigonal-planar, trigonal-pyramidal,
tetrahedral, trigonal-bipyramidal, octahedral, complex), "atoms" and "bonds".
Each atom has "element" (the element symbol), "position" ([x, y, z] in Angstrom) and "bonds" (indexes in the bond list).
Each bond has "type" (single, double or triple), "atoms" (the indexes of the two atoms it joins) and "length" (in Angstrom).`

// Prompt returns the request for a structure of formula with the given atom numbering.
func Prompt(formula string, numbering Numbering) string {
	return fmt.Sprintf("Give the three-dimensional structure of %s. It has %d atoms, which must be numbered as follows: %s.",
		formula, len(numbering), numbering)
}
