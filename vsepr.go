/*
 * vsepr.go, part of chemform.
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
	"gonum.org/v1/gonum/spatial/r3"
)

// Synthesizer builds structures from a composition alone, placing every
// atom around a central one following VSEPR-like layouts. Lone pairs are
// not modelled, so water comes out linear and ammonia trigonal-planar.
// A Synthesizer only reads its tables, so it is safe for concurrent use.
type Synthesizer struct {
	Table   *Table
	Lengths *BondLengths
}

// NewSynthesizer returns a Synthesizer using the given tables. nil tables are
// replaced by the defaults.
func NewSynthesizer(table *Table, lengths *BondLengths) *Synthesizer {
	if table == nil {
		table = DefaultTable()
	}
	if lengths == nil {
		lengths = DefaultBondLengths()
	}
	return &Synthesizer{Table: table, Lengths: lengths}
}

// Synthesize returns a structure for counts, with the central atom at the origin
// and every other atom bonded to it by a single bond. The formula of the returned
// structure is the Hill formula of counts. Errors are of kind ErrAmbiguousStructure
// or ErrUnresolvedElement.
func (S *Synthesizer) Synthesize(counts Formula) (*Structure, error) {
	hub, err := SelectCentral(counts, S.Table)
	if err != nil {
		return nil, errDecorate(err, "Synthesize")
	}
	rest := counts.Copy()
	rest[hub]--
	if rest[hub] == 0 {
		delete(rest, hub)
	}
	peripherals := rest.expand()
	n := len(peripherals)
	mol := NewStructure(counts.Hill(), Synthesized)
	h := mol.AddAtom(hub, r3.Vec{}, S.Table.CovRad(hub))
	mol.Atoms[h].Hybridization = hybridization(n)
	mol.Geometry = layoutGeometry(n)
	dirs := directions(n)
	for i, el := range peripherals {
		d := S.Lengths.Length(hub, el, S.Table)
		if d <= 0 { //only happens if a table was built without this element's radius.
			return nil, errorf(ErrUnresolvedElement, "Synthesize", "no bond length available for %s-%s", hub, el)
		}
		j := mol.AddAtom(el, r3.Scale(d, dirs.Vec(i)), S.Table.CovRad(el))
		mol.AddBond(h, j, Single, d)
	}
	return mol, nil
}
