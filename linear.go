/*
 * linear.go, part of chemform.
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

import "gonum.org/v1/gonum/spatial/r3"

// DefaultSpacing is the distance, in A, between consecutive atoms in a
// linear structure when neither element has data in the tables.
const DefaultSpacing = 1.5

// Collinear places the atoms of counts (in alphabetical order) along the x axis,
// each bonded to the next one by a single bond. It is the last resort when
// nothing better can be built, so it accepts elements missing from table.
// The only error, of kind ErrAmbiguousStructure, is returned for an empty composition.
func Collinear(formula string, counts Formula, table *Table, lengths *BondLengths) (*Structure, error) {
	if counts.Total() <= 0 {
		return nil, errorf(ErrAmbiguousStructure, "Collinear", "empty composition")
	}
	if table == nil {
		table = DefaultTable()
	}
	if lengths == nil {
		lengths = DefaultBondLengths()
	}
	mol := NewStructure(FormulaFor(formula, counts), Fallback)
	x := 0.0
	for i, el := range counts.expand() {
		if i > 0 {
			prev := mol.Atoms[i-1].Symbol
			d := lengths.Length(prev, el, table)
			if d <= 0 {
				d = DefaultSpacing
			}
			x += d
			mol.AddAtom(el, r3.Vec{X: x}, table.CovRad(el))
			mol.AddBond(i-1, i, Single, d)
			continue
		}
		mol.AddAtom(el, r3.Vec{}, table.CovRad(el))
	}
	mol.Geometry = Linear
	if mol.Len() == 1 {
		mol.Geometry = Monatomic
	}
	return mol, nil
}
