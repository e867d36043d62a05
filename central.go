/*
 * central.go, part of chemform.
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

import "strings"

// SelectCentral returns the symbol of the element that goes at the center
// of a structure with the composition counts. Hydrogen is only selected if it
// is the only element. Otherwise, the least electronegative element wins,
// ties are broken by the largest MaxBonds and then alphabetically.
// It returns an error of kind ErrAmbiguousStructure for an empty composition,
// and of kind ErrUnresolvedElement if any element is not in table.
func SelectCentral(counts Formula, table *Table) (string, error) {
	if len(counts) == 0 || counts.Total() <= 0 {
		return "", errorf(ErrAmbiguousStructure, "SelectCentral", "empty composition")
	}
	if missing := table.Missing(counts); len(missing) > 0 {
		return "", errorf(ErrUnresolvedElement, "SelectCentral", "elements not in the table: %s", strings.Join(missing, ", "))
	}
	symbols := counts.Symbols()
	if len(symbols) == 1 {
		return symbols[0], nil
	}
	var best *ElementProperties
	for _, s := range symbols { //alphabetical, so the first one wins full ties.
		if s == "H" {
			continue
		}
		p, _ := table.Lookup(s)
		if best == nil || p.Electronegativity < best.Electronegativity ||
			(p.Electronegativity == best.Electronegativity && p.MaxBonds > best.MaxBonds) {
			best = p
		}
	}
	return best.Symbol, nil
}
