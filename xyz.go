/*
 * xyz.go, part of chemform.
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
	"bufio"
	"fmt"
	"io"
)

// WriteXYZ writes S in XYZ format to out. The comment line carries the
// formula, the provenance and the geometry of the structure.
func WriteXYZ(out io.Writer, S *Structure) error {
	w := bufio.NewWriter(out)
	if _, err := fmt.Fprintf(w, "%-4d\n", S.Len()); err != nil {
		return fmt.Errorf("WriteXYZ: %w", err)
	}
	fmt.Fprintf(w, "%s provenance=%s geometry=%s\n", S.Formula, S.Provenance, S.Geometry)
	coords := S.Coords()
	for i, a := range S.Atoms {
		c := coords.Vec(i)
		if _, err := fmt.Fprintf(w, "%-2s  %8.3f%8.3f%8.3f \n", a.Symbol, c.X, c.Y, c.Z); err != nil {
			return fmt.Errorf("WriteXYZ: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("WriteXYZ: %w", err)
	}
	return nil
}
