/*
 * doc.go, part of chemform.
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

/*
Package chem is the main package of the chemform library. It builds
three-dimensional structures (atoms, bonds and a geometry tag) from chemical
formulas.

	**chemform Capabilities**

	Parses formulas with nested groups, such as Fe2(SO4)3, into element counts.

	Provides a versioned, read-only table of element properties and a
	symmetric table of typical bond lengths. Both can be replaced by
	smaller tables, for instance in tests.

	Selects the central atom of a composition.

	Builds VSEPR-like structures around the central atom for any number of
	peripheral atoms. Lone pairs are not considered.

	Returns literature structures for a set of well-known molecules.

	Places atoms along a line when nothing better can be done.

	Validates a structure against the composition it should have, and can add
	one missing atom to an otherwise acceptable structure.

	Writes structures in XYZ format.

The subpackages add a JSON schema (chemjson), a graph view of structures
(chemgraph), the interface to external structure sources (resolver) and the
pipeline that combines all the above in order of trust (pipeline).

Functions in this package panic on out-of-range indexes, since
those can only be programming errors. Every other failure is returned as an
error with a Kind that can be checked with errors.Is.
*/
package chem

// Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche.
