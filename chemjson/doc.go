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

// Package chemjson implements the JSON representation of chemform structures.
// Besides plain serialization and unserialization, it can find a structure
// embedded in free text, such as the answer of a language model. Such text is
// never trusted: every field is checked before a structure is built from it.
//
// A structure looks like this:
//
//	{"formula": "H2O", "geometry": "bent",
//	 "atoms": [{"element": "O", "position": [0, 0, 0], "bonds": [0, 1]},
//	           {"element": "H", "position": {"x": 0.757, "y": 0.586, "z": 0}, "bonds": [0]},
//	           {"element": "H", "position": [-0.757, 0.586, 0], "bonds": [1]}],
//	 "bonds": [{"type": "single", "atoms": [0, 1], "length": 0.957},
//	           {"type": 1, "atoms": [0, 2], "length": 0.957}]}
//
// The "bonds" of an atom are indexes in the bond list.
package chemjson
