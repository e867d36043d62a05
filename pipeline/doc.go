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

// Package pipeline turns a formula into a three-dimensional structure, trying
// several sources in order of trust: the predefined library, an optional
// external resolver, the VSEPR synthesizer and, as a last resort, a chain of
// atoms on a line. Every structure returned is validated against the
// composition of the formula, and carries the provenance of the tier that
// built it.
//
// Only malformed formulas, and empty or contradictory compositions, are
// errors for the caller. Any other failure makes the pipeline move on to the
// next tier.
package pipeline
