/*
 * tier.go, part of chemform.
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

package pipeline

import (
	"context"
	"errors"

	chem "github.com/rmera/chemform"
)

var (
	//ErrMiss is the skip reason of a tier that has nothing for the request.
	ErrMiss = errors.New("pipeline: no structure for this formula")
	//ErrRejected is the skip reason of a tier whose structure failed validation.
	ErrRejected = errors.New("pipeline: structure rejected by the validator")
)

// Request is what every tier gets. Counts is never empty.
type Request struct {
	Formula string
	Counts  chem.Formula
}

// Outcome is what a tier gives back: a structure with its validation report,
// or the reason why the tier was skipped.
type Outcome struct {
	Structure *chem.Structure
	Report    *chem.ValidationReport
	Skip      error
}

// Accept returns the outcome of a tier that built S.
func Accept(S *chem.Structure, report *chem.ValidationReport) Outcome {
	return Outcome{Structure: S, Report: report}
}

// Skip returns the outcome of a tier that gave no structure, because of reason.
func Skip(reason error) Outcome {
	if reason == nil {
		reason = ErrMiss
	}
	return Outcome{Skip: reason}
}

// Accepted returns true if the outcome carries a structure.
func (O Outcome) Accepted() bool {
	return O.Skip == nil && O.Structure != nil
}

// Tier is one stage of the resolution. Tiers are tried in order until one
// accepts the request.
type Tier struct {
	Name chem.Provenance
	Run  func(ctx context.Context, req *Request) Outcome
}

// Skipped records a tier that did not give a structure, and why.
type Skipped struct {
	Tier   chem.Provenance
	Reason error
}

// Chain runs tiers, in order, until one accepts req. It returns the accepted
// outcome, the tier that gave it, and the tiers skipped before it. If no tier
// accepts, the returned outcome carries the last skip reason.
func Chain(ctx context.Context, req *Request, tiers ...Tier) (Outcome, chem.Provenance, []Skipped) {
	var skipped []Skipped
	last := Skip(ErrMiss)
	for _, t := range tiers {
		o := t.Run(ctx, req)
		if o.Accepted() {
			return o, t.Name, skipped
		}
		if o.Skip == nil {
			o.Skip = ErrMiss
		}
		skipped = append(skipped, Skipped{Tier: t.Name, Reason: o.Skip})
		last = o
	}
	return last, "", skipped
}
