/*
 * pipeline.go, part of chemform.
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
	"fmt"
	"time"

	chem "github.com/rmera/chemform"
	"github.com/rmera/chemform/chemgraph"
	"github.com/rmera/chemform/chemjson"
	"github.com/rmera/chemform/clash"
	"github.com/rmera/chemform/resolver"
	"go.uber.org/zap"
)

// DefaultResolverTimeout bounds the external resolver call when no timeout is given.
const DefaultResolverTimeout = 30 * time.Second

// MaxClashScan is the largest structure, in atoms, checked for clashes.
const MaxClashScan = 2000

// Pipeline resolves formulas into structures. It is safe for concurrent use.
type Pipeline struct {
	library   *chem.Library
	noLibrary bool
	table     *chem.Table
	lengths   *chem.BondLengths
	resolver  resolver.Resolver
	timeout   time.Duration
	logger    *zap.Logger
	metrics   *Metrics
	tiers     []Tier
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLibrary sets the predefined structure library. A nil library disables
// the predefined tier.
func WithLibrary(L *chem.Library) Option {
	return func(P *Pipeline) {
		P.library = L
		P.noLibrary = L == nil
	}
}

// WithTable sets the element property table.
func WithTable(T *chem.Table) Option {
	return func(P *Pipeline) { P.table = T }
}

// WithBondLengths sets the standard bond lengths.
func WithBondLengths(B *chem.BondLengths) Option {
	return func(P *Pipeline) { P.lengths = B }
}

// WithResolver enables the external tier, which asks R for the structure.
func WithResolver(R resolver.Resolver) Option {
	return func(P *Pipeline) { P.resolver = R }
}

// WithResolverTimeout bounds each call to the external resolver. Zero or less
// means only the caller's context bounds it.
func WithResolverTimeout(d time.Duration) Option {
	return func(P *Pipeline) { P.timeout = d }
}

// WithLogger sets the logger. Nil means zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(P *Pipeline) { P.logger = logger }
}

// WithMetrics makes the pipeline update m.
func WithMetrics(m *Metrics) Option {
	return func(P *Pipeline) { P.metrics = m }
}

// New returns a Pipeline. Without options, it uses the default library and
// tables, no external resolver, and logs nothing.
func New(opts ...Option) *Pipeline {
	P := &Pipeline{timeout: DefaultResolverTimeout}
	for _, o := range opts {
		o(P)
	}
	if P.library == nil && !P.noLibrary {
		P.library = chem.DefaultLibrary()
	}
	if P.table == nil {
		P.table = chem.DefaultTable()
	}
	if P.lengths == nil {
		P.lengths = chem.DefaultBondLengths()
	}
	if P.logger == nil {
		P.logger = zap.NewNop()
	}
	if P.library != nil {
		P.tiers = append(P.tiers, Tier{Name: chem.Predefined, Run: P.predefined})
	}
	if P.resolver != nil {
		P.tiers = append(P.tiers, Tier{Name: chem.External, Run: P.external})
	}
	P.tiers = append(P.tiers, Tier{Name: chem.Synthesized, Run: P.synthesized}, Tier{Name: chem.Fallback, Run: P.fallback})
	return P
}

// Tiers returns the names of the tiers of P, in the order they are tried.
func (P *Pipeline) Tiers() []chem.Provenance {
	ret := make([]chem.Provenance, len(P.tiers))
	for i, t := range P.tiers {
		ret[i] = t.Name
	}
	return ret
}

// Result is a resolved structure together with its validation report and the
// tiers that were tried, and skipped, before the one that built it.
// Clashes are pairs of non-bonded atoms that are too close. They don't make the
// structure invalid. Structures with more than MaxClashScan atoms are not
// checked, and ClashChecked is false for them.
type Result struct {
	Structure    *chem.Structure
	Report       *chem.ValidationReport
	Skipped      []Skipped
	Clashes      []clash.Pair
	ClashChecked bool
}

// Resolve returns a structure for formula. The only errors are of kind
// chem.ErrParse, for malformed formulas and formulas with more than
// chem.MaxAtoms atoms.
func (P *Pipeline) Resolve(ctx context.Context, formula string) (*chem.Structure, error) {
	r, err := P.ResolveDetailed(ctx, formula, nil)
	if err != nil {
		return nil, err
	}
	return r.Structure, nil
}

// ResolveCounts returns a structure for the composition counts, which is used
// instead of parsing formula. formula, if not empty, is only a label for the
// structure, but if it is a valid formula its composition must agree with counts.
// Errors are of kind chem.ErrAmbiguousStructure. They include counts that are
// empty, not positive, or add up to more than chem.MaxAtoms.
func (P *Pipeline) ResolveCounts(ctx context.Context, formula string, counts chem.Formula) (*chem.Structure, error) {
	if counts == nil {
		counts = chem.Formula{}
	}
	r, err := P.ResolveDetailed(ctx, formula, counts)
	if err != nil {
		return nil, err
	}
	return r.Structure, nil
}

// ResolveDetailed is like Resolve, or like ResolveCounts if counts is not nil,
// but returns the whole Result.
func (P *Pipeline) ResolveDetailed(ctx context.Context, formula string, counts chem.Formula) (*Result, error) {
	req, err := request(formula, counts)
	if err != nil {
		return nil, err
	}
	o, tier, skipped := Chain(ctx, req, P.tiers...)
	for _, s := range skipped {
		P.metrics.skip(s.Tier, s.Reason)
		P.logger.Debug("tier skipped", zap.String("formula", formula), zap.String("tier", string(s.Tier)), zap.Error(s.Reason))
	}
	if !o.Accepted() {
		//Only possible if the fallback tier fails, which it doesn't for a non-empty composition.
		return nil, chem.WrapError(chem.ErrAmbiguousStructure, o.Skip, fmt.Sprintf("no structure for %q", formula), "ResolveDetailed")
	}
	o.Structure.Valid = o.Report.Passed
	P.metrics.structure(tier)
	P.logger.Debug("formula resolved", zap.String("formula", o.Structure.Formula), zap.String("provenance", string(tier)),
		zap.Int("atoms", o.Structure.Len()), zap.Bool("valid", o.Structure.Valid))
	r := &Result{Structure: o.Structure, Report: o.Report, Skipped: skipped}
	if o.Structure.Len() > MaxClashScan {
		P.logger.Debug("clash check skipped", zap.String("formula", o.Structure.Formula), zap.Int("atoms", o.Structure.Len()))
		return r, nil
	}
	r.Clashes, r.ClashChecked = clash.Find(o.Structure, clash.DefaultTolerance), true
	if len(r.Clashes) > 0 {
		P.logger.Warn("structure has clashing atoms", zap.String("formula", o.Structure.Formula),
			zap.String("provenance", string(tier)), zap.Int("clashes", len(r.Clashes)))
	}
	return r, nil
}

// request builds the request for formula, or for counts if not nil.
func request(formula string, counts chem.Formula) (*Request, error) {
	if counts == nil {
		parsed, err := chem.Parse(formula)
		if err != nil {
			return nil, err
		}
		return &Request{Formula: formula, Counts: parsed}, nil
	}
	if len(counts) == 0 {
		return nil, chem.NewError(chem.ErrAmbiguousStructure, "empty composition", "ResolveCounts")
	}
	total := 0
	for s, n := range counts {
		if n <= 0 {
			return nil, chem.NewError(chem.ErrAmbiguousStructure, fmt.Sprintf("%d atoms of %s", n, s), "ResolveCounts")
		}
		total += n
		if n > chem.MaxAtoms || total > chem.MaxAtoms {
			return nil, chem.NewError(chem.ErrAmbiguousStructure, fmt.Sprintf("more than %d atoms", chem.MaxAtoms), "ResolveCounts")
		}
	}
	if formula != "" {
		if parsed, err := chem.Parse(formula); err == nil && !parsed.Equal(counts) {
			return nil, chem.NewError(chem.ErrAmbiguousStructure, fmt.Sprintf("%s doesn't have the composition %v", formula, counts), "ResolveCounts")
		}
	}
	return &Request{Formula: formula, Counts: counts.Copy()}, nil
}

// accept validates S against the request and accepts it whatever the result.
func (P *Pipeline) accept(S *chem.Structure, req *Request) Outcome {
	S.Formula = chem.FormulaFor(req.Formula, req.Counts)
	return Accept(S, chem.Validate(S, req.Counts, P.table))
}

func (P *Pipeline) predefined(ctx context.Context, req *Request) Outcome {
	S, ok := P.library.Lookup(req.Counts.Hill())
	if !ok {
		return Skip(ErrMiss)
	}
	return P.accept(S, req)
}

func (P *Pipeline) synthesized(ctx context.Context, req *Request) Outcome {
	S, err := chem.NewSynthesizer(P.table, P.lengths).Synthesize(req.Counts)
	if err != nil {
		return Skip(err)
	}
	return P.accept(S, req)
}

func (P *Pipeline) fallback(ctx context.Context, req *Request) Outcome {
	S, err := chem.Collinear(req.Formula, req.Counts, P.table, P.lengths)
	if err != nil {
		return Skip(err)
	}
	return P.accept(S, req)
}

type answer struct {
	text string
	err  error
}

// external asks the resolver for the structure. The call runs in its own
// goroutine, and is abandoned if the timeout or the caller's context expire.
// A structure with fewer atoms than expected gets one corrective Pad.
func (P *Pipeline) external(ctx context.Context, req *Request) Outcome {
	rctx, cancel := ctx, context.CancelFunc(func() {})
	if P.timeout > 0 {
		rctx, cancel = context.WithTimeout(ctx, P.timeout)
	}
	defer cancel()
	formula := chem.FormulaFor(req.Formula, req.Counts)
	numbering := resolver.NumberingFor(req.Counts)
	ch := make(chan answer, 1)
	start := time.Now()
	go func() {
		text, err := P.resolver.Resolve(rctx, formula, numbering)
		ch <- answer{text: text, err: err}
	}()
	var ans answer
	select {
	case ans = <-ch:
	case <-rctx.Done():
		ans.err = rctx.Err()
	}
	P.metrics.resolver(time.Since(start))
	if ans.err != nil {
		if !errors.Is(ans.err, chem.ErrResolver) {
			ans.err = chem.WrapError(chem.ErrResolver, ans.err, "resolver call failed", "external")
		}
		P.logger.Warn("external resolver failed", zap.String("formula", formula), zap.Error(ans.err))
		return Skip(ans.err)
	}
	S, err := chemjson.Extract(ans.text)
	if err != nil {
		P.logger.Warn("no structure in the resolver answer", zap.String("formula", formula), zap.Error(err))
		return Skip(err)
	}
	S.Formula = formula
	report := chem.Validate(S, req.Counts, P.table)
	if !report.Passed && S.Len() < req.Counts.Total() {
		if i, err := chem.Pad(S, req.Counts, P.table, P.lengths); err == nil {
			P.logger.Debug("padded external structure", zap.String("formula", formula), zap.String("element", S.Atom(i).Symbol))
			report = chem.Validate(S, req.Counts, P.table)
		}
	}
	if !report.Passed {
		P.logger.Warn("external structure rejected", zap.String("formula", formula), zap.Stringer("report", report))
		return Skip(fmt.Errorf("%w: %s", ErrRejected, report))
	}
	if !chemgraph.Connected(S) {
		P.logger.Warn("external structure is not connected", zap.String("formula", formula), zap.Int("fragments", len(chemgraph.Fragments(S))))
	}
	return Accept(S, report)
}
