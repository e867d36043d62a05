/*
 * resolve.go, part of chemform.
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

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	chem "github.com/rmera/chemform"
	"github.com/rmera/chemform/chemjson"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type resolveOptions struct {
	counts   string
	format   string
	gzip     bool
	output   string
	external bool
	report   bool
}

func newResolveCmd(a *app) *cobra.Command {
	opts := &resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve FORMULA...",
		Short: "Build the 3D structure of each formula",
		Long: "Build the 3D structure of each formula. Structures are written in the order\n" +
			"the formulas are given, as a stream of JSON documents or as a multi-frame XYZ file.",
		Example: "  chemform resolve H2O CH4 --format xyz\n  chemform resolve methane --counts C=1,H=4",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, a, opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.counts, "counts", "", "explicit composition, like C=1,H=4, used instead of parsing the formula")
	f.StringVarP(&opts.format, "format", "f", "", "output format, json or xyz (default from the config)")
	f.BoolVar(&opts.gzip, "gzip", false, "gzip the output")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	f.BoolVar(&opts.external, "external", false, "ask the external resolver configured in resolver.*")
	f.BoolVar(&opts.report, "report", false, "print the validation report of each structure to stderr")
	return cmd
}

type job struct {
	formula string
	counts  chem.Formula
}

func jobs(opts *resolveOptions, args []string) ([]job, error) {
	if opts.counts == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("at least one formula is needed")
		}
		ret := make([]job, len(args))
		for i, a := range args {
			ret[i] = job{formula: a}
		}
		return ret, nil
	}
	if len(args) > 1 {
		return nil, fmt.Errorf("--counts takes at most one formula, used as a label")
	}
	counts, err := chem.ParseCounts(opts.counts)
	if err != nil {
		return nil, err
	}
	label := ""
	if len(args) == 1 {
		label = args[0]
	}
	return []job{{formula: label, counts: counts}}, nil
}

func runResolve(cmd *cobra.Command, a *app, opts *resolveOptions, args []string) error {
	todo, err := jobs(opts, args)
	if err != nil {
		return err
	}
	format := a.cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format = strings.ToLower(opts.format)
	}
	if format != "json" && format != "xyz" {
		return fmt.Errorf("unknown format %q, use json or xyz", format)
	}
	P, reg, err := a.pipeline(opts.external || a.cfg.Resolver.Enabled)
	if err != nil {
		return err
	}
	results := make([]*chem.Structure, len(todo))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(a.cfg.Concurrency)
	for i, j := range todo {
		i, j := i, j
		g.Go(func() error {
			r, err := P.ResolveDetailed(ctx, j.formula, j.counts)
			if err != nil {
				return fmt.Errorf("%s: %w", j.formula, err)
			}
			if opts.report {
				clashes := "clashes not checked"
				if r.ClashChecked {
					clashes = fmt.Sprintf("%d clashes", len(r.Clashes))
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s): %s, %s\n", r.Structure.Formula, r.Structure.Provenance, r.Report, clashes)
			}
			results[i] = r.Structure
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	out, err := openOutput(cmd.OutOrStdout(), opts.output, opts.gzip || a.cfg.Output.Gzip)
	if err != nil {
		return err
	}
	for _, S := range results {
		if format == "xyz" {
			err = chem.WriteXYZ(out, S)
		} else {
			err = chemjson.Encode(out, S)
		}
		if err != nil {
			out.Close()
			return err
		}
	}
	if err := out.Close(); err != nil {
		return err
	}
	a.logger.Info("resolved formulas", zap.Int("count", len(results)), zap.String("format", format))
	return a.writeMetrics(reg)
}

type gzipFile struct {
	*gzip.Writer
	under io.Closer
}

func (g *gzipFile) Close() error {
	if err := g.Writer.Close(); err != nil {
		g.under.Close()
		return err
	}
	return g.under.Close()
}

// openOutput returns the file at path, or stdout if path is empty,
// optionally compressed.
func openOutput(stdout io.Writer, path string, compress bool) (io.WriteCloser, error) {
	var w io.WriteCloser = nopCloser{stdout}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("creating output: %w", err)
		}
		w = f
	}
	if compress {
		return &gzipFile{Writer: gzip.NewWriter(w), under: w}, nil
	}
	return w, nil
}
