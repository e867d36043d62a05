/*
 * root.go, part of chemform.
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

// Package cli implements the chemform command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	chem "github.com/rmera/chemform"
	"github.com/rmera/chemform/internal/config"
	"github.com/rmera/chemform/internal/logging"
	"github.com/rmera/chemform/pipeline"
	"github.com/rmera/chemform/resolver"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build-time variables, set with ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

// app carries what the subcommands share. It is filled before any of them runs.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand returns the chemform command with all its subcommands.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}
	cmd := &cobra.Command{
		Use:   "chemform",
		Short: "chemform builds 3D molecular structures from chemical formulas",
		Long: "chemform turns a chemical formula into a three-dimensional structure, taken from\n" +
			"a library of known molecules, from an external model, or built with VSEPR rules.",
		Version: fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd, opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "config file path")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error), overrides the config")
	cmd.AddCommand(newResolveCmd(a), newParseCmd(), newElementsCmd(), newLibraryCmd(a))
	return cmd
}

func (a *app) init(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// library returns the configured library, or the built-in one.
func (a *app) library() (*chem.Library, error) {
	if a.cfg.Library.Path == "" {
		return chem.DefaultLibrary(), nil
	}
	f, err := os.Open(a.cfg.Library.Path)
	if err != nil {
		return nil, fmt.Errorf("opening the library: %w", err)
	}
	defer f.Close()
	L, err := chem.NewLibrary(f)
	if err != nil {
		return nil, fmt.Errorf("reading the library %s: %w", a.cfg.Library.Path, err)
	}
	return L, nil
}

// pipeline builds the resolution pipeline from the configuration. Its metrics
// are registered in the returned registry.
func (a *app) pipeline(external bool) (*pipeline.Pipeline, *prometheus.Registry, error) {
	lib, err := a.library()
	if err != nil {
		return nil, nil, err
	}
	reg := prometheus.NewRegistry()
	m, err := pipeline.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}
	opts := []pipeline.Option{pipeline.WithLibrary(lib), pipeline.WithLogger(a.logger), pipeline.WithMetrics(m)}
	if external {
		rc := a.cfg.Resolver
		if rc.APIKey == "" && rc.BaseURL == "" {
			return nil, nil, fmt.Errorf("the external resolver needs resolver.api_key or resolver.base_url")
		}
		R := resolver.NewOpenAI(resolver.OpenAIConfig{BaseURL: rc.BaseURL, APIKey: rc.APIKey, Model: rc.Model}, a.logger.Named("resolver"))
		opts = append(opts, pipeline.WithResolver(R), pipeline.WithResolverTimeout(rc.Timeout))
	}
	return pipeline.New(opts...), reg, nil
}

// writeMetrics writes the metrics in reg to the configured text file, if any.
func (a *app) writeMetrics(reg prometheus.Gatherer) error {
	if a.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.cfg.Metrics.Textfile, reg); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// Execute runs the chemform command.
func Execute() error {
	return NewRootCommand().Execute()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
