/*
 * info.go, part of chemform.
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
	"strings"
	"text/tabwriter"

	chem "github.com/rmera/chemform"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FORMULA...",
		Short: "Show the composition of each formula",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := chem.DefaultTable()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FORMULA\tHILL\tATOMS\tMASS")
			for _, f := range args {
				counts, err := chem.Parse(f)
				if err != nil {
					return err
				}
				mass := "?"
				if m, err := counts.Mass(table); err == nil {
					mass = fmt.Sprintf("%.3f", m)
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", f, counts.Hill(), counts.Total(), mass)
			}
			return tw.Flush()
		},
	}
}

func newElementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "elements",
		Short: "List the elements chemform knows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := chem.DefaultTable()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SYMBOL\tZ\tMASS\tEN\tCOVRAD\tMAXBONDS\tVALENCES")
			for _, s := range table.Symbols() {
				p, _ := table.Lookup(s)
				vals := make([]string, len(p.Valences))
				for i, v := range p.Valences {
					vals[i] = fmt.Sprint(v)
				}
				fmt.Fprintf(tw, "%s\t%d\t%.3f\t%.2f\t%.2f\t%d\t%s\n", p.Symbol, p.Number, p.Mass,
					p.Electronegativity, p.CovRad, p.MaxBonds, strings.Join(vals, ","))
			}
			fmt.Fprintf(tw, "\n%d elements, table version %s\n", table.Len(), chem.TableVersion)
			return tw.Flush()
		},
	}
}

func newLibraryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "List the predefined structures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FORMULA\tNAME\tATOMS\tGEOMETRY")
			for _, f := range lib.Formulas() {
				S, _ := lib.Lookup(f)
				name, _ := lib.Name(f)
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", f, name, S.Len(), S.Geometry)
			}
			return tw.Flush()
		},
	}
}
