/*
 * atomicdata.go, part of chemform.
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
	"fmt"
	"sort"
)

// TableVersion identifies the data set returned by DefaultTable.
// It changes whenever a value in the default table changes.
const TableVersion = "2024.1"

// ElementProperties contains the per-element data used to build structures.
// Values are never modified after a Table is built.
type ElementProperties struct {
	Symbol            string
	Number            int     //atomic number
	Mass              float64 //g/mol
	Electronegativity float64 //Pauling scale
	CovRad            float64 //covalent radius, A
	VdwRad            float64 //van der Waals radius, A
	Valences          []int   //preferred valences, most common first
	MaxBonds          int     //maximum sum of bond orders
	Geometries        []Geometry
}

// Table is a read-only registry of element properties.
// A Table is safe for concurrent use, since nothing modifies it after creation.
type Table struct {
	props   map[string]*ElementProperties
	symbols []string
}

// NewTable builds a table from the given properties. It returns an
// error if a symbol is empty or repeated. The properties are copied.
func NewTable(props ...ElementProperties) (*Table, error) {
	t := &Table{props: make(map[string]*ElementProperties, len(props))}
	for i, v := range props {
		if v.Symbol == "" {
			return nil, fmt.Errorf("NewTable: element %d has no symbol", i)
		}
		if _, ok := t.props[v.Symbol]; ok {
			return nil, fmt.Errorf("NewTable: element %s given twice", v.Symbol)
		}
		p := v
		p.Valences = append([]int(nil), v.Valences...)
		p.Geometries = append([]Geometry(nil), v.Geometries...)
		t.props[v.Symbol] = &p
		t.symbols = append(t.symbols, v.Symbol)
	}
	sort.Strings(t.symbols)
	return t, nil
}

// Lookup returns the properties for symbol, and whether the symbol is in the table.
// The returned value must not be modified.
func (T *Table) Lookup(symbol string) (*ElementProperties, bool) {
	p, ok := T.props[symbol]
	return p, ok
}

// CovRad returns the covalent radius of symbol or 0 if the symbol is not in the table.
func (T *Table) CovRad(symbol string) float64 {
	if p, ok := T.props[symbol]; ok {
		return p.CovRad
	}
	return 0
}

// Len returns the number of elements in the table.
func (T *Table) Len() int {
	return len(T.symbols)
}

// Symbols returns the symbols in the table, sorted alphabetically.
func (T *Table) Symbols() []string {
	return append([]string(nil), T.symbols...)
}

// Missing returns, sorted, the symbols of counts that are not in the table.
func (T *Table) Missing(counts Formula) []string {
	var ret []string
	for _, s := range counts.Symbols() {
		if _, ok := T.props[s]; !ok {
			ret = append(ret, s)
		}
	}
	return ret
}

// DefaultTable returns the process-wide element table.
func DefaultTable() *Table {
	return defaultTable
}

var defaultTable = mustTable(defaultElements...)

func mustTable(props ...ElementProperties) *Table {
	t, err := NewTable(props...)
	if err != nil {
		panic(err.Error()) //the default data is hardcoded, so this is a programming error.
	}
	return t
}

//Covalent radii from Cordero et al., 2008 (DOI:10.1039/B801115J), high spin for Mn, Fe and Co.
//van der Waals radii from 10.1021/j100785a001 and 10.1021/jp8111556,
//metal radii from 10.1023/A:1011625728803
//Electronegativities in the Pauling scale.
//MaxBonds counts bond orders, and allows for expanded octets/coordination where common.
var defaultElements = []ElementProperties{
	{Symbol: "H", Number: 1, Mass: 1.008, Electronegativity: 2.20, CovRad: 0.31, VdwRad: 1.10, Valences: []int{1}, MaxBonds: 1, Geometries: []Geometry{Linear}},
	{Symbol: "Li", Number: 3, Mass: 6.94, Electronegativity: 0.98, CovRad: 1.28, VdwRad: 1.81, Valences: []int{1}, MaxBonds: 4, Geometries: []Geometry{Linear, Tetrahedral}},
	{Symbol: "Be", Number: 4, Mass: 9.012, Electronegativity: 1.57, CovRad: 0.96, VdwRad: 1.53, Valences: []int{2}, MaxBonds: 4, Geometries: []Geometry{Linear, Tetrahedral}},
	{Symbol: "B", Number: 5, Mass: 10.81, Electronegativity: 2.04, CovRad: 0.84, VdwRad: 1.92, Valences: []int{3}, MaxBonds: 4, Geometries: []Geometry{TrigonalPlanar, Tetrahedral}},
	{Symbol: "C", Number: 6, Mass: 12.011, Electronegativity: 2.55, CovRad: 0.76, VdwRad: 1.70, Valences: []int{4}, MaxBonds: 4, Geometries: []Geometry{Tetrahedral, TrigonalPlanar, Linear}},
	{Symbol: "N", Number: 7, Mass: 14.007, Electronegativity: 3.04, CovRad: 0.71, VdwRad: 1.55, Valences: []int{3, 5}, MaxBonds: 4, Geometries: []Geometry{TrigonalPyramidal, TrigonalPlanar, Linear}},
	{Symbol: "O", Number: 8, Mass: 15.999, Electronegativity: 3.44, CovRad: 0.66, VdwRad: 1.52, Valences: []int{2}, MaxBonds: 3, Geometries: []Geometry{Bent, Linear}},
	{Symbol: "F", Number: 9, Mass: 18.998, Electronegativity: 3.98, CovRad: 0.57, VdwRad: 1.47, Valences: []int{1}, MaxBonds: 1, Geometries: []Geometry{Linear}},
	{Symbol: "Na", Number: 11, Mass: 22.99, Electronegativity: 0.93, CovRad: 1.66, VdwRad: 2.27, Valences: []int{1}, MaxBonds: 6, Geometries: []Geometry{Linear, Octahedral}},
	{Symbol: "Mg", Number: 12, Mass: 24.305, Electronegativity: 1.31, CovRad: 1.41, VdwRad: 1.73, Valences: []int{2}, MaxBonds: 6, Geometries: []Geometry{Linear, Octahedral}},
	{Symbol: "Al", Number: 13, Mass: 26.982, Electronegativity: 1.61, CovRad: 1.21, VdwRad: 1.84, Valences: []int{3}, MaxBonds: 6, Geometries: []Geometry{TrigonalPlanar, Tetrahedral, Octahedral}},
	{Symbol: "Si", Number: 14, Mass: 28.085, Electronegativity: 1.90, CovRad: 1.11, VdwRad: 2.10, Valences: []int{4}, MaxBonds: 6, Geometries: []Geometry{Tetrahedral, Octahedral}},
	{Symbol: "P", Number: 15, Mass: 30.974, Electronegativity: 2.19, CovRad: 1.07, VdwRad: 1.80, Valences: []int{3, 5}, MaxBonds: 6, Geometries: []Geometry{TrigonalPyramidal, Tetrahedral, TrigonalBipyramidal}},
	{Symbol: "S", Number: 16, Mass: 32.06, Electronegativity: 2.58, CovRad: 1.05, VdwRad: 1.80, Valences: []int{2, 4, 6}, MaxBonds: 6, Geometries: []Geometry{Bent, Tetrahedral, Octahedral}},
	{Symbol: "Cl", Number: 17, Mass: 35.45, Electronegativity: 3.16, CovRad: 1.02, VdwRad: 1.75, Valences: []int{1, 3, 5, 7}, MaxBonds: 7, Geometries: []Geometry{Linear, Tetrahedral}},
	{Symbol: "K", Number: 19, Mass: 39.098, Electronegativity: 0.82, CovRad: 2.03, VdwRad: 2.75, Valences: []int{1}, MaxBonds: 6, Geometries: []Geometry{Linear, Octahedral}},
	{Symbol: "Ca", Number: 20, Mass: 40.078, Electronegativity: 1.00, CovRad: 1.76, VdwRad: 2.31, Valences: []int{2}, MaxBonds: 8, Geometries: []Geometry{Linear, Octahedral}},
	{Symbol: "Cr", Number: 24, Mass: 51.996, Electronegativity: 1.66, CovRad: 1.39, VdwRad: 1.97, Valences: []int{3, 6}, MaxBonds: 6, Geometries: []Geometry{Octahedral, Tetrahedral}},
	{Symbol: "Mn", Number: 25, Mass: 54.938, Electronegativity: 1.55, CovRad: 1.61, VdwRad: 1.96, Valences: []int{2, 4, 7}, MaxBonds: 7, Geometries: []Geometry{Octahedral, Tetrahedral}},
	{Symbol: "Fe", Number: 26, Mass: 55.845, Electronegativity: 1.83, CovRad: 1.52, VdwRad: 1.96, Valences: []int{2, 3}, MaxBonds: 6, Geometries: []Geometry{Octahedral, Tetrahedral}},
	{Symbol: "Co", Number: 27, Mass: 58.933, Electronegativity: 1.88, CovRad: 1.50, VdwRad: 1.95, Valences: []int{2, 3}, MaxBonds: 6, Geometries: []Geometry{Octahedral, Tetrahedral}},
	{Symbol: "Cu", Number: 29, Mass: 63.546, Electronegativity: 1.90, CovRad: 1.32, VdwRad: 2.00, Valences: []int{2, 1}, MaxBonds: 6, Geometries: []Geometry{Tetrahedral, Octahedral, Linear}},
	{Symbol: "Zn", Number: 30, Mass: 65.38, Electronegativity: 1.65, CovRad: 1.22, VdwRad: 2.02, Valences: []int{2}, MaxBonds: 6, Geometries: []Geometry{Tetrahedral, Octahedral}},
	{Symbol: "Se", Number: 34, Mass: 78.971, Electronegativity: 2.55, CovRad: 1.20, VdwRad: 1.90, Valences: []int{2, 4, 6}, MaxBonds: 6, Geometries: []Geometry{Bent, Tetrahedral}},
	{Symbol: "Br", Number: 35, Mass: 79.904, Electronegativity: 2.96, CovRad: 1.20, VdwRad: 1.83, Valences: []int{1, 3, 5}, MaxBonds: 5, Geometries: []Geometry{Linear}},
	{Symbol: "I", Number: 53, Mass: 126.904, Electronegativity: 2.66, CovRad: 1.39, VdwRad: 1.98, Valences: []int{1, 3, 5, 7}, MaxBonds: 7, Geometries: []Geometry{Linear, TrigonalBipyramidal, Octahedral}},
}
