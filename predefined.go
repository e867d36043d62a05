/*
 * predefined.go, part of chemform.
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
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

//go:embed predefined.yaml
var predefinedYAML []byte

// yamlMolecule and its fields mirror one entry of a library document.
type yamlMolecule struct {
	Formula  string     `yaml:"formula"`
	Name     string     `yaml:"name"`
	Geometry string     `yaml:"geometry"`
	Atoms    []yamlAtom `yaml:"atoms"`
	Bonds    []yamlBond `yaml:"bonds"`
}

type yamlAtom struct {
	Element       string    `yaml:"element"`
	Position      []float64 `yaml:"position"`
	Charge        int       `yaml:"charge"`
	Hybridization string    `yaml:"hybridization"`
}

type yamlBond struct {
	Atoms  []int   `yaml:"atoms"`
	Order  string  `yaml:"order"`
	Length float64 `yaml:"length"`
}

type libEntry struct {
	formula string
	name    string
	mol     *Structure
}

// Library is a read-only collection of hand-specified structures for well-known
// compounds. Lookups return copies, so a Library is safe for concurrent use.
type Library struct {
	entries map[string]*libEntry //keyed by Hill formula
	exact   map[string]*libEntry //keyed by the formula as written in the source
}

// NewLibrary reads a YAML library document from r. Each entry is checked:
// its formula must parse, its atoms must match the formula, its bonds must join
// two different atoms of the entry, and its geometry and bond orders must be known.
func NewLibrary(r io.Reader) (*Library, error) {
	var doc []yamlMolecule
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("NewLibrary: %w", err)
	}
	L := &Library{entries: make(map[string]*libEntry, len(doc)), exact: make(map[string]*libEntry, len(doc))}
	table := DefaultTable()
	for i, m := range doc {
		mol, err := m.structure(table)
		if err != nil {
			return nil, fmt.Errorf("NewLibrary: entry %d (%s): %w", i, m.Formula, err)
		}
		counts, _ := Parse(m.Formula) //already checked by structure.
		key := counts.Hill()
		if _, ok := L.entries[key]; ok {
			return nil, fmt.Errorf("NewLibrary: entry %d: composition %s given twice", i, key)
		}
		e := &libEntry{formula: m.Formula, name: m.Name, mol: mol}
		L.entries[key] = e
		L.exact[m.Formula] = e
	}
	return L, nil
}

func (m yamlMolecule) structure(table *Table) (*Structure, error) {
	counts, err := Parse(m.Formula)
	if err != nil {
		return nil, err
	}
	geo, err := ParseGeometry(m.Geometry)
	if err != nil {
		return nil, err
	}
	mol := NewStructure(m.Formula, Predefined)
	mol.Geometry = geo
	for j, a := range m.Atoms {
		if len(a.Position) != 3 {
			return nil, fmt.Errorf("atom %d has %d coordinates", j, len(a.Position))
		}
		k := mol.AddAtom(a.Element, r3.Vec{X: a.Position[0], Y: a.Position[1], Z: a.Position[2]}, table.CovRad(a.Element))
		mol.Atoms[k].Charge = a.Charge
		mol.Atoms[k].Hybridization = a.Hybridization
	}
	if !mol.Census().Equal(counts) {
		return nil, fmt.Errorf("atoms %s don't match the formula", mol.Census().Hill())
	}
	for j, b := range m.Bonds {
		if len(b.Atoms) != 2 || b.Atoms[0] == b.Atoms[1] {
			return nil, fmt.Errorf("bond %d must join two different atoms", j)
		}
		for _, v := range b.Atoms {
			if v < 0 || v >= mol.Len() {
				return nil, fmt.Errorf("bond %d refers to atom %d, out of range", j, v)
			}
		}
		order, err := ParseBondOrder(b.Order)
		if err != nil {
			return nil, fmt.Errorf("bond %d: %w", j, err)
		}
		if b.Length <= 0 {
			return nil, fmt.Errorf("bond %d has non-positive length", j)
		}
		mol.AddBond(b.Atoms[0], b.Atoms[1], order, b.Length)
	}
	return mol, nil
}

// DefaultLibrary returns the shared library of structures embedded in the package.
func DefaultLibrary() *Library {
	return defaultLibrary
}

var defaultLibrary = func() *Library {
	L, err := NewLibrary(bytes.NewReader(predefinedYAML))
	if err != nil {
		panic(err.Error()) //the embedded data is part of the package.
	}
	return L
}()

func (L *Library) find(formula string) (*libEntry, bool) {
	if counts, err := Parse(formula); err == nil {
		if e, ok := L.entries[counts.Hill()]; ok {
			return e, true
		}
	}
	e, ok := L.exact[formula]
	return e, ok
}

// Lookup returns a copy of the structure for formula, if the library has it.
// The formula is compared by composition, so "OH2" finds water. The returned
// structure has the predefined provenance and formula as its formula.
func (L *Library) Lookup(formula string) (*Structure, bool) {
	e, ok := L.find(formula)
	if !ok {
		return nil, false
	}
	mol := e.mol.Copy()
	mol.Formula = formula
	mol.Provenance = Predefined
	return mol, true
}

// Name returns the common name of the compound with the given formula.
func (L *Library) Name(formula string) (string, bool) {
	e, ok := L.find(formula)
	if !ok {
		return "", false
	}
	return e.name, true
}

// Formulas returns the formulas in the library, as written in its source, sorted.
func (L *Library) Formulas() []string {
	ret := make([]string, 0, len(L.exact))
	for k := range L.exact {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Len returns the number of structures in the library.
func (L *Library) Len() int {
	return len(L.entries)
}
