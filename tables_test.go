/*
 * tables_test.go, part of chemform.
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
	"math"
	"testing"
)

func TestDefaultTable(Te *testing.T) {
	T := DefaultTable()
	for _, s := range []string{"H", "C", "N", "O", "F", "S", "P", "Cl", "Br", "I", "Na", "Mg", "Al", "Si", "K", "Ca", "Fe", "Cu", "Zn"} {
		p, ok := T.Lookup(s)
		if !ok {
			Te.Errorf("%s should be in the default table", s)
			continue
		}
		if p.Symbol != s || p.CovRad <= 0 || p.MaxBonds <= 0 || p.Electronegativity <= 0 || len(p.Valences) == 0 {
			Te.Errorf("incomplete data for %s: %+v", s, p)
		}
	}
	if _, ok := T.Lookup("Xx"); ok {
		Te.Error("Xx is not an element")
	}
	if T.CovRad("Xx") != 0 {
		Te.Error("unknown elements should have a zero radius")
	}
	if m := T.Missing(Formula{"Xx": 1, "C": 1, "Qq": 2}); len(m) != 2 || m[0] != "Qq" {
		Te.Errorf("unexpected missing elements %v", m)
	}
	if len(T.Symbols()) != T.Len() {
		Te.Error("Symbols and Len disagree")
	}
}

func TestNewTable(Te *testing.T) {
	if _, err := NewTable(ElementProperties{Symbol: "H"}, ElementProperties{Symbol: "H"}); err == nil {
		Te.Error("repeated symbols should be rejected")
	}
	if _, err := NewTable(ElementProperties{}); err == nil {
		Te.Error("empty symbols should be rejected")
	}
	v := []int{1}
	T, err := NewTable(ElementProperties{Symbol: "H", Valences: v})
	if err != nil {
		Te.Fatal(err)
	}
	v[0] = 5
	if p, _ := T.Lookup("H"); p.Valences[0] != 1 {
		Te.Error("the table should copy its input")
	}
}

func TestBondLengths(Te *testing.T) {
	B := DefaultBondLengths()
	ch, ok := B.Lookup("C", "H")
	hc, ok2 := B.Lookup("H", "C")
	if !ok || !ok2 || ch != hc || ch != 1.09 {
		Te.Errorf("C-H and H-C should be the same entry: %f %f", ch, hc)
	}
	if l := B.Length("Zn", "Cl", DefaultTable()); math.Abs(l-2.24) > 1e-9 {
		Te.Errorf("missing pairs should add the covalent radii, got %f", l)
	}
	if l := B.Length("Xx", "Cl", DefaultTable()); l != 0 {
		Te.Errorf("unknown elements should give 0, got %f", l)
	}
	for _, bad := range []map[string]float64{{"C-H": -1}, {"CH": 1}, {"C-H": 1, "H-C": 1}, {"C-": 1}} {
		if _, err := NewBondLengths(bad); err == nil {
			Te.Errorf("%v should be rejected", bad)
		}
	}
}

func TestBondOrder(Te *testing.T) {
	for in, want := range map[string]BondOrder{"single": Single, "2": Double, "Triple": Triple, "3": Triple} {
		got, err := ParseBondOrder(in)
		if err != nil || got != want {
			Te.Errorf("ParseBondOrder(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBondOrder("4"); err == nil {
		Te.Error("4 is not a bond order")
	}
	b := &Bond{At1: 2, At2: 5}
	if b.Cross(2) != 5 || b.Cross(5) != 2 {
		Te.Error("Cross should return the other atom")
	}
}

func TestStructure(Te *testing.T) {
	mol, _ := DefaultLibrary().Lookup("H2SO4")
	if mol.Hub() != 0 {
		Te.Errorf("sulfur should be the hub, got %d", mol.Hub())
	}
	if mol.Degree(0) != 6 || len(mol.Neighbors(3)) != 2 {
		Te.Errorf("unexpected degree %d or neighbours %v", mol.Degree(0), mol.Neighbors(3))
	}
	if !mol.Census().Equal(Formula{"H": 2, "S": 1, "O": 4}) {
		Te.Errorf("unexpected census %v", mol.Census())
	}
	c := mol.Coords()
	if c.NVecs() != mol.Len() || c.Vec(5) != mol.Atom(5).Pos {
		Te.Error("Coords doesn't match the atoms")
	}
	cp := mol.Copy()
	cp.Atom(0).Symbol = "Se"
	if mol.Atom(0).Symbol != "S" {
		Te.Error("Copy should be deep")
	}
	if NewStructure("", Fallback).Hub() != -1 {
		Te.Error("an empty structure has no hub")
	}
	if _, err := ParseGeometry("square-planar"); err == nil {
		Te.Error("unknown geometries should be rejected")
	}
}
