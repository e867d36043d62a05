/*
 * vsepr_test.go, part of chemform.
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
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func synth(Te *testing.T, formula string) *Structure {
	Te.Helper()
	counts, err := Parse(formula)
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := NewSynthesizer(nil, nil).Synthesize(counts)
	if err != nil {
		Te.Fatalf("Synthesize(%s): %v", formula, err)
	}
	return mol
}

// peripheralAngles returns the angles, in degrees, between every pair of atoms
// bonded to the first atom of mol.
func peripheralAngles(mol *Structure) []float64 {
	var ret []float64
	for i := 1; i < mol.Len(); i++ {
		for j := i + 1; j < mol.Len(); j++ {
			ret = append(ret, Rad2Deg(BondAngle(mol, i, 0, j)))
		}
	}
	return ret
}

func TestSynthesizeTetrahedral(Te *testing.T) {
	mol := synth(Te, "CH4")
	if mol.Geometry != Tetrahedral || mol.Provenance != Synthesized {
		Te.Errorf("unexpected geometry %s or provenance %s", mol.Geometry, mol.Provenance)
	}
	angles := peripheralAngles(mol)
	if len(angles) != 6 {
		Te.Fatalf("expected 6 angles, got %d", len(angles))
	}
	for _, a := range angles {
		if math.Abs(a-109.47) > 1 {
			Te.Errorf("tetrahedral angle off: %f", a)
		}
	}
	for _, b := range mol.Bonds {
		if b.Order != Single || math.Abs(b.Dist-1.09) > 1e-9 {
			Te.Errorf("unexpected bond %+v", b)
		}
		if d := r3.Norm(r3.Sub(mol.Atom(b.At1).Pos, mol.Atom(b.At2).Pos)); math.Abs(d-b.Dist) > 1e-9 {
			Te.Errorf("atoms are %f apart but the bond length is %f", d, b.Dist)
		}
	}
	if mol.Atom(0).Symbol != "C" || mol.Atom(0).Hybridization != "sp3" || r3.Norm(mol.Atom(0).Pos) != 0 {
		Te.Errorf("the hub should be an sp3 carbon at the origin, got %+v", mol.Atom(0))
	}
}

func TestSynthesizeLayouts(Te *testing.T) {
	cases := []struct {
		formula string
		geo     Geometry
		angle   float64 //smallest angle between peripheral atoms, degrees
	}{
		{"H", Monatomic, 0},
		{"HCl", Linear, 0},
		{"CO2", Linear, 180},
		{"BF3", TrigonalPlanar, 120},
		{"PCl5", TrigonalBipyramidal, 90},
		{"SF6", Octahedral, 90},
		{"IF7", Complex, 0},
	}
	table := DefaultTable()
	for _, c := range cases {
		counts, _ := Parse(c.formula)
		if len(table.Missing(counts)) > 0 {
			continue
		}
		mol := synth(Te, c.formula)
		if mol.Geometry != c.geo {
			Te.Errorf("%s: geometry %s, want %s", c.formula, mol.Geometry, c.geo)
		}
		if mol.Len() != counts.Total() || mol.NBonds() != counts.Total()-1 {
			Te.Errorf("%s: %d atoms and %d bonds", c.formula, mol.Len(), mol.NBonds())
		}
		if c.angle == 0 {
			continue
		}
		min := 360.0
		for _, a := range peripheralAngles(mol) {
			min = math.Min(min, a)
		}
		if math.Abs(min-c.angle) > 0.01 {
			Te.Errorf("%s: smallest angle %f, want %f", c.formula, min, c.angle)
		}
	}
}

func TestSynthesizeManyPeripherals(Te *testing.T) {
	mol := synth(Te, "C(H)12")
	if mol.Geometry != Complex || mol.Len() != 13 {
		Te.Fatalf("unexpected structure %s with %d atoms", mol.Geometry, mol.Len())
	}
	for i := 1; i < mol.Len(); i++ {
		for j := i + 1; j < mol.Len(); j++ {
			if d := r3.Norm(r3.Sub(mol.Atom(i).Pos, mol.Atom(j).Pos)); d < 0.3 {
				Te.Errorf("atoms %d and %d overlap (%f A)", i, j, d)
			}
		}
	}
}

func TestSynthesizeFallbackLength(Te *testing.T) {
	//No Zn-Cl entry in the bond-length table, so the covalent radii are used.
	mol := synth(Te, "ZnCl2")
	want := DefaultTable().CovRad("Zn") + DefaultTable().CovRad("Cl")
	for _, b := range mol.Bonds {
		if math.Abs(b.Dist-want) > 1e-9 {
			Te.Errorf("bond length %f, want %f", b.Dist, want)
		}
	}
}

func TestSynthesizeErrors(Te *testing.T) {
	s := NewSynthesizer(nil, nil)
	if _, err := s.Synthesize(Formula{"Xx": 1, "H": 1}); !errors.Is(err, ErrUnresolvedElement) {
		Te.Errorf("expected an unresolved element error, got %v", err)
	}
	if _, err := s.Synthesize(Formula{}); !errors.Is(err, ErrAmbiguousStructure) {
		Te.Errorf("expected an ambiguous structure error, got %v", err)
	}
}

func TestSynthesizeDeterministic(Te *testing.T) {
	a := synth(Te, "Fe2(SO4)3")
	b := synth(Te, "Fe2(SO4)3")
	for i := range a.Atoms {
		if *a.Atoms[i] != *b.Atoms[i] {
			Te.Errorf("atom %d differs: %+v %+v", i, a.Atoms[i], b.Atoms[i])
		}
	}
}

func TestCollinear(Te *testing.T) {
	counts := Formula{"Xx": 1, "C": 1, "H": 1}
	mol, err := Collinear("", counts, nil, nil)
	if err != nil {
		Te.Fatal(err)
	}
	if mol.Provenance != Fallback || mol.Geometry != Linear || mol.Formula != "CHXx" {
		Te.Errorf("unexpected structure %s %s %s", mol.Provenance, mol.Geometry, mol.Formula)
	}
	if mol.Len() != 3 || mol.NBonds() != 2 {
		Te.Fatalf("expected 3 atoms and 2 bonds, got %d and %d", mol.Len(), mol.NBonds())
	}
	//C, H, Xx in that order.
	if mol.Atom(1).Pos.X != 1.09 || math.Abs(mol.Atom(2).Pos.X-1.09-DefaultSpacing) > 1e-9 {
		Te.Errorf("unexpected spacing %v %v", mol.Atom(1).Pos, mol.Atom(2).Pos)
	}
	if !Validate(mol, counts, nil).Passed {
		Te.Error("a linear structure should still pass validation")
	}
	one, _ := Collinear("He", Formula{"He": 1}, nil, nil)
	if one.Geometry != Monatomic {
		Te.Errorf("a single atom should be monatomic, got %s", one.Geometry)
	}
	if _, err := Collinear("", Formula{}, nil, nil); !errors.Is(err, ErrAmbiguousStructure) {
		Te.Errorf("expected an ambiguous structure error, got %v", err)
	}
}
