/*
 * formula_test.go, part of chemform.
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
)

func TestParse(Te *testing.T) {
	cases := []struct {
		in   string
		want Formula
	}{
		{"H2O", Formula{"H": 2, "O": 1}},
		{"Ca(OH)2", Formula{"Ca": 1, "O": 2, "H": 2}},
		{"Fe2(SO4)3", Formula{"Fe": 2, "S": 3, "O": 12}},
		{"CH3COOH", Formula{"C": 2, "H": 4, "O": 2}},
		{"K4(Fe(CN)6)", Formula{"K": 4, "Fe": 1, "C": 6, "N": 6}},
		{"((CH3)3C)2O", Formula{"C": 8, "H": 18, "O": 1}},
		{"Xx", Formula{"Xx": 1}},
		{"NaCl", Formula{"Na": 1, "Cl": 1}},
		{"C12H22O11", Formula{"C": 12, "H": 22, "O": 11}},
	}
	for _, c := range cases {
		got, err := Parse(c.in)
		if err != nil {
			Te.Errorf("Parse(%q): unexpected error %v", c.in, err)
			continue
		}
		if !got.Equal(c.want) {
			Te.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseErrors(Te *testing.T) {
	for _, in := range []string{"", "H2O(", "Xx0", "H2O)", "()", "(H2)0", "2H", "h2o", "H-O", "H2 O", "Na+", "((H)"} {
		_, err := Parse(in)
		if err == nil {
			Te.Errorf("Parse(%q) should fail", in)
			continue
		}
		if !errors.Is(err, ErrParse) {
			Te.Errorf("Parse(%q): error %v is not a parse error", in, err)
		}
	}
}

func TestParseOverflow(Te *testing.T) {
	_, err := Parse("H2147483647H2")
	if !errors.Is(err, ErrParse) {
		Te.Errorf("overflowing counts should be a parse error, got %v", err)
	}
	f, err := Parse("H" + "2147483647")
	if !errors.Is(err, ErrParse) {
		Te.Errorf("Parse should refuse %d atoms, got %v %v", math.MaxInt32, f, err)
	}
}

func TestParseMaxAtoms(Te *testing.T) {
	f, err := Parse("CH9999")
	if err != nil || f.Total() != MaxAtoms {
		Te.Errorf("%d atoms should be accepted, got %v %v", MaxAtoms, f, err)
	}
	for _, in := range []string{"CH10000", "H10001", "(CH2)5001", "(H10)1001", "C5000H5000O"} {
		if _, err := Parse(in); !errors.Is(err, ErrParse) {
			Te.Errorf("Parse(%q) should fail with a parse error, got %v", in, err)
		}
	}
	if _, err := ParseCounts("C=5000,H=5000"); err != nil {
		Te.Errorf("ParseCounts should accept %d atoms, got %v", MaxAtoms, err)
	}
	for _, in := range []string{"C=1,H=10000", "H=5000,H=5001", "H=2147483647"} {
		if _, err := ParseCounts(in); !errors.Is(err, ErrParse) {
			Te.Errorf("ParseCounts(%q) should fail with a parse error, got %v", in, err)
		}
	}
}

func TestParseCounts(Te *testing.T) {
	f, err := ParseCounts(" C=1, H=4 ,H=2")
	if err != nil {
		Te.Fatal(err)
	}
	if !f.Equal(Formula{"C": 1, "H": 6}) {
		Te.Errorf("unexpected counts %v", f)
	}
	for _, in := range []string{"", "C", "C=0", "C=-1", "c=1", "C=x", "Abc=1"} {
		if _, err := ParseCounts(in); !errors.Is(err, ErrParse) {
			Te.Errorf("ParseCounts(%q) should fail with a parse error, got %v", in, err)
		}
	}
}

func TestHill(Te *testing.T) {
	cases := map[string]string{
		"H2O":       "H2O",
		"CH4":       "CH4",
		"H4C":       "CH4",
		"NH3":       "H3N",
		"H2SO4":     "H2O4S",
		"Fe2(SO4)3": "Fe2O12S3",
		"CO2":       "CO2",
		"ClCH3":     "CH3Cl",
	}
	for in, want := range cases {
		f, err := Parse(in)
		if err != nil {
			Te.Fatal(err)
		}
		if got := f.Hill(); got != want {
			Te.Errorf("Hill of %s = %s, want %s", in, got, want)
		}
	}
	if FormulaFor("", Formula{"O": 1, "H": 2}) != "H2O" || FormulaFor("OH2", nil) != "OH2" {
		Te.Error("FormulaFor doesn't prefer the given formula")
	}
}

func TestMass(Te *testing.T) {
	f, _ := Parse("H2O")
	m, err := f.Mass(DefaultTable())
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(m-18.015) > 0.01 {
		Te.Errorf("water should weight about 18.015, got %f", m)
	}
	f, _ = Parse("XxH")
	if _, err := f.Mass(DefaultTable()); !errors.Is(err, ErrUnresolvedElement) {
		Te.Errorf("unknown elements should give an unresolved element error, got %v", err)
	}
}

func TestErrorDecoration(Te *testing.T) {
	_, err := Parse("H2O(")
	var cerr *CError
	if !errors.As(err, &cerr) {
		Te.Fatalf("expected a *CError, got %T", err)
	}
	deco := cerr.Decorate("")
	if len(deco) == 0 || deco[len(deco)-1] != "Parse" {
		Te.Errorf("the error should be decorated with Parse, got %v", deco)
	}
	if cerr.Kind() != ErrParse || cerr.Message() == "" {
		Te.Errorf("unexpected kind %v or message %q", cerr.Kind(), cerr.Message())
	}
}
