/*
 * json.go, part of chemform.
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

package chemjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	chem "github.com/rmera/chemform"
	"gonum.org/v1/gonum/spatial/r3"
)

// Structure is a ready-to-serialize container for a chem.Structure.
type Structure struct {
	Formula    string `json:"formula,omitempty"`
	Geometry   string `json:"geometry,omitempty"`
	Provenance string `json:"provenance,omitempty"`
	Valid      bool   `json:"valid,omitempty"`
	Atoms      []Atom `json:"atoms"`
	Bonds      []Bond `json:"bonds"`
}

// Atom is a ready-to-serialize container for an atom.
type Atom struct {
	Element       string   `json:"element"`
	Position      Position `json:"position"`
	Bonds         []int    `json:"bonds,omitempty"`
	Charge        int      `json:"charge,omitempty"`
	Hybridization string   `json:"hybridization,omitempty"`
}

// Bond is a ready-to-serialize container for a bond.
type Bond struct {
	Type   BondType `json:"type"`
	Atoms  []int    `json:"atoms"`
	Length float64  `json:"length"`
}

// Position is a point in space. It is written as a 3-element array, and
// read from either an array or an object with x, y and z.
type Position struct {
	r3.Vec
	set bool
}

func (P Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]float64{P.X, P.Y, P.Z})
}

func (P *Position) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var o struct{ X, Y, Z *float64 }
		if err := json.Unmarshal(data, &o); err != nil {
			return err
		}
		if o.X == nil || o.Y == nil || o.Z == nil {
			return fmt.Errorf("position needs x, y and z")
		}
		P.Vec, P.set = r3.Vec{X: *o.X, Y: *o.Y, Z: *o.Z}, true
		return nil
	}
	var a []float64
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if len(a) != 3 {
		return fmt.Errorf("position has %d components, 3 needed", len(a))
	}
	P.Vec, P.set = r3.Vec{X: a[0], Y: a[1], Z: a[2]}, true
	return nil
}

// BondType is a bond order, read from a word ("double") or a number (2).
type BondType struct {
	chem.BondOrder
}

func (B BondType) MarshalJSON() ([]byte, error) {
	return json.Marshal(B.BondOrder.String())
}

func (B *BondType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var n json.Number
		if err2 := json.Unmarshal(data, &n); err2 != nil {
			return fmt.Errorf("bond type must be a string or a number")
		}
		var err error
		if s, err = parseOrder(n); err != nil {
			return err
		}
	}
	if s == "" {
		return nil
	}
	o, err := chem.ParseBondOrder(s)
	if err != nil {
		return err
	}
	B.BondOrder = o
	return nil
}

// FromStructure returns the serializable form of S.
func FromStructure(S *chem.Structure) *Structure {
	J := &Structure{Formula: S.Formula, Geometry: string(S.Geometry), Provenance: string(S.Provenance), Valid: S.Valid}
	J.Atoms = make([]Atom, S.Len())
	J.Bonds = make([]Bond, S.NBonds())
	coords := S.Coords()
	for i, a := range S.Atoms {
		J.Atoms[i] = Atom{Element: a.Symbol, Position: Position{Vec: coords.Vec(i), set: true}, Charge: a.Charge, Hybridization: a.Hybridization}
	}
	for i, b := range S.Bonds {
		J.Bonds[i] = Bond{Type: BondType{b.Order}, Atoms: []int{b.At1, b.At2}, Length: b.Dist}
		for _, at := range []int{b.At1, b.At2} {
			if at >= 0 && at < len(J.Atoms) {
				J.Atoms[at].Bonds = append(J.Atoms[at].Bonds, i)
			}
		}
	}
	return J
}

// ToStructure checks J and builds a chem.Structure from it. Atoms need an element
// and a finite position. Bonds need a type, two different atoms in range, and a
// positive length. The bonds listed for an atom must exist. An unknown or missing
// geometry becomes chem.Complex, and the provenance is set to prov.
// Errors are of kind chem.ErrSchemaExtraction.
func (J *Structure) ToStructure(prov chem.Provenance) (*chem.Structure, error) {
	fail := func(format string, args ...interface{}) error {
		return chem.NewError(chem.ErrSchemaExtraction, fmt.Sprintf(format, args...), "ToStructure")
	}
	if len(J.Atoms) == 0 {
		return nil, fail("no atoms")
	}
	table := chem.DefaultTable()
	S := chem.NewStructure(J.Formula, prov)
	for i, a := range J.Atoms {
		el := strings.TrimSpace(a.Element)
		if el == "" {
			return nil, fail("atom %d has no element", i)
		}
		if !a.Position.set {
			return nil, fail("atom %d has no position", i)
		}
		for _, c := range []float64{a.Position.X, a.Position.Y, a.Position.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fail("atom %d has a non-finite position", i)
			}
		}
		for _, b := range a.Bonds {
			if b < 0 || b >= len(J.Bonds) {
				return nil, fail("atom %d refers to bond %d, out of range", i, b)
			}
		}
		k := S.AddAtom(el, a.Position.Vec, table.CovRad(el))
		S.Atoms[k].Charge = a.Charge
		S.Atoms[k].Hybridization = a.Hybridization
	}
	for i, b := range J.Bonds {
		if !b.Type.Valid() {
			return nil, fail("bond %d has no type", i)
		}
		if len(b.Atoms) != 2 {
			return nil, fail("bond %d joins %d atoms, 2 needed", i, len(b.Atoms))
		}
		a1, a2 := b.Atoms[0], b.Atoms[1]
		if a1 < 0 || a2 < 0 || a1 >= S.Len() || a2 >= S.Len() {
			return nil, fail("bond %d refers to an atom out of range", i)
		}
		if a1 == a2 {
			return nil, fail("bond %d joins atom %d to itself", i, a1)
		}
		if !(b.Length > 0) || math.IsInf(b.Length, 0) {
			return nil, fail("bond %d has an invalid length %v", i, b.Length)
		}
		S.AddBond(a1, a2, b.Type.BondOrder, b.Length)
	}
	S.Geometry = normalizeGeometry(J.Geometry)
	return S, nil
}

// normalizeGeometry accepts the usual spellings of the geometry names.
func normalizeGeometry(s string) chem.Geometry {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-").Replace(s)
	if g, err := chem.ParseGeometry(s); err == nil {
		return g
	}
	return chem.Complex
}

// Encode writes S as indented JSON to out.
func Encode(out io.Writer, S *chem.Structure) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromStructure(S)); err != nil {
		return fmt.Errorf("chemjson.Encode: %w", err)
	}
	return nil
}

// Decode reads one JSON structure from in. The provenance in the JSON is kept
// if it is one of the chemform provenances, otherwise it is set to external.
func Decode(in io.Reader) (*chem.Structure, error) {
	var J Structure
	if err := json.NewDecoder(in).Decode(&J); err != nil {
		return nil, chem.WrapError(chem.ErrSchemaExtraction, err, "invalid JSON", "Decode")
	}
	prov := chem.Provenance(J.Provenance)
	switch prov {
	case chem.Predefined, chem.External, chem.Synthesized, chem.Fallback:
	default:
		prov = chem.External
	}
	S, err := J.ToStructure(prov)
	if err != nil {
		return nil, err
	}
	S.Valid = J.Valid
	return S, nil
}

// parseOrder turns a numeric bond type, such as 2 or 2.0, into a string.
func parseOrder(n json.Number) (string, error) {
	f, err := n.Float64()
	if err != nil {
		return "", err
	}
	if f != math.Trunc(f) {
		return "", fmt.Errorf("bond type %v is not an integer", f)
	}
	return strconv.Itoa(int(f)), nil
}
