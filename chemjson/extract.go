/*
 * extract.go, part of chemform.
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
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	chem "github.com/rmera/chemform"
)

// MaxCandidates is the largest number of places in a text where Extract
// will try to decode a structure.
const MaxCandidates = 512

var jsonFenceRe = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*(.*?)\\s*```")

// Extract finds the first structure embedded in text and returns it, with the
// external provenance. Fenced code blocks are tried first, then every '{' in
// the text, in order, so a structure wrapped in another object is also found.
// A candidate is a structure only if it passes all the checks of ToStructure.
// If no candidate does, Extract returns an error of kind chem.ErrSchemaExtraction,
// explaining why the most promising candidate (the first one with atoms) failed.
func Extract(text string) (*chem.Structure, error) {
	var firsterr error
	tried := 0
	try := func(s string) *chem.Structure {
		tried++
		S, err := decodeCandidate(s)
		if err != nil {
			if firsterr == nil && !errors.Is(err, errNotCandidate) {
				firsterr = err
			}
			return nil
		}
		return S
	}
	for _, m := range jsonFenceRe.FindAllStringSubmatch(text, -1) {
		if S := try(m[1]); S != nil {
			return S, nil
		}
	}
	for i := 0; i < len(text) && tried < MaxCandidates; i++ {
		j := strings.IndexByte(text[i:], '{')
		if j < 0 {
			break
		}
		i += j
		if S := try(text[i:]); S != nil {
			return S, nil
		}
	}
	if firsterr != nil {
		return nil, chem.WrapError(chem.ErrSchemaExtraction, firsterr, "no valid structure in the text", "Extract")
	}
	return nil, chem.NewError(chem.ErrSchemaExtraction, "no structure found in the text", "Extract")
}

var errNotCandidate = errors.New("not a structure candidate")

// decodeCandidate decodes the first JSON value of s, ignoring what follows it.
// It returns errNotCandidate if the value is not an object with atoms.
func decodeCandidate(s string) (*chem.Structure, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, errNotCandidate
	}
	if !hasKey(raw, "atoms") {
		return nil, errNotCandidate
	}
	var J Structure
	dec = json.NewDecoder(strings.NewReader(s))
	if err := dec.Decode(&J); err != nil {
		return nil, chem.WrapError(chem.ErrSchemaExtraction, err, "malformed structure", "decodeCandidate")
	}
	return J.ToStructure(chem.External)
}

// hasKey compares keys the way encoding/json matches them to struct fields.
func hasKey(m map[string]json.RawMessage, key string) bool {
	for k := range m {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
