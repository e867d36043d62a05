/*
 * formula.go, part of chemform.
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
	"sort"
	"strconv"
	"strings"
)

// Formula maps element symbols to their (positive) number of atoms.
type Formula map[string]int

// Total returns the total number of atoms.
func (F Formula) Total() int {
	t := 0
	for _, v := range F {
		t += v
	}
	return t
}

// Symbols returns the elements in F, sorted alphabetically.
func (F Formula) Symbols() []string {
	ret := make([]string, 0, len(F))
	for k := range F {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Copy returns a copy of F.
func (F Formula) Copy() Formula {
	ret := make(Formula, len(F))
	for k, v := range F {
		ret[k] = v
	}
	return ret
}

// Equal returns true if both formulas have the same elements with the same counts.
func (F Formula) Equal(G Formula) bool {
	if len(F) != len(G) {
		return false
	}
	for k, v := range F {
		if G[k] != v {
			return false
		}
	}
	return true
}

// Hill returns F in Hill notation: C first, then H, then the other elements
// alphabetically. Without carbon, all elements go alphabetically.
func (F Formula) Hill() string {
	var b strings.Builder
	write := func(s string) {
		b.WriteString(s)
		if F[s] > 1 {
			b.WriteString(strconv.Itoa(F[s]))
		}
	}
	_, carbon := F["C"]
	if carbon {
		write("C")
		if _, ok := F["H"]; ok {
			write("H")
		}
	}
	for _, s := range F.Symbols() {
		if carbon && (s == "C" || s == "H") {
			continue
		}
		write(s)
	}
	return b.String()
}

func (F Formula) String() string {
	return F.Hill()
}

// Mass returns the molar mass of F in g/mol, and an error if an
// element is not in table.
func (F Formula) Mass(table *Table) (float64, error) {
	m := 0.0
	for _, s := range F.Symbols() {
		p, ok := table.Lookup(s)
		if !ok {
			return 0, errorf(ErrUnresolvedElement, "Mass", "element %s not in the element table", s)
		}
		m += p.Mass * float64(F[s])
	}
	return m, nil
}

// expand returns one symbol per atom, elements in alphabetical order.
func (F Formula) expand() []string {
	ret := make([]string, 0, F.Total())
	for _, s := range F.Symbols() {
		for i := 0; i < F[s]; i++ {
			ret = append(ret, s)
		}
	}
	return ret
}

// Parse turns a formula such as "Fe2(SO4)3" into element counts.
// Parenthesized groups can be nested, and are multiplied by the number that
// immediately follows them. The same element appearing several times adds up.
// Parse only checks syntax, the symbols are not looked up in any table.
// It returns an error of kind ErrParse for an empty string, characters other
// than letters, digits and parentheses, unbalanced or empty groups, a token
// not starting with an uppercase letter, a zero multiplier, or more than
// MaxAtoms atoms in total.
func Parse(formula string) (Formula, error) {
	if formula == "" {
		return nil, errorf(ErrParse, "Parse", "empty formula")
	}
	for i, r := range formula {
		if !isFormulaRune(r) {
			return nil, errorf(ErrParse, "Parse", "invalid character %q at position %d", r, i)
		}
	}
	p := &formulaParser{s: formula}
	counts, err := p.group(0)
	if err != nil {
		return nil, errDecorate(err, "Parse")
	}
	if p.pos < len(p.s) { //can only be a closing parenthesis.
		return nil, errorf(ErrParse, "Parse", "unmatched ')' at position %d", p.pos)
	}
	if err := checkSize(counts); err != nil {
		return nil, errDecorate(err, "Parse")
	}
	return counts, nil
}

// MaxAtoms is the largest number of atoms a formula or composition may describe.
const MaxAtoms = 10000

// checkSize fails if counts adds up to more than MaxAtoms atoms.
func checkSize(counts Formula) error {
	total := 0
	for _, n := range counts {
		total += n
		if n > MaxAtoms || total > MaxAtoms {
			return errorf(ErrParse, "checkSize", "more than %d atoms", MaxAtoms)
		}
	}
	return nil
}

func isFormulaRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '(' || r == ')'
}

// formulaParser is a recursive-descent parser over a formula string
// already known to contain only valid characters.
type formulaParser struct {
	s   string
	pos int
}

// group parses a sequence of element tokens and parenthesized groups, until
// the end of the string or an unmatched ')', which is not consumed.
func (p *formulaParser) group(depth int) (Formula, error) {
	counts := make(Formula)
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		switch {
		case c == '(':
			open := p.pos
			p.pos++
			sub, err := p.group(depth + 1)
			if err != nil {
				return nil, err
			}
			if p.pos >= len(p.s) {
				return nil, errorf(ErrParse, "group", "unmatched '(' at position %d", open)
			}
			p.pos++ //the ')'
			if len(sub) == 0 {
				return nil, errorf(ErrParse, "group", "empty group at position %d", open)
			}
			mult, err := p.multiplier()
			if err != nil {
				return nil, err
			}
			for k, v := range sub {
				if err := addCount(counts, k, v, mult); err != nil {
					return nil, err
				}
			}
		case c == ')':
			if depth == 0 {
				return nil, errorf(ErrParse, "group", "unmatched ')' at position %d", p.pos)
			}
			return counts, nil
		case c >= 'A' && c <= 'Z':
			sym := p.s[p.pos : p.pos+1]
			p.pos++
			if p.pos < len(p.s) && p.s[p.pos] >= 'a' && p.s[p.pos] <= 'z' {
				sym = p.s[p.pos-1 : p.pos+1]
				p.pos++
			}
			mult, err := p.multiplier()
			if err != nil {
				return nil, err
			}
			if err := addCount(counts, sym, 1, mult); err != nil {
				return nil, err
			}
		case c >= '0' && c <= '9':
			return nil, errorf(ErrParse, "group", "number without a preceding element or group at position %d", p.pos)
		default: //a lowercase letter that doesn't follow an uppercase one.
			return nil, errorf(ErrParse, "group", "unexpected %q at position %d, element symbols start with an uppercase letter", c, p.pos)
		}
	}
	return counts, nil
}

// multiplier reads the digits at the current position. It returns 1 if there are none.
func (p *formulaParser) multiplier() (int, error) {
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return 1, nil
	}
	n, err := strconv.Atoi(p.s[start:p.pos])
	if err != nil {
		return 0, errorf(ErrParse, "multiplier", "invalid multiplier %q at position %d", p.s[start:p.pos], start)
	}
	if n == 0 {
		return 0, errorf(ErrParse, "multiplier", "zero multiplier at position %d", start)
	}
	return n, nil
}

func addCount(counts Formula, sym string, n, mult int) error {
	if n > math.MaxInt32/mult || counts[sym] > math.MaxInt32-n*mult {
		return errorf(ErrParse, "addCount", "count for %s is too large", sym)
	}
	counts[sym] += n * mult
	return nil
}

// ParseCounts parses an explicit composition of the form "C=1,H=4"
// (spaces allowed around the items). Symbols must look like element symbols,
// counts must be positive, and a symbol given twice adds up. The total may not
// exceed MaxAtoms.
func ParseCounts(spec string) (Formula, error) {
	counts := make(Formula)
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		f := strings.SplitN(item, "=", 2)
		if len(f) != 2 {
			return nil, errorf(ErrParse, "ParseCounts", "item %q is not of the form Symbol=count", item)
		}
		sym, num := strings.TrimSpace(f[0]), strings.TrimSpace(f[1])
		if !isSymbol(sym) {
			return nil, errorf(ErrParse, "ParseCounts", "%q is not an element symbol", sym)
		}
		n, err := strconv.Atoi(num)
		if err != nil || n <= 0 {
			return nil, errorf(ErrParse, "ParseCounts", "invalid count %q for %s", num, sym)
		}
		if err := addCount(counts, sym, n, 1); err != nil {
			return nil, errDecorate(err, "ParseCounts")
		}
	}
	if len(counts) == 0 {
		return nil, errorf(ErrParse, "ParseCounts", "no elements given")
	}
	if err := checkSize(counts); err != nil {
		return nil, errDecorate(err, "ParseCounts")
	}
	return counts, nil
}

// isSymbol returns true if s is an uppercase letter optionally followed by a lowercase one.
func isSymbol(s string) bool {
	switch len(s) {
	case 1:
		return s[0] >= 'A' && s[0] <= 'Z'
	case 2:
		return s[0] >= 'A' && s[0] <= 'Z' && s[1] >= 'a' && s[1] <= 'z'
	}
	return false
}

// FormulaFor returns formula if it is not empty, or the Hill formula of counts otherwise.
func FormulaFor(formula string, counts Formula) string {
	if formula != "" {
		return formula
	}
	return counts.Hill()
}
