// Copyright 2024 The ladr Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package elim implements predicate elimination (§4.8): given a relation
// symbol r eligible for elimination, every clause mentioning r is
// resolved away and replaced by the (equisatisfiable) set of resolvents,
// discarding subsumed results.
package elim

import (
	"github.com/ladr-go/ladr/index"
	"github.com/ladr-go/ladr/infer"
	"github.com/ladr-go/ladr/subst"
	"github.com/ladr-go/ladr/term"
)

// occursIn reports whether sym occurs anywhere in c's literals.
func occursIn(sym *term.Symbol, c *term.Clause) bool {
	found := false
	for cur := c.Lits; cur != nil; cur = cur.Next {
		term.Walk(cur.Atom, func(sub *term.Term, _ []int) {
			if !sub.IsVariable() && sub.Sym == sym {
				found = true
			}
		})
	}
	return found
}

// occurrences returns every literal of c whose atom's root symbol is sym,
// each paired with its 1-based literal index.
func occurrences(sym *term.Symbol, c *term.Clause) []int {
	var idxs []int
	i := 0
	for cur := c.Lits; cur != nil; cur = cur.Next {
		i++
		if cur.Atom != nil && cur.Atom.Kind == term.CompoundKind && cur.Atom.Sym == sym {
			idxs = append(idxs, i)
		}
	}
	return idxs
}

// distinctVarArgs reports whether every argument of atom is a variable
// and no two arguments share a variable index.
func distinctVarArgs(atom *term.Term) bool {
	seen := make(map[int]bool)
	for _, a := range atom.Args {
		if !a.IsVariable() {
			return false
		}
		if seen[a.Varnum] {
			return false
		}
		seen[a.Varnum] = true
	}
	return true
}

// Eligible reports whether sym may be eliminated from clauses (§4.8): no
// clause may have two or more occurrences of sym, and if any clause
// contains an equality literal, every negative occurrence of sym must
// have pairwise-distinct variable arguments (so resolving it away never
// needs to reason about equal-but-syntactically-different arguments).
func Eligible(sym *term.Symbol, clauses []*term.Clause) bool {
	anyEquality := false
	for _, c := range clauses {
		if len(occurrences(sym, c)) > 1 {
			return false
		}
		if c.ContainsEq() {
			anyEquality = true
		}
	}
	if !anyEquality {
		return true
	}
	for _, c := range clauses {
		i := 0
		for cur := c.Lits; cur != nil; cur = cur.Next {
			i++
			if cur.Atom != nil && cur.Atom.Kind == term.CompoundKind && cur.Atom.Sym == sym && !cur.Sign {
				if !distinctVarArgs(cur.Atom) {
					return false
				}
			}
		}
	}
	return true
}

// Eliminate removes every clause mentioning sym from clauses, replacing
// them with the saturated set of resolvents against each other on sym's
// literal (§4.8 "saturate and discard"), then filters the result so no
// kept clause is strictly subsumed by another (clauses that subsume each
// other are all kept). It returns the new clause set and
// false if sym is not Eligible.
func Eliminate(sym *term.Symbol, clauses []*term.Clause, trail *subst.Trail) ([]*term.Clause, bool) {
	if !Eligible(sym, clauses) {
		return clauses, false
	}

	var withSym, without []*term.Clause
	for _, c := range clauses {
		if occursIn(sym, c) {
			withSym = append(withSym, c)
		} else {
			without = append(without, c)
		}
	}

	var pos, neg []*term.Clause
	for _, c := range withSym {
		idxs := occurrences(sym, c)
		if len(idxs) != 1 {
			continue // Eligible already rejected multi-occurrence clauses
		}
		if c.IthLiteral(idxs[0]).Sign {
			pos = append(pos, c)
		} else {
			neg = append(neg, c)
		}
	}

	var resolvents []*term.Clause
	for _, pc := range pos {
		pIdx := occurrences(sym, pc)[0]
		for _, nc := range neg {
			nIdx := occurrences(sym, nc)[0]
			if rc, ok := infer.Resolve(infer.BinaryPolicy{}, pc, pIdx, nc, nIdx, trail); ok {
				resolvents = append(resolvents, rc)
			}
		}
	}

	kept := append(append([]*term.Clause{}, without...), resolvents...)
	return discardSubsumed(kept, trail), true
}

// discardSubsumed drops every clause that some other clause in clauses
// subsumes without being subsumed by it in return; clauses that subsume
// each other are all kept (§4.8's "discard subsumed resolvents").
func discardSubsumed(clauses []*term.Clause, trail *subst.Trail) []*term.Clause {
	var kept []*term.Clause
	for i, c := range clauses {
		subsumed := false
		for j, other := range clauses {
			if i == j {
				continue
			}
			if index.Subsumes(other, c, trail) && !index.Subsumes(c, other, trail) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			kept = append(kept, c)
		}
	}
	return kept
}
