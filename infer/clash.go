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

package infer

import (
	"github.com/ladr-go/ladr/subst"
	"github.com/ladr-go/ladr/term"
)

// ClashResult is one completed hyper- or UR-resolution derivation: the
// resolvent clause and the Triples recording which satellite literal
// clashed against which nucleus literal.
type ClashResult struct {
	Clause  *term.Clause
	Triples []term.Triple
}

// clashSlot is one position in the nucleus being clashed against a
// satellite clause candidate. Clash keeps an explicit slice of these
// (DESIGN NOTES §9 "clash tree recursion") instead of recursing through a
// linked clash list: backtracking is popping the slice, not unwinding a
// call stack.
type clashSlot struct {
	cands  []*term.Clause
	cursor int
	satEnv *subst.Env
	mark   int
}

// Clash runs hyper-resolution — or, when target is >= 0, UR-resolution —
// of nucleus against satellite candidates (§4.6.2). positions names the
// nucleus literal indices to clash, in order; candidatesFor supplies the
// candidate unit satellite clauses for each position (every candidate must
// be a unit clause of opposite sign to the nucleus literal, or it is
// skipped). target, if >= 0, is a nucleus literal index that must NOT be
// clashed and becomes the UR-resolution Target. emit is called once for
// every complete, mutually consistent assignment of satellites to
// positions, with the resulting resolvent.
func Clash(nucleus *term.Clause, positions []int, candidatesFor func(litIdx int) []*term.Clause, target int, trail *subst.Trail, emit func(ClashResult)) {
	n := len(positions)
	if n == 0 {
		return
	}
	nucEnv := subst.GetEnv(0)
	slots := make([]*clashSlot, n)

	tryNext := func(i int) bool {
		slot := slots[i]
		lit := nucleus.IthLiteral(positions[i])
		for {
			slot.cursor++
			if slot.cursor >= len(slot.cands) {
				return false
			}
			trail.UndoTo(slot.mark)
			cand := slot.cands[slot.cursor]
			if cand.NLits != 1 {
				continue
			}
			satLit := cand.Lits
			if satLit.Sign == lit.Sign {
				continue
			}
			if subst.Unify(lit.Atom, nucEnv, satLit.Atom, slot.satEnv, trail) {
				return true
			}
		}
	}

	i := 0
	for i >= 0 {
		if slots[i] == nil {
			slots[i] = &clashSlot{
				cands:  candidatesFor(positions[i]),
				cursor: -1,
				satEnv: subst.GetEnv(i + 1),
				mark:   trail.Mark(),
			}
		}
		if !tryNext(i) {
			trail.UndoTo(slots[i].mark)
			slots[i] = nil
			i--
			continue
		}
		if i < n-1 {
			i++
			continue
		}
		emit(buildClashResult(nucleus, positions, target, slots, nucEnv))
	}
}

func buildClashResult(nucleus *term.Clause, positions []int, target int, slots []*clashSlot, nucEnv *subst.Env) ClashResult {
	clashed := make(map[int]bool, len(positions))
	triples := make([]term.Triple, len(positions))
	for i, p := range positions {
		clashed[p] = true
		cand := slots[i].cands[slots[i].cursor]
		triples[i] = term.Triple{NucLit: p, SatID: cand.ID, SatLit: 1}
	}

	resolvent := term.NewClause()
	idx := 0
	for cur := nucleus.Lits; cur != nil; cur = cur.Next {
		idx++
		if clashed[idx] && idx != target {
			continue
		}
		resolvent.AppendLiteral(term.NewLiteral(cur.Sign, subst.Apply(cur.Atom, nucEnv)))
	}

	var just term.JustStep
	if target >= 0 {
		just = term.URRes{Nucleus: nucleus.ID, Triples: triples, Target: target}
	} else {
		just = term.HyperRes{Nucleus: nucleus.ID, Triples: triples}
	}
	resolvent.Just = []term.JustStep{just}
	term.InheritAttributes(nucleus, nil, resolvent)
	resolvent.UpwardClauseLinks()
	return ClashResult{Clause: resolvent, Triples: triples}
}
