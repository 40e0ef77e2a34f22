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

package justify

import "github.com/ladr-go/ladr/term"

// expander rewrites one proof into an equivalent one whose steps are
// restricted to {Input, Propositional, Copy+simple-modifier, BinaryRes,
// Paramod, Factor, Instance, Flip} (§4.6.5 expand_proof): every place an
// ordinary step implicitly flipped an equality literal gets an explicit
// intermediate Copy{Mods:[Flip]} clause instead.
type expander struct {
	byID   map[int]*term.Clause
	nextID int
	synth  []*term.Clause
}

// ExpandProof transforms p into an equivalent proof where every implicit
// equality flip (a negative literal index in a BinaryRes/HyperRes/URRes
// step) is replaced by an explicit intermediate clause carrying a
// Copy{Mods:[ModFlip]} justification, referenced with a positive literal
// index.
func ExpandProof(p *Proof) *Proof {
	ex := &expander{byID: ByID(p), nextID: maxID(p) + 1}

	out := make([]*term.Clause, 0, len(p.Clauses))
	for _, c := range p.Clauses {
		nc := shallowCopyClauseMeta(c)
		nc.Just = make([]term.JustStep, len(c.Just))
		for i, step := range c.Just {
			nc.Just[i] = ex.expandStep(step)
			out = append(out, ex.drainSynth()...)
		}
		out = append(out, nc)
		ex.byID[nc.ID] = nc
	}
	return &Proof{Clauses: out}
}

func (ex *expander) drainSynth() []*term.Clause {
	s := ex.synth
	ex.synth = nil
	return s
}

func (ex *expander) expandStep(step term.JustStep) term.JustStep {
	switch s := step.(type) {
	case term.BinaryRes:
		l1, p1 := ex.resolveMaybeFlip(s.P1, s.L1)
		l2, p2 := ex.resolveMaybeFlip(s.P2, s.L2)
		return term.BinaryRes{P1: p1, L1: l1, P2: p2, L2: l2}
	case term.HyperRes:
		return term.HyperRes{Nucleus: ex.flipParent(s.Nucleus), Triples: ex.expandTriples(s.Triples)}
	case term.URRes:
		return term.URRes{Nucleus: ex.flipParent(s.Nucleus), Triples: ex.expandTriples(s.Triples), Target: s.Target}
	default:
		return step
	}
}

func (ex *expander) expandTriples(triples []term.Triple) []term.Triple {
	out := make([]term.Triple, len(triples))
	for i, tr := range triples {
		lit, id := ex.resolveMaybeFlip(tr.SatID, tr.SatLit)
		out[i] = term.Triple{NucLit: tr.NucLit, SatID: id, SatLit: lit}
	}
	return out
}

// flipParent is a no-op placeholder: nucleus literals are not flipped in
// this kernel's clash construction, only satellite/secondary literals are.
func (ex *expander) flipParent(id int) int { return id }

// resolveMaybeFlip turns a (parentID, possibly-negative litIdx) pair into
// a (new positive litIdx, new parentID) pair, synthesizing an intermediate
// Copy{ModFlip} clause when litIdx was negative.
func (ex *expander) resolveMaybeFlip(parentID, litIdx int) (int, int) {
	if litIdx >= 0 {
		return litIdx, parentID
	}
	positive := -litIdx
	parent := ex.byID[parentID]
	flipped := flipClauseLiteral(parent, positive)
	flipped.ID = ex.nextID
	ex.nextID++
	flipped.Just = []term.JustStep{term.Copy{Parent: parentID, Mods: []term.Mod{{Kind: term.ModFlip, Lit: positive}}}}
	ex.synth = append(ex.synth, flipped)
	ex.byID[flipped.ID] = flipped
	return positive, flipped.ID
}

// flipClauseLiteral returns a copy of c with its n'th literal's equality
// atom argument order swapped.
func flipClauseLiteral(c *term.Clause, n int) *term.Clause {
	nc := term.CopyClause(c)
	lit := nc.IthLiteral(n)
	if lit != nil && lit.Atom != nil && lit.Atom.Kind == term.CompoundKind && len(lit.Atom.Args) == 2 {
		lit.Atom.Args[0], lit.Atom.Args[1] = lit.Atom.Args[1], lit.Atom.Args[0]
	}
	return nc
}

func shallowCopyClauseMeta(c *term.Clause) *term.Clause {
	nc := term.CopyClause(c)
	nc.ID = c.ID
	return nc
}

func maxID(p *Proof) int {
	max := 0
	for _, c := range p.Clauses {
		if c.ID > max {
			max = c.ID
		}
	}
	return max
}
