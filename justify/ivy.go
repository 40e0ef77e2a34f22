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

import (
	"fmt"
	"strings"

	"github.com/ladr-go/ladr/term"
)

// IvyClause is one entry of an atomic Ivy proof: an id, its literal
// content, and exactly one of the seven Ivy justification shapes (§3,
// §4.6.5).
type IvyClause struct {
	ID   int
	Lits *term.Clause
	Just term.IvyStep
}

// IvyProof is the Ivy-step form produced by ExpandProofIvy. Implicit
// equality flips appear as explicit Flip steps; resolution and
// paramodulation steps cite their parents directly, with no Instance step
// inserted before them, so their unifiers are not reduced to the identity.
type IvyProof struct {
	Clauses []IvyClause
}

// xxClauseID is the fixed id of the synthesized "x=x" axiom, prepended
// iff the ordinary proof contains an XXRes step (§4.6.5).
const xxClauseID = 0

type ivyExpander struct {
	byID    map[int]*term.Clause
	nextID  int
	out     []IvyClause
	usedXX  bool
}

// ExpandProofIvy produces the Ivy proof for p: every step is one of
// {Input, Propositional, NewSymbol, Flip, Instance, BinaryRes, Paramod}.
// Implicit equality flips become Flip steps (via ExpandProof); copies,
// merges and factors become identity-pair Instance steps; resolution and
// paramodulation steps refer to their parents directly, without preceding
// Instance steps, so their unifiers are not reduced to the identity. A
// special x=x clause with id 0 is prepended iff any XXRes step is
// expanded (§4.6.5, §8 property 6).
func ExpandProofIvy(p *Proof) *IvyProof {
	ep := ExpandProof(p)
	ctx := &ivyExpander{byID: ByID(ep), nextID: maxID(ep) + 1}

	for _, c := range ep.Clauses {
		ctx.byID[c.ID] = c
		if len(c.Just) == 0 {
			ctx.out = append(ctx.out, IvyClause{ID: c.ID, Lits: c, Just: term.IvyInput{}})
			continue
		}
		ctx.emit(c.ID, c, c.Just[0])
	}

	out := ctx.out
	if ctx.usedXX {
		out = append([]IvyClause{{ID: xxClauseID, Lits: xxClause(), Just: term.IvyInput{}}}, out...)
	}
	return &IvyProof{Clauses: out}
}

func xxClause() *term.Clause {
	tbl := term.NewTable()
	eq, _ := tbl.Lookup("=", 2)
	c := term.NewClause()
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(eq, []*term.Term{term.MakeVariable(0), term.MakeVariable(0)})))
	return c
}

func (ctx *ivyExpander) emit(targetID int, content *term.Clause, step term.JustStep) {
	switch s := step.(type) {
	case term.Input, term.Goal, term.Deny, term.Clausify, term.ExpandDef:
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyInput{}})
	case term.Copy:
		ctx.emitCopy(targetID, content, s)
	case term.BinaryRes:
		p1 := ctx.byID[s.P1]
		p2 := ctx.byID[s.P2]
		ctx.out = append(ctx.out, IvyClause{
			ID:   targetID,
			Lits: content,
			Just: term.IvyBinaryRes{ID1: s.P1, Pos1: litPos(p1, s.L1), ID2: s.P2, Pos2: litPos(p2, s.L2)},
		})
	case term.Paramod:
		ctx.out = append(ctx.out, IvyClause{
			ID:   targetID,
			Lits: content,
			Just: term.IvyParamod{ID1: s.FromID, Pos1: s.FromPos, ID2: s.IntoID, Pos2: s.IntoPos},
		})
	case term.Factor:
		// Factoring's unifier collapses, at the Ivy level, to a pure
		// instantiation: the two literals become syntactically
		// identical and the duplicate is free to drop, same as an
		// ordinary merge.
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyInstance{ID: s.ID, Pairs: identityPairs(content)}})
	case term.XXRes:
		ctx.usedXX = true
		parent := ctx.byID[s.ID]
		ctx.out = append(ctx.out, IvyClause{
			ID:   targetID,
			Lits: content,
			Just: term.IvyBinaryRes{ID1: xxClauseID, Pos1: term.Pos{Lit: 1}, ID2: s.ID, Pos2: litPos(parent, s.Lit)},
		})
	case term.Instance:
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyInstance{ID: s.ID, Pairs: s.Pairs}})
	case term.HyperRes:
		ctx.emitChain(targetID, content, s.Nucleus, s.Triples)
	case term.URRes:
		ctx.emitChain(targetID, content, s.Nucleus, s.Triples)
	default:
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyInput{}})
	}
}

func (ctx *ivyExpander) emitCopy(targetID int, content *term.Clause, c term.Copy) {
	parent := ctx.byID[c.Parent]
	if len(c.Mods) == 0 {
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyInstance{ID: c.Parent, Pairs: identityPairs(content)}})
		return
	}
	switch m := c.Mods[0]; m.Kind {
	case term.ModFlip:
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyFlip{ID: c.Parent, Pos: litPos(parent, m.Lit)}})
	case term.ModPropositional:
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyPropositional{ID: c.Parent}})
	case term.ModNewSymbol:
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyNewSymbol{ID: c.Parent}})
	default: // ModXX, ModMerge: free at the Ivy level, same as a bare copy.
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyInstance{ID: c.Parent, Pairs: identityPairs(content)}})
	}
}

// emitChain atomizes a HyperRes/URRes step into a sequence of IvyBinaryRes
// steps, one per satellite, threaded through freshly synthesized
// intermediate clause ids; the final step in the chain is given targetID
// so the chain's last clause is exactly the original resolvent.
func (ctx *ivyExpander) emitChain(targetID int, content *term.Clause, nucleusID int, triples []term.Triple) {
	if len(triples) == 0 {
		ctx.out = append(ctx.out, IvyClause{ID: targetID, Lits: content, Just: term.IvyInput{}})
		return
	}
	currentID := nucleusID
	current := ctx.byID[nucleusID]
	for i, tr := range triples {
		last := i == len(triples)-1
		id := targetID
		var result *term.Clause
		if last {
			result = content
		} else {
			id = ctx.nextID
			ctx.nextID++
			result = replayBinary(current, ctx.byID[tr.SatID], tr.NucLit, tr.SatLit)
			result.ID = id
			ctx.byID[id] = result
		}
		ctx.out = append(ctx.out, IvyClause{
			ID:   id,
			Lits: result,
			Just: term.IvyBinaryRes{ID1: currentID, Pos1: litPos(current, tr.NucLit), ID2: tr.SatID, Pos2: litPos(ctx.byID[tr.SatID], tr.SatLit)},
		})
		current, currentID = result, id
	}
}

// litPos returns the literal position (§4.6.6) of the n'th literal of c:
// the literal index with an empty argument path (Binary-res/XX-res/UR-res
// resolve whole atoms; only Paramod needs a deeper path, and that path is
// already supplied by the caller of Paramod directly).
func litPos(c *term.Clause, n int) term.Pos {
	return term.Pos{Lit: n}
}

// identityPairs returns a var->var identity substitution covering every
// variable occurring in c, used as the Pairs of an Instance step that
// represents a pure renumbering/merge with no real substitution content.
func identityPairs(c *term.Clause) []term.VarTermPair {
	max := -1
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if v := term.GreatestVariable(cur.Atom); v > max {
			max = v
		}
	}
	pairs := make([]term.VarTermPair, 0, max+1)
	for v := 0; v <= max; v++ {
		pairs = append(pairs, term.VarTermPair{Var: v, Term: term.MakeVariable(v)})
	}
	return pairs
}

// ivyIdentRemap maps identifiers that are syntactically valid LADR symbol
// or variable names but not acceptable as Ivy/Lisp-reader atoms (§4.6.5).
var ivyIdentRemap = map[string]string{
	"0":  "zero_for_ivy",
	"1":  "one_for_ivy",
	"'":  "quote_for_ivy",
	`\`:  "backslash_for_ivy",
	"@":  "at_for_ivy",
	"^":  "caret_for_ivy",
}

// ivyIdent remaps name through the fixed dictionary if necessary.
func ivyIdent(name string) string {
	if r, ok := ivyIdentRemap[name]; ok {
		return r
	}
	return name
}

// RenderIvy renders an IvyProof in the compact S-expression text format of
// §6: a list of `(id justification literals NIL)` entries.
func RenderIvy(p *IvyProof) string {
	var b strings.Builder
	b.WriteString("(\n")
	for _, c := range p.Clauses {
		b.WriteString("  (")
		fmt.Fprintf(&b, "%d ", c.ID)
		b.WriteString(renderIvyJust(c.Just))
		b.WriteString(" ")
		b.WriteString(renderIvyLiterals(c.Lits))
		b.WriteString(" NIL)\n")
	}
	b.WriteString(")\n")
	return b.String()
}

func renderIvyJust(j term.IvyStep) string {
	switch s := j.(type) {
	case term.IvyInput:
		return "(input)"
	case term.IvyPropositional:
		return fmt.Sprintf("(propositional %d)", s.ID)
	case term.IvyNewSymbol:
		return fmt.Sprintf("(new_symbol %d)", s.ID)
	case term.IvyFlip:
		return fmt.Sprintf("(flip %d %s)", s.ID, renderPos(s.Pos))
	case term.IvyInstance:
		return fmt.Sprintf("(instantiate %d %s)", s.ID, renderPairs(s.Pairs))
	case term.IvyBinaryRes:
		return fmt.Sprintf("(resolve %d %s %d %s)", s.ID1, renderPos(s.Pos1), s.ID2, renderPos(s.Pos2))
	case term.IvyParamod:
		return fmt.Sprintf("(paramod %d %s %d %s)", s.ID1, renderPos(s.Pos1), s.ID2, renderPos(s.Pos2))
	default:
		return "(input)"
	}
}

func renderPos(p term.Pos) string {
	var parts []string
	for i := 1; i < p.Lit; i++ {
		parts = append(parts, "2")
	}
	parts = append(parts, "1")
	for _, a := range p.Path {
		parts = append(parts, fmt.Sprintf("%d", a))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func renderPairs(pairs []term.VarTermPair) string {
	var parts []string
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("(v%d . %s)", p.Var, renderTerm(p.Term)))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func renderIvyLiterals(c *term.Clause) string {
	lits := c.Literals()
	return renderOrChain(lits)
}

func renderOrChain(lits []*term.Literal) string {
	if len(lits) == 0 {
		return "false"
	}
	if len(lits) == 1 {
		return renderLiteral(lits[0])
	}
	return fmt.Sprintf("(or %s %s)", renderLiteral(lits[0]), renderOrChain(lits[1:]))
}

func renderLiteral(l *term.Literal) string {
	if l.Sign {
		return renderTerm(l.Atom)
	}
	return fmt.Sprintf("(not %s)", renderTerm(l.Atom))
}

func renderTerm(t *term.Term) string {
	if t == nil {
		return "nil"
	}
	if t.IsVariable() {
		return fmt.Sprintf("v%d", t.Varnum)
	}
	name := ivyIdent(t.Sym.Name)
	if len(t.Args) == 0 {
		return name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = renderTerm(a)
	}
	return fmt.Sprintf("(%s %s)", name, strings.Join(parts, " "))
}
