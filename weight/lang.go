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

// Package weight implements the weight-rule expression language and the
// clause-evaluation predicate language of §4.7: both are small ASTs built
// directly by Go callers (concrete-syntax parsing is out of scope, §1),
// each with a Compile step that turns the AST into a closure the given
// clause loop calls during its pick/weigh phase.
package weight

import "github.com/ladr-go/ladr/term"

// Expr is one node of the weight-rule expression language: an arithmetic
// expression evaluated against a matched term (§4.7 "weight(pattern) =
// expr").
type Expr interface {
	eval(t *term.Term) float64
}

// Const is a literal numeric weight.
type Const float64

func (c Const) eval(*term.Term) float64 { return float64(c) }

// Depth evaluates to term.TermDepth of the matched node.
type Depth struct{}

func (Depth) eval(t *term.Term) float64 { return float64(term.TermDepth(t)) }

// Vars evaluates to the number of distinct variables in the matched node.
type Vars struct{}

func (Vars) eval(t *term.Term) float64 {
	seen := make(map[int]bool)
	term.Walk(t, func(sub *term.Term, _ []int) {
		if sub.IsVariable() {
			seen[sub.Varnum] = true
		}
	})
	return float64(len(seen))
}

// SymbolCount evaluates to term.SymbolCount of the matched node (the
// language's "weight" builtin, distinct from the Weigher-level Weight
// rule being defined).
type SymbolCount struct{}

func (SymbolCount) eval(t *term.Term) float64 { return float64(term.SymbolCount(t)) }

// Add, Mul, Sub and Max/Min combine sub-expressions arithmetically.
type Add struct{ L, R Expr }
type Sub struct{ L, R Expr }
type Mul struct{ L, R Expr }
type Max struct{ L, R Expr }
type Min struct{ L, R Expr }

func (e Add) eval(t *term.Term) float64 { return e.L.eval(t) + e.R.eval(t) }
func (e Sub) eval(t *term.Term) float64 { return e.L.eval(t) - e.R.eval(t) }
func (e Mul) eval(t *term.Term) float64 { return e.L.eval(t) * e.R.eval(t) }
func (e Max) eval(t *term.Term) float64 {
	l, r := e.L.eval(t), e.R.eval(t)
	if l > r {
		return l
	}
	return r
}
func (e Min) eval(t *term.Term) float64 {
	l, r := e.L.eval(t), e.R.eval(t)
	if l < r {
		return l
	}
	return r
}

// Call invokes a named external weight function registered on the
// Weigher (§4.7 "call(name, args)"), passing the arguments' own weights
// (recursively evaluated against the matched node) as the function's
// input.
type Call struct {
	Name string
	Args []Expr
}

func (e Call) eval(t *term.Term) float64 {
	// Resolved against the enclosing Weigher's function table by
	// Weigher.evalExpr; a bare Call.eval (no table in scope) costs nothing.
	return 0
}

// wildcard is the pattern placeholder matching any subterm without
// binding it to anything the expression can read (§4.7 "anonymous
// variable matching", written `_`); Rule.Pattern may contain any number
// of these in place of ordinary sub-patterns.
var Wildcard = &term.Term{Kind: term.VarKind, Varnum: -1}

func isWildcard(p *term.Term) bool { return p.IsVariable() && p.Varnum == -1 }

// patternMatches reports whether pattern matches t's shape: wildcards
// match anything, compound patterns must have the same symbol and
// recursively matching arguments, and an ordinary pattern variable
// matches anything too (only the shape, not the bindings, matters for
// rule selection).
func patternMatches(pattern, t *term.Term) bool {
	if pattern.IsVariable() {
		return true
	}
	if t == nil || t.IsVariable() {
		return false
	}
	if pattern.Sym != t.Sym {
		return false
	}
	for i, pa := range pattern.Args {
		if !patternMatches(pa, t.Args[i]) {
			return false
		}
	}
	return true
}

// Rule is one weight-rule clause: the first rule (in declaration order)
// whose Pattern matches a node supplies that node's weight.
type Rule struct {
	Pattern *term.Term
	Expr    Expr
}

// Weigher holds the compiled weight rules plus default per-shape weights
// (§4.7 defaults: variable, constant, propositional atom, not, or,
// skolem constant) and any external named functions Call may invoke.
type Weigher struct {
	Rules []Rule

	VariableWeight    float64
	ConstantWeight    float64
	SkolemWeight      float64
	NotWeight         float64
	OrWeight          float64
	PropAtomWeight    float64
	DefaultSymbol     float64

	funcs map[string]func(args []float64) float64
}

// Compile builds a Weigher from rules in order (first match wins) and
// the standard-default weights; callers override the defaults on the
// returned value before use if desired.
func Compile(rules []Rule) *Weigher {
	return &Weigher{
		Rules:          rules,
		VariableWeight: 1,
		ConstantWeight: 1,
		SkolemWeight:   1,
		NotWeight:      0,
		OrWeight:       0,
		PropAtomWeight: 1,
		DefaultSymbol:  1,
		funcs:          make(map[string]func(args []float64) float64),
	}
}

// RegisterFunc makes name available to a Call expression.
func (w *Weigher) RegisterFunc(name string, fn func(args []float64) float64) {
	w.funcs[name] = fn
}

// TermWeight computes the weight of a single term node per §4.7: the
// first matching rule wins; absent a match, variables/constants/ordinary
// compounds fall back to the declared default weights, with a compound's
// weight equal to its own default plus the (recursively computed) weight
// of each argument.
func (w *Weigher) TermWeight(t *term.Term) float64 {
	for _, r := range w.Rules {
		if patternMatches(r.Pattern, t) {
			return w.evalExpr(r.Expr, t)
		}
	}
	if t.IsVariable() {
		return w.VariableWeight
	}
	if t.Sym.Arity == 0 {
		if t.Sym.Tag == term.Skolem {
			return w.SkolemWeight
		}
		return w.ConstantWeight
	}
	sum := w.DefaultSymbol
	for _, a := range t.Args {
		sum += w.TermWeight(a)
	}
	return sum
}

// evalExpr evaluates e against t, resolving Call nodes against w's
// function table (Expr.eval alone cannot see the table).
func (w *Weigher) evalExpr(e Expr, t *term.Term) float64 {
	switch v := e.(type) {
	case Call:
		args := make([]float64, len(v.Args))
		for i, a := range v.Args {
			args[i] = w.evalExpr(a, t)
		}
		if fn, ok := w.funcs[v.Name]; ok {
			return fn(args)
		}
		return 0
	case Add:
		return w.evalExpr(v.L, t) + w.evalExpr(v.R, t)
	case Sub:
		return w.evalExpr(v.L, t) - w.evalExpr(v.R, t)
	case Mul:
		return w.evalExpr(v.L, t) * w.evalExpr(v.R, t)
	case Max:
		l, r := w.evalExpr(v.L, t), w.evalExpr(v.R, t)
		if l > r {
			return l
		}
		return r
	case Min:
		l, r := w.evalExpr(v.L, t), w.evalExpr(v.R, t)
		if l < r {
			return l
		}
		return r
	default:
		return e.eval(t)
	}
}

// LiteralWeight computes one literal's weight: its atom's weight, plus
// NotWeight when negated, with PropAtomWeight applied instead of the
// atom's own computed weight when the atom is a nullary (propositional)
// symbol with no registered rule.
func (w *Weigher) LiteralWeight(sign bool, atom *term.Term) float64 {
	base := w.TermWeight(atom)
	if atom.IsConstant() {
		matched := false
		for _, r := range w.Rules {
			if patternMatches(r.Pattern, atom) {
				matched = true
				break
			}
		}
		if !matched {
			base = w.PropAtomWeight
		}
	}
	if !sign {
		return base + w.NotWeight
	}
	return base
}

// ClauseWeight sums LiteralWeight over c's literals plus OrWeight for
// every literal after the first, following the given-clause loop's
// standard "weight of a clause is the weight of its disjunction" rule.
func (w *Weigher) ClauseWeight(c *term.Clause) float64 {
	total := 0.0
	i := 0
	for cur := c.Lits; cur != nil; cur = cur.Next {
		total += w.LiteralWeight(cur.Sign, cur.Atom)
		if i > 0 {
			total += w.OrWeight
		}
		i++
	}
	return total
}
