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

package weight

import "github.com/ladr-go/ladr/term"

// EvalContext carries the per-clause facts the predicate language's
// arithmetic comparisons read (§4.7: weight, variables, depth, literals,
// level) that are not recoverable from the term.Clause alone — level is
// the given-clause loop's search depth, weight is normally this
// Weigher's own ClauseWeight.
type EvalContext struct {
	Weight float64
	Level  int
}

// Kind tags a clause's derivation shape, read off its justification, for
// the boolean predicates {initial, resolvent, hyper_resolvent,
// ur_resolvent, factor, paramodulant, back_demodulant, subsumer} (§4.7).
type Kind int

const (
	KindOther Kind = iota
	KindInitial
	KindResolvent
	KindHyperResolvent
	KindURResolvent
	KindFactor
	KindParamodulant
	KindBackDemodulant
	KindSubsumer
)

// ClauseKind classifies c from its first justification step.
func ClauseKind(c *term.Clause) Kind {
	if len(c.Just) == 0 {
		return KindInitial
	}
	switch c.Just[0].(type) {
	case term.Input, term.Goal, term.Deny:
		return KindInitial
	case term.BinaryRes, term.XXRes:
		return KindResolvent
	case term.HyperRes:
		return KindHyperResolvent
	case term.URRes:
		return KindURResolvent
	case term.Factor:
		return KindFactor
	case term.Paramod:
		return KindParamodulant
	default:
		return KindOther
	}
}

// Pred is a compiled boolean predicate over a clause (§4.7 clause-
// evaluation language).
type Pred func(c *term.Clause, ctx EvalContext) bool

// namedPreds are the zero-argument boolean predicates of §4.7: positive,
// negative, mixed, has_equality, horn, definite, unit, hint, true, false,
// plus the derivation-kind predicates.
var namedPreds = map[string]Pred{
	"positive":     func(c *term.Clause, _ EvalContext) bool { return c.PositiveClause() },
	"negative":     func(c *term.Clause, _ EvalContext) bool { return !c.PositiveClause() && allNegative(c) },
	"mixed":        func(c *term.Clause, _ EvalContext) bool { return !c.PositiveClause() && !allNegative(c) },
	"has_equality": func(c *term.Clause, _ EvalContext) bool { return c.ContainsEq() },
	"horn":         func(c *term.Clause, _ EvalContext) bool { return c.HornClause() },
	"definite":     func(c *term.Clause, _ EvalContext) bool { return c.HornClause() && hasPositive(c) },
	"unit":         func(c *term.Clause, _ EvalContext) bool { return c.UnitClause() },
	"hint":         func(c *term.Clause, _ EvalContext) bool { _, ok := c.Attr("hint"); return ok },
	"true":         func(*term.Clause, EvalContext) bool { return true },
	"false":        func(*term.Clause, EvalContext) bool { return false },
	"initial":         func(c *term.Clause, _ EvalContext) bool { return ClauseKind(c) == KindInitial },
	"resolvent":       func(c *term.Clause, _ EvalContext) bool { return ClauseKind(c) == KindResolvent },
	"hyper_resolvent": func(c *term.Clause, _ EvalContext) bool { return ClauseKind(c) == KindHyperResolvent },
	"ur_resolvent":    func(c *term.Clause, _ EvalContext) bool { return ClauseKind(c) == KindURResolvent },
	"factor":          func(c *term.Clause, _ EvalContext) bool { return ClauseKind(c) == KindFactor },
	"paramodulant":    func(c *term.Clause, _ EvalContext) bool { return ClauseKind(c) == KindParamodulant },
	"back_demodulant": func(c *term.Clause, _ EvalContext) bool { return ClauseKind(c) == KindBackDemodulant },
	"subsumer":        func(c *term.Clause, _ EvalContext) bool { return ClauseKind(c) == KindSubsumer },
}

func allNegative(c *term.Clause) bool {
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if cur.Sign {
			return false
		}
	}
	return true
}

func hasPositive(c *term.Clause) bool {
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if cur.Sign {
			return true
		}
	}
	return false
}

// NamedPred returns the compiled predicate for one of the fixed boolean
// predicate names.
func NamedPred(name string) (Pred, bool) {
	p, ok := namedPreds[name]
	return p, ok
}

// CmpOp is an arithmetic comparison operator over a numeric clause
// attribute.
type CmpOp int

const (
	Lt CmpOp = iota
	Le
	Gt
	Ge
	Eq
	Ne
)

// Field names one of the numeric attributes the predicate language can
// compare (§4.7: weight, variables, depth, literals, level).
type Field int

const (
	FieldWeight Field = iota
	FieldVariables
	FieldDepth
	FieldLiterals
	FieldLevel
)

// fieldValue reads field off c/ctx.
func fieldValue(f Field, c *term.Clause, ctx EvalContext) float64 {
	switch f {
	case FieldWeight:
		return ctx.Weight
	case FieldVariables:
		max := -1
		for cur := c.Lits; cur != nil; cur = cur.Next {
			if v := term.GreatestVariable(cur.Atom); v > max {
				max = v
			}
		}
		return float64(max + 1)
	case FieldDepth:
		max := 0
		for cur := c.Lits; cur != nil; cur = cur.Next {
			if d := term.TermDepth(cur.Atom); d > max {
				max = d
			}
		}
		return float64(max)
	case FieldLiterals:
		return float64(c.NLits)
	case FieldLevel:
		return float64(ctx.Level)
	default:
		return 0
	}
}

// Compare builds a Pred comparing a clause's Field against value.
func Compare(f Field, op CmpOp, value float64) Pred {
	return func(c *term.Clause, ctx EvalContext) bool {
		v := fieldValue(f, c, ctx)
		switch op {
		case Lt:
			return v < value
		case Le:
			return v <= value
		case Gt:
			return v > value
		case Ge:
			return v >= value
		case Eq:
			return v == value
		case Ne:
			return v != value
		default:
			return false
		}
	}
}

// And, Or and Not are the predicate language's boolean combinators.
func And(a, b Pred) Pred {
	return func(c *term.Clause, ctx EvalContext) bool { return a(c, ctx) && b(c, ctx) }
}

func Or(a, b Pred) Pred {
	return func(c *term.Clause, ctx EvalContext) bool { return a(c, ctx) || b(c, ctx) }
}

func Not(a Pred) Pred {
	return func(c *term.Clause, ctx EvalContext) bool { return !a(c, ctx) }
}

// EvalRule is one clause-evaluation rule: a clause passes it iff When
// holds. Compile wires a rule list into a single closure the loop calls
// once per candidate clause.
type EvalRule struct {
	When Pred
}

// Compile returns the conjunction of every rule's When predicate: a
// clause passes evaluation iff every declared rule accepts it. (The
// predicate language's concrete syntax — turning `rule_term` text into a
// When Pred — is out of scope per §1; callers build the Pred values
// directly, as NamedPred/Compare/And/Or/Not above.)
func Compile(rules []EvalRule) Pred {
	return func(c *term.Clause, ctx EvalContext) bool {
		for _, r := range rules {
			if !r.When(c, ctx) {
				return false
			}
		}
		return true
	}
}
