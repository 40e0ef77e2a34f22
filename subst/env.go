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

// Package subst implements binding environments (the spec's "Context",
// renamed Env here to avoid colliding with Go's stdlib context package),
// the undo trail, and unification/matching over those environments
// (§4.3/§4.4).
package subst

import "github.com/ladr-go/ladr/term"

// Binding is what a variable slot in an Env resolves to: a term, read
// relative to another Env (possibly the same one).
type Binding struct {
	Term *term.Term
	Env  *Env
}

// Env is a fixed-size binding environment (§3 Context): a terms[MaxVars]
// mapping plus a multiplier used to rename otherwise-colliding variable
// indices from different clauses (effective_var = multiplier*MaxVars+varnum,
// §4.3) when a term is fully applied out of context.
type Env struct {
	Bound      [term.MaxVars]*Binding
	Multiplier int
}

// GetEnv returns a fresh Env with every slot unbound.
func GetEnv(multiplier int) *Env {
	return &Env{Multiplier: multiplier}
}

// Deref follows t through env's bindings (and the bindings of whatever
// envs those bindings point into) until it reaches an unbound variable or
// a compound term, returning that term and the env it should be read in.
func Deref(t *term.Term, env *Env) (*term.Term, *Env) {
	for t.IsVariable() {
		b := env.Bound[t.Varnum]
		if b == nil {
			return t, env
		}
		t, env = b.Term, b.Env
	}
	return t, env
}

// Bind records, on trail, that varnum in env is bound to other (read in
// otherEnv), so the caller can later undo it.
func Bind(env *Env, varnum int, other *term.Term, otherEnv *Env, trail *Trail) {
	env.Bound[varnum] = &Binding{Term: other, Env: otherEnv}
	trail.push(env, varnum)
}

// Apply constructs a fresh term by fully dereferencing t through env:
// bound variables are replaced by their binding (recursively applied in
// the binding's own env); unbound variables are renamed using env's
// multiplier so that identical variable indices from different source
// clauses do not collide once applied out of context.
func Apply(t *term.Term, env *Env) *term.Term {
	t, env = Deref(t, env)
	if t.IsVariable() {
		return term.MakeVariable(env.Multiplier*term.MaxVars + t.Varnum)
	}
	if len(t.Args) == 0 {
		return term.MakeCompound(t.Sym, nil)
	}
	kids := make([]*term.Term, len(t.Args))
	for i, a := range t.Args {
		kids[i] = Apply(a, env)
	}
	return term.MakeCompound(t.Sym, kids)
}

// ApplyBasic is Apply, but additionally marks the resulting term's root
// (and, if markAll is set, every non-variable subterm produced by a
// variable substitution) with flag, supporting basic paramodulation's
// "nonbasic" tracking (§4.3, §4.6.3).
func ApplyBasic(t *term.Term, env *Env, flag term.FlagID, markAll bool) *term.Term {
	dt, denv := Deref(t, env)
	substituted := dt != t || denv != env
	out := applyBasic(t, env, flag, markAll)
	if substituted && !out.IsVariable() {
		out.SetFlag(flag)
	}
	return out
}

func applyBasic(t *term.Term, env *Env, flag term.FlagID, markAll bool) *term.Term {
	dt, denv := Deref(t, env)
	if dt.IsVariable() {
		return term.MakeVariable(denv.Multiplier*term.MaxVars + dt.Varnum)
	}
	fromSubst := dt != t
	kids := make([]*term.Term, len(dt.Args))
	for i, a := range dt.Args {
		kids[i] = applyBasic(a, denv, flag, markAll)
	}
	out := term.MakeCompound(dt.Sym, kids)
	if markAll && fromSubst {
		out.SetFlag(flag)
	}
	return out
}

// ApplySubstitute2 performs the paramodulation substitution in one pass
// (§4.3): walk atom to path, replace the sub-term found there with
// Apply(beta, fromEnv), and apply intoEnv everywhere else.
func ApplySubstitute2(atom *term.Term, path []int, beta *term.Term, fromEnv *Env, intoEnv *Env) *term.Term {
	if len(path) == 0 {
		return Apply(beta, fromEnv)
	}
	dt, denv := Deref(atom, intoEnv)
	if dt.IsVariable() || path[0] < 1 || path[0] > len(dt.Args) {
		return Apply(atom, intoEnv)
	}
	kids := make([]*term.Term, len(dt.Args))
	for i, a := range dt.Args {
		if i+1 == path[0] {
			kids[i] = ApplySubstitute2(a, path[1:], beta, fromEnv, denv)
		} else {
			kids[i] = Apply(a, denv)
		}
	}
	return term.MakeCompound(dt.Sym, kids)
}
