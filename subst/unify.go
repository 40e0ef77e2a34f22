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

package subst

import "github.com/ladr-go/ladr/term"

// Unify performs Robinson unification of a (read in envA) against b (read
// in envB), with occur-check, recording every binding on trail. It is
// total: it always terminates and never recurses past the terms'
// structural depth. A false return is not an error (§7
// UnificationImpossible) — trail is left exactly as the caller finds it
// useful to undo regardless.
func Unify(a *term.Term, envA *Env, b *term.Term, envB *Env, trail *Trail) bool {
	a, envA = Deref(a, envA)
	b, envB = Deref(b, envB)

	switch {
	case a.IsVariable() && b.IsVariable() && envA == envB && a.Varnum == b.Varnum:
		return true
	case a.IsVariable():
		if occurs(envA, a.Varnum, b, envB) {
			return false
		}
		Bind(envA, a.Varnum, b, envB, trail)
		return true
	case b.IsVariable():
		if occurs(envB, b.Varnum, a, envA) {
			return false
		}
		Bind(envB, b.Varnum, a, envA, trail)
		return true
	default:
		if a.Sym != b.Sym {
			return false
		}
		for i := range a.Args {
			if !Unify(a.Args[i], envA, b.Args[i], envB, trail) {
				return false
			}
		}
		return true
	}
}

// occurs reports whether the variable (varnum in varEnv) occurs in t
// (read in tEnv), after dereferencing.
func occurs(varEnv *Env, varnum int, t *term.Term, tEnv *Env) bool {
	t, tEnv = Deref(t, tEnv)
	if t.IsVariable() {
		return tEnv == varEnv && t.Varnum == varnum
	}
	for _, a := range t.Args {
		if occurs(varEnv, varnum, a, tEnv) {
			return true
		}
	}
	return false
}
