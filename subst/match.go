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

// Match performs one-way matching of pat (read in patEnv) against t (read
// in tEnv): only pat's variables are allowed to bind, recorded on trail
// (§4.4). Match succeeds iff there is a substitution sigma, binding only
// pat's variables, with sigma(pat) structurally identical to t.
func Match(pat *term.Term, patEnv *Env, t *term.Term, tEnv *Env, trail *Trail) bool {
	pat, patEnv = Deref(pat, patEnv)
	t, tEnv = Deref(t, tEnv)

	if pat.IsVariable() {
		Bind(patEnv, pat.Varnum, t, tEnv, trail)
		return true
	}
	if t.IsVariable() {
		return false
	}
	if pat.Sym != t.Sym {
		return false
	}
	for i := range pat.Args {
		if !Match(pat.Args[i], patEnv, t.Args[i], tEnv, trail) {
			return false
		}
	}
	return true
}
