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

package index

import (
	"github.com/ladr-go/ladr/subst"
	"github.com/ladr-go/ladr/term"
)

// Subsumes reports whether pattern subsumes instance: whether there is a
// substitution, binding only pattern's variables, under which every
// literal of pattern matches some distinct literal of instance of the
// same sign (§2 row 7 "subsume retrieval"). This is the exact test the
// feature-vector index's SubsumptionCandidates pre-filters for; callers
// run it on every surviving candidate.
func Subsumes(pattern, instance *term.Clause, trail *subst.Trail) bool {
	patLits := pattern.Literals()
	insLits := instance.Literals()
	if len(patLits) > len(insLits) {
		return false
	}
	used := make([]bool, len(insLits))
	patEnv := subst.GetEnv(0)
	insEnv := subst.GetEnv(1)
	mark0 := trail.Mark()

	var try func(i int) bool
	try = func(i int) bool {
		if i == len(patLits) {
			return true
		}
		mark := trail.Mark()
		for j, il := range insLits {
			if used[j] || il.Sign != patLits[i].Sign {
				continue
			}
			if subst.Match(patLits[i].Atom, patEnv, il.Atom, insEnv, trail) {
				used[j] = true
				if try(i + 1) {
					return true
				}
				used[j] = false
			}
			trail.UndoTo(mark)
		}
		return false
	}
	ok := try(0)
	trail.UndoTo(mark0)
	return ok
}
