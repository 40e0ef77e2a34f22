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

// trailEntry is one undoable binding: which env, which variable slot.
type trailEntry struct {
	env    *Env
	varnum int
}

// Trail is a growable undo log for bindings made during a unification or
// match attempt (§3 Trail, DESIGN NOTES §9 "trails"): a vector of entries
// plus a checkpoint stack, giving O(1) amortised push/checkpoint/undo.
type Trail struct {
	entries     []trailEntry
	checkpoints []int
}

// NewTrail returns an empty trail.
func NewTrail() *Trail { return &Trail{} }

func (tr *Trail) push(env *Env, varnum int) {
	tr.entries = append(tr.entries, trailEntry{env, varnum})
}

// Mark returns a checkpoint representing the trail's current length.
func (tr *Trail) Mark() int { return len(tr.entries) }

// UndoTo unbinds every binding pushed since mark, in LIFO order, and
// truncates the trail back to mark.
func (tr *Trail) UndoTo(mark int) {
	for i := len(tr.entries) - 1; i >= mark; i-- {
		e := tr.entries[i]
		e.env.Bound[e.varnum] = nil
	}
	tr.entries = tr.entries[:mark]
}

// UndoSubst undoes every binding currently on the trail (§4.4: "callers
// call undo_subst on failure or end-of-use").
func (tr *Trail) UndoSubst() { tr.UndoTo(0) }

// Len reports how many bindings are currently recorded.
func (tr *Trail) Len() int { return len(tr.entries) }
