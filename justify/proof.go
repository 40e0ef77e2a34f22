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

// Package justify reconstructs proofs from clause justifications and
// re-expresses them in progressively more atomic normal forms
// (expand_proof, expand_proof_ivy, §4.6.5).
package justify

import (
	"gopkg.in/src-d/go-errors.v1"

	"github.com/ladr-go/ladr/term"
)

var (
	// ErrDanglingParent is Fatal (§7): a justification step names a parent
	// clause id that does not appear earlier in the proof.
	ErrDanglingParent = errors.NewKind("justification references parent id %d, not found before clause %d")
)

// Proof is an ordered list of clauses terminating in the empty clause
// (§3). Every parent id referenced by any step must appear earlier in the
// list (§8 property 4).
type Proof struct {
	Clauses []*term.Clause
}

// CheckOrder verifies that every step's parent ids resolve to a clause
// appearing earlier in p.Clauses (§8 property 4). It returns
// ErrDanglingParent on the first violation found.
func CheckOrder(p *Proof) error {
	seen := make(map[int]bool)
	for _, c := range p.Clauses {
		for _, step := range c.Just {
			for _, pid := range term.ParentIDs(step) {
				if !seen[pid] {
					return ErrDanglingParent.New(pid, c.ID)
				}
			}
		}
		seen[c.ID] = true
	}
	return nil
}

// ByID returns a lookup of p's clauses keyed by id.
func ByID(p *Proof) map[int]*term.Clause {
	m := make(map[int]*term.Clause, len(p.Clauses))
	for _, c := range p.Clauses {
		m[c.ID] = c
	}
	return m
}

// IsEmptyClause reports whether c has no literals.
func IsEmptyClause(c *term.Clause) bool { return c.NLits == 0 }
