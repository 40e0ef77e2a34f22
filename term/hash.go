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

package term

import "github.com/mitchellh/hashstructure"

// termShape is a Term's structural shape with the Container back-pointer
// and Aux payload stripped out, so hashstructure's reflective walk never
// follows a cycle back up the tree.
type termShape struct {
	Kind   Kind
	Varnum int
	SymNum int
	Args   []termShape
}

func shapeOf(t *Term) termShape {
	if t == nil {
		return termShape{}
	}
	if t.IsVariable() {
		return termShape{Kind: VarKind, Varnum: t.Varnum}
	}
	args := make([]termShape, len(t.Args))
	for i, a := range t.Args {
		args[i] = shapeOf(a)
	}
	return termShape{Kind: CompoundKind, SymNum: t.Sym.Num, Args: args}
}

// StructHash returns a structural hash of t: any two terms TermIdent
// considers equal share this value, so it is a safe, cheap pre-filter (no
// false negatives, rare false-positive collisions) before a caller pays
// for an exact TermIdent comparison.
func StructHash(t *Term) uint64 {
	h, err := hashstructure.Hash(shapeOf(t), nil)
	if err != nil {
		return 0
	}
	return h
}

type literalShape struct {
	Sign bool
	Atom termShape
}

// ClauseStructHash hashes c's literal sequence (sign and atom shape, in
// clause order) the same way, letting a saturation loop recognize a
// syntactically-already-derived clause cheaply before running subsumption
// or equality checks on it.
func ClauseStructHash(c *Clause) uint64 {
	lits := make([]literalShape, 0, c.NLits)
	for cur := c.Lits; cur != nil; cur = cur.Next {
		lits = append(lits, literalShape{Sign: cur.Sign, Atom: shapeOf(cur.Atom)})
	}
	h, err := hashstructure.Hash(lits, nil)
	if err != nil {
		return 0
	}
	return h
}
