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

import (
	"sync"

	"gopkg.in/src-d/go-errors.v1"
)

// MaxVars bounds the number of distinct variable indices a single clause
// may use; renumbering past it is a fatal OutOfVariables error (§7).
const MaxVars = 2048

var (
	// ErrOutOfVariables is raised when renumbering would need more than
	// MaxVars distinct variables.
	ErrOutOfVariables = errors.NewKind("clause needs more than %d variables")
	// ErrTooManyFlags is raised when claiming more term flags than the
	// fixed per-node bitset can hold.
	ErrTooManyFlags = errors.NewKind("cannot claim term flag %d: only %d flag bits available")
)

// maxFlags is the number of bits in Term.flags; per §4.2 flags are a fixed,
// client-claimed set reserved once at startup.
const maxFlags = 64

// FlagID identifies one of the fixed per-node bit flags (e.g. "nonbasic",
// "literal", "negation", "relation").
type FlagID uint

// FlagAllocator hands out FlagIDs to clients at startup; it is the single
// place flag bits are reserved, mirroring claim_term_flag() in §4.2.
type FlagAllocator struct {
	mu   sync.Mutex
	next FlagID
}

// NewFlagAllocator returns an allocator with no flags claimed.
func NewFlagAllocator() *FlagAllocator { return &FlagAllocator{} }

// Claim reserves and returns the next unused flag bit.
func (a *FlagAllocator) Claim() (FlagID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.next >= maxFlags {
		return 0, ErrTooManyFlags.New(a.next, maxFlags)
	}
	id := a.next
	a.next++
	return id, nil
}

// Kind distinguishes a Term's two shapes.
type Kind int

const (
	// VarKind marks a variable node (Varnum valid, Sym/Args unused).
	VarKind Kind = iota
	// CompoundKind marks a compound node (Sym/Args valid; Args has
	// len == Sym.Arity, including the zero-arity "constant" case).
	CompoundKind
)

// Container is the parent back-pointer target of a Term: another Term, or
// (via the literal/clause packages implementing this interface) a Literal
// or Clause root.
type Container interface {
	isContainer()
}

func (t *Term) isContainer() {}

// Term is a single node of the shared clausal term representation (§3).
// Terms are never shared across clauses: every clause owns a fresh subtree.
type Term struct {
	Kind   Kind
	Varnum int // valid when Kind == VarKind

	Sym  *Symbol // valid when Kind == CompoundKind
	Args []*Term // valid when Kind == CompoundKind, len == Sym.Arity

	flags     uint64
	Container Container   // parent back-pointer; nil at the root
	Aux       interface{} // generic pointer used by indices/occurrence lists
}

// MakeVariable returns a fresh variable node with the given index.
func MakeVariable(i int) *Term {
	return &Term{Kind: VarKind, Varnum: i}
}

// MakeCompound returns a fresh compound node over sym and kids. The caller
// must supply exactly sym.Arity children; this is a programmer error, not a
// recoverable one, so it panics like an unchecked slice index would.
func MakeCompound(sym *Symbol, kids []*Term) *Term {
	if len(kids) != sym.Arity {
		panic("term: MakeCompound arity mismatch")
	}
	return &Term{Kind: CompoundKind, Sym: sym, Args: kids}
}

// IsVariable reports whether t is a variable node.
func (t *Term) IsVariable() bool { return t.Kind == VarKind }

// IsConstant reports whether t is a compound node of arity 0.
func (t *Term) IsConstant() bool { return t.Kind == CompoundKind && t.Sym.Arity == 0 }

// SetFlag sets the given bit on t.
func (t *Term) SetFlag(id FlagID) { t.flags |= 1 << id }

// ClearFlag clears the given bit on t.
func (t *Term) ClearFlag(id FlagID) { t.flags &^= 1 << id }

// TestFlag reports whether the given bit is set on t.
func (t *Term) TestFlag(id FlagID) bool { return t.flags&(1<<id) != 0 }

// CopyTerm returns a deep, flag-less copy of t: a fresh subtree sharing no
// nodes with t. Container back-pointers are left nil; callers that need
// them call UpwardLinks afterward.
func CopyTerm(t *Term) *Term {
	if t == nil {
		return nil
	}
	if t.IsVariable() {
		return MakeVariable(t.Varnum)
	}
	kids := make([]*Term, len(t.Args))
	for i, a := range t.Args {
		kids[i] = CopyTerm(a)
	}
	return MakeCompound(t.Sym, kids)
}

// CopyTermWithFlags is CopyTerm but also duplicates each node's flag
// bitset; CopyTerm alone never copies flags (§4.2).
func CopyTermWithFlags(t *Term) *Term {
	c := copyWithFlags(t)
	return c
}

func copyWithFlags(t *Term) *Term {
	if t == nil {
		return nil
	}
	var c *Term
	if t.IsVariable() {
		c = MakeVariable(t.Varnum)
	} else {
		kids := make([]*Term, len(t.Args))
		for i, a := range t.Args {
			kids[i] = copyWithFlags(a)
		}
		c = MakeCompound(t.Sym, kids)
	}
	c.flags = t.flags
	return c
}

// TermIdent reports whether a and b are structurally identical: same
// shape, same variable indices, same symbols.
func TermIdent(a, b *Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.IsVariable() {
		return a.Varnum == b.Varnum
	}
	if a.Sym != b.Sym || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !TermIdent(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

// SymbolCount returns the number of symbol occurrences (compound nodes) in
// t, not counting variables.
func SymbolCount(t *Term) int {
	if t == nil || t.IsVariable() {
		return 0
	}
	n := 1
	for _, a := range t.Args {
		n += SymbolCount(a)
	}
	return n
}

// TermDepth returns the depth of t: 0 for a variable or a constant, else
// one more than the deepest child.
func TermDepth(t *Term) int {
	if t == nil || t.IsVariable() || len(t.Args) == 0 {
		return 0
	}
	max := 0
	for _, a := range t.Args {
		if d := TermDepth(a); d > max {
			max = d
		}
	}
	return max + 1
}

// GreatestVariable returns the greatest variable index occurring in t, or
// -1 if t contains no variable.
func GreatestVariable(t *Term) int {
	if t == nil {
		return -1
	}
	if t.IsVariable() {
		return t.Varnum
	}
	max := -1
	for _, a := range t.Args {
		if v := GreatestVariable(a); v > max {
			max = v
		}
	}
	return max
}

// TermAtPos returns the sub-term of t at path, a sequence of 1-based
// argument indices, and true if the path exists in t.
func TermAtPos(t *Term, path []int) (*Term, bool) {
	cur := t
	for _, idx := range path {
		if cur == nil || cur.IsVariable() || idx < 1 || idx > len(cur.Args) {
			return nil, false
		}
		cur = cur.Args[idx-1]
	}
	return cur, cur != nil
}

// Walk calls visit for every sub-term of t (including t itself), depth
// first, passing the current position path.
func Walk(t *Term, visit func(sub *Term, pos []int)) {
	walk(t, nil, visit)
}

func walk(t *Term, pos []int, visit func(*Term, []int)) {
	if t == nil {
		return
	}
	visit(t, pos)
	if t.IsVariable() {
		return
	}
	for i, a := range t.Args {
		walk(a, append(append([]int{}, pos...), i+1), visit)
	}
}

// UpwardLinks sets every non-variable subterm's Container to point to its
// parent, establishing the upward-walk back-pointers propagation relies on
// (§4.5 upward_clause_links, generalized to any term root).
func UpwardLinks(t *Term) {
	if t == nil || t.IsVariable() {
		return
	}
	for _, a := range t.Args {
		if a.IsVariable() {
			continue
		}
		a.Container = t
		UpwardLinks(a)
	}
}
