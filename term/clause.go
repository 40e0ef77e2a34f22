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

// Attribute is one key/value pair attached to a clause. Inheritable
// declares whether inherit_attributes (§4.5) propagates this key from
// parent to child.
type Attribute struct {
	Key         string
	Value       interface{}
	Inheritable bool
}

// Clause (the spec's "Topform") is an ordered sequence of literals plus an
// id, an attribute list and a justification (§3).
type Clause struct {
	ID      int // 0 means "not yet assigned"
	Lits    *Literal
	NLits   int
	Attrs   []Attribute
	Just    []JustStep
}

func (c *Clause) isContainer() {}

// NewClause returns an empty clause with no literals, no id, no
// justification.
func NewClause() *Clause { return &Clause{} }

// AppendLiteral appends lit to the end of c's literal list (§4.5).
func (c *Clause) AppendLiteral(lit *Literal) {
	lit.Container = c
	if c.Lits == nil {
		c.Lits = lit
		c.NLits = 1
		return
	}
	cur := c.Lits
	for cur.Next != nil {
		cur = cur.Next
	}
	cur.Next = lit
	c.NLits++
}

// IthLiteral returns the n'th literal (1-based), or nil if n is out of
// range.
func (c *Clause) IthLiteral(n int) *Literal {
	if n < 1 {
		return nil
	}
	cur := c.Lits
	for i := 1; cur != nil; i++ {
		if i == n {
			return cur
		}
		cur = cur.Next
	}
	return nil
}

// LiteralNumber returns the 1-based position of lit in c, or 0 if lit does
// not belong to c.
func (c *Clause) LiteralNumber(lit *Literal) int {
	i := 1
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if cur == lit {
			return i
		}
		i++
	}
	return 0
}

// Literals returns c's literals as a slice, in order.
func (c *Clause) Literals() []*Literal {
	out := make([]*Literal, 0, c.NLits)
	for cur := c.Lits; cur != nil; cur = cur.Next {
		out = append(out, cur)
	}
	return out
}

// UpwardClauseLinks sets every non-variable subterm's Container to point
// up the tree, through each literal to c itself (§4.5).
func (c *Clause) UpwardClauseLinks() {
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if cur.Atom != nil && !cur.Atom.IsVariable() {
			cur.Atom.Container = cur
			UpwardLinks(cur.Atom)
		}
	}
}

// RenumberVariables compresses c's variable indices to 0..k-1 in
// left-to-right first-occurrence order. It fails with ErrOutOfVariables if
// more than max distinct variables occur.
func (c *Clause) RenumberVariables(max int) error {
	mapping := make(map[int]int)
	var renum func(t *Term) error
	renum = func(t *Term) error {
		if t == nil {
			return nil
		}
		if t.IsVariable() {
			if nv, ok := mapping[t.Varnum]; ok {
				t.Varnum = nv
				return nil
			}
			nv := len(mapping)
			if nv >= max {
				return ErrOutOfVariables.New(max)
			}
			mapping[t.Varnum] = nv
			t.Varnum = nv
			return nil
		}
		for _, a := range t.Args {
			if err := renum(a); err != nil {
				return err
			}
		}
		return nil
	}
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if err := renum(cur.Atom); err != nil {
			return err
		}
	}
	return nil
}

// Tautology reports whether c contains two literals that are identical
// except for opposite sign, or a positive equality x=x.
func (c *Clause) Tautology() bool {
	lits := c.Literals()
	for i, li := range lits {
		if li.IsPositiveEquality() && TermIdent(li.Atom.Args[0], li.Atom.Args[1]) {
			return true
		}
		for j := i + 1; j < len(lits); j++ {
			lj := lits[j]
			if li.Sign != lj.Sign && TermIdent(li.Atom, lj.Atom) {
				return true
			}
		}
	}
	return false
}

// HornClause reports whether c has at most one positive literal.
func (c *Clause) HornClause() bool {
	n := 0
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if cur.Sign {
			n++
		}
	}
	return n <= 1
}

// PositiveClause reports whether every literal in c is positive.
func (c *Clause) PositiveClause() bool {
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if !cur.Sign {
			return false
		}
	}
	return true
}

// UnitClause reports whether c has exactly one literal.
func (c *Clause) UnitClause() bool { return c.NLits == 1 }

// ContainsEq reports whether any literal's atom is an equality atom.
func (c *Clause) ContainsEq() bool {
	for cur := c.Lits; cur != nil; cur = cur.Next {
		if cur.Atom != nil && cur.Atom.Kind == CompoundKind && cur.Atom.Sym.Equality {
			return true
		}
	}
	return false
}

// Attr returns the value and presence of the named attribute.
func (c *Clause) Attr(key string) (interface{}, bool) {
	for _, a := range c.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return nil, false
}

// SetAttr sets (or replaces) the named attribute on c.
func (c *Clause) SetAttr(key string, value interface{}, inheritable bool) {
	for i, a := range c.Attrs {
		if a.Key == key {
			c.Attrs[i].Value = value
			c.Attrs[i].Inheritable = inheritable
			return
		}
	}
	c.Attrs = append(c.Attrs, Attribute{Key: key, Value: value, Inheritable: inheritable})
}

// InheritAttributes concatenates, onto child, the instance (under the
// given variable-renumbering, which the caller has already applied to the
// child term) of every inheritable attribute declared on p1 and p2
// (§4.5). Either parent may be nil.
func InheritAttributes(p1 *Clause, p2 *Clause, child *Clause) {
	for _, p := range []*Clause{p1, p2} {
		if p == nil {
			continue
		}
		for _, a := range p.Attrs {
			if a.Inheritable {
				child.Attrs = append(child.Attrs, a)
			}
		}
	}
}

// CopyClause returns a deep copy of c: fresh literals, fresh atoms, no id,
// no justification, same attributes.
func CopyClause(c *Clause) *Clause {
	nc := NewClause()
	for cur := c.Lits; cur != nil; cur = cur.Next {
		nc.AppendLiteral(CopyLiteral(cur))
	}
	nc.Attrs = append([]Attribute{}, c.Attrs...)
	return nc
}
