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

// Literal is a (sign, atom) pair owning its atom, plus a Next link so a
// clause's literal list can be walked without a separate slice header
// (§3 Literal). Selected marks a literal pre-marked for the selection
// resolution policy (§4.6.1).
type Literal struct {
	Sign     bool
	Atom     *Term
	Next     *Literal
	Selected bool
}

func (l *Literal) isContainer() {}

// NewLiteral returns a literal owning atom, linking atom's container to l
// and unlinked from any clause.
func NewLiteral(sign bool, atom *Term) *Literal {
	l := &Literal{Sign: sign, Atom: atom}
	if atom != nil && !atom.IsVariable() {
		atom.Container = l
	}
	return l
}

// IsPositiveEquality reports whether l is `sign=true` over the equality
// symbol (arity 2), per §3.
func (l *Literal) IsPositiveEquality() bool {
	return l.Sign && l.Atom != nil && l.Atom.Kind == CompoundKind && l.Atom.Sym.Equality
}

// IsNegativeEquality reports whether l is a negated equality literal.
func (l *Literal) IsNegativeEquality() bool {
	return !l.Sign && l.Atom != nil && l.Atom.Kind == CompoundKind && l.Atom.Sym.Equality
}

// CopyLiteral returns a deep copy of l (and its Next chain is NOT copied;
// callers rebuild the chain when copying a whole clause).
func CopyLiteral(l *Literal) *Literal {
	if l == nil {
		return nil
	}
	return NewLiteral(l.Sign, CopyTerm(l.Atom))
}
