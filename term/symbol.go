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

// Package term implements the shared clausal data model: the symbol table,
// terms and their per-node flags, literals and clauses (topforms).
package term

import (
	"fmt"
	"sync"

	"gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrArityMismatch is raised when a symbol name is interned with two
	// different arities.
	ErrArityMismatch = errors.NewKind("symbol %q already interned with arity %d, got %d")
)

// Tag classifies a Symbol.
type Tag int

const (
	// Ordinary is a plain user-declared constant or function symbol.
	Ordinary Tag = iota
	// Skolem marks a symbol introduced by clausification.
	Skolem
	// Builtin marks equality, boolean and arithmetic symbols.
	Builtin
	// VariableName marks a symbol used only as a variable's printable name.
	VariableName
)

// Assoc is an operator associativity/fixity class.
type Assoc int

const (
	NoFixity Assoc = iota
	Infix
	InfixLeft
	InfixRight
	Prefix
	PrefixParen
	Postfix
	PostfixParen
)

// Fixity carries optional operator-parsing metadata for a Symbol.
type Fixity struct {
	Precedence int
	Assoc      Assoc
}

// Symbol is an interned identifier: name, arity, lexical order value, tag
// and optional fixity. Two symbols are the same iff they share a (name,
// arity) pair; the table assigns a monotonically increasing Num to each new
// pair.
type Symbol struct {
	Num     int
	Name    string
	Arity   int
	Tag     Tag
	LexVal  int
	Fixity  *Fixity
	Equality bool
}

func (s *Symbol) String() string {
	return fmt.Sprintf("%s/%d", s.Name, s.Arity)
}

type symKey struct {
	name  string
	arity int
}

// Table is the symbol table: name/arity pairs are interned idempotently and
// assigned a monotonically increasing symbol number.
type Table struct {
	mu      sync.Mutex
	byKey   map[symKey]*Symbol
	byNum   []*Symbol
	nextNum int
}

// NewTable returns an empty symbol table with built-in equality and boolean
// symbols already interned.
func NewTable() *Table {
	t := &Table{byKey: make(map[symKey]*Symbol)}
	eq := t.Intern("=", 2)
	eq.Tag = Builtin
	eq.Equality = true
	eq.Fixity = &Fixity{Precedence: 90, Assoc: Infix}
	t.Intern("true", 0).Tag = Builtin
	t.Intern("false", 0).Tag = Builtin
	return t
}

// Intern returns the Symbol for (name, arity), allocating a new one on
// first use. Interning the same name with a different arity yields a
// distinct Symbol.
func (t *Table) Intern(name string, arity int) *Symbol {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := symKey{name, arity}
	if s, ok := t.byKey[k]; ok {
		return s
	}
	s := &Symbol{
		Num:    t.nextNum,
		Name:   name,
		Arity:  arity,
		LexVal: t.nextNum,
	}
	t.byKey[k] = s
	t.byNum = append(t.byNum, s)
	t.nextNum++
	return s
}

// Lookup returns the symbol for (name, arity) if it has been interned.
func (t *Table) Lookup(name string, arity int) (*Symbol, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.byKey[symKey{name, arity}]
	return s, ok
}

// BySymnum returns the symbol with the given Num, as assigned by Intern.
func (t *Table) BySymnum(n int) (*Symbol, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 0 || n >= len(t.byNum) {
		return nil, false
	}
	return t.byNum[n], true
}

// GreatestSymnum returns the current high-water mark of allocated symbol
// numbers, i.e. the number of distinct (name,arity) pairs interned so far.
func (t *Table) GreatestSymnum() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nextNum
}

// SetLexVal overrides a symbol's lexical-order value (user-controllable
// term ordering).
func (t *Table) SetLexVal(s *Symbol, v int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s.LexVal = v
}
