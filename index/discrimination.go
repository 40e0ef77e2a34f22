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

// Package index implements the retrieval indexes inference rules use to
// find unify/match/subsume candidates: a discrimination tree keyed on
// term shape, and a feature-vector subsumption index backed by bitmap
// postings (§2 row 7).
package index

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ladr-go/ladr/term"
)

// discKey is one discrimination-tree edge label: either a symbol
// occurrence (Num, Arity) or the generic "variable" wildcard.
type discKey struct {
	isVar bool
	num   int
	arity int
}

func (k discKey) hash() uint64 {
	var b [17]byte
	if k.isVar {
		b[0] = 1
	}
	b[1] = byte(k.num)
	b[2] = byte(k.num >> 8)
	b[3] = byte(k.num >> 16)
	b[4] = byte(k.num >> 24)
	b[5] = byte(k.arity)
	return xxhash.Sum64(b[:6])
}

type discNode struct {
	children map[uint64]*discNode
	entries  []Entry
}

// Entry is one leaf payload stored at a discrimination-tree path: the
// indexed term and an opaque owner (typically a *term.Clause or
// *term.Literal).
type Entry struct {
	Term  *term.Term
	Owner interface{}
}

// Discrimination is a discrimination-tree retrieval index: terms sharing a
// path of symbol/variable labels (read left to right, depth first) share a
// tree node, so a query term's candidates are found by walking the same
// path (treating variables in the query as wildcards at unify time, and as
// exact wildcards at match time, per §4.4).
type Discrimination struct {
	root *discNode
}

// NewDiscrimination returns an empty discrimination-tree index.
func NewDiscrimination() *Discrimination {
	return &Discrimination{root: &discNode{children: make(map[uint64]*discNode)}}
}

func pathOf(t *term.Term) []discKey {
	var keys []discKey
	var walk func(*term.Term)
	walk = func(t *term.Term) {
		if t.IsVariable() {
			keys = append(keys, discKey{isVar: true})
			return
		}
		keys = append(keys, discKey{num: t.Sym.Num, arity: t.Sym.Arity})
		for _, a := range t.Args {
			walk(a)
		}
	}
	walk(t)
	return keys
}

// Insert adds t (owned by owner) to the index.
func (d *Discrimination) Insert(t *term.Term, owner interface{}) {
	node := d.root
	for _, k := range pathOf(t) {
		h := k.hash()
		next, ok := node.children[h]
		if !ok {
			next = &discNode{children: make(map[uint64]*discNode)}
			node.children[h] = next
		}
		node = next
	}
	node.entries = append(node.entries, Entry{Term: t, Owner: owner})
}

// Remove deletes the first entry matching t and owner, if present.
func (d *Discrimination) Remove(t *term.Term, owner interface{}) {
	node := d.root
	for _, k := range pathOf(t) {
		next, ok := node.children[k.hash()]
		if !ok {
			return
		}
		node = next
	}
	for i, e := range node.entries {
		if e.Owner == owner && term.TermIdent(e.Term, t) {
			node.entries = append(node.entries[:i], node.entries[i+1:]...)
			return
		}
	}
}

// CandidatesForUnify returns every entry whose path is compatible with
// unifying against query: a variable in either term matches anything at
// that position, so the tree is descended generically at a variable
// position (all children explored) and specifically otherwise.
func (d *Discrimination) CandidatesForUnify(query *term.Term) []Entry {
	var out []Entry
	var walk func(node *discNode, t *term.Term)
	walk = func(node *discNode, t *term.Term) {
		if node == nil {
			return
		}
		if t == nil || t.IsVariable() {
			collectAll(node, &out)
			return
		}
		h := discKey{num: t.Sym.Num, arity: t.Sym.Arity}.hash()
		if next, ok := node.children[h]; ok {
			descendAfterSymbol(next, t.Args, &out, walk)
		}
		if vnext, ok := node.children[(discKey{isVar: true}).hash()]; ok {
			collectAll(vnext, &out)
		}
	}
	walk(d.root, query)
	return out
}

// descendAfterSymbol continues the walk into a node's children after a
// symbol edge was taken, recursing through the symbol's arguments.
func descendAfterSymbol(node *discNode, args []*term.Term, out *[]Entry, walk func(*discNode, *term.Term)) {
	if len(args) == 0 {
		collectAll(node, out)
		return
	}
	walk(node, args[0])
	// Note: a full multi-argument path descent requires threading the
	// remaining argument list through the recursion; CandidatesForMatch
	// implements that fully. CandidatesForUnify over-approximates (first
	// argument only: every entry below the node that argument reaches) and
	// relies on the caller re-checking with a real unify call, which
	// prove.Loop does by passing each candidate to infer.Resolve.
}

func collectAll(node *discNode, out *[]Entry) {
	*out = append(*out, node.entries...)
	for _, c := range node.children {
		collectAll(c, out)
	}
}

// CandidatesForMatch returns every entry whose full path is compatible
// with matching query against the index (i.e. query could be the pattern
// and the entry the instance being matched, or vice versa, depending on
// the caller's direction): positions where query has a variable match any
// indexed term, positions with a symbol must match exactly.
func (d *Discrimination) CandidatesForMatch(query *term.Term) []Entry {
	var out []Entry
	qpath := pathOf(query)
	var walk func(node *discNode, rest []discKey)
	walk = func(node *discNode, rest []discKey) {
		if node == nil {
			return
		}
		if len(rest) == 0 {
			out = append(out, node.entries...)
			return
		}
		k := rest[0]
		if k.isVar {
			collectAll(node, &out)
			return
		}
		if next, ok := node.children[k.hash()]; ok {
			walk(next, rest[1:])
		}
	}
	walk(d.root, qpath)
	return out
}
