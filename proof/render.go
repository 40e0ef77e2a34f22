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

// Package proof ties the justify package's Ivy proof reconstruction to
// the external presentation formats of §6: a run-stamped proof object
// for prover9's output, and Mace4's interpretation/model text format.
package proof

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ladr-go/ladr/justify"
)

// NewRunID returns a fresh, sortable identifier stamping one prover9 or
// mace4 run, included in rendered output so separate runs (and the proofs
// or models they produce) are unambiguously attributable.
func NewRunID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Proof is a completed, run-stamped Ivy proof ready for rendering (§6).
type Proof struct {
	RunID string
	Ivy   *justify.IvyProof
}

// NewProof reconstructs p's atomic Ivy form and stamps it with a fresh
// RunID.
func NewProof(p *justify.Proof) *Proof {
	return &Proof{RunID: NewRunID(), Ivy: justify.ExpandProofIvy(p)}
}

// RenderIvy renders p in the S-expression format of §6, preceded by a
// comment line naming the run that produced it.
func RenderIvy(p *Proof) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%% run %s\n", p.RunID)
	b.WriteString(justify.RenderIvy(p.Ivy))
	return b.String()
}

// FunctionEntry is one function symbol's complete value table: Values is
// indexed by the positional encoding of its arguments over DomainSize
// (§4.9), one entry per n^arity ground application.
type FunctionEntry struct {
	Name   string
	Arity  int
	Values []int
}

// RelationEntry is one relation symbol's complete truth table, indexed
// the same way as FunctionEntry, with each Values entry 0 or 1.
type RelationEntry struct {
	Name   string
	Arity  int
	Values []int
}

// Interpretation is one Mace4 model, ready to render in the
// `interpretation(...)` text format of §6.
type Interpretation struct {
	RunID      string
	DomainSize int
	Seconds    float64
	Functions  []FunctionEntry
	Relations  []RelationEntry
}

// NewInterpretation stamps a fresh RunID onto a model snapshot.
func NewInterpretation(n int, seconds float64, functions []FunctionEntry, relations []RelationEntry) *Interpretation {
	return &Interpretation{RunID: NewRunID(), DomainSize: n, Seconds: seconds, Functions: functions, Relations: relations}
}

// RenderInterpretation renders m in Mace4's `interpretation(N, [...],
// [...])` text format (§6): a domain-size/timing header followed by one
// function(...)/relation(...) entry per symbol.
func RenderInterpretation(m *Interpretation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%% run %s\n", m.RunID)
	fmt.Fprintf(&b, "interpretation(%d, [number=1, seconds=%g], [\n", m.DomainSize, m.Seconds)

	var entries []string
	for _, f := range m.Functions {
		entries = append(entries, fmt.Sprintf("function(%s, %s)", symRef(f.Name, f.Arity), intList(f.Values)))
	}
	for _, r := range m.Relations {
		entries = append(entries, fmt.Sprintf("relation(%s, %s)", symRef(r.Name, r.Arity), intList(r.Values)))
	}
	b.WriteString(strings.Join(entries, ",\n"))
	b.WriteString("\n]).\n")
	return b.String()
}

func symRef(name string, arity int) string {
	if arity == 0 {
		return name
	}
	return fmt.Sprintf("%s/%d", name, arity)
}

func intList(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
