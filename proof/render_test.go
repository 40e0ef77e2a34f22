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

package proof

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ladr-go/ladr/justify"
	"github.com/ladr-go/ladr/term"
)

func TestNewProofStampsRunID(t *testing.T) {
	tbl := term.NewTable()
	p := tbl.Intern("p", 0)
	c := term.NewClause()
	c.ID = 1
	c.AppendLiteral(term.NewLiteral(true, term.MakeCompound(p, nil)))

	np := NewProof(&justify.Proof{Clauses: []*term.Clause{c}})
	require.NotEmpty(t, np.RunID)
	out := RenderIvy(np)
	require.Contains(t, out, np.RunID)
	require.Contains(t, out, "(input)")
}

func TestRenderInterpretationIncludesEverySymbol(t *testing.T) {
	m := NewInterpretation(2, 0.5,
		[]FunctionEntry{{Name: "f", Arity: 1, Values: []int{1, 0}}},
		[]RelationEntry{{Name: "r", Arity: 2, Values: []int{0, 1, 1, 0}}})

	out := RenderInterpretation(m)
	require.True(t, strings.Contains(out, "function(f/1, [1,0])"))
	require.True(t, strings.Contains(out, "relation(r/2, [0,1,1,0])"))
	require.Contains(t, out, "interpretation(2,")
}
