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

package arith

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvalModFollowsDivisorSign(t *testing.T) {
	v, err := Eval(Mod, -1, 3)
	require.NoError(t, err)
	require.Equal(t, 2, v)

	v, err = Eval(Mod, 1, -3)
	require.NoError(t, err)
	require.Equal(t, -2, v)
}

func TestEvalDivisionByZeroIsNonEvaluable(t *testing.T) {
	_, err := Eval(Div, 5, 0)
	require.Error(t, err)
	require.True(t, ErrDivisionByZero.Is(err))

	_, err = Eval(Mod, 5, 0)
	require.Error(t, err)
	require.True(t, ErrDivisionByZero.Is(err))
}

func TestEvalRelationalOps(t *testing.T) {
	v, err := Eval(Lt, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	v, err = Eval(Ge, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func TestEvalUnary(t *testing.T) {
	v, err := EvalUnary(Neg, 4)
	require.NoError(t, err)
	require.Equal(t, -4, v)

	v, err = EvalUnary(Abs, -4)
	require.NoError(t, err)
	require.Equal(t, 4, v)
}
