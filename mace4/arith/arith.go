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

// Package arith implements Mace4's ground arithmetic (§4.12): the
// built-in +, -, *, /, mod, min, max, and relational operators evaluated
// over domain elements 0..n-1, with a mathematical mod (sign follows the
// divisor, never the dividend) and a non-evaluable sentinel for division
// by zero rather than a panic.
package arith

import errors "gopkg.in/src-d/go-errors.v1"

// ErrDivisionByZero is returned by Eval for / and mod when the divisor is
// zero: the atom is simply non-evaluable, not a runtime fault (§4.12).
var ErrDivisionByZero = errors.NewKind("arithmetic division by zero")

// Op names a ground arithmetic or relational operator.
type Op int

const (
	Add Op = iota
	Sub
	Mul
	Div
	Mod
	Min
	Max
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	Neg
	Abs
	DomainSize
)

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// mod computes a mathematical modulus: the result always has the sign of
// b (or is zero), unlike Go's %, which follows the sign of a.
func mod(a, b int) int {
	r := a % b
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// Eval evaluates a binary operator over ground domain elements a, b.
func Eval(op Op, a, b int) (int, error) {
	switch op {
	case Add:
		return a + b, nil
	case Sub:
		return a - b, nil
	case Mul:
		return a * b, nil
	case Div:
		if b == 0 {
			return 0, ErrDivisionByZero.New()
		}
		return a / b, nil
	case Mod:
		if b == 0 {
			return 0, ErrDivisionByZero.New()
		}
		return mod(a, b), nil
	case Min:
		if a < b {
			return a, nil
		}
		return b, nil
	case Max:
		if a > b {
			return a, nil
		}
		return b, nil
	case Lt:
		return boolInt(a < b), nil
	case Le:
		return boolInt(a <= b), nil
	case Gt:
		return boolInt(a > b), nil
	case Ge:
		return boolInt(a >= b), nil
	case Eq:
		return boolInt(a == b), nil
	case Ne:
		return boolInt(a != b), nil
	default:
		return 0, errors.NewKind("not a binary operator: %v").New(op)
	}
}

// EvalUnary evaluates a unary operator: Neg, Abs, or DomainSize (which
// ignores a and returns n, the cell array's domain size, passed in its
// place by the caller).
func EvalUnary(op Op, a int) (int, error) {
	switch op {
	case Neg:
		return -a, nil
	case Abs:
		if a < 0 {
			return -a, nil
		}
		return a, nil
	case DomainSize:
		return a, nil
	default:
		return 0, errors.NewKind("not a unary operator: %v").New(op)
	}
}
