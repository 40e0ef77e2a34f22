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

// JustStep is a tagged-union justification step (§3 Justification, DESIGN
// NOTES §9 "justifications as tagged unions"). Each derived clause carries
// a []JustStep; copying and printing are exhaustive switches over the
// concrete types below rather than over a heterogeneous linked list.
type JustStep interface {
	isJustStep()
}

// Pos is a literal position: a 1-based literal index plus a path of
// 1-based argument indices into that literal's atom (§4.6.6). Side is only
// meaningful for a paramodulation from-position: 1 selects the equality's
// left argument, 2 its right.
type Pos struct {
	Lit  int
	Path []int
	Side int
}

// VarTermPair binds a variable index to a term, used by Instance steps.
type VarTermPair struct {
	Var  int
	Term *Term
}

// Mod is a simple modifier attached to a Copy step: Flip(lit), XX(lit),
// Merge(lit), Propositional, NewSymbol (§3).
type Mod struct {
	Kind ModKind
	Lit  int // meaningful for ModFlip, ModXX, ModMerge
}

// ModKind enumerates the Copy-step modifiers.
type ModKind int

const (
	ModFlip ModKind = iota
	ModXX
	ModMerge
	ModPropositional
	ModNewSymbol
)

// Input marks a clause as coming directly from the input problem.
type Input struct{}

// Goal marks a formula-level goal origin.
type Goal struct{}

// Deny marks a formula-level denied-conjecture origin.
type Deny struct{}

// Clausify marks a formula-level clausification origin.
type Clausify struct{}

// ExpandDef marks a formula-level definition-expansion origin.
type ExpandDef struct{}

// Copy records that a clause is syntactically identical to Parent, modulo
// the listed simple Mods (flip/XX/merge/propositional/new-symbol).
type Copy struct {
	Parent int
	Mods   []Mod
}

// BinaryRes records a binary-resolution step between literal L1 of clause
// P1 and literal L2 of clause P2. A negative literal index means "resolved
// against the flipped form of that equality literal" (§3).
type BinaryRes struct {
	P1, L1 int
	P2, L2 int
}

// Triple is one (nucleus-literal, satellite-id, satellite-literal) binding
// in a Hyper-res or UR-res step.
type Triple struct {
	NucLit int
	SatID  int
	SatLit int
}

// HyperRes records a positive or negative hyperresolution step: Nucleus is
// the multi-literal parent id, Triples gives the satellite bindings in
// nucleus-literal order.
type HyperRes struct {
	Nucleus int
	Triples []Triple
}

// URRes records a UR-resolution step: like HyperRes but Target names the
// single kept (non-clashed) literal.
type URRes struct {
	Nucleus int
	Triples []Triple
	Target  int
}

// Paramod records a paramodulation step: FromPos is a from-position
// (literal + side + path) into the equality parent, IntoPos a plain
// literal position into the rewritten parent.
type Paramod struct {
	FromID  int
	FromPos Pos
	IntoID  int
	IntoPos Pos
}

// Factor records that literals L1 and L2 of clause ID were unified and
// merged by factoring.
type Factor struct {
	ID     int
	L1, L2 int
}

// XXRes records resolution of a negative equality literal against the
// built-in x=x axiom (§4.6.1).
type XXRes struct {
	ID  int
	Lit int
}

// Instance records an explicit instantiation step: applying the
// substitution Pairs to clause ID.
type Instance struct {
	ID    int
	Pairs []VarTermPair
}

// IvyStep is one of the seven atomic object-level justification shapes
// produced by expand_proof_ivy (§3, §4.6.5): Input, Propositional,
// NewSymbol, Flip+pos, Instance+pairs, BinaryRes+pos, Paramod+pos.
type IvyStep interface {
	isIvyStep()
}

type IvyInput struct{}
type IvyPropositional struct{ ID int }
type IvyNewSymbol struct{ ID int }
type IvyFlip struct {
	ID  int
	Pos Pos
}
type IvyInstance struct {
	ID    int
	Pairs []VarTermPair
}
type IvyBinaryRes struct {
	ID1  int
	Pos1 Pos
	ID2  int
	Pos2 Pos
}
type IvyParamod struct {
	ID1  int
	Pos1 Pos
	ID2  int
	Pos2 Pos
}

func (Input) isJustStep()            {}
func (Goal) isJustStep()             {}
func (Deny) isJustStep()             {}
func (Clausify) isJustStep()         {}
func (ExpandDef) isJustStep()        {}
func (Copy) isJustStep()             {}
func (BinaryRes) isJustStep()        {}
func (HyperRes) isJustStep()         {}
func (URRes) isJustStep()            {}
func (Paramod) isJustStep()          {}
func (Factor) isJustStep()           {}
func (XXRes) isJustStep()            {}
func (Instance) isJustStep()         {}

func (IvyInput) isIvyStep()          {}
func (IvyPropositional) isIvyStep()  {}
func (IvyNewSymbol) isIvyStep()      {}
func (IvyFlip) isIvyStep()           {}
func (IvyInstance) isIvyStep()       {}
func (IvyBinaryRes) isIvyStep()      {}
func (IvyParamod) isIvyStep()        {}

// ParentIDs returns the clause ids this step directly references, used to
// check the proof-ordering invariant (§8 property 4).
func ParentIDs(step JustStep) []int {
	switch s := step.(type) {
	case Copy:
		return []int{s.Parent}
	case BinaryRes:
		return []int{s.P1, s.P2}
	case HyperRes:
		ids := []int{s.Nucleus}
		for _, tr := range s.Triples {
			ids = append(ids, tr.SatID)
		}
		return ids
	case URRes:
		ids := []int{s.Nucleus}
		for _, tr := range s.Triples {
			ids = append(ids, tr.SatID)
		}
		return ids
	case Paramod:
		return []int{s.FromID, s.IntoID}
	case Factor:
		return []int{s.ID}
	case XXRes:
		return []int{s.ID}
	case Instance:
		return []int{s.ID}
	default:
		return nil
	}
}
