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

// Command mace4 reads one or more clause files and searches for finite
// models over a range of domain sizes, printing each interpretation found
// (§6 External Interfaces).
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/ladr-go/ladr/cmd/internal/clausefmt"
	"github.com/ladr-go/ladr/mace4"
	"github.com/ladr-go/ladr/mace4/cell"
	"github.com/ladr-go/ladr/mace4/search"
	"github.com/ladr-go/ladr/proof"
	"github.com/ladr-go/ladr/settings"
	"github.com/ladr-go/ladr/term"
)

// Exit codes per §6: 0 max-models reached, 2 domain range exhausted
// without a model, 3 the whole requested range finished with at least
// one model printed but no cap configured ("-m 0", print-all mode), 5 the
// overall wall-clock budget expired before any model was found, 4 the
// same but at least one model was already found, 102 fatal (unreadable or
// malformed input). §6 also lists 6/7 for a memory budget and 101 for an
// interrupting signal; this command tracks no memory budget and installs
// no signal handler, so those codes are never produced here.
const (
	exitModelsFound    = 0
	exitExhausted      = 2
	exitAllPrinted     = 3
	exitMaxSecondsHit  = 4
	exitMaxSecondsNone = 5
	exitFatal          = 102
)

var log = logrus.WithField("system", "cmd/mace4")

// arithNames mirrors the operator names mace4/ground.FoldGround/ReduceAtom
// recognize structurally: these never get a cell of their own.
var arithNames = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "mod": true, "min": true, "max": true, "abs": true,
	"<": true, "<=": true, ">": true, ">=": true,
}

func main() {
	var startSize, endSize, maxModels, increment int
	var maxSeconds float64
	pflag.IntVarP(&startSize, "start", "n", 2, "starting domain size")
	pflag.IntVarP(&endSize, "end", "N", 10, "ending domain size")
	pflag.IntVarP(&maxModels, "max-models", "m", 1, "maximum models to find (0 = unbounded)")
	pflag.Float64VarP(&maxSeconds, "max-seconds", "t", 0, "overall time budget in seconds (0 = unbounded)")
	pflag.IntVarP(&increment, "increment", "i", 1, "domain size increment")
	var files []string
	pflag.StringArrayVarP(&files, "file", "f", nil, "clause file (repeatable; reads stdin if omitted)")
	var sets []string
	pflag.StringArrayVar(&sets, "set", nil, "override a flag or parm: name=value (repeatable)")
	pflag.Parse()

	store := settings.NewDefaultStore()
	if err := applyOverrides(store, sets); err != nil {
		fmt.Fprintln(os.Stderr, "mace4:", err)
		os.Exit(exitFatal)
	}
	_ = store.SetParm("mace4_start_size", int64(startSize))
	_ = store.SetParm("mace4_end_size", int64(endSize))
	_ = store.SetParm("mace4_max_models", int64(maxModels))
	_ = store.SetParm("max_seconds", int64(maxSeconds))
	_ = store.SetParm("mace4_increment", int64(increment))

	tbl := term.NewTable()
	clauses, err := readClauses(tbl, files)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mace4:", err)
		os.Exit(exitFatal)
	}

	functions, relations := collectSymbols(clauses)
	syms := append(append([]*term.Symbol{}, functions...), relations...)

	primesOnly, _ := store.GetFlag("mace4_primes_only")
	nonPrimesOnly, _ := store.GetFlag("mace4_non_primes_only")
	start := time.Now()

	total := 0
	timedOut := false
outer:
	for n := startSize; n <= endSize; n += increment {
		if primesOnly && !isPrime(n) {
			continue
		}
		if nonPrimesOnly && isPrime(n) {
			continue
		}
		if maxSeconds > 0 && time.Since(start).Seconds() >= maxSeconds {
			timedOut = true
			break
		}

		k, ok := buildKernel(tbl, clauses, functions, relations, syms, n)
		if !ok {
			log.WithField("domain_size", n).Debug("mace4: no model possible at this size")
			continue
		}

		remaining := 0
		if maxModels > 0 {
			remaining = maxModels - total
			if remaining <= 0 {
				break
			}
		}
		opts := search.Options{Strategy: search.Concentric, MaxModels: remaining}
		search.Search(k, opts, func(r search.Result) bool {
			total++
			printModel(n, r, functions, relations, k, time.Since(start).Seconds())
			if maxSeconds > 0 && time.Since(start).Seconds() >= maxSeconds {
				timedOut = true
				return false
			}
			return maxModels == 0 || total < maxModels
		})
		if timedOut {
			break outer
		}
		if maxModels > 0 && total >= maxModels {
			break
		}
	}

	switch {
	case maxModels > 0 && total >= maxModels:
		os.Exit(exitModelsFound)
	case timedOut:
		if total > 0 {
			os.Exit(exitMaxSecondsHit)
		}
		os.Exit(exitMaxSecondsNone)
	case total > 0 && maxModels == 0:
		os.Exit(exitAllPrinted)
	default:
		os.Exit(exitExhausted)
	}
}

func applyOverrides(store *settings.Store, sets []string) error {
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("malformed --set %q: expected name=value", s)
		}
		if err := store.SetFlagString(name, value); err == nil {
			continue
		}
		if err := store.SetParmString(name, value); err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
	}
	return nil
}

func readClauses(tbl *term.Table, files []string) ([]*term.Clause, error) {
	if len(files) == 0 {
		return clausefmt.ParseClauses(tbl, os.Stdin)
	}
	var all []*term.Clause
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		cs, err := clausefmt.ParseClauses(tbl, f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		all = append(all, cs...)
	}
	return all, nil
}

// collectSymbols splits the non-builtin symbols occurring in clauses into
// functions (domain-valued, one cell per n^arity ground application) and
// relations (truth-valued, occurring as a literal's own atom). Equality
// and the arithmetic operators ground.go evaluates structurally need no
// cell of their own; clausefmt has no way to mark a symbol as Skolem, so
// every symbol here is treated as problem-introduced (a documented gap:
// search's rule of branching on Skolem cells last never triggers in this
// command).
func collectSymbols(clauses []*term.Clause) (functions, relations []*term.Symbol) {
	fseen := map[*term.Symbol]bool{}
	rseen := map[*term.Symbol]bool{}
	var walkFn func(t *term.Term)
	walkFn = func(t *term.Term) {
		if t == nil || t.IsVariable() {
			return
		}
		if !t.Sym.Equality && !arithNames[t.Sym.Name] && !fseen[t.Sym] {
			fseen[t.Sym] = true
			functions = append(functions, t.Sym)
		}
		for _, a := range t.Args {
			walkFn(a)
		}
	}
	for _, c := range clauses {
		for cur := c.Lits; cur != nil; cur = cur.Next {
			atom := cur.Atom
			if atom.Sym.Equality || arithNames[atom.Sym.Name] {
				for _, a := range atom.Args {
					walkFn(a)
				}
				continue
			}
			if !rseen[atom.Sym] {
				rseen[atom.Sym] = true
				relations = append(relations, atom.Sym)
			}
			for _, a := range atom.Args {
				walkFn(a)
			}
		}
	}
	return functions, relations
}

func buildKernel(tbl *term.Table, clauses []*term.Clause, functions, relations, syms []*term.Symbol, n int) (*mace4.Kernel, bool) {
	descs := make([]cell.SymbolDesc, len(syms))
	for i, s := range syms {
		nv := n
		if i >= len(functions) {
			nv = 2 // relations are truth-valued
		}
		descs[i] = cell.SymbolDesc{Arity: s.Arity, NValues: nv}
	}
	k := mace4.NewKernel(tbl, n, descs, syms, nil)
	_, ok := k.Ground(clauses)
	return k, ok
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func printModel(n int, r search.Result, functions, relations []*term.Symbol, k *mace4.Kernel, seconds float64) {
	var fEntries []proof.FunctionEntry
	var rEntries []proof.RelationEntry
	for _, s := range functions {
		fEntries = append(fEntries, proof.FunctionEntry{Name: s.Name, Arity: s.Arity, Values: valueTable(n, s, k, r)})
	}
	for _, s := range relations {
		rEntries = append(rEntries, proof.RelationEntry{Name: s.Name, Arity: s.Arity, Values: valueTable(n, s, k, r)})
	}
	m := proof.NewInterpretation(n, seconds, fEntries, rEntries)
	fmt.Print(proof.RenderInterpretation(m))
}

// valueTable reads every ground application of s out of r, in the
// positional encoding's natural order (§4.9).
func valueTable(n int, s *term.Symbol, k *mace4.Kernel, r search.Result) []int {
	symIdx, ok := k.SymbolIndex(s)
	if !ok {
		return nil
	}
	total := 1
	for i := 0; i < s.Arity; i++ {
		total *= n
	}
	values := make([]int, total)
	args := make([]int, s.Arity)
	for i := 0; i < total; i++ {
		rem := i
		for j := s.Arity - 1; j >= 0; j-- {
			args[j] = rem % n
			rem /= n
		}
		c := k.CellFor(symIdx, args)
		values[i] = r.Values[c.ID]
	}
	return values
}
