// Copyright (c) 2026 The crabgo Authors
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

// Package instr implements InstructionLowering (spec.md §4.4): translating
// arithmetic, bitwise, casts, GEP-style address computation, loads, stores,
// allocations, selects, returns, and calls — including the memset/memcpy intrinsics
// and verifier assume/assume-not — into CFG statements. Phi, branch, and bare compare
// instructions are skipped here; they are handled by the phi and cond packages, and by
// cfgbuild when a compare drives a branch.
package instr

import (
	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/config"
	"github.com/gocrab/crabgo/diagnostic"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/memory"
	"github.com/gocrab/crabgo/symeval"
)

// Context bundles everything a single function's instruction lowering needs: the
// evaluator, the target graph, the options, and whether this function is translated
// in inter-procedural mode / is the program's `main`.
type Context struct {
	Eval            *symeval.Eval
	Mem             memory.Oracle
	Graph           *cfg.Graph
	Opts            config.Options
	Fn              *ir.Function
	InterProcedural bool
	IsMain          bool
	Sink            *diagnostic.Sink
}

// maybeHavoc emits Havoc{Dst} when opts.IncludeHavoc is set (spec.md §6: redundant
// under SSA, but useful for debugging/downstream passes expecting a defining
// statement for every destination); otherwise it emits nothing, leaving dst
// implicitly unconstrained.
func (c *Context) maybeHavoc(block string, v ir.Value) {
	if !c.Eval.IsTracked(v) {
		return
	}
	if c.Opts.IncludeHavoc {
		c.Graph.Append(block, cfg.Havoc{Dst: c.Eval.SymVar(v)})
	}
}

// havoc always emits Havoc{Dst}, for call sites where spec.md explicitly calls for
// havocking regardless of the IncludeHavoc option (e.g. an external call's tracked
// result, a non-constant shift).
func (c *Context) havoc(block string, v ir.Value) {
	if !c.Eval.IsTracked(v) {
		return
	}
	c.Graph.Append(block, cfg.Havoc{Dst: c.Eval.SymVar(v)})
}
