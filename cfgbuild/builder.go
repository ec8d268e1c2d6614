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

// Package cfgbuild implements CfgBuilder (spec.md §4.5): the orchestration that turns
// one ir.Function into a cfg.Graph by running node creation, the global/new-region
// (and, in inter-procedural mode, ref-in) initialization preludes, InstructionLowering,
// branch-edge materialization with ConditionLowering and PhiLowering at each edge, and
// multi-return unification, in that order, then optionally simplifies and prints the
// result.
package cfgbuild

import (
	"fmt"

	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/config"
	"github.com/gocrab/crabgo/diagnostic"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/lower/instr"
	"github.com/gocrab/crabgo/memory"
	"github.com/gocrab/crabgo/symeval"
)

// Builder holds everything shared across the functions of one translation run: the
// evaluator (and, transitively, the name factory and memory oracle it wraps), the
// options, and the diagnostic sink.
type Builder struct {
	Eval            *symeval.Eval
	Mem             memory.Oracle
	Opts            config.Options
	Sink            *diagnostic.Sink
	InterProcedural bool
}

// New returns a Builder. Its Mem field is taken from eval.Mem, so the builder and the
// evaluator always share one oracle.
func New(eval *symeval.Eval, opts config.Options, sink *diagnostic.Sink, interProcedural bool) *Builder {
	return &Builder{Eval: eval, Mem: eval.Mem, Opts: opts, Sink: sink, InterProcedural: interProcedural}
}

// Build translates fn into a cfg.Graph. isMain selects the global-initializer prelude
// and (in non-inter-procedural mode) whether Ret is lowered at all — only main's own
// exit matters to the non-inter-procedural analysis, since every other function body
// is inlined or abstracted away by the havoc at its call sites.
func (b *Builder) Build(fn *ir.Function, isMain bool, globals []*ir.Global) *cfg.Graph {
	ir.ComputeUses(fn)

	g := cfg.New(fn.Name, fn.Entry().Label)
	for _, blk := range fn.Blocks {
		g.AddNode(blk.Label)
	}

	ctx := &instr.Context{
		Eval:            b.Eval,
		Mem:             b.Mem,
		Graph:           g,
		Opts:            b.Opts,
		Fn:              fn,
		InterProcedural: b.InterProcedural,
		IsMain:          isMain,
		Sink:            b.Sink,
	}

	entry := fn.Entry().Label
	if isMain {
		b.emitGlobalPrelude(g, globals, entry)
	}
	b.emitNewRegionPrelude(ctx, fn, g, entry)
	if b.InterProcedural {
		b.emitRefInPrelude(ctx, fn, g, entry)
	}

	for _, blk := range fn.Blocks {
		for _, instruction := range blk.Instrs {
			instr.Lower(ctx, blk.Label, instruction)
		}
	}

	for _, blk := range fn.Blocks {
		b.materializeTerminator(ctx, g, blk)
	}

	b.unifyReturns(g, fn)

	if b.InterProcedural {
		g.Decl = b.buildFuncDecl(ctx, fn)
	}

	if b.Opts.SimplifyCFG {
		g.Simplify()
	}
	if b.Opts.PrintCFG {
		fmt.Println(g.String())
	}
	return g
}

// BuildProgram translates every function in fns, treating the one named mainName (if
// present) as main for the global-initializer prelude.
func (b *Builder) BuildProgram(fns []*ir.Function, globals []*ir.Global, mainName string) map[string]*cfg.Graph {
	out := make(map[string]*cfg.Graph, len(fns))
	for _, fn := range fns {
		out[fn.Name] = b.Build(fn, fn.Name == mainName, globals)
	}
	return out
}
