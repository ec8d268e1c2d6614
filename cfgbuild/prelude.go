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

package cfgbuild

import (
	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/linear"
	"github.com/gocrab/crabgo/lower/instr"
	"github.com/gocrab/crabgo/memory"
	"github.com/gocrab/crabgo/symeval"
)

// emitGlobalPrelude appends, to entry, one initialization statement per global whose
// region the oracle can resolve (spec.md §4.5 step 4): a data initializer becomes
// array_init, anything else (including a zero initializer) becomes assume_array(0).
// It runs once, in main only — every other function observes globals through the
// oracle's ref/mod sets at its call sites, not through a repeated prelude.
func (b *Builder) emitGlobalPrelude(g *cfg.Graph, globals []*ir.Global, entry string) {
	if b.Mem.TrackLevel() != memory.LevelArrays {
		return
	}
	for _, gl := range globals {
		id := b.Mem.ArrayIDForGlobal(gl)
		if !id.Valid() {
			continue
		}
		if data, ok := gl.Init.(ir.DataInitializer); ok {
			vals := make([]int64, len(data.Values))
			for i, v := range data.Values {
				vals[i] = v.Int64()
			}
			g.Append(entry, cfg.ArrayInit{Array: id, Values: vals})
			continue
		}
		g.Append(entry, cfg.AssumeArray{Array: id, Val: linear.Const(0)})
	}
}

// emitNewRegionPrelude appends assume_array(a, 0) for every region fn freshly
// allocates (spec.md §4.5 step 5, the same "initialization hook" spec.md §4.4's
// Allocation rule calls for) — a stack or heap allocation's content starts at zero,
// uniformly whether the region turned out to be a singleton scalar cell or an
// ordinary smashed array.
func (b *Builder) emitNewRegionPrelude(ctx *instr.Context, fn *ir.Function, g *cfg.Graph, entry string) {
	if b.Mem.TrackLevel() != memory.LevelArrays {
		return
	}
	for _, id := range b.Mem.NewRegions(fn) {
		g.Append(entry, cfg.AssumeArray{Array: id, Val: linear.Const(0)})
	}
}

// emitRefInPrelude implements spec.md §4.5 step 6's entry-block binding: for every
// pointer formal the oracle resolves to a region, prepend `a := a_in` so the function
// body — which addresses the region by its plain SymArray name — observes the
// snapshot the caller copied in at the callsite (lower/instr/call.go's
// lowerCallsite), rather than whatever the region's name happened to hold before
// this call.
func (b *Builder) emitRefInPrelude(ctx *instr.Context, fn *ir.Function, g *cfg.Graph, entry string) {
	for _, p := range fn.Params {
		if ctx.Eval.GetType(p.Typ) != symeval.TypePtr {
			continue
		}
		id := b.Mem.ArrayID(fn, p)
		if !id.Valid() {
			continue
		}
		g.Append(entry, cfg.Assign{Dst: ctx.Eval.SymArray(id), Src: linear.Var(ctx.Eval.SymArrayIn(id))})
	}
}
