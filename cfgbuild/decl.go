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
	"strconv"

	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/lower/instr"
	"github.com/gocrab/crabgo/symeval"
)

// buildFuncDecl derives fn's inter-procedural signature (spec.md §4.5 step 6): scalar
// formals in declaration order, then the ref-in/ref-out names of every pointer formal
// the oracle can resolve to a region, then the names of the regions fn allocates fresh.
func (b *Builder) buildFuncDecl(ctx *instr.Context, fn *ir.Function) *cfg.FuncDecl {
	decl := &cfg.FuncDecl{Name: fn.Name}

	for _, p := range fn.Params {
		switch ctx.Eval.GetType(p.Typ) {
		case symeval.TypeInt:
			decl.ScalarArgs = append(decl.ScalarArgs, ctx.Eval.SymVar(p).String())
		case symeval.TypePtr:
			if id := b.Mem.ArrayID(fn, p); id.Valid() {
				name := "A" + strconv.Itoa(int(id))
				decl.RefIn = append(decl.RefIn, name+"_in")
				decl.RefOut = append(decl.RefOut, name+"_out")
			}
		}
	}

	for _, id := range b.Mem.NewRegions(fn) {
		decl.New = append(decl.New, "A"+strconv.Itoa(int(id)))
	}

	if fn.RetType != nil && ctx.Eval.GetType(fn.RetType) == symeval.TypeInt {
		decl.Ret = fn.Name + ".ret"
	}

	return decl
}
