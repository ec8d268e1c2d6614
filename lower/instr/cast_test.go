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

package instr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/config"
	"github.com/gocrab/crabgo/ir"
)

func TestLowerConvertAssignsWhenSourceResolves(t *testing.T) {
	t.Parallel()

	ctx, g := newContext(config.Default())
	x := &ir.Param{ID: "x", Typ: ir.IntType{Bits: 32}}
	conv := &ir.Convert{ID: "c", Op: ir.OpZExt, X: x, Typ: ir.IntType{Bits: 64}}

	ctx.lowerConvert("entry", conv)

	require.Len(t, g.Node("entry").Stmts, 1)
	_, ok := g.Node("entry").Stmts[0].(cfg.Assign)
	require.True(t, ok)
}

func TestLowerConvertSkipsWhenUsedExclusivelyAsGEPIndex(t *testing.T) {
	t.Parallel()

	ctx, g := newContext(config.Default())
	fn := ctx.Fn
	blk := &ir.BasicBlock{Label: "entry", Fn: fn}
	fn.Blocks = []*ir.BasicBlock{blk}

	x := &ir.Param{ID: "x", Typ: ir.IntType{Bits: 32}}
	conv := &ir.Convert{ID: "c", Op: ir.OpZExt, X: x, Typ: ir.IntType{Bits: 64}}
	blk.AddInstr(conv)
	base := &ir.Alloca{ID: "a", Elem: ir.IntType{Bits: 32}}
	blk.AddInstr(base)
	gep := &ir.GetElementPtr{ID: "g", Base: base, Indices: []ir.GEPIndex{{Elem: conv, StepType: ir.IntType{Bits: 32}}}, Typ: ir.PtrType{Elem: ir.IntType{Bits: 32}}}
	blk.AddInstr(gep)

	ir.ComputeUses(fn)

	ctx.lowerConvert("entry", conv)

	require.Empty(t, g.Node("entry").Stmts)
}

func TestLowerConvertAssumesBoundsFor1BitUnresolvedSource(t *testing.T) {
	t.Parallel()

	ctx, g := newContext(config.Default())
	conv := &ir.Convert{ID: "c", Op: ir.OpZExt, X: ir.Undef(ir.IntType{Bits: 1}), Typ: ir.IntType{Bits: 32}}

	ctx.lowerConvert("entry", conv)

	require.Len(t, g.Node("entry").Stmts, 2)
	for _, s := range g.Node("entry").Stmts {
		_, ok := s.(cfg.Assume)
		require.True(t, ok)
	}
}

func TestLowerConvertSkipsWhenDisablePointerArithAndNonInteger(t *testing.T) {
	t.Parallel()

	ctx, g := newContext(config.Default(config.WithDisablePointerArith()))
	ctx.Mem = ctx.Eval.Mem
	x := &ir.Param{ID: "x", Typ: ir.IntType{Bits: 32}}
	conv := &ir.Convert{ID: "c", Op: ir.OpBitCast, X: x, Typ: ir.PtrType{Elem: ir.IntType{Bits: 32}}}

	ctx.lowerConvert("entry", conv)

	require.Empty(t, g.Node("entry").Stmts)
}
