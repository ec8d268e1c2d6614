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

func TestLowerDispatchesBinOp(t *testing.T) {
	t.Parallel()

	ctx, g := newContext(config.Default())
	x := &ir.Param{ID: "x", Typ: ir.IntType{Bits: 32}}
	y := &ir.Param{ID: "y", Typ: ir.IntType{Bits: 32}}
	add := &ir.BinOp{ID: "a", Op: ir.OpAdd, X: x, Y: y, Typ: ir.IntType{Bits: 32}}

	Lower(ctx, "entry", add)

	require.Len(t, g.Node("entry").Stmts, 1)
	_, ok := g.Node("entry").Stmts[0].(cfg.Arith)
	require.True(t, ok)
}

func TestLowerIgnoresICmpAndPhi(t *testing.T) {
	t.Parallel()

	ctx, g := newContext(config.Default())
	n := &ir.Param{ID: "n", Typ: ir.IntType{Bits: 32}}
	cmp := &ir.ICmp{ID: "c", Pred: ir.PredSLT, X: n, Y: ir.IntConst(0, ir.IntType{Bits: 32})}
	phi := &ir.Phi{ID: "p", Typ: ir.IntType{Bits: 32}, Edges: []ir.Value{ir.IntConst(1, ir.IntType{Bits: 32})}}

	Lower(ctx, "entry", cmp)
	Lower(ctx, "entry", phi)

	require.Empty(t, g.Node("entry").Stmts)
}
