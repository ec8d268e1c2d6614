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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocrab/crabgo/config"
	"github.com/gocrab/crabgo/diagnostic"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/memory"
	"github.com/gocrab/crabgo/symeval"
	"github.com/gocrab/crabgo/symtab"
)

// buildDiamond constructs:
//
//	entry: if n < 0 goto left else right
//	left:  x = 1; goto join
//	right: x = 2; goto join
//	join:  p = phi(x); return p
//
// one function with a diamond-shaped branch feeding a phi, covering edge
// materialization, ConditionLowering, PhiLowering, and single-return exit selection in
// a single Build call.
func buildDiamond() *ir.Function {
	fn := &ir.Function{Name: "f", RetType: ir.IntType{Bits: 32}}
	n := &ir.Param{ID: "n", Typ: ir.IntType{Bits: 32}}
	fn.Params = []*ir.Param{n}

	entry := &ir.BasicBlock{Label: "entry", Fn: fn}
	left := &ir.BasicBlock{Label: "left", Fn: fn}
	right := &ir.BasicBlock{Label: "right", Fn: fn}
	join := &ir.BasicBlock{Label: "join", Fn: fn}
	fn.Blocks = []*ir.BasicBlock{entry, left, right, join}

	left.Preds = []*ir.BasicBlock{entry}
	right.Preds = []*ir.BasicBlock{entry}
	join.Preds = []*ir.BasicBlock{left, right}

	cmp := &ir.ICmp{ID: "c", Pred: ir.PredSLT, X: n, Y: ir.IntConst(0, ir.IntType{Bits: 32})}
	entry.AddInstr(cmp)
	entry.Term = ir.Branch{Cond: cmp, True: left, False: right}

	xLeft := ir.IntConst(1, ir.IntType{Bits: 32})
	left.Term = ir.Jump{To: join}

	xRight := ir.IntConst(2, ir.IntType{Bits: 32})
	right.Term = ir.Jump{To: join}

	p := &ir.Phi{ID: "p", Typ: ir.IntType{Bits: 32}, Edges: []ir.Value{xLeft, xRight}}
	join.AddInstr(p)
	join.Term = ir.Ret{Val: p}

	return fn
}

func newBuilder() *Builder {
	eval := symeval.New(symtab.NewFactory(), memory.NewAllocSiteOracle(memory.LevelArrays))
	return New(eval, config.Default(), diagnostic.NewSink(0), false)
}

func TestBuildDiamondHasExactlyOneExit(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	fn := buildDiamond()

	g := b.Build(fn, true, nil)

	require.NotEmpty(t, g.Exit)
	require.Equal(t, "join", g.Exit)
}

func TestBuildDiamondMaterializesBranchEdgeBlocks(t *testing.T) {
	t.Parallel()

	b := newBuilder()
	fn := buildDiamond()

	g := b.Build(fn, true, nil)

	entry := g.Node("entry")
	require.NotNil(t, entry)
	require.Len(t, entry.Succs, 2)
	require.Contains(t, entry.Succs, "entry.t.left")
	require.Contains(t, entry.Succs, "entry.f.right")

	trueEdge := g.Node("entry.t.left")
	require.NotNil(t, trueEdge)
	require.NotEmpty(t, trueEdge.Stmts, "the branch condition's assume should live on the edge block")
}

func TestBuildDiamondSimplifyKeepsExactlyOneExit(t *testing.T) {
	t.Parallel()

	eval := symeval.New(symtab.NewFactory(), memory.NewAllocSiteOracle(memory.LevelArrays))
	b := New(eval, config.Default(config.WithSimplifyCFG()), diagnostic.NewSink(0), false)
	fn := buildDiamond()

	g := b.Build(fn, true, nil)

	require.NotEmpty(t, g.Exit)
	require.NotNil(t, g.Node(g.Exit))
}
