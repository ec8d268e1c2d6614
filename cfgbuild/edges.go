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
	"github.com/gocrab/crabgo/lower/cond"
	"github.com/gocrab/crabgo/lower/instr"
	"github.com/gocrab/crabgo/lower/phi"
)

// materializeTerminator wires blk's terminator into the graph: a Jump becomes a plain
// edge, a Branch becomes two synthetic edge blocks carrying the branch condition's
// assume statements (spec.md §4.5 step 2), and both forms append the successor's phi
// assignments to the edge they run through (step 3). A statically-determined branch
// condition marks its dead edge with the `unreachable` statement rather than pruning it
// outright — the edge still exists so the invariant "every node has the successors its
// label set implies" holds.
func (b *Builder) materializeTerminator(ctx *instr.Context, g *cfg.Graph, blk *ir.BasicBlock) {
	switch t := blk.Term.(type) {
	case ir.Jump:
		g.AddEdge(blk.Label, t.To.Label)
		idx := predIndex(t.To, blk)
		if idx < 0 {
			fail(ctx.Fn, nil, "block %s is not among %s's recorded predecessors", blk.Label, t.To.Label)
		}
		phi.Lower(g, blk.Label, ctx.Eval, t.To, idx, ctx.Opts)

	case ir.Branch:
		trueEdge := blk.Label + ".t." + t.True.Label
		falseEdge := blk.Label + ".f." + t.False.Label
		g.AddNode(trueEdge)
		g.AddNode(falseEdge)
		g.AddEdge(blk.Label, trueEdge)
		g.AddEdge(blk.Label, falseEdge)
		g.AddEdge(trueEdge, t.True.Label)
		g.AddEdge(falseEdge, t.False.Label)

		cond.Lower(g, trueEdge, ctx.Eval, t.Cond, false)
		cond.Lower(g, falseEdge, ctx.Eval, t.Cond, true)

		if c, ok := t.Cond.(*ir.Const); ok && c.Kind == ir.ConstInt {
			if c.Int.Sign() != 0 {
				g.Append(falseEdge, cfg.Unreachable{})
			} else {
				g.Append(trueEdge, cfg.Unreachable{})
			}
		}

		trueIdx, falseIdx := predIndex(t.True, blk), predIndex(t.False, blk)
		if trueIdx < 0 || falseIdx < 0 {
			fail(ctx.Fn, nil, "block %s is not among its branch targets' recorded predecessors", blk.Label)
		}
		phi.Lower(g, trueEdge, ctx.Eval, t.True, trueIdx, ctx.Opts)
		phi.Lower(g, falseEdge, ctx.Eval, t.False, falseIdx, ctx.Opts)

	case ir.Ret:
		ctx.LowerReturn(blk.Label, &t)

	case ir.UnreachableTerm:
		g.Append(blk.Label, cfg.Unreachable{})
	}
}

// predIndex returns the index of pred within succ.Preds, so PhiLowering knows which
// edge of each phi to read.
func predIndex(succ, pred *ir.BasicBlock) int {
	for i, p := range succ.Preds {
		if p == pred {
			return i
		}
	}
	return -1
}

// unifyReturns satisfies spec.md §3's "exactly one CFG exit" invariant. With a
// single returning block, that block is itself the exit — no synthetic node or
// edge is added. With two or more, spec.md §4.5 step 3 gathers them into one
// synthetic exit node so every returning block still funnels into a single exit.
func (b *Builder) unifyReturns(g *cfg.Graph, fn *ir.Function) {
	var retBlocks []string
	for _, blk := range fn.Blocks {
		if _, ok := blk.Term.(ir.Ret); ok {
			retBlocks = append(retBlocks, blk.Label)
		}
	}
	switch len(retBlocks) {
	case 0:
		return
	case 1:
		g.DeclareExit(retBlocks[0])
		return
	}
	exit := fn.Name + ".exit"
	g.AddNode(exit)
	for _, lbl := range retBlocks {
		g.AddEdge(lbl, exit)
	}
	g.DeclareExit(exit)
}
