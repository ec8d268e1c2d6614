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

package cond

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/linear"
	"github.com/gocrab/crabgo/memory"
	"github.com/gocrab/crabgo/symeval"
	"github.com/gocrab/crabgo/symtab"
)

func newEval() *symeval.Eval {
	return symeval.New(symtab.NewFactory(), memory.NewAllocSiteOracle(memory.LevelNone))
}

func TestLowerSLTEmitsAssumeAtFalsePolarity(t *testing.T) {
	t.Parallel()

	eval := newEval()
	n := &ir.Param{ID: "n", Typ: ir.IntType{Bits: 32}}
	cmp := &ir.ICmp{ID: "c", Pred: ir.PredSLT, X: n, Y: ir.IntConst(10, ir.IntType{Bits: 32})}

	g := cfg.New("f", "entry")
	g.AddNode("entry")
	Lower(g, "entry", eval, cmp, false)

	require.Len(t, g.Node("entry").Stmts, 1)
	stmt, ok := g.Node("entry").Stmts[0].(cfg.Assume)
	require.True(t, ok)
	require.Equal(t, linear.RelLE, stmt.Cond.Rel)
}

func TestLowerNegatesAtTruePolarity(t *testing.T) {
	t.Parallel()

	eval := newEval()
	n := &ir.Param{ID: "n", Typ: ir.IntType{Bits: 32}}
	cmp := &ir.ICmp{ID: "c", Pred: ir.PredEQ, X: n, Y: ir.IntConst(0, ir.IntType{Bits: 32})}

	falseG := cfg.New("f", "entry")
	falseG.AddNode("entry")
	Lower(falseG, "entry", eval, cmp, false)
	falseRel := falseG.Node("entry").Stmts[0].(cfg.Assume).Cond.Rel

	trueG := cfg.New("f", "entry")
	trueG.AddNode("entry")
	Lower(trueG, "entry", eval, cmp, true)
	trueRel := trueG.Node("entry").Stmts[0].(cfg.Assume).Cond.Rel

	require.Equal(t, linear.RelEQ, falseRel)
	require.Equal(t, linear.RelNE, trueRel)
}

func TestLowerULTEmitsNonNegativityThenSignedForm(t *testing.T) {
	t.Parallel()

	eval := newEval()
	x := &ir.Param{ID: "x", Typ: ir.IntType{Bits: 32}}
	y := &ir.Param{ID: "y", Typ: ir.IntType{Bits: 32}}
	cmp := &ir.ICmp{ID: "c", Pred: ir.PredULT, X: x, Y: y}

	g := cfg.New("f", "entry")
	g.AddNode("entry")
	Lower(g, "entry", eval, cmp, false)

	// Two non-negativity assumes (x >= 0, y >= 0) plus the signed-form x <= y-1.
	require.Len(t, g.Node("entry").Stmts, 3)
	last := g.Node("entry").Stmts[2].(cfg.Assume)
	require.Equal(t, linear.RelLE, last.Cond.Rel)
}

func TestLowerULTAtTruePolarityNeverNegatesNonNegativity(t *testing.T) {
	t.Parallel()

	eval := newEval()
	x := &ir.Param{ID: "x", Typ: ir.IntType{Bits: 32}}
	y := &ir.Param{ID: "y", Typ: ir.IntType{Bits: 32}}
	cmp := &ir.ICmp{ID: "c", Pred: ir.PredULT, X: x, Y: y}

	g := cfg.New("f", "entry")
	g.AddNode("entry")
	Lower(g, "entry", eval, cmp, true)

	// Two non-negativity assumes (x >= 0, y >= 0), unaffected by polarity, plus the
	// negated signed-form (NOT x <= y-1, i.e. x >= y).
	require.Len(t, g.Node("entry").Stmts, 3)
	first := g.Node("entry").Stmts[0].(cfg.Assume)
	second := g.Node("entry").Stmts[1].(cfg.Assume)
	last := g.Node("entry").Stmts[2].(cfg.Assume)
	require.Equal(t, linear.RelGE, first.Cond.Rel)
	require.Equal(t, linear.RelGE, second.Cond.Rel)
	require.NotEqual(t, linear.RelLE, last.Cond.Rel)
}

func TestLowerAndShortCircuitsIntoBothOperandsAtFalsePolarity(t *testing.T) {
	t.Parallel()

	eval := newEval()
	x := &ir.Param{ID: "x", Typ: ir.IntType{Bits: 32}}
	y := &ir.Param{ID: "y", Typ: ir.IntType{Bits: 32}}
	left := &ir.ICmp{ID: "l", Pred: ir.PredSLT, X: x, Y: ir.IntConst(5, ir.IntType{Bits: 32})}
	right := &ir.ICmp{ID: "r", Pred: ir.PredSLT, X: y, Y: ir.IntConst(5, ir.IntType{Bits: 32})}
	and := &ir.BinOp{ID: "a", Op: ir.OpAnd, X: left, Y: right, Typ: ir.IntType{Bits: 1}}

	g := cfg.New("f", "entry")
	g.AddNode("entry")
	Lower(g, "entry", eval, and, false)

	require.Len(t, g.Node("entry").Stmts, 2)
}

func TestSingleConstraintHandlesSLT(t *testing.T) {
	t.Parallel()

	eval := newEval()
	n := &ir.Param{ID: "n", Typ: ir.IntType{Bits: 32}}
	cmp := &ir.ICmp{ID: "c", Pred: ir.PredSLT, X: n, Y: ir.IntConst(10, ir.IntType{Bits: 32})}

	cons, ok := SingleConstraint(eval, cmp)
	require.True(t, ok)
	require.Equal(t, linear.RelLE, cons.Rel)
}

func TestSingleConstraintRejectsULT(t *testing.T) {
	t.Parallel()

	eval := newEval()
	n := &ir.Param{ID: "n", Typ: ir.IntType{Bits: 32}}
	cmp := &ir.ICmp{ID: "c", Pred: ir.PredULT, X: n, Y: ir.IntConst(10, ir.IntType{Bits: 32})}

	_, ok := SingleConstraint(eval, cmp)
	require.False(t, ok, "ULT conjoins a non-negativity constraint, so it is not a single constraint")
}

func TestSingleConstraintRejectsUnresolvedOperand(t *testing.T) {
	t.Parallel()

	eval := newEval()
	cmp := &ir.ICmp{ID: "c", Pred: ir.PredEQ, X: ir.Undef(ir.IntType{Bits: 32}), Y: ir.IntConst(1, ir.IntType{Bits: 32})}

	_, ok := SingleConstraint(eval, cmp)
	require.False(t, ok)
}

func TestLowerUnrepresentableConditionIsSilent(t *testing.T) {
	t.Parallel()

	eval := newEval()
	g := cfg.New("f", "entry")
	g.AddNode("entry")
	Lower(g, "entry", eval, ir.Undef(ir.IntType{Bits: 1}), false)

	require.Empty(t, g.Node("entry").Stmts)
}
