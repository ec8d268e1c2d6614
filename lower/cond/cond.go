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

// Package cond implements ConditionLowering (spec.md §4.2): converting a
// boolean-producing instruction into a set of linear constraints under a polarity
// flag, restricted to the conjunctive fragment. Unrepresentable conditions become
// empty constraint sets — a sound over-approximation, never an error (spec.md §4.2
// "Errors").
package cond

import (
	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/linear"
	"github.com/gocrab/crabgo/symeval"
)

// Lower appends to block (via g.Append) the assume statements equivalent to
// `polarity ? ¬cond : cond`, where cond is a boolean-producing IR value: an *ir.ICmp, a
// short-circuit and/or *ir.BinOp (OpAnd/OpOr over two 1-bit operands), or anything
// else (modeled conservatively). polarity=true means "emit the negation of cond".
func Lower(g *cfg.Graph, block string, eval *symeval.Eval, cond ir.Value, polarity bool) {
	switch v := cond.(type) {
	case *ir.ICmp:
		lowerCompare(g, block, eval, v, polarity)
	case *ir.BinOp:
		if isShortCircuitPattern(v.Op, polarity) {
			x, xok := asCompare(v.X)
			y, yok := asCompare(v.Y)
			if xok && yok {
				lowerCompare(g, block, eval, x, polarity)
				lowerCompare(g, block, eval, y, polarity)
				return
			}
		}
		lowerConservative(g, block, eval, v, polarity)
	default:
		lowerConservative(g, block, eval, cond, polarity)
	}
}

func asCompare(v ir.Value) (*ir.ICmp, bool) {
	c, ok := v.(*ir.ICmp)
	return c, ok
}

// isShortCircuitPattern implements spec.md §4.2's De Morgan case selection: AND at
// non-negated polarity, or OR at negated polarity (¬(a||b) ≡ ¬a && ¬b).
func isShortCircuitPattern(op ir.Opcode, polarity bool) bool {
	if op == ir.OpAnd && !polarity {
		return true
	}
	if op == ir.OpOr && polarity {
		return true
	}
	return false
}

// lowerConservative implements the "any other combination" fallback: if the boolean
// itself is tracked and has additional non-branch uses, pin its symbolic variable to
// the appropriate constant and do not attempt to decompose it.
func lowerConservative(g *cfg.Graph, block string, eval *symeval.Eval, v ir.Value, polarity bool) {
	if !eval.IsTracked(v) {
		return
	}
	instr, ok := v.(ir.Instruction)
	if !ok {
		return
	}
	base, hasUses := numUses(instr)
	if !hasUses || base <= 1 {
		// Its only use is the branch/select driving this lowering; nothing else
		// depends on its value, so there is nothing to pin.
		return
	}
	val := int64(0)
	if !polarity {
		val = 1
	}
	g.Append(block, cfg.Assign{Dst: eval.SymVar(v), Src: linear.Const(val)})
}

// numUses reports instr's use count, if the concrete type exposes one.
func numUses(instr ir.Instruction) (int, bool) {
	type usesCounter interface{ NumUses() int }
	if u, ok := instr.(usesCounter); ok {
		return u.NumUses(), true
	}
	return 0, false
}

// normalize rewrites a strict-greater or not-less predicate by swapping operands, so
// only EQ, NE, ULT/SLT, ULE/SLE remain (spec.md §4.2 "Compare normalization").
// Normalizing twice equals normalizing once: normalize is idempotent because its
// result always satisfies Predicate.IsNormalized, and normalize is a no-op on an
// already-normalized predicate.
func normalize(pred ir.Predicate, x, y ir.Value) (ir.Predicate, ir.Value, ir.Value) {
	if pred.IsNormalized() {
		return pred, x, y
	}
	return pred.Swapped(), y, x
}

// SingleConstraint returns the linear constraint equivalent to c holding (i.e. c's
// normalized compare at polarity=false), for the predicates spec.md §4.2 models as
// exactly one constraint: EQ, NE, SLT, SLE. ULT/ULE are excluded even though they
// normalize cleanly, because their lowering also conjoins a non-negativity constraint
// on each variable operand (the ULT/ULE case in lowerCompare below) — more than "a
// single linear constraint", so they do not qualify for Select's native
// conditional-move case (spec.md §4.4 "Select") and fall back to the boolean-keyed
// form instead. Returns ok=false when either operand fails lookup.
func SingleConstraint(eval *symeval.Eval, c *ir.ICmp) (linear.Constraint, bool) {
	pred, x, y := normalize(c.Pred, c.X, c.Y)
	a, aok := eval.Lookup(x)
	b, bok := eval.Lookup(y)
	if !aok || !bok {
		return linear.Constraint{}, false
	}
	switch pred {
	case ir.PredEQ:
		return linear.NewConstraint(a, linear.RelEQ, b), true
	case ir.PredNE:
		return linear.NewConstraint(a, linear.RelNE, b), true
	case ir.PredSLT:
		return linear.NewConstraint(a, linear.RelLE, b.AddConst(-1)), true
	case ir.PredSLE:
		return linear.NewConstraint(a, linear.RelLE, b), true
	default:
		return linear.Constraint{}, false
	}
}

func lowerCompare(g *cfg.Graph, block string, eval *symeval.Eval, c *ir.ICmp, polarity bool) {
	pred, x, y := normalize(c.Pred, c.X, c.Y)
	a, aok := eval.Lookup(x)
	b, bok := eval.Lookup(y)
	if !aok || !bok {
		return
	}

	emit := func(cons linear.Constraint) {
		if polarity {
			cons = cons.Negate()
		}
		g.Append(block, cfg.Assume{Cond: cons})
	}

	switch pred {
	case ir.PredEQ:
		emit(linear.NewConstraint(a, linear.RelEQ, b))
	case ir.PredNE:
		emit(linear.NewConstraint(a, linear.RelNE, b))
	case ir.PredSLT:
		emit(linear.NewConstraint(a, linear.RelLE, b.AddConst(-1)))
	case ir.PredSLE:
		emit(linear.NewConstraint(a, linear.RelLE, b))
	case ir.PredULT, ir.PredULE:
		// Deliberate fall-through per spec.md §9's open question: emit the
		// non-negativity constraints for variable operands, THEN the signed-form
		// constraints for the same predicate, rather than branching exclusively
		// into one or the other. The non-negativity facts hold regardless of
		// which branch edge this is — an unsigned operand is never negative on
		// either side of the compare — so they go straight to g.Append rather
		// than through emit, which would flip them to a<0/b<0 at polarity=true.
		if _, ok := eval.IsVar(a); ok {
			g.Append(block, cfg.Assume{Cond: linear.NewConstraint(a, linear.RelGE, linear.Const(0))})
		}
		if _, ok := eval.IsVar(b); ok {
			g.Append(block, cfg.Assume{Cond: linear.NewConstraint(b, linear.RelGE, linear.Const(0))})
		}
		if pred == ir.PredULT {
			emit(linear.NewConstraint(a, linear.RelLE, b.AddConst(-1)))
		} else {
			emit(linear.NewConstraint(a, linear.RelLE, b))
		}
	}

	// Compare-with-extra-uses: if cmp has >= 2 uses, also pin its own symbolic
	// variable so later code depending on the boolean sees a consistent value.
	if c.NumUses() >= 2 {
		val := int64(1)
		if polarity {
			val = 0
		}
		g.Append(block, cfg.Assign{Dst: eval.SymVar(c), Src: linear.Const(val)})
	}
}
