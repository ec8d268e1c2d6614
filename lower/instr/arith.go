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
	"math/big"

	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/linear"
)

// lowerBinOp dispatches a BinOp to arithmetic, shift, or bitwise lowering.
func (c *Context) lowerBinOp(block string, b *ir.BinOp) {
	switch b.Op {
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpSDiv, ir.OpSRem, ir.OpUDiv, ir.OpURem:
		c.lowerArith(block, b)
	case ir.OpShl:
		c.lowerShift(block, b, ir.OpMul)
	case ir.OpAShr:
		c.lowerShift(block, b, ir.OpSDiv)
	case ir.OpLShr:
		// LSHR is not given a linear translation: havoc unconditionally, like any
		// other unhandled opcode.
		c.havoc(block, b)
	case ir.OpAnd, ir.OpOr, ir.OpXor:
		c.lowerBitwise(block, b)
	default:
		c.maybeHavoc(block, b)
	}
}

var arithPrimitive = map[ir.Opcode]cfg.ArithOp{
	ir.OpAdd:  cfg.OpAdd,
	ir.OpSub:  cfg.OpSub,
	ir.OpMul:  cfg.OpMul,
	ir.OpSDiv: cfg.OpDiv,
	ir.OpSRem: cfg.OpRem,
	ir.OpUDiv: cfg.OpUDiv,
	ir.OpURem: cfg.OpURem,
}

func (c *Context) lowerArith(block string, b *ir.BinOp) {
	x, xok := c.Eval.Lookup(b.X)
	y, yok := c.Eval.Lookup(b.Y)
	if !xok || !yok {
		// Either operand is untracked: the destination is left unconstrained,
		// implicitly havoc by the include_havoc option.
		c.maybeHavoc(block, b)
		return
	}

	op := arithPrimitive[b.Op]
	dst := c.Eval.SymVar(b)

	if (b.Op == ir.OpUDiv || b.Op == ir.OpURem) && isConst(b.X) && isConst(b.Y) {
		// The constant-folder upstream is expected to have simplified this; we
		// cannot express an unsigned op over two constants faithfully.
		c.Sink.Warnf("crabgo: unsigned %s over two constants in %s, havocking destination", b.Op, c.Fn.Name)
		c.havoc(block, b)
		return
	}

	if isConst(b.X) {
		// The primitive's left operand is assumed to be a variable; materialize
		// the constant into dst first, then reissue with dst on the left.
		c.Graph.Append(block, cfg.Assign{Dst: dst, Src: x})
		c.Graph.Append(block, cfg.Arith{Dst: dst, Op: op, X: linear.Var(dst), Y: y})
		return
	}

	c.Graph.Append(block, cfg.Arith{Dst: dst, Op: op, X: x, Y: y})
}

func (c *Context) lowerShift(block string, b *ir.BinOp, asOp ir.Opcode) {
	k, ok := constShiftAmount(b.Y)
	if !ok {
		c.havoc(block, b)
		return
	}
	x, xok := c.Eval.Lookup(b.X)
	if !xok {
		c.maybeHavoc(block, b)
		return
	}
	scale := new(big.Int).Lsh(big.NewInt(1), uint(k))
	dst := c.Eval.SymVar(b)
	op := cfg.OpMul
	if asOp == ir.OpSDiv {
		op = cfg.OpDiv
	}
	c.Graph.Append(block, cfg.Arith{Dst: dst, Op: op, X: x, Y: linear.ConstBig(scale)})
}

func (c *Context) lowerBitwise(block string, b *ir.BinOp) {
	x, xok := c.Eval.Lookup(b.X)
	y, yok := c.Eval.Lookup(b.Y)
	if !xok || !yok {
		c.havoc(block, b)
		return
	}
	var op cfg.ArithOp
	switch b.Op {
	case ir.OpAnd:
		op = cfg.OpAnd
	case ir.OpOr:
		op = cfg.OpOr
	case ir.OpXor:
		op = cfg.OpXor
	}
	c.Graph.Append(block, cfg.Arith{Dst: c.Eval.SymVar(b), Op: op, X: x, Y: y})
}

func isConst(v ir.Value) bool {
	_, ok := v.(*ir.Const)
	return ok
}

// constShiftAmount returns k, true when v is a non-negative integer constant.
func constShiftAmount(v ir.Value) (int64, bool) {
	c, ok := v.(*ir.Const)
	if !ok || c.Kind != ir.ConstInt || c.Int.Sign() < 0 {
		return 0, false
	}
	return c.Int.Int64(), true
}
