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

package fromssa

import (
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ssa"

	"github.com/gocrab/crabgo/ir"
)

var binOpTable = map[token.Token]ir.Opcode{
	token.ADD: ir.OpAdd,
	token.SUB: ir.OpSub,
	token.MUL: ir.OpMul,
	token.QUO: ir.OpSDiv,
	token.REM: ir.OpSRem,
	token.AND: ir.OpAnd,
	token.OR:  ir.OpOr,
	token.XOR: ir.OpXor,
	token.SHL: ir.OpShl,
	token.SHR: ir.OpAShr,
}

var cmpTable = map[token.Token]ir.Predicate{
	token.EQL: ir.PredEQ,
	token.NEQ: ir.PredNE,
	token.LSS: ir.PredSLT,
	token.LEQ: ir.PredSLE,
	token.GTR: ir.PredSGT,
	token.GEQ: ir.PredSGE,
}

// convertInstr maps one non-terminator ssa.Instruction. The second return reports
// whether the instruction produced anything this adapter models; an unrecognized
// ssa.Instruction is dropped rather than causing a hard failure, since this package is
// a demonstration frontend, not a certified one.
func (c *converter) convertInstr(b *ir.BasicBlock, instr ssa.Instruction) (ir.Instruction, bool) {
	switch v := instr.(type) {
	case *ssa.BinOp:
		if pred, ok := cmpTable[v.Op]; ok {
			return &ir.ICmp{ID: v.Name(), Pred: c.normalizeUnsigned(pred, v.X.Type()), X: c.operand(v.X), Y: c.operand(v.Y)}, true
		}
		op, ok := binOpTable[v.Op]
		if !ok {
			return nil, false
		}
		if op == ir.OpSDiv && isUnsigned(v.X.Type()) {
			op = ir.OpUDiv
		}
		if op == ir.OpSRem && isUnsigned(v.X.Type()) {
			op = ir.OpURem
		}
		if op == ir.OpAShr && isUnsigned(v.X.Type()) {
			op = ir.OpLShr
		}
		return &ir.BinOp{ID: v.Name(), Op: op, X: c.operand(v.X), Y: c.operand(v.Y), Typ: convertType(v.Type())}, true

	case *ssa.UnOp:
		switch v.Op {
		case token.MUL:
			return &ir.Load{ID: v.Name(), Ptr: c.operand(v.X), Typ: convertType(v.Type())}, true
		case token.SUB:
			zero := ir.IntConst(0, convertType(v.Type()))
			return &ir.BinOp{ID: v.Name(), Op: ir.OpSub, X: zero, Y: c.operand(v.X), Typ: convertType(v.Type())}, true
		case token.XOR, token.NOT:
			return &ir.BinOp{ID: v.Name(), Op: ir.OpXor, X: c.operand(v.X), Y: ir.IntConst(-1, convertType(v.Type())), Typ: convertType(v.Type())}, true
		default:
			return nil, false
		}

	case *ssa.Convert:
		from, to := convertType(v.X.Type()), convertType(v.Type())
		op := ir.OpBitCast
		if fi, fok := from.(ir.IntType); fok {
			if ti, tok := to.(ir.IntType); tok {
				switch {
				case ti.Bits > fi.Bits && isUnsigned(v.X.Type()):
					op = ir.OpZExt
				case ti.Bits > fi.Bits:
					op = ir.OpSExt
				case ti.Bits < fi.Bits:
					op = ir.OpTrunc
				}
			}
		}
		return &ir.Convert{ID: v.Name(), Op: op, X: c.operand(v.X), Typ: to}, true

	case *ssa.Phi:
		edges := make([]ir.Value, len(v.Edges))
		for i, e := range v.Edges {
			edges[i] = c.operand(e)
		}
		return &ir.Phi{ID: v.Name(), Typ: convertType(v.Type()), Edges: edges}, true

	case *ssa.FieldAddr:
		return &ir.GetElementPtr{
			ID:   v.Name(),
			Base: c.operand(v.X),
			Indices: []ir.GEPIndex{{
				Field:    v.Field,
				StepType: ir.UnknownType{Name: "struct"},
			}},
			Typ: convertType(v.Type()),
		}, true

	case *ssa.IndexAddr:
		elemType := convertType(v.Type())
		if pt, ok := elemType.(ir.PtrType); ok {
			elemType = pt.Elem
		}
		return &ir.GetElementPtr{
			ID:      v.Name(),
			Base:    c.operand(v.X),
			Indices: []ir.GEPIndex{{Elem: c.operand(v.Index), StepType: elemType}},
			Typ:     convertType(v.Type()),
		}, true

	case *ssa.Alloc:
		elemType := convertType(v.Type())
		if pt, ok := elemType.(ir.PtrType); ok {
			elemType = pt.Elem
		}
		a := &ir.Alloca{ID: v.Name(), Elem: elemType}
		c.oracle.DeclareAlloca(c.fn, a)
		return a, true

	case *ssa.Store:
		return &ir.Store{Ptr: c.operand(v.Addr), Val: c.operand(v.Val)}, true

	case *ssa.Call:
		return c.convertCall(v), true

	default:
		return nil, false
	}
}

// normalizeUnsigned upgrades a signed compare predicate to its unsigned counterpart
// when the compared operands are an unsigned integer type, so lower/cond's ULT/ULE
// handling actually gets exercised by real Go source (Go's own token set does not
// distinguish signed/unsigned compares; the distinction lives in the operand type).
func (c *converter) normalizeUnsigned(pred ir.Predicate, t types.Type) ir.Predicate {
	if !isUnsigned(t) {
		return pred
	}
	switch pred {
	case ir.PredSLT:
		return ir.PredULT
	case ir.PredSLE:
		return ir.PredULE
	case ir.PredSGT:
		return ir.PredUGT
	case ir.PredSGE:
		return ir.PredUGE
	default:
		return pred
	}
}
