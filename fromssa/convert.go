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
	"strconv"

	"golang.org/x/tools/go/ssa"

	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/memory"
)

// converter holds the per-function state threaded through the block-by-block walk:
// the value map from ssa.Value to the already-converted ir.Value, and the oracle
// being populated alongside the IR, mirroring the shape of the teacher's own
// worklist-style SSA walk in functioncontracts.inferContracts (one map keyed by the
// real *ssa.BasicBlock, built up as blocks are visited in order).
type converter struct {
	fn     *ir.Function
	blocks map[*ssa.BasicBlock]*ir.BasicBlock
	values map[ssa.Value]ir.Value
	oracle *memory.AllocSiteOracle
}

// Convert maps one ssa.Function onto the ir data model, registering every Alloca and
// referenced Global it finds with oracle. Callers converting a whole program share one
// oracle across all of a program's functions, so array IDs and the global-initializer
// prelude stay consistent program-wide (spec.md §5's determinism requirement extends
// across function boundaries in inter-procedural mode).
func Convert(sf *ssa.Function, oracle *memory.AllocSiteOracle) *ir.Function {
	fn := &ir.Function{Name: sf.Name(), Variadic: sf.Signature.Variadic()}
	if res := sf.Signature.Results(); res != nil && res.Len() > 0 {
		fn.RetType = convertType(res.At(0).Type())
	}

	c := &converter{fn: fn, blocks: make(map[*ssa.BasicBlock]*ir.BasicBlock), values: make(map[ssa.Value]ir.Value),
		oracle: oracle}

	for _, p := range sf.Params {
		param := &ir.Param{ID: p.Name(), Typ: convertType(p.Type())}
		fn.Params = append(fn.Params, param)
		c.values[p] = param
	}

	for _, b := range sf.Blocks {
		ib := &ir.BasicBlock{Label: blockLabel(sf, b), Fn: fn, Index: b.Index}
		c.blocks[b] = ib
		fn.Blocks = append(fn.Blocks, ib)
	}
	for _, b := range sf.Blocks {
		ib := c.blocks[b]
		for _, p := range b.Preds {
			ib.Preds = append(ib.Preds, c.blocks[p])
		}
		for _, s := range b.Succs {
			ib.Succs = append(ib.Succs, c.blocks[s])
		}
	}

	for _, b := range sf.Blocks {
		c.convertBlock(b)
	}

	return fn
}

func blockLabel(sf *ssa.Function, b *ssa.BasicBlock) string {
	return sf.Name() + ".bb" + strconv.Itoa(b.Index)
}

func (c *converter) convertBlock(b *ssa.BasicBlock) {
	ib := c.blocks[b]
	for _, instr := range b.Instrs {
		if term, ok := c.asTerminator(instr); ok {
			ib.Term = term
			continue
		}
		if conv, ok := c.convertInstr(ib, instr); ok {
			ib.AddInstr(conv)
			if v, ok := instr.(ssa.Value); ok {
				if iv, ok := conv.(ir.Value); ok {
					c.values[v] = iv
				}
			}
		}
	}
}

func (c *converter) asTerminator(instr ssa.Instruction) (ir.Terminator, bool) {
	switch t := instr.(type) {
	case *ssa.Jump:
		return ir.Jump{To: c.blocks[t.Block().Succs[0]]}, true
	case *ssa.If:
		succs := t.Block().Succs
		return ir.Branch{Cond: c.operand(t.Cond), True: c.blocks[succs[0]], False: c.blocks[succs[1]]}, true
	case *ssa.Return:
		if len(t.Results) == 0 {
			return ir.Ret{}, true
		}
		return ir.Ret{Val: c.operand(t.Results[0])}, true
	case *ssa.Panic:
		return ir.UnreachableTerm{}, true
	}
	return nil, false
}

// operand resolves an already-converted ssa.Value, falling back to a fresh constant or
// undef for anything convertBlock has not seen yet (a forward reference across blocks
// that have not been walked, or a kind of ssa.Value this thin adapter does not model,
// e.g. *ssa.Function used as a value).
func (c *converter) operand(v ssa.Value) ir.Value {
	if iv, ok := c.values[v]; ok {
		return iv
	}
	switch sv := v.(type) {
	case *ssa.Const:
		if sv.Value == nil {
			return ir.Undef(convertType(sv.Type()))
		}
		if i, exact := constInt(sv); exact {
			return ir.IntConst(i, convertType(sv.Type()))
		}
		return ir.Undef(convertType(sv.Type()))
	case *ssa.Global:
		g := &ir.Global{ID: sv.Name(), Typ: convertType(sv.Type()), Init: ir.ZeroInitializer{}}
		c.values[v] = g
		c.oracle.DeclareGlobal(g)
		return g
	default:
		return ir.Undef(convertType(v.Type()))
	}
}

func constInt(k *ssa.Const) (int64, bool) {
	if k.Value == nil {
		return 0, false
	}
	i, exact := constantInt64(k)
	return i, exact
}
