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
	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/linear"
	"github.com/gocrab/crabgo/symeval"
)

func (c *Context) lowerConvert(block string, v *ir.Convert) {
	if !c.Eval.IsTracked(v) {
		return
	}
	if c.Opts.DisablePointerArith && c.Eval.GetType(v.Typ) != symeval.TypeInt {
		return
	}
	if (v.Op == ir.OpZExt || v.Op == ir.OpSExt) && usesExclusivelyAsGEPIndex(v) {
		return
	}
	if allUsesAreNonTrackMemory(v) {
		return
	}

	src, ok := c.Eval.Lookup(v.X)
	if !ok {
		if it, isInt := v.X.Type().(ir.IntType); isInt && it.Bits == 1 {
			dst := c.Eval.SymVar(v)
			lo := linear.NewConstraint(linear.Var(dst), linear.RelGE, linear.Const(0))
			hi := linear.NewConstraint(linear.Var(dst), linear.RelLE, linear.Const(1))
			c.Graph.Append(block, cfg.Assume{Cond: lo})
			c.Graph.Append(block, cfg.Assume{Cond: hi})
			return
		}
		c.maybeHavoc(block, v)
		return
	}
	c.Graph.Append(block, cfg.Assign{Dst: c.Eval.SymVar(v), Src: src})
}

// usesExclusivelyAsGEPIndex reports whether every use of v is as the dynamic
// element-index operand of a GetElementPtr (never its base pointer), the
// "ZEXT/SEXT whose uses are exclusively address-index operands" optimization of
// spec.md §4.4.
func usesExclusivelyAsGEPIndex(v ir.Value) bool {
	instr, ok := v.(ir.Instruction)
	if !ok {
		return false
	}
	uc, ok := instr.(interface{ Uses() []ir.Instruction })
	if !ok {
		return false
	}
	uses := uc.Uses()
	if len(uses) == 0 {
		return false
	}
	for _, u := range uses {
		gep, ok := u.(*ir.GetElementPtr)
		if !ok {
			return false
		}
		if gep.Base == v {
			return false
		}
		usedAsIndex := false
		for _, idx := range gep.Indices {
			if idx.Elem == v {
				usedAsIndex = true
			}
		}
		if !usedAsIndex {
			return false
		}
	}
	return true
}

// allUsesAreNonTrackMemory is the helper of the same name in spec.md §4.4: true iff
// every use of v is a load/store whose value-type is non-integer, a call to a
// shadow-memory/debug intrinsic, or a cast transitively satisfying the same property.
func allUsesAreNonTrackMemory(v ir.Value) bool {
	instr, ok := v.(ir.Instruction)
	if !ok {
		return false
	}
	uc, ok := instr.(interface{ Uses() []ir.Instruction })
	if !ok {
		return false
	}
	uses := uc.Uses()
	if len(uses) == 0 {
		return false
	}
	return allUsesAreNonTrackMemoryRec(uses, make(map[ir.Value]bool))
}

func allUsesAreNonTrackMemoryRec(uses []ir.Instruction, visiting map[ir.Value]bool) bool {
	for _, u := range uses {
		switch use := u.(type) {
		case *ir.Load:
			if isIntegerType(use.Typ) {
				return false
			}
		case *ir.Store:
			if isIntegerType(use.Val.Type()) {
				return false
			}
		case *ir.Call:
			if !isShadowOrDebugCall(use.CalleeName()) {
				return false
			}
		case *ir.Convert:
			if visiting[use] {
				continue
			}
			visiting[use] = true
			if !allUsesAreNonTrackMemory(use) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func isIntegerType(t ir.Type) bool {
	_, ok := t.(ir.IntType)
	return ok
}
