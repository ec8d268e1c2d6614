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

// lowerGEP computes a GetElementPtr's destination as an offset relative to its base's
// own symbolic expression: every region's own address is convention-fixed at 0 (see
// lowerAlloca), so a chain of GEP steps accumulates into a flat element/byte offset
// from that origin. The constant-offset fast path covers the common all-struct or
// constant-array-index case directly; the general path walks the step list, folding
// struct offsets in as constants and scaling dynamic indices by their step's storage
// size.
func (c *Context) lowerGEP(block string, g *ir.GetElementPtr) {
	if !c.Eval.IsTracked(g) {
		return
	}
	if c.Opts.DisablePointerArith {
		return
	}
	base, ok := c.Eval.Lookup(g.Base)
	if !ok {
		c.maybeHavoc(block, g)
		return
	}

	if off, ok := g.ConstantOffset(); ok {
		c.Graph.Append(block, cfg.Assign{Dst: c.Eval.SymVar(g), Src: base.AddConst(off)})
		return
	}

	acc := base
	for _, idx := range g.Indices {
		if idx.Elem == nil {
			st, ok := idx.StepType.(ir.StructType)
			if !ok || idx.Field >= len(st.Offsets) {
				c.maybeHavoc(block, g)
				return
			}
			acc = acc.AddConst(st.Offsets[idx.Field])
			continue
		}
		iexpr, ok := c.Eval.Lookup(idx.Elem)
		if !ok {
			c.maybeHavoc(block, g)
			return
		}
		acc = acc.Add(iexpr.Scale(big.NewInt(ir.StorageSize(idx.StepType))))
	}
	c.Graph.Append(block, cfg.Assign{Dst: c.Eval.SymVar(g), Src: acc})
}

// lowerAlloca fixes the freshly allocated region's base address at the linear
// origin 0. Every GEP step off this base is then a pure offset, and comparisons
// between two pointers into the SAME region stay meaningful; comparing pointers from
// different regions is undefined behavior in the source language anyway, so sharing an
// origin across regions costs nothing this abstraction promises to preserve.
func (c *Context) lowerAlloca(block string, a *ir.Alloca) {
	if !c.Eval.IsTracked(a) {
		return
	}
	c.Graph.Append(block, cfg.Assign{Dst: c.Eval.SymVar(a), Src: linear.Const(0)})
}
