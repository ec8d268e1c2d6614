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
	"github.com/gocrab/crabgo/memory"
	"github.com/gocrab/crabgo/symeval"
)

func (c *Context) lowerLoad(block string, l *ir.Load) {
	if c.Mem.TrackLevel() != memory.LevelArrays {
		c.maybeHavoc(block, l)
		return
	}
	id := c.Mem.ArrayID(c.Fn, l.Ptr)
	if !id.Valid() {
		c.maybeHavoc(block, l)
		return
	}
	if !c.Eval.IsTracked(l) {
		return
	}
	if cell, ok := c.Mem.Singleton(id); ok {
		if expr, ok := c.Eval.Lookup(cell); ok {
			c.Graph.Append(block, cfg.Assign{Dst: c.Eval.SymVar(l), Src: expr})
			return
		}
		// spec.md §9's open question, resolved to the defensive choice: havoc the
		// enclosing region's own cell, not just the load's destination, so a later
		// load through the same singleton cell does not read a stale fact.
		if c.Eval.IsTracked(cell) {
			c.Graph.Append(block, cfg.Havoc{Dst: c.Eval.SymVar(cell)})
		}
		c.maybeHavoc(block, l)
		return
	}
	idx, storage, ok := elementIndex(c.Eval, l.Ptr)
	if !ok {
		// Same resolution as the singleton case above: an unresolved index means
		// the array-smashed region's contents are no longer known, not just this
		// one load's destination.
		c.Graph.Append(block, cfg.Havoc{Dst: c.Eval.SymArray(id)})
		c.maybeHavoc(block, l)
		return
	}
	c.Graph.Append(block, cfg.ArrayLoad{Dst: c.Eval.SymVar(l), Array: id, Index: idx, ElemStorage: storage})
}

func (c *Context) lowerStore(block string, s *ir.Store) {
	if c.Mem.TrackLevel() != memory.LevelArrays {
		return
	}
	id := c.Mem.ArrayID(c.Fn, s.Ptr)
	if !id.Valid() {
		return
	}
	val, ok := c.Eval.Lookup(s.Val)
	if !ok {
		// spec.md §9's open question, resolved to the defensive choice: an
		// unrepresentable stored value must still forget whatever the domain knew
		// about this region, or a later load would read a stale fact.
		c.Graph.Append(block, cfg.Havoc{Dst: c.Eval.SymArray(id)})
		return
	}
	if cell, ok := c.Mem.Singleton(id); ok {
		if c.Eval.IsTracked(cell) {
			c.Graph.Append(block, cfg.Assign{Dst: c.Eval.SymVar(cell), Src: val})
		}
		return
	}
	idx, storage, ok := elementIndex(c.Eval, s.Ptr)
	if !ok {
		c.Graph.Append(block, cfg.Havoc{Dst: c.Eval.SymArray(id)})
		return
	}
	c.Graph.Append(block, cfg.ArrayStore{Array: id, Index: idx, Val: val, ElemStorage: storage})
}

// elementIndex extracts the linear element index and per-element storage size a
// non-singleton array access addresses, by summing the dynamic (non-struct-field) GEP
// steps of ptr. A bare pointer to the region itself (no GEP — a direct load/store
// through the region's own base pointer) addresses element 0.
func elementIndex(eval *symeval.Eval, ptr ir.Value) (linear.Expr, int64, bool) {
	gep, ok := ptr.(*ir.GetElementPtr)
	if !ok {
		return linear.Const(0), 1, true
	}
	idx := linear.Const(0)
	var storage int64 = 1
	for _, step := range gep.Indices {
		if step.Elem == nil {
			continue
		}
		e, ok := eval.Lookup(step.Elem)
		if !ok {
			return linear.Expr{}, 0, false
		}
		idx = idx.Add(e)
		storage = ir.StorageSize(step.StepType)
	}
	return idx, storage, true
}
