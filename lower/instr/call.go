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
	"strings"

	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/linear"
	"github.com/gocrab/crabgo/lower/cond"
	"github.com/gocrab/crabgo/memory"
)

// mallocIntrinsics mirrors memory.AllocSiteOracle's own set: the dynamic-allocation
// family InstructionLowering zero-initializes when called from main under array
// tracking.
var mallocIntrinsics = map[string]bool{
	"malloc": true, "calloc": true, "valloc": true, "palloc": true,
}

func (c *Context) lowerCall(block string, call *ir.Call) {
	name := call.CalleeName()
	if isShadowOrDebugCall(name) {
		return
	}

	switch name {
	case "verifier.assume":
		c.lowerAssumeIntrinsic(block, call, false)
		return
	case "verifier.assume.not":
		c.lowerAssumeIntrinsic(block, call, true)
		return
	case "memset":
		c.lowerMemset(block, call)
		return
	case "memcpy":
		c.lowerMemcpy(block, call)
		return
	case "memmove":
		// Ignored: spec.md §4.4 names memcpy/memset but not memmove, and the
		// bundled oracle cannot distinguish overlapping from non-overlapping
		// regions to make the approximation sound.
		return
	}

	if mallocIntrinsics[name] && c.IsMain && c.Mem.TrackLevel() == memory.LevelArrays {
		if id := c.Mem.ArrayID(c.Fn, call); id.Valid() {
			c.Graph.Append(block, cfg.AssumeArray{Array: id, Val: linear.Const(0)})
		}
	}

	if call.Callee == nil {
		// Indirect or external: the destination, if tracked, is unconstrained —
		// always havoc, regardless of the include_havoc option.
		c.havoc(block, call)
		return
	}

	if c.InterProcedural {
		c.lowerCallsite(block, call)
		return
	}

	c.havoc(block, call)
}

func (c *Context) lowerAssumeIntrinsic(block string, call *ir.Call, polarity bool) {
	if len(call.Args) == 0 {
		return
	}
	condVal := call.Args[0]
	if conv, ok := condVal.(*ir.Convert); ok && (conv.Op == ir.OpZExt || conv.Op == ir.OpSExt) {
		condVal = conv.X
	}
	cond.Lower(c.Graph, block, c.Eval, condVal, polarity)
}

// lowerMemset implements spec.md §4.4's memset rule: "with constant val on a region
// with an array-id: havoc that array then assume_array(a, val)". The leading havoc is
// required because AssumeArray is an Assume (cfg/stmt.go), which conjoins with
// whatever the domain already knows about the region's cells rather than overwriting
// it — without the havoc, an earlier fact about the array would survive alongside the
// new one instead of being replaced by it. Only a constant val qualifies; a
// non-constant fill value has no representable single cell value to assume.
func (c *Context) lowerMemset(block string, call *ir.Call) {
	if c.Mem.TrackLevel() != memory.LevelArrays || len(call.Args) < 2 {
		return
	}
	id := c.Mem.ArrayID(c.Fn, call.Args[0])
	if !id.Valid() {
		return
	}
	cc, ok := call.Args[1].(*ir.Const)
	if !ok || cc.Kind != ir.ConstInt {
		return
	}
	val, ok := c.Eval.Lookup(cc)
	if !ok {
		return
	}
	c.Graph.Append(block, cfg.Havoc{Dst: c.Eval.SymArray(id)})
	c.Graph.Append(block, cfg.AssumeArray{Array: id, Val: val})
}

// lowerMemcpy implements spec.md §4.4's memcpy rule: "if both regions have
// array-ids, havoc dst_array then dst_array := src_array" (spec.md §8 Scenario 7).
// When both regions happen to be singleton scalar cells, the copy is expressed
// directly on those cells; otherwise both sides are named as whole-region symbolic
// values via SymArray, matching AssumeArray's own array-granularity treatment.
func (c *Context) lowerMemcpy(block string, call *ir.Call) {
	if c.Mem.TrackLevel() != memory.LevelArrays || len(call.Args) < 2 {
		return
	}
	dstID := c.Mem.ArrayID(c.Fn, call.Args[0])
	srcID := c.Mem.ArrayID(c.Fn, call.Args[1])
	if !dstID.Valid() || !srcID.Valid() {
		return
	}

	dstCell, dstOK := c.Mem.Singleton(dstID)
	srcCell, srcOK := c.Mem.Singleton(srcID)
	if dstOK && srcOK {
		srcExpr, ok := c.Eval.Lookup(srcCell)
		if !ok || !c.Eval.IsTracked(dstCell) {
			return
		}
		c.Graph.Append(block, cfg.Havoc{Dst: c.Eval.SymVar(dstCell)})
		c.Graph.Append(block, cfg.Assign{Dst: c.Eval.SymVar(dstCell), Src: srcExpr})
		return
	}

	dstName := c.Eval.SymArray(dstID)
	c.Graph.Append(block, cfg.Havoc{Dst: dstName})
	c.Graph.Append(block, cfg.Assign{Dst: dstName, Src: linear.Var(c.Eval.SymArray(srcID))})
}

// lowerCallsite builds the inter-procedural Callsite statement: scalar actuals in
// argument order, followed by the ref/mod/new region sets the oracle reports for this
// exact call (spec.md §4.4 "Call", inter-procedural mode). Around the statement
// itself it emits the two effects spec.md requires of a call's array arguments: a
// fresh "in" snapshot of every ref array copied before the call (spec.md §4.4: "bind
// a fresh 'in' name, copy the current value into it, and havoc the outgoing
// version"), and — per spec.md §3's invariant — a Havoc of every array on the
// mod-set after the callsite statement, since the callee may have written anything
// into it.
func (c *Context) lowerCallsite(block string, call *ir.Call) {
	refs, mods, news := c.Mem.RefModNew(ir.CallSite{Fn: c.Fn, Instr: call})

	var scalarArgs []linear.Expr
	for _, arg := range call.Args {
		if e, ok := c.Eval.Lookup(arg); ok {
			scalarArgs = append(scalarArgs, e)
		}
	}

	for _, id := range refs {
		c.Graph.Append(block, cfg.Assign{Dst: c.Eval.SymArrayIn(id), Src: linear.Var(c.Eval.SymArray(id))})
	}

	stmt := cfg.Callsite{
		Callee:     call.CalleeName(),
		ScalarArgs: scalarArgs,
		RefIn:      refs,
		RefOut:     mods,
		New:        news,
	}
	if c.Eval.IsTracked(call) {
		stmt.Dst = c.Eval.SymVar(call)
		stmt.HasDst = true
	}
	c.Graph.Append(block, stmt)

	for _, id := range mods {
		c.Graph.Append(block, cfg.Havoc{Dst: c.Eval.SymArray(id)})
	}
}

// isShadowOrDebugCall reports whether name identifies a call InstructionLowering
// ignores outright: compiler-inserted debugging/lifetime markers and this
// translator's own shadow-memory bookkeeping calls, neither of which carries
// source-level semantics.
func isShadowOrDebugCall(name string) bool {
	if name == "" {
		return false
	}
	switch name {
	case "llvm.lifetime.start", "llvm.lifetime.end", "__crabgo_fn_entry":
		return true
	}
	return strings.HasPrefix(name, "llvm.dbg.") || strings.HasPrefix(name, "__crabgo_shadow_")
}
