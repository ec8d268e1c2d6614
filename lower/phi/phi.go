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

// Package phi implements PhiLowering (spec.md §4.3): translating every leading phi of
// a successor block into a parallel assignment appended to the predecessor's edge
// block, preserving the "all phis observe the pre-edge values" parallel semantics
// even when one phi's incoming value is another phi in the same block.
package phi

import (
	"github.com/gocrab/crabgo/cfg"
	"github.com/gocrab/crabgo/config"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/linear"
	"github.com/gocrab/crabgo/symeval"
)

// Lower appends, to edgeBlock, the assignments realizing every phi at the head of
// succ whose incoming edge is predIndex (succ.Preds[predIndex] is the predecessor this
// edge comes from). opts.DisablePointerArith causes non-integer phis to be skipped
// entirely, per spec.md §4.3's second refinement.
func Lower(g *cfg.Graph, edgeBlock string, eval *symeval.Eval, succ *ir.BasicBlock, predIndex int, opts config.Options) {
	phis := leadingPhis(succ)
	if len(phis) == 0 {
		return
	}

	// First pass: for every phi whose incoming value is another same-block phi
	// currently holding a known expression, snapshot that expression into a fresh
	// name before any second-pass assignment can overwrite it.
	scratch := make(map[*ir.Phi]linear.Expr, len(phis))
	for _, p := range phis {
		incoming := p.Edges[predIndex]
		srcPhi, ok := incoming.(*ir.Phi)
		if !ok || srcPhi.Block() != succ {
			continue
		}
		expr, ok := eval.Lookup(srcPhi)
		if !ok {
			continue
		}
		fresh := eval.Vars.Fresh("phi.tmp")
		g.Append(edgeBlock, cfg.Assign{Dst: fresh, Src: expr})
		scratch[srcPhi] = linear.Var(fresh)
	}

	// Second pass: assign each phi's destination, preferring the first-pass
	// snapshot over a direct lookup so a same-block phi dependency reads the
	// pre-edge value; fall back to havoc if neither yields an expression.
	for _, p := range phis {
		if opts.DisablePointerArith && eval.GetType(p.Typ) != symeval.TypeInt {
			continue
		}
		incoming := p.Edges[predIndex]
		dst := eval.SymVar(p)

		if srcPhi, ok := incoming.(*ir.Phi); ok {
			if snap, ok := scratch[srcPhi]; ok {
				g.Append(edgeBlock, cfg.Assign{Dst: dst, Src: snap})
				continue
			}
		}
		if expr, ok := eval.Lookup(incoming); ok {
			g.Append(edgeBlock, cfg.Assign{Dst: dst, Src: expr})
			continue
		}
		g.Append(edgeBlock, cfg.Havoc{Dst: dst})
	}
}

func leadingPhis(b *ir.BasicBlock) []*ir.Phi {
	var phis []*ir.Phi
	for _, instr := range b.Instrs {
		p, ok := instr.(*ir.Phi)
		if !ok {
			break
		}
		phis = append(phis, p)
	}
	return phis
}
