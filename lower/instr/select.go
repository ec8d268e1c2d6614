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
	"github.com/gocrab/crabgo/lower/cond"
)

// lowerSelect folds a constant condition directly into an Assign. Otherwise, when the
// condition is a compare producing a single linear constraint, it emits the native
// conditional move spec.md §4.4 "Select" case 2 describes, keyed on that constraint
// rather than on the compare's own symbolic variable — a bare compare's variable is
// only ever pinned when something else (a branch, or a second use) demands it, so
// keying on the constraint directly is both more precise and correct without that
// extra pinning. Any other condition falls back to the generic cfg.Select, keyed on
// the condition's own symbolic variable.
func (c *Context) lowerSelect(block string, s *ir.Select) {
	if !c.Eval.IsTracked(s) {
		return
	}

	if cc, ok := s.Cond.(*ir.Const); ok && cc.Kind == ir.ConstInt {
		chosen := s.FalseVal
		if cc.Int.Sign() != 0 {
			chosen = s.TrueVal
		}
		if e, ok := c.Eval.Lookup(chosen); ok {
			c.Graph.Append(block, cfg.Assign{Dst: c.Eval.SymVar(s), Src: e})
			return
		}
		c.maybeHavoc(block, s)
		return
	}

	tv, tok := c.Eval.Lookup(s.TrueVal)
	fv, fok := c.Eval.Lookup(s.FalseVal)
	if !tok || !fok {
		c.maybeHavoc(block, s)
		return
	}

	if icmp, ok := s.Cond.(*ir.ICmp); ok {
		if cons, ok := cond.SingleConstraint(c.Eval, icmp); ok {
			c.Graph.Append(block, cfg.CondSelect{
				Dst:      c.Eval.SymVar(s),
				Cond:     cons,
				TrueVal:  tv,
				FalseVal: fv,
			})
			return
		}
	}

	if !c.Eval.IsTracked(s.Cond) {
		c.maybeHavoc(block, s)
		return
	}
	c.Graph.Append(block, cfg.Select{
		Dst:      c.Eval.SymVar(s),
		Cond:     c.Eval.SymVar(s.Cond),
		TrueVal:  tv,
		FalseVal: fv,
	})
}
