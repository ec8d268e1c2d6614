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
)

// LowerReturn emits the inter-procedural Return statement for a function's Ret
// terminator. It is a no-op outside inter-procedural mode and for main, which has no
// caller to observe a return value (spec.md §4.4 "Return").
func (c *Context) LowerReturn(block string, r *ir.Ret) {
	if !c.InterProcedural || c.IsMain {
		return
	}
	if r.Val == nil {
		c.Graph.Append(block, cfg.Return{HasVal: false})
		return
	}
	if e, ok := c.Eval.Lookup(r.Val); ok {
		c.Graph.Append(block, cfg.Return{Val: e, HasVal: true})
		return
	}
	c.Graph.Append(block, cfg.Return{HasVal: false})
}
