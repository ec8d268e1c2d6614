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

import "github.com/gocrab/crabgo/ir"

// Lower dispatches one non-terminator instruction to its translation rule, appending
// zero or more statements to block. ICmp and Phi are deliberately absent from the
// switch: a bare compare only produces a statement when something else consumes it (a
// branch, via cond.Lower in cfgbuild, or the compare-with-extra-uses pinning rule
// inside cond itself), and phis are lowered once per incoming edge by the phi package,
// not once per defining block.
func Lower(c *Context, block string, instruction ir.Instruction) {
	switch v := instruction.(type) {
	case *ir.BinOp:
		c.lowerBinOp(block, v)
	case *ir.Convert:
		c.lowerConvert(block, v)
	case *ir.GetElementPtr:
		c.lowerGEP(block, v)
	case *ir.Load:
		c.lowerLoad(block, v)
	case *ir.Store:
		c.lowerStore(block, v)
	case *ir.Alloca:
		c.lowerAlloca(block, v)
	case *ir.Select:
		c.lowerSelect(block, v)
	case *ir.Call:
		c.lowerCall(block, v)
	}
}
