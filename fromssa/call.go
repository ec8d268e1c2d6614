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
	"golang.org/x/tools/go/ssa"

	"github.com/gocrab/crabgo/ir"
)

// intrinsicNames maps a handful of Go standard-library calls this adapter recognizes
// onto the translator's own intrinsic vocabulary, so a real Go program touching
// reflection-free byte copies exercises lower/instr's memcpy/memmove handling. Keys
// are a builtin's name or a static callee's package-qualified String() form.
var intrinsicNames = map[string]string{
	"copy":         "memcpy",
	"runtime.memmove": "memmove",
}

func (c *converter) convertCall(v *ssa.Call) *ir.Call {
	common := v.Common()
	args := make([]ir.Value, len(common.Args))
	for i, a := range common.Args {
		args[i] = c.operand(a)
	}

	call := &ir.Call{ID: v.Name(), Args: args, Typ: convertType(v.Type())}

	if builtin, ok := common.Value.(*ssa.Builtin); ok {
		if intrinsic, ok := intrinsicNames[builtin.Name()]; ok {
			call.IntrinsicName = intrinsic
			return call
		}
	}

	if callee := common.StaticCallee(); callee != nil {
		if intrinsic, ok := intrinsicNames[callee.String()]; ok {
			call.IntrinsicName = intrinsic
		} else {
			call.Callee = c.fnStub(callee)
		}
		return call
	}

	// An indirect call (through an interface method or a func value): Callee stays
	// nil, matching spec.md §4.4's "external/indirect: havoc" rule.
	return call
}

// fnStub returns a placeholder *ir.Function carrying only the callee's name and
// signature shape — enough for CalleeName() and inter-procedural FuncDecl matching
// without requiring the whole call graph to be converted up front.
func (c *converter) fnStub(callee *ssa.Function) *ir.Function {
	stub := &ir.Function{Name: callee.Name()}
	if res := callee.Signature.Results(); res != nil && res.Len() > 0 {
		stub.RetType = convertType(res.At(0).Type())
	}
	return stub
}
