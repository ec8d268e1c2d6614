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

package cfgbuild

import (
	"fmt"

	"github.com/gocrab/crabgo/ir"
)

// InternalError marks a violated upstream invariant this package is entitled to
// assume (spec.md §7 "fatal"): a malformed edge, a phi whose predecessor list does not
// match its block's actual predecessors, and similar producer bugs in the ir.Function
// being translated rather than anything a caller can recover from.
type InternalError struct {
	FuncName string
	Instr    ir.Instruction
	Msg      string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("crabgo: internal error in %s: %s", e.FuncName, e.Msg)
}

// fail panics with an InternalError, matching the teacher's convention of panicking on
// IR invariants a well-formed producer must have already satisfied.
func fail(fn *ir.Function, instr ir.Instruction, format string, args ...any) {
	panic(&InternalError{FuncName: fn.Name, Instr: instr, Msg: fmt.Sprintf(format, args...)})
}
