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

package ir

// ComputeUses installs the use-list (anInstruction.refs) for every register-defining
// instruction in fn by scanning every instruction's operands, in block and
// instruction order. It must be called once after a Function's blocks are fully
// built and before InstructionLowering consults NumUses or Uses — the IR is otherwise
// immutable (spec.md §3), so this is the one pre-pass that populates derived state.
func ComputeUses(fn *Function) {
	referrable := make(map[Value]*anInstruction)
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			if base := baseOf(instr); base != nil {
				if v, ok := instr.(Value); ok {
					referrable[v] = base
					base.refs = nil
					base.termUses = 0
				}
			}
		}
	}
	recordInstr := func(user Instruction, operands []Value) {
		for _, op := range operands {
			if base, ok := referrable[op]; ok {
				base.refs = append(base.refs, user)
			}
		}
	}
	recordTerm := func(operands ...Value) {
		for _, op := range operands {
			if op == nil {
				continue
			}
			if base, ok := referrable[op]; ok {
				base.termUses++
			}
		}
	}
	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			recordInstr(instr, instr.Operands())
		}
		switch t := b.Term.(type) {
		case Branch:
			recordTerm(t.Cond)
		case Ret:
			recordTerm(t.Val)
		}
	}
}

// baseOf returns the embedded *anInstruction for any concrete instruction type, or nil
// if instr does not embed one (there is currently no such type, but the helper keeps
// this file the single place that knows the concrete instruction set).
func baseOf(instr Instruction) *anInstruction {
	switch v := instr.(type) {
	case *BinOp:
		return &v.anInstruction
	case *ICmp:
		return &v.anInstruction
	case *Convert:
		return &v.anInstruction
	case *Phi:
		return &v.anInstruction
	case *GetElementPtr:
		return &v.anInstruction
	case *Load:
		return &v.anInstruction
	case *Store:
		return &v.anInstruction
	case *Alloca:
		return &v.anInstruction
	case *Select:
		return &v.anInstruction
	case *Call:
		return &v.anInstruction
	default:
		return nil
	}
}
