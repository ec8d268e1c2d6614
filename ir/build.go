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

// AddInstr appends instr to b, first binding its home block — the one place outside a
// literal struct construction that needs to reach into anInstruction's unexported
// field, mirroring go/ssa's own Instruction.setBlock called from BasicBlock's builder
// methods.
func (b *BasicBlock) AddInstr(instr Instruction) {
	bindBlock(instr, b)
	b.Instrs = append(b.Instrs, instr)
}

func bindBlock(instr Instruction, b *BasicBlock) {
	switch v := instr.(type) {
	case *BinOp:
		v.block = b
	case *ICmp:
		v.block = b
	case *Convert:
		v.block = b
	case *Phi:
		v.block = b
	case *GetElementPtr:
		v.block = b
	case *Load:
		v.block = b
	case *Store:
		v.block = b
	case *Alloca:
		v.block = b
	case *Select:
		v.block = b
	case *Call:
		v.block = b
	}
}
