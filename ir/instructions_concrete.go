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

// This file defines one concrete type per opcode family, each embedding anInstruction
// for the common bookkeeping and implementing Value when it defines a result register.
// The split mirrors go/ssa's BinOp/UnOp/Convert/FieldAddr/... family of concrete
// instruction types rather than a single "generic instruction with an opcode tag"
// struct, so that opcode-specific fields (a Predicate, a GEP index list, ...) are
// typed instead of stashed in an untyped side table.

// BinOp is any of Add/Sub/Mul/SDiv/UDiv/SRem/URem/Shl/AShr/LShr/And/Or/Xor.
type BinOp struct {
	anInstruction
	ID          string
	Op          Opcode
	X, Y        Value
	Typ         Type
}

func (b *BinOp) Name() string       { return b.ID }
func (b *BinOp) Type() Type         { return b.Typ }
func (b *BinOp) Opcode() Opcode     { return b.Op }
func (b *BinOp) Operands() []Value  { return []Value{b.X, b.Y} }

// ICmp is a compare producing a 1-bit integer.
type ICmp struct {
	anInstruction
	ID   string
	Pred Predicate
	X, Y Value
}

func (c *ICmp) Name() string      { return c.ID }
func (c *ICmp) Type() Type        { return IntType{Bits: 1} }
func (c *ICmp) Opcode() Opcode    { return OpICmp }
func (c *ICmp) Operands() []Value { return []Value{c.X, c.Y} }

// Convert is any of ZExt/SExt/Trunc/BitCast.
type Convert struct {
	anInstruction
	ID  string
	Op  Opcode
	X   Value
	Typ Type
}

func (c *Convert) Name() string      { return c.ID }
func (c *Convert) Type() Type        { return c.Typ }
func (c *Convert) Opcode() Opcode    { return c.Op }
func (c *Convert) Operands() []Value { return []Value{c.X} }

// Phi selects a value per incoming predecessor edge. Edges[i] corresponds to
// Block().Preds[i].
type Phi struct {
	anInstruction
	ID    string
	Typ   Type
	Edges []Value
}

func (p *Phi) Name() string      { return p.ID }
func (p *Phi) Type() Type        { return p.Typ }
func (p *Phi) Opcode() Opcode    { return OpPhi }
func (p *Phi) Operands() []Value { return p.Edges }

// GEPIndex is one step of a GetElementPtr: either a constant struct-field index (into
// StepType, a StructType) or a dynamic element index (into StepType, the element type
// being indexed, whose StorageSize gives the stride).
type GEPIndex struct {
	Field    int   // struct field index, used iff StepType is a StructType
	Elem     Value // element index value, used iff StepType is not a StructType
	StepType Type
}

// GetElementPtr computes an address from Base plus a sequence of struct/array index
// steps (spec.md §4.4 "Address computation").
type GetElementPtr struct {
	anInstruction
	ID      string
	Base    Value
	Indices []GEPIndex
	Typ     Type
}

func (g *GetElementPtr) Name() string   { return g.ID }
func (g *GetElementPtr) Type() Type     { return g.Typ }
func (g *GetElementPtr) Opcode() Opcode { return OpGetElementPtr }
func (g *GetElementPtr) Operands() []Value {
	ops := []Value{g.Base}
	for _, idx := range g.Indices {
		if idx.Elem != nil {
			ops = append(ops, idx.Elem)
		}
	}
	return ops
}

// ConstantOffset returns the GEP's cumulative offset as a compile-time constant, and
// whether every step was in fact constant (all struct steps, or array/pointer steps
// indexed by an integer constant).
func (g *GetElementPtr) ConstantOffset() (int64, bool) {
	var off int64
	for _, idx := range g.Indices {
		if idx.Elem == nil {
			st, ok := idx.StepType.(StructType)
			if !ok || idx.Field >= len(st.Offsets) {
				return 0, false
			}
			off += st.Offsets[idx.Field]
			continue
		}
		c, ok := idx.Elem.(*Const)
		if !ok || c.Kind != ConstInt {
			return 0, false
		}
		off += c.Int.Int64() * StorageSize(idx.StepType)
	}
	return off, true
}

// Load reads from Ptr.
type Load struct {
	anInstruction
	ID  string
	Ptr Value
	Typ Type
}

func (l *Load) Name() string      { return l.ID }
func (l *Load) Type() Type        { return l.Typ }
func (l *Load) Opcode() Opcode    { return OpLoad }
func (l *Load) Operands() []Value { return []Value{l.Ptr} }

// Store writes Val to Ptr. Store defines no result register, so it implements
// Instruction only, not Value.
type Store struct {
	anInstruction
	Ptr, Val Value
}

func (s *Store) Opcode() Opcode    { return OpStore }
func (s *Store) Operands() []Value { return []Value{s.Ptr, s.Val} }

// Alloca allocates storage for one value of Elem and produces a pointer to it.
type Alloca struct {
	anInstruction
	ID   string
	Elem Type
}

func (a *Alloca) Name() string      { return a.ID }
func (a *Alloca) Type() Type        { return PtrType{Elem: a.Elem} }
func (a *Alloca) Opcode() Opcode    { return OpAlloca }
func (a *Alloca) Operands() []Value { return nil }

// Select picks TrueVal or FalseVal based on Cond.
type Select struct {
	anInstruction
	ID                 string
	Cond               Value
	TrueVal, FalseVal  Value
	Typ                Type
}

func (s *Select) Name() string      { return s.ID }
func (s *Select) Type() Type        { return s.Typ }
func (s *Select) Opcode() Opcode    { return OpSelect }
func (s *Select) Operands() []Value { return []Value{s.Cond, s.TrueVal, s.FalseVal} }

// Call invokes Callee (nil for an indirect/external call this translator cannot
// resolve) with Args. IntrinsicName, when non-empty, names a well-known runtime
// intrinsic (memcpy, memset, malloc, ..., verifier.assume) recognized by
// InstructionLowering regardless of whether Callee is resolvable.
type Call struct {
	anInstruction
	ID            string
	Callee        *Function
	IntrinsicName string
	Args          []Value
	Typ           Type // nil for a void call
}

func (c *Call) Name() string      { return c.ID }
func (c *Call) Opcode() Opcode    { return OpCall }
func (c *Call) Operands() []Value { return c.Args }
func (c *Call) Type() Type {
	if c.Typ == nil {
		return UnknownType{Name: "void"}
	}
	return c.Typ
}

// CalleeName returns the name used for call-target recognition: the intrinsic name if
// set, else the resolved callee's name, else "" for a truly indirect call.
func (c *Call) CalleeName() string {
	if c.IntrinsicName != "" {
		return c.IntrinsicName
	}
	if c.Callee != nil {
		return c.Callee.Name
	}
	return ""
}
