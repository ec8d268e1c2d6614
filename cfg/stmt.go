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

package cfg

import (
	"strconv"

	"github.com/gocrab/crabgo/linear"
	"github.com/gocrab/crabgo/memory"
	"github.com/gocrab/crabgo/symtab"
)

// Stmt is a CFG statement: a sealed tagged variant (spec.md §9 design note — "pattern
// matching suffices", in place of a visitor/virtual hierarchy). Every variant in
// spec.md §3's table has a concrete type here; callers type-switch on Stmt.
type Stmt interface {
	isStmt()
	String() string
}

// ArithOp names the arithmetic/bitwise primitive an Arith statement performs.
type ArithOp int

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv  // signed division
	OpRem  // signed remainder
	OpUDiv
	OpURem
	OpAnd
	OpOr
	OpXor
)

func (op ArithOp) String() string {
	return [...]string{"add", "sub", "mul", "div", "rem", "udiv", "urem", "and", "or", "xor"}[op]
}

// Assign is "Dst := Src".
type Assign struct {
	Dst symtab.Name
	Src linear.Expr
}

func (Assign) isStmt()          {}
func (s Assign) String() string { return s.Dst.String() + " := " + s.Src.String() }

// Arith is "Dst := X op Y" for any of the arithmetic/bitwise primitives.
type Arith struct {
	Dst  symtab.Name
	Op   ArithOp
	X, Y linear.Expr
}

func (Arith) isStmt() {}
func (s Arith) String() string {
	return s.Dst.String() + " := " + s.Op.String() + "(" + s.X.String() + ", " + s.Y.String() + ")"
}

// Havoc resets Dst to an arbitrary value, forgetting any prior constraint on it.
type Havoc struct{ Dst symtab.Name }

func (Havoc) isStmt()          {}
func (s Havoc) String() string { return "havoc(" + s.Dst.String() + ")" }

// Assume restricts the program state to those satisfying Cond.
type Assume struct{ Cond linear.Constraint }

func (Assume) isStmt()          {}
func (s Assume) String() string { return "assume(" + s.Cond.String() + ")" }

// Select is "Dst := Cond ? TrueVal : FalseVal", keyed on a boolean symbolic variable
// (as opposed to a native conditional move keyed on a linear constraint, which
// InstructionLowering emits as CondSelect — see spec.md §4.4 "Select").
type Select struct {
	Dst               symtab.Name
	Cond              symtab.Name
	TrueVal, FalseVal linear.Expr
}

func (Select) isStmt() {}
func (s Select) String() string {
	return s.Dst.String() + " := " + s.Cond.String() + " ? " + s.TrueVal.String() + " : " + s.FalseVal.String()
}

// CondSelect is "Dst := Cond ? TrueVal : FalseVal", keyed directly on a linear
// constraint instead of a boolean symbolic variable — the "native conditional move"
// spec.md §4.4 "Select" calls for when the condition is itself a compare producing a
// single linear constraint, so a downstream domain can apply the constraint without
// first resolving a separate boolean variable.
type CondSelect struct {
	Dst               symtab.Name
	Cond              linear.Constraint
	TrueVal, FalseVal linear.Expr
}

func (CondSelect) isStmt() {}
func (s CondSelect) String() string {
	return s.Dst.String() + " := (" + s.Cond.String() + ") ? " + s.TrueVal.String() + " : " + s.FalseVal.String()
}

// ArrayLoad is "Dst := Array[Index]" (ARRAYS mode, non-singleton region).
type ArrayLoad struct {
	Dst         symtab.Name
	Array       memory.ArrayID
	Index       linear.Expr
	ElemStorage int64
}

func (ArrayLoad) isStmt() {}
func (s ArrayLoad) String() string { return s.Dst.String() + " := array_load(A" + arrayIDStr(s.Array) + ", " + s.Index.String() + ")" }

// ArrayStore is "Array[Index] := Val".
type ArrayStore struct {
	Array       memory.ArrayID
	Index       linear.Expr
	Val         linear.Expr
	ElemStorage int64
}

func (ArrayStore) isStmt() {}
func (s ArrayStore) String() string {
	return "array_store(A" + arrayIDStr(s.Array) + ", " + s.Index.String() + ", " + s.Val.String() + ")"
}

// AssumeArray restricts every cell of Array to Val — the "initialization hook" used
// by Alloca, global-initializer, and new-region preludes, and by memset.
type AssumeArray struct {
	Array memory.ArrayID
	Val   linear.Expr
}

func (AssumeArray) isStmt()          {}
func (s AssumeArray) String() string { return "assume_array(A" + arrayIDStr(s.Array) + ", " + s.Val.String() + ")" }

// ArrayInit initializes Array's cells from a constant data sequence (spec.md §4.5
// step 4: a global with a constant data initializer).
type ArrayInit struct {
	Array  memory.ArrayID
	Values []int64
}

func (ArrayInit) isStmt()          {}
func (s ArrayInit) String() string { return "array_init(A" + arrayIDStr(s.Array) + ", ...)" }

// Callsite is a call, carrying its scalar/array actuals in the order spec.md §4.4
// describes: scalar actuals, ref-in snapshots, ref-out (the live arrays themselves),
// then new arrays. Dst is the empty Name if the call's result is untracked or void.
type Callsite struct {
	Callee     string
	Dst        symtab.Name
	HasDst     bool
	ScalarArgs []linear.Expr
	RefIn      []memory.ArrayID // fresh "in" names bound to a snapshot, see lower/instr/call.go's lowerCallsite
	RefOut     []memory.ArrayID
	New        []memory.ArrayID
}

func (Callsite) isStmt()          {}
func (s Callsite) String() string { return "callsite(" + s.Callee + ")" }

// Return is "ret(Val)" for inter-procedural mode (spec.md §4.4 "Return").
type Return struct {
	Val    linear.Expr
	HasVal bool
}

func (Return) isStmt()          {}
func (s Return) String() string { return "return" }

// Unreachable marks a block statically known to be dead (spec.md §4.5 step 2,
// "constant incompatible with this edge").
type Unreachable struct{}

func (Unreachable) isStmt()          {}
func (Unreachable) String() string { return "unreachable" }

func arrayIDStr(a memory.ArrayID) string {
	if !a.Valid() {
		return "?"
	}
	return strconv.Itoa(int(a))
}
