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

// Package symeval implements SymEval (spec.md §4.1): the pure lookup layer that
// translates an IR operand to either a constant linear expression, a variable linear
// expression, or "untracked". It has no side effects.
package symeval

import (
	"strconv"

	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/linear"
	"github.com/gocrab/crabgo/memory"
	"github.com/gocrab/crabgo/symtab"
)

// GoType is SymEval's coarse type classification.
type GoType int

const (
	TypeUnk GoType = iota
	TypeInt
	TypePtr
)

// Eval is SymEval: a lookup layer parameterized over a symtab.Factory (for naming) and
// a memory.Oracle (for the pointer-tracking decision).
type Eval struct {
	Vars *symtab.Factory
	Mem  memory.Oracle
}

// New returns an Eval backed by vars and mem.
func New(vars *symtab.Factory, mem memory.Oracle) *Eval {
	return &Eval{Vars: vars, Mem: mem}
}

// GetType classifies t per spec.md §4.1.
func (e *Eval) GetType(t ir.Type) GoType {
	switch t.(type) {
	case ir.IntType:
		return TypeInt
	case ir.PtrType:
		return TypePtr
	default:
		return TypeUnk
	}
}

// IsTracked reports whether v's type participates in numeric reasoning: integers
// always, pointers only when the oracle's track level is at least REGISTERS.
func (e *Eval) IsTracked(v ir.Value) bool {
	switch e.GetType(v.Type()) {
	case TypeInt:
		return true
	case TypePtr:
		return e.Mem.TrackLevel() >= memory.LevelRegisters
	default:
		return false
	}
}

// SymVar returns the stable symbolic name for v, issuing one on first lookup. Callers
// should only call SymVar on values IsTracked accepts; for anything else the name
// returned is still deterministic but semantically meaningless.
func (e *Eval) SymVar(v ir.Value) symtab.Name {
	return e.Vars.NameFor(v, v.Name())
}

// Lookup returns a constant expression for integer constants, a variable expression
// for tracked SSA values, and ok=false for untracked values or for constants the
// evaluator refuses: `undef`, and boolean constants outside {0,1} (spec.md §4.1).
func (e *Eval) Lookup(v ir.Value) (linear.Expr, bool) {
	switch c := v.(type) {
	case *ir.Const:
		switch c.Kind {
		case ir.ConstInt:
			return linear.ConstBig(c.Int), true
		default: // ConstUndef, ConstBadBool
			return linear.Expr{}, false
		}
	default:
		if !e.IsTracked(v) {
			return linear.Expr{}, false
		}
		return linear.Var(e.SymVar(v)), true
	}
}

// IsVar reports whether expr is a single variable with coefficient 1 and no constant
// offset — SymEval's is_var helper.
func (e *Eval) IsVar(expr linear.Expr) (symtab.Name, bool) {
	return expr.IsVar()
}

// SymArray returns the stable symbolic name for id's whole region, used whenever a
// region is manipulated as a single unit rather than through per-index ArrayLoad/
// ArrayStore — e.g. a whole-array copy, where spec.md §4.4's memcpy rule assigns
// dst_array := src_array with no index involved.
func (e *Eval) SymArray(id memory.ArrayID) symtab.Name {
	return e.Vars.NameFor(id, "A"+strconv.Itoa(int(id)))
}

// refInKey distinguishes id's per-call "input snapshot" name from its plain SymArray
// name, so the two can coexist as distinct, independently-memoized Factory entries.
type refInKey struct{ id memory.ArrayID }

// SymArrayIn returns the stable symbolic name for id's input-snapshot variable
// ("a_in" in spec.md §4.4's prose): at a call site, the value a ref array held just
// before the call (lower/instr/call.go's lowerCallsite); in a callee's own entry
// block under inter-procedural mode, the formal the caller actually passed, which
// cfgbuild's "a := a_in" prelude (spec.md §4.5 step 6) binds back to the plain
// SymArray name the function body addresses the region by.
func (e *Eval) SymArrayIn(id memory.ArrayID) symtab.Name {
	return e.Vars.NameFor(refInKey{id}, "A"+strconv.Itoa(int(id))+"_in")
}
