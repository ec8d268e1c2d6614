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

import "math/big"

// Value is anything that can appear as an operand: an instruction result, a function
// parameter, a global, or a constant.
type Value interface {
	Name() string
	Type() Type
}

// Param is a formal parameter of a Function.
type Param struct {
	ID   string
	Typ  Type
}

func (p *Param) Name() string { return p.ID }
func (p *Param) Type() Type   { return p.Typ }

// Global is a module-level variable, possibly with an initializer.
type Global struct {
	ID   string
	Typ  Type // the pointee type; Globals are always pointer-typed values
	Init Initializer
}

func (g *Global) Name() string { return g.ID }
func (g *Global) Type() Type   { return PtrType{Elem: g.Typ} }

// Initializer describes a global's compile-time initial value.
type Initializer interface{ isInitializer() }

// ZeroInitializer is the all-zero-bytes initializer ("zero-aggregate" in spec.md §4.5).
type ZeroInitializer struct{}

func (ZeroInitializer) isInitializer() {}

// DataInitializer is a flat constant sequence of integers ("constant data sequence").
type DataInitializer struct{ Values []*big.Int }

func (DataInitializer) isInitializer() {}

// ConstKind distinguishes the constant shapes SymEval treats specially.
type ConstKind int

const (
	// ConstInt is an ordinary integer (or 0/1 boolean) constant.
	ConstInt ConstKind = iota
	// ConstUndef is LLVM-style `undef`: SymEval.Lookup refuses it (returns no expression).
	ConstUndef
	// ConstBadBool is a boolean constant outside {0,1} (never produced by well-typed
	// IR, but SymEval must refuse it defensively per spec.md §4.1).
	ConstBadBool
)

// Const is a compile-time constant value.
type Const struct {
	Kind Kind
	Int  *big.Int
	Typ  Type
}

// Kind aliases ConstKind so call sites read Const{Kind: ir.ConstInt, ...}.
type Kind = ConstKind

func (c *Const) Name() string {
	if c.Int != nil {
		return c.Int.String()
	}
	return "undef"
}
func (c *Const) Type() Type { return c.Typ }

// IntConst builds a well-formed integer constant.
func IntConst(v int64, typ Type) *Const {
	return &Const{Kind: ConstInt, Int: big.NewInt(v), Typ: typ}
}

// Undef builds the undef sentinel of the given type.
func Undef(typ Type) *Const { return &Const{Kind: ConstUndef, Typ: typ} }
