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

// Package ir defines the low-level SSA intermediate representation consumed by the
// translator. It is a data model only: loading or parsing a concrete source language
// into this shape is the caller's responsibility (see the fromssa package for one such
// adapter built on real Go SSA).
package ir

import "strconv"

// Type is the type of an IR value, reduced to the granularity the translator cares
// about: whether it is an integer of some bit width, a pointer, or something the
// translator must treat as opaque.
type Type interface {
	isType()
	String() string
}

// IntType is an integer of the given bit width (1 for booleans).
type IntType struct{ Bits int }

func (IntType) isType() {}
func (t IntType) String() string {
	if t.Bits == 1 {
		return "i1"
	}
	return "i" + strconv.Itoa(t.Bits)
}

// PtrType is a pointer to Elem.
type PtrType struct{ Elem Type }

func (PtrType) isType() {}
func (t PtrType) String() string { return t.Elem.String() + "*" }

// StructType is a sequence of fields with a layout (used by GetElementPtr to compute
// constant field offsets).
type StructType struct {
	Fields  []Type
	Offsets []int64 // Offsets[i] is the byte offset of Fields[i]; len(Offsets) == len(Fields)
	Size    int64
}

func (StructType) isType() {}
func (StructType) String() string { return "struct" }

// ArrayType is a fixed-length array of Elem.
type ArrayType struct {
	Elem Type
	Len  int64
}

func (ArrayType) isType() {}
func (t ArrayType) String() string { return "[" + strconv.FormatInt(t.Len, 10) + "]" + t.Elem.String() }

// UnknownType stands for anything the translator does not reason about numerically
// (floats, SIMD vectors, function types, ...).
type UnknownType struct{ Name string }

func (UnknownType) isType() {}
func (t UnknownType) String() string {
	if t.Name == "" {
		return "unknown"
	}
	return t.Name
}

// StorageSize returns the size in bytes GetElementPtr stride computations use for t.
// Scalars are sized by bit width (rounded up to a byte); aggregates carry an explicit
// size because the translator does not perform real struct layout.
func StorageSize(t Type) int64 {
	switch tt := t.(type) {
	case IntType:
		return int64((tt.Bits + 7) / 8)
	case PtrType:
		return 8
	case StructType:
		return tt.Size
	case ArrayType:
		return tt.Len * StorageSize(tt.Elem)
	default:
		return 0
	}
}

