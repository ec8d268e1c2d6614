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
	"go/types"

	"github.com/gocrab/crabgo/ir"
)

// convertType reduces a go/types.Type to the ir.Type granularity the translator
// reasons about: integers (including bool, mapped to i1), pointers, and everything
// else as opaque. Structs and arrays are not walked field-by-field here — a real
// embedder wiring a source language's own aggregate layout into GetElementPtr would
// extend this function; this adapter's job is to exercise the boundary, not to
// replicate Go's own struct layout rules.
func convertType(t types.Type) ir.Type {
	switch tt := t.Underlying().(type) {
	case *types.Basic:
		switch tt.Info() {
		case types.IsBoolean:
			return ir.IntType{Bits: 1}
		default:
			if tt.Info()&types.IsInteger != 0 {
				return ir.IntType{Bits: basicBits(tt)}
			}
		}
	case *types.Pointer:
		return ir.PtrType{Elem: convertType(tt.Elem())}
	}
	return ir.UnknownType{Name: t.String()}
}

func basicBits(b *types.Basic) int {
	switch b.Kind() {
	case types.Int8, types.Uint8:
		return 8
	case types.Int16, types.Uint16:
		return 16
	case types.Int64, types.Uint64:
		return 64
	default:
		return 32
	}
}

func isUnsigned(t types.Type) bool {
	b, ok := t.Underlying().(*types.Basic)
	return ok && b.Info()&types.IsUnsigned != 0
}
