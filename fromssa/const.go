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
	"go/constant"

	"golang.org/x/tools/go/ssa"
)

// constantInt64 extracts an exact int64 from an *ssa.Const's underlying constant.Value,
// covering the integer and boolean kinds this adapter tracks; anything else (floats,
// strings, complex) reports inexact.
func constantInt64(k *ssa.Const) (int64, bool) {
	switch k.Value.Kind() {
	case constant.Bool:
		if constant.BoolVal(k.Value) {
			return 1, true
		}
		return 0, true
	case constant.Int:
		return constant.Int64Val(k.Value)
	default:
		return 0, false
	}
}
