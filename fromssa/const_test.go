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
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/ssa"
)

func TestConstantInt64Integer(t *testing.T) {
	t.Parallel()

	k := ssa.NewConst(constant.MakeInt64(42), types.Typ[types.Int])
	v, ok := constantInt64(k)
	require.True(t, ok)
	require.Equal(t, int64(42), v)
}

func TestConstantInt64Bool(t *testing.T) {
	t.Parallel()

	k := ssa.NewConst(constant.MakeBool(true), types.Typ[types.Bool])
	v, ok := constantInt64(k)
	require.True(t, ok)
	require.Equal(t, int64(1), v)

	k = ssa.NewConst(constant.MakeBool(false), types.Typ[types.Bool])
	v, ok = constantInt64(k)
	require.True(t, ok)
	require.Equal(t, int64(0), v)
}

func TestConstantInt64RejectsString(t *testing.T) {
	t.Parallel()

	k := ssa.NewConst(constant.MakeString("x"), types.Typ[types.String])
	_, ok := constantInt64(k)
	require.False(t, ok)
}
