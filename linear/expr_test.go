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

package linear

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocrab/crabgo/symtab"
)

func TestConstIsConst(t *testing.T) {
	t.Parallel()

	c, ok := Const(7).IsConst()
	require.True(t, ok)
	require.Equal(t, big.NewInt(7), c)
}

func TestVarIsVar(t *testing.T) {
	t.Parallel()

	f := symtab.NewFactory()
	v := f.Fresh("x")

	name, ok := Var(v).IsVar()
	require.True(t, ok)
	require.Equal(t, v, name)

	_, ok = Var(v).AddConst(1).IsVar()
	require.False(t, ok)
}

func TestAddSub(t *testing.T) {
	t.Parallel()

	f := symtab.NewFactory()
	x, y := f.Fresh("x"), f.Fresh("y")

	e := Var(x).Add(Var(y)).AddConst(3)
	require.True(t, Var(x).Add(Var(y)).AddConst(3).Equal(e))

	diff := e.Sub(Var(y))
	want := Var(x).AddConst(3)
	require.True(t, diff.Equal(want))
}

func TestAddTermCancelsToZero(t *testing.T) {
	t.Parallel()

	f := symtab.NewFactory()
	x := f.Fresh("x")

	e := Var(x).Sub(Var(x))
	c, ok := e.IsConst()
	require.True(t, ok)
	require.Zero(t, c.Sign())
}

func TestScale(t *testing.T) {
	t.Parallel()

	f := symtab.NewFactory()
	x := f.Fresh("x")

	e := Var(x).AddConst(2).Scale(big.NewInt(3))
	want := Expr{c: big.NewInt(6)}
	want.terms = []term{{v: x, k: big.NewInt(3)}}
	require.True(t, e.Equal(want))
}

func TestEqualIgnoresInsertionOrder(t *testing.T) {
	t.Parallel()

	f := symtab.NewFactory()
	x, y := f.Fresh("x"), f.Fresh("y")

	a := Var(x).Add(Var(y))
	b := Var(y).Add(Var(x))
	require.True(t, a.Equal(b))
}

func TestStringDeterministic(t *testing.T) {
	t.Parallel()

	f := symtab.NewFactory()
	x, y := f.Fresh("x"), f.Fresh("y")

	e := Var(x).Add(Var(y)).AddConst(5)
	require.Equal(t, e.String(), e.String())
	require.Equal(t, x.String()+" + "+y.String()+" + 5", e.String())
}
