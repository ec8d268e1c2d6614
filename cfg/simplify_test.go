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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gocrab/crabgo/linear"
	"github.com/gocrab/crabgo/symtab"
)

func TestSimplifyMergesSingleSuccessorChain(t *testing.T) {
	t.Parallel()

	f := symtab.NewFactory()
	x := f.Fresh("x")

	g := New("f", "a")
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("c")
	g.Append("a", Assign{Dst: x, Src: linear.Const(1)})
	g.Append("b", Assign{Dst: x, Src: linear.Const(2)})
	g.Append("c", Assign{Dst: x, Src: linear.Const(3)})
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.DeclareExit("c")

	g.Simplify()

	require.Len(t, g.Nodes(), 1)
	merged := g.Node("a")
	require.NotNil(t, merged)
	require.Len(t, merged.Stmts, 3)
	require.Equal(t, "a", g.Exit)
}

func TestSimplifyStopsAtSharedSuccessor(t *testing.T) {
	t.Parallel()

	g := New("f", "a")
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("c")
	g.AddEdge("a", "c")
	g.AddEdge("b", "c")
	g.DeclareExit("c")

	g.Simplify()

	require.Len(t, g.Nodes(), 3)
}

func TestSimplifyNeverMergesExitAway(t *testing.T) {
	t.Parallel()

	g := New("f", "a")
	g.AddNode("a")
	g.AddNode("b")
	g.AddEdge("a", "b")
	g.DeclareExit("a")

	g.Simplify()

	require.Len(t, g.Nodes(), 2)
}
