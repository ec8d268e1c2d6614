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

func TestAddNodeRejectsDuplicateLabel(t *testing.T) {
	t.Parallel()

	g := New("f", "entry")
	g.AddNode("entry")
	require.Panics(t, func() { g.AddNode("entry") })
}

func TestNodesPreservesCreationOrder(t *testing.T) {
	t.Parallel()

	g := New("f", "a")
	g.AddNode("a")
	g.AddNode("c")
	g.AddNode("b")

	var labels []string
	for _, n := range g.Nodes() {
		labels = append(labels, n.Label)
	}
	require.Equal(t, []string{"a", "c", "b"}, labels)
}

func TestRemoveEdgeRemovesFirstMatchOnly(t *testing.T) {
	t.Parallel()

	g := New("f", "a")
	g.AddNode("a")
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("a", "b")

	g.RemoveEdge("a", "b")
	require.Equal(t, []string{"c", "b"}, g.Node("a").Succs)
}

func TestStringDeterministicAcrossCalls(t *testing.T) {
	t.Parallel()

	f := symtab.NewFactory()
	x := f.Fresh("x")

	g := New("f", "entry")
	g.AddNode("entry")
	g.Append("entry", Assign{Dst: x, Src: linear.Const(1)})
	g.AddEdge("entry", "entry")

	require.Equal(t, g.String(), g.String())
	require.Contains(t, g.String(), "entry:")
}
