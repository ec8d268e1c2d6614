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

import "strings"

// String renders g deterministically: nodes in creation order, each with its
// statements and successor list. Two translations of identical input produce
// byte-identical output (spec.md §5, §8's determinism property) because node
// creation order and statement append order are themselves deterministic.
func (g *Graph) String() string {
	var sb strings.Builder
	sb.WriteString("function ")
	sb.WriteString(g.FuncName)
	sb.WriteString(" {\n")
	for _, label := range g.order {
		n := g.nodes[label]
		sb.WriteString("  ")
		sb.WriteString(n.Label)
		sb.WriteString(":\n")
		for _, s := range n.Stmts {
			sb.WriteString("    ")
			sb.WriteString(s.String())
			sb.WriteString("\n")
		}
		sb.WriteString("    -> [")
		sb.WriteString(strings.Join(n.Succs, ", "))
		sb.WriteString("]\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}
