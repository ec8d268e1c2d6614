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

// Simplify implements the `simplify_cfg` option (spec.md §6): it repeatedly merges a
// node with its single successor when that successor has no other predecessor,
// folding the two nodes' statement lists together. This is purely a post-translation
// cosmetic/performance pass — spec.md §4 marks CFG simplification as "not part of the
// core algorithm" — grounded on the teacher's restructureBlocks, which likewise
// copies and collapses a *cfg.CFG in place after translation
// (assertion/function/assertiontree/preprocess_blocks.go).
func (g *Graph) Simplify() {
	predCount := g.predecessorCounts()
	changed := true
	for changed {
		changed = false
		for _, label := range g.order {
			n := g.nodes[label]
			if n == nil || len(n.Succs) != 1 || label == g.Exit {
				continue
			}
			succLabel := n.Succs[0]
			if succLabel == label || predCount[succLabel] != 1 {
				continue
			}
			succ := g.nodes[succLabel]
			if succ == nil {
				continue
			}
			n.Stmts = append(n.Stmts, succ.Stmts...)
			n.Succs = succ.Succs
			if g.Exit == succLabel {
				g.Exit = label
			}
			delete(g.nodes, succLabel)
			g.order = removeLabel(g.order, succLabel)
			predCount = g.predecessorCounts()
			changed = true
			break
		}
	}
}

func (g *Graph) predecessorCounts() map[string]int {
	counts := make(map[string]int, len(g.order))
	for _, label := range g.order {
		for _, s := range g.nodes[label].Succs {
			counts[s]++
		}
	}
	return counts
}

func removeLabel(labels []string, target string) []string {
	out := labels[:0]
	for _, l := range labels {
		if l != target {
			out = append(out, l)
		}
	}
	return out
}
