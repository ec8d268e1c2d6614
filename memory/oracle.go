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

// Package memory defines the MemoryOracle capability the translator consumes
// (spec.md §6) and ships one concrete, deterministic implementation good enough to
// drive the translator without an external points-to analysis. MemoryOracle is
// explicitly an external collaborator (spec.md §1); this package is the extension
// seam spec.md §9 calls out — alternative abstractions (type-based, Steensgaard,
// region-based) need only satisfy the Oracle interface.
package memory

import "github.com/gocrab/crabgo/ir"

// Level is the granularity at which memory is tracked.
type Level int

const (
	// LevelNone tracks no pointers at all; only integers participate in numeric
	// reasoning.
	LevelNone Level = iota
	// LevelRegisters tracks pointer-typed registers as plain numeric variables
	// (their provenance, not their pointee) but does not model the heap.
	LevelRegisters
	// LevelArrays additionally abstracts linear memory via array smashing.
	LevelArrays
)

// ArrayID is an opaque handle to a memory region, scoped to the Oracle that issued
// it. A negative value means "unmapped" (the pointer escapes the abstraction).
type ArrayID int

// Unmapped is the canonical "no region" ArrayID.
const Unmapped ArrayID = -1

// Valid reports whether a is a real region (spec.md §4.4 "if a < 0").
func (a ArrayID) Valid() bool { return a >= 0 }

// Oracle is the narrow capability set the translator needs from a memory-region
// analysis (spec.md §6): track level, array identity for a pointer, singleton
// detection, and per-callsite ref/mod/new sets.
type Oracle interface {
	// TrackLevel reports the configured pointer-tracking granularity.
	TrackLevel() Level
	// ArrayID returns the region ptr points into within fn, or Unmapped.
	ArrayID(fn *ir.Function, ptr ir.Value) ArrayID
	// ArrayIDForGlobal returns the region a global variable occupies.
	ArrayIDForGlobal(g *ir.Global) ArrayID
	// Singleton reports whether a is provably a single scalar cell, returning the
	// ir.Value standing in for that cell's current value if so.
	Singleton(a ArrayID) (ir.Value, bool)
	// RefModNew returns the sets of regions a call site may read, write, and newly
	// allocate, each in a stable order shared between caller and callee
	// (spec.md §5's determinism requirement).
	RefModNew(site ir.CallSite) (refs, mods, news []ArrayID)
	// NewRegions returns the regions a function allocates fresh on entry (spec.md
	// §4.5 step 5, the "new-region prelude").
	NewRegions(fn *ir.Function) []ArrayID
}
