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

package memory

import "github.com/gocrab/crabgo/ir"

// mallocNames are the intrinsic call names AllocSiteOracle treats as fresh
// allocation sites, matching the set InstructionLowering special-cases in `main`
// (spec.md §4.4 "Call").
var mallocNames = map[string]bool{
	"malloc": true, "calloc": true, "valloc": true, "palloc": true,
}

// scalarCell is the synthetic ir.Value AllocSiteOracle hands back from Singleton: a
// unique, stable stand-in for "the one scalar cell of region a", so that repeated
// calls to Singleton(a) yield a Value that resolves to the same symtab.Name.
type scalarCell struct {
	id  ArrayID
	typ ir.Type
}

func (s *scalarCell) Name() string { return "cell" }
func (s *scalarCell) Type() ir.Type { return s.typ }

// AllocSiteOracle is a concrete, deterministic Oracle: one region per Alloca, per
// Global, and per dynamic-allocation call site; a pointer derived from a region by any
// chain of Convert/GetElementPtr steps maps to that same region (array smashing
// summarizes the whole region as one variable, so the constant-vs-variable index
// distinction that matters to GEP's own translation does not matter here); any other
// pointer provenance (a function parameter, the result of an unresolved call, ...) is
// Unmapped. This is the translator's one bundled Oracle; real embedders with an actual
// points-to analysis implement their own.
type AllocSiteOracle struct {
	level   Level
	regions map[ir.Value]ArrayID
	roots   []ir.Value // regions[roots[i]] == ArrayID(i), for deterministic iteration
	cells   map[ArrayID]*scalarCell
	newSet  map[*ir.Function][]ArrayID
}

// NewAllocSiteOracle returns an empty oracle at the given track level.
func NewAllocSiteOracle(level Level) *AllocSiteOracle {
	return &AllocSiteOracle{
		level:   level,
		regions: make(map[ir.Value]ArrayID),
		cells:   make(map[ArrayID]*scalarCell),
		newSet:  make(map[*ir.Function][]ArrayID),
	}
}

// region returns the stable ArrayID for root, assigning the next sequential id on
// first sight so that IDs are issued in a deterministic, construction order.
func (o *AllocSiteOracle) region(root ir.Value) ArrayID {
	if id, ok := o.regions[root]; ok {
		return id
	}
	id := ArrayID(len(o.roots))
	o.regions[root] = id
	o.roots = append(o.roots, root)
	return id
}

// DeclareAlloca registers a's region, recording it as a "new" region of fn (spec.md
// §4.5 step 5: every region in the per-function new set gets an init prelude).
func (o *AllocSiteOracle) DeclareAlloca(fn *ir.Function, a *ir.Alloca) ArrayID {
	id := o.region(a)
	if scalar, ok := a.Elem.(ir.IntType); ok {
		o.cells[id] = &scalarCell{id: id, typ: scalar}
	}
	o.newSet[fn] = append(o.newSet[fn], id)
	return id
}

// DeclareGlobal registers g's region. Globals are not part of any function's "new"
// set: they exist for the lifetime of the program, initialized by the
// global-initializer prelude (spec.md §4.5 step 4) rather than the per-function one.
func (o *AllocSiteOracle) DeclareGlobal(g *ir.Global) ArrayID {
	id := o.region(g)
	if scalar, ok := g.Typ.(ir.IntType); ok {
		o.cells[id] = &scalarCell{id: id, typ: scalar}
	}
	return id
}

// DeclareMallocSite registers a call instruction as a fresh region when its callee is
// one of the malloc-family intrinsics.
func (o *AllocSiteOracle) DeclareMallocSite(fn *ir.Function, call *ir.Call, elemType ir.Type) ArrayID {
	if !mallocNames[call.CalleeName()] {
		return Unmapped
	}
	id := o.region(call)
	if scalar, ok := elemType.(ir.IntType); ok {
		o.cells[id] = &scalarCell{id: id, typ: scalar}
	}
	o.newSet[fn] = append(o.newSet[fn], id)
	return id
}

func (o *AllocSiteOracle) TrackLevel() Level { return o.level }

func (o *AllocSiteOracle) ArrayID(fn *ir.Function, ptr ir.Value) ArrayID {
	root := resolveRoot(ptr)
	if id, ok := o.regions[root]; ok {
		return id
	}
	return Unmapped
}

func (o *AllocSiteOracle) ArrayIDForGlobal(g *ir.Global) ArrayID {
	if id, ok := o.regions[g]; ok {
		return id
	}
	return Unmapped
}

func (o *AllocSiteOracle) Singleton(a ArrayID) (ir.Value, bool) {
	cell, ok := o.cells[a]
	return cell, ok
}

// RefModNew is conservative for the bundled oracle: it has no interprocedural summary
// information, so every region reachable from an argument of the call is assumed both
// read and written, and none are assumed newly allocated by the callee. Embedders
// wanting a precise ref/mod/new split implement their own Oracle (see Summary in
// summary.go for how to persist one across package boundaries).
func (o *AllocSiteOracle) RefModNew(site ir.CallSite) (refs, mods, news []ArrayID) {
	call, ok := site.Instr.(*ir.Call)
	if !ok {
		return nil, nil, nil
	}
	seen := make(map[ArrayID]bool)
	for _, arg := range call.Args {
		id := o.ArrayID(site.Fn, arg)
		if id.Valid() && !seen[id] {
			seen[id] = true
			refs = append(refs, id)
			mods = append(mods, id)
		}
	}
	return refs, mods, nil
}

func (o *AllocSiteOracle) NewRegions(fn *ir.Function) []ArrayID {
	return o.newSet[fn]
}

// Globals returns every *ir.Global declared so far, in declaration order, for callers
// (such as cmd/crabgo) that need the full list to drive the global-initializer
// prelude without keeping their own parallel bookkeeping.
func (o *AllocSiteOracle) Globals() []*ir.Global {
	var out []*ir.Global
	for _, root := range o.roots {
		if g, ok := root.(*ir.Global); ok {
			out = append(out, g)
		}
	}
	return out
}

// resolveRoot walks a chain of Convert/GetElementPtr instructions back to the Alloca,
// Global, or malloc-site Call that ultimately produced ptr, per array smashing's
// "the whole region is one variable" abstraction.
func resolveRoot(ptr ir.Value) ir.Value {
	for {
		switch v := ptr.(type) {
		case *ir.Convert:
			ptr = v.X
		case *ir.GetElementPtr:
			ptr = v.Base
		default:
			return ptr
		}
	}
}
