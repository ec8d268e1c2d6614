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

// Package config carries the translator's four boolean options (spec.md §6) as an
// explicit value passed into cfgbuild.Builder, rather than as global mutable state
// (spec.md §9 design note: "so that multiple configurations can coexist in one
// process").
package config

// Options is the translator's process-wide configuration surface, reduced to a plain
// value type.
type Options struct {
	// SimplifyCFG applies Graph.Simplify() after translation.
	SimplifyCFG bool
	// PrintCFG emits the textual CFG to standard output after translation.
	PrintCFG bool
	// DisablePointerArith skips translating GEP offsets and any cast/select/call/phi
	// whose type is non-integer.
	DisablePointerArith bool
	// IncludeHavoc emits explicit havoc statements for otherwise-unconstrained SSA
	// destinations — redundant under SSA, but useful for debugging and for
	// downstream passes that expect every destination to have a defining statement.
	IncludeHavoc bool
}

// Option mutates an Options value; functional options let callers compose only the
// flags they care about instead of constructing the struct literal by hand.
type Option func(*Options)

// Default returns the all-false Options, optionally mutated by opts.
func Default(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithSimplifyCFG sets SimplifyCFG.
func WithSimplifyCFG() Option { return func(o *Options) { o.SimplifyCFG = true } }

// WithPrintCFG sets PrintCFG.
func WithPrintCFG() Option { return func(o *Options) { o.PrintCFG = true } }

// WithDisablePointerArith sets DisablePointerArith.
func WithDisablePointerArith() Option { return func(o *Options) { o.DisablePointerArith = true } }

// WithIncludeHavoc sets IncludeHavoc.
func WithIncludeHavoc() Option { return func(o *Options) { o.IncludeHavoc = true } }
