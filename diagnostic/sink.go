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

// Package diagnostic is the translator's warning sink (spec.md §7): the destination
// for "unsound constant pattern" warnings that accompany a conservative havoc, as
// opposed to the silent, unreported abstraction spec.md calls for on every other
// unrepresentable construct. It wraps github.com/tliron/commonlog, the logging
// library the example corpus's kanso-lang-kanso project wires in for its own
// diagnostics, rather than writing to stderr by hand.
package diagnostic

import "github.com/tliron/commonlog"

// Sink is a leveled logger scoped to one translation run.
type Sink struct {
	log commonlog.Logger
}

// NewSink configures commonlog at the given verbosity (0 = default, higher = more
// verbose, matching commonlog.Configure's convention) and returns a Sink scoped to
// the translator.
func NewSink(verbosity int) *Sink {
	commonlog.Configure(verbosity, nil)
	return &Sink{log: commonlog.GetLogger("crabgo.translate")}
}

// Warnf reports an "unsound constant pattern" or similarly recoverable-but-surprising
// situation (spec.md §7). It is never fatal: the caller has already decided to havoc
// the affected destination and continue.
func (s *Sink) Warnf(format string, args ...any) {
	if s == nil || s.log == nil {
		return
	}
	s.log.Warningf(format, args...)
}

// Infof reports routine translation progress (e.g. "simplified N blocks").
func (s *Sink) Infof(format string, args ...any) {
	if s == nil || s.log == nil {
		return
	}
	s.log.Infof(format, args...)
}
