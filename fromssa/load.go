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

// Package fromssa is a thin, optional front-end adapter from real Go SSA
// (golang.org/x/tools/go/ssa) onto the ir package's data model. It exists to
// demonstrate and exercise the IR boundary spec.md places out of scope ("parsing or
// loading of the source IR") with a real, buildable Go frontend, not to be a complete
// or precise Go-to-crabgo compiler: floating point, maps, slices of non-integer
// element type, interfaces, goroutines, and panics/recover all fall outside what
// Convert attempts, mirroring spec.md's own non-goals.
package fromssa

import (
	"fmt"

	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"
)

// Load resolves pattern (a go/packages load pattern, e.g. "./...") and builds the SSA
// form of every matched package, returning the ssa.Packages in load order.
func Load(pattern string) ([]*ssa.Package, error) {
	cfg := &packages.Config{Mode: packages.LoadAllSyntax}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("fromssa: loading %q: %w", pattern, err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("fromssa: %q has type errors", pattern)
	}

	prog, ssaPkgs := ssautil.AllPackages(pkgs, ssa.SanityCheckFunctions)
	prog.Build()

	out := make([]*ssa.Package, 0, len(ssaPkgs))
	for _, p := range ssaPkgs {
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}
