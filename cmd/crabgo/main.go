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

// Command crabgo loads a Go package, lowers its functions through the fromssa
// adapter, and prints the cfg.Graph the translator builds for each one. It is a thin
// driver in the mold of the teacher's own cmd/nilaway: flags feed a config.Options
// value, the real work happens in library packages, and main itself does no
// translation.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/tools/go/ssa"

	"github.com/gocrab/crabgo/cfgbuild"
	"github.com/gocrab/crabgo/config"
	"github.com/gocrab/crabgo/diagnostic"
	"github.com/gocrab/crabgo/fromssa"
	"github.com/gocrab/crabgo/ir"
	"github.com/gocrab/crabgo/memory"
	"github.com/gocrab/crabgo/symeval"
	"github.com/gocrab/crabgo/symtab"
)

var (
	simplify   = flag.Bool("simplify", false, "apply Graph.Simplify() after translation")
	printCFG   = flag.Bool("print", true, "print each function's translated CFG")
	noPtrArith = flag.Bool("no-ptr-arith", false, "disable GEP/pointer-typed translation")
	havoc      = flag.Bool("include-havoc", false, "emit explicit havoc statements for unconstrained destinations")
	arrays     = flag.Bool("arrays", true, "track memory at array-smashing granularity instead of registers-only")
	interProc  = flag.Bool("inter-procedural", false, "emit FuncDecl and lower Call/Return accordingly")
	verbosity  = flag.Int("v", 0, "diagnostic verbosity")
	noColor    = flag.Bool("no-color", false, "disable colorized CFG output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <package pattern>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *noColor {
		color.NoColor = true
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "crabgo: %v\n", err)
		os.Exit(1)
	}
}

// run loads pattern, converts every function body it finds to the ir data model
// sharing one memory.AllocSiteOracle, and builds + (optionally) prints each one's
// cfg.Graph in turn.
func run(pattern string) error {
	pkgs, err := fromssa.Load(pattern)
	if err != nil {
		return err
	}

	level := memory.LevelRegisters
	if *arrays {
		level = memory.LevelArrays
	}
	oracle := memory.NewAllocSiteOracle(level)

	// -print drives this command's own colorized output below, not
	// config.WithPrintCFG — that option makes Build print the bare graph to standard
	// output itself, which would print the same graph twice.
	var optFns []config.Option
	if *simplify {
		optFns = append(optFns, config.WithSimplifyCFG())
	}
	if *noPtrArith {
		optFns = append(optFns, config.WithDisablePointerArith())
	}
	if *havoc {
		optFns = append(optFns, config.WithIncludeHavoc())
	}
	opts := config.Default(optFns...)

	sink := diagnostic.NewSink(*verbosity)

	var ssaFns []*ssa.Function
	var mainName string
	for _, pkg := range pkgs {
		for _, m := range pkg.Members {
			fn, ok := m.(*ssa.Function)
			if !ok || fn.Blocks == nil {
				continue
			}
			ssaFns = append(ssaFns, fn)
			if fn.Name() == "main" && pkg.Pkg != nil && pkg.Pkg.Name() == "main" {
				mainName = fn.Name()
			}
		}
	}
	if len(ssaFns) == 0 {
		return fmt.Errorf("%s: no function bodies found", pattern)
	}

	irFns := make([]*ir.Function, 0, len(ssaFns))
	for _, sf := range ssaFns {
		irFns = append(irFns, fromssa.Convert(sf, oracle))
	}
	globals := oracle.Globals()

	eval := symeval.New(symtab.NewFactory(), oracle)
	builder := cfgbuild.New(eval, opts, sink, *interProc)

	header := color.New(color.FgCyan, color.Bold).SprintFunc()
	for _, fn := range irFns {
		isMain := fn.Name == mainName
		g := builder.Build(fn, isMain, globals)
		if *printCFG {
			fmt.Println(header("// " + fn.Name))
			fmt.Println(g.String())
		}
	}
	return nil
}
