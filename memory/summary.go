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

import (
	"bytes"
	"encoding/gob"

	"github.com/klauspost/compress/s2"
	"golang.org/x/tools/go/analysis"
)

// Summary is a cross-package-safe record of a function's ref/mod/new array ordering,
// keyed by formal-parameter position rather than by ArrayID (ArrayIDs are only
// meaningful within the Oracle that issued them, and the callee lives in a different
// compilation unit / analysis pass than the caller). It lets inter-procedural mode
// (spec.md §4.4 "Call", non-variadic branch) reconstruct, at a call site, the same
// ref/mod/new ordering the callee's own translation used for its formal parameters —
// the "MemoryOracle yields deterministic orderings... consistent construction on both
// sides" requirement of spec.md §5.
//
// Summary implements analysis.Fact so it can be exported from the package that
// translates a function and imported by the packages that call it, exactly as the
// teacher's inference package exports inferred nilability facts across packages.
type Summary struct {
	FuncName  string
	RefCount  int // number of ref-array formals, in order
	ModCount  int // number of ref-array formals that are also mod (a subset ordering)
	NewCount  int // number of new-array formals, in order
}

var _ analysis.Fact = (*Summary)(nil)

// AFact marks Summary as usable with the analysis.Pass Facts mechanism.
func (*Summary) AFact() {}

// GobEncode encodes the summary with s2 block compression, mirroring the teacher's
// InferredMap.GobEncode: gob handles the structure, s2 keeps the exported fact payload
// small across a large package graph.
func (s *Summary) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	writer := s2.NewWriter(&buf)
	type raw Summary
	if err := gob.NewEncoder(writer).Encode((*raw)(s)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode reverses GobEncode.
func (s *Summary) GobDecode(input []byte) error {
	type raw Summary
	reader := s2.NewReader(bytes.NewReader(input))
	return gob.NewDecoder(reader).Decode((*raw)(s))
}
