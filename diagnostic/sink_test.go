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

package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSinkReturnsUsableLogger(t *testing.T) {
	t.Parallel()

	s := NewSink(0)
	require.NotNil(t, s)
}

func TestNilSinkMethodsAreNoOps(t *testing.T) {
	t.Parallel()

	var s *Sink
	require.NotPanics(t, func() {
		s.Warnf("unsound constant pattern at %s", "block")
		s.Infof("simplified %d blocks", 3)
	})
}

func TestSinkWarnfAndInfofDoNotPanic(t *testing.T) {
	t.Parallel()

	s := NewSink(1)
	require.NotPanics(t, func() {
		s.Warnf("unsound constant pattern at %s", "block")
		s.Infof("simplified %d blocks", 3)
	})
}
