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

// Package linear implements the value types of the translator's target language: a
// LinearExpression "Σ kᵢ·vᵢ + c" over arbitrary-precision integer coefficients, and
// a LinearConstraint "expr ⊙ 0". Both are immutable value types (spec.md §3).
package linear

import (
	"math/big"
	"strings"

	"github.com/gocrab/crabgo/symtab"
)

// term is one kᵢ·vᵢ addend. Expr keeps terms in insertion order (rather than, say, a
// plain map) so that printing two structurally-equal expressions built in the same
// order yields byte-identical output — the determinism requirement of spec.md §5
// extends to the target language's own value types, not just the CFG's statement
// order.
type term struct {
	v symtab.Name
	k *big.Int
}

// Expr is a constant or a sum of scaled variables plus a constant.
type Expr struct {
	terms []term
	c     *big.Int
}

// Const builds the constant expression c.
func Const(c int64) Expr {
	return Expr{c: big.NewInt(c)}
}

// ConstBig builds the constant expression c.
func ConstBig(c *big.Int) Expr {
	return Expr{c: new(big.Int).Set(c)}
}

// Var builds the expression "1·v".
func Var(v symtab.Name) Expr {
	return Expr{terms: []term{{v: v, k: big.NewInt(1)}}, c: big.NewInt(0)}
}

// constant returns the expression's constant term, defaulting to 0.
func (e Expr) constant() *big.Int {
	if e.c == nil {
		return big.NewInt(0)
	}
	return e.c
}

// IsConst reports whether e has no variable terms, returning its value.
func (e Expr) IsConst() (*big.Int, bool) {
	if len(e.terms) == 0 {
		return e.constant(), true
	}
	return nil, false
}

// IsVar reports whether e is a single variable with coefficient 1 and constant 0 —
// SymEval's is_var helper (spec.md §4.1).
func (e Expr) IsVar() (symtab.Name, bool) {
	if len(e.terms) == 1 && e.terms[0].k.Cmp(big.NewInt(1)) == 0 && e.constant().Sign() == 0 {
		return e.terms[0].v, true
	}
	return symtab.Name{}, false
}

// Add returns e + o.
func (e Expr) Add(o Expr) Expr {
	return e.scaleAndAdd(big.NewInt(1), o)
}

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr {
	return e.scaleAndAdd(big.NewInt(-1), o)
}

// scaleAndAdd returns e + k·o.
func (e Expr) scaleAndAdd(k *big.Int, o Expr) Expr {
	result := Expr{c: new(big.Int).Add(e.constant(), new(big.Int).Mul(k, o.constant()))}
	result.terms = append(result.terms, e.terms...)
	for _, t := range o.terms {
		result.terms = addTerm(result.terms, t.v, new(big.Int).Mul(k, t.k))
	}
	return result
}

// AddConst returns e + c.
func (e Expr) AddConst(c int64) Expr {
	return Expr{terms: e.terms, c: new(big.Int).Add(e.constant(), big.NewInt(c))}
}

// Scale returns k·e.
func (e Expr) Scale(k *big.Int) Expr {
	result := Expr{c: new(big.Int).Mul(k, e.constant())}
	for _, t := range e.terms {
		result.terms = addTerm(result.terms, t.v, new(big.Int).Mul(k, t.k))
	}
	return result
}

// addTerm inserts k·v into terms (preserving first-seen order), dropping the term
// entirely if the resulting coefficient is zero.
func addTerm(terms []term, v symtab.Name, k *big.Int) []term {
	for i, t := range terms {
		if t.v == v {
			sum := new(big.Int).Add(t.k, k)
			if sum.Sign() == 0 {
				return append(terms[:i], terms[i+1:]...)
			}
			cp := append([]term(nil), terms...)
			cp[i].k = sum
			return cp
		}
	}
	if k.Sign() == 0 {
		return terms
	}
	return append(append([]term(nil), terms...), term{v: v, k: new(big.Int).Set(k)})
}

// Equal reports whether e and o denote the same linear expression (same terms with
// the same coefficients, same constant), independent of insertion order.
func (e Expr) Equal(o Expr) bool {
	if e.constant().Cmp(o.constant()) != 0 || len(e.terms) != len(o.terms) {
		return false
	}
	for _, t := range e.terms {
		found := false
		for _, u := range o.terms {
			if t.v == u.v {
				found = t.k.Cmp(u.k) == 0
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// String renders e deterministically as "k0*v0 + k1*v1 + ... + c".
func (e Expr) String() string {
	var sb strings.Builder
	for i, t := range e.terms {
		if i > 0 {
			sb.WriteString(" + ")
		}
		if t.k.Cmp(big.NewInt(1)) == 0 {
			sb.WriteString(t.v.String())
		} else {
			sb.WriteString(t.k.String())
			sb.WriteString("*")
			sb.WriteString(t.v.String())
		}
	}
	if c := e.constant(); c.Sign() != 0 || len(e.terms) == 0 {
		if len(e.terms) > 0 {
			if c.Sign() >= 0 {
				sb.WriteString(" + ")
			} else {
				sb.WriteString(" - ")
				c = new(big.Int).Neg(c)
			}
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}
