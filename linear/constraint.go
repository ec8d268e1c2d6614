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

package linear

// Rel is a linear constraint's relational operator.
type Rel int

const (
	RelEQ Rel = iota
	RelNE
	RelLE
	RelGE
	RelLT
	RelGT
)

func (r Rel) negated() Rel {
	switch r {
	case RelEQ:
		return RelNE
	case RelNE:
		return RelEQ
	case RelLE:
		return RelGT
	case RelGE:
		return RelLT
	case RelLT:
		return RelGE
	case RelGT:
		return RelLE
	default:
		return r
	}
}

func (r Rel) String() string {
	switch r {
	case RelEQ:
		return "="
	case RelNE:
		return "!="
	case RelLE:
		return "<="
	case RelGE:
		return ">="
	case RelLT:
		return "<"
	case RelGT:
		return ">"
	default:
		return "?"
	}
}

// Constraint is "Expr ⊙ 0".
type Constraint struct {
	Expr Expr
	Rel  Rel
}

// NewConstraint builds "lhs - rhs ⊙ 0", the normal form every ConditionLowering rule
// produces.
func NewConstraint(lhs Expr, rel Rel, rhs Expr) Constraint {
	return Constraint{Expr: lhs.Sub(rhs), Rel: rel}
}

// Negate returns the logical negation of c: ¬(e = 0) ≡ (e != 0), ¬(e <= 0) ≡ (e > 0),
// and so on.
func (c Constraint) Negate() Constraint {
	return Constraint{Expr: c.Expr, Rel: c.Rel.negated()}
}

// String renders c as "expr ⊙ 0".
func (c Constraint) String() string {
	return c.Expr.String() + " " + c.Rel.String() + " 0"
}
