// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package mir

import (
	"github.com/consensys/go-airscript/pkg/util/source/sexp"
)

// Boundary identifies the row on which a boundary constraint holds.
type Boundary uint8

// NO_BOUNDARY indicates an integrity constraint, which holds on every row.
const NO_BOUNDARY Boundary = 0

// FIRST_ROW indicates a constraint holding on the first row only.
const FIRST_ROW Boundary = 1

// LAST_ROW indicates a constraint holding on the last row only.
const LAST_ROW Boundary = 2

func (b Boundary) String() string {
	switch b {
	case FIRST_ROW:
		return "first"
	case LAST_ROW:
		return "last"
	default:
		return "every"
	}
}

// Constraint represents a scalar polynomial identity "expr = 0", which holds
// either on every row or on a given boundary row.
type Constraint struct {
	Expr     Expr
	Boundary Boundary
}

// NewConstraint constructs a new constraint from a given equality "lhs = rhs".
func NewConstraint(lhs Expr, rhs Expr, boundary Boundary) Constraint {
	return Constraint{&Sub{lhs, rhs}, boundary}
}

// Lisp returns an S-expression representation of this constraint.
func (p *Constraint) Lisp(mapping Mapping) sexp.SExp {
	return sexp.NewTerm(p.Boundary.String(), p.Expr.Lisp(mapping))
}
