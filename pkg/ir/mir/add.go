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

// Add represents the sum of two expressions.
type Add struct {
	Lhs Expr
	Rhs Expr
}

// Sum zero or more expressions together, associating to the left.  The sum of
// no expressions is zero.
func Sum(terms ...Expr) Expr {
	if len(terms) == 0 {
		return NewConstant(0)
	}
	//
	var sum = terms[0]
	//
	for _, t := range terms[1:] {
		sum = &Add{sum, t}
	}
	//
	return sum
}

// ApplyShift implementation for Expr interface.
func (e *Add) ApplyShift(shift uint) Expr {
	return &Add{e.Lhs.ApplyShift(shift), e.Rhs.ApplyShift(shift)}
}

// Children implementation for Expr interface.
func (e *Add) Children() []Expr { return []Expr{e.Lhs, e.Rhs} }

// MaxShift implementation for Expr interface.
func (e *Add) MaxShift() uint { return maxShiftOfTerms(e.Lhs, e.Rhs) }

// Lisp implementation for Expr interface.
func (e *Add) Lisp(mapping Mapping) sexp.SExp {
	return sexp.NewTerm("+", e.Lhs.Lisp(mapping), e.Rhs.Lisp(mapping))
}

func (e *Add) isExpr() {}
