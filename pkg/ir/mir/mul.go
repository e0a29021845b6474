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

// Mul represents the product of two expressions.
type Mul struct {
	Lhs Expr
	Rhs Expr
}

// Product multiplies zero or more expressions together, associating to the
// left.  The product of no expressions is one.
func Product(terms ...Expr) Expr {
	if len(terms) == 0 {
		return NewConstant(1)
	}
	//
	var product = terms[0]
	//
	for _, t := range terms[1:] {
		product = &Mul{product, t}
	}
	//
	return product
}

// ApplyShift implementation for Expr interface.
func (e *Mul) ApplyShift(shift uint) Expr {
	return &Mul{e.Lhs.ApplyShift(shift), e.Rhs.ApplyShift(shift)}
}

// Children implementation for Expr interface.
func (e *Mul) Children() []Expr { return []Expr{e.Lhs, e.Rhs} }

// MaxShift implementation for Expr interface.
func (e *Mul) MaxShift() uint { return maxShiftOfTerms(e.Lhs, e.Rhs) }

// Lisp implementation for Expr interface.
func (e *Mul) Lisp(mapping Mapping) sexp.SExp {
	return sexp.NewTerm("*", e.Lhs.Lisp(mapping), e.Rhs.Lisp(mapping))
}

func (e *Mul) isExpr() {}
