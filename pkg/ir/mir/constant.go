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
	"github.com/consensys/go-airscript/pkg/util/field"
	"github.com/consensys/go-airscript/pkg/util/source/sexp"
)

// Constant represents a constant field element.
type Constant struct {
	Value field.Element
}

// NewConstant constructs a constant from a given unsigned integer.
func NewConstant(value uint64) *Constant {
	return &Constant{field.Uint64(value)}
}

// ApplyShift implementation for Expr interface.
func (e *Constant) ApplyShift(uint) Expr { return e }

// Children implementation for Expr interface.
func (e *Constant) Children() []Expr { return nil }

// MaxShift implementation for Expr interface.
func (e *Constant) MaxShift() uint { return 0 }

// Lisp implementation for Expr interface.
func (e *Constant) Lisp(Mapping) sexp.SExp {
	return sexp.NewSymbol(e.Value.String())
}

func (e *Constant) isExpr() {}

// IsConstant checks whether a given expression is a constant with a given
// value.
func IsConstant(expr Expr, value uint64) bool {
	if c, ok := expr.(*Constant); ok {
		return c.Value.Equals(field.Uint64(value))
	}
	//
	return false
}
