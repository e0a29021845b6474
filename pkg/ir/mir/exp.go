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

// Exp represents an expression raised to a constant power.
type Exp struct {
	Base  Expr
	Power uint64
}

// ApplyShift implementation for Expr interface.
func (e *Exp) ApplyShift(shift uint) Expr {
	return &Exp{e.Base.ApplyShift(shift), e.Power}
}

// Children implementation for Expr interface.
func (e *Exp) Children() []Expr { return []Expr{e.Base} }

// MaxShift implementation for Expr interface.
func (e *Exp) MaxShift() uint { return e.Base.MaxShift() }

// Lisp implementation for Expr interface.
func (e *Exp) Lisp(mapping Mapping) sexp.SExp {
	return sexp.NewTerm("^", e.Base.Lisp(mapping), sexp.NewSymbolf("%d", e.Power))
}

func (e *Exp) isExpr() {}
