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
	"fmt"
	"strings"

	"github.com/consensys/go-airscript/pkg/util/source/sexp"
)

// MAIN_SEGMENT identifies the main trace segment.
const MAIN_SEGMENT uint = 0

// AUX_SEGMENT identifies the auxiliary trace segment holding bus columns.
const AUX_SEGMENT uint = 1

// ============================================================================
// TraceAccess
// ============================================================================

// TraceAccess represents reading the value of a given column (within a given
// trace segment) at the current row, or at some row below it.
type TraceAccess struct {
	Segment uint
	Column  uint
	Shift   uint
}

// ApplyShift implementation for Expr interface.
func (e *TraceAccess) ApplyShift(shift uint) Expr {
	return &TraceAccess{e.Segment, e.Column, e.Shift + shift}
}

// Children implementation for Expr interface.
func (e *TraceAccess) Children() []Expr { return nil }

// MaxShift implementation for Expr interface.
func (e *TraceAccess) MaxShift() uint { return e.Shift }

// Lisp implementation for Expr interface.
func (e *TraceAccess) Lisp(mapping Mapping) sexp.SExp {
	var name = mapping.TraceColumnName(e.Segment, e.Column)
	//
	return sexp.NewSymbol(name + strings.Repeat("'", int(e.Shift)))
}

func (e *TraceAccess) isExpr() {}

// ============================================================================
// PeriodicAccess
// ============================================================================

// PeriodicAccess represents reading the value of a periodic column at the
// current row.  Periodic columns cannot be shifted.
type PeriodicAccess struct {
	Column uint
}

// ApplyShift implementation for Expr interface.
func (e *PeriodicAccess) ApplyShift(uint) Expr {
	panic("periodic column access cannot be shifted")
}

// Children implementation for Expr interface.
func (e *PeriodicAccess) Children() []Expr { return nil }

// MaxShift implementation for Expr interface.
func (e *PeriodicAccess) MaxShift() uint { return 0 }

// Lisp implementation for Expr interface.
func (e *PeriodicAccess) Lisp(mapping Mapping) sexp.SExp {
	return sexp.NewSymbol(mapping.PeriodicColumnName(e.Column))
}

func (e *PeriodicAccess) isExpr() {}

// ============================================================================
// PublicInputAccess
// ============================================================================

// PublicInputAccess represents reading a given element of a public input
// vector.  These are only permitted within boundary constraints.
type PublicInputAccess struct {
	Input uint
	Index uint
}

// ApplyShift implementation for Expr interface.
func (e *PublicInputAccess) ApplyShift(uint) Expr { return e }

// Children implementation for Expr interface.
func (e *PublicInputAccess) Children() []Expr { return nil }

// MaxShift implementation for Expr interface.
func (e *PublicInputAccess) MaxShift() uint { return 0 }

// Lisp implementation for Expr interface.
func (e *PublicInputAccess) Lisp(mapping Mapping) sexp.SExp {
	return sexp.NewSymbolf("%s[%d]", mapping.PublicInputName(e.Input), e.Index)
}

func (e *PublicInputAccess) isExpr() {}

// ============================================================================
// RandomValue
// ============================================================================

// RandomValue represents a verifier-supplied random challenge, as used to
// combine the elements of a bus tuple.
type RandomValue struct {
	Index uint
}

// ApplyShift implementation for Expr interface.
func (e *RandomValue) ApplyShift(uint) Expr { return e }

// Children implementation for Expr interface.
func (e *RandomValue) Children() []Expr { return nil }

// MaxShift implementation for Expr interface.
func (e *RandomValue) MaxShift() uint { return 0 }

// Lisp implementation for Expr interface.
func (e *RandomValue) Lisp(Mapping) sexp.SExp {
	return sexp.NewSymbol(fmt.Sprintf("$alpha[%d]", e.Index))
}

func (e *RandomValue) isExpr() {}
