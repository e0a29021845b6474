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

// Expr represents a scalar expression in the mid-level IR.  At this level, all
// abstractions (evaluators, functions, comprehensions, bus operations) have
// been eliminated, leaving only arithmetic over constants, trace accesses,
// periodic columns, public inputs and random values.
type Expr interface {
	// ApplyShift shifts every trace access in this expression down by a given
	// number of rows.  This must not be applied to expressions accessing
	// periodic columns.
	ApplyShift(uint) Expr
	// Children returns the immediate subexpressions of this expression (if
	// any).
	Children() []Expr
	// MaxShift returns the largest row shift applied to any trace access in
	// this expression.
	MaxShift() uint
	// Lisp converts this expression into an S-expression, using a given
	// mapping to name columns and inputs.
	Lisp(Mapping) sexp.SExp
	// marker
	isExpr()
}

// Mapping provides human-readable names for the leaves of an expression.
type Mapping interface {
	// TraceColumnName returns the name of a given column in a given segment.
	TraceColumnName(segment uint, column uint) string
	// PeriodicColumnName returns the name of a given periodic column.
	PeriodicColumnName(column uint) string
	// PublicInputName returns the name of a given public input.
	PublicInputName(input uint) string
}

// Contains checks whether any subexpression of a given expression (including
// itself) satisfies a given predicate.
func Contains(expr Expr, predicate func(Expr) bool) bool {
	if predicate(expr) {
		return true
	}
	//
	for _, child := range expr.Children() {
		if Contains(child, predicate) {
			return true
		}
	}
	//
	return false
}

// IsPeriodic checks whether a given expression is a periodic column access.
func IsPeriodic(expr Expr) bool {
	_, ok := expr.(*PeriodicAccess)
	return ok
}

// IsPublicInput checks whether a given expression is a public input access.
func IsPublicInput(expr Expr) bool {
	_, ok := expr.(*PublicInputAccess)
	return ok
}

// MaxSegment returns the largest trace segment accessed within a given
// expression, or 0 if no trace column is accessed.
func MaxSegment(expr Expr) uint {
	var segment uint
	//
	if e, ok := expr.(*TraceAccess); ok {
		segment = e.Segment
	}
	//
	for _, child := range expr.Children() {
		segment = max(segment, MaxSegment(child))
	}
	//
	return segment
}

func maxShiftOfTerms(terms ...Expr) uint {
	var shift uint
	//
	for _, t := range terms {
		shift = max(shift, t.MaxShift())
	}
	//
	return shift
}
