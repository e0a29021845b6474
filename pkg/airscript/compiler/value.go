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
package compiler

import (
	"github.com/consensys/go-airscript/pkg/ir/mir"
)

// Value is the result of lowering an expression.  This is either a scalar
// (i.e. a single MIR expression), or a vector of values.  Matrices are simply
// vectors of vectors.
type Value struct {
	scalar   mir.Expr
	elements []Value
}

// ScalarValue constructs a scalar value from a given MIR expression.
func ScalarValue(expr mir.Expr) Value {
	return Value{scalar: expr}
}

// VectorValue constructs a vector value from zero or more elements.
func VectorValue(elements ...Value) Value {
	return Value{elements: elements}
}

// IsScalar checks whether this value is a scalar.
func (p Value) IsScalar() bool {
	return p.scalar != nil
}

// Scalar returns the underlying expression of a scalar value.
func (p Value) Scalar() mir.Expr {
	return p.scalar
}

// Len returns the number of elements in a vector value.
func (p Value) Len() uint {
	return uint(len(p.elements))
}

// Element returns the ith element of a vector value.
func (p Value) Element(i uint) Value {
	return p.elements[i]
}

// Slice returns the elements of a vector value within a given (half-open)
// range.
func (p Value) Slice(start, end uint) Value {
	return VectorValue(p.elements[start:end]...)
}

// Dims returns the shape of this value, where a scalar has no dimensions.
// Ragged vectors report only their outermost dimension.
func (p Value) Dims() []uint {
	if p.IsScalar() {
		return nil
	}
	//
	var dims = []uint{p.Len()}
	//
	if p.Len() == 0 {
		return dims
	}
	//
	inner := p.elements[0].Dims()
	//
	for _, e := range p.elements[1:] {
		if !equalDims(inner, e.Dims()) {
			return dims
		}
	}
	//
	return append(dims, inner...)
}

// Flatten returns the scalar expressions of this value in row-major order.
func (p Value) Flatten() []mir.Expr {
	if p.IsScalar() {
		return []mir.Expr{p.scalar}
	}
	//
	var exprs []mir.Expr
	//
	for _, e := range p.elements {
		exprs = append(exprs, e.Flatten()...)
	}
	//
	return exprs
}

// Map applies a given function to every scalar within this value, producing a
// value of the same shape.
func (p Value) Map(fn func(mir.Expr) mir.Expr) Value {
	if p.IsScalar() {
		return ScalarValue(fn(p.scalar))
	}
	//
	var elements = make([]Value, len(p.elements))
	//
	for i, e := range p.elements {
		elements[i] = e.Map(fn)
	}
	//
	return VectorValue(elements...)
}

// Any checks whether any scalar within this value satisfies a given
// predicate.
func (p Value) Any(predicate func(mir.Expr) bool) bool {
	for _, e := range p.Flatten() {
		if predicate(e) {
			return true
		}
	}
	//
	return false
}

func equalDims(lhs, rhs []uint) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i := range lhs {
		if lhs[i] != rhs[i] {
			return false
		}
	}
	//
	return true
}
