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
	"testing"

	"github.com/consensys/go-airscript/pkg/util/field"
	"github.com/stretchr/testify/assert"
)

func Test_Expr_Lisp_01(t *testing.T) {
	schema := testSchema()
	// a' - (a + b)
	expr := &Sub{&TraceAccess{0, 0, 1}, &Add{&TraceAccess{0, 0, 0}, &TraceAccess{0, 1, 0}}}
	assert.Equal(t, "(- a' (+ a b))", expr.Lisp(schema).String(false))
}

func Test_Expr_Lisp_02(t *testing.T) {
	schema := testSchema()
	expr := &Mul{&Exp{&PeriodicAccess{0}, 3}, &PublicInputAccess{0, 2}}
	assert.Equal(t, "(* (^ k0 3) stack[2])", expr.Lisp(schema).String(false))
}

func Test_Expr_Lisp_03(t *testing.T) {
	schema := testSchema()
	expr := &Add{&RandomValue{0}, &Mul{&RandomValue{1}, &TraceAccess{1, 0, 0}}}
	assert.Equal(t, "(+ $alpha[0] (* $alpha[1] p))", expr.Lisp(schema).String(false))
}

func Test_Expr_Shift_01(t *testing.T) {
	schema := testSchema()
	expr := (&Add{&TraceAccess{0, 0, 0}, &Mul{NewConstant(2), &TraceAccess{0, 2, 1}}}).ApplyShift(1)
	//
	assert.Equal(t, "(+ a' (* 2 c[0]''))", expr.Lisp(schema).String(false))
	assert.Equal(t, uint(2), expr.MaxShift())
}

func Test_Expr_Shift_02(t *testing.T) {
	assert.Panics(t, func() { (&PeriodicAccess{0}).ApplyShift(1) })
}

func Test_Expr_MaxSegment_01(t *testing.T) {
	assert.Equal(t, uint(0), MaxSegment(&Add{&TraceAccess{0, 0, 0}, NewConstant(1)}))
	assert.Equal(t, uint(1), MaxSegment(&Sub{&TraceAccess{0, 0, 0}, &TraceAccess{1, 0, 1}}))
}

func Test_Expr_Contains_01(t *testing.T) {
	expr := &Add{&TraceAccess{0, 0, 0}, &Exp{&PeriodicAccess{0}, 2}}
	//
	assert.True(t, Contains(expr, IsPeriodic))
	assert.False(t, Contains(expr, IsPublicInput))
}

func Test_Expr_Sum_01(t *testing.T) {
	schema := testSchema()
	//
	assert.Equal(t, "0", Sum().Lisp(schema).String(false))
	assert.Equal(t, "a", Sum(&TraceAccess{0, 0, 0}).Lisp(schema).String(false))
	assert.Equal(t, "(+ (+ a b) 1)",
		Sum(&TraceAccess{0, 0, 0}, &TraceAccess{0, 1, 0}, NewConstant(1)).Lisp(schema).String(false))
}

func Test_Expr_Product_01(t *testing.T) {
	schema := testSchema()
	//
	assert.Equal(t, "1", Product().Lisp(schema).String(false))
	assert.Equal(t, "(* (* a b) b)",
		Product(&TraceAccess{0, 0, 0}, &TraceAccess{0, 1, 0}, &TraceAccess{0, 1, 0}).Lisp(schema).String(false))
}

func Test_Constraint_Lisp_01(t *testing.T) {
	schema := testSchema()
	c := NewConstraint(&TraceAccess{0, 0, 0}, NewConstant(0), FIRST_ROW)
	//
	assert.Equal(t, "(first (- a 0))", c.Lisp(schema).String(false))
}

func Test_Constant_01(t *testing.T) {
	// Constants are reduced modulo the field.
	c := &Constant{field.Uint64(field.MODULUS + 1)}
	//
	assert.True(t, IsConstant(c, 1))
	assert.False(t, IsConstant(c, 0))
}

func testSchema() *Schema {
	return &Schema{
		TraceSegments: []TraceSegment{
			{"main", []string{"a", "b", "c[0]", "c[1]"}},
			{"aux", []string{"p"}},
		},
		PublicInputs:    []PublicInput{{"stack", 4, false}},
		PeriodicColumns: []PeriodicColumn{{"k0", []field.Element{field.One(), field.Zero()}}},
		Buses:           []Bus{{Name: "p", Kind: MULTISET_BUS}},
	}
}

func Test_ConstantOf_01(t *testing.T) {
	expr := &Sub{&Exp{NewConstant(2), 3}, &Mul{NewConstant(2), NewConstant(3)}}
	val, ok := ConstantOf(expr)
	//
	assert.True(t, ok)
	assert.Equal(t, uint64(2), val.Uint64())
}

func Test_ConstantOf_02(t *testing.T) {
	_, ok := ConstantOf(&Add{NewConstant(1), &TraceAccess{0, 0, 0}})
	assert.False(t, ok)
}

func Test_ConstantOf_03(t *testing.T) {
	val, ok := ConstantOf(&Sub{NewConstant(0), NewConstant(1)})
	//
	assert.True(t, ok)
	assert.Equal(t, field.MODULUS-1, val.Uint64())
}
