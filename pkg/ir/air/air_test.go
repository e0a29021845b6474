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
package air

import (
	"testing"

	"github.com/consensys/go-airscript/pkg/ir/mir"
	"github.com/consensys/go-airscript/pkg/util/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Columns of the main segment used throughout.
var (
	s = &mir.TraceAccess{Segment: 0, Column: 0, Shift: 0}
	a = &mir.TraceAccess{Segment: 0, Column: 1, Shift: 0}
	b = &mir.TraceAccess{Segment: 0, Column: 2, Shift: 0}
	c = &mir.TraceAccess{Segment: 0, Column: 3, Shift: 0}
)

func Test_Graph_Interning_01(t *testing.T) {
	// (a+b)*(a+b) - c, where both sums are distinct MIR expressions.
	expr := &mir.Sub{Lhs: &mir.Mul{Lhs: &mir.Add{Lhs: a, Rhs: b}, Rhs: &mir.Add{Lhs: a, Rhs: b}}, Rhs: c}
	air := buildIntegrity(t, true, expr)
	graph := air.Graph()
	root := graph.Node(air.IntegrityConstraints()[0].Root)
	//
	require.Equal(t, uint(6), graph.Len())
	require.Equal(t, SUB, root.Op)
	//
	mul := graph.Node(root.Lhs)
	assert.Equal(t, MUL, mul.Op)
	assert.Equal(t, mul.Lhs, mul.Rhs)
	assert.Equal(t, ADD, graph.Node(mul.Lhs).Op)
	assert.Equal(t, uint(2), graph.Degree(air.IntegrityConstraints()[0].Root))
}

func Test_Graph_Interning_02(t *testing.T) {
	graph := NewGraph()
	x := graph.Insert(Node{Op: TRACE, Column: 1})
	y := graph.Insert(Node{Op: TRACE, Column: 1})
	z := graph.Insert(Node{Op: TRACE, Column: 1, Shift: 1})
	//
	assert.Equal(t, x, y)
	assert.NotEqual(t, x, z)
	assert.Equal(t, uint(2), graph.Len())
}

func Test_Graph_Interning_03(t *testing.T) {
	graph := NewGraph()
	//
	assert.Panics(t, func() { graph.Insert(Node{Op: ADD, Lhs: 0, Rhs: 1}) })
}

func Test_Graph_Degree_01(t *testing.T) {
	graph := NewGraph()
	builder := NewBuilder(graph, false)
	x := builder.Trace(0, 0, 0)
	y := builder.Periodic(0)
	k := builder.Constant(field.Uint64(3))
	//
	assert.Equal(t, uint(0), graph.Degree(k))
	assert.Equal(t, uint(1), graph.Degree(x))
	assert.Equal(t, uint(1), graph.Degree(builder.PublicInput(0, 1)))
	assert.Equal(t, uint(1), graph.Degree(builder.Random(0)))
	assert.Equal(t, uint(1), graph.Degree(builder.Add(x, k)))
	assert.Equal(t, uint(2), graph.Degree(builder.Mul(x, y)))
	assert.Equal(t, uint(3), graph.Degree(builder.Sub(builder.Mul(x, y), builder.Mul(x, builder.Mul(x, y)))))
	assert.Equal(t, uint(10), graph.Degree(builder.Exp(builder.Mul(x, y), 5)))
	assert.Equal(t, uint(0), graph.Degree(builder.Exp(k, 5)))
}

func Test_Graph_Degree_02(t *testing.T) {
	// Every node obeys the degree laws, both before and after elimination.
	expr := &mir.Sub{
		Lhs: &mir.Mul{Lhs: &mir.Exp{Base: &mir.Add{Lhs: a, Rhs: s}, Power: 7}, Rhs: b},
		Rhs: &mir.Exp{Base: &mir.Mul{Lhs: c, Rhs: c}, Power: 3},
	}
	air := buildIntegrity(t, false, expr)
	graph := air.Graph()
	//
	for i, node := range graph.Nodes() {
		index := NodeIndex(i)
		//
		switch node.Op {
		case ADD, SUB:
			assert.Equal(t, max(graph.Degree(node.Lhs), graph.Degree(node.Rhs)), graph.Degree(index))
		case MUL:
			assert.Equal(t, graph.Degree(node.Lhs)+graph.Degree(node.Rhs), graph.Degree(index))
		case EXP:
			t.Fatalf("unexpected exponent at node %d", i)
		}
	}
	// max(7+1, 2*3)
	assert.Equal(t, uint(8), graph.Degree(air.IntegrityConstraints()[0].Root))
}

func Test_Graph_Exp_01(t *testing.T) {
	// s^2 = s
	air := buildIntegrity(t, true, &mir.Sub{Lhs: &mir.Exp{Base: s, Power: 2}, Rhs: s})
	graph := air.Graph()
	root := air.IntegrityConstraints()[0].Root
	//
	require.Equal(t, uint(3), graph.Len())
	assert.Equal(t, uint(2), graph.Degree(root))
	assert.Equal(t, "(- (* s s) s)", graph.Lisp(root, air).String(false))
	//
	node := graph.Node(root)
	mul := graph.Node(node.Lhs)
	assert.Equal(t, mul.Lhs, node.Rhs)
	assert.Equal(t, mul.Rhs, node.Rhs)
}

func Test_Graph_Exp_02(t *testing.T) {
	// b^6 and b^3 share the chain b^2, b^3.
	air := buildIntegrity(t, true,
		&mir.Sub{Lhs: &mir.Exp{Base: b, Power: 6}, Rhs: a},
		&mir.Sub{Lhs: &mir.Exp{Base: b, Power: 3}, Rhs: a})
	graph := air.Graph()
	c0 := graph.Node(air.IntegrityConstraints()[0].Root)
	c1 := graph.Node(air.IntegrityConstraints()[1].Root)
	//
	require.Equal(t, uint(7), graph.Len())
	assert.Equal(t, uint(6), graph.Degree(c0.Lhs))
	assert.Equal(t, uint(3), graph.Degree(c1.Lhs))
	// b^6 = b^3 * b^3
	b6 := graph.Node(c0.Lhs)
	assert.Equal(t, c1.Lhs, b6.Lhs)
	assert.Equal(t, c1.Lhs, b6.Rhs)
	assert.Equal(t, "(- (* (* (* b b) b) (* (* b b) b)) a)", graph.Lisp(air.IntegrityConstraints()[0].Root, air).String(false))
}

func Test_Graph_Exp_03(t *testing.T) {
	// Exponents are eliminated even when folding is disabled.
	air := buildIntegrity(t, false, &mir.Sub{Lhs: &mir.Exp{Base: a, Power: 1}, Rhs: &mir.Exp{Base: b, Power: 0}})
	graph := air.Graph()
	//
	for _, node := range graph.Nodes() {
		assert.NotEqual(t, EXP, node.Op)
	}
	//
	assert.Equal(t, "(- a 1)", graph.Lisp(air.IntegrityConstraints()[0].Root, air).String(false))
}

func Test_Graph_Exp_04(t *testing.T) {
	for n := uint64(0); n < 20; n++ {
		air := buildIntegrity(t, true, &mir.Sub{Lhs: &mir.Exp{Base: &mir.Mul{Lhs: a, Rhs: b}, Power: n}, Rhs: c})
		lhs := air.Graph().Node(air.IntegrityConstraints()[0].Root).Lhs
		//
		assert.Equal(t, uint(2*n), air.Graph().Degree(lhs))
	}
}

func Test_Graph_Fold_01(t *testing.T) {
	// 2 * 3 + a
	expr := &mir.Add{Lhs: &mir.Mul{Lhs: mir.NewConstant(2), Rhs: mir.NewConstant(3)}, Rhs: a}
	//
	folded := buildIntegrity(t, true, expr)
	assert.Equal(t, uint(3), folded.Graph().Len())
	assert.Equal(t, "(+ 6 a)", folded.Graph().Lisp(folded.IntegrityConstraints()[0].Root, folded).String(false))
	//
	unfolded := buildIntegrity(t, false, expr)
	assert.Equal(t, uint(5), unfolded.Graph().Len())
	assert.Equal(t, "(+ (* 2 3) a)", unfolded.Graph().Lisp(unfolded.IntegrityConstraints()[0].Root, unfolded).String(false))
}

func Test_Graph_Fold_02(t *testing.T) {
	checkFold(t, "a", &mir.Add{Lhs: a, Rhs: mir.NewConstant(0)})
	checkFold(t, "a", &mir.Add{Lhs: mir.NewConstant(0), Rhs: a})
	checkFold(t, "a", &mir.Sub{Lhs: a, Rhs: mir.NewConstant(0)})
	checkFold(t, "(- 0 a)", &mir.Sub{Lhs: mir.NewConstant(0), Rhs: a})
	checkFold(t, "a", &mir.Mul{Lhs: a, Rhs: mir.NewConstant(1)})
	checkFold(t, "a", &mir.Mul{Lhs: mir.NewConstant(1), Rhs: a})
	checkFold(t, "0", &mir.Mul{Lhs: a, Rhs: mir.NewConstant(0)})
	checkFold(t, "0", &mir.Mul{Lhs: mir.NewConstant(0), Rhs: a})
	checkFold(t, "1", &mir.Exp{Base: a, Power: 0})
	checkFold(t, "a", &mir.Exp{Base: a, Power: 1})
	checkFold(t, "8", &mir.Exp{Base: mir.NewConstant(2), Power: 3})
}

func Test_Graph_Fold_03(t *testing.T) {
	// Folding happens in the Goldilocks field.
	checkFold(t, "18446744069414584320", &mir.Sub{Lhs: mir.NewConstant(0), Rhs: mir.NewConstant(1)})
	checkFold(t, "0", &mir.Add{Lhs: mir.NewConstant(field.MODULUS - 1), Rhs: mir.NewConstant(1)})
}

func Test_Air_Domain_01(t *testing.T) {
	schema := testSchema()
	schema.Boundary = []mir.Constraint{
		mir.NewConstraint(a, mir.NewConstant(1), mir.FIRST_ROW),
		mir.NewConstraint(b, &mir.PublicInputAccess{Input: 0, Index: 1}, mir.LAST_ROW),
		mir.NewConstraint(&mir.TraceAccess{Segment: 1, Column: 0}, mir.NewConstant(1), mir.FIRST_ROW),
	}
	schema.Integrity = []mir.Constraint{
		mir.NewConstraint(a, b, mir.NO_BOUNDARY),
		mir.NewConstraint(a.ApplyShift(1), a, mir.NO_BOUNDARY),
		mir.NewConstraint(a.ApplyShift(2), &mir.TraceAccess{Segment: 1, Column: 0, Shift: 1}, mir.NO_BOUNDARY),
	}
	air := Build(schema, true)
	boundary := air.BoundaryConstraints()
	integrity := air.IntegrityConstraints()
	//
	require.Len(t, boundary, 3)
	require.Len(t, integrity, 3)
	assert.Equal(t, FirstRow(), boundary[0].Domain)
	assert.Equal(t, LastRow(), boundary[1].Domain)
	assert.Equal(t, uint(0), boundary[1].Segment)
	assert.Equal(t, uint(1), boundary[2].Segment)
	assert.Equal(t, EveryRow(), integrity[0].Domain)
	assert.Equal(t, Domain{EVERY_FRAME_DOMAIN, 2}, integrity[1].Domain)
	assert.Equal(t, Domain{EVERY_FRAME_DOMAIN, 3}, integrity[2].Domain)
	assert.Equal(t, uint(1), integrity[2].Segment)
	//
	assert.Equal(t, "((first (- a 1)) (last (- b stack[1])) (first (- p 1)) (every (- a b)) (frame:2 (- a' a)) (frame:3 (- a'' p')))",
		air.Lisp().String(false))
}

func Test_Air_Determinism_01(t *testing.T) {
	build := func() *Air {
		schema := testSchema()
		schema.Integrity = []mir.Constraint{
			mir.NewConstraint(&mir.Exp{Base: &mir.Add{Lhs: a, Rhs: b}, Power: 5}, c, mir.NO_BOUNDARY),
			mir.NewConstraint(&mir.Mul{Lhs: &mir.PeriodicAccess{Column: 0}, Rhs: s}, &mir.RandomValue{Index: 1}, mir.NO_BOUNDARY),
			mir.NewConstraint(&mir.Exp{Base: &mir.Add{Lhs: a, Rhs: b}, Power: 3}, s, mir.NO_BOUNDARY),
		}
		//
		return Build(schema, true)
	}
	//
	first, second := build(), build()
	//
	assert.Equal(t, first.Graph().Nodes(), second.Graph().Nodes())
	assert.Equal(t, first.IntegrityConstraints(), second.IntegrityConstraints())
	//
	for _, c := range first.IntegrityConstraints() {
		assert.Equal(t, first.Graph().Degree(c.Root), second.Graph().Degree(c.Root))
	}
}

func Test_Air_Accessors_01(t *testing.T) {
	schema := testSchema()
	schema.NumRandomValues = 3
	air := Build(schema, true)
	//
	assert.Equal(t, []uint{4, 1}, air.TraceSegmentWidths())
	assert.Equal(t, uint(3), air.NumRandomValues())
	assert.Equal(t, schema.PublicInputs, air.PublicInputs())
	assert.Equal(t, schema.PeriodicColumns, air.PeriodicColumns())
	assert.Equal(t, schema.Buses, air.Buses())
	assert.Equal(t, "k0", air.PeriodicColumnName(0))
	assert.Equal(t, uint(0), air.Graph().Len())
}

// ===================================================================
// Test Framework
// ===================================================================

func testSchema() *mir.Schema {
	return &mir.Schema{
		TraceSegments: []mir.TraceSegment{
			{Name: "main", Columns: []string{"s", "a", "b", "c"}},
			{Name: "aux", Columns: []string{"p"}},
		},
		PublicInputs:    []mir.PublicInput{{Name: "stack", Size: 4}},
		PeriodicColumns: []mir.PeriodicColumn{{Name: "k0", Values: []field.Element{field.One(), field.Zero()}}},
		Buses:           []mir.Bus{{Name: "p", Kind: mir.MULTISET_BUS}},
	}
}

func buildIntegrity(t *testing.T, optimise bool, exprs ...mir.Expr) *Air {
	t.Helper()
	//
	schema := testSchema()
	//
	for _, e := range exprs {
		schema.Integrity = append(schema.Integrity, mir.Constraint{Expr: e, Boundary: mir.NO_BOUNDARY})
	}
	//
	return Build(schema, optimise)
}

func checkFold(t *testing.T, expected string, expr mir.Expr) {
	t.Helper()
	//
	air := buildIntegrity(t, true, expr)
	//
	assert.Equal(t, expected, air.Graph().Lisp(air.IntegrityConstraints()[0].Root, air).String(false))
}
