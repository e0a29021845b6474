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
package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/consensys/go-airscript/pkg/airscript/ast"
	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Declarations
// ============================================================================

func Test_Parse_Header_01(t *testing.T) {
	module := checkParse(t, "def test\ntrace_columns { main: [a], }")
	assert.Equal(t, "test", module.Name.Name)
	assert.True(t, module.IsRoot())
}

func Test_Parse_Header_02(t *testing.T) {
	module := checkParse(t, "mod lib\nev foo([a]) { enf a = 0; }")
	assert.Equal(t, ast.LIBRARY_MODULE, module.Kind)
	require.Len(t, module.Evaluators, 1)
	assert.Equal(t, "foo", module.Evaluators[0].Name.Name)
}

func Test_Parse_TraceColumns_01(t *testing.T) {
	module := checkParse(t, "def test\ntrace_columns {\n    main: [clk, s[3], a,],\n}")
	segment := module.MainSegment()
	require.NotNil(t, segment)
	require.Len(t, segment.Bindings, 3)
	assert.Equal(t, uint(5), segment.Width())
	assert.Equal(t, uint(1), segment.Bindings[1].Offset)
	assert.Equal(t, uint(3), segment.Bindings[1].Size)
	assert.True(t, segment.Bindings[1].Vector)
	assert.Equal(t, uint(4), segment.Bindings[2].Offset)
	assert.False(t, segment.Bindings[2].Vector)
}

func Test_Parse_PublicInputs_01(t *testing.T) {
	module := checkParse(t, "def test\ntrace_columns { main: [a], }\npublic_inputs {\n x: [4],\n t: [[2]],\n}")
	require.Len(t, module.PublicInputs, 2)
	assert.Equal(t, uint(4), module.PublicInputs[0].Size)
	assert.False(t, module.PublicInputs[0].Table)
	assert.Equal(t, uint(2), module.PublicInputs[1].Size)
	assert.True(t, module.PublicInputs[1].Table)
}

func Test_Parse_Constants_01(t *testing.T) {
	module := checkParse(t, "mod lib\nconst A = 1;\nconst B = [1, 2, 3];\nconst C = [[1, 2], [3, 4], [5, 6]];")
	require.Len(t, module.Constants, 3)
	assert.Empty(t, module.Constants[0].Dims)
	assert.Equal(t, []uint64{1}, module.Constants[0].Values)
	assert.Equal(t, []uint{3}, module.Constants[1].Dims)
	assert.Equal(t, []uint{3, 2}, module.Constants[2].Dims)
	assert.Equal(t, []uint64{1, 2, 3, 4, 5, 6}, module.Constants[2].Values)
}

func Test_Parse_Constants_02(t *testing.T) {
	module := checkParse(t, "mod lib\nconst A = 0x10;\nconst B = 1_000;")
	assert.Equal(t, []uint64{16}, module.Constants[0].Values)
	assert.Equal(t, []uint64{1000}, module.Constants[1].Values)
}

func Test_Parse_Buses_01(t *testing.T) {
	module := checkParse(t, "def test\ntrace_columns { main: [a], }\nbuses {\n multiset p,\n logup q,\n}")
	require.Len(t, module.Buses, 2)
	assert.Equal(t, ast.MULTISET_BUS, module.Buses[0].Kind)
	assert.Equal(t, ast.LOGUP_BUS, module.Buses[1].Kind)
}

func Test_Parse_Periodic_01(t *testing.T) {
	module := checkParse(t, "mod lib\nperiodic_columns {\n k0: [1, 0, 0, 0],\n}")
	require.Len(t, module.PeriodicColumns, 1)
	assert.Equal(t, []uint64{1, 0, 0, 0}, module.PeriodicColumns[0].Values)
}

func Test_Parse_Imports_01(t *testing.T) {
	module := checkParse(t, "mod lib\nuse other::*;\nuse more::foo;")
	require.Len(t, module.Imports, 2)
	assert.True(t, module.Imports[0].IsGlob())
	assert.Equal(t, "use more::foo", module.Imports[1].String())
}

func Test_Parse_Function_01(t *testing.T) {
	module := checkParse(t, "mod lib\nfn f(a: felt, b: felt[2], m: felt[2][3]) -> felt[2] {\n"+
		"    let x = a * b[0];\n    return [x, m[1][2]];\n}")
	require.Len(t, module.Functions, 1)
	fn := module.Functions[0]
	require.Len(t, fn.Params, 3)
	assert.Equal(t, "felt[2][3]", fn.Params[2].Type.String())
	assert.Equal(t, "felt[2]", fn.Return.String())
	require.Len(t, fn.Lets, 1)
	assert.Equal(t, "[x m[1][2]]", fn.Result.Lisp().String(false))
}

// ============================================================================
// Expressions
// ============================================================================

func Test_Parse_Expr_01(t *testing.T) {
	checkStatement(t, "enf a + b * c = d;", "(enf (= (+ a (* b c)) d))")
}

func Test_Parse_Expr_02(t *testing.T) {
	checkStatement(t, "enf a - b - c = 0;", "(enf (= (- (- a b) c) 0))")
}

func Test_Parse_Expr_03(t *testing.T) {
	checkStatement(t, "enf a | b = 1;", "(enf (= (- (+ a b) (* a b)) 1))")
}

func Test_Parse_Expr_04(t *testing.T) {
	checkStatement(t, "enf a & b | c = 0;", "(enf (= (- (+ (* a b) c) (* (* a b) c)) 0))")
}

func Test_Parse_Expr_05(t *testing.T) {
	checkStatement(t, "enf !a = b^2^3;", "(enf (= (- 1 a) (^ b (^ 2 3))))")
}

func Test_Parse_Expr_06(t *testing.T) {
	checkStatement(t, "enf -a^2 = (a + b) * c;", "(enf (= (^ (- 0 a) 2) (* (+ a b) c)))")
}

func Test_Parse_Expr_07(t *testing.T) {
	checkStatement(t, "enf a' = a[1] + m[1][2] + c[1..3];", "(enf (= a' (+ (+ a[1] m[1][2]) c[1..3])))")
}

func Test_Parse_Expr_08(t *testing.T) {
	checkStatement(t, "enf a = sum([x * y for (x, y) in (c, 0..3)]);",
		"(enf (= a (sum (for [(x c) (y (.. 0 3))] (* x y)))))")
}

func Test_Parse_Expr_09(t *testing.T) {
	checkStatement(t, "enf a = [1, b, [2, 3]];", "(enf (= a [1 b [2 3]]))")
}

func Test_Parse_Expr_10(t *testing.T) {
	// keywords are only recognised as whole words
	checkStatement(t, "enf enforce = format;", "(enf (= enforce format))")
}

// ============================================================================
// Statements and desugaring
// ============================================================================

func Test_Parse_Stmt_01(t *testing.T) {
	checkStatement(t, "let x = a * b;", "(let x (* a b))")
}

func Test_Parse_Stmt_02(t *testing.T) {
	checkStatement(t, "enf foo([a, b]);", "(enf (foo [a b]))")
}

func Test_Parse_Stmt_03(t *testing.T) {
	checkStatement(t, "enf a = 0 when s;", "(enf (= a 0) (for [($sel0 (.. 0 1))]) (when s))")
}

func Test_Parse_Stmt_04(t *testing.T) {
	checkStatement(t, "enf x = 0 for x in c;", "(enf (= x 0) (for [(x c)]))")
}

func Test_Parse_Stmt_05(t *testing.T) {
	checkStatement(t, "enf x = y for (x, y) in (c, d) when s;", "(enf (= x y) (for [(x c) (y d)]) (when s))")
}

func Test_Parse_Stmt_06(t *testing.T) {
	checkStatements(t, "enf match {\n case s: a' = a,\n case !s: foo([a]),\n};",
		"(enf (= a' a) (for [($sel0 (.. 0 1))]) (when s))",
		"(enf (foo [a]) (for [($sel1 (.. 0 1))]) (when (- 1 s)))")
}

func Test_Parse_Stmt_07(t *testing.T) {
	checkStatements(t, "p.insert(a, b) when s;\nq.remove(a) with 2;",
		"(bus (p.insert a b) (for [($sel0 (.. 0 1))]) (when s))",
		"(bus (q.remove a) (for [($sel1 (.. 0 1))]) (with 2))")
}

func Test_Parse_Stmt_08(t *testing.T) {
	// Synthetic names are unique across statements and sections
	src := "def test\ntrace_columns { main: [a, s], }\nboundary_constraints { enf a.first = 0 when s; }\n" +
		"integrity_constraints { enf a = 0 when s; }"
	module := checkParse(t, src)
	//
	first := module.BoundaryConstraints.Statements[0].(*ast.EnforceAll)
	second := module.IntegrityConstraints.Statements[0].(*ast.EnforceAll)
	assert.NotEqual(t, first.Context[0].Name.Name, second.Context[0].Name.Name)
	assert.True(t, first.Context[0].Name.IsSynthetic())
}

func Test_Parse_Stmt_09(t *testing.T) {
	checkStatement(t, "enf p.first = null;", "(enf (= p.first null))")
}

// ============================================================================
// Errors
// ============================================================================

func Test_Parse_Error_01(t *testing.T) {
	checkError(t, "def test\npublic_inputs { x: [1], }", 1, "declaration of main trace columns is required")
}

func Test_Parse_Error_02(t *testing.T) {
	checkError(t, "def test\ntrace_columns { main: [a], }\n$", 3, "unknown text encountered")
}

func Test_Parse_Error_03(t *testing.T) {
	checkError(t, "mod lib\nev foo([]) { enf 1 = 1; }", 2, "empty trace segment")
}

func Test_Parse_Error_04(t *testing.T) {
	checkError(t, "mod lib\nfn f(a: felt) -> felt {\n  let x = a;\n}", 2,
		"function body must be let bindings followed by a single return")
}

func Test_Parse_Error_05(t *testing.T) {
	checkError(t, "mod lib\nfn f(a: felt) -> felt {\n  return a;\n  return a;\n}", 2,
		"function body must be let bindings followed by a single return")
}

func Test_Parse_Error_06(t *testing.T) {
	checkError(t, integrity("enf x = y for (x, y) in (c);"), 6, "comprehension arity mismatch")
}

func Test_Parse_Error_07(t *testing.T) {
	checkError(t, integrity("enf x = y for (x, y) in (0..3, 0..4);"), 6,
		"comprehension arity mismatch (iterables differ in length)")
}

func Test_Parse_Error_08(t *testing.T) {
	checkError(t, integrity("p.insert(a);"), 6, "bus operation requires a selector or multiplicity")
}

func Test_Parse_Error_09(t *testing.T) {
	checkError(t, "mod lib\ntrace_columns { main: [a], }", 2, "section not permitted in library module")
}

func Test_Parse_Error_10(t *testing.T) {
	checkError(t, "def test\ntrace_columns { main: [a, b[0]], }", 2, "invalid zero-width column binding")
}

func Test_Parse_Error_11(t *testing.T) {
	checkError(t, integrity("enf a;"), 6, "expected equality or evaluator call")
}

func Test_Parse_Error_12(t *testing.T) {
	checkError(t, "mod lib\nconst A = 18446744073709551616;", 2, "malformed numeric literal")
}

func Test_Parse_Error_13(t *testing.T) {
	checkError(t, "mod lib\nconst M = [[1, 2], [3]];", 2, "matrix rows must have equal length")
}

func Test_Parse_Error_14(t *testing.T) {
	// Section keywords cannot name a module
	checkError(t, "def buses\ntrace_columns { main: [a], }", 1, "unexpected token")
}

// ============================================================================
// Framework
// ============================================================================

// Wrap a set of integrity statements in a minimal root module.  Statements
// begin on line 6.
func integrity(stmts string) string {
	return fmt.Sprintf("def test\ntrace_columns {\n    main: [a, b, c[3], d[3], s],\n}\nintegrity_constraints {\n%s\n}",
		stmts)
}

func checkParse(t *testing.T, src string) *ast.Module {
	srcfile := source.NewSourceFile("test.air", []byte(src))
	module, _, errs := Parse(srcfile, ast.NewNameContext())
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	return module
}

func checkStatement(t *testing.T, stmt string, expected string) {
	checkStatements(t, stmt, expected)
}

func checkStatements(t *testing.T, stmts string, expected ...string) {
	module := checkParse(t, integrity(stmts))
	actual := make([]string, len(module.IntegrityConstraints.Statements))
	//
	for i, s := range module.IntegrityConstraints.Statements {
		actual[i] = s.Lisp().String(false)
	}
	//
	assert.Equal(t, expected, actual)
}

func checkError(t *testing.T, src string, line int, msg string) {
	srcfile := source.NewSourceFile("test.air", []byte(src))
	_, _, errs := Parse(srcfile, ast.NewNameContext())
	//
	require.Len(t, errs, 1, "expected exactly one error")
	assert.Equal(t, msg, errs[0].Message())
	//
	enclosing := errs[0].FirstEnclosingLine()
	assert.Equal(t, line, enclosing.Number(), "error reported on wrong line: %s",
		strings.TrimSpace(enclosing.String()))
}
