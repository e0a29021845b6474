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
	"testing"

	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const declBuses = "buses {\n    multiset p,\n    logup q,\n}"

const declPeriodic = "periodic_columns {\n    k: [1, 0, 0, 0],\n}"

// ============================================================================
// Valid
// ============================================================================

func Test_Validate_01(t *testing.T) {
	checkValid(t, rootModule(declPeriodic, "enf a.first = stack[0];\nenf b.last = 1;", "enf a' = k * b;"))
}

func Test_Validate_02(t *testing.T) {
	checkValid(t, rootModule(declBuses, "enf a.first = 0;\nenf p.first = null;\nenf q.last = table;",
		"p.insert(a, b) when s;\nq.remove(c) with b;"))
}

func Test_Validate_03(t *testing.T) {
	// Library evaluators can access their own periodic columns
	lib := "mod lib\nperiodic_columns {\n    k: [1, 0],\n}\nev foo([x]) {\n    enf x = k;\n}"
	checkValid(t, rootModule("use lib::foo;", "enf a.first = 0;", "enf foo([a]);"), lib)
}

func Test_Validate_04(t *testing.T) {
	checkValid(t, rootModule("", "enf x.first = 0 for x in c;", "enf a = 0;"))
}

// ============================================================================
// Declarations
// ============================================================================

func Test_Validate_Decl_01(t *testing.T) {
	checkValidError(t, rootModule("const foo = 1;", "enf a.first = 0;", "enf a = 0;"),
		"constant names must be uppercase")
}

func Test_Validate_Decl_02(t *testing.T) {
	checkValidError(t, rootModule("periodic_columns {\n    k: [1, 0, 0],\n}", "enf a.first = 0;", "enf a = 0;"),
		"periodic column length must be a power of two >= 2")
}

func Test_Validate_Decl_03(t *testing.T) {
	checkValidError(t, rootModule("ev foo([x], [y]) {\n    enf x = y;\n}", "enf a.first = 0;", "enf a = 0;"),
		"evaluator may only bind main trace columns")
}

func Test_Validate_Decl_04(t *testing.T) {
	checkValidError(t, rootModule("ev foo([x, x]) {\n    enf x = 0;\n}", "enf a.first = 0;", "enf a = 0;"),
		"duplicate parameter x")
}

func Test_Validate_Decl_05(t *testing.T) {
	checkValidError(t, "def test\ntrace_columns {\n    main: [a],\n}\npublic_inputs {\n    x: [0],\n}\n"+
		"boundary_constraints {\n    enf a.first = 0;\n}\nintegrity_constraints {\n    enf a = 0;\n}",
		"public input size must be positive")
}

// ============================================================================
// Sections
// ============================================================================

func Test_Validate_Section_01(t *testing.T) {
	checkValidError(t, "def test\ntrace_columns {\n    main: [a],\n}\nboundary_constraints {\n    enf a.first = 0;\n}\n"+
		"integrity_constraints {\n    enf a = 0;\n}", "declaration of public inputs is required")
}

func Test_Validate_Section_02(t *testing.T) {
	checkValidError(t, "def test\ntrace_columns {\n    main: [a],\n}\npublic_inputs {\n}\n"+
		"boundary_constraints {\n    enf a.first = 0;\n}\nintegrity_constraints {\n    enf a = 0;\n}",
		"empty public_inputs section")
}

func Test_Validate_Section_03(t *testing.T) {
	checkValidError(t, rootModule("buses {\n}", "enf a.first = 0;", "enf a = 0;"), "empty buses section")
}

func Test_Validate_Section_04(t *testing.T) {
	checkValidError(t, "def test\ntrace_columns {\n    main: [a],\n}\npublic_inputs {\n    x: [1],\n}\n"+
		"boundary_constraints {\n    enf a.first = 0;\n}", "declaration of integrity_constraints is required")
}

func Test_Validate_Section_05(t *testing.T) {
	checkValidError(t, rootModule("", "", "enf a = 0;"), "empty boundary_constraints section")
}

// ============================================================================
// Accesses
// ============================================================================

func Test_Validate_Access_01(t *testing.T) {
	errs := validate(rootModule("", "enf a.first = 0;", "enf a = z;"))
	require.Len(t, errs, 1)
	assert.Equal(t, "unknown symbol z", errs[0].Message())
	// Integrity constraints begin on line 14
	line := errs[0].FirstEnclosingLine()
	assert.Equal(t, 14, line.Number())
}

func Test_Validate_Access_02(t *testing.T) {
	// Errors are accumulated
	errs := validate(rootModule("", "enf a.first = y;", "enf a = z;\nenf b = c[4];"))
	assert.Len(t, errs, 3)
}

func Test_Validate_Access_03(t *testing.T) {
	checkValidError(t, rootModule("", "enf a.first = 0;", "enf a = stack[0];"),
		"public input access only permitted in boundary constraints")
}

func Test_Validate_Access_04(t *testing.T) {
	checkValidError(t, rootModule("", "enf a.first = table[0];", "enf a = 0;"),
		"invalid access of public input table")
}

func Test_Validate_Access_05(t *testing.T) {
	checkValidError(t, rootModule(declPeriodic, "enf a.first = k;", "enf a = 0;"),
		"periodic column access only permitted in integrity constraints")
}

func Test_Validate_Access_06(t *testing.T) {
	checkValidError(t, rootModule(declPeriodic, "enf a.first = 0;", "enf a = k';"),
		"invalid next-row access of periodic column")
}

func Test_Validate_Access_07(t *testing.T) {
	checkValidError(t, rootModule("", "enf a.first = 0;", "enf a.first = 0;"),
		"boundary access only permitted in boundary constraints")
}

func Test_Validate_Access_08(t *testing.T) {
	checkValidError(t, rootModule("", "enf a = 0;", "enf a = 0;"), "invalid boundary constraint")
}

func Test_Validate_Access_09(t *testing.T) {
	checkValidError(t, rootModule("", "enf a.first = b;", "enf a = 0;"), "expected first or last row access")
}

func Test_Validate_Access_10(t *testing.T) {
	checkValidError(t, rootModule("", "enf a.first = 0;", "enf a = c[3];"), "index out of bounds")
}

func Test_Validate_Access_11(t *testing.T) {
	checkValidError(t, rootModule("", "enf a.first = 0;", "enf a = c[0][1];"), "too many indices")
}

func Test_Validate_Access_12(t *testing.T) {
	checkValidError(t, rootModule("", "enf a.first = 0;", "enf a = b^s;"), "expected constant exponent")
}

func Test_Validate_Access_13(t *testing.T) {
	checkValidError(t, rootModule(declBuses, "enf a.first = 0;", "enf a = p;"), "invalid bus access")
}

func Test_Validate_Access_14(t *testing.T) {
	checkValidError(t, rootModule("const A = [1, 2];", "enf a.first = 0;", "enf a = A';"),
		"invalid access of constant")
}

// ============================================================================
// Calls
// ============================================================================

const declFunction = "fn f(x: felt) -> felt {\n    return x * x;\n}"

const declEvaluator = "ev foo([x]) {\n    enf x = 0;\n}"

func Test_Validate_Call_01(t *testing.T) {
	checkValidError(t, rootModule("fn f(x: felt) -> felt {\n    return x + a;\n}", "enf a.first = 0;", "enf a = 0;"),
		"trace column access not allowed in function")
}

func Test_Validate_Call_02(t *testing.T) {
	checkValidError(t, rootModule(declFunction, "enf a.first = 0;", "enf a = f(a, b);"), "argument count mismatch")
}

func Test_Validate_Call_03(t *testing.T) {
	checkValidError(t, rootModule("", "enf a.first = 0;", "enf a = g(b);"), "unknown function g")
}

func Test_Validate_Call_04(t *testing.T) {
	checkValidError(t, rootModule(declEvaluator, "enf a.first = 0;", "enf a = foo(b);"),
		"expected function (found evaluator)")
}

func Test_Validate_Call_05(t *testing.T) {
	checkValidError(t, rootModule(declEvaluator, "enf a.first = 0;\nenf foo([a]);", "enf a = 0;"),
		"evaluator call only permitted in integrity constraints")
}

func Test_Validate_Call_06(t *testing.T) {
	checkValidError(t, rootModule(declFunction, "enf a.first = 0;", "enf f([a]);"),
		"expected evaluator (found function)")
}

func Test_Validate_Call_07(t *testing.T) {
	checkValidError(t, rootModule("", "enf a.first = 0;", "enf a = sum(c, b);"), "argument count mismatch")
}

func Test_Validate_Call_08(t *testing.T) {
	checkValidError(t, rootModule(declEvaluator, "enf a.first = 0;", "enf foo([a], [b]);"),
		"argument count mismatch")
}

// ============================================================================
// Buses
// ============================================================================

func Test_Validate_Bus_01(t *testing.T) {
	checkValidError(t, rootModule(declBuses, "enf a.first = 0;", "p.insert(a) with 2;"),
		"multiplicity not supported by multiset bus")
}

func Test_Validate_Bus_02(t *testing.T) {
	checkValidError(t, rootModule(declBuses, "enf a.first = 0;", "r.insert(a) when s;"), "unknown bus r")
}

func Test_Validate_Bus_03(t *testing.T) {
	checkValidError(t, rootModule(declBuses, "enf a.first = 0;\nenf p.first = null;\nenf p.first = null;",
		"enf a = 0;"), "bus boundary constraint already set")
}

func Test_Validate_Bus_04(t *testing.T) {
	checkValidError(t, rootModule(declBuses, "enf a.first = 0;\nenf p.first = stack;", "enf a = 0;"),
		"invalid constraint")
}

func Test_Validate_Bus_05(t *testing.T) {
	checkValidError(t, rootModule(declBuses, "enf a.first = null;", "enf a = 0;"), "invalid constraint")
}

func Test_Validate_Bus_06(t *testing.T) {
	checkValidError(t, rootModule(declBuses, "enf a.first = 0;", "enf a = null;"), "invalid constraint")
}

func Test_Validate_Bus_07(t *testing.T) {
	checkValidError(t, rootModule(declBuses, "enf a.first = 0;\np.insert(a) when 1;", "enf a = 0;"),
		"bus operation only permitted in integrity constraints")
}

func Test_Validate_Bus_08(t *testing.T) {
	// Bus boundaries must be bound on the first or last row
	checkValidError(t, rootModule(declBuses, "enf a.first = 0;\nenf p = null;", "enf a = 0;"),
		"invalid bus boundary")
}

// ============================================================================
// Framework
// ============================================================================

func validate(src string, libs ...string) []source.SyntaxError {
	library, errs := resolve(src, libs...)
	//
	if len(errs) > 0 {
		return errs
	}
	//
	return Validate(library)
}

func checkValid(t *testing.T, src string, libs ...string) {
	if errs := validate(src, libs...); len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
}

func checkValidError(t *testing.T, src string, msg string, libs ...string) {
	errs := validate(src, libs...)
	//
	require.Len(t, errs, 1, "expected exactly one error")
	assert.Equal(t, msg, errs[0].Message())
}
