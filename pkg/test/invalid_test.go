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
package test

import (
	"testing"

	"github.com/consensys/go-airscript/pkg/test/util"
)

// ===================================================================
// Parsing & Resolution
// ===================================================================

func Test_Invalid_Unknown_Module(t *testing.T) {
	util.CheckInvalid(t, "unknown_module")
}

func Test_Invalid_Unknown_Import(t *testing.T) {
	util.CheckInvalid(t, "unknown_import")
}

func Test_Invalid_Duplicate_Constant(t *testing.T) {
	util.CheckInvalid(t, "duplicate_constant")
}

// ===================================================================
// Validation
// ===================================================================

func Test_Invalid_Constant_Case(t *testing.T) {
	util.CheckInvalid(t, "constant_case")
}

func Test_Invalid_Unknown_Symbol(t *testing.T) {
	util.CheckInvalid(t, "unknown_symbol")
}

func Test_Invalid_Unknown_Symbols(t *testing.T) {
	util.CheckInvalid(t, "unknown_symbols")
}

func Test_Invalid_Periodic_Next(t *testing.T) {
	util.CheckInvalid(t, "periodic_next")
}

func Test_Invalid_Public_Input_Integrity(t *testing.T) {
	util.CheckInvalid(t, "public_input_integrity")
}

func Test_Invalid_Multiset_Multiplicity(t *testing.T) {
	util.CheckInvalid(t, "multiset_multiplicity")
}

func Test_Invalid_Bus_In_Boundary(t *testing.T) {
	util.CheckInvalid(t, "bus_in_boundary")
}

// ===================================================================
// Lowering
// ===================================================================

func Test_Invalid_Comprehension_Arity(t *testing.T) {
	util.CheckInvalid(t, "comprehension_arity")
}

func Test_Invalid_Cyclic_Evaluator(t *testing.T) {
	util.CheckInvalid(t, "cyclic_evaluator")
}

func Test_Invalid_Cyclic_Function(t *testing.T) {
	util.CheckInvalid(t, "cyclic_function")
}

func Test_Invalid_Evaluator_Width(t *testing.T) {
	util.CheckInvalid(t, "evaluator_width")
}

func Test_Invalid_Overlapping_Boundary(t *testing.T) {
	util.CheckInvalid(t, "overlapping_boundary")
}

func Test_Invalid_Vector_Mismatch(t *testing.T) {
	util.CheckInvalid(t, "vector_mismatch")
}
