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
package sexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSExp_Term(t *testing.T) {
	term := NewTerm("+", NewSymbol("a"), NewTerm("*", NewSymbol("b"), NewSymbolf("%d", 2)))
	assert.Equal(t, "(+ a (* b 2))", term.String(false))
}

func TestSExp_Array(t *testing.T) {
	arr := NewArray([]SExp{NewSymbol("x"), NewSymbol("y z")})
	assert.Equal(t, "[x y z]", arr.String(false))
	assert.Equal(t, "[x \"y z\"]", arr.String(true))
}

func TestSExp_Empty(t *testing.T) {
	assert.Equal(t, "()", NewList(nil).String(true))
}
