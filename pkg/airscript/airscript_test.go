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
package airscript

import (
	"errors"
	"testing"

	"github.com/consensys/go-airscript/pkg/airscript/compiler"
	"github.com/consensys/go-airscript/pkg/ir/air"
	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validModule = `def test
trace_columns {
    main: [s, a, b, c],
}
public_inputs {
    stack: [2],
}
boundary_constraints {
    enf a.first = stack[0];
}
integrity_constraints {
    enf s^2 = s;
}`

func Test_Compile_01(t *testing.T) {
	var sink source.Collector
	//
	result, err := Compile(srcFile(validModule), compiler.MapLoader{}, &sink, DefaultCompilationConfig())
	require.NoError(t, err)
	assert.Empty(t, sink.Diagnostics())
	//
	graph := result.Graph()
	root := result.IntegrityConstraints()[0].Root
	// Sub(Mul(s, s), s) with s shared
	assert.Equal(t, air.SUB, graph.Node(root).Op)
	assert.Equal(t, uint(2), graph.Degree(root))
	assert.Equal(t, "(- (* s s) s)", graph.Lisp(root, result).String(false))
	assert.Equal(t, uint(1), countTrace(graph, 0))
}

func Test_Compile_02(t *testing.T) {
	var sink source.Collector
	// Missing trace columns
	_, err := Compile(srcFile("def test\npublic_inputs {\n    stack: [2],\n}"), compiler.MapLoader{}, &sink,
		DefaultCompilationConfig())
	//
	checkStage(t, err, PARSE_STAGE, 1)
	assert.Len(t, sink.Diagnostics(), 1)
	assert.True(t, sink.HasErrors())
}

func Test_Compile_03(t *testing.T) {
	var sink source.Collector
	//
	_, err := Compile(srcFile("def test\nuse missing::*;\n"+validModule[9:]), compiler.MapLoader{}, &sink,
		DefaultCompilationConfig())
	//
	checkStage(t, err, RESOLVE_STAGE, 1)
	assert.Equal(t, "unknown module", sink.Diagnostics()[0].Message)
}

func Test_Compile_04(t *testing.T) {
	var sink source.Collector
	// Errors accumulate during validation
	src := validModule[:len(validModule)-1] + "    enf x = 0;\n    enf y = 0;\n}"
	_, err := Compile(srcFile(src), compiler.MapLoader{}, &sink, DefaultCompilationConfig())
	//
	checkStage(t, err, VALIDATE_STAGE, 2)
	require.Len(t, sink.Diagnostics(), 2)
	assert.Equal(t, "unknown symbol x", sink.Diagnostics()[0].Message)
	assert.Equal(t, "unknown symbol y", sink.Diagnostics()[1].Message)
}

func Test_Compile_05(t *testing.T) {
	var sink source.Collector
	//
	src := validModule[:len(validModule)-1] + "    enf [a, b] = [c];\n}"
	_, err := Compile(srcFile(src), compiler.MapLoader{}, &sink, DefaultCompilationConfig())
	//
	checkStage(t, err, LOWER_STAGE, 1)
}

func Test_Compile_06(t *testing.T) {
	var sink source.Collector
	// Compilation is deterministic
	first, err := Compile(srcFile(validModule), compiler.MapLoader{}, &sink, DefaultCompilationConfig())
	require.NoError(t, err)
	second, err := Compile(srcFile(validModule), compiler.MapLoader{}, &sink, DefaultCompilationConfig())
	require.NoError(t, err)
	//
	assert.Equal(t, first.Graph().Nodes(), second.Graph().Nodes())
	assert.Equal(t, first.Lisp().String(false), second.Lisp().String(false))
}

func Test_Check_01(t *testing.T) {
	var sink source.Collector
	//
	library, err := Check(srcFile(validModule), compiler.MapLoader{}, &sink)
	require.NoError(t, err)
	assert.Len(t, library.Modules(), 1)
}

func Test_Lower_01(t *testing.T) {
	var sink source.Collector
	//
	schema, err := Lower(srcFile(validModule), compiler.MapLoader{}, &sink)
	require.NoError(t, err)
	require.Len(t, schema.Integrity, 1)
	assert.Equal(t, "(every (- (^ s 2) s))", schema.Integrity[0].Lisp(schema).String(false))
}

func Test_Stage_01(t *testing.T) {
	err := &CompilationError{VALIDATE_STAGE, 3}
	assert.Equal(t, "validate failed with 3 error(s)", err.Error())
	assert.Equal(t, "stage(9)", Stage(9).String())
}

// ===================================================================
// Test Framework
// ===================================================================

func srcFile(src string) *source.File {
	return source.NewSourceFile("test.air", []byte(src))
}

func checkStage(t *testing.T, err error, stage Stage, count uint) {
	t.Helper()
	//
	var cerr *CompilationError
	//
	require.True(t, errors.As(err, &cerr), "expected compilation error")
	assert.Equal(t, stage, cerr.Stage)
	assert.Equal(t, count, cerr.Count)
}

func countTrace(graph *air.Graph, column uint) uint {
	var count uint
	//
	for _, node := range graph.Nodes() {
		if node.Op == air.TRACE && node.Column == column {
			count++
		}
	}
	//
	return count
}
