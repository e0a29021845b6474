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
package util

import (
	"fmt"
	"testing"

	"github.com/consensys/go-airscript/pkg/airscript"
	"github.com/consensys/go-airscript/pkg/ir/air"
	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CheckValid checks that a given source file compiles without error (both with
// and without optimisation), and that the resulting graph is well-formed.  The
// graph constructed with optimisation enabled is returned for further
// checking.
func CheckValid(t *testing.T, test string) *air.Air {
	var filename = fmt.Sprintf("%s/valid/%s.air", TestDir, test)
	//
	srcfile := readSourceFile(t, filename)
	optimised := compileValid(t, srcfile, airscript.CompilationConfig{Optimise: true})
	unoptimised := compileValid(t, srcfile, airscript.CompilationConfig{Optimise: false})
	// Folding never introduces nodes
	assert.LessOrEqual(t, optimised.Graph().Len(), unoptimised.Graph().Len())
	assert.Equal(t, len(optimised.IntegrityConstraints()), len(unoptimised.IntegrityConstraints()))
	assert.Equal(t, len(optimised.BoundaryConstraints()), len(unoptimised.BoundaryConstraints()))
	// Compilation is deterministic
	again := compileValid(t, srcfile, airscript.CompilationConfig{Optimise: true})
	assert.Equal(t, optimised.Graph().Nodes(), again.Graph().Nodes())
	assert.Equal(t, optimised.IntegrityConstraints(), again.IntegrityConstraints())
	assert.Equal(t, optimised.Lisp().String(false), again.Lisp().String(false))
	//
	return optimised
}

func compileValid(t *testing.T, srcfile *source.File, config airscript.CompilationConfig) *air.Air {
	var sink source.Collector
	//
	result, err := airscript.Compile(srcfile, Loader(), &sink, config)
	//
	for _, d := range sink.Diagnostics() {
		t.Log(d.String())
	}
	//
	require.NoError(t, err)
	require.Empty(t, sink.Diagnostics())
	checkGraph(t, result)
	//
	return result
}

// Check the structural invariants of a graph: no exponents remain, every node
// is unique, operands precede their uses and degrees obey the degree laws.
func checkGraph(t *testing.T, result *air.Air) {
	var (
		graph = result.Graph()
		seen  = make(map[air.Node]bool)
	)
	//
	for i, node := range graph.Nodes() {
		index := air.NodeIndex(i)
		//
		require.NotEqual(t, air.EXP, node.Op, "exponent at node %d", i)
		require.False(t, seen[node], "duplicate node %d", i)
		seen[node] = true
		//
		for _, operand := range node.Operands() {
			require.Less(t, operand, index)
		}
		//
		switch node.Op {
		case air.CONSTANT:
			assert.Equal(t, uint(0), graph.Degree(index))
		case air.ADD, air.SUB:
			assert.Equal(t, max(graph.Degree(node.Lhs), graph.Degree(node.Rhs)), graph.Degree(index))
		case air.MUL:
			assert.Equal(t, graph.Degree(node.Lhs)+graph.Degree(node.Rhs), graph.Degree(index))
		default:
			assert.Equal(t, uint(1), graph.Degree(index))
		}
	}
	//
	for _, c := range result.BoundaryConstraints() {
		require.Less(t, uint(c.Root), graph.Len())
	}
	//
	for _, c := range result.IntegrityConstraints() {
		require.Less(t, uint(c.Root), graph.Len())
	}
}
