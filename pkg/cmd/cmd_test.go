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
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-airscript/pkg/airscript"
	"github.com/consensys/go-airscript/pkg/airscript/compiler"
	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/consensys/go-airscript/pkg/util/source/sexp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModule = `def test
trace_columns {
    main: [a, b],
}
public_inputs {
    stack: [2],
}
boundary_constraints {
    enf a.first = 0;
}
integrity_constraints {
    enf a' = a * b;
    enf b^2 = b;
}`

func Test_Config_01(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, CONFIG_FILE)
	//
	require.NoError(t, os.WriteFile(filename, []byte("library_paths: [lib, /abs]\noptimise: false\ncolor: never\n"),
		0o644))
	//
	config, err := ReadProjectConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "lib"), "/abs"}, config.LibraryPaths)
	require.NotNil(t, config.Optimise)
	assert.False(t, *config.Optimise)
	assert.Equal(t, "never", config.Color)
}

func Test_Config_02(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, CONFIG_FILE)
	//
	require.NoError(t, os.WriteFile(filename, []byte("color: purple\n"), 0o644))
	_, err := ReadProjectConfig(filename)
	assert.Error(t, err)
	//
	require.NoError(t, os.WriteFile(filename, []byte("library_paths: {\n"), 0o644))
	_, err = ReadProjectConfig(filename)
	assert.Error(t, err)
	//
	_, err = ReadProjectConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func Test_Config_03(t *testing.T) {
	dir := t.TempDir()
	// No configuration file present
	config, err := FindProjectConfig(filepath.Join(dir, "test.air"))
	require.NoError(t, err)
	assert.Nil(t, config)
	//
	require.NoError(t, os.WriteFile(filepath.Join(dir, CONFIG_FILE), []byte("optimise: true\n"), 0o644))
	config, err = FindProjectConfig(filepath.Join(dir, "test.air"))
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.True(t, *config.Optimise)
}

func Test_Printer_01(t *testing.T) {
	var (
		buf     bytes.Buffer
		srcfile = source.NewSourceFile("test.air", []byte("enf a = z;\n"))
		printer = NewDiagnosticPrinter(&buf, false)
	)
	//
	printer.Emit(source.NewDiagnostic(source.ERROR, srcfile.SyntaxError(source.NewSpan(8, 9), "unknown symbol z")))
	//
	assert.Equal(t, uint(1), printer.Count())
	assert.Equal(t, "test.air:1:9 error: unknown symbol z\nenf a = z;\n        ^\n", buf.String())
}

func Test_Printer_02(t *testing.T) {
	var (
		buf     bytes.Buffer
		printer = NewDiagnosticPrinter(&buf, true)
	)
	//
	printer.Emit(source.Diagnostic{Severity: source.WARNING, Message: "careful"})
	//
	assert.Equal(t, "\033[1;33mwarning:\033[0m careful\n", buf.String())
}

func Test_Write_01(t *testing.T) {
	var (
		buf     bytes.Buffer
		sink    source.Collector
		srcfile = source.NewSourceFile("test.air", []byte(testModule))
	)
	//
	result, err := airscript.Compile(srcfile, compiler.MapLoader{}, &sink, airscript.DefaultCompilationConfig())
	require.NoError(t, err)
	//
	writeAir(&buf, result, false, false, 0)
	assert.Equal(t, "(first a)\n(frame:2 (- a' (* a b)))\n(every (- (* b b) b))\n", buf.String())
}

func Test_Write_02(t *testing.T) {
	var (
		buf     bytes.Buffer
		sink    source.Collector
		srcfile = source.NewSourceFile("test.air", []byte(testModule))
	)
	//
	schema, err := airscript.Lower(srcfile, compiler.MapLoader{}, &sink)
	require.NoError(t, err)
	//
	writeSchema(&buf, schema, 0)
	assert.Equal(t, "(first (- a 0))\n(every (- a' (* a b)))\n(every (- (^ b 2) b))\n", buf.String())
}

func Test_Write_03(t *testing.T) {
	var (
		buf     bytes.Buffer
		sink    source.Collector
		srcfile = source.NewSourceFile("test.air", []byte(testModule))
	)
	//
	result, err := airscript.Compile(srcfile, compiler.MapLoader{}, &sink, airscript.DefaultCompilationConfig())
	require.NoError(t, err)
	// Only constraints wider than 12 are split
	writeAir(&buf, result, false, false, 12)
	assert.Equal(t, "(first a)\n(frame:2 (\n   -\n   a'\n   (* a b)))\n(every (\n   -\n   (* b b)\n   b))\n",
		buf.String())
}

func Test_Write_04(t *testing.T) {
	var (
		buf  bytes.Buffer
		term = sexp.NewTerm("every", sexp.NewTerm("-", sexp.NewTerm("*", sexp.NewSymbol("b"), sexp.NewSymbol("b")),
			sexp.NewSymbol("b")))
	)
	// Too wide, so subtraction is split
	writeLisp(&buf, term, newFormatter(10))
	assert.Equal(t, "(every (\n   -\n   (* b b)\n   b))\n", buf.String())
	// Fits
	buf.Reset()
	writeLisp(&buf, term, newFormatter(80))
	assert.Equal(t, "(every (- (* b b) b))\n", buf.String())
	// No formatter
	buf.Reset()
	writeLisp(&buf, term, newFormatter(0))
	assert.Equal(t, "(every (- (* b b) b))\n", buf.String())
}
