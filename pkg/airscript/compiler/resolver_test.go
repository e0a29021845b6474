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
	"strings"
	"testing"

	"github.com/consensys/go-airscript/pkg/airscript/ast"
	"github.com/consensys/go-airscript/pkg/airscript/parser"
	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libFoo = "mod lib\nev foo([x]) {\n    enf x = 0;\n}\nfn double(x: felt) -> felt {\n    return x + x;\n}"

const libBar = "mod other\nconst K = 3;\nev foo([x]) {\n    enf x = 1;\n}"

func Test_Resolve_01(t *testing.T) {
	library := checkResolve(t, rootModule("use lib::*;", "enf a.first = 0;", "enf foo([a]);"), libFoo)
	require.Len(t, library.Modules(), 2)
	//
	binding, ok := library.Scope(library.Root()).Lookup("double")
	require.True(t, ok)
	assert.Equal(t, "lib", binding.Module.Name.Name)
}

func Test_Resolve_02(t *testing.T) {
	// Single item imports bring only that item into scope
	library := checkResolve(t, rootModule("use lib::foo;", "enf a.first = 0;", "enf foo([a]);"), libFoo)
	scope := library.Scope(library.Root())
	//
	_, ok := scope.Lookup("foo")
	assert.True(t, ok)
	_, ok = scope.Lookup("double")
	assert.False(t, ok)
}

func Test_Resolve_03(t *testing.T) {
	// Imported modules can themselves import
	lib := "mod lib\nuse other::K;\nfn k(x: felt) -> felt {\n    return K * x;\n}"
	library := checkResolve(t, rootModule("use lib::k;", "enf a.first = 0;", "enf a = 0;"), lib, libBar)
	require.Len(t, library.Modules(), 3)
	//
	_, ok := library.Scope(library.Modules()[1]).Lookup("K")
	assert.True(t, ok)
}

func Test_Resolve_04(t *testing.T) {
	// Modules imported twice are loaded once
	lib := "mod lib\nuse other::*;\nev bar([x]) {\n    enf x = 0;\n}"
	library := checkResolve(t, rootModule("use lib::*;\nuse other::K;", "enf a.first = 0;", "enf a = K;"),
		lib, libBar)
	assert.Len(t, library.Modules(), 3)
}

func Test_Resolve_Error_01(t *testing.T) {
	checkResolveError(t, rootModule("use missing::*;", "enf a.first = 0;", "enf a = 0;"), "unknown module")
}

func Test_Resolve_Error_02(t *testing.T) {
	checkResolveError(t, rootModule("use lib::bar;", "enf a.first = 0;", "enf a = 0;"), "unknown import bar",
		libFoo)
}

func Test_Resolve_Error_03(t *testing.T) {
	checkResolveError(t, rootModule("use lib::*;\nuse other::*;", "enf a.first = 0;", "enf a = 0;"),
		"conflicting import foo", libFoo, libBar)
}

func Test_Resolve_Error_04(t *testing.T) {
	checkResolveError(t, rootModule("use lib::foo;\nev foo([x]) {\n    enf x = 0;\n}", "enf a.first = 0;",
		"enf a = 0;"), "conflicting import foo", libFoo)
}

func Test_Resolve_Error_05(t *testing.T) {
	errs := resolveErrors(rootModule("const A = 1;\nconst A = 2;", "enf a.first = 0;", "enf a = 0;"))
	require.Len(t, errs, 1)
	assert.Equal(t, "duplicate declaration A", errs[0].Message())
	// Secondary label identifies the first declaration
	require.Len(t, errs[0].Labels(), 1)
	assert.Equal(t, "constant previously declared here", errs[0].Labels()[0].Message())
}

func Test_Resolve_Error_06(t *testing.T) {
	// Trace columns clash with other declarations
	checkResolveError(t, rootModule("fn a(x: felt) -> felt {\n    return x;\n}", "enf a.first = 0;", "enf a = 0;"),
		"duplicate declaration a")
}

func Test_Resolve_Error_07(t *testing.T) {
	checkResolveError(t, rootModule("use lib::*;", "enf a.first = 0;", "enf a = 0;"),
		"cannot import root module", "mod lib\nuse test::*;\nconst K = 1;")
}

func Test_Resolve_Error_08(t *testing.T) {
	// Loader returns a module with a different name
	var (
		names  = ast.NewNameContext()
		loader = MapLoader{"lib": source.NewSourceFile("lib.air", []byte(libBar))}
		src    = rootModule("use lib::*;", "enf a.first = 0;", "enf a = 0;")
	)
	//
	module, srcmap, errs := parser.Parse(source.NewSourceFile("test.air", []byte(src)), names)
	require.Empty(t, errs)
	//
	_, errs = Resolve(module, srcmap, loader, names)
	require.Len(t, errs, 1)
	assert.Equal(t, "module name mismatch (expected lib)", errs[0].Message())
}

func Test_Resolve_Error_09(t *testing.T) {
	// Errors are accumulated across declarations
	decls := "const A = 1;\nconst A = 2;\nconst B = 1;\nconst B = 2;"
	errs := resolveErrors(rootModule(decls, "enf a.first = 0;", "enf a = 0;"))
	assert.Len(t, errs, 2)
}

// ============================================================================
// Framework
// ============================================================================

func resolve(src string, libs ...string) (*Library, []source.SyntaxError) {
	var (
		names  = ast.NewNameContext()
		loader = make(MapLoader)
	)
	//
	for _, lib := range libs {
		name := moduleName(lib)
		loader[name] = source.NewSourceFile(name+".air", []byte(lib))
	}
	//
	module, srcmap, errs := parser.Parse(source.NewSourceFile("test.air", []byte(src)), names)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return Resolve(module, srcmap, loader, names)
}

// Extract the name of a library module, which follows "mod".
func moduleName(src string) string {
	return strings.Fields(src)[1]
}

func resolveErrors(src string, libs ...string) []source.SyntaxError {
	_, errs := resolve(src, libs...)
	return errs
}

func checkResolve(t *testing.T, src string, libs ...string) *Library {
	library, errs := resolve(src, libs...)
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected error: %s", errs[0].Message())
	}
	//
	return library
}

func checkResolveError(t *testing.T, src string, msg string, libs ...string) {
	errs := resolveErrors(src, libs...)
	//
	require.Len(t, errs, 1, "expected exactly one error")
	assert.Equal(t, msg, errs[0].Message())
}
