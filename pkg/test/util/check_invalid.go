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
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/consensys/go-airscript/pkg/airscript"
	"github.com/consensys/go-airscript/pkg/airscript/compiler"
	"github.com/consensys/go-airscript/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.
const TestDir = "../../testdata"

// LibDir determines the (relative) location of library modules shared by
// tests.
const LibDir = TestDir + "/lib"

// CheckInvalid checks that a given source file fails to compile, producing
// exactly the errors described by its leading "# error:" lines (in order).
func CheckInvalid(t *testing.T, test string) {
	var filename = fmt.Sprintf("%s/invalid/%s.air", TestDir, test)
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	// Extract expected errors for comparison
	expected, errs := ExtractAttributes(srcfile, extractExpectedError)
	if len(errs) > 0 {
		t.Fatal(errors.Join(errs...))
	} else if len(expected) == 0 {
		t.Fatalf("Error %s has no expected errors", filename)
	}
	//
	var sink source.Collector
	//
	_, err := airscript.Compile(srcfile, Loader(), &sink, airscript.DefaultCompilationConfig())
	//
	if err == nil {
		t.Fatalf("Error %s should not have compiled", filename)
	}
	//
	checkExpectedErrors(t, filename, sink.Diagnostics(), expected)
}

// Loader returns the module loader used by tests.
func Loader() compiler.ModuleLoader {
	return compiler.DirLoader{LibDir}
}

func checkExpectedErrors(t *testing.T, filename string, diagnostics []source.Diagnostic,
	expected []ExpectedError) {
	var (
		failed = false
		msg    = fmt.Sprintf("Error %s\n", filename)
	)
	//
	for i := 0; i < max(len(diagnostics), len(expected)); i++ {
		var actual ExpectedError
		//
		if i < len(diagnostics) {
			actual = toExpectedError(diagnostics[i])
		}
		//
		if i < len(diagnostics) && i < len(expected) && actual == expected[i] {
			continue
		}
		//
		failed = true
		//
		if i < len(diagnostics) {
			msg = fmt.Sprintf("%s unexpected error %s\n", msg, actual)
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected error %s\n", msg, expected[i])
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

func readSourceFile(t *testing.T, filename string) *source.File {
	bytes, err := os.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	//
	return source.NewSourceFile(filename, bytes)
}
