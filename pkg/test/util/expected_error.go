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
	"strconv"
	"strings"

	"github.com/consensys/go-airscript/pkg/util/source"
)

// ERROR_PREFIX marks a comment line describing an expected error, as in
// "# error:12:unknown symbol x".
const ERROR_PREFIX = "# error:"

// ExpectedError identifies an error expected on a given line.
type ExpectedError struct {
	// Line number (from 1).
	Line int
	// Expected error message.
	Message string
}

func (e ExpectedError) String() string {
	return fmt.Sprintf("%d:%s", e.Line, e.Message)
}

// Extract the expected error from a given line in the source file.
func extractExpectedError(lineno int, lines []source.Line, _ *source.File) (bool, ExpectedError, error) {
	var contents = lines[lineno].String()
	//
	if !strings.HasPrefix(contents, ERROR_PREFIX) {
		return false, ExpectedError{}, nil
	}
	//
	splits := strings.SplitN(strings.TrimPrefix(contents, ERROR_PREFIX), ":", 2)
	//
	if len(splits) != 2 {
		return true, ExpectedError{}, fmt.Errorf("malformed expected error \"%s\", should be e.g. \"# error:X:msg\"",
			contents)
	}
	//
	line, err := strconv.Atoi(splits[0])
	if err != nil {
		return true, ExpectedError{}, fmt.Errorf("invalid line \"%s\" (%s)", splits[0], err.Error())
	} else if line <= 0 || line > len(lines) {
		return true, ExpectedError{}, fmt.Errorf("invalid line \"%s\" (non-existent line)", splits[0])
	}
	//
	return true, ExpectedError{line, strings.TrimSpace(splits[1])}, nil
}

// Convert a diagnostic into its expected error form.
func toExpectedError(diagnostic source.Diagnostic) ExpectedError {
	if diagnostic.File == nil {
		return ExpectedError{0, diagnostic.Message}
	}
	//
	var line = diagnostic.File.FindFirstEnclosingLine(diagnostic.Span)
	//
	return ExpectedError{line.Number(), diagnostic.Message}
}
