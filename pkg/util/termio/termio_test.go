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
package termio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Escape_01(t *testing.T) {
	assert.Equal(t, "\033[31m", NewAnsiEscape().FgColour(TERM_RED).Build())
	assert.Equal(t, "\033[1;33m", BoldAnsiEscape().FgColour(TERM_YELLOW).Build())
	assert.Equal(t, "\033[31;42m", NewAnsiEscape().FgColour(TERM_RED).BgColour(TERM_GREEN).Build())
	assert.Equal(t, "\033[1mx\033[0m", BoldAnsiEscape().Wrap("x"))
}

func Test_Table_01(t *testing.T) {
	var buf bytes.Buffer
	//
	table := NewTablePrinter(2, 2)
	table.SetRow(0, "a", "bb")
	table.SetRow(1, "ccc", "d")
	table.Print(&buf)
	//
	assert.Equal(t, " a   | bb |\n ccc | d  |\n", buf.String())
}

func Test_Table_02(t *testing.T) {
	var buf bytes.Buffer
	//
	table := NewTablePrinter(1, 1)
	table.Set(0, 0, "abcdefgh")
	table.SetMaxWidth(0, 5)
	table.AnsiEscapes(false)
	table.SetEscape(0, 0, NewAnsiEscape().FgColour(TERM_RED).Build())
	table.Print(&buf)
	//
	assert.Equal(t, " abc.. |\n", buf.String())
	assert.Equal(t, "abcdefgh", table.Get(0, 0))
}
