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
	"fmt"
	"io"
	"strings"

	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/consensys/go-airscript/pkg/util/termio"
)

// DiagnosticPrinter is a diagnostics sink which prints each diagnostic as it
// arrives, highlighting the offending source text.
type DiagnosticPrinter struct {
	out io.Writer
	// Enables ANSI escapes
	colour bool
	// Number of diagnostics printed
	count uint
}

var _ source.Sink = (*DiagnosticPrinter)(nil)

// NewDiagnosticPrinter constructs a printer writing to a given writer.
func NewDiagnosticPrinter(out io.Writer, colour bool) *DiagnosticPrinter {
	return &DiagnosticPrinter{out, colour, 0}
}

// Count returns the number of diagnostics printed so far.
func (p *DiagnosticPrinter) Count() uint {
	return p.count
}

// Emit implementation for Sink interface.
func (p *DiagnosticPrinter) Emit(d source.Diagnostic) {
	p.count++
	//
	severity := p.escape(d.Severity.String()+":", severityColour(d.Severity))
	//
	if d.File == nil {
		fmt.Fprintf(p.out, "%s %s\n", severity, d.Message)
		return
	}
	//
	p.printSpan(d.File, d.Span, severity, d.Message, severityColour(d.Severity))
	//
	for _, label := range d.Labels {
		p.printSpan(label.SourceFile(), label.Span(), p.escape("note:", termio.TERM_CYAN), label.Message(),
			termio.TERM_CYAN)
	}
}

// Print a message against a given span with the enclosing line highlighted.
func (p *DiagnosticPrinter) printSpan(file *source.File, span source.Span, prefix string, msg string,
	colour uint) {
	//
	line := file.FindFirstEnclosingLine(span)
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := max(1, min(line.Length()-lineOffset, span.Length()))
	// Print error + line number
	fmt.Fprintf(p.out, "%s:%d:%d %s %s\n", file.Filename(), line.Number(), 1+lineOffset, prefix, msg)
	// Print line
	fmt.Fprintln(p.out, line.String())
	// Print indent (todo: account for tabs)
	fmt.Fprint(p.out, strings.Repeat(" ", lineOffset))
	// Print highlight
	fmt.Fprintln(p.out, p.escape(strings.Repeat("^", length), colour))
}

func (p *DiagnosticPrinter) escape(text string, colour uint) string {
	if !p.colour {
		return text
	}
	//
	return termio.BoldAnsiEscape().FgColour(colour).Wrap(text)
}

func severityColour(severity source.Severity) uint {
	switch severity {
	case source.WARNING:
		return termio.TERM_YELLOW
	case source.BUG:
		return termio.TERM_MAGENTA
	default:
		return termio.TERM_RED
	}
}
