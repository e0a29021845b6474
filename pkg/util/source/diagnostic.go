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
package source

import "fmt"

// Severity indicates how serious a diagnostic is.
type Severity uint8

// ERROR signals a diagnostic which prevents compilation from succeeding.
const ERROR Severity = 0

// WARNING signals a diagnostic which does not prevent compilation.
const WARNING Severity = 1

// BUG signals an internal compiler failure, rather than a problem with the
// input.
const BUG Severity = 2

func (s Severity) String() string {
	switch s {
	case ERROR:
		return "error"
	case WARNING:
		return "warning"
	case BUG:
		return "bug"
	}
	//
	return fmt.Sprintf("severity(%d)", uint8(s))
}

// Diagnostic is a structured record handed to a diagnostics sink.
type Diagnostic struct {
	Severity Severity
	Message  string
	// Primary location (if known).  The File is nil when a diagnostic has no
	// associated source location.
	File *File
	Span Span
	// Secondary labels (e.g. previous declaration).
	Labels []Label
}

// NewDiagnostic converts a syntax error into a diagnostic with the given
// severity.
func NewDiagnostic(severity Severity, err *SyntaxError) Diagnostic {
	return Diagnostic{severity, err.msg, err.srcfile, err.span, err.labels}
}

// String returns a single-line representation of this diagnostic.
func (d Diagnostic) String() string {
	if d.File == nil {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	//
	line := d.File.FindFirstEnclosingLine(d.Span)
	//
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File.Filename(), line.Number(), 1+d.Span.Start()-line.Start(),
		d.Severity, d.Message)
}

// Sink accepts diagnostics emitted during compilation.  A sink is owned by
// exactly one compilation.
type Sink interface {
	Emit(diagnostic Diagnostic)
}

// Collector is a sink which simply records every diagnostic it receives.
type Collector struct {
	diagnostics []Diagnostic
}

// Emit implementation for Sink interface.
func (p *Collector) Emit(diagnostic Diagnostic) {
	p.diagnostics = append(p.diagnostics, diagnostic)
}

// Diagnostics returns the diagnostics collected so far.
func (p *Collector) Diagnostics() []Diagnostic {
	return p.diagnostics
}

// HasErrors checks whether any error (or bug) has been collected.
func (p *Collector) HasErrors() bool {
	for _, d := range p.diagnostics {
		if d.Severity != WARNING {
			return true
		}
	}
	//
	return false
}

// EmitAll emits each of the given syntax errors as an error diagnostic.
func EmitAll(sink Sink, errs []SyntaxError) {
	for i := range errs {
		sink.Emit(NewDiagnostic(ERROR, &errs[i]))
	}
}
