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
	"fmt"

	"github.com/consensys/go-airscript/pkg/airscript/ast"
	"github.com/consensys/go-airscript/pkg/airscript/compiler"
	"github.com/consensys/go-airscript/pkg/airscript/parser"
	"github.com/consensys/go-airscript/pkg/ir/air"
	"github.com/consensys/go-airscript/pkg/ir/mir"
	"github.com/consensys/go-airscript/pkg/util"
	"github.com/consensys/go-airscript/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Stage identifies a stage of the compilation pipeline.
type Stage uint8

// PARSE_STAGE parses the root module.
const PARSE_STAGE Stage = 0

// RESOLVE_STAGE loads imported modules and resolves names.
const RESOLVE_STAGE Stage = 1

// VALIDATE_STAGE performs semantic analysis.
const VALIDATE_STAGE Stage = 2

// LOWER_STAGE inlines and expands everything into flat MIR constraints.
const LOWER_STAGE Stage = 3

// BUILD_STAGE constructs the constraint graph.
const BUILD_STAGE Stage = 4

func (s Stage) String() string {
	switch s {
	case PARSE_STAGE:
		return "parse"
	case RESOLVE_STAGE:
		return "resolve"
	case VALIDATE_STAGE:
		return "validate"
	case LOWER_STAGE:
		return "lower"
	case BUILD_STAGE:
		return "build"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// CompilationConfig encapsulates options which affect compilation.
type CompilationConfig struct {
	// Optimise enables folding of constants and trivial identities when
	// building the constraint graph.  Exponents are always eliminated.
	Optimise bool
}

// DefaultCompilationConfig returns the configuration used when none is
// given explicitly.
func DefaultCompilationConfig() CompilationConfig {
	return CompilationConfig{Optimise: true}
}

// CompilationError signals that compilation failed at a given stage, having
// emitted one or more diagnostics.
type CompilationError struct {
	Stage Stage
	// Number of diagnostics emitted.
	Count uint
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("%s failed with %d error(s)", e.Stage, e.Count)
}

// Check parses, resolves and validates a given root module, without lowering
// it.  Any errors are emitted to the given sink.
func Check(root *source.File, loader compiler.ModuleLoader, sink source.Sink) (*compiler.Library, error) {
	library, _, err := check(root, loader, sink)
	//
	return library, err
}

// Lower compiles a given root module down to its flat MIR constraints.  Any
// errors are emitted to the given sink.
func Lower(root *source.File, loader compiler.ModuleLoader, sink source.Sink) (*mir.Schema, error) {
	library, names, err := check(root, loader, sink)
	if err != nil {
		return nil, err
	}
	//
	return lower(library, names, sink)
}

// Compile a given root module (along with any libraries it imports) into a
// constraint graph.  Libraries are obtained from the given loader, and any
// errors are emitted to the given sink.  Nothing is emitted when compilation
// succeeds.
func Compile(root *source.File, loader compiler.ModuleLoader, sink source.Sink,
	config CompilationConfig) (*air.Air, error) {
	//
	schema, err := Lower(root, loader, sink)
	if err != nil {
		return nil, err
	}
	//
	stats := util.NewPerfStats()
	result := air.Build(schema, config.Optimise)
	//
	stats.Log("build")
	log.Debugf("built graph of %d node(s) for %s", result.Graph().Len(), root.Filename())
	//
	return result, nil
}

// Parse, resolve and validate a given root module.  A single naming context is
// created here and threaded through every subsequent stage.
func check(root *source.File, loader compiler.ModuleLoader, sink source.Sink) (*compiler.Library,
	*ast.NameContext, error) {
	//
	var (
		names = ast.NewNameContext()
		stats = util.NewPerfStats()
	)
	//
	module, srcmap, errs := parser.Parse(root, names)
	if len(errs) > 0 {
		return nil, nil, fail(sink, PARSE_STAGE, errs)
	}
	//
	stats.Log("parse")
	log.Debugf("parsed module %s", module.Name)
	//
	stats = util.NewPerfStats()
	//
	library, errs := compiler.Resolve(module, srcmap, loader, names)
	if len(errs) > 0 {
		return nil, nil, fail(sink, RESOLVE_STAGE, errs)
	}
	//
	stats.Log("resolve")
	//
	stats = util.NewPerfStats()
	//
	if errs = compiler.Validate(library); len(errs) > 0 {
		return nil, nil, fail(sink, VALIDATE_STAGE, errs)
	}
	//
	stats.Log("validate")
	//
	return library, names, nil
}

func lower(library *compiler.Library, names *ast.NameContext, sink source.Sink) (*mir.Schema, error) {
	stats := util.NewPerfStats()
	//
	schema, errs := compiler.TranslateLibrary(library, names)
	if len(errs) > 0 {
		return nil, fail(sink, LOWER_STAGE, errs)
	}
	//
	stats.Log("lower")
	//
	return schema, nil
}

// Emit the errors of a failed stage.
func fail(sink source.Sink, stage Stage, errs []source.SyntaxError) error {
	log.Debugf("%s failed with %d error(s)", stage, len(errs))
	source.EmitAll(sink, errs)
	//
	return &CompilationError{stage, uint(len(errs))}
}
