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
	"fmt"

	"github.com/consensys/go-airscript/pkg/airscript/ast"
	"github.com/consensys/go-airscript/pkg/ir/mir"
	"github.com/consensys/go-airscript/pkg/util/field"
	"github.com/consensys/go-airscript/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// AUX_SEGMENT_NAME is the name given to the trace segment holding bus
// accumulator columns.
const AUX_SEGMENT_NAME = "aux"

// TranslateLibrary lowers a validated library into an MIR schema.  This inlines
// all evaluator and function calls, expands all comprehensions and expands
// all bus operations into explicit accumulator identities.  By the time we get
// to this point, all malformed source files should have been rejected already.
// However, some errors can only be detected once calls are inlined (e.g. cyclic
// calls or comprehensions whose iterables differ in length).  Such errors are
// fatal and the first encountered is returned.
func TranslateLibrary(library *Library, names *ast.NameContext) (*mir.Schema, []source.SyntaxError) {
	var (
		root = library.Root()
		t    = newTranslator(library, names)
		env  = newEnvironment(library.Scope(root))
	)
	// Boundary constraints
	t.boundary = true
	//
	if errs := t.translateStatements(root.BoundaryConstraints.Statements, env); len(errs) > 0 {
		return nil, errs
	}
	// Integrity constraints
	t.boundary = false
	//
	if errs := t.translateStatements(root.IntegrityConstraints.Statements, env); len(errs) > 0 {
		return nil, errs
	}
	// Bus identities come last
	t.translateBuses()
	//
	log.Debugf("lowered %d boundary and %d integrity constraint(s)", len(t.schema.Boundary),
		len(t.schema.Integrity))
	//
	return t.schema, nil
}

// Translator packages up the information needed when lowering a library.
type translator struct {
	// Library being lowered.
	library *Library
	// Source maps for all modules, used for reporting errors.
	srcmap *source.Maps[any]
	// Naming context used for generating hygienic names.
	names *ast.NameContext
	// Schema being constructed.
	schema *mir.Schema
	// Index of each public input.
	inputs map[*ast.PublicInput]uint
	// Index of each periodic column.
	periodic map[*ast.PeriodicColumn]uint
	// Index of each bus.
	buses map[*ast.Bus]uint
	// Operations recorded for each bus, in statement order.
	busOps [][]busOp
	// Values of local variables, indexed by hygienic name.
	bindings map[string]Value
	// Evaluators and functions currently being inlined.
	stack []ast.Declaration
	// Selectors which are active at the current point.
	selectors []mir.Expr
	// Indicates whether boundary constraints are being lowered.
	boundary bool
	// Boundary of the constraint currently being lowered.
	current mir.Boundary
	// Columns already constrained on the first or last row.
	constrained map[boundaryKey]bool
	// Statement currently being lowered, for reporting errors.
	stmt any
}

type boundaryKey struct {
	segment  uint
	column   uint
	boundary mir.Boundary
}

func newTranslator(library *Library, names *ast.NameContext) *translator {
	var (
		root = library.Root()
		t    = &translator{
			library:     library,
			srcmap:      library.SourceMap(),
			names:       names,
			schema:      &mir.Schema{},
			inputs:      make(map[*ast.PublicInput]uint),
			periodic:    make(map[*ast.PeriodicColumn]uint),
			buses:       make(map[*ast.Bus]uint),
			bindings:    make(map[string]Value),
			constrained: make(map[boundaryKey]bool),
		}
	)
	// Main trace segment
	t.schema.TraceSegments = append(t.schema.TraceSegments, translateSegment(root.MainSegment()))
	// Public inputs
	for i, input := range root.PublicInputs {
		t.inputs[input] = uint(i)
		t.schema.PublicInputs = append(t.schema.PublicInputs, mir.PublicInput{
			Name: input.Name.Name, Size: input.Size, Table: input.Table})
	}
	// Periodic columns of every module
	for _, m := range library.Modules() {
		for _, col := range m.PeriodicColumns {
			values := make([]field.Element, len(col.Values))
			//
			for i, v := range col.Values {
				values[i] = field.Uint64(v)
			}
			//
			t.periodic[col] = uint(len(t.schema.PeriodicColumns))
			t.schema.PeriodicColumns = append(t.schema.PeriodicColumns, mir.PeriodicColumn{
				Name: col.Name.Name, Values: values})
		}
	}
	// Buses occupy the auxiliary segment (if any)
	if len(root.Buses) > 0 {
		aux := mir.TraceSegment{Name: AUX_SEGMENT_NAME}
		//
		for i, bus := range root.Buses {
			kind := mir.MULTISET_BUS
			//
			if bus.Kind == ast.LOGUP_BUS {
				kind = mir.LOGUP_BUS
			}
			//
			t.buses[bus] = uint(i)
			t.schema.Buses = append(t.schema.Buses, mir.Bus{Name: bus.Name.Name, Kind: kind, Column: uint(i)})
			aux.Columns = append(aux.Columns, bus.Name.Name)
		}
		//
		t.schema.TraceSegments = append(t.schema.TraceSegments, aux)
		t.busOps = make([][]busOp, len(root.Buses))
	}
	//
	return t
}

// Construct the column names of a trace segment, where vector bindings have
// one column per element.
func translateSegment(segment *ast.TraceSegment) mir.TraceSegment {
	var columns []string
	//
	for _, b := range segment.Bindings {
		if !b.Vector {
			columns = append(columns, b.Name.Name)
			continue
		}
		//
		for i := uint(0); i < b.Size; i++ {
			columns = append(columns, fmt.Sprintf("%s[%d]", b.Name.Name, i))
		}
	}
	//
	return mir.TraceSegment{Name: segment.Name.Name, Columns: columns}
}

// ============================================================================
// Environment
// ============================================================================

// Environment determines how names are resolved at a given point.  Global
// names are resolved within the scope of the module being lowered, whilst local
// names are mapped to their hygienic names.
type environment struct {
	scope  *ModuleScope
	locals map[string]string
}

func newEnvironment(scope *ModuleScope) environment {
	return environment{scope, make(map[string]string)}
}

// Construct a nested environment, in which new local names can be bound
// without affecting the enclosing environment.
func (p environment) nest() environment {
	locals := make(map[string]string, len(p.locals))
	//
	for k, v := range p.locals {
		locals[k] = v
	}
	//
	return environment{p.scope, locals}
}

// Bind a given local name to a value, under a fresh hygienic name.
func (t *translator) bind(env environment, name ast.Identifier, value Value) {
	hygienic := t.names.Fresh(name.Name, name.Span)
	env.locals[name.Name] = hygienic.Name
	t.bindings[hygienic.Name] = value
}

// ============================================================================
// Statements
// ============================================================================

func (t *translator) translateStatements(stmts []ast.Statement, env environment) []source.SyntaxError {
	env = env.nest()
	//
	for _, stmt := range stmts {
		var errs []source.SyntaxError
		//
		t.stmt = stmt
		//
		switch s := stmt.(type) {
		case *ast.Let:
			var value Value
			//
			if value, errs = t.translateExpr(s.Value, env); len(errs) == 0 {
				t.bind(env, s.Name, value)
			}
		case *ast.Enforce:
			errs = t.translateConstraint(s.Constraint, env)
		case *ast.EnforceAll:
			errs = t.translateComprehension(stmt, s.Context, env, func(env environment) []source.SyntaxError {
				return t.withSelector(s.Selector, env, func() []source.SyntaxError {
					return t.translateConstraint(s.Constraint, env)
				})
			})
		case *ast.BusEnforce:
			errs = t.translateComprehension(stmt, s.Context, env, func(env environment) []source.SyntaxError {
				return t.translateBusEnforce(s, env)
			})
		default:
			panic(fmt.Sprintf("unknown statement encountered (%T)", stmt))
		}
		//
		if len(errs) > 0 {
			return errs
		}
	}
	//
	return nil
}

// Translate a constraint within the active selectors.
func (t *translator) translateConstraint(constraint ast.Constraint, env environment) []source.SyntaxError {
	switch c := constraint.(type) {
	case *ast.EvaluatorCall:
		return t.translateEvaluatorCall(c.Call, env)
	case *ast.Equality:
		if bus, access, ok := t.isBusBoundary(c, env); ok {
			return t.translateBusBoundary(c, bus, access, env)
		}
		// Reset boundary
		t.current = mir.NO_BOUNDARY
		//
		lhs, errs := t.translateExpr(c.Lhs, env)
		if len(errs) > 0 {
			return errs
		}
		//
		rhs, errs := t.translateExpr(c.Rhs, env)
		if len(errs) > 0 {
			return errs
		}
		//
		if t.boundary {
			return t.translateBoundaryEquality(c, lhs, rhs)
		}
		//
		return t.translateEquality(c, lhs, rhs, mir.NO_BOUNDARY)
	default:
		panic(fmt.Sprintf("unknown constraint encountered (%T)", constraint))
	}
}

// Translate an equality between two values, which expands elementwise for
// vectors.
func (t *translator) translateEquality(node any, lhs Value, rhs Value, boundary mir.Boundary) []source.SyntaxError {
	if lhs.IsScalar() != rhs.IsScalar() {
		return t.error(node, "expected scalar")
	} else if lhs.IsScalar() {
		t.emit(lhs.Scalar(), rhs.Scalar(), boundary)
		return nil
	} else if lhs.Len() != rhs.Len() {
		return t.error(node, "vector length mismatch")
	}
	//
	for i := uint(0); i < lhs.Len(); i++ {
		if errs := t.translateEquality(node, lhs.Element(i), rhs.Element(i), boundary); len(errs) > 0 {
			return errs
		}
	}
	//
	return nil
}

// Translate an equality occurring in the boundary constraints section.  The
// left-hand side must identify exactly one trace column, which cannot be
// constrained more than once on the same boundary.
func (t *translator) translateBoundaryEquality(node any, lhs Value, rhs Value) []source.SyntaxError {
	var access, ok = lhs.Scalar().(*mir.TraceAccess)
	//
	if !lhs.IsScalar() || !ok || t.current == mir.NO_BOUNDARY {
		return t.error(node, "invalid boundary constraint")
	} else if !rhs.IsScalar() {
		return t.error(node, "expected scalar")
	}
	//
	key := boundaryKey{access.Segment, access.Column, t.current}
	//
	if t.constrained[key] {
		return t.error(node, "overlapping boundary constraints")
	}
	//
	t.constrained[key] = true
	t.emit(lhs.Scalar(), rhs.Scalar(), t.current)
	//
	return nil
}

// Emit a constraint lhs = rhs, multiplied by all active selectors.
func (t *translator) emit(lhs mir.Expr, rhs mir.Expr, boundary mir.Boundary) {
	var expr mir.Expr = &mir.Sub{Lhs: lhs, Rhs: rhs}
	//
	if len(t.selectors) > 0 {
		expr = &mir.Mul{Lhs: expr, Rhs: mir.Product(t.selectors...)}
	}
	//
	constraint := mir.Constraint{Expr: expr, Boundary: boundary}
	//
	if boundary == mir.NO_BOUNDARY {
		t.schema.Integrity = append(t.schema.Integrity, constraint)
	} else {
		t.schema.Boundary = append(t.schema.Boundary, constraint)
	}
}

// Apply a given (optional) selector whilst executing a given function.
func (t *translator) withSelector(selector ast.Expr, env environment,
	fn func() []source.SyntaxError) []source.SyntaxError {
	//
	if selector == nil {
		return fn()
	}
	//
	value, errs := t.translateScalar(selector, env)
	if len(errs) > 0 {
		return errs
	}
	//
	t.selectors = append(t.selectors, value)
	errs = fn()
	t.selectors = t.selectors[:len(t.selectors)-1]
	//
	return errs
}

// Expand a comprehension by lowering its iterables, and then executing a given
// function once per iteration in an environment where each bound name is
// assigned the corresponding element of its iterable.
func (t *translator) translateComprehension(node any, ctx ast.ComprehensionContext, env environment,
	fn func(environment) []source.SyntaxError) []source.SyntaxError {
	//
	var (
		iterables = make([]Value, len(ctx))
		n         uint
	)
	//
	for i, binding := range ctx {
		iterable, errs := t.translateExpr(binding.Iterable, env)
		//
		if len(errs) > 0 {
			return errs
		} else if iterable.IsScalar() {
			return t.error(binding.Iterable, "expected vector")
		} else if i > 0 && iterable.Len() != n {
			return t.error(node, "comprehension arity mismatch (iterables differ in length)")
		}
		//
		iterables[i], n = iterable, iterable.Len()
	}
	//
	for i := uint(0); i < n; i++ {
		nenv := env.nest()
		//
		for j, binding := range ctx {
			t.bind(nenv, binding.Name, iterables[j].Element(i))
		}
		//
		if errs := fn(nenv); len(errs) > 0 {
			return errs
		}
	}
	//
	return nil
}

// ============================================================================
// Calls
// ============================================================================

// Inline a call to an evaluator.  The arguments are flattened into a sequence
// of scalars which are then bound, in order, to the columns of the evaluator's
// trace parameters.
func (t *translator) translateEvaluatorCall(call *ast.Call, env environment) []source.SyntaxError {
	var (
		binding, _ = env.scope.Lookup(call.Callee.Name)
		ev         = binding.Decl.(*ast.Evaluator)
		nenv       = newEnvironment(t.scope(binding))
	)
	//
	if errs := t.enter(call, ev); len(errs) > 0 {
		return errs
	}
	//
	defer t.leave()
	//
	for i, segment := range ev.Params {
		arg, errs := t.translateExpr(call.Args[i], env)
		if len(errs) > 0 {
			return errs
		}
		//
		columns := arg.Flatten()
		//
		if uint(len(columns)) != segment.Width() {
			return t.error(call.Args[i], fmt.Sprintf("argument width mismatch (expected %d columns)", segment.Width()))
		}
		//
		for _, b := range segment.Bindings {
			var value Value
			//
			if b.Vector {
				elements := make([]Value, b.Size)
				//
				for j := range elements {
					elements[j] = ScalarValue(columns[b.Offset+uint(j)])
				}
				//
				value = VectorValue(elements...)
			} else {
				value = ScalarValue(columns[b.Offset])
			}
			//
			t.bind(nenv, b.Name, value)
		}
	}
	//
	stmt := t.stmt
	errs := t.translateStatements(ev.Body, nenv)
	t.stmt = stmt
	//
	return errs
}

// Inline a call to a function, returning the value of its result.
func (t *translator) translateFunctionCall(call *ast.Call, fn *ast.Function, binding Binding,
	env environment) (Value, []source.SyntaxError) {
	//
	var nenv = newEnvironment(t.scope(binding))
	//
	if errs := t.enter(call, fn); len(errs) > 0 {
		return Value{}, errs
	}
	//
	defer t.leave()
	//
	for i, param := range fn.Params {
		arg, errs := t.translateExpr(call.Args[i], env)
		//
		if len(errs) > 0 {
			return Value{}, errs
		} else if !equalDims(arg.Dims(), param.Type.Dims) {
			return Value{}, t.error(call.Args[i], fmt.Sprintf("argument type mismatch (expected %s)", param.Type))
		}
		//
		t.bind(nenv, param.Name, arg)
	}
	//
	for _, let := range fn.Lets {
		value, errs := t.translateExpr(let.Value, nenv)
		if len(errs) > 0 {
			return Value{}, errs
		}
		//
		t.bind(nenv, let.Name, value)
	}
	//
	result, errs := t.translateExpr(fn.Result, nenv)
	//
	if len(errs) == 0 && !equalDims(result.Dims(), fn.Return.Dims) {
		return Value{}, t.error(fn.Result, fmt.Sprintf("return type mismatch (expected %s)", fn.Return))
	}
	//
	return result, errs
}

// Enter an evaluator or function, checking it is not already being inlined.
func (t *translator) enter(call *ast.Call, decl ast.Declaration) []source.SyntaxError {
	for _, d := range t.stack {
		if d == decl {
			return t.error(call, fmt.Sprintf("cyclic call to %s", call.Callee))
		}
	}
	//
	t.stack = append(t.stack, decl)
	//
	return nil
}

func (t *translator) leave() {
	t.stack = t.stack[:len(t.stack)-1]
}

// Determine the scope in which the body of a given declaration is resolved.
func (t *translator) scope(binding Binding) *ModuleScope {
	return t.library.Scope(binding.Module)
}

// ============================================================================
// Helpers
// ============================================================================

// Construct an error for a given node.  Nodes which are not recorded in the
// source map are reported against the statement being lowered.
func (t *translator) error(node any, msg string) []source.SyntaxError {
	if !t.srcmap.Has(node) {
		node = t.stmt
	}
	//
	return t.srcmap.SyntaxErrors(node, msg)
}
