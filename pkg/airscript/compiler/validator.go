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
	"math/bits"
	"strings"

	"github.com/consensys/go-airscript/pkg/airscript/ast"
	"github.com/consensys/go-airscript/pkg/util/source"
)

// BUILTIN_SUM is the name of the builtin which sums the elements of a vector.
const BUILTIN_SUM = "sum"

// BUILTIN_PROD is the name of the builtin which multiplies the elements of a
// vector.
const BUILTIN_PROD = "prod"

// Validate checks that every module within a library is semantically
// well-formed.  For example, that every referenced symbol exists and is used
// within its permitted scope, that calls have the right number of arguments,
// that periodic columns are never accessed on the next row, etc.  Errors are
// accumulated across independent declarations and statements, such that as many
// problems as possible are reported in one go.
func Validate(library *Library) []source.SyntaxError {
	var (
		v      = validator{srcmap: library.SourceMap(), library: library}
		errors []source.SyntaxError
	)
	//
	for _, m := range library.Modules() {
		scope := library.Scope(m)
		//
		errors = append(errors, v.validateDeclarations(m)...)
		//
		for _, ev := range m.Evaluators {
			errors = append(errors, v.validateEvaluator(ev, scope)...)
		}
		//
		for _, fn := range m.Functions {
			errors = append(errors, v.validateFunction(fn, scope)...)
		}
	}
	//
	return append(errors, v.validateRoot(library.Root())...)
}

// Context determines where an expression or statement occurs, and hence what it
// is permitted to access.
type context uint8

const (
	boundaryContext context = iota
	integrityContext
	evaluatorContext
	functionContext
)

// LocalScope captures what is visible at a given point within a body.
type localScope struct {
	context context
	scope   *ModuleScope
	// Names bound locally (e.g. by let, comprehensions or parameters).
	locals map[string]bool
	// Indicates a comprehension iterable, whose elements may acquire a
	// boundary through the name they are bound to.
	iterable bool
}

// Construct a nested scope, in which new local names can be bound
// without affecting the enclosing scope.
func (p localScope) nest() localScope {
	locals := make(map[string]bool, len(p.locals))
	//
	for k, v := range p.locals {
		locals[k] = v
	}
	//
	return localScope{p.context, p.scope, locals, false}
}

// Lookup a name which is not locally bound.
func (p localScope) global(name string) (ast.Declaration, bool) {
	if p.locals[name] {
		return nil, false
	}
	//
	binding, ok := p.scope.Lookup(name)
	//
	return binding.Decl, ok
}

type validator struct {
	srcmap  *source.Maps[any]
	library *Library
	// Statement currently being validated, used to report errors on nodes which
	// have no span of their own.
	current any
	// Bus boundaries which have already been set.
	busBoundaries map[busBoundaryKey]bool
}

type busBoundaryKey struct {
	bus      *ast.Bus
	boundary ast.Boundary
}

// ============================================================================
// Declarations
// ============================================================================

func (v *validator) validateDeclarations(m *ast.Module) []source.SyntaxError {
	var errors []source.SyntaxError
	//
	for _, c := range m.Constants {
		if name := c.Name.Name; strings.ToUpper(name) != name {
			errors = append(errors, v.error(c, "constant names must be uppercase"))
		}
	}
	//
	for _, c := range m.PeriodicColumns {
		if n := len(c.Values); n < 2 || bits.OnesCount(uint(n)) != 1 {
			errors = append(errors, v.error(c, "periodic column length must be a power of two >= 2"))
		}
	}
	//
	for _, input := range m.PublicInputs {
		if input.Size == 0 {
			errors = append(errors, v.error(input, "public input size must be positive"))
		}
	}
	//
	return errors
}

// Validate the sections of the root module, which must each be present and
// non-empty.
func (v *validator) validateRoot(root *ast.Module) []source.SyntaxError {
	var (
		errors []source.SyntaxError
		scope  = v.library.Scope(root)
	)
	//
	if root.PublicInputs == nil {
		errors = append(errors, v.error(root, "declaration of public inputs is required"))
	} else if len(root.PublicInputs) == 0 {
		errors = append(errors, v.error(&root.PublicInputs, "empty public_inputs section"))
	}
	//
	if root.Buses != nil && len(root.Buses) == 0 {
		errors = append(errors, v.error(&root.Buses, "empty buses section"))
	}
	//
	v.busBoundaries = make(map[busBoundaryKey]bool)
	//
	errors = append(errors, v.validateSection(root, root.BoundaryConstraints, "boundary_constraints",
		localScope{boundaryContext, scope, make(map[string]bool), false})...)
	errors = append(errors, v.validateSection(root, root.IntegrityConstraints, "integrity_constraints",
		localScope{integrityContext, scope, make(map[string]bool), false})...)
	//
	return errors
}

func (v *validator) validateSection(root *ast.Module, section *ast.Section, name string,
	env localScope) []source.SyntaxError {
	//
	if section == nil {
		return []source.SyntaxError{v.error(root, fmt.Sprintf("declaration of %s is required", name))}
	} else if len(section.Statements) == 0 {
		return []source.SyntaxError{v.error(section, fmt.Sprintf("empty %s section", name))}
	}
	//
	return v.validateStatements(section.Statements, env)
}

func (v *validator) validateEvaluator(ev *ast.Evaluator, scope *ModuleScope) []source.SyntaxError {
	var (
		errors []source.SyntaxError
		env    = localScope{evaluatorContext, scope, make(map[string]bool), false}
	)
	//
	if len(ev.Params) > 1 {
		errors = append(errors, v.error(ev, "evaluator may only bind main trace columns"))
	}
	//
	for _, segment := range ev.Params {
		for _, binding := range segment.Bindings {
			if env.locals[binding.Name.Name] {
				errors = append(errors, v.error(binding, fmt.Sprintf("duplicate parameter %s", binding.Name)))
			}
			//
			env.locals[binding.Name.Name] = true
		}
	}
	//
	return append(errors, v.validateStatements(ev.Body, env)...)
}

func (v *validator) validateFunction(fn *ast.Function, scope *ModuleScope) []source.SyntaxError {
	var (
		errors []source.SyntaxError
		env    = localScope{functionContext, scope, make(map[string]bool), false}
	)
	//
	for _, param := range fn.Params {
		if env.locals[param.Name.Name] {
			errors = append(errors, v.error(fn, fmt.Sprintf("duplicate parameter %s", param.Name)))
		}
		//
		env.locals[param.Name.Name] = true
	}
	//
	for _, let := range fn.Lets {
		errors = append(errors, v.validateExpr(let.Value, env)...)
		env.locals[let.Name.Name] = true
	}
	//
	return append(errors, v.validateExpr(fn.Result, env)...)
}

// ============================================================================
// Statements
// ============================================================================

func (v *validator) validateStatements(stmts []ast.Statement, env localScope) []source.SyntaxError {
	var errors []source.SyntaxError
	//
	env = env.nest()
	//
	for _, stmt := range stmts {
		v.current = stmt
		//
		switch s := stmt.(type) {
		case *ast.Let:
			errors = append(errors, v.validateExpr(s.Value, env)...)
			env.locals[s.Name.Name] = true
		case *ast.Enforce:
			errors = append(errors, v.validateConstraint(s.Constraint, env)...)
		case *ast.EnforceAll:
			nenv, errs := v.validateComprehension(s.Context, env)
			errors = append(errors, errs...)
			//
			if s.Selector != nil {
				errors = append(errors, v.validateExpr(s.Selector, nenv)...)
			}
			//
			errors = append(errors, v.validateConstraint(s.Constraint, nenv)...)
		case *ast.BusEnforce:
			nenv, errs := v.validateComprehension(s.Context, env)
			errors = append(errors, errs...)
			errors = append(errors, v.validateBusEnforce(s, nenv)...)
		default:
			panic(fmt.Sprintf("unknown statement encountered (%T)", stmt))
		}
	}
	//
	return errors
}

func (v *validator) validateConstraint(constraint ast.Constraint, env localScope) []source.SyntaxError {
	switch c := constraint.(type) {
	case *ast.EvaluatorCall:
		return v.validateEvaluatorCall(c, env)
	case *ast.Equality:
		// Check for bus boundary
		if access, ok := c.Lhs.(*ast.SymbolAccess); ok && env.context == boundaryContext {
			if decl, ok := env.global(access.Name.Name); ok {
				if bus, ok := decl.(*ast.Bus); ok {
					return v.validateBusBoundary(c, access, bus, env)
				}
			}
		}
		//
		if isSentinel(c.Lhs) || isSentinel(c.Rhs) {
			return []source.SyntaxError{v.error(c, "invalid constraint")}
		} else if env.context == boundaryContext && !isBoundaryAccess(c.Lhs) {
			return []source.SyntaxError{v.error(c.Lhs, "invalid boundary constraint")}
		}
		//
		errors := v.validateExpr(c.Lhs, env)
		//
		return append(errors, v.validateExpr(c.Rhs, env)...)
	default:
		panic(fmt.Sprintf("unknown constraint encountered (%T)", constraint))
	}
}

// Validate a bus boundary constraint, such as "p.first = null".
func (v *validator) validateBusBoundary(c *ast.Equality, access *ast.SymbolAccess, bus *ast.Bus,
	env localScope) []source.SyntaxError {
	//
	var key = busBoundaryKey{bus, access.Boundary}
	//
	if access.Boundary == ast.NO_BOUNDARY || access.Shift != 0 || len(access.Indices) != 0 || access.Slice != nil {
		return []source.SyntaxError{v.error(access, "invalid bus boundary")}
	} else if v.busBoundaries[key] {
		return []source.SyntaxError{v.error(c, "bus boundary constraint already set")}
	}
	//
	v.busBoundaries[key] = true
	//
	switch rhs := c.Rhs.(type) {
	case *ast.Null, *ast.Unconstrained:
		return nil
	case *ast.SymbolAccess:
		if decl, ok := env.global(rhs.Name.Name); ok && rhs.IsPlain() {
			if input, ok := decl.(*ast.PublicInput); ok && input.Table {
				return nil
			}
		}
	}
	//
	return []source.SyntaxError{v.error(c, "invalid constraint")}
}

func (v *validator) validateBusEnforce(s *ast.BusEnforce, env localScope) []source.SyntaxError {
	var errors []source.SyntaxError
	//
	if env.context != integrityContext && env.context != evaluatorContext {
		return []source.SyntaxError{v.error(s.Operation, "bus operation only permitted in integrity constraints")}
	}
	//
	if decl, ok := env.global(s.Operation.Bus.Name); !ok {
		errors = append(errors, v.error(s.Operation, fmt.Sprintf("unknown bus %s", s.Operation.Bus)))
	} else if bus, ok := decl.(*ast.Bus); !ok {
		errors = append(errors, v.error(s.Operation, fmt.Sprintf("expected bus (found %s)", decl.DeclKind())))
	} else if bus.Kind == ast.MULTISET_BUS && s.Latch == ast.LATCH_WITH {
		errors = append(errors, v.error(s.Operation, "multiplicity not supported by multiset bus"))
	}
	//
	for _, arg := range s.Operation.Args {
		errors = append(errors, v.validateExpr(arg, env)...)
	}
	//
	return append(errors, v.validateExpr(s.Selector, env)...)
}

func (v *validator) validateEvaluatorCall(c *ast.EvaluatorCall, env localScope) []source.SyntaxError {
	var (
		errors []source.SyntaxError
		call   = c.Call
	)
	//
	if env.context != integrityContext && env.context != evaluatorContext {
		return []source.SyntaxError{v.error(call, "evaluator call only permitted in integrity constraints")}
	}
	//
	if decl, ok := env.global(call.Callee.Name); !ok {
		errors = append(errors, v.error(call, fmt.Sprintf("unknown evaluator %s", call.Callee)))
	} else if ev, ok := decl.(*ast.Evaluator); !ok {
		errors = append(errors, v.error(call, fmt.Sprintf("expected evaluator (found %s)", decl.DeclKind())))
	} else if len(ev.Params) != len(call.Args) {
		errors = append(errors, v.error(call, "argument count mismatch"))
	}
	//
	for _, arg := range call.Args {
		errors = append(errors, v.validateExpr(arg, env)...)
	}
	//
	return errors
}

// Validate a comprehension context, returning the localScope in which its
// body is validated.
func (v *validator) validateComprehension(ctx ast.ComprehensionContext,
	env localScope) (localScope, []source.SyntaxError) {
	var (
		errors []source.SyntaxError
		nenv   = env.nest()
	)
	//
	for _, binding := range ctx {
		ienv := env
		ienv.iterable = true
		errors = append(errors, v.validateExpr(binding.Iterable, ienv)...)
		nenv.locals[binding.Name.Name] = true
	}
	//
	return nenv, errors
}

// ============================================================================
// Expressions
// ============================================================================

func (v *validator) validateExpr(expr ast.Expr, env localScope) []source.SyntaxError {
	switch e := expr.(type) {
	case *ast.Constant:
		return nil
	case *ast.SymbolAccess:
		return v.validateSymbolAccess(e, env)
	case *ast.BinOp:
		errors := v.validateExpr(e.Lhs, env)
		errors = append(errors, v.validateExpr(e.Rhs, env)...)
		//
		if e.Kind == ast.EXP && !v.isConstant(e.Rhs, env) {
			errors = append(errors, v.error(e.Rhs, "expected constant exponent"))
		}
		//
		return errors
	case *ast.Call:
		return v.validateCall(e, env)
	case *ast.Vector:
		return v.validateExprs(e.Elements, env)
	case *ast.Range:
		return v.validateExprs([]ast.Expr{e.Start, e.End}, env)
	case *ast.ListComprehension:
		nenv, errors := v.validateComprehension(e.Context, env)
		//
		if e.Selector != nil {
			errors = append(errors, v.validateExpr(e.Selector, nenv)...)
		}
		//
		return append(errors, v.validateExpr(e.Body, nenv)...)
	case *ast.Null, *ast.Unconstrained:
		return []source.SyntaxError{v.error(v.current, "invalid constraint")}
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", expr))
	}
}

func (v *validator) validateExprs(exprs []ast.Expr, env localScope) []source.SyntaxError {
	var errors []source.SyntaxError
	//
	for _, e := range exprs {
		errors = append(errors, v.validateExpr(e, env)...)
	}
	//
	return errors
}

func (v *validator) validateCall(call *ast.Call, env localScope) []source.SyntaxError {
	var (
		name   = call.Callee.Name
		errors = v.validateExprs(call.Args, env)
	)
	//
	decl, ok := env.global(name)
	//
	switch {
	case !ok && (name == BUILTIN_SUM || name == BUILTIN_PROD):
		if len(call.Args) != 1 {
			errors = append(errors, v.error(call, "argument count mismatch"))
		}
	case !ok:
		errors = append(errors, v.error(call, fmt.Sprintf("unknown function %s", name)))
	default:
		if fn, ok := decl.(*ast.Function); !ok {
			errors = append(errors, v.error(call, fmt.Sprintf("expected function (found %s)", decl.DeclKind())))
		} else if len(fn.Params) != len(call.Args) {
			errors = append(errors, v.error(call, "argument count mismatch"))
		}
	}
	//
	return errors
}

func (v *validator) validateSymbolAccess(e *ast.SymbolAccess, env localScope) []source.SyntaxError {
	var errors = v.validateExprs(e.Indices, env)
	//
	if e.Slice != nil {
		errors = append(errors, v.validateExpr(e.Slice, env)...)
	}
	// Boundary accesses only make sense in boundary constraints
	if e.Boundary != ast.NO_BOUNDARY && env.context != boundaryContext {
		return append(errors, v.error(e, "boundary access only permitted in boundary constraints"))
	} else if env.locals[e.Name.Name] {
		// Local accesses are checked during lowering, once their values are
		// known.
		return errors
	}
	//
	decl, ok := env.global(e.Name.Name)
	//
	if !ok {
		return append(errors, v.error(e, fmt.Sprintf("unknown symbol %s", e.Name)))
	}
	//
	switch d := decl.(type) {
	case *ast.TraceBinding:
		errors = append(errors, v.validateTraceAccess(e, d, env)...)
	case *ast.PublicInput:
		errors = append(errors, v.validatePublicInputAccess(e, d, env)...)
	case *ast.PeriodicColumn:
		if env.context == boundaryContext || env.context == functionContext {
			errors = append(errors, v.error(e, "periodic column access only permitted in integrity constraints"))
		} else if e.Shift != 0 {
			errors = append(errors, v.error(e, "invalid next-row access of periodic column"))
		} else if len(e.Indices) != 0 || e.Slice != nil {
			errors = append(errors, v.error(e, "invalid index of periodic column"))
		}
	case *ast.ConstantDecl:
		if e.Shift != 0 || e.Boundary != ast.NO_BOUNDARY {
			errors = append(errors, v.error(e, "invalid access of constant"))
		} else {
			errors = append(errors, v.validateIndices(e, d.Dims)...)
		}
	case *ast.Bus:
		errors = append(errors, v.error(e, "invalid bus access"))
	default:
		errors = append(errors, v.error(e, fmt.Sprintf("expected value (found %s)", decl.DeclKind())))
	}
	//
	return errors
}

func (v *validator) validateTraceAccess(e *ast.SymbolAccess, binding *ast.TraceBinding,
	env localScope) []source.SyntaxError {
	//
	switch {
	case env.context == functionContext:
		return []source.SyntaxError{v.error(e, "trace column access not allowed in function")}
	case env.context == boundaryContext && e.Boundary == ast.NO_BOUNDARY && !env.iterable:
		return []source.SyntaxError{v.error(e, "expected first or last row access")}
	case env.context == boundaryContext && e.Shift != 0:
		return []source.SyntaxError{v.error(e, "next row access not permitted in boundary constraints")}
	case !binding.Vector && (len(e.Indices) != 0 || e.Slice != nil):
		return []source.SyntaxError{v.error(e, "invalid index of scalar column")}
	case binding.Vector:
		return v.validateIndices(e, []uint{binding.Size})
	}
	//
	return nil
}

func (v *validator) validatePublicInputAccess(e *ast.SymbolAccess, input *ast.PublicInput,
	env localScope) []source.SyntaxError {
	//
	switch {
	case env.context != boundaryContext:
		return []source.SyntaxError{v.error(e, "public input access only permitted in boundary constraints")}
	case input.Table:
		return []source.SyntaxError{v.error(e, "invalid access of public input table")}
	case e.Shift != 0 || e.Boundary != ast.NO_BOUNDARY:
		return []source.SyntaxError{v.error(e, "invalid access of public input")}
	}
	//
	return v.validateIndices(e, []uint{input.Size})
}

// Check the indices of an access against the statically known dimensions of
// the symbol being accessed.
func (v *validator) validateIndices(e *ast.SymbolAccess, dims []uint) []source.SyntaxError {
	var nindices = len(e.Indices)
	//
	if e.Slice != nil {
		nindices++
	}
	//
	if nindices > len(dims) {
		return []source.SyntaxError{v.error(e, "too many indices")}
	}
	//
	for i, index := range e.Indices {
		if c, ok := index.(*ast.Constant); ok && c.Value >= uint64(dims[i]) {
			return []source.SyntaxError{v.error(index, "index out of bounds")}
		}
	}
	//
	if e.Slice != nil {
		if c, ok := e.Slice.End.(*ast.Constant); ok && c.Value > uint64(dims[len(e.Indices)]) {
			return []source.SyntaxError{v.error(e.Slice, "index out of bounds")}
		}
	}
	//
	return nil
}

// Determine whether an expression may evaluate to a constant.  Expressions
// involving local names are assumed constant here, and are checked again
// during lowering.
func (v *validator) isConstant(expr ast.Expr, env localScope) bool {
	switch e := expr.(type) {
	case *ast.BinOp:
		return v.isConstant(e.Lhs, env) && v.isConstant(e.Rhs, env)
	case *ast.SymbolAccess:
		if decl, ok := env.global(e.Name.Name); ok {
			_, ok = decl.(*ast.ConstantDecl)
			return ok
		}
	}
	//
	return true
}

// ============================================================================
// Helpers
// ============================================================================

// Construct an error for a given node.  Nodes which are not recorded in the
// source map are reported against the statement being validated.
func (v *validator) error(node any, msg string) source.SyntaxError {
	if !v.srcmap.Has(node) {
		node = v.current
	}
	//
	return *v.srcmap.SyntaxError(node, msg)
}

// Check whether an expression is a sentinel (i.e. null or unconstrained).
func isSentinel(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Null, *ast.Unconstrained:
		return true
	}
	//
	return false
}

// Check whether an expression accesses a boundary row (e.g. "a.first").
func isBoundaryAccess(expr ast.Expr) bool {
	if access, ok := expr.(*ast.SymbolAccess); ok {
		return access.Boundary != ast.NO_BOUNDARY
	}
	//
	return false
}
