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
	"github.com/consensys/go-airscript/pkg/util/source"
)

// Translate an expression into a value.
func (t *translator) translateExpr(expr ast.Expr, env environment) (Value, []source.SyntaxError) {
	switch e := expr.(type) {
	case *ast.Constant:
		return ScalarValue(mir.NewConstant(e.Value)), nil
	case *ast.SymbolAccess:
		return t.translateSymbolAccess(e, env)
	case *ast.BinOp:
		return t.translateBinOp(e, env)
	case *ast.Call:
		return t.translateCall(e, env)
	case *ast.Vector:
		elements, errs := t.translateExprs(e.Elements, env)
		return VectorValue(elements...), errs
	case *ast.Range:
		return t.translateRange(e, env)
	case *ast.ListComprehension:
		return t.translateListComprehension(e, env)
	case *ast.Null, *ast.Unconstrained:
		return Value{}, t.error(t.stmt, "invalid constraint")
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", expr))
	}
}

func (t *translator) translateExprs(exprs []ast.Expr, env environment) ([]Value, []source.SyntaxError) {
	var values = make([]Value, len(exprs))
	//
	for i, e := range exprs {
		var errs []source.SyntaxError
		//
		if values[i], errs = t.translateExpr(e, env); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return values, nil
}

// Translate an expression which is expected to produce a scalar.
func (t *translator) translateScalar(expr ast.Expr, env environment) (mir.Expr, []source.SyntaxError) {
	value, errs := t.translateExpr(expr, env)
	//
	if len(errs) > 0 {
		return nil, errs
	} else if !value.IsScalar() {
		return nil, t.error(expr, "expected scalar")
	}
	//
	return value.Scalar(), nil
}

// Translate an expression which is expected to produce a constant, such as an
// index or exponent.
func (t *translator) translateConstant(expr ast.Expr, env environment, what string) (uint64, []source.SyntaxError) {
	value, errs := t.translateScalar(expr, env)
	//
	if len(errs) > 0 {
		return 0, errs
	} else if c, ok := mir.ConstantOf(value); ok {
		return c.Uint64(), nil
	}
	//
	return 0, t.error(expr, fmt.Sprintf("expected constant %s", what))
}

func (t *translator) translateBinOp(e *ast.BinOp, env environment) (Value, []source.SyntaxError) {
	lhs, errs := t.translateScalar(e.Lhs, env)
	if len(errs) > 0 {
		return Value{}, errs
	}
	//
	if e.Kind == ast.EXP {
		power, errs := t.translateConstant(e.Rhs, env, "exponent")
		return ScalarValue(&mir.Exp{Base: lhs, Power: power}), errs
	}
	//
	rhs, errs := t.translateScalar(e.Rhs, env)
	if len(errs) > 0 {
		return Value{}, errs
	}
	//
	switch e.Kind {
	case ast.ADD:
		return ScalarValue(&mir.Add{Lhs: lhs, Rhs: rhs}), nil
	case ast.SUB:
		return ScalarValue(&mir.Sub{Lhs: lhs, Rhs: rhs}), nil
	case ast.MUL:
		return ScalarValue(&mir.Mul{Lhs: lhs, Rhs: rhs}), nil
	default:
		panic(fmt.Sprintf("unknown binary operator encountered (%s)", e.Kind))
	}
}

func (t *translator) translateRange(e *ast.Range, env environment) (Value, []source.SyntaxError) {
	start, errs := t.translateConstant(e.Start, env, "range bound")
	if len(errs) > 0 {
		return Value{}, errs
	}
	//
	end, errs := t.translateConstant(e.End, env, "range bound")
	//
	if len(errs) > 0 {
		return Value{}, errs
	} else if end < start {
		return Value{}, t.error(e, "invalid range")
	}
	//
	elements := make([]Value, 0, end-start)
	//
	for i := start; i < end; i++ {
		elements = append(elements, ScalarValue(mir.NewConstant(i)))
	}
	//
	return VectorValue(elements...), nil
}

// Translate a list comprehension into a vector with one element per iteration.
// Where a selector is given, each element is multiplied by it.
func (t *translator) translateListComprehension(e *ast.ListComprehension,
	env environment) (Value, []source.SyntaxError) {
	//
	var elements []Value
	//
	errs := t.translateComprehension(e, e.Context, env, func(env environment) []source.SyntaxError {
		body, errs := t.translateExpr(e.Body, env)
		//
		if len(errs) == 0 && e.Selector != nil {
			var selector mir.Expr
			//
			if selector, errs = t.translateScalar(e.Selector, env); len(errs) == 0 {
				body = body.Map(func(expr mir.Expr) mir.Expr {
					return &mir.Mul{Lhs: expr, Rhs: selector}
				})
			}
		}
		//
		elements = append(elements, body)
		//
		return errs
	})
	//
	return VectorValue(elements...), errs
}

func (t *translator) translateCall(call *ast.Call, env environment) (Value, []source.SyntaxError) {
	binding, ok := env.scope.Lookup(call.Callee.Name)
	//
	if ok {
		if fn, ok := binding.Decl.(*ast.Function); ok {
			return t.translateFunctionCall(call, fn, binding, env)
		}
		//
		return Value{}, t.error(call, "evaluator cannot be used as a value")
	}
	// Builtins
	arg, errs := t.translateExpr(call.Args[0], env)
	//
	if len(errs) > 0 {
		return Value{}, errs
	} else if arg.IsScalar() {
		return Value{}, t.error(call.Args[0], "expected vector")
	}
	//
	terms := make([]mir.Expr, arg.Len())
	//
	for i := range terms {
		element := arg.Element(uint(i))
		//
		if !element.IsScalar() {
			return Value{}, t.error(call.Args[0], "expected vector of scalars")
		}
		//
		terms[i] = element.Scalar()
	}
	//
	switch call.Callee.Name {
	case BUILTIN_SUM:
		return ScalarValue(mir.Sum(terms...)), nil
	case BUILTIN_PROD:
		return ScalarValue(mir.Product(terms...)), nil
	default:
		panic(fmt.Sprintf("unknown builtin encountered (%s)", call.Callee))
	}
}

// ============================================================================
// Symbol Access
// ============================================================================

func (t *translator) translateSymbolAccess(e *ast.SymbolAccess, env environment) (Value, []source.SyntaxError) {
	value, errs := t.resolveSymbol(e, env)
	if len(errs) > 0 {
		return Value{}, errs
	}
	// Apply indices
	for _, index := range e.Indices {
		var i uint64
		//
		if i, errs = t.translateConstant(index, env, "index"); len(errs) > 0 {
			return Value{}, errs
		} else if value.IsScalar() {
			return Value{}, t.error(e, "too many indices")
		} else if i >= uint64(value.Len()) {
			return Value{}, t.error(index, "index out of bounds")
		}
		//
		value = value.Element(uint(i))
	}
	// Apply slice
	if e.Slice != nil {
		var start, end uint64
		//
		if value.IsScalar() {
			return Value{}, t.error(e, "too many indices")
		} else if start, errs = t.translateConstant(e.Slice.Start, env, "index"); len(errs) > 0 {
			return Value{}, errs
		} else if end, errs = t.translateConstant(e.Slice.End, env, "index"); len(errs) > 0 {
			return Value{}, errs
		} else if end < start || end > uint64(value.Len()) {
			return Value{}, t.error(e.Slice, "index out of bounds")
		}
		//
		value = value.Slice(uint(start), uint(end))
	}
	// Apply shift
	if e.Shift > 0 {
		if value.Any(func(expr mir.Expr) bool { return mir.Contains(expr, mir.IsPeriodic) }) {
			return Value{}, t.error(e, "invalid next-row access of periodic column")
		}
		//
		value = value.Map(func(expr mir.Expr) mir.Expr { return expr.ApplyShift(e.Shift) })
	}
	// Record boundary
	if e.Boundary != ast.NO_BOUNDARY {
		boundary := mir.FIRST_ROW
		//
		if e.Boundary == ast.LAST_ROW {
			boundary = mir.LAST_ROW
		}
		//
		if t.current != mir.NO_BOUNDARY && t.current != boundary {
			return Value{}, t.error(e, "conflicting boundaries in boundary constraint")
		}
		//
		t.current = boundary
	}
	//
	return value, nil
}

// Resolve the value of a symbol, before any indices, slices, shifts or
// boundaries are applied.
func (t *translator) resolveSymbol(e *ast.SymbolAccess, env environment) (Value, []source.SyntaxError) {
	if hygienic, ok := env.locals[e.Name.Name]; ok {
		return t.bindings[hygienic], nil
	}
	//
	binding, ok := env.scope.Lookup(e.Name.Name)
	//
	if !ok {
		return Value{}, t.error(e, fmt.Sprintf("unknown symbol %s", e.Name))
	}
	//
	switch d := binding.Decl.(type) {
	case *ast.TraceBinding:
		if !d.Vector {
			return ScalarValue(&mir.TraceAccess{Segment: mir.MAIN_SEGMENT, Column: d.Offset}), nil
		}
		//
		elements := make([]Value, d.Size)
		//
		for i := range elements {
			elements[i] = ScalarValue(&mir.TraceAccess{Segment: mir.MAIN_SEGMENT, Column: d.Offset + uint(i)})
		}
		//
		return VectorValue(elements...), nil
	case *ast.PublicInput:
		elements := make([]Value, d.Size)
		//
		for i := range elements {
			elements[i] = ScalarValue(&mir.PublicInputAccess{Input: t.inputs[d], Index: uint(i)})
		}
		//
		return VectorValue(elements...), nil
	case *ast.PeriodicColumn:
		return ScalarValue(&mir.PeriodicAccess{Column: t.periodic[d]}), nil
	case *ast.ConstantDecl:
		return constantValue(d.Dims, d.Values), nil
	default:
		return Value{}, t.error(e, fmt.Sprintf("expected value (found %s)", binding.Decl.DeclKind()))
	}
}

// Construct the value of a constant declaration from its dimensions and its
// values (given in row-major order).
func constantValue(dims []uint, values []uint64) Value {
	if len(dims) == 0 {
		return ScalarValue(mir.NewConstant(values[0]))
	}
	//
	var (
		elements = make([]Value, dims[0])
		stride   = uint(len(values)) / dims[0]
	)
	//
	for i := range elements {
		offset := uint(i) * stride
		elements[i] = constantValue(dims[1:], values[offset:offset+stride])
	}
	//
	return VectorValue(elements...)
}
