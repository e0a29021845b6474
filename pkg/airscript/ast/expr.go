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
package ast

import (
	"fmt"

	"github.com/consensys/go-airscript/pkg/util/source/sexp"
)

// Expr represents an arbitrary expression in the surface language.  The set of
// expression forms is closed: every pass switches over the concrete types
// below, and panics upon encountering anything else.
type Expr interface {
	// Lisp converts this expression into an S-expression, primarily for
	// debugging and testing.
	Lisp() sexp.SExp
	isExpr()
}

// Boundary identifies which row of a trace a boundary access refers to.
type Boundary uint8

// NO_BOUNDARY indicates a plain (integrity) access.
const NO_BOUNDARY Boundary = 0

// FIRST_ROW indicates an access of the form "x.first"
const FIRST_ROW Boundary = 1

// LAST_ROW indicates an access of the form "x.last"
const LAST_ROW Boundary = 2

func (b Boundary) String() string {
	switch b {
	case FIRST_ROW:
		return "first"
	case LAST_ROW:
		return "last"
	default:
		return ""
	}
}

// BinOpKind identifies the operator of a binary expression.
type BinOpKind uint8

// ADD represents "x + y"
const ADD BinOpKind = 0

// SUB represents "x - y"
const SUB BinOpKind = 1

// MUL represents "x * y"
const MUL BinOpKind = 2

// EXP represents "x ^ y"
const EXP BinOpKind = 3

func (k BinOpKind) String() string {
	switch k {
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case EXP:
		return "^"
	}
	//
	panic("unknown binary operator")
}

// ============================================================================
// Constant
// ============================================================================

// Constant represents an integer literal.
type Constant struct {
	Value uint64
}

// Lisp implementation for the Expr interface.
func (e *Constant) Lisp() sexp.SExp { return sexp.NewSymbolf("%d", e.Value) }

func (e *Constant) isExpr() {}

// ============================================================================
// SymbolAccess
// ============================================================================

// SymbolAccess represents an access to some named item (e.g. a trace column,
// constant, let-bound variable, etc).  An access may additionally index into
// the item (e.g. "x[1]" or "m[1][2]"), slice it ("x[1..3]"), shift it to the
// next row ("x'") or bound it to the first or last row ("x.first").
type SymbolAccess struct {
	Name Identifier
	// Zero or more indices, applied in order.
	Indices []Expr
	// Slice (if any), applied after indices.
	Slice *Range
	// Row offset (0 for current row, 1 for next row).
	Shift uint
	// Boundary (if any).
	Boundary Boundary
}

// IsPlain checks whether this access is a plain access of a name (i.e. without
// indexing, shifting, etc).
func (e *SymbolAccess) IsPlain() bool {
	return len(e.Indices) == 0 && e.Slice == nil && e.Shift == 0 && e.Boundary == NO_BOUNDARY
}

// Lisp implementation for the Expr interface.
func (e *SymbolAccess) Lisp() sexp.SExp {
	var str = e.Name.Name
	//
	for _, index := range e.Indices {
		str = fmt.Sprintf("%s[%s]", str, index.Lisp().String(false))
	}
	//
	if e.Slice != nil {
		str = fmt.Sprintf("%s[%s..%s]", str, e.Slice.Start.Lisp().String(false), e.Slice.End.Lisp().String(false))
	}
	//
	for i := uint(0); i < e.Shift; i++ {
		str = str + "'"
	}
	//
	if e.Boundary != NO_BOUNDARY {
		str = fmt.Sprintf("%s.%s", str, e.Boundary.String())
	}
	//
	return sexp.NewSymbol(str)
}

func (e *SymbolAccess) isExpr() {}

// ============================================================================
// BinOp
// ============================================================================

// BinOp represents a binary arithmetic operation.  Logical operators are
// rewritten into arithmetic operations by the parser.
type BinOp struct {
	Kind BinOpKind
	Lhs  Expr
	Rhs  Expr
}

// Lisp implementation for the Expr interface.
func (e *BinOp) Lisp() sexp.SExp {
	return sexp.NewTerm(e.Kind.String(), e.Lhs.Lisp(), e.Rhs.Lisp())
}

func (e *BinOp) isExpr() {}

// ============================================================================
// Call
// ============================================================================

// Call represents an invocation of a function, evaluator or builtin (sum or
// prod).  Which is determined during resolution.
type Call struct {
	Callee Identifier
	Args   []Expr
}

// Lisp implementation for the Expr interface.
func (e *Call) Lisp() sexp.SExp {
	return sexp.NewTerm(e.Callee.Name, lispAll(e.Args)...)
}

func (e *Call) isExpr() {}

// ============================================================================
// Vector
// ============================================================================

// Vector represents a vector literal "[e1, .., en]".  A matrix is simply a
// vector of vectors.
type Vector struct {
	Elements []Expr
}

// Lisp implementation for the Expr interface.
func (e *Vector) Lisp() sexp.SExp {
	return sexp.NewArray(lispAll(e.Elements))
}

func (e *Vector) isExpr() {}

// ============================================================================
// Range
// ============================================================================

// Range represents a half-open range "start..end" of integers.
type Range struct {
	Start Expr
	End   Expr
}

// Lisp implementation for the Expr interface.
func (e *Range) Lisp() sexp.SExp {
	return sexp.NewTerm("..", e.Start.Lisp(), e.End.Lisp())
}

func (e *Range) isExpr() {}

// ============================================================================
// ListComprehension
// ============================================================================

// ListComprehension represents an expression "[body for x in xs]" which
// produces a vector with one element per iteration.  Iterations for which the
// optional selector evaluates to zero are multiplied out.
type ListComprehension struct {
	Body     Expr
	Context  ComprehensionContext
	Selector Expr
}

// Lisp implementation for the Expr interface.
func (e *ListComprehension) Lisp() sexp.SExp {
	list := sexp.NewTerm("for", e.Context.Lisp(), e.Body.Lisp())
	//
	if e.Selector != nil {
		list.Append(sexp.NewTerm("when", e.Selector.Lisp()))
	}
	//
	return list
}

func (e *ListComprehension) isExpr() {}

// ============================================================================
// Null / Unconstrained
// ============================================================================

// Null is the bus emptiness marker, valid only on the right-hand side of a
// bus boundary constraint.
type Null struct{}

// Lisp implementation for the Expr interface.
func (e *Null) Lisp() sexp.SExp { return sexp.NewSymbol("null") }

func (e *Null) isExpr() {}

// Unconstrained indicates that a bus boundary is left unconstrained.
type Unconstrained struct{}

// Lisp implementation for the Expr interface.
func (e *Unconstrained) Lisp() sexp.SExp { return sexp.NewSymbol("unconstrained") }

func (e *Unconstrained) isExpr() {}

// ============================================================================
// Comprehension Context
// ============================================================================

// Binding binds a name to successive elements of an iterable.
type Binding struct {
	Name     Identifier
	Iterable Expr
}

// ComprehensionContext is an ordered list of bindings which are iterated in
// lock step.  The number of names always matches the number of iterables.
type ComprehensionContext []Binding

// Lisp returns an S-expression representation of this context.
func (c ComprehensionContext) Lisp() sexp.SExp {
	var elements = make([]sexp.SExp, len(c))
	//
	for i, b := range c {
		elements[i] = sexp.NewList([]sexp.SExp{sexp.NewSymbol(b.Name.Name), b.Iterable.Lisp()})
	}
	//
	return sexp.NewArray(elements)
}

func lispAll(exprs []Expr) []sexp.SExp {
	var elements = make([]sexp.SExp, len(exprs))
	//
	for i, e := range exprs {
		elements[i] = e.Lisp()
	}
	//
	return elements
}
