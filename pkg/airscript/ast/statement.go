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
	"github.com/consensys/go-airscript/pkg/util/source/sexp"
)

// Statement represents a statement in a constraint section or evaluator body.
// The set of statements is closed: Let, Enforce, EnforceAll and BusEnforce.
type Statement interface {
	Lisp() sexp.SExp
	isStatement()
}

// Constraint is the body of an enforce statement, which is either an
// equality or an evaluator call.
type Constraint interface {
	Lisp() sexp.SExp
	isConstraint()
}

// Equality represents a constraint "lhs = rhs".
type Equality struct {
	Lhs Expr
	Rhs Expr
}

// Lisp implementation for the Constraint interface.
func (c *Equality) Lisp() sexp.SExp {
	return sexp.NewTerm("=", c.Lhs.Lisp(), c.Rhs.Lisp())
}

func (c *Equality) isConstraint() {}

// EvaluatorCall represents a constraint which invokes an evaluator.
type EvaluatorCall struct {
	Call *Call
}

// Lisp implementation for the Constraint interface.
func (c *EvaluatorCall) Lisp() sexp.SExp {
	return c.Call.Lisp()
}

func (c *EvaluatorCall) isConstraint() {}

// ============================================================================
// Let
// ============================================================================

// Let binds a name to the value of an expression for all following statements
// in the enclosing block.
type Let struct {
	Name  Identifier
	Value Expr
}

// Lisp implementation for the Statement interface.
func (s *Let) Lisp() sexp.SExp {
	return sexp.NewTerm("let", sexp.NewSymbol(s.Name.Name), s.Value.Lisp())
}

func (s *Let) isStatement() {}

// ============================================================================
// Enforce
// ============================================================================

// Enforce is a plain constraint without selector or comprehension.
type Enforce struct {
	Constraint Constraint
}

// Lisp implementation for the Statement interface.
func (s *Enforce) Lisp() sexp.SExp {
	return sexp.NewTerm("enf", s.Constraint.Lisp())
}

func (s *Enforce) isStatement() {}

// ============================================================================
// EnforceAll
// ============================================================================

// EnforceAll enforces a constraint once for every iteration of a
// comprehension context, optionally multiplied by a selector.  Constraints
// with a "when" selector, and match arms, are rewritten into this form over a
// single-iteration synthetic context.
type EnforceAll struct {
	Constraint Constraint
	Context    ComprehensionContext
	Selector   Expr
}

// Lisp implementation for the Statement interface.
func (s *EnforceAll) Lisp() sexp.SExp {
	list := sexp.NewTerm("enf", s.Constraint.Lisp(), sexp.NewTerm("for", s.Context.Lisp()))
	//
	if s.Selector != nil {
		list.Append(sexp.NewTerm("when", s.Selector.Lisp()))
	}
	//
	return list
}

func (s *EnforceAll) isStatement() {}

// ============================================================================
// BusEnforce
// ============================================================================

// BusOpKind distinguishes insertions from removals.
type BusOpKind uint8

// BUS_INSERT represents "p.insert(..)"
const BUS_INSERT BusOpKind = 0

// BUS_REMOVE represents "p.remove(..)"
const BUS_REMOVE BusOpKind = 1

func (k BusOpKind) String() string {
	if k == BUS_INSERT {
		return "insert"
	}
	//
	return "remove"
}

// LatchKind distinguishes a "when" selector from a "with" multiplicity.
type LatchKind uint8

// LATCH_WHEN represents a binary selector "when s"
const LATCH_WHEN LatchKind = 0

// LATCH_WITH represents a multiplicity "with m"
const LATCH_WITH LatchKind = 1

// BusOperation represents an insertion or removal of a tuple into a bus.
type BusOperation struct {
	Bus  Identifier
	Kind BusOpKind
	Args []Expr
}

// Lisp returns an S-expression representation of this operation.
func (p *BusOperation) Lisp() sexp.SExp {
	return sexp.NewTerm(p.Bus.Name+"."+p.Kind.String(), lispAll(p.Args)...)
}

// BusEnforce applies a bus operation once for every iteration of a
// comprehension context, latched by a selector or multiplicity.
type BusEnforce struct {
	Operation *BusOperation
	Context   ComprehensionContext
	Latch     LatchKind
	Selector  Expr
}

// Lisp implementation for the Statement interface.
func (s *BusEnforce) Lisp() sexp.SExp {
	var latch = "when"
	//
	if s.Latch == LATCH_WITH {
		latch = "with"
	}
	//
	return sexp.NewTerm("bus", s.Operation.Lisp(), sexp.NewTerm("for", s.Context.Lisp()),
		sexp.NewTerm(latch, s.Selector.Lisp()))
}

func (s *BusEnforce) isStatement() {}
