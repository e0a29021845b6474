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
	"github.com/consensys/go-airscript/pkg/airscript/ast"
	"github.com/consensys/go-airscript/pkg/ir/mir"
	"github.com/consensys/go-airscript/pkg/util/source"
)

// BusOp represents a single (expanded) insertion into, or removal from, a bus.
type busOp struct {
	kind ast.BusOpKind
	// Elements of the tuple being inserted or removed.
	args []mir.Expr
	// Selector (for "when") or multiplicity (for "with"), including any
	// enclosing selectors.
	latch mir.Expr
}

// Check whether an equality binds a bus on its first or last row (e.g.
// "p.first = null").
func (t *translator) isBusBoundary(c *ast.Equality, env environment) (*ast.Bus, *ast.SymbolAccess, bool) {
	access, ok := c.Lhs.(*ast.SymbolAccess)
	//
	if !ok || !t.boundary {
		return nil, nil, false
	} else if _, ok := env.locals[access.Name.Name]; ok {
		return nil, nil, false
	}
	//
	if binding, ok := env.scope.Lookup(access.Name.Name); ok {
		bus, ok := binding.Decl.(*ast.Bus)
		return bus, access, ok
	}
	//
	return nil, nil, false
}

// Translate the binding of a bus on its first or last row.  An empty bus pins
// the accumulator to the multiplicative identity, whilst a public input table
// is recorded against the bus for use by backends.
func (t *translator) translateBusBoundary(c *ast.Equality, bus *ast.Bus, access *ast.SymbolAccess,
	env environment) []source.SyntaxError {
	//
	var (
		index    = t.buses[bus]
		info     = &t.schema.Buses[index]
		binding  = &info.First
		boundary = mir.FIRST_ROW
	)
	//
	if access.Boundary == ast.LAST_ROW {
		binding, boundary = &info.Last, mir.LAST_ROW
	}
	//
	switch rhs := c.Rhs.(type) {
	case *ast.Null:
		binding.Kind = mir.NULL_BOUNDARY
		t.emit(info.Accumulator(0), mir.NewConstant(1), boundary)
	case *ast.Unconstrained:
		binding.Kind = mir.UNCONSTRAINED_BOUNDARY
	case *ast.SymbolAccess:
		if b, ok := env.scope.Lookup(rhs.Name.Name); ok {
			if input, ok := b.Decl.(*ast.PublicInput); ok && input.Table {
				binding.Kind, binding.Table = mir.TABLE_BOUNDARY, t.inputs[input]
				return nil
			}
		}
		//
		return t.error(c, "invalid constraint")
	default:
		return t.error(c, "invalid constraint")
	}
	//
	return nil
}

// Translate a single iteration of a bus operation, recording it against the
// bus for later expansion.
func (t *translator) translateBusEnforce(s *ast.BusEnforce, env environment) []source.SyntaxError {
	var (
		op         = s.Operation
		binding, _ = env.scope.Lookup(op.Bus.Name)
		index      = t.buses[binding.Decl.(*ast.Bus)]
		args       []mir.Expr
	)
	//
	for _, arg := range op.Args {
		value, errs := t.translateExpr(arg, env)
		if len(errs) > 0 {
			return errs
		}
		//
		args = append(args, value.Flatten()...)
	}
	//
	if len(args) == 0 {
		return t.error(op, "invalid bus operation (no elements)")
	}
	//
	latch, errs := t.translateScalar(s.Selector, env)
	if len(errs) > 0 {
		return errs
	}
	//
	if len(t.selectors) > 0 {
		latch = &mir.Mul{Lhs: latch, Rhs: mir.Product(t.selectors...)}
	}
	//
	t.busOps[index] = append(t.busOps[index], busOp{op.Kind, args, latch})
	//
	return nil
}

// Expand the operations recorded against each bus into an integrity
// constraint over its accumulator column.  Every bus receives a constraint,
// even when it has no operations.
func (t *translator) translateBuses() {
	for i := range t.schema.Buses {
		var (
			bus  = &t.schema.Buses[i]
			ops  = t.busOps[i]
			expr mir.Expr
		)
		//
		for _, op := range ops {
			t.schema.NumRandomValues = max(t.schema.NumRandomValues, uint(len(op.args)+1))
		}
		//
		if bus.Kind == mir.MULTISET_BUS {
			expr = multisetIdentity(bus, ops)
		} else {
			expr = logupIdentity(bus, ops)
		}
		//
		t.schema.Integrity = append(t.schema.Integrity, mir.Constraint{Expr: expr, Boundary: mir.NO_BOUNDARY})
	}
}

// Construct the identity p·Π_ins f − p'·Π_rem f for a multiset bus, where each
// operation contributes a factor f = v·s + (1 − s) for its combined tuple v and
// selector s.
func multisetIdentity(bus *mir.Bus, ops []busOp) mir.Expr {
	var inserted, removed []mir.Expr
	//
	for _, op := range ops {
		factor := &mir.Add{
			Lhs: &mir.Mul{Lhs: combine(op.args), Rhs: op.latch},
			Rhs: &mir.Sub{Lhs: mir.NewConstant(1), Rhs: op.latch},
		}
		//
		if op.kind == ast.BUS_INSERT {
			inserted = append(inserted, factor)
		} else {
			removed = append(removed, factor)
		}
	}
	//
	return &mir.Sub{
		Lhs: scaled(inserted, bus.Accumulator(0)),
		Rhs: scaled(removed, bus.Accumulator(1)),
	}
}

// Construct the identity (Π·p + Σ_ins m_i·Π/v_i) − (Π·p' + Σ_rem m_i·Π/v_i) for
// a LogUp bus, where Π is the product of the combined tuples v_i of all
// operations, and m_i is the multiplicity of each.
func logupIdentity(bus *mir.Bus, ops []busOp) mir.Expr {
	var (
		factors  = make([]mir.Expr, len(ops))
		inserted []mir.Expr
		removed  []mir.Expr
	)
	//
	for i, op := range ops {
		factors[i] = combine(op.args)
	}
	//
	for i, op := range ops {
		var others []mir.Expr
		//
		others = append(others, factors[:i]...)
		others = append(others, factors[i+1:]...)
		term := scaled(others, op.latch)
		//
		if op.kind == ast.BUS_INSERT {
			inserted = append(inserted, term)
		} else {
			removed = append(removed, term)
		}
	}
	//
	lhs := scaled(factors, bus.Accumulator(0))
	rhs := scaled(factors, bus.Accumulator(1))
	//
	if len(inserted) > 0 {
		lhs = &mir.Add{Lhs: lhs, Rhs: mir.Sum(inserted...)}
	}
	//
	if len(removed) > 0 {
		rhs = &mir.Add{Lhs: rhs, Rhs: mir.Sum(removed...)}
	}
	//
	return &mir.Sub{Lhs: lhs, Rhs: rhs}
}

// Combine the elements of a tuple using random values, as α0 + Σ α(j+1)·e_j.
func combine(args []mir.Expr) mir.Expr {
	var terms = []mir.Expr{&mir.RandomValue{Index: 0}}
	//
	for j, arg := range args {
		terms = append(terms, &mir.Mul{Lhs: arg, Rhs: &mir.RandomValue{Index: uint(j + 1)}})
	}
	//
	return mir.Sum(terms...)
}

// Multiply a given expression by the product of zero or more factors.
func scaled(factors []mir.Expr, expr mir.Expr) mir.Expr {
	if len(factors) == 0 {
		return expr
	}
	//
	return &mir.Mul{Lhs: mir.Product(factors...), Rhs: expr}
}
