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
package air

import (
	"fmt"

	"github.com/consensys/go-airscript/pkg/ir/mir"
	"github.com/consensys/go-airscript/pkg/util/field"
)

// Builder inserts nodes into a graph, optionally folding constant operands and
// applying algebraic identities as it goes.
type Builder struct {
	graph *Graph
	// Enables folding
	optimise bool
	// Nodes already constructed for a given MIR expression.
	cache map[mir.Expr]NodeIndex
}

// NewBuilder constructs a builder for a given graph.
func NewBuilder(graph *Graph, optimise bool) *Builder {
	return &Builder{graph, optimise, make(map[mir.Expr]NodeIndex)}
}

// Graph returns the graph being built.
func (p *Builder) Graph() *Graph {
	return p.graph
}

// Constant inserts a constant node.
func (p *Builder) Constant(value field.Element) NodeIndex {
	return p.graph.Insert(Node{Op: CONSTANT, Value: value.Uint64()})
}

// Trace inserts an access of a given trace column.
func (p *Builder) Trace(segment uint, column uint, shift uint) NodeIndex {
	return p.graph.Insert(Node{Op: TRACE, Segment: segment, Column: column, Shift: shift})
}

// Periodic inserts an access of a given periodic column.
func (p *Builder) Periodic(column uint) NodeIndex {
	return p.graph.Insert(Node{Op: PERIODIC, Column: column})
}

// PublicInput inserts an access of a given element of a public input.
func (p *Builder) PublicInput(input uint, index uint) NodeIndex {
	return p.graph.Insert(Node{Op: PUBLIC_INPUT, Column: input, Value: uint64(index)})
}

// Random inserts a random value.
func (p *Builder) Random(index uint) NodeIndex {
	return p.graph.Insert(Node{Op: RANDOM, Value: uint64(index)})
}

// Add inserts the sum of two nodes.
func (p *Builder) Add(lhs NodeIndex, rhs NodeIndex) NodeIndex {
	if p.optimise {
		l, lok := p.constant(lhs)
		r, rok := p.constant(rhs)
		//
		switch {
		case lok && rok:
			return p.Constant(l.Add(r))
		case lok && l.IsZero():
			return rhs
		case rok && r.IsZero():
			return lhs
		}
	}
	//
	return p.graph.Insert(Node{Op: ADD, Lhs: lhs, Rhs: rhs})
}

// Sub inserts the difference of two nodes.
func (p *Builder) Sub(lhs NodeIndex, rhs NodeIndex) NodeIndex {
	if p.optimise {
		l, lok := p.constant(lhs)
		r, rok := p.constant(rhs)
		//
		switch {
		case lok && rok:
			return p.Constant(l.Sub(r))
		case rok && r.IsZero():
			return lhs
		}
	}
	//
	return p.graph.Insert(Node{Op: SUB, Lhs: lhs, Rhs: rhs})
}

// Mul inserts the product of two nodes.
func (p *Builder) Mul(lhs NodeIndex, rhs NodeIndex) NodeIndex {
	if p.optimise {
		l, lok := p.constant(lhs)
		r, rok := p.constant(rhs)
		//
		switch {
		case lok && rok:
			return p.Constant(l.Mul(r))
		case (lok && l.IsZero()) || (rok && r.IsZero()):
			return p.Constant(field.Zero())
		case lok && l.IsOne():
			return rhs
		case rok && r.IsOne():
			return lhs
		}
	}
	//
	return p.graph.Insert(Node{Op: MUL, Lhs: lhs, Rhs: rhs})
}

// Exp inserts a node raised to a constant power.
func (p *Builder) Exp(base NodeIndex, power uint64) NodeIndex {
	if p.optimise {
		b, ok := p.constant(base)
		//
		switch {
		case ok:
			return p.Constant(b.Pow(power))
		case power == 0:
			return p.Constant(field.One())
		case power == 1:
			return base
		}
	}
	//
	return p.graph.Insert(Node{Op: EXP, Lhs: base, Value: power})
}

// Expr inserts the nodes of a given MIR expression, returning the node
// representing its root.  Expressions which have been inserted before are
// not traversed again.
func (p *Builder) Expr(expr mir.Expr) NodeIndex {
	if index, ok := p.cache[expr]; ok {
		return index
	}
	//
	var index NodeIndex
	//
	switch e := expr.(type) {
	case *mir.Constant:
		index = p.Constant(e.Value)
	case *mir.TraceAccess:
		index = p.Trace(e.Segment, e.Column, e.Shift)
	case *mir.PeriodicAccess:
		index = p.Periodic(e.Column)
	case *mir.PublicInputAccess:
		index = p.PublicInput(e.Input, e.Index)
	case *mir.RandomValue:
		index = p.Random(e.Index)
	case *mir.Add:
		index = p.Add(p.Expr(e.Lhs), p.Expr(e.Rhs))
	case *mir.Sub:
		index = p.Sub(p.Expr(e.Lhs), p.Expr(e.Rhs))
	case *mir.Mul:
		index = p.Mul(p.Expr(e.Lhs), p.Expr(e.Rhs))
	case *mir.Exp:
		index = p.Exp(p.Expr(e.Base), e.Power)
	default:
		panic(fmt.Sprintf("unknown expression encountered (%T)", expr))
	}
	//
	p.cache[expr] = index
	//
	return index
}

func (p *Builder) constant(index NodeIndex) (field.Element, bool) {
	if node := p.graph.Node(index); node.Op == CONSTANT {
		return field.Uint64(node.Value), true
	}
	//
	return field.Zero(), false
}
