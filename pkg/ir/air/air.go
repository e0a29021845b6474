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
	"github.com/consensys/go-airscript/pkg/util/source/sexp"
)

// DomainKind identifies the set of rows over which a constraint is enforced.
type DomainKind uint8

// FIRST_ROW_DOMAIN holds on the first row only.
const FIRST_ROW_DOMAIN DomainKind = 0

// LAST_ROW_DOMAIN holds on the last row only.
const LAST_ROW_DOMAIN DomainKind = 1

// EVERY_ROW_DOMAIN holds on every row, accessing only that row.
const EVERY_ROW_DOMAIN DomainKind = 2

// EVERY_FRAME_DOMAIN holds on every window of consecutive rows.
const EVERY_FRAME_DOMAIN DomainKind = 3

// Domain determines where a constraint is enforced.  For EVERY_FRAME_DOMAIN,
// Size gives the number of consecutive rows in each frame (i.e. one more than
// the largest row shift), otherwise it is 1.
type Domain struct {
	Kind DomainKind
	Size uint
}

// FirstRow constructs the domain of first row boundary constraints.
func FirstRow() Domain { return Domain{FIRST_ROW_DOMAIN, 1} }

// LastRow constructs the domain of last row boundary constraints.
func LastRow() Domain { return Domain{LAST_ROW_DOMAIN, 1} }

// EveryRow constructs the domain of constraints not accessing other rows.
func EveryRow() Domain { return Domain{EVERY_ROW_DOMAIN, 1} }

// EveryFrame constructs the domain of constraints spanning n rows.
func EveryFrame(n uint) Domain {
	if n <= 1 {
		return EveryRow()
	}
	//
	return Domain{EVERY_FRAME_DOMAIN, n}
}

func (d Domain) String() string {
	switch d.Kind {
	case FIRST_ROW_DOMAIN:
		return "first"
	case LAST_ROW_DOMAIN:
		return "last"
	case EVERY_ROW_DOMAIN:
		return "every"
	default:
		return fmt.Sprintf("frame:%d", d.Size)
	}
}

// Constraint identifies the residual node of an identity "root = 0", along
// with the largest trace segment it accesses and where it is enforced.
type Constraint struct {
	Root    NodeIndex
	Segment uint
	Domain  Domain
}

// Air is the final, read-only result of compilation: a single graph shared by
// all constraints, along with the declarations needed by code generators.
type Air struct {
	graph           *Graph
	boundary        []Constraint
	integrity       []Constraint
	segments        []mir.TraceSegment
	publicInputs    []mir.PublicInput
	periodicColumns []mir.PeriodicColumn
	buses           []mir.Bus
	numRandomValues uint
}

var _ mir.Mapping = (*Air)(nil)

// Build constructs the constraint graph for a given schema.  Exponents are
// always eliminated, whilst optimise enables folding of constants and trivial
// identities.
func Build(schema *mir.Schema, optimise bool) *Air {
	var (
		builder = NewBuilder(NewGraph(), optimise)
		roots   []NodeIndex
	)
	//
	for _, c := range schema.Boundary {
		roots = append(roots, builder.Expr(c.Expr))
	}
	//
	for _, c := range schema.Integrity {
		roots = append(roots, builder.Expr(c.Expr))
	}
	//
	graph, roots := EliminateExponents(builder.Graph(), roots, optimise)
	//
	air := &Air{
		graph:           graph,
		segments:        schema.TraceSegments,
		publicInputs:    schema.PublicInputs,
		periodicColumns: schema.PeriodicColumns,
		buses:           schema.Buses,
		numRandomValues: schema.NumRandomValues,
	}
	//
	for i, c := range schema.Boundary {
		domain := FirstRow()
		//
		if c.Boundary == mir.LAST_ROW {
			domain = LastRow()
		}
		//
		air.boundary = append(air.boundary, Constraint{roots[i], graph.MaxSegment(roots[i]), domain})
	}
	//
	for i := range schema.Integrity {
		root := roots[len(schema.Boundary)+i]
		domain := EveryFrame(graph.MaxShift(root) + 1)
		air.integrity = append(air.integrity, Constraint{root, graph.MaxSegment(root), domain})
	}
	//
	return air
}

// Graph returns the graph shared by all constraints.
func (p *Air) Graph() *Graph {
	return p.graph
}

// BoundaryConstraints returns the boundary constraints in declaration order.
func (p *Air) BoundaryConstraints() []Constraint {
	return p.boundary
}

// IntegrityConstraints returns the integrity constraints in declaration order,
// followed by those arising from buses.
func (p *Air) IntegrityConstraints() []Constraint {
	return p.integrity
}

// PublicInputs returns the declared public inputs.
func (p *Air) PublicInputs() []mir.PublicInput {
	return p.publicInputs
}

// PeriodicColumns returns the declared periodic columns.
func (p *Air) PeriodicColumns() []mir.PeriodicColumn {
	return p.periodicColumns
}

// Buses returns the declared buses.
func (p *Air) Buses() []mir.Bus {
	return p.buses
}

// TraceSegmentWidths returns the number of columns in each trace segment.
func (p *Air) TraceSegmentWidths() []uint {
	var widths = make([]uint, len(p.segments))
	//
	for i := range p.segments {
		widths[i] = p.segments[i].Width()
	}
	//
	return widths
}

// NumRandomValues returns the number of random values required by buses.
func (p *Air) NumRandomValues() uint {
	return p.numRandomValues
}

// TraceColumnName implementation for Mapping interface.
func (p *Air) TraceColumnName(segment uint, column uint) string {
	return p.segments[segment].Columns[column]
}

// PeriodicColumnName implementation for Mapping interface.
func (p *Air) PeriodicColumnName(column uint) string {
	return p.periodicColumns[column].Name
}

// PublicInputName implementation for Mapping interface.
func (p *Air) PublicInputName(input uint) string {
	return p.publicInputs[input].Name
}

// Lisp returns an S-expression representation of every constraint, where each
// is printed as "(domain expr)".
func (p *Air) Lisp() sexp.SExp {
	var list = sexp.NewList(nil)
	//
	for _, c := range p.boundary {
		list.Append(p.ConstraintLisp(c))
	}
	//
	for _, c := range p.integrity {
		list.Append(p.ConstraintLisp(c))
	}
	//
	return list
}

// ConstraintLisp returns an S-expression representation of a given
// constraint.
func (p *Air) ConstraintLisp(c Constraint) sexp.SExp {
	return sexp.NewTerm(c.Domain.String(), p.graph.Lisp(c.Root, p))
}
