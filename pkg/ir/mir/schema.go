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
package mir

import (
	"fmt"

	"github.com/consensys/go-airscript/pkg/util/field"
	"github.com/consensys/go-airscript/pkg/util/source/sexp"
)

// Schema captures the result of lowering a root module and its imported
// libraries.  The schema consists of the trace layout, the declarations
// visible to code generators, and two flat lists of scalar constraints.
type Schema struct {
	// Trace segments, where segment 0 is the main segment and segment 1 (if
	// present) holds one accumulator column per bus.
	TraceSegments []TraceSegment
	// Public inputs in declaration order.
	PublicInputs []PublicInput
	// Periodic columns in declaration order (including those of libraries).
	PeriodicColumns []PeriodicColumn
	// Buses in declaration order.
	Buses []Bus
	// Constraints which hold on the first or last row.
	Boundary []Constraint
	// Constraints which hold on every row.
	Integrity []Constraint
	// Number of random values required to combine bus tuples.
	NumRandomValues uint
}

var _ Mapping = (*Schema)(nil)

// TraceColumnName implementation for Mapping interface.
func (p *Schema) TraceColumnName(segment uint, column uint) string {
	return p.TraceSegments[segment].Columns[column]
}

// PeriodicColumnName implementation for Mapping interface.
func (p *Schema) PeriodicColumnName(column uint) string {
	return p.PeriodicColumns[column].Name
}

// PublicInputName implementation for Mapping interface.
func (p *Schema) PublicInputName(input uint) string {
	return p.PublicInputs[input].Name
}

// Lisp returns an S-expression representation of the constraints in this
// schema, primarily for debugging.
func (p *Schema) Lisp() sexp.SExp {
	var list = sexp.NewList(nil)
	//
	for _, c := range p.Boundary {
		list.Append(c.Lisp(p))
	}
	//
	for _, c := range p.Integrity {
		list.Append(c.Lisp(p))
	}
	//
	return list
}

// TraceSegment represents a group of trace columns.
type TraceSegment struct {
	Name string
	// Names of the columns in this segment.  Columns bound as vectors are
	// named by index, as in "c[1]".
	Columns []string
}

// Width returns the number of columns in this segment.
func (p *TraceSegment) Width() uint {
	return uint(len(p.Columns))
}

// PublicInput is either a fixed-size vector, or a table with a fixed number
// of columns.
type PublicInput struct {
	Name  string
	Size  uint
	Table bool
}

// PeriodicColumn is a cyclic sequence of constant values whose length is a
// power of two.
type PeriodicColumn struct {
	Name   string
	Values []field.Element
}

// Period returns the length of the cycle.
func (p *PeriodicColumn) Period() uint {
	return uint(len(p.Values))
}

// BusKind determines the identity used to check a bus.
type BusKind uint8

// MULTISET_BUS is checked by a running product.
const MULTISET_BUS BusKind = 0

// LOGUP_BUS is checked by a running sum of inverses.
const LOGUP_BUS BusKind = 1

func (k BusKind) String() string {
	if k == MULTISET_BUS {
		return "multiset"
	}
	//
	return "logup"
}

// BoundaryKind determines what (if anything) a bus is bound to at the first
// or last row.
type BoundaryKind uint8

// UNCONSTRAINED_BOUNDARY indicates nothing is known about the bus.
const UNCONSTRAINED_BOUNDARY BoundaryKind = 0

// NULL_BOUNDARY indicates the bus is empty.
const NULL_BOUNDARY BoundaryKind = 1

// TABLE_BOUNDARY indicates the bus holds the contents of a public input table.
const TABLE_BOUNDARY BoundaryKind = 2

// BusBoundary records how a bus is bound at the first or last row.
type BusBoundary struct {
	Kind BoundaryKind
	// Index of public input table (for TABLE_BOUNDARY only).
	Table uint
}

// Bus represents a declared bus along with its accumulator column.
type Bus struct {
	Name string
	Kind BusKind
	// Column of the accumulator within the auxiliary segment.
	Column uint
	// Binding of the bus on the first row.
	First BusBoundary
	// Binding of the bus on the last row.
	Last BusBoundary
}

// Accumulator returns an access to the accumulator column of this bus, at the
// given row shift.
func (p *Bus) Accumulator(shift uint) *TraceAccess {
	return &TraceAccess{AUX_SEGMENT, p.Column, shift}
}

func (p *Bus) String() string {
	return fmt.Sprintf("%s %s", p.Kind, p.Name)
}
