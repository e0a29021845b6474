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
	"strings"
)

// ModuleKind distinguishes the root module of a program from library modules.
type ModuleKind uint8

// ROOT_MODULE is declared with "def Name" and carries the trace, public inputs
// and constraint sections.
const ROOT_MODULE ModuleKind = 0

// LIBRARY_MODULE is declared with "mod Name" and supplies constants,
// evaluators, functions (and periodic columns) for import.
const LIBRARY_MODULE ModuleKind = 1

// MAIN_SEGMENT is the name of the (only) user-declared trace segment.
const MAIN_SEGMENT = "main"

// Module represents a single parsed source file.  Declarations are retained in
// the order they were written.
type Module struct {
	Name            Identifier
	Kind            ModuleKind
	Imports         []*Import
	Constants       []*ConstantDecl
	TraceColumns    []*TraceSegment
	PublicInputs    []*PublicInput
	PeriodicColumns []*PeriodicColumn
	Buses           []*Bus
	Evaluators      []*Evaluator
	Functions       []*Function
	// Constraint sections, which are nil when the section is absent.
	BoundaryConstraints  *Section
	IntegrityConstraints *Section
}

// NewModule constructs an empty module of a given kind.
func NewModule(name Identifier, kind ModuleKind) *Module {
	return &Module{Name: name, Kind: kind}
}

// IsRoot checks whether this is the root module.
func (m *Module) IsRoot() bool {
	return m.Kind == ROOT_MODULE
}

// Declarations returns every named declaration of this module, in the order
// trace columns, public inputs, periodic columns, buses, constants,
// evaluators and functions.
func (m *Module) Declarations() []Declaration {
	var decls []Declaration
	//
	for _, segment := range m.TraceColumns {
		for _, b := range segment.Bindings {
			decls = append(decls, b)
		}
	}
	//
	for _, d := range m.PublicInputs {
		decls = append(decls, d)
	}
	//
	for _, d := range m.PeriodicColumns {
		decls = append(decls, d)
	}
	//
	for _, d := range m.Buses {
		decls = append(decls, d)
	}
	//
	for _, d := range m.Constants {
		decls = append(decls, d)
	}
	//
	for _, d := range m.Evaluators {
		decls = append(decls, d)
	}
	//
	for _, d := range m.Functions {
		decls = append(decls, d)
	}
	//
	return decls
}

// Exports returns the declarations which other modules may import.
func (m *Module) Exports() []Declaration {
	var decls []Declaration
	//
	for _, d := range m.Constants {
		decls = append(decls, d)
	}
	//
	for _, d := range m.Evaluators {
		decls = append(decls, d)
	}
	//
	for _, d := range m.Functions {
		decls = append(decls, d)
	}
	//
	return decls
}

// MainSegment returns the main trace segment, or nil if none was declared.
func (m *Module) MainSegment() *TraceSegment {
	for _, s := range m.TraceColumns {
		if s.Name.Name == MAIN_SEGMENT {
			return s
		}
	}
	//
	return nil
}

// Declaration represents anything which is declared with a name at the
// top-level of a module.
type Declaration interface {
	// DeclName returns the name of this declaration.
	DeclName() Identifier
	// Kind returns a human-readable description of the declaration kind, used
	// in error messages.
	DeclKind() string
}

// Section represents a boundary_constraints or integrity_constraints block.
type Section struct {
	Statements []Statement
}

// ============================================================================
// Import
// ============================================================================

// Import represents "use M::*" (when Item is nil) or "use M::item".
type Import struct {
	Module Identifier
	Item   *Identifier
}

// IsGlob checks whether this imports every exported name of the module.
func (p *Import) IsGlob() bool {
	return p.Item == nil
}

func (p *Import) String() string {
	if p.Item == nil {
		return fmt.Sprintf("use %s::*", p.Module.Name)
	}
	//
	return fmt.Sprintf("use %s::%s", p.Module.Name, p.Item.Name)
}

// ============================================================================
// Constant
// ============================================================================

// ConstantDecl represents "const NAME = value" where value is a scalar, vector
// or matrix of unsigned integers.  The shape is given by the number of
// dimensions: 0 for scalars, 1 for vectors and 2 for matrices.
type ConstantDecl struct {
	Name Identifier
	// Dimensions of this constant (e.g. [3] for a vector of three elements).
	Dims []uint
	// Values in row-major order.
	Values []uint64
}

// DeclName implementation for Declaration interface.
func (d *ConstantDecl) DeclName() Identifier { return d.Name }

// DeclKind implementation for Declaration interface.
func (d *ConstantDecl) DeclKind() string { return "constant" }

// ============================================================================
// Trace Columns
// ============================================================================

// TraceSegment is an ordered sequence of column bindings.
type TraceSegment struct {
	Name     Identifier
	Bindings []*TraceBinding
}

// Width returns the total number of columns covered by this segment.
func (s *TraceSegment) Width() uint {
	var width uint
	//
	for _, b := range s.Bindings {
		width += b.Size
	}
	//
	return width
}

// TraceBinding binds a name to a contiguous group of one or more columns of a
// trace segment.
type TraceBinding struct {
	Name Identifier
	// Offset of first column within the segment.
	Offset uint
	// Number of columns bound.
	Size uint
	// Indicates whether this was declared as a vector "x[n]" (even if n = 1),
	// or as a single column "x".
	Vector bool
}

// DeclName implementation for Declaration interface.
func (d *TraceBinding) DeclName() Identifier { return d.Name }

// DeclKind implementation for Declaration interface.
func (d *TraceBinding) DeclKind() string { return "trace column" }

// ============================================================================
// Public Inputs
// ============================================================================

// PublicInput represents either a fixed-length vector "x: [n]" or a table
// with n columns "x: [[n]]".
type PublicInput struct {
	Name  Identifier
	Size  uint
	Table bool
}

// DeclName implementation for Declaration interface.
func (d *PublicInput) DeclName() Identifier { return d.Name }

// DeclKind implementation for Declaration interface.
func (d *PublicInput) DeclKind() string { return "public input" }

// ============================================================================
// Periodic Columns
// ============================================================================

// PeriodicColumn represents a cyclic sequence of constant values.
type PeriodicColumn struct {
	Name   Identifier
	Values []uint64
}

// DeclName implementation for Declaration interface.
func (d *PeriodicColumn) DeclName() Identifier { return d.Name }

// DeclKind implementation for Declaration interface.
func (d *PeriodicColumn) DeclKind() string { return "periodic column" }

// ============================================================================
// Buses
// ============================================================================

// BusKind distinguishes the two kinds of bus.
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

// Bus represents a named bus declaration.
type Bus struct {
	Name Identifier
	Kind BusKind
}

// DeclName implementation for Declaration interface.
func (d *Bus) DeclName() Identifier { return d.Name }

// DeclKind implementation for Declaration interface.
func (d *Bus) DeclKind() string { return "bus" }

// ============================================================================
// Evaluators
// ============================================================================

// Evaluator represents "ev name([a, b[2]]) { ... }", a reusable group of
// constraints over a view of the trace.
type Evaluator struct {
	Name   Identifier
	Params []*TraceSegment
	Body   []Statement
}

// DeclName implementation for Declaration interface.
func (d *Evaluator) DeclName() Identifier { return d.Name }

// DeclKind implementation for Declaration interface.
func (d *Evaluator) DeclKind() string { return "evaluator" }

// ============================================================================
// Functions
// ============================================================================

// Type describes the shape of a function parameter or return value: felt,
// felt[n] or felt[n][m].
type Type struct {
	Dims []uint
}

// Felt is the scalar type.
var Felt = Type{nil}

func (t Type) String() string {
	var builder strings.Builder
	//
	builder.WriteString("felt")
	//
	for _, d := range t.Dims {
		builder.WriteString(fmt.Sprintf("[%d]", d))
	}
	//
	return builder.String()
}

// Parameter represents a typed function parameter.
type Parameter struct {
	Name Identifier
	Type Type
}

// Function represents "fn name(a: felt, b: felt[2]) -> felt { ... }".  The body
// consists of zero or more let bindings followed by a single result.
type Function struct {
	Name   Identifier
	Params []Parameter
	Return Type
	Lets   []*Let
	Result Expr
}

// DeclName implementation for Declaration interface.
func (d *Function) DeclName() Identifier { return d.Name }

// DeclKind implementation for Declaration interface.
func (d *Function) DeclKind() string { return "function" }
