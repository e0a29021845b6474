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

import "fmt"

// NodeIndex identifies a node within a graph.
type NodeIndex uint

// Op identifies the kind of a node.
type Op uint8

// CONSTANT is a field element held in Value.
const CONSTANT Op = 0

// TRACE is an access of a trace column in a given segment, at a given row
// offset.
const TRACE Op = 1

// PERIODIC is an access of a periodic column.
const PERIODIC Op = 2

// PUBLIC_INPUT is an access of a public input element, where Column identifies
// the input and Value the element.
const PUBLIC_INPUT Op = 3

// RANDOM is a verifier-supplied random value, where Value identifies the
// index.
const RANDOM Op = 4

// ADD is the sum of two nodes.
const ADD Op = 5

// SUB is the difference of two nodes.
const SUB Op = 6

// MUL is the product of two nodes.
const MUL Op = 7

// EXP raises a node (Lhs) to a constant power (Value).
const EXP Op = 8

func (op Op) String() string {
	switch op {
	case CONSTANT:
		return "const"
	case TRACE:
		return "trace"
	case PERIODIC:
		return "periodic"
	case PUBLIC_INPUT:
		return "input"
	case RANDOM:
		return "random"
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case EXP:
		return "^"
	default:
		panic(fmt.Sprintf("unknown operation (%d)", op))
	}
}

// Node is a single vertex of a graph.  Nodes are comparable and two nodes are
// structurally identical precisely when they are equal.  Fields not relevant
// to a given operation are always zero.
type Node struct {
	Op Op
	// Operands (for ADD, SUB, MUL and EXP)
	Lhs NodeIndex
	Rhs NodeIndex
	// Constant value, exponent, element or index (depending on Op)
	Value uint64
	// Trace segment (for TRACE)
	Segment uint
	// Column (for TRACE, PERIODIC and PUBLIC_INPUT)
	Column uint
	// Row offset (for TRACE)
	Shift uint
}

// IsLeaf checks whether this node has no operands.
func (p Node) IsLeaf() bool {
	return p.Op < ADD
}

// Operands returns the operands of this node.
func (p Node) Operands() []NodeIndex {
	switch p.Op {
	case ADD, SUB, MUL:
		return []NodeIndex{p.Lhs, p.Rhs}
	case EXP:
		return []NodeIndex{p.Lhs}
	default:
		return nil
	}
}
