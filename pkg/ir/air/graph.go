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
	"strings"

	"github.com/consensys/go-airscript/pkg/ir/mir"
	"github.com/consensys/go-airscript/pkg/util/source/sexp"
)

// Graph is an append-only arena of nodes, where structurally identical nodes
// are stored only once.  Operands always precede the nodes which use them, and
// hence a graph is acyclic by construction.  Nodes are never modified once
// inserted.
type Graph struct {
	nodes   []Node
	degrees []uint
	index   map[Node]NodeIndex
}

// NewGraph constructs an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[Node]NodeIndex)}
}

// Len returns the number of nodes in this graph.
func (p *Graph) Len() uint {
	return uint(len(p.nodes))
}

// Nodes returns all nodes in this graph in insertion order.
func (p *Graph) Nodes() []Node {
	return p.nodes
}

// Node returns the node at a given index.
func (p *Graph) Node(index NodeIndex) Node {
	return p.nodes[index]
}

// Degree returns the polynomial degree of the node at a given index.
func (p *Graph) Degree(index NodeIndex) uint {
	return p.degrees[index]
}

// Insert a node into this graph, returning the index of the existing node when
// a structurally identical node is already present.
func (p *Graph) Insert(node Node) NodeIndex {
	if index, ok := p.index[node]; ok {
		return index
	}
	//
	for _, operand := range node.Operands() {
		if uint(operand) >= p.Len() {
			panic(fmt.Sprintf("invalid operand %d (graph has %d nodes)", operand, p.Len()))
		}
	}
	//
	index := NodeIndex(len(p.nodes))
	p.nodes = append(p.nodes, node)
	p.degrees = append(p.degrees, p.degreeOf(node))
	p.index[node] = index
	//
	return index
}

// Determine the degree of a node from the degrees of its operands.
func (p *Graph) degreeOf(node Node) uint {
	switch node.Op {
	case CONSTANT:
		return 0
	case TRACE, PERIODIC, PUBLIC_INPUT, RANDOM:
		return 1
	case ADD, SUB:
		return max(p.degrees[node.Lhs], p.degrees[node.Rhs])
	case MUL:
		return p.degrees[node.Lhs] + p.degrees[node.Rhs]
	case EXP:
		return uint(node.Value) * p.degrees[node.Lhs]
	default:
		panic(fmt.Sprintf("unknown operation (%d)", node.Op))
	}
}

// Lisp returns the expression rooted at a given node as an S-expression, using
// a given mapping to name its leaves.  Shared nodes are printed in full at
// every use.
func (p *Graph) Lisp(index NodeIndex, mapping mir.Mapping) sexp.SExp {
	var node = p.nodes[index]
	//
	switch node.Op {
	case CONSTANT:
		return sexp.NewSymbolf("%d", node.Value)
	case TRACE:
		name := mapping.TraceColumnName(node.Segment, node.Column)
		return sexp.NewSymbol(name + strings.Repeat("'", int(node.Shift)))
	case PERIODIC:
		return sexp.NewSymbol(mapping.PeriodicColumnName(node.Column))
	case PUBLIC_INPUT:
		return sexp.NewSymbolf("%s[%d]", mapping.PublicInputName(node.Column), node.Value)
	case RANDOM:
		return sexp.NewSymbolf("$alpha[%d]", node.Value)
	case EXP:
		return sexp.NewTerm(node.Op.String(), p.Lisp(node.Lhs, mapping), sexp.NewSymbolf("%d", node.Value))
	default:
		return sexp.NewTerm(node.Op.String(), p.Lisp(node.Lhs, mapping), p.Lisp(node.Rhs, mapping))
	}
}

// MaxShift returns the largest row shift of any trace access reachable from a
// given node.
func (p *Graph) MaxShift(root NodeIndex) uint {
	var shift uint
	//
	for i, ok := range reachableFrom(p, root) {
		if node := p.nodes[i]; ok && node.Op == TRACE {
			shift = max(shift, node.Shift)
		}
	}
	//
	return shift
}

// MaxSegment returns the largest trace segment accessed by any node reachable
// from a given node.
func (p *Graph) MaxSegment(root NodeIndex) uint {
	var segment uint
	//
	for i, ok := range reachableFrom(p, root) {
		if node := p.nodes[i]; ok && node.Op == TRACE {
			segment = max(segment, node.Segment)
		}
	}
	//
	return segment
}
