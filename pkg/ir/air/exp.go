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

// EliminateExponents rebuilds the nodes of a graph reachable from a given set
// of roots into a fresh graph, replacing every EXP node with a chain of MUL
// nodes computed by repeated squaring.  Intermediate powers of the same base
// are shared, such that b^6 reuses the chain for b^3 (and b^2).  Nodes are
// rebuilt in arena order, hence insertion order is preserved.  This returns
// the new graph along with the corresponding roots.
func EliminateExponents(graph *Graph, roots []NodeIndex, optimise bool) (*Graph, []NodeIndex) {
	var (
		reachable = reachableFrom(graph, roots...)
		builder   = NewBuilder(NewGraph(), optimise)
		powers    = newPowerCache(builder)
		remap     = make([]NodeIndex, graph.Len())
		nroots    = make([]NodeIndex, len(roots))
	)
	//
	for i, node := range graph.Nodes() {
		if !reachable[i] {
			continue
		}
		//
		switch node.Op {
		case CONSTANT, TRACE, PERIODIC, PUBLIC_INPUT, RANDOM:
			remap[i] = builder.Graph().Insert(node)
		case ADD:
			remap[i] = builder.Add(remap[node.Lhs], remap[node.Rhs])
		case SUB:
			remap[i] = builder.Sub(remap[node.Lhs], remap[node.Rhs])
		case MUL:
			remap[i] = builder.Mul(remap[node.Lhs], remap[node.Rhs])
		case EXP:
			remap[i] = powers.get(remap[node.Lhs], node.Value)
		}
	}
	//
	for i, root := range roots {
		nroots[i] = remap[root]
	}
	//
	return builder.Graph(), nroots
}

type powerKey struct {
	base  NodeIndex
	power uint64
}

// powerCache records the node computing each power of a given base.
type powerCache struct {
	builder *Builder
	powers  map[powerKey]NodeIndex
}

func newPowerCache(builder *Builder) *powerCache {
	return &powerCache{builder, make(map[powerKey]NodeIndex)}
}

func (p *powerCache) get(base NodeIndex, power uint64) NodeIndex {
	var key = powerKey{base, power}
	//
	if index, ok := p.powers[key]; ok {
		return index
	}
	//
	var index NodeIndex
	//
	switch {
	case power == 0:
		index = p.builder.Graph().Insert(Node{Op: CONSTANT, Value: 1})
	case power == 1:
		index = base
	case power%2 == 0:
		half := p.get(base, power/2)
		index = p.builder.Mul(half, half)
	default:
		index = p.builder.Mul(p.get(base, power-1), base)
	}
	//
	p.powers[key] = index
	//
	return index
}

// Determine which nodes are reachable from a given set of roots.
func reachableFrom(graph *Graph, roots ...NodeIndex) []bool {
	var (
		reachable = make([]bool, graph.Len())
		worklist  = append([]NodeIndex(nil), roots...)
	)
	//
	for len(worklist) > 0 {
		n := len(worklist) - 1
		index := worklist[n]
		worklist = worklist[:n]
		//
		if !reachable[index] {
			reachable[index] = true
			worklist = append(worklist, graph.Node(index).Operands()...)
		}
	}
	//
	return reachable
}
