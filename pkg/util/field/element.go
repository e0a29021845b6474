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
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// MODULUS is the modulus of the Goldilocks field (2^64 - 2^32 + 1) in which
// AirScript constants are interpreted.
const MODULUS uint64 = 0xFFFFFFFF00000001

// Element wraps a Goldilocks field element so that it can be used as a value
// (rather than via pointers).  Elements are used for folding constant
// subexpressions during lowering.
type Element struct {
	goldilocks.Element
}

// Uint64 constructs a field element from a given uint64.  Values beyond the
// modulus are reduced.
func Uint64(val uint64) Element {
	if val >= MODULUS {
		val -= MODULUS
	}
	//
	return Element{goldilocks.NewElement(val)}
}

// Zero constructs a field element representing 0
func Zero() Element {
	return Element{}
}

// One constructs a field element representing 1
func One() Element {
	return Uint64(1)
}

// IsZero checks whether this element is 0.
func (x Element) IsZero() bool {
	return x.Element.IsZero()
}

// IsOne checks whether this element is 1.
func (x Element) IsOne() bool {
	return x.Element.IsOne()
}

// Add x + y
func (x Element) Add(y Element) Element {
	var res goldilocks.Element
	//
	res.Add(&x.Element, &y.Element)
	//
	return Element{res}
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	var res goldilocks.Element
	//
	res.Sub(&x.Element, &y.Element)
	//
	return Element{res}
}

// Mul x * y
func (x Element) Mul(y Element) Element {
	var res goldilocks.Element
	//
	res.Mul(&x.Element, &y.Element)
	//
	return Element{res}
}

// Neg -x
func (x Element) Neg() Element {
	var res goldilocks.Element
	//
	res.Neg(&x.Element)
	//
	return Element{res}
}

// Pow x^n
func (x Element) Pow(n uint64) Element {
	var (
		res goldilocks.Element
		k   big.Int
	)
	//
	res.Exp(x.Element, k.SetUint64(n))
	//
	return Element{res}
}

// Equals checks whether two elements are equal.
func (x Element) Equals(y Element) bool {
	return x.Element.Equal(&y.Element)
}

// Uint64 returns the canonical representation of this element.
func (x Element) Uint64() uint64 {
	return x.Element.Uint64()
}

// String returns the decimal representation of this element.
func (x Element) String() string {
	return x.Element.String()
}
