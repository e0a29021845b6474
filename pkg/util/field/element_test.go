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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElement_Arithmetic(t *testing.T) {
	a, b := Uint64(7), Uint64(5)
	//
	assert.Equal(t, uint64(12), a.Add(b).Uint64())
	assert.Equal(t, uint64(2), a.Sub(b).Uint64())
	assert.Equal(t, uint64(35), a.Mul(b).Uint64())
	assert.Equal(t, uint64(343), a.Pow(3).Uint64())
	assert.Equal(t, uint64(1), a.Pow(0).Uint64())
}

func TestElement_Wraparound(t *testing.T) {
	// 0 - 1 is the largest element of the field
	assert.Equal(t, MODULUS-1, Zero().Sub(One()).Uint64())
	assert.True(t, Uint64(MODULUS).Equals(Zero()))
	assert.True(t, One().Neg().Add(One()).IsZero())
}

func TestElement_Identities(t *testing.T) {
	// Checked directly on temporaries
	assert.True(t, Zero().IsZero())
	assert.False(t, One().IsZero())
	assert.True(t, One().IsOne())
	assert.True(t, Uint64(MODULUS+1).IsOne())
	assert.False(t, Uint64(2).Sub(Uint64(2)).IsOne())
	assert.True(t, Uint64(7).Pow(0).IsOne())
}
