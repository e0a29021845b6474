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
	"github.com/consensys/go-airscript/pkg/util/field"
)

// ConstantOf attempts to evaluate a given expression to a constant.  This
// succeeds only when the expression is built entirely from constants.
func ConstantOf(expr Expr) (field.Element, bool) {
	switch e := expr.(type) {
	case *Constant:
		return e.Value, true
	case *Add:
		return foldBinary(e.Lhs, e.Rhs, field.Element.Add)
	case *Sub:
		return foldBinary(e.Lhs, e.Rhs, field.Element.Sub)
	case *Mul:
		return foldBinary(e.Lhs, e.Rhs, field.Element.Mul)
	case *Exp:
		if base, ok := ConstantOf(e.Base); ok {
			return base.Pow(e.Power), true
		}
	}
	//
	return field.Zero(), false
}

func foldBinary(lhs Expr, rhs Expr, fn func(field.Element, field.Element) field.Element) (field.Element, bool) {
	l, lok := ConstantOf(lhs)
	r, rok := ConstantOf(rhs)
	//
	if lok && rok {
		return fn(l, r), true
	}
	//
	return field.Zero(), false
}
