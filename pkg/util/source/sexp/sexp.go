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
package sexp

import (
	"fmt"
	"strings"
	"unicode"
)

// SExp is an S-Expression which is either a List of zero or more
// S-Expressions, an Array, or a Symbol.  These are used for printing the
// intermediate representations in a compact, stable textual form.
type SExp interface {
	// AsList checks whether this S-Expression is a list and, if
	// so, returns it.  Otherwise, it returns nil.
	AsList() *List
	// AsSymbol checks whether this S-Expression is a symbol and,
	// if so, returns it.  Otherwise, it returns nil.
	AsSymbol() *Symbol
	// String generates a string representation which may (may not) be quoted.
	// Quoting is used to manage symbol names which contain whitespace
	// characters and braces, etc.
	String(quote bool) string
}

// ===================================================================
// List
// ===================================================================

// List represents a list of zero or more S-Expressions.
type List struct {
	Elements []SExp
}

var _ SExp = (*List)(nil)

// NewList creates a new list from a given array of S-Expressions.
func NewList(elements []SExp) *List {
	return &List{elements}
}

// NewTerm creates a list whose first element is a symbol naming an operator,
// followed by the given arguments.
func NewTerm(operator string, args ...SExp) *List {
	elements := make([]SExp, 0, len(args)+1)
	elements = append(elements, NewSymbol(operator))
	//
	return &List{append(elements, args...)}
}

// AsList returns the given list.
func (l *List) AsList() *List { return l }

// AsSymbol returns nil for a list.
func (l *List) AsSymbol() *Symbol { return nil }

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Get the ith element of this list
func (l *List) Get(i int) SExp { return l.Elements[i] }

// Append a new element onto this list.
func (l *List) Append(element SExp) {
	l.Elements = append(l.Elements, element)
}

func (l *List) String(quote bool) string {
	return joinElements("(", ")", l.Elements, quote)
}

// ===================================================================
// Array
// ===================================================================

// Array represents a list of zero or more S-Expressions, printed with square
// brackets.
type Array struct {
	Elements []SExp
}

var _ SExp = (*Array)(nil)

// NewArray creates a new Array from a given array of S-Expressions.
func NewArray(elements []SExp) *Array {
	return &Array{elements}
}

// AsList returns nil for an Array.
func (a *Array) AsList() *List { return nil }

// AsSymbol returns nil for an Array.
func (a *Array) AsSymbol() *Symbol { return nil }

func (a *Array) String(quote bool) string {
	return joinElements("[", "]", a.Elements, quote)
}

// ===================================================================
// Symbol
// ===================================================================

// Symbol represents a terminating symbol.
type Symbol struct {
	Value string
}

var _ SExp = (*Symbol)(nil)

// NewSymbol creates a new symbol from a given string.
func NewSymbol(value string) *Symbol {
	return &Symbol{value}
}

// NewSymbolf creates a new symbol from a format string.
func NewSymbolf(format string, args ...any) *Symbol {
	return &Symbol{fmt.Sprintf(format, args...)}
}

// AsList returns nil for a symbol.
func (s *Symbol) AsList() *List { return nil }

// AsSymbol returns the given symbol
func (s *Symbol) AsSymbol() *Symbol { return s }

func (s *Symbol) String(quote bool) string {
	if quote && strings.IndexFunc(s.Value, isNotSymbolLetter) >= 0 {
		return fmt.Sprintf("\"%s\"", s.Value)
	}
	// No quote required
	return s.Value
}

func isNotSymbolLetter(r rune) bool {
	return r == '(' || r == ')' || r == '[' || r == ']' || unicode.IsSpace(r)
}

func joinElements(open, close string, elements []SExp, quote bool) string {
	var builder strings.Builder
	//
	builder.WriteString(open)
	//
	for i, e := range elements {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(e.String(quote))
	}
	//
	builder.WriteString(close)
	//
	return builder.String()
}
