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

	"github.com/consensys/go-airscript/pkg/util/source"
)

// SYNTHETIC_PREFIX marks compiler-generated names.  Since '$' cannot appear in
// a source identifier, synthetic names never clash with user names.
const SYNTHETIC_PREFIX = "$"

// Identifier is a name tagged with the span where it was written.  Identifiers
// are compared by name only.
type Identifier struct {
	Name string
	Span source.Span
}

// NewIdentifier constructs a new identifier.
func NewIdentifier(name string, span source.Span) Identifier {
	return Identifier{name, span}
}

// Equals checks whether two identifiers have the same name, regardless of
// where they were written.
func (p Identifier) Equals(other Identifier) bool {
	return p.Name == other.Name
}

// IsSynthetic checks whether this identifier was generated by the compiler.
func (p Identifier) IsSynthetic() bool {
	return strings.HasPrefix(p.Name, SYNTHETIC_PREFIX)
}

func (p Identifier) String() string {
	return p.Name
}

// NameContext generates hygienic names for a single compilation.  The
// counter is monotonically increasing, hence every generated name is unique
// within the compilation which owns the context.  A context is not safe for
// concurrent use, and must not be shared between compilations.
type NameContext struct {
	next uint
}

// NewNameContext constructs a fresh naming context.
func NewNameContext() *NameContext {
	return &NameContext{0}
}

// Fresh generates a new synthetic identifier with a given prefix, attributed
// to a given span.
func (p *NameContext) Fresh(prefix string, span source.Span) Identifier {
	name := fmt.Sprintf("%s%s%d", SYNTHETIC_PREFIX, prefix, p.next)
	p.next++
	//
	return Identifier{name, span}
}

// Count returns the number of names generated so far.
func (p *NameContext) Count() uint {
	return p.next
}
