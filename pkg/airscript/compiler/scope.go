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
package compiler

import (
	"github.com/consensys/go-airscript/pkg/airscript/ast"
)

// Binding associates a visible name with its declaration, and the module in
// which it was declared.  The declaring module determines the scope in which
// the body of an imported evaluator or function is resolved.
type Binding struct {
	Decl   ast.Declaration
	Module *ast.Module
}

// ModuleScope maps the names visible within a module to their declarations.
// This includes both local declarations and imported declarations.
type ModuleScope struct {
	module   *ast.Module
	bindings map[string]Binding
}

// NewModuleScope constructs an empty scope for a given module.
func NewModuleScope(module *ast.Module) *ModuleScope {
	return &ModuleScope{module, make(map[string]Binding)}
}

// Module returns the module to which this scope belongs.
func (p *ModuleScope) Module() *ast.Module {
	return p.module
}

// Lookup a given name in this scope.
func (p *ModuleScope) Lookup(name string) (Binding, bool) {
	binding, ok := p.bindings[name]
	return binding, ok
}

// Define a given declaration, originating from a given module, in this scope.
// If a different declaration with the same name already exists, then this
// fails and returns the existing binding.
func (p *ModuleScope) Define(decl ast.Declaration, module *ast.Module) (Binding, bool) {
	name := decl.DeclName().Name
	//
	if existing, ok := p.bindings[name]; ok && existing.Decl != decl {
		return existing, false
	}
	//
	p.bindings[name] = Binding{decl, module}
	//
	return p.bindings[name], true
}
