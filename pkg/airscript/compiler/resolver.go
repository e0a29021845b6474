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
	"fmt"

	"github.com/consensys/go-airscript/pkg/airscript/ast"
	"github.com/consensys/go-airscript/pkg/airscript/parser"
	"github.com/consensys/go-airscript/pkg/util/source"
	log "github.com/sirupsen/logrus"
)

// Library holds the root module, along with every module reachable from it via
// imports.  Each module has a scope mapping the names visible within it to
// their declarations.
type Library struct {
	// Modules in the order they were loaded, where the root is always first.
	modules []*ast.Module
	// Scope for each module
	scopes map[*ast.Module]*ModuleScope
	// Source maps for every module
	srcmap *source.Maps[any]
}

// Root returns the root module of this library.
func (p *Library) Root() *ast.Module {
	return p.modules[0]
}

// Modules returns all modules in this library, starting with the root.
func (p *Library) Modules() []*ast.Module {
	return p.modules
}

// Scope returns the scope of a given module in this library.
func (p *Library) Scope(module *ast.Module) *ModuleScope {
	return p.scopes[module]
}

// SourceMap returns the source maps covering all modules in this library.
func (p *Library) SourceMap() *source.Maps[any] {
	return p.srcmap
}

// Resolve a given root module into a library.  This loads (and parses) every
// module transitively imported by the root, in breadth-first order, and then
// constructs the scope of each.  Modules are parsed using the given naming
// context, such that synthetic names remain unique across the library.
func Resolve(root *ast.Module, srcmap *source.Map[any], loader ModuleLoader,
	names *ast.NameContext) (*Library, []source.SyntaxError) {
	//
	r := resolver{source.NewSourceMaps[any](), loader, names}
	r.srcmap.Join(srcmap)
	// Load all modules
	modules, errs := r.loadModules(root)
	if len(errs) > 0 {
		return nil, errs
	}
	// Construct scopes
	scopes, errs := r.resolveScopes(modules)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	log.Debugf("resolved %d module(s) from %s", len(modules), root.Name)
	//
	return &Library{modules, scopes, r.srcmap}, nil
}

// Resolver packages up the information needed when resolving a library.
type resolver struct {
	// Source maps for all modules loaded so far.
	srcmap *source.Maps[any]
	// Loader for modules which are imported
	loader ModuleLoader
	// Naming context for the compilation
	names *ast.NameContext
}

// Load all modules reachable from the root, using a breadth-first traversal of
// the import declarations.  Each module is loaded at most once.
func (r *resolver) loadModules(root *ast.Module) ([]*ast.Module, []source.SyntaxError) {
	var (
		modules = []*ast.Module{root}
		loaded  = map[string]*ast.Module{root.Name.Name: root}
	)
	//
	for i := 0; i < len(modules); i++ {
		for _, imp := range modules[i].Imports {
			name := imp.Module.Name
			// Check whether already loaded
			if m, ok := loaded[name]; ok {
				if m.IsRoot() {
					return nil, r.srcmap.SyntaxErrors(imp, "cannot import root module")
				}
				//
				continue
			}
			//
			srcfile, err := r.loader.Load(name)
			if err != nil {
				log.Debugf("failed loading module %s: %s", name, err)
				return nil, r.srcmap.SyntaxErrors(imp, "unknown module")
			}
			//
			module, srcmap, errs := parser.Parse(srcfile, r.names)
			if len(errs) > 0 {
				return nil, errs
			}
			//
			r.srcmap.Join(srcmap)
			//
			if module.IsRoot() {
				return nil, r.srcmap.SyntaxErrors(imp, "cannot import root module")
			} else if module.Name.Name != name {
				return nil, r.srcmap.SyntaxErrors(module, fmt.Sprintf("module name mismatch (expected %s)", name))
			}
			//
			log.Debugf("loaded module %s from %s", name, srcfile.Filename())
			//
			loaded[name] = module
			modules = append(modules, module)
		}
	}
	//
	return modules, nil
}

// Construct the scope of each module.  Local declarations are defined first,
// followed by imported declarations.  Errors are accumulated across all
// modules.
func (r *resolver) resolveScopes(modules []*ast.Module) (map[*ast.Module]*ModuleScope, []source.SyntaxError) {
	var (
		scopes = make(map[*ast.Module]*ModuleScope)
		byName = make(map[string]*ast.Module)
		errors []source.SyntaxError
	)
	//
	for _, m := range modules {
		byName[m.Name.Name] = m
	}
	// Local declarations
	for _, m := range modules {
		scope := NewModuleScope(m)
		//
		for _, decl := range m.Declarations() {
			if existing, ok := scope.Define(decl, m); !ok {
				errors = append(errors, r.clashError(decl, existing, "duplicate declaration"))
			}
		}
		//
		scopes[m] = scope
	}
	// Imported declarations
	for _, m := range modules {
		scope := scopes[m]
		//
		for _, imp := range m.Imports {
			errors = append(errors, r.resolveImport(scope, imp, byName[imp.Module.Name])...)
		}
	}
	//
	return scopes, errors
}

// Resolve a single import declaration into a given scope.
func (r *resolver) resolveImport(scope *ModuleScope, imp *ast.Import, target *ast.Module) []source.SyntaxError {
	var (
		errors  []source.SyntaxError
		exports = target.Exports()
		found   = false
	)
	//
	for _, decl := range exports {
		if !imp.IsGlob() && !decl.DeclName().Equals(*imp.Item) {
			continue
		}
		//
		found = true
		//
		if existing, ok := scope.Define(decl, target); !ok {
			errors = append(errors, r.clashError(imp, existing, "conflicting import"))
		}
	}
	//
	if !found && !imp.IsGlob() {
		errors = append(errors, *r.srcmap.SyntaxError(imp, fmt.Sprintf("unknown import %s", imp.Item.Name)))
	}
	//
	return errors
}

// Construct an error for a node whose name clashes with an existing binding.
// The error is labelled with the location of the existing declaration.
func (r *resolver) clashError(node any, existing Binding, msg string) source.SyntaxError {
	var (
		name = existing.Decl.DeclName().Name
		err  = r.srcmap.SyntaxError(node, fmt.Sprintf("%s %s", msg, name))
	)
	//
	if file, span, ok := r.srcmap.Lookup(existing.Decl); ok {
		err = err.WithLabel(file, span, fmt.Sprintf("%s previously declared here", existing.Decl.DeclKind()))
	}
	//
	return *err
}
