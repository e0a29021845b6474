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
	"os"
	"path/filepath"

	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/pkg/errors"
)

// MODULE_EXTENSION is the file extension of AirScript modules.
const MODULE_EXTENSION = ".air"

// ModuleLoader supplies the source of library modules by name, as they are
// encountered in import declarations.
type ModuleLoader interface {
	// Load the source file for a given module, or return an error if no such
	// module exists.
	Load(name string) (*source.File, error)
}

// MapLoader is a module loader backed by an in-memory map from module names to
// source files.
type MapLoader map[string]*source.File

// Load implementation for ModuleLoader interface.
func (p MapLoader) Load(name string) (*source.File, error) {
	if srcfile, ok := p[name]; ok {
		return srcfile, nil
	}
	//
	return nil, errors.Errorf("module %s not found", name)
}

// DirLoader is a module loader which searches a list of directories (in order)
// for a file named after the module, such as "foo.air" for module foo.
type DirLoader []string

// Load implementation for ModuleLoader interface.
func (p DirLoader) Load(name string) (*source.File, error) {
	for _, dir := range p {
		filename := filepath.Join(dir, name+MODULE_EXTENSION)
		//
		bytes, err := os.ReadFile(filename)
		if os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, errors.Wrapf(err, "failed reading module %s", name)
		}
		//
		return source.NewSourceFile(filename, bytes), nil
	}
	//
	return nil, errors.Errorf("module %s not found in %v", name, []string(p))
}
