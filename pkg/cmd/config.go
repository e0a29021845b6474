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
package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// CONFIG_FILE is the name of the project configuration file searched for
// alongside the module being compiled.
const CONFIG_FILE = "airc.yaml"

// ProjectConfig captures the settings which can be given in a project
// configuration file.  Command-line flags take precedence over these.
type ProjectConfig struct {
	// Directories searched (in order) for imported modules.  Relative paths
	// are relative to the configuration file itself.
	LibraryPaths []string `yaml:"library_paths"`
	// Enables folding of constants when building the constraint graph.
	Optimise *bool `yaml:"optimise"`
	// Colour mode for diagnostics (auto, always or never).
	Color string `yaml:"color"`
}

// ReadProjectConfig reads a project configuration file.  Relative library
// paths are resolved against the directory containing the file.
func ReadProjectConfig(filename string) (*ProjectConfig, error) {
	var config ProjectConfig
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed reading configuration %s", filename)
	}
	//
	if err = yaml.Unmarshal(bytes, &config); err != nil {
		return nil, errors.Wrapf(err, "malformed configuration %s", filename)
	}
	//
	switch config.Color {
	case "", "auto", "always", "never":
	default:
		return nil, errors.Errorf("invalid colour mode \"%s\" in %s", config.Color, filename)
	}
	//
	dir := filepath.Dir(filename)
	//
	for i, path := range config.LibraryPaths {
		if !filepath.IsAbs(path) {
			config.LibraryPaths[i] = filepath.Join(dir, path)
		}
	}
	//
	log.Debugf("read configuration %s", filename)
	//
	return &config, nil
}

// FindProjectConfig looks for a project configuration file in the directory of
// a given module, returning nil if there is none.
func FindProjectConfig(module string) (*ProjectConfig, error) {
	filename := filepath.Join(filepath.Dir(module), CONFIG_FILE)
	//
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, nil
	}
	//
	return ReadProjectConfig(filename)
}
