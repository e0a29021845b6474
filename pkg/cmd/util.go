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
	"fmt"
	"os"
	"path/filepath"

	"github.com/consensys/go-airscript/pkg/airscript"
	"github.com/consensys/go-airscript/pkg/airscript/compiler"
	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/consensys/go-airscript/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// EXIT_COMPILE_ERROR is the exit code used when compilation fails with one or
// more diagnostics.
const EXIT_COMPILE_ERROR = 4

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string, or panic if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned int, or panic if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string array, or panic if an error arises.
func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Options captures everything determined from the command line (and project
// configuration) before compilation begins.
type Options struct {
	// Search path for imported modules.
	LibraryPaths []string
	// Configuration of the compiler itself.
	Config airscript.CompilationConfig
	// Enables colour diagnostics.
	Colour bool
}

// Loader constructs the module loader for these options.
func (p *Options) Loader() compiler.ModuleLoader {
	return compiler.DirLoader(p.LibraryPaths)
}

// Determine the options for compiling a given module.  Flags take precedence
// over the project configuration, which takes precedence over defaults.  The
// directory of the module itself is always searched first.
func readOptions(cmd *cobra.Command, module string) Options {
	var (
		project *ProjectConfig
		err     error
		options = Options{Config: airscript.DefaultCompilationConfig()}
		colour  = "auto"
	)
	//
	if filename := getString(cmd, "config"); filename != "" {
		project, err = ReadProjectConfig(filename)
	} else {
		project, err = FindProjectConfig(module)
	}
	// Handle error
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	options.LibraryPaths = []string{filepath.Dir(module)}
	//
	if project != nil {
		options.LibraryPaths = append(options.LibraryPaths, project.LibraryPaths...)
		//
		if project.Optimise != nil {
			options.Config.Optimise = *project.Optimise
		}
		//
		if project.Color != "" {
			colour = project.Color
		}
	}
	// Apply flags
	options.LibraryPaths = append(options.LibraryPaths, getStringArray(cmd, "lib-path")...)
	//
	if cmd.Flags().Changed("color") {
		colour = getString(cmd, "color")
	}
	//
	if cmd.Flags().Lookup("no-optimise") != nil && getFlag(cmd, "no-optimise") {
		options.Config.Optimise = false
	}
	//
	switch colour {
	case "always":
		options.Colour = true
	case "never":
		options.Colour = false
	case "auto":
		options.Colour = termio.IsTerminal(os.Stderr)
	default:
		fmt.Printf("invalid colour mode \"%s\"\n", colour)
		os.Exit(2)
	}
	//
	log.Debugf("library search path %v", options.LibraryPaths)
	//
	return options
}

// Read the root module from a given file.
func readSourceFile(filename string) *source.File {
	bytes, err := os.ReadFile(filename)
	// Sanity check for errors
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	return source.NewSourceFile(filename, bytes)
}
