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

	"github.com/consensys/go-airscript/pkg/airscript"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.air",
	Short: "Check an AirScript module for errors.",
	Long: `Parse, resolve and validate an AirScript module (along with any libraries
it imports) without lowering it.  Errors are reported with their source locations.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			options = readOptions(cmd, args[0])
			printer = NewDiagnosticPrinter(os.Stderr, options.Colour)
		)
		//
		if _, err := airscript.Check(readSourceFile(args[0]), options.Loader(), printer); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(EXIT_COMPILE_ERROR)
		}
		//
		fmt.Printf("%s: ok\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
