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
	"io"
	"os"
	"strings"

	"github.com/consensys/go-airscript/pkg/airscript"
	"github.com/consensys/go-airscript/pkg/ir/air"
	"github.com/consensys/go-airscript/pkg/ir/mir"
	"github.com/consensys/go-airscript/pkg/util/source/sexp"
	"github.com/consensys/go-airscript/pkg/util/termio"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] file.air",
	Short: "Compile an AirScript module into a constraint graph.",
	Long: `Compile an AirScript module (along with any libraries it imports) into a
graph of polynomial constraints, printing the constraints as S-expressions.
Compilation can be stopped early using --stage, which is useful for inspecting
the flattened constraints before the graph is built.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			width   = getUint(cmd, "width")
			options = readOptions(cmd, args[0])
			printer = NewDiagnosticPrinter(os.Stderr, options.Colour)
			srcfile = readSourceFile(args[0])
			err     error
		)
		//
		switch stage := getString(cmd, "stage"); stage {
		case "mir":
			var schema *mir.Schema
			//
			if schema, err = airscript.Lower(srcfile, options.Loader(), printer); err == nil {
				writeSchema(os.Stdout, schema, width)
			}
		case "air":
			var result *air.Air
			//
			if result, err = airscript.Compile(srcfile, options.Loader(), printer, options.Config); err == nil {
				writeAir(os.Stdout, result, getFlag(cmd, "nodes"), options.Colour, width)
			}
		default:
			fmt.Printf("unknown stage \"%s\" (expected mir or air)\n", stage)
			os.Exit(2)
		}
		//
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(EXIT_COMPILE_ERROR)
		}
	},
}

// Write the flattened constraints of a schema, one per line unless a width is
// given.
func writeSchema(w io.Writer, schema *mir.Schema, width uint) {
	formatter := newFormatter(width)
	//
	for _, c := range schema.Boundary {
		writeLisp(w, c.Lisp(schema), formatter)
	}
	//
	for _, c := range schema.Integrity {
		writeLisp(w, c.Lisp(schema), formatter)
	}
}

// Write the constraints of a graph, one per line, optionally preceded by a
// table of every node in the graph.
func writeAir(w io.Writer, result *air.Air, nodes bool, colour bool, width uint) {
	formatter := newFormatter(width)
	//
	if nodes {
		writeNodes(w, result, colour)
	}
	//
	for _, c := range result.BoundaryConstraints() {
		writeLisp(w, result.ConstraintLisp(c), formatter)
	}
	//
	for _, c := range result.IntegrityConstraints() {
		writeLisp(w, result.ConstraintLisp(c), formatter)
	}
}

// Construct a formatter which breaks constraints exceeding a given width over
// several lines.  A width of zero means no formatter.
func newFormatter(width uint) *sexp.Formatter {
	if width == 0 {
		return nil
	}
	//
	formatter := sexp.NewFormatter(width)
	formatter.Add(&sexp.IFormatter{Head: "-", Priority: 1})
	formatter.Add(&sexp.IFormatter{Head: "+", Priority: 2})
	formatter.Add(&sexp.IFormatter{Head: "*", Priority: 3})
	//
	return formatter
}

func writeLisp(w io.Writer, term sexp.SExp, formatter *sexp.Formatter) {
	if formatter == nil {
		fmt.Fprintln(w, term.String(false))
	} else {
		fmt.Fprint(w, formatter.Format(term))
	}
}

// Write a table of nodes, giving for each its index, operation, degree and
// operands.
func writeNodes(w io.Writer, result *air.Air, colour bool) {
	var (
		graph = result.Graph()
		table = termio.NewTablePrinter(4, graph.Len()+1)
		title = termio.BoldAnsiEscape().Build()
	)
	//
	table.AnsiEscapes(colour)
	table.SetRow(0, "#", "op", "degree", "node")
	//
	for i := uint(0); i < 4; i++ {
		table.SetEscape(i, 0, title)
	}
	//
	for i, node := range graph.Nodes() {
		table.SetRow(uint(i+1), fmt.Sprintf("%d", i), node.Op.String(),
			fmt.Sprintf("%d", graph.Degree(air.NodeIndex(i))), describeNode(node, result))
	}
	//
	table.Print(w)
	fmt.Fprintln(w)
}

func describeNode(node air.Node, result *air.Air) string {
	switch node.Op {
	case air.CONSTANT:
		return fmt.Sprintf("%d", node.Value)
	case air.TRACE:
		return result.TraceColumnName(node.Segment, node.Column) + strings.Repeat("'", int(node.Shift))
	case air.PERIODIC:
		return result.PeriodicColumnName(node.Column)
	case air.PUBLIC_INPUT:
		return fmt.Sprintf("%s[%d]", result.PublicInputName(node.Column), node.Value)
	case air.RANDOM:
		return fmt.Sprintf("$alpha[%d]", node.Value)
	case air.EXP:
		return fmt.Sprintf("#%d %d", node.Lhs, node.Value)
	default:
		return fmt.Sprintf("#%d #%d", node.Lhs, node.Rhs)
	}
}

func init() {
	compileCmd.Flags().String("stage", "air", "stop after a given stage (mir or air)")
	compileCmd.Flags().Bool("no-optimise", false, "disable constant folding")
	compileCmd.Flags().Bool("nodes", false, "print every node of the constraint graph")
	compileCmd.Flags().Uint("width", 0, "break constraints wider than this over several lines")
	rootCmd.AddCommand(compileCmd)
}
