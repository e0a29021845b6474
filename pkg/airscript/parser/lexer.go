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
package parser

import (
	"slices"

	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/consensys/go-airscript/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals "# ... \n"
const COMMENT uint = 2

// LBRACE signals "("
const LBRACE uint = 3

// RBRACE signals ")"
const RBRACE uint = 4

// LSQUARE signals "["
const LSQUARE uint = 5

// RSQUARE signals "]"
const RSQUARE uint = 6

// LCURLY signals "{"
const LCURLY uint = 7

// RCURLY signals "}"
const RCURLY uint = 8

// COMMA signals ","
const COMMA uint = 9

// COLON signals ":"
const COLON uint = 10

// COLON_COLON signals "::"
const COLON_COLON uint = 11

// SEMICOLON signals ";"
const SEMICOLON uint = 12

// DOT signals "."
const DOT uint = 13

// DOT_DOT signals ".."
const DOT_DOT uint = 14

// QUOTE signals "'" (i.e. next row access)
const QUOTE uint = 15

// RIGHTARROW signals "->"
const RIGHTARROW uint = 16

// EQUALS signals "="
const EQUALS uint = 20

// ADD signals "+"
const ADD uint = 21

// SUB signals "-"
const SUB uint = 22

// MUL signals "*"
const MUL uint = 23

// CARET signals "^"
const CARET uint = 24

// AND signals "&"
const AND uint = 25

// OR signals "|"
const OR uint = 26

// NOT signals "!"
const NOT uint = 27

// NUMBER signals an integer number
const NUMBER uint = 30

// IDENTIFIER signals a name
const IDENTIFIER uint = 31

// KEYWORD_DEF signals a root module header
const KEYWORD_DEF uint = 40

// KEYWORD_MOD signals a library module header
const KEYWORD_MOD uint = 41

// KEYWORD_USE signals an import
const KEYWORD_USE uint = 42

// KEYWORD_CONST signals a constant declaration
const KEYWORD_CONST uint = 43

// KEYWORD_TRACE_COLUMNS signals the trace columns section
const KEYWORD_TRACE_COLUMNS uint = 44

// KEYWORD_PUBLIC_INPUTS signals the public inputs section
const KEYWORD_PUBLIC_INPUTS uint = 45

// KEYWORD_PERIODIC_COLUMNS signals the periodic columns section
const KEYWORD_PERIODIC_COLUMNS uint = 46

// KEYWORD_BUSES signals the buses section
const KEYWORD_BUSES uint = 47

// KEYWORD_BOUNDARY_CONSTRAINTS signals the boundary constraints section
const KEYWORD_BOUNDARY_CONSTRAINTS uint = 48

// KEYWORD_INTEGRITY_CONSTRAINTS signals the integrity constraints section
const KEYWORD_INTEGRITY_CONSTRAINTS uint = 49

// KEYWORD_EV signals an evaluator declaration
const KEYWORD_EV uint = 50

// KEYWORD_FN signals a function declaration
const KEYWORD_FN uint = 51

// KEYWORD_ENF signals a constraint
const KEYWORD_ENF uint = 52

// KEYWORD_LET signals a variable binding
const KEYWORD_LET uint = 53

// KEYWORD_RETURN signals the result of a function
const KEYWORD_RETURN uint = 54

// KEYWORD_FOR signals a comprehension
const KEYWORD_FOR uint = 55

// KEYWORD_IN separates comprehension bindings from iterables
const KEYWORD_IN uint = 56

// KEYWORD_WHEN signals a selector
const KEYWORD_WHEN uint = 57

// KEYWORD_WITH signals a multiplicity
const KEYWORD_WITH uint = 58

// KEYWORD_MATCH signals a match block
const KEYWORD_MATCH uint = 59

// KEYWORD_CASE signals a match arm
const KEYWORD_CASE uint = 60

// KEYWORD_FELT signals the field element type
const KEYWORD_FELT uint = 61

// KEYWORD_FIRST signals a first row boundary
const KEYWORD_FIRST uint = 62

// KEYWORD_LAST signals a last row boundary
const KEYWORD_LAST uint = 63

// KEYWORD_NULL signals an empty bus
const KEYWORD_NULL uint = 64

// KEYWORD_UNCONSTRAINED signals an unconstrained bus boundary
const KEYWORD_UNCONSTRAINED uint = 65

// KEYWORD_INSERT signals a bus insertion
const KEYWORD_INSERT uint = 66

// KEYWORD_REMOVE signals a bus removal
const KEYWORD_REMOVE uint = 67

// KEYWORD_MULTISET signals a multiset bus
const KEYWORD_MULTISET uint = 68

// KEYWORD_LOGUP signals a logup bus
const KEYWORD_LOGUP uint = 69

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\n'), lex.Unit('\r')))

// Rule for describing numbers, which are either hexadecimal or decimal.
// Underscores are permitted (and ignored) after the first digit.
var (
	decimalStart = lex.Within('0', '9')
	decimalRest  = lex.Or(lex.Within('0', '9'), lex.Unit('_'))

	hexDigit = lex.Or(
		lex.Within('0', '9'),
		lex.Within('A', 'F'),
		lex.Within('a', 'f'),
	)
	hexStart = lex.Sequence(lex.String("0x"), hexDigit)
	hexRest  = lex.Or(hexDigit, lex.Unit('_'))

	number = lex.Or(
		lex.SequenceNullableLast(hexStart, lex.Many(hexRest)),
		lex.SequenceNullableLast(decimalStart, lex.Many(decimalRest)),
	)
)

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.SequenceNullableLast(identifierStart, identifierRest)

// Comments run from '#' until the end of the line.
var comment lex.Scanner[rune] = lex.SequenceNullableLast(lex.Unit('#'), lex.Until('\n'))

// lexing rules
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(':', ':'), COLON_COLON),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit('.', '.'), DOT_DOT),
	lex.Rule(lex.Unit('.'), DOT),
	lex.Rule(lex.Unit('\''), QUOTE),
	lex.Rule(lex.Unit('-', '>'), RIGHTARROW),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('^'), CARET),
	lex.Rule(lex.Unit('&'), AND),
	lex.Rule(lex.Unit('|'), OR),
	lex.Rule(lex.Unit('!'), NOT),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// keywords maps reserved words to their token kinds.  Identifiers are scanned
// first and then reclassified, such that (for example) "enforce" is not
// mistaken for "enf" followed by "orce".
var keywords = map[string]uint{
	"def":                   KEYWORD_DEF,
	"mod":                   KEYWORD_MOD,
	"use":                   KEYWORD_USE,
	"const":                 KEYWORD_CONST,
	"trace_columns":         KEYWORD_TRACE_COLUMNS,
	"public_inputs":         KEYWORD_PUBLIC_INPUTS,
	"periodic_columns":      KEYWORD_PERIODIC_COLUMNS,
	"buses":                 KEYWORD_BUSES,
	"boundary_constraints":  KEYWORD_BOUNDARY_CONSTRAINTS,
	"integrity_constraints": KEYWORD_INTEGRITY_CONSTRAINTS,
	"ev":                    KEYWORD_EV,
	"fn":                    KEYWORD_FN,
	"enf":                   KEYWORD_ENF,
	"let":                   KEYWORD_LET,
	"return":                KEYWORD_RETURN,
	"for":                   KEYWORD_FOR,
	"in":                    KEYWORD_IN,
	"when":                  KEYWORD_WHEN,
	"with":                  KEYWORD_WITH,
	"match":                 KEYWORD_MATCH,
	"case":                  KEYWORD_CASE,
	"felt":                  KEYWORD_FELT,
	"first":                 KEYWORD_FIRST,
	"last":                  KEYWORD_LAST,
	"null":                  KEYWORD_NULL,
	"unconstrained":         KEYWORD_UNCONSTRAINED,
	"insert":                KEYWORD_INSERT,
	"remove":                KEYWORD_REMOVE,
	"multiset":              KEYWORD_MULTISET,
	"logup":                 KEYWORD_LOGUP,
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Whitespace and comments are discarded, and the
// token stream always ends with END_OF.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		contents = srcfile.Contents()
		lexer    = lex.NewLexer(contents, rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start := lexer.Index()
		err := srcfile.SyntaxError(source.NewSpan(int(start), int(start)+1), "unknown text encountered")
		//
		return nil, []source.SyntaxError{*err}
	}
	// Remove whitespace and comments
	tokens = slices.DeleteFunc(tokens, func(t lex.Token) bool {
		return t.Kind == WHITESPACE || t.Kind == COMMENT
	})
	// Reclassify keywords
	for i, t := range tokens {
		if t.Kind == IDENTIFIER {
			if kind, ok := keywords[string(contents[t.Span.Start():t.Span.End()])]; ok {
				tokens[i].Kind = kind
			}
		}
	}
	//
	return tokens, nil
}
