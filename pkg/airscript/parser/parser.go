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
	"strconv"
	"strings"

	"github.com/consensys/go-airscript/pkg/airscript/ast"
	"github.com/consensys/go-airscript/pkg/util/source"
	"github.com/consensys/go-airscript/pkg/util/source/lex"
)

// Parse accepts a given source file representing an AirScript module and
// parses it into a module, along with a source map from AST nodes back to the
// source file.  Synthetic names introduced whilst desugaring are drawn from the
// given naming context.  Parse errors are fatal, so at most one error is
// reported.
func Parse(srcfile *source.File, names *ast.NameContext) (*ast.Module, *source.Map[any], []source.SyntaxError) {
	parser := NewParser(srcfile, names)
	// Parse module
	module, errs := parser.Parse()
	//
	return module, parser.srcmap, errs
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a recursive-descent parser for AirScript modules.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Source mapping
	srcmap *source.Map[any]
	// Naming context used to generate hygienic names
	names *ast.NameContext
	// Position within the tokens
	index int
	// Module being constructed
	module *ast.Module
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File, names *ast.NameContext) *Parser {
	// Construct (initially empty) source mapping
	srcmap := source.NewSourceMap[any](srcfile)
	//
	return &Parser{srcfile, nil, srcmap, names, 0, nil}
}

// Parse the given source file into a module, or produce a syntax error.
func (p *Parser) Parse() (*ast.Module, []source.SyntaxError) {
	var errors []source.SyntaxError
	// Convert source file into tokens
	if p.tokens, errors = Lex(p.srcfile); len(errors) > 0 {
		return nil, errors
	}
	// Parse module header
	if errors = p.parseHeader(); len(errors) > 0 {
		return nil, errors
	}
	// Continue going until all consumed
	for p.lookahead().Kind != END_OF {
		lookahead := p.lookahead()
		// Determine type of declaration
		switch lookahead.Kind {
		case KEYWORD_USE:
			errors = p.parseImport()
		case KEYWORD_CONST:
			errors = p.parseConstant()
		case KEYWORD_TRACE_COLUMNS:
			errors = p.parseTraceColumns()
		case KEYWORD_PUBLIC_INPUTS:
			errors = p.parsePublicInputs()
		case KEYWORD_PERIODIC_COLUMNS:
			errors = p.parsePeriodicColumns()
		case KEYWORD_BUSES:
			errors = p.parseBuses()
		case KEYWORD_BOUNDARY_CONSTRAINTS:
			p.module.BoundaryConstraints, errors = p.parseConstraintSection(p.module.BoundaryConstraints)
		case KEYWORD_INTEGRITY_CONSTRAINTS:
			p.module.IntegrityConstraints, errors = p.parseConstraintSection(p.module.IntegrityConstraints)
		case KEYWORD_EV:
			errors = p.parseEvaluator()
		case KEYWORD_FN:
			errors = p.parseFunction()
		default:
			errors = p.syntaxErrors(lookahead, "unknown declaration")
		}
		//
		if len(errors) > 0 {
			return nil, errors
		}
	}
	// Root modules must declare the main trace segment
	if p.module.IsRoot() && p.module.MainSegment() == nil {
		return nil, p.nodeErrors(p.module, "declaration of main trace columns is required")
	}
	//
	return p.module, nil
}

func (p *Parser) parseHeader() []source.SyntaxError {
	var (
		start = p.index
		kind  ast.ModuleKind
		name  ast.Identifier
		errs  []source.SyntaxError
	)
	//
	switch {
	case p.match(KEYWORD_DEF):
		kind = ast.ROOT_MODULE
	case p.match(KEYWORD_MOD):
		kind = ast.LIBRARY_MODULE
	default:
		return p.syntaxErrors(p.lookahead(), "expected module declaration (def or mod)")
	}
	//
	if name, errs = p.parseIdentifier(); len(errs) > 0 {
		return errs
	}
	//
	p.module = ast.NewModule(name, kind)
	p.srcmap.Put(p.module, p.spanOf(start, p.index-1))
	//
	return nil
}

// Check that a given root-only section is permitted in the current module.
func (p *Parser) checkRootSection(token lex.Token) []source.SyntaxError {
	if !p.module.IsRoot() {
		return p.syntaxErrors(token, "section not permitted in library module")
	}
	//
	return nil
}

func (p *Parser) parseImport() []source.SyntaxError {
	var (
		start  = p.index
		module ast.Identifier
		errs   []source.SyntaxError
		imp    ast.Import
	)
	//
	if _, errs = p.expect(KEYWORD_USE); len(errs) > 0 {
		return errs
	} else if module, errs = p.parseIdentifier(); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(COLON_COLON); len(errs) > 0 {
		return errs
	}
	//
	imp.Module = module
	//
	if !p.match(MUL) {
		var item ast.Identifier
		//
		if item, errs = p.parseIdentifier(); len(errs) > 0 {
			return errs
		}
		//
		imp.Item = &item
	}
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return errs
	}
	//
	p.module.Imports = append(p.module.Imports, &imp)
	p.srcmap.Put(&imp, p.spanOf(start, p.index-1))
	//
	return nil
}

func (p *Parser) parseConstant() []source.SyntaxError {
	var (
		start = p.index
		errs  []source.SyntaxError
		decl  = &ast.ConstantDecl{}
	)
	// Parse constant declaration
	if _, errs = p.expect(KEYWORD_CONST); len(errs) > 0 {
		return errs
	} else if decl.Name, errs = p.parseIdentifier(); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return errs
	}
	//
	switch {
	case p.follows(NUMBER):
		var value uint64
		//
		value, errs = p.parseNumber()
		decl.Values = []uint64{value}
	case p.lookaheadN(1).Kind == LSQUARE:
		var rows [][]uint64
		// Matrix constant
		if rows, errs = p.parseMatrix(); len(errs) > 0 {
			return errs
		}
		//
		decl.Dims = []uint{uint(len(rows)), uint(len(rows[0]))}
		decl.Values = slices.Concat(rows...)
	default:
		decl.Values, errs = p.parseNumberList()
		decl.Dims = []uint{uint(len(decl.Values))}
	}
	//
	if len(errs) > 0 {
		return errs
	}
	// Semicolon is optional
	p.match(SEMICOLON)
	//
	p.module.Constants = append(p.module.Constants, decl)
	p.srcmap.Put(decl, p.spanOf(start, p.index-1))
	//
	return nil
}

func (p *Parser) parseMatrix() ([][]uint64, []source.SyntaxError) {
	var (
		start = p.index
		rows  [][]uint64
	)
	//
	if _, errs := p.expect(LSQUARE); len(errs) > 0 {
		return nil, errs
	}
	//
	for len(rows) == 0 || p.match(COMMA) {
		// Permit trailing comma
		if len(rows) > 0 && p.follows(RSQUARE) {
			break
		}
		//
		row, errs := p.parseNumberList()
		if len(errs) > 0 {
			return nil, errs
		} else if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, p.spanErrors(p.spanOf(start, p.index-1), "matrix rows must have equal length")
		}
		//
		rows = append(rows, row)
	}
	//
	if _, errs := p.expect(RSQUARE); len(errs) > 0 {
		return nil, errs
	}
	//
	return rows, nil
}

// Parse a non-empty list of numbers "[n1, .., nk]".
func (p *Parser) parseNumberList() ([]uint64, []source.SyntaxError) {
	var values []uint64
	//
	if _, errs := p.expect(LSQUARE); len(errs) > 0 {
		return nil, errs
	}
	//
	for len(values) == 0 || p.match(COMMA) {
		// Permit trailing comma
		if len(values) > 0 && p.follows(RSQUARE) {
			break
		}
		//
		value, errs := p.parseNumber()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		values = append(values, value)
	}
	//
	if _, errs := p.expect(RSQUARE); len(errs) > 0 {
		return nil, errs
	}
	//
	return values, nil
}

func (p *Parser) parseTraceColumns() []source.SyntaxError {
	var (
		token    = p.lookahead()
		errs     []source.SyntaxError
		segments []*ast.TraceSegment
	)
	//
	if errs = p.checkRootSection(token); len(errs) > 0 {
		return errs
	} else if len(p.module.TraceColumns) > 0 {
		return p.syntaxErrors(token, "duplicate trace_columns section")
	}
	//
	p.index++
	//
	segments, errs = parseSectionBody(p, func() (*ast.TraceSegment, []source.SyntaxError) {
		var (
			start   = p.index
			segment = &ast.TraceSegment{}
			errs    []source.SyntaxError
		)
		//
		if segment.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		} else if segment.Name.Name != ast.MAIN_SEGMENT {
			return nil, p.spanErrors(segment.Name.Span, "unknown trace segment (expected main)")
		} else if _, errs = p.expect(COLON); len(errs) > 0 {
			return nil, errs
		} else if segment.Bindings, errs = p.parseTraceBindings(); len(errs) > 0 {
			return nil, errs
		}
		//
		p.srcmap.Put(segment, p.spanOf(start, p.index-1))
		//
		return segment, nil
	})
	//
	if len(errs) > 0 {
		return errs
	} else if len(segments) > 1 {
		return p.nodeErrors(segments[1], "duplicate trace segment")
	}
	//
	p.module.TraceColumns = segments
	//
	return nil
}

// Parse a list of trace bindings "[a, b[2], c]".  An empty list, or a binding
// of zero width, is rejected.
func (p *Parser) parseTraceBindings() ([]*ast.TraceBinding, []source.SyntaxError) {
	var (
		start    = p.index
		bindings []*ast.TraceBinding
		offset   uint
	)
	//
	if _, errs := p.expect(LSQUARE); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.follows(RSQUARE) {
		var (
			bstart  = p.index
			binding = &ast.TraceBinding{Offset: offset, Size: 1}
			errs    []source.SyntaxError
		)
		//
		if len(bindings) > 0 {
			if _, errs = p.expect(COMMA); len(errs) > 0 {
				return nil, errs
			} else if p.follows(RSQUARE) {
				break
			}
			//
			bstart = p.index
		}
		//
		if binding.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		}
		// Check for vector binding
		if p.match(LSQUARE) {
			var size uint64
			//
			if size, errs = p.parseNumber(); len(errs) > 0 {
				return nil, errs
			} else if _, errs = p.expect(RSQUARE); len(errs) > 0 {
				return nil, errs
			} else if size == 0 {
				return nil, p.spanErrors(p.spanOf(bstart, p.index-1), "invalid zero-width column binding")
			}
			//
			binding.Size = uint(size)
			binding.Vector = true
		}
		//
		offset += binding.Size
		bindings = append(bindings, binding)
		p.srcmap.Put(binding, p.spanOf(bstart, p.index-1))
	}
	// Consume closing square
	p.index++
	//
	if len(bindings) == 0 {
		return nil, p.spanErrors(p.spanOf(start, p.index-1), "empty trace segment")
	}
	//
	return bindings, nil
}

func (p *Parser) parsePublicInputs() []source.SyntaxError {
	var (
		token  = p.lookahead()
		inputs []*ast.PublicInput
		errs   []source.SyntaxError
	)
	//
	if errs = p.checkRootSection(token); len(errs) > 0 {
		return errs
	} else if p.module.PublicInputs != nil {
		return p.syntaxErrors(token, "duplicate public_inputs section")
	}
	//
	p.index++
	//
	inputs, errs = parseSectionBody(p, func() (*ast.PublicInput, []source.SyntaxError) {
		var (
			start = p.index
			input = &ast.PublicInput{}
			size  uint64
			errs  []source.SyntaxError
		)
		//
		if input.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(COLON); len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(LSQUARE); len(errs) > 0 {
			return nil, errs
		}
		//
		input.Table = p.match(LSQUARE)
		//
		if size, errs = p.parseNumber(); len(errs) > 0 {
			return nil, errs
		} else if input.Table {
			if _, errs = p.expect(RSQUARE); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		if _, errs = p.expect(RSQUARE); len(errs) > 0 {
			return nil, errs
		}
		//
		input.Size = uint(size)
		p.srcmap.Put(input, p.spanOf(start, p.index-1))
		//
		return input, nil
	})
	// Ensure section recorded as present, even if empty.
	p.module.PublicInputs = append(make([]*ast.PublicInput, 0, len(inputs)), inputs...)
	p.srcmap.Put(&p.module.PublicInputs, token.Span)
	//
	return errs
}

func (p *Parser) parsePeriodicColumns() []source.SyntaxError {
	var (
		columns []*ast.PeriodicColumn
		errs    []source.SyntaxError
	)
	//
	if p.module.PeriodicColumns != nil {
		return p.syntaxErrors(p.lookahead(), "duplicate periodic_columns section")
	}
	//
	p.index++
	//
	columns, errs = parseSectionBody(p, func() (*ast.PeriodicColumn, []source.SyntaxError) {
		var (
			start  = p.index
			column = &ast.PeriodicColumn{}
			errs   []source.SyntaxError
		)
		//
		if column.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(COLON); len(errs) > 0 {
			return nil, errs
		} else if column.Values, errs = p.parseNumberList(); len(errs) > 0 {
			return nil, errs
		}
		//
		p.srcmap.Put(column, p.spanOf(start, p.index-1))
		//
		return column, nil
	})
	//
	p.module.PeriodicColumns = append(make([]*ast.PeriodicColumn, 0, len(columns)), columns...)
	//
	return errs
}

func (p *Parser) parseBuses() []source.SyntaxError {
	var (
		token = p.lookahead()
		buses []*ast.Bus
		errs  []source.SyntaxError
	)
	//
	if errs = p.checkRootSection(token); len(errs) > 0 {
		return errs
	} else if p.module.Buses != nil {
		return p.syntaxErrors(token, "duplicate buses section")
	}
	//
	p.index++
	//
	buses, errs = parseSectionBody(p, func() (*ast.Bus, []source.SyntaxError) {
		var (
			start = p.index
			bus   = &ast.Bus{}
			errs  []source.SyntaxError
		)
		//
		switch {
		case p.match(KEYWORD_MULTISET):
			bus.Kind = ast.MULTISET_BUS
		case p.match(KEYWORD_LOGUP):
			bus.Kind = ast.LOGUP_BUS
		default:
			return nil, p.syntaxErrors(p.lookahead(), "expected bus type (multiset or logup)")
		}
		//
		if bus.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return nil, errs
		}
		//
		p.srcmap.Put(bus, p.spanOf(start, p.index-1))
		//
		return bus, nil
	})
	//
	p.module.Buses = append(make([]*ast.Bus, 0, len(buses)), buses...)
	// Record span of the section itself, so emptiness can be reported.
	p.srcmap.Put(&p.module.Buses, token.Span)
	//
	return errs
}

// Parse the body "{ item, item, ... }" of a declaration section, where items
// are separated by commas and a trailing comma is permitted.
func parseSectionBody[T any](p *Parser, parseItem func() (T, []source.SyntaxError)) ([]T, []source.SyntaxError) {
	var items []T
	//
	if _, errs := p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.match(RCURLY) {
		if len(items) > 0 {
			if _, errs := p.expect(COMMA); len(errs) > 0 {
				return nil, errs
			} else if p.match(RCURLY) {
				break
			}
		}
		//
		item, errs := parseItem()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		items = append(items, item)
	}
	//
	return items, nil
}

func (p *Parser) parseEvaluator() []source.SyntaxError {
	var (
		start = p.index
		ev    = &ast.Evaluator{}
		errs  []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_EV); len(errs) > 0 {
		return errs
	} else if ev.Name, errs = p.parseIdentifier(); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return errs
	}
	// Parse trace segment parameters
	for len(ev.Params) == 0 || p.match(COMMA) {
		var (
			sstart  = p.index
			segment = &ast.TraceSegment{Name: ast.NewIdentifier(ast.MAIN_SEGMENT, p.lookahead().Span)}
		)
		//
		if !p.follows(LSQUARE) {
			return p.syntaxErrors(p.lookahead(), "expected trace segment")
		} else if segment.Bindings, errs = p.parseTraceBindings(); len(errs) > 0 {
			return errs
		}
		//
		ev.Params = append(ev.Params, segment)
		p.srcmap.Put(segment, p.spanOf(sstart, p.index-1))
	}
	//
	if _, errs = p.expect(RBRACE); len(errs) > 0 {
		return errs
	}
	// Record span of evaluator signature
	p.srcmap.Put(ev, p.spanOf(start, p.index-1))
	//
	if ev.Body, errs = p.parseStatementBlock(); len(errs) > 0 {
		return errs
	}
	//
	p.module.Evaluators = append(p.module.Evaluators, ev)
	//
	return nil
}

func (p *Parser) parseFunction() []source.SyntaxError {
	var (
		start = p.index
		fn    = &ast.Function{}
		errs  []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_FN); len(errs) > 0 {
		return errs
	} else if fn.Name, errs = p.parseIdentifier(); len(errs) > 0 {
		return errs
	} else if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return errs
	}
	// Parse parameters
	for !p.match(RBRACE) {
		var param ast.Parameter
		//
		if len(fn.Params) > 0 {
			if _, errs = p.expect(COMMA); len(errs) > 0 {
				return errs
			}
		}
		//
		if param.Name, errs = p.parseIdentifier(); len(errs) > 0 {
			return errs
		} else if _, errs = p.expect(COLON); len(errs) > 0 {
			return errs
		} else if param.Type, errs = p.parseType(); len(errs) > 0 {
			return errs
		}
		//
		fn.Params = append(fn.Params, param)
	}
	// Parse return type
	if _, errs = p.expect(RIGHTARROW); len(errs) > 0 {
		return errs
	} else if fn.Return, errs = p.parseType(); len(errs) > 0 {
		return errs
	}
	// Record span of function signature
	p.srcmap.Put(fn, p.spanOf(start, p.index-1))
	//
	if errs = p.parseFunctionBody(fn); len(errs) > 0 {
		return errs
	}
	//
	p.module.Functions = append(p.module.Functions, fn)
	//
	return nil
}

// Parse the body of a function, which must consist of zero or more let
// bindings followed by exactly one return.
func (p *Parser) parseFunctionBody(fn *ast.Function) []source.SyntaxError {
	var (
		start = p.index
		errs  []source.SyntaxError
	)
	//
	if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return errs
	}
	//
	for p.follows(KEYWORD_LET) {
		var let *ast.Let
		//
		if let, errs = p.parseLet(); len(errs) > 0 {
			return errs
		}
		//
		fn.Lets = append(fn.Lets, let)
	}
	//
	if p.match(KEYWORD_RETURN) {
		if fn.Result, errs = p.parseExpr(); len(errs) > 0 {
			return errs
		} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
			return errs
		}
	}
	// Sanity check body was well-formed
	if fn.Result == nil || !p.follows(RCURLY) {
		// Skip to the end of the body, for a more helpful error span.
		for !p.follows(RCURLY, END_OF) {
			p.index++
		}
		//
		return p.spanErrors(p.spanOf(start, p.index), "function body must be let bindings followed by a single return")
	}
	// Consume closing brace
	p.index++
	//
	return nil
}

func (p *Parser) parseType() (ast.Type, []source.SyntaxError) {
	var dims []uint
	//
	if _, errs := p.expect(KEYWORD_FELT); len(errs) > 0 {
		return ast.Type{}, errs
	}
	//
	for p.match(LSQUARE) {
		size, errs := p.parseNumber()
		//
		if len(errs) > 0 {
			return ast.Type{}, errs
		} else if _, errs = p.expect(RSQUARE); len(errs) > 0 {
			return ast.Type{}, errs
		}
		//
		dims = append(dims, uint(size))
	}
	//
	if len(dims) > 2 {
		return ast.Type{}, p.syntaxErrors(p.tokens[p.index-1], "at most two dimensions are supported")
	}
	//
	return ast.Type{Dims: dims}, nil
}

// ============================================================================
// Helpers
// ============================================================================

func (p *Parser) parseIdentifier() (ast.Identifier, []source.SyntaxError) {
	tok, errs := p.expect(IDENTIFIER)
	//
	if len(errs) > 0 {
		return ast.Identifier{}, errs
	}
	//
	return ast.NewIdentifier(p.string(tok), tok.Span), nil
}

func (p *Parser) parseNumber() (uint64, []source.SyntaxError) {
	tok, errs := p.expect(NUMBER)
	//
	if len(errs) > 0 {
		return 0, errs
	}
	//
	return p.number(tok)
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Get the numeric value of a given token.
func (p *Parser) number(token lex.Token) (uint64, []source.SyntaxError) {
	var numstr = strings.ReplaceAll(p.string(token), "_", "")
	//
	val, err := strconv.ParseUint(numstr, 0, 64)
	//
	if err != nil {
		return 0, p.syntaxErrors(token, "malformed numeric literal")
	}
	//
	return val, nil
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// LookaheadN returns the token n positions after the next token, or the final
// (EOF) token if that is beyond the end of the stream.
func (p *Parser) lookaheadN(n int) lex.Token {
	return p.tokens[min(p.index+n, len(p.tokens)-1)]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		errs := p.syntaxErrors(lookahead, "unexpected token")
		return lookahead, errs
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	// Handle empty ranges
	lastToken = max(firstToken, lastToken)
	//
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}

func (p *Parser) nodeErrors(node any, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcmap.SyntaxError(node, msg)}
}

func (p *Parser) spanErrors(span source.Span, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(span, msg)}
}
