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
	"github.com/consensys/go-airscript/pkg/airscript/ast"
	"github.com/consensys/go-airscript/pkg/util/source"
)

// Prefix used for synthetic single-iteration comprehension bindings.
const selectorPrefix = "sel"

func (p *Parser) parseConstraintSection(existing *ast.Section) (*ast.Section, []source.SyntaxError) {
	var (
		token   = p.lookahead()
		section = &ast.Section{}
		errs    []source.SyntaxError
	)
	//
	if errs = p.checkRootSection(token); len(errs) > 0 {
		return nil, errs
	} else if existing != nil {
		return nil, p.syntaxErrors(token, "duplicate constraint section")
	}
	//
	p.index++
	//
	if section.Statements, errs = p.parseStatementBlock(); len(errs) > 0 {
		return nil, errs
	}
	//
	p.srcmap.Put(section, token.Span)
	//
	return section, nil
}

// Parse a block "{ stmt* }" of statements.
func (p *Parser) parseStatementBlock() ([]ast.Statement, []source.SyntaxError) {
	var stmts []ast.Statement
	//
	if _, errs := p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.match(RCURLY) {
		stmt, errs := p.parseStatement()
		//
		if len(errs) > 0 {
			return nil, errs
		}
		//
		stmts = append(stmts, stmt...)
	}
	//
	return stmts, nil
}

// Parse a single statement, which may desugar into more than one statement (in
// the case of a match).
func (p *Parser) parseStatement() ([]ast.Statement, []source.SyntaxError) {
	var lookahead = p.lookahead()
	//
	switch {
	case lookahead.Kind == KEYWORD_LET:
		let, errs := p.parseLet()
		return []ast.Statement{let}, errs
	case lookahead.Kind == KEYWORD_ENF && p.lookaheadN(1).Kind == KEYWORD_MATCH:
		return p.parseMatch()
	case lookahead.Kind == KEYWORD_ENF:
		stmt, errs := p.parseEnforce()
		return []ast.Statement{stmt}, errs
	case lookahead.Kind == IDENTIFIER && p.lookaheadN(1).Kind == DOT &&
		(p.lookaheadN(2).Kind == KEYWORD_INSERT || p.lookaheadN(2).Kind == KEYWORD_REMOVE):
		stmt, errs := p.parseBusEnforce()
		return []ast.Statement{stmt}, errs
	}
	//
	return nil, p.syntaxErrors(lookahead, "expected statement")
}

func (p *Parser) parseLet() (*ast.Let, []source.SyntaxError) {
	var (
		start = p.index
		let   = &ast.Let{}
		errs  []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_LET); len(errs) > 0 {
		return nil, errs
	} else if let.Name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(EQUALS); len(errs) > 0 {
		return nil, errs
	} else if let.Value, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	p.srcmap.Put(let, p.spanOf(start, p.index-1))
	//
	return let, nil
}

// Parse an enforce statement, which has one of the forms:
//
//	enf c;
//	enf c when s;
//	enf c for (x, ..) in (xs, ..);
//	enf c for (x, ..) in (xs, ..) when s;
//
// The second form is rewritten into the fourth form over a single iteration
// of a synthetic binding.
func (p *Parser) parseEnforce() (ast.Statement, []source.SyntaxError) {
	var (
		start      = p.index
		constraint ast.Constraint
		context    ast.ComprehensionContext
		selector   ast.Expr
		stmt       ast.Statement
		errs       []source.SyntaxError
	)
	//
	if _, errs = p.expect(KEYWORD_ENF); len(errs) > 0 {
		return nil, errs
	} else if constraint, errs = p.parseConstraint(); len(errs) > 0 {
		return nil, errs
	}
	//
	if p.match(KEYWORD_FOR) {
		if context, errs = p.parseComprehensionContext(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if p.match(KEYWORD_WHEN) {
		if selector, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	span := p.spanOf(start, p.index-1)
	//
	switch {
	case context == nil && selector == nil:
		stmt = &ast.Enforce{Constraint: constraint}
	case context == nil:
		stmt = &ast.EnforceAll{Constraint: constraint, Context: p.singleIteration(span), Selector: selector}
	default:
		stmt = &ast.EnforceAll{Constraint: constraint, Context: context, Selector: selector}
	}
	//
	p.srcmap.Put(stmt, span)
	//
	return stmt, nil
}

// Parse a constraint, which is either an equality or an evaluator call.
func (p *Parser) parseConstraint() (ast.Constraint, []source.SyntaxError) {
	var (
		start      = p.index
		lhs, rhs   ast.Expr
		constraint ast.Constraint
		errs       []source.SyntaxError
	)
	//
	if lhs, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	}
	//
	if p.match(EQUALS) {
		if rhs, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		}
		//
		constraint = &ast.Equality{Lhs: lhs, Rhs: rhs}
	} else if call, ok := lhs.(*ast.Call); ok {
		constraint = &ast.EvaluatorCall{Call: call}
	} else {
		return nil, p.spanErrors(p.spanOf(start, p.index-1), "expected equality or evaluator call")
	}
	//
	p.srcmap.Put(constraint, p.spanOf(start, p.index-1))
	//
	return constraint, nil
}

// Parse a match statement:
//
//	enf match {
//	    case s1: c1,
//	    case s2: c2,
//	}
//
// Each arm becomes a single-iteration comprehension with the arm's case
// expression as selector.
func (p *Parser) parseMatch() ([]ast.Statement, []source.SyntaxError) {
	var (
		stmts []ast.Statement
		errs  []source.SyntaxError
	)
	// Consume "enf match {"
	p.index += 2
	//
	if _, errs = p.expect(LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.match(RCURLY) {
		var (
			start      = p.index
			selector   ast.Expr
			constraint ast.Constraint
		)
		//
		if _, errs = p.expect(KEYWORD_CASE); len(errs) > 0 {
			return nil, errs
		} else if selector, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(COLON); len(errs) > 0 {
			return nil, errs
		} else if constraint, errs = p.parseConstraint(); len(errs) > 0 {
			return nil, errs
		}
		//
		span := p.spanOf(start, p.index-1)
		stmt := &ast.EnforceAll{Constraint: constraint, Context: p.singleIteration(span), Selector: selector}
		p.srcmap.Put(stmt, span)
		stmts = append(stmts, stmt)
		// Arms may be separated by either commas or semicolons
		if !p.match(COMMA) && !p.match(SEMICOLON) && !p.follows(RCURLY) {
			return nil, p.syntaxErrors(p.lookahead(), "unexpected token")
		}
	}
	// Trailing semicolon is optional
	p.match(SEMICOLON)
	//
	if len(stmts) == 0 {
		return nil, p.syntaxErrors(p.tokens[p.index-1], "empty match")
	}
	//
	return stmts, nil
}

// Parse a bus operation "p.insert(a, ..) when s;" or "p.remove(a, ..) with m;".
// This is rewritten into a bus enforcement over a single iteration of a
// synthetic binding.
func (p *Parser) parseBusEnforce() (ast.Statement, []source.SyntaxError) {
	var (
		start = p.index
		op    = &ast.BusOperation{}
		stmt  = &ast.BusEnforce{Operation: op}
		errs  []source.SyntaxError
	)
	//
	if op.Bus, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	}
	// Consume "." and operation kind (already known to be present)
	p.index++
	//
	if p.match(KEYWORD_INSERT) {
		op.Kind = ast.BUS_INSERT
	} else {
		p.index++
		op.Kind = ast.BUS_REMOVE
	}
	//
	if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	} else if op.Args, errs = p.parseExprList(RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	p.srcmap.Put(op, p.spanOf(start, p.index-1))
	//
	switch {
	case p.match(KEYWORD_WHEN):
		stmt.Latch = ast.LATCH_WHEN
	case p.match(KEYWORD_WITH):
		stmt.Latch = ast.LATCH_WITH
	default:
		return nil, p.spanErrors(p.spanOf(start, p.index-1), "bus operation requires a selector or multiplicity")
	}
	//
	if stmt.Selector, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	span := p.spanOf(start, p.index-1)
	stmt.Context = p.singleIteration(span)
	p.srcmap.Put(stmt, span)
	//
	return stmt, nil
}

// Construct a comprehension context with a single synthetic binding iterating
// over the range 0..1.
func (p *Parser) singleIteration(span source.Span) ast.ComprehensionContext {
	var (
		name  = p.names.Fresh(selectorPrefix, span)
		start = &ast.Constant{Value: 0}
		end   = &ast.Constant{Value: 1}
		rng   = &ast.Range{Start: start, End: end}
	)
	//
	p.srcmap.Put(start, span)
	p.srcmap.Put(end, span)
	p.srcmap.Put(rng, span)
	//
	return ast.ComprehensionContext{{Name: name, Iterable: rng}}
}

// Parse a comprehension context (following the "for" keyword), which has
// either the form "x in xs" or "(x, y, ..) in (xs, ys, ..)".  The number of
// bindings must match the number of iterables and, where the length of
// iterables is evident, these must also agree.
func (p *Parser) parseComprehensionContext() (ast.ComprehensionContext, []source.SyntaxError) {
	var (
		start     = p.index
		names     []ast.Identifier
		iterables []ast.Expr
		errs      []source.SyntaxError
	)
	// Parse bindings
	if p.match(LBRACE) {
		for len(names) == 0 || p.match(COMMA) {
			name, errs := p.parseIdentifier()
			if len(errs) > 0 {
				return nil, errs
			}
			//
			names = append(names, name)
		}
		//
		if _, errs = p.expect(RBRACE); len(errs) > 0 {
			return nil, errs
		}
	} else {
		name, errs := p.parseIdentifier()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		names = append(names, name)
	}
	//
	if _, errs = p.expect(KEYWORD_IN); len(errs) > 0 {
		return nil, errs
	}
	// Parse iterables.  Parenthesised lists are only permitted when binding
	// more than one name, otherwise the parenthesis form part of the iterable.
	if len(names) > 1 && p.match(LBRACE) {
		if iterables, errs = p.parseIterableList(); len(errs) > 0 {
			return nil, errs
		}
	} else {
		iterable, errs := p.parseIterable()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		iterables = append(iterables, iterable)
	}
	//
	span := p.spanOf(start, p.index-1)
	//
	if len(names) != len(iterables) {
		return nil, p.spanErrors(span, "comprehension arity mismatch")
	} else if !literalLengthsAgree(iterables) {
		return nil, p.spanErrors(span, "comprehension arity mismatch (iterables differ in length)")
	}
	//
	context := make(ast.ComprehensionContext, len(names))
	//
	for i := range names {
		context[i] = ast.Binding{Name: names[i], Iterable: iterables[i]}
	}
	//
	return context, nil
}

func (p *Parser) parseIterableList() ([]ast.Expr, []source.SyntaxError) {
	var iterables []ast.Expr
	//
	for len(iterables) == 0 || p.match(COMMA) {
		iterable, errs := p.parseIterable()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		iterables = append(iterables, iterable)
	}
	//
	if _, errs := p.expect(RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	return iterables, nil
}

// Parse an iterable, which is either an expression or a range "e1..e2".
func (p *Parser) parseIterable() (ast.Expr, []source.SyntaxError) {
	var start = p.index
	//
	expr, errs := p.parseExpr()
	//
	if len(errs) > 0 {
		return nil, errs
	} else if p.match(DOT_DOT) {
		end, errs := p.parseExpr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		rng := &ast.Range{Start: expr, End: end}
		p.srcmap.Put(rng, p.spanOf(start, p.index-1))
		//
		return rng, nil
	}
	//
	return expr, nil
}

// Check that all iterables whose length is evident from their syntax (i.e.
// literal ranges and vectors) have the same length.
func literalLengthsAgree(iterables []ast.Expr) bool {
	var length = -1
	//
	for _, iterable := range iterables {
		n := literalLength(iterable)
		//
		if n < 0 {
			continue
		} else if length >= 0 && n != length {
			return false
		}
		//
		length = n
	}
	//
	return true
}

// Determine the length of an iterable from its syntax, or return -1 if this
// cannot be determined without resolving names.
func literalLength(iterable ast.Expr) int {
	switch e := iterable.(type) {
	case *ast.Vector:
		return len(e.Elements)
	case *ast.Range:
		start, ok1 := e.Start.(*ast.Constant)
		end, ok2 := e.End.(*ast.Constant)
		//
		if ok1 && ok2 && start.Value <= end.Value {
			return int(end.Value - start.Value)
		}
	}
	//
	return -1
}
