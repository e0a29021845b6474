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

// Parse an expression.  Precedence (lowest to highest) is: "|", "&", "+" and
// "-", "*", "^", unary "-" and "!", postfix accesses and atoms.  Logical
// operators are desugared into arithmetic as follows:
//
//	a | b  ==> (a + b) - a * b
//	a & b  ==> a * b
//	!a     ==> 1 - a
func (p *Parser) parseExpr() (ast.Expr, []source.SyntaxError) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, []source.SyntaxError) {
	var start = p.index
	//
	lhs, errs := p.parseAnd()
	//
	for len(errs) == 0 && p.match(OR) {
		var rhs ast.Expr
		//
		if rhs, errs = p.parseAnd(); len(errs) == 0 {
			span := p.spanOf(start, p.index-1)
			sum := p.binop(ast.ADD, lhs, rhs, span)
			product := p.binop(ast.MUL, lhs, rhs, span)
			lhs = p.binop(ast.SUB, sum, product, span)
		}
	}
	//
	return lhs, errs
}

func (p *Parser) parseAnd() (ast.Expr, []source.SyntaxError) {
	var start = p.index
	//
	lhs, errs := p.parseAdditive()
	//
	for len(errs) == 0 && p.match(AND) {
		var rhs ast.Expr
		//
		if rhs, errs = p.parseAdditive(); len(errs) == 0 {
			lhs = p.binop(ast.MUL, lhs, rhs, p.spanOf(start, p.index-1))
		}
	}
	//
	return lhs, errs
}

func (p *Parser) parseAdditive() (ast.Expr, []source.SyntaxError) {
	var start = p.index
	//
	lhs, errs := p.parseMultiplicative()
	//
	for len(errs) == 0 && p.follows(ADD, SUB) {
		var (
			kind = ast.ADD
			rhs  ast.Expr
		)
		//
		if p.match(SUB) {
			kind = ast.SUB
		} else {
			p.index++
		}
		//
		if rhs, errs = p.parseMultiplicative(); len(errs) == 0 {
			lhs = p.binop(kind, lhs, rhs, p.spanOf(start, p.index-1))
		}
	}
	//
	return lhs, errs
}

func (p *Parser) parseMultiplicative() (ast.Expr, []source.SyntaxError) {
	var start = p.index
	//
	lhs, errs := p.parseExponent()
	//
	for len(errs) == 0 && p.match(MUL) {
		var rhs ast.Expr
		//
		if rhs, errs = p.parseExponent(); len(errs) == 0 {
			lhs = p.binop(ast.MUL, lhs, rhs, p.spanOf(start, p.index-1))
		}
	}
	//
	return lhs, errs
}

// Exponentiation is right associative, so "a^b^c" is "a^(b^c)".
func (p *Parser) parseExponent() (ast.Expr, []source.SyntaxError) {
	var start = p.index
	//
	base, errs := p.parseUnary()
	//
	if len(errs) == 0 && p.match(CARET) {
		var exponent ast.Expr
		//
		if exponent, errs = p.parseExponent(); len(errs) == 0 {
			return p.binop(ast.EXP, base, exponent, p.spanOf(start, p.index-1)), nil
		}
	}
	//
	return base, errs
}

func (p *Parser) parseUnary() (ast.Expr, []source.SyntaxError) {
	var (
		start = p.index
		value uint64
	)
	//
	switch {
	case p.match(SUB):
		value = 0
	case p.match(NOT):
		value = 1
	default:
		return p.parseAtom()
	}
	//
	arg, errs := p.parseUnary()
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	span := p.spanOf(start, p.index-1)
	constant := &ast.Constant{Value: value}
	p.srcmap.Put(constant, span)
	//
	return p.binop(ast.SUB, constant, arg, span), nil
}

func (p *Parser) parseAtom() (ast.Expr, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
		expr      ast.Expr
		errs      []source.SyntaxError
	)
	//
	switch lookahead.Kind {
	case NUMBER:
		var value uint64
		//
		if value, errs = p.parseNumber(); len(errs) > 0 {
			return nil, errs
		}
		//
		expr = &ast.Constant{Value: value}
	case LBRACE:
		p.index++
		// Parenthesised expressions are not recorded in the source map again.
		if expr, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(RBRACE); len(errs) > 0 {
			return nil, errs
		}
		//
		return expr, nil
	case LSQUARE:
		if expr, errs = p.parseVectorOrComprehension(); len(errs) > 0 {
			return nil, errs
		}
	case KEYWORD_NULL:
		// Sentinels are not recorded in the source map, since they are
		// zero-sized.  Errors are reported against the enclosing constraint.
		p.index++
		return &ast.Null{}, nil
	case KEYWORD_UNCONSTRAINED:
		p.index++
		return &ast.Unconstrained{}, nil
	case IDENTIFIER:
		if p.lookaheadN(1).Kind == LBRACE {
			expr, errs = p.parseCall()
		} else {
			expr, errs = p.parseSymbolAccess()
		}
		//
		if len(errs) > 0 {
			return nil, errs
		}
	default:
		return nil, p.syntaxErrors(lookahead, "unexpected token")
	}
	//
	p.srcmap.Put(expr, p.spanOf(start, p.index-1))
	//
	return expr, nil
}

func (p *Parser) parseCall() (ast.Expr, []source.SyntaxError) {
	var (
		call = &ast.Call{}
		errs []source.SyntaxError
	)
	//
	if call.Callee, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(LBRACE); len(errs) > 0 {
		return nil, errs
	} else if call.Args, errs = p.parseExprList(RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	return call, nil
}

// Parse a symbol access, such as "x", "x'", "x[1]", "m[1][2]", "x[1..3]" or
// "x.first".
func (p *Parser) parseSymbolAccess() (ast.Expr, []source.SyntaxError) {
	var (
		access = &ast.SymbolAccess{}
		errs   []source.SyntaxError
	)
	//
	if access.Name, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	}
	// Indices and slices
	for access.Slice == nil && p.follows(LSQUARE) {
		var (
			start = p.index
			index ast.Expr
		)
		//
		p.index++
		//
		if index, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		}
		//
		if p.match(DOT_DOT) {
			var end ast.Expr
			//
			if end, errs = p.parseExpr(); len(errs) > 0 {
				return nil, errs
			}
			//
			access.Slice = &ast.Range{Start: index, End: end}
			p.srcmap.Put(access.Slice, p.spanOf(start, p.index))
		} else {
			access.Indices = append(access.Indices, index)
		}
		//
		if _, errs = p.expect(RSQUARE); len(errs) > 0 {
			return nil, errs
		}
	}
	// Next row access
	if p.match(QUOTE) {
		access.Shift = 1
		//
		if p.follows(QUOTE) {
			return nil, p.syntaxErrors(p.lookahead(), "only next row access is supported")
		}
	}
	// Boundary access
	if p.match(DOT) {
		switch {
		case p.match(KEYWORD_FIRST):
			access.Boundary = ast.FIRST_ROW
		case p.match(KEYWORD_LAST):
			access.Boundary = ast.LAST_ROW
		default:
			return nil, p.syntaxErrors(p.lookahead(), "expected first or last")
		}
	}
	//
	return access, nil
}

// Parse either a vector "[e1, .., en]" or a list comprehension
// "[e for x in xs]".
func (p *Parser) parseVectorOrComprehension() (ast.Expr, []source.SyntaxError) {
	var (
		first ast.Expr
		errs  []source.SyntaxError
	)
	//
	p.index++
	//
	if first, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	}
	//
	if p.match(KEYWORD_FOR) {
		comprehension := &ast.ListComprehension{Body: first}
		//
		if comprehension.Context, errs = p.parseComprehensionContext(); len(errs) > 0 {
			return nil, errs
		}
		//
		if p.match(KEYWORD_WHEN) {
			if comprehension.Selector, errs = p.parseExpr(); len(errs) > 0 {
				return nil, errs
			}
		}
		//
		if _, errs = p.expect(RSQUARE); len(errs) > 0 {
			return nil, errs
		}
		//
		return comprehension, nil
	}
	// Vector literal
	elements := []ast.Expr{first}
	//
	if p.match(COMMA) {
		var rest []ast.Expr
		//
		if rest, errs = p.parseExprList(RSQUARE); len(errs) > 0 {
			return nil, errs
		}
		//
		elements = append(elements, rest...)
	} else if _, errs = p.expect(RSQUARE); len(errs) > 0 {
		return nil, errs
	}
	//
	return &ast.Vector{Elements: elements}, nil
}

// Parse a comma-separated list of zero or more expressions, terminated by a
// given token (which is consumed).  A trailing comma is permitted.
func (p *Parser) parseExprList(terminator uint) ([]ast.Expr, []source.SyntaxError) {
	var exprs []ast.Expr
	//
	for !p.match(terminator) {
		if len(exprs) > 0 {
			if _, errs := p.expect(COMMA); len(errs) > 0 {
				return nil, errs
			} else if p.match(terminator) {
				break
			}
		}
		//
		expr, errs := p.parseExpr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		exprs = append(exprs, expr)
	}
	//
	return exprs, nil
}

// Construct a binary operation, recording its span.
func (p *Parser) binop(kind ast.BinOpKind, lhs, rhs ast.Expr, span source.Span) ast.Expr {
	expr := &ast.BinOp{Kind: kind, Lhs: lhs, Rhs: rhs}
	p.srcmap.Put(expr, span)
	//
	return expr
}
