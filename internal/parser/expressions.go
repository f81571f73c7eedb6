package parser

import (
	"fmt"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/lexer"
)

// expression is the widest-precedence entry point: the comma operator.
func (p *Parser) expression() ast.Expr {
	return p.comma()
}

func (p *Parser) comma() ast.Expr {
	expr := p.assignment()
	for p.match(lexer.Comma) {
		right := p.assignment()
		expr = &ast.Comma{Left: expr, Right: right}
	}
	return expr
}

// assignment parses an assignment target on the left by first parsing it as
// an ordinary ternary expression, then rewriting it to Assign/Set if an '='
// follows. An unassignable left-hand side is reported without entering
// panic mode: the expression already parsed fine, only its use is wrong.
func (p *Parser) assignment() ast.Expr {
	expr := p.ternary()

	if p.match(lexer.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch e := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: e.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: e.Object, Name: e.Name, Value: value}
		default:
			p.reportAt(equals, "Invalid assignment target.")
			return expr
		}
	}

	return expr
}

func (p *Parser) ternary() ast.Expr {
	expr := p.or()
	if p.match(lexer.Question) {
		then := p.expression()
		p.consume(lexer.Colon, "Expect ':' after then branch of ternary expression.")
		elseExpr := p.ternary()
		expr = &ast.Ternary{Cond: expr, Then: then, Else: elseExpr}
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(lexer.Or) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(lexer.And) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(lexer.BangEqual, lexer.EqualEqual) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(lexer.Greater, lexer.GreaterEqual, lexer.Less, lexer.LessEqual) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(lexer.Minus, lexer.Plus) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(lexer.Slash, lexer.Star) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(lexer.Bang, lexer.Minus) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(lexer.LeftParen):
			expr = p.finishCall(expr)
		case p.match(lexer.Dot):
			name := p.consume(lexer.Identifier, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(lexer.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.reportAt(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			arg := p.assignment()
			args = append(args, splitCommaArg(arg)...)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	paren := p.consume(lexer.RightParen, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

// splitCommaArg normalizes a parenthesized comma expression written as a
// single call argument, e.g. f((a, b)), into the two arguments it would have
// been had the parentheses been dropped. Arguments are parsed at
// assignment precedence so a bare comma can only reach here through an
// explicit grouping.
func splitCommaArg(e ast.Expr) []ast.Expr {
	switch v := e.(type) {
	case *ast.Comma:
		return append(splitCommaArg(v.Left), splitCommaArg(v.Right)...)
	case *ast.Grouping:
		if _, ok := v.Inner.(*ast.Comma); ok {
			return splitCommaArg(v.Inner)
		}
	}
	return []ast.Expr{e}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(lexer.False):
		return &ast.Literal{Value: false}
	case p.match(lexer.True):
		return &ast.Literal{Value: true}
	case p.match(lexer.Nil):
		return &ast.Literal{Value: nil}
	case p.match(lexer.Number, lexer.String):
		return &ast.Literal{Value: p.previous().Literal}
	case p.match(lexer.Super):
		keyword := p.previous()
		p.consume(lexer.Dot, "Expect '.' after 'super'.")
		method := p.consume(lexer.Identifier, "Expect superclass method name.")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(lexer.This):
		return &ast.This{Keyword: p.previous()}
	case p.match(lexer.Identifier):
		return &ast.Variable{Name: p.previous()}
	case p.match(lexer.LeftParen):
		expr := p.expression()
		p.consume(lexer.RightParen, "Expect ')' after expression.")
		return &ast.Grouping{Inner: expr}
	case p.match(lexer.Fun):
		return p.functionBody("function")
	}
	panic(p.errorAt(p.peek(), "Expect expression."))
}
