package parser

import (
	"fmt"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/lexer"
)

// declaration parses one top-level or block-level declaration, recovering
// from a syntax error by synchronizing and returning a nil statement rather
// than letting the panic escape past this point.
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); ok {
				p.synchronize()
				stmt = nil
				return
			}
			panic(r)
		}
	}()

	if p.check(lexer.Class) {
		p.advance()
		return p.classDeclaration()
	}
	// A named function declaration is "fun" immediately followed by an
	// identifier; anything else starting with "fun" is a lambda expression
	// and falls through to statement() -> expressionStatement().
	if p.check(lexer.Fun) && p.checkNext(lexer.Identifier) {
		p.advance()
		return p.function("function")
	}
	if p.match(lexer.Var) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *Parser) checkNext(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.tokens[p.current+1].Type == t
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(lexer.Identifier, "Expect variable name.")
	var initializer ast.Expr
	if p.match(lexer.Equal) {
		initializer = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: initializer}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(lexer.Identifier, "Expect class name.")

	var superclass *ast.Variable
	if p.match(lexer.Less) {
		superName := p.consume(lexer.Identifier, "Expect superclass name.")
		superclass = &ast.Variable{Name: superName}
	}

	p.consume(lexer.LeftBrace, "Expect '{' before class body.")
	var methods []*ast.Function
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		methods = append(methods, p.function("method"))
	}
	p.consume(lexer.RightBrace, "Expect '}' after class body.")

	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *ast.Function {
	name := p.consume(lexer.Identifier, fmt.Sprintf("Expect %s name.", kind))
	fn := p.functionBody(kind)
	return &ast.Function{Name: name, Fn: fn}
}

// functionBody parses the shared "(params) { body }" shape behind named
// function declarations, methods, and anonymous lambda expressions.
func (p *Parser) functionBody(kind string) *ast.Lambda {
	p.consume(lexer.LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind))
	var params []lexer.Token
	if !p.check(lexer.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.reportAt(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			params = append(params, p.consume(lexer.Identifier, "Expect parameter name."))
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	p.consume(lexer.RightParen, "Expect ')' after parameters.")
	p.consume(lexer.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind))
	body := p.block()
	return &ast.Lambda{Params: params, Body: body}
}

// reportAt records a diagnostic anchored at tok without entering panic mode,
// for conditions that don't leave the parser in an unsynchronized state
// (arity limits, break/continue used outside a loop).
func (p *Parser) reportAt(tok lexer.Token, message string) {
	p.sink.ErrorAt(tok.Line, tok.Lexeme, tok.Type == lexer.EOF, message)
}
