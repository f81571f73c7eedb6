package parser

import (
	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/lexer"
)

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.For):
		return p.forStatement()
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.Print):
		return p.printStatement()
	case p.match(lexer.Return):
		return p.returnStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.Break):
		return p.breakStatement()
	case p.match(lexer.Continue):
		return p.continueStatement()
	case p.match(lexer.LeftBrace):
		return &ast.Block{Stmts: p.block()}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(lexer.RightBrace) && !p.isAtEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.consume(lexer.RightBrace, "Expect '}' after block.")
	return stmts
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	// Prompt mode: a bare expression with no trailing semicolon at the very
	// end of input prints its value instead of requiring one.
	if p.allowSingleExpression && p.check(lexer.EOF) {
		return &ast.Print{Expr: expr}
	}
	p.consume(lexer.Semicolon, "Expect ';' after expression.")
	return &ast.Expression{Expr: expr}
}

func (p *Parser) printStatement() ast.Stmt {
	value := p.expression()
	p.consume(lexer.Semicolon, "Expect ';' after value.")
	return &ast.Print{Expr: value}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(lexer.LeftParen, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(lexer.RightParen, "Expect ')' after if condition.")
	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(lexer.Else) {
		elseBranch = p.statement()
	}
	return &ast.If{Cond: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(lexer.Semicolon) {
		value = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after return value.")
	return &ast.Return{Keyword: keyword, Value: value}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(lexer.LeftParen, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(lexer.RightParen, "Expect ')' after condition.")

	p.loopDepth++
	prevKind := p.loopKind
	p.loopKind = ast.PlainWhile
	body := p.statement()
	p.loopDepth--
	p.loopKind = prevKind

	return &ast.While{Cond: cond, Body: body}
}

func (p *Parser) breakStatement() ast.Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.reportAt(keyword, "Can't use 'break' outside of a loop.")
	}
	p.consume(lexer.Semicolon, "Expect ';' after 'break'.")
	return &ast.Break{Keyword: keyword}
}

func (p *Parser) continueStatement() ast.Stmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.reportAt(keyword, "Can't use 'continue' outside of a loop.")
	}
	p.consume(lexer.Semicolon, "Expect ';' after 'continue'.")
	return &ast.Continue{Keyword: keyword, Kind: p.loopKind}
}

// forStatement desugars the C-style for loop into an (optional) init block
// wrapping a while loop whose body runs the increment after the original
// body. The increment wrapper is flagged via Block.ForIncrement so a
// continue inside the loop body still reaches it instead of skipping it.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(lexer.LeftParen, "Expect '(' after 'for'.")

	var initializer ast.Stmt
	switch {
	case p.match(lexer.Semicolon):
		initializer = nil
	case p.match(lexer.Var):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(lexer.Semicolon) {
		condition = p.expression()
	}
	p.consume(lexer.Semicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(lexer.RightParen) {
		increment = p.expression()
	}
	p.consume(lexer.RightParen, "Expect ')' after for clauses.")

	p.loopDepth++
	prevKind := p.loopKind
	p.loopKind = ast.DesugaredFor
	body := p.statement()
	p.loopDepth--
	p.loopKind = prevKind

	if increment != nil {
		body = &ast.Block{
			Stmts:        []ast.Stmt{body, &ast.Expression{Expr: increment}},
			ForIncrement: true,
		}
	}

	if condition == nil {
		condition = &ast.Literal{Value: true}
	}
	body = &ast.While{Cond: condition, Body: body}

	if initializer != nil {
		body = &ast.Block{Stmts: []ast.Stmt{initializer, body}}
	}
	return body
}
