// Package lexer turns Lox source text into a stream of tokens.
package lexer

import "fmt"

// TokenType classifies a lexeme produced by the scanner.
type TokenType int

// Token kinds: single character punctuation, one-or-two character
// operators, literals, keywords, and the synthetic EOF terminator.
const (
	// Single-character tokens.
	LeftParen TokenType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	Question
	Colon

	// One or two character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While
	Break
	Continue

	EOF
)

var tokenNames = map[TokenType]string{
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	Comma: ",", Dot: ".", Minus: "-", Plus: "+", Semicolon: ";",
	Slash: "/", Star: "*", Question: "?", Colon: ":",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Greater: ">", GreaterEqual: ">=", Less: "<", LessEqual: "<=",
	Identifier: "IDENTIFIER", String: "STRING", Number: "NUMBER",
	And: "and", Class: "class", Else: "else", False: "false", Fun: "fun",
	For: "for", If: "if", Nil: "nil", Or: "or", Print: "print",
	Return: "return", Super: "super", This: "this", True: "true",
	Var: "var", While: "while", Break: "break", Continue: "continue",
	EOF: "EOF",
}

func (t TokenType) String() string {
	if n, ok := tokenNames[t]; ok {
		return n
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywords maps reserved identifiers to their keyword token type.
var keywords = map[string]TokenType{
	"and": And, "class": Class, "else": Else, "false": False, "fun": Fun,
	"for": For, "if": If, "nil": Nil, "or": Or, "print": Print,
	"return": Return, "super": Super, "this": This, "true": True,
	"var": Var, "while": While, "break": Break, "continue": Continue,
}

// Token is a single lexeme with its source position and, for literals, the
// value the scanner already decoded.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any // string for String tokens, float64 for Number tokens
	Line    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q %v", t.Type, t.Lexeme, t.Literal)
}
