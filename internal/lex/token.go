// Package lex scans source text into a flat token stream, grounded on
// original_source/pyst/scanner.py's hand-written character scanner.
package lex

import "github.com/dekarrin/stgraph/internal/diag"

// Kind classifies one Token, mirroring scanner.py's TokenKind enum.
type Kind int

const (
	EndOfSource Kind = iota
	Error

	Character
	Float
	Identifier
	Integer
	Keyword
	MultiKeyword
	Operator
	String
	Symbol

	LeftParen
	RightParen
	LeftBracket
	RightBracket
	LeftCurly
	RightCurly

	LessThan
	GreaterThan
	Caret

	Colon
	Bar
	Assignment
	Semicolon
	Comma
	Dot

	LiteralArrayStart
	ByteArrayStart
)

func (k Kind) String() string {
	switch k {
	case EndOfSource:
		return "end of source"
	case Error:
		return "error"
	case Character:
		return "character literal"
	case Float:
		return "float literal"
	case Identifier:
		return "identifier"
	case Integer:
		return "integer literal"
	case Keyword:
		return "keyword"
	case MultiKeyword:
		return "multi-keyword"
	case Operator:
		return "operator"
	case String:
		return "string literal"
	case Symbol:
		return "symbol literal"
	case LeftParen:
		return "'('"
	case RightParen:
		return "')'"
	case LeftBracket:
		return "'['"
	case RightBracket:
		return "']'"
	case LeftCurly:
		return "'{'"
	case RightCurly:
		return "'}'"
	case LessThan:
		return "'<'"
	case GreaterThan:
		return "'>'"
	case Caret:
		return "'^'"
	case Colon:
		return "':'"
	case Bar:
		return "'|'"
	case Assignment:
		return "':='"
	case Semicolon:
		return "';'"
	case Comma:
		return "','"
	case Dot:
		return "'.'"
	case LiteralArrayStart:
		return "'#('"
	case ByteArrayStart:
		return "'#['"
	}
	return "token"
}

// Token is one lexeme with its source position, matching scanner.py's
// Token/SourcePosition pair (collapsed into one value since this port keeps
// the source text alongside each token rather than a separate SourceCode
// object).
type Token struct {
	Kind  Kind
	Text  string
	Pos   diag.Position
	Error string
}
