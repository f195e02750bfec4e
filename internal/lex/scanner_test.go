package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	ks := make([]Kind, len(tokens))
	for i, t := range tokens {
		ks[i] = t.Kind
	}
	return ks
}

func TestScan_AlwaysEndsWithEndOfSource(t *testing.T) {
	tokens := Scan("t.st", "")
	require.Len(t, tokens, 1)
	assert.Equal(t, EndOfSource, tokens[0].Kind)
}

func TestScan_IdentifierAndKeywordMessage(t *testing.T) {
	// Each keyword part of "at: 1 put: 2" is its own Keyword token;
	// internal/parsetree's parseKeywordParts is what concatenates
	// successive parts into one "at:put:" selector, since the scanner
	// only fuses colon-terminated identifiers that are directly adjacent
	// with no argument between them (scanKeywordPart never skips
	// whitespace).
	tokens := Scan("t.st", "foo at: 1 put: 2")
	require.Equal(t, []Kind{Identifier, Keyword, Integer, Keyword, Integer, EndOfSource}, kinds(tokens))
	assert.Equal(t, "foo", tokens[0].Text)
	assert.Equal(t, "at:", tokens[1].Text)
	assert.Equal(t, "put:", tokens[3].Text)
}

func TestScan_AdjacentKeywordPartsFuseIntoMultiKeyword(t *testing.T) {
	// Directly adjacent "ident:ident:" with no argument in between (as
	// in a bare selector reference) scans as one MultiKeyword token.
	tokens := Scan("t.st", "at:put:")
	require.Equal(t, []Kind{MultiKeyword, EndOfSource}, kinds(tokens))
	assert.Equal(t, "at:put:", tokens[0].Text)
}

func TestScan_RadixInteger(t *testing.T) {
	tokens := Scan("t.st", "16rFF")
	require.Equal(t, []Kind{Integer, EndOfSource}, kinds(tokens))
	assert.Equal(t, "16rFF", tokens[0].Text)
}

func TestScan_FloatWithExponent(t *testing.T) {
	tokens := Scan("t.st", "1.5e-3")
	require.Equal(t, []Kind{Float, EndOfSource}, kinds(tokens))
	assert.Equal(t, "1.5e-3", tokens[0].Text)
}

func TestScan_NegativeNumberAdjacentToOperatorSwallowsTheSign(t *testing.T) {
	// Smalltalk's grammar lexes a leading '+'/'-' as part of the number
	// itself whenever it is immediately followed by a digit, regardless
	// of what precedes it, so "3-4" (no space) scans as two adjacent
	// integer literals rather than a subtraction. A binary minus needs
	// separating whitespace: "3 - 4".
	tokens := Scan("t.st", "3-4")
	require.Equal(t, []Kind{Integer, Integer, EndOfSource}, kinds(tokens))
	assert.Equal(t, "3", tokens[0].Text)
	assert.Equal(t, "-4", tokens[1].Text)

	spaced := Scan("t.st", "3 - 4")
	require.Equal(t, []Kind{Integer, Operator, Integer, EndOfSource}, kinds(spaced))
	assert.Equal(t, "-", spaced[1].Text)
}

func TestScan_QuotedStringWithDoubledQuoteEscape(t *testing.T) {
	tokens := Scan("t.st", "'it''s'")
	require.Equal(t, []Kind{String, EndOfSource}, kinds(tokens))
	assert.Equal(t, "'it''s'", tokens[0].Text)
}

func TestScan_UnterminatedStringProducesErrorToken(t *testing.T) {
	tokens := Scan("t.st", "'unterminated")
	require.Equal(t, []Kind{Error, EndOfSource}, kinds(tokens))
	assert.NotEmpty(t, tokens[0].Error)
}

func TestScan_UnterminatedCommentProducesErrorToken(t *testing.T) {
	tokens := Scan("t.st", "\"never closed")
	require.Equal(t, []Kind{Error, EndOfSource}, kinds(tokens))
	assert.NotEmpty(t, tokens[0].Error)
}

func TestScan_CommentIsSkipped(t *testing.T) {
	tokens := Scan("t.st", "1 \"a comment\" + 2")
	require.Equal(t, []Kind{Integer, Operator, Integer, EndOfSource}, kinds(tokens))
}

func TestScan_SymbolVariants(t *testing.T) {
	tokens := Scan("t.st", "#foo #at:put: #+ #'quoted sym' #(1 2) #[1 2]")
	require.Equal(t, []Kind{
		Symbol, Symbol, Symbol, Symbol,
		LiteralArrayStart, Integer, Integer, RightParen,
		ByteArrayStart, Integer, Integer, RightBracket,
		EndOfSource,
	}, kinds(tokens))
	assert.Equal(t, "#foo", tokens[0].Text)
	assert.Equal(t, "#at:put:", tokens[1].Text)
	assert.Equal(t, "#+", tokens[2].Text)
	assert.Equal(t, "#'quoted sym'", tokens[3].Text)
}

func TestScan_CharacterLiteral(t *testing.T) {
	tokens := Scan("t.st", "$a")
	require.Equal(t, []Kind{Character, EndOfSource}, kinds(tokens))
	assert.Equal(t, "$a", tokens[0].Text)
}

func TestScan_IncompleteCharacterLiteralProducesErrorToken(t *testing.T) {
	tokens := Scan("t.st", "$")
	require.Equal(t, []Kind{Error, EndOfSource}, kinds(tokens))
}

func TestScan_AssignmentVersusColon(t *testing.T) {
	tokens := Scan("t.st", ":= :")
	require.Equal(t, []Kind{Assignment, Colon, EndOfSource}, kinds(tokens))
}

func TestScan_BarVersusOperatorRunStartingWithBar(t *testing.T) {
	tokens := Scan("t.st", "| |= ||")
	require.Equal(t, []Kind{Bar, Operator, Operator, EndOfSource}, kinds(tokens))
}

func TestScan_RelationalOperatorsGetDedicatedKinds(t *testing.T) {
	tokens := Scan("t.st", "< > ^")
	require.Equal(t, []Kind{LessThan, GreaterThan, Caret, EndOfSource}, kinds(tokens))
}

func TestScan_UnexpectedCharacterProducesErrorToken(t *testing.T) {
	tokens := Scan("t.st", "\x01")
	require.Equal(t, []Kind{Error, EndOfSource}, kinds(tokens))
}

func TestScan_PositionTracksLineAndColumn(t *testing.T) {
	tokens := Scan("t.st", "foo\nbar")
	require.Equal(t, []Kind{Identifier, Identifier, EndOfSource}, kinds(tokens))
	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 2, tokens[1].Pos.Line)
	assert.Equal(t, "t.st", tokens[1].Pos.File)
}
