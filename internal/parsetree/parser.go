// Package parsetree turns a lex.Token stream into syntax IR
// (internal/ir's SyntaxXxx node kinds), grounded on
// original_source/pyst/parser.py's recursive-descent grammar: it parses
// straight into IR rather than through a separate intermediate parse-tree
// type, since internal/ir's SyntaxXxx kinds already are that tree.
package parsetree

import (
	"strconv"
	"strings"

	"github.com/dekarrin/stgraph/internal/diag"
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/lex"
	"github.com/dekarrin/stgraph/internal/mop"
)

// Parse scans and parses one source file into a single syntax node (a
// SyntaxSequence holding every top-level statement), grounded on
// parser.py's parseSequenceUntilEndOrErrorToken / module-level parse entry.
// Parse errors are recorded in the returned Accumulator and also embedded
// in the tree as ir.SyntaxError nodes, per spec.md §7's "never abort"
// failure model; the returned node is always non-nil.
func Parse(file, source string) (ir.Node, *diag.Accumulator) {
	p := &parser{file: file, tokens: lex.Scan(file, source), errs: &diag.Accumulator{}}
	seq := p.parseTopLevelSequence()
	return seq, p.errs
}

type parser struct {
	file   string
	tokens []lex.Token
	pos    int
	errs   *diag.Accumulator
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.tokens) || p.peekKind(0) == lex.EndOfSource
}

func (p *parser) peek(offset int) lex.Token {
	i := p.pos + offset
	if i < len(p.tokens) {
		return p.tokens[i]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) peekKind(offset int) lex.Kind { return p.peek(offset).Kind }

func (p *parser) next() lex.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) derivation(pos diag.Position) mop.Derivation { return mop.SourceCodeDerivation(pos) }

func (p *parser) errorHere(message string) *ir.SyntaxError {
	pos := p.peek(0).Pos
	p.errs.Add(diag.New(diag.Parser, pos, message))
	return ir.NewSyntaxError(p.derivation(pos), message, nil)
}

// expect consumes a token of the given kind, or records a parse error and
// returns a SyntaxError the caller can splice in as a replacement operand,
// mirroring expectAddingErrorToNode's "don't abort the parse" behavior.
func (p *parser) expect(kind lex.Kind, what string) (lex.Token, *ir.SyntaxError) {
	if p.peekKind(0) == kind {
		return p.next(), nil
	}
	return lex.Token{}, p.errorHere("expected " + what)
}

// parseTopLevelSequence parses `| locals | stmt1. stmt2. stmt3` until end of
// source, the shape of one whole compiled file.
func (p *parser) parseTopLevelSequence() ir.Node {
	startPos := p.peek(0).Pos
	locals := p.parseOptionalLocalsDeclaration()
	var elements []ir.Node
	for !p.atEnd() {
		elements = append(elements, p.parseAssignmentExpression())
		if p.peekKind(0) == lex.Dot {
			p.next()
			continue
		}
		break
	}
	if !p.atEnd() {
		elements = append(elements, p.errorHere("expected '.' or end of source"))
	}
	return ir.NewSyntaxSequence(p.derivation(startPos), locals, nil, elements)
}

// parseOptionalLocalsDeclaration parses a leading `| a b c |` local-variable
// declaration, if present.
func (p *parser) parseOptionalLocalsDeclaration() []ir.Node {
	if p.peekKind(0) != lex.Bar {
		return nil
	}
	p.next()
	var locals []ir.Node
	for p.peekKind(0) == lex.Identifier {
		tok := p.next()
		locals = append(locals, ir.NewSyntaxArgument(p.derivation(tok.Pos), tok.Text))
	}
	if _, err := p.expect(lex.Bar, "'|' to close local variable declaration"); err != nil {
		locals = append(locals, err)
	}
	return locals
}

// parseBracedSequence parses the body of a `{ ... }` array or a `[ ... ]`
// block: `| locals | stmt1. stmt2` up to the closing delimiter, which the
// caller consumes.
func (p *parser) parseBracedSequence(closing lex.Kind) ir.Node {
	startPos := p.peek(0).Pos
	locals := p.parseOptionalLocalsDeclaration()
	var elements []ir.Node
	for p.peekKind(0) != closing && !p.atEnd() {
		elements = append(elements, p.parseAssignmentExpression())
		if p.peekKind(0) == lex.Dot {
			p.next()
			continue
		}
		break
	}
	return ir.NewSyntaxSequence(p.derivation(startPos), locals, nil, elements)
}

// parseAssignmentExpression parses `identifier := expr` or falls through to
// a cascaded keyword expression.
func (p *parser) parseAssignmentExpression() ir.Node {
	if p.peekKind(0) == lex.Identifier && p.peekKind(1) == lex.Assignment {
		tok := p.next()
		p.next() // ':='
		store := ir.NewSyntaxIdentifierReference(p.derivation(tok.Pos), tok.Text)
		value := p.parseAssignmentExpression()
		return ir.NewSyntaxAssignment(p.derivation(tok.Pos), store, value)
	}
	return p.parseCascadedExpression()
}

// parseCascadedExpression parses a keyword-message expression and, if
// followed by `;`, folds it and any further `; selector args` legs into a
// SyntaxMessageCascade sharing the first message's receiver.
func (p *parser) parseCascadedExpression() ir.Node {
	pos := p.peek(0).Pos
	expr := p.parseKeywordExpression()
	if p.peekKind(0) != lex.Semicolon {
		return expr
	}

	receiver, firstMessage, ok := cascadeReceiverAndMessage(expr)
	if !ok {
		return p.errorHere("cascade (';') may only follow a message send")
	}
	messages := []ir.Node{firstMessage}
	for p.peekKind(0) == lex.Semicolon {
		p.next()
		messages = append(messages, p.parseCascadeLeg())
	}
	return ir.NewSyntaxMessageCascade(p.derivation(pos), receiver, messages)
}

// cascadeReceiverAndMessage splits a just-parsed message send into the
// receiver a cascade resends every leg to, and that first send re-expressed
// as a SyntaxCascadeMessage leg.
func cascadeReceiverAndMessage(expr ir.Node) (ir.Node, ir.Node, bool) {
	send, ok := expr.(*ir.SyntaxMessageSend)
	if !ok {
		return nil, nil, false
	}
	return send.Receiver, ir.NewSyntaxCascadeMessage(send.Header().Derivation, send.Selector, send.Arguments), true
}

func (p *parser) parseCascadeLeg() ir.Node {
	pos := p.peek(0).Pos
	switch p.peekKind(0) {
	case lex.Keyword, lex.MultiKeyword:
		selector, args := p.parseKeywordParts()
		return ir.NewSyntaxCascadeMessage(p.derivation(pos), selector, args)
	case lex.Identifier:
		tok := p.next()
		selector := ir.NewSyntaxLiteralSymbol(p.derivation(tok.Pos), tok.Text)
		return ir.NewSyntaxCascadeMessage(p.derivation(pos), selector, nil)
	case lex.Operator, lex.LessThan, lex.GreaterThan, lex.Caret:
		tok := p.next()
		selector := ir.NewSyntaxLiteralSymbol(p.derivation(tok.Pos), tok.Text)
		arg := p.parseUnaryExpression()
		return ir.NewSyntaxCascadeMessage(p.derivation(pos), selector, []ir.Node{arg})
	default:
		return p.errorHere("expected a cascade message")
	}
}

// parseKeywordExpression parses a binary-message expression and, if
// followed by keyword parts, folds them into one SyntaxMessageSend whose
// selector is every keyword part concatenated.
func (p *parser) parseKeywordExpression() ir.Node {
	pos := p.peek(0).Pos
	receiver := p.parseBinaryExpression()
	if p.peekKind(0) != lex.Keyword && p.peekKind(0) != lex.MultiKeyword {
		return receiver
	}
	selector, args := p.parseKeywordParts()
	return ir.NewSyntaxMessageSend(p.derivation(pos), receiver, selector, args)
}

// parseKeywordParts consumes one or more `keyword: binaryExpr` parts,
// returning the concatenated selector symbol and the parsed arguments.
func (p *parser) parseKeywordParts() (ir.Node, []ir.Node) {
	pos := p.peek(0).Pos
	var name strings.Builder
	var args []ir.Node
	for p.peekKind(0) == lex.Keyword || p.peekKind(0) == lex.MultiKeyword {
		tok := p.next()
		name.WriteString(tok.Text)
		args = append(args, p.parseBinaryExpression())
	}
	return ir.NewSyntaxLiteralSymbol(p.derivation(pos), name.String()), args
}

// parseBinaryExpression parses a left-to-right chain of unary expressions
// joined by binary selectors into a flat SyntaxBinaryExpressionSequence,
// deferring precedence/associativity to internal/analyze's expansion pass
// (see expandSyntaxBinaryExpressionSequence in internal/analyze).
func (p *parser) parseBinaryExpression() ir.Node {
	pos := p.peek(0).Pos
	first := p.parseUnaryExpression()
	elements := []ir.Node{first}
	for isBinarySelector(p.peekKind(0)) {
		tok := p.next()
		elements = append(elements, ir.NewSyntaxLiteralSymbol(p.derivation(tok.Pos), tok.Text))
		elements = append(elements, p.parseUnaryExpression())
	}
	if len(elements) == 1 {
		return first
	}
	return ir.NewSyntaxBinaryExpressionSequence(p.derivation(pos), elements)
}

func isBinarySelector(k lex.Kind) bool {
	switch k {
	case lex.Operator, lex.LessThan, lex.GreaterThan, lex.Caret:
		return true
	}
	return false
}

// parseUnaryExpression parses a primary followed by zero or more unary
// (no-argument, no-colon) message sends, left-associatively.
func (p *parser) parseUnaryExpression() ir.Node {
	pos := p.peek(0).Pos
	expr := p.parsePrimary()
	for p.peekKind(0) == lex.Identifier {
		tok := p.next()
		selector := ir.NewSyntaxLiteralSymbol(p.derivation(tok.Pos), tok.Text)
		expr = ir.NewSyntaxMessageSend(p.derivation(pos), expr, selector, nil)
	}
	return expr
}

func (p *parser) parsePrimary() ir.Node {
	tok := p.peek(0)
	pos := tok.Pos
	switch tok.Kind {
	case lex.Integer:
		p.next()
		return ir.NewSyntaxLiteralInteger(p.derivation(pos), parseIntegerLiteral(tok.Text))
	case lex.Float:
		p.next()
		v, _ := strconv.ParseFloat(tok.Text, 64)
		return ir.NewSyntaxLiteralFloat(p.derivation(pos), v)
	case lex.String:
		p.next()
		return ir.NewSyntaxLiteralString(p.derivation(pos), unescapeQuoted(tok.Text))
	case lex.Symbol:
		p.next()
		return ir.NewSyntaxLiteralSymbol(p.derivation(pos), parseSymbolLiteral(tok.Text))
	case lex.Character:
		p.next()
		return ir.NewSyntaxLiteralCharacter(p.derivation(pos), []rune(tok.Text)[1])
	case lex.Identifier:
		// true, false, and nil are ordinary identifiers resolved against
		// the environment's seeded bindings (build.TopLevelEnvironment),
		// not literals of their own syntax kind.
		p.next()
		return ir.NewSyntaxIdentifierReference(p.derivation(pos), tok.Text)
	case lex.LeftParen:
		p.next()
		expr := p.parseAssignmentExpression()
		if _, err := p.expect(lex.RightParen, "')'"); err != nil {
			return err
		}
		return expr
	case lex.LeftBracket:
		return p.parseBlock()
	case lex.LeftCurly:
		p.next()
		body := p.parseBracedSequence(lex.RightCurly)
		if _, err := p.expect(lex.RightCurly, "'}'"); err != nil {
			return err
		}
		return ir.NewSyntaxArray(p.derivation(pos), sequenceToArrayElements(body))
	case lex.LiteralArrayStart:
		p.next()
		return p.parseLiteralArray(pos)
	case lex.Error:
		p.next()
		p.errs.Add(diag.New(diag.Scanner, pos, tok.Error))
		return ir.NewSyntaxError(p.derivation(pos), tok.Error, nil)
	}
	p.next()
	return p.errorHere("expected an expression")
}

// sequenceToArrayElements lifts a parsed `{ ... }` body's statements into
// plain array elements: a brace array's contents are ordinary expressions,
// not a `:=`-threaded statement sequence, so locals/pragmas never apply.
func sequenceToArrayElements(body ir.Node) []ir.Node {
	seq, ok := body.(*ir.SyntaxSequence)
	if !ok {
		return []ir.Node{body}
	}
	return seq.Elements
}

func (p *parser) parseBlock() ir.Node {
	pos := p.peek(0).Pos
	p.next() // '['
	var args []ir.Node
	for p.peekKind(0) == lex.Colon {
		p.next()
		nameTok, err := p.expect(lex.Identifier, "argument name")
		if err != nil {
			args = append(args, err)
			continue
		}
		args = append(args, ir.NewSyntaxArgument(p.derivation(nameTok.Pos), nameTok.Text))
	}
	if len(args) > 0 {
		if _, err := p.expect(lex.Bar, "'|' after block arguments"); err != nil {
			args = append(args, err)
		}
	}
	body := p.parseBracedSequence(lex.RightBracket)
	if _, err := p.expect(lex.RightBracket, "']'"); err != nil {
		return err
	}
	return ir.NewSyntaxBlock(p.derivation(pos), args, body)
}

// parseLiteralArray parses the restricted `#( ... )` grammar: literals,
// bare identifiers (read as symbols), and nested literal arrays, per
// scanner.py/parser.py's #(...) handling.
func (p *parser) parseLiteralArray(pos diag.Position) ir.Node {
	var elements []ir.Node
	for p.peekKind(0) != lex.RightParen && !p.atEnd() {
		elements = append(elements, p.parseLiteralArrayElement())
	}
	if _, err := p.expect(lex.RightParen, "')' to close literal array"); err != nil {
		elements = append(elements, err)
	}
	return ir.NewSyntaxArray(p.derivation(pos), elements)
}

func (p *parser) parseLiteralArrayElement() ir.Node {
	tok := p.peek(0)
	pos := tok.Pos
	switch tok.Kind {
	case lex.Integer:
		p.next()
		return ir.NewSyntaxLiteralInteger(p.derivation(pos), parseIntegerLiteral(tok.Text))
	case lex.Float:
		p.next()
		v, _ := strconv.ParseFloat(tok.Text, 64)
		return ir.NewSyntaxLiteralFloat(p.derivation(pos), v)
	case lex.String:
		p.next()
		return ir.NewSyntaxLiteralString(p.derivation(pos), unescapeQuoted(tok.Text))
	case lex.Symbol:
		p.next()
		return ir.NewSyntaxLiteralSymbol(p.derivation(pos), parseSymbolLiteral(tok.Text))
	case lex.Character:
		p.next()
		return ir.NewSyntaxLiteralCharacter(p.derivation(pos), []rune(tok.Text)[1])
	case lex.Identifier, lex.Keyword, lex.MultiKeyword, lex.Operator, lex.LessThan, lex.GreaterThan, lex.Caret, lex.Bar:
		p.next()
		return ir.NewSyntaxLiteralSymbol(p.derivation(pos), tok.Text)
	case lex.LiteralArrayStart:
		p.next()
		return p.parseLiteralArray(pos)
	default:
		p.next()
		return p.errorHere("expected a literal array element")
	}
}

func parseIntegerLiteral(text string) int64 {
	if i := strings.IndexAny(text, "rR"); i >= 0 {
		radix, _ := strconv.ParseInt(text[:i], 10, 64)
		abs := radix
		if abs < 0 {
			abs = -abs
		}
		v, _ := strconv.ParseInt(text[i+1:], int(abs), 64)
		if radix < 0 {
			return -v
		}
		return v
	}
	v, _ := strconv.ParseInt(text, 10, 64)
	return v
}

// unescapeQuoted strips the surrounding quotes from a scanned string/symbol
// literal and collapses doubled quotes into one literal quote character.
func unescapeQuoted(text string) string {
	inner := text
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	return strings.ReplaceAll(inner, "''", "'")
}

// parseSymbolLiteral strips a scanned Symbol token down to its bare name:
// `#foo` -> `foo`, `#foo:bar:` -> `foo:bar:`, `#+` -> `+`, `#'quoted'` ->
// unescapeQuoted's result.
func parseSymbolLiteral(text string) string {
	body := text[1:] // drop leading '#'
	if strings.HasPrefix(body, "'") {
		return unescapeQuoted(body)
	}
	return body
}
