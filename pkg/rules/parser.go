package rules

import "strings"

// =============================================================================
// Parse Tree
// =============================================================================

// statement is one parsed line: either a rule or a named-parameter definition.
type statement struct {
	// Rule form: conditions => actions | :paramRef
	conditions []Condition
	actions    []Action
	paramRef   string // non-empty when the action list is a :name reference

	// Definition form: :name = actions
	paramName string // non-empty for named-parameter definitions

	line, col int
}

func (s *statement) isParamDef() bool { return s.paramName != "" }

// =============================================================================
// Grammar
// =============================================================================

// Grammar (EBNF):
//
//	query            := (rule | namedParamDef)*
//	namedParamDef    := NamedParameter '=' actionList
//	rule             := conditionList '=>' actionList
//	conditionList    := condition (',' condition)*
//	condition        := edgeCondition | plainCondition | StringLiteral
//	plainCondition   := Identifier ('(' StringLiteral ')')?
//	edgeCondition    := 'edge' '(' (StringLiteral | 'default' | '*') ')' chainedFilter*
//	chainedFilter    := '.' ('includes' | 'not_includes') '(' StringLiteral ')'
//	actionList       := (action (',' action)*) | namedParamRef
//	action           := Identifier '(' (StringLiteral | NumberLiteral) ')'
//	namedParamRef    := NamedParameter
//
// Statements are newline-delimited, so the parser groups the token stream by
// source line and parses each group independently. A malformed line yields a
// positioned error and parsing resumes on the next line.

// plainConditions maps plain condition identifiers to their kind and whether
// the kind requires a string argument. Identifier lookup is case-insensitive.
var plainConditions = map[string]struct {
	kind    ConditionKind
	wantArg bool
}{
	"default":            {CondDefault, false},
	"any":                {CondDefault, false},
	"orphan":             {CondOrphan, false},
	"has_incoming_links": {CondHasIncoming, false},
	"has_outgoing_links": {CondHasOutgoing, false},
	"tag":                {CondTag, true},
	"tagged":             {CondTagged, true},
	"folder":             {CondFolder, true},
	"link_to":            {CondLinkTo, true},
	"link_from":          {CondLinkFrom, true},
	"link":               {CondLink, true},
}

// parse tokenizes nothing: it consumes an already-lexed token stream and
// returns the statements it could parse plus all grammar errors encountered.
func parse(tokens []Token) ([]statement, []ParseError) {
	var stmts []statement
	var errs []ParseError

	for start := 0; start < len(tokens); {
		end := start + 1
		for end < len(tokens) && tokens[end].Line == tokens[start].Line {
			end++
		}
		p := &parser{tokens: tokens[start:end]}
		if stmt, ok := p.parseStatement(); ok {
			stmts = append(stmts, stmt)
		}
		errs = append(errs, p.errs...)
		start = end
	}

	return stmts, errs
}

// parser holds the state for a single statement parse.
type parser struct {
	tokens []Token
	pos    int
	errs   []ParseError
}

func (p *parser) peek() (Token, bool) {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos], true
	}
	return Token{}, false
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// expect consumes the next token if it has the wanted kind, recording a
// positioned error otherwise.
func (p *parser) expect(kind TokenKind) (Token, bool) {
	tok, ok := p.peek()
	if !ok {
		p.errorAtEnd("expected %s", kind)
		return Token{}, false
	}
	if tok.Kind != kind {
		p.errorAt(tok, "expected %s, found %s", kind, describe(tok))
		return Token{}, false
	}
	p.pos++
	return tok, true
}

func (p *parser) errorAt(tok Token, format string, args ...any) {
	p.errs = append(p.errs, errAt(tok.Line, tok.Col, format, args...))
}

// errorAtEnd anchors an error to the last token of the statement.
func (p *parser) errorAtEnd(format string, args ...any) {
	line, col := 0, 0
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		line, col = last.Line, last.Col+len(last.Text)
	}
	p.errs = append(p.errs, errAt(line, col, format, args...))
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenIdentifier, TokenNumber:
		return "'" + tok.Text + "'"
	case TokenString:
		return "string " + `"` + tok.Text + `"`
	case TokenNamedParam:
		return "':" + tok.Text + "'"
	default:
		return tok.Kind.String()
	}
}

// =============================================================================
// Statement Parsing
// =============================================================================

func (p *parser) parseStatement() (statement, bool) {
	first, ok := p.peek()
	if !ok {
		return statement{}, false
	}
	stmt := statement{line: first.Line, col: first.Col}

	// :name = actionList
	if first.Kind == TokenNamedParam {
		if len(p.tokens) < 2 || p.tokens[1].Kind != TokenEquals {
			p.errorAt(first, "expected '=' after parameter definition ':%s'", first.Text)
			return statement{}, false
		}
		p.pos = 2
		actions, ok := p.parseActions()
		if !ok {
			return statement{}, false
		}
		stmt.paramName = first.Text
		stmt.actions = actions
		return stmt, p.atStatementEnd()
	}

	// conditionList => actionList
	conditions, ok := p.parseConditionList()
	if !ok {
		return statement{}, false
	}
	if _, ok := p.expect(TokenArrow); !ok {
		return statement{}, false
	}

	if tok, ok := p.peek(); ok && tok.Kind == TokenNamedParam {
		p.pos++
		stmt.paramRef = tok.Text
	} else {
		actions, ok := p.parseActions()
		if !ok {
			return statement{}, false
		}
		stmt.actions = actions
	}
	stmt.conditions = conditions
	return stmt, p.atStatementEnd()
}

// atStatementEnd verifies the whole line was consumed.
func (p *parser) atStatementEnd() bool {
	if tok, ok := p.peek(); ok {
		p.errorAt(tok, "unexpected %s after statement", describe(tok))
		return false
	}
	return true
}

// =============================================================================
// Condition Parsing
// =============================================================================

func (p *parser) parseConditionList() ([]Condition, bool) {
	var conditions []Condition
	for {
		cond, ok := p.parseCondition()
		if !ok {
			return nil, false
		}
		conditions = append(conditions, cond)

		tok, ok := p.peek()
		if !ok || tok.Kind != TokenComma {
			return conditions, true
		}
		p.pos++
	}
}

func (p *parser) parseCondition() (Condition, bool) {
	tok, ok := p.next()
	if !ok {
		p.errorAtEnd("expected condition")
		return Condition{}, false
	}

	switch tok.Kind {
	case TokenString:
		return Condition{Kind: CondNodeName, Arg: tok.Text}, true

	case TokenIdentifier:
		if strings.EqualFold(tok.Text, "edge") {
			return p.parseEdgeCondition()
		}
		return p.parsePlainCondition(tok)

	default:
		p.errorAt(tok, "expected condition, found %s", describe(tok))
		return Condition{}, false
	}
}

func (p *parser) parsePlainCondition(ident Token) (Condition, bool) {
	entry, known := plainConditions[strings.ToLower(ident.Text)]
	if !known {
		p.errorAt(ident, "unknown condition %q", ident.Text)
		return Condition{}, false
	}

	next, hasNext := p.peek()
	hasArg := hasNext && next.Kind == TokenLParen

	if entry.wantArg {
		if !hasArg {
			p.errorAt(ident, "condition %q requires a quoted argument", ident.Text)
			return Condition{}, false
		}
		p.pos++ // consume '('
		arg, ok := p.expect(TokenString)
		if !ok {
			return Condition{}, false
		}
		if _, ok := p.expect(TokenRParen); !ok {
			return Condition{}, false
		}
		return Condition{Kind: entry.kind, Arg: arg.Text}, true
	}

	if hasArg {
		p.errorAt(next, "condition %q takes no argument", ident.Text)
		return Condition{}, false
	}
	return Condition{Kind: entry.kind}, true
}

func (p *parser) parseEdgeCondition() (Condition, bool) {
	if _, ok := p.expect(TokenLParen); !ok {
		return Condition{}, false
	}

	tok, ok := p.next()
	if !ok {
		p.errorAtEnd("expected edge argument")
		return Condition{}, false
	}

	var cond Condition
	switch {
	case tok.Kind == TokenString:
		cond = Condition{Kind: CondEdgeProperty, Arg: tok.Text}
	case tok.Kind == TokenStar:
		cond = Condition{Kind: CondEdgeAny}
	case tok.Kind == TokenIdentifier && strings.EqualFold(tok.Text, "default"):
		cond = Condition{Kind: CondEdgeDefault}
	default:
		p.errorAt(tok, "edge argument must be a quoted property name, 'default', or '*'")
		return Condition{}, false
	}

	if _, ok := p.expect(TokenRParen); !ok {
		return Condition{}, false
	}

	// Zero or more chained filters. Filters are edge-only grammar.
	for {
		next, ok := p.peek()
		if !ok || next.Kind != TokenDot {
			return cond, true
		}
		p.pos++

		name, ok := p.expect(TokenIdentifier)
		if !ok {
			return Condition{}, false
		}
		var not bool
		switch strings.ToLower(name.Text) {
		case "includes":
			not = false
		case "not_includes":
			not = true
		default:
			p.errorAt(name, "unknown filter %q (want includes or not_includes)", name.Text)
			return Condition{}, false
		}

		if _, ok := p.expect(TokenLParen); !ok {
			return Condition{}, false
		}
		arg, ok := p.expect(TokenString)
		if !ok {
			return Condition{}, false
		}
		if _, ok := p.expect(TokenRParen); !ok {
			return Condition{}, false
		}
		cond.Filters = append(cond.Filters, Filter{Substr: arg.Text, Not: not})
	}
}

// =============================================================================
// Action Parsing
// =============================================================================

func (p *parser) parseActions() ([]Action, bool) {
	var actions []Action
	for {
		action, ok := p.parseAction()
		if !ok {
			return nil, false
		}
		actions = append(actions, action)

		tok, ok := p.peek()
		if !ok || tok.Kind != TokenComma {
			return actions, true
		}
		p.pos++
	}
}

func (p *parser) parseAction() (Action, bool) {
	name, ok := p.expect(TokenIdentifier)
	if !ok {
		return Action{}, false
	}
	if _, ok := p.expect(TokenLParen); !ok {
		return Action{}, false
	}

	arg, ok := p.next()
	if !ok {
		p.errorAtEnd("expected action argument")
		return Action{}, false
	}
	if arg.Kind != TokenString && arg.Kind != TokenNumber {
		p.errorAt(arg, "action argument must be a string or number, found %s", describe(arg))
		return Action{}, false
	}

	if _, ok := p.expect(TokenRParen); !ok {
		return Action{}, false
	}

	// Unknown action names are kept: they drop out silently at apply time.
	return Action{Kind: actionKind(name.Text), Arg: arg.Text}, true
}
