package rules

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdentifier     // [A-Za-z_][A-Za-z0-9_]*
	TokenNamedParam     // :identifier (text stored without the colon)
	TokenString         // '...' or "..." without escape processing
	TokenNumber         // [0-9]+(.[0-9]+)? - unsigned decimal
	TokenArrow          // =>
	TokenEquals         // =
	TokenLParen         // (
	TokenRParen         // )
	TokenComma          // ,
	TokenStar           // *, used only inside edge(*)
	TokenDot            // ., chained-filter separator
)

var tokenNames = map[TokenKind]string{
	TokenEOF:        "EOF",
	TokenIdentifier: "identifier",
	TokenNamedParam: "named parameter",
	TokenString:     "string",
	TokenNumber:     "number",
	TokenArrow:      "'=>'",
	TokenEquals:     "'='",
	TokenLParen:     "'('",
	TokenRParen:     "')'",
	TokenComma:      "','",
	TokenStar:       "'*'",
	TokenDot:        "'.'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the lexer.
// Line and Col are 1-based and point at the token's first character.
// For TokenString the Text carries the unquoted content; for TokenNamedParam
// the identifier without its leading colon.
type Token struct {
	Kind TokenKind
	Text string
	Line int
	Col  int
}
