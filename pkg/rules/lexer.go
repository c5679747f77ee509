package rules

import "unicode/utf8"

// Lex performs lexical analysis on query text and returns the token stream
// alongside any positioned lexing errors. Whitespace is discarded, `//`
// comments run to end of line, and lexing continues past errors so that a
// single bad character does not hide the rest of the input.
//
// Input is UTF-8: columns count runes, not bytes, so positions stay accurate
// after multi-byte characters. All token-forming characters are ASCII;
// non-ASCII runes are legal only inside string literals.
//
// The returned stream does not include an EOF token; the parser works on the
// finite slice directly.
func Lex(input string) ([]Token, []ParseError) {
	var tokens []Token
	var errs []ParseError

	line, col := 1, 1
	i := 0

	// advance consumes n runes. i always sits on a rune boundary, so
	// single-byte peeks at ASCII token characters stay valid.
	advance := func(n int) {
		for ; n > 0; n-- {
			r, size := utf8.DecodeRuneInString(input[i:])
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			i += size
		}
	}

	for i < len(input) {
		c := input[i]

		// Whitespace is discarded.
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			advance(1)
			continue
		}

		// Comment lines run to end of line.
		if c == '/' && i+1 < len(input) && input[i+1] == '/' {
			for i < len(input) && input[i] != '\n' {
				advance(1)
			}
			continue
		}

		startLine, startCol := line, col

		switch {
		case c == '=':
			if i+1 < len(input) && input[i+1] == '>' {
				tokens = append(tokens, Token{TokenArrow, "=>", startLine, startCol})
				advance(2)
			} else {
				tokens = append(tokens, Token{TokenEquals, "=", startLine, startCol})
				advance(1)
			}

		case c == '(':
			tokens = append(tokens, Token{TokenLParen, "(", startLine, startCol})
			advance(1)

		case c == ')':
			tokens = append(tokens, Token{TokenRParen, ")", startLine, startCol})
			advance(1)

		case c == ',':
			tokens = append(tokens, Token{TokenComma, ",", startLine, startCol})
			advance(1)

		case c == '*':
			tokens = append(tokens, Token{TokenStar, "*", startLine, startCol})
			advance(1)

		case c == '.':
			tokens = append(tokens, Token{TokenDot, ".", startLine, startCol})
			advance(1)

		case c == '\'' || c == '"':
			quote := c
			advance(1)
			start := i
			terminated := false
			for i < len(input) {
				if input[i] == quote {
					terminated = true
					break
				}
				if input[i] == '\n' {
					break
				}
				advance(1)
			}
			if !terminated {
				errs = append(errs, errAt(startLine, startCol, "unterminated string literal"))
				continue
			}
			text := input[start:i]
			advance(1) // closing quote
			tokens = append(tokens, Token{TokenString, text, startLine, startCol})

		// Named parameters win over bare identifiers when the colon prefixes one.
		case c == ':':
			if i+1 < len(input) && isIdentStart(input[i+1]) {
				advance(1)
				start := i
				for i < len(input) && isIdentChar(input[i]) {
					advance(1)
				}
				tokens = append(tokens, Token{TokenNamedParam, input[start:i], startLine, startCol})
			} else {
				errs = append(errs, errAt(startLine, startCol, "':' must be followed by a parameter name"))
				advance(1)
			}

		case isIdentStart(c):
			start := i
			for i < len(input) && isIdentChar(input[i]) {
				advance(1)
			}
			tokens = append(tokens, Token{TokenIdentifier, input[start:i], startLine, startCol})

		case isDigit(c):
			start := i
			for i < len(input) && isDigit(input[i]) {
				advance(1)
			}
			if i+1 < len(input) && input[i] == '.' && isDigit(input[i+1]) {
				advance(1)
				for i < len(input) && isDigit(input[i]) {
					advance(1)
				}
			}
			tokens = append(tokens, Token{TokenNumber, input[start:i], startLine, startCol})

		default:
			r, _ := utf8.DecodeRuneInString(input[i:])
			errs = append(errs, errAt(startLine, startCol, "unexpected character %q", string(r)))
			advance(1)
		}
	}

	return tokens, errs
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
