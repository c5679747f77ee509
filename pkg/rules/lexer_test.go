package rules

import "testing"

func TestLexTokenKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kinds []TokenKind
	}{
		{"empty", "", nil},
		{"whitespace only", "  \t\n  ", nil},
		{"comment only", "// a comment\n", nil},
		{"identifier", "default", []TokenKind{TokenIdentifier}},
		{"arrow", "=>", []TokenKind{TokenArrow}},
		{"equals", "=", []TokenKind{TokenEquals}},
		{"named parameter", ":highlight", []TokenKind{TokenNamedParam}},
		{"double quoted string", `"red"`, []TokenKind{TokenString}},
		{"single quoted string", `'red'`, []TokenKind{TokenString}},
		{"integer", "42", []TokenKind{TokenNumber}},
		{"fraction", "0.3", []TokenKind{TokenNumber}},
		{
			"rule",
			`tagged("x") => color("red"), size(2)`,
			[]TokenKind{
				TokenIdentifier, TokenLParen, TokenString, TokenRParen, TokenArrow,
				TokenIdentifier, TokenLParen, TokenString, TokenRParen, TokenComma,
				TokenIdentifier, TokenLParen, TokenNumber, TokenRParen,
			},
		},
		{
			"edge catch-all with filter",
			`edge(*).not_includes("tag:")`,
			[]TokenKind{
				TokenIdentifier, TokenLParen, TokenStar, TokenRParen,
				TokenDot, TokenIdentifier, TokenLParen, TokenString, TokenRParen,
			},
		},
		{
			"param definition",
			`:highlight = color("yellow")`,
			[]TokenKind{
				TokenNamedParam, TokenEquals,
				TokenIdentifier, TokenLParen, TokenString, TokenRParen,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := Lex(tt.input)
			if len(errs) != 0 {
				t.Fatalf("Lex(%q) errors = %v, want none", tt.input, errs)
			}
			if len(tokens) != len(tt.kinds) {
				t.Fatalf("Lex(%q) = %d tokens, want %d", tt.input, len(tokens), len(tt.kinds))
			}
			for i, k := range tt.kinds {
				if tokens[i].Kind != k {
					t.Errorf("token %d kind = %v, want %v", i, tokens[i].Kind, k)
				}
			}
		})
	}
}

func TestLexText(t *testing.T) {
	tokens, errs := Lex(`:p = color("soft red")`)
	if len(errs) != 0 {
		t.Fatalf("errors = %v, want none", errs)
	}

	if tokens[0].Text != "p" {
		t.Errorf("named param text = %q, want %q (colon stripped)", tokens[0].Text, "p")
	}
	if got := tokens[4].Text; got != "soft red" {
		t.Errorf("string text = %q, want %q (quotes stripped)", got, "soft red")
	}
}

func TestLexPositions(t *testing.T) {
	input := "default => color(\"red\")\ntagged(\"x\") => size(2)\n"
	tokens, errs := Lex(input)
	if len(errs) != 0 {
		t.Fatalf("errors = %v, want none", errs)
	}

	// First token of each line.
	if tokens[0].Line != 1 || tokens[0].Col != 1 {
		t.Errorf("first token at %d:%d, want 1:1", tokens[0].Line, tokens[0].Col)
	}
	var second *Token
	for i := range tokens {
		if tokens[i].Line == 2 {
			second = &tokens[i]
			break
		}
	}
	if second == nil {
		t.Fatal("no tokens on line 2")
	}
	if second.Col != 1 {
		t.Errorf("line 2 starts at col %d, want 1", second.Col)
	}
	if second.Text != "tagged" {
		t.Errorf("line 2 first token = %q, want %q", second.Text, "tagged")
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantCol  int
	}{
		{"unterminated double", `color("red`, 1, 7},
		{"unterminated single", `color('red`, 1, 7},
		{"string broken by newline", "\"red\nblue\"", 1, 1},
		{"unexpected character", "default => color(\"x\") %", 1, 23},
		{"bare colon", "a : b", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Lex(tt.input)
			if len(errs) == 0 {
				t.Fatalf("Lex(%q) returned no errors, want at least one", tt.input)
			}
			e := errs[0]
			if e.Line != tt.wantLine || e.Col != tt.wantCol {
				t.Errorf("error at %d:%d, want %d:%d (%s)", e.Line, e.Col, tt.wantLine, tt.wantCol, e.Message)
			}
		})
	}
}

func TestLexUnicode(t *testing.T) {
	t.Run("string argument", func(t *testing.T) {
		tokens, errs := Lex(`tagged("héllo") => color("x")`)
		if len(errs) != 0 {
			t.Fatalf("errors = %v, want none", errs)
		}
		if got := tokens[2].Text; got != "héllo" {
			t.Errorf("string text = %q, want %q", got, "héllo")
		}
		// Columns count runes: the arrow sits at rune column 17 even though
		// the é before it is two bytes.
		if arrow := tokens[4]; arrow.Kind != TokenArrow || arrow.Col != 17 {
			t.Errorf("arrow token = %v at col %d, want arrow at col 17", arrow.Kind, arrow.Col)
		}
	})

	t.Run("stray rune outside string", func(t *testing.T) {
		tokens, errs := Lex(`é => color("x")`)
		if len(errs) != 1 {
			t.Fatalf("errors = %v, want exactly one", errs)
		}
		if e := errs[0]; e.Line != 1 || e.Col != 1 {
			t.Errorf("error at %d:%d, want 1:1", e.Line, e.Col)
		}
		if want := `unexpected character "é"`; errs[0].Message != want {
			t.Errorf("error message = %q, want %q", errs[0].Message, want)
		}
		if len(tokens) == 0 || tokens[0].Kind != TokenArrow {
			t.Errorf("lexing should continue past the bad rune, got %v", tokens)
		}
	})

	t.Run("error column after multi-byte rune", func(t *testing.T) {
		_, errs := Lex(`tagged("é") %`)
		if len(errs) != 1 {
			t.Fatalf("errors = %v, want exactly one", errs)
		}
		if e := errs[0]; e.Col != 13 {
			t.Errorf("error col = %d, want 13 (rune count)", e.Col)
		}
	})
}

func TestLexContinuesPastErrors(t *testing.T) {
	tokens, errs := Lex("% default")
	if len(errs) != 1 {
		t.Fatalf("errors = %d, want 1", len(errs))
	}
	if len(tokens) != 1 || tokens[0].Text != "default" {
		t.Errorf("tokens after error = %v, want the default identifier", tokens)
	}
}
