package corvo

import "testing"

func lex(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := NewLexer(src).Scan()
	if err != nil {
		t.Fatalf("lex error: %v\nsource: %q", err, src)
	}
	return toks
}

func wantTypes(t *testing.T, toks []Token, types ...TokenType) {
	t.Helper()
	if len(toks) != len(types)+1 {
		t.Fatalf("want %d tokens + EOF, got %d: %v", len(types), len(toks), toks)
	}
	for i, tt := range types {
		if toks[i].Type != tt {
			t.Fatalf("token %d: want type %d, got %d (%q)", i, tt, toks[i].Type, toks[i].Lexeme)
		}
	}
	if toks[len(toks)-1].Type != EOF {
		t.Fatalf("missing EOF terminator")
	}
}

func TestLexStatement(t *testing.T) {
	toks := lex(t, `the score is 10`)
	wantTypes(t, toks, THE, IDENT, IS, NUMBER)
	if toks[1].Literal != "score" {
		t.Fatalf("ident literal: got %v", toks[1].Literal)
	}
	if toks[3].Literal != 10.0 {
		t.Fatalf("number literal: got %v", toks[3].Literal)
	}
}

func TestLexFusedKeywords(t *testing.T) {
	cases := []struct {
		src string
		tt  TokenType
	}{
		{"is equal to", IS_EQUAL_TO},
		{"is greater than", IS_GREATER_THAN},
		{"is less than", IS_LESS_THAN},
		{"remember as", REMEMBER_AS},
		{"read from", READ_FROM},
		{"read csv", READ_CSV},
		{"to csv", TO_CSV},
		{"get column", GET_COLUMN},
		{"get row", GET_ROW},
		{"length of", LENGTH_OF},
		{"count of", COUNT_OF},
		{"divided by", DIVIDED_BY},
		{"for each", FOR_EACH},
	}
	for _, tc := range cases {
		toks := lex(t, tc.src)
		wantTypes(t, toks, tc.tt)
	}
}

func TestLexFusionFallback(t *testing.T) {
	// A leading word that does not complete a fused keyword falls back to its
	// stand-alone meaning.
	wantTypes(t, lex(t, `is x`), IS, IDENT)
	wantTypes(t, lex(t, `to x`), TO, IDENT)
	// "read", "get", "length" alone are plain identifiers.
	wantTypes(t, lex(t, `read x`), IDENT, IDENT)
	wantTypes(t, lex(t, `get x`), IDENT, IDENT)
	wantTypes(t, lex(t, `length x`), IDENT, IDENT)
	// "is equally" must not half-consume "equal".
	wantTypes(t, lex(t, `is equally`), IS, IDENT)
}

func TestLexFusionDoesNotCrossLines(t *testing.T) {
	toks := lex(t, "is equal\nto")
	wantTypes(t, toks, IS, IDENT, TO)
}

func TestLexCommentsAndBlank(t *testing.T) {
	src := `
# a full comment line
display 1  # trailing comment

display 2
`
	toks := lex(t, src)
	wantTypes(t, toks, DISPLAY, NUMBER, DISPLAY, NUMBER)
}

func TestLexStringEscapes(t *testing.T) {
	toks := lex(t, `display "a\"b\\c\nd\te"`)
	wantTypes(t, toks, DISPLAY, STRING)
	want := "a\"b\\c\nd\te"
	if toks[1].Literal != want {
		t.Fatalf("string literal: want %q, got %q", want, toks[1].Literal)
	}
}

func TestLexNumbers(t *testing.T) {
	toks := lex(t, `display 3.25`)
	wantTypes(t, toks, DISPLAY, NUMBER)
	if toks[1].Literal != 3.25 {
		t.Fatalf("got %v", toks[1].Literal)
	}
}

func TestLexPositions(t *testing.T) {
	toks := lex(t, "display 1\n  the x is 2")
	if toks[0].Line != 1 || toks[0].Col != 1 {
		t.Fatalf("display at %d:%d", toks[0].Line, toks[0].Col)
	}
	// "the" follows two spaces of indent on line 2.
	if toks[2].Line != 2 || toks[2].Col != 3 {
		t.Fatalf("the at %d:%d", toks[2].Line, toks[2].Col)
	}
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"unterminated string", `display "oops`},
		{"newline in string", "display \"a\nb\""},
		{"unknown escape", `display "\q"`},
		{"bare decimal point", `display 3.`},
		{"stray character", `display 1 ; display 2`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLexer(tc.src).Scan()
			if err == nil {
				t.Fatalf("want lex error for %q", tc.src)
			}
			le, ok := err.(*LexError)
			if !ok {
				t.Fatalf("want *LexError, got %T: %v", err, err)
			}
			if le.Line < 1 || le.Col < 1 {
				t.Fatalf("bad error position %d:%d", le.Line, le.Col)
			}
		})
	}
}
