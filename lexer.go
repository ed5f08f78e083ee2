// lexer.go — scanner for Corvo source text.
//
// Corvo keywords are English words, several of them multi-word ("is equal
// to", "remember as", "read csv", "get column", ...). The scanner fuses each
// multi-word keyword into a single token by peeking at the following words,
// so the parser only ever sees one token per construct keyword. A word that
// does not complete a fused keyword falls back to a plain identifier (or to
// the single-word keyword, for words like "is" and "to" that stand alone).
package corvo

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenType is the kind of a lexical token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LBRACKET // "["
	RBRACKET // "]"
	COLON    // ":"
	COMMA    // ","

	// Literals & identifiers
	IDENT
	STRING
	NUMBER

	// Single-word keywords
	THE
	IS
	DISPLAY
	ASK
	IF
	THEN
	OTHERWISE
	REPEAT
	LOOPS
	WHILE
	DO
	IN
	SECTION
	APPEND
	REMOVE
	TO
	FROM
	WRITE
	SET
	ROW
	COLUMN
	AT
	AND
	OR
	PLUS
	MINUS
	TIMES

	// Fused multi-word keywords
	IS_EQUAL_TO
	IS_GREATER_THAN
	IS_LESS_THAN
	REMEMBER_AS
	READ_FROM
	READ_CSV
	TO_CSV
	GET_COLUMN
	GET_ROW
	LENGTH_OF
	COUNT_OF
	DIVIDED_BY
	FOR_EACH
)

// Token is a lexical token with an optional literal value (float64 for
// NUMBER, decoded string for STRING). Line is 1-based, Col is 1-based.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
	Col     int
}

// singleKeywords maps stand-alone keyword words to their token types.
var singleKeywords = map[string]TokenType{
	"the":       THE,
	"is":        IS,
	"display":   DISPLAY,
	"ask":       ASK,
	"if":        IF,
	"then":      THEN,
	"otherwise": OTHERWISE,
	"repeat":    REPEAT,
	"loops":     LOOPS,
	"while":     WHILE,
	"do":        DO,
	"in":        IN,
	"section":   SECTION,
	"append":    APPEND,
	"remove":    REMOVE,
	"to":        TO,
	"from":      FROM,
	"write":     WRITE,
	"set":       SET,
	"row":       ROW,
	"column":    COLUMN,
	"at":        AT,
	"and":       AND,
	"or":        OR,
	"plus":      PLUS,
	"minus":     MINUS,
	"times":     TIMES,
}

// fusion lists, per leading word, the word sequences that complete a fused
// keyword. Longer sequences are listed first so "is greater than" wins over
// any shorter prefix.
var fusion = map[string][]struct {
	rest []string
	tt   TokenType
}{
	"is":       {{[]string{"equal", "to"}, IS_EQUAL_TO}, {[]string{"greater", "than"}, IS_GREATER_THAN}, {[]string{"less", "than"}, IS_LESS_THAN}},
	"remember": {{[]string{"as"}, REMEMBER_AS}},
	"read":     {{[]string{"from"}, READ_FROM}, {[]string{"csv"}, READ_CSV}},
	"to":       {{[]string{"csv"}, TO_CSV}},
	"get":      {{[]string{"column"}, GET_COLUMN}, {[]string{"row"}, GET_ROW}},
	"length":   {{[]string{"of"}, LENGTH_OF}},
	"count":    {{[]string{"of"}, COUNT_OF}},
	"divided":  {{[]string{"by"}, DIVIDED_BY}},
	"for":      {{[]string{"each"}, FOR_EACH}},
}

// LexError is a scanning failure at a 1-based source position.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Lexer scans a Corvo source string into tokens.
type Lexer struct {
	src    string
	start  int
	cur    int
	line   int
	col    int // 0-based column of cur within line
	tokens []Token

	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Scan tokenizes the whole source, appending a final EOF token.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		l.skipBlanks()
		if l.isAtEnd() {
			break
		}
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col + 1
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Type: EOF, Line: l.line, Col: l.col + 1})
	return l.tokens, nil
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

// skipBlanks consumes whitespace and # line comments. Corvo statements are
// self-delimiting, so newlines carry no token of their own.
func (l *Lexer) skipBlanks() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for !l.isAtEnd() {
				c, _ := l.peek()
				if c == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

func (l *Lexer) add(tt TokenType, lit any) {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Lexeme:  l.src[l.start:l.cur],
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	})
}

func (l *Lexer) scanToken() error {
	ch, _ := l.peek()
	switch {
	case ch == '[':
		l.advance()
		l.add(LBRACKET, nil)
	case ch == ']':
		l.advance()
		l.add(RBRACKET, nil)
	case ch == ':':
		l.advance()
		l.add(COLON, nil)
	case ch == ',':
		l.advance()
		l.add(COMMA, nil)
	case ch == '"':
		return l.scanString()
	case isDigit(ch):
		return l.scanNumber()
	case isAlpha(ch):
		l.scanWord()
	default:
		l.advance()
		return l.err(fmt.Sprintf("unexpected character %q", string(ch)))
	}
	return nil
}

// scanString parses a double-quoted string literal with backslash escapes.
func (l *Lexer) scanString() error {
	l.advance() // opening quote
	var out strings.Builder
	for {
		ch, ok := l.advance()
		if !ok {
			return l.err("unterminated string")
		}
		if ch == '"' {
			l.add(STRING, out.String())
			return nil
		}
		if ch == '\n' {
			return l.err("unterminated string")
		}
		if ch == '\\' {
			esc, ok := l.advance()
			if !ok {
				return l.err("unfinished escape sequence")
			}
			switch esc {
			case '"':
				out.WriteByte('"')
			case '\\':
				out.WriteByte('\\')
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			default:
				return l.err(fmt.Sprintf("unknown escape \\%s", string(esc)))
			}
			continue
		}
		out.WriteByte(ch)
	}
}

// scanNumber parses an unsigned integer or decimal literal. Negative values
// arise from "minus" at the expression level, not from literals.
func (l *Lexer) scanNumber() error {
	for {
		ch, ok := l.peek()
		if !ok || !isDigit(ch) {
			break
		}
		l.advance()
	}
	if ch, ok := l.peek(); ok && ch == '.' {
		l.advance()
		sawFrac := false
		for {
			c, ok := l.peek()
			if !ok || !isDigit(c) {
				break
			}
			sawFrac = true
			l.advance()
		}
		if !sawFrac {
			return l.err("digit expected after decimal point")
		}
	}
	lex := l.src[l.start:l.cur]
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil {
		return l.err(fmt.Sprintf("bad number literal %q", lex))
	}
	l.add(NUMBER, f)
	return nil
}

// scanWord reads one identifier-shaped word and resolves it to a fused
// keyword, a single-word keyword, or an identifier, in that order.
func (l *Lexer) scanWord() {
	word := l.readWord()

	if cands, ok := fusion[word]; ok {
		for _, cand := range cands {
			if l.tryFuse(cand.rest) {
				l.add(cand.tt, nil)
				return
			}
		}
	}
	if tt, ok := singleKeywords[word]; ok {
		l.add(tt, nil)
		return
	}
	l.add(IDENT, word)
}

// readWord consumes [A-Za-z_][A-Za-z0-9_]* starting at cur.
func (l *Lexer) readWord() string {
	from := l.cur
	for {
		ch, ok := l.peek()
		if !ok || !isAlphaNum(ch) {
			break
		}
		l.advance()
	}
	return l.src[from:l.cur]
}

// tryFuse consumes the given whitespace-separated words if, and only if, all
// of them follow in order. On failure the cursor is fully restored.
func (l *Lexer) tryFuse(rest []string) bool {
	savedCur, savedLine, savedCol := l.cur, l.line, l.col
	for _, want := range rest {
		if !l.skipSpacesSameStatement() {
			l.cur, l.line, l.col = savedCur, savedLine, savedCol
			return false
		}
		if got := l.readWord(); got != want {
			l.cur, l.line, l.col = savedCur, savedLine, savedCol
			return false
		}
	}
	return true
}

// skipSpacesSameStatement consumes spaces/tabs and reports whether a word
// character follows. Keyword fusion does not cross line breaks.
func (l *Lexer) skipSpacesSameStatement() bool {
	for {
		ch, ok := l.peek()
		if !ok {
			return false
		}
		if ch == ' ' || ch == '\t' {
			l.advance()
			continue
		}
		return isAlpha(ch)
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}
