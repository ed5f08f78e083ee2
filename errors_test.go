package corvo

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapParseErrorSnippet(t *testing.T) {
	src := "the total is 0\nif total 5\ndisplay total\n"
	_, err := Parse(src)
	if err == nil {
		t.Fatal("want parse error")
	}
	wrapped := WrapErrorWithSource(err, src)
	out := wrapped.Error()

	if !strings.HasPrefix(out, "PARSE ERROR at 2:") {
		t.Fatalf("header: %q", out)
	}
	for _, want := range []string{
		"   1 | the total is 0",
		"   2 | if total 5",
		"   3 | display total",
		"^",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestWrapCaretColumn(t *testing.T) {
	// The caret must sit under the offending token, here "oops" at column 9.
	src := "display oops\n"
	ip := New()
	err := ip.Run(src)
	if err == nil {
		t.Fatal("want runtime error")
	}
	out := err.Error()
	if !strings.Contains(out, "RUNTIME ERROR at 1:9") {
		t.Fatalf("header: %q", out)
	}
	if !strings.Contains(out, "     |         ^") {
		t.Fatalf("caret misplaced:\n%s", out)
	}
}

func TestWrapWithName(t *testing.T) {
	src := `display "unterminated`
	_, err := Parse(src)
	if err == nil {
		t.Fatal("want lex error")
	}
	out := WrapErrorWithName(err, "demo.corvo", src).Error()
	if !strings.HasPrefix(out, "LEXICAL ERROR in demo.corvo at ") {
		t.Fatalf("header: %q", out)
	}
}

func TestWrapPassesOtherErrorsThrough(t *testing.T) {
	sentinel := errors.New("unrelated")
	if got := WrapErrorWithSource(sentinel, "x"); got != sentinel {
		t.Fatalf("unrelated errors must pass through, got %v", got)
	}
}

func TestWrapClampsOutOfRangeLine(t *testing.T) {
	err := &RuntimeError{Kind: ErrTypeMismatch, Line: 99, Col: 99, Msg: "x"}
	out := WrapErrorWithSource(err, "only line\n").Error()
	if !strings.Contains(out, "only line") {
		t.Fatalf("clamped snippet should still show source:\n%s", out)
	}
}

func TestRuntimeErrorText(t *testing.T) {
	err := &RuntimeError{Kind: ErrInvalidIndex, Line: 3, Col: 7, Msg: "position 9 is out of range"}
	want := "RUNTIME ERROR at 3:7: invalid index: position 9 is out of range"
	if err.Error() != want {
		t.Fatalf("want %q, got %q", want, err.Error())
	}
}
