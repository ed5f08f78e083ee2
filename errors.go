// errors.go: runtime error kinds and caret-snippet rendering.
//
// The engine reports failures as typed errors carrying 1-based source
// coordinates: *LexError and *ParseError from the front end, *RuntimeError
// from the evaluator. WrapErrorWithSource turns any of them into a readable
// multi-line snippet with a caret pointing at the offending column:
//
//	PARSE ERROR at 3:12: expected "then" after condition
//
//	   2 | the total is 0
//	   3 | if total 5
//	       |         ^
//	   4 | display total
//
// Other error values pass through unchanged. The renderer is plain text
// (no ANSI colors) and clamps out-of-range coordinates rather than failing.
package corvo

import (
	"fmt"
	"strings"
)

// ErrKind classifies a runtime failure. Every error the evaluator can raise
// falls into exactly one of these kinds, which keeps the failure modes
// enumerable and testable.
type ErrKind int

const (
	ErrUndefinedVariable ErrKind = iota
	ErrUndefinedSection
	ErrTypeMismatch
	ErrInvalidIndex
	ErrInvalidArgument
	ErrFileNotFound
	ErrFileAccess
	ErrMalformedCsv
)

func (k ErrKind) String() string {
	switch k {
	case ErrUndefinedVariable:
		return "undefined variable"
	case ErrUndefinedSection:
		return "undefined section"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrInvalidIndex:
		return "invalid index"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrFileNotFound:
		return "file not found"
	case ErrFileAccess:
		return "file access"
	case ErrMalformedCsv:
		return "malformed csv"
	default:
		return "runtime"
	}
}

// RuntimeError is an execution-time failure with a source location.
// Line/Col are 1-based. An error of any kind aborts the entire run; the
// language has no catch construct.
type RuntimeError struct {
	Kind ErrKind
	Line int
	Col  int
	Msg  string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("RUNTIME ERROR at %d:%d: %s: %s", e.Line, e.Col, e.Kind, e.Msg)
}

// rtErr builds a *RuntimeError located at the given node position.
func rtErr(at Pos, kind ErrKind, format string, args ...any) error {
	return &RuntimeError{Kind: kind, Line: at.Line, Col: at.Col, Msg: fmt.Sprintf(format, args...)}
}

// WrapErrorWithSource returns an error augmented with a caret-annotated
// snippet of the provided source. It recognizes lex/parse/runtime errors and
// leaves other errors untouched.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name (usually the
// program filename) included in the header line.
func WrapErrorWithName(err error, srcName, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", snippet(src, "LEXICAL ERROR", srcName, e.Line, e.Col, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", snippet(src, "PARSE ERROR", srcName, e.Line, e.Col, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", snippet(src, "RUNTIME ERROR", srcName, e.Line, e.Col, fmt.Sprintf("%s: %s", e.Kind, e.Msg)))
	default:
		return err
	}
}

// snippet builds the caret-annotated context block. It shows at most one
// previous and one next line. Coordinates are 1-based and clamped to the
// source bounds so rendering never fails.
func snippet(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	if col < 1 {
		col = 1
	}

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
