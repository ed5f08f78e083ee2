package corvo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := `
write "line one" to "note.txt"
read from "note.txt" remember as content
display content
`
	out := runSrc(t, src, WithWorkDir(dir))
	if out != "line one\n" {
		t.Fatalf("unexpected output %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "note.txt"))
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if string(data) != "line one" {
		t.Fatalf("file content %q", data)
	}
}

func TestFileReadVerbatim(t *testing.T) {
	// Contents round-trip untouched, trailing whitespace included.
	dir := t.TempDir()
	raw := "a\nb\n\n"
	if err := os.WriteFile(filepath.Join(dir, "raw.txt"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	src := `
read from "raw.txt" remember as content
write content to "copy.txt"
`
	runSrc(t, src, WithWorkDir(dir))
	data, err := os.ReadFile(filepath.Join(dir, "copy.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != raw {
		t.Fatalf("want %q, got %q", raw, data)
	}
}

func TestFileWriteNumber(t *testing.T) {
	dir := t.TempDir()
	runSrc(t, `write 2.5 to "n.txt"`, WithWorkDir(dir))
	data, err := os.ReadFile(filepath.Join(dir, "n.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "2.5" {
		t.Fatalf("want canonical number text, got %q", data)
	}
}

func TestFileReadMissing(t *testing.T) {
	dir := t.TempDir()
	rte := runKind(t, `read from "absent.txt" remember as x`, ErrFileNotFound, WithWorkDir(dir))
	if !strings.Contains(rte.Msg, "absent.txt") {
		t.Fatalf("message should name the file, got %q", rte.Msg)
	}
}

func TestFilePathMustBeString(t *testing.T) {
	runKind(t, `write "x" to 42`, ErrTypeMismatch)
}

func TestWriteTableAsTextRejected(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "d.csv"), []byte("a,b\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	src := `
read csv "d.csv" remember as data
write data to "d.txt"
`
	var out bytes.Buffer
	prog, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	ip := New(WithStdout(&out), WithStdin(strings.NewReader("")), WithWorkDir(dir))
	runErr := ip.RunProgram(prog)
	if runErr == nil {
		t.Fatal("want error writing a table as text")
	}
	rte, ok := runErr.(*RuntimeError)
	if !ok || rte.Kind != ErrTypeMismatch {
		t.Fatalf("want type mismatch, got %v", runErr)
	}
}
