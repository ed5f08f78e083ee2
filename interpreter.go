// interpreter.go — PUBLIC API of the Corvo engine.
//
// The Interpreter owns the single mutable Environment and the section table
// for one program run. Construction wires the defaults (real stdin/stdout,
// paths resolved against the process working directory, no loop guard);
// functional options override them, which is also how tests capture output
// and feed input.
//
// Entry points:
//   - Run / RunNamed   — parse + execute source text; errors come back as
//     caret-annotated snippets (see errors.go).
//   - RunProgram       — execute an already-parsed *Program; errors are the
//     raw typed values (*RuntimeError) for callers that format themselves.
//   - Lookup/VarNames  — read access to program variables, used by the REPL
//     to inspect state between inputs.
//
// Execution is single-threaded and synchronous: one statement finishes
// before the next starts, and the only blocking points are "ask" and file
// I/O. A Value obtained from Lookup must not be mutated concurrently with a
// running program.
package corvo

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Version is the engine version reported by the CLI.
const Version = "0.1.0"

// Interpreter executes Corvo programs against one persistent environment.
type Interpreter struct {
	globals  *Env
	sections map[string][]Stmt

	stdout   io.Writer
	stdin    *bufio.Reader
	workDir  string
	maxLoops int
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithStdout redirects "display" and "ask" prompt output.
func WithStdout(w io.Writer) Option {
	return func(ip *Interpreter) { ip.stdout = w }
}

// WithStdin supplies the line source consumed by "ask".
func WithStdin(r io.Reader) Option {
	return func(ip *Interpreter) { ip.stdin = bufio.NewReader(r) }
}

// WithWorkDir resolves relative file and CSV paths against dir instead of
// the process working directory.
func WithWorkDir(dir string) Option {
	return func(ip *Interpreter) { ip.workDir = dir }
}

// WithMaxLoopIterations installs a while-loop guard: a while loop that runs
// n iterations without its condition turning false fails the run. Zero (the
// default) leaves loops unbounded.
func WithMaxLoopIterations(n int) Option {
	return func(ip *Interpreter) { ip.maxLoops = n }
}

// New constructs a ready-to-use interpreter.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		globals:  NewEnv(nil),
		sections: make(map[string][]Stmt),
		stdout:   os.Stdout,
		stdin:    bufio.NewReader(os.Stdin),
	}
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// Run parses and executes source text. Any failure is returned as a single
// caret-annotated error; the run stops at the first one.
func (ip *Interpreter) Run(src string) error {
	return ip.RunNamed("", src)
}

// RunNamed is Run with a source name (usually the filename) included in
// error headers.
func (ip *Interpreter) RunNamed(name, src string) error {
	prog, err := Parse(src)
	if err != nil {
		return WrapErrorWithName(err, name, src)
	}
	if err := ip.RunProgram(prog); err != nil {
		return WrapErrorWithName(err, name, src)
	}
	return nil
}

// RunProgram executes a parsed program against the interpreter's persistent
// environment. Errors are returned untyped-wrapped (*RuntimeError) so
// callers can inspect Kind and location.
func (ip *Interpreter) RunProgram(prog *Program) error {
	return ip.execBlock(prog.Stmts, ip.globals)
}

// Lookup returns the current value of a program variable.
func (ip *Interpreter) Lookup(name string) (Value, bool) {
	return ip.globals.Get(name)
}

// VarNames returns the sorted names of all root-scope variables.
func (ip *Interpreter) VarNames() []string {
	names := make([]string, 0, len(ip.globals.table))
	for name := range ip.globals.table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolvePath anchors relative paths at the configured working directory.
func (ip *Interpreter) resolvePath(p string) string {
	if ip.workDir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(ip.workDir, p)
}
