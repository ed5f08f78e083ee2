package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	corvo "github.com/TotoroEmotoro/Corvo"
	"github.com/TotoroEmotoro/Corvo/internal/config"
)

const promptCont = ".. "

const replHelp = `REPL commands:
  :help          Show this help
  :vars          List the defined variables
  :table NAME    Render the named table
  :quit          Exit the REPL
`

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runRepl()
		},
	}
}

func runRepl() error {
	fmt.Printf("Corvo %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", corvo.Version)

	prompt := config.DefaultPrompt
	histName := config.DefaultHistoryFile
	if cfg != nil {
		prompt = cfg.Prompt
		histName = cfg.HistoryFile
	}
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, histName)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := newInterpreter()

	for {
		code, ok := readStatement(ln, prompt, promptCont)
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if done := replCommand(ip, trimmed); done {
				return nil
			}
			ln.AppendHistory(trimmed)
			continue
		}

		if err := ip.Run(code); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readStatement reads lines until they parse as a complete program or fail
// outright; an open block keeps the continuation prompt going.
func readStatement(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perr := corvo.Parse(src)
		if perr == nil || !corvo.IsIncomplete(perr) {
			return src, true
		}
	}
}

// replCommand handles a ":" meta command; it reports whether to exit.
func replCommand(ip *corvo.Interpreter, cmd string) bool {
	fields := strings.Fields(cmd)
	switch strings.ToLower(fields[0]) {
	case ":quit":
		return true
	case ":help":
		fmt.Print(replHelp)
	case ":vars":
		names := ip.VarNames()
		if len(names) == 0 {
			fmt.Println("(no variables)")
			break
		}
		for _, name := range names {
			v, _ := ip.Lookup(name)
			if txt, ok := v.DisplayText(); ok {
				fmt.Printf("%s = %s\n", name, txt)
			} else {
				fmt.Printf("%s = (%s)\n", name, v.Tag)
			}
		}
	case ":table":
		if len(fields) != 2 {
			fmt.Println("usage: :table NAME")
			break
		}
		renderTable(ip, fields[1])
	default:
		fmt.Println("unknown command. Type :help for the command list.")
	}
	return false
}

// renderTable pretty-prints a table variable with 1-based row and column
// numbers, matching the indices "get row"/"get column" expect.
func renderTable(ip *corvo.Interpreter, name string) {
	v, ok := ip.Lookup(name)
	if !ok {
		fmt.Printf("no variable named %q\n", name)
		return
	}
	if v.Tag != corvo.VTable {
		fmt.Printf("%q is a %s, not a table\n", name, v.Tag)
		return
	}
	tbl := v.AsTable()
	if len(tbl.Rows) == 0 {
		fmt.Println("(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, tbl.Cols()+1)
	header[0] = ""
	for i := 1; i <= tbl.Cols(); i++ {
		header[i] = i
	}
	t.AppendHeader(header)

	for i, cells := range tbl.Rows {
		row := make(table.Row, len(cells)+1)
		row[0] = i + 1
		for j, cell := range cells {
			row[j+1] = cell
		}
		t.AppendRow(row)
	}
	t.Render()
}
