// builtin_csv.go — CSV tables: load, store, cell edit, column/cell access.
//
// The wire format is literal comma splitting: one row per line, cells joined
// by "," with no quoting dialect. Cells therefore cannot contain commas or
// line breaks; this is a documented limitation of the language, not a bug.
// Tables are rectangular: a ragged file fails to load, and edits cannot
// change the shape.
package corvo

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

func (ip *Interpreter) csvRead(s *CsvReadStmt, env *Env) error {
	path, err := ip.evalPath(s.Path, env)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rtErr(s.Path.Position(), ErrFileNotFound, "csv file %q not found", path)
		}
		return rtErr(s.Path.Position(), ErrFileAccess, "reading %q: %v", path, err)
	}
	rows, err := parseCsv(string(data), s.Path.Position(), path)
	if err != nil {
		return err
	}
	env.Assign(s.Target, TableOf(rows))
	return nil
}

func (ip *Interpreter) csvWrite(s *CsvWriteStmt, env *Env) error {
	table, err := ip.evalTable(s.Table, env)
	if err != nil {
		return err
	}
	path, err := ip.evalPath(s.Path, env)
	if err != nil {
		return err
	}
	var b strings.Builder
	for _, row := range table.Rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return rtErr(s.Path.Position(), ErrFileAccess, "writing %q: %v", path, err)
	}
	return nil
}

func (ip *Interpreter) csvSet(s *CsvSetStmt, env *Env) error {
	table, err := ip.evalTable(s.Table, env)
	if err != nil {
		return err
	}
	row, err := ip.evalIndex(s.Row, env, "row number")
	if err != nil {
		return err
	}
	col, err := ip.evalIndex(s.Col, env, "column number")
	if err != nil {
		return err
	}
	if row < 1 || row > len(table.Rows) {
		return rtErr(s.Row.Position(), ErrInvalidIndex,
			"row %d is out of range; the table has %d rows", row, len(table.Rows))
	}
	if col < 1 || col > table.Cols() {
		return rtErr(s.Col.Position(), ErrInvalidIndex,
			"column %d is out of range; the table has %d columns", col, table.Cols())
	}
	v, err := ip.evalExpr(s.Value, env)
	if err != nil {
		return err
	}
	txt, ok := v.DisplayText()
	if !ok {
		return rtErr(s.Value.Position(), ErrTypeMismatch,
			"a %s cannot be stored in a table cell", v.Tag)
	}
	table.Rows[row-1][col-1] = txt
	return nil
}

func (ip *Interpreter) evalColumn(e *ColumnExpr, env *Env) (Value, error) {
	table, err := ip.evalTable(e.Table, env)
	if err != nil {
		return None, err
	}
	col, err := ip.evalIndex(e.Index, env, "column number")
	if err != nil {
		return None, err
	}
	if col < 1 || col > table.Cols() {
		return None, rtErr(e.Index.Position(), ErrInvalidIndex,
			"column %d is out of range; the table has %d columns", col, table.Cols())
	}
	cells := make([]Value, 0, len(table.Rows))
	for _, row := range table.Rows {
		cells = append(cells, Str(row[col-1]))
	}
	return ListOf(cells...), nil
}

func (ip *Interpreter) evalCell(e *CellExpr, env *Env) (Value, error) {
	table, err := ip.evalTable(e.Table, env)
	if err != nil {
		return None, err
	}
	row, err := ip.evalIndex(e.Row, env, "row number")
	if err != nil {
		return None, err
	}
	col, err := ip.evalIndex(e.Col, env, "column number")
	if err != nil {
		return None, err
	}
	if row < 1 || row > len(table.Rows) {
		return None, rtErr(e.Row.Position(), ErrInvalidIndex,
			"row %d is out of range; the table has %d rows", row, len(table.Rows))
	}
	if col < 1 || col > table.Cols() {
		return None, rtErr(e.Col.Position(), ErrInvalidIndex,
			"column %d is out of range; the table has %d columns", col, table.Cols())
	}
	return Str(table.Rows[row-1][col-1]), nil
}

// parseCsv splits text into rectangular rows. A trailing newline (or \r\n)
// is tolerated; an inconsistent column count anywhere is a load error.
func parseCsv(text string, at Pos, path string) ([][]string, error) {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	rows := make([][]string, 0, len(lines))
	width := -1
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		cells := strings.Split(line, ",")
		if width == -1 {
			width = len(cells)
		} else if len(cells) != width {
			return nil, rtErr(at, ErrMalformedCsv,
				"%q line %d has %d cells, expected %d", path, i+1, len(cells), width)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
