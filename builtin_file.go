// builtin_file.go — text file statements ("write ... to ...", "read from ...").
//
// Each statement owns its file handle for its own duration: content is fully
// evaluated before the file opens, and the handle is released before control
// returns to the statement sequence.
package corvo

import (
	"errors"
	"io/fs"
	"os"
)

func (ip *Interpreter) fileWrite(s *FileWriteStmt, env *Env) error {
	content, err := ip.evalExpr(s.Content, env)
	if err != nil {
		return err
	}
	txt, ok := content.DisplayText()
	if !ok {
		return rtErr(s.Content.Position(), ErrTypeMismatch,
			"a %s cannot be written as text; use \"to csv\" for tables", content.Tag)
	}
	path, err := ip.evalPath(s.Path, env)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(txt), 0o644); err != nil {
		return rtErr(s.Path.Position(), ErrFileAccess, "writing %q: %v", path, err)
	}
	return nil
}

func (ip *Interpreter) fileRead(s *FileReadStmt, env *Env) error {
	path, err := ip.evalPath(s.Path, env)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rtErr(s.Path.Position(), ErrFileNotFound, "file %q not found", path)
		}
		return rtErr(s.Path.Position(), ErrFileAccess, "reading %q: %v", path, err)
	}
	env.Assign(s.Target, Str(string(data)))
	return nil
}

// evalPath evaluates e as a String path and resolves it against the
// interpreter's working directory.
func (ip *Interpreter) evalPath(e Expr, env *Env) (string, error) {
	v, err := ip.evalExpr(e, env)
	if err != nil {
		return "", err
	}
	if v.Tag != VString {
		return "", rtErr(e.Position(), ErrTypeMismatch, "the file name must be a string, not a %s", v.Tag)
	}
	return ip.resolvePath(v.AsString()), nil
}
