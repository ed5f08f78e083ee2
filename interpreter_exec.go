// interpreter_exec.go — the tree-walking evaluator.
//
// Statements execute in order; the first error aborts the statement, every
// enclosing block, and the run (there is no catch construct). Expressions
// evaluate to a Value; conditions evaluate to a Go bool that only "if" and
// "while" consume. File and CSV statements delegate to builtin_file.go and
// builtin_csv.go.
package corvo

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

func (ip *Interpreter) execBlock(stmts []Stmt, env *Env) error {
	for _, s := range stmts {
		if err := ip.execStmt(s, env); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) execStmt(s Stmt, env *Env) error {
	switch s := s.(type) {
	case *AssignStmt:
		v, err := ip.evalExpr(s.Value, env)
		if err != nil {
			return err
		}
		env.Assign(s.Name, v)
		return nil

	case *DisplayStmt:
		v, err := ip.evalExpr(s.Value, env)
		if err != nil {
			return err
		}
		txt, ok := v.DisplayText()
		if !ok {
			return rtErr(s.Value.Position(), ErrTypeMismatch,
				"a table cannot be displayed directly; use \"get column\" or \"get row\"")
		}
		fmt.Fprintln(ip.stdout, txt)
		return nil

	case *AskStmt:
		prompt, err := ip.evalExpr(s.Prompt, env)
		if err != nil {
			return err
		}
		if prompt.Tag != VString {
			return rtErr(s.Prompt.Position(), ErrTypeMismatch,
				"the ask prompt must be a string, not a %s", prompt.Tag)
		}
		fmt.Fprint(ip.stdout, prompt.AsString())
		line, err := ip.stdin.ReadString('\n')
		if err != nil && err != io.EOF {
			return rtErr(s.At, ErrFileAccess, "reading input: %v", err)
		}
		if line == "" && err == io.EOF {
			return rtErr(s.At, ErrFileAccess, "no input available")
		}
		env.Assign(s.Target, Str(strings.TrimSpace(line)))
		return nil

	case *IfStmt:
		hold, err := ip.evalCond(s.Cond, env)
		if err != nil {
			return err
		}
		if hold {
			return ip.execBlock(s.Then, env)
		}
		return ip.execBlock(s.Else, env)

	case *WhileStmt:
		iterations := 0
		for {
			hold, err := ip.evalCond(s.Cond, env)
			if err != nil {
				return err
			}
			if !hold {
				return nil
			}
			if ip.maxLoops > 0 && iterations >= ip.maxLoops {
				return rtErr(s.At, ErrInvalidArgument,
					"while loop exceeded the configured limit of %d iterations", ip.maxLoops)
			}
			if err := ip.execBlock(s.Body, env); err != nil {
				return err
			}
			iterations++
		}

	case *RepeatStmt:
		count, err := ip.evalExpr(s.Count, env)
		if err != nil {
			return err
		}
		if count.Tag != VNumber {
			return rtErr(s.Count.Position(), ErrTypeMismatch,
				"the repeat count must be a number, not a %s", count.Tag)
		}
		f := count.AsNumber()
		if f < 0 {
			return rtErr(s.Count.Position(), ErrInvalidArgument,
				"the repeat count cannot be negative (got %s)", FormatNumber(f))
		}
		n := int(math.Trunc(f))
		for i := 0; i < n; i++ {
			if err := ip.execBlock(s.Body, env); err != nil {
				return err
			}
		}
		return nil

	case *ForEachStmt:
		src, err := ip.evalExpr(s.Source, env)
		if err != nil {
			return err
		}
		if src.Tag != VList {
			return rtErr(s.Source.Position(), ErrTypeMismatch,
				"\"for each\" needs a list, not a %s", src.Tag)
		}
		// Iterate a snapshot: mutating the list inside the body does not
		// change the iteration already underway.
		snapshot := append([]Value(nil), src.AsList().Elems...)
		scope := NewEnv(env)
		for _, el := range snapshot {
			scope.Define(s.Item, el)
			if err := ip.execBlock(s.Body, scope); err != nil {
				return err
			}
		}
		return nil

	case *SectionDefStmt:
		// Last definition wins.
		ip.sections[s.Name] = s.Body
		return nil

	case *SectionCallStmt:
		body, ok := ip.sections[s.Name]
		if !ok {
			return rtErr(s.At, ErrUndefinedSection, "section %q has not been defined", s.Name)
		}
		return ip.execBlock(body, env)

	case *AppendStmt:
		list, err := ip.evalList(s.List, env)
		if err != nil {
			return err
		}
		v, err := ip.evalExpr(s.Value, env)
		if err != nil {
			return err
		}
		list.Elems = append(list.Elems, v)
		return nil

	case *RemoveStmt:
		list, err := ip.evalList(s.List, env)
		if err != nil {
			return err
		}
		v, err := ip.evalExpr(s.Value, env)
		if err != nil {
			return err
		}
		for i, el := range list.Elems {
			if Equal(el, v) {
				list.Elems = append(list.Elems[:i], list.Elems[i+1:]...)
				return nil
			}
		}
		txt, _ := v.DisplayText()
		return rtErr(s.Value.Position(), ErrInvalidArgument, "%s is not in the list", txt)

	case *FileWriteStmt:
		return ip.fileWrite(s, env)
	case *FileReadStmt:
		return ip.fileRead(s, env)
	case *CsvReadStmt:
		return ip.csvRead(s, env)
	case *CsvWriteStmt:
		return ip.csvWrite(s, env)
	case *CsvSetStmt:
		return ip.csvSet(s, env)

	default:
		return rtErr(s.Position(), ErrInvalidArgument, "unknown statement %T", s)
	}
}

/* ===========================
   Expressions
   =========================== */

func (ip *Interpreter) evalExpr(e Expr, env *Env) (Value, error) {
	switch e := e.(type) {
	case *NumberLit:
		return Num(e.Value), nil

	case *StringLit:
		return Str(e.Value), nil

	case *VarRef:
		v, ok := env.Get(e.Name)
		if !ok {
			return None, rtErr(e.At, ErrUndefinedVariable, "%q has not been assigned", e.Name)
		}
		return v, nil

	case *ListLit:
		elems := make([]Value, 0, len(e.Elems))
		for _, el := range e.Elems {
			v, err := ip.evalExpr(el, env)
			if err != nil {
				return None, err
			}
			elems = append(elems, v)
		}
		return ListOf(elems...), nil

	case *BinaryExpr:
		return ip.evalBinary(e, env)

	case *IndexExpr:
		list, err := ip.evalList(e.List, env)
		if err != nil {
			return None, err
		}
		idx, err := ip.evalIndex(e.Index, env, "list index")
		if err != nil {
			return None, err
		}
		if idx < 1 || idx > len(list.Elems) {
			return None, rtErr(e.Index.Position(), ErrInvalidIndex,
				"index %d is out of range for a list of %d", idx, len(list.Elems))
		}
		return list.Elems[idx-1], nil

	case *LengthExpr:
		v, err := ip.evalExpr(e.Value, env)
		if err != nil {
			return None, err
		}
		txt, ok := v.DisplayText()
		if !ok {
			return None, rtErr(e.Value.Position(), ErrTypeMismatch,
				"\"length of\" is not defined for a %s", v.Tag)
		}
		return Num(float64(utf8.RuneCountInString(txt))), nil

	case *CountExpr:
		v, err := ip.evalExpr(e.Source, env)
		if err != nil {
			return None, err
		}
		switch v.Tag {
		case VList:
			return Num(float64(len(v.AsList().Elems))), nil
		case VTable:
			return Num(float64(len(v.AsTable().Rows))), nil
		default:
			return None, rtErr(e.Source.Position(), ErrTypeMismatch,
				"\"count of\" needs a list or a table, not a %s", v.Tag)
		}

	case *ColumnExpr:
		return ip.evalColumn(e, env)

	case *CellExpr:
		return ip.evalCell(e, env)

	default:
		return None, rtErr(e.Position(), ErrInvalidArgument, "unknown expression %T", e)
	}
}

func (ip *Interpreter) evalBinary(e *BinaryExpr, env *Env) (Value, error) {
	left, err := ip.evalExpr(e.Left, env)
	if err != nil {
		return None, err
	}
	right, err := ip.evalExpr(e.Right, env)
	if err != nil {
		return None, err
	}

	if e.Op == OpPlus {
		// String glue: if either side is a String the whole thing is text.
		if left.Tag == VString || right.Tag == VString {
			lt, ok := left.DisplayText()
			if !ok {
				return None, rtErr(e.Left.Position(), ErrTypeMismatch,
					"a %s cannot be joined into text", left.Tag)
			}
			rt, ok := right.DisplayText()
			if !ok {
				return None, rtErr(e.Right.Position(), ErrTypeMismatch,
					"a %s cannot be joined into text", right.Tag)
			}
			return Str(lt + rt), nil
		}
	}

	if left.Tag != VNumber || right.Tag != VNumber {
		return None, rtErr(e.At, ErrTypeMismatch,
			"%q needs two numbers, got a %s and a %s", e.Op.String(), left.Tag, right.Tag)
	}
	a, b := left.AsNumber(), right.AsNumber()
	switch e.Op {
	case OpPlus:
		return Num(a + b), nil
	case OpMinus:
		return Num(a - b), nil
	case OpTimes:
		return Num(a * b), nil
	case OpDivide:
		if b == 0 {
			return None, rtErr(e.Right.Position(), ErrInvalidArgument, "division by zero")
		}
		return Num(a / b), nil
	default:
		return None, rtErr(e.At, ErrInvalidArgument, "unknown operator %q", e.Op.String())
	}
}

/* ===========================
   Conditions
   =========================== */

func (ip *Interpreter) evalCond(c Cond, env *Env) (bool, error) {
	switch c := c.(type) {
	case *CompareCond:
		left, err := ip.evalExpr(c.Left, env)
		if err != nil {
			return false, err
		}
		right, err := ip.evalExpr(c.Right, env)
		if err != nil {
			return false, err
		}
		return ip.compare(c, left, right)

	case *LogicCond:
		left, err := ip.evalCond(c.Left, env)
		if err != nil {
			return false, err
		}
		if c.And {
			if !left {
				return false, nil
			}
			return ip.evalCond(c.Right, env)
		}
		if left {
			return true, nil
		}
		return ip.evalCond(c.Right, env)

	default:
		return false, rtErr(c.Position(), ErrInvalidArgument, "unknown condition %T", c)
	}
}

func (ip *Interpreter) compare(c *CompareCond, left, right Value) (bool, error) {
	switch c.Op {
	case CmpEqual:
		switch {
		case left.Tag == VNumber && right.Tag == VNumber,
			left.Tag == VString && right.Tag == VString,
			left.Tag == VList && right.Tag == VList:
			return Equal(left, right), nil
		}
	case CmpGreater, CmpLess:
		if left.Tag == VNumber && right.Tag == VNumber {
			if c.Op == CmpGreater {
				return left.AsNumber() > right.AsNumber(), nil
			}
			return left.AsNumber() < right.AsNumber(), nil
		}
		if left.Tag == VString && right.Tag == VString {
			if c.Op == CmpGreater {
				return left.AsString() > right.AsString(), nil
			}
			return left.AsString() < right.AsString(), nil
		}
	}
	return false, rtErr(c.At, ErrTypeMismatch,
		"cannot compare a %s with a %s", left.Tag, right.Tag)
}

/* ===========================
   Shared operand helpers
   =========================== */

// evalList evaluates e and requires a List.
func (ip *Interpreter) evalList(e Expr, env *Env) (*ListObject, error) {
	v, err := ip.evalExpr(e, env)
	if err != nil {
		return nil, err
	}
	if v.Tag != VList {
		return nil, rtErr(e.Position(), ErrTypeMismatch, "expected a list, got a %s", v.Tag)
	}
	return v.AsList(), nil
}

// evalTable evaluates e and requires a Table.
func (ip *Interpreter) evalTable(e Expr, env *Env) (*TableObject, error) {
	v, err := ip.evalExpr(e, env)
	if err != nil {
		return nil, err
	}
	if v.Tag != VTable {
		return nil, rtErr(e.Position(), ErrTypeMismatch, "expected a table, got a %s", v.Tag)
	}
	return v.AsTable(), nil
}

// evalIndex evaluates e as a whole number (1-based indices everywhere in the
// user-facing surface).
func (ip *Interpreter) evalIndex(e Expr, env *Env, what string) (int, error) {
	v, err := ip.evalExpr(e, env)
	if err != nil {
		return 0, err
	}
	if v.Tag != VNumber {
		return 0, rtErr(e.Position(), ErrTypeMismatch, "the %s must be a number, not a %s", what, v.Tag)
	}
	f := v.AsNumber()
	i := int(f)
	if float64(i) != f {
		return 0, rtErr(e.Position(), ErrInvalidArgument,
			"the %s must be a whole number (got %s)", what, FormatNumber(f))
	}
	return i, nil
}
