// ast.go — typed syntax-tree nodes produced by the parser.
//
// A program is an ordered statement sequence. Blocks are plain []Stmt; the
// parser normalizes single-line forms ("repeat 5 loops display x") into the
// same shape as their bracketed block forms, so the evaluator never
// distinguishes the two. Conditions are a separate node family from value
// expressions because the grammar only admits them after "if"/"while" and
// they reduce to a boolean that no variable can hold.
//
// Nodes are built once per parse and never mutated afterwards.
package corvo

// Pos is a 1-based source position used for error reporting.
type Pos struct {
	Line int
	Col  int
}

// Program is a parsed top-level statement sequence.
type Program struct {
	Stmts []Stmt
}

// Stmt is implemented by all statement nodes.
type Stmt interface {
	Position() Pos
	stmtNode()
}

// Expr is implemented by all value-expression nodes.
type Expr interface {
	Position() Pos
	exprNode()
}

// Cond is implemented by condition nodes (comparisons and and/or chains).
type Cond interface {
	Position() Pos
	condNode()
}

/* ===========================
   Statements
   =========================== */

// AssignStmt is "the NAME is EXPR".
type AssignStmt struct {
	At    Pos
	Name  string
	Value Expr
}

// DisplayStmt is "display EXPR".
type DisplayStmt struct {
	At    Pos
	Value Expr
}

// AskStmt is "ask EXPR remember as NAME". The prompt must evaluate to a
// String; the answer is always stored as a String.
type AskStmt struct {
	At     Pos
	Prompt Expr
	Target string
}

// IfStmt covers both the single-statement and block forms, with an optional
// otherwise branch (nil when absent).
type IfStmt struct {
	At   Pos
	Cond Cond
	Then []Stmt
	Else []Stmt
}

// WhileStmt is "while COND do : [ ... ]".
type WhileStmt struct {
	At   Pos
	Cond Cond
	Body []Stmt
}

// RepeatStmt is "repeat EXPR loops ...".
type RepeatStmt struct {
	At    Pos
	Count Expr
	Body  []Stmt
}

// ForEachStmt is "for each NAME in EXPR : [ ... ]".
type ForEachStmt struct {
	At     Pos
	Item   string
	Source Expr
	Body   []Stmt
}

// SectionDefStmt registers a named parameterless block. Redefinition
// overwrites; the body runs only when called.
type SectionDefStmt struct {
	At   Pos
	Name string
	Body []Stmt
}

// SectionCallStmt is a bare identifier statement: run the named section.
type SectionCallStmt struct {
	At   Pos
	Name string
}

// AppendStmt is "append EXPR to LIST".
type AppendStmt struct {
	At    Pos
	Value Expr
	List  Expr
}

// RemoveStmt is "remove EXPR from LIST". Removes the first element equal to
// the value; an absent value is an error, not a no-op.
type RemoveStmt struct {
	At    Pos
	Value Expr
	List  Expr
}

// FileWriteStmt is "write EXPR to EXPR" (text file).
type FileWriteStmt struct {
	At      Pos
	Content Expr
	Path    Expr
}

// FileReadStmt is "read from EXPR remember as NAME".
type FileReadStmt struct {
	At     Pos
	Path   Expr
	Target string
}

// CsvReadStmt is "read csv EXPR remember as NAME".
type CsvReadStmt struct {
	At     Pos
	Path   Expr
	Target string
}

// CsvWriteStmt is "write TABLE to csv EXPR".
type CsvWriteStmt struct {
	At    Pos
	Table Expr
	Path  Expr
}

// CsvSetStmt is "set TABLE row EXPR column EXPR to EXPR" (1-based, in place).
type CsvSetStmt struct {
	At    Pos
	Table Expr
	Row   Expr
	Col   Expr
	Value Expr
}

func (s *AssignStmt) Position() Pos { return s.At }
func (s *DisplayStmt) Position() Pos { return s.At }
func (s *AskStmt) Position() Pos { return s.At }
func (s *IfStmt) Position() Pos { return s.At }
func (s *WhileStmt) Position() Pos { return s.At }
func (s *RepeatStmt) Position() Pos { return s.At }
func (s *ForEachStmt) Position() Pos { return s.At }
func (s *SectionDefStmt) Position() Pos { return s.At }
func (s *SectionCallStmt) Position() Pos { return s.At }
func (s *AppendStmt) Position() Pos { return s.At }
func (s *RemoveStmt) Position() Pos { return s.At }
func (s *FileWriteStmt) Position() Pos { return s.At }
func (s *FileReadStmt) Position() Pos { return s.At }
func (s *CsvReadStmt) Position() Pos { return s.At }
func (s *CsvWriteStmt) Position() Pos { return s.At }
func (s *CsvSetStmt) Position() Pos { return s.At }

func (*AssignStmt) stmtNode() {}
func (*DisplayStmt) stmtNode() {}
func (*AskStmt) stmtNode() {}
func (*IfStmt) stmtNode() {}
func (*WhileStmt) stmtNode() {}
func (*RepeatStmt) stmtNode() {}
func (*ForEachStmt) stmtNode() {}
func (*SectionDefStmt) stmtNode() {}
func (*SectionCallStmt) stmtNode() {}
func (*AppendStmt) stmtNode() {}
func (*RemoveStmt) stmtNode() {}
func (*FileWriteStmt) stmtNode() {}
func (*FileReadStmt) stmtNode() {}
func (*CsvReadStmt) stmtNode() {}
func (*CsvWriteStmt) stmtNode() {}
func (*CsvSetStmt) stmtNode() {}

/* ===========================
   Expressions
   =========================== */

// BinOp enumerates the value-level binary operators.
type BinOp int

const (
	OpPlus BinOp = iota // number add, or string concat when either side is a String
	OpMinus
	OpTimes
	OpDivide
)

func (op BinOp) String() string {
	switch op {
	case OpPlus:
		return "plus"
	case OpMinus:
		return "minus"
	case OpTimes:
		return "times"
	case OpDivide:
		return "divided by"
	default:
		return "?"
	}
}

// NumberLit is a numeric literal.
type NumberLit struct {
	At    Pos
	Value float64
}

// StringLit is a quoted string literal (escapes already decoded).
type StringLit struct {
	At    Pos
	Value string
}

// VarRef reads a variable. Reading an unbound name is an error.
type VarRef struct {
	At   Pos
	Name string
}

// ListLit is "[e1, e2, ...]".
type ListLit struct {
	At    Pos
	Elems []Expr
}

// BinaryExpr is "left OP right".
type BinaryExpr struct {
	At    Pos
	Op    BinOp
	Left  Expr
	Right Expr
}

// IndexExpr is "LIST at EXPR" (1-based).
type IndexExpr struct {
	At    Pos
	List  Expr
	Index Expr
}

// LengthExpr is "length of EXPR": the length of the operand's display text.
type LengthExpr struct {
	At    Pos
	Value Expr
}

// CountExpr is "count of NAME": list element count or table row count.
type CountExpr struct {
	At     Pos
	Source Expr
}

// ColumnExpr is "get column EXPR from TABLE" (1-based; yields a List).
type ColumnExpr struct {
	At    Pos
	Index Expr
	Table Expr
}

// CellExpr is "get row EXPR column EXPR from TABLE" (1-based; yields the cell).
type CellExpr struct {
	At    Pos
	Row   Expr
	Col   Expr
	Table Expr
}

func (e *NumberLit) Position() Pos { return e.At }
func (e *StringLit) Position() Pos { return e.At }
func (e *VarRef) Position() Pos { return e.At }
func (e *ListLit) Position() Pos { return e.At }
func (e *BinaryExpr) Position() Pos { return e.At }
func (e *IndexExpr) Position() Pos { return e.At }
func (e *LengthExpr) Position() Pos { return e.At }
func (e *CountExpr) Position() Pos { return e.At }
func (e *ColumnExpr) Position() Pos { return e.At }
func (e *CellExpr) Position() Pos { return e.At }

func (*NumberLit) exprNode() {}
func (*StringLit) exprNode() {}
func (*VarRef) exprNode() {}
func (*ListLit) exprNode() {}
func (*BinaryExpr) exprNode() {}
func (*IndexExpr) exprNode() {}
func (*LengthExpr) exprNode() {}
func (*CountExpr) exprNode() {}
func (*ColumnExpr) exprNode() {}
func (*CellExpr) exprNode() {}

/* ===========================
   Conditions
   =========================== */

// CmpOp enumerates the comparators.
type CmpOp int

const (
	CmpEqual CmpOp = iota
	CmpGreater
	CmpLess
)

func (op CmpOp) String() string {
	switch op {
	case CmpEqual:
		return "is equal to"
	case CmpGreater:
		return "is greater than"
	case CmpLess:
		return "is less than"
	default:
		return "?"
	}
}

// CompareCond is "EXPR comparator EXPR".
type CompareCond struct {
	At    Pos
	Op    CmpOp
	Left  Expr
	Right Expr
}

// LogicCond joins two conditions with "and"/"or" (And true means "and").
type LogicCond struct {
	At    Pos
	And   bool
	Left  Cond
	Right Cond
}

func (c *CompareCond) Position() Pos { return c.At }
func (c *LogicCond) Position() Pos { return c.At }

func (*CompareCond) condNode() {}
func (*LogicCond) condNode() {}
