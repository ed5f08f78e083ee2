// parser.go — recursive-descent parser for Corvo.
//
// Parse turns source text into a *Program or fails with a located syntax
// error; nothing executes until the whole program has parsed (fail fast, no
// partial runs). The parser also plays the tree-builder role: bracketed
// blocks become []Stmt, the single-line forms of "if" and "repeat" normalize
// to one-statement bodies, and "[a, b]" in expression position becomes a
// ListLit. Statement keywords are mutually unambiguous by leading token, so
// a single switch dispatches every statement form.
//
// Operator shape (the original grammar leaves precedence to its Earley
// front end; this parser fixes it the conventional way):
//
//	at                            binds tightest (left-assoc, chainable)
//	times, divided by             next
//	plus, minus                   next
//	length of / count of /        prefix operators over the level below
//	get column / get row            "plus"
//	comparators, and, or          conditions only (after "if"/"while")
package corvo

import (
	"fmt"
	"strings"
)

// ParseError is a syntax failure at a 1-based source position.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse scans and parses a complete Corvo program.
func Parse(src string) (*Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

type parser struct {
	toks []Token
	pos  int
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Type != EOF {
		p.pos++
	}
	return t
}

func (p *parser) check(tt TokenType) bool { return p.peek().Type == tt }

func (p *parser) match(tt TokenType) bool {
	if p.check(tt) {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(tt TokenType, what string) (Token, error) {
	if p.check(tt) {
		return p.next(), nil
	}
	return Token{}, p.errHere("expected %s", what)
}

func (p *parser) errHere(format string, args ...any) error {
	t := p.peek()
	return &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)}
}

func posOf(t Token) Pos { return Pos{Line: t.Line, Col: t.Col} }

func (p *parser) program() (*Program, error) {
	var stmts []Stmt
	for !p.check(EOF) {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return &Program{Stmts: stmts}, nil
}

/* ===========================
   Statements
   =========================== */

func (p *parser) statement() (Stmt, error) {
	tok := p.peek()
	switch tok.Type {
	case THE:
		return p.assignStmt()
	case DISPLAY:
		p.next()
		v, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &DisplayStmt{At: posOf(tok), Value: v}, nil
	case ASK:
		return p.askStmt()
	case IF:
		return p.ifStmt()
	case REPEAT:
		return p.repeatStmt()
	case WHILE:
		return p.whileStmt()
	case FOR_EACH:
		return p.forEachStmt()
	case SECTION:
		return p.sectionDefStmt()
	case APPEND:
		return p.appendStmt()
	case REMOVE:
		return p.removeStmt()
	case WRITE:
		return p.writeStmt()
	case READ_FROM:
		return p.readStmt(false)
	case READ_CSV:
		return p.readStmt(true)
	case SET:
		return p.csvSetStmt()
	case IDENT:
		p.next()
		return &SectionCallStmt{At: posOf(tok), Name: tok.Literal.(string)}, nil
	default:
		return nil, p.errHere("expected a statement, got %q", tok.Lexeme)
	}
}

func (p *parser) assignStmt() (Stmt, error) {
	tok := p.next() // "the"
	name, err := p.expect(IDENT, "a variable name after \"the\"")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IS, "\"is\" after the variable name"); err != nil {
		return nil, err
	}
	v, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &AssignStmt{At: posOf(tok), Name: name.Literal.(string), Value: v}, nil
}

func (p *parser) askStmt() (Stmt, error) {
	tok := p.next() // "ask"
	prompt, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(REMEMBER_AS, "\"remember as\" after the prompt"); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT, "a variable name after \"remember as\"")
	if err != nil {
		return nil, err
	}
	return &AskStmt{At: posOf(tok), Prompt: prompt, Target: name.Literal.(string)}, nil
}

func (p *parser) ifStmt() (Stmt, error) {
	tok := p.next() // "if"
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(THEN, "\"then\" after the condition"); err != nil {
		return nil, err
	}
	then, err := p.branch()
	if err != nil {
		return nil, err
	}
	var otherwise []Stmt
	if p.match(OTHERWISE) {
		otherwise, err = p.branch()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{At: posOf(tok), Cond: cond, Then: then, Else: otherwise}, nil
}

// branch parses either ": [ ... ]" or a single statement, returning both as
// a block.
func (p *parser) branch() ([]Stmt, error) {
	if p.match(COLON) {
		return p.block()
	}
	s, err := p.statement()
	if err != nil {
		return nil, err
	}
	return []Stmt{s}, nil
}

func (p *parser) repeatStmt() (Stmt, error) {
	tok := p.next() // "repeat"
	count, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(LOOPS, "\"loops\" after the repeat count"); err != nil {
		return nil, err
	}
	body, err := p.branch()
	if err != nil {
		return nil, err
	}
	return &RepeatStmt{At: posOf(tok), Count: count, Body: body}, nil
}

func (p *parser) whileStmt() (Stmt, error) {
	tok := p.next() // "while"
	cond, err := p.condition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DO, "\"do\" after the condition"); err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "\":\" after \"do\""); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{At: posOf(tok), Cond: cond, Body: body}, nil
}

func (p *parser) forEachStmt() (Stmt, error) {
	tok := p.next() // "for each"
	item, err := p.expect(IDENT, "a loop variable after \"for each\"")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IN, "\"in\" after the loop variable"); err != nil {
		return nil, err
	}
	src, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLON, "\":\" before the loop body"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ForEachStmt{At: posOf(tok), Item: item.Literal.(string), Source: src, Body: body}, nil
}

func (p *parser) sectionDefStmt() (Stmt, error) {
	tok := p.next() // "section"
	name, err := p.expect(IDENT, "a section name after \"section\"")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IS, "\"is\" after the section name"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &SectionDefStmt{At: posOf(tok), Name: name.Literal.(string), Body: body}, nil
}

func (p *parser) appendStmt() (Stmt, error) {
	tok := p.next() // "append"
	v, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TO, "\"to\" after the value"); err != nil {
		return nil, err
	}
	list, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &AppendStmt{At: posOf(tok), Value: v, List: list}, nil
}

func (p *parser) removeStmt() (Stmt, error) {
	tok := p.next() // "remove"
	v, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(FROM, "\"from\" after the value"); err != nil {
		return nil, err
	}
	list, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &RemoveStmt{At: posOf(tok), Value: v, List: list}, nil
}

// writeStmt covers both "write EXPR to EXPR" (text file) and
// "write TABLE to csv EXPR"; the fused "to csv" token disambiguates.
func (p *parser) writeStmt() (Stmt, error) {
	tok := p.next() // "write"
	content, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.match(TO_CSV) {
		path, err := p.expression()
		if err != nil {
			return nil, err
		}
		return &CsvWriteStmt{At: posOf(tok), Table: content, Path: path}, nil
	}
	if _, err := p.expect(TO, "\"to\" or \"to csv\" after the value"); err != nil {
		return nil, err
	}
	path, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &FileWriteStmt{At: posOf(tok), Content: content, Path: path}, nil
}

func (p *parser) readStmt(csv bool) (Stmt, error) {
	tok := p.next() // "read from" / "read csv"
	path, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(REMEMBER_AS, "\"remember as\" after the file name"); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT, "a variable name after \"remember as\"")
	if err != nil {
		return nil, err
	}
	if csv {
		return &CsvReadStmt{At: posOf(tok), Path: path, Target: name.Literal.(string)}, nil
	}
	return &FileReadStmt{At: posOf(tok), Path: path, Target: name.Literal.(string)}, nil
}

func (p *parser) csvSetStmt() (Stmt, error) {
	tok := p.next() // "set"
	table, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ROW, "\"row\" after the table"); err != nil {
		return nil, err
	}
	row, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COLUMN, "\"column\" after the row number"); err != nil {
		return nil, err
	}
	col, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TO, "\"to\" before the new value"); err != nil {
		return nil, err
	}
	v, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &CsvSetStmt{At: posOf(tok), Table: table, Row: row, Col: col, Value: v}, nil
}

// IsIncomplete reports whether a parse failure means the input stopped in
// the middle of an open block, as opposed to being malformed. Interactive
// callers use it to keep reading lines instead of reporting an error.
func IsIncomplete(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && strings.Contains(pe.Msg, "block never closed")
}

// block parses statements up to the closing "]". The opening bracket is
// consumed here so callers read naturally at their call sites.
func (p *parser) block() ([]Stmt, error) {
	if _, err := p.expect(LBRACKET, "\"[\" to open the block"); err != nil {
		return nil, err
	}
	var stmts []Stmt
	for !p.check(RBRACKET) {
		if p.check(EOF) {
			return nil, p.errHere("unmatched \"[\": block never closed")
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.next() // "]"
	return stmts, nil
}

/* ===========================
   Expressions
   =========================== */

func (p *parser) expression() (Expr, error) {
	return p.additive()
}

func (p *parser) additive() (Expr, error) {
	left, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOp
		switch {
		case p.check(PLUS):
			op = OpPlus
		case p.check(MINUS):
			op = OpMinus
		default:
			return left, nil
		}
		opTok := p.next()
		right, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{At: posOf(opTok), Op: op, Left: left, Right: right}
	}
}

func (p *parser) multiplicative() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var op BinOp
		switch {
		case p.check(TIMES):
			op = OpTimes
		case p.check(DIVIDED_BY):
			op = OpDivide
		default:
			return left, nil
		}
		opTok := p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{At: posOf(opTok), Op: op, Left: left, Right: right}
	}
}

func (p *parser) unary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case LENGTH_OF:
		p.next()
		v, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &LengthExpr{At: posOf(tok), Value: v}, nil
	case COUNT_OF:
		p.next()
		v, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &CountExpr{At: posOf(tok), Source: v}, nil
	case GET_COLUMN:
		p.next()
		idx, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(FROM, "\"from\" after the column number"); err != nil {
			return nil, err
		}
		table, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ColumnExpr{At: posOf(tok), Index: idx, Table: table}, nil
	case GET_ROW:
		p.next()
		row, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLUMN, "\"column\" after the row number"); err != nil {
			return nil, err
		}
		col, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(FROM, "\"from\" after the column number"); err != nil {
			return nil, err
		}
		table, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &CellExpr{At: posOf(tok), Row: row, Col: col, Table: table}, nil
	default:
		return p.postfix()
	}
}

// postfix parses a primary followed by any chain of "at" index accesses.
// Both sides of "at" bind tightly: "items at n plus 1" indexes first, then
// adds.
func (p *parser) postfix() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.check(AT) {
		opTok := p.next()
		idx, err := p.primary()
		if err != nil {
			return nil, err
		}
		e = &IndexExpr{At: posOf(opTok), List: e, Index: idx}
	}
	return e, nil
}

func (p *parser) primary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.next()
		return &NumberLit{At: posOf(tok), Value: tok.Literal.(float64)}, nil
	case STRING:
		p.next()
		return &StringLit{At: posOf(tok), Value: tok.Literal.(string)}, nil
	case IDENT:
		p.next()
		return &VarRef{At: posOf(tok), Name: tok.Literal.(string)}, nil
	case LBRACKET:
		return p.listLiteral()
	default:
		return nil, p.errHere("expected an expression, got %q", tok.Lexeme)
	}
}

func (p *parser) listLiteral() (Expr, error) {
	tok := p.next() // "["
	lit := &ListLit{At: posOf(tok)}
	if p.match(RBRACKET) {
		return lit, nil
	}
	for {
		el, err := p.expression()
		if err != nil {
			return nil, err
		}
		lit.Elems = append(lit.Elems, el)
		if p.match(COMMA) {
			continue
		}
		if _, err := p.expect(RBRACKET, "\",\" or \"]\" in the list"); err != nil {
			return nil, err
		}
		return lit, nil
	}
}

/* ===========================
   Conditions
   =========================== */

func (p *parser) condition() (Cond, error) {
	left, err := p.andCondition()
	if err != nil {
		return nil, err
	}
	for p.check(OR) {
		opTok := p.next()
		right, err := p.andCondition()
		if err != nil {
			return nil, err
		}
		left = &LogicCond{At: posOf(opTok), And: false, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) andCondition() (Cond, error) {
	left, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.check(AND) {
		opTok := p.next()
		right, err := p.comparison()
		if err != nil {
			return nil, err
		}
		left = &LogicCond{At: posOf(opTok), And: true, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) comparison() (Cond, error) {
	left, err := p.expression()
	if err != nil {
		return nil, err
	}
	var op CmpOp
	tok := p.peek()
	switch tok.Type {
	case IS_EQUAL_TO:
		op = CmpEqual
	case IS_GREATER_THAN:
		op = CmpGreater
	case IS_LESS_THAN:
		op = CmpLess
	default:
		return nil, p.errHere("expected \"is equal to\", \"is greater than\" or \"is less than\"")
	}
	p.next()
	right, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &CompareCond{At: posOf(tok), Op: op, Left: left, Right: right}, nil
}
