package syntax

import (
	"strings"
)

// StmtKind classifies a nested statement for graph construction.
type StmtKind string

const (
	// StmtPlain is a simple statement with no control effect.
	StmtPlain StmtKind = "plain"
	// StmtIf is a conditional with a body and an optional else branch.
	StmtIf StmtKind = "if"
	// StmtLoop is a for/while loop with a body.
	StmtLoop StmtKind = "loop"
	// StmtReturn exits the enclosing function.
	StmtReturn StmtKind = "return"
	// StmtBreak exits the enclosing loop.
	StmtBreak StmtKind = "break"
	// StmtContinue jumps to the enclosing loop's next iteration.
	StmtContinue StmtKind = "continue"
)

// Stmt is a statement with its nested body, the shape both control-flow and
// data-flow construction walk.
type Stmt struct {
	Kind StmtKind
	Text string
	Line int
	// Cond is the condition text for if and loop statements.
	Cond string
	// Body holds the nested statements of an if or loop.
	Body []*Stmt
	// Else holds the else branch of an if; an else-if chain nests here as a
	// single-element branch containing another if.
	Else []*Stmt
}

// Nest converts a function's flat statement list into a statement tree using
// indentation depth. Formatted code nests block bodies one level deeper than
// their header in every supported language, so the same walk serves brace and
// indent syntax.
func Nest(stmts []Statement) []*Stmt {
	p := &nestParser{stmts: stmts}
	if len(stmts) == 0 {
		return nil
	}
	return p.parseBlock(minIndent(stmts))
}

func minIndent(stmts []Statement) int {
	min := stmts[0].Indent
	for _, s := range stmts[1:] {
		if s.Indent < min {
			min = s.Indent
		}
	}
	return min
}

type nestParser struct {
	stmts []Statement
	pos   int
}

// parseBlock consumes statements at or deeper than indent until the
// indentation falls below it.
func (p *nestParser) parseBlock(indent int) []*Stmt {
	var block []*Stmt
	// chain tracks the if statement an upcoming else/else-if attaches to.
	var chain *Stmt

	for p.pos < len(p.stmts) {
		st := p.stmts[p.pos]
		if st.Indent < indent {
			break
		}

		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(st.Text), "}"))
		kind, cond := classifyStmt(text)

		switch {
		case isElseIf(text):
			p.pos++
			ifStmt := &Stmt{Kind: StmtIf, Text: text, Line: st.Line, Cond: elseIfCond(text)}
			ifStmt.Body = p.parseChildren(st.Indent)
			if chain != nil {
				chain.Else = []*Stmt{ifStmt}
				chain = ifStmt
			} else {
				block = append(block, ifStmt)
				chain = ifStmt
			}
		case isElse(text):
			p.pos++
			body := p.parseChildren(st.Indent)
			if chain != nil {
				chain.Else = body
				chain = nil
			} else {
				block = append(block, body...)
			}
		case kind == StmtIf:
			p.pos++
			ifStmt := &Stmt{Kind: StmtIf, Text: text, Line: st.Line, Cond: cond}
			ifStmt.Body = p.parseChildren(st.Indent)
			block = append(block, ifStmt)
			chain = ifStmt
		case kind == StmtLoop:
			p.pos++
			loop := &Stmt{Kind: StmtLoop, Text: text, Line: st.Line, Cond: cond}
			loop.Body = p.parseChildren(st.Indent)
			block = append(block, loop)
			chain = nil
		default:
			p.pos++
			block = append(block, &Stmt{Kind: kind, Text: text, Line: st.Line})
			chain = nil
		}
	}
	return block
}

// parseChildren parses the block nested under a header at headerIndent.
func (p *nestParser) parseChildren(headerIndent int) []*Stmt {
	if p.pos >= len(p.stmts) || p.stmts[p.pos].Indent <= headerIndent {
		return nil
	}
	return p.parseBlock(p.stmts[p.pos].Indent)
}

// classifyStmt maps a statement line to its kind and condition text.
func classifyStmt(text string) (StmtKind, string) {
	switch {
	case hasKeyword(text, "if"):
		return StmtIf, condText(text, "if")
	case hasKeyword(text, "for"):
		return StmtLoop, condText(text, "for")
	case hasKeyword(text, "while"):
		return StmtLoop, condText(text, "while")
	case hasKeyword(text, "loop"):
		return StmtLoop, ""
	case hasKeyword(text, "return"):
		return StmtReturn, ""
	case hasKeyword(text, "break"):
		return StmtBreak, ""
	case hasKeyword(text, "continue"):
		return StmtContinue, ""
	}
	return StmtPlain, ""
}

func isElse(text string) bool {
	return hasKeyword(text, "else")
}

func isElseIf(text string) bool {
	return hasKeyword(text, "elif") ||
		strings.HasPrefix(text, "else if ") || strings.HasPrefix(text, "else if(")
}

func elseIfCond(text string) string {
	if hasKeyword(text, "elif") {
		return condText(text, "elif")
	}
	return condText(strings.TrimSpace(strings.TrimPrefix(text, "else")), "if")
}

// hasKeyword reports whether text starts with the keyword followed by a
// non-identifier character or end of line.
func hasKeyword(text, kw string) bool {
	if !strings.HasPrefix(text, kw) {
		return false
	}
	if len(text) == len(kw) {
		return true
	}
	next := text[len(kw)]
	return !(next == '_' || next >= 'a' && next <= 'z' || next >= 'A' && next <= 'Z' || next >= '0' && next <= '9')
}

// condText strips the keyword and block punctuation to leave the condition.
func condText(text, kw string) string {
	cond := strings.TrimSpace(strings.TrimPrefix(text, kw))
	cond = strings.TrimSuffix(cond, "{")
	cond = strings.TrimSuffix(strings.TrimSpace(cond), ":")
	cond = strings.TrimSpace(cond)
	if strings.HasPrefix(cond, "(") && strings.HasSuffix(cond, ")") {
		cond = strings.TrimSpace(cond[1 : len(cond)-1])
	}
	return cond
}
