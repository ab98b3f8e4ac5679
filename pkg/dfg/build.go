package dfg

import (
	"regexp"
	"strings"

	"github.com/l3aro/go-graph-query/pkg/syntax"
)

var (
	assignRe = regexp.MustCompile(`^(?:(let|const|var|val)\s+(?:mut\s+)?)?([A-Za-z_][\w, ]*?)\s*(:=|\+=|-=|\*=|/=|%=|=)\s*(.+)$`)
	identRe  = regexp.MustCompile(`[A-Za-z_]\w*`)
	callRe   = regexp.MustCompile(`([A-Za-z_][\w.]*)\s*\(`)
	numberRe = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// Build constructs the data-flow graph for a function body. Definitions
// shadow earlier ones with the same name; a branch body gets its own scope
// that is discarded at the join, so only definitions on the unconditional
// path flow past it.
func Build(fn *syntax.FunctionBody) *Graph {
	b := &dfgBuilder{
		g: &Graph{Function: fn.QualifiedName},
	}
	b.pushScope()
	for _, p := range fn.Params {
		id := b.addNode(NodeParameter, p, fn.StartLine, "")
		b.define(p, id)
	}
	b.buildStmts(syntax.Nest(fn.Statements))
	return b.g
}

type dfgBuilder struct {
	g      *Graph
	scopes []map[string]int
}

func (b *dfgBuilder) addNode(kind NodeKind, name string, line int, expr string) int {
	id := len(b.g.Nodes)
	b.g.Nodes = append(b.g.Nodes, Node{ID: id, Kind: kind, Name: name, Line: line, Expr: expr})
	return id
}

func (b *dfgBuilder) addEdge(from, to int) {
	b.g.Edges = append(b.g.Edges, Edge{From: from, To: to})
}

func (b *dfgBuilder) pushScope() {
	b.scopes = append(b.scopes, make(map[string]int))
}

func (b *dfgBuilder) popScope() {
	b.scopes = b.scopes[:len(b.scopes)-1]
}

// define records a definition in the innermost scope, shadowing outer ones.
func (b *dfgBuilder) define(name string, id int) {
	b.scopes[len(b.scopes)-1][name] = id
}

// assign rebinds a name. Declarations bind the innermost scope; plain
// reassignments update the scope that already holds the name, so a loop or
// branch body writing an outer variable is visible after the block.
func (b *dfgBuilder) assign(name string, id int, declare bool) {
	if !declare {
		for i := len(b.scopes) - 1; i >= 0; i-- {
			if _, ok := b.scopes[i][name]; ok {
				b.scopes[i][name] = id
				return
			}
		}
	}
	b.define(name, id)
}

// lookup resolves a name through the scope stack, innermost first.
func (b *dfgBuilder) lookup(name string) (int, bool) {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if id, ok := b.scopes[i][name]; ok {
			return id, true
		}
	}
	return 0, false
}

func (b *dfgBuilder) buildStmts(stmts []*syntax.Stmt) {
	for _, s := range stmts {
		switch s.Kind {
		case syntax.StmtPlain:
			b.plainStmt(s)
		case syntax.StmtIf:
			b.condUses(s)
			b.pushScope()
			b.buildStmts(s.Body)
			b.popScope()
			b.pushScope()
			b.buildStmts(s.Else)
			b.popScope()
		case syntax.StmtLoop:
			b.condUses(s)
			b.pushScope()
			b.defineLoopVars(s)
			b.buildStmts(s.Body)
			b.popScope()
		case syntax.StmtReturn:
			expr := strings.TrimSpace(strings.TrimPrefix(s.Text, "return"))
			ret := b.addNode(NodeReturn, "", s.Line, expr)
			b.wireUses(expr, ret)
		}
	}
}

// condUses wires the identifiers a condition reads into an operation node,
// so definitions consumed only by conditions still count as used.
func (b *dfgBuilder) condUses(s *syntax.Stmt) {
	if s.Cond == "" {
		return
	}
	op := b.addNode(NodeOperation, condOperator(s.Cond), s.Line, s.Cond)
	b.wireUses(s.Cond, op)
}

// defineLoopVars introduces the variables a loop header binds: the left side
// of := in a Go for clause, or the target of a Python-style "x in xs".
func (b *dfgBuilder) defineLoopVars(s *syntax.Stmt) {
	cond := s.Cond
	var raw string
	if i := strings.Index(cond, ":="); i >= 0 {
		raw = cond[:i]
	} else if i := strings.Index(cond, " in "); i >= 0 {
		raw = cond[:i]
	} else {
		return
	}
	for _, name := range splitTargets(raw) {
		if !identRe.MatchString(name) {
			continue
		}
		id := b.addNode(NodeDefinition, name, s.Line, s.Text)
		b.define(name, id)
	}
}

func (b *dfgBuilder) plainStmt(s *syntax.Stmt) {
	if m := assignRe.FindStringSubmatch(s.Text); m != nil && !strings.HasPrefix(m[4], "=") {
		targets := splitTargets(m[2])
		producer := b.exprNode(m[4], s.Line)
		// A declaration keyword or := binds the innermost scope.
		declare := m[1] != "" || m[3] == ":="
		compound := m[3] != "=" && m[3] != ":="
		for _, name := range targets {
			src := producer
			if compound {
				// x += y reads the previous x and combines it with the rhs.
				if prev, ok := b.lookup(name); ok {
					op := b.addNode(NodeOperation, strings.TrimSuffix(m[3], "="), s.Line, s.Text)
					b.addEdge(prev, op)
					if producer >= 0 {
						b.addEdge(producer, op)
					}
					src = op
				}
			}
			def := b.addNode(NodeDefinition, name, s.Line, s.Text)
			if src >= 0 {
				b.addEdge(src, def)
			}
			b.assign(name, def, declare)
		}
		return
	}

	// Bare expression statement, typically a call.
	if m := callRe.FindStringSubmatch(s.Text); m != nil {
		call := b.addNode(NodeCall, m[1], s.Line, s.Text)
		b.wireUses(argText(s.Text), call)
	}
}

// exprNode creates the node producing an expression's value and wires its
// operand uses. It returns -1 for expressions with nothing to model.
func (b *dfgBuilder) exprNode(expr string, line int) int {
	expr = strings.TrimSpace(expr)

	if m := callRe.FindStringSubmatch(expr); m != nil {
		call := b.addNode(NodeCall, m[1], line, expr)
		b.wireUses(argText(expr), call)
		return call
	}

	if op := findOperator(expr); op != "" {
		opNode := b.addNode(NodeOperation, op, line, expr)
		b.wireUses(expr, opNode)
		for _, lit := range numberRe.FindAllString(expr, -1) {
			c := b.addNode(NodeConstant, lit, line, lit)
			b.addEdge(c, opNode)
		}
		return opNode
	}

	// Single identifier: alias of an existing definition.
	if id, ok := b.lookup(expr); ok {
		return id
	}

	return b.addNode(NodeConstant, expr, line, expr)
}

// wireUses adds a flow edge from every in-scope definition the expression
// reads to the consumer node.
func (b *dfgBuilder) wireUses(expr string, consumer int) {
	if consumer < 0 {
		return
	}
	seen := map[int]bool{}
	for _, name := range identRe.FindAllString(expr, -1) {
		if id, ok := b.lookup(name); ok && !seen[id] {
			seen[id] = true
			b.addEdge(id, consumer)
		}
	}
}

// splitTargets splits "a, b" into the assigned names, dropping blanks.
func splitTargets(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name != "" && name != "_" {
			names = append(names, name)
		}
	}
	return names
}

// argText returns the text inside the outermost call parentheses.
func argText(expr string) string {
	open := strings.IndexByte(expr, '(')
	close := strings.LastIndexByte(expr, ')')
	if open >= 0 && close > open {
		return expr[open+1 : close]
	}
	return expr
}

// findOperator returns the first arithmetic or comparison operator at paren
// depth zero, or "".
func findOperator(expr string) string {
	depth := 0
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '+', '-', '*', '/', '%':
			if depth == 0 && i > 0 {
				return string(expr[i])
			}
		case '<', '>':
			if depth == 0 {
				return string(expr[i])
			}
		case '=', '!':
			if depth == 0 && i+1 < len(expr) && expr[i+1] == '=' {
				return expr[i : i+2]
			}
		}
	}
	return ""
}

// condOperator names the dominant operator of a condition.
func condOperator(cond string) string {
	if op := findOperator(cond); op != "" {
		return op
	}
	return "cond"
}
