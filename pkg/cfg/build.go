package cfg

import (
	"github.com/l3aro/go-graph-query/pkg/syntax"
)

// Build constructs the control-flow graph for a function body. Statements
// lexically following an unconditional jump start a fresh block with no
// incoming edge, so they show up as unreachable.
func Build(fn *syntax.FunctionBody) *Graph {
	b := &builder{
		g: &Graph{Function: fn.QualifiedName},
	}
	b.g.Entry = b.addBlock(BlockEntry, fn.StartLine, "")

	b.frontier = []edgeSrc{{b.g.Entry, EdgeSequential}}
	b.buildStmts(syntax.Nest(fn.Statements), nil)

	exit := b.addBlock(BlockExit, fn.EndLine, "")
	b.g.Exit = exit
	for _, r := range b.returns {
		b.addEdge(r, exit, EdgeSequential)
	}
	b.wireFrontier(exit)
	return b.g
}

// edgeSrc is a dangling exit waiting to be wired into the next block.
type edgeSrc struct {
	from int
	kind EdgeKind
}

// loopFrame tracks the enclosing loop during construction.
type loopFrame struct {
	head   int
	breaks []int
}

type builder struct {
	g        *Graph
	frontier []edgeSrc
	// open is the normal block currently accepting statements, or -1.
	open    int
	returns []int
}

func (b *builder) addBlock(kind BlockKind, line int, cond string) int {
	id := len(b.g.Blocks)
	b.g.Blocks = append(b.g.Blocks, Block{
		ID:        id,
		Kind:      kind,
		StartLine: line,
		EndLine:   line,
		Condition: cond,
	})
	b.open = -1
	return id
}

func (b *builder) addEdge(from, to int, kind EdgeKind) {
	b.g.Edges = append(b.g.Edges, Edge{From: from, To: to, Kind: kind})
}

// wireFrontier connects every dangling exit to the given block and clears
// the frontier.
func (b *builder) wireFrontier(to int) {
	for _, src := range b.frontier {
		b.addEdge(src.from, to, src.kind)
	}
	b.frontier = nil
}

// statementBlock returns a block accepting plain statements, reusing the open
// one when the flow has not branched since it was created.
func (b *builder) statementBlock(kind BlockKind, line int) int {
	if kind == BlockNormal && b.open >= 0 {
		return b.open
	}
	id := b.addBlock(kind, line, "")
	b.wireFrontier(id)
	if kind == BlockNormal {
		b.open = id
		b.frontier = []edgeSrc{{id, EdgeSequential}}
	}
	return id
}

func (b *builder) appendStmt(id int, s *syntax.Stmt) {
	blk := &b.g.Blocks[id]
	blk.Statements = append(blk.Statements, s.Text)
	blk.Lines = append(blk.Lines, s.Line)
	if s.Line > blk.EndLine {
		blk.EndLine = s.Line
	}
	if len(blk.Statements) == 1 {
		blk.StartLine = s.Line
	}
}

func (b *builder) buildStmts(stmts []*syntax.Stmt, loop *loopFrame) {
	for _, s := range stmts {
		switch s.Kind {
		case syntax.StmtPlain:
			id := b.statementBlock(BlockNormal, s.Line)
			b.appendStmt(id, s)

		case syntax.StmtIf:
			bb := b.addBlock(BlockBranch, s.Line, s.Cond)
			b.appendStmt(bb, s)
			b.wireFrontier(bb)

			b.frontier = []edgeSrc{{bb, EdgeTrue}}
			b.buildStmts(s.Body, loop)
			trueFrontier := b.frontier
			b.open = -1

			b.frontier = []edgeSrc{{bb, EdgeFalse}}
			b.buildStmts(s.Else, loop)
			b.frontier = append(trueFrontier, b.frontier...)
			b.open = -1

		case syntax.StmtLoop:
			lb := b.addBlock(BlockLoop, s.Line, s.Cond)
			b.appendStmt(lb, s)
			b.wireFrontier(lb)

			frame := &loopFrame{head: lb}
			b.frontier = []edgeSrc{{lb, EdgeTrue}}
			b.buildStmts(s.Body, frame)
			for _, src := range b.frontier {
				b.addEdge(src.from, lb, EdgeLoopBack)
			}

			b.frontier = []edgeSrc{{lb, EdgeFalse}}
			for _, from := range frame.breaks {
				b.frontier = append(b.frontier, edgeSrc{from, EdgeBreak})
			}
			b.open = -1

		case syntax.StmtReturn:
			rb := b.addBlock(BlockReturn, s.Line, "")
			b.appendStmt(rb, s)
			b.wireFrontier(rb)
			b.returns = append(b.returns, rb)

		case syntax.StmtBreak:
			id := b.statementBlock(BlockNormal, s.Line)
			b.appendStmt(id, s)
			if loop != nil {
				loop.breaks = append(loop.breaks, id)
			}
			b.frontier = nil
			b.open = -1

		case syntax.StmtContinue:
			id := b.statementBlock(BlockNormal, s.Line)
			b.appendStmt(id, s)
			if loop != nil {
				b.addEdge(id, loop.head, EdgeContinue)
			}
			b.frontier = nil
			b.open = -1
		}
	}
}
