package callgraph

import (
	"context"
	"regexp"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/l3aro/go-graph-query/pkg/syntax"
)

var callSiteRe = regexp.MustCompile(`([A-Za-z_][\w.]*)\s*\(`)

// controlKeywords are identifiers that look like call sites but are not.
var controlKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "return": true,
	"func": true, "catch": true, "def": true, "elif": true, "range": true,
	"make": true, "new": true, "len": true, "cap": true, "append": true,
	"print": true, "println": true,
}

// Build constructs the call graph. Phase one registers every function from
// every tree; only after all registrations complete does phase two scan call
// sites, so a callee defined in a later file resolves exactly like one
// defined earlier.
func Build(ctx context.Context, trees []*syntax.FileTree, workers int) (*Graph, error) {
	if workers < 1 {
		workers = 1
	}
	b := &cgBuilder{
		g:      &Graph{},
		byName: make(map[string][]int),
	}

	reg, regCtx := errgroup.WithContext(ctx)
	reg.SetLimit(workers)
	for _, tree := range trees {
		tree := tree
		reg.Go(func() error {
			if err := regCtx.Err(); err != nil {
				return err
			}
			b.register(tree)
			return nil
		})
	}
	if err := reg.Wait(); err != nil {
		return nil, err
	}

	res, resCtx := errgroup.WithContext(ctx)
	res.SetLimit(workers)
	for _, tree := range trees {
		tree := tree
		res.Go(func() error {
			if err := resCtx.Err(); err != nil {
				return err
			}
			b.resolve(tree)
			return nil
		})
	}
	if err := res.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(b.g.Calls, func(i, j int) bool {
		a, c := b.g.Calls[i], b.g.Calls[j]
		if a.From != c.From {
			return a.From < c.From
		}
		if a.To != c.To {
			return a.To < c.To
		}
		return a.Line < c.Line
	})
	b.markRecursive()
	return b.g, nil
}

type cgBuilder struct {
	mu sync.Mutex
	g  *Graph
	// byName maps both plain and qualified names to function ids.
	byName map[string][]int
}

func (b *cgBuilder) register(tree *syntax.FileTree) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, fn := range tree.Functions {
		id := len(b.g.Functions)
		b.g.Functions = append(b.g.Functions, Function{
			ID:            id,
			Name:          fn.Name,
			QualifiedName: fn.QualifiedName,
			File:          tree.Path,
			Line:          fn.StartLine,
		})
		b.byName[fn.Name] = append(b.byName[fn.Name], id)
		if fn.QualifiedName != fn.Name {
			b.byName[fn.QualifiedName] = append(b.byName[fn.QualifiedName], id)
		}
	}
}

func (b *cgBuilder) resolve(tree *syntax.FileTree) {
	for _, fn := range tree.Functions {
		callerID, ok := b.functionID(tree.Path, fn.QualifiedName)
		if !ok {
			continue
		}
		for _, stmt := range fn.Statements {
			for _, m := range callSiteRe.FindAllStringSubmatch(stmt.Text, -1) {
				callee := m[1]
				if controlKeywords[callee] {
					continue
				}
				b.addCall(callerID, tree.Path, callee, stmt.Line)
			}
		}
	}
}

// functionID finds the registered id of a function by its defining file and
// qualified name.
func (b *cgBuilder) functionID(file, qualified string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, id := range b.byName[qualified] {
		if b.g.Functions[id].File == file {
			return id, true
		}
	}
	return 0, false
}

// addCall resolves a callee name, preferring a definition in the caller's
// own file over one elsewhere in the project.
func (b *cgBuilder) addCall(callerID int, file, callee string, line int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	candidates := b.byName[callee]
	if len(candidates) == 0 {
		// a.b() may resolve by the method name alone.
		if i := lastDotIndex(callee); i >= 0 {
			candidates = b.byName[callee[i+1:]]
		}
	}
	if len(candidates) == 0 {
		b.g.Unresolved = append(b.g.Unresolved, UnresolvedCall{From: callerID, Callee: callee, Line: line})
		return
	}

	target := candidates[0]
	for _, id := range candidates {
		if b.g.Functions[id].File == file {
			target = id
			break
		}
	}
	b.g.Calls = append(b.g.Calls, Call{From: callerID, To: target, Line: line})
}

func lastDotIndex(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
