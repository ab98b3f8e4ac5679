package syntax

import (
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/l3aro/go-graph-query/pkg/lang"
)

// parserPools holds a reusable parser pool per wired grammar. Parsers are not
// safe for concurrent use, so each extraction borrows one.
var parserPools = map[lang.Grammar]*sync.Pool{
	lang.GrammarGo:         newParserPool(golang.GetLanguage()),
	lang.GrammarPython:     newParserPool(python.GetLanguage()),
	lang.GrammarJavaScript: newParserPool(javascript.GetLanguage()),
}

func newParserPool(language *sitter.Language) *sync.Pool {
	return &sync.Pool{
		New: func() interface{} {
			parser := sitter.NewParser()
			parser.SetLanguage(language)
			return parser
		},
	}
}

// extractGrammar parses content with the profile's tree-sitter grammar and
// walks the AST with the language-specific walker. A root node containing
// syntax errors fails the whole strategy so the caller can fall back.
func extractGrammar(profile *lang.Profile, content []byte) (*FileTree, error) {
	pool, ok := parserPools[profile.Grammar]
	if !ok {
		return nil, fmt.Errorf("no grammar wired for %s", profile.Name)
	}

	parser := pool.Get().(*sitter.Parser)
	defer pool.Put(parser)

	tree := parser.Parse(nil, content)
	if tree == nil {
		return nil, fmt.Errorf("parsing %s content failed", profile.Name)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("%s syntax errors in source", profile.Name)
	}

	ft := &FileTree{}
	switch profile.Grammar {
	case lang.GrammarGo:
		walkGo(root, content, ft)
	case lang.GrammarPython:
		walkPython(root, content, ft, "")
	case lang.GrammarJavaScript:
		walkJavaScript(root, content, ft, "")
	}
	return ft, nil
}

// nodeText returns the source text covered by a node.
func nodeText(node *sitter.Node, content []byte) string {
	return string(content[node.StartByte():node.EndByte()])
}

// nodeLines returns the 1-based start and end lines of a node.
func nodeLines(node *sitter.Node) (int, int) {
	return int(node.StartPoint().Row) + 1, int(node.EndPoint().Row) + 1
}

// fieldText returns the text of a named child field, or "".
func fieldText(node *sitter.Node, field string, content []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return nodeText(child, content)
}

// paramNames splits a raw parameter list like "(a int, b string)" into the
// individual parameter names.
func paramNames(raw string) []string {
	raw = trimParens(raw)
	if raw == "" {
		return nil
	}
	var names []string
	depth := 0
	start := 0
	flush := func(end int) {
		part := raw[start:end]
		if name := firstIdent(part); name != "" && name != "self" {
			names = append(names, name)
		}
	}
	for i, r := range raw {
		switch r {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		case ',':
			if depth == 0 {
				flush(i)
				start = i + 1
			}
		}
	}
	flush(len(raw))
	return names
}

func trimParens(s string) string {
	for len(s) > 0 && (s[0] == '(' || s[0] == ' ') {
		s = s[1:]
	}
	for len(s) > 0 && (s[len(s)-1] == ')' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}

// firstIdent returns the first identifier in a parameter fragment, skipping
// leading punctuation like * or ... and stopping at type annotations.
func firstIdent(s string) string {
	start := -1
	for i, r := range s {
		isIdent := r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || start >= 0 && r >= '0' && r <= '9'
		if isIdent {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}
