package syntax

import (
	"strings"

	"github.com/l3aro/go-graph-query/pkg/lang"
)

// Extractor produces FileTrees from source files. It is safe for concurrent
// use; grammar parsers are pooled per language.
type Extractor struct {
	langs *lang.Registry
}

// NewExtractor creates an extractor over the given language registry.
func NewExtractor(langs *lang.Registry) *Extractor {
	return &Extractor{langs: langs}
}

// Languages returns the registry the extractor was built with.
func (e *Extractor) Languages() *lang.Registry {
	return e.langs
}

// Extract parses content and returns the file's declaration surface and
// function bodies. Languages with a wired grammar go through tree-sitter;
// everything else uses the profile's patterns and is marked heuristic. When
// the grammar reports syntax errors, extraction falls back to the pattern
// strategy and records the failure on the tree.
func (e *Extractor) Extract(path string, content []byte) (*FileTree, error) {
	profile, ok := e.langs.ByPath(path)
	if !ok {
		return nil, &UnsupportedError{Path: path}
	}

	lines := splitLines(content)

	var tree *FileTree
	if profile.Grammar != lang.GrammarNone {
		parsed, err := extractGrammar(profile, content)
		if err == nil {
			tree = parsed
		} else {
			tree = extractPattern(profile, lines)
			tree.ParseError = err.Error()
		}
	} else {
		tree = extractPattern(profile, lines)
	}

	tree.Path = path
	tree.Language = profile.Name
	tree.Decls = append(tree.Decls, extractImports(profile, lines)...)

	for i := range tree.Functions {
		fn := &tree.Functions[i]
		fn.Statements = collectStatements(profile, lines, fn.StartLine, fn.EndLine)
	}
	return tree, nil
}

// UnsupportedError is returned when no language profile claims the file.
type UnsupportedError struct {
	Path string
}

func (e *UnsupportedError) Error() string {
	return "unsupported file type: " + e.Path
}

// splitLines splits content into lines without the trailing newline.
func splitLines(content []byte) []string {
	return strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
}

// extractImports runs the profile's import patterns over every line.
// Both strategies share this pass so import extraction is identical whether
// or not a grammar is available.
func extractImports(profile *lang.Profile, lines []string) []Decl {
	var decls []Decl
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || profile.IsComment(trimmed) {
			continue
		}
		for _, pattern := range profile.ImportPatterns {
			if m := pattern.FindStringSubmatch(trimmed); m != nil {
				decls = append(decls, Decl{
					Kind:      DeclImport,
					Name:      m[1],
					StartLine: i + 1,
					EndLine:   i + 1,
				})
				break
			}
		}
	}
	return decls
}

// collectStatements gathers the non-blank, non-comment lines strictly inside
// a function's line span. The definition line itself is excluded.
func collectStatements(profile *lang.Profile, lines []string, startLine, endLine int) []Statement {
	var stmts []Statement
	for ln := startLine + 1; ln <= endLine && ln <= len(lines); ln++ {
		raw := lines[ln-1]
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || profile.IsComment(trimmed) {
			continue
		}
		if isBlockDelimiter(trimmed) {
			continue
		}
		stmts = append(stmts, Statement{
			Line:   ln,
			Text:   trimmed,
			Indent: indentWidth(raw),
		})
	}
	return stmts
}

// isBlockDelimiter reports whether the line is only block punctuation.
func isBlockDelimiter(trimmed string) bool {
	switch trimmed {
	case "{", "}", "};", ")", "),", "})", "});":
		return true
	}
	return false
}

// indentWidth measures leading whitespace, counting tabs as four columns.
func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}
