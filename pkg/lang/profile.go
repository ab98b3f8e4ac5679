// Package lang defines per-language profiles: the regex patterns used by the
// pattern-based extraction strategy, the import/export patterns used by the
// dependency graph, and a flag marking whether a tree-sitter grammar is wired
// for the language. The registry is constructed once at startup and passed by
// reference into every extractor call; there is no ambient global table.
package lang

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Grammar identifies a wired tree-sitter grammar.
type Grammar string

const (
	// GrammarNone marks languages that only have pattern-based extraction.
	GrammarNone Grammar = ""
	// GrammarGo is the tree-sitter Go grammar.
	GrammarGo Grammar = "go"
	// GrammarPython is the tree-sitter Python grammar.
	GrammarPython Grammar = "python"
	// GrammarJavaScript is the tree-sitter JavaScript grammar.
	GrammarJavaScript Grammar = "javascript"
)

// Profile describes one language's syntax surface for extraction.
type Profile struct {
	Name       string
	Extensions []string

	// FunctionPattern matches a function definition line; the first capture
	// group is the function name, the optional second group the parameter list.
	FunctionPattern *regexp.Regexp
	// ClassPattern matches a class/struct/trait definition line; the first
	// capture group is the type name.
	ClassPattern *regexp.Regexp
	// ImportPatterns match import/use lines; the first capture group is the
	// imported module path.
	ImportPatterns []*regexp.Regexp
	// ExportPatterns match exported declaration lines; the first capture group
	// is the exported name.
	ExportPatterns []*regexp.Regexp
	// CommentPrefixes are line-comment markers used to skip comment lines.
	CommentPrefixes []string

	// IndentBlocks is true for indentation-delimited syntax (Python); false
	// for brace-delimited syntax.
	IndentBlocks bool

	// Grammar names the tree-sitter grammar wired for this language, or
	// GrammarNone when only the pattern strategy (marked heuristic in output)
	// is available.
	Grammar Grammar
}

// Heuristic reports whether extraction for this language can only use the
// pattern strategy.
func (p *Profile) Heuristic() bool {
	return p.Grammar == GrammarNone
}

// IsComment reports whether the trimmed line is a line comment.
func (p *Profile) IsComment(trimmed string) bool {
	for _, prefix := range p.CommentPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// Registry maps file extensions to language profiles.
type Registry struct {
	byExt  map[string]*Profile
	byName map[string]*Profile
}

// NewRegistry builds the registry with the built-in language table.
func NewRegistry() *Registry {
	r := &Registry{
		byExt:  make(map[string]*Profile),
		byName: make(map[string]*Profile),
	}
	for _, p := range builtinProfiles() {
		r.Register(p)
	}
	return r
}

// Register adds a profile to the registry.
func (r *Registry) Register(p *Profile) {
	r.byName[strings.ToLower(p.Name)] = p
	for _, ext := range p.Extensions {
		r.byExt[ext] = p
	}
}

// ByPath returns the profile for a file path based on its extension.
func (r *Registry) ByPath(path string) (*Profile, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	p, ok := r.byExt[ext]
	return p, ok
}

// ByName returns the profile for a language name.
func (r *Registry) ByName(name string) (*Profile, bool) {
	p, ok := r.byName[strings.ToLower(name)]
	return p, ok
}

// Supported reports whether any profile claims the file's extension.
func (r *Registry) Supported(path string) bool {
	_, ok := r.ByPath(path)
	return ok
}

// Extensions returns every registered extension.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

func builtinProfiles() []*Profile {
	return []*Profile{
		{
			Name:            "Go",
			Extensions:      []string{".go"},
			FunctionPattern: regexp.MustCompile(`^func\s+(?:\([^)]*\)\s+)?(\w+)\s*\(([^)]*)`),
			ClassPattern:    regexp.MustCompile(`^type\s+(\w+)\s+(?:struct|interface)\b`),
			ImportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^import\s+(?:\w+\s+)?"([^"]+)"`),
				regexp.MustCompile(`^(?:\w+\s+)?"([^"]+)"$`),
			},
			ExportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^func\s+(?:\([^)]*\)\s+)?([A-Z]\w*)\s*\(`),
				regexp.MustCompile(`^type\s+([A-Z]\w*)\b`),
				regexp.MustCompile(`^(?:var|const)\s+([A-Z]\w*)\b`),
			},
			CommentPrefixes: []string{"//"},
			Grammar:         GrammarGo,
		},
		{
			Name:            "Python",
			Extensions:      []string{".py", ".pyw", ".pyi"},
			FunctionPattern: regexp.MustCompile(`^(?:async\s+)?def\s+(\w+)\s*\(([^)]*)`),
			ClassPattern:    regexp.MustCompile(`^class\s+(\w+)`),
			ImportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^import\s+([\w.]+)`),
				regexp.MustCompile(`^from\s+([\w.]+)\s+import`),
			},
			ExportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^def\s+(\w+)`),
				regexp.MustCompile(`^class\s+(\w+)`),
			},
			CommentPrefixes: []string{"#"},
			IndentBlocks:    true,
			Grammar:         GrammarPython,
		},
		{
			Name:            "JavaScript",
			Extensions:      []string{".js", ".jsx", ".mjs", ".cjs"},
			FunctionPattern: regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s+(\w+)\s*\(([^)]*)`),
			ClassPattern:    regexp.MustCompile(`^(?:export\s+)?class\s+(\w+)`),
			ImportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`import\s+.*?\s+from\s+['"]([^'"]+)['"]`),
				regexp.MustCompile(`require\(['"]([^'"]+)['"]\)`),
			},
			ExportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^export\s+(?:default\s+)?(?:async\s+)?(?:function|class|const|let|var)\s+(\w+)`),
			},
			CommentPrefixes: []string{"//"},
			Grammar:         GrammarJavaScript,
		},
		{
			Name:            "TypeScript",
			Extensions:      []string{".ts", ".tsx", ".mts", ".cts"},
			FunctionPattern: regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s+(\w+)\s*\(([^)]*)`),
			ClassPattern:    regexp.MustCompile(`^(?:export\s+)?(?:class|interface)\s+(\w+)`),
			ImportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`import\s+.*?\s+from\s+['"]([^'"]+)['"]`),
			},
			ExportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^export\s+(?:default\s+)?(?:async\s+)?(?:function|class|interface|const|let|var)\s+(\w+)`),
			},
			CommentPrefixes: []string{"//"},
		},
		{
			Name:            "Rust",
			Extensions:      []string{".rs"},
			FunctionPattern: regexp.MustCompile(`^(?:pub\s+)?(?:async\s+)?fn\s+(\w+)\s*\(([^)]*)`),
			ClassPattern:    regexp.MustCompile(`^(?:pub\s+)?(?:struct|enum|trait)\s+(\w+)`),
			ImportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^use\s+([\w:]+)`),
				regexp.MustCompile(`^mod\s+(\w+);`),
			},
			ExportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^pub\s+fn\s+(\w+)`),
				regexp.MustCompile(`^pub\s+(?:struct|enum|trait)\s+(\w+)`),
			},
			CommentPrefixes: []string{"//"},
		},
		{
			Name:            "Java",
			Extensions:      []string{".java"},
			FunctionPattern: regexp.MustCompile(`^(?:public|private|protected)?\s*(?:static\s+)?[\w<>\[\]]+\s+(\w+)\s*\(([^)]*)`),
			ClassPattern:    regexp.MustCompile(`^(?:public\s+)?(?:abstract\s+)?(?:class|interface|enum)\s+(\w+)`),
			ImportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^import\s+([\w.]+);`),
			},
			ExportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^public\s+(?:class|interface|enum)\s+(\w+)`),
			},
			CommentPrefixes: []string{"//"},
		},
		{
			Name:            "C",
			Extensions:      []string{".c", ".h"},
			FunctionPattern: regexp.MustCompile(`^[\w*]+\s+(\w+)\s*\(([^)]*)\)\s*\{?`),
			ClassPattern:    regexp.MustCompile(`^(?:typedef\s+)?struct\s+(\w+)`),
			ImportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^#include\s+["<]([^">]+)[">]`),
			},
			CommentPrefixes: []string{"//"},
		},
		{
			Name:            "Ruby",
			Extensions:      []string{".rb"},
			FunctionPattern: regexp.MustCompile(`^def\s+(\w+[?!]?)\s*\(?([^)]*)`),
			ClassPattern:    regexp.MustCompile(`^(?:class|module)\s+(\w+)`),
			ImportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^require(?:_relative)?\s+['"]([^'"]+)['"]`),
			},
			CommentPrefixes: []string{"#"},
			IndentBlocks:    true,
		},
		{
			Name:            "PHP",
			Extensions:      []string{".php"},
			FunctionPattern: regexp.MustCompile(`^(?:public|private|protected)?\s*(?:static\s+)?function\s+(\w+)\s*\(([^)]*)`),
			ClassPattern:    regexp.MustCompile(`^(?:abstract\s+)?(?:class|interface|trait)\s+(\w+)`),
			ImportPatterns: []*regexp.Regexp{
				regexp.MustCompile(`^use\s+([\w\\]+);`),
				regexp.MustCompile(`^(?:require|include)(?:_once)?\s+['"]([^'"]+)['"]`),
			},
			CommentPrefixes: []string{"//", "#"},
		},
	}
}
