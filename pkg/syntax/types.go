// Package syntax extracts the declaration surface and function bodies from
// source files. Two strategies exist: grammar-based extraction through
// tree-sitter for languages with a wired grammar, and pattern-based extraction
// driven by the language profile's regexes for everything else. Pattern
// results are marked heuristic so downstream consumers can qualify findings.
package syntax

// DeclKind classifies a top-level declaration.
type DeclKind string

const (
	// DeclFunction is a free function or method.
	DeclFunction DeclKind = "function"
	// DeclClass is a class, struct, interface, or trait definition.
	DeclClass DeclKind = "class"
	// DeclImport is an import or include of another module.
	DeclImport DeclKind = "import"
)

// Decl is one extracted declaration.
type Decl struct {
	Kind      DeclKind `json:"kind"`
	Name      string   `json:"name"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
}

// Statement is one non-blank, non-comment source line inside a function body.
type Statement struct {
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Indent int    `json:"indent"`
}

// FunctionBody is an extracted function with its body statements, the unit
// consumed by control-flow and data-flow construction.
type FunctionBody struct {
	Name          string      `json:"name"`
	QualifiedName string      `json:"qualified_name"`
	Params        []string    `json:"params,omitempty"`
	StartLine     int         `json:"start_line"`
	EndLine       int         `json:"end_line"`
	Statements    []Statement `json:"statements,omitempty"`
}

// FileTree is the extraction result for a single file.
type FileTree struct {
	Path      string         `json:"path"`
	Language  string         `json:"language"`
	Heuristic bool           `json:"heuristic"`
	Decls     []Decl         `json:"decls"`
	Functions []FunctionBody `json:"functions"`

	// ParseError is set when the grammar strategy found syntax errors and
	// extraction fell back to the pattern strategy.
	ParseError string `json:"parse_error,omitempty"`
}

// Function returns the named function body, matching either the plain or the
// qualified name.
func (t *FileTree) Function(name string) (*FunctionBody, bool) {
	for i := range t.Functions {
		if t.Functions[i].Name == name || t.Functions[i].QualifiedName == name {
			return &t.Functions[i], true
		}
	}
	return nil, false
}

// Imports returns the import paths declared in the file.
func (t *FileTree) Imports() []string {
	var imports []string
	for _, d := range t.Decls {
		if d.Kind == DeclImport {
			imports = append(imports, d.Name)
		}
	}
	return imports
}
