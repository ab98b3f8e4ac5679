package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// walkGo collects function, method, and type declarations from a Go AST.
func walkGo(node *sitter.Node, content []byte, ft *FileTree) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "function_declaration":
		name := fieldText(node, "name", content)
		start, end := nodeLines(node)
		ft.Decls = append(ft.Decls, Decl{Kind: DeclFunction, Name: name, StartLine: start, EndLine: end})
		ft.Functions = append(ft.Functions, FunctionBody{
			Name:          name,
			QualifiedName: name,
			Params:        paramNames(fieldText(node, "parameters", content)),
			StartLine:     start,
			EndLine:       end,
		})
		return
	case "method_declaration":
		name := fieldText(node, "name", content)
		receiver := goReceiverType(node, content)
		qualified := name
		if receiver != "" {
			qualified = receiver + "." + name
		}
		start, end := nodeLines(node)
		ft.Decls = append(ft.Decls, Decl{Kind: DeclFunction, Name: qualified, StartLine: start, EndLine: end})
		ft.Functions = append(ft.Functions, FunctionBody{
			Name:          name,
			QualifiedName: qualified,
			Params:        paramNames(fieldText(node, "parameters", content)),
			StartLine:     start,
			EndLine:       end,
		})
		return
	case "type_spec":
		if isGoClassLike(node) {
			start, end := nodeLines(node)
			ft.Decls = append(ft.Decls, Decl{
				Kind:      DeclClass,
				Name:      fieldText(node, "name", content),
				StartLine: start,
				EndLine:   end,
			})
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkGo(node.Child(i), content, ft)
	}
}

// goReceiverType extracts the receiver's type name from a method declaration,
// stripping pointers and type parameters.
func goReceiverType(node *sitter.Node, content []byte) string {
	receiver := node.ChildByFieldName("receiver")
	if receiver == nil {
		return ""
	}
	text := trimParens(nodeText(receiver, content))
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	typ := fields[len(fields)-1]
	typ = strings.TrimPrefix(typ, "*")
	if i := strings.IndexByte(typ, '['); i >= 0 {
		typ = typ[:i]
	}
	return typ
}

// isGoClassLike reports whether a type_spec defines a struct or interface.
func isGoClassLike(node *sitter.Node) bool {
	typ := node.ChildByFieldName("type")
	if typ == nil {
		return false
	}
	switch typ.Type() {
	case "struct_type", "interface_type":
		return true
	}
	return false
}
