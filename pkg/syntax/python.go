package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// walkPython collects function and class definitions from a Python AST.
// className carries the enclosing class so methods get qualified names.
func walkPython(node *sitter.Node, content []byte, ft *FileTree, className string) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "function_definition":
		name := fieldText(node, "name", content)
		qualified := name
		if className != "" {
			qualified = className + "." + name
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
	case "class_definition":
		name := fieldText(node, "name", content)
		start, end := nodeLines(node)
		ft.Decls = append(ft.Decls, Decl{Kind: DeclClass, Name: name, StartLine: start, EndLine: end})
		if body := node.ChildByFieldName("body"); body != nil {
			walkPython(body, content, ft, name)
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkPython(node.Child(i), content, ft, className)
	}
}
