package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// walkJavaScript collects function, method, and class declarations from a
// JavaScript AST. className carries the enclosing class for methods.
func walkJavaScript(node *sitter.Node, content []byte, ft *FileTree, className string) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		appendJSFunction(node, content, ft, className, fieldText(node, "name", content))
		return
	case "method_definition":
		appendJSFunction(node, content, ft, className, fieldText(node, "name", content))
		return
	case "class_declaration":
		name := fieldText(node, "name", content)
		start, end := nodeLines(node)
		ft.Decls = append(ft.Decls, Decl{Kind: DeclClass, Name: name, StartLine: start, EndLine: end})
		if body := node.ChildByFieldName("body"); body != nil {
			walkJavaScript(body, content, ft, name)
		}
		return
	case "variable_declarator":
		// const f = () => {} and const f = function() {}
		if value := node.ChildByFieldName("value"); value != nil {
			switch value.Type() {
			case "arrow_function", "function_expression", "function":
				name := fieldText(node, "name", content)
				if name != "" {
					start, end := nodeLines(node)
					ft.Decls = append(ft.Decls, Decl{Kind: DeclFunction, Name: name, StartLine: start, EndLine: end})
					ft.Functions = append(ft.Functions, FunctionBody{
						Name:          name,
						QualifiedName: name,
						Params:        paramNames(fieldText(value, "parameters", content)),
						StartLine:     start,
						EndLine:       end,
					})
					return
				}
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		walkJavaScript(node.Child(i), content, ft, className)
	}
}

func appendJSFunction(node *sitter.Node, content []byte, ft *FileTree, className, name string) {
	if name == "" {
		return
	}
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
}
