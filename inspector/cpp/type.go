package cpp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/wrapmerge/inspector/graph"
)

// value encodes a spelled type and its indirection as a type code
func value(typeNode *sitter.Node, src []byte, isConst bool, pointers int, reference bool) *graph.Value {
	spelled := typeName(typeNode, src)
	code := graph.LookupBase(spelled)
	if typeNode.Type() == "template_type" {
		code = graph.Object
	}
	for j := 0; j < pointers; j++ {
		code = code.WithPointer()
	}
	if reference {
		code = code.WithReference()
	}
	if isConst {
		code = code.WithConst()
	}
	ret := &graph.Value{Code: code}
	if code.Base() == graph.Object || code.Base() == graph.String {
		ret.Class = spelled
	}
	return ret
}

func typeName(typeNode *sitter.Node, src []byte) string {
	switch typeNode.Type() {
	case "struct_specifier", "class_specifier", "enum_specifier", "union_specifier":
		if name := typeNode.ChildByFieldName("name"); name != nil {
			return name.Content(src)
		}
	}
	return strings.Join(strings.Fields(typeNode.Content(src)), " ")
}

// parameters extracts argument declarations of a parameter list
func parameters(list *sitter.Node, src []byte) []*graph.Parameter {
	if list == nil {
		return nil
	}
	var result []*graph.Parameter
	for j := 0; j < int(list.NamedChildCount()); j++ {
		child := list.NamedChild(j)
		switch child.Type() {
		case "parameter_declaration", "optional_parameter_declaration":
			if param := parameter(child, src); param != nil {
				result = append(result, param)
			}
		case "variadic_parameter_declaration":
			result = append(result, &graph.Parameter{Name: "...", Type: &graph.Value{Code: graph.Unknown}})
		}
	}
	for j := 0; j < int(list.ChildCount()); j++ {
		if list.Child(j).Type() == "..." && !hasVariadic(result) {
			result = append(result, &graph.Parameter{Name: "...", Type: &graph.Value{Code: graph.Unknown}})
		}
	}
	// f(void) declares no arguments
	if len(result) == 1 && result[0].Name == "" && result[0].Type.Code == graph.Void {
		return nil
	}
	return result
}

func hasVariadic(params []*graph.Parameter) bool {
	for _, param := range params {
		if param.Name == "..." {
			return true
		}
	}
	return false
}

func parameter(node *sitter.Node, src []byte) *graph.Parameter {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return nil
	}
	isConst := false
	for j := 0; j < int(node.ChildCount()); j++ {
		if child := node.Child(j); child.Type() == "type_qualifier" && child.Content(src) == "const" {
			isConst = true
		}
	}
	param := &graph.Parameter{}
	pointers := 0
	reference := false
	isFunction := false
	for declarator := node.ChildByFieldName("declarator"); declarator != nil; {
		switch declarator.Type() {
		case "identifier":
			param.Name = declarator.Content(src)
			declarator = nil
			continue
		case "pointer_declarator", "abstract_pointer_declarator",
			"array_declarator", "abstract_array_declarator":
			pointers++
		case "reference_declarator", "abstract_reference_declarator":
			reference = true
		case "function_declarator", "abstract_function_declarator", "parenthesized_declarator", "abstract_parenthesized_declarator":
			isFunction = true
		default:
			declarator = nil
			continue
		}
		declarator = innerDeclarator(declarator)
	}
	if isFunction {
		param.Type = &graph.Value{Code: graph.FunctionPtr, Class: typeName(typeNode, src)}
		return param
	}
	param.Type = value(typeNode, src, isConst, pointers, reference)
	return param
}
