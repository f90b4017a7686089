package cpp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/wrapmerge/inspector/graph"
)

// collectTypes walks the tree and adds every class or struct with a body
func (i *Inspector) collectTypes(node *sitter.Node, src []byte, namespace string, file *graph.File) {
	switch node.Type() {
	case "namespace_definition":
		if name := node.ChildByFieldName("name"); name != nil {
			namespace = joinNamespace(namespace, name.Content(src))
		}
	case "class_specifier", "struct_specifier":
		if body := node.ChildByFieldName("body"); body != nil {
			if aType := i.processClass(node, body, src, namespace); aType != nil {
				file.AddType(aType)
			}
		}
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		i.collectTypes(node.NamedChild(j), src, namespace, file)
	}
}

func joinNamespace(outer, inner string) string {
	if outer == "" {
		return inner
	}
	return outer + "::" + inner
}

func (i *Inspector) processClass(node, body *sitter.Node, src []byte, namespace string) *graph.Type {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	if nameNode.Type() == "template_type" {
		if inner := nameNode.ChildByFieldName("name"); inner != nil {
			nameNode = inner
		}
	}
	aType := &graph.Type{
		Name:      lastSegment(nameNode.Content(src)),
		Kind:      graph.KindClass,
		Namespace: namespace,
		Comment:   documentation(declarationAnchor(node), src),
		Location:  location(node, src),
	}
	access := graph.AccessPrivate
	if node.Type() == "struct_specifier" {
		aType.Kind = graph.KindStruct
		access = graph.AccessPublic
	}
	for j := 0; j < int(node.NamedChildCount()); j++ {
		if child := node.NamedChild(j); child.Type() == "base_class_clause" {
			aType.Extends = baseClasses(child, src)
		}
	}

	for j := 0; j < int(body.NamedChildCount()); j++ {
		child := body.NamedChild(j)
		switch child.Type() {
		case "access_specifier":
			access = graph.Access(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(child.Content(src)), ":")))
		case "field_declaration", "declaration", "function_definition":
			i.addMember(aType, child, child, src, access)
		case "template_declaration":
			for k := 0; k < int(child.NamedChildCount()); k++ {
				inner := child.NamedChild(k)
				switch inner.Type() {
				case "field_declaration", "declaration", "function_definition":
					i.addMember(aType, inner, child, src, access)
				}
			}
		}
	}
	return aType
}

func (i *Inspector) addMember(aType *graph.Type, node, anchor *sitter.Node, src []byte, access graph.Access) {
	if access == graph.AccessPrivate && !i.config.IncludePrivate {
		return
	}
	fn := processMember(node, src, aType.Name)
	if fn == nil {
		return
	}
	fn.Access = access
	fn.Comment = documentation(anchor, src)
	aType.AddMethod(fn)
}

// baseClasses returns declared base names in order, without access or virtual keywords
func baseClasses(node *sitter.Node, src []byte) []string {
	var result []string
	for j := 0; j < int(node.NamedChildCount()); j++ {
		child := node.NamedChild(j)
		switch child.Type() {
		case "type_identifier", "qualified_identifier", "template_type":
			result = append(result, child.Content(src))
		}
	}
	return result
}

// declarationAnchor returns the outermost declaration wrapping a class specifier
func declarationAnchor(node *sitter.Node) *sitter.Node {
	anchor := node
	for parent := anchor.Parent(); parent != nil; parent = anchor.Parent() {
		switch parent.Type() {
		case "declaration", "template_declaration", "field_declaration", "type_definition":
			anchor = parent
			continue
		}
		break
	}
	return anchor
}

// processMember extracts a member function, returning nil for data members
func processMember(node *sitter.Node, src []byte, className string) *graph.Function {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return nil
	}
	fnDeclarator, pointers, reference := unwrapFunction(declarator)
	if fnDeclarator == nil {
		return nil
	}
	nameNode := fnDeclarator.ChildByFieldName("declarator")
	if nameNode == nil {
		return nil
	}
	fn := &graph.Function{Class: className, Location: location(node, src), Signature: signature(node, src)}
	switch nameNode.Type() {
	case "field_identifier", "identifier", "type_identifier":
		fn.Name = nameNode.Content(src)
	case "destructor_name":
		fn.Name = strings.Join(strings.Fields(nameNode.Content(src)), "")
	case "operator_name":
		fn.Name = strings.Join(strings.Fields(nameNode.Content(src)), " ")
		fn.IsOperator = true
	case "qualified_identifier", "template_function":
		fn.Name = lastSegment(nameNode.Content(src))
	default:
		return nil
	}

	isConst := false
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		switch child.Type() {
		case "virtual", "virtual_function_specifier":
			fn.IsVirtual = true
		case "storage_class_specifier":
			if child.Content(src) == "static" {
				fn.IsStatic = true
			}
		case "type_qualifier":
			if child.Content(src) == "const" {
				isConst = true
			}
		}
	}
	for j := 0; j < int(fnDeclarator.ChildCount()); j++ {
		child := fnDeclarator.Child(j)
		switch child.Type() {
		case "type_qualifier":
			if child.Content(src) == "const" {
				fn.IsConst = true
			}
		case "virtual_specifier":
			fn.IsVirtual = true
		}
	}
	if isPure(node, src) {
		fn.IsPureVirtual = true
		fn.IsVirtual = true
	}
	fn.Parameters = parameters(fnDeclarator.ChildByFieldName("parameters"), src)

	if typeNode := node.ChildByFieldName("type"); typeNode != nil && !fn.IsConstructorOf(className) && !fn.IsDestructorOf(className) {
		fn.Result = &graph.Parameter{Type: value(typeNode, src, isConst, pointers, reference)}
	}
	return fn
}

// isPure detects "= 0" member declarations
func isPure(node *sitter.Node, src []byte) bool {
	if value := node.ChildByFieldName("default_value"); value != nil {
		return strings.TrimSpace(value.Content(src)) == "0"
	}
	if node.Type() == "function_definition" {
		return false
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		if node.Child(j).Type() == "pure_virtual_clause" {
			return true
		}
	}
	return false
}

// unwrapFunction descends pointer and reference declarators to the function declarator
func unwrapFunction(node *sitter.Node) (*sitter.Node, int, bool) {
	pointers := 0
	reference := false
	for node != nil {
		switch node.Type() {
		case "function_declarator":
			return node, pointers, reference
		case "pointer_declarator":
			pointers++
		case "reference_declarator":
			reference = true
		default:
			return nil, 0, false
		}
		node = innerDeclarator(node)
	}
	return nil, 0, false
}

// innerDeclarator returns the nested declarator of a pointer, reference or array declarator
func innerDeclarator(node *sitter.Node) *sitter.Node {
	if inner := node.ChildByFieldName("declarator"); inner != nil {
		return inner
	}
	count := int(node.NamedChildCount())
	if count == 0 {
		return nil
	}
	last := node.NamedChild(count - 1)
	if last.Type() == "type_qualifier" {
		return nil
	}
	return last
}

func signature(node *sitter.Node, src []byte) string {
	text := node.Content(src)
	if body := node.ChildByFieldName("body"); body != nil {
		text = string(src[node.StartByte():body.StartByte()])
	}
	text = strings.Join(strings.Fields(text), " ")
	return strings.TrimSpace(strings.TrimSuffix(text, ";"))
}

func location(node *sitter.Node, src []byte) *graph.Location {
	return &graph.Location{
		Raw:   node.Content(src),
		Start: int(node.StartByte()),
		End:   int(node.EndByte()),
		Line:  int(node.StartPoint().Row) + 1,
	}
}

func lastSegment(name string) string {
	if idx := strings.LastIndex(name, "::"); idx != -1 {
		return name[idx+2:]
	}
	return name
}
