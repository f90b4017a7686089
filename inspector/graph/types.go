package graph

import (
	"strings"
)

// Kind represents aggregate kind
type Kind string

const (
	KindClass  Kind = "class"
	KindStruct Kind = "struct"
)

// Access represents member visibility
type Access string

const (
	AccessPublic    Access = "public"
	AccessProtected Access = "protected"
	AccessPrivate   Access = "private"
)

// Location represents a source range
type Location struct {
	Raw   string `yaml:"-"`
	Start int    `yaml:"start,omitempty"`
	End   int    `yaml:"end,omitempty"`
	Line  int    `yaml:"line,omitempty"`
}

// Type represents a parsed C++ class or struct
type Type struct {
	Name       string      `yaml:"name"`
	Kind       Kind        `yaml:"kind"`
	Namespace  string      `yaml:"namespace,omitempty"`
	Comment    string      `yaml:"comment,omitempty"`
	Extends    []string    `yaml:"extends,omitempty"` // Declared base classes in declaration order
	Methods    []*Function `yaml:"methods,omitempty"`
	IsAbstract bool        `yaml:"abstract,omitempty"`
	Location   *Location   `yaml:"location,omitempty"`

	methodMap map[string][]int
}

// AddMethod adds a method to the type
func (t *Type) AddMethod(method *Function) {
	if t.methodMap == nil {
		t.indexMethods()
	}
	if method.Class == "" {
		method.Class = t.Name
	}
	if method.IsPureVirtual {
		t.IsAbstract = true
	}
	t.Methods = append(t.Methods, method)
	t.methodMap[method.Name] = append(t.methodMap[method.Name], len(t.Methods)-1)
}

// LookupMethods returns all overloads with the supplied name
func (t *Type) LookupMethods(name string) []*Function {
	if t.methodMap == nil {
		t.indexMethods()
	}
	indexes := t.methodMap[name]
	var result = make([]*Function, 0, len(indexes))
	for _, idx := range indexes {
		if idx < len(t.Methods) {
			result = append(result, t.Methods[idx])
		}
	}
	return result
}

func (t *Type) indexMethods() {
	t.methodMap = make(map[string][]int, len(t.Methods))
	for i, method := range t.Methods {
		t.methodMap[method.Name] = append(t.methodMap[method.Name], i)
	}
}

// QualifiedName returns namespace qualified name
func (t *Type) QualifiedName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return t.Namespace + "::" + t.Name
}

// Value represents a typed value: an argument or a return value
type Value struct {
	Code  TypeCode `yaml:"code"`
	Class string   `yaml:"class,omitempty"` // Spelled type name
}

// Clone creates a copy of the value
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	return &Value{Code: v.Code, Class: v.Class}
}

// Parameter represents a function argument or result
type Parameter struct {
	Name string `yaml:"name,omitempty"`
	Type *Value `yaml:"type"`
}

// Clone creates a copy of the parameter
func (p *Parameter) Clone() *Parameter {
	if p == nil {
		return nil
	}
	return &Parameter{Name: p.Name, Type: p.Type.Clone()}
}

// Function represents a member function declaration
type Function struct {
	Name          string       `yaml:"name"`
	Class         string       `yaml:"class,omitempty"` // Declaring class
	Comment       string       `yaml:"comment,omitempty"`
	Signature     string       `yaml:"signature,omitempty"`
	Access        Access       `yaml:"access,omitempty"`
	IsVirtual     bool         `yaml:"virtual,omitempty"`
	IsPureVirtual bool         `yaml:"pure,omitempty"`
	IsStatic      bool         `yaml:"static,omitempty"`
	IsConst       bool         `yaml:"const,omitempty"`
	IsOperator    bool         `yaml:"operator,omitempty"`
	Parameters    []*Parameter `yaml:"parameters,omitempty"`
	Result        *Parameter   `yaml:"result,omitempty"` // nil for constructors and destructors
	HaveHint      bool         `yaml:"haveHint,omitempty"`
	HintSize      int          `yaml:"hintSize,omitempty"`
	Location      *Location    `yaml:"location,omitempty"`
}

// ArgTypes returns ordered argument type codes
func (f *Function) ArgTypes() []TypeCode {
	var result = make([]TypeCode, len(f.Parameters))
	for i, param := range f.Parameters {
		if param.Type != nil {
			result[i] = param.Type.Code
		}
	}
	return result
}

// IsConstructorOf returns true if function is a constructor of the supplied class
func (f *Function) IsConstructorOf(class string) bool {
	return f.Name == class
}

// IsDestructorOf returns true if function is a destructor of the supplied class
func (f *Function) IsDestructorOf(class string) bool {
	return strings.HasPrefix(f.Name, "~") && f.Name[1:] == class
}

// Clone creates a deep copy of the function, sharing no storage with the source
func (f *Function) Clone() *Function {
	clone := &Function{
		Name:          f.Name,
		Class:         f.Class,
		Comment:       f.Comment,
		Signature:     f.Signature,
		Access:        f.Access,
		IsVirtual:     f.IsVirtual,
		IsPureVirtual: f.IsPureVirtual,
		IsStatic:      f.IsStatic,
		IsConst:       f.IsConst,
		IsOperator:    f.IsOperator,
		Result:        f.Result.Clone(),
		HaveHint:      f.HaveHint,
		HintSize:      f.HintSize,
	}
	if len(f.Parameters) > 0 {
		clone.Parameters = make([]*Parameter, len(f.Parameters))
		for i, param := range f.Parameters {
			clone.Parameters[i] = param.Clone()
		}
	}
	if f.Location != nil {
		location := *f.Location
		clone.Location = &location
	}
	return clone
}
