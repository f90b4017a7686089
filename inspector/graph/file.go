package graph

import "strings"

// File represents a parsed header with its class declarations
type File struct {
	Name  string  `yaml:"name"`
	Path  string  `yaml:"path"`
	Types []*Type `yaml:"types,omitempty"`

	typeMap map[string]int
}

// AddType adds a type to the file
func (f *File) AddType(aType *Type) {
	if f.typeMap == nil {
		f.IndexTypes()
	}
	f.Types = append(f.Types, aType)
	if _, ok := f.typeMap[aType.Name]; !ok {
		f.typeMap[aType.Name] = len(f.Types) - 1
	}
}

// LookupType retrieves a type by name; the first declaration wins.
// A qualified name matches a type whose namespace qualified name equals it, or ends
// with it when written relative to an enclosing namespace. Nested class scopes are
// not tracked, so "Outer::Inner" does not resolve.
func (f *File) LookupType(name string) *Type {
	if f == nil || len(f.Types) == 0 {
		return nil
	}
	if f.typeMap == nil {
		f.IndexTypes()
	}
	if idx, ok := f.typeMap[name]; ok && idx < len(f.Types) {
		return f.Types[idx]
	}
	bare := unqualified(name)
	if bare == name {
		return nil
	}
	for _, aType := range f.Types {
		if aType.Name != bare {
			continue
		}
		qualified := aType.QualifiedName()
		if qualified == name || strings.HasSuffix(qualified, "::"+name) {
			return aType
		}
	}
	return nil
}

// IndexTypes builds type lookup index
func (f *File) IndexTypes() {
	f.typeMap = make(map[string]int, len(f.Types))
	for i, aType := range f.Types {
		if _, ok := f.typeMap[aType.Name]; !ok {
			f.typeMap[aType.Name] = i
		}
	}
}

func unqualified(name string) string {
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == ':' && name[i-1] == ':' {
			return name[i+1:]
		}
	}
	return name
}
