package merge

import (
	"github.com/viant/wrapmerge/inspector/graph"
)

// Merger folds ancestor methods into a record
type Merger struct {
	// NameHiding drops an inherited method whose name is already present with a different signature
	NameHiding bool
}

// Merge folds methods of ancestor into record and returns ancestor contributor index.
// Matching methods get their override chain extended, new ones are deep copied.
func (m *Merger) Merge(record *Record, ancestor *graph.Type) int {
	depth := record.Classes.PushUnique(ancestor.Name)
	inherited := record.Len()
	for _, method := range ancestor.Methods {
		if method.Name == "" {
			continue
		}
		if method.IsConstructorOf(ancestor.Name) || method.IsDestructorOf(ancestor.Name) {
			continue
		}
		if matched := record.find(SignatureOf(method)); len(matched) > 0 {
			for _, idx := range matched {
				existing := record.Method(idx)
				if method.IsVirtual {
					existing.IsVirtual = true
				}
				if existing.Comment == "" && method.Comment != "" {
					existing.Comment = method.Comment
				}
				record.pushOverride(idx, depth)
			}
			observeMethod(methodOverride)
			continue
		}
		if m.NameHiding && record.hasName(method.Name, inherited) {
			observeMethod(methodHidden)
			continue
		}
		record.appendMethod(method.Clone(), depth)
		observeMethod(methodInherited)
	}
	return depth
}
