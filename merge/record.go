package merge

import (
	"strconv"
	"strings"

	"github.com/viant/wrapmerge/inspector/graph"
)

// Record holds the merge state of a single root class: the contributor registry
// and the flattened methods, each paired with its override chain.
type Record struct {
	Classes Registry[string]

	entries Array[*entry]
	buckets map[uint64][]int
	names   map[string][]int
}

// entry pairs a flattened method with the contributor indexes declaring it
type entry struct {
	method *graph.Function
	chain  Registry[int]
}

// NewRecord creates record seeded with the root class: its name at index 0 and
// each of its own methods with chain [0]. Root methods are referenced, not copied.
func NewRecord(root *graph.Type) *Record {
	record := &Record{
		buckets: map[uint64][]int{},
		names:   map[string][]int{},
	}
	depth := record.Classes.PushUnique(root.Name)
	for _, method := range root.Methods {
		record.appendMethod(method, depth)
	}
	return record
}

func (r *Record) appendMethod(fn *graph.Function, depth int) int {
	anEntry := &entry{method: fn}
	anEntry.chain.Append(depth)
	idx := r.entries.Append(anEntry)
	key := SignatureOf(fn).Key()
	r.buckets[key] = append(r.buckets[key], idx)
	r.names[fn.Name] = append(r.names[fn.Name], idx)
	return idx
}

func (r *Record) pushOverride(i int, depth int) {
	r.entries.At(i).chain.PushUnique(depth)
}

// find returns indexes of all flattened methods matching signature.
// Declarations differing only in constness share a signature.
func (r *Record) find(signature Signature) []int {
	var result []int
	for _, idx := range r.buckets[signature.Key()] {
		if Matches(SignatureOf(r.entries.At(idx).method), signature) {
			result = append(result, idx)
		}
	}
	return result
}

// hasName returns true if any of the first limit flattened methods carries the name
func (r *Record) hasName(name string, limit int) bool {
	for _, idx := range r.names[name] {
		if idx < limit {
			return true
		}
	}
	return false
}

// Len returns number of flattened methods
func (r *Record) Len() int {
	return r.entries.Len()
}

// ClassNames returns contributing classes in registration order, root first
func (r *Record) ClassNames() []string {
	return r.Classes.Items()
}

// Methods returns flattened methods in order
func (r *Record) Methods() []*graph.Function {
	var result = make([]*graph.Function, r.entries.Len())
	for i, anEntry := range r.entries.Items() {
		result[i] = anEntry.method
	}
	return result
}

// Method returns flattened method at index
func (r *Record) Method(i int) *graph.Function {
	return r.entries.At(i).method
}

// Overrides returns override chain of method i as contributor indexes
func (r *Record) Overrides(i int) []int {
	return r.entries.At(i).chain.Items()
}

// OverrideNames returns override chain of method i as class names
func (r *Record) OverrideNames(i int) []string {
	chain := r.Overrides(i)
	var result = make([]string, len(chain))
	for j, depth := range chain {
		result[j] = r.Classes.At(depth)
	}
	return result
}

// Context returns name of the class that introduced method i
func (r *Record) Context(i int) string {
	return r.Classes.At(r.Overrides(i)[0])
}

// Fingerprint returns a digest of contributors and flattened signatures
func (r *Record) Fingerprint() uint64 {
	builder := strings.Builder{}
	for _, name := range r.ClassNames() {
		builder.WriteString(name)
		builder.WriteByte(';')
	}
	for i, method := range r.Methods() {
		builder.WriteString(method.Name)
		for _, code := range method.ArgTypes() {
			builder.WriteByte(',')
			builder.WriteString(code.Hex())
		}
		for _, depth := range r.Overrides(i) {
			builder.WriteByte('@')
			builder.WriteString(strconv.Itoa(depth))
		}
		builder.WriteByte(';')
	}
	digest, _ := graph.Hash([]byte(builder.String()))
	return digest
}

// Class exports record as a flattened class
func (r *Record) Class(root *graph.Type) *graph.Class {
	class := &graph.Class{
		Name:            root.Name,
		Superclasses:    root.Extends,
		ResolutionOrder: append([]string{}, r.ClassNames()...),
		Methods:         make([]*graph.Member, 0, r.Len()),
	}
	for i, method := range r.Methods() {
		// the first declaration on the walk is the most derived one
		if method.IsPureVirtual {
			class.Abstract = true
		}
		class.Methods = append(class.Methods, graph.NewMember(method, r.OverrideNames(i)))
	}
	return class
}
