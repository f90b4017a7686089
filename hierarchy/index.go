package hierarchy

import (
	"sort"
)

// Entry describes a class known to the hierarchy index
type Entry struct {
	Name   string   `yaml:"name"`
	Bases  []string `yaml:"bases,omitempty"`
	Header string   `yaml:"header"`
	Module string   `yaml:"module,omitempty"`
	Flags  []string `yaml:"flags,omitempty"`
}

// Index maps class names to the headers declaring them
type Index struct {
	entries []*Entry
	byName  map[string]int
}

// New creates an empty index
func New() *Index {
	return &Index{byName: map[string]int{}}
}

// Add registers entry; a later entry for the same class replaces the earlier one
func (i *Index) Add(entry *Entry) {
	if idx, ok := i.byName[entry.Name]; ok {
		i.entries[idx] = entry
		return
	}
	i.entries = append(i.entries, entry)
	i.byName[entry.Name] = len(i.entries) - 1
}

// Lookup returns header declaring class
func (i *Index) Lookup(name string) (string, bool) {
	entry := i.Entry(name)
	if entry == nil || entry.Header == "" {
		return "", false
	}
	return entry.Header, true
}

// Entry returns entry for class name
func (i *Index) Entry(name string) *Entry {
	if i == nil {
		return nil
	}
	if idx, ok := i.byName[name]; ok {
		return i.entries[idx]
	}
	return nil
}

// Len returns number of entries
func (i *Index) Len() int {
	return len(i.entries)
}

// Entries returns entries in insertion order
func (i *Index) Entries() []*Entry {
	return i.entries
}

// Sort orders entries by class name
func (i *Index) Sort() {
	sort.SliceStable(i.entries, func(a, b int) bool {
		return i.entries[a].Name < i.entries[b].Name
	})
	for idx, entry := range i.entries {
		i.byName[entry.Name] = idx
	}
}
