package merge

const initialCapacity = 4

// Array is an append-only sequence with an explicit growth policy: capacity starts at 0,
// becomes 4 on the first append and doubles whenever the size reaches a power of two
// (at least 4) and another element is needed.
type Array[T any] struct {
	items []T
}

// Append adds item and returns its index
func (a *Array[T]) Append(item T) int {
	size := len(a.items)
	if size == cap(a.items) {
		a.grow(size)
	}
	a.items = append(a.items, item)
	return size
}

func (a *Array[T]) grow(size int) {
	capacity := initialCapacity
	if size >= initialCapacity {
		capacity = size * 2
	}
	items := make([]T, size, capacity)
	copy(items, a.items)
	a.items = items
}

// At returns item at index
func (a *Array[T]) At(i int) T {
	return a.items[i]
}

// Len returns number of items
func (a *Array[T]) Len() int {
	return len(a.items)
}

// Cap returns current capacity
func (a *Array[T]) Cap() int {
	return cap(a.items)
}

// Items returns items in insertion order; the slice must not be modified
func (a *Array[T]) Items() []T {
	return a.items
}

// Registry is an Array with set semantics: an item is stored at most once
type Registry[T comparable] struct {
	Array[T]
}

// Index returns position of item
func (r *Registry[T]) Index(item T) (int, bool) {
	for i, candidate := range r.items {
		if candidate == item {
			return i, true
		}
	}
	return -1, false
}

// PushUnique returns index of item, appending it when absent
func (r *Registry[T]) PushUnique(item T) int {
	if idx, ok := r.Index(item); ok {
		return idx
	}
	return r.Append(item)
}
