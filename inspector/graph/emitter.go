package graph

// Emitter represents generator consuming flattened classes
type Emitter interface {
	Emit(document *Document) ([]byte, error)
}
