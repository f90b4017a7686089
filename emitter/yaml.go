package emitter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/viant/wrapmerge/inspector/graph"
)

// YAML renders flattened classes as a YAML document
type YAML struct {
	Indent int
}

// Emit encodes document
func (e *YAML) Emit(document *graph.Document) ([]byte, error) {
	if document == nil {
		return nil, fmt.Errorf("document was nil")
	}
	buffer := &bytes.Buffer{}
	encoder := yaml.NewEncoder(buffer)
	indent := e.Indent
	if indent <= 0 {
		indent = 2
	}
	encoder.SetIndent(indent)
	if err := encoder.Encode(document); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", document.Source, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

var _ graph.Emitter = (*YAML)(nil)
