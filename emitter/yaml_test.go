package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/viant/wrapmerge/emitter"
	"github.com/viant/wrapmerge/inspector/graph"
)

func TestYAML_Emit(t *testing.T) {
	document := &graph.Document{
		Source: "vtkAlgorithm.h",
		Classes: []*graph.Class{
			{
				Name:            "vtkAlgorithm",
				Superclasses:    []string{"vtkObject"},
				ResolutionOrder: []string{"vtkAlgorithm", "vtkObject", "vtkObjectBase"},
				Methods: []*graph.Member{
					{
						Name:      "Modified",
						Virtual:   true,
						Context:   "vtkAlgorithm",
						Overrides: []string{"vtkAlgorithm", "vtkObject"},
						Result:    &graph.Parameter{Type: &graph.Value{Code: graph.Void}},
					},
				},
			},
		},
	}

	output, err := (&emitter.YAML{}).Emit(document)
	require.NoError(t, err)
	text := string(output)
	assert.Contains(t, text, "source: vtkAlgorithm.h\n")
	assert.Contains(t, text, "  - name: vtkAlgorithm\n")
	assert.Contains(t, text, "context: vtkAlgorithm\n")

	decoded := &graph.Document{}
	require.NoError(t, yaml.Unmarshal(output, decoded))
	assert.Equal(t, document, decoded)

	_, err = (&emitter.YAML{}).Emit(nil)
	assert.Error(t, err)
}
