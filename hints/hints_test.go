package hints_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/viant/wrapmerge/hints"
	"github.com/viant/wrapmerge/inspector/graph"
)

func newFile() *graph.File {
	actor := &graph.Type{Name: "vtkActor"}
	actor.AddMethod(&graph.Function{Name: "GetBounds", Result: &graph.Parameter{Type: &graph.Value{Code: graph.Double.WithPointer()}}})
	actor.AddMethod(&graph.Function{Name: "GetBounds", Parameters: []*graph.Parameter{{Type: &graph.Value{Code: graph.Double.WithPointer()}}}, Result: &graph.Parameter{Type: &graph.Value{Code: graph.Void}}})
	actor.AddMethod(&graph.Function{Name: "GetColor", Result: &graph.Parameter{Type: &graph.Value{Code: graph.Double.WithPointer().WithConst()}}})
	file := &graph.File{Path: "vtkActor.h"}
	file.AddType(actor)
	return file
}

func TestParse(t *testing.T) {
	testCases := []struct {
		description string
		text        string
		expect      []*hints.Hint
		expectErr   bool
	}{
		{
			description: "hex codes with and without prefix",
			text:        "# hints\nvtkActor GetBounds 207 6\n\nvtkActor GetColor 0x207 3\n",
			expect: []*hints.Hint{
				{Class: "vtkActor", Method: "GetBounds", Code: graph.Double.WithPointer(), Size: 6},
				{Class: "vtkActor", Method: "GetColor", Code: graph.Double.WithPointer(), Size: 3},
			},
		},
		{
			description: "legacy pointer codes",
			text:        "vtkActor GetBounds 307 6\nvtkImageData GetExtent 0x304 6\nvtkPolyData GetPoint 0x30A 3\n",
			expect: []*hints.Hint{
				{Class: "vtkActor", Method: "GetBounds", Code: graph.Double.WithPointer(), Size: 6},
				{Class: "vtkImageData", Method: "GetExtent", Code: graph.Int.WithPointer(), Size: 6},
				{Class: "vtkPolyData", Method: "GetPoint", Code: graph.IDType.WithPointer(), Size: 3},
			},
		},
		{description: "missing field", text: "vtkActor GetBounds 207\n", expectErr: true},
		{description: "invalid code", text: "vtkActor GetBounds xyz 6\n", expectErr: true},
		{description: "invalid size", text: "vtkActor GetBounds 207 six\n", expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := hints.Parse([]byte(testCase.text))
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestApplyHints(t *testing.T) {
	file := newFile()
	count := hints.ApplyHints(file, []*hints.Hint{
		{Class: "vtkActor", Method: "GetBounds", Code: graph.Double.WithPointer(), Size: 6},
		{Class: "vtkActor", Method: "GetColor", Code: graph.Double.WithPointer(), Size: 3},
		{Class: "vtkMapper", Method: "GetBounds", Code: graph.Double.WithPointer(), Size: 6},
	})
	assert.Equal(t, 2, count)
	actor := file.LookupType("vtkActor")
	bounds := actor.LookupMethods("GetBounds")
	assert.True(t, bounds[0].HaveHint)
	assert.Equal(t, 6, bounds[0].HintSize)
	assert.False(t, bounds[1].HaveHint)
	assert.Equal(t, 3, actor.LookupMethods("GetColor")[0].HintSize)
}

func TestOverlay_Apply(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/hints/hints.txt"
	require.NoError(t, fs.Upload(ctx, URL, 0644, strings.NewReader("vtkActor GetBounds 307 6\n")))

	overlay, err := hints.Open(ctx, fs, URL)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		file := newFile()
		require.NoError(t, overlay.Apply(ctx, file))
		assert.Equal(t, 6, file.LookupType("vtkActor").LookupMethods("GetBounds")[0].HintSize)
	}

	_, err = hints.Open(ctx, fs, "mem://localhost/hints/missing.txt")
	assert.Error(t, err)
}
