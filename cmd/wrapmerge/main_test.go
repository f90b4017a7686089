package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/wrapmerge/inspector/graph"
	"github.com/viant/wrapmerge/merge"
)

func upload(t *testing.T, files map[string]string) {
	t.Helper()
	fs := afs.New()
	for URL, content := range files {
		require.NoError(t, fs.Upload(context.Background(), URL, 0644, strings.NewReader(content)))
	}
}

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func member(class *graph.Class, name string) *graph.Member {
	for _, method := range class.Methods {
		if method.Name == name {
			return method
		}
	}
	return nil
}

func TestMergeCommand(t *testing.T) {
	upload(t, map[string]string{
		"mem://localhost/cli/include/vtkObjectBase.h": "class vtkObjectBase { public: virtual void Delete(); virtual const char* GetClassName() const; };",
		"mem://localhost/cli/include/vtkObject.h":     "class vtkObject : public vtkObjectBase { public: virtual void Modified(); virtual double* GetBounds(); };",
		"mem://localhost/cli/vtkAlgorithm.h":          "class vtkAlgorithm : public vtkObject { public: void Modified() override; void Update(); };",
		"mem://localhost/cli/hierarchy.txt":           "vtkObjectBase ; vtkObjectBase.h\nvtkObject : vtkObjectBase ; vtkObject.h\nvtkAlgorithm : vtkObject ; vtkAlgorithm.h\n",
		"mem://localhost/cli/broken.txt":              "vtkObject : vtkObjectBase ; vtkMissing.h\n",
		"mem://localhost/cli/hints":                   "vtkObject GetBounds 307 6\n",
	})

	output, err := execute("merge",
		"-I", "mem://localhost/cli/include",
		"--types", "mem://localhost/cli/hierarchy.txt",
		"--hints", "mem://localhost/cli/hints",
		"mem://localhost/cli/vtkAlgorithm.h",
	)
	require.NoError(t, err)

	document := &graph.Document{}
	require.NoError(t, yaml.Unmarshal([]byte(output), document))
	require.Len(t, document.Classes, 1)
	class := document.Classes[0]
	assert.Equal(t, "vtkAlgorithm", class.Name)
	assert.Equal(t, []string{"vtkAlgorithm", "vtkObject", "vtkObjectBase"}, class.ResolutionOrder)

	modified := member(class, "Modified")
	require.NotNil(t, modified)
	assert.Equal(t, "vtkAlgorithm", modified.Context)
	assert.Equal(t, []string{"vtkAlgorithm", "vtkObject"}, modified.Overrides)
	assert.True(t, modified.Virtual)

	bounds := member(class, "GetBounds")
	require.NotNil(t, bounds)
	assert.Equal(t, "vtkObject", bounds.Context)
	assert.Equal(t, 6, bounds.HintSize)

	deleteMethod := member(class, "Delete")
	require.NotNil(t, deleteMethod)
	assert.Equal(t, "vtkObjectBase", deleteMethod.Context)

	_, err = execute("merge",
		"-I", "mem://localhost/cli/include",
		"--types", "mem://localhost/cli/broken.txt",
		"mem://localhost/cli/vtkAlgorithm.h",
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, merge.ErrLoad))
	assert.Contains(t, err.Error(), "vtkMissing.h")

	output, err = execute("merge",
		"-I", "mem://localhost/cli/include",
		"--types", "mem://localhost/cli/broken.txt",
		"--load-failure", "truncate",
		"mem://localhost/cli/vtkAlgorithm.h",
	)
	require.NoError(t, err)
	document = &graph.Document{}
	require.NoError(t, yaml.Unmarshal([]byte(output), document))
	assert.Equal(t, []string{"vtkObject"}, document.Classes[0].Truncated)

	_, err = execute("merge", "--log-level", "verbose", "mem://localhost/cli/vtkAlgorithm.h")
	assert.Error(t, err)
}

func TestIndexCommand(t *testing.T) {
	upload(t, map[string]string{
		"mem://localhost/cli-index/core/vtkObject.h":     "class vtkObject : public vtkObjectBase { };",
		"mem://localhost/cli-index/core/vtkObjectBase.h": "class vtkObjectBase { };",
	})

	output, err := execute("index", "--module", "vtkCommonCore", "mem://localhost/cli-index/core")
	require.NoError(t, err)
	assert.Equal(t, "vtkObject : vtkObjectBase ; vtkObject.h ; vtkCommonCore\nvtkObjectBase ; vtkObjectBase.h ; vtkCommonCore\n", output)

	_, err = execute("index", "--output", "mem://localhost/cli-index/out/hierarchy.yaml", "mem://localhost/cli-index/core")
	require.NoError(t, err)
	data, err := afs.New().DownloadWithURL(context.Background(), "mem://localhost/cli-index/out/hierarchy.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "version: v1.0.0")
}
