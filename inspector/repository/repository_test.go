package repository_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/viant/wrapmerge/inspector/repository"
)

func upload(t *testing.T, fs afs.Service, URLs ...string) {
	for _, URL := range URLs {
		require.NoError(t, fs.Upload(context.Background(), URL, 0644, bytes.NewReader([]byte("class X {};"))))
	}
}

func TestIncludePath_Locate(t *testing.T) {
	fs := afs.New()
	upload(t, fs,
		"mem://localhost/locate/common/vtkObject.h",
		"mem://localhost/locate/filters/vtkObject.h",
		"mem://localhost/locate/filters/vtkAlgorithm.h",
	)
	locator := repository.NewIncludePath(fs, "mem://localhost/locate/common", "mem://localhost/locate/filters")

	testCases := []struct {
		description string
		header      string
		expect      string
		expectErr   bool
	}{
		{description: "first directory wins", header: "vtkObject.h", expect: "mem://localhost/locate/common/vtkObject.h"},
		{description: "later directory", header: "vtkAlgorithm.h", expect: "mem://localhost/locate/filters/vtkAlgorithm.h"},
		{description: "absolute location", header: "mem://localhost/locate/filters/vtkObject.h", expect: "mem://localhost/locate/filters/vtkObject.h"},
		{description: "missing header", header: "vtkMissing.h", expectErr: true},
		{description: "missing header cached", header: "vtkMissing.h", expectErr: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := locator.Locate(context.Background(), testCase.header)
			if testCase.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, repository.ErrNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestListFilesRecursively(t *testing.T) {
	fs := afs.New()
	upload(t, fs,
		"mem://localhost/scan/vtkObject.h",
		"mem://localhost/scan/vtkObject.cxx",
		"mem://localhost/scan/sub/vtkAlgorithm.hxx",
		"mem://localhost/scan/sub/vtkAlgorithm.txx",
	)
	ctx := context.Background()
	suffixes := []string{".h", ".hxx"}

	files, err := repository.ListFilesRecursively(ctx, fs, "mem://localhost/scan", suffixes, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"mem://localhost/scan/vtkObject.h", "mem://localhost/scan/sub/vtkAlgorithm.hxx"}, files)

	files, err = repository.ListFilesRecursively(ctx, fs, "mem://localhost/scan", suffixes, []string{"Algorithm.hxx"})
	require.NoError(t, err)
	assert.Equal(t, []string{"mem://localhost/scan/vtkObject.h"}, files)

	has, err := repository.HasFileWithSuffixes(ctx, fs, "mem://localhost/scan/sub", []string{".hxx"}, nil)
	require.NoError(t, err)
	assert.True(t, has)
	has, err = repository.HasFileWithSuffixes(ctx, fs, "mem://localhost/scan/sub", []string{".h"}, nil)
	require.NoError(t, err)
	assert.False(t, has)
}
