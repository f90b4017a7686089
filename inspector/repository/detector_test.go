package repository_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/viant/wrapmerge/inspector/repository"
)

func TestDetector_DetectModule(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	markers := map[string]string{
		"mem://localhost/detect/Common/Core/vtk.module":   "NAME\n  VTK::CommonCore\nLIBRARY_NAME\n  vtkCommonCore\nDEPENDS\n  VTK::kwiml\n",
		"mem://localhost/detect/Filters/Core/vtk.module":  "# filters\nNAME\n  VTK::FiltersCore\n",
		"mem://localhost/detect/Filters/Extra/vtk.module": "DESCRIPTION\n  extras\n",
	}
	for URL, content := range markers {
		require.NoError(t, fs.Upload(ctx, URL, 0644, strings.NewReader(content)))
	}
	upload(t, fs,
		"mem://localhost/detect/Common/Core/Sub/vtkObject.h",
		"mem://localhost/detect/Filters/Core/vtkContourFilter.h",
		"mem://localhost/detect/Filters/Extra/vtkExtra.h",
		"mem://localhost/detect/Utilities/vtkUtil.h",
	)

	testCases := []struct {
		description string
		header      string
		expect      *repository.Module
	}{
		{description: "library name from parent module", header: "mem://localhost/detect/Common/Core/Sub/vtkObject.h", expect: &repository.Module{Name: "vtkCommonCore", Root: "mem://localhost/detect/Common/Core"}},
		{description: "name with namespace", header: "mem://localhost/detect/Filters/Core/vtkContourFilter.h", expect: &repository.Module{Name: "vtkFiltersCore", Root: "mem://localhost/detect/Filters/Core"}},
		{description: "directory name fallback", header: "mem://localhost/detect/Filters/Extra/vtkExtra.h", expect: &repository.Module{Name: "Extra", Root: "mem://localhost/detect/Filters/Extra"}},
		{description: "no module", header: "mem://localhost/detect/Utilities/vtkUtil.h"},
	}
	detector := repository.NewDetector(fs)
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			actual, err := detector.DetectModule(ctx, testCase.header)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestDetector_IncludeDirs(t *testing.T) {
	fs := afs.New()
	ctx := context.Background()
	upload(t, fs,
		"mem://localhost/roots/Common/Core/vtkObject.h",
		"mem://localhost/roots/Common/Core/vtkObject.cxx",
		"mem://localhost/roots/Common/DataModel/vtkPolyData.h",
		"mem://localhost/roots/Common/Testing/test.cxx",
	)
	dirs, err := repository.NewDetector(fs).IncludeDirs(ctx, "mem://localhost/roots", []string{".h"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"mem://localhost/roots/Common/Core", "mem://localhost/roots/Common/DataModel"}, dirs)
}
