package merge

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/wrapmerge/inspector/graph"
)

func TestResolver_Metrics(t *testing.T) {
	loader := &fakeLoader{files: map[string]*graph.File{
		"/inc/vtkObject.h": newFile("/inc/vtkObject.h", newClass("vtkObject", nil, newVirtual("Modified", ""), newMethod("Delete"))),
	}}
	resolver := New(
		WithIndex(mapIndex{"vtkObject": "vtkObject.h"}),
		WithLocator(mapLocator{"vtkObject.h": "/inc/vtkObject.h"}),
		WithLoader(loader),
		WithLogger(quietLogger()),
	)

	loaded := testutil.ToFloat64(filesLoadedTotal)
	overrides := testutil.ToFloat64(methodsTotal.WithLabelValues(methodOverride))
	inherited := testutil.ToFloat64(methodsTotal.WithLabelValues(methodInherited))
	noEntry := testutil.ToFloat64(truncationsTotal.WithLabelValues(reasonNoEntry))

	root := newClass("vtkAlgorithm", []string{"vtkObject", "vtkUnknown"}, newMethod("Modified"))
	_, err := resolver.Resolve(context.Background(), newFile("/src/vtkAlgorithm.h", root), root)
	require.NoError(t, err)

	assert.Equal(t, loaded+1, testutil.ToFloat64(filesLoadedTotal))
	assert.Equal(t, overrides+1, testutil.ToFloat64(methodsTotal.WithLabelValues(methodOverride)))
	assert.Equal(t, inherited+1, testutil.ToFloat64(methodsTotal.WithLabelValues(methodInherited)))
	assert.Equal(t, noEntry+1, testutil.ToFloat64(truncationsTotal.WithLabelValues(reasonNoEntry)))
}
