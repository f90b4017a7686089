package merge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/viant/wrapmerge/inspector/graph"
)

func setupTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
	})
	return exporter
}

func TestResolver_Resolve_Spans(t *testing.T) {
	exporter := setupTestTracer(t)
	loader := &fakeLoader{files: map[string]*graph.File{
		"/inc/vtkObject.h": newFile("/inc/vtkObject.h", newClass("vtkObject", nil, newVirtual("Modified", ""))),
	}}
	resolver := New(
		WithIndex(mapIndex{"vtkObject": "vtkObject.h", "vtkMissing": "vtkMissing.h"}),
		WithLocator(mapLocator{"vtkObject.h": "/inc/vtkObject.h"}),
		WithLoader(loader),
		WithLogger(quietLogger()),
	)

	root := newClass("vtkAlgorithm", []string{"vtkObject"})
	_, err := resolver.Resolve(context.Background(), newFile("/src/vtkAlgorithm.h", root), root)
	require.NoError(t, err)

	spans := exporter.GetSpans()
	var names []string
	for _, span := range spans {
		names = append(names, span.Name)
	}
	assert.Equal(t, []string{"merge.Resolver.load", "merge.Resolver.Resolve"}, names)
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].Parent.TraceID())

	exporter.Reset()
	broken := newClass("vtkFilter", []string{"vtkMissing"})
	_, err = resolver.Resolve(context.Background(), newFile("/src/vtkFilter.h", broken), broken)
	require.Error(t, err)
	spans = exporter.GetSpans()
	require.Len(t, spans, 2)
	for _, span := range spans {
		assert.Equal(t, codes.Error, span.Status.Code, span.Name)
	}
}
