package cache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/wrapmerge/cache"
	"github.com/viant/wrapmerge/inspector/cpp"
	"github.com/viant/wrapmerge/inspector/graph"
)

func newStore(t *testing.T) *cache.Store {
	t.Helper()
	store, err := cache.Open("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_GetPut(t *testing.T) {
	store := newStore(t)

	_, ok, err := store.Get(42)
	require.NoError(t, err)
	assert.False(t, ok)

	aType := &graph.Type{Name: "vtkObject", Kind: graph.KindClass, Extends: []string{"vtkObjectBase"}}
	aType.AddMethod(&graph.Function{
		Name:       "SetDebug",
		IsVirtual:  true,
		Access:     graph.AccessPublic,
		Parameters: []*graph.Parameter{{Name: "debug", Type: &graph.Value{Code: graph.Bool}}},
		Result:     &graph.Parameter{Type: &graph.Value{Code: graph.Void}},
	})
	file := &graph.File{Name: "vtkObject.h", Path: "/src/vtkObject.h"}
	file.AddType(aType)
	require.NoError(t, store.Put(42, file))

	actual, ok, err := store.Get(42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/src/vtkObject.h", actual.Path)
	restored := actual.LookupType("vtkObject")
	require.NotNil(t, restored)
	assert.Equal(t, []string{"vtkObjectBase"}, restored.Extends)
	methods := restored.LookupMethods("SetDebug")
	require.Len(t, methods, 1)
	assert.True(t, methods[0].IsVirtual)
	assert.Equal(t, []graph.TypeCode{graph.Bool}, methods[0].ArgTypes())
}

func TestStore_InspectorCache(t *testing.T) {
	store := newStore(t)
	inspector := cpp.NewInspector(nil, cpp.WithCache(store))
	src := []byte("class vtkPoints : public vtkObject { public: int GetNumberOfPoints(); };")

	first, err := inspector.InspectSource(context.Background(), src, "vtkPoints.h")
	require.NoError(t, err)
	second, err := inspector.InspectSource(context.Background(), src, "vtkPoints.h")
	require.NoError(t, err)
	assert.Equal(t, first.LookupType("vtkPoints").Extends, second.LookupType("vtkPoints").Extends)
	assert.Len(t, second.LookupType("vtkPoints").LookupMethods("GetNumberOfPoints"), 1)
}

func TestStore_InspectorCache_Config(t *testing.T) {
	store := newStore(t)
	src := []byte("class A {\n public:\n  void Foo(int;\n  }}}\n")

	lenient := cpp.NewInspector(&graph.Config{IncludePrivate: true}, cpp.WithCache(store))
	_, err := lenient.InspectSource(context.Background(), src, "A.h")
	require.NoError(t, err)

	strict := cpp.NewInspector(&graph.Config{StrictSyntax: true, IncludePrivate: true}, cpp.WithCache(store))
	_, err = strict.InspectSource(context.Background(), src, "A.h")
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrSyntax))

	valid := []byte("class B {\n  void Hidden();\n public:\n  void Shown();\n};\n")
	withPrivate := cpp.NewInspector(&graph.Config{IncludePrivate: true}, cpp.WithCache(store))
	file, err := withPrivate.InspectSource(context.Background(), valid, "B.h")
	require.NoError(t, err)
	assert.Len(t, file.LookupType("B").Methods, 2)

	publicOnly := cpp.NewInspector(&graph.Config{}, cpp.WithCache(store))
	file, err = publicOnly.InspectSource(context.Background(), valid, "B.h")
	require.NoError(t, err)
	assert.Len(t, file.LookupType("B").Methods, 1)
}
