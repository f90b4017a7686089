package inspector

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/wrapmerge/inspector/cpp"
	"github.com/viant/wrapmerge/inspector/graph"
)

// Inspector provides an interface for inspecting header files
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts class declarations
	InspectSource(ctx context.Context, src []byte, location string) (*graph.File, error)

	// InspectFile reads a header and extracts class declarations
	InspectFile(ctx context.Context, URL string) (*graph.File, error)
}

// HeaderSuffixes lists recognized header extensions
var HeaderSuffixes = []string{".h", ".hh", ".hpp", ".hxx", ".h++"}

// Factory creates appropriate inspectors based on file extension
type Factory struct {
	config  *graph.Config
	options []cpp.Option
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *graph.Config, options ...cpp.Option) *Factory {
	if config == nil {
		config = graph.DefaultConfig()
	}
	return &Factory{
		config:  config,
		options: options,
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(path.Ext(filename))
	if IsHeader(filename) {
		return cpp.NewInspector(f.config, f.options...), nil
	}
	return nil, fmt.Errorf("%w: unsupported file type: %s", graph.ErrSyntax, ext)
}

// IsHeader returns true for C++ header file names
func IsHeader(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	for _, suffix := range HeaderSuffixes {
		if ext == suffix {
			return true
		}
	}
	return false
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(ctx context.Context, URL string) (*graph.File, error) {
	inspector, err := f.GetInspector(URL)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(ctx, URL)
}
