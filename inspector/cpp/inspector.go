package cpp

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/viant/afs"

	"github.com/viant/wrapmerge/inspector/graph"
)

// Cache stores parsed declarations keyed by source digest
type Cache interface {
	Get(key uint64) (*graph.File, bool, error)
	Put(key uint64, file *graph.File) error
}

// Inspector extracts class declarations from C++ headers
type Inspector struct {
	config *graph.Config
	fs     afs.Service
	cache  Cache
	logger *slog.Logger
}

type Option func(*Inspector)

// WithCache sets parsed declaration cache
func WithCache(cache Cache) Option {
	return func(i *Inspector) {
		i.cache = cache
	}
}

// WithFS sets file system service used by InspectFile
func WithFS(fs afs.Service) Option {
	return func(i *Inspector) {
		i.fs = fs
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInspector creates a new C++ Inspector with the provided configuration
func NewInspector(config *graph.Config, options ...Option) *Inspector {
	if config == nil {
		config = graph.DefaultConfig()
	}
	ret := &Inspector{
		config: config,
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// InspectFile reads and parses a header file
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*graph.File, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", graph.ErrUnreadable, URL, err)
	}
	return i.InspectSource(ctx, src, URL)
}

// InspectSource parses C++ source code and extracts class declarations
func (i *Inspector) InspectSource(ctx context.Context, src []byte, location string) (*graph.File, error) {
	var key uint64
	if i.cache != nil {
		var err error
		if key, err = graph.Hash(i.configKey(), []byte(location), src); err == nil {
			file, ok, err := i.cache.Get(key)
			if err != nil {
				i.logger.Warn("declaration cache read failed", slog.String("path", location), slog.Any("error", err))
			} else if ok {
				return file, nil
			}
		}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(cpp.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %v", graph.ErrSyntax, location, err)
	}

	root := tree.RootNode()
	if i.config.StrictSyntax && root.HasError() {
		line := 0
		if errNode := findError(root); errNode != nil {
			line = int(errNode.StartPoint().Row) + 1
		}
		return nil, fmt.Errorf("%w: %s:%d", graph.ErrSyntax, location, line)
	}

	file := &graph.File{Name: path.Base(location), Path: location}
	i.collectTypes(root, src, "", file)

	if i.cache != nil && key != 0 {
		if err = i.cache.Put(key, file); err != nil {
			i.logger.Warn("declaration cache write failed", slog.String("path", location), slog.Any("error", err))
		}
	}
	return file, nil
}

// configKey encodes extraction flags that change the parsed result
func (i *Inspector) configKey() []byte {
	var flags byte
	if i.config.StrictSyntax {
		flags |= 1
	}
	if i.config.IncludePrivate {
		flags |= 2
	}
	return []byte{flags}
}

// findError returns first ERROR or MISSING node in document order
func findError(node *sitter.Node) *sitter.Node {
	if node.Type() == "ERROR" || node.IsMissing() {
		return node
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if found := findError(child); found != nil {
			return found
		}
	}
	return nil
}
