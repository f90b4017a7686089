package merge

import (
	"context"
	"log/slog"

	"github.com/viant/wrapmerge/inspector/graph"
)

// Index maps a class name to the header declaring it
type Index interface {
	Lookup(name string) (header string, ok bool)
}

// Locator finds a header on the include path
type Locator interface {
	Locate(ctx context.Context, header string) (string, error)
}

// Loader parses a header into declarations
type Loader interface {
	InspectFile(ctx context.Context, URL string) (*graph.File, error)
}

// Overlay decorates freshly loaded declarations
type Overlay interface {
	Apply(ctx context.Context, file *graph.File) error
}

// Action selects how an unresolvable ancestor is handled
type Action string

const (
	Truncate Action = "truncate"
	Fail     Action = "fail"
)

// Policy controls unresolvable ancestor handling
type Policy struct {
	MissingEntry Action `yaml:"missingEntry"` // No index, or class not in index, or not declared in its header
	LoadFailure  Action `yaml:"loadFailure"`  // Header not found, unreadable or unparsable
}

// DefaultPolicy skips unknown ancestors and fails on broken headers
func DefaultPolicy() Policy {
	return Policy{MissingEntry: Truncate, LoadFailure: Fail}
}

// DefaultMaxDepth bounds the ancestor walk
const DefaultMaxDepth = 64

type Option func(*Resolver)

// WithIndex sets the hierarchy index used to find ancestor headers
func WithIndex(index Index) Option {
	return func(r *Resolver) {
		r.index = index
	}
}

func WithLocator(locator Locator) Option {
	return func(r *Resolver) {
		r.locator = locator
	}
}

func WithLoader(loader Loader) Option {
	return func(r *Resolver) {
		r.loader = loader
	}
}

// WithOverlay sets overlay applied to every header loaded during a walk
func WithOverlay(overlay Overlay) Option {
	return func(r *Resolver) {
		r.overlay = overlay
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

func WithPolicy(policy Policy) Option {
	return func(r *Resolver) {
		if policy.MissingEntry != "" {
			r.policy.MissingEntry = policy.MissingEntry
		}
		if policy.LoadFailure != "" {
			r.policy.LoadFailure = policy.LoadFailure
		}
	}
}

// WithNameHiding enables C++ name hiding for inherited overloads
func WithNameHiding(enabled bool) Option {
	return func(r *Resolver) {
		r.merger.NameHiding = enabled
	}
}
