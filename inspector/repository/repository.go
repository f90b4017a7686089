package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// ErrNotFound is returned when a header is not present on the include path
var ErrNotFound = errors.New("header not found on include path")

// IncludePath locates headers in an ordered list of directories
type IncludePath struct {
	fs    afs.Service
	dirs  []string
	mux   sync.Mutex
	found map[string]string
}

// NewIncludePath creates include path locator
func NewIncludePath(fs afs.Service, dirs ...string) *IncludePath {
	if fs == nil {
		fs = afs.New()
	}
	return &IncludePath{fs: fs, dirs: dirs, found: map[string]string{}}
}

// Locate returns location of header: absolute locations are checked as is,
// relative ones are searched in include directories in order, then in the working directory
func (p *IncludePath) Locate(ctx context.Context, header string) (string, error) {
	p.mux.Lock()
	location, ok := p.found[header]
	p.mux.Unlock()
	if ok {
		if location == "" {
			return "", fmt.Errorf("%w: %s", ErrNotFound, header)
		}
		return location, nil
	}

	location, err := p.search(ctx, header)
	if err != nil {
		return "", err
	}
	p.mux.Lock()
	p.found[header] = location
	p.mux.Unlock()
	if location == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, header)
	}
	return location, nil
}

func (p *IncludePath) search(ctx context.Context, header string) (string, error) {
	var candidates []string
	if isAbsolute(header) {
		candidates = []string{header}
	} else {
		for _, dir := range p.dirs {
			candidates = append(candidates, url.Join(dir, header))
		}
		candidates = append(candidates, header)
	}
	for _, candidate := range candidates {
		exists, err := p.fs.Exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		if exists {
			return candidate, nil
		}
	}
	return "", nil
}

func isAbsolute(location string) bool {
	return strings.HasPrefix(location, "/") || strings.Contains(location, "://")
}
