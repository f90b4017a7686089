package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/viant/wrapmerge/inspector/graph"
)

var tracer = otel.Tracer("github.com/viant/wrapmerge/merge")

// Truncation reasons
const (
	reasonNoIndex     = "no_index"
	reasonNoEntry     = "no_entry"
	reasonNotDeclared = "not_declared"
	reasonLoadFailure = "load_failure"
)

// Resolver walks class hierarchies and flattens inherited methods
type Resolver struct {
	index    Index
	locator  Locator
	loader   Loader
	overlay  Overlay
	logger   *slog.Logger
	maxDepth int
	policy   Policy
	merger   Merger
}

// Result represents outcome of a single resolution request
type Result struct {
	Record    *Record
	Truncated []string // Ancestors skipped, in walk order
	Loaded    []string // Headers loaded, in load order
}

// New creates a resolver
func New(options ...Option) *Resolver {
	ret := &Resolver{
		logger:   slog.Default(),
		maxDepth: DefaultMaxDepth,
		policy:   DefaultPolicy(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Resolve flattens methods of root, declared in file, with all resolvable ancestors.
// Ancestors are first looked up in file and in headers already loaded by this call,
// then through the hierarchy index. No partial record is returned on error.
func (r *Resolver) Resolve(ctx context.Context, file *graph.File, root *graph.Type) (*Result, error) {
	ctx, span := tracer.Start(ctx, "merge.Resolver.Resolve",
		trace.WithAttributes(
			attribute.String("class", root.Name),
			attribute.Int("bases", len(root.Extends)),
		),
	)
	defer span.End()

	w := &walk{
		resolver: r,
		record:   NewRecord(root),
		active:   map[string]bool{root.Name: true},
		path:     []string{root.Name},
		loaded:   map[string]bool{},
		logger:   r.logger.With(slog.String("class", root.Name)),
	}
	if file != nil {
		w.files = append(w.files, file)
		w.loaded[file.Path] = true
	}
	if err := w.visit(ctx, root, 1); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("contributors", w.record.Classes.Len()),
		attribute.Int("methods", w.record.Len()),
	)
	return &Result{Record: w.record, Truncated: w.truncated, Loaded: w.headers}, nil
}

// ResolveFile flattens every class declared in file
func (r *Resolver) ResolveFile(ctx context.Context, file *graph.File) (*graph.Document, error) {
	document := &graph.Document{Source: file.Path}
	for _, aType := range file.Types {
		result, err := r.Resolve(ctx, file, aType)
		if err != nil {
			return nil, err
		}
		class := result.Record.Class(aType)
		class.Truncated = result.Truncated
		document.Classes = append(document.Classes, class)
	}
	return document, nil
}

// walk holds state of a single resolution request
type walk struct {
	resolver  *Resolver
	record    *Record
	files     []*graph.File
	loaded    map[string]bool
	active    map[string]bool
	path      []string
	truncated []string
	headers   []string
	logger    *slog.Logger
}

func (w *walk) visit(ctx context.Context, class *graph.Type, depth int) error {
	for _, base := range class.Extends {
		ancestor, err := w.resolve(ctx, base)
		if err != nil {
			return err
		}
		if ancestor == nil {
			continue
		}
		if w.active[ancestor.Name] {
			observeFailure("cycle")
			return &CycleError{Path: append(append([]string{}, w.path...), ancestor.Name)}
		}
		if depth > w.resolver.maxDepth {
			observeFailure("depth")
			return fmt.Errorf("%w: %v exceeds %d levels below %s", ErrMaxDepthExceeded, ancestor.Name, w.resolver.maxDepth, w.path[0])
		}
		w.resolver.merger.Merge(w.record, ancestor)
		w.active[ancestor.Name] = true
		w.path = append(w.path, ancestor.Name)
		err = w.visit(ctx, ancestor, depth+1)
		w.path = w.path[:len(w.path)-1]
		delete(w.active, ancestor.Name)
		if err != nil {
			return err
		}
	}
	return nil
}

// resolve returns declaration of a named ancestor, or nil when the branch is truncated
func (w *walk) resolve(ctx context.Context, name string) (*graph.Type, error) {
	for _, file := range w.files {
		if aType := file.LookupType(name); aType != nil {
			return aType, nil
		}
	}
	r := w.resolver
	if r.index == nil {
		return nil, w.truncate(name, reasonNoIndex, nil)
	}
	header, ok := r.index.Lookup(name)
	if !ok {
		return nil, w.truncate(name, reasonNoEntry, nil)
	}
	file, err := w.load(ctx, name, header)
	if err != nil {
		if r.policy.LoadFailure == Truncate {
			return nil, w.truncate(name, reasonLoadFailure, err)
		}
		return nil, err
	}
	if file == nil {
		return nil, w.truncate(name, reasonNotDeclared, nil)
	}
	if aType := file.LookupType(name); aType != nil {
		return aType, nil
	}
	return nil, w.truncate(name, reasonNotDeclared, nil)
}

// load locates, parses and decorates the header declaring class;
// it returns nil file when the header was already loaded by this walk
func (w *walk) load(ctx context.Context, class, header string) (*graph.File, error) {
	r := w.resolver
	ctx, span := tracer.Start(ctx, "merge.Resolver.load",
		trace.WithAttributes(
			attribute.String("class", class),
			attribute.String("header", header),
		),
	)
	defer span.End()
	fail := func(loadErr *LoadError) (*graph.File, error) {
		observeFailure(loadErr.Stage)
		span.RecordError(loadErr)
		span.SetStatus(codes.Error, loadErr.Error())
		w.logger.Error("failed to load ancestor", slog.String("ancestor", class), slog.Any("error", loadErr))
		return nil, loadErr
	}

	location := header
	if r.locator != nil {
		var err error
		if location, err = r.locator.Locate(ctx, header); err != nil {
			return fail(&LoadError{Class: class, Header: header, Stage: StageLocate, Err: err})
		}
	}
	if w.loaded[location] {
		return nil, nil
	}
	if r.loader == nil {
		return fail(&LoadError{Class: class, Header: header, Path: location, Stage: StageRead, Err: errors.New("no loader configured")})
	}
	file, err := r.loader.InspectFile(ctx, location)
	if err != nil {
		stage := StageParse
		if errors.Is(err, graph.ErrUnreadable) {
			stage = StageRead
		}
		return fail(&LoadError{Class: class, Header: header, Path: location, Stage: stage, Err: err})
	}
	if r.overlay != nil {
		if err = r.overlay.Apply(ctx, file); err != nil {
			return fail(&LoadError{Class: class, Header: header, Path: location, Stage: StageOverlay, Err: err})
		}
	}
	filesLoadedTotal.Inc()
	w.loaded[location] = true
	w.files = append(w.files, file)
	w.headers = append(w.headers, location)
	w.logger.Info("loaded ancestor header",
		slog.String("ancestor", class),
		slog.String("path", location),
		slog.Int("types", len(file.Types)),
	)
	return file, nil
}

func (w *walk) truncate(name, reason string, cause error) error {
	if w.resolver.policy.MissingEntry == Fail && reason != reasonLoadFailure {
		return fmt.Errorf("%w: %s (%s)", ErrUnresolved, name, reason)
	}
	observeTruncation(reason)
	w.truncated = append(w.truncated, name)
	attrs := []any{slog.String("ancestor", name), slog.String("reason", reason)}
	if cause != nil {
		attrs = append(attrs, slog.Any("error", cause))
		w.logger.Warn("skipping ancestor", attrs...)
		return nil
	}
	w.logger.Debug("skipping ancestor", attrs...)
	return nil
}
