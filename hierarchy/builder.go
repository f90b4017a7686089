package hierarchy

import (
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"

	"github.com/viant/wrapmerge/inspector"
	"github.com/viant/wrapmerge/inspector/graph"
	"github.com/viant/wrapmerge/inspector/repository"
)

// DefaultConcurrency bounds headers parsed at once
const DefaultConcurrency = 4

// Loader parses a header into declarations
type Loader interface {
	InspectFile(ctx context.Context, URL string) (*graph.File, error)
}

// Builder scans header directories and produces an index
type Builder struct {
	fs       afs.Service
	loader   Loader
	detector *repository.Detector
	logger   *slog.Logger
	// Module is recorded on every entry; when empty it is detected per header
	Module string
	// SkipInvalid logs and skips headers that fail to load instead of failing the build
	SkipInvalid bool
	Concurrency int
}

// NewBuilder creates index builder
func NewBuilder(fs afs.Service, loader Loader, logger *slog.Logger) *Builder {
	if fs == nil {
		fs = afs.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{fs: fs, loader: loader, detector: repository.NewDetector(fs), logger: logger, Concurrency: DefaultConcurrency}
}

// Build indexes every class declared in headers under dirs; the first declaration of a class wins
func (b *Builder) Build(ctx context.Context, dirs ...string) (*Index, error) {
	index := New()
	for _, dir := range dirs {
		URLs, err := repository.ListFilesRecursively(ctx, b.fs, dir, inspector.HeaderSuffixes, nil)
		if err != nil {
			return nil, err
		}
		files, err := b.load(ctx, URLs)
		if err != nil {
			return nil, err
		}
		// entries are added in listing order so duplicates resolve deterministically
		for i, file := range files {
			if file == nil {
				continue
			}
			module := b.module(ctx, URLs[i])
			for _, aType := range file.Types {
				if index.Entry(aType.Name) != nil {
					continue
				}
				index.Add(&Entry{
					Name:   aType.Name,
					Bases:  aType.Extends,
					Header: path.Base(URLs[i]),
					Module: module,
				})
			}
		}
		b.logger.Info("indexed directory", slog.String("dir", dir), slog.Int("headers", len(URLs)))
	}
	index.Sort()
	return index, nil
}

// load parses headers concurrently; skipped headers leave nil slots
func (b *Builder) load(ctx context.Context, URLs []string) ([]*graph.File, error) {
	files := make([]*graph.File, len(URLs))
	group, groupCtx := errgroup.WithContext(ctx)
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	group.SetLimit(concurrency)
	for i, URL := range URLs {
		group.Go(func() error {
			file, err := b.loader.InspectFile(groupCtx, URL)
			if err != nil {
				if b.SkipInvalid {
					b.logger.Warn("skipping header", slog.String("path", URL), slog.Any("error", err))
					return nil
				}
				return fmt.Errorf("failed to index %s: %w", URL, err)
			}
			files[i] = file
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func (b *Builder) module(ctx context.Context, URL string) string {
	if b.Module != "" {
		return b.Module
	}
	module, err := b.detector.DetectModule(ctx, URL)
	if err != nil {
		b.logger.Debug("module detection failed", slog.String("path", URL), slog.Any("error", err))
		return ""
	}
	if module == nil {
		return ""
	}
	return module.Name
}
