package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/viant/afs"

	"github.com/viant/wrapmerge/cache"
	"github.com/viant/wrapmerge/config"
	"github.com/viant/wrapmerge/emitter"
	"github.com/viant/wrapmerge/hierarchy"
	"github.com/viant/wrapmerge/hints"
	"github.com/viant/wrapmerge/inspector"
	"github.com/viant/wrapmerge/inspector/cpp"
	"github.com/viant/wrapmerge/inspector/graph"
	"github.com/viant/wrapmerge/inspector/repository"
	"github.com/viant/wrapmerge/merge"
)

type mergeFlags struct {
	configURL    string
	output       string
	includeDirs  []string
	sourceRoots  []string
	types        string
	hints        string
	cacheDir     string
	maxDepth     int
	nameHiding   bool
	strict       bool
	logLevel     string
	missingEntry string
	loadFailure  string
}

func newMergeCmd() *cobra.Command {
	flags := &mergeFlags{}
	cmd := &cobra.Command{
		Use:   "merge [flags] header.h",
		Short: "Merge inherited methods into every class of a header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.config(cmd.Context(), cmd.Flags())
			if err != nil {
				return err
			}
			return runMerge(cmd.Context(), cfg, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&flags.configURL, "config", "", "YAML configuration file")
	fs.StringVarP(&flags.output, "output", "o", "", "output file, stdout when empty")
	fs.StringArrayVarP(&flags.includeDirs, "include", "I", nil, "header search directory (repeatable)")
	fs.StringArrayVar(&flags.sourceRoots, "source-root", nil, "source tree searched for header directories (repeatable)")
	fs.StringVar(&flags.types, "types", "", "hierarchy file mapping classes to headers")
	fs.StringVar(&flags.hints, "hints", "", "hints file with array sizes of returned pointers")
	fs.StringVar(&flags.cacheDir, "cache-dir", "", "directory of the parsed declaration cache")
	fs.IntVar(&flags.maxDepth, "max-depth", merge.DefaultMaxDepth, "maximum ancestor depth")
	fs.BoolVar(&flags.nameHiding, "name-hiding", false, "hide inherited overloads of redeclared names")
	fs.BoolVar(&flags.strict, "strict", false, "treat headers with syntax errors as unparsable")
	fs.StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.StringVar(&flags.missingEntry, "missing-entry", "", "action for ancestors missing from the hierarchy: truncate or fail")
	fs.StringVar(&flags.loadFailure, "load-failure", "", "action for ancestors whose header fails to load: truncate or fail")
	return cmd
}

// config loads configuration file and applies explicitly set flags on top
func (f *mergeFlags) config(ctx context.Context, set *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if f.configURL != "" {
		var err error
		if cfg, err = config.Load(ctx, afs.New(), location(f.configURL)); err != nil {
			return nil, err
		}
	}
	if set.Changed("output") {
		cfg.Output = f.output
	}
	if set.Changed("include") {
		cfg.IncludeDirs = append(cfg.IncludeDirs, f.includeDirs...)
	}
	if set.Changed("source-root") {
		cfg.SourceRoots = append(cfg.SourceRoots, f.sourceRoots...)
	}
	if set.Changed("types") {
		cfg.HierarchyFile = f.types
	}
	if set.Changed("hints") {
		cfg.HintsFile = f.hints
	}
	if set.Changed("cache-dir") {
		cfg.CacheDir = f.cacheDir
	}
	if set.Changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if set.Changed("name-hiding") {
		cfg.NameHiding = f.nameHiding
	}
	if set.Changed("strict") {
		cfg.StrictSyntax = f.strict
	}
	if set.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if set.Changed("missing-entry") {
		cfg.Policy.MissingEntry = merge.Action(f.missingEntry)
	}
	if set.Changed("load-failure") {
		cfg.Policy.LoadFailure = merge.Action(f.loadFailure)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runMerge parses input header, flattens each declared class and writes the YAML document
func runMerge(ctx context.Context, cfg *config.Config, input string, stdout, stderr io.Writer) error {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, level, "merge")
	fs := afs.New()

	cppOptions := []cpp.Option{cpp.WithFS(fs), cpp.WithLogger(logger)}
	if cfg.CacheDir != "" {
		store, err := cache.Open(location(cfg.CacheDir), logger)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		cppOptions = append(cppOptions, cpp.WithCache(store))
	}
	graphConfig := graph.DefaultConfig()
	graphConfig.StrictSyntax = cfg.StrictSyntax
	factory := inspector.NewFactory(graphConfig, cppOptions...)

	includeDirs := locations(cfg.IncludeDirs)
	detector := repository.NewDetector(fs)
	for _, root := range cfg.SourceRoots {
		dirs, err := detector.IncludeDirs(ctx, location(root), inspector.HeaderSuffixes)
		if err != nil {
			return fmt.Errorf("failed to scan source root %s: %w", root, err)
		}
		logger.Debug("detected include directories", slog.String("root", root), slog.Int("dirs", len(dirs)))
		includeDirs = append(includeDirs, dirs...)
	}

	options := append(cfg.ResolverOptions(),
		merge.WithLoader(factory),
		merge.WithLocator(repository.NewIncludePath(fs, includeDirs...)),
		merge.WithLogger(logger),
	)
	if cfg.HierarchyFile != "" {
		index, err := hierarchy.Load(ctx, fs, location(cfg.HierarchyFile))
		if err != nil {
			return err
		}
		logger.Info("loaded hierarchy", slog.String("path", cfg.HierarchyFile), slog.Int("entries", index.Len()))
		options = append(options, merge.WithIndex(index))
	}
	var overlay *hints.Overlay
	if cfg.HintsFile != "" {
		if overlay, err = hints.Open(ctx, fs, location(cfg.HintsFile)); err != nil {
			return err
		}
		options = append(options, merge.WithOverlay(overlay))
	}

	inputURL := location(input)
	file, err := factory.InspectFile(ctx, inputURL)
	if err != nil {
		logger.Error("couldn't parse input header", slog.String("header", input), slog.Any("error", err))
		return fmt.Errorf("failed to parse %s: %w", input, err)
	}
	if overlay != nil {
		if err = overlay.Apply(ctx, file); err != nil {
			return err
		}
	}

	document, err := merge.New(options...).ResolveFile(ctx, file)
	if err != nil {
		logger.Error("merge failed", slog.String("header", input), slog.Any("error", err))
		return err
	}
	document.Source = input

	output, err := (&emitter.YAML{}).Emit(document)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		_, err = stdout.Write(output)
		return err
	}
	if err = fs.Upload(ctx, location(cfg.Output), 0644, bytes.NewReader(output)); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Output, err)
	}
	logger.Info("wrote merged classes", slog.String("output", cfg.Output), slog.Int("classes", len(document.Classes)))
	return nil
}
