package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/wrapmerge/merge"
)

// Config represents merge run configuration
type Config struct {
	IncludeDirs   []string     `yaml:"includeDirs,omitempty"`
	SourceRoots   []string     `yaml:"sourceRoots,omitempty"` // Searched for header directories appended to IncludeDirs
	HierarchyFile string       `yaml:"hierarchyFile,omitempty"`
	HintsFile     string       `yaml:"hintsFile,omitempty"`
	Output        string       `yaml:"output,omitempty"`
	CacheDir      string       `yaml:"cacheDir,omitempty"`
	MaxDepth      int          `yaml:"maxDepth,omitempty"`
	NameHiding    bool         `yaml:"nameHiding,omitempty"`
	StrictSyntax  bool         `yaml:"strictSyntax,omitempty"`
	Policy        merge.Policy `yaml:"policy,omitempty"`
	LogLevel      string       `yaml:"logLevel,omitempty"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		MaxDepth: merge.DefaultMaxDepth,
		Policy:   merge.DefaultPolicy(),
		LogLevel: "info",
	}
}

// Load reads YAML configuration from URL; fields absent from the file keep their defaults
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	ret := Default()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	defaults := merge.DefaultPolicy()
	if ret.Policy.MissingEntry == "" {
		ret.Policy.MissingEntry = defaults.MissingEntry
	}
	if ret.Policy.LoadFailure == "" {
		ret.Policy.LoadFailure = defaults.LoadFailure
	}
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return ret, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("maxDepth must be positive, got %d", c.MaxDepth)
	}
	if !validAction(c.Policy.MissingEntry) {
		return fmt.Errorf("policy.missingEntry: unsupported action %q", c.Policy.MissingEntry)
	}
	if !validAction(c.Policy.LoadFailure) {
		return fmt.Errorf("policy.loadFailure: unsupported action %q", c.Policy.LoadFailure)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	for i, dir := range c.IncludeDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("includeDirs[%d]: must not be empty", i)
		}
	}
	return nil
}

// ResolverOptions returns resolver options derived from configuration
func (c *Config) ResolverOptions() []merge.Option {
	return []merge.Option{
		merge.WithMaxDepth(c.MaxDepth),
		merge.WithPolicy(c.Policy),
		merge.WithNameHiding(c.NameHiding),
	}
}

// ParseLevel maps a level name to slog level; empty means info
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unsupported log level %q", name)
}

func validAction(action merge.Action) bool {
	return action == merge.Truncate || action == merge.Fail
}
