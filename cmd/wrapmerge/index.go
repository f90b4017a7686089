package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/wrapmerge/config"
	"github.com/viant/wrapmerge/hierarchy"
	"github.com/viant/wrapmerge/inspector"
	"github.com/viant/wrapmerge/inspector/cpp"
)

type indexFlags struct {
	output      string
	module      string
	skipInvalid bool
	logLevel    string
}

func newIndexCmd() *cobra.Command {
	flags := &indexFlags{}
	cmd := &cobra.Command{
		Use:   "index [flags] dir...",
		Short: "Build a hierarchy file from headers under the given directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd.Context(), flags, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&flags.output, "output", "o", "", "output file, .yaml/.yml selects the YAML schema; stdout when empty")
	fs.StringVar(&flags.module, "module", "", "module name recorded on every entry")
	fs.BoolVar(&flags.skipInvalid, "skip-invalid", false, "skip headers that fail to parse")
	fs.StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	return cmd
}

func runIndex(ctx context.Context, flags *indexFlags, dirs []string, stdout, stderr io.Writer) error {
	level, err := config.ParseLevel(flags.logLevel)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, level, "index")
	fs := afs.New()

	builder := hierarchy.NewBuilder(fs, inspector.NewFactory(nil, cpp.WithFS(fs), cpp.WithLogger(logger)), logger)
	builder.Module = flags.module
	builder.SkipInvalid = flags.skipInvalid
	index, err := builder.Build(ctx, locations(dirs)...)
	if err != nil {
		return err
	}

	buffer := &bytes.Buffer{}
	switch strings.ToLower(path.Ext(flags.output)) {
	case ".yaml", ".yml":
		var data []byte
		if data, err = yaml.Marshal(index); err == nil {
			buffer.Write(data)
		}
	default:
		err = index.WriteText(buffer)
	}
	if err != nil {
		return fmt.Errorf("failed to encode hierarchy: %w", err)
	}
	if flags.output == "" {
		_, err = stdout.Write(buffer.Bytes())
		return err
	}
	if err = fs.Upload(ctx, location(flags.output), 0644, bytes.NewReader(buffer.Bytes())); err != nil {
		return fmt.Errorf("failed to write %s: %w", flags.output, err)
	}
	logger.Info("wrote hierarchy", slog.String("output", flags.output), slog.Int("entries", index.Len()))
	return nil
}
