package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wrapmerge",
		Short:         "Flatten inherited C++ methods for wrapper generators",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMergeCmd(), newIndexCmd())
	return root
}

// newLogger creates request scoped logger writing to writer
func newLogger(writer io.Writer, level slog.Level, command string) *slog.Logger {
	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(
		slog.String("request_id", uuid.NewString()),
		slog.String("command", command),
	)
}

// location turns a local path into an absolute one; URLs are returned as is
func location(name string) string {
	if name == "" || strings.Contains(name, "://") {
		return name
	}
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return name
}

func locations(names []string) []string {
	result := make([]string, 0, len(names))
	for _, name := range names {
		result = append(result, location(name))
	}
	return result
}
