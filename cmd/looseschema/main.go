package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	looseschema "github.com/dmrazzy/looseschema"
	"github.com/dmrazzy/looseschema/format"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "looseschema",
		Short:         "Validate structured-data documents with tolerant schemas",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	validate := &cobra.Command{
		Use:   "validate FILE",
		Short: "Parse a document by extension and check it for circular references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return runValidate(cmd.Context(), logger, args[0])
		},
	}
	root.AddCommand(validate)
	return root
}

func runValidate(ctx context.Context, logger *slog.Logger, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s, err := schemaForExt(filepath.Ext(path))
	if err != nil {
		return err
	}
	v, err := s.Parse(ctx, string(data))
	if err != nil {
		logIssues(logger, looseschema.ToIssues(err))
		return fmt.Errorf("%s: invalid document", path)
	}
	if _, err := looseschema.NonCircular().Parse(ctx, v); err != nil {
		logIssues(logger, looseschema.ToIssues(err))
		return fmt.Errorf("%s: circular document", path)
	}
	logger.Info("document is valid", slog.String("file", path))
	return nil
}

func schemaForExt(ext string) (looseschema.Schema[any], error) {
	switch strings.ToLower(ext) {
	case ".json":
		return format.JSON(), nil
	case ".json5":
		return format.JSON5(), nil
	case ".jsonc":
		return format.JSONC(), nil
	case ".toml":
		return format.TOML(), nil
	case ".yaml", ".yml":
		s := format.MultidocYAML()
		return looseschema.Transform(s, func(docs []any) (any, error) {
			if len(docs) == 1 {
				return docs[0], nil
			}
			return docs, nil
		}), nil
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}
}

func logIssues(logger *slog.Logger, iss looseschema.Issues) {
	for _, it := range iss {
		logger.Error("validation issue",
			slog.String("path", it.Path),
			slog.String("code", it.Code),
			slog.String("message", it.Message),
		)
	}
}
