// Package commands implements the empatia CLI subcommands.
package commands

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/empatia-tech/empatia/internal/config"
	"github.com/empatia-tech/empatia/internal/export"
	"github.com/empatia-tech/empatia/internal/githubrepo"
	"github.com/empatia-tech/empatia/internal/lang"
	"github.com/empatia-tech/empatia/internal/metrics"
)

// AnalyzeCommand holds the flags for the analyze command.
type AnalyzeCommand struct {
	output     string
	format     string
	configPath string
	verbose    bool
}

// NewAnalyzeCommand creates and configures the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	cmd := &AnalyzeCommand{}

	cobraCmd := &cobra.Command{
		Use:   "analyze <directory>",
		Short: "Analyze a local project directory",
		Long:  "Analyze a local project directory and report its empathy metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Run(args[0])
		},
	}

	cobraCmd.Flags().StringVarP(&cmd.output, "output", "o", "", "Output file (default: stdout)")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "Output format: txt, json, yaml or html")
	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file path")
	cobraCmd.Flags().BoolVarP(&cmd.verbose, "verbose", "v", false, "Verbose logging")

	return cobraCmd
}

// Run executes the analyze command.
func (c *AnalyzeCommand) Run(dir string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	logger := newLogger(c.verbose || cfg.Verbose)

	files, err := loadLocalFiles(dir, cfg.MaxFiles, logger)
	if err != nil {
		return err
	}

	analysis := lang.NewProjectAnalyzer(nil, logger).AnalyzeProject(files)

	report := &export.Report{
		Empresa: metrics.RepoInfo{
			Name:            filepath.Base(dir),
			PrimaryLanguage: analysis.PrimaryLanguage,
		},
		AnalisisEmpresa: analysis,
		GeneradoEn:      time.Now().UTC(),
	}

	return writeReport(report, c.resolveFormat(cfg), c.output)
}

// resolveFormat prefers the flag over the configured default.
func (c *AnalyzeCommand) resolveFormat(cfg *config.Config) string {
	if c.format != "" {
		return c.format
	}

	return cfg.Format
}

// loadLocalFiles walks a directory into the path-to-content map the core
// consumes, skipping vendored, binary and oversized files.
func loadLocalFiles(dir string, maxFiles int, logger *slog.Logger) (map[string]string, error) {
	files := make(map[string]string)

	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if entry.IsDir() || len(files) >= maxFiles {
			return nil
		}

		relative, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", path, err)
		}

		info, err := entry.Info()
		if err != nil || githubrepo.SkipPath(relative, info.Size()) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable file",
				slog.String("file", relative),
				slog.String("error", err.Error()))

			return nil
		}

		if githubrepo.SkipContent(content) {
			return nil
		}

		files[relative] = string(content)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return files, nil
}

// writeReport renders a report in the requested format to a file or stdout.
func writeReport(report *export.Report, format, output string) error {
	exporter, err := export.ForFormat(format)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout

	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer file.Close()

		w = file
	}

	return exporter.Export(report, w)
}

// newLogger builds the CLI logger, quiet unless verbose is set.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
