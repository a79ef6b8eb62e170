package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/empatia-tech/empatia/internal/cache"
	"github.com/empatia-tech/empatia/internal/config"
	"github.com/empatia-tech/empatia/internal/empathy"
	"github.com/empatia-tech/empatia/internal/export"
	"github.com/empatia-tech/empatia/internal/githubrepo"
	"github.com/empatia-tech/empatia/internal/lang"
	"github.com/empatia-tech/empatia/internal/metrics"
)

// repoSpecParts is the owner/name pair length of a repository argument.
const repoSpecParts = 2

// ErrInvalidRepoSpec is returned when a repository argument is not of the
// form owner/name.
var ErrInvalidRepoSpec = errors.New("repository must be owner/name")

// CompareCommand holds the flags for the compare command.
type CompareCommand struct {
	output     string
	format     string
	configPath string
	token      string
	noCache    bool
	verbose    bool
}

// NewCompareCommand creates and configures the compare command.
func NewCompareCommand() *cobra.Command {
	cmd := &CompareCommand{}

	cobraCmd := &cobra.Command{
		Use:   "compare <empresa-owner/repo> <candidato-owner/repo>",
		Short: "Compare two GitHub repositories",
		Long: `Compare a candidate repository against a reference (empresa) one,
category by category, and report the empathy alignment.`,
		Args: cobra.ExactArgs(repoSpecParts),
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return cmd.Run(cobraCmd.Context(), args[0], args[1])
		},
	}

	cobraCmd.Flags().StringVarP(&cmd.output, "output", "o", "", "Output file (default: stdout)")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "Output format: txt, json, yaml or html")
	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file path")
	cobraCmd.Flags().StringVar(&cmd.token, "token", "", "GitHub token (overrides config)")
	cobraCmd.Flags().BoolVar(&cmd.noCache, "no-cache", false, "Skip the analysis cache")
	cobraCmd.Flags().BoolVarP(&cmd.verbose, "verbose", "v", false, "Verbose logging")

	return cobraCmd
}

// Run executes the compare command.
func (c *CompareCommand) Run(ctx context.Context, empresaSpec, candidatoSpec string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	token := cfg.GitHubToken
	if c.token != "" {
		token = c.token
	}

	logger := newLogger(c.verbose || cfg.Verbose)
	client := githubrepo.NewClient(token, logger)

	var store *cache.Store

	if !c.noCache {
		store, err = cache.NewStore(cfg.CacheDir, cfg.CacheTTL, logger)
		if err != nil {
			return err
		}
	}

	empresaInfo, empresaAnalysis, err := c.analyzeRepo(ctx, client, store, logger, empresaSpec)
	if err != nil {
		return err
	}

	candidatoInfo, candidatoAnalysis, err := c.analyzeRepo(ctx, client, store, logger, candidatoSpec)
	if err != nil {
		return err
	}

	report := &export.Report{
		Empresa:           empresaInfo,
		Candidato:         &candidatoInfo,
		AnalisisEmpresa:   empresaAnalysis,
		AnalisisCandidato: candidatoAnalysis,
		Comparacion:       empathy.Compare(empresaAnalysis, candidatoAnalysis),
		GeneradoEn:        time.Now().UTC(),
	}

	format := cfg.Format
	if c.format != "" {
		format = c.format
	}

	return writeReport(report, format, c.output)
}

// analyzeRepo fetches, analyzes and caches one repository.
func (c *CompareCommand) analyzeRepo(
	ctx context.Context,
	client *githubrepo.Client,
	store *cache.Store,
	logger *slog.Logger,
	spec string,
) (metrics.RepoInfo, *metrics.ProjectAnalysis, error) {
	owner, repo, err := splitRepoSpec(spec)
	if err != nil {
		return metrics.RepoInfo{}, nil, err
	}

	info, err := client.RepoInfo(ctx, owner, repo)
	if err != nil {
		return metrics.RepoInfo{}, nil, err
	}

	tree, err := client.Tree(ctx, owner, repo)
	if err != nil {
		return metrics.RepoInfo{}, nil, err
	}

	// A cache hit here skips the blob downloads entirely, not just the
	// analysis.
	if store != nil {
		if analysis, ok := store.Get(info.Name, tree.SHA); ok {
			logger.Info("analysis served from cache",
				slog.String("repo", info.Name),
				slog.String("tree", tree.SHA))

			return info, analysis, nil
		}
	}

	files, err := client.Download(ctx, owner, repo, tree)
	if err != nil {
		return metrics.RepoInfo{}, nil, err
	}

	analysis := lang.NewProjectAnalyzer(nil, logger).AnalyzeProject(files)

	if store != nil {
		err = store.Put(info.Name, tree.SHA, analysis)
		if err != nil {
			logger.Warn("caching analysis failed",
				slog.String("repo", info.Name),
				slog.String("error", err.Error()))
		}
	}

	return info, analysis, nil
}

// splitRepoSpec parses an owner/name argument.
func splitRepoSpec(spec string) (owner, repo string, err error) {
	parts := strings.Split(spec, "/")
	if len(parts) != repoSpecParts || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoSpec, spec)
	}

	return parts[0], parts[1], nil
}
