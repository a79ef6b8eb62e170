package lang

import (
	"log/slog"
	"sort"

	"github.com/empatia-tech/empatia/internal/analyzers/comments"
	"github.com/empatia-tech/empatia/internal/analyzers/deps"
	"github.com/empatia-tech/empatia/internal/analyzers/duplication"
	"github.com/empatia-tech/empatia/internal/analyzers/patterns"
	"github.com/empatia-tech/empatia/internal/analyzers/perf"
	"github.com/empatia-tech/empatia/internal/metrics"
)

// ProjectAnalyzer fans a project's files out to the per-language analyzers
// and the cross-cutting detectors, then folds the results into one payload.
type ProjectAnalyzer struct {
	registry *Registry
	logger   *slog.Logger
}

// NewProjectAnalyzer builds a project analyzer over the given registry. A
// nil registry gets the built-in one, a nil logger discards.
func NewProjectAnalyzer(registry *Registry, logger *slog.Logger) *ProjectAnalyzer {
	if registry == nil {
		registry = NewRegistry()
	}

	if logger == nil {
		logger = discardLogger()
	}

	return &ProjectAnalyzer{registry: registry, logger: logger}
}

// AnalyzeProject analyzes every recognized file, grouped by language.
// Languages with zero files are omitted from the result.
func (p *ProjectAnalyzer) AnalyzeProject(files map[string]string) *metrics.ProjectAnalysis {
	grouped := p.groupByLanguage(files)

	analysis := &metrics.ProjectAnalysis{
		Languages: make(map[string]*metrics.LanguageResult, len(grouped)),
	}

	for language, languageFiles := range grouped {
		analyzer, ok := p.registry.Analyzer(language)
		if !ok {
			continue
		}

		analysis.Languages[language] = p.analyzeLanguage(language, analyzer, languageFiles)
	}

	p.fillTotals(analysis)

	return analysis
}

// groupByLanguage buckets files under their resolved language name.
// Unrecognized files are logged and dropped.
func (p *ProjectAnalyzer) groupByLanguage(files map[string]string) map[string]map[string]string {
	grouped := make(map[string]map[string]string)

	for path, content := range files {
		analyzer, ok := p.registry.AnalyzerForFile(path, []byte(content))
		if !ok {
			p.logger.Debug("skipping unrecognized file", slog.String("file", path))

			continue
		}

		language := analyzer.Language()
		if grouped[language] == nil {
			grouped[language] = make(map[string]string)
		}

		grouped[language][path] = content
	}

	return grouped
}

// analyzeLanguage runs the language analyzer plus every detector over one
// language's file set.
func (p *ProjectAnalyzer) analyzeLanguage(language string, analyzer Analyzer, files map[string]string) *metrics.LanguageResult {
	result := AnalyzeFiles(analyzer, files, p.logger)

	p.logger.Info("language analyzed",
		slog.String("language", language),
		slog.Int("files", result.TotalFiles),
		slog.Int("lines", result.TotalLines))

	return &metrics.LanguageResult{
		Metrics:      result.Metrics,
		Summary:      result.Summary(language),
		Duplication:  duplication.NewDetector(duplication.DefaultMinBlockSize).FindDuplicates(files),
		Dependencies: deps.NewExtractor().Extract(files),
		Patterns:     patterns.NewDetector().Detect(files),
		Performance:  perf.NewDetector().Detect(files),
		Comments:     comments.NewExtractor().Extract(files),
		FileCount:    len(files),
	}
}

// fillTotals computes the cross-language totals, the file-count-weighted
// overall score and the primary language. File-count ties break toward the
// alphabetically first language.
func (p *ProjectAnalyzer) fillTotals(analysis *metrics.ProjectAnalysis) {
	var (
		totals        metrics.TotalMetrics
		weightedScore float64
		primary       string
		primaryCount  int
	)

	languages := make([]string, 0, len(analysis.Languages))
	for language := range analysis.Languages {
		languages = append(languages, language)
	}

	sort.Strings(languages)

	for _, language := range languages {
		result := analysis.Languages[language]

		totals.TotalFiles += result.Summary.TotalFiles
		totals.TotalLines += result.Summary.TotalLines
		totals.LanguagesAnalyzed = append(totals.LanguagesAnalyzed, language)
		weightedScore += result.Summary.EmpathyScore * float64(result.Summary.TotalFiles)

		if result.Summary.TotalFiles > primaryCount {
			primary = language
			primaryCount = result.Summary.TotalFiles
		}
	}

	totals.OverallEmpathyScore = metrics.SafeDiv(weightedScore, float64(totals.TotalFiles))

	analysis.TotalMetrics = totals
	analysis.PrimaryLanguage = primary
}
