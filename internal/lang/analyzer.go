// Package lang houses the per-language analyzers, the analyzer registry and
// the multi-language project dispatcher.
package lang

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/empatia-tech/empatia/internal/metrics"
)

// ErrUnsupportedFile reports a contract violation: AnalyzeFile was invoked
// with a path outside the analyzer's extension set. Unlike data-quality
// problems, this one is surfaced to the caller.
var ErrUnsupportedFile = errors.New("file extension not handled by this analyzer")

// Analyzer extracts the eight category metrics from one file of its language.
type Analyzer interface {
	// Language returns the canonical lower-case language name.
	Language() string
	// Extensions returns the file extensions (with leading dot) this
	// analyzer handles.
	Extensions() []string
	// AnalyzeFile extracts per-file metrics. The path must match
	// Extensions; violating that returns ErrUnsupportedFile.
	AnalyzeFile(path, content string) (metrics.CategoryMetrics, error)
}

// Result aggregates one language's analysis over a file set.
type Result struct {
	Metrics    metrics.CategoryMetrics
	TotalFiles int
	TotalLines int
}

// EmpathyScore computes the weighted empathy score of the aggregate metrics.
func (r Result) EmpathyScore() float64 {
	return metrics.EmpathyScore(r.Metrics)
}

// Summary builds the per-language summary payload.
func (r Result) Summary(language string) metrics.LanguageSummary {
	return metrics.LanguageSummary{
		Language:     language,
		TotalFiles:   r.TotalFiles,
		TotalLines:   r.TotalLines,
		Metrics:      r.Metrics,
		EmpathyScore: r.EmpathyScore(),
	}
}

// AnalyzeFiles runs an analyzer over every matching file and aggregates the
// per-file metrics. Files whose analysis fails are skipped with a warning;
// with zero matching files all eight categories stay empty and the score is 0.
func AnalyzeFiles(analyzer Analyzer, files map[string]string, logger *slog.Logger) Result {
	if logger == nil {
		logger = discardLogger()
	}

	result := Result{Metrics: metrics.NewCategoryMetrics()}

	var perFile []metrics.CategoryMetrics

	for path, content := range files {
		if !MatchesExtension(analyzer, path) {
			continue
		}

		fileMetrics, err := analyzer.AnalyzeFile(path, content)
		if err != nil {
			logger.Warn("skipping file", "path", path, "language", analyzer.Language(), "error", err)

			continue
		}

		perFile = append(perFile, fileMetrics)
		result.TotalFiles++
		result.TotalLines += len(strings.Split(content, "\n"))
	}

	if len(perFile) > 0 {
		result.Metrics = aggregate(perFile)
	}

	return result
}

// MatchesExtension reports whether the file path falls inside the analyzer's
// extension set.
func MatchesExtension(analyzer Analyzer, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	for _, supported := range analyzer.Extensions() {
		if ext == supported {
			return true
		}
	}

	return false
}

// aggregate computes the unweighted arithmetic mean per leaf metric across
// the files that reported that metric. Files missing a leaf do not drag its
// average down; this sparse-mean behavior is deliberate and can inflate
// scores when a metric is rarely reported.
func aggregate(perFile []metrics.CategoryMetrics) metrics.CategoryMetrics {
	sums := make(map[metrics.Category]map[string]float64)
	counts := make(map[metrics.Category]map[string]int)

	for _, fileMetrics := range perFile {
		for cat, leaves := range fileMetrics {
			if sums[cat] == nil {
				sums[cat] = make(map[string]float64)
				counts[cat] = make(map[string]int)
			}

			for leaf, value := range leaves {
				sums[cat][leaf] += value
				counts[cat][leaf]++
			}
		}
	}

	out := metrics.NewCategoryMetrics()

	for cat, leafSums := range sums {
		for leaf, sum := range leafSums {
			out[cat][leaf] = sum / float64(counts[cat][leaf])
		}
	}

	return out
}

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
