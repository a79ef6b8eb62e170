package metrics

import (
	"github.com/empatia-tech/empatia/internal/analyzers/comments"
	"github.com/empatia-tech/empatia/internal/analyzers/deps"
	"github.com/empatia-tech/empatia/internal/analyzers/duplication"
	"github.com/empatia-tech/empatia/internal/analyzers/patterns"
	"github.com/empatia-tech/empatia/internal/analyzers/perf"
)

// LanguageSummary summarizes one language's analysis.
type LanguageSummary struct {
	Language     string          `json:"language"`
	TotalFiles   int             `json:"total_files"`
	TotalLines   int             `json:"total_lines"`
	Metrics      CategoryMetrics `json:"metrics"`
	EmpathyScore float64         `json:"empathy_score"`
}

// LanguageResult is the full per-language analysis payload. Immutable once
// produced; key names are part of the wire contract consumed by the report
// renderers.
type LanguageResult struct {
	Metrics      CategoryMetrics     `json:"metrics"`
	Summary      LanguageSummary     `json:"summary"`
	Duplication  *duplication.Report `json:"duplication"`
	Dependencies *deps.Report        `json:"dependencies"`
	Patterns     *patterns.Report    `json:"patterns"`
	Performance  *perf.Report        `json:"performance"`
	Comments     *comments.Report    `json:"comments"`
	FileCount    int                 `json:"file_count"`
}

// TotalMetrics aggregates file and line counts across all languages with a
// file-count-weighted empathy score.
type TotalMetrics struct {
	TotalFiles          int      `json:"total_files"`
	TotalLines          int      `json:"total_lines"`
	LanguagesAnalyzed   []string `json:"languages_analyzed"`
	OverallEmpathyScore float64  `json:"overall_empathy_score"`
}

// ProjectAnalysis is the unit exchanged with the retrieval, cache and export
// collaborators. A language with zero files never appears in Languages.
type ProjectAnalysis struct {
	Languages       map[string]*LanguageResult `json:"languages"`
	TotalMetrics    TotalMetrics               `json:"total_metrics"`
	PrimaryLanguage string                     `json:"primary_language,omitempty"`
}

// RepoInfo is the repository metadata supplied by the retrieval collaborator.
type RepoInfo struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	Description     string `json:"description"`
	PrimaryLanguage string `json:"primary_language"`
	SizeKB          int    `json:"size_kb"`
	CreatedAt       string `json:"created_at"`
	PushedAt        string `json:"pushed_at"`
}
