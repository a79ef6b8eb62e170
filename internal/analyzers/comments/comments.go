// Package comments measures comment density, documentation coverage and
// work markers (TODO/FIXME/HACK/XXX) from raw source text.
package comments

import (
	"regexp"
	"sort"
	"strings"
)

// Scoring constants. The score lives in [0,100]: comment coverage raises it,
// stale work markers lower it.
const (
	maxScore       = 100.0
	minScore       = 0.0
	coverageWeight = 70.0
	ratioWeight    = 30.0
	markerCost     = 2.0
	idealRatio     = 0.2
)

// linePattern matches single-line comments across the supported languages.
var linePattern = regexp.MustCompile(`^\s*(?://|#|--|;)`)

// blockStartPattern matches block or doc comment openers.
var blockStartPattern = regexp.MustCompile(`^\s*(?:/\*|"""|'''|<!--|=begin)`)

// blockEndPattern matches block or doc comment closers.
var blockEndPattern = regexp.MustCompile(`(?:\*/|"""|'''|-->|=end)\s*$`)

// markerPattern extracts work markers from comment text.
var markerPattern = regexp.MustCompile(`(?i)\b(todo|fixme|hack|xxx)\b:?\s*(.*)`)

// docCommentPattern matches documentation-style comment openers that usually
// precede declarations.
var docCommentPattern = regexp.MustCompile(`^\s*(?:///|/\*\*|"""|'''|##)`)

// declPattern approximates function/class declarations for doc coverage.
var declPattern = regexp.MustCompile(`^\s*(?:def\s+\w+|class\s+\w+|func\s+\w+|function\s+\w+|(?:public|private|protected)\s+[\w<>\[\]]+\s+\w+\s*\()`)

// Marker is one TODO/FIXME/HACK/XXX occurrence.
type Marker struct {
	Tipo     string `json:"tipo"`
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
	Texto    string `json:"texto"`
}

// Report is the comment analysis payload.
type Report struct {
	TotalLineas         int            `json:"total_lineas"`
	LineasComentario    int            `json:"lineas_comentario"`
	RatioComentarios    float64        `json:"ratio_comentarios"`
	CoberturaDocumental float64        `json:"cobertura_documental"`
	Marcadores          map[string]int `json:"marcadores"`
	DetalleMarcadores   []Marker       `json:"detalle_marcadores"`
	Score               float64        `json:"score"`
	Error               string         `json:"error,omitempty"`
}

// Extractor scans raw text for comments and markers.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract analyzes every file. Files with zero comments degrade to a neutral
// baseline; no error is ever returned.
func (e *Extractor) Extract(files map[string]string) *Report {
	report := &Report{
		Marcadores: make(map[string]int),
	}

	documented, declarations := 0, 0

	for _, path := range sortedPaths(files) {
		lines := strings.Split(files[path], "\n")
		report.TotalLineas += len(lines)

		inBlock := false

		for i, line := range lines {
			isComment := e.classifyLine(line, &inBlock)
			if isComment {
				report.LineasComentario++

				e.collectMarkers(report, path, i+1, line)
			}

			if declPattern.MatchString(line) {
				declarations++

				if i > 0 && e.isDocLine(lines[i-1]) {
					documented++
				}
			}
		}
	}

	report.RatioComentarios = safeRatio(report.LineasComentario, report.TotalLineas)
	report.CoberturaDocumental = safeRatio(documented, declarations)
	report.Score = e.score(report)

	return report
}

// classifyLine reports whether a line is a comment, tracking block state.
func (e *Extractor) classifyLine(line string, inBlock *bool) bool {
	if *inBlock {
		if blockEndPattern.MatchString(line) {
			*inBlock = false
		}

		return true
	}

	if blockStartPattern.MatchString(line) {
		// Single-line blocks close on the same line.
		trimmed := strings.TrimSpace(line)
		if !blockEndPattern.MatchString(line) || trimmed == `"""` || trimmed == "'''" || trimmed == "/*" {
			*inBlock = true
		}

		return true
	}

	return linePattern.MatchString(line)
}

// isDocLine reports whether a line closes or forms a documentation comment.
func (e *Extractor) isDocLine(line string) bool {
	return docCommentPattern.MatchString(line) ||
		linePattern.MatchString(line) ||
		blockEndPattern.MatchString(line)
}

// collectMarkers records any work markers found on a comment line.
func (e *Extractor) collectMarkers(report *Report, path string, lineNumber int, line string) {
	match := markerPattern.FindStringSubmatch(line)
	if match == nil {
		return
	}

	tipo := strings.ToLower(match[1])
	report.Marcadores[tipo]++
	report.DetalleMarcadores = append(report.DetalleMarcadores, Marker{
		Tipo:     tipo,
		FilePath: path,
		Line:     lineNumber,
		Texto:    strings.TrimSpace(match[2]),
	})
}

// score blends doc coverage and comment ratio, then charges for markers.
// The comment ratio saturates at idealRatio: more comments than that stop
// helping.
func (e *Extractor) score(report *Report) float64 {
	ratioScore := report.RatioComentarios / idealRatio
	if ratioScore > 1 {
		ratioScore = 1
	}

	score := report.CoberturaDocumental*coverageWeight + ratioScore*ratioWeight

	for _, count := range report.Marcadores {
		score -= markerCost * float64(count)
	}

	switch {
	case score > maxScore:
		return maxScore
	case score < minScore:
		return minScore
	default:
		return score
	}
}

// safeRatio divides counts, returning 0 for an empty divisor.
func safeRatio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole)
}

// sortedPaths returns the file paths in lexicographic order.
func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths
}
