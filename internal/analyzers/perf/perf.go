// Package perf detects known inefficient constructs with a closed regex
// catalog. The score is monotonic: every smell found lowers it.
package perf

import (
	"regexp"
	"sort"
	"strings"
)

// Scoring constants. A smell-free codebase scores the full 100.
const (
	maxScore  = 100.0
	minScore  = 0.0
	smellCost = 6.0
)

// signature is one named smell with its detection pattern.
type signature struct {
	name    string
	pattern *regexp.Regexp
}

// catalog is the closed set of recognized performance smells.
var catalog = []signature{
	{name: "string_concat_in_loop", pattern: regexp.MustCompile(`(?m)(?:for|while)[^\n]*\n(?:[^\n]*\n)??\s*\w+\s*\+=\s*["']`)},
	{name: "repeated_lookup", pattern: regexp.MustCompile(`(?m)for\s*\([^)]*;\s*\w+\s*<\s*\w+\.(?:length|size\(\)|count)\s*;`)},
	{name: "sync_io_in_loop", pattern: regexp.MustCompile(`(?m)(?:for|while)[^\n]*\n\s*[^\n]*(?:readFileSync|writeFileSync|\.execute\(|open\()`)},
	{name: "select_star", pattern: regexp.MustCompile(`(?i)select\s+\*\s+from`)},
	{name: "sleep_call", pattern: regexp.MustCompile(`(?i)\b(?:time\.sleep|Thread\.sleep|sleep)\s*\(\s*\d`)},
	{name: "regex_in_loop", pattern: regexp.MustCompile(`(?m)(?:for|while)[^\n]*\n\s*[^\n]*(?:re\.compile|new RegExp|regexp\.MustCompile)`)},
}

// loopLinePattern matches a line that opens a loop, capturing nothing; the
// indentation comparison for nested loops happens in code because RE2 has no
// backreferences.
var loopLinePattern = regexp.MustCompile(`^[\t ]*(?:for|while)\b`)

// Issue records one smell occurrence.
type Issue struct {
	Name     string `json:"name"`
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
}

// Report is the performance analysis payload.
type Report struct {
	ProblemasDetectados map[string]int `json:"problemas_detectados"`
	Detalles            []Issue        `json:"detalles"`
	Score               float64        `json:"score"`
	Error               string         `json:"error,omitempty"`
}

// Detector scans files against the smell catalog.
type Detector struct{}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect scans every file. Zero smells score the maximum; no error is ever
// returned.
func (d *Detector) Detect(files map[string]string) *Report {
	report := &Report{
		ProblemasDetectados: make(map[string]int),
	}

	for _, path := range sortedPaths(files) {
		content := files[path]

		for _, sig := range catalog {
			d.record(report, sig.name, path, content, sig.pattern)
		}

		d.recordNestedLoops(report, path, content)
	}

	report.Score = d.score(report)

	return report
}

// record registers every hit of one pattern with file and line.
func (d *Detector) record(report *Report, name, path, content string, pattern *regexp.Regexp) {
	locations := pattern.FindAllStringIndex(content, -1)
	if len(locations) == 0 {
		return
	}

	report.ProblemasDetectados[name] += len(locations)

	for _, loc := range locations {
		report.Detalles = append(report.Detalles, Issue{
			Name:     name,
			FilePath: path,
			Line:     lineAt(content, loc[0]),
		})
	}
}

// nestedLoopWindow is how many lines below a loop a deeper loop still counts
// as nested.
const nestedLoopWindow = 4

// recordNestedLoops flags a loop opened at deeper indentation shortly after
// an enclosing loop line, the classic quadratic scan.
func (d *Detector) recordNestedLoops(report *Report, path, content string) {
	lines := strings.Split(content, "\n")

	for i, line := range lines {
		if !loopLinePattern.MatchString(line) {
			continue
		}

		outer := indentWidth(line)

		for j := i + 1; j < len(lines) && j <= i+nestedLoopWindow; j++ {
			if loopLinePattern.MatchString(lines[j]) && indentWidth(lines[j]) > outer {
				report.ProblemasDetectados["nested_loop"]++
				report.Detalles = append(report.Detalles, Issue{
					Name:     "nested_loop",
					FilePath: path,
					Line:     j + 1,
				})

				break
			}
		}
	}
}

// indentWidth measures leading whitespace, counting a tab as four columns.
func indentWidth(line string) int {
	width := 0

	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}

	return width
}

// score starts at the maximum and subtracts a fixed cost per smell.
func (d *Detector) score(report *Report) float64 {
	score := maxScore

	for _, count := range report.ProblemasDetectados {
		score -= smellCost * float64(count)
	}

	if score < minScore {
		return minScore
	}

	return score
}

// lineAt converts a byte offset to a 1-based line number.
func lineAt(content string, offset int) int {
	return strings.Count(content[:offset], "\n") + 1
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
