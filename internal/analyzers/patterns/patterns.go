// Package patterns recognizes design patterns and anti-patterns with a
// closed regex catalog. More positive patterns raise the score; more
// anti-patterns lower it.
package patterns

import (
	"regexp"
	"sort"
	"strings"
)

// Scoring constants. The score lives in [0,100] and starts from a neutral
// baseline so that files with zero matches degrade gracefully.
const (
	neutralScore     = 50.0
	patternReward    = 8.0
	antiPatternCost  = 12.0
	maxScore         = 100.0
	minScore         = 0.0
	godClassMethods  = 15
	longMethodLines  = 60
	deepNestingLevel = 5
)

// signature is one named catalog entry.
type signature struct {
	name    string
	pattern *regexp.Regexp
}

// designPatterns is the positive catalog.
var designPatterns = []signature{
	{name: "singleton", pattern: regexp.MustCompile(`(?i)\b(?:getInstance|get_instance|sharedInstance)\s*\(`)},
	{name: "factory", pattern: regexp.MustCompile(`(?i)\b(?:create|make|build)[A-Z_]\w*\s*\(|class\s+\w*Factory\b`)},
	{name: "observer", pattern: regexp.MustCompile(`(?i)\b(?:subscribe|addListener|add_listener|on[A-Z]\w+|notifyObservers)\s*\(`)},
	{name: "decorator", pattern: regexp.MustCompile(`(?m)^\s*@\w+|\bfunc\s+\w*Middleware\b|class\s+\w*Decorator\b`)},
	{name: "strategy", pattern: regexp.MustCompile(`(?i)class\s+\w*Strategy\b|\bstrategy\s*[:=]`)},
	{name: "builder", pattern: regexp.MustCompile(`(?i)class\s+\w*Builder\b|\bwith[A-Z]\w*\s*\([^)]*\)\s*[.{]`)},
}

// antiPatterns is the negative catalog. god_class, long_method and
// deep_nesting are structural and detected separately.
var antiPatterns = []signature{
	{name: "magic_numbers", pattern: regexp.MustCompile(`(?:=|<|>|\+|-|\*|/)\s*(?:[3-9]\d{2,}|\d{4,})\b`)},
	{name: "empty_catch", pattern: regexp.MustCompile(`(?s)catch\s*\([^)]*\)\s*\{\s*\}|except[^:]*:\s*pass\b`)},
	{name: "global_state", pattern: regexp.MustCompile(`(?m)^\s*global\s+\w+|\$GLOBALS\b|\bpublic\s+static\s+var\b`)},
}

// deepIndentPattern flags lines indented five or more levels.
var deepIndentPattern = regexp.MustCompile(`(?m)^(?:\t{5,}|(?: {4}){5,})\S`)

// methodPattern approximates method declarations for the god-class check.
var methodPattern = regexp.MustCompile(`(?m)^\s+(?:def\s+\w+|(?:public|private|protected)\s+[\w<>\[\]]+\s+\w+\s*\(|func\s+\(\w+\s+\*?\w+\)\s+\w+)`)

// Match records one catalog hit.
type Match struct {
	Name     string `json:"name"`
	FilePath string `json:"file_path"`
	Line     int    `json:"line"`
}

// Report is the pattern analysis payload.
type Report struct {
	PatronesDetectados     map[string]int `json:"patrones_detectados"`
	AntipatronesDetectados map[string]int `json:"antipatrones_detectados"`
	Detalles               []Match        `json:"detalles"`
	Score                  float64        `json:"score"`
	Error                  string         `json:"error,omitempty"`
}

// Detector scans files against the pattern catalog.
type Detector struct{}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect scans every file. Zero matches yield the neutral baseline score;
// no error is ever returned.
func (d *Detector) Detect(files map[string]string) *Report {
	report := &Report{
		PatronesDetectados:     make(map[string]int),
		AntipatronesDetectados: make(map[string]int),
	}

	for _, path := range sortedPaths(files) {
		content := files[path]

		d.scanCatalog(report, path, content, designPatterns, report.PatronesDetectados)
		d.scanCatalog(report, path, content, antiPatterns, report.AntipatronesDetectados)
		d.scanStructural(report, path, content)
	}

	report.Score = d.score(report)

	return report
}

// scanCatalog records every catalog hit with its file and line.
func (d *Detector) scanCatalog(report *Report, path, content string, catalog []signature, counts map[string]int) {
	for _, sig := range catalog {
		locations := sig.pattern.FindAllStringIndex(content, -1)
		if len(locations) == 0 {
			continue
		}

		counts[sig.name] += len(locations)

		for _, loc := range locations {
			report.Detalles = append(report.Detalles, Match{
				Name:     sig.name,
				FilePath: path,
				Line:     lineAt(content, loc[0]),
			})
		}
	}
}

// scanStructural detects the god_class, long_method and deep_nesting
// anti-patterns, which need counting rather than a single regex hit.
func (d *Detector) scanStructural(report *Report, path, content string) {
	if methods := methodPattern.FindAllString(content, -1); len(methods) >= godClassMethods {
		report.AntipatronesDetectados["god_class"]++
		report.Detalles = append(report.Detalles, Match{Name: "god_class", FilePath: path, Line: 1})
	}

	for _, loc := range deepIndentPattern.FindAllStringIndex(content, -1) {
		report.AntipatronesDetectados["deep_nesting"]++
		report.Detalles = append(report.Detalles, Match{
			Name:     "deep_nesting",
			FilePath: path,
			Line:     lineAt(content, loc[0]),
		})
	}

	d.scanLongMethods(report, path, content)
}

// scanLongMethods flags runs of indented lines longer than longMethodLines.
func (d *Detector) scanLongMethods(report *Report, path, content string) {
	lines := strings.Split(content, "\n")
	run, runStart := 0, 0

	for i, line := range lines {
		indented := strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ")
		if indented && strings.TrimSpace(line) != "" {
			if run == 0 {
				runStart = i + 1
			}

			run++

			continue
		}

		if run > longMethodLines {
			report.AntipatronesDetectados["long_method"]++
			report.Detalles = append(report.Detalles, Match{Name: "long_method", FilePath: path, Line: runStart})
		}

		run = 0
	}

	if run > longMethodLines {
		report.AntipatronesDetectados["long_method"]++
		report.Detalles = append(report.Detalles, Match{Name: "long_method", FilePath: path, Line: runStart})
	}
}

// score folds counts into a bounded [0,100] value, monotonic in both
// directions: patterns raise it, anti-patterns lower it.
func (d *Detector) score(report *Report) float64 {
	score := neutralScore

	for _, count := range report.PatronesDetectados {
		score += patternReward * float64(count)
	}

	for _, count := range report.AntipatronesDetectados {
		score -= antiPatternCost * float64(count)
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
