package lang

import (
	"regexp"
	"strings"

	"github.com/empatia-tech/empatia/internal/metrics"
)

// Heuristic scoring knobs shared by the regex-based language variants.
const (
	// minDescriptiveLen is the minimum identifier length considered
	// descriptive.
	minDescriptiveLen = 3
	// complexityScale normalizes branches-per-function into (0,1].
	complexityScale = 10.0
	// idealFunctionsHigh bounds the functions-per-file band that scores 1.0.
	idealFunctionsHigh = 15
	// oversizeFunctions is where the modularity score bottoms out.
	oversizeFunctions = 40
	// idealFileLines is the file length that still scores 1.0.
	idealFileLines = 300
	// oversizeFileLines is where the file-length score bottoms out.
	oversizeFileLines = 1200
)

// profile declares the language-specific extraction regexes consumed by the
// shared heuristic engine. Optional patterns may be nil; their metrics then
// report 0 (or the neutral 1.0 for consistency).
type profile struct {
	language    string
	extensions  []string
	function    *regexp.Regexp // captures the declared function name
	class       *regexp.Regexp // captures the declared type/class name
	variable    *regexp.Regexp // captures declared variable names
	docComment  *regexp.Regexp // a doc line immediately above a declaration
	branch      *regexp.Regexp // decision points for cyclomatic estimation
	errHandling *regexp.Regexp // try/catch/except/error-return forms
	test        *regexp.Regexp // test declarations and assertions
	danger      *regexp.Regexp // dangerous calls (eval, exec, raw SQL)
	validation  *regexp.Regexp // input validation and sanitization forms
	testPath    *regexp.Regexp // path shapes that mark a test file
}

// regexAnalyzer extracts the eight category metrics from raw text using a
// language profile. One instance serves one language.
type regexAnalyzer struct {
	profile profile
}

// newRegexAnalyzer builds an analyzer from a profile.
func newRegexAnalyzer(p profile) *regexAnalyzer {
	return &regexAnalyzer{profile: p}
}

// Language returns the profile's language name.
func (a *regexAnalyzer) Language() string {
	return a.profile.language
}

// Extensions returns the profile's extension set.
func (a *regexAnalyzer) Extensions() []string {
	return a.profile.extensions
}

// AnalyzeFile extracts per-file metrics for one source file.
func (a *regexAnalyzer) AnalyzeFile(path, content string) (metrics.CategoryMetrics, error) {
	if !MatchesExtension(a, path) {
		return nil, ErrUnsupportedFile
	}

	return a.analyzeContent(path, content), nil
}

// analyzeContent runs the heuristic passes. Split from AnalyzeFile so that
// wrapping analyzers (composition variants) can reuse it without re-checking
// the wrapper's own extension contract.
func (a *regexAnalyzer) analyzeContent(path, content string) metrics.CategoryMetrics {
	lines := strings.Split(content, "\n")
	identifiers := a.collectIdentifiers(content)
	functionCount := a.countMatches(a.profile.function, content)
	declarations := functionCount + a.countMatches(a.profile.class, content)

	out := metrics.NewCategoryMetrics()

	out[metrics.CategoryNombres]["descriptividad"] = descriptiveness(identifiers)
	out[metrics.CategoryDocumentacion]["cobertura"] = a.docCoverage(lines)
	out[metrics.CategoryModularidad]["funciones_por_archivo"] = modularityScore(functionCount)
	out[metrics.CategoryModularidad]["longitud_archivo"] = fileLengthScore(len(lines))
	out[metrics.CategoryComplejidad]["ciclomatica"] = a.complexityScore(content, functionCount)
	out[metrics.CategoryManejoErrores]["cobertura"] = a.errorHandlingScore(content, declarations)
	out[metrics.CategoryPruebas]["cobertura"] = a.testScore(path, content, functionCount)
	out[metrics.CategorySeguridad]["validacion"] = a.securityScore(content, declarations)
	out[metrics.CategoryConsistencia]["consistencia_nombres"] = namingConsistency(identifiers)
	out[metrics.CategoryConsistencia]["consistencia_indentacion"] = indentationConsistency(lines)

	return out
}

// collectIdentifiers gathers declared function, class and variable names.
func (a *regexAnalyzer) collectIdentifiers(content string) []string {
	var names []string

	for _, pattern := range []*regexp.Regexp{a.profile.function, a.profile.class, a.profile.variable} {
		if pattern == nil {
			continue
		}

		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			for _, group := range match[1:] {
				if group != "" {
					names = append(names, group)

					break
				}
			}
		}
	}

	return names
}

// countMatches counts pattern hits, treating a nil pattern as zero.
func (a *regexAnalyzer) countMatches(pattern *regexp.Regexp, content string) int {
	if pattern == nil {
		return 0
	}

	return len(pattern.FindAllStringIndex(content, -1))
}

// docCoverage measures the share of declarations preceded by a doc line.
func (a *regexAnalyzer) docCoverage(lines []string) float64 {
	if a.profile.docComment == nil {
		return 0
	}

	declPatterns := []*regexp.Regexp{a.profile.function, a.profile.class}
	documented, declarations := 0, 0

	for i, line := range lines {
		for _, pattern := range declPatterns {
			if pattern == nil || !pattern.MatchString(line) {
				continue
			}

			declarations++

			if i > 0 && a.profile.docComment.MatchString(lines[i-1]) {
				documented++
			}

			break
		}
	}

	return metrics.SafeDiv(float64(documented), float64(declarations))
}

// complexityScore converts branch density into a [0,1] score where fewer
// decision points per function score higher.
func (a *regexAnalyzer) complexityScore(content string, functionCount int) float64 {
	branches := a.countMatches(a.profile.branch, content)
	if branches == 0 {
		return 1.0
	}

	perFunction := float64(branches) / float64(max(functionCount, 1))

	return 1.0 / (1.0 + perFunction/complexityScale)
}

// errorHandlingScore measures error-handling constructs per declaration.
func (a *regexAnalyzer) errorHandlingScore(content string, declarations int) float64 {
	handled := a.countMatches(a.profile.errHandling, content)

	return metrics.Clamp01(float64(handled) / float64(max(declarations, 1)))
}

// testScore measures test density. Test files are recognized by path shape
// or by test constructs in the body.
func (a *regexAnalyzer) testScore(path, content string, functionCount int) float64 {
	tests := a.countMatches(a.profile.test, content)
	if tests == 0 {
		return 0
	}

	if a.profile.testPath != nil && a.profile.testPath.MatchString(path) {
		return 1.0
	}

	return metrics.Clamp01(float64(tests) / float64(max(functionCount, 1)))
}

// securityScore starts from full marks, charges for dangerous calls and
// refunds for explicit input validation.
func (a *regexAnalyzer) securityScore(content string, declarations int) float64 {
	dangers := a.countMatches(a.profile.danger, content)
	validations := a.countMatches(a.profile.validation, content)

	score := 1.0 - float64(dangers)/float64(max(declarations, 1))

	if validations > 0 {
		score += 0.1
	}

	return metrics.Clamp01(score)
}

// descriptiveness rates identifier names: at least minDescriptiveLen runes
// and not a disemvoweled abbreviation. No identifiers rate a neutral 0.5.
func descriptiveness(identifiers []string) float64 {
	if len(identifiers) == 0 {
		return 0.5
	}

	descriptive := 0

	for _, name := range identifiers {
		if len(name) >= minDescriptiveLen && strings.ContainsAny(strings.ToLower(name), "aeiou_") {
			descriptive++
		}
	}

	return float64(descriptive) / float64(len(identifiers))
}

// namingConsistency measures adherence to the dominant naming convention
// among snake_case and camelCase. No identifiers score a neutral 1.0.
func namingConsistency(identifiers []string) float64 {
	if len(identifiers) == 0 {
		return 1.0
	}

	snake, camel := 0, 0

	for _, name := range identifiers {
		switch {
		case strings.Contains(name, "_"):
			snake++
		case name != strings.ToLower(name) && name != strings.ToUpper(name):
			camel++
		default:
			// Single-word lower-case names fit either convention.
			snake++
			camel++
		}
	}

	return float64(max(snake, camel)) / float64(len(identifiers))
}

// indentationConsistency measures how uniformly the file indents with its
// dominant style (tabs vs spaces). Unindented files score 1.0.
func indentationConsistency(lines []string) float64 {
	tabs, spaces := 0, 0

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "\t"):
			tabs++
		case strings.HasPrefix(line, " "):
			spaces++
		}
	}

	indented := tabs + spaces
	if indented == 0 {
		return 1.0
	}

	return float64(max(tabs, spaces)) / float64(indented)
}

// modularityScore bands functions-per-file: within the ideal band scores
// 1.0, fading to 0 at oversizeFunctions. A file with no functions scores 0.
func modularityScore(functionCount int) float64 {
	switch {
	case functionCount == 0:
		return 0
	case functionCount <= idealFunctionsHigh:
		return 1.0
	case functionCount >= oversizeFunctions:
		return 0
	default:
		span := float64(oversizeFunctions - idealFunctionsHigh)

		return 1.0 - float64(functionCount-idealFunctionsHigh)/span
	}
}

// fileLengthScore bands file length: up to idealFileLines scores 1.0,
// fading to 0 at oversizeFileLines.
func fileLengthScore(lineCount int) float64 {
	switch {
	case lineCount <= idealFileLines:
		return 1.0
	case lineCount >= oversizeFileLines:
		return 0
	default:
		span := float64(oversizeFileLines - idealFileLines)

		return 1.0 - float64(lineCount-idealFileLines)/span
	}
}
