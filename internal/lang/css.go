package lang

import "regexp"

// newCSSAnalyzer builds the CSS variant. Selectors stand in for declarations
// and !important abuse is the danger signal.
func newCSSAnalyzer() Analyzer {
	return newRegexAnalyzer(profile{
		language:    "css",
		extensions:  []string{".css", ".scss", ".less"},
		function:    regexp.MustCompile(`(?m)^\s*\.([\w-]+)[^{]*\{`),
		class:       regexp.MustCompile(`(?m)^\s*@(?:mixin|keyframes)\s+([\w-]+)`),
		variable:    regexp.MustCompile(`--([\w-]+)\s*:|\$([\w-]+)\s*:`),
		docComment:  regexp.MustCompile(`^\s*/\*`),
		branch:      regexp.MustCompile(`@media\b|@supports\b|:hover\b|:focus\b|:active\b`),
		errHandling: regexp.MustCompile(`@supports\b|\bvar\s*\([^)]*,`),
		test:        nil,
		danger:      regexp.MustCompile(`!important\b`),
		validation:  nil,
		testPath:    nil,
	})
}
