package lang

import "regexp"

// newPythonAnalyzer builds the Python variant.
func newPythonAnalyzer() Analyzer {
	return newRegexAnalyzer(profile{
		language:    "python",
		extensions:  []string{".py"},
		function:    regexp.MustCompile(`(?m)^\s*def\s+(\w+)\s*\(`),
		class:       regexp.MustCompile(`(?m)^\s*class\s+(\w+)`),
		variable:    regexp.MustCompile(`(?m)^\s*(\w+)\s*=\s*[^=]`),
		docComment:  regexp.MustCompile(`^\s*(?:#|"""|''')`),
		branch:      regexp.MustCompile(`\b(?:if|elif|for|while|except|and|or)\b`),
		errHandling: regexp.MustCompile(`\b(?:try|except|finally|raise)\b`),
		test:        regexp.MustCompile(`(?m)^\s*def\s+test_\w+|\bassert\b|self\.assert\w+`),
		danger:      regexp.MustCompile(`\beval\s*\(|\bexec\s*\(|os\.system\s*\(|subprocess\.\w+\(.*shell\s*=\s*True|pickle\.loads?\s*\(`),
		validation:  regexp.MustCompile(`\bisinstance\s*\(|\bint\s*\(|\bfloat\s*\(|\.strip\s*\(|raise\s+ValueError|\bvalidate\w*\s*\(`),
		testPath:    regexp.MustCompile(`(?:^|/)test_\w+\.py$|_test\.py$|(?:^|/)tests?/`),
	})
}
