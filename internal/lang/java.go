package lang

import "regexp"

// newJavaAnalyzer builds the Java variant.
func newJavaAnalyzer() Analyzer {
	return newRegexAnalyzer(profile{
		language:    "java",
		extensions:  []string{".java"},
		function:    regexp.MustCompile(`(?m)^\s*(?:public|private|protected|static|final|synchronized|\s)+[\w<>\[\],\s]+\s(\w+)\s*\([^;]*\)\s*(?:throws\s[\w,\s]+)?\{`),
		class:       regexp.MustCompile(`\b(?:class|interface|enum|record)\s+(\w+)`),
		variable:    regexp.MustCompile(`(?m)^\s*(?:final\s+)?[A-Z]\w*(?:<[^>]*>)?\s+(\w+)\s*[=;]`),
		docComment:  regexp.MustCompile(`^\s*(?:/\*\*|\*|//)`),
		branch:      regexp.MustCompile(`\b(?:if|else if|for|while|case|catch)\b|&&|\|\||\?`),
		errHandling: regexp.MustCompile(`\btry\b|\bcatch\s*\(|\bthrow\b|\bthrows\b|\bfinally\b`),
		test:        regexp.MustCompile(`@Test\b|assert(?:Equals|True|False|NotNull|Null|Throws)\s*\(`),
		danger:      regexp.MustCompile(`Runtime\.getRuntime\(\)\.exec|Statement\s+\w+\s*=|createStatement\s*\(|ObjectInputStream\b`),
		validation:  regexp.MustCompile(`Objects\.requireNonNull\s*\(|@Valid\b|@NotNull\b|IllegalArgumentException\b|\bvalidate\w*\s*\(`),
		testPath:    regexp.MustCompile(`Tests?\.java$|(?:^|/)src/test/`),
	})
}
