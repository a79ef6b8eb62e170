package lang

import "regexp"

// newCSharpAnalyzer builds the C# variant.
func newCSharpAnalyzer() Analyzer {
	return newRegexAnalyzer(profile{
		language:    "csharp",
		extensions:  []string{".cs"},
		function:    regexp.MustCompile(`(?m)^\s*(?:public|private|protected|internal|static|async|virtual|override|\s)+[\w<>\[\],\s]+\s(\w+)\s*\([^;]*\)\s*(?:\{|=>)`),
		class:       regexp.MustCompile(`\b(?:class|interface|struct|record|enum)\s+(\w+)`),
		variable:    regexp.MustCompile(`\bvar\s+(\w+)\s*=`),
		docComment:  regexp.MustCompile(`^\s*(?:///|//)`),
		branch:      regexp.MustCompile(`\b(?:if|else if|for|foreach|while|case|catch)\b|&&|\|\||\?`),
		errHandling: regexp.MustCompile(`\btry\b|\bcatch\s*[({]|\bthrow\b|\bfinally\b`),
		test:        regexp.MustCompile(`\[(?:Test|Fact|Theory|TestMethod)\]|Assert\.\w+\s*\(`),
		danger:      regexp.MustCompile(`Process\.Start\s*\(|SqlCommand\s*\(|BinaryFormatter\b|\bunsafe\b`),
		validation:  regexp.MustCompile(`ArgumentNullException\b|ArgumentException\b|string\.IsNullOrEmpty\s*\(|TryParse\s*\(|\bvalidate\w*\s*\(`),
		testPath:    regexp.MustCompile(`Tests?\.cs$|(?:^|/)[Tt]ests?/`),
	})
}
