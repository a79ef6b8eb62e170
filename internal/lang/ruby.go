package lang

import "regexp"

// newRubyAnalyzer builds the Ruby variant.
func newRubyAnalyzer() Analyzer {
	return newRegexAnalyzer(profile{
		language:    "ruby",
		extensions:  []string{".rb"},
		function:    regexp.MustCompile(`(?m)^\s*def\s+(?:self\.)?(\w+[?!]?)`),
		class:       regexp.MustCompile(`(?m)^\s*(?:class|module)\s+(\w+)`),
		variable:    regexp.MustCompile(`(?m)^\s*(\w+)\s*=\s*[^=]`),
		docComment:  regexp.MustCompile(`^\s*#`),
		branch:      regexp.MustCompile(`\b(?:if|elsif|unless|for|while|until|when|rescue)\b|&&|\|\|`),
		errHandling: regexp.MustCompile(`\bbegin\b|\brescue\b|\bensure\b|\braise\b`),
		test:        regexp.MustCompile(`(?m)^\s*def\s+test_\w+|\b(?:it|describe|context)\s+['"]|\bexpect\s*\(|assert_\w+\s*[ (]`),
		danger:      regexp.MustCompile(`\beval\s*[ (]|\bsystem\s*[ (]|Kernel\.exec\b|Marshal\.load\b|` + "`" + `[^` + "`" + `]*` + "`"),
		validation:  regexp.MustCompile(`\bis_a\?\s*[ (]|\bkind_of\?\s*[ (]|raise\s+ArgumentError|\bvalidates?\b`),
		testPath:    regexp.MustCompile(`_(?:test|spec)\.rb$|(?:^|/)(?:test|spec)/`),
	})
}
