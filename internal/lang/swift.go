package lang

import "regexp"

// newSwiftAnalyzer builds the Swift variant.
func newSwiftAnalyzer() Analyzer {
	return newRegexAnalyzer(profile{
		language:    "swift",
		extensions:  []string{".swift"},
		function:    regexp.MustCompile(`\bfunc\s+(\w+)\s*[(<]`),
		class:       regexp.MustCompile(`\b(?:class|struct|enum|protocol|actor)\s+(\w+)`),
		variable:    regexp.MustCompile(`\b(?:let|var)\s+(\w+)`),
		docComment:  regexp.MustCompile(`^\s*(?:///|//|/\*\*)`),
		branch:      regexp.MustCompile(`\b(?:if|else if|for|while|case|guard|catch)\b|&&|\|\||\?`),
		errHandling: regexp.MustCompile(`\bdo\s*\{|\bcatch\b|\bthrows?\b|\btry[?!]?\b|\bdefer\b`),
		test:        regexp.MustCompile(`\bfunc\s+test\w+|XCTAssert\w*\s*\(|#expect\s*\(`),
		danger:      regexp.MustCompile(`\bunsafeBitCast\s*\(|UnsafeMutablePointer\b|unsafeDowncast\s*\(|\bas!\s`),
		validation:  regexp.MustCompile(`\bguard\s+let\b|\bif\s+let\b|precondition\s*\(|\bassert\s*\(|\bvalidate\w*\s*\(`),
		testPath:    regexp.MustCompile(`Tests?\.swift$|(?:^|/)Tests?/`),
	})
}
