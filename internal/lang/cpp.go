package lang

import "regexp"

// newCppAnalyzer builds the C++ variant.
func newCppAnalyzer() Analyzer {
	return newRegexAnalyzer(profile{
		language:    "cpp",
		extensions:  []string{".cpp", ".cc", ".cxx", ".hpp", ".h", ".hh"},
		function:    regexp.MustCompile(`(?m)^[\w:<>&*,\s]+\s(\w+)\s*\([^;]*\)\s*(?:const\s*)?(?:noexcept\s*)?\{`),
		class:       regexp.MustCompile(`\b(?:class|struct)\s+(\w+)`),
		variable:    regexp.MustCompile(`\bauto\s+(\w+)\s*=`),
		docComment:  regexp.MustCompile(`^\s*(?:///|//|/\*\*|\*)`),
		branch:      regexp.MustCompile(`\b(?:if|else if|for|while|case|catch)\b|&&|\|\||\?`),
		errHandling: regexp.MustCompile(`\btry\b|\bcatch\s*\(|\bthrow\b|\bnoexcept\b`),
		test:        regexp.MustCompile(`\bTEST(?:_F|_P)?\s*\(|EXPECT_\w+\s*\(|ASSERT_\w+\s*\(|REQUIRE\s*\(`),
		danger:      regexp.MustCompile(`\bsystem\s*\(|\bstrcpy\s*\(|\bsprintf\s*\(|\bgets\s*\(|\bmemcpy\s*\(`),
		validation:  regexp.MustCompile(`\bassert\s*\(|static_assert\s*\(|std::invalid_argument\b|\bvalidate\w*\s*\(`),
		testPath:    regexp.MustCompile(`_test\.(?:cpp|cc)$|(?:^|/)tests?/`),
	})
}
