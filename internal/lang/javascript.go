package lang

import "regexp"

// newJavaScriptAnalyzer builds the JavaScript variant. It also serves as the
// base of the TypeScript variant by composition.
func newJavaScriptAnalyzer() *regexAnalyzer {
	return newRegexAnalyzer(profile{
		language:    "javascript",
		extensions:  []string{".js", ".jsx", ".mjs"},
		function:    regexp.MustCompile(`\bfunction\s+(\w+)\s*\(|(?:const|let)\s+(\w+)\s*=\s*(?:async\s+)?(?:function\b|\()`),
		class:       regexp.MustCompile(`\bclass\s+(\w+)`),
		variable:    regexp.MustCompile(`\b(?:const|let|var)\s+(\w+)`),
		docComment:  regexp.MustCompile(`^\s*(?:/\*\*|\*|//)`),
		branch:      regexp.MustCompile(`\b(?:if|else if|for|while|case|catch)\b|&&|\|\||\?`),
		errHandling: regexp.MustCompile(`\btry\b|\bcatch\s*\(|\bthrow\b|\.catch\s*\(`),
		test:        regexp.MustCompile(`\b(?:it|test|describe)\s*\(|\bexpect\s*\(|assert\.\w+\(`),
		danger:      regexp.MustCompile(`\beval\s*\(|\.innerHTML\s*=|document\.write\s*\(|new\s+Function\s*\(`),
		validation:  regexp.MustCompile(`\btypeof\b|Array\.isArray\s*\(|Number\.isInteger\s*\(|\bparseInt\s*\(|\bvalidate\w*\s*\(`),
		testPath:    regexp.MustCompile(`\.(?:test|spec)\.[jt]sx?$|(?:^|/)__tests__/`),
	})
}
