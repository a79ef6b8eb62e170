package lang

import "regexp"

// newHTMLAnalyzer builds the HTML variant. Markup has no functions, so the
// profile reads identified elements as the unit of structure and inline
// scripting hooks as the danger surface.
func newHTMLAnalyzer() Analyzer {
	return newRegexAnalyzer(profile{
		language:    "html",
		extensions:  []string{".html", ".htm"},
		function:    regexp.MustCompile(`\bid\s*=\s*["']([\w-]+)["']`),
		class:       regexp.MustCompile(`<(section|article|nav|header|footer|main|aside)\b`),
		variable:    regexp.MustCompile(`\bclass\s*=\s*["']([\w-]+)`),
		docComment:  regexp.MustCompile(`^\s*<!--`),
		branch:      regexp.MustCompile(`<(?:template|slot)\b|\bdata-if\b|\bv-if\b|\*ngIf\b`),
		errHandling: regexp.MustCompile(`\bnovalidate\b|<noscript\b|\balt\s*=`),
		test:        nil,
		danger:      regexp.MustCompile(`\bon\w+\s*=|javascript:|<script[^>]*>[^<]|srcdoc\s*=`),
		validation:  regexp.MustCompile(`\brequired\b|\bpattern\s*=|\bmaxlength\s*=|type\s*=\s*["'](?:email|number|url)["']`),
		testPath:    nil,
	})
}
