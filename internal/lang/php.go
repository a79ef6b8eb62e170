package lang

import "regexp"

// newPHPAnalyzer builds the PHP variant.
func newPHPAnalyzer() Analyzer {
	return newRegexAnalyzer(profile{
		language:    "php",
		extensions:  []string{".php"},
		function:    regexp.MustCompile(`\bfunction\s+(\w+)\s*\(`),
		class:       regexp.MustCompile(`\b(?:class|interface|trait|enum)\s+(\w+)`),
		variable:    regexp.MustCompile(`\$(\w+)\s*=`),
		docComment:  regexp.MustCompile(`^\s*(?:/\*\*|\*|//|#)`),
		branch:      regexp.MustCompile(`\b(?:if|elseif|for|foreach|while|case|catch)\b|&&|\|\||\?`),
		errHandling: regexp.MustCompile(`\btry\b|\bcatch\s*\(|\bthrow\b|\bfinally\b`),
		test:        regexp.MustCompile(`\bfunction\s+test\w+|\$this->assert\w+\s*\(|assert(?:Equals|True|False)\s*\(`),
		danger:      regexp.MustCompile(`\beval\s*\(|\bexec\s*\(|shell_exec\s*\(|mysql_query\s*\(|\bunserialize\s*\(|\$_(?:GET|POST|REQUEST)\[`),
		validation:  regexp.MustCompile(`filter_var\s*\(|filter_input\s*\(|htmlspecialchars\s*\(|\bis_(?:int|string|numeric|array)\s*\(|\bvalidate\w*\s*\(`),
		testPath:    regexp.MustCompile(`Test\.php$|(?:^|/)tests?/`),
	})
}
