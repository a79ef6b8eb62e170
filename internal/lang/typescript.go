package lang

import (
	"regexp"

	"github.com/empatia-tech/empatia/internal/metrics"
)

// Type-annotation scoring knobs.
const (
	// typedBonusThreshold is the annotation coverage above which typing is
	// considered thorough enough to stand in for prose documentation.
	typedBonusThreshold = 0.7
	// typedDocBonus is the documentation credit for thorough typing.
	typedDocBonus = 0.2
	// typedValidationWeight scales annotation coverage into validation
	// credit.
	typedValidationWeight = 0.2
)

var (
	tsAnnotationPattern  = regexp.MustCompile(`[\w)\]]\s*:\s*[A-Za-z_]\w*(?:<[^>]*>)?(?:\[\])?`)
	tsAnnotatablePattern = regexp.MustCompile(`\b(?:const|let|var)\s+\w+|\bfunction\s+\w+\s*\(|(?:\(|,)\s*\w+\s*[,):]`)
	tsInterfacePattern   = regexp.MustCompile(`\b(?:interface|type)\s+(\w+)`)
	tsAnyPattern         = regexp.MustCompile(`:\s*any\b`)
)

// tsAnalyzer is the TypeScript variant. It reuses the JavaScript heuristics
// by composition and layers type-annotation coverage on top.
type tsAnalyzer struct {
	base *regexAnalyzer
}

// newTypeScriptAnalyzer builds the TypeScript variant.
func newTypeScriptAnalyzer() Analyzer {
	return &tsAnalyzer{base: newJavaScriptAnalyzer()}
}

// Language returns the variant's language name.
func (a *tsAnalyzer) Language() string {
	return "typescript"
}

// Extensions returns the variant's extension set.
func (a *tsAnalyzer) Extensions() []string {
	return []string{".ts", ".tsx"}
}

// AnalyzeFile extracts the JavaScript metrics and folds type-annotation
// coverage into the documentation and security categories.
func (a *tsAnalyzer) AnalyzeFile(path, content string) (metrics.CategoryMetrics, error) {
	if !MatchesExtension(a, path) {
		return nil, ErrUnsupportedFile
	}

	out := a.base.analyzeContent(path, content)
	coverage := typeCoverage(content)

	out[metrics.CategoryDocumentacion]["cobertura_tipos"] = coverage

	if coverage > typedBonusThreshold {
		out[metrics.CategoryDocumentacion]["cobertura"] = metrics.Clamp01(
			out[metrics.CategoryDocumentacion]["cobertura"] + typedDocBonus)
	}

	out[metrics.CategorySeguridad]["validacion"] = metrics.Clamp01(
		out[metrics.CategorySeguridad]["validacion"] + coverage*typedValidationWeight)

	return out, nil
}

// typeCoverage estimates the share of annotatable positions carrying a type
// annotation. Explicit any annotations count against coverage.
func typeCoverage(content string) float64 {
	annotatable := len(tsAnnotatablePattern.FindAllStringIndex(content, -1))
	if annotatable == 0 {
		return 0
	}

	annotated := len(tsAnnotationPattern.FindAllStringIndex(content, -1))
	annotated += len(tsInterfacePattern.FindAllStringIndex(content, -1))
	annotated -= len(tsAnyPattern.FindAllStringIndex(content, -1))

	if annotated < 0 {
		annotated = 0
	}

	return metrics.Clamp01(float64(annotated) / float64(annotatable))
}
