// Package empathy compares two analyzed projects, a reference (empresa) and
// a candidate (candidato), category by category.
package empathy

import (
	"math"

	"github.com/empatia-tech/empatia/internal/metrics"
)

// Percentage scale and interpretation thresholds.
const (
	percentScale = 100.0
	// weaknessThreshold is the candidate percentage below which a category
	// is flagged as a weakness.
	weaknessThreshold = 60.0
	// strengthMargin is how many points above the reference a candidate
	// category must sit to count as a strength.
	strengthMargin = 5.0

	excellentThreshold = 90.0
	veryGoodThreshold  = 75.0
	goodThreshold      = 60.0
	regularThreshold   = 40.0
)

// CategoryComparison holds one category's side-by-side percentages.
type CategoryComparison struct {
	Categoria string  `json:"categoria"`
	Empresa   float64 `json:"empresa"`
	Candidato float64 `json:"candidato"`
	Brecha    float64 `json:"brecha"`
	Debilidad bool    `json:"debilidad"`
}

// Comparison is the full two-project comparison payload.
type Comparison struct {
	Empresa        metrics.RepoInfo     `json:"empresa"`
	Candidato      metrics.RepoInfo     `json:"candidato"`
	Categorias     []CategoryComparison `json:"categorias"`
	Debilidades    []string             `json:"debilidades"`
	Fortalezas     []string             `json:"fortalezas"`
	Alineacion     float64              `json:"alineacion"`
	Interpretacion string               `json:"interpretacion"`
}

// Compare builds the category-by-category comparison of two analyses. The
// category order follows the canonical category list, so output is stable.
func Compare(reference, candidate *metrics.ProjectAnalysis) *Comparison {
	comparison := &Comparison{
		Categorias: make([]CategoryComparison, 0, len(metrics.Categories())),
	}

	weights := metrics.Weights()

	var alignment float64

	for _, category := range metrics.Categories() {
		empresa := projectCategoryPercent(reference, category)
		candidato := projectCategoryPercent(candidate, category)

		entry := CategoryComparison{
			Categoria: string(category),
			Empresa:   empresa,
			Candidato: candidato,
			Brecha:    round2(empresa - candidato),
			Debilidad: candidato < weaknessThreshold,
		}

		comparison.Categorias = append(comparison.Categorias, entry)
		alignment += weights[category] * categoryAlignment(empresa, candidato)

		if entry.Debilidad {
			comparison.Debilidades = append(comparison.Debilidades, entry.Categoria)
		}

		if candidato >= empresa+strengthMargin {
			comparison.Fortalezas = append(comparison.Fortalezas, entry.Categoria)
		}
	}

	comparison.Alineacion = round2(alignment)
	comparison.Interpretacion = Interpret(comparison.Alineacion)

	return comparison
}

// projectCategoryPercent averages one category across a project's languages,
// weighted by file count, on a 0-100 scale. A nil or empty analysis scores 0.
func projectCategoryPercent(analysis *metrics.ProjectAnalysis, category metrics.Category) float64 {
	if analysis == nil {
		return 0
	}

	var weighted, totalFiles float64

	for _, result := range analysis.Languages {
		files := float64(result.Summary.TotalFiles)

		weighted += metrics.CategoryAverage(result.Metrics[category]) * files
		totalFiles += files
	}

	return round2(metrics.SafeDiv(weighted, totalFiles) * percentScale)
}

// categoryAlignment measures how closely the candidate matches the reference
// in one category, on a 0-100 scale. Exceeding the reference is not penalized.
func categoryAlignment(empresa, candidato float64) float64 {
	if empresa == 0 {
		return percentScale
	}

	if candidato >= empresa {
		return percentScale
	}

	return candidato / empresa * percentScale
}

// Interpret maps an alignment percentage to its Spanish band.
func Interpret(alignment float64) string {
	switch {
	case alignment >= excellentThreshold:
		return "excelente"
	case alignment >= veryGoodThreshold:
		return "muy bueno"
	case alignment >= goodThreshold:
		return "bueno"
	case alignment >= regularThreshold:
		return "regular"
	default:
		return "bajo"
	}
}

// round2 rounds to two decimals for stable report output.
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
