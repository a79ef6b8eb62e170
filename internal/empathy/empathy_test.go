package empathy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empatia-tech/empatia/internal/metrics"
)

// analysisWith builds a single-language analysis whose categories all carry
// one leaf at the given level, with the listed overrides.
func analysisWith(level float64, overrides map[metrics.Category]float64) *metrics.ProjectAnalysis {
	cm := metrics.NewCategoryMetrics()

	for _, category := range metrics.Categories() {
		value := level
		if override, ok := overrides[category]; ok {
			value = override
		}

		cm[category]["puntaje"] = value
	}

	return &metrics.ProjectAnalysis{
		Languages: map[string]*metrics.LanguageResult{
			"python": {
				Metrics: cm,
				Summary: metrics.LanguageSummary{
					Language:   "python",
					TotalFiles: 10,
					Metrics:    cm,
				},
			},
		},
	}
}

func TestCompareFlagsCandidateWeaknesses(t *testing.T) {
	t.Parallel()

	reference := analysisWith(0.8, map[metrics.Category]float64{
		metrics.CategoryDocumentacion: 0.9,
	})
	candidate := analysisWith(0.8, map[metrics.Category]float64{
		metrics.CategoryDocumentacion: 0.3,
		metrics.CategoryPruebas:       0.2,
	})

	comparison := Compare(reference, candidate)

	assert.Contains(t, comparison.Debilidades, "documentacion")
	assert.Contains(t, comparison.Debilidades, "pruebas")
	assert.NotContains(t, comparison.Debilidades, "nombres")

	var doc CategoryComparison

	for _, entry := range comparison.Categorias {
		if entry.Categoria == "documentacion" {
			doc = entry
		}
	}

	assert.InDelta(t, 90.0, doc.Empresa, 0.01)
	assert.InDelta(t, 30.0, doc.Candidato, 0.01)
	assert.InDelta(t, 60.0, doc.Brecha, 0.01)
	assert.True(t, doc.Debilidad)
	assert.Less(t, comparison.Alineacion, 100.0)
}

func TestCompareIdenticalProjectsAlignFully(t *testing.T) {
	t.Parallel()

	reference := analysisWith(0.7, nil)
	candidate := analysisWith(0.7, nil)

	comparison := Compare(reference, candidate)

	assert.InDelta(t, 100.0, comparison.Alineacion, 0.01)
	assert.Equal(t, "excelente", comparison.Interpretacion)
	assert.Empty(t, comparison.Debilidades)
}

func TestCompareCandidateExceedingReferenceNotPenalized(t *testing.T) {
	t.Parallel()

	reference := analysisWith(0.7, nil)
	candidate := analysisWith(0.95, nil)

	comparison := Compare(reference, candidate)

	assert.InDelta(t, 100.0, comparison.Alineacion, 0.01)
	assert.Len(t, comparison.Fortalezas, len(metrics.Categories()))
}

func TestCompareCategoryOrderStable(t *testing.T) {
	t.Parallel()

	comparison := Compare(analysisWith(0.5, nil), analysisWith(0.5, nil))

	require.Len(t, comparison.Categorias, len(metrics.Categories()))

	for i, category := range metrics.Categories() {
		assert.Equal(t, string(category), comparison.Categorias[i].Categoria)
	}
}

func TestCompareEmptyAnalyses(t *testing.T) {
	t.Parallel()

	comparison := Compare(nil, nil)

	require.Len(t, comparison.Categorias, len(metrics.Categories()))
	assert.InDelta(t, 100.0, comparison.Alineacion, 0.01)

	for _, entry := range comparison.Categorias {
		assert.Zero(t, entry.Empresa)
		assert.Zero(t, entry.Candidato)
		assert.True(t, entry.Debilidad)
	}
}

func TestInterpretBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		alignment float64
		want      string
	}{
		{95, "excelente"},
		{90, "excelente"},
		{80, "muy bueno"},
		{65, "bueno"},
		{45, "regular"},
		{10, "bajo"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Interpret(tt.alignment), "alignment %.0f", tt.alignment)
	}
}
