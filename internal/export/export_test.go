package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/empatia-tech/empatia/internal/empathy"
	"github.com/empatia-tech/empatia/internal/metrics"
)

// sampleReport builds a two-project comparison report.
func sampleReport() *Report {
	empresa := sampleAnalysis(0.8)
	candidato := sampleAnalysis(0.5)

	return &Report{
		Empresa: metrics.RepoInfo{
			Name:            "empresa/backend",
			URL:             "https://github.com/empresa/backend",
			PrimaryLanguage: "Python",
			SizeKB:          2048,
		},
		Candidato: &metrics.RepoInfo{
			Name:            "candidato/app",
			URL:             "https://github.com/candidato/app",
			PrimaryLanguage: "Python",
			SizeKB:          512,
		},
		AnalisisEmpresa:   empresa,
		AnalisisCandidato: candidato,
		Comparacion:       empathy.Compare(empresa, candidato),
		GeneradoEn:        time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

// sampleAnalysis builds a one-language analysis with every category at the
// given level.
func sampleAnalysis(level float64) *metrics.ProjectAnalysis {
	cm := metrics.NewCategoryMetrics()
	for _, category := range metrics.Categories() {
		cm[category]["puntaje"] = level
	}

	score := metrics.EmpathyScore(cm)

	return &metrics.ProjectAnalysis{
		Languages: map[string]*metrics.LanguageResult{
			"python": {
				Metrics:   cm,
				FileCount: 4,
				Summary: metrics.LanguageSummary{
					Language:     "python",
					TotalFiles:   4,
					TotalLines:   200,
					Metrics:      cm,
					EmpathyScore: score,
				},
			},
		},
		TotalMetrics: metrics.TotalMetrics{
			TotalFiles:          4,
			TotalLines:          200,
			LanguagesAnalyzed:   []string{"python"},
			OverallEmpathyScore: score,
		},
		PrimaryLanguage: "python",
	}
}

func TestForFormat(t *testing.T) {
	t.Parallel()

	for _, format := range Formats() {
		exporter, err := ForFormat(format)
		require.NoError(t, err)
		assert.Equal(t, format, exporter.Format())
	}

	_, err := ForFormat("pdf")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestForFormatEmptyDefaultsToText(t *testing.T) {
	t.Parallel()

	exporter, err := ForFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, exporter.Format())
}

func TestTextExport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, NewTextExporter().Export(sampleReport(), &buf))

	output := buf.String()
	assert.Contains(t, output, "empresa/backend")
	assert.Contains(t, output, "candidato/app")
	assert.Contains(t, output, "python")
	assert.Contains(t, output, "Comparación por categoría")
	assert.Contains(t, output, "alineación")
}

func TestJSONExportValidates(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, NewJSONExporter().Export(sampleReport(), &buf))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "empresa")
	assert.Contains(t, decoded, "comparacion")
	assert.Contains(t, decoded, "analisis_empresa")
}

func TestJSONExportRejectsOutOfRangeScores(t *testing.T) {
	t.Parallel()

	report := sampleReport()
	report.AnalisisEmpresa.TotalMetrics.OverallEmpathyScore = 3.5

	var buf bytes.Buffer

	err := NewJSONExporter().Export(report, &buf)
	require.ErrorIs(t, err, ErrSchemaViolation)
}

func TestYAMLExportRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, NewYAMLExporter().Export(sampleReport(), &buf))

	var decoded map[string]any

	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "empresa")
	assert.Contains(t, decoded, "comparacion")
}

func TestHTMLExportRendersCharts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, NewHTMLExporter().Export(sampleReport(), &buf))

	output := buf.String()
	assert.True(t, strings.Contains(output, "Empatía por categoría"))
	assert.True(t, strings.Contains(output, "Empatía por lenguaje"))
}

func TestTextExportSingleProject(t *testing.T) {
	t.Parallel()

	report := &Report{
		Empresa:         metrics.RepoInfo{Name: "empresa/backend"},
		AnalisisEmpresa: sampleAnalysis(0.6),
		GeneradoEn:      time.Now(),
	}

	var buf bytes.Buffer

	require.NoError(t, NewTextExporter().Export(report, &buf))

	output := buf.String()
	assert.Contains(t, output, "empresa/backend")
	assert.NotContains(t, output, "Comparación")
}
