package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/empatia-tech/empatia/internal/metrics"
)

// radarMax is the indicator ceiling, category percentages top out at 100.
const radarMax = 100

// HTMLExporter renders an interactive dashboard: a radar of the eight
// categories and a bar chart of per-language empathy.
type HTMLExporter struct{}

// NewHTMLExporter builds the HTML renderer.
func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// Format returns the format name.
func (e *HTMLExporter) Format() string {
	return FormatHTML
}

// Export renders the dashboard page.
func (e *HTMLExporter) Export(report *Report, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "empatia"

	page.AddCharts(e.buildRadar(report))

	if bar := e.buildLanguageBar(report); bar != nil {
		page.AddCharts(bar)
	}

	err := page.Render(w)
	if err != nil {
		return fmt.Errorf("rendering dashboard: %w", err)
	}

	return nil
}

// buildRadar plots the eight category percentages for both repositories.
func (e *HTMLExporter) buildRadar(report *Report) *charts.Radar {
	radar := charts.NewRadar()

	indicators := make([]*opts.Indicator, 0, len(metrics.Categories()))
	for _, category := range metrics.Categories() {
		indicators = append(indicators, &opts.Indicator{
			Name: string(category),
			Max:  radarMax,
		})
	}

	radar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Empatía por categoría"}),
		charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}),
	)

	radar.AddSeries("empresa", []opts.RadarData{
		{Name: "empresa", Value: categoryPercentages(report.AnalisisEmpresa)},
	})

	if report.AnalisisCandidato != nil {
		radar.AddSeries("candidato", []opts.RadarData{
			{Name: "candidato", Value: categoryPercentages(report.AnalisisCandidato)},
		})
	}

	return radar
}

// buildLanguageBar plots per-language empathy scores. Nil when the report
// carries no language data.
func (e *HTMLExporter) buildLanguageBar(report *Report) *charts.Bar {
	languages := languageUnion(report.AnalisisEmpresa, report.AnalisisCandidato)
	if len(languages) == 0 {
		return nil
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Empatía por lenguaje"}),
	)
	bar.SetXAxis(languages)
	bar.AddSeries("empresa", languageScores(report.AnalisisEmpresa, languages))

	if report.AnalisisCandidato != nil {
		bar.AddSeries("candidato", languageScores(report.AnalisisCandidato, languages))
	}

	return bar
}

// categoryPercentages extracts the eight category percentages in canonical
// order, file-count weighted across languages.
func categoryPercentages(analysis *metrics.ProjectAnalysis) []float64 {
	values := make([]float64, 0, len(metrics.Categories()))

	for _, category := range metrics.Categories() {
		var weighted, files float64

		if analysis != nil {
			for _, result := range analysis.Languages {
				weighted += metrics.CategoryAverage(result.Metrics[category]) *
					float64(result.Summary.TotalFiles)
				files += float64(result.Summary.TotalFiles)
			}
		}

		values = append(values, metrics.SafeDiv(weighted, files)*radarMax)
	}

	return values
}

// languageUnion collects the sorted union of both projects' languages.
func languageUnion(analyses ...*metrics.ProjectAnalysis) []string {
	seen := make(map[string]bool)

	for _, analysis := range analyses {
		if analysis == nil {
			continue
		}

		for language := range analysis.Languages {
			seen[language] = true
		}
	}

	languages := make([]string, 0, len(seen))
	for language := range seen {
		languages = append(languages, language)
	}

	sort.Strings(languages)

	return languages
}

// languageScores builds one bar series, zero for languages the project
// does not have.
func languageScores(analysis *metrics.ProjectAnalysis, languages []string) []opts.BarData {
	data := make([]opts.BarData, 0, len(languages))

	for _, language := range languages {
		score := 0.0

		if analysis != nil {
			if result, ok := analysis.Languages[language]; ok {
				score = result.Summary.EmpathyScore * radarMax
			}
		}

		data = append(data, opts.BarData{Value: score})
	}

	return data
}
