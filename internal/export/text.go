package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/empatia-tech/empatia/internal/empathy"
	"github.com/empatia-tech/empatia/internal/metrics"
)

// percentFactor converts unit-interval scores for display.
const percentFactor = 100

// Alignment thresholds for the verdict color.
const (
	verdictGoodThreshold = 75.0
	verdictWarnThreshold = 40.0
)

// TextExporter renders a human-readable console report.
type TextExporter struct{}

// NewTextExporter builds the text renderer.
func NewTextExporter() *TextExporter {
	return &TextExporter{}
}

// Format returns the format name.
func (e *TextExporter) Format() string {
	return FormatText
}

// Export renders the report as tables with a colored verdict line.
func (e *TextExporter) Export(report *Report, w io.Writer) error {
	e.writeRepoHeader(w, "Empresa", report.Empresa)

	if report.Candidato != nil {
		e.writeRepoHeader(w, "Candidato", *report.Candidato)
	}

	e.writeProjectSection(w, "Empresa", report.AnalisisEmpresa)

	if report.AnalisisCandidato != nil {
		e.writeProjectSection(w, "Candidato", report.AnalisisCandidato)
	}

	if report.Comparacion != nil {
		e.writeComparison(w, report.Comparacion)
	}

	return nil
}

// writeRepoHeader prints repository metadata.
func (e *TextExporter) writeRepoHeader(w io.Writer, label string, info metrics.RepoInfo) {
	if info.Name == "" {
		return
	}

	fmt.Fprintf(w, "%s: %s (%s)\n", label, info.Name, info.URL)

	if info.Description != "" {
		fmt.Fprintf(w, "  %s\n", info.Description)
	}

	fmt.Fprintf(w, "  lenguaje principal: %s, tamaño: %s\n\n",
		info.PrimaryLanguage, humanize.Bytes(uint64(info.SizeKB)*1024))
}

// writeProjectSection prints the per-language summary table.
func (e *TextExporter) writeProjectSection(w io.Writer, label string, analysis *metrics.ProjectAnalysis) {
	if analysis == nil || len(analysis.Languages) == 0 {
		return
	}

	fmt.Fprintf(w, "Análisis %s\n", label)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Lenguaje", "Archivos", "Líneas", "Empatía %"})

	languages := make([]string, 0, len(analysis.Languages))
	for language := range analysis.Languages {
		languages = append(languages, language)
	}

	sort.Strings(languages)

	for _, language := range languages {
		summary := analysis.Languages[language].Summary

		tbl.AppendRow(table.Row{
			language,
			humanize.Comma(int64(summary.TotalFiles)),
			humanize.Comma(int64(summary.TotalLines)),
			fmt.Sprintf("%.1f", summary.EmpathyScore*percentFactor),
		})
	}

	tbl.AppendFooter(table.Row{
		"total",
		humanize.Comma(int64(analysis.TotalMetrics.TotalFiles)),
		humanize.Comma(int64(analysis.TotalMetrics.TotalLines)),
		fmt.Sprintf("%.1f", analysis.TotalMetrics.OverallEmpathyScore*percentFactor),
	})
	tbl.Render()

	if analysis.PrimaryLanguage != "" {
		fmt.Fprintf(w, "lenguaje principal: %s\n", analysis.PrimaryLanguage)
	}

	fmt.Fprintln(w)
}

// writeComparison prints the category table and the colored verdict.
func (e *TextExporter) writeComparison(w io.Writer, comparison *empathy.Comparison) {
	fmt.Fprintln(w, "Comparación por categoría")

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Categoría", "Empresa %", "Candidato %", "Brecha", "Debilidad"})

	for _, entry := range comparison.Categorias {
		weakness := ""
		if entry.Debilidad {
			weakness = "sí"
		}

		tbl.AppendRow(table.Row{
			entry.Categoria,
			fmt.Sprintf("%.1f", entry.Empresa),
			fmt.Sprintf("%.1f", entry.Candidato),
			fmt.Sprintf("%+.1f", -entry.Brecha),
			weakness,
		})
	}

	tbl.Render()

	if len(comparison.Debilidades) > 0 {
		fmt.Fprintf(w, "debilidades: %s\n", strings.Join(comparison.Debilidades, ", "))
	}

	if len(comparison.Fortalezas) > 0 {
		fmt.Fprintf(w, "fortalezas: %s\n", strings.Join(comparison.Fortalezas, ", "))
	}

	verdict := verdictColor(comparison.Alineacion)
	fmt.Fprintf(w, "alineación: %s (%s)\n",
		verdict.Sprintf("%.1f%%", comparison.Alineacion),
		comparison.Interpretacion)
}

// verdictColor picks the color for the alignment verdict.
func verdictColor(alignment float64) *color.Color {
	switch {
	case alignment >= verdictGoodThreshold:
		return color.New(color.FgGreen)
	case alignment >= verdictWarnThreshold:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
