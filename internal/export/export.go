// Package export renders analysis reports in text, JSON, YAML and HTML.
package export

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/empatia-tech/empatia/internal/empathy"
	"github.com/empatia-tech/empatia/internal/metrics"
)

// Supported output formats.
const (
	FormatText = "txt"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// ErrUnknownFormat is returned for an unrecognized format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Report bundles everything the renderers consume. Candidato and
// Comparacion are nil for single-project reports.
type Report struct {
	Empresa           metrics.RepoInfo         `json:"empresa" yaml:"empresa"`
	Candidato         *metrics.RepoInfo        `json:"candidato,omitempty" yaml:"candidato,omitempty"`
	AnalisisEmpresa   *metrics.ProjectAnalysis `json:"analisis_empresa" yaml:"analisis_empresa"`
	AnalisisCandidato *metrics.ProjectAnalysis `json:"analisis_candidato,omitempty" yaml:"analisis_candidato,omitempty"`
	Comparacion       *empathy.Comparison      `json:"comparacion,omitempty" yaml:"comparacion,omitempty"`
	GeneradoEn        time.Time                `json:"generado_en" yaml:"generado_en"`
}

// Exporter renders a report to a writer.
type Exporter interface {
	Format() string
	Export(report *Report, w io.Writer) error
}

// ForFormat returns the exporter for a format name.
func ForFormat(format string) (Exporter, error) {
	switch format {
	case FormatText, "":
		return NewTextExporter(), nil
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatYAML:
		return NewYAMLExporter(), nil
	case FormatHTML:
		return NewHTMLExporter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatHTML}
}
