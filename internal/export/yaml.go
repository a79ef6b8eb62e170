package export

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlIndent is the indentation width for YAML output.
const yamlIndent = 2

// YAMLExporter renders the report as YAML.
type YAMLExporter struct{}

// NewYAMLExporter builds the YAML renderer.
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Format returns the format name.
func (e *YAMLExporter) Format() string {
	return FormatYAML
}

// Export encodes the report to the writer.
func (e *YAMLExporter) Export(report *Report, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	err := encoder.Encode(report)
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("flushing report: %w", err)
	}

	return nil
}
