package export

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var reportSchema string

// ErrSchemaViolation is returned when a rendered report fails validation
// against the embedded schema.
var ErrSchemaViolation = errors.New("report violates schema")

// JSONExporter renders the machine-readable report. Output is validated
// against the embedded schema so contract drift fails loudly.
type JSONExporter struct {
	validate bool
}

// NewJSONExporter builds the JSON renderer with validation enabled.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{validate: true}
}

// Format returns the format name.
func (e *JSONExporter) Format() string {
	return FormatJSON
}

// Export marshals the report, validates it, and writes it out.
func (e *JSONExporter) Export(report *Report, w io.Writer) error {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	if e.validate {
		err = validateAgainstSchema(payload)
		if err != nil {
			return err
		}
	}

	_, err = w.Write(append(payload, '\n'))
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	return nil
}

// validateAgainstSchema checks a rendered payload against the embedded
// report schema.
func validateAgainstSchema(payload []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(reportSchema)
	documentLoader := gojsonschema.NewBytesLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("running schema validation: %w", err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, violation := range result.Errors() {
		details = append(details, violation.String())
	}

	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(details, "; "))
}
