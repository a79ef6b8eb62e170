package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/empatia-tech/empatia/internal/metrics"
)

const typedSource = `interface Invoice {
  total: number;
  customer: string;
}

function formatInvoice(invoice: Invoice): string {
  const header: string = invoice.customer;
  const amount: number = invoice.total;
  return header + ": " + amount;
}
`

const untypedSource = `function formatInvoice(invoice) {
  const header = invoice.customer;
  const amount = invoice.total;
  return header + ": " + amount;
}
`

func TestTypeScriptAnalyzerReportsTypeCoverage(t *testing.T) {
	t.Parallel()

	analyzer := newTypeScriptAnalyzer()

	typed, err := analyzer.AnalyzeFile("invoice.ts", typedSource)
	require.NoError(t, err)

	untyped, err := analyzer.AnalyzeFile("invoice.ts", untypedSource)
	require.NoError(t, err)

	assert.Greater(t,
		typed[metrics.CategoryDocumentacion]["cobertura_tipos"],
		untyped[metrics.CategoryDocumentacion]["cobertura_tipos"])
}

func TestTypeScriptAnalyzerStaysWithinKnownCategories(t *testing.T) {
	t.Parallel()

	analyzer := newTypeScriptAnalyzer()

	result, err := analyzer.AnalyzeFile("invoice.ts", typedSource)
	require.NoError(t, err)

	known := make(map[metrics.Category]bool)
	for _, category := range metrics.Categories() {
		known[category] = true
	}

	for category := range result {
		assert.True(t, known[category], "unexpected category %q", category)
	}
}

func TestTypeScriptAnalyzerThoroughTypingEarnsDocBonus(t *testing.T) {
	t.Parallel()

	analyzer := newTypeScriptAnalyzer()

	typed, err := analyzer.AnalyzeFile("invoice.ts", typedSource)
	require.NoError(t, err)

	untyped, err := analyzer.AnalyzeFile("invoice.ts", untypedSource)
	require.NoError(t, err)

	assert.GreaterOrEqual(t,
		typed[metrics.CategoryDocumentacion]["cobertura"],
		untyped[metrics.CategoryDocumentacion]["cobertura"])
	assert.LessOrEqual(t, typed[metrics.CategoryDocumentacion]["cobertura"], 1.0)
}

func TestTypeScriptAnalyzerTypingEarnsValidationCredit(t *testing.T) {
	t.Parallel()

	typedRisky := "function run(command: string): void {\n  eval(command);\n}\n"
	untypedRisky := "function run(command) {\n  eval(command);\n}\n"

	analyzer := newTypeScriptAnalyzer()

	typed, err := analyzer.AnalyzeFile("run.ts", typedRisky)
	require.NoError(t, err)

	untyped, err := analyzer.AnalyzeFile("run.ts", untypedRisky)
	require.NoError(t, err)

	assert.Greater(t,
		typed[metrics.CategorySeguridad]["validacion"],
		untyped[metrics.CategorySeguridad]["validacion"])
}

func TestTypeScriptAnalyzerRejectsJavaScriptFiles(t *testing.T) {
	t.Parallel()

	analyzer := newTypeScriptAnalyzer()

	_, err := analyzer.AnalyzeFile("invoice.js", untypedSource)
	require.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestTypeCoverageAnyPenalty(t *testing.T) {
	t.Parallel()

	clean := "const total: number = 3;\n"
	sloppy := "const total: any = 3;\n"

	assert.Greater(t, typeCoverage(clean), typeCoverage(sloppy))
}
