package comments

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtract_LineComments verifies line comment counting and ratio.
func TestExtract_LineComments(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.go": "// package doc\nfunc main() {}\n// trailing note\n",
	}

	report := NewExtractor().Extract(files)

	assert.Equal(t, 2, report.LineasComentario)
	assert.Positive(t, report.RatioComentarios)
}

// TestExtract_BlockComments verifies multi-line block tracking.
func TestExtract_BlockComments(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"doc.py": "\"\"\"\nmodule docstring\nspanning lines\n\"\"\"\nx = 1\n",
	}

	report := NewExtractor().Extract(files)

	assert.Equal(t, 4, report.LineasComentario)
}

// TestExtract_Markers verifies TODO/FIXME extraction with location and text.
func TestExtract_Markers(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"work.js": "// TODO: wire retries\nlet x = 1;\n// FIXME broken on empty input\n// hack: skip validation\n",
	}

	report := NewExtractor().Extract(files)

	assert.Equal(t, 1, report.Marcadores["todo"])
	assert.Equal(t, 1, report.Marcadores["fixme"])
	assert.Equal(t, 1, report.Marcadores["hack"])
	require.Len(t, report.DetalleMarcadores, 3)
	assert.Equal(t, "wire retries", report.DetalleMarcadores[0].Texto)
	assert.Equal(t, 1, report.DetalleMarcadores[0].Line)
}

// TestExtract_DocCoverage verifies documented declarations are recognized.
func TestExtract_DocCoverage(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"svc.go": "// Process handles one batch.\nfunc Process() {}\n\nfunc helper() {}\n",
	}

	report := NewExtractor().Extract(files)

	assert.InDelta(t, 0.5, report.CoberturaDocumental, 0.001)
}

// TestExtract_NoComments verifies a comment-free file yields zeros, not an
// error.
func TestExtract_NoComments(t *testing.T) {
	t.Parallel()

	report := NewExtractor().Extract(map[string]string{"bare.go": "func run() {}\n"})

	assert.Zero(t, report.LineasComentario)
	assert.Zero(t, report.RatioComentarios)
	assert.Empty(t, report.Error)
}

// TestExtract_EmptyInput verifies the empty map degenerates cleanly.
func TestExtract_EmptyInput(t *testing.T) {
	t.Parallel()

	report := NewExtractor().Extract(map[string]string{})

	assert.Zero(t, report.TotalLineas)
	assert.Zero(t, report.Score)
}

// TestScore_MarkersLowerScore verifies markers are charged against the score.
func TestScore_MarkersLowerScore(t *testing.T) {
	t.Parallel()

	clean := map[string]string{
		"clean.go": "// Process handles one batch.\nfunc Process() {}\n",
	}
	marked := map[string]string{
		"marked.go": "// TODO: Process handles one batch.\nfunc Process() {}\n",
	}

	cleanReport := NewExtractor().Extract(clean)
	markedReport := NewExtractor().Extract(marked)

	assert.Greater(t, cleanReport.Score, markedReport.Score)
}
