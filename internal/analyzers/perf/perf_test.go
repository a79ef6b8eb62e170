package perf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDetect_NestedLoop verifies indentation-based nested loop detection.
func TestDetect_NestedLoop(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"quad.py": "for i in items:\n    for j in items:\n        compare(i, j)\n",
	}

	report := NewDetector().Detect(files)

	require.Equal(t, 1, report.ProblemasDetectados["nested_loop"])
	assert.Equal(t, 2, report.Detalles[0].Line)
	assert.Less(t, report.Score, maxScore)
}

// TestDetect_StringConcatInLoop verifies the concat-in-loop smell.
func TestDetect_StringConcatInLoop(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"concat.py": "for name in names:\n    result += \", \" + name\n",
	}

	report := NewDetector().Detect(files)

	assert.Positive(t, report.ProblemasDetectados["string_concat_in_loop"])
}

// TestDetect_SelectStar verifies query smells are found in any language.
func TestDetect_SelectStar(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"repo.go": "query := \"SELECT * FROM users\"\n",
	}

	report := NewDetector().Detect(files)

	assert.Equal(t, 1, report.ProblemasDetectados["select_star"])
}

// TestDetect_CleanFile verifies a smell-free file keeps the full score.
func TestDetect_CleanFile(t *testing.T) {
	t.Parallel()

	report := NewDetector().Detect(map[string]string{"ok.go": "x := compute()\n"})

	assert.Empty(t, report.Detalles)
	assert.InDelta(t, maxScore, report.Score, 0.001)
}

// TestDetect_ScoreFloor verifies the score never goes below zero.
func TestDetect_ScoreFloor(t *testing.T) {
	t.Parallel()

	smelly := ""
	for i := 0; i < 30; i++ {
		smelly += "q = \"select * from t\"\n"
	}

	report := NewDetector().Detect(map[string]string{"bad.sql.py": smelly})

	assert.Equal(t, minScore, report.Score)
}
