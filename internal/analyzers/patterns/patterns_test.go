package patterns

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDetect_PositivePatterns verifies catalog hits raise the score.
func TestDetect_PositivePatterns(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"factory.py": "class ConnectionFactory:\n    def createConnection(self):\n        pass\n",
	}

	report := NewDetector().Detect(files)

	assert.Positive(t, report.PatronesDetectados["factory"])
	assert.Greater(t, report.Score, neutralScore)
}

// TestDetect_AntiPatterns verifies anti-patterns lower the score.
func TestDetect_AntiPatterns(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"bad.py": "try:\n    risky()\nexcept Exception:\n    pass\ntimeout = 86400\n",
	}

	report := NewDetector().Detect(files)

	assert.Positive(t, report.AntipatronesDetectados["empty_catch"])
	assert.Positive(t, report.AntipatronesDetectados["magic_numbers"])
	assert.Less(t, report.Score, neutralScore)
}

// TestDetect_NoMatches verifies the neutral baseline for clean input.
func TestDetect_NoMatches(t *testing.T) {
	t.Parallel()

	report := NewDetector().Detect(map[string]string{"plain.txt": "hello world"})

	assert.Empty(t, report.Detalles)
	assert.InDelta(t, neutralScore, report.Score, 0.001)
}

// TestDetect_GodClass verifies the structural method-count check.
func TestDetect_GodClass(t *testing.T) {
	t.Parallel()

	var sb strings.Builder

	sb.WriteString("class Everything:\n")

	for i := 0; i < godClassMethods; i++ {
		sb.WriteString("    def method_")
		sb.WriteByte(byte('a' + i))
		sb.WriteString("(self):\n        pass\n")
	}

	report := NewDetector().Detect(map[string]string{"god.py": sb.String()})

	assert.Equal(t, 1, report.AntipatronesDetectados["god_class"])
}

// TestDetect_ScoreBounds verifies the score never leaves [0,100].
func TestDetect_ScoreBounds(t *testing.T) {
	t.Parallel()

	heavy := strings.Repeat("x = 98765\n", 50)
	report := NewDetector().Detect(map[string]string{"heavy.py": heavy})

	assert.GreaterOrEqual(t, report.Score, minScore)
	assert.LessOrEqual(t, report.Score, maxScore)
}

// TestDetect_MatchLocations verifies file and line are recorded.
func TestDetect_MatchLocations(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"single.py": "x = 1\ninstance = Config.getInstance()\n",
	}

	report := NewDetector().Detect(files)

	require.NotEmpty(t, report.Detalles)
	assert.Equal(t, "singleton", report.Detalles[0].Name)
	assert.Equal(t, "single.py", report.Detalles[0].FilePath)
	assert.Equal(t, 2, report.Detalles[0].Line)
}
