package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeProjectGroupsByLanguage(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"app/main.py":   plainPythonSource,
		"app/helper.py": documentedPythonSource,
		"web/index.js":  "function renderPage() {\n  return 'hola';\n}\n",
	}

	analysis := NewProjectAnalyzer(nil, nil).AnalyzeProject(files)

	require.Len(t, analysis.Languages, 2)
	assert.Contains(t, analysis.Languages, "python")
	assert.Contains(t, analysis.Languages, "javascript")
	assert.Equal(t, 2, analysis.Languages["python"].FileCount)
	assert.Equal(t, 1, analysis.Languages["javascript"].FileCount)
}

func TestAnalyzeProjectOmitsEmptyLanguages(t *testing.T) {
	t.Parallel()

	files := map[string]string{"app/main.py": plainPythonSource}

	analysis := NewProjectAnalyzer(nil, nil).AnalyzeProject(files)

	require.Len(t, analysis.Languages, 1)
	assert.NotContains(t, analysis.Languages, "javascript")
}

func TestAnalyzeProjectEmptyInput(t *testing.T) {
	t.Parallel()

	analysis := NewProjectAnalyzer(nil, nil).AnalyzeProject(nil)

	assert.Empty(t, analysis.Languages)
	assert.Zero(t, analysis.TotalMetrics.TotalFiles)
	assert.Zero(t, analysis.TotalMetrics.OverallEmpathyScore)
	assert.Empty(t, analysis.PrimaryLanguage)
}

func TestAnalyzeProjectPrimaryLanguage(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.py": plainPythonSource,
		"b.py": documentedPythonSource,
		"c.js": "const greeting = 'hola';\n",
	}

	analysis := NewProjectAnalyzer(nil, nil).AnalyzeProject(files)

	assert.Equal(t, "python", analysis.PrimaryLanguage)
}

func TestAnalyzeProjectPrimaryLanguageTieBreak(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.py": plainPythonSource,
		"b.js": "function greet() {\n  return 'hola';\n}\n",
	}

	analysis := NewProjectAnalyzer(nil, nil).AnalyzeProject(files)

	assert.Equal(t, "javascript", analysis.PrimaryLanguage)
}

func TestAnalyzeProjectTotals(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"a.py": plainPythonSource,
		"b.js": "function greet() {\n  return 'hola';\n}\n",
	}

	analysis := NewProjectAnalyzer(nil, nil).AnalyzeProject(files)

	assert.Equal(t, 2, analysis.TotalMetrics.TotalFiles)
	assert.Equal(t, []string{"javascript", "python"}, analysis.TotalMetrics.LanguagesAnalyzed)
	assert.GreaterOrEqual(t, analysis.TotalMetrics.OverallEmpathyScore, 0.0)
	assert.LessOrEqual(t, analysis.TotalMetrics.OverallEmpathyScore, 1.0)
}

func TestAnalyzeProjectAttachesDetectorReports(t *testing.T) {
	t.Parallel()

	files := map[string]string{"a.py": plainPythonSource}

	analysis := NewProjectAnalyzer(nil, nil).AnalyzeProject(files)

	python := analysis.Languages["python"]
	require.NotNil(t, python)
	assert.NotNil(t, python.Duplication)
	assert.NotNil(t, python.Dependencies)
	assert.NotNil(t, python.Patterns)
	assert.NotNil(t, python.Performance)
	assert.NotNil(t, python.Comments)
}
