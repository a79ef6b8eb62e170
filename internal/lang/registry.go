package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"
)

// ErrUnknownLanguage is returned when registry lookup fails.
var ErrUnknownLanguage = errors.New("unknown language")

// ErrDuplicateLanguage is returned when registry receives duplicate names.
var ErrDuplicateLanguage = errors.New("duplicate language")

// Registry maps language names and file extensions to analyzers with
// deterministic ordering.
type Registry struct {
	ordered     []string
	index       map[string]Analyzer
	byExtension map[string]Analyzer
	enryNames   map[string]string
}

// NewRegistry creates a registry holding the built-in analyzers.
func NewRegistry() *Registry {
	registry := &Registry{
		index:       make(map[string]Analyzer),
		byExtension: make(map[string]Analyzer),
		enryNames: map[string]string{
			"python":     "python",
			"javascript": "javascript",
			"typescript": "typescript",
			"java":       "java",
			"go":         "go",
			"c#":         "csharp",
			"c++":        "cpp",
			"php":        "php",
			"ruby":       "ruby",
			"swift":      "swift",
			"html":       "html",
			"css":        "css",
		},
	}

	for _, analyzer := range []Analyzer{
		newPythonAnalyzer(),
		newJavaScriptAnalyzer(),
		newTypeScriptAnalyzer(),
		newJavaAnalyzer(),
		newGoAnalyzer(),
		newCSharpAnalyzer(),
		newCppAnalyzer(),
		newPHPAnalyzer(),
		newRubyAnalyzer(),
		newSwiftAnalyzer(),
		newHTMLAnalyzer(),
		newCSSAnalyzer(),
	} {
		// Built-ins carry unique names, registration cannot fail.
		_ = registry.Register(analyzer)
	}

	return registry
}

// Register adds an analyzer for its language and extensions. Later
// registrations take over extensions already claimed by earlier ones.
func (r *Registry) Register(analyzer Analyzer) error {
	name := strings.ToLower(analyzer.Language())
	if _, exists := r.index[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateLanguage, name)
	}

	r.index[name] = analyzer
	r.ordered = append(r.ordered, name)

	for _, ext := range analyzer.Extensions() {
		r.byExtension[strings.ToLower(ext)] = analyzer
	}

	return nil
}

// Analyzer returns the analyzer registered under the given language name.
func (r *Registry) Analyzer(language string) (Analyzer, bool) {
	analyzer, ok := r.index[strings.ToLower(language)]

	return analyzer, ok
}

// AnalyzerForFile resolves the analyzer for a file, first by extension and
// then by content-based language detection. Unresolvable files report
// absence, not an error.
func (r *Registry) AnalyzerForFile(path string, content []byte) (Analyzer, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if analyzer, ok := r.byExtension[ext]; ok {
		return analyzer, true
	}

	detected := enry.GetLanguage(filepath.Base(path), content)
	if detected == "" {
		return nil, false
	}

	name, ok := r.enryNames[strings.ToLower(detected)]
	if !ok {
		return nil, false
	}

	analyzer, ok := r.index[name]

	return analyzer, ok
}

// Languages returns the registered language names sorted alphabetically.
func (r *Registry) Languages() []string {
	languages := make([]string, len(r.ordered))
	copy(languages, r.ordered)
	sort.Strings(languages)

	return languages
}

// Extensions returns all registered extensions sorted alphabetically.
func (r *Registry) Extensions() []string {
	extensions := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		extensions = append(extensions, ext)
	}

	sort.Strings(extensions)

	return extensions
}
