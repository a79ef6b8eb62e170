// Package deps extracts import/require statements per language with shallow
// regex parsing. It reports which modules a codebase leans on, split into
// external packages and relative (project-internal) references.
package deps

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// languagePatterns maps a file extension to the regexes that capture the
// imported module name for that language.
var languagePatterns = map[string][]*regexp.Regexp{
	".py": {
		regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`),
		regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import`),
	},
	".js": {
		regexp.MustCompile(`(?m)import\s+(?:[\w{}\s,*]+\s+from\s+)?['"]([^'"]+)['"]`),
		regexp.MustCompile(`(?m)require\(\s*['"]([^'"]+)['"]\s*\)`),
	},
	".ts": {
		regexp.MustCompile(`(?m)import\s+(?:[\w{}\s,*]+\s+from\s+)?['"]([^'"]+)['"]`),
		regexp.MustCompile(`(?m)require\(\s*['"]([^'"]+)['"]\s*\)`),
	},
	".java": {
		regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+)\s*;`),
	},
	".go": {
		regexp.MustCompile(`(?m)^\s*(?:import\s+)?(?:\w+\s+)?"([^"]+)"`),
	},
	".cs": {
		regexp.MustCompile(`(?m)^\s*using\s+([\w.]+)\s*;`),
	},
	".cpp": {
		regexp.MustCompile(`(?m)^\s*#include\s*[<"]([^>"]+)[>"]`),
	},
	".php": {
		regexp.MustCompile(`(?m)^\s*use\s+([\w\\]+)`),
		regexp.MustCompile(`(?m)(?:require|include)(?:_once)?\s*\(?\s*['"]([^'"]+)['"]`),
	},
	".rb": {
		regexp.MustCompile(`(?m)^\s*require(?:_relative)?\s+['"]([^'"]+)['"]`),
	},
	".swift": {
		regexp.MustCompile(`(?m)^\s*import\s+(\w+)`),
	},
}

// extensionAliases folds sibling extensions onto a canonical pattern key.
var extensionAliases = map[string]string{
	".jsx": ".js",
	".mjs": ".js",
	".tsx": ".ts",
	".cc":  ".cpp",
	".cxx": ".cpp",
	".hpp": ".cpp",
	".h":   ".cpp",
	".hh":  ".cpp",
}

// FileDependencies lists the modules one file pulls in.
type FileDependencies struct {
	FilePath string   `json:"file_path"`
	Modules  []string `json:"modules"`
}

// Report is the dependency extraction payload.
type Report struct {
	TotalDependencias  int                `json:"total_dependencias"`
	DependenciasUnicas []string           `json:"dependencias_unicas"`
	Externas           []string           `json:"externas"`
	Relativas          []string           `json:"relativas"`
	PorArchivo         []FileDependencies `json:"por_archivo"`
	Error              string             `json:"error,omitempty"`
}

// Extractor parses import statements per language.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract scans all files for import statements. Files without a known
// extension are silently skipped; no error is ever returned.
func (e *Extractor) Extract(files map[string]string) *Report {
	unique := make(map[string]struct{})
	external := make(map[string]struct{})
	relative := make(map[string]struct{})

	var perFile []FileDependencies

	total := 0

	for _, path := range sortedPaths(files) {
		patterns := patternsForPath(path)
		if patterns == nil {
			continue
		}

		modules := extractModules(files[path], patterns)
		if len(modules) == 0 {
			continue
		}

		total += len(modules)
		perFile = append(perFile, FileDependencies{FilePath: path, Modules: modules})

		for _, module := range modules {
			unique[module] = struct{}{}

			if isRelative(module) {
				relative[module] = struct{}{}
			} else {
				external[module] = struct{}{}
			}
		}
	}

	return &Report{
		TotalDependencias:  total,
		DependenciasUnicas: setToSlice(unique),
		Externas:           setToSlice(external),
		Relativas:          setToSlice(relative),
		PorArchivo:         perFile,
	}
}

// patternsForPath resolves the regex set for a file path's extension.
func patternsForPath(path string) []*regexp.Regexp {
	ext := strings.ToLower(filepath.Ext(path))
	if canonical, ok := extensionAliases[ext]; ok {
		ext = canonical
	}

	return languagePatterns[ext]
}

// extractModules applies every pattern and collects distinct module names in
// order of first appearance.
func extractModules(content string, patterns []*regexp.Regexp) []string {
	seen := make(map[string]struct{})

	var modules []string

	for _, pattern := range patterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			module := strings.TrimSpace(match[1])
			if module == "" {
				continue
			}

			if _, dup := seen[module]; dup {
				continue
			}

			seen[module] = struct{}{}
			modules = append(modules, module)
		}
	}

	return modules
}

// isRelative reports whether a module reference points inside the project.
func isRelative(module string) bool {
	return strings.HasPrefix(module, ".") || strings.HasPrefix(module, "/")
}

// setToSlice returns the set members sorted lexicographically.
func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for member := range set {
		out = append(out, member)
	}

	sort.Strings(out)

	return out
}

// sortedPaths returns the file paths in lexicographic order so that the
// report is deterministic.
func sortedPaths(files map[string]string) []string {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	return paths
}
