package lang

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"github.com/empatia-tech/empatia/internal/metrics"
)

// dangerousImports are packages whose presence lowers the security score.
var dangerousImports = map[string]bool{
	"unsafe":  true,
	"os/exec": true,
}

// goAnalyzer is the Go variant. Unlike the regex-based variants it parses
// files into an AST, so its structural counts are exact.
type goAnalyzer struct{}

// newGoAnalyzer builds the Go variant.
func newGoAnalyzer() Analyzer {
	return &goAnalyzer{}
}

// Language returns the variant's language name.
func (a *goAnalyzer) Language() string {
	return "go"
}

// Extensions returns the variant's extension set.
func (a *goAnalyzer) Extensions() []string {
	return []string{".go"}
}

// AnalyzeFile parses one Go source file and extracts per-file metrics.
// Files that do not parse are reported as errors and skipped upstream.
func (a *goAnalyzer) AnalyzeFile(path, content string) (metrics.CategoryMetrics, error) {
	if !MatchesExtension(a, path) {
		return nil, ErrUnsupportedFile
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, path, content, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	facts := collectGoFacts(file)
	lines := strings.Split(content, "\n")

	out := metrics.NewCategoryMetrics()

	out[metrics.CategoryNombres]["descriptividad"] = descriptiveness(facts.names)
	out[metrics.CategoryDocumentacion]["cobertura"] = metrics.SafeDiv(float64(facts.documented), float64(facts.declarations))
	out[metrics.CategoryModularidad]["funciones_por_archivo"] = modularityScore(facts.functions)
	out[metrics.CategoryModularidad]["longitud_archivo"] = fileLengthScore(len(lines))
	out[metrics.CategoryComplejidad]["ciclomatica"] = branchComplexity(facts.branches, facts.functions)
	out[metrics.CategoryManejoErrores]["cobertura"] = metrics.Clamp01(float64(facts.errChecks) / float64(max(facts.functions, 1)))
	out[metrics.CategoryPruebas]["cobertura"] = goTestScore(path, facts)
	out[metrics.CategorySeguridad]["validacion"] = goSecurityScore(facts)
	out[metrics.CategoryConsistencia]["consistencia_nombres"] = goNamingConsistency(facts.names)
	out[metrics.CategoryConsistencia]["consistencia_indentacion"] = indentationConsistency(lines)

	return out, nil
}

// goFacts holds the structural counts extracted from one parsed file.
type goFacts struct {
	names        []string
	functions    int
	testFuncs    int
	declarations int
	documented   int
	branches     int
	errChecks    int
	dangerous    int
	validations  int
}

// collectGoFacts walks the AST once and tallies every structural count.
func collectGoFacts(file *ast.File) goFacts {
	var facts goFacts

	for _, imp := range file.Imports {
		if dangerousImports[strings.Trim(imp.Path.Value, `"`)] {
			facts.dangerous++
		}
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			facts.functions++
			facts.declarations++
			facts.names = append(facts.names, d.Name.Name)

			if d.Doc != nil {
				facts.documented++
			}

			if strings.HasPrefix(d.Name.Name, "Test") || strings.HasPrefix(d.Name.Name, "Benchmark") {
				facts.testFuncs++
			}

			if returnsError(d) {
				facts.validations++
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				facts.declarations++
				facts.names = append(facts.names, ts.Name.Name)

				if d.Doc != nil || ts.Doc != nil {
					facts.documented++
				}
			}
		}
	}

	ast.Inspect(file, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.IfStmt:
			facts.branches++

			if isErrCheck(n) {
				facts.errChecks++
			}
		case *ast.ForStmt, *ast.RangeStmt, *ast.CaseClause, *ast.CommClause:
			facts.branches++
		case *ast.BinaryExpr:
			if n.Op == token.LAND || n.Op == token.LOR {
				facts.branches++
			}
		}

		return true
	})

	return facts
}

// returnsError reports whether a function declares an error result.
func returnsError(fn *ast.FuncDecl) bool {
	if fn.Type.Results == nil {
		return false
	}

	for _, field := range fn.Type.Results.List {
		if ident, ok := field.Type.(*ast.Ident); ok && ident.Name == "error" {
			return true
		}
	}

	return false
}

// isErrCheck reports whether an if statement compares an err identifier
// against nil.
func isErrCheck(stmt *ast.IfStmt) bool {
	bin, ok := stmt.Cond.(*ast.BinaryExpr)
	if !ok || (bin.Op != token.NEQ && bin.Op != token.EQL) {
		return false
	}

	for _, side := range []ast.Expr{bin.X, bin.Y} {
		if ident, ok := side.(*ast.Ident); ok && strings.Contains(strings.ToLower(ident.Name), "err") {
			return true
		}
	}

	return false
}

// branchComplexity converts exact branch counts into the shared [0,1] scale.
func branchComplexity(branches, functions int) float64 {
	if branches == 0 {
		return 1.0
	}

	perFunction := float64(branches) / float64(max(functions, 1))

	return 1.0 / (1.0 + perFunction/complexityScale)
}

// goTestScore rates test presence. Test files score by test function
// density, other files score 0.
func goTestScore(path string, facts goFacts) float64 {
	if !strings.HasSuffix(path, "_test.go") || facts.testFuncs == 0 {
		return 0
	}

	return metrics.Clamp01(float64(facts.testFuncs) / float64(max(facts.functions, 1)))
}

// goSecurityScore charges for dangerous imports and refunds for error
// returning signatures.
func goSecurityScore(facts goFacts) float64 {
	score := 1.0 - float64(facts.dangerous)*0.3

	if facts.validations > 0 {
		score += 0.1
	}

	return metrics.Clamp01(score)
}

// goNamingConsistency measures adherence to Go's no-underscore convention.
func goNamingConsistency(names []string) float64 {
	if len(names) == 0 {
		return 1.0
	}

	conforming := 0

	for _, name := range names {
		if !strings.Contains(name, "_") {
			conforming++
		}
	}

	return float64(conforming) / float64(len(names))
}
