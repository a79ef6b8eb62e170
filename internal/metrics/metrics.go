// Package metrics defines the category model and score arithmetic shared by
// every language analyzer and the project dispatcher.
package metrics

// Category is one of the eight fixed quality dimensions.
type Category string

// The closed category set. Every CategoryMetrics instance carries exactly
// these eight keys; analyzers may populate different leaf metrics inside a
// category but never add or drop a category.
const (
	CategoryNombres       Category = "nombres"
	CategoryDocumentacion Category = "documentacion"
	CategoryModularidad   Category = "modularidad"
	CategoryComplejidad   Category = "complejidad"
	CategoryManejoErrores Category = "manejo_errores"
	CategoryPruebas       Category = "pruebas"
	CategorySeguridad     Category = "seguridad"
	CategoryConsistencia  Category = "consistencia_estilo"
)

// Empathy score weights per category. They sum to 1.0, which together with
// [0,1] leaf metrics bounds the score to [0,1].
const (
	WeightNombres       = 0.15
	WeightDocumentacion = 0.15
	WeightModularidad   = 0.15
	WeightComplejidad   = 0.15
	WeightManejoErrores = 0.10
	WeightPruebas       = 0.10
	WeightSeguridad     = 0.10
	WeightConsistencia  = 0.10
)

// LeafMetrics maps a leaf metric name to its value in [0,1].
type LeafMetrics map[string]float64

// CategoryMetrics maps each of the eight categories to its leaf metrics.
type CategoryMetrics map[Category]LeafMetrics

// Categories returns the eight category names in their canonical order.
func Categories() []Category {
	return []Category{
		CategoryNombres,
		CategoryDocumentacion,
		CategoryModularidad,
		CategoryComplejidad,
		CategoryManejoErrores,
		CategoryPruebas,
		CategorySeguridad,
		CategoryConsistencia,
	}
}

// Weights returns the empathy weight for every category.
func Weights() map[Category]float64 {
	return map[Category]float64{
		CategoryNombres:       WeightNombres,
		CategoryDocumentacion: WeightDocumentacion,
		CategoryModularidad:   WeightModularidad,
		CategoryComplejidad:   WeightComplejidad,
		CategoryManejoErrores: WeightManejoErrores,
		CategoryPruebas:       WeightPruebas,
		CategorySeguridad:     WeightSeguridad,
		CategoryConsistencia:  WeightConsistencia,
	}
}

// NewCategoryMetrics creates a CategoryMetrics with all eight categories
// present as empty leaf maps.
func NewCategoryMetrics() CategoryMetrics {
	out := make(CategoryMetrics, len(Categories()))
	for _, cat := range Categories() {
		out[cat] = LeafMetrics{}
	}

	return out
}

// CategoryAverage averages the leaf metric values of one category.
// An empty category averages to 0.
func CategoryAverage(leaves LeafMetrics) float64 {
	if len(leaves) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range leaves {
		sum += v
	}

	return sum / float64(len(leaves))
}

// EmpathyScore computes the weighted empathy score over the eight categories.
// Categories with no leaves contribute 0, so the result is always in [0,1].
func EmpathyScore(cm CategoryMetrics) float64 {
	score := 0.0

	for cat, weight := range Weights() {
		leaves := cm[cat]
		if len(leaves) == 0 {
			continue
		}

		score += CategoryAverage(leaves) * weight
	}

	return score
}

// SafeDiv performs division, returning 0 when the divisor is 0.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}

	return a / b
}

// Clamp01 bounds a ratio metric to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}
