// Package domain defines core business entities and value objects for ArcGen.
//
// The domain layer is independent of infrastructure concerns and represents
// pure business logic and data structures: request categories, model
// definitions, execution results, and the session history log.
package domain

// Category is the inferred kind of artifact the user wants generated.
// Exactly one category is assigned per request; it is determined once by
// the classifier and never revised.
type Category string

const (
	CategoryCAD          Category = "cad"
	CategoryDataAnalysis Category = "data_analysis"
	CategoryWebApp       Category = "web_app"
	CategoryPythonScript Category = "python_script"
	CategoryGeneral      Category = "general"
)

// SourceFilename returns the fixed workspace filename for scripts of this
// category. New generations of the same category overwrite the previous
// file; there is no versioning.
func (c Category) SourceFilename() string {
	switch c {
	case CategoryCAD:
		return "generated_plan.py"
	case CategoryDataAnalysis:
		return "data_analysis.py"
	case CategoryWebApp:
		return "web_app.py"
	case CategoryPythonScript:
		return "script.py"
	default:
		return "generated_code.py"
	}
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// AllCategories lists every category in classifier priority order.
func AllCategories() []Category {
	return []Category{
		CategoryCAD,
		CategoryDataAnalysis,
		CategoryWebApp,
		CategoryPythonScript,
		CategoryGeneral,
	}
}
