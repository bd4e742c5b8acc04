// Package pipeline implements the generation-repair-execution chain:
// classification, prompt composition, model selection with fallback, code
// extraction, sanitization, and sandboxed execution.
package pipeline

import (
	"strings"

	"github.com/doeshing/arcgen/internal/domain"
)

// keywordSet pairs a category with its trigger substrings. Sets are tested
// in strict priority order; the first set with any match wins.
type keywordSet struct {
	category domain.Category
	keywords []string
}

// classifierSets returns the fixed keyword sets in priority order
// cad > data_analysis > web_app > python_script. A prompt matching keywords
// from two sets resolves to the higher-priority category.
func classifierSets() []keywordSet {
	return []keywordSet{
		{
			category: domain.CategoryCAD,
			keywords: []string{
				"floor plan", "dxf", "cad", "autocad", "blueprint",
				"drawing", "architect", "setback", "elevation", "site plan",
			},
		},
		{
			category: domain.CategoryDataAnalysis,
			keywords: []string{
				"data", "csv", "analy", "chart", "graph", "plot",
				"pandas", "statistic", "visualiz", "dataset",
			},
		},
		{
			category: domain.CategoryWebApp,
			keywords: []string{
				"website", "web app", "webpage", "web page", "html",
				"flask", "django", "dashboard", "frontend",
			},
		},
		{
			category: domain.CategoryPythonScript,
			keywords: []string{
				"script", "generator", "automation", "calculator",
				"converter", "utility", "tool", "program",
			},
		},
	}
}

// Classify maps a free-text request to exactly one category. It is
// deterministic, total, and a pure function of the input text: the input is
// lower-cased and each keyword set is tested for substring membership in
// priority order; no match yields CategoryGeneral.
func Classify(text string) domain.Category {
	lower := strings.ToLower(text)
	for _, set := range classifierSets() {
		for _, keyword := range set.keywords {
			if strings.Contains(lower, keyword) {
				return set.category
			}
		}
	}
	return domain.CategoryGeneral
}
