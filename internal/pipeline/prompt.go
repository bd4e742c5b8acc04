package pipeline

import "github.com/doeshing/arcgen/internal/domain"

// Instruction templates, one literal per category. The CAD instruction pins
// the output file name to plan.dxf so the artifact index can find it.
const (
	cadInstruction = "You are an expert Python CAD assistant. Generate a single self-contained Python script " +
		"that uses the ezdxf library to create a DXF floor plan according to the user's prompt. " +
		"Requirements: (1) Use feet as drawing units and consistent coordinates. (2) Include plot outline, " +
		"setbacks, labeled rooms, and any requested features. (3) Save to a DXF file named 'plan.dxf' in the current working directory. " +
		"(4) Do not include placeholders; write runnable code only. (5) Avoid long commentary; keep code clean. "

	dataAnalysisInstruction = "You are an expert Python data analyst. Generate a single self-contained Python script " +
		"that performs the requested analysis. Requirements: (1) Use pandas and matplotlib where appropriate. " +
		"(2) Save any charts as PNG files and any tabular results as CSV or JSON files in the current working directory. " +
		"(3) Print a short summary of the findings to stdout. (4) Do not include placeholders; write runnable code only. "

	webAppInstruction = "You are an expert Python web developer. Generate a single self-contained Python script " +
		"that builds the requested page or app. Requirements: (1) Write the final page as a static HTML file " +
		"in the current working directory. (2) Avoid frameworks that require a running server; generate the HTML directly. " +
		"(3) Do not include placeholders; write runnable code only. "

	pythonScriptInstruction = "You are an expert Python engineer. Generate a single self-contained Python utility script " +
		"that fulfills the user's request. Requirements: (1) Print results to stdout. (2) Write any produced files " +
		"to the current working directory. (3) Do not include placeholders; write runnable code only. "

	generalInstruction = "You are an expert Python programmer. Generate a single self-contained Python script " +
		"that addresses the user's request as directly as possible. Do not include placeholders; write runnable code only. "
)

// instructionFor selects the fixed instruction template for a category.
func instructionFor(category domain.Category) string {
	switch category {
	case domain.CategoryCAD:
		return cadInstruction
	case domain.CategoryDataAnalysis:
		return dataAnalysisInstruction
	case domain.CategoryWebApp:
		return webAppInstruction
	case domain.CategoryPythonScript:
		return pythonScriptInstruction
	default:
		return generalInstruction
	}
}

// ComposePrompt builds the full instruction+request prompt. It is a pure
// string join with literal delimiters; the request text is not escaped, so
// fence markers embedded in the user's own text pass through unchanged (the
// extractor compensates by taking the first fence of the model's response).
func ComposePrompt(requestText string, category domain.Category) string {
	return instructionFor(category) +
		"\n\nUser requirements:\n" + requestText +
		"\n\nReturn only Python code inside a fenced code block."
}
