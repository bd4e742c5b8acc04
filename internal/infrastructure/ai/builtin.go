package ai

import (
	"context"
	"strings"

	"github.com/doeshing/arcgen/assets"
	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/ports"
)

// builtinProvider serves stock scripts when a model definition has no
// endpoint, so the full pipeline stays exercisable without credentials or
// network access.
type builtinProvider struct {
	model domain.ModelDefinition
}

func newBuiltinProvider(model domain.ModelDefinition) ports.Provider {
	return &builtinProvider{model: model}
}

func (p *builtinProvider) Name() string {
	return "builtin"
}

func (p *builtinProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *builtinProvider) Generate(_ context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	script := assets.FallbackScriptPY
	if !mentionsDrawing(req.Prompt) {
		script = assets.FallbackHelloPY
	}
	return ports.ProviderResponse{
		Text: "```python\n" + string(script) + "\n```",
	}, nil
}

func mentionsDrawing(prompt string) bool {
	lower := strings.ToLower(prompt)
	return strings.Contains(lower, "dxf") ||
		strings.Contains(lower, "plan") ||
		strings.Contains(lower, "cad") ||
		strings.Contains(lower, "draw")
}

var _ ports.Provider = (*builtinProvider)(nil)
