// Package ai provides the model provider factory and HTTP-based provider
// implementation.
//
// This package implements a unified, configuration-driven approach to
// generative providers:
//   - Factory: creates provider handles from model definitions
//   - HTTP provider: generic client supporting Gemini and OpenAI-compatible
//     services via the model's APIFormat configuration
//   - Builtin provider: offline template fallback for definitions with no
//     endpoint
//
// All provider-specific behavior is controlled through the model's APIFormat
// configuration, eliminating the need for separate provider implementations.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/ports"
)

const providerName = "http"

// ====================================================================================
// Factory
// ====================================================================================

// Factory creates provider handles based on model definitions. It maintains
// a single HTTP client and a single rate limiter shared across all handles,
// so fallback attempts count against the same budget.
type Factory struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewFactory creates a provider factory. requestsPerMinute bounds calls
// against the model service boundary; a non-positive value falls back to
// the domain default.
func NewFactory(requestsPerMinute int) *Factory {
	if requestsPerMinute <= 0 {
		requestsPerMinute = domain.DefaultRequestsPerMinute
	}
	return &Factory{
		httpClient: &http.Client{Timeout: domain.DefaultHTTPClientTimeout},
		limiter:    rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute),
	}
}

// ForModel creates a handle for the model definition. A definition with no
// endpoint is served by the builtin offline provider; anything else gets the
// generic HTTP provider. Construction validates that the credential
// environment variable is set, so a misconfigured candidate fails eagerly
// and the selector can move on to the next one.
func (f *Factory) ForModel(model domain.ModelDefinition) (ports.Provider, error) {
	if model.Endpoint == "" {
		return newBuiltinProvider(model), nil
	}
	if model.AuthEnvVar == "" {
		return nil, fmt.Errorf("model %s: auth_env_var not configured", model.Name)
	}
	if os.Getenv(model.AuthEnvVar) == "" {
		return nil, fmt.Errorf("%w: set %s", domain.ErrMissingCredential, model.AuthEnvVar)
	}
	return newHTTPProvider(model, f.httpClient, f.limiter), nil
}

var _ ports.ProviderFactory = (*Factory)(nil)

// ====================================================================================
// HTTP Provider
// ====================================================================================

// httpProvider is a configuration-driven HTTP-based provider. All
// provider-specific behavior comes from the model's APIFormat.
type httpProvider struct {
	model      domain.ModelDefinition
	httpClient *http.Client
	limiter    *rate.Limiter
}

func newHTTPProvider(model domain.ModelDefinition, client *http.Client, limiter *rate.Limiter) ports.Provider {
	return &httpProvider{model: model, httpClient: client, limiter: limiter}
}

func (p *httpProvider) Name() string {
	return providerName
}

func (p *httpProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *httpProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return ports.ProviderResponse{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	requestBody, err := p.buildRequestBody(req.Prompt)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.model.Endpoint, bytes.NewReader(requestBody))
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if err := p.setAuthHeaders(httpReq); err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("set auth headers: %w", err)
	}
	for key, value := range p.model.APIFormat.ExtraHeaders {
		httpReq.Header.Set(key, value)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ports.ProviderResponse{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("read response body: %w", err)
	}

	text, err := p.parseResponse(responseBody.Bytes())
	if err != nil {
		return ports.ProviderResponse{}, fmt.Errorf("parse response: %w", err)
	}

	return ports.ProviderResponse{Text: text}, nil
}

// buildRequestBody constructs the JSON request body based on the model's
// APIFormat configuration.
func (p *httpProvider) buildRequestBody(prompt string) ([]byte, error) {
	maxTokens := p.model.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domain.DefaultMaxTokens
	}

	if p.model.APIFormat.IsChatSchema() {
		request := map[string]interface{}{
			"model":      p.model.ModelID,
			"max_tokens": maxTokens,
			"messages": []map[string]interface{}{
				{"role": "user", "content": prompt},
			},
		}
		return json.Marshal(request)
	}

	// Gemini generateContent layout.
	request := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"maxOutputTokens": maxTokens,
		},
	}
	return json.Marshal(request)
}

// setAuthHeaders configures authentication headers based on the model's
// APIFormat. The credential comes from the environment only; there is no
// built-in default key.
func (p *httpProvider) setAuthHeaders(req *http.Request) error {
	apiKey := os.Getenv(p.model.AuthEnvVar)
	if apiKey == "" {
		return fmt.Errorf("%w: set %s", domain.ErrMissingCredential, p.model.AuthEnvVar)
	}
	format := p.model.APIFormat
	req.Header.Set(format.GetAuthHeaderName(), format.GetAuthHeaderPrefix()+apiKey)
	return nil
}

// parseResponse extracts the generated text from the JSON response using the
// configured JSON path.
func (p *httpProvider) parseResponse(body []byte) (string, error) {
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("unmarshal JSON: %w", err)
	}

	path := p.model.APIFormat.GetResponseJSONPath()
	text, err := extractJSONPath(response, path)
	if err != nil {
		return "", fmt.Errorf("extract from path '%s': %w", path, err)
	}

	return strings.TrimSpace(text), nil
}

// extractJSONPath extracts a string value from a nested JSON structure using
// a simple path notation.
// Supported paths: "field", "field.nested", "field[0]", "field[0].nested.field"
func extractJSONPath(data map[string]interface{}, path string) (string, error) {
	parts := parseJSONPath(path)
	var current interface{} = data

	for _, part := range parts {
		switch part.kind {
		case "field":
			obj, ok := current.(map[string]interface{})
			if !ok {
				return "", fmt.Errorf("expected object at '%s'", part.value)
			}
			var found bool
			current, found = obj[part.value]
			if !found {
				return "", fmt.Errorf("field '%s' not found", part.value)
			}

		case "index":
			arr, ok := current.([]interface{})
			if !ok {
				return "", fmt.Errorf("expected array at index %s", part.value)
			}
			idx, err := strconv.Atoi(part.value)
			if err != nil {
				return "", fmt.Errorf("invalid array index '%s'", part.value)
			}
			if idx < 0 || idx >= len(arr) {
				return "", fmt.Errorf("index %d out of bounds (len=%d)", idx, len(arr))
			}
			current = arr[idx]
		}
	}

	if str, ok := current.(string); ok {
		return str, nil
	}

	return "", fmt.Errorf("final value is not a string: %T", current)
}

type pathPart struct {
	kind  string // "field" or "index"
	value string
}

// parseJSONPath converts "candidates[0].content.parts[0].text" into
// structured path parts.
func parseJSONPath(path string) []pathPart {
	var parts []pathPart
	current := ""

	for i := 0; i < len(path); i++ {
		ch := path[i]
		switch ch {
		case '.':
			if current != "" {
				parts = append(parts, pathPart{kind: "field", value: current})
				current = ""
			}
		case '[':
			if current != "" {
				parts = append(parts, pathPart{kind: "field", value: current})
				current = ""
			}
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			if j < len(path) {
				parts = append(parts, pathPart{kind: "index", value: path[i+1 : j]})
				i = j
			}
		default:
			current += string(ch)
		}
	}

	if current != "" {
		parts = append(parts, pathPart{kind: "field", value: current})
	}

	return parts
}

var _ ports.Provider = (*httpProvider)(nil)
