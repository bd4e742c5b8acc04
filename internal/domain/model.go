package domain

// ModelDefinition describes a generative model configuration declared in the
// config file. Each model represents a specific service endpoint with its
// authentication and generation parameters. A definition with an empty
// endpoint is served by the builtin offline provider.
type ModelDefinition struct {
	Name       string    `yaml:"name"`
	Endpoint   string    `yaml:"endpoint"`
	AuthEnvVar string    `yaml:"auth_env_var"`
	ModelID    string    `yaml:"model_id"`
	MaxTokens  int       `yaml:"max_tokens"`
	APIFormat  APIFormat `yaml:"api_format,omitempty"`
}

// APIFormat defines how to construct requests and parse responses for
// different generative APIs. All fields are optional with Gemini-compatible
// defaults.
type APIFormat struct {
	// AuthHeaderName specifies the HTTP header name for authentication.
	// Default: "x-goog-api-key" (Gemini)
	AuthHeaderName string `yaml:"auth_header_name,omitempty"`

	// AuthHeaderPrefix is prepended to the API key value.
	// Default: "" (Gemini). Use "Bearer " for OpenAI-compatible services.
	AuthHeaderPrefix string `yaml:"auth_header_prefix,omitempty"`

	// RequestSchema controls the JSON body layout.
	// Values: "gemini" (default) - {"contents":[{"parts":[{"text":...}]}]}
	//         "chat"             - {"messages":[{"role":...,"content":...}]}
	RequestSchema string `yaml:"request_schema,omitempty"`

	// ResponseJSONPath specifies where to extract the generated text from
	// the response. Default: "candidates[0].content.parts[0].text" (Gemini).
	// Example: "choices[0].message.content" (OpenAI format).
	ResponseJSONPath string `yaml:"response_json_path,omitempty"`

	// ExtraHeaders contains additional HTTP headers to send with each request.
	ExtraHeaders map[string]string `yaml:"extra_headers,omitempty"`
}

// API Format Constants define standard values for APIFormat fields.
const (
	// Auth header defaults (Gemini)
	DefaultAuthHeaderName   = "x-goog-api-key"
	DefaultAuthHeaderPrefix = ""

	// Request schemas
	RequestSchemaGemini = "gemini" // Default: contents/parts layout
	RequestSchemaChat   = "chat"   // OpenAI-compatible messages layout

	// Response JSON paths
	GeminiResponsePath = "candidates[0].content.parts[0].text"
	ChatResponsePath   = "choices[0].message.content"
)

// GetAuthHeaderName returns the authentication header name with default fallback.
func (f APIFormat) GetAuthHeaderName() string {
	if f.AuthHeaderName == "" {
		return DefaultAuthHeaderName
	}
	return f.AuthHeaderName
}

// GetAuthHeaderPrefix returns the authentication header prefix. An empty
// prefix is the Gemini default, so no fallback applies.
func (f APIFormat) GetAuthHeaderPrefix() string {
	return f.AuthHeaderPrefix
}

// GetRequestSchema returns the request body schema with default fallback.
func (f APIFormat) GetRequestSchema() string {
	if f.RequestSchema == "" {
		return RequestSchemaGemini
	}
	return f.RequestSchema
}

// GetResponseJSONPath returns the JSON path for extracting response content
// with default fallback.
func (f APIFormat) GetResponseJSONPath() string {
	if f.ResponseJSONPath == "" {
		return GeminiResponsePath
	}
	return f.ResponseJSONPath
}

// IsChatSchema returns true if the request body uses the OpenAI-compatible
// messages layout.
func (f APIFormat) IsChatSchema() bool {
	return f.GetRequestSchema() == RequestSchemaChat
}
