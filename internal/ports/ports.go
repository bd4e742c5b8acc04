// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// pattern, these interfaces allow the pipeline to remain independent of
// specific implementations like the model service HTTP client, the sqlite
// audit store, or the CLI framework.
package ports

import (
	"context"
	"time"

	"github.com/doeshing/arcgen/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.arcgen/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ProviderFactory builds generative model handles from model definitions.
// Handles are created per generation attempt and discarded after use.
type ProviderFactory interface {
	ForModel(domain.ModelDefinition) (Provider, error)
}

// Provider wraps a live connection to a generative service for one model.
type Provider interface {
	Name() string
	Model() domain.ModelDefinition
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderRequest contains everything needed for one model call.
type ProviderRequest struct {
	Prompt string
	Debug  bool
}

// ProviderResponse carries the raw generated text back to the pipeline.
// A response without text is treated as an error for retry purposes.
type ProviderResponse struct {
	Text string
}

// ScriptRunner executes a generated source file as an isolated child
// process with a hard wall-clock timeout. On timeout it returns
// domain.ErrRunTimeout and no result.
type ScriptRunner interface {
	Run(ctx context.Context, sourcePath string, timeout time.Duration) (domain.ExecutionResult, error)
}

// ArtifactRepository persists generated sources and enumerates produced
// artifacts in the flat workspace directory.
type ArtifactRepository interface {
	WriteSource(category domain.Category, code string) (string, error)
	List() ([]domain.OutputFile, error)
	Archive() ([]byte, error)
	Clear() error
	Dir() string
}

// HistoryRepository stores generation attempts durably for cross-session
// audit. The bounded in-session log is domain.HistoryLog, not this port.
type HistoryRepository interface {
	Save(domain.HistoryEntry) error
	Records(limit int, search string) ([]domain.HistoryEntry, error)
	Clear() error
}

// CacheRepository stores model responses keyed by a prompt/model hash.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(domain.CacheEntry) error
	Clear() error
	Entries() ([]domain.CacheEntry, error)
}

// SecurityService evaluates generated scripts against guardrail rules
// before they reach the sandbox.
type SecurityService interface {
	Evaluate(source string) (domain.RiskAssessment, error)
}

// Previewer renders a produced drawing file to a raster image for display.
// Failures surface as domain.ErrPreviewUnavailable and never abort the flow.
type Previewer interface {
	Render(ctx context.Context, drawingPath string) ([]byte, error)
	Enabled() bool
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
