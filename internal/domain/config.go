package domain

import "fmt"

// Config is the root configuration loaded from ~/.arcgen/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Workspace           WorkspaceSettings `yaml:"workspace"`
	History             HistorySettings   `yaml:"history"`
	Cache               CacheSettings     `yaml:"cache"`
	Security            SecuritySettings  `yaml:"security"`
	Preview             PreviewSettings   `yaml:"preview"`
	Models              []ModelDefinition `yaml:"models"`
}

// Preferences holds user-tunable behavior.
type Preferences struct {
	DefaultModel      string   `yaml:"default_model"`
	FallbackModels    []string `yaml:"fallback_models"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"`
	RequestsPerMinute int      `yaml:"requests_per_minute"`
	Verbose           bool     `yaml:"verbose"`
}

// WorkspaceSettings locates the flat directory holding generated sources
// and their produced artifacts.
type WorkspaceSettings struct {
	Dir         string `yaml:"dir"`
	Interpreter string `yaml:"interpreter"`
}

// HistorySettings controls the durable audit store.
type HistorySettings struct {
	Enabled       bool `yaml:"enabled"`
	RetentionDays int  `yaml:"retention_days"`
}

// CacheSettings controls the model response cache.
type CacheSettings struct {
	Enabled    bool   `yaml:"enabled"`
	TTL        string `yaml:"ttl"`
	MaxEntries int    `yaml:"max_entries"`
}

// SecuritySettings points at the guardrail rules file.
type SecuritySettings struct {
	RulesFile       string `yaml:"rules_file"`
	BlockOnCritical bool   `yaml:"block_on_critical"`
}

// PreviewSettings configures the external drawing renderer. Command is a
// shell template with {input} and {output} placeholders; empty disables
// previews.
type PreviewSettings struct {
	Command string `yaml:"command"`
}

// GetDefaultModel resolves the configured default model definition.
func (c Config) GetDefaultModel() (ModelDefinition, error) {
	if c.Preferences.DefaultModel == "" {
		return ModelDefinition{}, fmt.Errorf("no default model configured")
	}
	if model, ok := c.FindModel(c.Preferences.DefaultModel); ok {
		return model, nil
	}
	return ModelDefinition{}, fmt.Errorf("default model %q not found in models list", c.Preferences.DefaultModel)
}

// FindModel looks up a model definition by name.
func (c Config) FindModel(name string) (ModelDefinition, bool) {
	for _, model := range c.Models {
		if model.Name == name {
			return model, true
		}
	}
	return ModelDefinition{}, false
}

// CandidateModels builds the ordered attempt list for a generation: the
// preferred model first, then every fallback candidate except the preferred
// one, preserving the fallback list's declared order.
func (c Config) CandidateModels(preferred string) []ModelDefinition {
	if preferred == "" {
		preferred = c.Preferences.DefaultModel
	}
	candidates := make([]ModelDefinition, 0, 1+len(c.Preferences.FallbackModels))
	seen := map[string]bool{}
	if model, ok := c.FindModel(preferred); ok {
		candidates = append(candidates, model)
		seen[model.Name] = true
	}
	for _, name := range c.Preferences.FallbackModels {
		if seen[name] {
			continue
		}
		if model, ok := c.FindModel(name); ok {
			candidates = append(candidates, model)
			seen[name] = true
		}
	}
	return candidates
}
