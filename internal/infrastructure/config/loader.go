// Package config loads and persists the ArcGen YAML configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/arcgen/assets"
	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/pkg/filesystem"
	"github.com/doeshing/arcgen/internal/ports"
)

// FileLoader loads YAML configuration from ~/.arcgen/config.yaml
// (overridable via ARCGEN_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return hydrateDefaults(cfg), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("ARCGEN_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".arcgen", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

// Save writes the given config back to disk.
func (l *FileLoader) Save(cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := ensureConfigDir(l.resolvePath()); err != nil {
		return err
	}
	return os.WriteFile(l.resolvePath(), raw, domain.SecureFilePermissions)
}

// Reset overwrites the config with defaults and returns the default snapshot.
func (l *FileLoader) Reset() (domain.Config, error) {
	cfg := defaultConfig()
	if err := l.Save(cfg); err != nil {
		return domain.Config{}, err
	}
	return hydrateDefaults(cfg), nil
}

// Backup copies the current config file to a timestamped backup.
func (l *FileLoader) Backup() (string, error) {
	path := l.resolvePath()
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	backup := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102T150405"))
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(backup, data, domain.SecureFilePermissions); err != nil {
		return "", err
	}
	return backup, nil
}

func defaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		// Fallback to minimal config if embedded YAML is corrupted.
		return domain.Config{
			ConfigFormatVersion: "1",
			Preferences: domain.Preferences{
				DefaultModel:   "gemini-2.5-flash",
				TimeoutSeconds: 60,
			},
			Models: []domain.ModelDefinition{
				{
					Name:       "gemini-2.5-flash",
					Endpoint:   "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent",
					AuthEnvVar: "GOOGLE_API_KEY",
					ModelID:    "gemini-2.5-flash",
					MaxTokens:  domain.DefaultMaxTokens,
				},
			},
		}
	}
	return cfg
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Preferences.DefaultModel == "" && len(cfg.Models) > 0 {
		cfg.Preferences.DefaultModel = cfg.Models[0].Name
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = int(domain.DefaultRunTimeout / time.Second)
	}
	if cfg.Preferences.RequestsPerMinute <= 0 {
		cfg.Preferences.RequestsPerMinute = domain.DefaultRequestsPerMinute
	}
	if cfg.Workspace.Dir == "" {
		cfg.Workspace.Dir = filepath.Join(filesystem.UserHomeDir(), ".arcgen", "work")
	} else {
		cfg.Workspace.Dir = expandPath(cfg.Workspace.Dir)
	}
	if cfg.Workspace.Interpreter == "" {
		cfg.Workspace.Interpreter = "python3"
	}
	if cfg.Security.RulesFile != "" {
		cfg.Security.RulesFile = expandPath(cfg.Security.RulesFile)
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = "1h"
	}
	if cfg.Cache.MaxEntries <= 0 {
		cfg.Cache.MaxEntries = domain.DefaultMaxCacheEntries
	}
	if cfg.History.RetentionDays < 0 {
		cfg.History.RetentionDays = 0
	}
	return cfg
}

func expandPath(path string) string {
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

// DefaultConfig exposes the bootstrap configuration template.
func DefaultConfig() domain.Config {
	return hydrateDefaults(defaultConfig())
}
