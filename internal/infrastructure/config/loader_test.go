package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Preferences.DefaultModel == "" {
		t.Fatal("default model must be hydrated")
	}
	if len(cfg.Models) == 0 {
		t.Fatal("default config must declare models")
	}
	if cfg.Workspace.Interpreter != "python3" {
		t.Fatalf("Interpreter = %q, want python3", cfg.Workspace.Interpreter)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}

func TestLoadExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `config_format_version: "1"
preferences:
  default_model: custom
  fallback_models: [custom, spare]
models:
  - name: custom
    endpoint: https://example.invalid/generate
    auth_env_var: MY_KEY
  - name: spare
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Preferences.DefaultModel != "custom" {
		t.Fatalf("DefaultModel = %q", cfg.Preferences.DefaultModel)
	}
	if model, ok := cfg.FindModel("custom"); !ok || model.AuthEnvVar != "MY_KEY" {
		t.Fatalf("model = %+v ok=%v", model, ok)
	}
	// Unset fields must be hydrated, never left zero.
	if cfg.Preferences.TimeoutSeconds == 0 || cfg.Workspace.Dir == "" {
		t.Fatalf("hydration missed: %+v", cfg.Preferences)
	}
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	if err := os.WriteFile(path, []byte("preferences:\n  default_model: env-model\nmodels:\n  - name: env-model\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ARCGEN_CONFIG", path)

	loader := NewFileLoader("")
	if got := loader.Path(); got != path {
		t.Fatalf("Path = %q, want %q", got, path)
	}
	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Preferences.DefaultModel != "env-model" {
		t.Fatalf("DefaultModel = %q", cfg.Preferences.DefaultModel)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	if err := os.WriteFile(path, []byte("preferences:\n  default_model: broken\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loader.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if cfg.Preferences.DefaultModel == "broken" {
		t.Fatal("Reset must discard the prior config")
	}

	reloaded, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load after Reset: %v", err)
	}
	if reloaded.Preferences.DefaultModel != cfg.Preferences.DefaultModel {
		t.Fatalf("reloaded = %q, want %q", reloaded.Preferences.DefaultModel, cfg.Preferences.DefaultModel)
	}
}

func TestBackupCopiesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)
	if _, err := loader.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	backup, err := loader.Backup()
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	original, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read original: %v", err)
	}
	copied, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(original) != string(copied) {
		t.Fatal("backup content differs from original")
	}
}

func TestExpandPath(t *testing.T) {
	home := os.Getenv("HOME")
	if home == "" {
		t.Skip("no HOME in environment")
	}
	if got := expandPath("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Fatalf("expandPath = %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Fatalf("expandPath = %q", got)
	}
}
