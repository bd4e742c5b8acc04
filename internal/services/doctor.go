// Package services hosts auxiliary application services that sit beside
// the generation pipeline.
package services

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/ports"
)

// DoctorService runs environment diagnostics: everything a generation
// attempt depends on but that only fails at runtime otherwise.
type DoctorService struct {
	ConfigProvider ports.ConfigProvider
	Security       ports.SecurityService
	Artifacts      ports.ArtifactRepository
	History        ports.HistoryRepository
	Previewer      ports.Previewer
}

// Run executes checks and returns a report.
func (s *DoctorService) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format version %s, %d models", cfg.ConfigFormatVersion, len(cfg.Models))))

	checks = append(checks, interpreterCheck(cfg.Workspace.Interpreter))
	checks = append(checks, credentialChecks(cfg.Models)...)
	checks = append(checks, workspaceCheck(s.Artifacts))

	if s.Security != nil {
		if _, err := s.Security.Evaluate("print('ok')"); err != nil {
			checks = append(checks, fail("Guardrail", err.Error()))
		} else {
			checks = append(checks, ok("Guardrail", "rules loaded"))
		}
	} else {
		checks = append(checks, warn("Guardrail", "security service not initialized"))
	}

	if s.History != nil {
		if _, err := s.History.Records(1, ""); err != nil {
			checks = append(checks, fail("History store", err.Error()))
		} else {
			checks = append(checks, ok("History store", "audit store readable"))
		}
	} else {
		checks = append(checks, warn("History store", "audit store not initialized"))
	}

	if s.Previewer != nil && s.Previewer.Enabled() {
		checks = append(checks, ok("Preview", "converter command configured"))
	} else {
		checks = append(checks, warn("Preview", "no converter command; previews disabled"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func interpreterCheck(interpreter string) domain.HealthCheck {
	if interpreter == "" {
		interpreter = "python3"
	}
	path, err := exec.LookPath(interpreter)
	if err != nil {
		return fail("Interpreter", fmt.Sprintf("%s not found in PATH", interpreter))
	}
	return ok("Interpreter", path)
}

func credentialChecks(models []domain.ModelDefinition) []domain.HealthCheck {
	seen := map[string]bool{}
	var checks []domain.HealthCheck
	for _, model := range models {
		if model.AuthEnvVar == "" || seen[model.AuthEnvVar] {
			continue
		}
		seen[model.AuthEnvVar] = true
		if os.Getenv(model.AuthEnvVar) == "" {
			checks = append(checks, warn("Credential", fmt.Sprintf("%s not set; models using it will be skipped", model.AuthEnvVar)))
		} else {
			checks = append(checks, ok("Credential", fmt.Sprintf("%s set", model.AuthEnvVar)))
		}
	}
	return checks
}

func workspaceCheck(artifacts ports.ArtifactRepository) domain.HealthCheck {
	if artifacts == nil {
		return warn("Workspace", "artifact repository not initialized")
	}
	probe := artifacts.Dir()
	if info, err := os.Stat(probe); err != nil || !info.IsDir() {
		return fail("Workspace", fmt.Sprintf("%s is not a directory", probe))
	}
	tmp, err := os.CreateTemp(probe, ".doctor-*")
	if err != nil {
		return fail("Workspace", fmt.Sprintf("%s not writable: %v", probe, err))
	}
	tmp.Close()
	os.Remove(tmp.Name())
	return ok("Workspace", probe)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthFail, Details: details}
}
