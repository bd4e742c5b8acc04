package services

import (
	"context"
	"testing"

	"github.com/doeshing/arcgen/internal/domain"
)

type fixedConfig struct{ cfg domain.Config }

func (f fixedConfig) Load(context.Context) (domain.Config, error) { return f.cfg, nil }

type passingSecurity struct{}

func (passingSecurity) Evaluate(string) (domain.RiskAssessment, error) {
	return domain.RiskAssessment{Level: domain.RiskSafe, Action: domain.ActionAllow}, nil
}

type dirArtifacts struct{ dir string }

func (a dirArtifacts) WriteSource(domain.Category, string) (string, error) { return "", nil }

func (a dirArtifacts) List() ([]domain.OutputFile, error) { return nil, nil }

func (a dirArtifacts) Archive() ([]byte, error) { return nil, nil }

func (a dirArtifacts) Clear() error { return nil }

func (a dirArtifacts) Dir() string { return a.dir }

type emptyHistory struct{}

func (emptyHistory) Save(domain.HistoryEntry) error { return nil }

func (emptyHistory) Records(int, string) ([]domain.HistoryEntry, error) { return nil, nil }

func (emptyHistory) Clear() error { return nil }

type offPreviewer struct{}

func (offPreviewer) Render(context.Context, string) ([]byte, error) { return nil, nil }

func (offPreviewer) Enabled() bool { return false }

func checkByName(report domain.HealthReport, name string) (domain.HealthCheck, bool) {
	for _, check := range report.Checks {
		if check.Name == name {
			return check, true
		}
	}
	return domain.HealthCheck{}, false
}

func TestDoctorRun(t *testing.T) {
	t.Setenv("DOCTOR_TEST_KEY", "")
	cfg := domain.Config{
		ConfigFormatVersion: "1",
		Workspace:           domain.WorkspaceSettings{Interpreter: "sh"},
		Models: []domain.ModelDefinition{
			{Name: "flash", Endpoint: "https://example.invalid", AuthEnvVar: "DOCTOR_TEST_KEY"},
			{Name: "offline"},
		},
	}
	doctor := &DoctorService{
		ConfigProvider: fixedConfig{cfg: cfg},
		Security:       passingSecurity{},
		Artifacts:      dirArtifacts{dir: t.TempDir()},
		History:        emptyHistory{},
		Previewer:      offPreviewer{},
	}

	report, err := doctor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if check, ok := checkByName(report, "History store"); !ok || check.Status != domain.HealthOK {
		t.Fatalf("history check = %+v", check)
	}
	if check, ok := checkByName(report, "Config file"); !ok || check.Status != domain.HealthOK {
		t.Fatalf("config check = %+v", check)
	}
	if check, ok := checkByName(report, "Interpreter"); !ok || check.Status != domain.HealthOK {
		t.Fatalf("interpreter check = %+v", check)
	}
	if check, ok := checkByName(report, "Credential"); !ok || check.Status != domain.HealthWarn {
		t.Fatalf("credential check = %+v, want warn for unset env var", check)
	}
	if check, ok := checkByName(report, "Workspace"); !ok || check.Status != domain.HealthOK {
		t.Fatalf("workspace check = %+v", check)
	}
	if check, ok := checkByName(report, "Preview"); !ok || check.Status != domain.HealthWarn {
		t.Fatalf("preview check = %+v, want warn when disabled", check)
	}
	if !report.Healthy() {
		t.Fatal("warn-only report must still count as healthy")
	}
}

func TestDoctorCredentialSet(t *testing.T) {
	t.Setenv("DOCTOR_TEST_KEY", "present")
	cfg := domain.Config{
		Workspace: domain.WorkspaceSettings{Interpreter: "sh"},
		Models: []domain.ModelDefinition{
			{Name: "a", AuthEnvVar: "DOCTOR_TEST_KEY"},
			{Name: "b", AuthEnvVar: "DOCTOR_TEST_KEY"},
		},
	}
	doctor := &DoctorService{
		ConfigProvider: fixedConfig{cfg: cfg},
		Security:       passingSecurity{},
		Artifacts:      dirArtifacts{dir: t.TempDir()},
		Previewer:      offPreviewer{},
	}

	report, err := doctor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	count := 0
	for _, check := range report.Checks {
		if check.Name == "Credential" {
			count++
			if check.Status != domain.HealthOK {
				t.Fatalf("credential check = %+v, want ok", check)
			}
		}
	}
	if count != 1 {
		t.Fatalf("credential checks = %d, want one per unique env var", count)
	}
}

func TestDoctorMissingInterpreter(t *testing.T) {
	cfg := domain.Config{
		Workspace: domain.WorkspaceSettings{Interpreter: "definitely-not-installed"},
	}
	doctor := &DoctorService{
		ConfigProvider: fixedConfig{cfg: cfg},
		Security:       passingSecurity{},
		Artifacts:      dirArtifacts{dir: t.TempDir()},
		Previewer:      offPreviewer{},
	}

	report, err := doctor.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	check, ok := checkByName(report, "Interpreter")
	if !ok || check.Status != domain.HealthFail {
		t.Fatalf("interpreter check = %+v, want fail", check)
	}
}
