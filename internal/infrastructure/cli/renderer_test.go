package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/doeshing/arcgen/internal/domain"
)

func TestRenderResponseSuccess(t *testing.T) {
	var buf bytes.Buffer
	RenderResponse(&buf, domain.GenerationResponse{
		Category:   domain.CategoryCAD,
		ModelUsed:  "flash",
		SourcePath: "/work/generated_plan.py",
		Execution:  &domain.ExecutionResult{Success: true, Stdout: "done\n"},
		Outputs:    []domain.OutputFile{{Name: "plan.dxf"}},
	}, nil)

	out := buf.String()
	for _, want := range []string{
		"Category: cad",
		"Model: flash",
		"Source: /work/generated_plan.py",
		"executed successfully",
		"done",
		"plan.dxf",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResponseCachedMarker(t *testing.T) {
	var buf bytes.Buffer
	RenderResponse(&buf, domain.GenerationResponse{ModelUsed: "flash", FromCache: true}, nil)
	if !strings.Contains(buf.String(), "(cached)") {
		t.Fatalf("cached marker missing:\n%s", buf.String())
	}
}

func TestRenderResponseTimeout(t *testing.T) {
	var buf bytes.Buffer
	RenderResponse(&buf, domain.GenerationResponse{ModelUsed: "flash"}, domain.ErrRunTimeout)
	if !strings.Contains(buf.String(), "timed out") {
		t.Fatalf("timeout message missing:\n%s", buf.String())
	}
}

func TestRenderResponseBlocked(t *testing.T) {
	var buf bytes.Buffer
	RenderResponse(&buf, domain.GenerationResponse{
		Warnings: []string{"script recursively deletes directories"},
	}, domain.ErrExecutionBlocked)

	out := buf.String()
	if !strings.Contains(out, "blocked by guardrail") {
		t.Fatalf("block message missing:\n%s", out)
	}
	if !strings.Contains(out, "recursively deletes") {
		t.Fatalf("warning missing:\n%s", out)
	}
}

func TestRenderResponseSkippedExecution(t *testing.T) {
	var buf bytes.Buffer
	RenderResponse(&buf, domain.GenerationResponse{ModelUsed: "flash", SourcePath: "/work/script.py"}, nil)
	if !strings.Contains(buf.String(), "not executed") {
		t.Fatalf("skip message missing:\n%s", buf.String())
	}
}

func TestRenderResponseFailedScript(t *testing.T) {
	var buf bytes.Buffer
	RenderResponse(&buf, domain.GenerationResponse{
		ModelUsed: "flash",
		Execution: &domain.ExecutionResult{Success: false, ExitCode: 2, Stderr: "Traceback"},
	}, nil)

	out := buf.String()
	if !strings.Contains(out, "exit code 2") {
		t.Fatalf("exit code missing:\n%s", out)
	}
	if !strings.Contains(out, "Traceback") {
		t.Fatalf("stderr missing:\n%s", out)
	}
}
