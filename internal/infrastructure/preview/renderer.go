// Package preview renders produced drawing files to raster images via an
// external converter command. The renderer is an external collaborator: any
// failure is reported as "preview unavailable" and never aborts the flow.
package preview

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/ports"
)

// CommandRenderer shells out to a configured converter. The command is a
// template with {input} and {output} placeholders; an empty command
// disables previews entirely.
type CommandRenderer struct {
	command string
}

// NewCommandRenderer builds a renderer from the configured command template.
func NewCommandRenderer(command string) *CommandRenderer {
	return &CommandRenderer{command: strings.TrimSpace(command)}
}

// Enabled reports whether a converter command is configured.
func (r *CommandRenderer) Enabled() bool {
	return r.command != ""
}

// Render implements ports.Previewer. It substitutes the placeholders, runs
// the converter, and returns the produced PNG bytes.
func (r *CommandRenderer) Render(ctx context.Context, drawingPath string) ([]byte, error) {
	if !r.Enabled() {
		return nil, fmt.Errorf("%w: no preview command configured", domain.ErrPreviewUnavailable)
	}

	outPath := filepath.Join(os.TempDir(), "arcgen-preview.png")
	defer os.Remove(outPath)

	line := strings.ReplaceAll(r.command, "{input}", drawingPath)
	line = strings.ReplaceAll(line, "{output}", outPath)

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", line)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", domain.ErrPreviewUnavailable, err, strings.TrimSpace(string(out)))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("%w: converter produced no image: %v", domain.ErrPreviewUnavailable, err)
	}
	return data, nil
}

var _ ports.Previewer = (*CommandRenderer)(nil)
