package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/arcgen/internal/domain"
)

// ANSI codes, emitted only when stdout is a terminal.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

func colorize(code, text string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return text
	}
	return code + text + colorReset
}

// RenderResponse prints the generation outcome in a friendly format.
func RenderResponse(w io.Writer, resp domain.GenerationResponse, err error) {
	if resp.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", resp.Category)
	}
	if resp.ModelUsed != "" {
		fmt.Fprintf(w, "Model: %s", resp.ModelUsed)
		if resp.FromCache {
			fmt.Fprint(w, " (cached)")
		}
		fmt.Fprintln(w)
	}
	if resp.SourcePath != "" {
		fmt.Fprintf(w, "Source: %s\n", resp.SourcePath)
	}

	for _, warning := range resp.Warnings {
		fmt.Fprintf(w, "%s %s\n", colorize(colorYellow, "warning:"), warning)
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRunTimeout):
			fmt.Fprintln(w, colorize(colorRed, "Script timed out and was terminated."))
		case errors.Is(err, domain.ErrExecutionBlocked):
			fmt.Fprintln(w, colorize(colorRed, "Execution blocked by guardrail; source left on disk for inspection."))
		default:
			fmt.Fprintf(w, "%s %v\n", colorize(colorRed, "error:"), err)
		}
		return
	}

	if resp.Execution != nil {
		if resp.Execution.Success {
			fmt.Fprintln(w, colorize(colorGreen, "Script executed successfully."))
		} else {
			fmt.Fprintf(w, "%s exit code %d\n", colorize(colorRed, "Script failed:"), resp.Execution.ExitCode)
		}
		if out := strings.TrimSpace(resp.Execution.Stdout); out != "" {
			fmt.Fprintln(w, "\nstdout:")
			fmt.Fprintln(w, out)
		}
		if errOut := strings.TrimSpace(resp.Execution.Stderr); errOut != "" {
			fmt.Fprintln(w, "\nstderr:")
			fmt.Fprintln(w, errOut)
		}
	} else {
		fmt.Fprintln(w, "Script written but not executed.")
	}

	if len(resp.Outputs) > 0 {
		fmt.Fprintln(w, "\nOutputs:")
		for _, out := range resp.Outputs {
			fmt.Fprintf(w, "  %s\n", formatOutput(out))
		}
	}
}
