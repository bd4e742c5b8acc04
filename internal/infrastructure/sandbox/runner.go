// Package sandbox runs generated scripts as isolated child processes with
// a hard wall-clock timeout.
package sandbox

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"time"

	"github.com/doeshing/arcgen/internal/domain"
	"github.com/doeshing/arcgen/internal/ports"
)

// Runner executes a source file with the configured interpreter. The child
// inherits the caller's environment and no extra privileges; its working
// directory is the workspace so relative artifact paths land there.
type Runner struct {
	interpreter string
	workDir     string
}

// NewRunner builds a runner. interpreter defaults to python3.
func NewRunner(interpreter, workDir string) *Runner {
	if interpreter == "" {
		interpreter = "python3"
	}
	return &Runner{interpreter: interpreter, workDir: workDir}
}

// Run implements ports.ScriptRunner. It blocks until the child exits or the
// timeout fires. On timeout the child is terminated and domain.ErrRunTimeout
// is returned with no result. On normal completion the exit code and both
// captured streams are returned regardless of success; interpreting the
// exit code is the caller's responsibility.
func (r *Runner) Run(ctx context.Context, sourcePath string, timeout time.Duration) (domain.ExecutionResult, error) {
	if timeout <= 0 {
		timeout = domain.DefaultRunTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.interpreter, sourcePath)
	cmd.Dir = r.workDir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Run the interpreter in its own process group and kill the whole group
	// on timeout. Killing only the direct child would leave grandchildren
	// running with the output pipes still open, and Wait would block on them.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
	// Backstop for descendants that escaped the group: give up on the pipes
	// shortly after the deadline instead of waiting for them to close.
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start).Milliseconds()

	if runCtx.Err() == context.DeadlineExceeded {
		return domain.ExecutionResult{}, domain.ErrRunTimeout
	}

	result := domain.ExecutionResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		DurationMS: duration,
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
		result.Success = true
	case errors.Is(err, exec.ErrWaitDelay):
		// The script exited cleanly but an orphaned descendant kept the
		// output pipes open; the captured streams may be truncated.
		result.ExitCode = 0
		result.Success = true
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		result.Success = false
	default:
		// Interpreter missing, unreadable file, and friends.
		return domain.ExecutionResult{}, err
	}
	return result, nil
}

var _ ports.ScriptRunner = (*Runner)(nil)
