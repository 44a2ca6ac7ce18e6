// Package pipeline invokes the external GeneExt program as a subprocess.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// RunError is returned when the external program exits with a non-zero
// status. It carries the full command line and both captured streams so
// the caller can surface them to the operator verbatim.
type RunError struct {
	Command string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("command failed: %s: %v", e.Command, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Runner executes one external program. The program path and any fixed
// leading arguments are set once; per-invocation arguments are appended
// by Run. Arguments are passed literally, never through a shell.
type Runner struct {
	program string
	args    []string
	verbose bool
	logger  *zap.Logger
}

// NewRunner creates a runner for the given command. The first element is
// the program path, the rest are fixed leading arguments (e.g. the script
// path when the pipeline is run through an interpreter).
func NewRunner(command []string) *Runner {
	r := &Runner{logger: zap.NewNop()}
	if len(command) > 0 {
		r.program = command[0]
		r.args = command[1:]
	}
	return r
}

// SetVerbose configures whether each command line is echoed before running.
func (r *Runner) SetVerbose(v bool) {
	r.verbose = v
}

// SetLogger sets the logger for diagnostic messages.
func (r *Runner) SetLogger(l *zap.Logger) {
	r.logger = l
}

// CommandLine returns the printable command line for the given arguments.
func (r *Runner) CommandLine(args ...string) string {
	parts := append([]string{r.program}, r.args...)
	parts = append(parts, args...)
	return strings.Join(parts, " ")
}

// Run executes the program with the given arguments and waits for it to
// finish. On exit status 0 the captured stdout is returned. Any other
// outcome returns a *RunError with both captured streams; this is fatal
// for the caller and never retried.
func (r *Runner) Run(ctx context.Context, args ...string) (string, error) {
	cmdLine := r.CommandLine(args...)
	if r.verbose {
		r.logger.Info("running command", zap.String("cmd", cmdLine))
	}

	cmd := exec.CommandContext(ctx, r.program, append(append([]string{}, r.args...), args...)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &RunError{
			Command: cmdLine,
			Stdout:  stdout.String(),
			Stderr:  stderr.String(),
			Err:     err,
		}
	}

	return stdout.String(), nil
}
