// Package regress runs the GeneExt pipeline in its two input modes and
// checks that both produce identical output annotations.
package regress

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/inodb/geneext-qa/internal/diff"
	"github.com/inodb/geneext-qa/internal/pipeline"
)

// Fixed artifact names within the work directory. The reference run is
// expected to leave its derived peak file at tmp_ref/allpeaks.bed; the
// test run consumes it directly.
const (
	refOutput   = "output_ref.gtf"
	testOutput  = "output_test.gtf"
	refTmpDir   = "tmp_ref"
	testTmpDir  = "tmp_test"
	peaksName   = "allpeaks.bed"
	pipelineLog = "GeneExt.log"
)

// ErrOutputsDiffer is returned when both runs complete but the two
// output annotation files are not identical.
var ErrOutputsDiffer = errors.New("output annotation files differ")

// Config holds everything one regression run needs. No component reads
// ambient process state; all paths are explicit.
type Config struct {
	Annotation string   // input GTF/GFF annotation
	Alignment  string   // input BAM alignment
	Command    []string // external pipeline command, e.g. ["python3", "geneext.py"]
	WorkDir    string   // directory owning all run artifacts
	Keep       bool     // preserve artifacts even on success
	Verbose    bool
}

// Harness drives the two pipeline runs and owns their artifacts for the
// duration of one invocation.
type Harness struct {
	cfg    Config
	out    io.Writer
	logger *zap.Logger
	runner *pipeline.Runner
}

// New creates a harness writing operator output to out.
func New(cfg Config, out io.Writer) *Harness {
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	runner := pipeline.NewRunner(cfg.Command)
	runner.SetVerbose(cfg.Verbose)
	return &Harness{
		cfg:    cfg,
		out:    out,
		logger: zap.NewNop(),
		runner: runner,
	}
}

// SetLogger sets the logger for diagnostic messages.
func (h *Harness) SetLogger(l *zap.Logger) {
	h.logger = l
	h.runner.SetLogger(l)
}

// Run executes the full regression: reference run from the alignment,
// test run from the derived peak file, then the equivalence check.
// Artifact cleanup or preservation runs exactly once, whichever path
// produced the outcome.
func (h *Harness) Run(ctx context.Context) error {
	if _, err := os.Stat(h.cfg.Annotation); err != nil {
		return fmt.Errorf("genome file not found: %s", h.cfg.Annotation)
	}
	if _, err := os.Stat(h.cfg.Alignment); err != nil {
		return fmt.Errorf("BAM file not found: %s", h.cfg.Alignment)
	}

	// Stale artifacts from a prior run must never produce a false success.
	h.removeArtifacts()

	success := false
	defer h.finalize(&success)

	refOut := h.path(refOutput)
	testOut := h.path(testOutput)

	fmt.Fprintln(h.out, "--- Running Mode 1: Reference (BAM input, --peak_perc 0) ---")
	if _, err := h.runner.Run(ctx,
		"-g", h.cfg.Annotation,
		"-b", h.cfg.Alignment,
		"-o", refOut,
		"-t", h.path(refTmpDir),
		"--peak_perc", "0",
	); err != nil {
		return h.surfaceRunError(err)
	}

	peaks := filepath.Join(h.path(refTmpDir), peaksName)
	if _, err := os.Stat(peaks); err != nil {
		return fmt.Errorf("peaks file not found at %s", peaks)
	}
	fmt.Fprintf(h.out, "Peaks file generated at: %s\n", peaks)

	fmt.Fprintln(h.out, "--- Running Mode 2: Test (Peaks input, skipping BAM) ---")
	if _, err := h.runner.Run(ctx,
		"-g", h.cfg.Annotation,
		"-p", peaks,
		"-o", testOut,
		"-t", h.path(testTmpDir),
	); err != nil {
		return h.surfaceRunError(err)
	}

	fmt.Fprintln(h.out, "--- Comparing Outputs ---")
	checker := diff.NewChecker(h.out)
	if !checker.FilesEqual(refOut, testOut) {
		fmt.Fprintln(h.out, "FAILURE: The outputs differ.")
		return ErrOutputsDiffer
	}

	fmt.Fprintln(h.out, "SUCCESS: The outputs are identical.")
	success = true
	return nil
}

// surfaceRunError prints the failing command and its captured streams so
// the operator can diagnose the external pipeline.
func (h *Harness) surfaceRunError(err error) error {
	var runErr *pipeline.RunError
	if errors.As(err, &runErr) {
		fmt.Fprintf(h.out, "Error running command: %s\n", runErr.Command)
		fmt.Fprintf(h.out, "STDOUT: %s\n", runErr.Stdout)
		fmt.Fprintf(h.out, "STDERR: %s\n", runErr.Stderr)
	}
	return err
}

func (h *Harness) path(name string) string {
	return filepath.Join(h.cfg.WorkDir, name)
}

// workArtifacts are the outputs and scratch directories of both runs.
func (h *Harness) workArtifacts() []string {
	return []string{
		h.path(refOutput),
		h.path(testOutput),
		h.path(refTmpDir),
		h.path(testTmpDir),
	}
}

// logArtifacts are the log files the pipeline writes alongside its outputs.
func (h *Harness) logArtifacts() []string {
	return []string{
		h.path(pipelineLog),
		h.path(refOutput) + "." + pipelineLog,
		h.path(testOutput) + "." + pipelineLog,
	}
}

func (h *Harness) removeArtifacts() {
	for _, p := range append(h.workArtifacts(), h.logArtifacts()...) {
		if err := os.RemoveAll(p); err != nil {
			h.logger.Warn("remove artifact", zap.String("path", p), zap.Error(err))
		}
	}
}

// finalize deletes all artifacts on success, unless the operator asked
// to keep them; on failure or with --keep it preserves everything and
// prints the locations.
func (h *Harness) finalize(success *bool) {
	if *success && !h.cfg.Keep {
		fmt.Fprintln(h.out, "Cleaning up...")
		h.removeArtifacts()
		return
	}

	if !*success {
		fmt.Fprintln(h.out, "\nComparison failed or harness error. Artifacts preserved for inspection:")
	} else {
		fmt.Fprintln(h.out, "\n--keep flag set. Artifacts preserved:")
	}

	fmt.Fprintf(h.out, "  Reference Output: %s\n", h.path(refOutput))
	fmt.Fprintf(h.out, "  Test Output:      %s\n", h.path(testOutput))
	fmt.Fprintf(h.out, "  Reference Temp:   %s\n", h.path(refTmpDir))
	fmt.Fprintf(h.out, "  Test Temp:        %s\n", h.path(testTmpDir))
	for _, log := range h.logArtifacts() {
		if _, err := os.Stat(log); err == nil {
			fmt.Fprintf(h.out, "  Log File:         %s\n", log)
		}
	}
}
