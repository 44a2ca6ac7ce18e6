package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/geneext-qa/internal/regress"
)

func runRegress(args []string) int {
	fs := flag.NewFlagSet("regress", flag.ExitOnError)

	var (
		genome      string
		bam         string
		pipelineCmd string
		workDir     string
		keep        bool
		verbose     bool
	)

	defaultGenome := viper.GetString("regress.genome")
	defaultBAM := viper.GetString("regress.bam")
	defaultPipeline := viper.GetString("pipeline.command")

	fs.StringVar(&genome, "g", defaultGenome, "Genome annotation file")
	fs.StringVar(&genome, "genome", defaultGenome, "Genome annotation file")
	fs.StringVar(&bam, "b", defaultBAM, "BAM alignment file")
	fs.StringVar(&bam, "bam", defaultBAM, "BAM alignment file")
	fs.StringVar(&pipelineCmd, "pipeline", defaultPipeline, "GeneExt command to run")
	fs.StringVar(&workDir, "workdir", ".", "Directory for run artifacts")
	fs.BoolVar(&keep, "keep", false, "Keep temporary files and outputs even on success")
	fs.BoolVar(&verbose, "v", false, "Verbose output")
	fs.BoolVar(&verbose, "verbose", false, "Verbose output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Run GeneExt twice, once from a BAM alignment and once from the peak
file derived by the first run, and check that both output annotations
are identical.

Usage:
  geneext-qa regress [options]

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  geneext-qa regress
  geneext-qa regress -g annotation.gtf -b alignments.bam
  geneext-qa regress --keep -v
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	command := strings.Fields(pipelineCmd)
	if len(command) == 0 {
		fmt.Fprintf(os.Stderr, "Error: empty pipeline command\n")
		return ExitError
	}

	logger := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			logger = l
			defer logger.Sync()
		}
	}

	h := regress.New(regress.Config{
		Annotation: genome,
		Alignment:  bam,
		Command:    command,
		WorkDir:    workDir,
		Keep:       keep,
		Verbose:    verbose,
	}, os.Stdout)
	h.SetLogger(logger)

	if err := h.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
