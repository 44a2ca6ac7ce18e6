// Package main provides the geneext-qa command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("geneext-qa version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "regress":
		return runRegress(args[1:])
	case "compare":
		return runCompare(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

// initConfig loads defaults and the optional ~/.geneext-qa.yaml config file.
func initConfig() {
	viper.SetDefault("pipeline.command", "python3 geneext.py")
	viper.SetDefault("regress.genome", "test_data/annotation.gtf")
	viper.SetDefault("regress.bam", "test_data/alignments.bam")

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.SetConfigName(".geneext-qa")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	// A missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `geneext-qa - QA tooling for the GeneExt annotation-extension pipeline

Usage:
  geneext-qa [options] <command> [arguments]

Commands:
  regress     Run GeneExt in BAM and peak input modes and check the outputs match
  compare     Compare gene boundaries between an original and an extended annotation
  config      Manage geneext-qa configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Check that both GeneExt input modes produce identical annotations
  geneext-qa regress -g test_data/annotation.gtf -b test_data/alignments.bam

  # Keep run artifacts even when the check succeeds
  geneext-qa regress --keep

  # Quantify per-gene extensions between two annotations
  geneext-qa compare annotation.gtf output_ref.gtf

For more information on a command, use:
  geneext-qa <command> --help
`)
}
