package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inodb/geneext-qa/internal/annotation"
	"github.com/inodb/geneext-qa/internal/compare"
	"github.com/inodb/geneext-qa/internal/report"
)

func runCompare(args []string) int {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compare gene boundaries between an original and an extended annotation.

Usage:
  geneext-qa compare <reference-file> <extended-file>

Arguments:
  <reference-file>  Original GTF/GFF annotation
  <extended-file>   Extended GTF/GFF annotation produced by GeneExt

Reports are written next to the extended annotation:
  ComparisonSummary.txt   extension statistics
  ComparisonTable.csv     per-gene comparison table
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "Error: reference and extended file arguments required\n\n")
		fs.Usage()
		return ExitUsage
	}

	refPath := fs.Arg(0)
	extPath := fs.Arg(1)

	if _, err := os.Stat(refPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Reference file not found: %s\n", refPath)
		return ExitError
	}
	if _, err := os.Stat(extPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: Extended file not found: %s\n", extPath)
		return ExitError
	}

	fmt.Printf("Loading genes from %s...\n", refPath)
	refGenes, err := annotation.Load(refPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading genes from %s: %v\n", refPath, err)
		return ExitError
	}
	fmt.Printf("Loaded %d genes from reference.\n", len(refGenes))

	fmt.Printf("Loading genes from %s...\n", extPath)
	extGenes, err := annotation.Load(extPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading genes from %s: %v\n", extPath, err)
		return ExitError
	}
	fmt.Printf("Loaded %d genes from extended file.\n", len(extGenes))

	records := compare.Genes(refGenes, extGenes)
	fmt.Printf("Found %d common genes.\n", len(records))

	if len(records) == 0 {
		fmt.Println("No common genes found or no comparison results generated.")
		return ExitSuccess
	}

	summary := compare.Summarize(records)

	absExt, err := filepath.Abs(extPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	outDir := filepath.Dir(absExt)

	summaryPath, err := report.WriteSummary(outDir, summary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	tablePath, err := report.WriteTable(outDir, records)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Println("Comparison complete.")
	fmt.Printf("Summary written to: %s\n", summaryPath)
	fmt.Printf("Table written to: %s\n", tablePath)
	return ExitSuccess
}
