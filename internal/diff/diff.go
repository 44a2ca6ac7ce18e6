// Package diff implements the strict line-oriented equivalence check
// between two annotation output files.
package diff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultMaxReport caps how many mismatching lines are printed. The cap
// only limits diagnostic verbosity: the verdict is false as soon as any
// line differs.
const DefaultMaxReport = 5

// Checker compares two files line by line. The comparison is exact:
// no tolerance and no normalization beyond whitespace-trimming the
// lines printed for diagnosis.
type Checker struct {
	out       io.Writer
	maxReport int
}

// NewChecker creates a checker that writes diagnostics to out.
func NewChecker(out io.Writer) *Checker {
	return &Checker{out: out, maxReport: DefaultMaxReport}
}

// FilesEqual reports whether the two files have identical contents under
// a strict line-by-line comparison. A missing file is reported and
// counts as not equal; it is not an error.
func (c *Checker) FilesEqual(refPath, testPath string) bool {
	refLines, err := readLines(refPath)
	if err != nil {
		fmt.Fprintf(c.out, "File not found: %s\n", refPath)
		return false
	}
	testLines, err := readLines(testPath)
	if err != nil {
		fmt.Fprintf(c.out, "File not found: %s\n", testPath)
		return false
	}

	if len(refLines) != len(testLines) {
		fmt.Fprintf(c.out, "Files have different number of lines: %d vs %d\n",
			len(refLines), len(testLines))
		return false
	}

	diffs := 0
	for i := range refLines {
		if refLines[i] == testLines[i] {
			continue
		}
		diffs++
		fmt.Fprintf(c.out, "Difference at line %d:\n", i+1)
		fmt.Fprintf(c.out, "Ref:  %s\n", strings.TrimSpace(refLines[i]))
		fmt.Fprintf(c.out, "Test: %s\n", strings.TrimSpace(testLines[i]))
		if diffs >= c.maxReport {
			fmt.Fprintln(c.out, "... and more differences.")
			return false
		}
	}

	return diffs == 0
}

// readLines reads the whole file as a sequence of lines with their
// terminators preserved, so that a missing trailing newline is a
// detectable difference.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			lines = append(lines, line)
		}
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
