// Package report persists comparison results as flat output files.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/inodb/geneext-qa/internal/compare"
)

// Fixed output filenames, written next to the extended annotation input.
const (
	SummaryFileName = "ComparisonSummary.txt"
	TableFileName   = "ComparisonTable.csv"
)

// WriteSummary writes the human-readable summary block into dir and
// returns the path of the written file.
func WriteSummary(dir string, s compare.Summary) (string, error) {
	path := filepath.Join(dir, SummaryFileName)

	text := fmt.Sprintf(
		"Total genes compared: %d\n"+
			"Number of extended genes: %d\n"+
			"Median extension length: %s\n"+
			"Max extension length: %d\n"+
			"Min extension length: %d\n",
		s.TotalGenes,
		s.ExtendedGenes,
		strconv.FormatFloat(s.MedianExtension, 'g', -1, 64),
		s.MaxExtension,
		s.MinExtension,
	)

	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

// WriteTable writes the full per-gene comparison table as CSV into dir
// and returns the path of the written file. Row order follows the order
// of records.
func WriteTable(dir string, records []compare.Record) (string, error) {
	path := filepath.Join(dir, TableFileName)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"GeneID", "OldStart", "OldEnd", "NewStart", "NewEnd", "ExtensionLength", "Strand"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write table header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.GeneID,
			strconv.FormatInt(r.OldStart, 10),
			strconv.FormatInt(r.OldEnd, 10),
			strconv.FormatInt(r.NewStart, 10),
			strconv.FormatInt(r.NewEnd, 10),
			strconv.FormatInt(r.ExtensionLength, 10),
			r.Strand.String(),
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write table row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush table: %w", err)
	}
	return path, nil
}
