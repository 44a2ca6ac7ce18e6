package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/geneext-qa/internal/annotation"
	"github.com/inodb/geneext-qa/internal/compare"
)

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSummary(dir, compare.Summary{
		TotalGenes:      4,
		ExtendedGenes:   2,
		MedianExtension: 15,
		MaxExtension:    20,
		MinExtension:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SummaryFileName), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Total genes compared: 4\n"+
			"Number of extended genes: 2\n"+
			"Median extension length: 15\n"+
			"Max extension length: 20\n"+
			"Min extension length: 10\n",
		string(content))
}

func TestWriteSummary_FractionalMedian(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSummary(dir, compare.Summary{MedianExtension: 12.5})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Median extension length: 12.5\n")
}

func TestWriteTable(t *testing.T) {
	dir := t.TempDir()

	records := []compare.Record{
		{GeneID: "g1", OldStart: 100, OldEnd: 200, NewStart: 100, NewEnd: 250, ExtensionLength: 50, Strand: annotation.StrandForward},
		{GeneID: "g2", OldStart: 300, OldEnd: 400, NewStart: 260, NewEnd: 400, ExtensionLength: 40, Strand: annotation.StrandReverse},
	}

	path, err := WriteTable(dir, records)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, TableFileName), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"GeneID", "OldStart", "OldEnd", "NewStart", "NewEnd", "ExtensionLength", "Strand"}, rows[0])
	assert.Equal(t, []string{"g1", "100", "200", "100", "250", "50", "+"}, rows[1])
	assert.Equal(t, []string{"g2", "300", "400", "260", "400", "40", "-"}, rows[2])
}

func TestWriteTable_HeaderOnly(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTable(dir, nil)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GeneID,OldStart,OldEnd,NewStart,NewEnd,ExtensionLength,Strand\n", string(content))
	assert.Equal(t, 1, strings.Count(string(content), "\n"))
}
