package annotation

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGTFAttributes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:  "basic attributes",
			input: `gene_id "ENSG00000133703"; gene_name "KRAS"; gene_type "protein_coding";`,
			expected: map[string]string{
				"gene_id":   "ENSG00000133703",
				"gene_name": "KRAS",
				"gene_type": "protein_coding",
			},
		},
		{
			name:     "missing value is skipped",
			input:    `gene_id "g1"; broken`,
			expected: map[string]string{"gene_id": "g1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseGTFAttributes(tt.input)
			for key, want := range tt.expected {
				assert.Equal(t, want, result[key], "parseGTFAttributes()[%q]", key)
			}
		})
	}
}

func TestParseGFFAttributes(t *testing.T) {
	attrs := parseGFFAttributes("ID=gene:g1;Name=actin;biotype=protein_coding")
	assert.Equal(t, "gene:g1", attrs["ID"])
	assert.Equal(t, "actin", attrs["Name"])
	assert.Equal(t, "protein_coding", attrs["biotype"])
}

func TestGeneID(t *testing.T) {
	assert.Equal(t, "g1", geneID(map[string]string{"gene_id": "g1"}))
	assert.Equal(t, "g1", geneID(map[string]string{"ID": "gene:g1"}))
	assert.Equal(t, "g1", geneID(map[string]string{"ID": "g1"}))
	assert.Equal(t, "", geneID(map[string]string{"Name": "actin"}))
}

func TestParseStrand(t *testing.T) {
	assert.Equal(t, StrandForward, ParseStrand("+"))
	assert.Equal(t, StrandReverse, ParseStrand("-"))
	assert.Equal(t, StrandUnknown, ParseStrand("."))
	assert.Equal(t, StrandUnknown, ParseStrand(""))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"annotation.gtf", FormatGTF},
		{"annotation.GTF", FormatGTF},
		{"annotation.gff", FormatGFF},
		{"annotation.GFF3", FormatGFF},
		{"annotation.gff3.gz", FormatGFF},
		{"annotation.gtf.gz", FormatGTF},
		{"annotation.txt", FormatGTF}, // unrecognized defaults to GTF
		{"annotation", FormatGTF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectFormat(tt.path), "DetectFormat(%q)", tt.path)
	}
}

func TestParse_GTFGenes(t *testing.T) {
	gtfContent := `##description: Test GTF
chr1	HAVANA	gene	100	200	.	+	.	gene_id "g1"; gene_name "alpha";
chr1	HAVANA	transcript	100	200	.	+	.	gene_id "g1"; transcript_id "t1";
chr2	HAVANA	gene	300	450	.	-	.	gene_id "g2"; gene_name "beta";
chr2	HAVANA	gene	500	600	.	.	.	gene_id "g3";
malformed line
`

	genes, err := parse(strings.NewReader(gtfContent), FormatGTF)
	require.NoError(t, err)
	require.Len(t, genes, 3)

	g1 := genes["g1"]
	assert.Equal(t, int64(100), g1.Start)
	assert.Equal(t, int64(200), g1.End)
	assert.Equal(t, StrandForward, g1.Strand)

	assert.Equal(t, StrandReverse, genes["g2"].Strand)
	assert.Equal(t, StrandUnknown, genes["g3"].Strand)
}

func TestParse_GFF3Genes(t *testing.T) {
	gffContent := `##gff-version 3
chr1	ensembl	gene	100	200	.	+	.	ID=gene:g1;Name=alpha
chr1	ensembl	mRNA	100	200	.	+	.	ID=transcript:t1;Parent=gene:g1
chr1	ensembl	gene	500	900	.	-	.	ID=g2
`

	genes, err := parse(strings.NewReader(gffContent), FormatGFF)
	require.NoError(t, err)
	require.Len(t, genes, 2)

	assert.Equal(t, Gene{ID: "g1", Start: 100, End: 200, Strand: StrandForward}, genes["g1"])
	assert.Equal(t, Gene{ID: "g2", Start: 500, End: 900, Strand: StrandReverse}, genes["g2"])
}

func TestLoad_GzipFile(t *testing.T) {
	content := "chr1\tsrc\tgene\t10\t20\t.\t+\t.\tgene_id \"g1\";\n"

	path := filepath.Join(t.TempDir(), "annotation.gtf.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	genes, err := Load(path)
	require.NoError(t, err)
	require.Len(t, genes, 1)
	assert.Equal(t, int64(10), genes["g1"].Start)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.gtf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open annotation file")
}
