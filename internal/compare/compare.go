// Package compare measures per-gene boundary changes between a reference
// and an extended annotation set.
package compare

import (
	"sort"

	"github.com/inodb/geneext-qa/internal/annotation"
)

// Record is the comparison result for one gene present in both sets.
type Record struct {
	GeneID          string
	OldStart        int64
	OldEnd          int64
	NewStart        int64
	NewEnd          int64
	ExtensionLength int64
	Strand          annotation.Strand
}

// Summary aggregates extension statistics over one comparison. The
// median, max and min cover only genes with a strictly positive
// extension; they are all zero when no gene was extended.
type Summary struct {
	TotalGenes      int
	ExtendedGenes   int
	MedianExtension float64
	MaxExtension    int64
	MinExtension    int64
}

// Genes compares the two annotation sets over the intersection of their
// gene identifiers. Genes present in only one set are dropped; an empty
// intersection yields an empty slice, which is a normal outcome.
func Genes(ref, ext annotation.Set) []Record {
	var records []Record

	for id, refGene := range ref {
		extGene, ok := ext[id]
		if !ok {
			continue
		}
		records = append(records, Record{
			GeneID:          id,
			OldStart:        refGene.Start,
			OldEnd:          refGene.End,
			NewStart:        extGene.Start,
			NewEnd:          extGene.End,
			ExtensionLength: extensionLength(refGene, extGene),
			Strand:          refGene.Strand,
		})
	}

	return records
}

// extensionLength is the signed distance the downstream boundary moved,
// relative to the reference gene's strand. Unknown strands yield zero.
func extensionLength(ref, ext annotation.Gene) int64 {
	switch ref.Strand {
	case annotation.StrandForward:
		return ext.End - ref.End
	case annotation.StrandReverse:
		return ref.Start - ext.Start
	default:
		return 0
	}
}

// Summarize computes extension statistics over the records. Only genes
// with extension length > 0 count as extended.
func Summarize(records []Record) Summary {
	s := Summary{TotalGenes: len(records)}

	var lengths []int64
	for _, r := range records {
		if r.ExtensionLength > 0 {
			lengths = append(lengths, r.ExtensionLength)
		}
	}
	s.ExtendedGenes = len(lengths)
	if len(lengths) == 0 {
		return s
	}

	sort.Slice(lengths, func(i, j int) bool { return lengths[i] < lengths[j] })

	s.MinExtension = lengths[0]
	s.MaxExtension = lengths[len(lengths)-1]
	s.MedianExtension = median(lengths)

	return s
}

// median of a sorted slice; the mean of the two middle values for an
// even count.
func median(sorted []int64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}
