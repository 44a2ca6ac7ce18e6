// Package annotation loads gene records from GTF and GFF annotation files.
package annotation

// Strand is the genomic strand of a gene.
type Strand byte

const (
	StrandForward Strand = '+'
	StrandReverse Strand = '-'
	StrandUnknown Strand = '.'
)

// ParseStrand converts the strand column of an annotation line.
// Anything other than "+" or "-" is treated as unknown.
func ParseStrand(s string) Strand {
	switch s {
	case "+":
		return StrandForward
	case "-":
		return StrandReverse
	default:
		return StrandUnknown
	}
}

func (s Strand) String() string {
	return string(byte(s))
}

// Gene is a single gene record. Coordinates are 1-based inclusive,
// End >= Start. Records are immutable once loaded.
type Gene struct {
	ID     string
	Start  int64
	End    int64
	Strand Strand
}

// Set maps gene identifiers to gene records. Identifiers are unique
// within one annotation file, so later duplicates overwrite earlier ones.
type Set map[string]Gene
