package annotation

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Format selects the attribute syntax used by an annotation file.
type Format int

const (
	FormatGTF Format = iota // key "value"; pairs (GTF / GFF2)
	FormatGFF               // key=value pairs (GFF3)
)

// DetectFormat picks the parser from the file extension, case-insensitively.
// A trailing .gz is stripped first. Unrecognized extensions default to GTF.
func DetectFormat(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".gz") {
		lower = lower[:len(lower)-3]
	}
	switch filepath.Ext(lower) {
	case ".gff", ".gff3":
		return FormatGFF
	default:
		return FormatGTF
	}
}

// Load reads all gene features from the annotation file at path.
// The file may be gzip-compressed.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotation file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return parse(reader, DetectFormat(path))
}

// parse reads gene features from annotation content in the given format.
// Non-gene features, comments and malformed lines are skipped.
func parse(reader io.Reader, format Format) (Set, error) {
	scanner := bufio.NewScanner(reader)
	// Attribute columns can be long
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	genes := make(Set)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			continue
		}
		if fields[2] != "gene" {
			continue
		}

		start, err := strconv.ParseInt(fields[3], 10, 64)
		if err != nil {
			continue
		}
		end, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			continue
		}

		var attrs map[string]string
		if format == FormatGFF {
			attrs = parseGFFAttributes(fields[8])
		} else {
			attrs = parseGTFAttributes(fields[8])
		}

		id := geneID(attrs)
		if id == "" {
			continue
		}

		genes[id] = Gene{
			ID:     id,
			Start:  start,
			End:    end,
			Strand: ParseStrand(fields[6]),
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan annotation: %w", err)
	}

	return genes, nil
}

// geneID extracts the gene identifier from a parsed attribute map.
// GTF uses gene_id; GFF3 uses ID, sometimes with a "gene:" prefix.
func geneID(attrs map[string]string) string {
	if id := attrs["gene_id"]; id != "" {
		return id
	}
	id := attrs["ID"]
	return strings.TrimPrefix(id, "gene:")
}

// parseGTFAttributes parses a GTF/GFF2 attribute column.
// Format: key "value"; key "value"; ...
func parseGTFAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}
		key := part[:idx]
		value := strings.TrimSpace(part[idx+1:])
		value = strings.Trim(value, "\"")
		attrs[key] = value
	}

	return attrs
}

// parseGFFAttributes parses a GFF3 attribute column.
// Format: key=value;key=value;...
func parseGFFAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idx := strings.Index(part, "=")
		if idx == -1 {
			continue
		}
		attrs[part[:idx]] = part[idx+1:]
	}

	return attrs
}
