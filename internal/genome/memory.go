package genome

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/inodb/vibe-indel/internal/vcf"
)

// MemoryFASTA holds whole reference sequences in memory. It is used for
// gzip-compressed FASTA files, which cannot be randomly accessed, and for
// small references in tests.
type MemoryFASTA struct {
	sequences map[string]string // contig name -> sequence
}

// NewMemoryFASTA creates a reference from contig sequences.
func NewMemoryFASTA(sequences map[string]string) *MemoryFASTA {
	return &MemoryFASTA{sequences: sequences}
}

// LoadMemoryFASTA parses a plain or gzipped FASTA file into memory.
func LoadMemoryFASTA(path string) (*MemoryFASTA, error) {
	rc, _, err := vcf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer rc.Close()

	m := &MemoryFASTA{sequences: make(map[string]string)}
	if err := m.parseFASTA(rc); err != nil {
		return nil, err
	}
	return m, nil
}

// parseFASTA parses FASTA content. The contig name is the first word of the
// header line.
func (m *MemoryFASTA) parseFASTA(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max line

	var currentID string
	var currentSeq strings.Builder

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, ">") {
			if currentID != "" {
				m.sequences[currentID] = currentSeq.String()
			}
			currentID = parseHeader(line)
			currentSeq.Reset()
		} else {
			currentSeq.WriteString(strings.TrimSpace(line))
		}
	}

	if currentID != "" {
		m.sequences[currentID] = currentSeq.String()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan FASTA: %w", err)
	}

	return nil
}

// parseHeader extracts the contig name from a FASTA header line.
func parseHeader(header string) string {
	header = strings.TrimPrefix(header, ">")
	if idx := strings.IndexAny(header, " \t"); idx != -1 {
		return header[:idx]
	}
	return header
}

// Fetch returns the bases in [start, end) of chrom, 0-based, clamped to
// the contig.
func (m *MemoryFASTA) Fetch(chrom string, start, end int64) (string, error) {
	for _, name := range vcf.ChromAliases(chrom) {
		seq, ok := m.sequences[name]
		if !ok {
			continue
		}
		start, end = clamp(start, end, int64(len(seq)))
		if start >= end {
			return "", nil
		}
		return seq[start:end], nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownContig, chrom)
}

// ContigCount returns the number of loaded sequences.
func (m *MemoryFASTA) ContigCount() int {
	return len(m.sequences)
}

// Close is a no-op; it lets MemoryFASTA stand in for IndexedFASTA.
func (m *MemoryFASTA) Close() error {
	return nil
}
