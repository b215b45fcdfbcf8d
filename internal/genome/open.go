package genome

import (
	"fmt"

	"github.com/inodb/vibe-indel/internal/vcf"
)

// Reference is a closable reference sequence accessor.
type Reference interface {
	Fetch(chrom string, start, end int64) (string, error)
	ContigCount() int
	Close() error
}

// Open opens a reference FASTA. Plain files are accessed through their
// .fai index; gzipped files are loaded into memory.
func Open(path string) (Reference, error) {
	rc, gzipped, err := vcf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	rc.Close()

	if gzipped {
		return LoadMemoryFASTA(path)
	}
	return OpenIndexedFASTA(path)
}
