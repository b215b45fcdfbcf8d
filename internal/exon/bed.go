package exon

import (
	"fmt"
	"os"

	"github.com/vertgenlab/gonomics/bed"

	"github.com/inodb/vibe-indel/internal/vcf"
)

// LoadBED reads coding exons from a plain or gzipped (.gz) BED file
// (e.g. refCodingExon.bed.gz). BED intervals are 0-based half-open and are
// converted to 1-based closed coordinates. Lines starting with '#' are
// skipped.
func LoadBED(path string) (exons []Exon, err error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open BED file: %w", err)
	}

	// bed.Read panics on lines it cannot parse.
	defer func() {
		if r := recover(); r != nil {
			exons, err = nil, fmt.Errorf("read BED file %s: %v", path, r)
		}
	}()

	records := bed.Read(path)
	exons = make([]Exon, 0, len(records))
	for _, b := range records {
		exons = append(exons, fromBed(b))
	}
	return exons, nil
}

func fromBed(b bed.Bed) Exon {
	return Exon{
		Chrom: vcf.CanonicalChrom(b.Chrom),
		Start: int64(b.ChromStart) + 1,
		End:   int64(b.ChromEnd),
		Name:  b.Name,
	}
}
