// Package genome provides random access to reference genome sequence.
package genome

import (
	"fmt"
	"io"
	"os"

	"github.com/biogo/hts/fai"

	"github.com/inodb/vibe-indel/internal/indel"
	"github.com/inodb/vibe-indel/internal/vcf"
)

// ErrUnknownContig is returned when a chromosome is not in the reference
// under any of its aliases.
var ErrUnknownContig = indel.ErrUnknownContig

// IndexedFASTA reads sequence ranges from a FASTA file through its .fai
// index without loading the genome into memory. It is safe for concurrent
// use.
type IndexedFASTA struct {
	file *os.File
	fa   *fai.File
	idx  fai.Index
}

// OpenIndexedFASTA opens a plain-text FASTA file. The index is read from
// path+".fai" when present, otherwise it is built by scanning the file.
func OpenIndexedFASTA(path string) (*IndexedFASTA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}

	idx, err := loadIndex(path, f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &IndexedFASTA{
		file: f,
		fa:   fai.NewFile(f, idx),
		idx:  idx,
	}, nil
}

func loadIndex(path string, f *os.File) (fai.Index, error) {
	if idxFile, err := os.Open(path + ".fai"); err == nil {
		defer idxFile.Close()
		idx, err := fai.ReadFrom(idxFile)
		if err != nil {
			return nil, fmt.Errorf("read FASTA index: %w", err)
		}
		return idx, nil
	}

	idx, err := fai.NewIndex(f)
	if err != nil {
		return nil, fmt.Errorf("index FASTA: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek FASTA file: %w", err)
	}
	return idx, nil
}

// Fetch returns the bases in [start, end) of chrom, 0-based. The range is
// clamped to the contig; an empty string means no bases are available.
func (r *IndexedFASTA) Fetch(chrom string, start, end int64) (string, error) {
	name, rec, ok := r.resolve(chrom)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownContig, chrom)
	}

	start, end = clamp(start, end, int64(rec.Length))
	if start >= end {
		return "", nil
	}

	seq, err := r.fa.SeqRange(name, int(start), int(end))
	if err != nil {
		return "", fmt.Errorf("seek %s:%d-%d: %w", name, start, end, err)
	}
	b, err := io.ReadAll(seq)
	if err != nil {
		return "", fmt.Errorf("read %s:%d-%d: %w", name, start, end, err)
	}
	return string(b), nil
}

// HasContig reports whether chrom resolves to a reference sequence.
func (r *IndexedFASTA) HasContig(chrom string) bool {
	_, _, ok := r.resolve(chrom)
	return ok
}

// ContigCount returns the number of indexed sequences.
func (r *IndexedFASTA) ContigCount() int {
	return len(r.idx)
}

func (r *IndexedFASTA) resolve(chrom string) (string, fai.Record, bool) {
	for _, name := range vcf.ChromAliases(chrom) {
		if rec, ok := r.idx[name]; ok {
			return name, rec, true
		}
	}
	return "", fai.Record{}, false
}

// Close closes the underlying FASTA file.
func (r *IndexedFASTA) Close() error {
	return r.file.Close()
}

func clamp(start, end, length int64) (int64, int64) {
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	return start, end
}
