package indel

import (
	"errors"
	"fmt"
)

// DefaultWindow is the number of reference bases fetched per request while
// walking left.
const DefaultWindow = 128

// Errors reported when the reference does not cover an indel. Both point at
// a reference or genome build mismatch for that one record rather than an
// I/O failure.
var (
	ErrUnknownContig = errors.New("contig not found in reference")
	ErrBeyondContig  = errors.New("position beyond end of contig")
)

// IsReferenceMismatch reports whether err is ErrUnknownContig or
// ErrBeyondContig.
func IsReferenceMismatch(err error) bool {
	return errors.Is(err, ErrUnknownContig) || errors.Is(err, ErrBeyondContig)
}

// Reference provides random access to reference sequence.
// Coordinates are 0-based, half-open. Ranges past the contig end are
// clamped; unknown contigs are reported with ErrUnknownContig.
type Reference interface {
	Fetch(chrom string, start, end int64) (string, error)
}

// Aligner shifts indels to their leftmost equivalent position.
type Aligner struct {
	ref    Reference
	window int64
}

// NewAligner creates an aligner reading from ref.
func NewAligner(ref Reference) *Aligner {
	return &Aligner{ref: ref, window: DefaultWindow}
}

// SetWindow sets the number of bases fetched per reference request.
func (a *Aligner) SetWindow(n int) {
	if n > 0 {
		a.window = int64(n)
	}
}

// LeftAlign returns the leftmost representation of in. While the reference
// base immediately preceding the event equals the last base of the indel
// sequence, the sequence is rotated right by one (last base dropped, the
// preceding base prepended) and the position decremented. Each step moves
// one base left, so the walk ends at position 1 at the latest.
func (a *Aligner) LeftAlign(in Indel) (Indel, error) {
	seq := []byte(in.Seq())
	if len(seq) == 0 || seq[0] == Absent[0] {
		return in, nil
	}

	pos := in.Pos
	var (
		buf      string
		bufStart int64 // 0-based offset of buf[0]
	)

	for pos > 1 {
		prev := pos - 2 // 0-based offset of the preceding base
		if buf == "" || prev < bufStart {
			end := pos - 1
			start := end - a.window
			if start < 0 {
				start = 0
			}
			s, err := a.ref.Fetch(in.Chrom, start, end)
			if err != nil {
				return Indel{}, fmt.Errorf("fetch %s:%d-%d: %w", in.Chrom, start, end, err)
			}
			if int64(len(s)) < end-start {
				return Indel{}, fmt.Errorf("%w: %s:%d", ErrBeyondContig, in.Chrom, in.Pos)
			}
			buf, bufStart = s, start
		}

		base := upper(buf[prev-bufStart])
		if base != upper(seq[len(seq)-1]) {
			break
		}

		copy(seq[1:], seq[:len(seq)-1])
		seq[0] = base
		pos--
	}

	if pos == in.Pos {
		return in, nil
	}
	return in.withSeq(pos, string(seq)), nil
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
