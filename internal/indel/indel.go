// Package indel converts VCF indel records into the canonical,
// position-shifted representation used for identity comparison.
//
// In canonical form the event position is the first affected base (for a
// deletion, the first deleted base; for an insertion, the base after the
// insertion point) and the absent allele is written as "-":
//
//	VCF      1  4  AGTA  A     ->  chr1  5  GTA  -
//	VCF      1  4  A     AGTA  ->  chr1  5  -    GTA
package indel

import "fmt"

// Absent is the sentinel for the missing allele of an insertion or deletion.
const Absent = "-"

// Indel is a canonical insertion or deletion. The struct is comparable and
// is used directly as a map key; two records describing the same event
// canonicalize to equal values.
type Indel struct {
	Chrom string // chr-prefixed chromosome
	Pos   int64  // 1-based position of the event
	Ref   string // deleted bases, or Absent
	Alt   string // inserted bases, or Absent
}

// IsInsertion returns true if the indel is an insertion.
func (in Indel) IsInsertion() bool {
	return in.Ref == Absent
}

// IsDeletion returns true if the indel is a deletion.
func (in Indel) IsDeletion() bool {
	return in.Alt == Absent
}

// Seq returns the inserted or deleted sequence.
func (in Indel) Seq() string {
	if in.IsInsertion() {
		return in.Alt
	}
	return in.Ref
}

// withSeq returns a copy of in at pos carrying seq on its non-absent side.
func (in Indel) withSeq(pos int64, seq string) Indel {
	out := Indel{Chrom: in.Chrom, Pos: pos, Ref: Absent, Alt: Absent}
	if in.IsInsertion() {
		out.Alt = seq
	} else {
		out.Ref = seq
	}
	return out
}

func (in Indel) String() string {
	return fmt.Sprintf("%s:%d:%s>%s", in.Chrom, in.Pos, in.Ref, in.Alt)
}
