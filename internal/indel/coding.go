package indel

// CodingIndex answers point-containment queries against coding exons.
type CodingIndex interface {
	Contains(chrom string, pos int64) bool
}

// IsCoding reports whether the event position of in lies inside a coding
// exon. Only the normalized position is tested; partial overlaps of longer
// deletions are not considered.
func IsCoding(idx CodingIndex, in Indel) bool {
	return idx.Contains(in.Chrom, in.Pos)
}
