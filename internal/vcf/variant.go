package vcf

// Variant is one VCF site as decoded by Parser.
type Variant struct {
	Chrom string // as written, e.g. "12" or "chr12"
	Pos   int64  // 1-based
	ID    string // e.g. a COSMIC ID
	Ref   string
	Alt   string // comma-separated until split
}

// IsIndel reports whether REF and ALT differ in length.
func (v *Variant) IsIndel() bool {
	return len(v.Ref) != len(v.Alt)
}
