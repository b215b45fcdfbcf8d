package indel

import (
	"strconv"
	"strings"

	"github.com/inodb/vibe-indel/internal/vcf"
)

// Canonicalize converts one VCF ref/alt pair into canonical form.
// The common suffix is trimmed first, keeping at least one base on each
// side, then the common prefix length n is counted; the event sits at
// pos+n. ok is false when the pair is not an indel (equal trimmed lengths,
// empty or symbolic alleles). A pair that is already canonical is returned
// as is, so Canonicalize is idempotent.
func Canonicalize(chrom string, pos int64, ref, alt string) (Indel, bool) {
	chrom = vcf.CanonicalChrom(chrom)

	if ref == Absent || alt == Absent {
		if ref == alt || ref == "" || alt == "" {
			return Indel{}, false
		}
		return Indel{Chrom: chrom, Pos: pos, Ref: ref, Alt: alt}, true
	}

	if ref == "" || alt == "" || isSymbolic(alt) {
		return Indel{}, false
	}

	ref, alt = rightTrim(ref, alt)
	n := countPaddingBases(ref, alt)

	switch {
	case len(ref) < len(alt):
		return Indel{Chrom: chrom, Pos: pos + int64(n), Ref: Absent, Alt: alt[n:]}, true
	case len(ref) > len(alt):
		return Indel{Chrom: chrom, Pos: pos + int64(n), Ref: ref[n:], Alt: Absent}, true
	default:
		return Indel{}, false
	}
}

// rightTrim strips the longest common suffix of ref and alt while both keep
// at least one base.
func rightTrim(ref, alt string) (string, string) {
	for len(ref) > 1 && len(alt) > 1 && ref[len(ref)-1] == alt[len(alt)-1] {
		ref = ref[:len(ref)-1]
		alt = alt[:len(alt)-1]
	}
	return ref, alt
}

// countPaddingBases returns the length of the common prefix of ref and alt.
func countPaddingBases(ref, alt string) int {
	n := 0
	for n < len(ref) && n < len(alt) && ref[n] == alt[n] {
		n++
	}
	return n
}

// isSymbolic reports whether alt is a missing, spanning or symbolic allele.
func isSymbolic(alt string) bool {
	return alt == "." || alt == "*" || strings.HasPrefix(alt, "<") || strings.ContainsAny(alt, "[]")
}

// FromLine parses one raw VCF data line into zero or more canonical indels,
// one per indel allele of the ALT field. Header lines, malformed lines,
// substitutions and non-canonical chromosomes produce no indels.
func FromLine(line string) []Indel {
	if line == "" || line[0] == '#' {
		return nil
	}

	fields := strings.SplitN(line, "\t", 6)
	if len(fields) < 5 {
		return nil
	}

	chrom := vcf.CanonicalChrom(fields[0])
	if !vcf.IsCanonicalChrom(chrom) {
		return nil
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil
	}

	return fromAlleles(chrom, pos, fields[3], strings.Split(fields[4], ","))
}

// FromVariant canonicalizes every indel allele of a parsed VCF variant.
func FromVariant(v *vcf.Variant) []Indel {
	chrom := vcf.CanonicalChrom(v.Chrom)
	if !vcf.IsCanonicalChrom(chrom) {
		return nil
	}
	var out []Indel
	for _, sv := range vcf.SplitMultiAllelic(v) {
		if !sv.IsIndel() {
			continue
		}
		if in, ok := Canonicalize(chrom, sv.Pos, sv.Ref, sv.Alt); ok {
			out = append(out, in)
		}
	}
	return out
}

func fromAlleles(chrom string, pos int64, ref string, alts []string) []Indel {
	var out []Indel
	for _, alt := range alts {
		if in, ok := Canonicalize(chrom, pos, ref, alt); ok {
			out = append(out, in)
		}
	}
	return out
}
