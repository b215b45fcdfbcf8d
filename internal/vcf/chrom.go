package vcf

import "strings"

// CanonicalChrom returns the chr-prefixed form of a chromosome name.
// "MT" and "chrMT" map to "chrM".
func CanonicalChrom(chrom string) string {
	if !strings.HasPrefix(chrom, "chr") {
		chrom = "chr" + chrom
	}
	if chrom == "chrMT" {
		return "chrM"
	}
	return chrom
}

// IsCanonicalChrom reports whether chrom names one of the primary assembled
// chromosomes (1-22, X, Y, M), with or without the chr prefix.
// Unplaced, random and alternate contigs are rejected.
func IsCanonicalChrom(chrom string) bool {
	name := strings.TrimPrefix(CanonicalChrom(chrom), "chr")
	switch name {
	case "X", "Y", "M":
		return true
	}
	if len(name) == 0 || len(name) > 2 || name[0] == '0' {
		return false
	}
	n := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
	}
	return n >= 1 && n <= 22
}

// ChromAliases returns the names a chromosome may carry in an external
// resource, most likely first: the name as given, the opposite chr-prefix
// convention, and the MT/M spelling of the mitochondrial genome.
func ChromAliases(chrom string) []string {
	bare := strings.TrimPrefix(chrom, "chr")
	aliases := []string{chrom}
	add := func(name string) {
		for _, a := range aliases {
			if a == name {
				return
			}
		}
		aliases = append(aliases, name)
	}
	add(bare)
	add("chr" + bare)
	switch bare {
	case "M":
		add("MT")
		add("chrMT")
	case "MT":
		add("M")
		add("chrM")
	}
	return aliases
}
