package vcf

import (
	"fmt"
	"strings"
)

// DefaultSource is the header line prefix that identifies RNAIndel output.
const DefaultSource = "##source=RNAIndel"

// HasSource reports whether any header line starts with one of the given
// source signatures. Scanning stops at the first data line.
func HasSource(lines []string, signatures []string) bool {
	for _, line := range lines {
		if !strings.HasPrefix(line, "#") {
			return false
		}
		for _, sig := range signatures {
			if sig != "" && strings.HasPrefix(line, sig) {
				return true
			}
		}
	}
	return false
}

// InfoHeaderLine formats an ##INFO meta-information line.
func InfoHeaderLine(id, number, typ, description string) string {
	return fmt.Sprintf("##INFO=<ID=%s,Number=%s,Type=%s,Description=%q>", id, number, typ, description)
}

// InsertInfoHeader returns header with infoLine inserted directly before the
// #CHROM line. If an INFO line with the same ID is already declared, header
// is returned unchanged. A header without #CHROM gets the line appended.
func InsertInfoHeader(header []string, infoLine string) []string {
	if id := infoID(infoLine); id != "" {
		for _, line := range header {
			if infoID(line) == id {
				return header
			}
		}
	}

	out := make([]string, 0, len(header)+1)
	inserted := false
	for _, line := range header {
		if !inserted && strings.HasPrefix(line, "#CHROM") {
			out = append(out, infoLine)
			inserted = true
		}
		out = append(out, line)
	}
	if !inserted {
		out = append(out, infoLine)
	}
	return out
}

// infoID extracts ID from an ##INFO=<ID=...> line.
func infoID(line string) string {
	rest, ok := strings.CutPrefix(line, "##INFO=<ID=")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, ",>"); i >= 0 {
		return rest[:i]
	}
	return rest
}
