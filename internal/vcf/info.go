package vcf

import "strings"

// INFO keys and values written by the upstream classifier.
const (
	PredictionKey = "PRED"
	SomaticLabel  = "somatic"
)

// InfoColumn is the index of the INFO field in a VCF data line.
const InfoColumn = 7

// InfoValue returns the value of key in a semicolon-separated INFO string.
// Flag entries return an empty value with ok set.
func InfoValue(info, key string) (value string, ok bool) {
	if info == "." || info == "" {
		return "", false
	}
	for _, kv := range strings.Split(info, ";") {
		k, v, _ := strings.Cut(kv, "=")
		if k == key {
			return v, true
		}
	}
	return "", false
}

// IsSomaticPrediction reports whether a raw VCF data line is labelled
// PRED=somatic in its INFO field. Header and short lines are never somatic.
func IsSomaticPrediction(line string) bool {
	if line == "" || line[0] == '#' {
		return false
	}
	fields := strings.Split(line, "\t")
	if len(fields) <= InfoColumn {
		return false
	}
	v, ok := InfoValue(fields[InfoColumn], PredictionKey)
	return ok && v == SomaticLabel
}

// SetInfo sets key=value in the INFO field of a raw data line. An existing
// entry for key is replaced in place, otherwise the entry is appended.
// Other fields are left untouched and the field count is preserved.
// A missing INFO value (".") is replaced rather than extended.
func SetInfo(line, key, value string) (string, bool) {
	fields := strings.Split(line, "\t")
	if len(fields) <= InfoColumn {
		return line, false
	}

	entry := key + "=" + value
	info := fields[InfoColumn]
	if info == "." || info == "" {
		fields[InfoColumn] = entry
		return strings.Join(fields, "\t"), true
	}

	entries := strings.Split(info, ";")
	replaced := false
	kept := entries[:0]
	for _, kv := range entries {
		k, _, _ := strings.Cut(kv, "=")
		if k != key {
			kept = append(kept, kv)
			continue
		}
		if !replaced {
			kept = append(kept, entry)
			replaced = true
		}
	}
	if !replaced {
		kept = append(kept, entry)
	}
	fields[InfoColumn] = strings.Join(kept, ";")
	return strings.Join(fields, "\t"), true
}
