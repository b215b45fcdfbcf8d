package vcf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasSource(t *testing.T) {
	lines := []string{
		"##fileformat=VCFv4.2",
		"##source=RNAIndel",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
	}
	assert.True(t, HasSource(lines, []string{DefaultSource}))
	assert.False(t, HasSource(lines, []string{"##source=Mutect2"}))
	assert.True(t, HasSource(lines, []string{"##source=Mutect2", "##source=RNA"}))

	// Signatures after the header do not count.
	body := []string{"#CHROM", "1\t4\t.\tA\tAG\t.\t.\t##source=RNAIndel"}
	assert.False(t, HasSource(body, []string{"##source=RNAIndel"}))
	assert.False(t, HasSource(lines, []string{""}))
}

func TestInsertInfoHeader(t *testing.T) {
	header := []string{
		"##fileformat=VCFv4.2",
		"##INFO=<ID=PRED,Number=1,Type=String,Description=\"Prediction\">",
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO",
	}
	rec := InfoHeaderLine("REC", "1", "Integer", "Recurrence in the input cohort")
	assert.Equal(t, `##INFO=<ID=REC,Number=1,Type=Integer,Description="Recurrence in the input cohort">`, rec)

	got := InsertInfoHeader(header, rec)
	assert.Equal(t, []string{header[0], header[1], rec, header[2]}, got)

	// Already declared: unchanged.
	assert.Equal(t, got, InsertInfoHeader(got, rec))

	// No #CHROM line: appended.
	assert.Equal(t, []string{"##fileformat=VCFv4.2", rec}, InsertInfoHeader(header[:1], rec))
}

func TestInfoValue(t *testing.T) {
	tests := []struct {
		info, key string
		want      string
		ok        bool
	}{
		{"PRED=somatic;PROB=0.9", "PRED", "somatic", true},
		{"PRED=somatic;PROB=0.9", "PROB", "0.9", true},
		{"DB;PRED=somatic", "DB", "", true},
		{"PREDX=somatic", "PRED", "", false},
		{".", "PRED", "", false},
	}
	for _, tt := range tests {
		got, ok := InfoValue(tt.info, tt.key)
		assert.Equal(t, tt.ok, ok, "%s in %s", tt.key, tt.info)
		assert.Equal(t, tt.want, got, "%s in %s", tt.key, tt.info)
	}
}

func TestIsSomaticPrediction(t *testing.T) {
	assert.True(t, IsSomaticPrediction("1\t4\t.\tA\tAGTA\t.\tPASS\tPRED=somatic;PROB=0.9"))
	assert.False(t, IsSomaticPrediction("1\t4\t.\tA\tAGTA\t.\tPASS\tPRED=germline"))
	assert.False(t, IsSomaticPrediction("##INFO=<ID=PRED,Description=\"PRED=somatic\">"))
	assert.False(t, IsSomaticPrediction("1\t4\t.\tA\tAGTA"))
	assert.False(t, IsSomaticPrediction(""))
}

func TestSetInfo(t *testing.T) {
	line := "1\t4\t.\tA\tAGTA\t.\tPASS\tPRED=somatic\tGT\t0/1"
	got, ok := SetInfo(line, "REC", "3")
	assert.True(t, ok)
	assert.Equal(t, "1\t4\t.\tA\tAGTA\t.\tPASS\tPRED=somatic;REC=3\tGT\t0/1", got)

	got, ok = SetInfo("1\t4\t.\tA\tAGTA\t.\tPASS\t.", "REC", "2")
	assert.True(t, ok)
	assert.Equal(t, "1\t4\t.\tA\tAGTA\t.\tPASS\tREC=2", got)

	_, ok = SetInfo("1\t4", "REC", "2")
	assert.False(t, ok)
}

func TestSetInfo_ReplacesExisting(t *testing.T) {
	line := "1\t4\t.\tA\tAGTA\t.\tPASS\tPRED=somatic;REC=3;PROB=0.91\tGT\t0/1"
	got, ok := SetInfo(line, "REC", "5")
	assert.True(t, ok)
	assert.Equal(t, "1\t4\t.\tA\tAGTA\t.\tPASS\tPRED=somatic;REC=5;PROB=0.91\tGT\t0/1", got)

	again, _ := SetInfo(got, "REC", "5")
	assert.Equal(t, got, again)

	// Duplicated entries collapse into one.
	got, _ = SetInfo("1\t4\t.\tA\tAGTA\t.\tPASS\tREC=3;REC=3", "REC", "3")
	assert.Equal(t, "1\t4\t.\tA\tAGTA\t.\tPASS\tREC=3", got)

	// A key sharing a prefix is a different entry.
	got, _ = SetInfo("1\t4\t.\tA\tAGTA\t.\tPASS\tRECX=1", "REC", "2")
	assert.Equal(t, "1\t4\t.\tA\tAGTA\t.\tPASS\tRECX=1;REC=2", got)
}

func TestCanonicalChrom(t *testing.T) {
	tests := map[string]string{
		"1":     "chr1",
		"chr1":  "chr1",
		"X":     "chrX",
		"MT":    "chrM",
		"chrMT": "chrM",
		"chrM":  "chrM",
	}
	for in, want := range tests {
		assert.Equal(t, want, CanonicalChrom(in), in)
	}
}

func TestIsCanonicalChrom(t *testing.T) {
	for _, c := range []string{"1", "chr1", "22", "chr22", "X", "chrY", "M", "MT", "chrM"} {
		assert.True(t, IsCanonicalChrom(c), c)
	}
	for _, c := range []string{"0", "23", "chr01", "chrUn_gl000220", "chr1_KI270706v1_random", "GL000192.1", "", "chr"} {
		assert.False(t, IsCanonicalChrom(c), c)
	}
}

func TestChromAliases(t *testing.T) {
	assert.Equal(t, []string{"chr1", "1"}, ChromAliases("chr1"))
	assert.Equal(t, []string{"1", "chr1"}, ChromAliases("1"))
	assert.Equal(t, []string{"chrM", "M", "MT", "chrMT"}, ChromAliases("chrM"))
}
