package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "##fileformat=VCFv4.2\n" +
	"##source=RNAIndel\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"

const cosmicVCF = "##fileformat=VCFv4.1\n" +
	"##source=COSMICv99\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
	"1\t4\tCOSV1\tA\tAGTA\t.\t.\tGENE=G1\n" +
	"2\t100\tCOSV2\tCTT\tC\t.\t.\tGENE=G2\n"

// execute runs the root command with a fresh viper state. HOME must be set
// by the caller.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	verbose = false

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestRecurrenceEndToEnd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	db := filepath.Join(dir, "cosmic.duckdb")
	_, err := execute(t, "cosmic", "load", "--cosmic", db, writeFile(t, dir, "cosmic.vcf", cosmicVCF))
	require.NoError(t, err)

	out, err := execute(t, "cosmic", "info", "--cosmic", db)
	require.NoError(t, err)
	assert.Equal(t, "2 indels\n", out)

	somatic := "1\t4\t.\tA\tAGTA\t.\tPASS\tPRED=somatic"
	once := "2\t100\t.\tCTT\tC\t.\tPASS\tPRED=somatic"
	samples := []string{
		writeFile(t, dir, "a.vcf", sampleHeader+somatic+"\n"+once+"\n"),
		writeFile(t, dir, "b.vcf", sampleHeader+somatic+"\n"),
		writeFile(t, dir, "c.vcf", sampleHeader+somatic+"\n"),
	}
	other := writeFile(t, dir, "other.vcf", "##source=Other\n#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"+somatic+"\n")
	list := writeFile(t, dir, "cohort.txt", "# cohort\n"+samples[2]+"\n"+other+"\n")

	_, err = execute(t, "recurrence", "--cosmic", db, "--workers", "2", "--list", list, samples[0], samples[1])
	require.NoError(t, err)

	for _, path := range samples {
		content := readFile(t, path)
		assert.Contains(t, content, "##INFO=<ID=REC,", path)
		assert.Contains(t, content, somatic+";REC=3\n", path)
	}
	assert.Contains(t, readFile(t, samples[0]), once+"\n", "seen once, not annotated")
	assert.NotContains(t, readFile(t, other), "REC")

	tsv := filepath.Join(dir, "counts.tsv")
	_, err = execute(t, "count", "-o", tsv, samples[0], samples[1], samples[2])
	require.NoError(t, err)
	assert.Equal(t,
		"chr\tpos\tref\talt\tcount\nchr1\t5\t-\tGTA\t3\nchr2\t101\tTT\t-\t1\n",
		readFile(t, tsv))

	sqlitePath := filepath.Join(dir, "counts.sqlite")
	_, err = execute(t, "count", "--sqlite", sqlitePath, samples[0])
	require.NoError(t, err)
	_, err = os.Stat(sqlitePath)
	assert.NoError(t, err)
}

func TestRecurrence_RequiresDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	_, err := execute(t, "recurrence", writeFile(t, dir, "a.vcf", sampleHeader))
	require.Error(t, err)
	var usage *usageError
	assert.ErrorAs(t, err, &usage)

	_, err = execute(t, "recurrence", "--cosmic", filepath.Join(dir, "db.duckdb"))
	assert.ErrorIs(t, err, errNoInput)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	vcfPath := writeFile(t, dir, "s.vcf", sampleHeader+
		"1\t4\t.\tA\tAGTA\t.\tPASS\tPRED=somatic\n"+
		"1\t500\t.\tGAT\tG\t.\tPASS\tPRED=germline\n")
	bed := writeFile(t, dir, "exons.bed", "chr1\t0\t100\tE1\n")

	out := filepath.Join(dir, "all.tsv")
	_, err := execute(t, "convert", "--exons", bed, "--all", "-o", out, vcfPath)
	require.NoError(t, err)
	assert.Equal(t,
		"chr\tpos\tref\talt\tis_coding\nchr1\t5\t-\tGTA\ttrue\nchr1\t501\tAT\t-\tfalse\n",
		readFile(t, out))

	out = filepath.Join(dir, "coding.tsv")
	_, err = execute(t, "convert", "--exons", bed, "-o", out, vcfPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(readFile(t, out)), "\n")
	assert.Len(t, lines, 2)
}

func TestConvert_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	vcfPath := writeFile(t, dir, "snv.vcf", sampleHeader+"1\t4\t.\tA\tT\t.\tPASS\tPRED=somatic\n")
	out := filepath.Join(dir, "out.tsv")
	_, err := execute(t, "convert", "-o", out, vcfPath)
	require.NoError(t, err, "no indels is a successful run")

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestConfigSetGet(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	_, err := execute(t, "config", "set", "workers", "4")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".vibe-indel.yaml"))

	out, err := execute(t, "config", "get", "workers")
	require.NoError(t, err)
	assert.Equal(t, "4\n", out)

	_, err = execute(t, "config", "get", "no.such.key")
	assert.Error(t, err)
}

func TestParseConfigValue(t *testing.T) {
	assert.Equal(t, true, parseConfigValue("yes"))
	assert.Equal(t, false, parseConfigValue("off"))
	assert.Equal(t, 8, parseConfigValue("8"))
	assert.Equal(t, "/data/ref.fa", parseConfigValue("/data/ref.fa"))
}

func TestInputFiles(t *testing.T) {
	dir := t.TempDir()
	list := writeFile(t, dir, "list.txt", "a.vcf\n\n# skipped\n  b.vcf  \n")

	files, err := inputFiles([]string{"x.vcf"}, list)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.vcf", "a.vcf", "b.vcf"}, files)

	_, err = inputFiles(nil, filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
