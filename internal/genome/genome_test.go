package genome

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chr1 is ACGTACGTACGGGGGTTTTTAAC (23 bases), 2 is TTTTCCCC.
const testFASTA = ">chr1\nACGTACGTAC\nGGGGGTTTTT\nAAC\n>2\nTTTTCCCC\n"

func writeFASTA(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ref.fa")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIndexedFASTA_Fetch(t *testing.T) {
	ref, err := OpenIndexedFASTA(writeFASTA(t, testFASTA))
	require.NoError(t, err)
	defer ref.Close()

	assert.Equal(t, 2, ref.ContigCount())

	tests := []struct {
		name       string
		chrom      string
		start, end int64
		want       string
	}{
		{"first line", "chr1", 0, 4, "ACGT"},
		{"across line break", "chr1", 8, 14, "ACGGGG"},
		{"clamped to contig end", "chr1", 20, 100, "AAC"},
		{"negative start", "chr1", -5, 2, "AC"},
		{"empty range", "chr1", 5, 5, ""},
		{"unprefixed query", "1", 0, 2, "AC"},
		{"prefixed query for unprefixed contig", "chr2", 2, 6, "TTCC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ref.Fetch(tt.chrom, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = ref.Fetch("chr3", 0, 1)
	assert.True(t, errors.Is(err, ErrUnknownContig))
	assert.True(t, ref.HasContig("chr2"))
	assert.False(t, ref.HasContig("chrX"))
}

func TestIndexedFASTA_ExistingIndex(t *testing.T) {
	path := writeFASTA(t, testFASTA)
	// name, length, offset, bases per line, bytes per line
	fai := "chr1\t23\t6\t10\t11\n2\t8\t35\t8\t9\n"
	require.NoError(t, os.WriteFile(path+".fai", []byte(fai), 0644))

	ref, err := OpenIndexedFASTA(path)
	require.NoError(t, err)
	defer ref.Close()

	got, err := ref.Fetch("chr1", 9, 12)
	require.NoError(t, err)
	assert.Equal(t, "CGG", got)

	got, err = ref.Fetch("2", 4, 8)
	require.NoError(t, err)
	assert.Equal(t, "CCCC", got)
}

func TestMemoryFASTA(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(">chr1 description text\nACGTACGTAC\nGGGGGTTTTT\nAAC\n>MT\nGATC\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	path := filepath.Join(t.TempDir(), "ref.fa.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	ref, err := Open(path)
	require.NoError(t, err)
	defer ref.Close()

	_, ok := ref.(*MemoryFASTA)
	require.True(t, ok, "gzipped FASTA should load into memory")
	assert.Equal(t, 2, ref.ContigCount())

	got, err := ref.Fetch("chr1", 8, 14)
	require.NoError(t, err)
	assert.Equal(t, "ACGGGG", got)

	got, err = ref.Fetch("chrM", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "AT", got)

	_, err = ref.Fetch("chr5", 0, 1)
	assert.True(t, errors.Is(err, ErrUnknownContig))
}

func TestOpen_PlainUsesIndex(t *testing.T) {
	ref, err := Open(writeFASTA(t, testFASTA))
	require.NoError(t, err)
	defer ref.Close()

	_, ok := ref.(*IndexedFASTA)
	assert.True(t, ok)
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.fa"))
	assert.Error(t, err)
}
