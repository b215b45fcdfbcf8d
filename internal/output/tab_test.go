package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-indel/internal/indel"
	"github.com/inodb/vibe-indel/internal/recurrence"
)

func TestTabWriter_WriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	assert.Equal(t, "chr\tpos\tref\talt\tis_coding\n", buf.String())
}

func TestTabWriter_WriteAll(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	records := []indel.Record{
		{Indel: indel.Indel{Chrom: "chr1", Pos: 5, Ref: "-", Alt: "GTA"}, Coding: true},
		{Indel: indel.Indel{Chrom: "chrX", Pos: 2001, Ref: "AT", Alt: "-"}},
	}
	require.NoError(t, w.WriteAll(records))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "chr1\t5\t-\tGTA\ttrue", lines[1])
	assert.Equal(t, "chrX\t2001\tAT\t-\tfalse", lines[2])
}

func TestCountWriter(t *testing.T) {
	table := recurrence.NewTable(map[indel.Indel]int{
		{Chrom: "chr2", Pos: 101, Ref: "TT", Alt: "-"}: 1,
		{Chrom: "chr1", Pos: 5, Ref: "-", Alt: "GTA"}:  3,
	})

	var buf bytes.Buffer
	require.NoError(t, NewCountWriter(&buf).WriteTable(table))

	expected := "chr\tpos\tref\talt\tcount\n" +
		"chr1\t5\t-\tGTA\t3\n" +
		"chr2\t101\tTT\t-\t1\n"
	assert.Equal(t, expected, buf.String())
}
