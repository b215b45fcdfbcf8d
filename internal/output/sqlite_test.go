package output

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-indel/internal/indel"
	"github.com/inodb/vibe-indel/internal/recurrence"
)

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recurrence.sqlite")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	table := recurrence.NewTable(map[indel.Indel]int{
		{Chrom: "chr2", Pos: 101, Ref: "TT", Alt: "-"}: 1,
		{Chrom: "chr1", Pos: 5, Ref: "-", Alt: "GTA"}:  3,
	})
	require.NoError(t, s.WriteTable(table))

	rows, err := s.Rows()
	require.NoError(t, err)
	assert.Equal(t, []CountRow{
		{Chrom: "chr1", Pos: 5, Ref: "-", Alt: "GTA", Count: 3},
		{Chrom: "chr2", Pos: 101, Ref: "TT", Alt: "-", Count: 1},
	}, rows)
}

func TestSQLiteWriter_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recurrence.sqlite")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.WriteTable(recurrence.NewTable(map[indel.Indel]int{
		{Chrom: "chr1", Pos: 5, Ref: "-", Alt: "GTA"}: 3,
	})))
	require.NoError(t, s.WriteTable(recurrence.NewTable(map[indel.Indel]int{
		{Chrom: "chr3", Pos: 7, Ref: "A", Alt: "-"}: 2,
	})))

	rows, err := s.Rows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "chr3", rows[0].Chrom)
}
