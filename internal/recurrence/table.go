package recurrence

import (
	"sort"

	"github.com/inodb/vibe-indel/internal/indel"
)

// Table is the cohort occurrence table. It is built by Count and read-only
// afterwards, so concurrent readers need no locking.
type Table struct {
	counts map[indel.Indel]int
}

// NewTable builds a table from per-indel counts. The map is copied.
func NewTable(counts map[indel.Indel]int) *Table {
	t := &Table{counts: make(map[indel.Indel]int, len(counts))}
	t.merge(counts)
	return t
}

func (t *Table) merge(counts map[indel.Indel]int) {
	for in, n := range counts {
		t.counts[in] += n
	}
}

// Count returns the number of cohort occurrences of in.
func (t *Table) Count(in indel.Indel) int {
	return t.counts[in]
}

// Len returns the number of distinct indels.
func (t *Table) Len() int {
	return len(t.counts)
}

// Entry is one row of the table.
type Entry struct {
	Indel indel.Indel
	Count int
}

// Entries returns all rows sorted by chromosome, position, ref and alt.
func (t *Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t.counts))
	for in, n := range t.counts {
		entries = append(entries, Entry{Indel: in, Count: n})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].Indel, entries[j].Indel
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		if a.Pos != b.Pos {
			return a.Pos < b.Pos
		}
		if a.Ref != b.Ref {
			return a.Ref < b.Ref
		}
		return a.Alt < b.Alt
	})
	return entries
}
