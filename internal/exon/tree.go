// Package exon provides coding exon coordinates and point-containment
// queries for the coding filter.
package exon

import (
	"sort"

	"github.com/inodb/vibe-indel/internal/vcf"
)

// Exon is a coding exon interval, 1-based and closed.
type Exon struct {
	Chrom string
	Start int64
	End   int64
	Name  string
}

// Contains returns true if pos falls within the exon.
func (e Exon) Contains(pos int64) bool {
	return pos >= e.Start && pos <= e.End
}

// intervalTree provides O(log n + k) overlap queries using a sorted-slice approach.
// Exons are loaded once and never modified after build.
type intervalTree struct {
	intervals []Exon
	maxEnd    []int64 // maxEnd[i] = max(End) for intervals[i:]
}

func buildIntervalTree(exons []Exon) *intervalTree {
	if len(exons) == 0 {
		return &intervalTree{}
	}

	intervals := make([]Exon, len(exons))
	copy(intervals, exons)
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})

	maxEnd := make([]int64, len(intervals))
	maxEnd[len(intervals)-1] = intervals[len(intervals)-1].End
	for i := len(intervals) - 2; i >= 0; i-- {
		maxEnd[i] = intervals[i].End
		if maxEnd[i+1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i+1]
		}
	}

	return &intervalTree{intervals: intervals, maxEnd: maxEnd}
}

// scan calls fn for every interval containing pos until fn returns false.
func (t *intervalTree) scan(pos int64, fn func(Exon) bool) {
	// hi is the first index with start > pos; candidates are [0, hi).
	hi := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].Start > pos
	})

	for i := hi - 1; i >= 0; i-- {
		// No interval in intervals[0..i] reaches pos.
		if t.maxEnd[i] < pos {
			break
		}
		if t.intervals[i].End >= pos && !fn(t.intervals[i]) {
			return
		}
	}
}

// Index is a per-chromosome exon interval index. Chromosome names are
// stored in chr-prefixed form.
type Index struct {
	trees map[string]*intervalTree
	count int
}

// NewIndex builds an index from exons.
func NewIndex(exons []Exon) *Index {
	byChrom := make(map[string][]Exon)
	for _, e := range exons {
		e.Chrom = vcf.CanonicalChrom(e.Chrom)
		byChrom[e.Chrom] = append(byChrom[e.Chrom], e)
	}

	idx := &Index{trees: make(map[string]*intervalTree, len(byChrom)), count: len(exons)}
	for chrom, list := range byChrom {
		idx.trees[chrom] = buildIntervalTree(list)
	}
	return idx
}

// Contains reports whether pos on chrom lies in any exon.
func (x *Index) Contains(chrom string, pos int64) bool {
	t, ok := x.trees[vcf.CanonicalChrom(chrom)]
	if !ok {
		return false
	}
	found := false
	t.scan(pos, func(Exon) bool {
		found = true
		return false
	})
	return found
}

// FindOverlaps returns all exons on chrom containing pos.
func (x *Index) FindOverlaps(chrom string, pos int64) []Exon {
	t, ok := x.trees[vcf.CanonicalChrom(chrom)]
	if !ok {
		return nil
	}
	var result []Exon
	t.scan(pos, func(e Exon) bool {
		result = append(result, e)
		return true
	})
	return result
}

// Exons returns all indexed exons ordered by chromosome and start.
func (x *Index) Exons() []Exon {
	chroms := make([]string, 0, len(x.trees))
	for chrom := range x.trees {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)

	out := make([]Exon, 0, x.count)
	for _, chrom := range chroms {
		out = append(out, x.trees[chrom].intervals...)
	}
	return out
}

// Len returns the number of indexed exons.
func (x *Index) Len() int {
	return x.count
}
