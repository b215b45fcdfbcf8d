// Package recurrence counts somatic-predicted indels across a cohort of
// RNAIndel output VCFs and annotates each file with the cohort recurrence.
package recurrence

import (
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/indel"
	"github.com/inodb/vibe-indel/internal/vcf"
)

// Options configures validation, counting and rewriting.
type Options struct {
	// Sources lists accepted provenance header prefixes. Empty means
	// vcf.DefaultSource.
	Sources []string

	// Workers is the number of files processed concurrently. Values below
	// 2 process files sequentially.
	Workers int

	// Aligner left-aligns parsed indels when set.
	Aligner *indel.Aligner

	Logger *zap.Logger
}

func (o Options) sources() []string {
	if len(o.Sources) == 0 {
		return []string{vcf.DefaultSource}
	}
	return o.Sources
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Database answers presence queries for canonical indels. Implementations
// must be safe for concurrent use.
type Database interface {
	Contains(in indel.Indel) (bool, error)
}

// ShouldAnnotate decides whether a somatic line gets a REC tag. An indel is
// annotated only when it is present in the database and seen more than once
// in the cohort.
func ShouldAnnotate(inDatabase bool, count int) bool {
	return inDatabase && count > 1
}

// canonicalize parses a data line into its indels, left-aligned when an
// aligner is configured. An indel the reference does not cover keeps its
// unaligned identity; other reference errors are returned.
func canonicalize(line string, opts Options) ([]indel.Indel, error) {
	indels := indel.FromLine(line)
	if opts.Aligner == nil {
		return indels, nil
	}
	for i, in := range indels {
		aligned, err := opts.Aligner.LeftAlign(in)
		if indel.IsReferenceMismatch(err) {
			opts.logger().Warn("indel not covered by reference, left unaligned",
				zap.Stringer("indel", in), zap.Error(err))
			continue
		}
		if err != nil {
			return nil, err
		}
		indels[i] = aligned
	}
	return indels, nil
}
