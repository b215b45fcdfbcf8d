package cosmic

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/indel"
	"github.com/inodb/vibe-indel/internal/vcf"
)

// Entry is one canonical COSMIC indel.
type Entry struct {
	Indel indel.Indel
	ID    string
}

// Normalizer maps a canonical indel to the identity it is stored under,
// typically its left-aligned form.
type Normalizer func(indel.Indel) (indel.Indel, error)

const insertBatchSize = 10000

// Insert batch-inserts entries using the Appender API. Entries repeated
// within the batch are written once.
func (s *Store) Insert(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	seen := make(map[Entry]bool, len(entries))
	deduped := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !seen[e] {
			seen[e] = true
			deduped = append(deduped, e)
		}
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "cosmic_indels")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, e := range deduped {
		if err := appender.AppendRow(e.Indel.Chrom, e.Indel.Pos, e.Indel.Ref, e.Indel.Alt, e.ID); err != nil {
			return fmt.Errorf("append cosmic entry: %w", err)
		}
	}

	return appender.Flush()
}

// LoadVCF reads a COSMIC VCF (plain or gzipped), canonicalizes every indel
// allele, applies norm when non-nil and stores the result. An indel norm
// cannot place on the reference is stored as parsed. Substitutions and
// non-canonical chromosomes are skipped. It returns the number of entries
// written.
func (s *Store) LoadVCF(path string, norm Normalizer) (int, error) {
	parser, err := vcf.NewParser(path)
	if err != nil {
		return 0, err
	}
	defer parser.Close()

	var (
		batch []Entry
		total int
	)
	flush := func() error {
		if err := s.Insert(batch); err != nil {
			return err
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for {
		v, err := parser.Next()
		if err != nil {
			return total, fmt.Errorf("read cosmic variant: %w", err)
		}
		if v == nil {
			break
		}

		for _, in := range indel.FromVariant(v) {
			if norm != nil {
				normalized, err := norm(in)
				switch {
				case indel.IsReferenceMismatch(err):
					s.logger.Warn("indel not covered by reference, stored unaligned",
						zap.Stringer("indel", in), zap.String("id", v.ID), zap.Error(err))
				case err != nil:
					return total, fmt.Errorf("normalize %s: %w", in, err)
				default:
					in = normalized
				}
			}
			batch = append(batch, Entry{Indel: in, ID: v.ID})
		}

		if len(batch) >= insertBatchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}

	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}
