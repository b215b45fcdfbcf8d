// Package cosmic provides presence lookups of canonical indels in a COSMIC
// variant database backed by DuckDB. Records are stored in canonical form
// so that lookups compare indel identities rather than VCF spellings.
package cosmic

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/indel"
)

// Store manages a DuckDB connection holding canonical COSMIC indels.
type Store struct {
	db   *sql.DB
	path string

	lookupOnce sync.Once
	lookupPS   *sql.Stmt
	lookupErr  error

	// In-memory set filled by PreloadToMemory; read-only afterwards.
	memCache map[indel.Indel]struct{}

	logger *zap.Logger
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path, logger: zap.NewNop()}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS cosmic_indels (
		chrom VARCHAR,
		pos BIGINT,
		ref VARCHAR,
		alt VARCHAR,
		cosmic_id VARCHAR
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_cosmic_lookup ON cosmic_indels (chrom, pos, ref, alt)`)
	return err
}

// SetLogger sets the logger for load warnings.
func (s *Store) SetLogger(l *zap.Logger) {
	s.logger = l
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Count returns the number of stored indel records.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM cosmic_indels").Scan(&count); err != nil {
		return 0, fmt.Errorf("count cosmic rows: %w", err)
	}
	return count, nil
}

// Loaded returns true if the table has data.
func (s *Store) Loaded() bool {
	n, err := s.Count()
	return err == nil && n > 0
}

// Clear removes all stored records.
func (s *Store) Clear() error {
	_, err := s.db.Exec("DELETE FROM cosmic_indels")
	return err
}

// PreloadToMemory loads every stored identity into an in-memory set so that
// lookups skip the database.
func (s *Store) PreloadToMemory() error {
	rows, err := s.db.Query("SELECT DISTINCT chrom, pos, ref, alt FROM cosmic_indels")
	if err != nil {
		return fmt.Errorf("query cosmic for preload: %w", err)
	}
	defer rows.Close()

	cache := make(map[indel.Indel]struct{})
	for rows.Next() {
		var in indel.Indel
		if err := rows.Scan(&in.Chrom, &in.Pos, &in.Ref, &in.Alt); err != nil {
			return fmt.Errorf("scan preload row: %w", err)
		}
		cache[in] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("preload rows: %w", err)
	}

	s.memCache = cache
	return nil
}

// MemCacheSize returns the number of identities in the in-memory set, or 0
// if not preloaded.
func (s *Store) MemCacheSize() int {
	return len(s.memCache)
}

// Contains reports whether the canonical indel is present in the database.
// It is safe for concurrent use.
func (s *Store) Contains(in indel.Indel) (bool, error) {
	if s.memCache != nil {
		_, ok := s.memCache[in]
		return ok, nil
	}

	s.lookupOnce.Do(func() {
		s.lookupPS, s.lookupErr = s.db.Prepare(
			"SELECT COUNT(*) FROM cosmic_indels WHERE chrom=? AND pos=? AND ref=? AND alt=?",
		)
	})
	if s.lookupErr != nil {
		return false, fmt.Errorf("prepare cosmic lookup: %w", s.lookupErr)
	}

	var n int64
	if err := s.lookupPS.QueryRow(in.Chrom, in.Pos, in.Ref, in.Alt).Scan(&n); err != nil {
		return false, fmt.Errorf("query cosmic: %w", err)
	}
	return n > 0, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.lookupPS != nil {
		s.lookupPS.Close()
	}
	return s.db.Close()
}
