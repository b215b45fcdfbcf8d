package output

import (
	"fmt"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"

	_ "modernc.org/sqlite"

	"github.com/inodb/vibe-indel/internal/recurrence"
)

// CountRow is one row of the exported occurrence table.
type CountRow struct {
	Chrom string `db:"chrom"`
	Pos   int64  `db:"pos"`
	Ref   string `db:"ref"`
	Alt   string `db:"alt"`
	Count int    `db:"count"`
}

// SQLiteWriter exports occurrence tables to a SQLite database.
type SQLiteWriter struct {
	DB *sqlx.DB
}

// OpenSQLite opens or creates a SQLite database at path.
func OpenSQLite(path string) (*SQLiteWriter, error) {
	// URI filenames have to begin with 'file:'.
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	_, err = db.DB.Exec(`
	PRAGMA journal_mode = OFF;
	PRAGMA synchronous = OFF;
	`)
	if err != nil {
		db.Close()
		return nil, pfx.Err(fmt.Errorf("unable to set pragmas: %w", err))
	}

	return &SQLiteWriter{DB: db}, nil
}

// WriteTable replaces the recurrence table with the entries of table.
func (s *SQLiteWriter) WriteTable(table *recurrence.Table) error {
	tx, err := s.DB.Beginx()
	if err != nil {
		return pfx.Err(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DROP TABLE IF EXISTS recurrence`); err != nil {
		return pfx.Err(err)
	}
	if _, err := tx.Exec(`CREATE TABLE recurrence (
		chrom TEXT NOT NULL,
		pos INTEGER NOT NULL,
		ref TEXT NOT NULL,
		alt TEXT NOT NULL,
		count INTEGER NOT NULL,
		PRIMARY KEY (chrom, pos, ref, alt)
	)`); err != nil {
		return pfx.Err(err)
	}

	stmt, err := tx.PrepareNamed(`INSERT INTO recurrence (chrom, pos, ref, alt, count)
		VALUES (:chrom, :pos, :ref, :alt, :count)`)
	if err != nil {
		return pfx.Err(err)
	}
	defer stmt.Close()

	for _, e := range table.Entries() {
		row := CountRow{
			Chrom: e.Indel.Chrom,
			Pos:   e.Indel.Pos,
			Ref:   e.Indel.Ref,
			Alt:   e.Indel.Alt,
			Count: e.Count,
		}
		if _, err := stmt.Exec(row); err != nil {
			return pfx.Err(fmt.Errorf("insert %s:%d: %w", row.Chrom, row.Pos, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return pfx.Err(err)
	}
	return nil
}

// Rows returns the exported rows ordered by position.
func (s *SQLiteWriter) Rows() ([]CountRow, error) {
	var rows []CountRow
	if err := s.DB.Select(&rows, `SELECT chrom, pos, ref, alt, count FROM recurrence ORDER BY chrom, pos, ref, alt`); err != nil {
		return nil, pfx.Err(err)
	}
	return rows, nil
}

// Close closes the database.
func (s *SQLiteWriter) Close() error {
	return s.DB.Close()
}
