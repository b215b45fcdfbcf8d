// Package output writes canonical indel tables.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/vibe-indel/internal/indel"
	"github.com/inodb/vibe-indel/internal/recurrence"
)

// TabWriter writes canonical indel records in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer for converted records.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w:       bufio.NewWriter(w),
		columns: []string{"chr", "pos", "ref", "alt", "is_coding"},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single record.
func (tw *TabWriter) Write(r indel.Record) error {
	values := []string{
		r.Chrom,
		strconv.FormatInt(r.Pos, 10),
		r.Ref,
		r.Alt,
		strconv.FormatBool(r.Coding),
	}
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteAll writes the header followed by every record and flushes.
func (tw *TabWriter) WriteAll(records []indel.Record) error {
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range records {
		if err := tw.Write(r); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// CountWriter writes an occurrence table in tab-delimited format.
type CountWriter struct {
	w *bufio.Writer
}

// NewCountWriter creates a new occurrence table writer.
func NewCountWriter(w io.Writer) *CountWriter {
	return &CountWriter{w: bufio.NewWriter(w)}
}

// WriteTable writes the header and every table entry in sorted order.
func (cw *CountWriter) WriteTable(table *recurrence.Table) error {
	if _, err := cw.w.WriteString("chr\tpos\tref\talt\tcount\n"); err != nil {
		return err
	}
	for _, e := range table.Entries() {
		values := []string{
			e.Indel.Chrom,
			strconv.FormatInt(e.Indel.Pos, 10),
			e.Indel.Ref,
			e.Indel.Alt,
			strconv.Itoa(e.Count),
		}
		if _, err := cw.w.WriteString(strings.Join(values, "\t") + "\n"); err != nil {
			return err
		}
	}
	return cw.w.Flush()
}
