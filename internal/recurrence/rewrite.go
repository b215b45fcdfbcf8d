package recurrence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/inodb/vibe-indel/internal/vcf"
)

// InfoKey is the INFO key carrying the cohort recurrence.
const InfoKey = "REC"

// InfoHeader declares InfoKey in the VCF header.
var InfoHeader = vcf.InfoHeaderLine(InfoKey, "1", "Integer", "Recurrence in the input cohort")

// Stats summarizes the rewrite of one file.
type Stats struct {
	Path      string
	Lines     int // data lines
	Somatic   int // somatic prediction lines
	Annotated int // lines tagged with REC
}

// Rewrite annotates the somatic prediction lines of path with their cohort
// recurrence and replaces the file. The new content is assembled in memory
// and moved over the original with a rename; gzipped input is written back
// gzipped.
func Rewrite(path string, table *Table, db Database, opts Options) (Stats, error) {
	stats := Stats{Path: path}

	lines, gzipped, err := vcf.ReadLines(path)
	if err != nil {
		return stats, fmt.Errorf("read vcf: %w", err)
	}

	var header, body []string
	for _, line := range lines {
		if strings.HasPrefix(line, "#") && len(body) == 0 {
			header = append(header, line)
			continue
		}
		if line == "" {
			body = append(body, line)
			continue
		}
		stats.Lines++

		annotated, ok, err := annotateLine(line, table, db, opts)
		if err != nil {
			return stats, err
		}
		if vcf.IsSomaticPrediction(line) {
			stats.Somatic++
		}
		if ok {
			stats.Annotated++
		}
		body = append(body, annotated)
	}

	out := append(vcf.InsertInfoHeader(header, InfoHeader), body...)
	if err := writeAtomic(path, out, gzipped); err != nil {
		return stats, err
	}
	return stats, nil
}

// annotateLine returns line with a REC tag when ShouldAnnotate accepts it.
// The first indel of a somatic line identifies it.
func annotateLine(line string, table *Table, db Database, opts Options) (string, bool, error) {
	if !vcf.IsSomaticPrediction(line) {
		return line, false, nil
	}

	indels, err := canonicalize(line, opts)
	if err != nil {
		return "", false, fmt.Errorf("left-align: %w", err)
	}
	if len(indels) == 0 {
		return line, false, nil
	}
	in := indels[0]

	count := table.Count(in)
	inDB, err := db.Contains(in)
	if err != nil {
		return "", false, fmt.Errorf("look up %s: %w", in, err)
	}
	if !ShouldAnnotate(inDB, count) {
		return line, false, nil
	}

	out, ok := vcf.SetInfo(line, InfoKey, strconv.Itoa(count))
	return out, ok, nil
}

// writeAtomic writes lines to a temporary file next to path and renames it
// over path. The original file mode is kept.
func writeAtomic(path string, lines []string, gzipped bool) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	var (
		w  io.Writer = tmp
		gz *gzip.Writer
	)
	if gzipped {
		gz = gzip.NewWriter(tmp)
		w = gz
	}
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		cleanup()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			cleanup()
			return fmt.Errorf("close gzip stream: %w", err)
		}
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
