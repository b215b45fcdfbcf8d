package indel

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/vcf"
)

// Short-circuit conditions of the conversion path. They end a run
// successfully with nothing to do and are returned wrapped in an
// *EmptyResultError.
var (
	ErrNoIndels       = errors.New("no indels detected in input vcf")
	ErrNoCodingIndels = errors.New("no coding indels annotated")
)

// EmptyResultError signals that a stage produced no data and processing
// should stop without failing.
type EmptyResultError struct {
	Path string
	Err  error
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *EmptyResultError) Unwrap() error {
	return e.Err
}

// IsEmptyResult reports whether err is a successful empty-result signal.
func IsEmptyResult(err error) bool {
	var empty *EmptyResultError
	return errors.As(err, &empty)
}

// Record is one row of the canonical table.
type Record struct {
	Indel
	Coding bool
}

// Converter turns a VCF file into canonical, left-aligned records.
type Converter struct {
	aligner    *Aligner
	exons      CodingIndex
	codingOnly bool
	logger     *zap.Logger
}

// NewConverter creates a converter. aligner and exons may be nil to skip
// left-alignment and coding annotation.
func NewConverter(aligner *Aligner, exons CodingIndex) *Converter {
	return &Converter{
		aligner:    aligner,
		exons:      exons,
		codingOnly: true,
		logger:     zap.NewNop(),
	}
}

// SetCodingOnly configures whether non-coding indels are dropped. It has no
// effect without an exon index.
func (c *Converter) SetCodingOnly(codingOnly bool) {
	c.codingOnly = codingOnly
}

// SetLogger sets the logger for warning and info messages.
func (c *Converter) SetLogger(l *zap.Logger) {
	c.logger = l
}

// Convert reads path and returns its indels in canonical form. An
// *EmptyResultError wrapping ErrNoIndels or ErrNoCodingIndels is returned
// when there is nothing left to report.
func (c *Converter) Convert(path string) ([]Record, error) {
	lines, _, err := vcf.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("read vcf: %w", err)
	}
	return c.ConvertLines(path, lines)
}

// ConvertLines converts already materialized VCF lines. name is used in
// messages only.
func (c *Converter) ConvertLines(name string, lines []string) ([]Record, error) {
	var records []Record
	for _, line := range lines {
		for _, in := range FromLine(line) {
			records = append(records, Record{Indel: in})
		}
	}

	if len(records) == 0 {
		c.logger.Warn("no indels detected, analysis done", zap.String("file", name))
		return nil, &EmptyResultError{Path: name, Err: ErrNoIndels}
	}
	c.logger.Info("parsed indels", zap.String("file", name), zap.Int("count", len(records)))

	if c.aligner != nil {
		for i := range records {
			aligned, err := c.aligner.LeftAlign(records[i].Indel)
			if IsReferenceMismatch(err) {
				c.logger.Warn("indel not covered by reference, left unaligned",
					zap.Stringer("indel", records[i].Indel), zap.Error(err))
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("left-align %s: %w", records[i].Indel, err)
			}
			records[i].Indel = aligned
		}
	}

	if c.exons == nil {
		return records, nil
	}

	kept := records[:0]
	for _, r := range records {
		r.Coding = IsCoding(c.exons, r.Indel)
		if c.codingOnly && !r.Coding {
			continue
		}
		kept = append(kept, r)
	}

	if len(kept) == 0 {
		c.logger.Warn("no coding indels annotated, analysis done", zap.String("file", name))
		return nil, &EmptyResultError{Path: name, Err: ErrNoCodingIndels}
	}

	return kept, nil
}
