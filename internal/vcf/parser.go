// Package vcf provides VCF file parsing functionality.
package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// siteColumns is the number of leading columns a Parser decodes:
// CHROM, POS, ID, REF and ALT.
const siteColumns = 5

// maxLineSize bounds a single VCF line. COSMIC INFO fields run long.
const maxLineSize = 16 << 20

// Parser streams the sites of a VCF file. Only the first five columns are
// decoded; QUAL, FILTER, INFO and sample columns are skipped.
type Parser struct {
	scanner    *bufio.Scanner
	closer     io.Closer
	lineNumber int
}

// NewParser creates a parser for the given file, "-" meaning stdin.
// Plain and gzipped files are both accepted.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin)
	}

	rc, _, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	p, err := NewParserFromReader(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}
	p.closer = rc
	return p, nil
}

// NewParserFromReader creates a parser reading from r. The header is
// consumed before it returns.
func NewParserFromReader(r io.Reader) (*Parser, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	p := &Parser{scanner: scanner}
	if err := p.skipHeader(); err != nil {
		return nil, err
	}
	return p, nil
}

// skipHeader advances past the meta lines and the #CHROM line.
func (p *Parser) skipHeader() error {
	for p.scanner.Scan() {
		p.lineNumber++
		line := p.scanner.Text()
		switch {
		case strings.HasPrefix(line, "#CHROM"):
			return nil
		case strings.HasPrefix(line, "##"):
			continue
		default:
			return &ParseError{Line: p.lineNumber, Message: "expected #CHROM header line"}
		}
	}
	if err := p.scanner.Err(); err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	return &ParseError{Line: p.lineNumber, Message: "no #CHROM header line found"}
}

// Next returns the next site, or nil, nil at the end of the file.
func (p *Parser) Next() (*Variant, error) {
	for p.scanner.Scan() {
		p.lineNumber++
		line := strings.TrimRight(p.scanner.Text(), "\r")
		if line == "" {
			continue
		}
		return p.parseSite(line)
	}
	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read variant line: %w", err)
	}
	return nil, nil
}

func (p *Parser) parseSite(line string) (*Variant, error) {
	fields := strings.SplitN(line, "\t", siteColumns+1)
	if len(fields) < siteColumns {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("expected at least %d columns, found %d", siteColumns, len(fields)),
		}
	}

	pos, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, &ParseError{
			Line:    p.lineNumber,
			Message: fmt.Sprintf("invalid position: %s", fields[1]),
		}
	}

	return &Variant{
		Chrom: fields[0],
		Pos:   pos,
		ID:    fields[2],
		Ref:   fields[3],
		Alt:   fields[4],
	}, nil
}

// SplitMultiAllelic returns one variant per ALT allele.
func SplitMultiAllelic(v *Variant) []*Variant {
	alts := strings.Split(v.Alt, ",")
	if len(alts) == 1 {
		return []*Variant{v}
	}

	variants := make([]*Variant, len(alts))
	for i, alt := range alts {
		split := *v
		split.Alt = alt
		variants[i] = &split
	}
	return variants
}

// Close closes the underlying file.
func (p *Parser) Close() error {
	if p.closer != nil {
		return p.closer.Close()
	}
	return nil
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
