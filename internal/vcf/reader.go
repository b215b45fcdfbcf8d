package vcf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// gzipReadCloser closes both the gzip stream and the underlying file.
type gzipReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g *gzipReadCloser) Close() error {
	g.Reader.Close()
	return g.file.Close()
}

// Open opens a plain or gzipped text file for reading.
// Gzip input is detected from the magic bytes, not the file extension.
// The returned flag reports whether the file was gzip-compressed.
func Open(path string) (io.ReadCloser, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, false, err
	}

	buf := make([]byte, 2)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		file.Close()
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, false, fmt.Errorf("seek %s: %w", path, err)
	}

	// Check for gzip magic number (0x1f, 0x8b)
	if n == 2 && buf[0] == 0x1f && buf[1] == 0x8b {
		gz, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, false, fmt.Errorf("create gzip reader: %w", err)
		}
		return &gzipReadCloser{Reader: gz, file: file}, true, nil
	}

	return file, false, nil
}

// ReadLines reads every line of a plain or gzipped file into memory.
// Line terminators are stripped.
func ReadLines(path string) (lines []string, gzipped bool, err error) {
	rc, gzipped, err := Open(path)
	if err != nil {
		return nil, false, err
	}
	defer rc.Close()

	r := bufio.NewReader(rc)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			lines = append(lines, strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, gzipped, fmt.Errorf("read %s: %w", path, err)
		}
	}

	return lines, gzipped, nil
}

// ReadHeader reads the leading "#" lines of a plain or gzipped file and
// stops at the first data line.
func ReadHeader(path string) ([]string, error) {
	rc, _, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var header []string
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(line, "#") {
			break
		}
		header = append(header, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read header %s: %w", path, err)
	}
	return header, nil
}
