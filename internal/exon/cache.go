package exon

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file. Path is made
// absolute.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Cache manages gob-serialized exon data on disk:
//
//	{dir}/exons.gob       (serialized exons)
//	{dir}/exons.gob.meta  (source BED fingerprint)
type Cache struct {
	dir string
}

// NewCache creates an exon cache in dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

func (c *Cache) gobPath() string {
	return filepath.Join(c.dir, "exons.gob")
}

func (c *Cache) metaPath() string {
	return filepath.Join(c.dir, "exons.gob.meta")
}

// Valid checks whether the cached exons were built from the same BED file
// as it is now.
func (c *Cache) Valid(bed FileFingerprint) bool {
	meta, err := c.readMeta()
	if err != nil {
		return false
	}

	if meta["bed_path"] != bed.Path ||
		meta["bed_size"] != strconv.FormatInt(bed.Size, 10) ||
		meta["bed_modtime"] != bed.ModTime.UTC().Format(time.RFC3339Nano) {
		return false
	}

	if _, err := os.Stat(c.gobPath()); err != nil {
		return false
	}
	return true
}

// Load reads serialized exons from disk.
func (c *Cache) Load() ([]Exon, error) {
	f, err := os.Open(c.gobPath())
	if err != nil {
		return nil, fmt.Errorf("open exon cache: %w", err)
	}
	defer f.Close()

	var exons []Exon
	if err := gob.NewDecoder(f).Decode(&exons); err != nil {
		return nil, fmt.Errorf("decode exon cache: %w", err)
	}
	return exons, nil
}

// Write serializes exons to disk together with the source fingerprint.
func (c *Cache) Write(exons []Exon, bed FileFingerprint) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	f, err := os.Create(c.gobPath())
	if err != nil {
		return fmt.Errorf("create exon cache: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(exons); err != nil {
		f.Close()
		os.Remove(c.gobPath())
		return fmt.Errorf("encode exon cache: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close exon cache: %w", err)
	}

	return c.writeMeta(bed)
}

// Clear removes the cached exon files.
func (c *Cache) Clear() {
	os.Remove(c.gobPath())
	os.Remove(c.metaPath())
}

func (c *Cache) writeMeta(bed FileFingerprint) error {
	lines := []string{
		"bed_path=" + bed.Path,
		"bed_size=" + strconv.FormatInt(bed.Size, 10),
		"bed_modtime=" + bed.ModTime.UTC().Format(time.RFC3339Nano),
		"created_at=" + time.Now().UTC().Format(time.RFC3339),
		"",
	}
	return os.WriteFile(c.metaPath(), []byte(strings.Join(lines, "\n")), 0644)
}

func (c *Cache) readMeta() (map[string]string, error) {
	data, err := os.ReadFile(c.metaPath())
	if err != nil {
		return nil, err
	}

	meta := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if k, v, ok := strings.Cut(line, "="); ok {
			meta[k] = v
		}
	}
	return meta, nil
}

// Load builds an exon index from a BED file, going through the gob cache in
// cacheDir when one is given. A stale or unreadable cache is rebuilt.
func Load(bedPath, cacheDir string, logger *zap.Logger) (*Index, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cacheDir == "" {
		exons, err := LoadBED(bedPath)
		if err != nil {
			return nil, err
		}
		return NewIndex(exons), nil
	}

	fp, err := StatFile(bedPath)
	if err != nil {
		return nil, fmt.Errorf("stat BED file: %w", err)
	}

	c := NewCache(cacheDir)
	if c.Valid(fp) {
		exons, err := c.Load()
		if err == nil {
			logger.Debug("loaded exons from cache", zap.String("dir", cacheDir), zap.Int("exons", len(exons)))
			return NewIndex(exons), nil
		}
		logger.Warn("exon cache unreadable, rebuilding", zap.Error(err))
	}

	exons, err := LoadBED(bedPath)
	if err != nil {
		return nil, err
	}
	if err := c.Write(exons, fp); err != nil {
		logger.Warn("could not write exon cache", zap.String("dir", cacheDir), zap.Error(err))
	}
	return NewIndex(exons), nil
}
