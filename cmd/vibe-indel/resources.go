package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/cosmic"
	"github.com/inodb/vibe-indel/internal/exon"
	"github.com/inodb/vibe-indel/internal/genome"
	"github.com/inodb/vibe-indel/internal/indel"
	"github.com/inodb/vibe-indel/internal/recurrence"
)

// loadAligner opens the configured reference. It returns a nil aligner and
// a no-op close when no reference is configured.
func loadAligner(logger *zap.Logger) (*indel.Aligner, func(), error) {
	path := viper.GetString("reference")
	if path == "" {
		logger.Debug("no reference configured, indels are not left-aligned")
		return nil, func() {}, nil
	}

	ref, err := genome.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading reference: %w", err)
	}
	logger.Info("loaded reference", zap.String("path", path), zap.Int("contigs", ref.ContigCount()))

	aligner := indel.NewAligner(ref)
	aligner.SetWindow(viper.GetInt("align.window"))
	return aligner, func() { ref.Close() }, nil
}

// loadExons loads the configured coding exon index, or nil when none is
// configured.
func loadExons(logger *zap.Logger) (*exon.Index, error) {
	path := viper.GetString("exons")
	if path == "" {
		return nil, nil
	}

	idx, err := exon.Load(path, viper.GetString("cache.dir"), logger)
	if err != nil {
		return nil, fmt.Errorf("loading exons: %w", err)
	}
	logger.Info("loaded coding exons", zap.String("path", path), zap.Int("exons", idx.Len()))
	return idx, nil
}

// openCosmic opens the configured COSMIC database.
func openCosmic(logger *zap.Logger) (*cosmic.Store, error) {
	path := viper.GetString("cosmic")
	if path == "" {
		return nil, &usageError{err: fmt.Errorf("--cosmic database path is required")}
	}

	store, err := cosmic.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening COSMIC database: %w", err)
	}
	if !store.Loaded() {
		logger.Warn("COSMIC database is empty, load it with: vibe-indel cosmic load <vcf>",
			zap.String("path", path))
	}
	return store, nil
}

// recurrenceOptions builds recurrence options from the configuration.
func recurrenceOptions(logger *zap.Logger, aligner *indel.Aligner) recurrence.Options {
	return recurrence.Options{
		Sources: viper.GetStringSlice("source"),
		Workers: viper.GetInt("workers"),
		Aligner: aligner,
		Logger:  logger,
	}
}

// inputFiles combines positional arguments with the paths listed in
// listPath, one per line. Blank lines and lines starting with # are
// ignored.
func inputFiles(args []string, listPath string) ([]string, error) {
	files := append([]string{}, args...)
	if listPath == "" {
		return files, nil
	}

	f, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("opening file list: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading file list: %w", err)
	}
	return files, nil
}

// createOutput returns stdout for an empty path or "-".
func createOutput(path string) (*os.File, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}
