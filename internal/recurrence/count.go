package recurrence

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/indel"
	"github.com/inodb/vibe-indel/internal/vcf"
)

// countItem is one file queued for counting.
type countItem struct {
	Seq  int
	Path string
}

// countResult holds the somatic indel counts of a single file.
type countResult struct {
	Seq    int
	Path   string
	Counts map[indel.Indel]int
	Err    error
}

// CountFile returns the somatic indel counts of a single file. The file is
// read once. Only opts.Aligner and opts.Logger are used.
func CountFile(path string, opts Options) (map[indel.Indel]int, error) {
	lines, _, err := vcf.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("read vcf: %w", err)
	}

	counts := make(map[indel.Indel]int)
	for _, line := range lines {
		if !vcf.IsSomaticPrediction(line) {
			continue
		}
		indels, err := canonicalize(line, opts)
		if err != nil {
			return nil, fmt.Errorf("left-align: %w", err)
		}
		for _, in := range indels {
			counts[in]++
		}
	}
	return counts, nil
}

// parallelCount counts files using a pool of workers. Results arrive in
// completion order.
func parallelCount(ctx context.Context, items <-chan countItem, workers int, opts Options) <-chan countResult {
	results := make(chan countResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				if err := ctx.Err(); err != nil {
					results <- countResult{Seq: item.Seq, Path: item.Path, Err: err}
					continue
				}
				counts, err := CountFile(item.Path, opts)
				results <- countResult{
					Seq:    item.Seq,
					Path:   item.Path,
					Counts: counts,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// Count builds the cohort occurrence table from files. Every somatic
// prediction line contributes each of its indels once; an indel seen in
// three files counts three. The returned table is complete before Count
// returns.
func Count(ctx context.Context, files []string, opts Options) (*Table, error) {
	logger := opts.logger()
	workers := min(opts.workers(), max(len(files), 1))

	items := make(chan countItem, len(files))
	for i, path := range files {
		items <- countItem{Seq: i, Path: path}
	}
	close(items)

	table := NewTable(nil)
	var firstErr error
	for r := range parallelCount(ctx, items, workers, opts) {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("count %s: %w", r.Path, r.Err)
			}
			continue
		}
		table.merge(r.Counts)
		logger.Debug("counted file", zap.String("file", r.Path), zap.Int("indels", len(r.Counts)))
	}
	if firstErr != nil {
		return nil, firstErr
	}

	logger.Info("built occurrence table",
		zap.Int("files", len(files)), zap.Int("distinct_indels", table.Len()))
	return table, nil
}
