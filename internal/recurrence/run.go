package recurrence

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoDatabase is returned by Run when no variant database is given.
var ErrNoDatabase = errors.New("variant database is required")

// Result describes a completed run.
type Result struct {
	Files []string // validated files, in input order
	Table *Table
	Stats []Stats // per validated file; zero Stats for files that failed
}

// Run validates files, counts the cohort once and rewrites every validated
// file. A failed rewrite does not stop the others; all failures are
// returned together.
func Run(ctx context.Context, files []string, db Database, opts Options) (*Result, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	logger := opts.logger()

	valid := Validate(files, opts)
	res := &Result{Files: valid, Stats: make([]Stats, len(valid))}
	if len(valid) == 0 {
		logger.Warn("no valid input files", zap.Int("given", len(files)))
		res.Table = NewTable(nil)
		return res, nil
	}

	table, err := Count(ctx, valid, opts)
	if err != nil {
		return nil, err
	}
	res.Table = table

	var (
		mu   sync.Mutex
		errs error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, path := range valid {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stats, err := Rewrite(path, table, db, opts)
			if err != nil {
				logger.Error("rewrite failed", zap.String("file", path), zap.Error(err))
				mu.Lock()
				errs = multierr.Append(errs, fmt.Errorf("rewrite %s: %w", path, err))
				mu.Unlock()
				return nil
			}
			res.Stats[i] = stats
			logger.Info("annotated file",
				zap.String("file", path),
				zap.Int("somatic", stats.Somatic),
				zap.Int("annotated", stats.Annotated))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = multierr.Append(errs, err)
	}

	return res, errs
}
