package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/output"
	"github.com/inodb/vibe-indel/internal/recurrence"
)

var errNoInput = errors.New("at least one input VCF is required")

func newCountCmd() *cobra.Command {
	var (
		listPath   string
		outputPath string
		sqlitePath string
	)

	cmd := &cobra.Command{
		Use:   "count [flags] <vcf>...",
		Short: "Count somatic indel recurrence without modifying the VCFs",
		Example: `  vibe-indel count sample1.vcf sample2.vcf > recurrence.tsv
  vibe-indel count --list cohort.txt --sqlite recurrence.sqlite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := inputFiles(args, listPath)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return &usageError{err: errNoInput}
			}
			return runCount(cmd.Context(), files, outputPath, sqlitePath)
		},
	}

	cmd.Flags().StringVarP(&listPath, "list", "l", "", "File listing input VCF paths, one per line")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output TSV file (default: stdout)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Write the table to a SQLite database instead of TSV")

	return cmd
}

func runCount(ctx context.Context, files []string, outputPath, sqlitePath string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	aligner, closeRef, err := loadAligner(logger)
	if err != nil {
		return err
	}
	defer closeRef()

	opts := recurrenceOptions(logger, aligner)
	valid := recurrence.Validate(files, opts)
	if len(valid) == 0 {
		logger.Warn("no valid input files", zap.Int("given", len(files)))
	}

	table, err := recurrence.Count(ctx, valid, opts)
	if err != nil {
		return err
	}

	if sqlitePath != "" {
		db, err := output.OpenSQLite(sqlitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.WriteTable(table); err != nil {
			return err
		}
		logger.Info("wrote recurrence table", zap.String("sqlite", sqlitePath), zap.Int("rows", table.Len()))
		return nil
	}

	out, closeOut, err := createOutput(outputPath)
	if err != nil {
		return err
	}
	if err := output.NewCountWriter(out).WriteTable(table); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}
