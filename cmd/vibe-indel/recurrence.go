package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/recurrence"
)

func newRecurrenceCmd() *cobra.Command {
	var (
		listPath string
		preload  bool
	)

	cmd := &cobra.Command{
		Use:   "recurrence [flags] <vcf>...",
		Short: "Annotate RNAIndel VCFs with cohort recurrence",
		Long: `Count every somatic-predicted indel across the given RNAIndel VCFs and
rewrite each file in place, adding REC=<count> to the INFO field of somatic
indels that are in the COSMIC database and seen more than once in the cohort.
Files without a recognized source header are skipped.`,
		Example: `  vibe-indel recurrence --cosmic cosmic.duckdb sample1.vcf sample2.vcf sample3.vcf
  vibe-indel recurrence --cosmic cosmic.duckdb --reference GRCh38.fa --list cohort.txt --workers 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := inputFiles(args, listPath)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return &usageError{err: errNoInput}
			}
			return runRecurrence(cmd.Context(), files, preload)
		},
	}

	cmd.Flags().StringVarP(&listPath, "list", "l", "", "File listing input VCF paths, one per line")
	cmd.Flags().BoolVar(&preload, "preload", false, "Load the COSMIC table into memory before annotating")

	return cmd
}

func runRecurrence(ctx context.Context, files []string, preload bool) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := openCosmic(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	if preload {
		if err := store.PreloadToMemory(); err != nil {
			return err
		}
		logger.Info("preloaded COSMIC indels", zap.Int("indels", store.MemCacheSize()))
	}

	aligner, closeRef, err := loadAligner(logger)
	if err != nil {
		return err
	}
	defer closeRef()

	res, err := recurrence.Run(ctx, files, store, recurrenceOptions(logger, aligner))
	if res != nil {
		annotated := 0
		for _, s := range res.Stats {
			annotated += s.Annotated
		}
		logger.Info("recurrence annotation done",
			zap.Int("files", len(res.Files)),
			zap.Int("distinct_indels", res.Table.Len()),
			zap.Int("annotated_lines", annotated))
	}
	return err
}
