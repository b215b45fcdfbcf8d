package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/indel"
	"github.com/inodb/vibe-indel/internal/output"
)

func newConvertCmd() *cobra.Command {
	var (
		outputPath string
		all        bool
	)

	cmd := &cobra.Command{
		Use:   "convert [flags] <vcf>",
		Short: "Convert VCF indels to the canonical, left-aligned table",
		Long: `Convert the indels of a VCF to canonical form: the event position is the
first affected base and the missing allele is written as "-". Indels are
left-aligned when --reference is set and restricted to coding exons when
--exons is set.`,
		Example: `  vibe-indel convert --reference GRCh38.fa --exons refCodingExon.bed.gz sample.vcf
  vibe-indel convert --all -o indels.tsv sample.vcf.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], outputPath, all)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output TSV file (default: stdout)")
	cmd.Flags().BoolVar(&all, "all", false, "Keep non-coding indels (flagged is_coding=false)")

	return cmd
}

func runConvert(inputPath, outputPath string, all bool) error {
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

	exons, err := loadExons(logger)
	if err != nil {
		return err
	}

	// A nil *exon.Index must not reach the converter as a non-nil interface.
	conv := indel.NewConverter(aligner, nil)
	if exons != nil {
		conv = indel.NewConverter(aligner, exons)
	}
	conv.SetCodingOnly(!all)
	conv.SetLogger(logger)

	records, err := conv.Convert(inputPath)
	if indel.IsEmptyResult(err) {
		logger.Info("nothing to convert", zap.String("file", inputPath), zap.Error(err))
		return nil
	}
	if err != nil {
		return err
	}

	out, closeOut, err := createOutput(outputPath)
	if err != nil {
		return err
	}
	if err := output.NewTabWriter(out).WriteAll(records); err != nil {
		closeOut()
		return err
	}
	logger.Info("converted indels", zap.String("file", inputPath), zap.Int("records", len(records)))
	return closeOut()
}
