package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/vibe-indel/internal/cosmic"
)

func newCosmicCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cosmic",
		Short: "Manage the COSMIC indel database",
	}

	cmd.AddCommand(newCosmicLoadCmd())
	cmd.AddCommand(newCosmicInfoCmd())

	return cmd
}

func newCosmicLoadCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "load <cosmic-vcf>",
		Short: "Load indels from a COSMIC VCF into the database",
		Long: `Load the indels of a COSMIC VCF (plain or gzipped) into the DuckDB file
given by --cosmic. Records are stored in canonical form and left-aligned
when --reference is set, so use the same reference for loading and
annotating.`,
		Example: `  vibe-indel cosmic load --cosmic cosmic.duckdb --reference GRCh38.fa CosmicCodingMuts.vcf.gz`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCosmicLoad(args[0], replace)
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Remove existing records before loading")

	return cmd
}

func runCosmicLoad(vcfPath string, replace bool) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := openCosmic(zap.NewNop())
	if err != nil {
		return err
	}
	defer store.Close()
	store.SetLogger(logger)

	if replace {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clearing COSMIC database: %w", err)
		}
	}

	aligner, closeRef, err := loadAligner(logger)
	if err != nil {
		return err
	}
	defer closeRef()

	var norm cosmic.Normalizer
	if aligner != nil {
		norm = aligner.LeftAlign
	}

	n, err := store.LoadVCF(vcfPath, norm)
	if err != nil {
		return fmt.Errorf("loading %s: %w", vcfPath, err)
	}

	total, err := store.Count()
	if err != nil {
		return err
	}
	logger.Info("loaded COSMIC indels", zap.String("vcf", vcfPath), zap.Int("loaded", n), zap.Int64("total", total))
	return nil
}

func newCosmicInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the number of indels in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCosmic(zap.NewNop())
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d indels\n", n)
			return nil
		},
	}
}
