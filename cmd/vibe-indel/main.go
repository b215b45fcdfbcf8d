// Package main provides the vibe-indel command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inodb/vibe-indel/internal/indel"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var usage *usageError
		if errors.As(err, &usage) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

// usageError marks errors caused by invalid command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vibe-indel",
		Short: "Indel normalization and cohort recurrence for RNAIndel output",
		Long: `vibe-indel converts indel calls to their canonical, left-aligned form,
counts how often each somatic-predicted indel recurs across a cohort of
RNAIndel VCFs and annotates the VCFs with the recurrence (INFO REC).`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ~/.vibe-indel.yaml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.String("reference", "", "Reference FASTA used for left-alignment (plain with .fai, or gzipped)")
	pf.String("exons", "", "Coding exon BED file (plain or gzipped)")
	pf.String("cosmic", "", "COSMIC indel database (DuckDB file)")
	pf.Int("workers", 1, "Number of files processed concurrently")
	pf.StringSlice("source", nil, "Accepted VCF source header prefixes (default: ##source=RNAIndel)")
	pf.String("cache-dir", "", "Directory for the parsed exon cache (default: none)")

	for _, key := range []string{"reference", "exons", "cosmic", "workers", "source"} {
		viper.BindPFlag(key, pf.Lookup(key))
	}
	viper.BindPFlag("cache.dir", pf.Lookup("cache-dir"))

	cmd.AddCommand(newRecurrenceCmd())
	cmd.AddCommand(newCountCmd())
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newCosmicCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig reads the config file and environment. A missing default
// config file is not an error.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".vibe-indel")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VIBE_INDEL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("workers", 1)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("align.window", indel.DefaultWindow)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// defaultConfigPath returns ~/.vibe-indel.yaml.
func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".vibe-indel.yaml"), nil
}

// newLogger builds the console logger used by all commands. The level
// comes from log.level and is lowered to debug by --verbose.
func newLogger() (*zap.Logger, error) {
	level := viper.GetString("log.level")
	if verbose {
		level = "debug"
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = !verbose
	return cfg.Build()
}
