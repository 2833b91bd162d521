// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the genome-fetch CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the genome-fetch CLI.
var rootCmd = &cobra.Command{
	Use:   "genome-fetch",
	Short: "Download complete reference genomes for a taxon from NCBI Datasets",
	Long: `genome-fetch queries the NCBI Datasets assembly descriptors for a taxon,
keeps the complete reference and representative RefSeq genomes, downloads
them in batches and writes one FASTA file per assembly.

Settings come from flags, GENOME_FETCH_* environment variables, or a
genome-fetch.yaml config file, in that order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("no_color") {
			color.NoColor = true
		}
		logger, err := loggerConfig{
			Level: viper.GetString("log_level"),
			JSON:  viper.GetBool("log_json"),
		}.configure(os.Stderr)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		if used := viper.ConfigFileUsed(); used != "" {
			slog.Debug("using config file", "path", used)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./genome-fetch.yaml or ~/.config/genome-fetch/genome-fetch.yaml)")
	pf.String("log-level", "info", "diagnostic log level (debug, info, warn, error)")
	pf.Bool("log-json", false, "write diagnostic logs as JSON")
	pf.Bool("no-color", false, "disable coloured output")
	pf.String("catalog", "", "SQLite run catalog path (fetch records runs in it when set)")

	bindFlag(pf.Lookup("log-level"), "log_level")
	bindFlag(pf.Lookup("log-json"), "log_json")
	bindFlag(pf.Lookup("no-color"), "no_color")
	bindFlag(pf.Lookup("catalog"), "catalog")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("genome-fetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "genome-fetch"))
		}
	}

	viper.SetEnvPrefix("GENOME_FETCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, color.YellowString("warning: reading config: %v", err))
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logFailure(slog.Default(), err)
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}
