// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/genome-fetch/internal/catalog"
	"github.com/pdiddy/genome-fetch/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the run catalog",
	Long: `Catalog reads the SQLite run catalog named by --catalog (or
GENOME_FETCH_CATALOG). fetch records every run there when a catalog is set.`,
}

var catalogRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCatalogRuns,
}

var catalogFilesCmd = &cobra.Command{
	Use:   "files RUN_ID",
	Short: "List the files a run wrote",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogFiles,
}

func init() {
	catalogRunsCmd.Flags().Int("limit", 20, "maximum runs to list (0 for all)")
	catalogRunsCmd.Flags().Bool("json", false, "output as JSON")
	catalogFilesCmd.Flags().Bool("json", false, "output as JSON")

	catalogCmd.AddCommand(catalogRunsCmd, catalogFilesCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openCatalog() (*catalog.Store, error) {
	path := viper.GetString("catalog")
	if path == "" {
		return nil, fmt.Errorf("no catalog configured: set --catalog or GENOME_FETCH_CATALOG")
	}
	return catalog.Open(path)
}

func runCatalogRuns(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-7s  %-10s  %-16s  %8s  %7s  %5s\n",
		"Run", "TaxID", "Status", "Started", "Selected", "Batches", "Files")
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s  %-7d  %-10s  %-16s  %8d  %7d  %5d\n",
			r.ID, r.TaxID, statusText(r.Status), humanize.Time(r.StartedAt),
			r.Selected, r.Batches, r.Files)
		if r.Error != "" {
			fmt.Fprintf(out, "    %s\n", r.Error)
		}
	}
	return nil
}

func runCatalogFiles(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	files, err := store.Files(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return writeJSON(out, files)
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "No files recorded for run %s.\n", args[0])
		return nil
	}

	var total int64
	for _, f := range files {
		fmt.Fprintf(out, "%-5d  %-40s  %9s  %4d records  %s bases\n",
			f.Batch+1, f.Name, humanize.Bytes(uint64(f.Bytes)), f.Records, humanize.Comma(int64(f.Bases)))
		total += f.Bytes
	}
	fmt.Fprintf(out, "\n%d files, %s\n", len(files), humanize.Bytes(uint64(total)))
	return nil
}

func statusText(s types.RunStatus) string {
	switch s {
	case types.RunSucceeded:
		return color.GreenString("%-10s", s)
	case types.RunFailed:
		return color.RedString("%-10s", s)
	}
	return string(s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
