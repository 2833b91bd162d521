// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/genome-fetch/internal/acquire"
	"github.com/pdiddy/genome-fetch/internal/catalog"
	"github.com/pdiddy/genome-fetch/internal/extract"
	"github.com/pdiddy/genome-fetch/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download complete reference genomes for a taxon",
	Long: `Fetch queries the assembly descriptors for --taxid, keeps complete
reference and representative genomes, downloads them --batch-size at a time
and writes one {assembly}.{ext} FASTA file per assembly to --output-dir (or
the bucket named by --output-url).

The run stops at the first failure. Files written by earlier batches are
kept. Existing files with the same name are overwritten.`,
	Args:    cobra.NoArgs,
	PreRunE: bindFetchFlags,
	RunE:    runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.Int("taxid", types.DefaultTaxID, "NCBI taxonomy ID to fetch")
	f.Int("batch-size", types.DefaultBatchSize, "accessions per download request")
	f.String("ext", types.DefaultOutputExt, "extension for written sequence files")
	f.String("output-dir", types.DefaultOutputDir, "directory sequence files are written to")
	f.String("output-url", "", "blob bucket URL (file://, mem://) used instead of --output-dir")
	f.String("manifest", "", "write a YAML run manifest here after a successful run")
	f.Duration("timeout", 0, "HTTP request timeout (default none)")
	f.String("user-agent", types.DefaultUserAgent, "User-Agent header sent with requests")
	f.String("api-base", types.DefaultAPIBase, "NCBI Datasets API root")

	rootCmd.AddCommand(fetchCmd)
}

// bindFetchFlags binds the query flags of the running command. fetch and
// list define some of the same flags, so binding waits until one of them runs.
func bindFetchFlags(cmd *cobra.Command, _ []string) error {
	for flag, key := range map[string]string{
		"taxid":      "tax_id",
		"batch-size": "batch_size",
		"ext":        "output_ext",
		"output-dir": "output_dir",
		"output-url": "output_url",
		"manifest":   "manifest",
		"timeout":    "timeout",
		"user-agent": "user_agent",
		"api-base":   "api_base",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			bindFlag(f, key)
		}
	}
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := fetchConfigFromViper()
	out := cmd.OutOrStdout()

	sink, err := extract.OpenSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	p := &acquire.Pipeline{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
		Sink:   sink,
		Out:    out,
	}

	if cfg.CatalogPath != "" {
		store, err := catalog.Open(cfg.CatalogPath)
		if err != nil {
			return err
		}
		defer store.Close()
		p.Recorder = store
	}

	fmt.Fprintf(out, "fetching: taxid %d, batch size %d, timeout %s\n",
		cfg.TaxID, cfg.BatchSize, httpTimeout(cfg.Timeout))

	result, err := p.Run(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %d batches completed, %d files written\n",
			color.YellowString("Run stopped:"), result.Batches, len(result.Files))
		return err
	}

	fmt.Fprintf(out, "\n%s %d selected, %d batches, %d files written (run %s)\n",
		color.GreenString("Run summary:"), len(result.Selected), result.Batches, len(result.Files), result.RunID)
	return nil
}
