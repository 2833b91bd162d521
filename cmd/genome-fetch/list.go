// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/genome-fetch/internal/search"
	"github.com/pdiddy/genome-fetch/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the assemblies fetch would download, without downloading",
	Long: `List issues the assembly descriptor request for --taxid and prints the
assemblies the selector keeps. --all prints every descriptor with a selected
column. No archives are downloaded.`,
	Args:    cobra.NoArgs,
	PreRunE: bindFetchFlags,
	RunE:    runList,
}

func init() {
	f := listCmd.Flags()
	f.Int("taxid", types.DefaultTaxID, "NCBI taxonomy ID to query")
	f.Duration("timeout", 0, "HTTP request timeout (default none)")
	f.String("user-agent", types.DefaultUserAgent, "User-Agent header sent with requests")
	f.String("api-base", types.DefaultAPIBase, "NCBI Datasets API root")
	f.Bool("all", false, "list every descriptor, not only the selected ones")
	f.Bool("json", false, "output as JSON")
	f.Bool("yaml", false, "output as YAML")

	rootCmd.AddCommand(listCmd)
}

// listedAssembly is one row of list output.
type listedAssembly struct {
	types.AssemblyDescriptor `yaml:",inline"`

	Selected bool `json:"selected" yaml:"selected"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := fetchConfigFromViper()
	all, _ := cmd.Flags().GetBool("all")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	if jsonOutput && yamlOutput {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	client := &http.Client{Timeout: cfg.Timeout}
	descs, err := search.FetchDescriptors(cmd.Context(), client, cfg)
	if err != nil {
		return err
	}

	rows := make([]listedAssembly, 0, len(descs))
	for _, d := range descs {
		sel := search.Selected(d)
		if sel || all {
			rows = append(rows, listedAssembly{AssemblyDescriptor: d, Selected: sel})
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case yamlOutput:
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(rows)
	}
	return formatListOutput(out, rows, len(descs), cfg.TaxID)
}

func formatListOutput(w io.Writer, rows []listedAssembly, total, taxID int) error {
	if len(rows) == 0 {
		fmt.Fprintf(w, "No assemblies found for taxid %d.\n", taxID)
		return nil
	}

	fmt.Fprintf(w, "%-18s  %-3s  %-16s  %-22s  %s\n",
		"Accession", "Sel", "Level", "Category", "Organism")
	for _, r := range rows {
		mark := ""
		if r.Selected {
			mark = "*"
		}
		organism := r.OrganismName
		if len(organism) > 40 {
			organism = organism[:37] + "..."
		}
		fmt.Fprintf(w, "%-18s  %-3s  %-16s  %-22s  %s\n",
			r.Accession, mark, r.Level, r.Category, organism)
	}

	selected := 0
	for _, r := range rows {
		if r.Selected {
			selected++
		}
	}
	fmt.Fprintf(w, "\n%d of %d assemblies selected\n", selected, total)
	return nil
}
