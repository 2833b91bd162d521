// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults for a fetch run. TaxID 1763 is the Mycobacterium genus.
const (
	DefaultTaxID     = 1763
	DefaultBatchSize = 20
	DefaultOutputExt = "fna"
	DefaultOutputDir = "."
	DefaultUserAgent = "genome-fetch/0.1"
	DefaultAPIBase   = "https://api.ncbi.nlm.nih.gov/datasets/v1alpha"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero leaves the client default
	// (no timeout) in place.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "genome-fetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for a complete fetch run: descriptor query,
// selection, batched download and extraction.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIBase is the NCBI Datasets API root the descriptor and download
	// endpoints hang off.
	APIBase string `json:"api_base" yaml:"api_base"`

	// TaxID is the NCBI taxonomic identifier to query (default 1763).
	TaxID int `json:"tax_id" yaml:"tax_id"`

	// BatchSize is the number of accessions per download request (default 20).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// OutputExt is the extension given to every written sequence file,
	// without the leading dot (default "fna").
	OutputExt string `json:"output_ext" yaml:"output_ext"`

	// OutputDir is the directory sequence files are written to (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OutputURL, when set, is a blob bucket URL (file://, mem://) that
	// replaces OutputDir as the destination.
	OutputURL string `json:"output_url,omitempty" yaml:"output_url,omitempty"`

	// ManifestPath, when set, receives a YAML RunManifest after a successful run.
	ManifestPath string `json:"manifest,omitempty" yaml:"manifest,omitempty"`

	// CatalogPath, when set, is the SQLite database the run is recorded in.
	CatalogPath string `json:"catalog,omitempty" yaml:"catalog,omitempty"`
}

// WithDefaults returns a copy of c with zero fields replaced by defaults.
func (c FetchConfig) WithDefaults() FetchConfig {
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	if c.TaxID <= 0 {
		c.TaxID = DefaultTaxID
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.OutputExt == "" {
		c.OutputExt = DefaultOutputExt
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}
