// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Assembly levels and categories used by the selector.
const (
	LevelCompleteGenome    = "Complete Genome"
	CategoryReference      = "reference genome"
	CategoryRepresentative = "representative genome"
)

// Archive layout: sequence entries end in SequenceSuffix and live at
// ncbi_dataset/data/{accession}/{assembly}_genomic.fna, so the assembly name
// is the 4th path component cut at AssemblyNameMarker.
const (
	SequenceSuffix         = ".fna"
	AssemblyNameMarker     = "_genomic"
	MinEntryPathComponents = 4
	AssemblyNameComponent  = 3
)

// AssemblyDescriptor is one record of the assembly_descriptors response.
// Fields missing from the response, or not strings, are left empty.
type AssemblyDescriptor struct {
	// Accession is the assembly identifier, e.g. "GCF_000195955.2".
	Accession string `json:"assembly_accession" yaml:"assembly_accession"`

	// Level is the assembly level, e.g. "Complete Genome" or "Contig".
	Level string `json:"assembly_level" yaml:"assembly_level"`

	// Category is the RefSeq category, e.g. "reference genome".
	Category string `json:"assembly_category" yaml:"assembly_category"`

	// OrganismName is the scientific name of the sequenced organism.
	OrganismName string `json:"org_name,omitempty" yaml:"org_name,omitempty"`

	// TaxID is the organism's taxonomic identifier, as reported by the API.
	TaxID string `json:"tax_id,omitempty" yaml:"tax_id,omitempty"`

	// DisplayName is the assembly name, e.g. "ASM19595v2".
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
}

// Batch is a contiguous run of at most BatchSize accessions fetched by one
// download request.
type Batch struct {
	// Index is the 0-based position of the batch in the run.
	Index int `json:"index" yaml:"index"`

	// Accessions are the batch members in selection order.
	Accessions []string `json:"accessions" yaml:"accessions"`
}

// OutputFile describes one sequence file written from an archive entry.
type OutputFile struct {
	// Name is the written file name, e.g. "GCF_000195955.fna".
	Name string `json:"name" yaml:"name"`

	// Entry is the path of the source entry inside the archive.
	Entry string `json:"entry" yaml:"entry"`

	// Bytes is the size of the written file.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// Records is the number of FASTA records, when the file could be parsed.
	Records int `json:"records" yaml:"records"`

	// Bases is the total sequence length across records.
	Bases int `json:"bases" yaml:"bases"`
}

// BatchManifest lists the files one batch produced.
type BatchManifest struct {
	Batch `yaml:",inline"`

	Files []OutputFile `json:"files" yaml:"files"`
}

// RunManifest summarises a successful fetch run.
type RunManifest struct {
	RunID      string          `json:"run_id" yaml:"run_id"`
	TaxID      int             `json:"tax_id" yaml:"tax_id"`
	StartedAt  time.Time       `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time       `json:"finished_at" yaml:"finished_at"`
	Accessions []string        `json:"accessions" yaml:"accessions"`
	Batches    []BatchManifest `json:"batches" yaml:"batches"`
}
