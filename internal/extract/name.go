// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

// IsSequence reports whether an archive entry is a nucleotide FASTA file.
func IsSequence(entry string) bool {
	return strings.HasSuffix(entry, types.SequenceSuffix)
}

// OutputName derives the output file name for a sequence entry. The 4th
// path component is cut at the first "_genomic" and ext is appended:
//
//	ncbi_dataset/data/GCF_000195955.2/GCF_000195955.2_ASM19595v2_genomic.fna
//	-> GCF_000195955.2_ASM19595v2.fna
//
// Entries with fewer than four components, or whose assembly name is empty,
// are types.ErrPathFormat.
func OutputName(entry, ext string) (string, error) {
	parts := strings.Split(entry, "/")
	if len(parts) < types.MinEntryPathComponents {
		return "", fmt.Errorf("%w: archive entry %q has %d path components, want at least %d",
			types.ErrPathFormat, entry, len(parts), types.MinEntryPathComponents)
	}

	name, _, _ := strings.Cut(parts[types.AssemblyNameComponent], types.AssemblyNameMarker)
	if name == "" {
		return "", fmt.Errorf("%w: archive entry %q has no assembly name", types.ErrPathFormat, entry)
	}
	return name + "." + strings.TrimPrefix(ext, "."), nil
}
