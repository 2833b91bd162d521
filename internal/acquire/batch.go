// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"net/url"
	"strings"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

// downloadQuery asks for sequences and fully resolved archives.
const downloadQuery = "?&include_sequence=true&resolve=FULLY_RESOLVED"

// accessionSeparator is a percent-encoded comma.
const accessionSeparator = "%2C"

// Partition splits accessions into consecutive batches of at most n. The
// batches share accessions' backing array and their concatenation equals
// accessions. n <= 0 uses types.DefaultBatchSize.
func Partition(accessions []string, n int) []types.Batch {
	if n <= 0 {
		n = types.DefaultBatchSize
	}
	batches := make([]types.Batch, 0, (len(accessions)+n-1)/n)
	for i := 0; i < len(accessions); i += n {
		end := min(i+n, len(accessions))
		batches = append(batches, types.Batch{
			Index:      len(batches),
			Accessions: accessions[i:end:end],
		})
	}
	return batches
}

// DownloadURL returns the archive download URL for batch under the Datasets
// API root base.
func DownloadURL(base string, batch types.Batch) string {
	escaped := make([]string, len(batch.Accessions))
	for i, a := range batch.Accessions {
		escaped[i] = url.PathEscape(a)
	}
	return strings.TrimSuffix(base, "/") + "/download/assembly_accession/" +
		strings.Join(escaped, accessionSeparator) + downloadQuery
}
