// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract opens downloaded assembly archives and writes the genome
// sequence files they contain.
package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

// previewLimit caps how much of a bad response is quoted in error messages.
// The full body is attached to the error as the "response" value.
const previewLimit = 512

// OpenArchive opens data as an in-memory ZIP archive. Data that is not a ZIP
// archive yields types.ErrArchiveFormat; the error names the batch and its
// accessions, quotes the start of the response, and carries the accessions
// and the raw response as goerr values.
func OpenArchive(batch types.Batch, data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		accessions := strings.Join(batch.Accessions, ",")
		return nil, goerr.Wrap(
			fmt.Errorf("%w: %w", types.ErrArchiveFormat, err),
			fmt.Sprintf("error in zip file for batch %d request %s, response was: %s",
				batch.Index+1, accessions, Preview(data)),
			goerr.V("batch", batch.Index+1),
			goerr.V("accessions", batch.Accessions),
			goerr.V("response", string(data)),
			goerr.V("response_bytes", len(data)),
		)
	}
	return zr, nil
}

// Preview quotes at most previewLimit bytes of data, noting the total size
// when it is truncated.
func Preview(data []byte) string {
	if len(data) <= previewLimit {
		return fmt.Sprintf("%q", data)
	}
	return fmt.Sprintf("%q... (%d bytes)", data[:previewLimit], len(data))
}
