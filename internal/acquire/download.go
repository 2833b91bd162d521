// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/genome-fetch/internal/httputil"
	"github.com/pdiddy/genome-fetch/pkg/types"
)

// DownloadBatch issues the single archive request for batch and returns the
// raw response body. Failures are types.ErrNetwork naming the batch's
// accessions. The body is not checked here; see extract.OpenArchive.
func DownloadBatch(ctx context.Context, client *http.Client, batch types.Batch, cfg types.FetchConfig) ([]byte, error) {
	cfg = cfg.WithDefaults()
	body, err := httputil.Get(ctx, client, DownloadURL(cfg.APIBase, batch), cfg.HTTPConfig, "application/zip")
	if err != nil {
		return nil, fmt.Errorf("downloading batch %d (%s): %w",
			batch.Index+1, strings.Join(batch.Accessions, ","), err)
	}
	return body, nil
}
