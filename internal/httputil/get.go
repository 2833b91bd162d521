// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

// Get issues exactly one GET request for url and returns the whole response
// body. The request is never retried. A transport failure, a non-2xx status
// or a truncated body is reported as types.ErrNetwork with the URL in the
// message. The response body is closed on every path.
//
// accept sets the Accept header when non-empty.
func Get(ctx context.Context, client *http.Client, url string, cfg types.HTTPConfig, accept string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", url, err)
	}
	if cfg.UserAgent != "" {
		req.Header.Set("User-Agent", cfg.UserAgent)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	slog.DebugContext(ctx, "http request", slog.String("method", req.Method), slog.String("url", url))

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", types.ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: GET %s: HTTP %d", types.ErrNetwork, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response from %s: %w", types.ErrNetwork, url, err)
	}

	slog.DebugContext(ctx, "http response",
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	)
	return body, nil
}
