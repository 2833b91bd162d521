// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

// OpenSink opens the bucket sequence files are written to. OutputURL, when
// set, is opened as a bucket URL (file:// or mem://). Otherwise OutputDir is
// opened as a plain directory: objects become files named after their key,
// with no attribute sidecars. The caller closes the bucket.
func OpenSink(ctx context.Context, cfg types.FetchConfig) (*blob.Bucket, error) {
	if cfg.OutputURL != "" {
		b, err := blob.OpenBucket(ctx, cfg.OutputURL)
		if err != nil {
			return nil, fmt.Errorf("opening output bucket %s: %w", cfg.OutputURL, err)
		}
		return b, nil
	}

	dir := cfg.OutputDir
	if dir == "" {
		dir = types.DefaultOutputDir
	}
	b, err := fileblob.OpenBucket(dir, &fileblob.Options{
		CreateDir: true,
		NoTempDir: true,
		Metadata:  fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, fmt.Errorf("opening output directory %s: %w", dir, err)
	}
	return b, nil
}
