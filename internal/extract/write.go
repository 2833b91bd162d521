// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"

	"gocloud.dev/blob"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

// WriteSequences writes every .fna entry of zr to sink under its OutputName,
// replacing any existing object of the same name. Other entries are ignored.
// Files are written in archive order; the first failure stops the batch.
func WriteSequences(ctx context.Context, zr *zip.Reader, sink *blob.Bucket, ext string) ([]types.OutputFile, error) {
	var written []types.OutputFile
	for _, f := range zr.File {
		if !IsSequence(f.Name) {
			continue
		}

		name, err := OutputName(f.Name, ext)
		if err != nil {
			return written, err
		}

		data, err := readEntry(f)
		if err != nil {
			return written, err
		}

		if err := sink.WriteAll(ctx, name, data, nil); err != nil {
			return written, fmt.Errorf("writing %s: %w", name, err)
		}

		out := types.OutputFile{
			Name:  name,
			Entry: f.Name,
			Bytes: int64(len(data)),
		}
		if records, bases, err := Summarize(data); err != nil {
			slog.WarnContext(ctx, "could not summarise sequence file",
				slog.String("file", name),
				slog.Any("error", err),
			)
		} else {
			out.Records = records
			out.Bases = bases
		}
		written = append(written, out)
	}
	return written, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open archive file %s: %w", f.Name, err)
	}
	content, readErr := io.ReadAll(rc)
	closeErr := rc.Close()
	if readErr != nil {
		return nil, fmt.Errorf("read archive file %s: %w", f.Name, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close archive file %s: %w", f.Name, closeErr)
	}
	return content, nil
}
