// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire runs a complete fetch: it queries the assembly descriptors
// for a taxon, selects complete reference and representative genomes,
// downloads them in batches and writes their sequence files to a sink.
package acquire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"gocloud.dev/blob"

	"github.com/pdiddy/genome-fetch/internal/extract"
	"github.com/pdiddy/genome-fetch/internal/search"
	"github.com/pdiddy/genome-fetch/pkg/types"
)

// Recorder receives the progress of a run. *catalog.Store implements it.
type Recorder interface {
	BeginRun(ctx context.Context, runID string, taxID int, startedAt time.Time) error
	RecordAssemblies(ctx context.Context, runID string, descs []types.AssemblyDescriptor) error
	RecordFiles(ctx context.Context, runID string, batch int, files []types.OutputFile) error
	FinishRun(ctx context.Context, rec types.RunRecord, runErr error) error
}

// Pipeline holds everything one fetch run needs.
type Pipeline struct {
	Client *http.Client
	Config types.FetchConfig

	// Sink receives the sequence files. See extract.OpenSink.
	Sink *blob.Bucket

	// Recorder, when non-nil, is told about the run as it progresses.
	Recorder Recorder

	// Out receives one status line per step. Nil discards them.
	Out io.Writer
}

// RunResult holds the outcome of a fetch run. On failure it reflects the
// work completed before the failing step.
type RunResult struct {
	RunID       string
	Descriptors int
	Selected    []string
	Batches     int
	Files       []types.OutputFile
	Manifest    types.RunManifest
}

// Run executes the fetch. Steps run strictly in sequence and the first
// failure ends the run: batches after a failing batch are never requested.
// An empty selection issues no download requests and succeeds.
func (p *Pipeline) Run(ctx context.Context) (RunResult, error) {
	cfg := p.Config.WithDefaults()
	w := p.Out
	if w == nil {
		w = io.Discard
	}

	res := RunResult{
		RunID: uuid.NewString(),
		Manifest: types.RunManifest{
			TaxID:     cfg.TaxID,
			StartedAt: time.Now().UTC(),
		},
	}
	res.Manifest.RunID = res.RunID

	if p.Recorder != nil {
		if err := p.Recorder.BeginRun(ctx, res.RunID, cfg.TaxID, res.Manifest.StartedAt); err != nil {
			return res, fmt.Errorf("recording run start: %w", err)
		}
	}

	runErr := p.run(ctx, cfg, w, &res)
	res.Manifest.FinishedAt = time.Now().UTC()

	if p.Recorder != nil {
		rec := types.RunRecord{
			ID:         res.RunID,
			TaxID:      cfg.TaxID,
			StartedAt:  res.Manifest.StartedAt,
			FinishedAt: res.Manifest.FinishedAt,
			Selected:   len(res.Selected),
			Batches:    res.Batches,
			Files:      len(res.Files),
		}
		if err := p.Recorder.FinishRun(ctx, rec, runErr); err != nil {
			if runErr != nil {
				slog.WarnContext(ctx, "recording run failure", "run", res.RunID, "error", err)
			} else {
				runErr = fmt.Errorf("recording run finish: %w", err)
			}
		}
	}
	if runErr != nil {
		return res, runErr
	}

	if cfg.ManifestPath != "" {
		if err := writeManifest(&res.Manifest, cfg.ManifestPath); err != nil {
			return res, fmt.Errorf("writing manifest: %w", err)
		}
		fmt.Fprintf(w, "manifest: %s\n", cfg.ManifestPath)
	}
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, cfg types.FetchConfig, w io.Writer, res *RunResult) error {
	descs, err := search.FetchDescriptors(ctx, p.Client, cfg)
	if err != nil {
		return err
	}
	res.Descriptors = len(descs)
	res.Selected = search.Select(descs)
	res.Manifest.Accessions = res.Selected
	fmt.Fprintf(w, "selected: %d of %d assemblies (taxid %d)\n", len(res.Selected), len(descs), cfg.TaxID)

	if p.Recorder != nil {
		if err := p.Recorder.RecordAssemblies(ctx, res.RunID, descs); err != nil {
			return fmt.Errorf("recording assemblies: %w", err)
		}
	}

	batches := Partition(res.Selected, cfg.BatchSize)
	for _, b := range batches {
		files, err := p.fetchBatch(ctx, cfg, b, len(batches), w)
		res.Files = append(res.Files, files...)
		if len(files) > 0 && p.Recorder != nil {
			if rerr := p.Recorder.RecordFiles(ctx, res.RunID, b.Index, files); rerr != nil && err == nil {
				err = fmt.Errorf("recording files: %w", rerr)
			}
		}
		if err != nil {
			return err
		}
		res.Batches++
		res.Manifest.Batches = append(res.Manifest.Batches, types.BatchManifest{Batch: b, Files: files})
	}
	return nil
}

// fetchBatch downloads one batch and writes its sequences. The response
// body is dropped when it returns.
func (p *Pipeline) fetchBatch(ctx context.Context, cfg types.FetchConfig, b types.Batch, total int, w io.Writer) ([]types.OutputFile, error) {
	fmt.Fprintf(w, "downloading: batch %d/%d (%d accessions)\n", b.Index+1, total, len(b.Accessions))

	data, err := DownloadBatch(ctx, p.Client, b, cfg)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "batch downloaded", "batch", b.Index+1, "bytes", len(data))

	zr, err := extract.OpenArchive(b, data)
	if err != nil {
		return nil, err
	}

	files, err := extract.WriteSequences(ctx, zr, p.Sink, cfg.OutputExt)
	for _, f := range files {
		fmt.Fprintf(w, "wrote: %s (%s, %d records)\n", f.Name, humanize.Bytes(uint64(f.Bytes)), f.Records)
	}
	if err != nil {
		return files, fmt.Errorf("extracting batch %d (%s): %w",
			b.Index+1, strings.Join(b.Accessions, ","), err)
	}
	return files, nil
}
