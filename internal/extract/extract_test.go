// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"

	"github.com/pdiddy/genome-fetch/pkg/types"
)

const sampleFASTA = ">NC_000962.3 Mycobacterium tuberculosis H37Rv, complete genome\nTTGACCGATGACCCCGGTTC\nAGGCTTCACC\n>plasmid\nACGTN\n"

type entry struct {
	name string
	data string
}

// buildZip returns a ZIP archive containing entries in order.
func buildZip(t *testing.T, entries ...entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = io.WriteString(w, e.data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func listKeys(t *testing.T, b *blob.Bucket) []string {
	t.Helper()
	var keys []string
	iter := b.List(nil)
	for {
		obj, err := iter.Next(context.Background())
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		keys = append(keys, obj.Key)
	}
	return keys
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		name    string
		entry   string
		ext     string
		want    string
		wantErr error
	}{
		{"synthetic", "a/b/c/GCF_000001_genomic.fna", "fna", "GCF_000001.fna", nil},
		{"ncbi layout", "ncbi_dataset/data/GCF_000195955.2/GCF_000195955.2_ASM19595v2_genomic.fna", "fna", "GCF_000195955.2_ASM19595v2.fna", nil},
		{"alternate extension", "a/b/c/GCF_000001_genomic.fna", "fa", "GCF_000001.fa", nil},
		{"dotted extension", "a/b/c/GCF_000001_genomic.fna", ".fa", "GCF_000001.fa", nil},
		{"cut at first marker", "a/b/c/X_genomic_genomic.fna", "fna", "X.fna", nil},
		{"no marker keeps component", "a/b/c/chr1.fna", "fna", "chr1.fna.fna", nil},
		{"deeper path uses 4th component", "a/b/c/GCF_2_genomic/d.fna", "fna", "GCF_2.fna", nil},
		{"three components", "a/b/GCF_000001_genomic.fna", "fna", "", types.ErrPathFormat},
		{"bare file", "GCF_000001_genomic.fna", "fna", "", types.ErrPathFormat},
		{"empty name", "a/b/c/_genomic.fna", "fna", "", types.ErrPathFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OutputName(tt.entry, tt.ext)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.entry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenArchive(t *testing.T) {
	data := buildZip(t, entry{"a/b/c/GCF_1_genomic.fna", sampleFASTA})
	zr, err := OpenArchive(types.Batch{Accessions: []string{"GCF_1"}}, data)
	require.NoError(t, err)
	assert.Len(t, zr.File, 1)
}

func TestOpenArchive_NotZip(t *testing.T) {
	batch := types.Batch{Index: 2, Accessions: []string{"GCF_000195955.2", "GCF_000026445.2"}}
	body := []byte(`{"error": "invalid accession"}`)

	zr, err := OpenArchive(batch, body)
	require.Error(t, err)
	assert.Nil(t, zr)

	assert.ErrorIs(t, err, types.ErrArchiveFormat)
	assert.ErrorIs(t, err, zip.ErrFormat)
	msg := err.Error()
	assert.Contains(t, msg, "GCF_000195955.2,GCF_000026445.2")
	assert.Contains(t, msg, "batch 3")
	assert.Contains(t, msg, "invalid accession")
}

func TestOpenArchive_ValuesCarryFullResponse(t *testing.T) {
	batch := types.Batch{Index: 0, Accessions: []string{"GCF_1"}}
	body := bytes.Repeat([]byte("<html>busy</html>"), 120)
	require.Greater(t, len(body), previewLimit)

	_, err := OpenArchive(batch, body)
	require.Error(t, err)
	assert.Less(t, len(err.Error()), len(body))

	values := goerr.Values(err)
	assert.Equal(t, string(body), values["response"])
	assert.Equal(t, []string{"GCF_1"}, values["accessions"])
	assert.Equal(t, 1, values["batch"])
	assert.Equal(t, len(body), values["response_bytes"])
}

func TestOpenArchive_Empty(t *testing.T) {
	_, err := OpenArchive(types.Batch{Accessions: []string{"GCF_1"}}, nil)
	assert.ErrorIs(t, err, types.ErrArchiveFormat)
	assert.Contains(t, err.Error(), "GCF_1")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, `"abc"`, Preview([]byte("abc")))

	long := bytes.Repeat([]byte("x"), previewLimit+10)
	p := Preview(long)
	assert.Contains(t, p, "(522 bytes)")
	assert.Less(t, len(p), len(long)+10)
}

func TestWriteSequences_RoundTrip(t *testing.T) {
	ctx := context.Background()
	sink := memblob.OpenBucket(nil)
	defer sink.Close()

	data := buildZip(t,
		entry{"a/b/c/GCF_000001_genomic.fna", sampleFASTA},
		entry{"a/b/c/GCF_000001_genomic.gff", "##gff-version 3\n"},
		entry{"README.md", "dataset readme"},
		entry{"a/b/c/data_report.jsonl", "{}\n"},
	)
	zr, err := OpenArchive(types.Batch{Accessions: []string{"GCF_000001"}}, data)
	require.NoError(t, err)

	files, err := WriteSequences(ctx, zr, sink, types.DefaultOutputExt)
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "GCF_000001.fna", files[0].Name)
	assert.Equal(t, "a/b/c/GCF_000001_genomic.fna", files[0].Entry)
	assert.Equal(t, int64(len(sampleFASTA)), files[0].Bytes)
	assert.Equal(t, 2, files[0].Records)
	assert.Equal(t, 35, files[0].Bases)

	got, err := sink.ReadAll(ctx, "GCF_000001.fna")
	require.NoError(t, err)
	assert.Equal(t, []byte(sampleFASTA), got)

	assert.Equal(t, []string{"GCF_000001.fna"}, listKeys(t, sink))
}

func TestWriteSequences_NoSequenceEntries(t *testing.T) {
	ctx := context.Background()
	sink := memblob.OpenBucket(nil)
	defer sink.Close()

	data := buildZip(t,
		entry{"ncbi_dataset/data/GCF_1/GCF_1_genomic.gbff", "LOCUS"},
		entry{"ncbi_dataset/data/dataset_catalog.json", "{}"},
	)
	zr, err := OpenArchive(types.Batch{}, data)
	require.NoError(t, err)

	files, err := WriteSequences(ctx, zr, sink, types.DefaultOutputExt)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Empty(t, listKeys(t, sink))
}

func TestWriteSequences_Overwrites(t *testing.T) {
	ctx := context.Background()
	sink := memblob.OpenBucket(nil)
	defer sink.Close()
	require.NoError(t, sink.WriteAll(ctx, "GCF_1.fna", []byte("stale"), nil))

	data := buildZip(t, entry{"a/b/c/GCF_1_genomic.fna", ">new\nACGT\n"})
	zr, err := OpenArchive(types.Batch{}, data)
	require.NoError(t, err)

	_, err = WriteSequences(ctx, zr, sink, "fna")
	require.NoError(t, err)

	got, err := sink.ReadAll(ctx, "GCF_1.fna")
	require.NoError(t, err)
	assert.Equal(t, ">new\nACGT\n", string(got))
}

func TestWriteSequences_ShortPathFails(t *testing.T) {
	ctx := context.Background()
	sink := memblob.OpenBucket(nil)
	defer sink.Close()

	data := buildZip(t,
		entry{"a/b/c/GCF_1_genomic.fna", ">one\nAC\n"},
		entry{"data/GCF_2_genomic.fna", ">two\nGT\n"},
	)
	zr, err := OpenArchive(types.Batch{}, data)
	require.NoError(t, err)

	files, err := WriteSequences(ctx, zr, sink, "fna")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrPathFormat)
	assert.Len(t, files, 1)
}

func TestWriteSequences_UnparseableFASTAStillWritten(t *testing.T) {
	ctx := context.Background()
	sink := memblob.OpenBucket(nil)
	defer sink.Close()

	data := buildZip(t, entry{"a/b/c/GCF_1_genomic.fna", "not a fasta file\n"})
	zr, err := OpenArchive(types.Batch{}, data)
	require.NoError(t, err)

	files, err := WriteSequences(ctx, zr, sink, "fna")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Zero(t, files[0].Records)

	got, err := sink.ReadAll(ctx, "GCF_1.fna")
	require.NoError(t, err)
	assert.Equal(t, "not a fasta file\n", string(got))
}

func TestSummarize(t *testing.T) {
	records, bases, err := Summarize([]byte(sampleFASTA))
	require.NoError(t, err)
	assert.Equal(t, 2, records)
	assert.Equal(t, 35, bases)
}

func TestOpenSink_Directory(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "genomes")

	sink, err := OpenSink(ctx, types.FetchConfig{OutputDir: dir})
	require.NoError(t, err)
	require.NoError(t, sink.WriteAll(ctx, "GCF_1.fna", []byte(">x\nA\n"), nil))
	require.NoError(t, sink.Close())

	got, err := os.ReadFile(filepath.Join(dir, "GCF_1.fna"))
	require.NoError(t, err)
	assert.Equal(t, ">x\nA\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOpenSink_URL(t *testing.T) {
	sink, err := OpenSink(context.Background(), types.FetchConfig{OutputURL: "mem://"})
	require.NoError(t, err)
	assert.NoError(t, sink.Close())

	_, err = OpenSink(context.Background(), types.FetchConfig{OutputURL: "nope://bucket"})
	assert.Error(t, err)
}
