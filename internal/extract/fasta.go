// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Summarize counts the FASTA records in data and their total length.
func Summarize(data []byte) (records, bases int, err error) {
	r := fasta.NewReader(bytes.NewReader(data), linear.NewSeq("", nil, alphabet.DNAredundant))
	sc := seqio.NewScanner(r)
	for sc.Next() {
		records++
		bases += sc.Seq().Len()
	}
	if err := sc.Error(); err != nil {
		return 0, 0, fmt.Errorf("parsing FASTA: %w", err)
	}
	return records, bases, nil
}
