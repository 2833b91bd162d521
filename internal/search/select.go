// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "github.com/pdiddy/genome-fetch/pkg/types"

// Selected reports whether d is a complete reference or representative
// genome with an accession. Missing fields never match.
func Selected(d types.AssemblyDescriptor) bool {
	if d.Accession == "" || d.Level != types.LevelCompleteGenome {
		return false
	}
	switch d.Category {
	case types.CategoryReference, types.CategoryRepresentative:
		return true
	default:
		return false
	}
}

// Select returns the accessions of the selected descriptors in input order.
// Duplicates are kept. The result is empty, never nil, when nothing matches.
func Select(descs []types.AssemblyDescriptor) []string {
	accessions := []string{}
	for _, d := range descs {
		if Selected(d) {
			accessions = append(accessions, d.Accession)
		}
	}
	return accessions
}
