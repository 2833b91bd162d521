// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the NCBI Datasets assembly descriptor endpoint for a
// taxon and selects the assemblies worth downloading.
package search

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/pdiddy/genome-fetch/internal/httputil"
	"github.com/pdiddy/genome-fetch/pkg/types"
)

// descriptorQuery is fixed: every RefSeq assembly, complete records.
const descriptorQuery = "?limit=all&filters.refseq_only=true&returned_content=COMPLETE"

const schemaURL = "https://genome-fetch.local/schemas/assembly-descriptors.json"

//go:embed descriptors.schema.json
var envelopeSchema []byte

var compileEnvelope = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(envelopeSchema))
	if err != nil {
		return nil, fmt.Errorf("loading descriptor schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding descriptor schema: %w", err)
	}
	return c.Compile(schemaURL)
})

// DescriptorsURL returns the assembly descriptor URL for taxID under the
// Datasets API root base.
func DescriptorsURL(base string, taxID int) string {
	return strings.TrimSuffix(base, "/") + "/assembly_descriptors/taxid/" + strconv.Itoa(taxID) + descriptorQuery
}

// FetchDescriptors issues the single descriptor request for cfg.TaxID and
// returns the records of the top-level "datasets" array in response order.
//
// Request failures are types.ErrNetwork. A body that is not JSON, or whose
// envelope does not match the expected shape, is types.ErrParse and no
// descriptors are returned. A response without "datasets" has no matches.
func FetchDescriptors(ctx context.Context, client *http.Client, cfg types.FetchConfig) ([]types.AssemblyDescriptor, error) {
	cfg = cfg.WithDefaults()
	url := DescriptorsURL(cfg.APIBase, cfg.TaxID)
	body, err := httputil.Get(ctx, client, url, cfg.HTTPConfig, "application/json")
	if err != nil {
		return nil, fmt.Errorf("fetching assembly descriptors for taxid %d: %w", cfg.TaxID, err)
	}
	return ParseDescriptors(body)
}

// ParseDescriptors decodes an assembly_descriptors response body.
func ParseDescriptors(body []byte) ([]types.AssemblyDescriptor, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: descriptor response is not valid JSON: %w", types.ErrParse, err)
	}

	sch, err := compileEnvelope()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: unexpected descriptor response: %w", types.ErrParse, err)
	}

	// The schema guarantees an object whose datasets, if any, are objects.
	root := inst.(map[string]any)
	raw, _ := root["datasets"].([]any)

	descs := make([]types.AssemblyDescriptor, 0, len(raw))
	for _, item := range raw {
		descs = append(descs, descriptorFromObject(item.(map[string]any)))
	}
	return descs, nil
}

func descriptorFromObject(m map[string]any) types.AssemblyDescriptor {
	d := types.AssemblyDescriptor{
		Accession:    stringField(m, "assembly_accession"),
		Level:        stringField(m, "assembly_level"),
		Category:     stringField(m, "assembly_category"),
		OrganismName: stringField(m, "org_name"),
		DisplayName:  stringField(m, "display_name"),
	}
	if v, ok := m["tax_id"]; ok && v != nil {
		d.TaxID = fmt.Sprint(v)
	}
	return d
}

// stringField returns m[key] when it is a string, "" otherwise.
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
