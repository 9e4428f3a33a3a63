package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vegasq/sharecat/engine"
	"github.com/vegasq/sharecat/predicate"
	"github.com/vegasq/sharecat/table"
)

// QueryOptions narrow a table query. Filters are predicate strings in the
// grammar of the predicate package; unusable filters degrade to no-ops on
// this path. Limit is forwarded to the server as a hint and enforced
// client-side; zero means unlimited.
type QueryOptions struct {
	Columns []string
	Filters []string
	Limit   int
}

// SharingClient executes end-to-end table queries: catalog query, partition
// pruning, per-file fetch/decode/filter, and concatenation of the surviving
// tables.
type SharingClient struct {
	catalog Catalog
	decoder Decoder
	log     zerolog.Logger
}

// NewSharingClient wires a catalog and a decoder. Pass zerolog.Nop() to
// disable logging.
func NewSharingClient(catalog Catalog, decoder Decoder, log zerolog.Logger) *SharingClient {
	return &SharingClient{catalog: catalog, decoder: decoder, log: log}
}

// ExecuteQuery resolves a table reference into a materialized result.
//
// Per-file fetch or decode failures are logged and skipped; they count
// toward TotalFiles but not FilesProcessed, and never fail the query. A
// query where no file yields rows returns a well-formed empty result, not
// an error.
func (c *SharingClient) ExecuteQuery(ctx context.Context, ref TableRef, opts QueryOptions) (*engine.QueryResult, error) {
	log := c.log.With().
		Str("query_id", uuid.NewString()).
		Str("table", ref.String()).
		Logger()

	// Hints that do not parse are dropped here; the same strings degrade
	// to no-ops in the row filter as well.
	hints := make([]predicate.Predicate, 0, len(opts.Filters))
	for _, text := range opts.Filters {
		pred, err := predicate.Parse(text)
		if err != nil {
			log.Warn().Err(err).Str("predicate", text).Msg("ignoring unparseable filter hint")
			continue
		}
		hints = append(hints, pred)
	}

	manifest, err := c.catalog.QueryTable(ctx, ref, QueryHints{Predicates: opts.Filters, Limit: opts.Limit})
	if err != nil {
		return nil, fmt.Errorf("query table %s: %w", ref, err)
	}

	files := Prune(manifest.Files, hints)
	log.Debug().
		Int("manifest_files", len(manifest.Files)).
		Int("after_prune", len(files)).
		Msg("resolved file manifest")

	var parts []*table.Table
	var processed uint64
	for _, file := range files {
		data, err := c.catalog.FetchFile(ctx, file.URL)
		if err != nil {
			log.Warn().Err(err).Str("file", file.URL).Msg("skipping file: fetch failed")
			continue
		}
		decoded, err := c.decoder.Decode(data)
		if err != nil {
			log.Warn().Err(err).Str("file", file.URL).Msg("skipping file: decode failed")
			continue
		}

		filtered := engine.Filter(decoded, opts.Filters, log)
		filtered = engine.Select(filtered, opts.Columns, log)
		if filtered.NumRows() == 0 {
			continue
		}
		parts = append(parts, filtered)
		processed++
	}

	result := engine.Concatenate(parts)
	if len(parts) == 0 && len(opts.Columns) > 0 {
		result = table.Empty(opts.Columns...)
	}
	if opts.Limit > 0 && result.NumRows() > opts.Limit {
		indices := make([]int, opts.Limit)
		for i := range indices {
			indices[i] = i
		}
		result = result.Gather(indices)
	}

	return &engine.QueryResult{
		Table:          result,
		FilesProcessed: processed,
		TotalFiles:     uint64(len(files)),
	}, nil
}
