// Package client resolves logical table queries against a sharing server:
// it talks to the catalog, prunes the returned file manifest by partition
// metadata, and orchestrates per-file download, decode and filtering into a
// single query result.
package client

import (
	"context"

	"github.com/vegasq/sharecat/table"
)

// Share is a named collection of schemas exposed by a sharing server.
type Share struct {
	Name string `json:"name"`
}

// SchemaRef identifies a schema within a share.
type SchemaRef struct {
	Name  string `json:"name"`
	Share string `json:"share"`
}

// TableRef identifies a table within a share and schema.
type TableRef struct {
	Name   string `json:"name"`
	Schema string `json:"schema"`
	Share  string `json:"share"`
}

// String returns the dotted share.schema.table form.
func (r TableRef) String() string {
	return r.Share + "." + r.Schema + "." + r.Name
}

// Protocol is the protocol metadata returned at the head of a manifest.
type Protocol struct {
	MinReaderVersion int `json:"minReaderVersion"`
}

// Format describes how a shared table's files are encoded.
type Format struct {
	Provider string `json:"provider"`
}

// TableMetadata describes the shared table behind a manifest.
type TableMetadata struct {
	ID               string   `json:"id"`
	Name             string   `json:"name,omitempty"`
	Format           Format   `json:"format"`
	SchemaString     string   `json:"schemaString"`
	PartitionColumns []string `json:"partitionColumns"`
}

// FileReference is one remote columnar file in a manifest. Partition values
// are always strings on the wire and must be coerced before numeric
// comparison.
type FileReference struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	PartitionValues map[string]string `json:"partitionValues"`
	Size            int64             `json:"size"`
}

// Manifest is the catalog's answer to a table query: protocol and table
// metadata plus the list of file references to fetch.
type Manifest struct {
	Protocol Protocol
	Metadata TableMetadata
	Files    []FileReference
}

// QueryHints are forwarded to the catalog with a table query. Servers may
// use them to reduce the manifest but are free to ignore them; the limit is
// a hint, not a guarantee.
type QueryHints struct {
	Predicates []string
	Limit      int
}

// Catalog executes table queries and file fetches against a sharing server.
type Catalog interface {
	ListShares(ctx context.Context) ([]Share, error)
	ListSchemas(ctx context.Context, share string) ([]SchemaRef, error)
	ListTables(ctx context.Context, share, schema string) ([]TableRef, error)
	QueryTable(ctx context.Context, ref TableRef, hints QueryHints) (*Manifest, error)
	FetchFile(ctx context.Context, url string) ([]byte, error)
}

// Decoder turns the raw bytes of one columnar file into a table.
type Decoder interface {
	Decode(data []byte) (*table.Table, error)
}
