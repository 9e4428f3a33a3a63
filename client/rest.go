package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const userAgent = "sharecat"

// maxRetries bounds the retry attempts for transient catalog and file
// fetch failures.
const maxRetries = 3

// CatalogError is a non-success response from the sharing server.
type CatalogError struct {
	Status  int
	Message string
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog request failed with status %d: %s", e.Status, e.Message)
}

// RestCatalog talks to a sharing server over its REST API. Transient
// failures (network errors, 429 and 5xx responses) are retried with
// exponential backoff; other error responses fail immediately.
type RestCatalog struct {
	api   *resty.Client
	files *resty.Client
	log   zerolog.Logger
}

// NewRestCatalog builds a catalog client from a share profile. File fetches
// use pre-signed URLs, so they go through a separate client that never
// sends the bearer token.
func NewRestCatalog(profile *Profile, log zerolog.Logger) *RestCatalog {
	api := resty.New().
		SetBaseURL(strings.TrimRight(profile.Endpoint, "/")).
		SetAuthToken(profile.BearerToken).
		SetHeader("User-Agent", userAgent)
	files := resty.New().
		SetHeader("User-Agent", userAgent)
	return &RestCatalog{api: api, files: files, log: log}
}

// listPage is the common shape of the server's paginated listing responses.
type listPage[T any] struct {
	Items         []T    `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// ListShares returns every share the recipient can see.
func (c *RestCatalog) ListShares(ctx context.Context) ([]Share, error) {
	return listAll[Share](ctx, c, "/shares")
}

// ListSchemas returns the schemas of a share.
func (c *RestCatalog) ListSchemas(ctx context.Context, share string) ([]SchemaRef, error) {
	return listAll[SchemaRef](ctx, c, "/shares/"+url.PathEscape(share)+"/schemas")
}

// ListTables returns the tables of a schema.
func (c *RestCatalog) ListTables(ctx context.Context, share, schema string) ([]TableRef, error) {
	path := "/shares/" + url.PathEscape(share) + "/schemas/" + url.PathEscape(schema) + "/tables"
	return listAll[TableRef](ctx, c, path)
}

// listAll follows nextPageToken until the listing is exhausted.
func listAll[T any](ctx context.Context, c *RestCatalog, path string) ([]T, error) {
	var items []T
	token := ""
	for {
		var page listPage[T]
		req := c.api.R().SetContext(ctx).SetResult(&page)
		if token != "" {
			req.SetQueryParam("pageToken", token)
		}
		if _, err := c.do(ctx, func() (*resty.Response, error) { return req.Get(path) }); err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		if page.NextPageToken == "" {
			return items, nil
		}
		token = page.NextPageToken
	}
}

// queryRequest is the body of a table query.
type queryRequest struct {
	PredicateHints []string `json:"predicateHints,omitempty"`
	LimitHint      int      `json:"limitHint,omitempty"`
}

// manifestLine is one newline-delimited JSON record of a query response.
// Exactly one field is set per line.
type manifestLine struct {
	Protocol *Protocol      `json:"protocol"`
	Metadata *TableMetadata `json:"metaData"`
	File     *FileReference `json:"file"`
}

// QueryTable executes a table query and decodes the newline-delimited
// manifest: a protocol line, a metadata line, then one line per file.
func (c *RestCatalog) QueryTable(ctx context.Context, ref TableRef, hints QueryHints) (*Manifest, error) {
	path := "/shares/" + url.PathEscape(ref.Share) +
		"/schemas/" + url.PathEscape(ref.Schema) +
		"/tables/" + url.PathEscape(ref.Name) + "/query"

	body := queryRequest{PredicateHints: hints.Predicates}
	if hints.Limit > 0 {
		body.LimitHint = hints.Limit
	}

	req := c.api.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	resp, err := c.do(ctx, func() (*resty.Response, error) { return req.Post(path) })
	if err != nil {
		return nil, err
	}

	return decodeManifest(resp.Body())
}

// decodeManifest parses the newline-delimited JSON body of a query
// response.
func decodeManifest(body []byte) (*Manifest, error) {
	manifest := &Manifest{}
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var record manifestLine
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("malformed manifest line %q: %w", line, err)
		}
		switch {
		case record.Protocol != nil:
			manifest.Protocol = *record.Protocol
		case record.Metadata != nil:
			manifest.Metadata = *record.Metadata
		case record.File != nil:
			manifest.Files = append(manifest.Files, *record.File)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return manifest, nil
}

// FetchFile downloads the raw bytes of one file via its pre-signed URL.
func (c *RestCatalog) FetchFile(ctx context.Context, fileURL string) ([]byte, error) {
	req := c.files.R().SetContext(ctx)
	resp, err := c.do(ctx, func() (*resty.Response, error) { return req.Get(fileURL) })
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// do sends a request with retry on transient failures.
func (c *RestCatalog) do(ctx context.Context, send func() (*resty.Response, error)) (*resty.Response, error) {
	var resp *resty.Response
	operation := func() error {
		var err error
		resp, err = send()
		if err != nil {
			c.log.Debug().Err(err).Msg("catalog request failed, retrying")
			return err
		}
		status := resp.StatusCode()
		if status >= http.StatusInternalServerError || status == http.StatusTooManyRequests {
			c.log.Debug().Int("status", status).Msg("catalog request failed, retrying")
			return &CatalogError{Status: status, Message: strings.TrimSpace(string(resp.Body()))}
		}
		if resp.IsError() {
			return backoff.Permanent(&CatalogError{Status: status, Message: strings.TrimSpace(string(resp.Body()))})
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return resp, nil
}
