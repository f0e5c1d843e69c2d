package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/lepinkainen/readlog/internal/ratelimit"
)

const (
	// DefaultBatchSize is the number of rows sent per insert request
	DefaultBatchSize = 100
	// DefaultRequestsPerSecond caps insert requests against one instance
	DefaultRequestsPerSecond = 5
)

// DatasetteClient publishes tables to a remote Datasette instance through
// the datasette-insert plugin.
type DatasetteClient struct {
	baseURL   string
	apiToken  string
	client    *http.Client
	limiter   *ratelimit.Limiter
	batchSize int
}

// NewDatasetteClient creates a new DatasetteClient instance
func NewDatasetteClient(baseURL, apiToken string) *DatasetteClient {
	return &DatasetteClient{
		baseURL:   baseURL,
		apiToken:  apiToken,
		client:    &http.Client{Timeout: 30 * time.Second},
		limiter:   ratelimit.New("datasette", DefaultRequestsPerSecond),
		batchSize: DefaultBatchSize,
	}
}

// SetBatchSize changes how many rows go into one request. n <= 0 is ignored.
func (c *DatasetteClient) SetBatchSize(n int) {
	if n > 0 {
		c.batchSize = n
	}
}

// Connect validates the base URL
func (c *DatasetteClient) Connect() error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.baseURL)
	}
	return nil
}

// CreateTable is a no-op; the insert plugin creates tables on first write
func (c *DatasetteClient) CreateTable(string) error {
	return nil
}

// BatchInsert posts records to /-/insert/<database>/<table> in chunks of the
// batch size, upserting rows with matching primary keys. Requests are rate
// limited.
func (c *DatasetteClient) BatchInsert(database string, table string, records []map[string]any) error {
	if len(records) == 0 {
		return nil
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	u.Path = path.Join(u.Path, "-/insert", database, table)
	u.RawQuery = url.Values{"pk": {"id"}, "upsert": {"1"}}.Encode()

	for start := 0; start < len(records); start += c.batchSize {
		end := min(start+c.batchSize, len(records))
		if err := c.limiter.Wait(context.Background()); err != nil {
			return err
		}
		if err := c.post(u.String(), records[start:end]); err != nil {
			return fmt.Errorf("rows %d-%d: %w", start+1, end, err)
		}
		slog.Debug("Posted rows to Datasette", "table", table, "from", start+1, "to", end)
	}

	return nil
}

func (c *DatasetteClient) post(endpoint string, records []map[string]any) error {
	jsonData, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
			return fmt.Errorf("request failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("API error (status %d): %v", resp.StatusCode, errResp)
	}

	return nil
}

// Close is a no-op for the HTTP client
func (c *DatasetteClient) Close() error {
	return nil
}
