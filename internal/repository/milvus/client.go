// Package milvus is a REST client for the Milvus v2 vector database API.
//
// The client is constructed once with search tunables; the endpoint,
// credentials and collection arrive per call as a domain.StoreTarget,
// because they live in the vault and may change between uploads.
package milvus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/YellowKidokc/CloudFlarevector/internal/domain"
	"github.com/YellowKidokc/CloudFlarevector/internal/metrics"
)

const (
	searchPath = "/v2/vectordb/entities/search"
	insertPath = "/v2/vectordb/entities/insert"

	// Responses are tiny (hit lists, insert counts); a hard cap keeps a
	// misbehaving endpoint from ballooning memory.
	maxResponseBytes = 4 << 20
)

// Options tune search behavior; zero values fall back to sane defaults.
type Options struct {
	VectorField string
	MetricType  string
	TopK        int
	NProbe      int
	Timeout     time.Duration
}

// Client talks to one Milvus-compatible REST endpoint at a time.
type Client struct {
	http        *http.Client
	vectorField string
	metricType  string
	topK        int
	nprobe      int
}

// New creates a Milvus REST client.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	vectorField := opts.VectorField
	if vectorField == "" {
		vectorField = "embedding"
	}
	metricType := opts.MetricType
	if metricType == "" {
		metricType = "COSINE"
	}
	topK := opts.TopK
	if topK <= 0 {
		topK = 1
	}
	nprobe := opts.NProbe
	if nprobe <= 0 {
		nprobe = 10
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		vectorField: vectorField,
		metricType:  metricType,
		topK:        topK,
		nprobe:      nprobe,
	}
}

// SearchNearest returns the closest stored vector for one query vector.
// An empty collection yields Neighbor{Found: false}, not an error.
func (c *Client) SearchNearest(ctx context.Context, target domain.StoreTarget, vector []float32) (domain.Neighbor, error) {
	start := time.Now()

	req := searchRequest{
		CollectionName: target.Collection,
		Data:           [][]float32{vector},
		AnnsField:      c.vectorField,
		Limit:          c.topK,
		OutputFields:   []string{"id"},
		SearchParams: &searchParams{
			MetricType: c.metricType,
			Params:     map[string]any{"nprobe": c.nprobe},
		},
	}

	var resp searchResponse
	err := c.postJSON(ctx, target, searchPath, req, &resp)
	if err == nil && resp.Code != 0 {
		err = apiError(resp.Code, resp.Message)
	}
	c.observe("search", start, err)
	if err != nil {
		return domain.Neighbor{}, fmt.Errorf("search %s: %w", target.Collection, err)
	}

	if len(resp.Data) == 0 {
		return domain.Neighbor{}, nil
	}
	return domain.Neighbor{Score: resp.Data[0].Distance, Found: true}, nil
}

// InsertBatch inserts all points in one request and returns the count the
// store acknowledged.
func (c *Client) InsertBatch(ctx context.Context, target domain.StoreTarget, points []domain.VectorPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}
	start := time.Now()

	entities := make([]map[string]any, len(points))
	for i, p := range points {
		entities[i] = entityFromPoint(c.vectorField, p)
	}
	req := insertRequest{CollectionName: target.Collection, Data: entities}

	var resp insertResponse
	err := c.postJSON(ctx, target, insertPath, req, &resp)
	if err == nil && resp.Code != 0 {
		err = apiError(resp.Code, resp.Message)
	}
	c.observe("insert", start, err)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", target.Collection, err)
	}

	return resp.Data.InsertCount, nil
}

func (c *Client) postJSON(ctx context.Context, target domain.StoreTarget, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %w", domain.ErrVectorStoreError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.Endpoint+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: build request: %w", domain.ErrVectorStoreError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if target.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+target.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrVectorStoreError, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", domain.ErrVectorStoreError, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: POST %s returned %s", domain.ErrVectorStoreError, path, resp.Status)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %w", domain.ErrVectorStoreError, err)
	}
	return nil
}

// apiError converts a non-zero Milvus status payload into an error.
func apiError(code int, message string) error {
	if message == "" {
		message = "unknown error"
	}
	return fmt.Errorf("%w: code %d: %s", domain.ErrVectorStoreError, code, message)
}

func (c *Client) observe(op string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.VectorStoreRequestsTotal.WithLabelValues(op, status).Inc()
	metrics.VectorStoreRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
