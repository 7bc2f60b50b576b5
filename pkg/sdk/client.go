package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Minute // uploads embed every chunk server-side

// Client talks to one Genesis Data Manager server.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o.apply(c)
	}
	return c
}

// ConfigStatus returns the server's configuration state.
func (c *Client) ConfigStatus(ctx context.Context) (Status, error) {
	var status Status
	if err := c.doJSON(ctx, http.MethodGet, "/config/status", nil, &status); err != nil {
		return Status{}, err
	}
	return status, nil
}

// Setup stores the vector store connection on the server, replacing any
// prior configuration.
func (c *Client) Setup(ctx context.Context, req SetupRequest) (Status, error) {
	var status Status
	if err := c.doJSON(ctx, http.MethodPost, "/config/setup", req, &status); err != nil {
		return Status{}, err
	}
	return status, nil
}

// Reset deletes the server's stored configuration. Safe to call on an
// unconfigured server.
func (c *Client) Reset(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/config/reset", nil, nil)
}

// Health returns the server's component health report. A degraded server
// answers 503; the report is still returned alongside the APIError.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil, "")
	if err != nil {
		return HealthReport{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return HealthReport{}, fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	var report HealthReport
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return HealthReport{}, fmt.Errorf("decode health response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return report, &APIError{Status: resp.StatusCode, Detail: "server is " + report.Status}
	}
	return report, nil
}

// Upload sends one document through the ingestion pipeline. filename
// carries the extension that selects the extraction format.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return UploadResult{}, fmt.Errorf("build multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return UploadResult{}, fmt.Errorf("copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return UploadResult{}, fmt.Errorf("close multipart form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &body, mw.FormDataContentType())
	if err != nil {
		return UploadResult{}, err
	}

	var result UploadResult
	if err := c.send(req, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// UploadFile uploads a document from the local filesystem.
func (c *Client) UploadFile(ctx context.Context, path string) (UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return UploadResult{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return c.Upload(ctx, filepath.Base(path), f)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return apiErrorFrom(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiErrorFrom reads the {"detail": ...} envelope, falling back to the
// raw body when the server spoke something else.
func apiErrorFrom(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var envelope struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Detail != "" {
		return &APIError{Status: resp.StatusCode, Detail: envelope.Detail}
	}
	return &APIError{Status: resp.StatusCode, Detail: strings.TrimSpace(string(raw))}
}
