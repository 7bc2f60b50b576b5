package sdk

// Status is the public view of the server's configuration vault.
type Status struct {
	Configured     bool   `json:"configured"`
	Identity       string `json:"identity,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
}

// SetupRequest configures the server's vector store connection.
// An empty Identity lets the server apply its default.
type SetupRequest struct {
	CloudflareURL  string `json:"cloudflare_url"`
	APIKey         string `json:"api_key"`
	CollectionName string `json:"collection_name"`
	Identity       string `json:"identity,omitempty"`
}

// UploadResult is the terminal outcome of one upload.
type UploadResult struct {
	InsertedVectors  int    `json:"inserted_vectors"`
	DuplicateChunks  int    `json:"duplicate_chunks"`
	DuplicateMessage string `json:"duplicate_message,omitempty"`
}

// Rejected reports whether the upload was refused as a near-duplicate.
func (r UploadResult) Rejected() bool { return r.DuplicateMessage != "" }

// HealthReport is the component health summary.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Healthy reports whether every component check passed.
func (h HealthReport) Healthy() bool { return h.Status == "ok" }
