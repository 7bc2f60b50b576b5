package chi

// Wire shapes of the Genesis Data Manager HTTP API. Errors use the
// {"detail": ...} envelope throughout so browser clients handle every
// failure the same way.

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Detail string `json:"detail"`
}

// statusResponse answers GET /config/status and POST /config/setup.
// Identity and collection are omitted while unconfigured; the api key
// never appears in any response.
type statusResponse struct {
	Configured     bool   `json:"configured"`
	Identity       string `json:"identity,omitempty"`
	CollectionName string `json:"collection_name,omitempty"`
}

// setupRequest is the body of POST /config/setup. The endpoint field is
// named cloudflare_url because the vector store is typically reached
// through a Cloudflare tunnel; any http(s) URL is accepted.
type setupRequest struct {
	CloudflareURL  string `json:"cloudflare_url"`
	APIKey         string `json:"api_key"`
	CollectionName string `json:"collection_name"`
	Identity       string `json:"identity"`
}

// uploadResponse answers POST /upload for both terminal outcomes:
// acceptance carries the inserted count, rejection carries the duplicate
// evidence and the fixed notice text.
type uploadResponse struct {
	InsertedVectors  int    `json:"inserted_vectors"`
	DuplicateChunks  int    `json:"duplicate_chunks"`
	DuplicateMessage string `json:"duplicate_message,omitempty"`
}

// healthResponse answers GET /health.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
