package domain

// StoreTarget identifies the external vector collection for one upload.
// It is derived from the vault record at ingestion time and never cached
// across reconfigurations.
type StoreTarget struct {
	Endpoint   string
	APIKey     string
	Collection string
}

// Neighbor is the top search hit for one query vector.
// Found is false when the collection holds no vectors at all.
type Neighbor struct {
	Score float64
	Found bool
}

// VectorPoint is one row staged for insertion into the vector store.
// Row IDs are assigned by the store; the payload carries the chunk text
// and its provenance.
type VectorPoint struct {
	Vector     []float32
	Text       string
	Filename   string
	UploadedAt string
	Identity   string
	Position   int
}
