package milvus

import "github.com/YellowKidokc/CloudFlarevector/internal/domain"

// Request and response shapes of the Milvus RESTful API v2
// (POST {endpoint}/v2/vectordb/entities/...). Zilliz Cloud serves the
// same surface, so the vault endpoint works against either.

type searchRequest struct {
	CollectionName string        `json:"collectionName"`
	Data           [][]float32   `json:"data"`
	AnnsField      string        `json:"annsField"`
	Limit          int           `json:"limit"`
	OutputFields   []string      `json:"outputFields,omitempty"`
	SearchParams   *searchParams `json:"searchParams,omitempty"`
}

type searchParams struct {
	MetricType string         `json:"metricType"`
	Params     map[string]any `json:"params,omitempty"`
}

type searchHit struct {
	Distance float64 `json:"distance"`
}

type searchResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    []searchHit `json:"data"`
}

type insertRequest struct {
	CollectionName string           `json:"collectionName"`
	Data           []map[string]any `json:"data"`
}

type insertResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    struct {
		InsertCount int `json:"insertCount"`
	} `json:"data"`
}

// entityFromPoint renders one row for the insert payload. The vector lives
// under the collection's configured field name; everything else is metadata.
func entityFromPoint(vectorField string, p domain.VectorPoint) map[string]any {
	return map[string]any{
		vectorField:   p.Vector,
		"text":        p.Text,
		"filename":    p.Filename,
		"uploaded_at": p.UploadedAt,
		"identity":    p.Identity,
		"position":    p.Position,
	}
}
