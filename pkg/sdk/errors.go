package sdk

import "fmt"

// APIError is a non-2xx reply from the server.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("genesis API error %d: %s", e.Status, e.Detail)
}
