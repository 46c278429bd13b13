package lawmatch

import "fmt"

// APIError is a structured error response from the lawmatch API.
// Use errors.As to inspect it.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lawmatch: api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// IsUnavailable reports whether the API refused the search because the
// backend lacks matching capabilities for the requested practice area.
func (e *APIError) IsUnavailable() bool {
	return e.Code == "search_unavailable"
}
