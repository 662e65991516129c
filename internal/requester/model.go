package requester

import (
	"net/http"
)

// Request represents a fully built HTTP request
type Request struct {
	URL         string
	Method      string
	Headers     map[string]string
	HttpRequest *http.Request // The actual HTTP request
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// IsSuccess reports whether the status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}
