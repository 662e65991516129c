// Package descriptor fetches MCP service descriptors over HTTP and turns them
// into typed results.
package descriptor

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/brizzai/mcp-agent/internal/requester"
)

var (
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected status")
	// ErrInvalidDescriptor is returned when the body is not a usable JSON object.
	ErrInvalidDescriptor = errors.New("invalid descriptor")
	// ErrMalformedEndpoint marks an endpoint entry that was skipped.
	ErrMalformedEndpoint = errors.New("malformed endpoint")
)

// Requester performs the GET request for a descriptor URL
type Requester interface {
	Get(ctx context.Context, rawURL string) (*requester.Response, error)
}

// MalformedEndpoint is an entry of the endpoints list that could not be used.
type MalformedEndpoint struct {
	Index int
	Err   error
}

// Result is the outcome of fetching one descriptor URL. Exactly one of
// Descriptor and Err is set.
type Result struct {
	URL        string
	Descriptor *models.ServiceDescriptor
	Malformed  []MalformedEndpoint
	Err        error
}

// OK reports whether the descriptor was fetched and parsed
func (r Result) OK() bool {
	return r.Err == nil && r.Descriptor != nil
}

// wireDescriptor mirrors the JSON body. Fields are kept raw so that one bad
// value does not invalidate the whole descriptor.
type wireDescriptor struct {
	ServiceName json.RawMessage   `json:"serviceName"`
	Endpoints   []json.RawMessage `json:"endpoints"`
}

// wireEndpoint uses pointers so that validation checks presence, not emptiness.
type wireEndpoint struct {
	Method      *string `json:"method" validate:"required"`
	Path        *string `json:"path" validate:"required"`
	Description *string `json:"description" validate:"required"`
}
