package requester

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/brizzai/mcp-agent/internal/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// HTTPRequester builds and executes descriptor requests
type HTTPRequester struct {
	client  *http.Client
	builder *HTTPRequestBuilder
}

type HTTPRequesterParams struct {
	fx.In

	Builder *HTTPRequestBuilder
}

// NewHTTPRequester creates a new HTTPRequester. The client has no timeout of its
// own; callers bound individual requests through their context.
func NewHTTPRequester(params HTTPRequesterParams) *HTTPRequester {
	builder := params.Builder
	if builder == nil {
		builder = NewHTTPRequestBuilder(nil)
	}
	return &HTTPRequester{
		client:  &http.Client{},
		builder: builder,
	}
}

// Get performs a single GET request against rawURL. The response is returned
// for any status code; only transport failures produce an error.
func (r *HTTPRequester) Get(ctx context.Context, rawURL string) (*Response, error) {
	req, err := r.builder.BuildRequest(ctx, http.MethodGet, rawURL)
	if err != nil {
		return nil, err
	}
	logger.Debug("request descriptor", zap.String("url", req.URL))

	resp, err := r.execute(req)
	if err != nil {
		logger.Debug("failed to execute request", zap.String("url", req.URL), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// execute performs the actual HTTP request execution
func (r *HTTPRequester) execute(req *Request) (*Response, error) {
	resp, err := r.client.Do(req.HttpRequest)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close response body", zap.Error(closeErr))
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       bodyBytes,
		Headers:    resp.Header,
	}, nil
}
