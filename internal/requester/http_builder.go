package requester

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/brizzai/mcp-agent/internal/config"
)

// ErrInvalidURL is returned for URLs that are not absolute http(s) URLs
var ErrInvalidURL = errors.New("invalid URL")

// HTTPRequestBuilder turns a URL into an *http.Request carrying the configured headers
type HTTPRequestBuilder struct {
	fetchCfg *config.FetchConfig
}

// NewHTTPRequestBuilder creates a new HTTPRequestBuilder
func NewHTTPRequestBuilder(fetchCfg *config.FetchConfig) *HTTPRequestBuilder {
	if fetchCfg == nil {
		fetchCfg = &config.FetchConfig{}
	}
	return &HTTPRequestBuilder{fetchCfg: fetchCfg}
}

// BuildRequest builds a request for the given method and absolute URL
func (b *HTTPRequestBuilder) BuildRequest(ctx context.Context, method, rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q in %s", ErrInvalidURL, u.Scheme, rawURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host in %s", ErrInvalidURL, rawURL)
	}

	headers := map[string]string{
		"Accept": "application/json",
	}
	if b.fetchCfg.UserAgent != "" {
		headers["User-Agent"] = b.fetchCfg.UserAgent
	}
	// Config keys arrive lower-cased from viper
	for k, v := range b.fetchCfg.Headers {
		headers[http.CanonicalHeaderKey(k)] = v
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	return &Request{
		URL:         u.String(),
		Method:      method,
		Headers:     headers,
		HttpRequest: httpReq,
	}, nil
}
