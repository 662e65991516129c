package descriptor

import (
	"context"
	"fmt"
	"net/http"

	"github.com/brizzai/mcp-agent/internal/config"
	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Fetcher retrieves service descriptors. Failures never abort a batch: they are
// reported on the Result of the URL that failed.
type Fetcher struct {
	requester Requester
	fetchCfg  *config.FetchConfig
	validate  *validator.Validate
	adjuster  *Adjuster
}

// NewFetcher creates a Fetcher using req for the HTTP calls
func NewFetcher(req Requester, fetchCfg *config.FetchConfig) *Fetcher {
	if fetchCfg == nil {
		fetchCfg = &config.FetchConfig{Concurrency: 1}
	}
	return &Fetcher{
		requester: req,
		fetchCfg:  fetchCfg,
		validate:  newValidator(),
	}
}

// WithAdjuster applies adjuster to every descriptor fetched afterwards
func (f *Fetcher) WithAdjuster(adjuster *Adjuster) *Fetcher {
	f.adjuster = adjuster
	return f
}

// Fetch issues one GET against url and parses the body
func (f *Fetcher) Fetch(ctx context.Context, url string) Result {
	result := Result{URL: url}

	if timeout := f.fetchCfg.TimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	resp, err := f.requester.Get(ctx, url)
	if err != nil {
		result.Err = err
		return result
	}

	if !resp.IsSuccess() {
		result.Err = fmt.Errorf("%w: %d %s for url: %s", ErrUnexpectedStatus, resp.StatusCode, http.StatusText(resp.StatusCode), url)
		return result
	}

	desc, malformed, err := decode(resp.Body, f.validate)
	if err != nil {
		result.Err = err
		return result
	}
	desc.URL = url
	f.adjuster.Apply(desc)

	for _, m := range malformed {
		logger.Warn("Skipping malformed endpoint",
			zap.String("url", url),
			zap.Int("index", m.Index),
			zap.Error(m.Err),
		)
	}
	logger.Debug("Descriptor loaded",
		zap.String("url", url),
		zap.String("service", desc.ServiceName),
		zap.Int("endpoints", len(desc.Endpoints)),
	)

	result.Descriptor = desc
	result.Malformed = malformed
	return result
}

// FetchEach fetches every URL and calls fn with the results in input order.
// With a concurrency of 1 each URL is fetched only after fn returned for the
// previous one; otherwise up to Concurrency fetches run at once and fn is called
// after all of them finished.
func (f *Fetcher) FetchEach(ctx context.Context, urls []string, fn func(Result)) {
	if f.fetchCfg.Concurrency <= 1 || len(urls) <= 1 {
		for _, url := range urls {
			fn(f.Fetch(ctx, url))
		}
		return
	}

	results := make([]Result, len(urls))
	var g errgroup.Group
	g.SetLimit(f.fetchCfg.Concurrency)
	for i, url := range urls {
		g.Go(func() error {
			results[i] = f.Fetch(ctx, url)
			return nil
		})
	}
	// Fetch reports failures on the Result, so Wait never returns an error.
	_ = g.Wait()

	for _, r := range results {
		fn(r)
	}
}

// FetchAll fetches every URL and returns the results in input order
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, 0, len(urls))
	f.FetchEach(ctx, urls, func(r Result) {
		results = append(results, r)
	})
	return results
}
