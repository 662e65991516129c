package descriptor

import (
	"github.com/brizzai/mcp-agent/internal/config"
	"github.com/brizzai/mcp-agent/internal/requester"
	"go.uber.org/fx"
)

// Module provides the descriptor fetcher backed by the HTTP requester
var Module = fx.Module("descriptor",
	fx.Provide(
		NewAdjusterFromConfig,
		fx.Annotate(
			newAdjustedFetcher,
			fx.From(new(*requester.HTTPRequester)),
		),
	),
)

func newAdjustedFetcher(req Requester, fetchCfg *config.FetchConfig, adjuster *Adjuster) *Fetcher {
	return NewFetcher(req, fetchCfg).WithAdjuster(adjuster)
}
