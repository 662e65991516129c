// Package app assembles the run pipeline with fx.
package app

import (
	"github.com/brizzai/mcp-agent/internal/agent"
	"github.com/brizzai/mcp-agent/internal/config"
	"github.com/brizzai/mcp-agent/internal/descriptor"
	"github.com/brizzai/mcp-agent/internal/requester"
	"github.com/brizzai/mcp-agent/internal/rules"
	"github.com/brizzai/mcp-agent/internal/tasklist"
	"github.com/spf13/afero"
	"go.uber.org/fx"
)

// Module provides the loaders, the descriptor fetcher and the pipeline
// configured from cfg.
func Module(cfg *config.Config) fx.Option {
	return fx.Options(
		fx.Supply(&cfg.Fetch),
		fx.Provide(
			afero.NewOsFs,
			rules.NewLoader,
			tasklist.NewLoader,
			agent.NewPipeline,
		),
		requester.Module,
		descriptor.Module,
	)
}

// NewPipeline builds the dependency graph and returns the pipeline. Extra
// options are applied after Module, tests use them to decorate the filesystem.
func NewPipeline(cfg *config.Config, opts ...fx.Option) (*agent.Pipeline, error) {
	var pipeline *agent.Pipeline
	app := fx.New(
		fx.NopLogger,
		Module(cfg),
		fx.Options(opts...),
		fx.Populate(&pipeline),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}
	return pipeline, nil
}
