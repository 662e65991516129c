// Package agent sequences the three input stages of a run: rule directories,
// service descriptors and task lists.
package agent

import (
	"context"
	"fmt"

	"github.com/brizzai/mcp-agent/internal/config"
	"github.com/brizzai/mcp-agent/internal/descriptor"
	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/brizzai/mcp-agent/internal/rules"
	"github.com/brizzai/mcp-agent/internal/tasklist"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Reporter receives the outcome of each stage as soon as it is known.
type Reporter interface {
	RulesLoaded(result *rules.Result)
	// DescriptorFetched is called once per URL, in input order.
	DescriptorFetched(result descriptor.Result)
	DescriptorsDone(services []models.ServiceDescriptor)
	TasklistLoaded(result *tasklist.Result)
}

// NopReporter discards every stage notification.
type NopReporter struct{}

func (NopReporter) RulesLoaded(*rules.Result)                  {}
func (NopReporter) DescriptorFetched(descriptor.Result)        {}
func (NopReporter) DescriptorsDone([]models.ServiceDescriptor) {}
func (NopReporter) TasklistLoaded(*tasklist.Result)            {}

// Pipeline runs rules -> descriptors -> tasklists, strictly in that order.
type Pipeline struct {
	rules   *rules.Loader
	fetcher *descriptor.Fetcher
	tasks   *tasklist.Loader
}

type PipelineParams struct {
	fx.In

	Rules   *rules.Loader
	Fetcher *descriptor.Fetcher
	Tasks   *tasklist.Loader
}

// NewPipeline creates a pipeline from its three stages
func NewPipeline(params PipelineParams) *Pipeline {
	return &Pipeline{
		rules:   params.Rules,
		fetcher: params.Fetcher,
		tasks:   params.Tasks,
	}
}

// Run executes every stage and returns the aggregated bundle. When no task list
// produced content, the bundle is still returned together with an error that
// wraps tasklist.ErrNoContent.
func (p *Pipeline) Run(ctx context.Context, sources config.SourcesConfig, reporter Reporter) (*models.Bundle, error) {
	if reporter == nil {
		reporter = NopReporter{}
	}
	bundle := &models.Bundle{}

	ruleResult := p.rules.Load(sources.Rag)
	bundle.Rules = ruleResult.Rules
	logger.Info("Rules loaded",
		zap.Int("rules", len(ruleResult.Rules)),
		zap.Int("skipped", len(ruleResult.Skipped)),
	)
	reporter.RulesLoaded(ruleResult)

	bundle.Services = make([]models.ServiceDescriptor, 0, len(sources.MCP))
	p.fetcher.FetchEach(ctx, sources.MCP, func(r descriptor.Result) {
		if r.OK() {
			bundle.Services = append(bundle.Services, *r.Descriptor)
		} else {
			logger.Warn("Descriptor fetch failed", zap.String("url", r.URL), zap.Error(r.Err))
		}
		reporter.DescriptorFetched(r)
	})
	reporter.DescriptorsDone(bundle.Services)

	if err := ctx.Err(); err != nil {
		return bundle, fmt.Errorf("run cancelled: %w", err)
	}

	taskResult := p.tasks.Load(sources.Tasklist)
	reporter.TasklistLoaded(taskResult)
	if !taskResult.HasContent() {
		return bundle, fmt.Errorf("no tasklist could be read from %d path(s): %w", len(sources.Tasklist), tasklist.ErrNoContent)
	}
	bundle.Tasklist = taskResult.Content

	return bundle, nil
}
