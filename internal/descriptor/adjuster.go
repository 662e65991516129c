package descriptor

import (
	"fmt"
	"strings"

	"github.com/brizzai/mcp-agent/internal/config"
	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Adjuster provides endpoint filtering and description overrides based on YAML configuration
type Adjuster struct {
	adjustments *models.DescriptorAdjustments
}

// NewAdjuster creates an Adjuster that leaves descriptors untouched until Load is called
func NewAdjuster() *Adjuster {
	return &Adjuster{
		adjustments: &models.DescriptorAdjustments{},
	}
}

// NewAdjusterFromConfig loads the adjustments file named by fetch.adjustments, if any
func NewAdjusterFromConfig(fs afero.Fs, fetchCfg *config.FetchConfig) (*Adjuster, error) {
	adjuster := NewAdjuster()
	if fetchCfg == nil {
		return adjuster, nil
	}
	if err := adjuster.Load(fs, fetchCfg.Adjustments); err != nil {
		return nil, err
	}
	return adjuster, nil
}

// Load loads adjustments from a YAML file
func (a *Adjuster) Load(fs afero.Fs, filePath string) error {
	if filePath == "" {
		logger.Debug("No adjustments file provided")
		return nil
	}

	logger.Info("Loading adjustments from file", zap.String("file", filePath))
	// A missing file leaves every descriptor as served
	if exists, _ := afero.Exists(fs, filePath); !exists {
		logger.Warn("Adjustments file not found", zap.String("file", filePath))
		return nil
	}

	data, err := afero.ReadFile(fs, filePath)
	if err != nil {
		return fmt.Errorf("failed to read adjustments file %s: %w", filePath, err)
	}

	var adjustments models.DescriptorAdjustments
	if err := yaml.Unmarshal(data, &adjustments); err != nil {
		return fmt.Errorf("failed to parse adjustments file %s: %w", filePath, err)
	}

	a.adjustments = &adjustments
	return nil
}

// Apply removes unselected endpoints from desc and rewrites their descriptions
func (a *Adjuster) Apply(desc *models.ServiceDescriptor) {
	if a == nil || a.adjustments == nil || desc == nil {
		return
	}

	for _, adj := range a.adjustments.Services {
		if adj.Service != "" && adj.Service != desc.ServiceName {
			continue
		}

		kept := desc.Endpoints[:0]
		for _, ep := range desc.Endpoints {
			if !selected(adj.Endpoints, ep.Path, ep.Method) {
				logger.Debug("Endpoint filtered out",
					zap.String("service", desc.ServiceName),
					zap.String("endpoint", ep.Method+" "+ep.Path),
				)
				continue
			}
			ep.Description = description(adj.Descriptions, ep.Path, ep.Method, ep.Description)
			kept = append(kept, ep)
		}
		desc.Endpoints = kept
	}
}

// selected reports whether path/method is kept. Without selections everything is.
func selected(selections []models.EndpointSelection, path, method string) bool {
	if len(selections) == 0 {
		return true
	}

	// Several entries may name the same path
	for _, selection := range selections {
		if selection.Path != path {
			continue
		}
		for _, m := range selection.Methods {
			if strings.EqualFold(m, method) {
				return true
			}
		}
	}
	return false
}

func description(descriptions []models.EndpointDescription, path, method, original string) string {
	for _, desc := range descriptions {
		if desc.Path != path {
			continue
		}
		for _, update := range desc.Updates {
			if strings.EqualFold(update.Method, method) {
				return update.NewDescription
			}
		}
		break
	}
	return original
}
