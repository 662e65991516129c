package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/brizzai/mcp-agent/internal/models"
)

// ItemKind tells which stage of a run produced an item
type ItemKind string

const (
	KindRule     ItemKind = "rule"
	KindService  ItemKind = "service"
	KindTasklist ItemKind = "tasklist"
)

// BundleItem is one browsable entry of a bundle
// Implements list.Item
type BundleItem struct {
	Kind    ItemKind
	Name    string
	Summary string
	Body    string
}

func (i BundleItem) Title() string {
	return fmt.Sprintf("[%s] %s", i.Kind, i.Name)
}

func (i BundleItem) Description() string {
	return i.Summary
}

func (i BundleItem) FilterValue() string {
	return i.Name + " " + i.Body
}

// ItemsFromBundle flattens a bundle into rules, then services, then the tasklist
func ItemsFromBundle(bundle *models.Bundle) []BundleItem {
	if bundle == nil {
		return nil
	}

	items := make([]BundleItem, 0, len(bundle.Rules)+len(bundle.Services)+1)
	for i, rule := range bundle.Rules {
		name := filepath.Base(rule.Source)
		if rule.Source == "" {
			name = fmt.Sprintf("File %d", i+1)
		}
		items = append(items, BundleItem{
			Kind:    KindRule,
			Name:    name,
			Summary: fmt.Sprintf("%d line(s) from %s", strings.Count(rule.Content, "\n")+1, rule.Source),
			Body:    rule.Content,
		})
	}

	for _, svc := range bundle.Services {
		var body strings.Builder
		for _, ep := range svc.Endpoints {
			body.WriteString(ep.String())
			body.WriteString("\n")
		}
		name := svc.ServiceName
		if name == "" {
			name = svc.URL
		}
		items = append(items, BundleItem{
			Kind:    KindService,
			Name:    name,
			Summary: fmt.Sprintf("%d endpoint(s) from %s", len(svc.Endpoints), svc.URL),
			Body:    body.String(),
		})
	}

	if bundle.HasTasklist() {
		items = append(items, BundleItem{
			Kind:    KindTasklist,
			Name:    "Combined tasklist",
			Summary: fmt.Sprintf("%d line(s)", strings.Count(bundle.Tasklist, "\n")+1),
			Body:    bundle.Tasklist,
		})
	}
	return items
}
