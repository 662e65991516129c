// Package report renders pipeline progress as human readable console output.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/brizzai/mcp-agent/internal/descriptor"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/brizzai/mcp-agent/internal/rules"
	"github.com/brizzai/mcp-agent/internal/tasklist"
	"github.com/pterm/pterm"
)

const (
	ruleFooter = "--------------"
	// NoTasklistMessage is printed when no task list produced any content.
	NoTasklistMessage = "Tasklist content could not be read."
)

// Console writes every stage to a single stream, diagnostics included.
type Console struct {
	w       io.Writer
	warning *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
	success *pterm.PrefixPrinter
}

// NewConsole creates a reporter writing to w, stdout when w is nil
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{
		w:       w,
		warning: pterm.Warning.WithWriter(w),
		failure: pterm.Error.WithWriter(w),
		success: pterm.Success.WithWriter(w),
	}
}

// RulesLoaded prints skipped directories, the rule count and every rule framed
// by numbered separators.
func (c *Console) RulesLoaded(result *rules.Result) {
	for _, skip := range result.Skipped {
		if errors.Is(skip.Err, rules.ErrNotDirectory) {
			c.warning.Printfln("%s is not a directory, skipped", skip.Path)
			continue
		}
		c.warning.Printfln("%s: %v, skipped", skip.Path, skip.Err)
	}

	pterm.Fprintln(c.w, fmt.Sprintf("Loaded %d RAG file(s):", len(result.Rules)))
	for i, rule := range result.Rules {
		pterm.Fprintln(c.w, fmt.Sprintf("\n--- File %d ---", i+1))
		// Raw documents bypass pterm so color tags inside them are not interpreted.
		_, _ = fmt.Fprintln(c.w, rule.Content)
		pterm.Fprintln(c.w, ruleFooter)
	}
}

// DescriptorFetched prints the load status of one descriptor URL
func (c *Console) DescriptorFetched(result descriptor.Result) {
	if !result.OK() {
		c.failure.Printfln("MCP request failed: %v", result.Err)
		return
	}

	c.success.Printfln("MCP JSON loaded: service=%s", result.Descriptor.DisplayName())
	for _, m := range result.Malformed {
		c.warning.Printfln("Skipped endpoint #%d from %s: %v", m.Index+1, result.URL, m.Err)
	}
}

// DescriptorsDone lists the endpoints of every loaded descriptor
func (c *Console) DescriptorsDone(services []models.ServiceDescriptor) {
	pterm.Fprintln(c.w, "\nMCP endpoints:")
	for i := range services {
		pterm.Fprintln(c.w, fmt.Sprintf("\n--- MCP Server %d: %s ---", i+1, services[i].DisplayName()))
		for _, ep := range services[i].Endpoints {
			_, _ = fmt.Fprintln(c.w, "  "+ep.String())
		}
	}
}

// TasklistLoaded prints skipped files followed by the combined content, or the
// failure message when there is none.
func (c *Console) TasklistLoaded(result *tasklist.Result) {
	for _, skip := range result.Skipped {
		if errors.Is(skip.Err, tasklist.ErrNotFound) {
			c.warning.Printfln("Tasklist file not found: %s, skipped", skip.Path)
			continue
		}
		c.warning.Printfln("Tasklist %s: %v, skipped", skip.Path, skip.Err)
	}

	if !result.HasContent() {
		c.failure.Println(NoTasklistMessage)
		return
	}

	pterm.Fprintln(c.w, "\nCombined Tasklist content:")
	_, _ = fmt.Fprintln(c.w, result.Content)
}
