// Package tool exposes an aggregated bundle as MCP tools.
package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	ListRulesTool     = "list_rules"
	ListEndpointsTool = "list_endpoints"
	GetTasklistTool   = "get_tasklist"
)

// Handler answers tool calls from a fixed bundle.
type Handler struct {
	bundle *models.Bundle
}

// NewHandler creates a new tool handler.
func NewHandler(bundle *models.Bundle) *Handler {
	if bundle == nil {
		bundle = &models.Bundle{}
	}
	return &Handler{bundle: bundle}
}

// Register adds every bundle tool to the MCP server.
func (h *Handler) Register(s *mcpserver.MCPServer) {
	s.AddTool(mcp.NewTool(ListRulesTool,
		mcp.WithDescription("Return the loaded RAG rule documents"),
		mcp.WithNumber("index", mcp.Description("1-based index of a single rule document")),
	), h.ListRules)

	s.AddTool(mcp.NewTool(ListEndpointsTool,
		mcp.WithDescription("List the endpoints declared by the loaded MCP service descriptors"),
		mcp.WithString("service", mcp.Description("Only list endpoints of this service")),
	), h.ListEndpoints)

	s.AddTool(mcp.NewTool(GetTasklistTool,
		mcp.WithDescription("Return the combined tasklist content"),
	), h.GetTasklist)
}

// ListRules returns all rule documents, or a single one when index is given.
func (h *Handler) ListRules(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rules := h.bundle.Rules

	if raw, ok := request.GetArguments()["index"]; ok {
		index, ok := raw.(float64)
		if !ok || index < 1 || int(index) > len(rules) || index != float64(int(index)) {
			return mcp.NewToolResultError(fmt.Sprintf("index must be between 1 and %d", len(rules))), nil
		}
		i := int(index)
		return mcp.NewToolResultText(rules[i-1].Content), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Loaded %d RAG file(s):\n", len(rules))
	for i, rule := range rules {
		fmt.Fprintf(&b, "\n--- File %d ---\n%s\n--------------\n", i+1, rule.Content)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ListEndpoints renders "<METHOD> <PATH> - <DESCRIPTION>" lines per service.
func (h *Handler) ListEndpoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter, _ := request.GetArguments()["service"].(string)

	var b strings.Builder
	matched := 0
	for i := range h.bundle.Services {
		svc := &h.bundle.Services[i]
		if filter != "" && svc.ServiceName != filter {
			continue
		}
		matched++
		fmt.Fprintf(&b, "--- MCP Server %d: %s ---\n", matched, svc.DisplayName())
		for _, ep := range svc.Endpoints {
			fmt.Fprintf(&b, "  %s\n", ep.String())
		}
	}

	if filter != "" && matched == 0 {
		logger.Debug("Unknown service requested", zap.String("service", filter))
		return mcp.NewToolResultError(fmt.Sprintf("no service named %q", filter)), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

// GetTasklist returns the combined tasklist or an error result when none was read.
func (h *Handler) GetTasklist(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !h.bundle.HasTasklist() {
		return mcp.NewToolResultError("Tasklist content could not be read."), nil
	}
	return mcp.NewToolResultText(h.bundle.Tasklist), nil
}
