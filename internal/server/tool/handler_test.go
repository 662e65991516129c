package tool

import (
	"context"
	"testing"

	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle() *models.Bundle {
	return &models.Bundle{
		Rules: []models.Rule{
			{Source: "a.sexp", Content: "(rule a)"},
			{Source: "b.lisp", Content: "(rule b)"},
		},
		Services: []models.ServiceDescriptor{
			{ServiceName: "billing", Endpoints: []models.Endpoint{{Method: "GET", Path: "/invoices", Description: "List invoices"}}},
			{ServiceName: "users", Endpoints: []models.Endpoint{{Method: "DELETE", Path: "/users/{id}", Description: "Remove user"}}},
		},
		Tasklist: "A\n\nB",
	}
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestListRules(t *testing.T) {
	h := NewHandler(testBundle())

	t.Run("all rules", func(t *testing.T) {
		result, err := h.ListRules(context.Background(), callRequest(nil))
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t,
			"Loaded 2 RAG file(s):\n\n--- File 1 ---\n(rule a)\n--------------\n\n--- File 2 ---\n(rule b)\n--------------\n",
			resultText(t, result))
	})

	t.Run("single rule", func(t *testing.T) {
		result, err := h.ListRules(context.Background(), callRequest(map[string]interface{}{"index": float64(2)}))
		require.NoError(t, err)
		assert.Equal(t, "(rule b)", resultText(t, result))
	})

	t.Run("index out of range", func(t *testing.T) {
		for _, index := range []interface{}{float64(0), float64(3), float64(1.5), "1"} {
			result, err := h.ListRules(context.Background(), callRequest(map[string]interface{}{"index": index}))
			require.NoError(t, err)
			assert.True(t, result.IsError, "index %v", index)
		}
	})
}

func TestListEndpoints(t *testing.T) {
	h := NewHandler(testBundle())

	result, err := h.ListEndpoints(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Equal(t,
		"--- MCP Server 1: billing ---\n  GET /invoices - List invoices\n--- MCP Server 2: users ---\n  DELETE /users/{id} - Remove user\n",
		resultText(t, result))

	result, err = h.ListEndpoints(context.Background(), callRequest(map[string]interface{}{"service": "users"}))
	require.NoError(t, err)
	assert.Equal(t, "--- MCP Server 1: users ---\n  DELETE /users/{id} - Remove user\n", resultText(t, result))

	result, err = h.ListEndpoints(context.Background(), callRequest(map[string]interface{}{"service": "orders"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListEndpoints_UnnamedService(t *testing.T) {
	h := NewHandler(&models.Bundle{Services: []models.ServiceDescriptor{
		{Endpoints: []models.Endpoint{{Method: "GET", Path: "/ping", Description: "Ping"}}},
	}})

	result, err := h.ListEndpoints(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "--- MCP Server 1: (unnamed) ---\n  GET /ping - Ping\n", resultText(t, result))
}

func TestGetTasklist(t *testing.T) {
	result, err := NewHandler(testBundle()).GetTasklist(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "A\n\nB", resultText(t, result))

	result, err = NewHandler(nil).GetTasklist(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
