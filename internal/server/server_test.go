package server

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/brizzai/mcp-agent/internal/config"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/brizzai/mcp-agent/internal/server/tool"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle() *models.Bundle {
	return &models.Bundle{
		Rules:    []models.Rule{{Source: "a.sexp", Content: "(rule a)"}},
		Services: []models.ServiceDescriptor{{ServiceName: "billing", Endpoints: []models.Endpoint{{Method: "GET", Path: "/invoices", Description: "List invoices"}}}},
		Tasklist: "A",
	}
}

func TestNewServer_NilConfig(t *testing.T) {
	_, err := NewServer(nil, testBundle())
	assert.Error(t, err)
}

// TestServer_InProcess drives the registered tools through the MCP protocol
func TestServer_InProcess(t *testing.T) {
	srv, err := NewServer(&config.ServerConfig{Name: "mcp-agent", Version: "test", Mode: config.ServerModeSTDIO}, testBundle())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := client.NewInProcessClient(srv.MCP())
	require.NoError(t, err)
	defer func() { _ = c.Close() }()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "test-client", Version: "1.0.0"}
	initResult, err := c.Initialize(ctx, initReq)
	require.NoError(t, err)
	assert.Equal(t, "mcp-agent", initResult.ServerInfo.Name)

	t.Run("List Available Tools", func(t *testing.T) {
		tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
		require.NoError(t, err)

		names := make(map[string]bool)
		for _, tl := range tools.Tools {
			names[tl.Name] = true
		}
		assert.Equal(t, map[string]bool{
			tool.ListRulesTool:     true,
			tool.ListEndpointsTool: true,
			tool.GetTasklistTool:   true,
		}, names)
	})

	t.Run("Tool Call Test", func(t *testing.T) {
		request := mcp.CallToolRequest{}
		request.Params.Name = tool.ListEndpointsTool

		result, err := c.CallTool(ctx, request)
		require.NoError(t, err)
		require.NotEmpty(t, result.Content)
		text, ok := result.Content[0].(mcp.TextContent)
		require.True(t, ok)
		assert.Contains(t, text.Text, "GET /invoices - List invoices")
	})
}

func freePort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())
	return port
}

func TestServer_StartAndShutdown(t *testing.T) {
	for _, mode := range []config.ServerMode{config.ServerModeSSE, config.ServerModeHTTP} {
		t.Run(string(mode), func(t *testing.T) {
			port := freePort(t)
			srv, err := NewServer(&config.ServerConfig{Host: "localhost", Port: port, Mode: mode, Name: "mcp-agent", Version: "test"}, testBundle())
			require.NoError(t, err)

			ctx, stop := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- srv.Start(ctx) }()

			healthURL := fmt.Sprintf("http://localhost:%d/healthz", port)
			require.Eventually(t, func() bool {
				resp, err := http.Get(healthURL)
				if err != nil {
					return false
				}
				defer resp.Body.Close()
				body, _ := io.ReadAll(resp.Body)
				return resp.StatusCode == http.StatusOK && strings.Contains(string(body), `"status":"ok"`)
			}, 5*time.Second, 50*time.Millisecond)

			stop()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(10 * time.Second):
				t.Fatal("server did not shut down")
			}
		})
	}
}

func TestServer_UnsupportedMode(t *testing.T) {
	srv, err := NewServer(&config.ServerConfig{Mode: "grpc"}, testBundle())
	require.NoError(t, err)
	assert.Error(t, srv.Start(context.Background()))
}
