// Package server serves an aggregated bundle over the Model Context Protocol.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/brizzai/mcp-agent/internal/config"
	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/brizzai/mcp-agent/internal/server/handler"
	"github.com/brizzai/mcp-agent/internal/server/tool"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	// shutdownTimeout is the maximum time to wait for server shutdown
	shutdownTimeout = 5 * time.Second
)

// Server exposes one bundle in SSE, HTTP or STDIO mode.
type Server struct {
	config  *config.ServerConfig
	mcp     *mcpserver.MCPServer
	handler *handler.Handler
	tool    *tool.Handler
}

// NewServer creates a new MCP server answering from bundle.
func NewServer(cfg *config.ServerConfig, bundle *models.Bundle) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server config cannot be nil")
	}

	srv := &Server{
		config:  cfg,
		mcp:     mcpserver.NewMCPServer(cfg.Name, cfg.Version),
		handler: handler.NewHandler(),
		tool:    tool.NewHandler(bundle),
	}
	srv.tool.Register(srv.mcp)
	return srv, nil
}

// MCP returns the underlying MCP server
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

func (s *Server) addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

func (s *Server) ServeSSE(ctx context.Context) error {
	sseServer := mcpserver.NewSSEServer(
		s.mcp,
		mcpserver.WithBaseURL(fmt.Sprintf("http://%s", s.addr())),
	)
	return s.serveHTTP(ctx, sseServer, "SSE")
}

func (s *Server) ServeHTTP(ctx context.Context) error {
	httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
	return s.serveHTTP(ctx, httpServer, "HTTP")
}

func (s *Server) serveHTTP(ctx context.Context, handler http.Handler, mode string) error {
	addr := s.addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           s.handler.CreateHTTPHandler(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting server",
			zap.String("mode", mode),
			zap.String("address", addr),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server",
			zap.String("mode", mode),
			zap.Duration("timeout", shutdownTimeout),
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil

	case err := <-errChan:
		return err
	}
}

func (s *Server) ServeSTDIO(ctx context.Context) error {
	logger.Info("Starting STDIO server")
	stdioServer := mcpserver.NewStdioServer(s.mcp)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

// Start serves in the configured mode until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	logger.Info("Starting server",
		zap.String("mode", string(s.config.Mode)),
		zap.String("version", s.config.Version),
	)

	switch s.config.Mode {
	case config.ServerModeSSE:
		return s.ServeSSE(ctx)
	case config.ServerModeHTTP:
		return s.ServeHTTP(ctx)
	case config.ServerModeSTDIO:
		return s.ServeSTDIO(ctx)
	default:
		return fmt.Errorf("unsupported server mode: %s", s.config.Mode)
	}
}
