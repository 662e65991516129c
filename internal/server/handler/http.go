// Package handler provides HTTP request handling for the MCP server.
package handler

import (
	"net/http"
	"time"

	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/brizzai/mcp-agent/internal/utils"
	"go.uber.org/zap"
)

// Handler manages HTTP request handling and middleware configuration.
type Handler struct{}

// NewHandler creates a new HTTP handler.
func NewHandler() *Handler {
	return &Handler{}
}

// CreateHTTPHandler mounts the MCP handler at the root, adds a health probe and
// wraps everything in request logging.
func (h *Handler) CreateHTTPHandler(mcpHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			utils.WriteError(w, "method_not_allowed", "healthz only accepts GET", http.StatusMethodNotAllowed)
			return
		}
		utils.WriteJSON(w, map[string]string{"status": "ok"})
	})
	mux.Handle("/", mcpHandler)
	return LoggingMiddleware(mux)
}

// LoggingMiddleware logs information about each incoming request
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		logger.Debug("HTTP Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.Int("status", rw.statusCode),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// responseWriter is a custom ResponseWriter that captures the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code and passes it to the underlying ResponseWriter
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
