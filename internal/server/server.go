// Package server implements the Spline MCP server: it exposes every
// registered gateway operation as an MCP tool and routes calls through the
// dispatch gateway.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/Tarif-dev/spline-mcp-server/internal/config"
	"github.com/Tarif-dev/spline-mcp-server/internal/core"
	"github.com/Tarif-dev/spline-mcp-server/internal/gateway"
	"github.com/Tarif-dev/spline-mcp-server/internal/ratelimit"
	"github.com/Tarif-dev/spline-mcp-server/internal/spline"
)

// Server stores the state and dependencies for the Spline MCP server.
type Server struct {
	config          *config.Config
	dispatcher      *gateway.Dispatcher
	mcpServer       *mcp.Server
	httpHandler     *mcp.StreamableHTTPHandler
	registeredTools mapset.Set[string] // the key here is the operation name
}

// New creates a Server wired to the configured backend and counter store.
func New(cfg *config.Config) (*Server, error) {
	client := spline.NewClient(cfg.BaseURL, cfg.APIToken)

	registry, err := gateway.NewRegistry(spline.Operations(client))
	if err != nil {
		return nil, fmt.Errorf("failed to build operation registry: %w", err)
	}

	store := newCounterStore(cfg)
	limiter := ratelimit.NewLimiter(store,
		time.Duration(cfg.RateWindowMS)*time.Millisecond, int64(cfg.RateMax))

	dispatcher := gateway.NewDispatcher(registry, limiter, cfg.Timeout)

	return NewWithDispatcher(cfg, dispatcher), nil
}

// NewWithDispatcher creates a Server around an existing dispatcher. Tests use
// this to substitute stub operations and deterministic stores.
func NewWithDispatcher(cfg *config.Config, dispatcher *gateway.Dispatcher) *Server {
	s := &Server{
		config:          cfg,
		dispatcher:      dispatcher,
		registeredTools: mapset.NewSet[string](),
	}

	s.buildServer()

	// Create HTTP handler that manages sessions, Origin validation, etc.
	s.httpHandler = mcp.NewStreamableHTTPHandler(
		func(*http.Request) *mcp.Server {
			return s.mcpServer
		},
		&mcp.StreamableHTTPOptions{
			Stateless: false,
		},
	)

	return s
}

// newCounterStore selects the admission counter backing: a shared Redis
// instance when an address is configured, the in-process store otherwise.
func newCounterStore(cfg *config.Config) ratelimit.CounterStore {
	if cfg.RedisAddr == "" {
		zap.L().Info("Using in-process rate counter store")
		return ratelimit.NewMemoryStore()
	}

	zap.L().Info("Using Redis rate counter store", zap.String("address", cfg.RedisAddr))
	return ratelimit.NewRedisStore(ratelimit.Options{
		Address:  cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
}

// buildServer creates the MCP server and registers every gateway operation
// as a tool. The registry is static, so this runs once at startup.
func (s *Server) buildServer() {
	s.mcpServer = mcp.NewServer(
		&mcp.Implementation{Name: "spline-mcp-server", Version: "1.0.0"},
		nil,
	)

	operations := s.dispatcher.Registry().List()
	for _, op := range operations {
		s.registerTool(op)
	}

	zap.L().Info("Registered operations", zap.Int("count", len(operations)))
}

// registerTool registers a single operation as an MCP tool.
func (s *Server) registerTool(op *gateway.Operation) {
	// Wrap with panic recovery at the handler boundary since this is the
	// single point where we can return proper MCP error responses. The
	// dispatcher recovers handler panics itself; this guards the envelope
	// conversion around it.
	handler := func(ctx context.Context, req *mcp.CallToolRequest, input map[string]any) (
		result *mcp.CallToolResult,
		output map[string]any,
		err error,
	) {
		defer func() {
			if r := recover(); r != nil {
				core.LogPanicRecovery("tool handler", r)
				result = &mcp.CallToolResult{
					IsError: true,
					Content: []mcp.Content{
						&mcp.TextContent{
							Text: fmt.Sprintf("internal error: panic recovered in tool handling: %v", r),
						},
					},
				}
				output = nil
				err = fmt.Errorf("panic recovered: %v", r)
			}
		}()
		return s.handleToolCall(ctx, op.Name, input)
	}

	mcpTool := &mcp.Tool{
		Name:        op.Name,
		Description: op.Description,
		InputSchema: gateway.JSONSchema(op.Contract),
	}

	mcp.AddTool(s.mcpServer, mcpTool, handler)
	s.registeredTools.Add(op.Name)
}

// handleToolCall routes one tool call through the dispatcher and converts
// the envelope into an MCP result. The envelope is returned on success and
// failure alike; IsError mirrors the envelope's success flag.
func (s *Server) handleToolCall(
	ctx context.Context,
	operationName string,
	input map[string]any,
) (*mcp.CallToolResult, map[string]any, error) {
	envelope := s.dispatcher.Dispatch(ctx, operationName, input)

	encoded, err := json.Marshal(envelope)
	if err != nil {
		// The envelope is built from JSON-safe parts; failing to encode it is
		// a programming error, reported through the same uniform shape.
		zap.L().Error("Failed to encode result envelope",
			zap.String("operation", operationName),
			zap.Error(err))
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: fmt.Sprintf("internal error: failed to encode result envelope: %v", err),
				},
			},
		}, nil, nil
	}

	var output map[string]any
	if err := json.Unmarshal(encoded, &output); err != nil {
		return nil, nil, fmt.Errorf("failed to decode result envelope: %w", err)
	}

	return &mcp.CallToolResult{
		IsError: !envelope.Success,
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: string(encoded),
			},
		},
	}, output, nil
}

// Serve starts the server on the given address using HTTP (Streamable HTTP transport per MCP spec)
// The StreamableHTTPHandler manages sessions, Origin validation, and HTTP protocol details
func (s *Server) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()

	// MCP endpoint that handles both POST (client requests) and GET (SSE stream)
	mux.Handle("/mcp", s.httpHandler)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	zap.L().Info("Server listening", zap.String("address", addr))

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zap.L().Error("Server shutdown error", zap.Error(err))
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

// ServeStdio starts the server using stdio transport (per MCP spec)
func (s *Server) ServeStdio(ctx context.Context) error {
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}
