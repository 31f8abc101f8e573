package mcp

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vendorbot/internal/core/application/interpreter"
	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/notification"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName    = "vendorbot"
	ServerVersion = "1.0.0"

	// EndpointPath is where the streamable HTTP transport is mounted.
	EndpointPath = "/mcp"

	shutdownTimeout = 10 * time.Second
)

type (
	CommandExecutor interface {
		Execute(ctx context.Context, env interpreter.Envelope) interpreter.Result
	}

	NotificationDispatcher interface {
		Dispatch(ctx context.Context, notifications []*notification.Notification) int
	}
)

// Server wraps the MCP server with the interpreter it forwards tool calls to.
type Server struct {
	mcp        *server.MCPServer
	executor   CommandExecutor
	dispatcher NotificationDispatcher
	vendor     kernel.Contact
	token      string
	logger     *slog.Logger
}

func NewServer(
	executor CommandExecutor,
	dispatcher NotificationDispatcher,
	vendor kernel.Contact,
	token string,
	logger *slog.Logger,
) (*Server, error) {
	if token == "" {
		return nil, errors.New("mcp token is required")
	}
	if vendor.IsZero() {
		return nil, errors.New("vendor contact is required")
	}

	s := &Server{
		mcp:        server.NewMCPServer(ServerName, ServerVersion, server.WithToolCapabilities(false)),
		executor:   executor,
		dispatcher: dispatcher,
		vendor:     vendor,
		token:      token,
		logger:     logger.With("component", "mcp"),
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	s.mcp.AddTool(validateTool(), s.handleValidate)

	for _, tool := range commandTools() {
		s.mcp.AddTool(tool, s.commandHandler(tool.Name))
	}
}

// Handler returns the streamable HTTP transport behind a bearer token check.
func (s *Server) Handler() http.Handler {
	transport := server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(EndpointPath))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		transport.ServeHTTP(w, r)
	})
}

// Serve listens on addr until ctx is canceled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(EndpointPath, s.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "mcp server listening", "addr", addr, "path", EndpointPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mcp server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) authorized(r *http.Request) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(strings.TrimSpace(token)), []byte(s.token)) == 1
}

func (s *Server) handleValidate(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(strings.TrimPrefix(s.vendor.String(), "+")), nil
}

// commandHandler forwards a tool call to the interpreter as the named command.
func (s *Server) commandHandler(name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]interface{})
		if !ok && request.Params.Arguments != nil {
			return mcp.NewToolResultError("invalid arguments"), nil
		}

		caller, _ := args[callerArg].(string)
		if strings.TrimSpace(caller) == "" {
			return mcp.NewToolResultError("caller is required"), nil
		}

		payload := make(map[string]interface{}, len(args))
		for k, v := range args {
			if k != callerArg {
				payload[k] = v
			}
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return mcp.NewToolResultError("invalid arguments"), nil
		}

		result := s.executor.Execute(ctx, interpreter.Envelope{
			Caller:  caller,
			Command: interpreter.Command{Name: name, Payload: raw},
		})
		if len(result.Notifications) > 0 {
			s.dispatcher.Dispatch(ctx, result.Notifications)
		}

		return mcp.NewToolResultText(result.Reply.Text), nil
	}
}
