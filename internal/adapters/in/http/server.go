package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"vendorbot/internal/core/application/interpreter"
	"vendorbot/internal/core/application/notifier"
	"vendorbot/internal/core/application/usecases/queries"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/core/ports"
	"vendorbot/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	CommandExecutor interface {
		Execute(ctx context.Context, env interpreter.Envelope) interpreter.Result
	}

	NotificationDispatcher interface {
		Dispatch(ctx context.Context, notifications []*notification.Notification) int
	}

	MenuReader interface {
		Handle(ctx context.Context, query queries.GetMenuQuery) ([]queries.MenuItemResponse, error)
	}

	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error)
	}
)

// Error is the body of every non-2xx JSON response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newError(code int, message string) Error {
	return Error{Code: code, Message: message}
}

// CommandRequest is the body of POST /api/v1/commands.
type CommandRequest struct {
	Caller  string          `json:"caller"`
	Command string          `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// CommandResponse carries the caller's reply and the notifications handed to the dispatcher.
type CommandResponse struct {
	Reply         interpreter.Reply `json:"reply"`
	Notifications []ports.Message   `json:"notifications"`
}

// Server coordinates between HTTP handlers and the application layer.
type Server struct {
	executor   CommandExecutor
	dispatcher NotificationDispatcher
	getMenu    MenuReader
	listOrders OrderLister
	logger     *slog.Logger
}

func NewServer(
	executor CommandExecutor,
	dispatcher NotificationDispatcher,
	getMenu MenuReader,
	listOrders OrderLister,
	logger *slog.Logger,
) *Server {
	return &Server{
		executor:   executor,
		dispatcher: dispatcher,
		getMenu:    getMenu,
		listOrders: listOrders,
		logger:     logger.With("component", "http"),
	}
}

// ExecuteCommand handles POST /api/v1/commands. Every decodable request gets a 200
// with the interpreter's reply, including rejected commands.
func (s *Server) ExecuteCommand(c echo.Context) error {
	var req CommandRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, "Invalid request body"))
	}

	ctx := c.Request().Context()
	result := s.executor.Execute(ctx, interpreter.Envelope{
		Caller:  req.Caller,
		Command: interpreter.Command{Name: req.Command, Payload: req.Payload},
	})

	messages := make([]ports.Message, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		messages = append(messages, notifier.ToMessage(n))
	}
	if len(result.Notifications) > 0 {
		s.dispatcher.Dispatch(ctx, result.Notifications)
	}

	return c.JSON(http.StatusOK, CommandResponse{Reply: result.Reply, Notifications: messages})
}

// GetMenu handles GET /api/v1/menu.
func (s *Server) GetMenu(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := s.getMenu.Handle(ctx, queries.NewGetMenuQuery(c.QueryParam("q")))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read menu", "error", err)
		return c.JSON(http.StatusInternalServerError, newError(http.StatusInternalServerError, "Failed to retrieve menu"))
	}
	return c.JSON(http.StatusOK, items)
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	query, err := queries.NewListOrdersQuery(c.QueryParam("state"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, "Invalid state: "+err.Error()))
	}

	orders, err := s.listOrders.Handle(ctx, query)
	if err != nil {
		if errs.IsValidation(err) {
			return c.JSON(http.StatusBadRequest, newError(http.StatusBadRequest, err.Error()))
		}
		s.logger.ErrorContext(ctx, "failed to list orders", "error", err)
		return c.JSON(http.StatusInternalServerError, newError(http.StatusInternalServerError, "Failed to retrieve orders"))
	}
	return c.JSON(http.StatusOK, orders)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// Document handles GET /openapi.yaml.
func (s *Server) Document(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/yaml", OpenAPIDocument())
}
