package http_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	vbhttp "vendorbot/internal/adapters/in/http"
	"vendorbot/internal/core/application/interpreter"
	"vendorbot/internal/core/application/usecases/queries"
	"vendorbot/internal/core/domain/model/kernel"
	"vendorbot/internal/core/domain/model/notification"
	"vendorbot/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testToken = "secret-token"

type MockExecutor struct {
	mock.Mock
}

func (m *MockExecutor) Execute(ctx context.Context, env interpreter.Envelope) interpreter.Result {
	args := m.Called(ctx, env)
	return args.Get(0).(interpreter.Result)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(ctx context.Context, notifications []*notification.Notification) int {
	args := m.Called(ctx, notifications)
	return args.Int(0)
}

type MockMenuReader struct {
	mock.Mock
}

func (m *MockMenuReader) Handle(ctx context.Context, query queries.GetMenuQuery) ([]queries.MenuItemResponse, error) {
	args := m.Called(ctx, query)
	items, _ := args.Get(0).([]queries.MenuItemResponse)
	return items, args.Error(1)
}

type MockOrderLister struct {
	mock.Mock
}

func (m *MockOrderLister) Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderResponse, error) {
	args := m.Called(ctx, query)
	orders, _ := args.Get(0).([]queries.OrderResponse)
	return orders, args.Error(1)
}

type ServerTestSuite struct {
	suite.Suite
	executor   *MockExecutor
	dispatcher *MockDispatcher
	menu       *MockMenuReader
	orders     *MockOrderLister
	e          *echo.Echo
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.executor = new(MockExecutor)
	s.dispatcher = new(MockDispatcher)
	s.menu = new(MockMenuReader)
	s.orders = new(MockOrderLister)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := vbhttp.NewServer(s.executor, s.dispatcher, s.menu, s.orders, logger)

	e, err := vbhttp.NewRouter(context.Background(), server, vbhttp.RouterConfig{APIToken: testToken, LogLevel: "off"})
	s.Require().NoError(err)
	s.e = e
}

func (s *ServerTestSuite) do(method, target, body string, authorized bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authorized {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+testToken)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "", false)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *ServerTestSuite) TestOpenAPIDocumentIsServed() {
	rec := s.do(http.MethodGet, "/openapi.yaml", "", false)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "/api/v1/commands")
}

func (s *ServerTestSuite) TestAPIRequiresToken() {
	rec := s.do(http.MethodGet, "/api/v1/menu", "", false)
	s.Equal(http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer wrong")
	wrong := httptest.NewRecorder()
	s.e.ServeHTTP(wrong, req)
	s.Equal(http.StatusUnauthorized, wrong.Code)

	s.menu.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestExecuteCommand_DispatchesNotifications() {
	// Given
	note, err := notification.NewNotification(
		1, notification.OrderPlaced, kernel.MustContact("+919999999999"), "🛒 New order #1", time.Now())
	s.Require().NoError(err)

	result := interpreter.Result{
		Reply:         interpreter.Reply{Text: "✅ Order #1 placed", Recipient: "+919876543210"},
		Notifications: []*notification.Notification{note},
	}
	s.executor.On("Execute", mock.Anything, mock.MatchedBy(func(env interpreter.Envelope) bool {
		return env.Caller == "+919876543210" && env.Command.Name == "order" &&
			strings.Contains(string(env.Command.Payload), "surmai")
	})).Return(result).Once()
	s.dispatcher.On("Dispatch", mock.Anything, result.Notifications).Return(1).Once()

	body := `{"caller":"+919876543210","command":"order","payload":{"items":[{"name":"surmai","qty":1}],` +
		`"customer_name":"John","customer_contact":"+919876543210"}}`

	// When
	rec := s.do(http.MethodPost, "/api/v1/commands", body, true)

	// Then
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var resp vbhttp.CommandResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("✅ Order #1 placed", resp.Reply.Text)
	s.Require().Len(resp.Notifications, 1)
	s.Equal("order_placed", resp.Notifications[0].Kind)
	s.Equal(note.ID().String(), resp.Notifications[0].ID)
	s.executor.AssertExpectations(s.T())
	s.dispatcher.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestExecuteCommand_RejectedCommandIsStillOK() {
	s.executor.On("Execute", mock.Anything, mock.Anything).
		Return(interpreter.Result{Reply: interpreter.Reply{Text: "🚫 Sorry, this command is not permitted.", Recipient: "+911"}}).
		Once()

	rec := s.do(http.MethodPost, "/api/v1/commands", `{"caller":"+911","command":"update_menu","payload":{}}`, true)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "not permitted")
	s.dispatcher.AssertNotCalled(s.T(), "Dispatch", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestExecuteCommand_BadRequests() {
	testCases := map[string]string{
		"undecodable json":        `{"caller":`,
		"missing command":         `{"caller":"+919876543210"}`,
		"payload not json object": `{"caller":"+919876543210","command":"menu","payload":"x"}`,
	}

	for name, body := range testCases {
		s.Run(name, func() {
			rec := s.do(http.MethodPost, "/api/v1/commands", body, true)

			s.Equal(http.StatusBadRequest, rec.Code)
		})
	}
	s.executor.AssertNotCalled(s.T(), "Execute", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestGetMenu() {
	items := []queries.MenuItemResponse{
		{Name: "Seer Fish (Surmai)", Price: decimal.NewFromInt(800), Unit: "kg", Available: true},
	}
	s.menu.On("Handle", mock.Anything, queries.NewGetMenuQuery("surmai")).Return(items, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/menu?q=surmai", "", true)

	s.Require().Equal(http.StatusOK, rec.Code)
	var got []queries.MenuItemResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Require().Len(got, 1)
	s.Equal("Seer Fish (Surmai)", got[0].Name)
	s.True(got[0].Price.Equal(decimal.NewFromInt(800)))
}

func (s *ServerTestSuite) TestListOrders() {
	s.orders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		return q.Status() == order.Pending
	})).Return([]queries.OrderResponse{{ID: 1, State: "pending"}}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders?state=pending", "", true)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"state":"pending"`)
	s.orders.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestListOrders_UnknownState() {
	rec := s.do(http.MethodGet, "/api/v1/orders?state=lost", "", true)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.orders.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func TestNewRouter_RequiresToken(t *testing.T) {
	server := vbhttp.NewServer(nil, nil, nil, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := vbhttp.NewRouter(context.Background(), server, vbhttp.RouterConfig{})

	require.Error(t, err)
}
