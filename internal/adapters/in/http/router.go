package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type RouterConfig struct {
	// APIToken is the bearer token required on /api/v1.
	APIToken string
	// LogLevel sets echo's own logger: debug, info, warn, error or off.
	LogLevel string
}

// NewRouter builds the echo instance with all routes registered.
func NewRouter(ctx context.Context, server *Server, cfg RouterConfig) (*echo.Echo, error) {
	if cfg.APIToken == "" {
		return nil, errors.New("api token is required")
	}

	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(parseLogLevel(cfg.LogLevel))
	e.Use(middleware.Recover())

	e.GET("/health", server.Health)
	e.GET("/openapi.yaml", server.Document)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	api := e.Group("/api/v1", bearerAuth(cfg.APIToken), validate)
	api.POST("/commands", server.ExecuteCommand)
	api.GET("/menu", server.GetMenu)
	api.GET("/orders", server.ListOrders)

	return e, nil
}

func bearerAuth(token string) echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, _ echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(token)) == 1, nil
		},
		ErrorHandler: func(_ error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, newError(http.StatusUnauthorized, "Unauthorized"))
		},
	})
}

func parseLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	}
	return log.INFO
}
