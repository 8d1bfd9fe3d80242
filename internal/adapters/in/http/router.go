package http

import (
	"context"
	"net/http"
	"strings"

	_ "dispatch/docs/swagger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// BaseURL prefixes every API route.
const BaseURL = "/api/v1"

// RouterConfig holds what the router needs besides the server.
type RouterConfig struct {
	Auth     AuthConfig
	Gatherer prometheus.Gatherer
	LogLevel string

	// Ping backs /health when set; a failure reports 503.
	Ping func(ctx context.Context) error
}

// NewRouter builds the echo instance: API routes, health, metrics and the
// swagger UI.
func NewRouter(si ServerInterface, cfg RouterConfig, logger *zap.Logger) *echo.Echo {
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(echoLogLevel(cfg.LogLevel))
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))

	e.GET("/health", func(c echo.Context) error {
		if cfg.Ping != nil {
			if err := cfg.Ping(c.Request().Context()); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				return c.String(http.StatusServiceUnavailable, "Unhealthy")
			}
		}
		return c.String(http.StatusOK, "Healthy")
	})

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	RegisterHandlers(e, si, BaseURL, cfg.Auth)
	return e
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
