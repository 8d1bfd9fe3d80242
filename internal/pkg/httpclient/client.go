// Package httpclient builds outbound HTTP clients that log each exchange.
package httpclient

import (
	"net/http"
	"time"

	"dispatch/internal/pkg/logger"

	"go.uber.org/zap"
)

// Transport logs method, host, path, status and duration of every request
// sent through Base. Query strings and credentials are never logged.
type Transport struct {
	Base   http.RoundTripper
	Logger *zap.Logger
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("host", req.URL.Host),
		zap.String("path", req.URL.Path),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		t.Logger.Warn("outbound request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	fields = append(fields, zap.Int("status", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		t.Logger.Warn("outbound request got server error", fields...)
	} else {
		t.Logger.Debug("outbound request", fields...)
	}
	return resp, nil
}

// NewClient returns a client bounded by timeout. A nil log selects the
// process logger.
func NewClient(timeout time.Duration, log *zap.Logger) *http.Client {
	if log == nil {
		log = logger.Named("httpclient")
	}
	return &http.Client{
		Transport: &Transport{Base: http.DefaultTransport, Logger: log},
		Timeout:   timeout,
	}
}
