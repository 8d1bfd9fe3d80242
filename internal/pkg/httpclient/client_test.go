package httpclient_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dispatch/internal/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestNewClient(t *testing.T) {
	client := httpclient.NewClient(time.Second, nil)

	assert.Equal(t, time.Second, client.Timeout)
	transport, ok := client.Transport.(*httpclient.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.Logger)
}

func TestTransport_LogsWithoutQuery(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()
	log, logs := observed()
	client := httpclient.NewClient(time.Second, log)

	// When
	resp, err := client.Get(server.URL + "/dispatch/deliveries/p.jpg?X-Signature=secret")

	// Then
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	entries := logs.FilterMessage("outbound request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/dispatch/deliveries/p.jpg", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	for key, value := range fields {
		if s, ok := value.(string); ok {
			assert.NotContains(t, s, "secret", key)
		}
	}
}

func TestTransport_ServerErrorIsWarning(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()
	log, logs := observed()

	// When
	resp, err := httpclient.NewClient(time.Second, log).Get(server.URL)

	// Then
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestTransport_Error(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()
	log, logs := observed()

	// When
	_, err := httpclient.NewClient(time.Second, log).Get(url)

	// Then
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("outbound request failed").Len())
}
