package middlewares_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailcast"
	"github.com/dmitrymomot/mailcast/middlewares"
	"github.com/dmitrymomot/mailcast/pkg/logger"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	echo := func(c mailcast.Context) error {
		return c.String(http.StatusOK, middlewares.GetRequestID(c))
	}

	t.Run("generates a uuid", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, httptest.NewRequest(http.MethodGet, "/", nil), echo,
			mailcast.WithMiddleware(middlewares.RequestID()))

		id := rec.Header().Get(middlewares.RequestIDHeader)
		require.NoError(t, uuid.Validate(id))
		require.Equal(t, id, rec.Body.String())
	})

	t.Run("reuses the incoming id", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middlewares.RequestIDHeader, "upstream-1")

		rec := serve(t, req, echo, mailcast.WithMiddleware(middlewares.RequestID()))
		require.Equal(t, "upstream-1", rec.Header().Get(middlewares.RequestIDHeader))
		require.Equal(t, "upstream-1", rec.Body.String())
	})

	t.Run("ignores the incoming id when told to", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middlewares.RequestIDHeader, "upstream-1")

		rec := serve(t, req, echo, mailcast.WithMiddleware(middlewares.RequestID(
			middlewares.WithoutIncomingRequestID(),
			middlewares.WithRequestIDGenerator(func() string { return "fixed" }),
		)))
		require.Equal(t, "fixed", rec.Body.String())
	})

	t.Run("present on unknown routes", func(t *testing.T) {
		t.Parallel()

		rec := serve(t, httptest.NewRequest(http.MethodGet, "/missing", nil), ok,
			mailcast.WithMiddleware(middlewares.RequestID()))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.NotEmpty(t, rec.Header().Get(middlewares.RequestIDHeader))
	})

	t.Run("empty without middleware", func(t *testing.T) {
		t.Parallel()

		require.Empty(t, middlewares.GetRequestID(context.Background()))
	})
}

func TestRequestIDExtractor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug", Output: &buf}, middlewares.RequestIDExtractor())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middlewares.RequestIDHeader, "req-42")

	serve(t, req, func(c mailcast.Context) error {
		c.LogInfo("handled")
		return c.NoContent(http.StatusNoContent)
	},
		mailcast.WithLogger(log),
		mailcast.WithMiddleware(middlewares.RequestID()),
	)

	require.Contains(t, buf.String(), `"request_id":"req-42"`)

	attr, ok := middlewares.RequestIDExtractor()(context.Background())
	require.False(t, ok)
	require.Equal(t, slog.Attr{}, attr)
}
