package cricbuzz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/cricket-widget/internal/platform/logging"
	"github.com/riskibarqy/cricket-widget/internal/platform/resilience"
	"github.com/riskibarqy/cricket-widget/internal/usecase"
)

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:    baseURL,
		UserAgent:  "widget-test-agent",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		Logger:     logging.NewNop(),
	})
}

func TestClient_FetchPage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cricket-match/live-scores", r.URL.Path)
		require.Equal(t, "widget-test-agent", r.Header.Get("User-Agent"))
		require.Contains(t, r.Header.Get("Accept"), "text/html")

		_, _ = w.Write([]byte("<html>live</html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)

	html, err := client.FetchPage(context.Background(), "/cricket-match/live-scores")
	require.NoError(t, err)
	require.Equal(t, "<html>live</html>", html)
}

func TestClient_FetchPage_AbsoluteURLPassesThrough(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/live-cricket-scorecard/42", r.URL.Path)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	// Base points elsewhere; the absolute URL must win.
	client := newTestClient("https://unreachable.invalid", 0)

	html, err := client.FetchPage(context.Background(), server.URL+"/live-cricket-scorecard/42")
	require.NoError(t, err)
	require.Equal(t, "ok", html)
}

func TestClient_FetchPage_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)

	_, err := client.FetchPage(context.Background(), "/live-cricket-scores/999999")
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestClient_FetchPage_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1)

	html, err := client.FetchPage(context.Background(), "/cricket-match/live-scores")
	require.NoError(t, err)
	require.Equal(t, "recovered", html)
	require.Equal(t, int32(2), requests.Load())
}

func TestClient_FetchPage_NonRetryableStatus(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	_, err := client.FetchPage(context.Background(), "/cricket-match/live-scores")
	require.Error(t, err)
	require.NotErrorIs(t, err, usecase.ErrNotFound)
	require.Equal(t, int32(1), requests.Load())
}

func TestClient_FetchCommentary(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.Header.Get("Accept"), "application/json")
		switch r.URL.Path {
		case "/match-api/42/commentary.json":
			_, _ = w.Write([]byte(`{"kind":"incremental"}`))
		case "/match-api/42/commentary-full.json":
			_, _ = w.Write([]byte(`{"kind":"full"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0)

	raw, err := client.FetchCommentary(context.Background(), "42", false)
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"incremental"}`, string(raw))

	raw, err = client.FetchCommentary(context.Background(), "42", true)
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":"full"}`, string(raw))
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 0,
		Logger:     logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})

	_, err := client.FetchPage(context.Background(), "/cricket-match/live-scores")
	require.Error(t, err)
	require.Equal(t, int32(1), requests.Load())

	_, err = client.FetchPage(context.Background(), "/cricket-match/live-scores")
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.Equal(t, int32(1), requests.Load(), "an open circuit must not reach the server")
}

func TestClient_Defaults(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	require.Equal(t, "https://www.cricbuzz.com", client.BaseURL())
	require.Equal(t, "https://www.cricbuzz.com/x", client.resolveURL("x"))
	require.Equal(t, "https://www.cricbuzz.com/x", client.resolveURL("/x"))
}

func TestIsRetryableStatus(t *testing.T) {
	t.Parallel()

	require.True(t, isRetryableStatus(http.StatusTooManyRequests))
	require.True(t, isRetryableStatus(http.StatusBadGateway))
	require.True(t, isRetryableStatus(http.StatusRequestTimeout))
	require.False(t, isRetryableStatus(http.StatusForbidden))
	require.False(t, isRetryableStatus(http.StatusOK))
}

func TestAbbreviateBody(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", abbreviateBody([]byte("  short  ")))

	long := make([]byte, 600)
	for i := range long {
		long[i] = 'a'
	}
	abbreviated := abbreviateBody(long)
	require.Len(t, abbreviated, 243)
	require.Equal(t, "...", abbreviated[240:])
}
