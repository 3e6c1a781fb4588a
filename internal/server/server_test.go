package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/jobboard/internal/config"
	"github.com/honeycarbs/jobboard/pkg/logging"
)

func testConfig() config.Config {
	cfg := config.Config{
		LogLevel:    "info",
		Host:        "127.0.0.1",
		Port:        "0",
		StoreDriver: config.StoreMemory,
	}
	cfg.Auth = config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour}
	cfg.Events.Driver = config.EventsNone
	cfg.HTTP.AllowedOrigins = []string{"https://jobs.example"}
	return cfg
}

func TestInitializeResourcesWithMemoryStore(t *testing.T) {
	res, cleanup, err := InitializeResources(context.Background(), testConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	assert.NotNil(t, res.JobService)
	assert.NotNil(t, res.Authenticator)
	assert.Nil(t, res.Sheets)
}

func TestInitializeResourcesRejectsUnknownStore(t *testing.T) {
	cfg := testConfig()
	cfg.StoreDriver = "sqlite"

	_, _, err := InitializeResources(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestHandlerRoutes(t *testing.T) {
	cfg := testConfig()
	res, cleanup, err := InitializeResources(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	h := NewHandler(cfg, res, logging.NewNop())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("Origin", "https://jobs.example")
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://jobs.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), `"total":0`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("Origin", "https://evil.example")
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/jobs", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRunWaitsForInFlightRequests(t *testing.T) {
	entered := make(chan struct{})
	var finished atomic.Bool
	slow := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		close(entered)
		time.Sleep(300 * time.Millisecond)
		finished.Store(true)
		w.WriteHeader(http.StatusOK)
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := newServer(ln.Addr().String(), slow, logging.NewNop())
	runErr := make(chan error, 1)
	go func() { runErr <- srv.serve(ln) }()

	reqErr := make(chan error, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/")
		if err == nil {
			_ = resp.Body.Close()
		}
		reqErr <- err
	}()

	select {
	case <-entered:
	case <-time.After(5 * time.Second):
		t.Fatal("request never reached the handler")
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	select {
	case err := <-runErr:
		require.NoError(t, err)
		assert.True(t, finished.Load(), "Run returned before the in-flight request completed")
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Shutdown")
	}
	require.NoError(t, <-reqErr)
}
