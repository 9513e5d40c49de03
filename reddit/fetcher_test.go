package reddit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Delay = 0
	cfg.RandomDelay = 0
	cfg.Timeout = 5 * time.Second
	cfg.Retries = 0
	cfg.RetryWait = time.Millisecond
	cfg.CloudflareBypass = false
	return cfg
}

func TestFetchSendsUserAgent(t *testing.T) {
	var agents []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.UserAgent())
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) Chrome/120.0"
	fetcher, err := NewFetcher(cfg)
	require.Equal(t, nil, err)

	body, err := fetcher.Fetch(context.Background(), srv.URL+"/page")
	require.Equal(t, nil, err)
	require.Equal(t, "<html>ok</html>", string(body))

	cfg.UserAgent = ""
	fetcher, err = NewFetcher(cfg)
	require.Equal(t, nil, err)
	_, err = fetcher.Fetch(context.Background(), srv.URL+"/page")
	require.Equal(t, nil, err)

	require.Equal(t, 2, len(agents))
	require.Equal(t, "Mozilla/5.0 (X11; Linux x86_64) Chrome/120.0", agents[0])
	require.NotEmpty(t, agents[1])
}

func TestFetchRevisitsSameURL(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte("again"))
	}))
	defer srv.Close()

	fetcher, err := NewFetcher(testConfig(srv.URL))
	require.Equal(t, nil, err)
	for i := 0; i < 2; i++ {
		_, err := fetcher.Fetch(context.Background(), srv.URL+"/same")
		require.Equal(t, nil, err)
	}
	require.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestFetchErrorStatus(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Retries = 3
	fetcher, err := NewFetcher(cfg)
	require.Equal(t, nil, err)

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/missing")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, http.StatusNotFound, fe.StatusCode)
	require.Equal(t, srv.URL+"/missing", fe.URL)
	require.False(t, fe.Temporary())

	// Permanent failures are not retried
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Retries = 2
	fetcher, err := NewFetcher(cfg)
	require.Equal(t, nil, err)

	body, err := fetcher.Fetch(context.Background(), srv.URL+"/flaky")
	require.Equal(t, nil, err)
	require.Equal(t, "recovered", string(body))
	require.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestFetchNoRetryByDefault(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	fetcher, err := NewFetcher(testConfig(srv.URL))
	require.Equal(t, nil, err)

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/down")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.True(t, fe.Temporary())
	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	fetcher, err := NewFetcher(testConfig(addr))
	require.Equal(t, nil, err)

	_, err = fetcher.Fetch(context.Background(), addr+"/gone")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, 0, fe.StatusCode)
	require.Contains(t, fe.Error(), addr+"/gone")
}
