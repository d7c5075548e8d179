package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"bytemomo/barracuda/internal/domain"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.DelayBetweenRequests = 0
	cfg.BackoffUnit = time.Millisecond
	return cfg
}

func TestNewFillsZeroValuesFromDefaults(t *testing.T) {
	t.Parallel()

	c := New(Config{})
	cfg := c.Config()
	if cfg.MaxConcurrentRequests != 10 || cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.UserAgent == "" || cfg.BackoffUnit != time.Second {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestDoReturnsErrorStatusesWithoutRetrying(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(testConfig())
	resp, err := c.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("an HTTP error status must not be retried, got %d requests", n)
	}
}

func TestDoRetriesConnectionFailuresThenSucceeds(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			dropConnection(t, w)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.RetryAttempts = 3
	cfg.BackoffUnit = 10 * time.Millisecond
	c := New(cfg)

	start := time.Now()
	resp, err := c.Get(context.Background(), srv.URL, nil)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if string(resp.Body) != "ok" {
		t.Fatalf("unexpected body %q", resp.Body)
	}
	if n := atomic.LoadInt32(&hits); n != 3 {
		t.Fatalf("expected 3 attempts, got %d", n)
	}
	// Two failures back off for 1 and 2 backoff units.
	if want := 30 * time.Millisecond; elapsed < want {
		t.Fatalf("expected at least %v of backoff, finished in %v", want, elapsed)
	}
}

func TestDoFailsWithTransportErrorAfterAllAttempts(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		dropConnection(t, w)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.RetryAttempts = 1
	c := New(cfg)

	_, err := c.Get(context.Background(), srv.URL, nil)
	if !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("expected ErrTransport, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 2 {
		t.Fatalf("expected initial attempt plus one retry, got %d", n)
	}
}

func TestDoSerializesRequestsWithSinglePermit(t *testing.T) {
	t.Parallel()

	var inFlight, peak int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxConcurrentRequests = 1
	c := New(cfg)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Get(context.Background(), srv.URL, nil); err != nil {
				t.Errorf("Get() returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if p := atomic.LoadInt32(&peak); p != 1 {
		t.Fatalf("expected at most 1 request in flight, saw %d", p)
	}
}

func TestDoMergesParamsAndSetsHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "probe" {
			t.Errorf("missing merged query param, got %q", got)
		}
		if got := r.URL.Query().Get("fixed"); got != "1" {
			t.Errorf("existing query param lost, got %q", got)
		}
		if got := r.Header.Get("X-Custom"); got != "yes" {
			t.Errorf("missing custom header, got %q", got)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "barracuda") {
			t.Errorf("unexpected user agent %q", ua)
		}
	}))
	defer srv.Close()

	c := New(testConfig())
	_, err := c.Get(context.Background(), srv.URL+"/?fixed=1", &RequestOptions{
		Params:  map[string]string{"q": "probe"},
		Headers: map[string]string{"X-Custom": "yes"},
	})
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
}

func TestDoPerCallRedirectOverride(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/redir", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("landed"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(testConfig())

	resp, err := c.Get(context.Background(), srv.URL+"/redir", nil)
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if string(resp.Body) != "landed" {
		t.Fatalf("default client should follow redirects, got %q", resp.Body)
	}

	noFollow := false
	resp, err = c.Get(context.Background(), srv.URL+"/redir", &RequestOptions{FollowRedirects: &noFollow})
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("override should stop at the redirect, got %d", resp.StatusCode)
	}
}

func TestDoCapsResponseBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.MaxResponseBytes = 10
	c := New(cfg)

	resp, err := c.Get(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if len(resp.Body) != 10 {
		t.Fatalf("expected body capped at 10 bytes, got %d", len(resp.Body))
	}
}

func TestDoAbortsOnCanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	c := New(testConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := c.Get(ctx, srv.URL, nil); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

// dropConnection hijacks the connection and closes it so the client
// sees a connection-level failure instead of an HTTP status.
func dropConnection(t *testing.T, w http.ResponseWriter) {
	t.Helper()
	hj, ok := w.(http.Hijacker)
	if !ok {
		t.Fatal("response writer does not support hijacking")
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		t.Fatalf("hijack: %v", err)
	}
	conn.Close()
}
