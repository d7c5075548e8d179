package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateURL(t *testing.T) {
	t.Parallel()

	valid := []string{"https://example.com", "http://example.com:8080/path?q=1"}
	for _, u := range valid {
		if !ValidateURL(u) {
			t.Errorf("ValidateURL(%q) = false, want true", u)
		}
	}
	invalid := []string{"", "example.com", "/relative/path", "http://", "not a url"}
	for _, u := range invalid {
		if ValidateURL(u) {
			t.Errorf("ValidateURL(%q) = true, want false", u)
		}
	}
}

func TestJoinURL(t *testing.T) {
	t.Parallel()

	got, err := JoinURL("https://example.com/app/", "../.git/HEAD")
	if err != nil {
		t.Fatalf("JoinURL: %v", err)
	}
	if got != "https://example.com/.git/HEAD" {
		t.Fatalf("JoinURL = %q", got)
	}
}

func TestBaseURL(t *testing.T) {
	t.Parallel()

	if got := BaseURL("https://example.com/deep/path?q=1"); got != "https://example.com" {
		t.Fatalf("BaseURL = %q", got)
	}
	if got := BaseURL("not a url"); got != "" {
		t.Fatalf("BaseURL on junk = %q, want empty", got)
	}
}

func TestProbeFallsBackToGet(t *testing.T) {
	t.Parallel()

	var sawGet bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			dropConnection(t, w)
			return
		}
		sawGet = true
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.RetryAttempts = 0
	c := New(cfg)
	if !c.Probe(context.Background(), srv.URL) {
		t.Fatal("expected target to be reachable via GET fallback")
	}
	if !sawGet {
		t.Fatal("expected a GET request after HEAD failed")
	}
}

func TestProbeUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cfg := testConfig()
	cfg.RetryAttempts = 0
	c := New(cfg)
	if c.Probe(context.Background(), srv.URL) {
		t.Fatal("expected closed server to be unreachable")
	}
}
