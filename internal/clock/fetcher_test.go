package clock

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPFetcherParsesDatetime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("expected json accept header, got %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"datetime":"2024-12-24T23:59:58.250000+01:00","unixtime":1}`))
	}))
	defer srv.Close()

	got, err := NewHTTPFetcher(srv.URL, time.Second).Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, 12, 24, 22, 59, 58, 250_000_000, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestHTTPFetcherStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := NewHTTPFetcher(srv.URL, time.Second).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestHTTPFetcherMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.URL, time.Second).Fetch(context.Background())
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestParseTimeResponse(t *testing.T) {
	cases := []struct {
		name string
		body string
		want time.Time
		err  bool
	}{
		{name: "utc fallback", body: `{"utc_datetime":"2025-01-01T00:00:00Z"}`, want: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "unixtime fallback", body: `{"unixtime":1735084800}`, want: time.Unix(1735084800, 0)},
		{name: "empty object", body: `{}`, err: true},
		{name: "bad datetime", body: `{"datetime":"yesterday"}`, err: true},
	}
	for _, tc := range cases {
		got, err := ParseTimeResponse([]byte(tc.body))
		if tc.err {
			if err == nil {
				t.Fatalf("%s: expected error", tc.name)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestFetchFailureFeedsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	srv.Close()

	src := NewSource(NewHTTPFetcher(srv.URL, 200*time.Millisecond))
	if err := src.Sync(context.Background()); err == nil {
		t.Fatal("expected sync against a closed server to fail")
	}
	if src.State() != Synced || !src.Status().Fallback {
		t.Fatal("expected local fallback")
	}
	if d := time.Since(src.Now()); d < -time.Second || d > time.Second {
		t.Fatalf("expected fallback close to local time, off by %v", d)
	}
}
