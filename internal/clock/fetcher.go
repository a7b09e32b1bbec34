package clock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeURL is the public endpoint queried when none is configured.
const DefaultTimeURL = "https://worldtimeapi.org/api/ip"

const maxResponseBytes = 64 << 10

// ErrMalformedResponse is returned when the endpoint answers without a usable
// timestamp.
var ErrMalformedResponse = errors.New("malformed time response")

// HTTPFetcher reads the current time from a worldtimeapi-style JSON endpoint.
type HTTPFetcher struct {
	url     string
	client  *http.Client
	headers map[string]string
}

// NewHTTPFetcher returns a fetcher for url whose HTTP client gives up after
// timeout.
func NewHTTPFetcher(url string, timeout time.Duration) *HTTPFetcher {
	if url == "" {
		url = DefaultTimeURL
	}
	if timeout <= 0 {
		timeout = DefaultSyncTimeout
	}
	return &HTTPFetcher{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{"Accept": "application/json"},
	}
}

// SetHeader adds a header sent with every request.
func (f *HTTPFetcher) SetHeader(key, value string) {
	f.headers[key] = value
}

// URL returns the endpoint being queried.
func (f *HTTPFetcher) URL() string { return f.url }

// Fetch performs one GET and parses the timestamp from the body.
func (f *HTTPFetcher) Fetch(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return time.Time{}, fmt.Errorf("time API returned status code: %d", resp.StatusCode)
	}
	return ParseTimeResponse(body)
}

type timeResponse struct {
	Datetime    string `json:"datetime"`
	UTCDatetime string `json:"utc_datetime"`
	Unixtime    int64  `json:"unixtime"`
}

// ParseTimeResponse extracts a timestamp from a worldtimeapi-style body. The
// zoned "datetime" field wins, then "utc_datetime", then "unixtime".
func ParseTimeResponse(body []byte) (time.Time, error) {
	var tr timeResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	for _, raw := range []string{tr.Datetime, tr.UTCDatetime} {
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return t, nil
	}
	if tr.Unixtime > 0 {
		return time.Unix(tr.Unixtime, 0), nil
	}
	return time.Time{}, ErrMalformedResponse
}
