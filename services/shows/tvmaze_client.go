package shows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/singleflight"
)

const (
	defaultUpstreamTimeout = 8 * time.Second
	maxBodyBytes           = 4 << 20
)

// UpstreamError describes a failed upstream call: the status code, a
// message (taken from a "message" field on the body when present), the
// fully resolved URL, and the raw body for diagnostics. Timeouts are
// reported with StatusCode 504 so callers can tell a slow upstream from a
// broken one.
type UpstreamError struct {
	StatusCode int
	Message    string
	URL        string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %d: %s (%s)", e.StatusCode, e.Message, e.URL)
}

// Timeout reports whether the error represents an exceeded upstream deadline.
func (e *UpstreamError) Timeout() bool {
	return e.StatusCode == http.StatusGatewayTimeout
}

// tvmazeClient is the generic GET-with-cache gateway to the upstream
// metadata API. It builds URLs, enforces per-call timeouts, collapses
// concurrent fetches of the same URL into one upstream call, retries
// transient failures, and caches successful payloads under the resolved URL.
type tvmazeClient struct {
	baseURL string
	httpc   *http.Client
	cache   *Cache
	timeout time.Duration

	flight singleflight.Group

	retryAttempts uint
	retryDelay    time.Duration

	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newTVMazeClient(baseURL string, httpc *http.Client, cache *Cache, timeout time.Duration) *tvmazeClient {
	if httpc == nil {
		httpc = &http.Client{}
	}
	if timeout <= 0 {
		timeout = defaultUpstreamTimeout
	}
	return &tvmazeClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpc:         httpc,
		cache:         cache,
		timeout:       timeout,
		retryAttempts: 3,
		retryDelay:    300 * time.Millisecond,
		minInterval:   20 * time.Millisecond,
	}
}

// buildURL resolves path and params against the configured base URL.
// Array-valued params come through url.Values as repeated keys
// (embed[]=seasons&embed[]=cast); upstream requires repeated-key semantics
// for multi-value embeds and does not accept comma-joined values.
func (c *tvmazeClient) buildURL(path string, params url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(params) == 0 {
		return c.baseURL + path
	}
	return c.baseURL + path + "?" + params.Encode()
}

// get fetches path with params and decodes the payload into v. When ttl > 0
// the cache is consulted by resolved URL before any network activity, and a
// successful payload is stored before returning. Concurrent callers for the
// same uncached URL share a single upstream call.
func (c *tvmazeClient) get(ctx context.Context, path string, params url.Values, ttl time.Duration, v any) error {
	fullURL := c.buildURL(path, params)

	if ttl > 0 && c.cache != nil {
		if raw, ok := c.cache.Get(fullURL); ok {
			decodePayload(raw, v)
			return nil
		}
	}

	raw, err, _ := c.flight.Do(fullURL, func() (any, error) {
		return c.fetch(ctx, fullURL, ttl)
	})
	if err != nil {
		return err
	}
	decodePayload(raw.([]byte), v)
	return nil
}

// fetch performs the network call with retry on transient failures. Only a
// confirmed 2xx payload is ever written to the cache; error responses are
// never cached.
func (c *tvmazeClient) fetch(ctx context.Context, fullURL string, ttl time.Duration) ([]byte, error) {
	var payload []byte
	err := retry.Do(
		func() error {
			body, err := c.doGET(ctx, fullURL)
			if err != nil {
				return err
			}
			payload = body
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
	if err != nil {
		return nil, err
	}
	if ttl > 0 && c.cache != nil {
		c.cache.Set(fullURL, payload, ttl)
	}
	return payload, nil
}

// isTransient reports whether a failure is worth retrying: rate limiting,
// server errors, and plain network errors. Timeouts and other 4xx responses
// surface to the caller immediately.
func isTransient(err error) bool {
	var ue *UpstreamError
	if !errors.As(err, &ue) {
		return false
	}
	if ue.Timeout() {
		return false
	}
	return ue.StatusCode == http.StatusTooManyRequests || ue.StatusCode >= 500
}

func (c *tvmazeClient) doGET(ctx context.Context, fullURL string) ([]byte, error) {
	c.throttle()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Message: err.Error(), URL: fullURL}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &UpstreamError{StatusCode: http.StatusGatewayTimeout, Message: "upstream request timed out", URL: fullURL}
		}
		log.Printf("[tvmaze] network error url=%s: %v", fullURL, err)
		return nil, &UpstreamError{StatusCode: http.StatusBadGateway, Message: "upstream network error", URL: fullURL}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if readErr != nil {
		// Degrade to an empty body rather than failing the request.
		body = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(resp, body),
			URL:        fullURL,
			Body:       string(body),
		}
	}
	return body, nil
}

// upstreamMessage extracts a human-readable message from an error response:
// the "message" field of a JSON body, the raw text of a plain body, or a
// generic fallback.
func upstreamMessage(resp *http.Response, body []byte) string {
	ct := resp.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			return payload.Message
		}
	} else if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", resp.StatusCode)
}

// decodePayload unmarshals a cached or fresh payload into v. Parse failures
// are swallowed, leaving v at its zero value; upstream occasionally serves
// non-JSON bodies and downstream code tolerates empty results.
func decodePayload(raw []byte, v any) {
	if v == nil || len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("[tvmaze] ignoring undecodable payload: %v", err)
	}
}

// throttle enforces a minimum interval between upstream calls.
func (c *tvmazeClient) throttle() {
	if c.minInterval <= 0 {
		return
	}
	c.throttleMu.Lock()
	if since := time.Since(c.lastRequest); since < c.minInterval {
		time.Sleep(c.minInterval - since)
	}
	c.lastRequest = time.Now()
	c.throttleMu.Unlock()
}
