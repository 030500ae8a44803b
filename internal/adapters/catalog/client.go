package catalog

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_reservation/internal/adapters/observability"
	"hotel_reservation/internal/domain"
)

var (
	ErrNotFound     = fmt.Errorf("catalog: %w", domain.ErrNotFound)
	ErrUnauthorized = fmt.Errorf("catalog: unauthorized: %w", domain.ErrForbidden)
	ErrForbidden    = fmt.Errorf("catalog: %w", domain.ErrForbidden)
)

const (
	maxAttempts = 4
	baseBackoff = 200 * time.Millisecond
	userAgent   = "hotel-reservation-importer/1.0"
)

// terminal statuses map straight to an error without retrying.
var terminal = map[int]error{
	http.StatusNotFound:     ErrNotFound,
	http.StatusUnauthorized: ErrUnauthorized,
	http.StatusForbidden:    ErrForbidden,
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500 && status <= 504 && status != http.StatusNotImplemented
}

// Client reads property documents from the remote hotel catalog.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func New(baseURL, apiKey string, rps int) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("catalog: API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 20 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// GetProperty fetches one property. The legacy singular path is tried when
// the current one answers 404.
func (c *Client) GetProperty(ctx context.Context, id int64) (map[string]any, error) {
	var doc map[string]any
	var err error
	for _, path := range []string{"/properties/%d", "/property/%d"} {
		err = c.fetch(ctx, "property", c.baseURL+fmt.Sprintf(path, id), &doc)
		if !errors.Is(err, ErrNotFound) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// fetch waits for the limiter once, then issues up to maxAttempts GETs.
func (c *Client) fetch(ctx context.Context, endpoint, url string, dst any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		wait, err := c.once(ctx, endpoint, url, dst, attempt)
		if wait < 0 {
			return err
		}
		lastErr = err
		if attempt == maxAttempts-1 {
			break
		}
		if !sleepCtx(ctx, wait) {
			return ctx.Err()
		}
	}
	return lastErr
}

// once performs a single GET. A negative wait means the result is final.
func (c *Client) once(ctx context.Context, endpoint, url string, dst any, attempt int) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return -1, err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.ObserveExternal("catalog", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return -1, ctx.Err()
		}
		return backoff(attempt), err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("catalog", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode == http.StatusOK {
		return -1, json.NewDecoder(resp.Body).Decode(dst)
	}
	if e, ok := terminal[resp.StatusCode]; ok {
		return -1, e
	}
	if retryable(resp.StatusCode) {
		wait := retryAfter(resp.Header.Get("Retry-After"))
		if wait == 0 {
			wait = backoff(attempt)
		}
		return wait, fmt.Errorf("catalog: remote %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return -1, fmt.Errorf("catalog: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter accepts delta seconds or an HTTP date; anything else yields 0.
func retryAfter(h string) time.Duration {
	h = strings.TrimSpace(h)
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(h); err == nil {
		return max(time.Until(at), 0)
	}
	return 0
}

// backoff doubles baseBackoff per attempt and adds up to 50% jitter.
func backoff(attempt int) time.Duration {
	d := baseBackoff << attempt
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return d
	}
	return d + time.Duration(float64(d)*0.5*float64(b[0])/255)
}
