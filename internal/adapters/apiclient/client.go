// Package apiclient is a typed Go client for the listings API. Every call is
// described by a contract route, so paths and payload rules come from the
// same declarations the server mounts.
package apiclient

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/landaireal/landai-rent/internal/adapters/observability"
	"github.com/landaireal/landai-rent/internal/contract"
	"github.com/landaireal/landai-rent/internal/domain"
)

const (
	serviceName = "landai-api"
	maxAttempts = 4
)

// Error is a non-2xx answer from the API.
type Error struct {
	Status  int
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api %d: %s (%s)", e.Status, e.Message, e.Field)
	}
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

func IsStatus(err error, status int) bool {
	var e *Error
	return errors.As(err, &e) && e.Status == status
}

type Client struct {
	base  string
	hc    *http.Client
	token string
	rl    *rate.Limiter
}

type Option func(*Client)

// WithToken sends an admin bearer token on every request.
func WithToken(tok string) Option { return func(c *Client) { c.token = tok } }

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

func New(base string, rps int, opts ...Option) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL must be absolute, got %q", base)
	}
	if rps <= 0 {
		rps = 5
	}
	c := &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ---- Public API ----

func (c *Client) ListProperties(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	q := url.Values{}
	for k, v := range map[string]string{"q": f.Q, "type": f.Type, "category": f.Category, "location": f.Location} {
		if v != "" {
			q.Set(k, v)
		}
	}
	if f.Featured != nil {
		q.Set("featured", strconv.FormatBool(*f.Featured))
	}
	var out []domain.Property
	if err := c.do(ctx, contract.PropertiesList, nil, q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Property{}
	}
	return out, nil
}

// GetProperty reports ok=false when the API answers 404.
func (c *Client) GetProperty(ctx context.Context, id int64) (domain.Property, bool, error) {
	var p domain.Property
	err := c.do(ctx, contract.PropertiesGet, map[string]any{"id": id}, nil, nil, &p)
	if IsStatus(err, http.StatusNotFound) {
		return domain.Property{}, false, nil
	}
	if err != nil {
		return domain.Property{}, false, err
	}
	return p, true, nil
}

func (c *Client) CreateProperty(ctx context.Context, in domain.PropertyInput) (domain.Property, error) {
	var p domain.Property
	return p, c.do(ctx, contract.PropertiesCreate, nil, nil, in, &p)
}

func (c *Client) CreateInquiry(ctx context.Context, in domain.InquiryInput) (domain.Inquiry, error) {
	var q domain.Inquiry
	return q, c.do(ctx, contract.InquiriesCreate, nil, nil, in, &q)
}

// ---- Internals ----

// retryable: 429 means the server did no work, so any method may retry;
// 5xx is only retried for reads.
func retryable(method string, status int) bool {
	switch status {
	case http.StatusTooManyRequests:
		return true
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return method == http.MethodGet
	}
	return false
}

// do validates the payload against the route's input schema, then sends it
// with client-side rate limiting and retries, decoding 2xx bodies into out.
func (c *Client) do(ctx context.Context, rt contract.Route, params map[string]any, q url.Values, in, out any) error {
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		if rt.Input != nil {
			var probe map[string]any
			if err := rt.Input.Decode(b, &probe); err != nil {
				return err
			}
		}
		payload = b
	}

	u := c.base + rt.URL(params)
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, rt.Method, u, body)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "landai-apiclient/1.0")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal(serviceName, rt.Name, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			// a write may have reached the server; only reads are replayed
			if rt.Method == http.MethodGet && i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal(serviceName, rt.Name, resp.StatusCode, time.Since(start))

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("%s: decode response: %w", rt.Name, err)
			}
			return nil
		}

		apiErr := readError(resp)
		if retryable(rt.Method, resp.StatusCode) {
			wait := retryAfter(resp)
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = apiErr
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		if !rt.Declares(resp.StatusCode) && apiErr.Message == "" {
			apiErr.Message = "unexpected status " + http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	return lastErr
}

func readError(resp *http.Response) *Error {
	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	e := &Error{Status: resp.StatusCode}
	var body contract.ValidationError
	if err := json.Unmarshal(b, &body); err == nil {
		e.Message, e.Field = body.Message, body.Field
	} else {
		e.Message = strings.TrimSpace(string(b))
	}
	return e
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
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

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
