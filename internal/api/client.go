// Package api is the authenticated HTTP client for the SIA-R backend.
//
// Every call carries the stored bearer token. Callers get parsed JSON or
// nil; nil means "could not fetch" whatever the cause (transport error,
// expired session, body that is not JSON). A 401 additionally clears the
// stored token and navigates to the login screen.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abelbrown/siadash/internal/nav"
	"github.com/abelbrown/siadash/internal/otel"
	"github.com/abelbrown/siadash/internal/state"
	"golang.org/x/time/rate"
)

const (
	comp = "api"

	// maxBody caps how much of a response is read.
	maxBody = 8 << 20
)

// Options customize a single call. Headers override the defaults.
type Options struct {
	Method  string
	Body    any
	Headers map[string]string
}

// Client issues authenticated requests.
type Client struct {
	baseURL string
	client  *http.Client
	store   state.Store
	nav     nav.Navigator
	limiter *rate.Limiter
	log     *otel.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithRateLimit caps outgoing requests per second. rps <= 0 disables the
// limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger attaches the event logger.
func WithLogger(l *otel.Logger) Option {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client for baseURL. store supplies and clears the
// token; navigator receives the login redirect.
func NewClient(baseURL string, store state.Store, navigator nav.Navigator, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		store:   store,
		nav:     navigator,
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// defaultHeaders returns the headers every request starts from.
func (c *Client) defaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + state.Token(c.store),
	}
}

// Call performs a request against endpoint (a path such as
// "/api/ui/trends?flatten=1") and returns the JSON body, or nil.
func (c *Client) Call(ctx context.Context, endpoint string, o Options) json.RawMessage {
	method := o.Method
	if method == "" {
		method = http.MethodGet
	}
	start := time.Now()
	c.log.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindFetchStart, Comp: comp, Target: endpoint, Msg: method})

	body, status, err := c.do(ctx, method, endpoint, o)
	if err != nil {
		c.log.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindFetchError, Comp: comp, Target: endpoint, Status: status, Err: err.Error(), Dur: time.Since(start)})
		return nil
	}

	if status == http.StatusUnauthorized {
		c.expireSession(endpoint)
		return nil
	}

	if !json.Valid(body) {
		c.log.Emit(otel.Event{Level: otel.LevelError, Kind: otel.KindFetchError, Comp: comp, Target: endpoint, Status: status, Err: "response is not JSON", Dur: time.Since(start)})
		return nil
	}

	c.log.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindFetchComplete, Comp: comp, Target: endpoint, Status: status, Dur: time.Since(start)})
	return json.RawMessage(body)
}

func (c *Client) do(ctx context.Context, method, endpoint string, o Options) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if o.Body != nil {
		data, err := json.Marshal(o.Body)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}

	headers := c.defaultHeaders()
	for k, v := range o.Headers {
		headers[k] = v
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return data, resp.StatusCode, nil
}

// expireSession clears the token and sends the user to the login screen.
func (c *Client) expireSession(endpoint string) {
	c.log.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindAuthExpired, Comp: comp, Target: endpoint, Status: http.StatusUnauthorized})
	if err := state.ClearToken(c.store); err != nil {
		c.log.Error(otel.KindStateError, comp, err)
	}
	if c.nav == nil {
		return
	}
	if err := nav.Go(c.nav, nav.Login); err != nil {
		c.log.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindNavigateFall, Comp: comp, Target: nav.Login, Err: err.Error()})
	}
}

// Get issues a GET.
func (c *Client) Get(ctx context.Context, endpoint string) json.RawMessage {
	return c.Call(ctx, endpoint, Options{Method: http.MethodGet})
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) json.RawMessage {
	return c.Call(ctx, endpoint, Options{Method: http.MethodPost, Body: body})
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body any) json.RawMessage {
	return c.Call(ctx, endpoint, Options{Method: http.MethodPut, Body: body})
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, endpoint string) json.RawMessage {
	return c.Call(ctx, endpoint, Options{Method: http.MethodDelete})
}
