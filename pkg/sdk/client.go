package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"golang.org/x/oauth2"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultMaxAttempts   = 3
	defaultRetryInterval = 500 * time.Millisecond
)

// Client is the request pipeline for the VriSA REST API. It injects the stored
// bearer token, negotiates JSON or multipart bodies, and translates every failure
// into an *APIError. Resource families are exposed as typed sub-clients.
type Client struct {
	baseURL       string
	host          string
	httpClient    *http.Client
	store         SessionStore
	logger        *slog.Logger
	timeout       time.Duration
	maxAttempts   uint
	retryInterval time.Duration

	hooksMu           sync.Mutex
	unauthorizedHooks []func()

	Auth         *AuthClient
	Stations     *StationClient
	Sensors      *SensorClient
	Measurements *MeasurementClient
	Reports      *ReportClient
	Institutions *InstitutionClient
	Users        *UserClient
}

// ClientOptions configures SDK client construction.
type ClientOptions struct {
	HTTPClient    *http.Client
	Store         SessionStore
	Logger        *slog.Logger
	Timeout       time.Duration
	MaxAttempts   uint
	RetryInterval time.Duration
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithSessionStore sets the store the pipeline reads tokens from.
func WithSessionStore(store SessionStore) ClientOption {
	return func(opts *ClientOptions) {
		opts.Store = store
	}
}

// WithLogger sets the structured logger. Tokens are never logged.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = logger
	}
}

// WithTimeout bounds each individual HTTP attempt.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(opts *ClientOptions) {
		opts.Timeout = timeout
	}
}

// WithMaxAttempts bounds how many times an idempotent request is sent when no
// response is received. Values below 2 disable retries.
func WithMaxAttempts(attempts uint) ClientOption {
	return func(opts *ClientOptions) {
		opts.MaxAttempts = attempts
	}
}

// WithRetryInterval sets the initial backoff between transport retries.
func WithRetryInterval(interval time.Duration) ClientOption {
	return func(opts *ClientOptions) {
		opts.RetryInterval = interval
	}
}

// NewClient creates a client for the API rooted at baseURL (for example
// "http://192.168.0.10:8000/api"). A MemoryStore is used when no store is given.
func NewClient(baseURL string, optFns ...ClientOption) *Client {
	opts := ClientOptions{
		Timeout:       defaultTimeout,
		MaxAttempts:   defaultMaxAttempts,
		RetryInterval: defaultRetryInterval,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 1
	}

	baseURL = strings.TrimRight(baseURL, "/")
	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}

	c := &Client{
		baseURL:       baseURL,
		host:          host,
		httpClient:    opts.HTTPClient,
		store:         opts.Store,
		logger:        opts.Logger,
		timeout:       opts.Timeout,
		maxAttempts:   opts.MaxAttempts,
		retryInterval: opts.RetryInterval,
	}
	c.Auth = &AuthClient{client: c}
	c.Stations = &StationClient{client: c}
	c.Sensors = &SensorClient{client: c}
	c.Measurements = &MeasurementClient{client: c}
	c.Reports = &ReportClient{client: c}
	c.Institutions = &InstitutionClient{client: c}
	c.Users = &UserClient{client: c}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Store returns the session store backing the client.
func (c *Client) Store() SessionStore {
	return c.store
}

// OnUnauthorized registers fn to run after a 401 response has cleared the session.
func (c *Client) OnUnauthorized(fn func()) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.unauthorizedHooks = append(c.unauthorizedHooks, fn)
}

// RequestOptions describes a single API call.
//
// Body may be nil, a *Multipart form, raw bytes or an io.Reader (sent as-is), a
// string (sent as-is as JSON), or any value that is JSON-encoded.
type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
	Query   url.Values
}

// Send issues a request against endpoint (a path relative to the base URL) and
// returns the decoded JSON body. A body that is empty or not valid JSON yields nil.
func (c *Client) Send(ctx context.Context, endpoint string, opts RequestOptions) (any, error) {
	resp, err := c.send(ctx, endpoint, opts)
	if err != nil {
		return nil, err
	}
	return resp.payload, nil
}

// Do is Send with the body decoded into out. When the body is not JSON, or does
// not fit out, out is left untouched and no error is returned.
func (c *Client) Do(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	resp, err := c.send(ctx, endpoint, opts)
	if err != nil {
		return err
	}
	if out == nil || resp.payload == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		c.logger.Debug("response body did not match expected shape", "path", endpoint, "error", err)
	}
	return nil
}

type response struct {
	status  int
	header  http.Header
	body    []byte
	payload any
}

func (c *Client) send(ctx context.Context, endpoint string, opts RequestOptions) (*response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, newLocalError("encode request body", err)
	}

	// Read once per call so a session cleared by a concurrent 401 is observed by
	// the next request. A store failure never reaches the network.
	token, err := c.store.Get(ctx, KeyAccessToken)
	if err != nil {
		return nil, newLocalError("read access token", fmt.Errorf("%w: %w", ErrSessionStore, err))
	}

	header := make(http.Header)
	for k, v := range opts.Headers {
		header.Set(k, v)
	}
	if contentType != "" && header.Get("Content-Type") == "" {
		header.Set("Content-Type", contentType)
	}
	if header.Get("Accept") == "" {
		header.Set("Accept", "application/json")
	}

	resp, err := c.execute(ctx, method, c.resolve(endpoint, opts.Query), body, header, token)
	if err != nil {
		return nil, err
	}

	resp.payload = decodePayload(resp.body)
	if resp.status < 200 || resp.status >= 300 {
		if resp.status == http.StatusUnauthorized {
			c.handleUnauthorized(ctx)
		}
		return nil, newResponseError(resp.status, resp.payload)
	}
	return resp, nil
}

// execute sends the request, retrying idempotent methods when no response was
// received. Any failure to obtain a response is returned as a status-0 APIError.
func (c *Client) execute(ctx context.Context, method, target string, body []byte, header http.Header, token string) (*response, error) {
	attempts := c.maxAttempts
	if !isIdempotent(method) {
		attempts = 1
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval

	operation := func() (*response, error) {
		resp, err := c.attempt(ctx, method, target, body, header, token)
		if err != nil && ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return resp, err
	}

	resp, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(attempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn("api request failed, retrying", "method", method, "host", c.host, "retry_in", next, "error", err)
		}),
	)
	if err != nil {
		c.logger.Debug("api request failed", "method", method, "host", c.host, "error", err)
		return nil, newTransportError(c.host, err)
	}
	return resp, nil
}

func (c *Client) attempt(ctx context.Context, method, target string, body []byte, header http.Header, token string) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header = header.Clone()
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Debug("api request",
		"method", method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return &response{status: resp.StatusCode, header: resp.Header, body: data}, nil
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	if err := ClearSession(context.WithoutCancel(ctx), c.store); err != nil {
		c.logger.Warn("failed to clear session after unauthorized response", "error", err)
	}

	c.hooksMu.Lock()
	hooks := append([]func(){}, c.unauthorizedHooks...)
	c.hooksMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

func (c *Client) resolve(endpoint string, query url.Values) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	target := c.baseURL + endpoint
	if encoded := query.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		target += sep + encoded
	}
	return target
}

// encodeBody serializes a request body and reports the content type to send.
// An empty content type leaves the header unset.
func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "application/json", nil
	case *Multipart:
		return b.encode()
	case json.RawMessage:
		return b, "application/json", nil
	case string:
		return []byte(b), "application/json", nil
	case []byte:
		return b, "", nil
	case io.Reader:
		data, err := io.ReadAll(b)
		if err != nil {
			return nil, "", err
		}
		return data, "", nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	}
}

func decodePayload(data []byte) any {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return payload
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	default:
		return false
	}
}
