package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/luizaranda/go-restclient/pkg/internal"
	"github.com/luizaranda/go-restclient/pkg/log"
	"github.com/luizaranda/go-restclient/pkg/telemetry"
	"github.com/luizaranda/go-restclient/pkg/transport/httpclient"
)

// Requester is responsible for executing HTTP requests. It is usually an
// implementation provided by the transport package (e.g. httpclient).
// It can also be a http.Client or even a mock implementation for testing.
type Requester interface {
	// Do makes an HTTP request and returns an HTTP response.
	Do(*http.Request) (*http.Response, error)
}

// Response represents the response from a Client call that reached the server,
// regardless of the status code.
type Response struct {
	// Body is the complete response body.
	Body []byte
	// StatusCode is the response status code.
	StatusCode int
	// Header is the response header map.
	Header http.Header
}

// ErrorPolicyFunc decides whether a Response should be surfaced as an error.
// It is called only if the HTTP request itself succeeded; transport errors
// (connection refused, DNS failure, timeouts) are returned as-is and never
// pass through the policy.
type ErrorPolicyFunc func(*Response) error

// DefaultErrorPolicy returns an error for any response with status code
// greater than 399.
var DefaultErrorPolicy ErrorPolicyFunc = func(r *Response) error {
	if r.StatusCode < 400 {
		return nil
	}

	return &Error{r}
}

// RefreshFunc is invoked when a request receives a 401 response and no refresh
// is already running for the client. The callback receives the client so it
// can install new credentials via SetAuthorization, together with the refresh
// token currently stored (empty when none was set).
//
// The original request is re-issued exactly once after the callback returns,
// whether it succeeded or not. A callback that does nothing simply means the
// retry carries the same credentials, most likely producing a second 401 which
// is then surfaced as an error.
type RefreshFunc func(ctx context.Context, c *Client, refreshToken string) error

// Client is an HTTP convenience wrapper bound to a base URL. It is safe to use
// concurrently by multiple goroutines and is expected to be created once and
// shared across the lifetime of the application.
type Client struct {
	requester   Requester
	baseURL     string
	errorPolicy ErrorPolicyFunc
	onRefresh   RefreshFunc

	// refreshing is a single-flight guard: only the caller that wins the
	// CompareAndSwap runs the refresh cycle, every other call that sees a 401
	// meanwhile falls through to the error policy.
	refreshing atomic.Bool

	mu             sync.RWMutex // guards defaultHeaders and refreshToken
	defaultHeaders http.Header
	refreshToken   string
}

// New creates a Client that targets baseURL through the given requester.
//
// It returns an error if baseURL is not a valid URL as defined by
// url.ParseRequestURI. A nil requester defaults to httpclient.New().
func New(requester Requester, baseURL string, opts ...ClientOption) (*Client, error) {
	options := defaultClientOptions()
	for _, opt := range opts {
		opt.applyClient(&options)
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, err
	}

	if requester == nil {
		requester = httpclient.New()
	}

	return &Client{
		requester:      requester,
		baseURL:        baseURL,
		errorPolicy:    options.ErrorPolicyFn,
		onRefresh:      options.RefreshFn,
		defaultHeaders: options.Header,
	}, nil
}

// BaseURL returns the base URL the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// SetDefaultHeader sets a default header that is sent on every request unless
// overridden per call.
func (c *Client) SetDefaultHeader(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultHeaders.Set(name, value)
}

// AddDefaultHeaders merges the given headers into the client defaults,
// overwriting existing values on key collision.
func (c *Client) AddDefaultHeaders(headers map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range headers {
		c.defaultHeaders.Set(k, v)
	}
}

// Get issues a GET request to baseURL+route.
func (c *Client) Get(ctx context.Context, route string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, route, opts...)
}

// Post issues a POST request to baseURL+route.
func (c *Client) Post(ctx context.Context, route string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, route, opts...)
}

// Put issues a PUT request to baseURL+route.
func (c *Client) Put(ctx context.Context, route string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPut, route, opts...)
}

// Patch issues a PATCH request to baseURL+route.
func (c *Client) Patch(ctx context.Context, route string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, route, opts...)
}

// Head issues a HEAD request to baseURL+route.
func (c *Client) Head(ctx context.Context, route string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodHead, route, opts...)
}

// Delete issues a DELETE request to baseURL+route.
func (c *Client) Delete(ctx context.Context, route string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, route, opts...)
}

// Do executes a single request against baseURL+route.
//
// On a 401 response, if a RefreshFunc is configured and no refresh is already
// in flight, the callback is invoked once and the identical request is
// re-issued exactly once; the retried call's outcome is returned. In every
// other case the response is passed through the client's error policy.
func (c *Client) Do(ctx context.Context, method, route string, opts ...RequestOption) (*Response, error) {
	options := defaultRequestOptions()
	for _, opt := range opts {
		opt.applyRequest(&options)
	}

	// The target URL is the plain concatenation of base URL and route; it is
	// only rewritten when the caller asked for param expansion or extra query
	// values.
	target, err := expandRoute(c.baseURL+route, options.Params, options.Query)
	if err != nil {
		return nil, err
	}

	requestHeaders := c.mergedHeaders(options.Header)

	body, err := encodeBody(options.RequestBody, requestHeaders)
	if err != nil {
		return nil, err
	}

	request, err := httpclient.NewRequest(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	request.Header = requestHeaders

	// If the user does not provide a User-Agent we set a default.
	if request.Header.Get("User-Agent") == "" {
		request.Header.Set("User-Agent", "restclient-go/"+internal.Version)
	}

	ctx2, span := newSpan(request)
	defer span.End()

	request = request.WithContext(ctx2)
	response, err := c.requester.Do(request)
	recordResponseAttributes(span, response, err)

	if err != nil {
		return nil, err
	}

	defer response.Body.Close()

	b, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	r := Response{
		Body:       b,
		StatusCode: response.StatusCode,
		Header:     response.Header,
	}

	if r.StatusCode == http.StatusUnauthorized && c.onRefresh != nil && c.refreshing.CompareAndSwap(false, true) {
		return c.refreshAndRetry(ctx, method, route, opts)
	}

	return &r, c.errorPolicy(&r)
}

// refreshAndRetry runs the refresh callback and re-issues the original
// request. The caller must have won the CompareAndSwap on c.refreshing; the
// flag is cleared only after the retried request settles, so any 401 received
// meanwhile (including one from the retry itself) is not refreshed again.
func (c *Client) refreshAndRetry(ctx context.Context, method, route string, opts []RequestOption) (*Response, error) {
	defer c.refreshing.Store(false)

	telemetry.Incr(ctx, "restclient.auth.refresh.count", telemetry.Tags("method", strings.ToLower(method)))
	log.Debug(ctx, "unauthorized response, refreshing credentials", log.String("method", method), log.String("route", route))

	if err := c.onRefresh(ctx, c, c.RefreshToken()); err != nil {
		// The retry still runs: a failed refresh only means it carries the
		// credentials that were already in place.
		log.Debug(ctx, "credentials refresh failed", log.Err(err))
	}

	return c.Do(ctx, method, route, opts...)
}

// mergedHeaders snapshots the client default headers and overlays the per-call
// ones on top, the latter winning on key collision. Neither input is mutated.
func (c *Client) mergedHeaders(overlay http.Header) http.Header {
	c.mu.RLock()
	defer c.mu.RUnlock()

	h := make(http.Header, len(c.defaultHeaders)+len(overlay))
	copyHeader(h, c.defaultHeaders)
	copyHeader(h, overlay)
	return h
}

// encodeBody prepares the request payload. Readers and raw byte slices pass
// through untouched; anything else is marshaled to JSON and, when the caller
// did not specify a Content-Type, the application/json one is set.
func encodeBody(body any, headers http.Header) (any, error) {
	switch t := body.(type) {
	case nil, io.Reader, []byte:
		return t, nil

	default:
		content, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}

		if headers.Get("Content-Type") == "" {
			headers.Set("Content-Type", "application/json")
		}

		return content, nil
	}
}

func copyHeader(dst, src http.Header) {
	for k := range src {
		dst.Set(k, src.Get(k))
	}
}
