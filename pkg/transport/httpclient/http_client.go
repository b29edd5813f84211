package httpclient

import (
	"net/http"
	"time"

	"github.com/luizaranda/go-restclient/pkg/transport"
)

var (
	_defaultTransport = transport.NewPooled("restclient-default")
)

// DefaultTransport returns the default transport used by New if none is given.
//
// It may be used freely outside this package.
func DefaultTransport() *transport.PooledTransport {
	return _defaultTransport
}

// Requester exposes the http.Client.Do method, which is the minimum
// required method for executing HTTP requests.
type Requester interface {
	Do(*http.Request) (*http.Response, error)
}

// CheckRedirectFunc is the signature of the http.Client.CheckRedirect field.
type CheckRedirectFunc func(req *http.Request, via []*http.Request) error

// NoRedirect is a CheckRedirectFunc that stops the client from following any
// redirect, returning the redirect response itself to the caller.
func NoRedirect(_ *http.Request, _ []*http.Request) error {
	return http.ErrUseLastResponse
}

type clientOptions struct {
	Timeout       time.Duration
	CheckRedirect CheckRedirectFunc
	Transport     *transport.PooledTransport
	ReqHooks      []transport.RequestHook
	ResHooks      []transport.ResponseHook
	Cache         transport.Cache
	EnableMetrics bool
	EnableNR      bool
}

// Option signature for client configurable parameters.
type Option func(opts *clientOptions)

// WithTransport controls the base HTTP transport to use for executing the HTTP
// requests.
//
// We force the usage of a PooledTransport so that applications can track
// connection pools. You can easily transform an *http.Transport into a
// *transport.PooledTransport by using transport.NewPooledFromTransport.
func WithTransport(t *transport.PooledTransport) Option {
	return func(options *clientOptions) {
		options.Transport = t
	}
}

// DisableTimeout disables the timeout for outgoing requests.
//
// Requests may still time out if the client needs to establish a new TCP conn
// as the underlying http.Transport timeouts will still be in effect.
func DisableTimeout() Option { return WithTimeout(0) }

// WithTimeout controls the timeout for each request.
//
// A timeout of 0 disables request timeouts.
func WithTimeout(t time.Duration) Option {
	return func(options *clientOptions) {
		// Negative durations do not make sense for a Requester.
		if t >= 0 {
			options.Timeout = t
		}
	}
}

// FollowRedirects controls whether the client should follow HTTP redirects.
// The default policy is to not follow redirects. In case follow=true is
// given, then a max of 10 redirects will be followed.
func FollowRedirects(follow bool) Option {
	return func(options *clientOptions) {
		if follow {
			options.CheckRedirect = http.Client{}.CheckRedirect
		} else {
			options.CheckRedirect = NoRedirect
		}
	}
}

// WithRequestHook allows the user to add additional request hooks to be
// executed during an HTTP request.
func WithRequestHook(hooks ...transport.RequestHook) Option {
	return func(options *clientOptions) {
		options.ReqHooks = append(options.ReqHooks, hooks...)
	}
}

// WithResponseHook allows the user to add additional response hooks to be
// executed during an HTTP response.
func WithResponseHook(hooks ...transport.ResponseHook) Option {
	return func(options *clientOptions) {
		options.ResHooks = append(options.ResHooks, hooks...)
	}
}

// EnableCache enables HTTP response caching for the given httpclient. It uses
// the global DefaultCache as the backing store.
//
// Cache storage can be customized by using the WithCache option. If
// EnableCache is called after WithCache then it doesn't overwrite the storage.
func EnableCache() Option {
	return func(options *clientOptions) {
		if options.Cache == nil {
			options.Cache = DefaultCache
		}
	}
}

// WithCache allows the user to set the storage used for caching HTTP
// responses.
//
// If given nil then caching is disabled.
func WithCache(cache transport.Cache) Option {
	return func(options *clientOptions) {
		options.Cache = cache
	}
}

// EnableMetrics records a statsd timing metric per executed request through
// the telemetry client carried by the request context.
func EnableMetrics() Option {
	return func(options *clientOptions) {
		options.EnableMetrics = true
	}
}

// EnableNewRelic records each request as a NewRelic external segment when the
// request context carries a NewRelic transaction.
func EnableNewRelic() Option {
	return func(options *clientOptions) {
		options.EnableNR = true
	}
}

var (
	// DefaultTimeout is the timeout used by default when building a Client.
	DefaultTimeout = 3 * time.Second

	// DefaultCheckRedirect is the redirect strategy used by default when
	// building a Client.
	// Default is to not follow HTTP redirects.
	DefaultCheckRedirect = CheckRedirectFunc(NoRedirect)
)

// New builds a *http.Client which keeps TCP connections to destination
// servers, stamps requests with a request id, and can optionally cache
// responses and record telemetry on all executed requests.
//
// The returned client can be customized by passing options to New.
func New(opts ...Option) *http.Client {
	config := clientOptions{
		Timeout:       DefaultTimeout,
		CheckRedirect: DefaultCheckRedirect,
		ReqHooks:      []transport.RequestHook{RequestIDHook},
		Transport:     DefaultTransport(),
	}

	for _, opt := range opts {
		opt(&config)
	}

	return &http.Client{
		Timeout:       config.Timeout,
		CheckRedirect: config.CheckRedirect,
		Transport:     roundTripper(&config),
	}
}

func roundTripper(config *clientOptions) http.RoundTripper {
	chain := transport.RoundTripChain{transport.UserAgentDecorator()}

	if config.Cache != nil {
		chain = append(chain, transport.CacheDecorator(config.Cache))
	}

	chain = append(chain, transport.HookDecorator(config.ReqHooks, config.ResHooks))

	if config.EnableMetrics {
		chain = append(chain, transport.MetricsDecorator())
	}

	if config.EnableNR {
		chain = append(chain, transport.NewRelicDecorator())
	}

	// OpenTelemetryDecorator must be innermost so its span covers only the
	// network call and context injection happens after every header mutation.
	chain = append(chain, transport.OpenTelemetryDecorator())

	return chain.Apply(config.Transport)
}
