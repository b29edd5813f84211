package transport

import (
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewRelicDecorator returns a decorator that records each request as a
// NewRelic external segment when the request context carries a NewRelic
// transaction. Requests without a transaction pass through untouched.
func NewRelicDecorator() RoundTripDecorator {
	return func(base http.RoundTripper) http.RoundTripper {
		return newrelic.NewRoundTripper(base)
	}
}
