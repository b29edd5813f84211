package transport

import (
	"bufio"
	"bytes"
	"net/http"
	"net/http/httputil"
	"strings"
)

// A Cache interface is used by the Transport to store and retrieve responses.
type Cache interface {
	// Get returns the []byte representation of a cached response and a bool
	// set to true if the value isn't empty.
	Get(key string) (responseBytes []byte, ok bool)
	// Set stores the []byte representation of a response against a key.
	Set(key string, responseBytes []byte)
	// Delete removes the value associated with the key.
	Delete(key string)
}

// CacheDecorator returns a RoundTripDecorator that provides caching
// capabilities to the given http.RoundTripper by serving repeated GET requests
// from the cache where possible, avoiding the HTTP request entirely.
func CacheDecorator(cache Cache) RoundTripDecorator {
	return func(base http.RoundTripper) http.RoundTripper {
		return &CacheRoundTripper{
			Transport: base,
			Cache:     cache,
		}
	}
}

// CacheRoundTripper serves GET responses from a Cache, storing successful
// responses in their wire format and replaying them on subsequent requests for
// the same URL. Responses carrying Cache-Control: no-store are never cached.
//
// Entry expiration is a responsibility of the Cache implementation.
type CacheRoundTripper struct {
	Transport http.RoundTripper
	Cache     Cache
}

// RoundTrip executes a single HTTP transaction, consulting the cache first for
// GET requests.
func (t *CacheRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.Transport.RoundTrip(req)
	}

	key := cacheKey(req)

	if b, ok := t.Cache.Get(key); ok {
		res, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(b)), req)
		if err == nil {
			return res, nil
		}
		// A corrupt entry is dropped and the request goes to the network.
		t.Cache.Delete(key)
	}

	res, err := t.Transport.RoundTrip(req)
	if err != nil {
		return res, err
	}

	if res.StatusCode == http.StatusOK && cacheable(res) {
		if dump, dumpErr := httputil.DumpResponse(res, true); dumpErr == nil {
			t.Cache.Set(key, dump)
		}
	}

	return res, nil
}

func cacheKey(req *http.Request) string {
	return req.Method + " " + req.URL.String()
}

func cacheable(res *http.Response) bool {
	cc := strings.ToLower(res.Header.Get("Cache-Control"))
	return !strings.Contains(cc, "no-store")
}
