package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string][]byte)}
}

func (c *mapCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	return b, ok
}

func (c *mapCache) Set(key string, responseBytes []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = responseBytes
}

func (c *mapCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *mapCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func newCachedClient(cache Cache) *http.Client {
	rt := CacheDecorator(cache)(http.DefaultTransport)
	return &http.Client{Transport: rt}
}

func TestCacheRoundTripper_ServesRepeatedGetsFromCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	client := newCachedClient(newMapCache())

	for i := 0; i < 3; i++ {
		res, err := client.Get(srv.URL + "/resource")
		if err != nil {
			t.Fatal(err)
		}
		b, _ := io.ReadAll(res.Body)
		res.Body.Close()
		if string(b) != "payload" {
			t.Fatalf("body = %q on request %d, want payload", b, i)
		}
	}

	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (cache must serve the rest)", hits)
	}
}

func TestCacheRoundTripper_OnlyGetIsCached(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	cache := newMapCache()
	client := newCachedClient(cache)

	for i := 0; i < 2; i++ {
		res, err := client.Post(srv.URL+"/resource", "text/plain", nil)
		if err != nil {
			t.Fatal(err)
		}
		res.Body.Close()
	}

	if hits != 2 {
		t.Errorf("server hits = %d, want 2 (POST bypasses the cache)", hits)
	}
	if cache.len() != 0 {
		t.Errorf("cache entries = %d, want 0", cache.len())
	}
}

func TestCacheRoundTripper_NoStoreIsNotCached(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	client := newCachedClient(newMapCache())

	for i := 0; i < 2; i++ {
		res, err := client.Get(srv.URL + "/volatile")
		if err != nil {
			t.Fatal(err)
		}
		res.Body.Close()
	}

	if hits != 2 {
		t.Errorf("server hits = %d, want 2 (no-store must not be cached)", hits)
	}
}

func TestCacheRoundTripper_CorruptEntryFallsBackToNetwork(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	cache := newMapCache()
	cache.Set("GET "+srv.URL+"/resource", []byte("garbage, not a wire response"))

	client := newCachedClient(cache)

	res, err := client.Get(srv.URL + "/resource")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(res.Body)
	res.Body.Close()

	if string(b) != "recovered" {
		t.Errorf("body = %q, want recovered", b)
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}
}
