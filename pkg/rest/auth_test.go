package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestSetAuthorization_BearerScheme(t *testing.T) {
	var got string
	requester := requesterFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Get("Authorization")
		return stubResponse(http.StatusOK, ""), nil
	})

	c, err := New(requester, "http://api.internal")
	if err != nil {
		t.Fatal(err)
	}

	c.SetAuthorization("abc123")
	if _, err := c.Get(context.Background(), "/me"); err != nil {
		t.Fatal(err)
	}

	if got != "Bearer abc123" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer abc123")
	}
}

func TestSetAuthorization_WithoutBearerScheme(t *testing.T) {
	var got string
	requester := requesterFunc(func(req *http.Request) (*http.Response, error) {
		got = req.Header.Get("Authorization")
		return stubResponse(http.StatusOK, ""), nil
	})

	c, err := New(requester, "http://api.internal")
	if err != nil {
		t.Fatal(err)
	}

	c.SetAuthorization("raw-key", WithoutBearerScheme())
	if _, err := c.Get(context.Background(), "/me"); err != nil {
		t.Fatal(err)
	}

	if got != "raw-key" {
		t.Errorf("Authorization = %q, want %q", got, "raw-key")
	}
}

func TestSetAuthorization_RefreshTokenLifecycle(t *testing.T) {
	c, err := New(requesterFunc(nil), "http://api.internal")
	if err != nil {
		t.Fatal(err)
	}

	c.SetAuthorization("token", WithRefreshToken("refresh-1"))
	if got := c.RefreshToken(); got != "refresh-1" {
		t.Errorf("RefreshToken() = %q, want refresh-1", got)
	}

	// A call without WithRefreshToken clears the stored one.
	c.SetAuthorization("token-2")
	if got := c.RefreshToken(); got != "" {
		t.Errorf("RefreshToken() = %q, want empty after replacement", got)
	}
}

// tokenServer accepts only the token it currently holds, answering 401 to
// anything else. Swapping the token simulates server-side expiry.
type tokenServer struct {
	token atomic.Value
	hits  atomic.Int64
}

func newTokenServer(valid string) *tokenServer {
	s := &tokenServer{}
	s.token.Store(valid)
	return s
}

func (s *tokenServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.hits.Add(1)

	if r.Header.Get("Authorization") != "Bearer "+s.token.Load().(string) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if r.Body != nil {
		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			_, _ = w.Write(b)
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}

func TestRefresh_CallbackOnceRetryOnce(t *testing.T) {
	api := newTokenServer("fresh")
	srv := httptest.NewServer(api)
	defer srv.Close()

	var calls atomic.Int64
	refresh := func(ctx context.Context, c *Client, refreshToken string) error {
		calls.Add(1)
		if refreshToken != "rt-1" {
			t.Errorf("refreshToken = %q, want rt-1", refreshToken)
		}
		c.SetAuthorization("fresh", WithRefreshToken("rt-2"))
		return nil
	}

	c, err := New(nil, srv.URL, WithRefreshFunc(refresh))
	if err != nil {
		t.Fatal(err)
	}
	c.SetAuthorization("stale", WithRefreshToken("rt-1"))

	res, err := c.Get(context.Background(), "/me")
	if err != nil {
		t.Fatalf("error = %v, want transparent recovery", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("refresh callback ran %d times, want 1", got)
	}
	if got := api.hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2 (original plus retry)", got)
	}
}

func TestRefresh_SecondUnauthorizedIsNotRetried(t *testing.T) {
	api := newTokenServer("unreachable")
	srv := httptest.NewServer(api)
	defer srv.Close()

	var calls atomic.Int64
	refresh := func(ctx context.Context, c *Client, refreshToken string) error {
		calls.Add(1)
		c.SetAuthorization("still-stale")
		return nil
	}

	c, err := New(nil, srv.URL, WithRefreshFunc(refresh))
	if err != nil {
		t.Fatal(err)
	}
	c.SetAuthorization("stale")

	_, err = c.Get(context.Background(), "/me")
	if err == nil {
		t.Fatal("expected an error when the retry is also unauthorized")
	}
	var restErr *Error
	if !errors.As(err, &restErr) || restErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("error = %v, want a 401 rest error", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("refresh callback ran %d times, want exactly 1", got)
	}
	if got := api.hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}
}

func TestRefresh_NoCallbackConfigured(t *testing.T) {
	api := newTokenServer("other")
	srv := httptest.NewServer(api)
	defer srv.Close()

	c, err := New(nil, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	c.SetAuthorization("stale")

	_, err = c.Get(context.Background(), "/me")
	if err == nil {
		t.Fatal("expected a 401 error without a refresh callback")
	}
	if got := api.hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1 (no retry)", got)
	}
}

func TestRefresh_CallbackErrorStillRetries(t *testing.T) {
	api := newTokenServer("fresh")
	srv := httptest.NewServer(api)
	defer srv.Close()

	refresh := func(ctx context.Context, c *Client, refreshToken string) error {
		// Credentials get installed even though the callback reports failure;
		// the retry must carry them regardless.
		c.SetAuthorization("fresh")
		return errors.New("token endpoint flaked")
	}

	c, err := New(nil, srv.URL, WithRefreshFunc(refresh))
	if err != nil {
		t.Fatal(err)
	}
	c.SetAuthorization("stale")

	res, err := c.Get(context.Background(), "/me")
	if err != nil {
		t.Fatalf("error = %v, want retry despite callback failure", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", res.StatusCode)
	}
}

func TestRefresh_InFlightRefreshIsNotDuplicated(t *testing.T) {
	api := newTokenServer("other")
	srv := httptest.NewServer(api)
	defer srv.Close()

	var calls atomic.Int64
	refresh := func(ctx context.Context, c *Client, refreshToken string) error {
		calls.Add(1)
		return nil
	}

	c, err := New(nil, srv.URL, WithRefreshFunc(refresh))
	if err != nil {
		t.Fatal(err)
	}
	c.SetAuthorization("stale")

	// Simulate a refresh already running on another goroutine.
	c.refreshing.Store(true)

	_, err = c.Get(context.Background(), "/me")
	if err == nil {
		t.Fatal("expected the 401 to surface while a refresh is in flight")
	}
	if got := calls.Load(); got != 0 {
		t.Errorf("refresh callback ran %d times, want 0", got)
	}
	if got := api.hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestRefresh_FlagClearsAfterCycle(t *testing.T) {
	api := newTokenServer("fresh")
	srv := httptest.NewServer(api)
	defer srv.Close()

	var calls atomic.Int64
	refresh := func(ctx context.Context, c *Client, refreshToken string) error {
		calls.Add(1)
		c.SetAuthorization("fresh")
		return nil
	}

	c, err := New(nil, srv.URL, WithRefreshFunc(refresh))
	if err != nil {
		t.Fatal(err)
	}
	c.SetAuthorization("stale")

	if _, err := c.Get(context.Background(), "/me"); err != nil {
		t.Fatal(err)
	}

	// Expire the token server-side: a later 401 must trigger a new cycle.
	api.token.Store("fresher")
	c.onRefresh = func(ctx context.Context, c *Client, refreshToken string) error {
		calls.Add(1)
		c.SetAuthorization("fresher")
		return nil
	}

	if _, err := c.Get(context.Background(), "/me"); err != nil {
		t.Fatal(err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("refresh callback ran %d times across two expiries, want 2", got)
	}
}

func TestRefresh_BodyIsReplayedOnRetry(t *testing.T) {
	api := newTokenServer("fresh")
	srv := httptest.NewServer(api)
	defer srv.Close()

	refresh := func(ctx context.Context, c *Client, refreshToken string) error {
		c.SetAuthorization("fresh")
		return nil
	}

	c, err := New(nil, srv.URL, WithRefreshFunc(refresh))
	if err != nil {
		t.Fatal(err)
	}
	c.SetAuthorization("stale")

	res, err := c.Post(context.Background(), "/echo", WithBody(map[string]string{"k": "v"}))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"k":"v"}`; string(res.Body) != want {
		t.Errorf("echoed body = %q, want %q (payload must survive the retry)", res.Body, want)
	}
}
