package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewFromConfig_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing base URL", cfg: Config{}},
		{name: "invalid base URL", cfg: Config{BaseURL: "not a url"}},
		{name: "negative timeout", cfg: Config{BaseURL: "http://api.internal", Timeout: -time.Second}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewFromConfig(tc.cfg); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestNewFromConfig_InstallsDefaultHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	c, err := NewFromConfig(Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Env": "staging"},
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Get(context.Background(), "/ping"); err != nil {
		t.Fatal(err)
	}

	if v := got.Get("X-Env"); v != "staging" {
		t.Errorf("X-Env = %q, want staging", v)
	}
}
