package main

import (
	"context"
	"encoding/json"
	stdlog "log"
	"net/http"
	"net/http/httptest"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/luizaranda/go-restclient/pkg/log"
	"github.com/luizaranda/go-restclient/pkg/rest"
)

/*
* Example that exercises the client against a token-protected API,
* including the automatic credential refresh on 401 responses.
 */
func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	lvl := log.NewAtomicLevelAt(log.DebugLevel)
	logger := log.NewProductionLogger(&lvl)

	srv := httptest.NewServer(newTokenAPI())
	defer srv.Close()

	ctx := log.Context(context.Background(), logger)

	refresh := func(ctx context.Context, c *rest.Client, refreshToken string) error {
		type tokens struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		}

		t, err := rest.Post[tokens](ctx, c, "/auth/refresh",
			rest.WithBody(map[string]string{"refresh_token": refreshToken}))
		if err != nil {
			return err
		}

		c.SetAuthorization(t.AccessToken, rest.WithRefreshToken(t.RefreshToken))
		return nil
	}

	client, err := rest.New(nil, srv.URL, rest.WithRefreshFunc(refresh))
	if err != nil {
		return err
	}

	client.SetAuthorization("stale-token")

	// The stale token triggers a 401, a refresh and a transparent retry.
	profile, err := rest.Get[map[string]any](ctx, client, "/users/me")
	if err != nil {
		return err
	}

	log.Info(ctx, "fetched profile", log.Any("profile", profile))

	up, err := rest.Parsed(ctx, client, http.MethodGet, "/health",
		func(body string) (bool, error) { return body == "Up", nil })
	if err != nil {
		return err
	}

	log.Info(ctx, "health checked", log.Bool("up", up))
	return nil
}

// newTokenAPI builds a small API that accepts a single rotating bearer
// token, rejecting requests with anything else.
func newTokenAPI() http.Handler {
	var current atomic.Value
	current.Store("fresh-token")

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Post("/auth/refresh", func(w http.ResponseWriter, req *http.Request) {
		current.Store("fresh-token")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"access_token":  "fresh-token",
			"refresh_token": "rotated-refresh",
		})
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte("Up"))
	})

	r.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				if req.Header.Get("Authorization") != "Bearer "+current.Load().(string) {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				next.ServeHTTP(w, req)
			})
		})

		r.Get("/users/me", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "42", "name": "ada"})
		})
	})

	return r
}
