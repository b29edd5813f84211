/*
Package rest implements a thin, authenticated REST client on top of any HTTP
Requester (usually one built with the [transport/httpclient] package, but a
plain *http.Client or a test double work just as well).

A Client prefixes every route with its base URL, merges per-call headers on top
of its default headers, JSON-encodes request bodies and, when configured with a
RefreshFunc, transparently refreshes credentials and retries once on a 401
response. Generic helpers (Do, Get, Parsed, ...) decode response bodies into
caller-declared types.

	client, err := rest.New(nil, "https://api.example.com",
		rest.WithHeader("Accept", "application/json"),
		rest.WithRefreshFunc(refresh),
	)
	if err != nil {
		// ...
	}
	client.SetAuthorization(accessToken, rest.WithRefreshToken(refreshToken))

	user, err := rest.Get[User](ctx, client, "/users/{id}", rest.WithParam("id", 42))

The refresh cycle is single-flight per Client: concurrent calls that observe a
401 while a refresh is already running do not trigger a second refresh, they
surface the HTTP error instead.
*/
package rest
