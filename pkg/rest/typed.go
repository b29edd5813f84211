package rest

import (
	"context"
	"encoding/json"
	"net/http"
)

// Do executes a request and decodes the JSON response body into T.
//
// Decoding follows DecodeBody semantics, including the raw-text fallback for
// non-JSON bodies. Errors from the client (transport errors, error-policy
// failures) are returned before any decoding takes place.
func Do[T any](ctx context.Context, c *Client, method, route string, opts ...RequestOption) (T, error) {
	res, err := c.Do(ctx, method, route, opts...)
	if err != nil {
		var zero T
		return zero, err
	}

	return DecodeBody[T](res)
}

// Parsed executes a request, decodes the JSON response body into T and maps it
// to R through the given parse function. It is the typed equivalent of passing
// a response parser alongside the call.
func Parsed[T, R any](ctx context.Context, c *Client, method, route string, parse func(T) (R, error), opts ...RequestOption) (R, error) {
	v, err := Do[T](ctx, c, method, route, opts...)
	if err != nil {
		var zero R
		return zero, err
	}

	return parse(v)
}

// Get executes a GET request and decodes the response into T.
func Get[T any](ctx context.Context, c *Client, route string, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, http.MethodGet, route, opts...)
}

// Post executes a POST request and decodes the response into T. The body, if
// any, is given through WithBody.
func Post[T any](ctx context.Context, c *Client, route string, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, http.MethodPost, route, opts...)
}

// Put executes a PUT request and decodes the response into T.
func Put[T any](ctx context.Context, c *Client, route string, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, http.MethodPut, route, opts...)
}

// Patch executes a PATCH request and decodes the response into T.
func Patch[T any](ctx context.Context, c *Client, route string, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, http.MethodPatch, route, opts...)
}

// Head executes a HEAD request and decodes the response into T.
func Head[T any](ctx context.Context, c *Client, route string, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, http.MethodHead, route, opts...)
}

// Delete executes a DELETE request and decodes the response into T.
func Delete[T any](ctx context.Context, c *Client, route string, opts ...RequestOption) (T, error) {
	return Do[T](ctx, c, http.MethodDelete, route, opts...)
}

// DecodeBody unmarshals the response body into T. An empty body yields the
// zero value of T.
//
// A body that is not valid JSON is not an error by itself: when T is string
// (or any) the raw body text is returned instead, so plain-text endpoints
// (health checks and the like) keep working. For any other T the decode error
// is returned, making the type mismatch explicit.
func DecodeBody[T any](res *Response) (T, error) {
	var v T
	if res == nil || len(res.Body) == 0 {
		return v, nil
	}

	if err := json.Unmarshal(res.Body, &v); err != nil {
		if raw, ok := any(string(res.Body)).(T); ok {
			return raw, nil
		}
		return v, err
	}

	return v, nil
}
