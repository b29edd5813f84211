package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGet_DecodesJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":42,"name":"ada"}`))
	}))
	defer srv.Close()

	c, err := New(nil, srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	type user struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	got, err := Get[user](context.Background(), c, "/users/42")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != 42 || got.Name != "ada" {
		t.Errorf("decoded user = %+v, want {42 ada}", got)
	}
}

func TestDo_ErrorSkipsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("server exploded"))
	}))
	defer srv.Close()

	c, err := New(nil, srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Get[map[string]string](context.Background(), c, "/boom")
	if err == nil {
		t.Fatal("expected the 500 to surface as an error")
	}
	if err.Error() != "server exploded" {
		t.Errorf("error message = %q, want %q", err.Error(), "server exploded")
	}
	if got != nil {
		t.Errorf("decoded value = %v, want zero value alongside the error", got)
	}
}

func TestParsed_PlainTextHealthCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Up"))
	}))
	defer srv.Close()

	c, err := New(nil, srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	up, err := Parsed(context.Background(), c, http.MethodGet, "/health",
		func(body string) (bool, error) { return body == "Up", nil })
	if err != nil {
		t.Fatal(err)
	}
	if !up {
		t.Error("health parser = false, want true for body \"Up\"")
	}
}

func TestDecodeBody_EmptyBodyYieldsZeroValue(t *testing.T) {
	type user struct {
		Name string `json:"name"`
	}

	got, err := DecodeBody[user](&Response{StatusCode: http.StatusNoContent})
	if err != nil {
		t.Fatal(err)
	}
	if got != (user{}) {
		t.Errorf("decoded value = %+v, want zero value for an empty body", got)
	}
}

func TestDecodeBody_RawTextFallback(t *testing.T) {
	res := &Response{Body: []byte("pong"), StatusCode: http.StatusOK}

	s, err := DecodeBody[string](res)
	if err != nil {
		t.Fatal(err)
	}
	if s != "pong" {
		t.Errorf("DecodeBody[string] = %q, want pong", s)
	}

	v, err := DecodeBody[any](res)
	if err != nil {
		t.Fatal(err)
	}
	if v != "pong" {
		t.Errorf("DecodeBody[any] = %v, want pong", v)
	}
}

func TestDecodeBody_TypeMismatchReturnsError(t *testing.T) {
	type user struct {
		Name string `json:"name"`
	}

	if _, err := DecodeBody[user](&Response{Body: []byte("not json")}); err == nil {
		t.Error("expected a decode error for a non-JSON body and a struct target")
	}
}

func TestDecodeBody_QuotedJSONStringIsNotFallback(t *testing.T) {
	// A valid JSON string decodes through the unmarshaler, not the fallback.
	s, err := DecodeBody[string](&Response{Body: []byte(`"quoted"`)})
	if err != nil {
		t.Fatal(err)
	}
	if s != "quoted" {
		t.Errorf("DecodeBody[string] = %q, want quoted", s)
	}
}
