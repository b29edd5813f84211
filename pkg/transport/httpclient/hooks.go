package httpclient

import (
	"net/http"

	"github.com/gofrs/uuid"
)

const _requestIDHeader = "X-Request-Id"

// RequestIDHook stamps the outgoing request with a random X-Request-Id header
// when the caller did not provide one, so that individual calls can be
// correlated across client and server logs.
func RequestIDHook(req *http.Request) error {
	if req.Header.Get(_requestIDHeader) != "" {
		return nil
	}

	id, err := uuid.NewV4()
	if err != nil {
		// Lack of entropy should not abort the request.
		return nil
	}

	req.Header.Set(_requestIDHeader, id.String())
	return nil
}
