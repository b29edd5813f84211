package rest

import (
	"fmt"
	"net/http"
	"strings"
)

// Error represents an application error from the API server.
// It is returned by the DefaultErrorPolicy policy.
type Error struct {
	// Response is the server response that caused this error. It is always non-nil.
	*Response
}

// Error implements the error interface. The message is the raw response body
// text; when the body is empty it degrades to the status code and its
// canonical reason.
func (e *Error) Error() string {
	if len(e.Body) == 0 {
		code := strings.ReplaceAll(strings.ToLower(http.StatusText(e.StatusCode)), " ", "_")
		return fmt.Sprintf("%d %s", e.StatusCode, code)
	}

	return string(e.Body)
}
