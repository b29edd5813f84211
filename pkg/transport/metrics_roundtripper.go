package transport

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/luizaranda/go-restclient/pkg/telemetry"
)

const (
	_httpRequestTimingMetric = "restclient.request.time"
)

// MetricsDecorator returns a RoundTripDecorator that records a timing metric
// for every executed request through the telemetry client carried by the
// request context.
func MetricsDecorator() RoundTripDecorator {
	return func(base http.RoundTripper) http.RoundTripper {
		return &MetricsRoundTripper{Transport: base}
	}
}

// MetricsRoundTripper records per-request timing metrics tagged with the
// request method and response status class. Transport failures are tagged as
// error (or timeout when the error is a timeout).
type MetricsRoundTripper struct {
	Transport http.RoundTripper
}

// RoundTrip executes a single HTTP transaction, returning
// a Response for the provided Request.
func (m *MetricsRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	res, err := m.Transport.RoundTrip(req)

	status, statusClass := "error", "error"
	if err == nil {
		status = strconv.Itoa(res.StatusCode)
		statusClass = strconv.Itoa(res.StatusCode/100) + "xx" // 2xx, 3xx, 4xx, 5xx, etc
	} else if os.IsTimeout(err) {
		status, statusClass = "timeout", "timeout"
	}

	telemetry.Timing(req.Context(), _httpRequestTimingMetric, time.Since(start), telemetry.Tags(
		"method", strings.ToLower(req.Method),
		"status", status,
		"status_class", statusClass,
	))

	return res, err
}
