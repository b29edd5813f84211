package rest

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.7.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/luizaranda/go-restclient/pkg/internal"
)

const (
	_instrumentationName = "github.com/luizaranda/go-restclient/pkg/rest"
	_restSpanName        = "RestClient"
)

func newSpan(req *http.Request) (context.Context, trace.Span) {
	tracer := otel.Tracer(_instrumentationName, trace.WithInstrumentationVersion(internal.Version))

	ctx, span := tracer.Start(req.Context(), spanName(req.Method))
	span.SetAttributes(semconv.HTTPClientAttributesFromHTTPRequest(req)...)

	return ctx, span
}

func recordResponseAttributes(span trace.Span, res *http.Response, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetAttributes(semconv.HTTPAttributesFromHTTPStatusCode(res.StatusCode)...)
	span.SetStatus(semconv.SpanStatusFromHTTPStatusCode(res.StatusCode))
}

func spanName(method string) string {
	return fmt.Sprintf("%s %s", _restSpanName, method)
}
