package telemetry

import "context"

type metricCtxKeyType struct{}

var metricCtxKey metricCtxKeyType

// Context returns a new context with the given telemetry client attached to
// it. Metrics recorded through the package-level helpers will use it.
func Context(ctx context.Context, c Client) context.Context {
	return context.WithValue(ctx, metricCtxKey, c)
}

// FromContext returns the telemetry client attached to the given context, or
// DefaultTracer if the context carries none.
func FromContext(ctx context.Context) Client {
	if c, ok := ctx.Value(metricCtxKey).(Client); ok {
		return c
	}

	return DefaultTracer
}
