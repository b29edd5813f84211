package telemetry

import (
	"context"
	"testing"
)

func TestFromContext_DefaultsToDefaultTracer(t *testing.T) {
	if got := FromContext(context.Background()); got != DefaultTracer {
		t.Errorf("FromContext = %v, want DefaultTracer", got)
	}
}

func TestContext_RoundTrip(t *testing.T) {
	c := NewNoOpClient()
	ctx := Context(context.Background(), c)

	if got := FromContext(ctx); got != c {
		t.Errorf("FromContext = %v, want the attached client", got)
	}
}
