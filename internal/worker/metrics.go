package worker

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

// metrics holds the worker's OpenTelemetry instruments. They are registered
// against the global meter provider, so they are no-ops unless the host
// process installs an SDK.
type metrics struct {
	requests     otelmetric.Int64Counter
	stylesScored otelmetric.Int64Counter
	selections   otelmetric.Int64Counter
}

func newMetrics() *metrics {
	meter := otel.Meter("brandmatch/worker")

	requests, _ := meter.Int64Counter(
		"recommendations.requests",
		otelmetric.WithDescription("Recommendation requests served"),
	)
	stylesScored, _ := meter.Int64Counter(
		"recommendations.styles_scored",
		otelmetric.WithDescription("Style references scored against brand profiles"),
	)
	selections, _ := meter.Int64Counter(
		"recommendations.selections",
		otelmetric.WithDescription("Style selections recorded"),
	)
	return &metrics{
		requests:     requests,
		stylesScored: stylesScored,
		selections:   selections,
	}
}

func (m *metrics) recordRequest(ctx context.Context, endpoint string) {
	if m.requests != nil {
		m.requests.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("endpoint", endpoint),
		))
	}
}

func (m *metrics) recordStylesScored(ctx context.Context, n int) {
	if m.stylesScored != nil {
		m.stylesScored.Add(ctx, int64(n))
	}
}

func (m *metrics) recordSelection(ctx context.Context, axis string) {
	if m.selections != nil {
		m.selections.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("style_axis", axis),
		))
	}
}
