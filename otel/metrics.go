package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/petal-labs/flowport/convert"
)

// MetricsHandler translates conversion events into OpenTelemetry
// metrics: counters for conversions, failures, and repairs, plus
// duration histograms per conversion and per stage.
type MetricsHandler struct {
	conversions        metric.Int64Counter
	failures           metric.Int64Counter
	repairs            metric.Int64Counter
	conversionDuration metric.Float64Histogram
	stageDuration      metric.Float64Histogram
}

// NewMetricsHandler creates a MetricsHandler that uses the given meter
// to create instruments for recording conversion metrics.
func NewMetricsHandler(meter metric.Meter) (*MetricsHandler, error) {
	conversions, err := meter.Int64Counter("flowport.conversions",
		metric.WithDescription("Number of completed conversions"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("flowport.conversion.failures",
		metric.WithDescription("Number of failed conversions"),
	)
	if err != nil {
		return nil, err
	}

	repairs, err := meter.Int64Counter("flowport.conversion.repairs",
		metric.WithDescription("Number of repair passes attempted"),
	)
	if err != nil {
		return nil, err
	}

	convDur, err := meter.Float64Histogram("flowport.conversion.duration",
		metric.WithDescription("Duration of a full conversion in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	stageDur, err := meter.Float64Histogram("flowport.stage.duration",
		metric.WithDescription("Duration of a pipeline stage in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &MetricsHandler{
		conversions:        conversions,
		failures:           failures,
		repairs:            repairs,
		conversionDuration: convDur,
		stageDuration:      stageDur,
	}, nil
}

// Handle processes a conversion event and records the appropriate
// metrics. It implements convert.EventHandler semantics.
func (h *MetricsHandler) Handle(e convert.Event) {
	ctx := context.Background()
	switch e.Kind {
	case convert.EventStageFinished:
		h.stageDuration.Record(ctx, e.Elapsed.Seconds(), metric.WithAttributes(
			attribute.String("stage", string(e.Stage)),
		))
	case convert.EventRepairAttempted:
		h.repairs.Add(ctx, 1)
	case convert.EventConversionFinished:
		h.conversions.Add(ctx, 1)
		h.conversionDuration.Record(ctx, e.Elapsed.Seconds())
	case convert.EventConversionFailed:
		h.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stage", string(e.Stage)),
		))
	}
}
