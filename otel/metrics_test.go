package otel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/petal-labs/flowport/convert"
	flowotel "github.com/petal-labs/flowport/otel"
)

// newTestMeter returns a meter backed by a manual reader for collecting
// metrics in tests.
func newTestMeter() (*metric.ManualReader, *metric.MeterProvider) {
	reader := metric.NewManualReader()
	mp := metric.NewMeterProvider(metric.WithReader(reader))
	return reader, mp
}

func collectMetrics(t *testing.T, reader *metric.ManualReader) *metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("failed to collect metrics: %v", err)
	}
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, scope := range rm.ScopeMetrics {
		for i := range scope.Metrics {
			if scope.Metrics[i].Name == name {
				return &scope.Metrics[i]
			}
		}
	}
	return nil
}

func counterValue(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %s data = %T, want Sum[int64]", m.Name, m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetricsHandler_FinishedIncrementsCounter(t *testing.T) {
	reader, mp := newTestMeter()
	h, err := flowotel.NewMetricsHandler(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetricsHandler: %v", err)
	}

	finished := convert.NewEvent(convert.EventConversionFinished, "conv-1").
		WithElapsed(200 * time.Millisecond)
	h.Handle(finished)
	h.Handle(finished)

	rm := collectMetrics(t, reader)

	conv := findMetric(rm, "flowport.conversions")
	if conv == nil {
		t.Fatal("flowport.conversions not recorded")
	}
	if got := counterValue(t, conv); got != 2 {
		t.Errorf("conversions = %d, want 2", got)
	}

	dur := findMetric(rm, "flowport.conversion.duration")
	if dur == nil {
		t.Fatal("flowport.conversion.duration not recorded")
	}
	hist, ok := dur.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("duration data = %T, want Histogram[float64]", dur.Data)
	}
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	if count != 2 {
		t.Errorf("duration samples = %d, want 2", count)
	}
}

func TestMetricsHandler_FailureCounter(t *testing.T) {
	reader, mp := newTestMeter()
	h, err := flowotel.NewMetricsHandler(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetricsHandler: %v", err)
	}

	failed := convert.NewEvent(convert.EventConversionFailed, "conv-1").
		WithStage(convert.StageGraph)
	failed.Err = errors.New("boom")
	h.Handle(failed)

	rm := collectMetrics(t, reader)
	failures := findMetric(rm, "flowport.conversion.failures")
	if failures == nil {
		t.Fatal("flowport.conversion.failures not recorded")
	}
	if got := counterValue(t, failures); got != 1 {
		t.Errorf("failures = %d, want 1", got)
	}
	if findMetric(rm, "flowport.conversions") != nil {
		t.Error("a failed conversion should not count as completed")
	}
}

func TestMetricsHandler_StageDurations(t *testing.T) {
	reader, mp := newTestMeter()
	h, err := flowotel.NewMetricsHandler(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetricsHandler: %v", err)
	}

	for _, stage := range []convert.Stage{convert.StageLoad, convert.StageEmit} {
		h.Handle(convert.NewEvent(convert.EventStageFinished, "conv-1").
			WithStage(stage).
			WithElapsed(5 * time.Millisecond))
	}

	rm := collectMetrics(t, reader)
	stageDur := findMetric(rm, "flowport.stage.duration")
	if stageDur == nil {
		t.Fatal("flowport.stage.duration not recorded")
	}
	hist, ok := stageDur.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("stage duration data = %T, want Histogram[float64]", stageDur.Data)
	}
	// One datapoint per stage attribute.
	if len(hist.DataPoints) != 2 {
		t.Errorf("stage datapoints = %d, want 2", len(hist.DataPoints))
	}
}

func TestMetricsHandler_RepairCounter(t *testing.T) {
	reader, mp := newTestMeter()
	h, err := flowotel.NewMetricsHandler(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetricsHandler: %v", err)
	}

	h.Handle(convert.NewEvent(convert.EventRepairAttempted, "conv-1").
		WithStage(convert.StageValidate))

	rm := collectMetrics(t, reader)
	repairs := findMetric(rm, "flowport.conversion.repairs")
	if repairs == nil {
		t.Fatal("flowport.conversion.repairs not recorded")
	}
	if got := counterValue(t, repairs); got != 1 {
		t.Errorf("repairs = %d, want 1", got)
	}
}
