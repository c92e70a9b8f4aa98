// Package otel provides OpenTelemetry integration for flowport
// conversion events.
package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/flowport/convert"
)

// TracingHandler translates conversion events into OpenTelemetry spans:
// a root span per conversion with a child span per pipeline stage.
type TracingHandler struct {
	tracer trace.Tracer

	mu              sync.RWMutex
	conversionSpans map[string]trace.Span       // conversionID -> span
	conversionCtxs  map[string]context.Context  // conversionID -> context (for child spans)
}

// NewTracingHandler creates a TracingHandler that uses the given tracer
// to create spans from conversion events.
func NewTracingHandler(tracer trace.Tracer) *TracingHandler {
	return &TracingHandler{
		tracer:          tracer,
		conversionSpans: make(map[string]trace.Span),
		conversionCtxs:  make(map[string]context.Context),
	}
}

// Handle processes a conversion event and creates or ends spans
// accordingly. It implements convert.EventHandler semantics.
func (h *TracingHandler) Handle(e convert.Event) {
	switch e.Kind {
	case convert.EventConversionStarted:
		h.handleStarted(e)
	case convert.EventStageFinished:
		h.handleStageFinished(e)
	case convert.EventRepairAttempted:
		h.handleRepairAttempted(e)
	case convert.EventConversionFinished:
		h.handleFinished(e)
	case convert.EventConversionFailed:
		h.handleFailed(e)
	}
}

// handleStarted creates the root span for the conversion.
func (h *TracingHandler) handleStarted(e convert.Event) {
	spanName := "convert:" + e.Input
	if e.Input == "" {
		spanName = "convert:" + e.ConversionID
	}

	ctx, span := h.tracer.Start(context.Background(), spanName,
		trace.WithAttributes(
			attribute.String("flowport.conversion_id", e.ConversionID),
			attribute.String("flowport.input", e.Input),
		),
		trace.WithTimestamp(e.Time),
	)

	h.mu.Lock()
	h.conversionSpans[e.ConversionID] = span
	h.conversionCtxs[e.ConversionID] = ctx
	h.mu.Unlock()
}

// handleStageFinished records a completed stage as a child span. Stage
// events arrive once the stage is done, so the span is opened at the
// stage's start time and closed immediately.
func (h *TracingHandler) handleStageFinished(e convert.Event) {
	h.mu.RLock()
	parentCtx, ok := h.conversionCtxs[e.ConversionID]
	h.mu.RUnlock()

	if !ok {
		parentCtx = context.Background()
	}

	_, span := h.tracer.Start(parentCtx, "stage:"+string(e.Stage),
		trace.WithAttributes(
			attribute.String("flowport.conversion_id", e.ConversionID),
			attribute.String("flowport.stage", string(e.Stage)),
		),
		trace.WithTimestamp(e.Time.Add(-e.Elapsed)),
	)
	span.SetStatus(codes.Ok, "")
	span.End(trace.WithTimestamp(e.Time))
}

// handleRepairAttempted adds a span event on the root span.
func (h *TracingHandler) handleRepairAttempted(e convert.Event) {
	h.mu.RLock()
	span, ok := h.conversionSpans[e.ConversionID]
	h.mu.RUnlock()

	if !ok {
		return
	}
	span.AddEvent("repair_attempted", trace.WithTimestamp(e.Time))
}

// handleFinished ends the root span with success status.
func (h *TracingHandler) handleFinished(e convert.Event) {
	h.mu.Lock()
	span, ok := h.conversionSpans[e.ConversionID]
	if ok {
		delete(h.conversionSpans, e.ConversionID)
		delete(h.conversionCtxs, e.ConversionID)
	}
	h.mu.Unlock()

	if ok {
		span.SetAttributes(attribute.String("flowport.duration", e.Elapsed.String()))
		span.SetStatus(codes.Ok, "")
		span.End(trace.WithTimestamp(e.Time))
	}
}

// handleFailed ends the root span with error status.
func (h *TracingHandler) handleFailed(e convert.Event) {
	h.mu.Lock()
	span, ok := h.conversionSpans[e.ConversionID]
	if ok {
		delete(h.conversionSpans, e.ConversionID)
		delete(h.conversionCtxs, e.ConversionID)
	}
	h.mu.Unlock()

	if ok {
		errMsg := "conversion failed"
		if e.Err != nil {
			errMsg = e.Err.Error()
		}
		span.SetAttributes(attribute.String("flowport.stage", string(e.Stage)))
		span.SetStatus(codes.Error, errMsg)
		if e.Err != nil {
			span.RecordError(e.Err, trace.WithTimestamp(e.Time))
		}
		span.End(trace.WithTimestamp(e.Time))
	}
}

// ActiveSpanContext returns the SpanContext for the active conversion
// span. Returns an empty SpanContext if not found.
func (h *TracingHandler) ActiveSpanContext(conversionID string) trace.SpanContext {
	h.mu.RLock()
	span, ok := h.conversionSpans[conversionID]
	h.mu.RUnlock()

	if !ok {
		return trace.SpanContext{}
	}
	return span.SpanContext()
}
