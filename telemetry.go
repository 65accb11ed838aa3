package cbc

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/rbaliyan/config-cbc"

// telemetry holds the tracer and instruments used by a Codec.
type telemetry struct {
	tracer     trace.Tracer
	operations metric.Int64Counter
	size       metric.Int64Histogram
}

func newTelemetry(tp trace.TracerProvider, mp metric.MeterProvider) (*telemetry, error) {
	meter := mp.Meter(instrumentationName)

	operations, err := meter.Int64Counter("cbc.codec.operations",
		metric.WithDescription("Number of envelope encode and decode operations."),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("cbc: failed to create operations counter: %w", err)
	}

	size, err := meter.Int64Histogram("cbc.codec.payload.size",
		metric.WithDescription("Size of envelopes produced or consumed."),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("cbc: failed to create payload size histogram: %w", err)
	}

	return &telemetry{
		tracer:     tp.Tracer(instrumentationName),
		operations: operations,
		size:       size,
	}, nil
}

// start opens a span named "cbc."+op under the caller's context.
func (t *telemetry) start(ctx context.Context, op, codecName string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "cbc."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("cbc.codec", codecName)),
	)
}

// finish records the outcome of op and ends the span.
func (t *telemetry) finish(ctx context.Context, span trace.Span, op string, envelopeSize int, err error) {
	attrs := metric.WithAttributes(
		attribute.String("cbc.operation", op),
		attribute.Bool("cbc.error", err != nil),
	)
	t.operations.Add(ctx, 1, attrs)
	if err == nil {
		t.size.Record(ctx, int64(envelopeSize), metric.WithAttributes(attribute.String("cbc.operation", op)))
	} else {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
