// Package tracing configures OpenTelemetry for the service. Tracing is
// opt-in: with no endpoint the global no-op provider stays in place and
// spans cost nothing.
package tracing

import (
	"context"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Setup installs an OTLP/HTTP tracer provider exporting to endpoint. When
// endpoint is empty it returns a no-op shutdown function and registers
// nothing. The returned shutdown flushes pending spans.
func Setup(ctx context.Context, endpoint, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns the named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer("clubsphere/" + name)
}

// End records err on span and ends it. Business rejections are tagged with
// their kind and leave the span status unset; anything else marks the span
// as an error.
func End(span trace.Span, err error) {
	defer span.End()
	if err == nil {
		return
	}
	if kind, ok := apperr.KindOf(err); ok {
		span.SetAttributes(attribute.String("clubsphere.rejection", string(kind)))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
