package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/clubsphere/internal/app/system/apperr"
	"github.com/dalemusser/clubsphere/internal/app/system/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	before := otel.GetTracerProvider()
	shutdown, err := tracing.Setup(context.Background(), "", "clubsphere")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown: %v", err)
	}
	if otel.GetTracerProvider() != before {
		t.Error("expected global provider to be unchanged")
	}
}

func TestEnd(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	tracer := tp.Tracer("test")

	_, ok := tracer.Start(context.Background(), "ok")
	tracing.End(ok, nil)
	_, rejected := tracer.Start(context.Background(), "rejected")
	tracing.End(rejected, apperr.New(apperr.EventFull, "full"))
	_, failed := tracer.Start(context.Background(), "failed")
	tracing.End(failed, errors.New("boom"))

	spans := rec.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 ended spans, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Unset {
		t.Errorf("ok span status = %v", spans[0].Status().Code)
	}
	if spans[1].Status().Code != codes.Unset {
		t.Errorf("rejected span status = %v, want Unset", spans[1].Status().Code)
	}
	var kind string
	for _, a := range spans[1].Attributes() {
		if a.Key == "clubsphere.rejection" {
			kind = a.Value.AsString()
		}
	}
	if kind != string(apperr.EventFull) {
		t.Errorf("rejection attribute = %q", kind)
	}
	if spans[2].Status().Code != codes.Error {
		t.Errorf("failed span status = %v, want Error", spans[2].Status().Code)
	}
}
