// Package telemetry provides the OpenTelemetry tracer used by yalc commands.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.trai.ch/yalc/internal/core/domain"
	"go.trai.ch/yalc/internal/core/ports"
	"go.trai.ch/zerr"
)

// ServiceName identifies yalc in exported traces.
const ServiceName = "yalc"

var _ ports.Tracer = (*OTelTracer)(nil)

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
// It starts as a no-op tracer; Export switches it to an SDK provider.
type OTelTracer struct {
	mu       sync.RWMutex
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// NewOTelTracer creates a tracer that records nothing until Export is called.
func NewOTelTracer() *OTelTracer {
	return &OTelTracer{tracer: noop.NewTracerProvider().Tracer(ServiceName)}
}

// Export writes finished spans to w as indented JSON.
func (t *OTelTracer) Export(w io.Writer) error {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return zerr.Wrap(err, domain.ErrTracerSetupFailed.Error())
	}
	return t.ExportTo(exporter)
}

// ExportTo sends finished spans to exporter.
func (t *OTelTracer) ExportTo(exporter sdktrace.SpanExporter) error {
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
		sdktrace.WithBatcher(exporter),
	)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.provider != nil {
		_ = t.provider.Shutdown(context.Background())
	}
	t.provider = provider
	t.tracer = provider.Tracer(ServiceName)
	return nil
}

// Flush exports the spans ended so far.
func (t *OTelTracer) Flush(ctx context.Context) error {
	t.mu.RLock()
	provider := t.provider
	t.mu.RUnlock()

	if provider == nil {
		return nil
	}
	return provider.ForceFlush(ctx)
}

// Shutdown flushes pending spans and stops exporting.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	t.mu.RLock()
	provider := t.provider
	t.mu.RUnlock()

	if provider == nil {
		return nil
	}
	return provider.Shutdown(ctx)
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	t.mu.RLock()
	tracer := t.tracer
	t.mu.RUnlock()

	ctx, span := tracer.Start(ctx, name)
	s := &OTelSpan{span: span}
	for k, v := range cfg.Attributes {
		s.SetAttribute(k, v)
	}
	return ctx, s
}

// EmitPlan records the packages of a batch on the current span.
func (t *OTelTracer) EmitPlan(ctx context.Context, packages []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("packages", packages),
		))
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span trace.Span
}

// End completes the span.
func (s *OTelSpan) End() {
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write satisfies io.Writer by adding a log event to the span.
func (s *OTelSpan) Write(p []byte) (int, error) {
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
