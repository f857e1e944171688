// Package otel wires OpenTelemetry tracing for dialogue tools.
package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	envEndpoint = "DIALOGUE_OTEL_ENDPOINT"
	envEnabled  = "DIALOGUE_OTEL_ENABLED"
)

// Settings selects where spans are exported.
type Settings struct {
	Endpoint string
	Disabled bool
}

// SettingsFromEnv reads DIALOGUE_OTEL_ENDPOINT and DIALOGUE_OTEL_ENABLED.
func SettingsFromEnv() Settings {
	return Settings{
		Endpoint: strings.TrimSpace(os.Getenv(envEndpoint)),
		Disabled: strings.EqualFold(strings.TrimSpace(os.Getenv(envEnabled)), "false"),
	}
}

// Setup initialises OpenTelemetry tracing for the given service using
// SettingsFromEnv.
//
// Tracing is opt-in: with no endpoint, or with DIALOGUE_OTEL_ENABLED set to
// "false", Setup returns a no-op shutdown function and leaves the global
// provider untouched. The dialogue runner then records spans on the no-op
// tracer.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	return SetupWithSettings(ctx, serviceName, SettingsFromEnv())
}

// SetupWithSettings is Setup with explicit settings.
func SetupWithSettings(ctx context.Context, serviceName string, settings Settings) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	if settings.Disabled || settings.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(settings.Endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
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
