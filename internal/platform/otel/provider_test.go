package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/dialogue/internal/platform/otel"
)

func TestSettingsFromEnv(t *testing.T) {
	t.Setenv("DIALOGUE_OTEL_ENDPOINT", " http://localhost:4318 ")
	t.Setenv("DIALOGUE_OTEL_ENABLED", "FALSE")

	got := otel.SettingsFromEnv()
	if got.Endpoint != "http://localhost:4318" {
		t.Fatalf("endpoint = %q, want %q", got.Endpoint, "http://localhost:4318")
	}
	if !got.Disabled {
		t.Fatal("expected tracing to be disabled")
	}
}

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("DIALOGUE_OTEL_ENDPOINT", "")
	t.Setenv("DIALOGUE_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("DIALOGUE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("DIALOGUE_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupWithSettings_CreatesProvider(t *testing.T) {
	// Non-routable address so nothing is exported.
	shutdown, err := otel.SetupWithSettings(context.Background(), "test-service", otel.Settings{
		Endpoint: "http://192.0.2.1:4318",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopShutdownIgnoresCancelledContext(t *testing.T) {
	shutdown, err := otel.SetupWithSettings(context.Background(), "noop-test", otel.Settings{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should not error: %v", err)
	}
}
