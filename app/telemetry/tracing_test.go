package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{OTLPEndpoint: "otel:4317", SampleRate: 0.1}, ""},
		{"full sampling", Config{OTLPEndpoint: "otel:4317", SampleRate: 1}, ""},
		{"missing endpoint", Config{SampleRate: 0.1}, "otlp endpoint is required"},
		{"negative rate", Config{OTLPEndpoint: "otel:4317", SampleRate: -0.1}, "sample rate"},
		{"rate above one", Config{OTLPEndpoint: "otel:4317", SampleRate: 1.5}, "sample rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestNewProviderDisabled(t *testing.T) {
	p, err := NewProvider(Config{Enabled: false})
	require.NoError(t, err)

	// A disabled provider is inert but still usable.
	require.NoError(t, p.HealthCheck())
	require.NotNil(t, p.Tracer())
	require.NotNil(t, p.Meter())
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestNewProviderRejectsBadConfig(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, SampleRate: 2})
	require.Error(t, err)
	require.ErrorContains(t, err, "invalid telemetry config")
}

func TestHealthCheckEnabledButUninitialized(t *testing.T) {
	p := &Provider{config: Config{Enabled: true}}
	require.Error(t, p.HealthCheck())
}

func TestSpanHelpersTolerateNilSpan(t *testing.T) {
	require.NotPanics(t, func() {
		RecordError(nil, errors.New("boom"))
		SetSpanStatus(nil, false, "boom")
		AddSpanAttributes(nil, attribute.String("k", "v"))
		AddSpanEvent(nil, "event")
	})
}

func TestStartSpansWithoutProvider(t *testing.T) {
	// Without a registered tracer provider the global tracer hands out
	// no-op spans, which is what node commands that skip telemetry get.
	ctx := context.Background()

	ctx, span := StartSwapSpan(ctx, 7, "ulgn", "uusdc")
	require.NotNil(t, span)
	span.End()

	_, span = StartEpochSpan(ctx, 42)
	require.NotNil(t, span)
	span.End()

	_, span = StartClaimSpan(ctx, "lagoon1bonder", 3)
	require.NotNil(t, span)
	span.End()

	_, span = StartBlockSpan(ctx, 100, "lagoonvaloper1xyz")
	require.NotNil(t, span)
	span.End()

	_, span = StartModuleSpan(ctx, "amm", "swap")
	require.NotNil(t, span)
	span.End()
}
