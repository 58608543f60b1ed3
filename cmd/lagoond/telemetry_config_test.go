package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveNodeHome(t *testing.T) {
	t.Setenv("LAGOON_HOME", "")

	require.Equal(t, "/tmp/a", resolveNodeHome([]string{"start", "--home=/tmp/a"}))
	require.Equal(t, "/tmp/b", resolveNodeHome([]string{"start", "--home", "/tmp/b"}))
	require.NotEmpty(t, resolveNodeHome(nil))

	t.Setenv("LAGOON_HOME", "/tmp/env-home")
	require.Equal(t, "/tmp/env-home", resolveNodeHome([]string{"--home", "/tmp/flag-home"}))
}

func TestPickPort(t *testing.T) {
	require.Equal(t, 9999, pickPort("9999", 8888, defaultMetricsPort), "env override wins")
	require.Equal(t, 8888, pickPort("", 8888, defaultMetricsPort), "config value next")
	require.Equal(t, defaultMetricsPort, pickPort("", 0, defaultMetricsPort), "default last")
	require.Equal(t, defaultMetricsPort, pickPort("not-a-port", 70000, defaultMetricsPort))
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"26657", 26657},
		{" 8080 ", 8080},
		{"0", 0},
		{"-1", 0},
		{"65536", 0},
		{"abc", 0},
		{"", 0},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, parsePort(tc.in), "parsePort(%q)", tc.in)
	}
}

func TestRPCHostPort(t *testing.T) {
	tests := []struct {
		name  string
		laddr string
		want  string
	}{
		{"wildcard bind maps to localhost", "tcp://0.0.0.0:26657", "localhost:26657"},
		{"ipv6 wildcard maps to localhost", "tcp://[::]:26657", "localhost:26657"},
		{"explicit host kept", "tcp://10.0.0.5:26657", "10.0.0.5:26657"},
		{"bare host port", "127.0.0.1:26657", "127.0.0.1:26657"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, rpcHostPort(tc.laddr))
		})
	}
}

func TestLoadTelemetryPortsFromAppToml(t *testing.T) {
	t.Setenv("LAGOON_TELEMETRY_METRICS_PORT", "")
	t.Setenv("LAGOON_TELEMETRY_HEALTH_PORT", "")

	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0o755))
	appToml := "[telemetry]\nmetrics-port = 12345\nhealth-port = 12346\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config", "app.toml"), []byte(appToml), 0o644))

	metricsPort, healthPort := loadTelemetryPorts(home)
	require.Equal(t, 12345, metricsPort)
	require.Equal(t, 12346, healthPort)

	t.Setenv("LAGOON_TELEMETRY_METRICS_PORT", "23456")
	metricsPort, healthPort = loadTelemetryPorts(home)
	require.Equal(t, 23456, metricsPort, "env should override app.toml")
	require.Equal(t, 12346, healthPort)
}

func TestLoadTelemetryPortsDefaults(t *testing.T) {
	t.Setenv("LAGOON_TELEMETRY_METRICS_PORT", "")
	t.Setenv("LAGOON_TELEMETRY_HEALTH_PORT", "")

	metricsPort, healthPort := loadTelemetryPorts(t.TempDir())
	require.Equal(t, defaultMetricsPort, metricsPort)
	require.Equal(t, defaultHealthPort, healthPort)
}

func TestResolveRPCAddress(t *testing.T) {
	t.Setenv("LAGOON_RPC_ENDPOINT", "")

	home := t.TempDir()
	require.Equal(t, defaultRPCAddress, resolveRPCAddress(home))

	require.NoError(t, os.MkdirAll(filepath.Join(home, "config"), 0o755))
	configToml := "[rpc]\nladdr = \"tcp://0.0.0.0:36657\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config", "config.toml"), []byte(configToml), 0o644))
	require.Equal(t, "http://localhost:36657", resolveRPCAddress(home))

	t.Setenv("LAGOON_RPC_ENDPOINT", "http://rpc.lagoon.zone:26657")
	require.Equal(t, "http://rpc.lagoon.zone:26657", resolveRPCAddress(home))
}

func TestLoadTracingConfig(t *testing.T) {
	t.Setenv("LAGOON_OTLP_ENDPOINT", "")
	t.Setenv("LAGOON_TRACE_SAMPLE_RATE", "")
	t.Setenv("LAGOON_ENVIRONMENT", "")

	cfg := loadTracingConfig(36660)
	require.False(t, cfg.Enabled)
	require.Equal(t, 0.1, cfg.SampleRate)
	require.Equal(t, "mainnet", cfg.Environment)
	require.Equal(t, "36660", cfg.MetricsPort)
	require.True(t, cfg.PrometheusEnabled)

	t.Setenv("LAGOON_OTLP_ENDPOINT", "otel-collector:4317")
	t.Setenv("LAGOON_TRACE_SAMPLE_RATE", "0.5")
	t.Setenv("LAGOON_ENVIRONMENT", "devnet")

	cfg = loadTracingConfig(36660)
	require.True(t, cfg.Enabled)
	require.Equal(t, "otel-collector:4317", cfg.OTLPEndpoint)
	require.Equal(t, 0.5, cfg.SampleRate)
	require.Equal(t, "devnet", cfg.Environment)
}
