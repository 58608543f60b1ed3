package main

import (
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/lagoon-chain/lagoon/app"
	"github.com/lagoon-chain/lagoon/app/telemetry"
)

const (
	defaultMetricsPort = 36660
	defaultHealthPort  = 36661
	defaultRPCAddress  = "http://127.0.0.1:26657"

	envPrefix = "LAGOON_"
)

func env(name string) string {
	return os.Getenv(envPrefix + name)
}

// loadTOML reads a TOML file into a fresh viper instance.
func loadTOML(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

// resolveNodeHome returns the configured lagoon home directory.
// LAGOON_HOME wins over the --home flag; the app default is last.
func resolveNodeHome(args []string) string {
	if home := env("HOME"); home != "" {
		return home
	}

	for i, arg := range args {
		if strings.HasPrefix(arg, "--home=") {
			return strings.SplitN(arg, "=", 2)[1]
		}
		if arg == "--home" && i+1 < len(args) {
			return args[i+1]
		}
	}

	return app.DefaultNodeHome
}

// loadTelemetryPorts resolves the metrics and health ports from app.toml
// and the LAGOON_TELEMETRY_* environment overrides.
func loadTelemetryPorts(home string) (int, int) {
	var cfgMetrics, cfgHealth int
	if v, err := loadTOML(filepath.Join(home, "config", "app.toml")); err == nil {
		cfgMetrics = v.GetInt("telemetry.metrics-port")
		cfgHealth = v.GetInt("telemetry.health-port")
	}

	metricsPort := pickPort(env("TELEMETRY_METRICS_PORT"), cfgMetrics, defaultMetricsPort)
	healthPort := pickPort(env("TELEMETRY_HEALTH_PORT"), cfgHealth, defaultHealthPort)
	return metricsPort, healthPort
}

// pickPort prefers the environment override, then the config value, then
// the built-in default. Out-of-range values fall through.
func pickPort(envValue string, cfgValue, fallback int) int {
	if p := parsePort(envValue); p > 0 {
		return p
	}
	if cfgValue > 0 && cfgValue <= 65535 {
		return cfgValue
	}
	return fallback
}

func parsePort(value string) int {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || port <= 0 || port > 65535 {
		return 0
	}
	return port
}

// resolveRPCAddress chooses the RPC endpoint used by the health checker:
// LAGOON_RPC_ENDPOINT, then config.toml's rpc.laddr, then the default.
func resolveRPCAddress(home string) string {
	if ep := env("RPC_ENDPOINT"); ep != "" {
		return ep
	}

	if v, err := loadTOML(filepath.Join(home, "config", "config.toml")); err == nil {
		if hostPort := rpcHostPort(v.GetString("rpc.laddr")); hostPort != "" {
			return "http://" + hostPort
		}
	}

	return defaultRPCAddress
}

// rpcHostPort extracts host:port from a CometBFT listen address. Wildcard
// binds map to localhost so the health checker can actually dial them.
func rpcHostPort(laddr string) string {
	laddr = strings.TrimSpace(laddr)
	if laddr == "" {
		return ""
	}

	if strings.Contains(laddr, "://") {
		if parsed, err := url.Parse(laddr); err == nil && parsed.Host != "" {
			laddr = parsed.Host
		}
	}

	host, port, err := net.SplitHostPort(laddr)
	if err != nil {
		return laddr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

// loadTracingConfig builds the tracing configuration from environment
// variables. Tracing stays disabled unless LAGOON_OTLP_ENDPOINT is set.
func loadTracingConfig(metricsPort int) telemetry.Config {
	endpoint := env("OTLP_ENDPOINT")

	sampleRate := 0.1
	if raw := env("TRACE_SAMPLE_RATE"); raw != "" {
		if rate, err := strconv.ParseFloat(raw, 64); err == nil && rate >= 0 && rate <= 1 {
			sampleRate = rate
		}
	}

	environment := env("ENVIRONMENT")
	if environment == "" {
		environment = "mainnet"
	}

	return telemetry.Config{
		Enabled:           endpoint != "",
		OTLPEndpoint:      endpoint,
		SampleRate:        sampleRate,
		Environment:       environment,
		ChainID:           env("CHAIN_ID"),
		PrometheusEnabled: true,
		MetricsPort:       strconv.Itoa(metricsPort),
	}
}
