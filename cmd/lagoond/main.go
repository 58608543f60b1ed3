package main

import (
	"context"
	"fmt"
	"os"
	"time"

	svrcmd "github.com/cosmos/cosmos-sdk/server/cmd"

	"github.com/lagoon-chain/lagoon/app"
	"github.com/lagoon-chain/lagoon/app/telemetry"
	"github.com/lagoon-chain/lagoon/cmd/lagoond/cmd"
)

func main() {
	home := resolveNodeHome(os.Args[1:])
	metricsPort, healthPort := loadTelemetryPorts(home)
	rpcEndpoint := resolveRPCAddress(home)

	// Start Prometheus metrics server on the configured port.
	StartPrometheusServer(metricsPort)

	// Start health check server with the configured port + RPC endpoint.
	nodeChecker := NewNodeChecker(rpcEndpoint)
	StartHealthCheckServer(healthPort, nodeChecker)

	// Distributed tracing is opt-in via LAGOON_OTLP_ENDPOINT.
	provider, err := telemetry.NewProvider(loadTracingConfig(metricsPort))
	if err != nil {
		fmt.Printf("telemetry disabled: %v\n", err)
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := provider.Shutdown(ctx); err != nil {
				fmt.Printf("telemetry shutdown: %v\n", err)
			}
		}()
	}

	rootCmd := cmd.NewRootCmd(false)

	if err := svrcmd.Execute(rootCmd, "", app.DefaultNodeHome); err != nil {
		os.Exit(1)
	}
}
