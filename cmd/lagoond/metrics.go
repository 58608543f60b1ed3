package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartPrometheusServer exposes the process-level Prometheus registry on its
// own port, separate from the SDK telemetry endpoint. The health check
// counters registered in this package land here. The returned server can be
// shut down by the caller; serving happens in the background.
func StartPrometheusServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		// A bind failure (port already taken) should not take the node down.
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			fmt.Printf("prometheus server error: %v\n", err)
		}
	}()

	return srv
}
