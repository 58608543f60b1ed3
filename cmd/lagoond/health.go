package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"
)

var (
	startTime = time.Now()

	healthCheckTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lagoon_health_check_total",
			Help: "Total number of health check requests",
		},
		[]string{"endpoint", "status"},
	)

	healthCheckDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lagoon_health_check_duration_seconds",
			Help:    "Health check request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"endpoint"},
	)

	serviceHealthy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lagoon_service_healthy",
			Help: "1 if service is healthy, 0 if unhealthy",
		},
		[]string{"service"},
	)
)

// startupGracePeriod is how long /health/startup reports "starting" before
// falling through to the readiness checks.
const startupGracePeriod = 30 * time.Second

// HealthCheck is the standalone health HTTP server that runs next to the
// node process, independent of the SDK API server.
type HealthCheck struct {
	server      *http.Server
	nodeChecker NodeHealthChecker
	cache       *healthCache
	limiter     *ipRateLimiter
	mu          sync.RWMutex
}

// ipRateLimiter keeps a token bucket per client IP. The health port is often
// exposed to load balancers and probes, so the limits are generous but bounded.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(rps float64, burst int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *ipRateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters[ip] = limiter
	}

	return limiter.Allow()
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// NodeHealthChecker is the view of the node the health server depends on.
type NodeHealthChecker interface {
	CheckRPC() error
	CheckSync() (bool, int64, error)
	CheckConsensus() error
	GetPeerCount() (int, error)
	GetBlockHeight() (int64, error)
}

// healthCache reuses the last detailed response while it is fresh enough.
type healthCache struct {
	mu          sync.RWMutex
	result      *DetailedHealthResponse
	lastChecked time.Time
	ttl         time.Duration
}

func newHealthCache(ttl time.Duration) *healthCache {
	return &healthCache{ttl: ttl}
}

func (c *healthCache) get() (*DetailedHealthResponse, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.result == nil || time.Since(c.lastChecked) > c.ttl {
		return nil, false
	}
	return c.result, true
}

func (c *healthCache) set(result *DetailedHealthResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.result = result
	c.lastChecked = time.Now()
}

// BasicHealthResponse is the response for /health
type BasicHealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// ReadinessResponse is the response for /health/ready
type ReadinessResponse struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// DetailedHealthResponse is the response for /health/detailed
type DetailedHealthResponse struct {
	Status        string                  `json:"status"`
	UptimeSeconds int64                   `json:"uptime_seconds"`
	Version       string                  `json:"version"`
	Checks        map[string]CheckResult  `json:"checks"`
	Modules       map[string]ModuleHealth `json:"modules"`
	System        SystemHealth            `json:"system"`
}

// CheckResult represents a single health check result
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ModuleHealth represents module-specific health information
type ModuleHealth struct {
	Status  string                 `json:"status"`
	Metrics map[string]interface{} `json:"metrics,omitempty"`
}

// SystemHealth represents system-level health metrics
type SystemHealth struct {
	MemoryMB    uint64 `json:"memory_mb"`
	Goroutines  int    `json:"goroutines"`
	Peers       int    `json:"peers"`
	BlockHeight int64  `json:"block_height"`
}

// StartHealthCheckServer starts the health check HTTP server
func StartHealthCheckServer(port int, nodeChecker NodeHealthChecker) *HealthCheck {
	hc := &HealthCheck{
		nodeChecker: nodeChecker,
		cache:       newHealthCache(5 * time.Second),
		limiter:     newIPRateLimiter(10, 20),
	}

	mux := http.NewServeMux()

	// Wrapped separately so health traffic never pollutes request metrics.
	mux.HandleFunc("/health", hc.withHealthMetrics("health", hc.handleBasicHealth))
	mux.HandleFunc("/health/ready", hc.withHealthMetrics("ready", hc.handleReadiness))
	mux.HandleFunc("/health/detailed", hc.withHealthMetrics("detailed", hc.handleDetailed))
	mux.HandleFunc("/health/startup", hc.withHealthMetrics("startup", hc.handleStartup))

	hc.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	go func() {
		if err := hc.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("health check server error: %v\n", err)
		}
	}()

	return hc
}

// withHealthMetrics rate-limits the request and records count and duration
// per endpoint.
func (hc *HealthCheck) withHealthMetrics(endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !hc.limiter.allow(clientIP(r)) {
			healthCheckTotal.WithLabelValues(endpoint, "429").Inc()
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		handler(rw, r)

		healthCheckTotal.WithLabelValues(endpoint, fmt.Sprintf("%d", rw.statusCode)).Inc()
		healthCheckDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (hc *HealthCheck) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}

// handleBasicHealth handles GET /health. It answers 200 whenever the process
// is alive, regardless of node state.
func (hc *HealthCheck) handleBasicHealth(w http.ResponseWriter, r *http.Request) {
	hc.writeJSON(w, http.StatusOK, BasicHealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// runNodeChecks runs the RPC, sync, and consensus checks. It reports whether
// the node can take traffic: a syncing node is not ready, a degraded
// consensus check is (non-validators have no signing duty).
func (hc *HealthCheck) runNodeChecks(updateGauges bool) (map[string]CheckResult, bool) {
	checks := make(map[string]CheckResult)
	ready := true

	if hc.nodeChecker == nil {
		return checks, ready
	}

	setGauge := func(service string, v float64) {
		if updateGauges {
			serviceHealthy.WithLabelValues(service).Set(v)
		}
	}

	if err := hc.nodeChecker.CheckRPC(); err != nil {
		checks["rpc"] = CheckResult{Status: "unhealthy", Message: err.Error()}
		ready = false
		setGauge("rpc", 0)
	} else {
		checks["rpc"] = CheckResult{Status: "ok"}
		setGauge("rpc", 1)
	}

	syncing, height, err := hc.nodeChecker.CheckSync()
	switch {
	case err != nil:
		checks["sync"] = CheckResult{Status: "unhealthy", Message: err.Error()}
		ready = false
		setGauge("sync", 0)
	case syncing:
		checks["sync"] = CheckResult{Status: "syncing", Message: fmt.Sprintf("catching up at height %d", height)}
		ready = false
		setGauge("sync", 0)
	default:
		checks["sync"] = CheckResult{Status: "ok"}
		setGauge("sync", 1)
	}

	if err := hc.nodeChecker.CheckConsensus(); err != nil {
		checks["consensus"] = CheckResult{Status: "degraded", Message: err.Error()}
		setGauge("consensus", 0.5)
	} else {
		checks["consensus"] = CheckResult{Status: "ok"}
		setGauge("consensus", 1)
	}

	return checks, ready
}

// handleReadiness handles GET /health/ready.
func (hc *HealthCheck) handleReadiness(w http.ResponseWriter, r *http.Request) {
	checks, ready := hc.runNodeChecks(true)

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}

	hc.writeJSON(w, code, ReadinessResponse{
		Status: status,
		Checks: checks,
	})
}

// handleDetailed handles GET /health/detailed.
func (hc *HealthCheck) handleDetailed(w http.ResponseWriter, r *http.Request) {
	if cached, ok := hc.cache.get(); ok {
		w.Header().Set("X-Cache", "HIT")
		hc.writeJSON(w, http.StatusOK, cached)
		return
	}

	checks, _ := hc.runNodeChecks(false)

	response := &DetailedHealthResponse{
		Status:        overallStatus(checks),
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Version:       getVersion(),
		Checks:        checks,
		Modules:       moduleHealthSnapshot(),
		System:        hc.systemHealth(),
	}

	hc.cache.set(response)

	w.Header().Set("X-Cache", "MISS")
	hc.writeJSON(w, http.StatusOK, response)
}

// moduleHealthSnapshot reports per-module placeholders. Populating the
// metrics needs a query client against the local node.
// TODO: fill pool/bucket/epoch counters from the amm, bonding, and epochs
// query servers once the health server carries a gRPC connection.
func moduleHealthSnapshot() map[string]ModuleHealth {
	return map[string]ModuleHealth{
		"amm": {
			Status: "ok",
			Metrics: map[string]interface{}{
				"pools":      0,
				"volume_24h": 0,
			},
		},
		"bonding": {
			Status: "ok",
			Metrics: map[string]interface{}{
				"bonded_accounts": 0,
				"reward_buckets":  0,
			},
		},
		"epochs": {
			Status: "ok",
			Metrics: map[string]interface{}{
				"current_epoch": 0,
			},
		},
	}
}

func (hc *HealthCheck) systemHealth() SystemHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	peers := 0
	blockHeight := int64(0)
	if hc.nodeChecker != nil {
		peers, _ = hc.nodeChecker.GetPeerCount()
		blockHeight, _ = hc.nodeChecker.GetBlockHeight()
	}

	return SystemHealth{
		MemoryMB:    m.Alloc / 1024 / 1024,
		Goroutines:  runtime.NumGoroutine(),
		Peers:       peers,
		BlockHeight: blockHeight,
	}
}

// overallStatus folds check results: any unhealthy wins, then degraded.
func overallStatus(checks map[string]CheckResult) string {
	status := "healthy"
	for _, check := range checks {
		switch check.Status {
		case "unhealthy":
			return "unhealthy"
		case "degraded":
			status = "degraded"
		}
	}
	return status
}

// handleStartup handles GET /health/startup for Kubernetes startup probes.
// During the grace period it reports "starting"; afterwards it defers to the
// readiness checks.
func (hc *HealthCheck) handleStartup(w http.ResponseWriter, r *http.Request) {
	if time.Since(startTime) < startupGracePeriod {
		hc.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "starting",
			"message": "application is initializing",
		})
		return
	}

	hc.handleReadiness(w, r)
}

// Shutdown gracefully shuts down the health check server
func (hc *HealthCheck) Shutdown(ctx context.Context) error {
	if hc.server != nil {
		return hc.server.Shutdown(ctx)
	}
	return nil
}

func getVersion() string {
	if version := os.Getenv("LAGOON_VERSION"); version != "" {
		return version
	}
	return "dev"
}
