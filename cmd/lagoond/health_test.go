package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// mockNodeChecker implements NodeHealthChecker for testing.
type mockNodeChecker struct {
	rpcErr       error
	syncing      bool
	height       int64
	syncErr      error
	consensusErr error
	peerCount    int
	peerErr      error
}

func (m *mockNodeChecker) CheckRPC() error                 { return m.rpcErr }
func (m *mockNodeChecker) CheckSync() (bool, int64, error) { return m.syncing, m.height, m.syncErr }
func (m *mockNodeChecker) CheckConsensus() error           { return m.consensusErr }
func (m *mockNodeChecker) GetPeerCount() (int, error)      { return m.peerCount, m.peerErr }
func (m *mockNodeChecker) GetBlockHeight() (int64, error)  { return m.height, nil }

// newTestHealthCheck builds a HealthCheck without binding a port.
func newTestHealthCheck(checker NodeHealthChecker) *HealthCheck {
	return &HealthCheck{
		nodeChecker: checker,
		cache:       newHealthCache(5 * time.Second),
		limiter:     newIPRateLimiter(1000, 1000),
	}
}

func TestBasicHealthEndpoint(t *testing.T) {
	hc := newTestHealthCheck(&mockNodeChecker{height: 12345, peerCount: 5})

	w := httptest.NewRecorder()
	hc.handleBasicHealth(w, httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var result BasicHealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	require.Equal(t, "ok", result.Status)
	require.NotEmpty(t, result.Timestamp)
}

func TestReadinessEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		checker    *mockNodeChecker
		wantCode   int
		wantStatus string
		wantCheck  string
		checkState string
	}{
		{
			name:       "synced node is ready",
			checker:    &mockNodeChecker{height: 12345, peerCount: 5},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantCheck:  "rpc",
			checkState: "ok",
		},
		{
			name:       "syncing node is not ready",
			checker:    &mockNodeChecker{syncing: true, height: 12345},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
			wantCheck:  "sync",
			checkState: "syncing",
		},
		{
			name:       "rpc failure is not ready",
			checker:    &mockNodeChecker{rpcErr: fmt.Errorf("connection refused"), height: 12345},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
			wantCheck:  "rpc",
			checkState: "unhealthy",
		},
		{
			name:       "consensus error is degraded but still ready",
			checker:    &mockNodeChecker{consensusErr: fmt.Errorf("not signing"), height: 12345},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantCheck:  "consensus",
			checkState: "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := newTestHealthCheck(tt.checker)

			w := httptest.NewRecorder()
			hc.handleReadiness(w, httptest.NewRequest("GET", "/health/ready", nil))

			require.Equal(t, tt.wantCode, w.Code)

			var result ReadinessResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
			require.Equal(t, tt.wantStatus, result.Status)
			require.Equal(t, tt.checkState, result.Checks[tt.wantCheck].Status)
		})
	}
}

func TestDetailedEndpoint(t *testing.T) {
	hc := newTestHealthCheck(&mockNodeChecker{height: 12345, peerCount: 5})

	w := httptest.NewRecorder()
	hc.handleDetailed(w, httptest.NewRequest("GET", "/health/detailed", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "MISS", w.Header().Get("X-Cache"))

	var result DetailedHealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	require.Equal(t, "healthy", result.Status)
	require.Equal(t, 5, result.System.Peers)
	require.Equal(t, int64(12345), result.System.BlockHeight)
	require.Positive(t, result.System.Goroutines)

	for _, name := range []string{"amm", "bonding", "epochs"} {
		require.Contains(t, result.Modules, name)
	}

	// Second request is served from cache.
	w2 := httptest.NewRecorder()
	hc.handleDetailed(w2, httptest.NewRequest("GET", "/health/detailed", nil))
	require.Equal(t, "HIT", w2.Header().Get("X-Cache"))
}

func TestStartupProbeDuringGracePeriod(t *testing.T) {
	originalStart := startTime
	startTime = time.Now()
	defer func() { startTime = originalStart }()

	hc := newTestHealthCheck(&mockNodeChecker{height: 12345})

	w := httptest.NewRecorder()
	hc.handleStartup(w, httptest.NewRequest("GET", "/health/startup", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
	require.Equal(t, "starting", result["status"])
}

func TestStartupProbeAfterGracePeriod(t *testing.T) {
	originalStart := startTime
	startTime = time.Now().Add(-2 * startupGracePeriod)
	defer func() { startTime = originalStart }()

	hc := newTestHealthCheck(&mockNodeChecker{height: 12345})

	w := httptest.NewRecorder()
	hc.handleStartup(w, httptest.NewRequest("GET", "/health/startup", nil))

	// Past the grace period, startup defers to readiness.
	require.Equal(t, http.StatusOK, w.Code)
}

func TestOverallStatus(t *testing.T) {
	require.Equal(t, "healthy", overallStatus(map[string]CheckResult{
		"rpc": {Status: "ok"},
	}))
	require.Equal(t, "degraded", overallStatus(map[string]CheckResult{
		"rpc":       {Status: "ok"},
		"consensus": {Status: "degraded"},
	}))
	require.Equal(t, "unhealthy", overallStatus(map[string]CheckResult{
		"rpc":       {Status: "unhealthy"},
		"consensus": {Status: "degraded"},
	}))
}

func TestHealthServerEndToEnd(t *testing.T) {
	hc := StartHealthCheckServer(38661, &mockNodeChecker{height: 12345, peerCount: 5})
	defer hc.Shutdown(context.Background())

	time.Sleep(100 * time.Millisecond)

	resp, err := http.Get("http://localhost:38661/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthRateLimiter(t *testing.T) {
	rl := newIPRateLimiter(1, 3)

	// Burst capacity admits the first requests, then the bucket is empty.
	for i := 0; i < 3; i++ {
		require.True(t, rl.allow("10.0.0.1"), "request %d within burst", i)
	}
	require.False(t, rl.allow("10.0.0.1"), "request beyond burst")

	// Separate IPs get separate buckets.
	require.True(t, rl.allow("10.0.0.2"))
}

func TestRateLimitedRequestReturns429(t *testing.T) {
	hc := newTestHealthCheck(&mockNodeChecker{})
	hc.limiter = newIPRateLimiter(1, 1)

	handler := hc.withHealthMetrics("health", hc.handleBasicHealth)

	req := httptest.NewRequest("GET", "/health", nil)
	req.RemoteAddr = "10.1.2.3:50000"

	w := httptest.NewRecorder()
	handler(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w2 := httptest.NewRecorder()
	handler(w2, req)
	require.Equal(t, http.StatusTooManyRequests, w2.Code)
}
