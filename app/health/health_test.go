package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T, cfg Config) *Checker {
	t.Helper()
	checker, err := NewChecker(log.NewNopLogger(), cfg, client.Context{})
	require.NoError(t, err)
	return checker
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Equal(t, "http://localhost:26657", cfg.RPCURL)
	require.Equal(t, 5*time.Minute, cfg.StaleAfter)
	require.Equal(t, 5*time.Second, cfg.MaxResponseTime)
	require.Equal(t, 3, cfg.MinPeerCount)
	require.Equal(t, 5*time.Second, cfg.CacheDuration)
}

func TestNewCheckerRequiresRPCURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RPCURL = ""

	checker, err := NewChecker(log.NewNopLogger(), cfg, client.Context{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "RPC URL is required")
	require.Nil(t, checker)
}

func TestNewCheckerValidConfig(t *testing.T) {
	checker := newTestChecker(t, DefaultConfig())
	require.NotNil(t, checker.rpc)
	require.Equal(t, DefaultConfig(), checker.cfg)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		components map[string]Component
		expected   Status
	}{
		{
			name:       "no components",
			components: map[string]Component{},
			expected:   StatusHealthy,
		},
		{
			name: "all healthy",
			components: map[string]Component{
				"rpc":       {Status: StatusHealthy},
				"consensus": {Status: StatusHealthy},
				"network":   {Status: StatusHealthy},
			},
			expected: StatusHealthy,
		},
		{
			name: "one degraded",
			components: map[string]Component{
				"rpc":       {Status: StatusHealthy},
				"consensus": {Status: StatusDegraded},
			},
			expected: StatusDegraded,
		},
		{
			name: "one unhealthy",
			components: map[string]Component{
				"rpc":     {Status: StatusHealthy},
				"network": {Status: StatusUnhealthy},
			},
			expected: StatusUnhealthy,
		},
		{
			name: "unhealthy dominates degraded",
			components: map[string]Component{
				"rpc":       {Status: StatusDegraded},
				"consensus": {Status: StatusUnhealthy},
			},
			expected: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, aggregate(tt.components))
		})
	}
}

func TestFreshCached(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheDuration = 50 * time.Millisecond
	checker := newTestChecker(t, cfg)

	// Nothing cached yet.
	require.Nil(t, checker.freshCached())

	report := &Report{Status: StatusHealthy, Timestamp: time.Now()}
	checker.mu.Lock()
	checker.cached = report
	checker.cachedAt = time.Now()
	checker.mu.Unlock()

	require.Same(t, report, checker.freshCached())

	time.Sleep(60 * time.Millisecond)
	require.Nil(t, checker.freshCached())
}

func TestProbeSetGrowsWhenDetailed(t *testing.T) {
	checker := newTestChecker(t, DefaultConfig())

	basic := checker.probes(false)
	detailed := checker.probes(true)
	require.Len(t, detailed, len(basic)+1)
	require.Equal(t, "modules", detailed[len(detailed)-1].name)
}

func TestProbeModules(t *testing.T) {
	checker := newTestChecker(t, DefaultConfig())

	comp := checker.probeModules(nil)
	require.Equal(t, StatusHealthy, comp.Status)

	modules, ok := comp.Metrics["modules"].(map[string]string)
	require.True(t, ok)
	for _, name := range []string{"amm", "bonding", "epochs", "bank", "staking"} {
		require.Contains(t, modules, name)
	}
}

func TestHandleLive(t *testing.T) {
	checker := newTestChecker(t, DefaultConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	checker.handleLive(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	require.NotEmpty(t, body["timestamp"])
}

func TestRegisterRoutes(t *testing.T) {
	checker := newTestChecker(t, DefaultConfig())

	router := mux.NewRouter()
	checker.RegisterRoutes(router)

	for _, route := range []string{"/health", "/health/ready", "/health/detailed"} {
		req := httptest.NewRequest("GET", route, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.NotEqual(t, http.StatusNotFound, w.Code, "route %s should be registered", route)
	}
}

func TestReportJSONShape(t *testing.T) {
	report := Report{
		Status:    StatusDegraded,
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Components: map[string]Component{
			"network": {
				Status:    StatusDegraded,
				Message:   "low peer count: 1 (minimum recommended: 3)",
				Timestamp: time.Now(),
				Metrics:   map[string]interface{}{"peer_count": 1},
			},
		},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, report.Status, decoded.Status)
	require.Equal(t, report.Version, decoded.Version)
	require.Contains(t, decoded.Components, "network")
	require.Equal(t, StatusDegraded, decoded.Components["network"].Status)
}

func TestConcurrentLivenessRequests(t *testing.T) {
	checker := newTestChecker(t, DefaultConfig())

	const requests = 16
	var wg sync.WaitGroup
	codes := make([]int, requests)

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := httptest.NewRecorder()
			checker.handleLive(w, httptest.NewRequest("GET", "/health", nil))
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		require.Equal(t, http.StatusOK, code, "request %d", i)
	}
}

func BenchmarkHandleLive(b *testing.B) {
	checker, err := NewChecker(log.NewNopLogger(), DefaultConfig(), client.Context{})
	require.NoError(b, err)

	req := httptest.NewRequest("GET", "/health", nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		checker.handleLive(w, req)
	}
}

func BenchmarkAggregate(b *testing.B) {
	components := map[string]Component{
		"rpc":       {Status: StatusHealthy},
		"consensus": {Status: StatusHealthy},
		"network":   {Status: StatusDegraded},
		"database":  {Status: StatusHealthy},
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = aggregate(components)
	}
}
