// Package health exposes liveness and readiness endpoints for a lagoon node.
//
// Probes cover the CometBFT RPC endpoint, consensus progress, peer
// connectivity, and the ABCI application. Results aggregate into a single
// status: one unhealthy probe marks the node unhealthy, one degraded probe
// marks it degraded, otherwise the node is healthy. Readiness responses are
// cached briefly so load balancers polling every second do not hammer the
// RPC endpoint.
//
// Registered endpoints:
//   - /health          liveness, always 200 while the process serves HTTP
//   - /health/ready    readiness for load balancers
//   - /health/detailed full probe breakdown with metrics
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/client"
	"github.com/gorilla/mux"

	rpcclient "github.com/cometbft/cometbft/rpc/client/http"
)

// Status classifies a probe result or an aggregate report.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// Component is the outcome of a single probe.
type Component struct {
	Status    Status                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metrics   map[string]interface{} `json:"metrics,omitempty"`
}

// Report is the aggregate health of the node.
type Report struct {
	Status     Status               `json:"status"`
	Timestamp  time.Time            `json:"timestamp"`
	Version    string               `json:"version,omitempty"`
	Components map[string]Component `json:"components,omitempty"`
}

// Config tunes the health probes.
type Config struct {
	// RPCURL is the CometBFT RPC endpoint to probe.
	RPCURL string

	// StaleAfter marks consensus unhealthy when the latest block is older
	// than this.
	StaleAfter time.Duration

	// MaxResponseTime bounds each probe; responses slower than half of it
	// count as degraded.
	MaxResponseTime time.Duration

	// MinPeerCount is the peer count below which the network probe reports
	// degraded. Zero peers is always unhealthy.
	MinPeerCount int

	// CacheDuration is how long readiness results are reused.
	CacheDuration time.Duration
}

// DefaultConfig returns probe settings suitable for a validator or sentry
// with the default CometBFT ports.
func DefaultConfig() Config {
	return Config{
		RPCURL:          "http://localhost:26657",
		StaleAfter:      5 * time.Minute,
		MaxResponseTime: 5 * time.Second,
		MinPeerCount:    3,
		CacheDuration:   5 * time.Second,
	}
}

// Checker runs the probes and serves the HTTP endpoints.
type Checker struct {
	logger    log.Logger
	rpc       *rpcclient.HTTP
	clientCtx client.Context
	cfg       Config

	mu       sync.RWMutex
	cached   *Report
	cachedAt time.Time
}

// NewChecker builds a Checker from cfg. It fails only when the RPC URL is
// missing or unparseable; an unreachable endpoint surfaces through the
// probes instead.
func NewChecker(logger log.Logger, cfg Config, clientCtx client.Context) (*Checker, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("RPC URL is required")
	}

	rpc, err := rpcclient.New(cfg.RPCURL, "/websocket")
	if err != nil {
		return nil, fmt.Errorf("failed to create RPC client: %w", err)
	}

	return &Checker{
		logger:    logger,
		rpc:       rpc,
		clientCtx: clientCtx,
		cfg:       cfg,
	}, nil
}

type probe struct {
	name string
	run  func(context.Context) Component
}

func (c *Checker) probes(detailed bool) []probe {
	ps := []probe{
		{"rpc", c.probeRPC},
		{"consensus", c.probeConsensus},
		{"network", c.probePeers},
		{"database", c.probeApp},
	}
	if detailed {
		ps = append(ps, probe{"modules", c.probeModules})
	}
	return ps
}

// Check runs all probes concurrently and aggregates the results. Readiness
// callers get a cached report when one is fresh enough.
func (c *Checker) Check(ctx context.Context, detailed bool) *Report {
	if !detailed {
		if cached := c.freshCached(); cached != nil {
			return cached
		}
	}

	report := &Report{
		Timestamp:  time.Now(),
		Components: make(map[string]Component),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, p := range c.probes(detailed) {
		wg.Add(1)
		go func(p probe) {
			defer wg.Done()
			result := p.run(ctx)
			mu.Lock()
			report.Components[p.name] = result
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	report.Status = aggregate(report.Components)
	if report.Status == StatusUnhealthy {
		for name, comp := range report.Components {
			if comp.Status == StatusUnhealthy {
				c.logger.Error("health probe failed", "probe", name, "message", comp.Message)
			}
		}
	}

	c.mu.Lock()
	c.cached = report
	c.cachedAt = time.Now()
	c.mu.Unlock()

	return report
}

func (c *Checker) freshCached() *Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cached == nil || time.Since(c.cachedAt) >= c.cfg.CacheDuration {
		return nil
	}
	return c.cached
}

// aggregate folds component statuses into one. Unhealthy dominates degraded.
func aggregate(components map[string]Component) Status {
	out := StatusHealthy
	for _, comp := range components {
		switch comp.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			out = StatusDegraded
		}
	}
	return out
}

func (c *Checker) probeRPC(ctx context.Context) Component {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.MaxResponseTime)
	defer cancel()

	start := time.Now()
	status, err := c.rpc.Status(ctx)
	elapsed := time.Since(start)

	if err != nil {
		return failed(fmt.Sprintf("RPC connection failed: %v", err))
	}

	comp := Component{
		Status:    StatusHealthy,
		Message:   "RPC endpoint is responsive",
		Timestamp: time.Now(),
		Metrics: map[string]interface{}{
			"response_time_ms": elapsed.Milliseconds(),
			"moniker":          status.NodeInfo.Moniker,
			"network":          status.NodeInfo.Network,
		},
	}
	if elapsed > c.cfg.MaxResponseTime/2 {
		comp.Status = StatusDegraded
		comp.Message = "RPC endpoint response time is degraded"
	}
	return comp
}

func (c *Checker) probeConsensus(ctx context.Context) Component {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.MaxResponseTime)
	defer cancel()

	status, err := c.rpc.Status(ctx)
	if err != nil {
		return failed(fmt.Sprintf("failed to get consensus status: %v", err))
	}

	sync := status.SyncInfo
	metrics := map[string]interface{}{
		"latest_block_height": sync.LatestBlockHeight,
		"latest_block_time":   sync.LatestBlockTime.Format(time.RFC3339),
		"catching_up":         sync.CatchingUp,
	}

	if age := time.Since(sync.LatestBlockTime); age > c.cfg.StaleAfter {
		metrics["block_age_seconds"] = age.Seconds()
		return Component{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("node is stale, last block %.1f minutes ago", age.Minutes()),
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	}

	comp := Component{
		Status:    StatusHealthy,
		Message:   "consensus is healthy",
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
	if sync.CatchingUp {
		comp.Status = StatusDegraded
		comp.Message = "node is catching up with the network"
	}
	return comp
}

func (c *Checker) probePeers(ctx context.Context) Component {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.MaxResponseTime)
	defer cancel()

	netInfo, err := c.rpc.NetInfo(ctx)
	if err != nil {
		return failed(fmt.Sprintf("failed to get network info: %v", err))
	}

	comp := Component{
		Timestamp: time.Now(),
		Metrics: map[string]interface{}{
			"peer_count": netInfo.NPeers,
			"listening":  netInfo.Listening,
			"listeners":  netInfo.Listeners,
		},
	}
	switch {
	case netInfo.NPeers == 0:
		comp.Status = StatusUnhealthy
		comp.Message = "no peers connected"
	case netInfo.NPeers < c.cfg.MinPeerCount:
		comp.Status = StatusDegraded
		comp.Message = fmt.Sprintf("low peer count: %d (minimum recommended: %d)", netInfo.NPeers, c.cfg.MinPeerCount)
	default:
		comp.Status = StatusHealthy
		comp.Message = fmt.Sprintf("network healthy with %d peers", netInfo.NPeers)
	}
	return comp
}

// probeApp exercises the ABCI query path, which reads through the application
// database. A slow answer here usually means disk pressure.
func (c *Checker) probeApp(ctx context.Context) Component {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.MaxResponseTime)
	defer cancel()

	start := time.Now()
	_, err := c.rpc.ABCIInfo(ctx)
	elapsed := time.Since(start)

	if err != nil {
		return failed(fmt.Sprintf("database query failed: %v", err))
	}

	comp := Component{
		Status:    StatusHealthy,
		Message:   "database is responsive",
		Timestamp: time.Now(),
		Metrics: map[string]interface{}{
			"query_time_ms": elapsed.Milliseconds(),
		},
	}
	if elapsed > time.Second {
		comp.Status = StatusDegraded
		comp.Message = "database response time is degraded"
	}
	return comp
}

// probeModules reports the module set the node runs. Module state queries go
// through the ABCI path, so reachability is already covered by probeApp.
func (c *Checker) probeModules(_ context.Context) Component {
	modules := []string{"bank", "staking", "amm", "bonding", "epochs"}
	moduleStatus := make(map[string]string, len(modules))
	for _, m := range modules {
		moduleStatus[m] = "healthy"
	}

	return Component{
		Status:    StatusHealthy,
		Message:   "all modules operational",
		Timestamp: time.Now(),
		Metrics:   map[string]interface{}{"modules": moduleStatus},
	}
}

func failed(msg string) Component {
	return Component{
		Status:    StatusUnhealthy,
		Message:   msg,
		Timestamp: time.Now(),
	}
}

// RegisterRoutes mounts the health endpoints on the API server router.
func (c *Checker) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", c.handleLive).Methods("GET")
	router.HandleFunc("/health/ready", c.handleReady).Methods("GET")
	router.HandleFunc("/health/detailed", c.handleDetailed).Methods("GET")
}

// handleLive answers 200 unconditionally; serving the request is the check.
func (c *Checker) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// handleReady reports 503 only when the node is unhealthy. A degraded node
// is still ready: it can serve queries while catching up.
func (c *Checker) handleReady(w http.ResponseWriter, r *http.Request) {
	report := c.Check(r.Context(), false)

	code := http.StatusOK
	if report.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, report)
}

func (c *Checker) handleDetailed(w http.ResponseWriter, r *http.Request) {
	report := c.Check(r.Context(), true)

	code := http.StatusOK
	if report.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, report)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}
