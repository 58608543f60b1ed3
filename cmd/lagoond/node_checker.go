package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// rpcNodeChecker probes the local CometBFT RPC endpoint over plain HTTP JSON
// rather than the typed RPC client: the checker must keep working when the
// node is half-up and the client stack would refuse to dial.
type rpcNodeChecker struct {
	rpcAddr string
	client  *http.Client
}

// NewNodeChecker returns a checker bound to the given RPC address, e.g.
// "http://localhost:26657".
func NewNodeChecker(rpcAddr string) *rpcNodeChecker {
	return &rpcNodeChecker{
		rpcAddr: rpcAddr,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// getJSON issues a GET against the RPC endpoint and decodes the response into
// out. A nil out skips decoding, which is all the /health probe needs.
func (nc *rpcNodeChecker) getJSON(path string, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nc.rpcAddr+path, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", path, err)
	}

	resp, err := nc.client.Do(req)
	if err != nil {
		return fmt.Errorf("rpc %s unreachable: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc %s returned status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// CheckRPC verifies the RPC endpoint answers its /health probe.
func (nc *rpcNodeChecker) CheckRPC() error {
	return nc.getJSON("/health", nil)
}

// CheckSync reports whether the node is still catching up and its latest
// block height, read from /status.
func (nc *rpcNodeChecker) CheckSync() (bool, int64, error) {
	var status struct {
		Result struct {
			SyncInfo struct {
				CatchingUp        bool   `json:"catching_up"`
				LatestBlockHeight string `json:"latest_block_height"`
			} `json:"sync_info"`
		} `json:"result"`
	}
	if err := nc.getJSON("/status", &status); err != nil {
		return false, 0, err
	}

	height, err := strconv.ParseInt(status.Result.SyncInfo.LatestBlockHeight, 10, 64)
	if err != nil {
		return false, 0, fmt.Errorf("parse block height %q: %w", status.Result.SyncInfo.LatestBlockHeight, err)
	}
	return status.Result.SyncInfo.CatchingUp, height, nil
}

// CheckConsensus is a no-op for the RPC checker. Validator-specific signing
// checks belong to external monitoring that knows the validator key.
func (nc *rpcNodeChecker) CheckConsensus() error {
	return nil
}

// GetPeerCount returns the number of connected peers from /net_info.
func (nc *rpcNodeChecker) GetPeerCount() (int, error) {
	var netInfo struct {
		Result struct {
			NPeers string `json:"n_peers"`
		} `json:"result"`
	}
	if err := nc.getJSON("/net_info", &netInfo); err != nil {
		return 0, err
	}
	peers, err := strconv.Atoi(netInfo.Result.NPeers)
	if err != nil {
		return 0, fmt.Errorf("parse peer count %q: %w", netInfo.Result.NPeers, err)
	}
	return peers, nil
}

// GetBlockHeight returns the node's latest block height.
func (nc *rpcNodeChecker) GetBlockHeight() (int64, error) {
	_, height, err := nc.CheckSync()
	return height, err
}
