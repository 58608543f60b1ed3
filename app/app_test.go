package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRPCURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tcp scheme becomes http", "tcp://localhost:26657", "http://localhost:26657"},
		{"tcp wildcard bind", "tcp://0.0.0.0:26657", "http://0.0.0.0:26657"},
		{"http passes through", "http://rpc.lagoon.zone:26657", "http://rpc.lagoon.zone:26657"},
		{"https passes through", "https://rpc.lagoon-chain.io:443", "https://rpc.lagoon-chain.io:443"},
		{"unix socket passes through", "unix:///tmp/lagoon.sock", "unix:///tmp/lagoon.sock"},
		{"surrounding whitespace trimmed", "  tcp://localhost:26657\n", "http://localhost:26657"},
		{"blank input", "   ", ""},
		{"empty input", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, normalizeRPCURL(tc.in))
		})
	}
}
