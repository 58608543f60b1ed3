package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func subcommandNames(cmd *cobra.Command) map[string]bool {
	names := make(map[string]bool, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	return names
}

func TestQueryCommandStructure(t *testing.T) {
	initSDKConfig()
	cmd := queryCommand()

	require.Equal(t, "query", cmd.Use)
	require.Contains(t, cmd.Aliases, "q")
	require.Equal(t, "Querying subcommands", cmd.Short)
	require.True(t, cmd.DisableFlagParsing)
	require.Equal(t, 2, cmd.SuggestionsMinimumDistance)
	require.NotNil(t, cmd.RunE)
}

func TestQueryCommandCoreSubcommands(t *testing.T) {
	initSDKConfig()
	names := subcommandNames(queryCommand())

	// Registered explicitly; module queries ride on top via gRPC/autocli.
	for _, want := range []string{"validator", "block", "blocks", "block-results", "tx", "txs"} {
		require.True(t, names[want], "query should register %q", want)
	}
}

func TestQueryCommandHelp(t *testing.T) {
	initSDKConfig()
	cmd := queryCommand()

	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "Querying subcommands")
	require.Contains(t, out.String(), "Usage:")
}

func TestQueryCommandNoArgsShowsHelp(t *testing.T) {
	initSDKConfig()
	cmd := queryCommand()

	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
}

func TestQueryCommandRejectsUnknownSubcommand(t *testing.T) {
	initSDKConfig()
	cmd := queryCommand()

	var out strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"no-such-query"})

	require.Error(t, cmd.Execute())
}

func BenchmarkQueryCommandCreation(b *testing.B) {
	initSDKConfig()
	for i := 0; i < b.N; i++ {
		_ = queryCommand()
	}
}
