// lagooncli is a client-only entry point. It carries the full command tree
// of lagoond, including the --home flag on the root command, but is intended
// for workstations that never run a validator.
package main

import (
	"os"

	svrcmd "github.com/cosmos/cosmos-sdk/server/cmd"

	"github.com/lagoon-chain/lagoon/app"
	"github.com/lagoon-chain/lagoon/cmd/lagoond/cmd"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	rootCmd := cmd.NewRootCmd(true)
	return svrcmd.Execute(rootCmd, "", app.DefaultNodeHome)
}
