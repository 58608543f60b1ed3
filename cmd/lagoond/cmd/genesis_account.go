package cmd

import (
	authcodec "github.com/cosmos/cosmos-sdk/x/auth/codec"
	genutilcli "github.com/cosmos/cosmos-sdk/x/genutil/client/cli"
	"github.com/spf13/cobra"

	"github.com/lagoon-chain/lagoon/app"
)

// AddGenesisAccountCmd returns the add-genesis-account command bound to the
// lagoon bech32 prefix.
func AddGenesisAccountCmd(defaultNodeHome string) *cobra.Command {
	return genutilcli.AddGenesisAccountCmd(defaultNodeHome, authcodec.NewBech32Codec(app.Bech32PrefixAccAddr))
}
