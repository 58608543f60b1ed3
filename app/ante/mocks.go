package ante

import (
	"context"
	"time"

	"cosmossdk.io/core/address"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	proto "google.golang.org/protobuf/proto"
)

// mockMemoTx is a minimal tx implementing sdk.TxWithMemo for testing memo limits.
type mockMemoTx struct {
	memo string
}

func (m mockMemoTx) GetMsgs() []sdk.Msg                  { return nil }
func (m mockMemoTx) GetMsgsV2() ([]proto.Message, error) { return nil, nil }
func (m mockMemoTx) ValidateBasic() error                { return nil }
func (m mockMemoTx) GetMemo() string                     { return m.memo }

// mockMsgTx carries a fixed message list for exercising decorators
// without a full tx factory.
type mockMsgTx struct {
	msgs []sdk.Msg
}

func (m mockMsgTx) GetMsgs() []sdk.Msg                  { return m.msgs }
func (m mockMsgTx) GetMsgsV2() ([]proto.Message, error) { return nil, nil }
func (m mockMsgTx) ValidateBasic() error                { return nil }

// mockAccountKeeper satisfies the ante AccountKeeper interface for
// handler construction tests.
type mockAccountKeeper struct{}

func (mockAccountKeeper) GetParams(ctx context.Context) authtypes.Params { return authtypes.Params{} }
func (mockAccountKeeper) GetAccount(ctx context.Context, addr sdk.AccAddress) sdk.AccountI {
	return nil
}
func (mockAccountKeeper) SetAccount(ctx context.Context, acc sdk.AccountI) {}
func (mockAccountKeeper) GetModuleAddress(moduleName string) sdk.AccAddress {
	return authtypes.NewModuleAddress(moduleName)
}
func (mockAccountKeeper) AddressCodec() address.Codec { return nil }
func (mockAccountKeeper) UnorderedTransactionsEnabled() bool { return false }
func (mockAccountKeeper) RemoveExpiredUnorderedNonces(ctx sdk.Context) error {
	return nil
}
func (mockAccountKeeper) TryAddUnorderedNonce(ctx sdk.Context, sender []byte, timestamp time.Time) error {
	return nil
}

// mockBankKeeper satisfies the auth BankKeeper interface for handler
// construction tests.
type mockBankKeeper struct{}

func (mockBankKeeper) IsSendEnabledCoins(ctx context.Context, coins ...sdk.Coin) error { return nil }
func (mockBankKeeper) SendCoins(ctx context.Context, from, to sdk.AccAddress, amt sdk.Coins) error {
	return nil
}
func (mockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return nil
}
