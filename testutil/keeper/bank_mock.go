package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// MockBankKeeper is an in-memory bank backend for keeper tests. It
// tracks balances per address, treats module accounts as regular
// addresses derived the same way the auth module derives them, and
// fails transfers that would overdraw.
type MockBankKeeper struct {
	balances map[string]sdk.Coins
}

// NewMockBankKeeper returns an empty mock bank.
func NewMockBankKeeper() *MockBankKeeper {
	return &MockBankKeeper{
		balances: make(map[string]sdk.Coins),
	}
}

// FundAccount credits coins to an address out of thin air.
func (m *MockBankKeeper) FundAccount(addr sdk.AccAddress, amt sdk.Coins) {
	m.balances[addr.String()] = m.balances[addr.String()].Add(amt...)
}

// FundModule credits coins to a module account out of thin air.
func (m *MockBankKeeper) FundModule(moduleName string, amt sdk.Coins) {
	m.FundAccount(authtypes.NewModuleAddress(moduleName), amt)
}

// Balance returns the full balance of an address.
func (m *MockBankKeeper) Balance(addr sdk.AccAddress) sdk.Coins {
	return m.balances[addr.String()]
}

// ModuleBalance returns the full balance of a module account.
func (m *MockBankKeeper) ModuleBalance(moduleName string) sdk.Coins {
	return m.balances[authtypes.NewModuleAddress(moduleName).String()]
}

func (m *MockBankKeeper) transfer(from, to sdk.AccAddress, amt sdk.Coins) error {
	fromBalance := m.balances[from.String()]
	if !amt.IsZero() && !fromBalance.IsAllGTE(amt) {
		return fmt.Errorf("insufficient funds: %s has %s, needs %s", from, fromBalance, amt)
	}
	m.balances[from.String()] = fromBalance.Sub(amt...)
	m.balances[to.String()] = m.balances[to.String()].Add(amt...)
	return nil
}

// SendCoinsFromAccountToModule moves coins from an account to a module account.
func (m *MockBankKeeper) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return m.transfer(senderAddr, authtypes.NewModuleAddress(recipientModule), amt)
}

// SendCoinsFromModuleToAccount moves coins from a module account to an account.
func (m *MockBankKeeper) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return m.transfer(authtypes.NewModuleAddress(senderModule), recipientAddr, amt)
}

// SendCoinsFromModuleToModule moves coins between module accounts.
func (m *MockBankKeeper) SendCoinsFromModuleToModule(_ context.Context, senderModule, recipientModule string, amt sdk.Coins) error {
	return m.transfer(authtypes.NewModuleAddress(senderModule), authtypes.NewModuleAddress(recipientModule), amt)
}

// MintCoins credits freshly minted coins to a module account.
func (m *MockBankKeeper) MintCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	m.FundModule(moduleName, amt)
	return nil
}

// BurnCoins debits coins from a module account.
func (m *MockBankKeeper) BurnCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	addr := authtypes.NewModuleAddress(moduleName)
	balance := m.balances[addr.String()]
	if !amt.IsZero() && !balance.IsAllGTE(amt) {
		return fmt.Errorf("cannot burn %s: module %s holds %s", amt, moduleName, balance)
	}
	m.balances[addr.String()] = balance.Sub(amt...)
	return nil
}

// GetBalance returns the balance of one denom for an address.
func (m *MockBankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, m.balances[addr.String()].AmountOf(denom))
}
