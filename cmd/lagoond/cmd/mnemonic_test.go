package cmd

import (
	"strings"
	"testing"

	"github.com/cosmos/go-bip39"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestNewMnemonicLengths(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		wantWords int
		wantErr   bool
	}{
		{"12 words", 12, 12, false},
		{"24 words", 24, 24, false},
		{"unsupported length", 15, 0, true},
		{"zero length", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mnemonic, err := newMnemonic(tt.length)
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "12 or 24")
				return
			}
			require.NoError(t, err)
			require.Len(t, strings.Fields(mnemonic), tt.wantWords)
			require.True(t, bip39.IsMnemonicValid(mnemonic))
		})
	}
}

func TestNewMnemonicIsRandom(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 32; i++ {
		mnemonic, err := newMnemonic(24)
		require.NoError(t, err)
		if _, dup := seen[mnemonic]; dup {
			t.Fatal("newMnemonic produced a duplicate phrase")
		}
		seen[mnemonic] = struct{}{}
	}
}

func TestMnemonicSeedDerivation(t *testing.T) {
	const vector = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	seed := bip39.NewSeed(vector, "")
	require.Len(t, seed, 64)

	// Derivation is deterministic and passphrase sensitive.
	require.Equal(t, seed, bip39.NewSeed(vector, ""))
	require.NotEqual(t, seed, bip39.NewSeed(vector, "trezor"))
}

func promptCmd(stdin string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&strings.Builder{})
	return cmd
}

func TestPromptMnemonicNormalizesWhitespace(t *testing.T) {
	raw := "  abandon   abandon abandon\tabandon abandon abandon abandon abandon abandon abandon abandon about  \n"

	mnemonic, words, err := promptMnemonic(promptCmd(raw))
	require.NoError(t, err)
	require.Equal(t, 12, words)
	require.Equal(t, "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", mnemonic)
}

func TestPromptMnemonicRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
	}{
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon\n"},
		{"word not in list", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon zzzz\n"},
		{"too short", "abandon abandon abandon\n"},
		{"empty", "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := promptMnemonic(promptCmd(tt.stdin))
			require.Error(t, err)
		})
	}
}

func BenchmarkNewMnemonic24(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = newMnemonic(24)
	}
}
