package keystore

import (
	"context"
	"testing"

	filestore "github.com/bnema/fhe-strength-tracker/internal/adapters/secrets/file"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRef = "strength-tracker/wallet/default"

func TestGenerateThenOpenReturnsSameAddress(t *testing.T) {
	t.Parallel()

	store := filestore.NewStore(t.TempDir())
	ctx := context.Background()

	generated, err := Generate(ctx, store, testRef, domain.ChainIDHardhat)
	require.NoError(t, err)

	opened, err := Open(ctx, store, testRef, domain.ChainIDHardhat)
	require.NoError(t, err)

	assert.Equal(t, generated.Address(), opened.Address())
	assert.Equal(t, domain.ChainIDHardhat, opened.ChainID())
}

func TestGenerateRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	store := filestore.NewStore(t.TempDir())
	ctx := context.Background()

	_, err := Generate(ctx, store, testRef, domain.ChainIDHardhat)
	require.NoError(t, err)

	_, err = Generate(ctx, store, testRef, domain.ChainIDHardhat)
	require.ErrorIs(t, err, ErrWalletExists)
}

func TestOpenMissingKeyIsNotConnected(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), filestore.NewStore(t.TempDir()), testRef, domain.ChainIDHardhat)
	require.ErrorIs(t, err, domain.ErrWalletNotConnected)
}

func TestOpenAcceptsPrefixedHexKey(t *testing.T) {
	t.Parallel()

	store := filestore.NewStore(t.TempDir())
	ctx := context.Background()
	// Hardhat's first well-known development account.
	require.NoError(t, store.Put(ctx, testRef, "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80\n"))

	wallet, err := Open(ctx, store, testRef, domain.ChainIDHardhat)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), wallet.Address())
}

func TestSignHashRecoversToWallet(t *testing.T) {
	t.Parallel()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	wallet := New(key, domain.ChainIDHardhat)

	tx := domain.Transaction{
		ChainID: domain.ChainIDHardhat,
		Nonce:   3,
		To:      common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		Data:    []byte{0x01, 0x02},
	}
	sig, err := wallet.SignHash(tx.SigningHash().Bytes())
	require.NoError(t, err)
	signed := domain.SignedTransaction{Transaction: tx, Signature: sig}

	sender, err := signed.Sender()
	require.NoError(t, err)
	assert.Equal(t, wallet.Address(), sender)

	_, err = wallet.SignHash([]byte("short"))
	require.Error(t, err)
}
