package binding

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/adapters/chain/contract"
	"github.com/bnema/fhe-strength-tracker/internal/adapters/chain/local"
	statebadger "github.com/bnema/fhe-strength-tracker/internal/adapters/state/badger"
	"github.com/bnema/fhe-strength-tracker/internal/adapters/wallet/keystore"
	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	err error
}

func (v stubVerifier) VerifyInput(context.Context, ports.StateReader, domain.EncryptedField, common.Address, common.Address) error {
	return v.err
}

type allowAll struct{}

func (allowAll) Allow(context.Context, ports.StateTx, domain.Handle, common.Address) error {
	return nil
}

func (allowAll) IsAllowed(context.Context, ports.StateReader, domain.Handle, common.Address) (bool, error) {
	return true, nil
}

func newTestWallet(t *testing.T, chainID uint64) *keystore.Wallet {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return keystore.New(key, chainID)
}

func newBoundLedger(t *testing.T, verifier ports.InputVerifier, maxRecords uint64) (*Ledger, *keystore.Wallet) {
	t.Helper()

	state, err := statebadger.Open(statebadger.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = state.Close() })

	host, err := local.NewHost(local.Options{
		ChainID: domain.ChainIDHardhat,
		State:   state,
		Ledger:  application.NewLedger(verifier, allowAll{}, application.LedgerOptions{MaxRecordsPerOwner: maxRecords}),
	})
	require.NoError(t, err)

	wallet := newTestWallet(t, domain.ChainIDHardhat)
	address, err := host.Deploy(context.Background(), wallet.Address())
	require.NoError(t, err)

	client, err := NewBinder(host, nil).Bind(address)
	require.NoError(t, err)

	return client.(*Ledger), wallet
}

func testInput(seed byte) domain.EncryptedInput {
	field := func(b byte) domain.EncryptedField {
		var h domain.Handle
		h[0], h[31] = seed, b
		return domain.EncryptedField{Handle: h, Proof: []byte{seed, b}}
	}

	return domain.EncryptedInput{Weight: field(1), Sets: field(2), Reps: field(3)}
}

func TestLedgerRecordTrainingThenRead(t *testing.T) {
	t.Parallel()

	ledger, wallet := newBoundLedger(t, stubVerifier{}, 0)
	ctx := context.Background()

	receipt, err := ledger.RecordTraining(ctx, wallet, testInput(1))
	require.NoError(t, err)
	assert.True(t, receipt.Succeeded())
	assert.Equal(t, wallet.Address(), receipt.From)

	count, err := ledger.GetRecordCount(ctx, wallet.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	record, err := ledger.GetRecord(ctx, wallet.Address(), 0)
	require.NoError(t, err)
	assert.Equal(t, testInput(1).Weight.Handle, record.Weight)
	assert.Equal(t, testInput(1).Reps.Handle, record.Reps)
	assert.Equal(t, receipt.Timestamp, record.Timestamp)

	columns, err := ledger.GetAllRecords(ctx, wallet.Address())
	require.NoError(t, err)
	require.Equal(t, 1, columns.Len())
	assert.Equal(t, record, columns.At(wallet.Address(), 0))

	id, err := ledger.ProtocolID(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ProtocolID, id)
}

func TestLedgerRecordTrainingSurfacesRevert(t *testing.T) {
	t.Parallel()

	ledger, wallet := newBoundLedger(t, stubVerifier{err: domain.ErrInvalidProof}, 0)
	ctx := context.Background()

	receipt, err := ledger.RecordTraining(ctx, wallet, testInput(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidProof)
	assert.False(t, receipt.Succeeded())

	var revert *contract.RevertError
	require.ErrorAs(t, err, &revert)
	assert.Equal(t, "Invalid input proof", revert.Reason)

	count, err := ledger.GetRecordCount(ctx, wallet.Address())
	require.NoError(t, err)
	assert.Zero(t, count)

	// The reverted transaction still consumed its nonce.
	_, err = ledger.RecordTraining(ctx, wallet, testInput(2))
	require.ErrorIs(t, err, domain.ErrInvalidProof)
}

func TestLedgerRecordLimit(t *testing.T) {
	t.Parallel()

	ledger, wallet := newBoundLedger(t, stubVerifier{}, 2)
	ctx := context.Background()

	for i := byte(0); i < 2; i++ {
		_, err := ledger.RecordTraining(ctx, wallet, testInput(i))
		require.NoError(t, err)
	}

	_, err := ledger.RecordTraining(ctx, wallet, testInput(9))
	require.ErrorIs(t, err, domain.ErrRecordLimitReached)

	count, err := ledger.GetRecordCount(ctx, wallet.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}

func TestLedgerRecordTrainingRejectsMissingOrForeignSigner(t *testing.T) {
	t.Parallel()

	ledger, _ := newBoundLedger(t, stubVerifier{}, 0)
	ctx := context.Background()

	_, err := ledger.RecordTraining(ctx, nil, testInput(1))
	require.ErrorIs(t, err, domain.ErrWalletNotConnected)

	_, err = ledger.RecordTraining(ctx, newTestWallet(t, domain.ChainIDSepolia), testInput(1))
	require.ErrorIs(t, err, ErrChainMismatch)
}

func TestLedgerGetRecordOutOfBounds(t *testing.T) {
	t.Parallel()

	ledger, wallet := newBoundLedger(t, stubVerifier{}, 0)

	_, err := ledger.GetRecord(context.Background(), wallet.Address(), 0)
	require.ErrorIs(t, err, domain.ErrIndexOutOfBounds)

	columns, err := ledger.GetAllRecords(context.Background(), wallet.Address())
	require.NoError(t, err)
	assert.Zero(t, columns.Len())
}

func TestBinderRejectsZeroAddress(t *testing.T) {
	t.Parallel()

	_, err := NewBinder(nil, nil).Bind(common.Address{})
	require.ErrorIs(t, err, domain.ErrNotDeployed)
}

// slowBackend reports the receipt only after a few polls.
type slowBackend struct {
	polls     atomic.Int32
	readyAt   int32
	receipt   domain.Receipt
	receiptFn func() error
}

func (b *slowBackend) ChainID() uint64 { return domain.ChainIDHardhat }

func (b *slowBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) { return 0, nil }

func (b *slowBackend) SendTransaction(_ context.Context, tx domain.SignedTransaction) (common.Hash, error) {
	b.receipt.TxHash = tx.Hash()
	return tx.Hash(), nil
}

func (b *slowBackend) TransactionReceipt(context.Context, common.Hash) (domain.Receipt, error) {
	if b.receiptFn != nil {
		if err := b.receiptFn(); err != nil {
			return domain.Receipt{}, err
		}
	}
	if b.polls.Add(1) < b.readyAt {
		return domain.Receipt{}, ethereum.NotFound
	}
	return b.receipt, nil
}

func (b *slowBackend) Call(context.Context, common.Address, []byte) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func TestLedgerWaitsForReceipt(t *testing.T) {
	t.Parallel()

	backend := &slowBackend{readyAt: 3, receipt: domain.Receipt{Status: domain.ReceiptStatusSuccessful, BlockNumber: 7}}
	ledger := NewLedger(backend, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), nil)
	ledger.pollInterval = time.Millisecond

	receipt, err := ledger.RecordTraining(context.Background(), newTestWallet(t, domain.ChainIDHardhat), testInput(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), receipt.BlockNumber)
	assert.Equal(t, int32(3), backend.polls.Load())
}

func TestLedgerWaitStopsOnContextCancel(t *testing.T) {
	t.Parallel()

	backend := &slowBackend{readyAt: 1 << 30}
	ledger := NewLedger(backend, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), nil)
	ledger.pollInterval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := ledger.RecordTraining(ctx, newTestWallet(t, domain.ChainIDHardhat), testInput(1))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLedgerWaitReturnsBackendFailure(t *testing.T) {
	t.Parallel()

	backend := &slowBackend{receiptFn: func() error { return errors.New("connection reset") }}
	ledger := NewLedger(backend, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), nil)

	_, err := ledger.RecordTraining(context.Background(), newTestWallet(t, domain.ChainIDHardhat), testInput(1))
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
}
