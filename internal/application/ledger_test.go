package application

import (
	"bytes"
	"context"
	"sync"
	"testing"

	statebadger "github.com/bnema/fhe-strength-tracker/internal/adapters/state/badger"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ledgerAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	otherLedger   = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	alice         = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	bob           = common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
)

// callerProofVerifier accepts a field only when its proof is the caller address.
type callerProofVerifier struct{}

func (callerProofVerifier) VerifyInput(_ context.Context, _ ports.StateReader, field domain.EncryptedField, _ common.Address, caller common.Address) error {
	if !bytes.Equal(field.Proof, caller.Bytes()) {
		return domain.ErrInvalidProof
	}
	return nil
}

type grant struct {
	handle  domain.Handle
	account common.Address
}

type recordingACL struct {
	mu     sync.Mutex
	grants []grant
}

func (a *recordingACL) Allow(_ context.Context, _ ports.StateTx, handle domain.Handle, account common.Address) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.grants = append(a.grants, grant{handle: handle, account: account})
	return nil
}

func (a *recordingACL) IsAllowed(_ context.Context, _ ports.StateReader, handle domain.Handle, account common.Address) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, g := range a.grants {
		if g.handle == handle && g.account == account {
			return true, nil
		}
	}
	return false, nil
}

type ledgerFixture struct {
	state  *statebadger.Store
	ledger *Ledger
	acl    *recordingACL
}

func newLedgerFixture(t *testing.T, opts LedgerOptions) *ledgerFixture {
	t.Helper()

	state, err := statebadger.Open(statebadger.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = state.Close() })

	acl := &recordingACL{}
	return &ledgerFixture{state: state, ledger: NewLedger(callerProofVerifier{}, acl, opts), acl: acl}
}

func (f *ledgerFixture) record(contract, caller common.Address, ts uint64, input domain.EncryptedInput) error {
	env := CallEnv{ChainID: domain.ChainIDHardhat, Contract: contract, Caller: caller, Timestamp: ts}
	return f.state.Update(context.Background(), func(tx ports.StateTx) error {
		return f.ledger.RecordTraining(context.Background(), env, tx, input)
	})
}

func (f *ledgerFixture) count(t *testing.T, contract, owner common.Address) uint64 {
	t.Helper()

	var count uint64
	require.NoError(t, f.state.View(context.Background(), func(r ports.StateReader) error {
		var err error
		count, err = f.ledger.GetRecordCount(context.Background(), r, contract, owner)
		return err
	}))
	return count
}

func (f *ledgerFixture) get(contract, owner common.Address, index uint64) (domain.Record, error) {
	var record domain.Record
	err := f.state.View(context.Background(), func(r ports.StateReader) error {
		var err error
		record, err = f.ledger.GetRecord(context.Background(), r, contract, owner, index)
		return err
	})
	return record, err
}

func (f *ledgerFixture) all(t *testing.T, contract, owner common.Address) domain.RecordColumns {
	t.Helper()

	var columns domain.RecordColumns
	require.NoError(t, f.state.View(context.Background(), func(r ports.StateReader) error {
		var err error
		columns, err = f.ledger.GetAllRecords(context.Background(), r, contract, owner)
		return err
	}))
	return columns
}

func (f *ledgerFixture) ledgerKeys(t *testing.T) int {
	t.Helper()

	keys := 0
	require.NoError(t, f.state.View(context.Background(), func(r ports.StateReader) error {
		return r.Iterate(ledgerKeyPrefix, func(_, _ []byte) error {
			keys++
			return nil
		})
	}))
	return keys
}

func inputFor(caller common.Address, seed byte) domain.EncryptedInput {
	field := func(slot byte) domain.EncryptedField {
		var handle domain.Handle
		handle[0], handle[1] = seed, slot
		copy(handle[12:], caller.Bytes())
		return domain.EncryptedField{Handle: handle, Proof: caller.Bytes()}
	}

	return domain.EncryptedInput{Weight: field(1), Sets: field(2), Reps: field(3)}
}

func TestLedgerProtocolID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(10001), NewLedger(nil, nil, LedgerOptions{}).ProtocolID())
}

func TestLedgerEmptyOwner(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t, LedgerOptions{})

	assert.Zero(t, f.count(t, ledgerAddress, alice))

	columns := f.all(t, ledgerAddress, alice)
	assert.Zero(t, columns.Len())
	assert.NotNil(t, columns.Weights)
	assert.NotNil(t, columns.Sets)
	assert.NotNil(t, columns.Reps)
	assert.NotNil(t, columns.Timestamps)

	_, err := f.get(ledgerAddress, alice, 0)
	require.ErrorIs(t, err, domain.ErrIndexOutOfBounds)
	assert.Zero(t, f.ledgerKeys(t))
}

func TestLedgerAppendsInOrder(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t, LedgerOptions{})
	timestamps := []uint64{1_700_000_000, 1_700_000_000, 1_700_000_012}
	for i, ts := range timestamps {
		require.NoError(t, f.record(ledgerAddress, alice, ts, inputFor(alice, byte(i))))
	}

	n := uint64(len(timestamps))
	assert.Equal(t, n, f.count(t, ledgerAddress, alice))

	columns := f.all(t, ledgerAddress, alice)
	require.Equal(t, len(timestamps), columns.Len())
	assert.Len(t, columns.Weights, columns.Len())
	assert.Len(t, columns.Sets, columns.Len())
	assert.Len(t, columns.Reps, columns.Len())

	var previous uint64
	for i := uint64(0); i < n; i++ {
		record, err := f.get(ledgerAddress, alice, i)
		require.NoError(t, err)

		assert.Equal(t, columns.At(alice, int(i)), record)
		assert.Equal(t, inputFor(alice, byte(i)).Weight.Handle, record.Weight)
		assert.Equal(t, inputFor(alice, byte(i)).Sets.Handle, record.Sets)
		assert.Equal(t, inputFor(alice, byte(i)).Reps.Handle, record.Reps)
		assert.Equal(t, alice, record.Owner)
		assert.Positive(t, record.Timestamp)
		assert.GreaterOrEqual(t, record.Timestamp, previous)
		previous = record.Timestamp
	}

	_, err := f.get(ledgerAddress, alice, n)
	require.ErrorIs(t, err, domain.ErrIndexOutOfBounds)
}

func TestLedgerGetAllRecordsKeepsOrderPastOneByteIndexes(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t, LedgerOptions{})
	const n = 300
	for i := 0; i < n; i++ {
		require.NoError(t, f.record(ledgerAddress, alice, uint64(1_700_000_000+i), inputFor(alice, byte(i))))
	}

	columns := f.all(t, ledgerAddress, alice)
	require.Equal(t, n, columns.Len())
	for i := 0; i < n; i++ {
		assert.Equal(t, uint64(1_700_000_000+i), columns.At(alice, i).Timestamp)
	}
}

func TestLedgerGetAllRecordsRejectsMissingRecord(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t, LedgerOptions{})
	require.NoError(t, f.record(ledgerAddress, alice, 1_700_000_000, inputFor(alice, 1)))
	require.NoError(t, f.state.Update(context.Background(), func(tx ports.StateTx) error {
		return writeCount(tx, ledgerAddress, alice, 2)
	}))

	err := f.state.View(context.Background(), func(r ports.StateReader) error {
		_, err := f.ledger.GetAllRecords(context.Background(), r, ledgerAddress, alice)
		return err
	})
	require.ErrorContains(t, err, "record 1 of "+alice.Hex()+" missing below count")
}

func TestLedgerInvalidProofLeavesNoTrace(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t, LedgerOptions{})
	require.NoError(t, f.record(ledgerAddress, alice, 10, inputFor(alice, 0)))
	keysBefore := f.ledgerKeys(t)

	testCases := []struct {
		name   string
		mutate func(*domain.EncryptedInput)
	}{
		{name: "weight", mutate: func(in *domain.EncryptedInput) { in.Weight.Proof = nil }},
		{name: "sets", mutate: func(in *domain.EncryptedInput) { in.Sets.Proof = bob.Bytes() }},
		{name: "reps", mutate: func(in *domain.EncryptedInput) { in.Reps.Proof = []byte{1} }},
	}

	for _, tc := range testCases {
		input := inputFor(alice, 1)
		tc.mutate(&input)

		err := f.record(ledgerAddress, alice, 11, input)
		require.ErrorIs(t, err, domain.ErrInvalidProof, tc.name)
	}

	// Submitting another caller's ciphertexts fails the caller binding too.
	require.ErrorIs(t, f.record(ledgerAddress, bob, 12, inputFor(alice, 2)), domain.ErrInvalidProof)

	assert.Equal(t, uint64(1), f.count(t, ledgerAddress, alice))
	assert.Zero(t, f.count(t, ledgerAddress, bob))
	assert.Equal(t, keysBefore, f.ledgerKeys(t))
	assert.Len(t, f.acl.grants, 6)
}

func TestLedgerGrantsAccessToContractAndCaller(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t, LedgerOptions{})
	input := inputFor(alice, 7)
	require.NoError(t, f.record(ledgerAddress, alice, 10, input))

	for _, field := range input.Fields() {
		for _, account := range []common.Address{ledgerAddress, alice} {
			allowed, err := f.acl.IsAllowed(context.Background(), nil, field.Handle, account)
			require.NoError(t, err)
			assert.True(t, allowed, "%s for %s", field.Handle.Hex(), account.Hex())
		}

		allowed, err := f.acl.IsAllowed(context.Background(), nil, field.Handle, bob)
		require.NoError(t, err)
		assert.False(t, allowed)
	}
}

func TestLedgerIsolatesOwnersAndContracts(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t, LedgerOptions{})
	require.NoError(t, f.record(ledgerAddress, alice, 10, inputFor(alice, 0)))
	require.NoError(t, f.record(ledgerAddress, alice, 11, inputFor(alice, 1)))
	require.NoError(t, f.record(ledgerAddress, bob, 12, inputFor(bob, 0)))
	require.NoError(t, f.record(otherLedger, alice, 13, inputFor(alice, 9)))

	assert.Equal(t, uint64(2), f.count(t, ledgerAddress, alice))
	assert.Equal(t, uint64(1), f.count(t, ledgerAddress, bob))
	assert.Equal(t, uint64(1), f.count(t, otherLedger, alice))
	assert.Zero(t, f.count(t, otherLedger, bob))

	bobRecord, err := f.get(ledgerAddress, bob, 0)
	require.NoError(t, err)
	assert.Equal(t, inputFor(bob, 0).Weight.Handle, bobRecord.Weight)
	assert.Equal(t, uint64(12), bobRecord.Timestamp)

	otherRecord, err := f.get(otherLedger, alice, 0)
	require.NoError(t, err)
	assert.Equal(t, inputFor(alice, 9).Reps.Handle, otherRecord.Reps)

	_, err = f.get(ledgerAddress, bob, 1)
	require.ErrorIs(t, err, domain.ErrIndexOutOfBounds)
}

func TestLedgerRecordLimit(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t, LedgerOptions{MaxRecordsPerOwner: 2})
	require.NoError(t, f.record(ledgerAddress, alice, 10, inputFor(alice, 0)))
	require.NoError(t, f.record(ledgerAddress, alice, 11, inputFor(alice, 1)))

	err := f.record(ledgerAddress, alice, 12, inputFor(alice, 2))
	require.ErrorIs(t, err, domain.ErrRecordLimitReached)
	assert.Equal(t, uint64(2), f.count(t, ledgerAddress, alice))

	// The cap is per owner.
	require.NoError(t, f.record(ledgerAddress, bob, 13, inputFor(bob, 0)))
}

func TestLedgerReadsHonourCancelledContext(t *testing.T) {
	t.Parallel()

	f := newLedgerFixture(t, LedgerOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.state.View(context.Background(), func(r ports.StateReader) error {
		_, err := f.ledger.GetRecordCount(ctx, r, ledgerAddress, alice)
		return err
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRecordEncodingRoundTrip(t *testing.T) {
	t.Parallel()

	record := domain.Record{
		Owner:     alice,
		Weight:    inputFor(alice, 1).Weight.Handle,
		Sets:      inputFor(alice, 1).Sets.Handle,
		Reps:      inputFor(alice, 1).Reps.Handle,
		Timestamp: 1_700_000_000,
	}

	raw := encodeRecord(record)
	require.Len(t, raw, recordEncodedLength)

	decoded, err := decodeRecord(alice, raw)
	require.NoError(t, err)
	assert.Equal(t, record, decoded)

	_, err = decodeRecord(alice, raw[:50])
	require.Error(t, err)
}
