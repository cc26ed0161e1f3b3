package application

import (
	"context"
	"fmt"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum/common"
)

// CallEnv is the execution context the host supplies to a ledger write.
type CallEnv struct {
	ChainID   uint64
	Contract  common.Address
	Caller    common.Address
	Timestamp uint64
}

type LedgerOptions struct {
	// MaxRecordsPerOwner caps each owner's history. Zero means unbounded.
	MaxRecordsPerOwner uint64
}

// Ledger is the encrypted record ledger. It holds no state of its own: every
// call reads or writes the host state handed to it, and the host is
// responsible for serializing writes and discarding failed ones.
type Ledger struct {
	verifier ports.InputVerifier
	acl      ports.AccessControl
	opts     LedgerOptions
}

func NewLedger(verifier ports.InputVerifier, acl ports.AccessControl, opts LedgerOptions) *Ledger {
	return &Ledger{verifier: verifier, acl: acl, opts: opts}
}

func (l *Ledger) ProtocolID() uint64 {
	return domain.ProtocolID
}

func (l *Ledger) RecordTraining(ctx context.Context, env CallEnv, tx ports.StateTx, input domain.EncryptedInput) error {
	fields := input.Fields()
	for _, field := range fields {
		if err := l.verifier.VerifyInput(ctx, tx, field, env.Contract, env.Caller); err != nil {
			return fmt.Errorf("verify input %s: %w", field.Handle.Hex(), err)
		}
	}

	count, err := readCount(tx, env.Contract, env.Caller)
	if err != nil {
		return err
	}
	if l.opts.MaxRecordsPerOwner > 0 && count >= l.opts.MaxRecordsPerOwner {
		return domain.ErrRecordLimitReached
	}

	record := domain.Record{
		Owner:     env.Caller,
		Weight:    input.Weight.Handle,
		Sets:      input.Sets.Handle,
		Reps:      input.Reps.Handle,
		Timestamp: env.Timestamp,
	}
	if err := writeRecord(tx, env.Contract, count, record); err != nil {
		return err
	}
	if err := writeCount(tx, env.Contract, env.Caller, count+1); err != nil {
		return err
	}

	for _, field := range fields {
		for _, account := range []common.Address{env.Contract, env.Caller} {
			if err := l.acl.Allow(ctx, tx, field.Handle, account); err != nil {
				return fmt.Errorf("grant access on %s to %s: %w", field.Handle.Hex(), account.Hex(), err)
			}
		}
	}

	return nil
}

func (l *Ledger) GetRecord(ctx context.Context, r ports.StateReader, contract, owner common.Address, index uint64) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return domain.Record{}, err
	}

	count, err := readCount(r, contract, owner)
	if err != nil {
		return domain.Record{}, err
	}
	if index >= count {
		return domain.Record{}, domain.ErrIndexOutOfBounds
	}

	return readRecord(r, contract, owner, index)
}

func (l *Ledger) GetAllRecords(ctx context.Context, r ports.StateReader, contract, owner common.Address) (domain.RecordColumns, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecordColumns{}, err
	}

	count, err := readCount(r, contract, owner)
	if err != nil {
		return domain.RecordColumns{}, err
	}

	return scanRecords(r, contract, owner, count)
}

func (l *Ledger) GetRecordCount(ctx context.Context, r ports.StateReader, contract, owner common.Address) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	return readCount(r, contract, owner)
}
