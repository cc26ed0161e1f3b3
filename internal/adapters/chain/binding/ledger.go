// Package binding is the client side of the ledger ABI. It implements
// ports.LedgerClient over any backend that can call, send and report receipts.
package binding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/adapters/chain/contract"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

const defaultPollInterval = 50 * time.Millisecond

var ErrChainMismatch = errors.New("signer is on a different chain")

type Backend interface {
	ChainID() uint64
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx domain.SignedTransaction) (common.Hash, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (domain.Receipt, error)
	Call(ctx context.Context, to common.Address, data []byte) ([]byte, error)
}

type Ledger struct {
	backend      Backend
	address      common.Address
	pollInterval time.Duration
	logger       *zap.Logger
}

var _ ports.LedgerClient = (*Ledger)(nil)

func NewLedger(backend Backend, address common.Address, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ledger{
		backend:      backend,
		address:      address,
		pollInterval: defaultPollInterval,
		logger:       logger.Named("ledger").With(zap.String("contract", address.Hex())),
	}
}

func (l *Ledger) Address() common.Address {
	return l.address
}

// RecordTraining signs and submits a recordTraining transaction and waits for
// it to be mined. A reverted transaction returns its receipt together with a
// *contract.RevertError.
func (l *Ledger) RecordTraining(ctx context.Context, signer ports.Signer, input domain.EncryptedInput) (domain.Receipt, error) {
	if signer == nil {
		return domain.Receipt{}, domain.ErrWalletNotConnected
	}
	if signer.ChainID() != l.backend.ChainID() {
		return domain.Receipt{}, fmt.Errorf("%w: signer %d, backend %d", ErrChainMismatch, signer.ChainID(), l.backend.ChainID())
	}

	data, err := contract.PackRecordTraining(input)
	if err != nil {
		return domain.Receipt{}, err
	}

	nonce, err := l.backend.PendingNonceAt(ctx, signer.Address())
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("get pending nonce: %w", err)
	}

	tx := domain.Transaction{
		ChainID: l.backend.ChainID(),
		Nonce:   nonce,
		To:      l.address,
		Data:    data,
	}
	signature, err := signer.SignHash(tx.SigningHash().Bytes())
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("sign transaction: %w", err)
	}

	hash, err := l.backend.SendTransaction(ctx, domain.SignedTransaction{Transaction: tx, Signature: signature})
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("send transaction: %w", err)
	}
	l.logger.Debug("transaction sent", zap.String("tx", hash.Hex()), zap.Uint64("nonce", nonce))

	receipt, err := l.waitMined(ctx, hash)
	if err != nil {
		return domain.Receipt{}, err
	}
	if !receipt.Succeeded() {
		return receipt, fmt.Errorf("record training: %w", &contract.RevertError{
			Reason: receipt.RevertReason,
			Data:   contract.EncodeRevert(receipt.RevertReason),
		})
	}

	return receipt, nil
}

func (l *Ledger) waitMined(ctx context.Context, hash common.Hash) (domain.Receipt, error) {
	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := l.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return domain.Receipt{}, fmt.Errorf("get receipt: %w", err)
		}

		select {
		case <-ctx.Done():
			return domain.Receipt{}, fmt.Errorf("wait for %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *Ledger) GetRecord(ctx context.Context, owner common.Address, index uint64) (domain.Record, error) {
	data, err := contract.PackGetRecord(owner, index)
	if err != nil {
		return domain.Record{}, err
	}

	out, err := l.backend.Call(ctx, l.address, data)
	if err != nil {
		return domain.Record{}, fmt.Errorf("call %s: %w", contract.MethodGetRecord, err)
	}

	return contract.DecodeRecord(owner, out)
}

func (l *Ledger) GetAllRecords(ctx context.Context, owner common.Address) (domain.RecordColumns, error) {
	data, err := contract.PackGetAllRecords(owner)
	if err != nil {
		return domain.RecordColumns{}, err
	}

	out, err := l.backend.Call(ctx, l.address, data)
	if err != nil {
		return domain.RecordColumns{}, fmt.Errorf("call %s: %w", contract.MethodGetAllRecords, err)
	}

	return contract.DecodeColumns(out)
}

func (l *Ledger) GetRecordCount(ctx context.Context, owner common.Address) (uint64, error) {
	data, err := contract.PackGetRecordCount(owner)
	if err != nil {
		return 0, err
	}

	out, err := l.backend.Call(ctx, l.address, data)
	if err != nil {
		return 0, fmt.Errorf("call %s: %w", contract.MethodGetRecordCount, err)
	}

	return contract.DecodeUint(contract.MethodGetRecordCount, out)
}

func (l *Ledger) ProtocolID(ctx context.Context) (uint64, error) {
	data, err := contract.PackProtocolID()
	if err != nil {
		return 0, err
	}

	out, err := l.backend.Call(ctx, l.address, data)
	if err != nil {
		return 0, fmt.Errorf("call %s: %w", contract.MethodProtocolID, err)
	}

	return contract.DecodeUint(contract.MethodProtocolID, out)
}

// Binder binds ledger clients to addresses on one backend.
type Binder struct {
	backend Backend
	logger  *zap.Logger
}

var _ ports.LedgerBinder = (*Binder)(nil)

func NewBinder(backend Backend, logger *zap.Logger) *Binder {
	return &Binder{backend: backend, logger: logger}
}

func (b *Binder) Bind(address common.Address) (ports.LedgerClient, error) {
	if address == (common.Address{}) {
		return nil, domain.ErrNotDeployed
	}

	return NewLedger(b.backend, address, b.logger), nil
}
