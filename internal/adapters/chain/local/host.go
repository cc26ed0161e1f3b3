// Package local is an in-process chain host for the ledger. It validates and
// orders signed transactions, executes them atomically against host state,
// and keeps receipts and block metadata.
package local

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/fhe-strength-tracker/internal/adapters/chain/contract"
	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

var (
	ErrChainIDMismatch  = errors.New("transaction chain id mismatch")
	ErrInvalidSignature = errors.New("invalid transaction signature")
	ErrNonceMismatch    = errors.New("transaction nonce mismatch")
	ErrReceiptNotFound  = ethereum.NotFound
	ErrNotView          = errors.New("method is not a view")
)

type Options struct {
	ChainID uint64
	State   ports.HostState
	Ledger  *application.Ledger
	Clock   ports.Clock
	Logger  *zap.Logger
}

type Host struct {
	chainID uint64
	state   ports.HostState
	ledger  *application.Ledger
	clock   ports.Clock
	logger  *zap.Logger

	// mu orders writers; reads go straight to state snapshots.
	mu sync.Mutex
}

func NewHost(opts Options) (*Host, error) {
	if opts.State == nil {
		return nil, errors.New("host state is nil")
	}
	if opts.Ledger == nil {
		return nil, errors.New("host ledger is nil")
	}
	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Host{
		chainID: opts.ChainID,
		state:   opts.State,
		ledger:  opts.Ledger,
		clock:   clock,
		logger:  logger.Named("host"),
	}, nil
}

func (h *Host) ChainID() uint64 {
	return h.chainID
}

// Deploy installs the ledger at the address derived from deployer and its nonce.
func (h *Host) Deploy(ctx context.Context, deployer common.Address) (common.Address, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var address common.Address
	err := h.state.Update(ctx, func(tx ports.StateTx) error {
		nonce, err := readNonce(tx, deployer)
		if err != nil {
			return err
		}

		address = crypto.CreateAddress(deployer, nonce)
		if err := writeCode(tx, address, h.ledger.ProtocolID()); err != nil {
			return fmt.Errorf("write code: %w", err)
		}

		return writeNonce(tx, deployer, nonce+1)
	})
	if err != nil {
		return common.Address{}, fmt.Errorf("deploy ledger: %w", err)
	}

	h.logger.Info("ledger deployed",
		zap.String("address", address.Hex()),
		zap.String("deployer", deployer.Hex()),
		zap.Uint64("chain_id", h.chainID),
	)

	return address, nil
}

// SendTransaction includes tx in a new block. Rejected transactions return an
// error and leave no trace; reverted ones get a failed receipt.
func (h *Host) SendTransaction(ctx context.Context, tx domain.SignedTransaction) (common.Hash, error) {
	if tx.ChainID != h.chainID {
		return common.Hash{}, fmt.Errorf("%w: got %d, want %d", ErrChainIDMismatch, tx.ChainID, h.chainID)
	}

	sender, err := tx.Sender()
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var head Block
	err = h.state.View(ctx, func(r ports.StateReader) error {
		nonce, err := readNonce(r, sender)
		if err != nil {
			return err
		}
		if tx.Nonce != nonce {
			return fmt.Errorf("%w: got %d, want %d", ErrNonceMismatch, tx.Nonce, nonce)
		}

		deployed, err := hasCode(r, tx.To)
		if err != nil {
			return err
		}
		if !deployed {
			return fmt.Errorf("%w: no code at %s", domain.ErrNotDeployed, tx.To.Hex())
		}

		head, err = readHead(r)
		return err
	})
	if err != nil {
		return common.Hash{}, err
	}

	block := Block{Number: head.Number + 1, Timestamp: head.Timestamp}
	if now := uint64(h.clock.Now().Unix()); now > block.Timestamp {
		block.Timestamp = now
	}

	receipt := domain.Receipt{
		TxHash:      tx.Hash(),
		From:        sender,
		To:          tx.To,
		BlockNumber: block.Number,
		Timestamp:   block.Timestamp,
		Status:      domain.ReceiptStatusSuccessful,
	}

	// The ledger call and the block bookkeeping share one state transaction,
	// so a recorded session always consumes its nonce.
	var execErr error
	err = h.state.Update(ctx, func(stx ports.StateTx) error {
		if execErr = h.execute(ctx, stx, tx, sender, block); execErr != nil {
			return execErr
		}
		return commitBlock(stx, sender, tx.Nonce, block, receipt)
	})
	switch {
	case err == nil:
	case execErr == nil:
		return common.Hash{}, fmt.Errorf("commit block %d: %w", block.Number, err)
	case errors.Is(execErr, context.Canceled), errors.Is(execErr, context.DeadlineExceeded):
		return common.Hash{}, execErr
	default:
		receipt.Status = domain.ReceiptStatusFailed
		receipt.RevertReason = contract.RevertReason(execErr)

		// Reverts consume the nonce even when the caller has gone away.
		err = h.state.Update(context.WithoutCancel(ctx), func(stx ports.StateTx) error {
			return commitBlock(stx, sender, tx.Nonce, block, receipt)
		})
		if err != nil {
			return common.Hash{}, fmt.Errorf("commit block %d: %w", block.Number, err)
		}
	}

	fields := []zap.Field{
		zap.String("tx", receipt.TxHash.Hex()),
		zap.String("from", sender.Hex()),
		zap.Uint64("block", block.Number),
		zap.Uint64("status", receipt.Status),
	}
	if receipt.Succeeded() {
		h.logger.Info("transaction included", fields...)
	} else {
		h.logger.Warn("transaction reverted", append(fields, zap.String("reason", receipt.RevertReason))...)
	}

	return receipt.TxHash, nil
}

func (h *Host) execute(ctx context.Context, stx ports.StateTx, tx domain.SignedTransaction, sender common.Address, block Block) error {
	call, err := contract.ParseCall(tx.Data)
	if err != nil {
		return err
	}

	// View methods sent as transactions run without effect.
	if call.Method != contract.MethodRecordTraining {
		return nil
	}

	env := application.CallEnv{
		ChainID:   h.chainID,
		Contract:  tx.To,
		Caller:    sender,
		Timestamp: block.Timestamp,
	}

	return h.ledger.RecordTraining(ctx, env, stx, call.Input)
}

func commitBlock(stx ports.StateTx, sender common.Address, nonce uint64, block Block, receipt domain.Receipt) error {
	if err := writeNonce(stx, sender, nonce+1); err != nil {
		return err
	}
	if err := writeHead(stx, block); err != nil {
		return err
	}

	return writeReceipt(stx, receipt)
}

func (h *Host) TransactionReceipt(ctx context.Context, hash common.Hash) (domain.Receipt, error) {
	var (
		receipt domain.Receipt
		found   bool
	)
	err := h.state.View(ctx, func(r ports.StateReader) error {
		var err error
		receipt, found, err = readReceipt(r, hash)
		return err
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	if !found {
		return domain.Receipt{}, fmt.Errorf("receipt %s: %w", hash.Hex(), ErrReceiptNotFound)
	}

	return receipt, nil
}

// Call runs a view method against the latest state. Reverts come back as
// *contract.RevertError.
func (h *Host) Call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	call, err := contract.ParseCall(data)
	if err != nil {
		return nil, err
	}
	if !contract.IsView(call.Method) {
		return nil, fmt.Errorf("%w: %s", ErrNotView, call.Method)
	}

	var out []byte
	err = h.state.View(ctx, func(r ports.StateReader) error {
		deployed, err := hasCode(r, to)
		if err != nil {
			return err
		}
		if !deployed {
			return fmt.Errorf("%w: no code at %s", domain.ErrNotDeployed, to.Hex())
		}

		switch call.Method {
		case contract.MethodGetRecord:
			record, err := h.ledger.GetRecord(ctx, r, to, call.Owner, call.Index)
			if err != nil {
				return err
			}
			out, err = contract.EncodeRecord(record)
			return err
		case contract.MethodGetAllRecords:
			columns, err := h.ledger.GetAllRecords(ctx, r, to, call.Owner)
			if err != nil {
				return err
			}
			out, err = contract.EncodeColumns(columns)
			return err
		case contract.MethodGetRecordCount:
			count, err := h.ledger.GetRecordCount(ctx, r, to, call.Owner)
			if err != nil {
				return err
			}
			out, err = contract.EncodeUint(call.Method, count)
			return err
		case contract.MethodProtocolID:
			out, err = contract.EncodeUint(call.Method, h.ledger.ProtocolID())
			return err
		default:
			return fmt.Errorf("%w: %s", contract.ErrUnknownMethod, call.Method)
		}
	})
	if err != nil {
		if errors.Is(err, domain.ErrIndexOutOfBounds) {
			return nil, contract.NewRevertError(err)
		}
		return nil, err
	}

	return out, nil
}

func (h *Host) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	var nonce uint64
	err := h.state.View(ctx, func(r ports.StateReader) error {
		var err error
		nonce, err = readNonce(r, account)
		return err
	})

	return nonce, err
}

func (h *Host) HasCode(ctx context.Context, account common.Address) (bool, error) {
	var deployed bool
	err := h.state.View(ctx, func(r ports.StateReader) error {
		var err error
		deployed, err = hasCode(r, account)
		return err
	})

	return deployed, err
}

func (h *Host) Head(ctx context.Context) (Block, error) {
	var head Block
	err := h.state.View(ctx, func(r ports.StateReader) error {
		var err error
		head, err = readHead(r)
		return err
	})

	return head, err
}
