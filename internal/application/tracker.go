package application

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/bnema/fhe-strength-tracker/internal/sdkerrors"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type TrackerDeps struct {
	ChainID     uint64
	Deployments ports.DeploymentRepository
	Binder      ports.LedgerBinder
	Deployer    ports.Deployer
	FHE         ports.FHEClient
	// Wallet is nil when no wallet is connected.
	Wallet ports.Signer
	Clock  ports.Clock
	Logger *zap.Logger
}

// Tracker drives the ledger on behalf of the connected wallet: it gates
// recording, encrypts sessions, submits them and decrypts what comes back.
type Tracker struct {
	chainID     uint64
	deployments ports.DeploymentRepository
	binder      ports.LedgerBinder
	deployer    ports.Deployer
	fhe         ports.FHEClient
	wallet      ports.Signer
	clock       ports.Clock
	logger      *zap.Logger

	recording atomic.Bool
}

func NewTracker(deps TrackerDeps) *Tracker {
	clock := deps.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Tracker{
		chainID:     deps.ChainID,
		deployments: deps.Deployments,
		binder:      deps.Binder,
		deployer:    deps.Deployer,
		fhe:         deps.FHE,
		wallet:      deps.Wallet,
		clock:       clock,
		logger:      logger.Named("tracker"),
	}
}

func (t *Tracker) Status(ctx context.Context) (TrackerStatus, error) {
	status := TrackerStatus{
		ChainID:   t.chainID,
		ChainName: domain.ChainName(t.chainID),
		Recording: t.recording.Load(),
	}
	if t.wallet != nil {
		status.Connected = true
		status.Account = t.wallet.Address()
	}

	var blocker error
	deployment, err := t.deployment(ctx)
	switch {
	case err == nil:
		status.Deployment = &deployment
		blocker = t.blocker()
	case errors.Is(err, domain.ErrNotDeployed):
		blocker = domain.ErrNotDeployed
	default:
		return status, sdkerrors.Wrap("status", err)
	}
	if blocker == nil && status.Recording {
		blocker = domain.ErrRecordingInProgress
	}

	if blocker != nil {
		status.Reason = blocker.Error()
	} else {
		status.CanRecord = true
	}

	return status, nil
}

// RecordTraining validates, encrypts and submits one session, then waits for
// the ledger to confirm it. Only one recording runs at a time.
func (t *Tracker) RecordTraining(ctx context.Context, cmd RecordTrainingCommand) (RecordTrainingResult, error) {
	const op = "record training"

	session := cmd.Session()
	if err := session.Validate(); err != nil {
		return RecordTrainingResult{}, sdkerrors.Wrap(op, err)
	}

	deployment, err := t.deployment(ctx)
	if err != nil {
		return RecordTrainingResult{}, sdkerrors.Wrap(op, err)
	}
	if err := t.blocker(); err != nil {
		return RecordTrainingResult{}, sdkerrors.Wrap(op, err)
	}
	if !t.recording.CompareAndSwap(false, true) {
		return RecordTrainingResult{}, sdkerrors.Wrap(op, domain.ErrRecordingInProgress)
	}
	defer t.recording.Store(false)

	client, err := t.binder.Bind(deployment.Address)
	if err != nil {
		return RecordTrainingResult{}, sdkerrors.Wrap(op, fmt.Errorf("bind ledger: %w", err))
	}

	cmd.report(RecordPhaseEncrypting)
	input, err := t.encrypt(ctx, session, deployment.Address)
	if err != nil {
		return RecordTrainingResult{}, sdkerrors.Wrap(op, err)
	}

	cmd.report(RecordPhaseSubmitting)
	receipt, err := client.RecordTraining(ctx, t.wallet, input)
	if err != nil {
		t.logger.Warn("training record rejected",
			zap.String("account", t.wallet.Address().Hex()),
			zap.String("tx", receipt.TxHash.Hex()),
			zap.Error(err),
		)
		return RecordTrainingResult{}, sdkerrors.Wrap(op, err)
	}

	t.logger.Info("training recorded",
		zap.String("account", t.wallet.Address().Hex()),
		zap.String("tx", receipt.TxHash.Hex()),
		zap.Uint64("block", receipt.BlockNumber),
	)

	return RecordTrainingResult{Session: session, Contract: deployment, Receipt: receipt}, nil
}

func (t *Tracker) encrypt(ctx context.Context, session domain.TrainingSession, contract common.Address) (domain.EncryptedInput, error) {
	caller := t.wallet.Address()

	var input domain.EncryptedInput
	fields := []struct {
		name  string
		value uint32
		dst   *domain.EncryptedField
	}{
		{name: "weight", value: session.Weight, dst: &input.Weight},
		{name: "sets", value: session.Sets, dst: &input.Sets},
		{name: "reps", value: session.Reps, dst: &input.Reps},
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, field := range fields {
		group.Go(func() error {
			encrypted, err := t.fhe.Encrypt(groupCtx, field.value, contract, caller)
			if err != nil {
				return fmt.Errorf("encrypt %s: %w", field.name, err)
			}
			*field.dst = encrypted
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return domain.EncryptedInput{}, err
	}

	return input, nil
}

func (t *Tracker) ProtocolID(ctx context.Context) (uint64, error) {
	client, err := t.client(ctx)
	if err != nil {
		return 0, sdkerrors.Wrap("protocol id", err)
	}

	id, err := client.ProtocolID(ctx)
	if err != nil {
		return 0, sdkerrors.Wrap("protocol id", err)
	}

	return id, nil
}

func (t *Tracker) RecordCount(ctx context.Context, owner common.Address) (uint64, error) {
	owner, err := t.resolveOwner(owner)
	if err != nil {
		return 0, sdkerrors.Wrap("record count", err)
	}
	client, err := t.client(ctx)
	if err != nil {
		return 0, sdkerrors.Wrap("record count", err)
	}

	count, err := client.GetRecordCount(ctx, owner)
	if err != nil {
		return 0, sdkerrors.Wrap("record count", err)
	}

	return count, nil
}

func (t *Tracker) Record(ctx context.Context, owner common.Address, index uint64) (RecordView, error) {
	owner, err := t.resolveOwner(owner)
	if err != nil {
		return RecordView{}, sdkerrors.Wrap("get record", err)
	}
	client, err := t.client(ctx)
	if err != nil {
		return RecordView{}, sdkerrors.Wrap("get record", err)
	}

	record, err := client.GetRecord(ctx, owner, index)
	if err != nil {
		return RecordView{}, sdkerrors.Wrap("get record", err)
	}

	return RecordView{Index: index, Timestamp: record.Timestamp, Record: record}, nil
}

// LoadRecords returns every record of owner in insertion order.
func (t *Tracker) LoadRecords(ctx context.Context, owner common.Address) ([]RecordView, error) {
	owner, err := t.resolveOwner(owner)
	if err != nil {
		return nil, sdkerrors.Wrap("load records", err)
	}
	client, err := t.client(ctx)
	if err != nil {
		return nil, sdkerrors.Wrap("load records", err)
	}

	columns, err := client.GetAllRecords(ctx, owner)
	if err != nil {
		return nil, sdkerrors.Wrap("load records", err)
	}

	views := make([]RecordView, 0, columns.Len())
	for i := 0; i < columns.Len(); i++ {
		record := columns.At(owner, i)
		views = append(views, RecordView{Index: uint64(i), Timestamp: record.Timestamp, Record: record})
	}

	return views, nil
}

// DecryptRecord fetches the connected wallet's record at index and decrypts
// its three fields.
func (t *Tracker) DecryptRecord(ctx context.Context, index uint64) (domain.DecryptedRecord, error) {
	const op = "decrypt record"

	if err := t.blocker(); err != nil {
		return domain.DecryptedRecord{}, sdkerrors.Wrap(op, err)
	}
	client, err := t.client(ctx)
	if err != nil {
		return domain.DecryptedRecord{}, sdkerrors.Wrap(op, err)
	}

	record, err := client.GetRecord(ctx, t.wallet.Address(), index)
	if err != nil {
		return domain.DecryptedRecord{}, sdkerrors.Wrap(op, err)
	}

	session, err := t.decrypt(ctx, client.Address(), record)
	if err != nil {
		return domain.DecryptedRecord{}, sdkerrors.Wrap(op, err)
	}

	return domain.DecryptedRecord{Index: index, Timestamp: record.Timestamp, Session: session}, nil
}

// History lists an owner's records, decrypting them with the connected
// wallet when asked.
func (t *Tracker) History(ctx context.Context, query HistoryQuery) ([]HistoryEntry, error) {
	views, err := t.LoadRecords(ctx, query.Owner)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, len(views))
	for i, view := range views {
		entries[i] = HistoryEntry{RecordView: view}
	}
	if !query.Decrypt || len(entries) == 0 {
		return entries, nil
	}

	if err := t.blocker(); err != nil {
		return nil, sdkerrors.Wrap("history", err)
	}
	client, err := t.client(ctx)
	if err != nil {
		return nil, sdkerrors.Wrap("history", err)
	}

	for i := range entries {
		session, err := t.decrypt(ctx, client.Address(), entries[i].Record)
		if err != nil {
			return nil, sdkerrors.Wrap("history", fmt.Errorf("record %d: %w", entries[i].Index, err))
		}
		entries[i].Session = &session
	}

	return entries, nil
}

func (t *Tracker) decrypt(ctx context.Context, contract common.Address, record domain.Record) (domain.TrainingSession, error) {
	var session domain.TrainingSession
	fields := []struct {
		name   string
		handle domain.Handle
		dst    *uint32
	}{
		{name: "weight", handle: record.Weight, dst: &session.Weight},
		{name: "sets", handle: record.Sets, dst: &session.Sets},
		{name: "reps", handle: record.Reps, dst: &session.Reps},
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, field := range fields {
		group.Go(func() error {
			value, err := t.fhe.Decrypt(groupCtx, field.handle, contract, t.wallet)
			if err != nil {
				return fmt.Errorf("decrypt %s: %w", field.name, err)
			}
			*field.dst = value
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return domain.TrainingSession{}, err
	}

	return session, nil
}

// Deploy installs a new ledger from the connected wallet and records it in
// the address book for the current chain.
func (t *Tracker) Deploy(ctx context.Context) (domain.Deployment, error) {
	if t.wallet == nil {
		return domain.Deployment{}, sdkerrors.Wrap("deploy", domain.ErrWalletNotConnected)
	}
	if t.deployer == nil {
		return domain.Deployment{}, sdkerrors.Wrap("deploy", errors.New("no deployer configured"))
	}

	address, err := t.deployer.Deploy(ctx, t.wallet.Address())
	if err != nil {
		return domain.Deployment{}, sdkerrors.Wrap("deploy", err)
	}

	deployment := domain.Deployment{
		Chain:      domain.Chain{ID: t.chainID, Name: domain.ChainName(t.chainID)},
		Address:    address,
		ProtocolID: domain.ProtocolID,
		DeployedAt: t.clock.Now().UTC(),
	}
	if err := t.deployments.Save(ctx, deployment); err != nil {
		return domain.Deployment{}, sdkerrors.Wrap("deploy", fmt.Errorf("save deployment: %w", err))
	}

	t.logger.Info("ledger deployed",
		zap.String("address", address.Hex()),
		zap.String("chain", deployment.Chain.Name),
	)

	return deployment, nil
}

// blocker returns the first reason, after deployment, that recording or
// decryption cannot proceed.
func (t *Tracker) blocker() error {
	if t.fhe == nil || !t.fhe.Ready() {
		return domain.ErrEncryptionNotReady
	}
	if t.wallet == nil {
		return domain.ErrWalletNotConnected
	}

	return nil
}

func (t *Tracker) deployment(ctx context.Context) (domain.Deployment, error) {
	deployment, err := t.deployments.GetByChainID(ctx, t.chainID)
	if err != nil {
		return domain.Deployment{}, err
	}
	if !deployment.Deployed() {
		return domain.Deployment{}, fmt.Errorf("%w: chain %d", domain.ErrNotDeployed, t.chainID)
	}

	return deployment, nil
}

func (t *Tracker) client(ctx context.Context) (ports.LedgerClient, error) {
	deployment, err := t.deployment(ctx)
	if err != nil {
		return nil, err
	}

	client, err := t.binder.Bind(deployment.Address)
	if err != nil {
		return nil, fmt.Errorf("bind ledger: %w", err)
	}

	return client, nil
}

func (t *Tracker) resolveOwner(owner common.Address) (common.Address, error) {
	if owner != (common.Address{}) {
		return owner, nil
	}
	if t.wallet == nil {
		return common.Address{}, domain.ErrWalletNotConnected
	}

	return t.wallet.Address(), nil
}
