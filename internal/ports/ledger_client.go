package ports

import (
	"context"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
)

// LedgerClient is the ledger call surface as seen from a client holding a signer.
type LedgerClient interface {
	Address() common.Address
	RecordTraining(ctx context.Context, signer Signer, input domain.EncryptedInput) (domain.Receipt, error)
	GetRecord(ctx context.Context, owner common.Address, index uint64) (domain.Record, error)
	GetAllRecords(ctx context.Context, owner common.Address) (domain.RecordColumns, error)
	GetRecordCount(ctx context.Context, owner common.Address) (uint64, error)
	ProtocolID(ctx context.Context) (uint64, error)
}

// LedgerBinder attaches a LedgerClient to a deployed ledger address.
type LedgerBinder interface {
	Bind(address common.Address) (LedgerClient, error)
}

// Deployer installs a fresh ledger and returns its address.
type Deployer interface {
	Deploy(ctx context.Context, deployer common.Address) (common.Address, error)
}
