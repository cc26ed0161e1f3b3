package ports

import (
	"context"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
)

// InputVerifier checks that a ciphertext handle was produced for contract and caller.
type InputVerifier interface {
	VerifyInput(ctx context.Context, r StateReader, field domain.EncryptedField, contract, caller common.Address) error
}

type AccessControl interface {
	Allow(ctx context.Context, tx StateTx, handle domain.Handle, account common.Address) error
	IsAllowed(ctx context.Context, r StateReader, handle domain.Handle, account common.Address) (bool, error)
}

type Encryptor interface {
	Ready() bool
	Encrypt(ctx context.Context, value uint32, contract, caller common.Address) (domain.EncryptedField, error)
}

type Decryptor interface {
	Decrypt(ctx context.Context, handle domain.Handle, contract common.Address, signer Signer) (uint32, error)
}

type FHEClient interface {
	Encryptor
	Decryptor
}
