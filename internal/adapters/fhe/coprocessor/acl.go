package coprocessor

import (
	"context"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum/common"
)

var aclKeyPrefix = []byte("fhe/acl/")

// ACL records which accounts may use a ciphertext handle. Grants live in host
// state so they commit or roll back with the transaction that made them.
type ACL struct{}

var _ ports.AccessControl = ACL{}

func (ACL) Allow(ctx context.Context, tx ports.StateTx, handle domain.Handle, account common.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return tx.Set(aclKey(handle, account), []byte{1})
}

func (ACL) IsAllowed(ctx context.Context, r ports.StateReader, handle domain.Handle, account common.Address) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	value, err := r.Get(aclKey(handle, account))
	if err != nil {
		return false, err
	}

	return len(value) == 1 && value[0] == 1, nil
}

func aclKey(handle domain.Handle, account common.Address) []byte {
	key := make([]byte, 0, len(aclKeyPrefix)+domain.HandleLength+common.AddressLength)
	key = append(key, aclKeyPrefix...)
	key = append(key, handle.Bytes()...)
	return append(key, account.Bytes()...)
}
