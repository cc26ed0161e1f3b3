package keystore

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrWalletExists = errors.New("wallet already exists")

// Wallet signs with a secp256k1 key kept in a secret store as hex.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	chainID uint64
}

var _ ports.Signer = (*Wallet)(nil)

func New(key *ecdsa.PrivateKey, chainID uint64) *Wallet {
	return &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		chainID: chainID,
	}
}

// Generate creates a key and stores it under ref. An existing key is never overwritten.
func Generate(ctx context.Context, store ports.SecretStore, ref string, chainID uint64) (*Wallet, error) {
	if _, err := store.Get(ctx, ref); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrWalletExists, ref)
	} else if !errors.Is(err, domain.ErrSecretNotFound) {
		return nil, fmt.Errorf("check wallet key: %w", err)
	}

	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("generate wallet key: %w", err)
	}

	if err := store.Put(ctx, ref, hex.EncodeToString(crypto.FromECDSA(key))); err != nil {
		return nil, fmt.Errorf("store wallet key: %w", err)
	}

	return New(key, chainID), nil
}

func Open(ctx context.Context, store ports.SecretStore, ref string, chainID uint64) (*Wallet, error) {
	raw, err := store.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return nil, fmt.Errorf("%w: no key at %s", domain.ErrWalletNotConnected, ref)
		}
		return nil, fmt.Errorf("load wallet key: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(raw), "0x"))
	if err != nil {
		return nil, fmt.Errorf("decode wallet key: %w", err)
	}

	return New(key, chainID), nil
}

func (w *Wallet) Address() common.Address {
	return w.address
}

func (w *Wallet) ChainID() uint64 {
	return w.chainID
}

func (w *Wallet) SignHash(hash []byte) ([]byte, error) {
	if len(hash) != common.HashLength {
		return nil, fmt.Errorf("sign hash: digest is %d bytes", len(hash))
	}

	sig, err := crypto.Sign(hash, w.key)
	if err != nil {
		return nil, fmt.Errorf("sign hash: %w", err)
	}

	return sig, nil
}
