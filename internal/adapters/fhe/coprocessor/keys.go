package coprocessor

import (
	"context"
	"crypto/ecdsa"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
	"go.uber.org/zap"
)

const (
	secretKeyRef      = "strength-tracker/kms/bgv_secret_key"
	coprocessorKeyRef = "strength-tracker/kms/coprocessor_key"
)

type keyMaterial struct {
	secretKey      *rlwe.SecretKey
	publicKey      *rlwe.PublicKey
	coprocessorKey *ecdsa.PrivateKey
}

func loadOrGenerateKeys(ctx context.Context, params bgv.Parameters, store ports.SecretStore, logger *zap.Logger) (keyMaterial, error) {
	kgen := rlwe.NewKeyGenerator(params)

	sk, err := loadSecretKey(ctx, params, store)
	if err != nil {
		if !errors.Is(err, domain.ErrSecretNotFound) {
			return keyMaterial{}, err
		}

		sk = kgen.GenSecretKeyNew()
		encoded, err := sk.MarshalBinary()
		if err != nil {
			return keyMaterial{}, fmt.Errorf("encode bgv secret key: %w", err)
		}
		if err := store.Put(ctx, secretKeyRef, base64.StdEncoding.EncodeToString(encoded)); err != nil {
			return keyMaterial{}, fmt.Errorf("store bgv secret key: %w", err)
		}
		logger.Info("generated fhe secret key", zap.String("ref", secretKeyRef))
	}

	coprocessorKey, err := loadCoprocessorKey(ctx, store)
	if err != nil {
		if !errors.Is(err, domain.ErrSecretNotFound) {
			return keyMaterial{}, err
		}

		coprocessorKey, err = crypto.GenerateKey()
		if err != nil {
			return keyMaterial{}, fmt.Errorf("generate coprocessor key: %w", err)
		}
		if err := store.Put(ctx, coprocessorKeyRef, hex.EncodeToString(crypto.FromECDSA(coprocessorKey))); err != nil {
			return keyMaterial{}, fmt.Errorf("store coprocessor key: %w", err)
		}
		logger.Info("generated coprocessor signing key",
			zap.String("ref", coprocessorKeyRef),
			zap.String("address", crypto.PubkeyToAddress(coprocessorKey.PublicKey).Hex()),
		)
	}

	return keyMaterial{
		secretKey:      sk,
		publicKey:      kgen.GenPublicKeyNew(sk),
		coprocessorKey: coprocessorKey,
	}, nil
}

func loadSecretKey(ctx context.Context, params bgv.Parameters, store ports.SecretStore) (*rlwe.SecretKey, error) {
	raw, err := store.Get(ctx, secretKeyRef)
	if err != nil {
		return nil, fmt.Errorf("load bgv secret key: %w", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("decode bgv secret key: %w", err)
	}

	sk := rlwe.NewSecretKey(params)
	if err := sk.UnmarshalBinary(decoded); err != nil {
		return nil, fmt.Errorf("unmarshal bgv secret key: %w", err)
	}

	return sk, nil
}

func loadCoprocessorKey(ctx context.Context, store ports.SecretStore) (*ecdsa.PrivateKey, error) {
	raw, err := store.Get(ctx, coprocessorKeyRef)
	if err != nil {
		return nil, fmt.Errorf("load coprocessor key: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("decode coprocessor key: %w", err)
	}

	return key, nil
}
