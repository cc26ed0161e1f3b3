package coprocessor

import (
	"context"
	"crypto/ecdsa"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tuneinsight/lattigo/v6/core/rlwe"
	"github.com/tuneinsight/lattigo/v6/schemes/bgv"
	"go.uber.org/zap"
)

var ciphertextKeyPrefix = []byte("fhe/ct/")

const (
	inputDomain       = "input"
	userDecryptDomain = "user-decrypt"
)

type Config struct {
	ChainID  uint64
	State    ports.HostState
	Secrets  ports.SecretStore
	Logger   *zap.Logger
	CacheTTL time.Duration
}

// Runtime is a local FHE coprocessor. It encrypts client inputs under a BGV
// key, signs input proofs, keeps the ACL, and answers user decryption
// requests. Lattigo encoders and encryptors are not safe for concurrent use,
// so all lattice operations run under mu.
type Runtime struct {
	chainID     uint64
	state       ports.HostState
	acl         ACL
	logger      *zap.Logger
	cache       *bigcache.BigCache
	coprocessor *ecdsa.PrivateKey
	signer      common.Address

	mu        sync.Mutex
	params    bgv.Parameters
	encoder   *bgv.Encoder
	encryptor *rlwe.Encryptor
	decryptor *rlwe.Decryptor

	ready atomic.Bool
}

var (
	_ ports.FHEClient     = (*Runtime)(nil)
	_ ports.InputVerifier = (*Runtime)(nil)
)

func NewRuntime(ctx context.Context, cfg Config) (*Runtime, error) {
	if cfg.State == nil {
		return nil, errors.New("coprocessor state is nil")
	}
	if cfg.Secrets == nil {
		return nil, errors.New("coprocessor secret store is nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}

	params, err := newParameters()
	if err != nil {
		return nil, err
	}

	keys, err := loadOrGenerateKeys(ctx, params, cfg.Secrets, logger)
	if err != nil {
		return nil, err
	}

	cacheConfig := bigcache.DefaultConfig(ttl)
	cacheConfig.Shards = 16
	cacheConfig.HardMaxCacheSize = 64
	cacheConfig.Verbose = false
	cache, err := bigcache.New(ctx, cacheConfig)
	if err != nil {
		return nil, fmt.Errorf("create ciphertext cache: %w", err)
	}

	r := &Runtime{
		chainID:     cfg.ChainID,
		state:       cfg.State,
		logger:      logger.Named("coprocessor"),
		cache:       cache,
		coprocessor: keys.coprocessorKey,
		signer:      crypto.PubkeyToAddress(keys.coprocessorKey.PublicKey),
		params:      params,
		encoder:     bgv.NewEncoder(params),
		encryptor:   rlwe.NewEncryptor(params, keys.publicKey),
		decryptor:   rlwe.NewDecryptor(params, keys.secretKey),
	}
	r.ready.Store(true)

	r.logger.Info("fhe runtime ready",
		zap.Uint64("chain_id", cfg.ChainID),
		zap.String("signer", r.signer.Hex()),
		zap.Int("log_n", params.LogN()),
	)

	return r, nil
}

func (r *Runtime) Ready() bool {
	return r != nil && r.ready.Load()
}

func (r *Runtime) ACL() ACL {
	return r.acl
}

func (r *Runtime) Close() error {
	if !r.ready.CompareAndSwap(true, false) {
		return nil
	}

	return r.cache.Close()
}

func (r *Runtime) Encrypt(ctx context.Context, value uint32, contract, caller common.Address) (domain.EncryptedField, error) {
	if !r.Ready() {
		return domain.EncryptedField{}, domain.ErrEncryptionNotReady
	}
	if err := ctx.Err(); err != nil {
		return domain.EncryptedField{}, err
	}

	ciphertext, err := r.encryptValue(value)
	if err != nil {
		return domain.EncryptedField{}, err
	}

	handle := domain.BytesToHandle(crypto.Keccak256(ciphertext, contract.Bytes(), caller.Bytes(), uint64Bytes(r.chainID)))

	if err := r.state.Update(ctx, func(tx ports.StateTx) error {
		return tx.Set(ciphertextKey(handle), ciphertext)
	}); err != nil {
		return domain.EncryptedField{}, fmt.Errorf("register ciphertext: %w", err)
	}
	r.cacheCiphertext(handle, ciphertext)

	proof, err := crypto.Sign(r.inputDigest(handle, contract, caller), r.coprocessor)
	if err != nil {
		return domain.EncryptedField{}, fmt.Errorf("sign input proof: %w", err)
	}

	r.logger.Debug("encrypted input",
		zap.String("handle", handle.Hex()),
		zap.String("contract", contract.Hex()),
		zap.String("caller", caller.Hex()),
	)

	return domain.EncryptedField{Handle: handle, Proof: proof}, nil
}

func (r *Runtime) VerifyInput(ctx context.Context, reader ports.StateReader, field domain.EncryptedField, contract, caller common.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(field.Proof) != crypto.SignatureLength {
		return fmt.Errorf("%w: proof is %d bytes", domain.ErrInvalidProof, len(field.Proof))
	}

	pub, err := crypto.SigToPub(r.inputDigest(field.Handle, contract, caller), field.Proof)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidProof, err)
	}
	if crypto.PubkeyToAddress(*pub) != r.signer {
		return fmt.Errorf("%w: proof not signed by coprocessor", domain.ErrInvalidProof)
	}

	ciphertext, err := reader.Get(ciphertextKey(field.Handle))
	if err != nil {
		return fmt.Errorf("load ciphertext: %w", err)
	}
	if ciphertext == nil {
		return fmt.Errorf("%w: unknown ciphertext %s", domain.ErrInvalidProof, field.Handle.Hex())
	}

	return nil
}

// Decrypt performs a user decryption: signer proves control of its address
// and the ACL must allow both signer and contract on handle.
func (r *Runtime) Decrypt(ctx context.Context, handle domain.Handle, contract common.Address, signer ports.Signer) (uint32, error) {
	if !r.Ready() {
		return 0, domain.ErrEncryptionNotReady
	}
	if signer == nil {
		return 0, domain.ErrWalletNotConnected
	}

	user := signer.Address()
	signature, err := signer.SignHash(userDecryptDigest(handle, contract, user))
	if err != nil {
		return 0, fmt.Errorf("sign decryption request: %w", err)
	}

	return r.UserDecrypt(ctx, handle, contract, user, signature)
}

// UserDecrypt is the key-management side of Decrypt, for requests signed elsewhere.
func (r *Runtime) UserDecrypt(ctx context.Context, handle domain.Handle, contract, user common.Address, signature []byte) (uint32, error) {
	pub, err := crypto.SigToPub(userDecryptDigest(handle, contract, user), signature)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrDecryptionDenied, err)
	}
	if crypto.PubkeyToAddress(*pub) != user {
		return 0, fmt.Errorf("%w: signature does not match %s", domain.ErrDecryptionDenied, user.Hex())
	}

	var ciphertext []byte
	err = r.state.View(ctx, func(reader ports.StateReader) error {
		for _, account := range []common.Address{user, contract} {
			allowed, err := r.acl.IsAllowed(ctx, reader, handle, account)
			if err != nil {
				return fmt.Errorf("check acl: %w", err)
			}
			if !allowed {
				return fmt.Errorf("%w: %s has no access to %s", domain.ErrDecryptionDenied, account.Hex(), handle.Hex())
			}
		}

		if cached, ok := r.cachedCiphertext(handle); ok {
			ciphertext = cached
			return nil
		}

		stored, err := reader.Get(ciphertextKey(handle))
		if err != nil {
			return fmt.Errorf("load ciphertext: %w", err)
		}
		if stored == nil {
			return fmt.Errorf("%w: unknown ciphertext %s", domain.ErrDecryptionDenied, handle.Hex())
		}
		ciphertext = stored
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.cacheCiphertext(handle, ciphertext)

	return r.decryptValue(ciphertext)
}

func (r *Runtime) encryptValue(value uint32) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pt := bgv.NewPlaintext(r.params, r.params.MaxLevel())
	if err := r.encoder.Encode(splitLimbs(value, r.params.MaxSlots()), pt); err != nil {
		return nil, fmt.Errorf("encode plaintext: %w", err)
	}

	ct, err := r.encryptor.EncryptNew(pt)
	if err != nil {
		return nil, fmt.Errorf("encrypt plaintext: %w", err)
	}

	encoded, err := ct.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("marshal ciphertext: %w", err)
	}

	return encoded, nil
}

func (r *Runtime) decryptValue(ciphertext []byte) (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ct := rlwe.NewCiphertext(r.params, 1, r.params.MaxLevel())
	if err := ct.UnmarshalBinary(ciphertext); err != nil {
		return 0, fmt.Errorf("unmarshal ciphertext: %w", err)
	}

	pt := r.decryptor.DecryptNew(ct)
	values := make([]uint64, r.params.MaxSlots())
	if err := r.encoder.Decode(pt, values); err != nil {
		return 0, fmt.Errorf("decode plaintext: %w", err)
	}

	return joinLimbs(values)
}

func (r *Runtime) cachedCiphertext(handle domain.Handle) ([]byte, bool) {
	value, err := r.cache.Get(handle.Hex())
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			r.logger.Debug("ciphertext cache read failed", zap.Error(err))
		}
		return nil, false
	}

	return value, true
}

func (r *Runtime) cacheCiphertext(handle domain.Handle, ciphertext []byte) {
	if err := r.cache.Set(handle.Hex(), ciphertext); err != nil {
		r.logger.Debug("ciphertext cache write failed", zap.Error(err))
	}
}

func (r *Runtime) inputDigest(handle domain.Handle, contract, caller common.Address) []byte {
	return crypto.Keccak256([]byte(inputDomain), handle.Bytes(), contract.Bytes(), caller.Bytes(), uint64Bytes(r.chainID))
}

func userDecryptDigest(handle domain.Handle, contract, user common.Address) []byte {
	return crypto.Keccak256([]byte(userDecryptDomain), handle.Bytes(), contract.Bytes(), user.Bytes())
}

func ciphertextKey(handle domain.Handle) []byte {
	key := make([]byte, 0, len(ciphertextKeyPrefix)+domain.HandleLength)
	key = append(key, ciphertextKeyPrefix...)
	return append(key, handle.Bytes()...)
}

func uint64Bytes(v uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, v)
}
