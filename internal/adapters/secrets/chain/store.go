// Package chain layers two secret stores: reads and writes go to the primary
// and fall back to the secondary when the primary is unusable.
package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/fhe-strength-tracker/internal/adapters/secrets/file"
	passstore "github.com/bnema/fhe-strength-tracker/internal/adapters/secrets/pass"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
	"go.uber.org/zap"
)

var (
	errNilPrimary  = errors.New("primary secret store is nil")
	errNilFallback = errors.New("fallback secret store is nil")
)

type Store struct {
	primary  ports.SecretStore
	fallback ports.SecretStore
	logger   *zap.Logger
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(primary ports.SecretStore, fallback ports.SecretStore, logger *zap.Logger) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimary
	}
	if fallback == nil {
		return nil, errNilFallback
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{primary: primary, fallback: fallback, logger: logger.Named("secrets")}, nil
}

// NewPassFirstWithFileFallback keeps key material in pass when it is set up
// and in 0600 files under fileRoot otherwise.
func NewPassFirstWithFileFallback(fileRoot string, logger *zap.Logger) (*Store, error) {
	return NewStore(passstore.NewStore(), filestore.NewStore(fileRoot), logger)
}

func (s *Store) Put(ctx context.Context, ref string, value string) error {
	err := s.primary.Put(ctx, ref, value)
	if err == nil {
		return nil
	}
	if isContextErr(err) {
		return err
	}
	s.logger.Warn("primary secret backend rejected write, using fallback", zap.String("ref", ref), zap.Error(err))

	if fallbackErr := s.fallback.Put(ctx, ref, value); fallbackErr != nil {
		return fmt.Errorf("put %q: primary: %w; fallback: %w", ref, err, fallbackErr)
	}

	return nil
}

// Get reports domain.ErrSecretNotFound only when neither backend has ref.
func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	value, err := s.primary.Get(ctx, ref)
	if err == nil {
		return value, nil
	}
	if isContextErr(err) {
		return "", err
	}

	value, fallbackErr := s.fallback.Get(ctx, ref)
	if fallbackErr == nil {
		s.logger.Debug("secret served from fallback backend", zap.String("ref", ref))
		return value, nil
	}

	if errors.Is(err, domain.ErrSecretNotFound) && errors.Is(fallbackErr, domain.ErrSecretNotFound) {
		return "", fmt.Errorf("get %q: %w", ref, domain.ErrSecretNotFound)
	}

	return "", fmt.Errorf("get %q: primary: %w; fallback: %w", ref, err, fallbackErr)
}

// Delete removes ref from both backends so a stale copy in the fallback
// cannot resurface on the next Get.
func (s *Store) Delete(ctx context.Context, ref string) error {
	err := s.primary.Delete(ctx, ref)
	if isContextErr(err) {
		return err
	}
	fallbackErr := s.fallback.Delete(ctx, ref)

	switch {
	case err == nil && fallbackErr == nil:
		return nil
	case err == nil:
		return fmt.Errorf("delete %q: fallback: %w", ref, fallbackErr)
	case fallbackErr == nil:
		// An unusable primary holds nothing to leak.
		s.logger.Warn("primary secret backend rejected delete", zap.String("ref", ref), zap.Error(err))
		return nil
	default:
		return fmt.Errorf("delete %q: primary: %w; fallback: %w", ref, err, fallbackErr)
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
