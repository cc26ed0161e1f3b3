// Package file keeps wallet and KMS key material as one file per secret ref.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
)

const (
	keyDirMode  = 0o700
	keyFileMode = 0o600
)

var (
	ErrInvalidRef = errors.New("invalid secret ref")
	ErrEmptyValue = errors.New("secret value is empty")
)

// Refs are slash-separated segments such as "strength-tracker/kms/bgv_secret_key".
var refPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*(/[A-Za-z0-9][A-Za-z0-9._-]*)*$`)

type Store struct {
	root string
	mu   sync.RWMutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Put replaces the key material at ref. The file is written next to its
// target and renamed into place, so readers never see a partial key.
func (s *Store) Put(ctx context.Context, ref string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if value == "" {
		return fmt.Errorf("put %q: %w", ref, ErrEmptyValue)
	}

	path, err := s.pathFor(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, keyDirMode); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".key-*")
	if err != nil {
		return fmt.Errorf("create temp key file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := tmp.Chmod(keyFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp key file: %w", err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write key %q: %w", ref, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync key %q: %w", ref, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close key %q: %w", ref, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("install key %q: %w", ref, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := s.pathFor(ref)
	if err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("key %q: %w", ref, domain.ErrSecretNotFound)
	case err != nil:
		return "", fmt.Errorf("read key %q: %w", ref, err)
	case len(data) == 0:
		// A zero-length file is treated as absent so a fresh key can be generated.
		return "", fmt.Errorf("key %q is empty: %w", ref, domain.ErrSecretNotFound)
	}

	return string(data), nil
}

// Delete is idempotent.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path, err := s.pathFor(ref)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete key %q: %w", ref, err)
	}

	return nil
}

func (s *Store) pathFor(ref string) (string, error) {
	if !refPattern.MatchString(ref) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}

	return filepath.Join(s.root, filepath.FromSlash(ref)), nil
}
