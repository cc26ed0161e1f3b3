// Package pass keeps key material in the user's password-store (pass + gpg).
package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/bnema/fhe-strength-tracker/internal/ports"
)

var (
	ErrUnavailable = errors.New("pass command unavailable")
	// ErrLocked means gpg could not decrypt the entry, usually a locked agent
	// or a store initialised for another key.
	ErrLocked      = errors.New("password store is locked")
)

const (
	notInStoreMessage    = "is not in the password store"
	decryptFailedMessage = "decryption failed"
	noSecretKeyMessage   = "No secret key"
	passBinary           = "pass"
)

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

type Store struct {
	run runFunc
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPass}
}

// Put writes value as a single-line entry, replacing any existing one.
func (s *Store) Put(ctx context.Context, ref string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("pass put %q: empty key material", ref)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass put %q: key material must be a single line", ref)
	}

	_, stderr, err := s.run(ctx, value+"\n", "insert", "--multiline", "--force", ref)
	if err != nil {
		return classify("put", ref, err, stderr)
	}

	return nil
}

// Get returns the first line of the entry. An empty entry reads as missing.
func (s *Store) Get(ctx context.Context, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	stdout, stderr, err := s.run(ctx, "", "show", ref)
	if err != nil {
		return "", classify("get", ref, err, stderr)
	}

	value, _, _ := strings.Cut(stdout, "\n")
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("pass get %q: empty entry: %w", ref, domain.ErrSecretNotFound)
	}

	return value, nil
}

func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, stderr, err := s.run(ctx, "", "rm", "--force", ref)
	if err != nil {
		classified := classify("delete", ref, err, stderr)
		if errors.Is(classified, domain.ErrSecretNotFound) {
			return nil
		}
		return classified
	}

	return nil
}

func runPass(ctx context.Context, input string, args ...string) (string, string, error) {
	path, err := exec.LookPath(passBinary)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func classify(op string, ref string, err error, stderr string) error {
	switch {
	case strings.Contains(stderr, notInStoreMessage):
		return fmt.Errorf("pass %s %q: %w", op, ref, domain.ErrSecretNotFound)
	case strings.Contains(stderr, decryptFailedMessage), strings.Contains(stderr, noSecretKeyMessage):
		return fmt.Errorf("pass %s %q: %w: %s", op, ref, ErrLocked, stderr)
	case stderr == "":
		return fmt.Errorf("pass %s %q: %w", op, ref, err)
	default:
		return fmt.Errorf("pass %s %q: %w: %s", op, ref, err, stderr)
	}
}
