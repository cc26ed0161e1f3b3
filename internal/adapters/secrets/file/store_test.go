package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walletRef = "strength-tracker/wallet/default"

func TestStoreRejectsInvalidRefs(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	for _, ref := range []string{"", "   ", "/absolute/path", "../escape", "strength-tracker/../../secret", "a//b", "trailing/", "with space/key"} {
		t.Run(ref, func(t *testing.T) {
			err := store.Put(context.Background(), ref, "value")
			require.ErrorIs(t, err, ErrInvalidRef)

			_, err = store.Get(context.Background(), ref)
			require.ErrorIs(t, err, ErrInvalidRef)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	want := "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

	require.NoError(t, store.Put(context.Background(), walletRef, want))

	got, err := store.Get(context.Background(), walletRef)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(filepath.Join(root, "strength-tracker", "wallet", "default"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keyFileMode), info.Mode().Perm())

	dirInfo, err := os.Stat(filepath.Join(root, "strength-tracker", "wallet"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(keyDirMode), dirInfo.Mode().Perm())
}

func TestStorePutReplacesWithoutLeavingTempFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), walletRef, "first"))
	require.NoError(t, store.Put(context.Background(), walletRef, "second"))

	got, err := store.Get(context.Background(), walletRef)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	entries, err := os.ReadDir(filepath.Join(root, "strength-tracker", "wallet"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "default", entries[0].Name())
}

func TestStorePutRejectsEmptyValue(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	err := store.Put(context.Background(), walletRef, "")
	require.ErrorIs(t, err, ErrEmptyValue)

	_, err = store.Get(context.Background(), walletRef)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreEmptyFileReadsAsNotFound(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	dir := filepath.Join(root, "strength-tracker", "kms")
	require.NoError(t, os.MkdirAll(dir, keyDirMode))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coprocessor_key"), nil, keyFileMode))

	_, err := store.Get(context.Background(), "strength-tracker/kms/coprocessor_key")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), walletRef, "key"))

	require.NoError(t, store.Delete(context.Background(), walletRef))
	require.NoError(t, store.Delete(context.Background(), walletRef))

	_, err := store.Get(context.Background(), walletRef)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetMissingSecretReturnsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), "strength-tracker/kms/coprocessor_key")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "strength-tracker/kms/coprocessor_key")
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore(t.TempDir()).Put(ctx, walletRef, "key")
	require.ErrorIs(t, err, context.Canceled)
}
