package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	portmocks "github.com/bnema/fhe-strength-tracker/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	walletRef = "strength-tracker/wallet/default"
	kmsRef    = "strength-tracker/kms/bgv_secret_key"
)

type layered struct {
	store    *Store
	primary  *portmocks.MockSecretStore
	fallback *portmocks.MockSecretStore
	logs     *observer.ObservedLogs
}

func newLayered(t *testing.T) layered {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback, zap.New(core))
	require.NoError(t, err)

	return layered{store: store, primary: primary, fallback: fallback, logs: logs}
}

func TestNewStoreRejectsNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore(nil, portmocks.NewMockSecretStore(t), nil)
	require.ErrorIs(t, err, errNilPrimary)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil, nil)
	require.ErrorIs(t, err, errNilFallback)
}

func TestStoreGetPrefersPrimary(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Get(mock.Anything, walletRef).Return("pass-key", nil).Once()

	value, err := l.store.Get(context.Background(), walletRef)
	require.NoError(t, err)
	assert.Equal(t, "pass-key", value)
}

func TestStoreGetFallsBackAndLogs(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Get(mock.Anything, walletRef).Return("", errors.New("pass unavailable")).Once()
	l.fallback.EXPECT().Get(mock.Anything, walletRef).Return("file-key", nil).Once()

	value, err := l.store.Get(context.Background(), walletRef)
	require.NoError(t, err)
	assert.Equal(t, "file-key", value)
	assert.Equal(t, 1, l.logs.FilterMessage("secret served from fallback backend").Len())
}

func TestStoreGetNotFoundOnlyWhenBothMiss(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Get(mock.Anything, kmsRef).Return("", domain.ErrSecretNotFound).Once()
	l.fallback.EXPECT().Get(mock.Anything, kmsRef).Return("", domain.ErrSecretNotFound).Once()

	_, err := l.store.Get(context.Background(), kmsRef)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.NotContains(t, err.Error(), "primary:")
}

func TestStoreGetCombinesDistinctFailures(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Get(mock.Anything, walletRef).Return("", errors.New("pass failed")).Once()
	l.fallback.EXPECT().Get(mock.Anything, walletRef).Return("", domain.ErrSecretNotFound).Once()

	_, err := l.store.Get(context.Background(), walletRef)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
	assert.ErrorContains(t, err, "primary:")
}

func TestStoreGetStopsOnContextError(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Get(mock.Anything, walletRef).Return("", context.Canceled).Once()

	_, err := l.store.Get(context.Background(), walletRef)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStorePutFallsBackWithoutLoggingValue(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Put(mock.Anything, walletRef, "secret-hex").Return(errors.New("pass failed")).Once()
	l.fallback.EXPECT().Put(mock.Anything, walletRef, "secret-hex").Return(nil).Once()

	require.NoError(t, l.store.Put(context.Background(), walletRef, "secret-hex"))

	entries := l.logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	for _, field := range entries[0].Context {
		assert.NotContains(t, field.String, "secret-hex")
	}
}

func TestStorePutSkipsFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Put(mock.Anything, walletRef, "secret-hex").Return(nil).Once()

	require.NoError(t, l.store.Put(context.Background(), walletRef, "secret-hex"))
}

func TestStorePutReportsBothFailures(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Put(mock.Anything, walletRef, "secret-hex").Return(errors.New("pass failed")).Once()
	l.fallback.EXPECT().Put(mock.Anything, walletRef, "secret-hex").Return(errors.New("disk full")).Once()

	err := l.store.Put(context.Background(), walletRef, "secret-hex")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "disk full")
}

func TestStoreDeleteClearsBothBackends(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Delete(mock.Anything, walletRef).Return(nil).Once()
	l.fallback.EXPECT().Delete(mock.Anything, walletRef).Return(nil).Once()

	require.NoError(t, l.store.Delete(context.Background(), walletRef))
}

func TestStoreDeleteToleratesUnusablePrimary(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Delete(mock.Anything, walletRef).Return(errors.New("pass unavailable")).Once()
	l.fallback.EXPECT().Delete(mock.Anything, walletRef).Return(nil).Once()

	require.NoError(t, l.store.Delete(context.Background(), walletRef))
}

func TestStoreDeleteReportsFallbackFailure(t *testing.T) {
	t.Parallel()

	l := newLayered(t)
	l.primary.EXPECT().Delete(mock.Anything, walletRef).Return(nil).Once()
	l.fallback.EXPECT().Delete(mock.Anything, walletRef).Return(errors.New("read-only fs")).Once()

	err := l.store.Delete(context.Background(), walletRef)
	require.Error(t, err)
	assert.ErrorContains(t, err, "read-only fs")
}
