package sdkerrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: KindUnknown},
		{name: "invalid session", err: domain.TrainingSession{}.Validate(), want: KindValidation},
		{name: "out of bounds", err: fmt.Errorf("call getRecord: %w", domain.ErrIndexOutOfBounds), want: KindValidation},
		{name: "in progress", err: domain.ErrRecordingInProgress, want: KindValidation},
		{name: "invalid proof", err: domain.ErrInvalidProof, want: KindAuthorization},
		{name: "wallet", err: domain.ErrWalletNotConnected, want: KindAuthorization},
		{name: "decrypt", err: domain.ErrDecryptionDenied, want: KindAuthorization},
		{name: "not deployed", err: domain.ErrNotDeployed, want: KindConnectivity},
		{name: "not ready", err: domain.ErrEncryptionNotReady, want: KindConnectivity},
		{name: "deadline", err: context.DeadlineExceeded, want: KindConnectivity},
		{name: "analytics", err: errors.New("AnalyticsSDKApiError: request blocked"), want: KindBenign},
		{name: "coalesce", err: errors.New("could not coalesce error (code=UNKNOWN_ERROR)"), want: KindBenign},
		{name: "mock event parse", err: errors.New("Parse event LogDecrypt in backward order"), want: KindBenign},
		{name: "other", err: errors.New("disk full"), want: KindUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestWrapKeepsChainAndKind(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Wrap("noop", nil))

	err := Wrap("record training", fmt.Errorf("send: %w", domain.ErrInvalidProof))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidProof)
	assert.Equal(t, KindAuthorization, KindOf(err))
	assert.Equal(t, "record training: send: Invalid input proof", err.Error())

	outer := Wrap("history", fmt.Errorf("load: %w", err))
	var sdkErr *Error
	require.ErrorAs(t, outer, &sdkErr)
	assert.Equal(t, "history", sdkErr.Op)
	assert.Equal(t, KindAuthorization, sdkErr.Kind)

	assert.True(t, IsBenign(Wrap("fetch", errors.New("Failed to fetch https://cca-lite.coinbase.com/metrics"))))
	assert.False(t, IsBenign(err))
}

func TestFilterCoreDropsBenignNoise(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(NewFilterCore(core)).With(zap.String("component", "test"))

	logger.Error("request failed", zap.Error(errors.New("Analytics SDK: Failed to fetch")))
	logger.Error("could not coalesce error")
	logger.Warn("Analytics SDK disabled")
	logger.Warn("could not coalesce error")
	logger.Error("ledger call failed", zap.Error(domain.ErrIndexOutOfBounds))
	logger.Info("Analytics SDK loaded")

	messages := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}

	assert.Equal(t, []string{"could not coalesce error", "ledger call failed", "Analytics SDK loaded"}, messages)
}
