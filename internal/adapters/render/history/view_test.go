package history

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var owner = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func entry(index uint64, ts time.Time, session *domain.TrainingSession) application.HistoryEntry {
	var weight domain.Handle
	weight[0], weight[31] = 0xab, byte(index)

	return application.HistoryEntry{
		RecordView: application.RecordView{
			Index:     index,
			Timestamp: uint64(ts.Unix()),
			Record:    domain.Record{Owner: owner, Weight: weight, Timestamp: uint64(ts.Unix())},
		},
		Session: session,
	}
}

func TestRenderEmptyHistory(t *testing.T) {
	output, err := Render(nil, RenderOptions{Owner: owner})

	require.NoError(t, err)
	assert.Contains(t, output, "Training History")
	assert.Contains(t, output, "records: 0")
	assert.Contains(t, output, "No training records yet.")
}

func TestRenderDecryptedHistory(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	output, err := Render([]application.HistoryEntry{
		entry(0, now.Add(-3*time.Hour), &domain.TrainingSession{Weight: 100, Sets: 3, Reps: 10}),
		entry(1, now.Add(-30*time.Minute), &domain.TrainingSession{Weight: 50, Sets: 3, Reps: 10}),
	}, RenderOptions{
		Now:      now,
		Owner:    owner,
		Contract: common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
	})

	require.NoError(t, err)
	assert.Contains(t, output, "records: 2")
	assert.Contains(t, output, "ledger: 0x5FbDB2315678afecb367f032d93F642f64180aa3")
	assert.Contains(t, output, "#0")
	assert.Contains(t, output, "100 kg x 3 sets x 10 reps")
	assert.Contains(t, output, "2026-10-15 09:00 UTC (3 hours ago)")
	assert.Contains(t, output, "(30 minutes ago)")
	assert.Contains(t, output, "3000")
	assert.Contains(t, output, "1500")
	assert.Contains(t, output, "["+strings.Repeat("=", volumeBarWidth)+"]")
}

func TestRenderSealedHistoryShowsHandles(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	output, err := Render([]application.HistoryEntry{entry(4, now.Add(-48*time.Hour), nil)}, RenderOptions{Now: now, Owner: owner})

	require.NoError(t, err)
	assert.Contains(t, output, "#4")
	assert.Contains(t, output, "(2 days ago)")
	assert.Contains(t, output, "weight 0xab000000...00000004")
	assert.NotContains(t, output, "volume:")
}

func TestFormatRecordedAt(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		at   time.Time
		want string
	}{
		{at: now.Add(-10 * time.Second), want: "2026-10-15 11:59 UTC (just now)"},
		{at: now.Add(-1 * time.Minute), want: "2026-10-15 11:59 UTC (1 minute ago)"},
		{at: now.Add(-1 * time.Hour), want: "2026-10-15 11:00 UTC (1 hour ago)"},
		{at: now.Add(-24 * time.Hour), want: "2026-10-14 12:00 UTC (1 day ago)"},
		{at: now.Add(time.Hour), want: "2026-10-15 13:00 UTC"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, formatRecordedAt(tc.at, now))
	}
	assert.Equal(t, "2026-10-15 12:00 UTC", formatRecordedAt(now, time.Time{}))
}
