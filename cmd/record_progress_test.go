package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/application"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepProgress(t *testing.T, m recordProgressModel, msgs ...tea.Msg) recordProgressModel {
	t.Helper()

	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(recordProgressModel)
		require.True(t, ok)
	}
	return m
}

func TestRecordProgressMarksFinishedPhases(t *testing.T) {
	start := time.Unix(1_700_000_000, 0)
	m := newRecordProgressModel(nil)

	m = stepProgress(t, m, recordPhaseMsg{phase: application.RecordPhaseEncrypting, at: start})
	assert.Contains(t, m.View(), "Encrypting weight, sets and reps...")

	m = stepProgress(t, m, recordPhaseMsg{phase: application.RecordPhaseSubmitting, at: start.Add(1200 * time.Millisecond)})
	view := m.View()
	assert.Contains(t, view, "Encrypted session")
	assert.Contains(t, view, "(1.2s)")
	assert.Contains(t, view, "Submitting to the ledger and waiting for the block...")

	m = stepProgress(t, m, recordDoneMsg{at: start.Add(1500 * time.Millisecond)})
	view = m.View()
	assert.True(t, m.done)
	assert.Contains(t, view, "Included in a block")
	assert.Contains(t, view, "(300ms)")
	assert.NotContains(t, view, "waiting for the block")
}

func TestRecordProgressClearsOnError(t *testing.T) {
	boom := errors.New("execution reverted: Invalid input proof")
	m := newRecordProgressModel(nil)

	m = stepProgress(t, m,
		recordPhaseMsg{phase: application.RecordPhaseEncrypting, at: time.Unix(0, 0)},
		recordDoneMsg{err: boom, at: time.Unix(1, 0)},
	)

	assert.Empty(t, m.View())
	assert.Equal(t, boom, m.err)
}
