package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	phaseDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	phaseTimeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type recordPhaseMsg struct {
	phase application.RecordPhase
	at    time.Time
}

type recordDoneMsg struct {
	err error
	at  time.Time
}

// recordProgressModel shows the running phase of a record submission under a
// spinner and keeps finished phases as check-marked lines.
type recordProgressModel struct {
	spinner  spinner.Model
	submit   tea.Cmd
	phase    application.RecordPhase
	started  time.Time
	finished []string
	err      error
	done     bool
}

func newRecordProgressModel(submit tea.Cmd) recordProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return recordProgressModel{spinner: s, submit: submit}
}

func (m recordProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.submit)
}

func (m recordProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case recordPhaseMsg:
		m = m.finishPhase(msg.at)
		m.phase = msg.phase
		m.started = msg.at
		return m, nil
	case recordDoneMsg:
		if msg.err == nil {
			m = m.finishPhase(msg.at)
		}
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m recordProgressModel) finishPhase(at time.Time) recordProgressModel {
	if m.phase == 0 {
		return m
	}

	elapsed := at.Sub(m.started).Round(10 * time.Millisecond)
	m.finished = append(m.finished, fmt.Sprintf("%s %s %s",
		phaseDoneStyle.Render("✓"), phaseDoneLabel(m.phase), phaseTimeStyle.Render("("+elapsed.String()+")")))
	m.phase = 0
	return m
}

func (m recordProgressModel) View() string {
	if m.done && m.err != nil {
		return ""
	}

	var b strings.Builder
	for _, line := range m.finished {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if !m.done && m.phase != 0 {
		fmt.Fprintf(&b, "%s %s", m.spinner.View(), phaseRunningLabel(m.phase))
	}

	return b.String()
}

func phaseRunningLabel(phase application.RecordPhase) string {
	switch phase {
	case application.RecordPhaseEncrypting:
		return "Encrypting weight, sets and reps..."
	case application.RecordPhaseSubmitting:
		return "Submitting to the ledger and waiting for the block..."
	default:
		return phase.String() + "..."
	}
}

func phaseDoneLabel(phase application.RecordPhase) string {
	switch phase {
	case application.RecordPhaseEncrypting:
		return "Encrypted session"
	case application.RecordPhaseSubmitting:
		return "Included in a block"
	default:
		return phase.String()
	}
}

// runRecordProgress renders record phases on output until submit returns.
func runRecordProgress(ctx context.Context, output io.Writer, submit func(context.Context, func(application.RecordPhase)) error) error {
	var p *tea.Program

	report := func(phase application.RecordPhase) {
		p.Send(recordPhaseMsg{phase: phase, at: time.Now()})
	}
	submitCmd := func() tea.Msg {
		err := submit(ctx, report)
		return recordDoneMsg{err: err, at: time.Now()}
	}

	p = tea.NewProgram(
		newRecordProgressModel(submitCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(recordProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
