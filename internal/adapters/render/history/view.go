package history

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/fhe-strength-tracker/internal/application"
	"github.com/bnema/fhe-strength-tracker/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethereum/go-ethereum/common"
)

const volumeBarWidth = 24

type RenderOptions struct {
	Now      time.Time
	Owner    common.Address
	Contract common.Address
}

func renderView(entries []application.HistoryEntry, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Training History"),
		s.header.Render(fmt.Sprintf("owner: %s  records: %d", opts.Owner.Hex(), len(entries))),
	}
	if opts.Contract != (common.Address{}) {
		lines = append(lines, s.header.Render(fmt.Sprintf("ledger: %s", opts.Contract.Hex())))
	}

	if len(entries) == 0 {
		lines = append(lines, s.empty.Render("No training records yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	maxVolume := maxSessionVolume(entries)
	for _, entry := range entries {
		lines = append(lines, s.section.Render(renderEntry(entry, maxVolume, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderEntry(entry application.HistoryEntry, maxVolume uint64, opts RenderOptions, s styles) string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.index.Render(fmt.Sprintf("#%d", entry.Index)),
		" ",
		s.detail.Render(formatRecordedAt(entry.RecordedAt(), opts.Now)),
	)

	if entry.Session == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			s.sealed.Render(fmt.Sprintf("weight %s", shortHandle(entry.Record.Weight))),
			s.sealed.Render(fmt.Sprintf("sets   %s", shortHandle(entry.Record.Sets))),
			s.sealed.Render(fmt.Sprintf("reps   %s", shortHandle(entry.Record.Reps))),
		)
	}

	session := *entry.Session
	values := s.detail.Render(fmt.Sprintf("%d kg x %d sets x %d reps", session.Weight, session.Sets, session.Reps))
	volume := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.fieldKey.Render("volume:"),
		" ",
		renderVolumeBar(sessionVolume(session), maxVolume, volumeBarWidth, s),
		" ",
		lipgloss.NewStyle().Foreground(interpolateColor(float64(sessionVolume(session)), 0, float64(maxVolume))).
			Render(fmt.Sprintf("%d", sessionVolume(session))),
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, values, volume)
}

func sessionVolume(session domain.TrainingSession) uint64 {
	return uint64(session.Weight) * uint64(session.Sets) * uint64(session.Reps)
}

func maxSessionVolume(entries []application.HistoryEntry) uint64 {
	var highest uint64
	for _, entry := range entries {
		if entry.Session == nil {
			continue
		}
		if volume := sessionVolume(*entry.Session); volume > highest {
			highest = volume
		}
	}

	return highest
}

func renderVolumeBar(volume, maxVolume uint64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := 0
	if maxVolume > 0 {
		filled = int(math.Round(float64(width) * float64(volume) / float64(maxVolume)))
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

// shortHandle keeps the first and last four bytes of a ciphertext handle.
func shortHandle(handle domain.Handle) string {
	encoded := handle.Hex()
	if len(encoded) <= 20 {
		return encoded
	}

	return encoded[:10] + "..." + encoded[len(encoded)-8:]
}

func formatRecordedAt(at, now time.Time) string {
	stamp := at.Format("2006-01-02 15:04 UTC")
	if now.IsZero() || at.After(now) {
		return stamp
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return stamp + " (just now)"
	case elapsed < time.Hour:
		return fmt.Sprintf("%s (%s ago)", stamp, plural(int(elapsed.Minutes()), "minute"))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%s (%s ago)", stamp, plural(int(elapsed.Hours()), "hour"))
	default:
		return fmt.Sprintf("%s (%s ago)", stamp, plural(int(elapsed.Hours()/24), "day"))
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}

	return fmt.Sprintf("%d %ss", n, unit)
}

func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	// ANSI 256 greyscale ramp from faded 240 to bright 255.
	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
