package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"cue-cli/internal/timer"
)

type timerView struct {
	bar progress.Model
}

func newTimerView() timerView {
	return timerView{
		bar: progress.New(progress.WithSolidFill(accentHex()), progress.WithoutPercentage()),
	}
}

func (v *timerView) resize(termW int) {
	v.bar.Width = max(10, termW-4)
}

func (v timerView) view(snap timer.Snapshot, termW int) string {
	bar := v.bar
	bar.FullColor = accentHex()
	if snap.Phase == timer.PhaseCooldown {
		bar.FullColor = colorCompleteFill
	}

	title := "no task"
	if !snap.Task.IsZero() && snap.Phase != timer.PhaseIdle {
		title = snap.Task.Name
	}

	var status string
	switch snap.Phase {
	case timer.PhaseRunning:
		status = formatClock(snap.Remaining) + styleMuted().Render(" left of "+formatClock(snap.Task.Duration()))
	case timer.PhaseCooldown:
		status = "done" + styleMuted().Render(" · break "+formatClock(snap.Remaining))
	default:
		status = styleMuted().Render("idle")
		if !snap.Staged.IsZero() {
			status += styleMuted().Render(" · up next: " + snap.Staged.Name)
		}
	}

	center := lipgloss.NewStyle().Width(max(termW, 1)).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Left,
		bar.ViewAs(snap.Progress),
		"",
		center.Render(styleTitle().Render(title)),
		"",
		center.Render(status),
	)
}

// formatClock renders d as m:ss, or h:mm:ss from an hour up. Partial seconds
// round up so a running countdown never shows 0:00.
func formatClock(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 0 {
		secs = 0
	}
	h, m, s := secs/3600, secs/60%60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func formatMinutes(minutes float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", minutes), "0"), ".")
	return s + " min"
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
