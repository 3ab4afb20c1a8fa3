package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds, so
// colours are lipgloss.AdaptiveColor and "faint" is only applied on dark ones.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

const defaultAccent = "#d80065"

var (
	colorMuted     lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")
	colorInputBg   lipgloss.TerminalColor = ac("254", "234")
	colorDone      lipgloss.TerminalColor = ac("246", "240")

	// colorAccent follows ui.accent in the config file.
	colorAccent   lipgloss.TerminalColor = lipgloss.Color(defaultAccent)
	colorAccentFg lipgloss.TerminalColor = ac("255", "255")

	// Cooldown fill: the bar turns white once the task is complete.
	colorCompleteFill = "#eeeeee"
)

func setAccent(c string) {
	c = strings.TrimSpace(c)
	if c == "" {
		c = defaultAccent
	}
	colorAccent = lipgloss.Color(c)
}

func accentHex() string {
	if c, ok := colorAccent.(lipgloss.Color); ok {
		return string(c)
	}
	return defaultAccent
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(colorAccentFg).
		Background(colorAccent)
}

func styleNextTask() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleDoneTask() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorDone).Strikethrough(true))
}

func styleInput(focused bool) lipgloss.Style {
	st := lipgloss.NewStyle().
		Background(colorInputBg).
		Foreground(colorSurfaceFg).
		Padding(0, 1)
	if focused {
		st = st.BorderLeft(true).BorderStyle(lipgloss.ThickBorder()).BorderForeground(colorAccent)
	} else {
		st = st.BorderLeft(true).BorderStyle(lipgloss.HiddenBorder())
	}
	return st
}

// applyColorProfilePreference honours NO_COLOR and otherwise trusts TERM/COLORTERM
// over termenv's probe, which under-reports on some terminals.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && profile != termenv.TrueColor {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) CUE_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("CUE_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
