package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"cue-cli/internal/config"
	"cue-cli/internal/editor"
	"cue-cli/internal/ipc"
	"cue-cli/internal/logx"
	"cue-cli/internal/timer"
)

type view int

const (
	viewSchedule view = iota
	viewTask
	viewTimer
)

func (v view) String() string {
	switch v {
	case viewSchedule:
		return "schedule"
	case viewTask:
		return "task"
	case viewTimer:
		return "timer"
	default:
		return "unknown"
	}
}

func parseView(s string) view {
	switch s {
	case config.ViewTask:
		return viewTask
	default:
		return viewSchedule
	}
}

// Options wires the views to the timer process.
type Options struct {
	// Schedule is the initial schedule text.
	Schedule string
	Sender   ipc.Sender
	// Snapshots delivers the timer state; nil disables the countdown view updates.
	Snapshots <-chan timer.Snapshot
	// Configs delivers reloaded configuration.
	Configs   <-chan config.Config
	StartView string
	Accent    string
	Log       zerolog.Logger
}

type snapshotMsg struct {
	snap timer.Snapshot
	ok   bool
}

type configMsg struct {
	cfg config.Config
	ok  bool
}

type appModel struct {
	log    zerolog.Logger
	sender ipc.Sender
	snaps  <-chan timer.Snapshot
	cfgs   <-chan config.Config

	width  int
	height int

	view   view
	keys   *keyRegistry
	unbind func()
	help   help.Model

	ed       *editor.Editor
	schedule scheduleView
	task     taskView
	timer    timerView
	snap     timer.Snapshot

	// status is a one-line notice shown until the next key press.
	status string

	initCmd tea.Cmd
}

func newAppModel(opts Options) appModel {
	sender := opts.Sender
	if sender == nil {
		sender = ipc.Discard
	}
	setAccent(opts.Accent)

	ed := editor.New(opts.Schedule, sender)
	m := appModel{
		log:      logx.Component(opts.Log, "tui"),
		sender:   sender,
		snaps:    opts.Snapshots,
		cfgs:     opts.Configs,
		keys:     newKeyRegistry(),
		help:     help.New(),
		ed:       ed,
		schedule: newScheduleView(ed),
		task:     newTaskView(),
		timer:    newTimerView(),
		view:     viewTimer,
	}
	m.keys.Register(globalBindings()...)
	m.initCmd = m.setView(parseView(opts.StartView))
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.initCmd, waitForSnapshot(m.snaps), waitForConfig(m.cfgs))
}

func waitForSnapshot(ch <-chan timer.Snapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		return snapshotMsg{snap: snap, ok: ok}
	}
}

func waitForConfig(ch <-chan config.Config) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		return configMsg{cfg: cfg, ok: ok}
	}
}

// setView leaves the current view, tears down its key scope and activates v.
func (m *appModel) setView(v view) tea.Cmd {
	if m.unbind != nil {
		m.unbind()
		m.unbind = nil
	}
	switch m.view {
	case viewSchedule:
		if v != viewSchedule {
			m.schedule.blur()
		}
	case viewTask:
		if v != viewTask {
			m.task.blur()
		}
	}

	m.view = v
	m.unbind = m.keys.Register(viewBindings(v)...)
	m.log.Debug().Str("view", v.String()).Msg("view activated")

	switch v {
	case viewSchedule:
		m.schedule.resize(m.width, m.height)
		return m.schedule.focus()
	case viewTask:
		return m.task.setFocus(fieldName)
	default:
		return nil
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.schedule.resize(m.width, m.height)
		m.timer.resize(m.width)
		return m, nil

	case snapshotMsg:
		if !msg.ok {
			return m, nil
		}
		m.snap = msg.snap
		m.schedule.sync(msg.snap.Schedule)
		return m, waitForSnapshot(m.snaps)

	case configMsg:
		if !msg.ok {
			return m, nil
		}
		setAccent(msg.cfg.UI.Accent)
		m.log.Info().Str("accent", msg.cfg.UI.Accent).Msg("appearance reloaded")
		return m, waitForConfig(m.cfgs)

	case externalEditorDoneMsg:
		m.applyExternalEditorResult(msg)
		return m, nil

	case tea.KeyMsg:
		m.status = ""
		if act, ok := m.keys.Match(msg); ok {
			return m.perform(act)
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case viewSchedule:
		cmd = m.schedule.update(msg)
		m.schedule.resize(m.width, m.height)
	case viewTask:
		cmd = m.task.update(msg)
	}
	return m, cmd
}

func (m appModel) perform(act action) (tea.Model, tea.Cmd) {
	switch act {
	case actQuit:
		if m.view == viewSchedule {
			// Leaving commits the local buffer.
			m.schedule.blur()
		}
		return m, tea.Quit
	case actShowSchedule:
		return m, m.setView(viewSchedule)
	case actShowTask:
		return m, m.setView(viewTask)
	case actShowTimer:
		return m, m.setView(viewTimer)
	case actSaveSchedule:
		next := m.ed.Save()
		m.log.Info().Str("next", next.Name).Float64("minutes", next.Duration).Msg("schedule saved")
		return m, m.setView(viewTimer)
	case actStartTask:
		t, ok := m.task.task()
		if !ok {
			return m, nil
		}
		m.sender.Send(ipc.StartTask{Task: t})
		m.log.Info().Str("task", t.Name).Float64("seconds", t.Duration).Msg("task started from form")
		m.task.reset()
		return m, m.setView(viewTimer)
	case actExternalEdit:
		cmd, err := m.openExternalEditor()
		if err != nil {
			m.status = "Editor failed: " + err.Error()
			m.log.Error().Err(err).Msg("open external editor")
			return m, nil
		}
		return m, cmd
	case actNextField:
		return m, m.task.setFocus(m.task.focus + 1)
	case actPrevField:
		return m, m.task.setFocus(m.task.focus - 1)
	}
	return m, nil
}

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewSchedule:
		body = m.schedule.view(m.width)
	case viewTask:
		body = m.task.view()
	default:
		body = m.timer.view(m.snap, m.width)
	}
	footer := m.help.ShortHelpView(m.keys.Help())
	if m.status != "" {
		footer = styleMuted().Render(m.status) + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
}
