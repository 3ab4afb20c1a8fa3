package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type action int

const (
	actNone action = iota
	actQuit
	actShowSchedule
	actShowTask
	actShowTimer
	actSaveSchedule
	actStartTask
	actNextField
	actPrevField
	actExternalEdit
)

type binding struct {
	key    key.Binding
	action action
}

var (
	keyQuit         = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	keyQuitTimer    = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	keyShowSchedule = key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "schedule"))
	keyShowTask     = key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "task"))
	keyShowTimer    = key.NewBinding(key.WithKeys("f3", "esc"), key.WithHelp("esc", "timer"))
	keyScheduleOpen = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit schedule"))
	keyTaskOpen     = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task"))
	// mod+enter is not reported by most terminals; alt+enter and ctrl+s stand in for it.
	keySave      = key.NewBinding(key.WithKeys("ctrl+s", "alt+enter"), key.WithHelp("ctrl+s", "save & start"))
	keyStart     = key.NewBinding(key.WithKeys("ctrl+s", "alt+enter", "enter"), key.WithHelp("enter", "start"))
	keyNextField = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	keyPrevField = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field"))
	keyExtEditor = key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "$EDITOR"))
)

func globalBindings() []binding {
	return []binding{
		{key: keyQuit, action: actQuit},
		{key: keyShowSchedule, action: actShowSchedule},
		{key: keyShowTask, action: actShowTask},
	}
}

func viewBindings(v view) []binding {
	switch v {
	case viewSchedule:
		return []binding{
			{key: keySave, action: actSaveSchedule},
			{key: keyExtEditor, action: actExternalEdit},
			{key: keyShowTimer, action: actShowTimer},
		}
	case viewTask:
		return []binding{
			{key: keyStart, action: actStartTask},
			{key: keyNextField, action: actNextField},
			{key: keyPrevField, action: actPrevField},
			{key: keyShowTimer, action: actShowTimer},
		}
	case viewTimer:
		return []binding{
			{key: keyQuitTimer, action: actQuit},
			{key: keyScheduleOpen, action: actShowSchedule},
			{key: keyTaskOpen, action: actShowTask},
		}
	default:
		return nil
	}
}

// keyRegistry holds key bindings in scopes. A view registers its scope when it
// becomes active and tears it down when it is left, so bindings never outlive
// the view that owns them. Later scopes take precedence.
type keyRegistry struct {
	nextID int
	scopes []keyScope
}

type keyScope struct {
	id       int
	bindings []binding
}

func newKeyRegistry() *keyRegistry {
	return &keyRegistry{}
}

// Register adds a scope and returns its teardown. Calling teardown more than
// once is a no-op.
func (r *keyRegistry) Register(bs ...binding) func() {
	r.nextID++
	id := r.nextID
	r.scopes = append(r.scopes, keyScope{id: id, bindings: bs})
	return func() { r.remove(id) }
}

func (r *keyRegistry) remove(id int) {
	for i, s := range r.scopes {
		if s.id == id {
			r.scopes = append(r.scopes[:i], r.scopes[i+1:]...)
			return
		}
	}
}

func (r *keyRegistry) Match(msg tea.KeyMsg) (action, bool) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		for _, b := range r.scopes[i].bindings {
			if key.Matches(msg, b.key) {
				return b.action, true
			}
		}
	}
	return actNone, false
}

// Help lists the active bindings, most specific scope first.
func (r *keyRegistry) Help() []key.Binding {
	var out []key.Binding
	seen := map[string]bool{}
	for i := len(r.scopes) - 1; i >= 0; i-- {
		for _, b := range r.scopes[i].bindings {
			h := b.key.Help().Key
			if seen[h] {
				continue
			}
			seen[h] = true
			out = append(out, b.key)
		}
	}
	return out
}
