// Package ipc carries one-way notifications from the views to the timer process.
//
// Delivery is fire-and-forget: senders never block and never report errors to
// the caller.
package ipc

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"cue-cli/internal/model"
)

type Type string

const (
	TypeSetSchedule   Type = "set-schedule"
	TypeSetActiveTask Type = "set-active-task"
	TypeSaveSchedule  Type = "save-schedule"
	TypeStartTask     Type = "start-task"
)

type Message interface {
	Type() Type
}

// SetSchedule carries the normalized schedule text; sent on every edit and on blur.
type SetSchedule struct {
	Text string `json:"text"`
}

// SetActiveTask carries the next task of the schedule; duration is in minutes.
type SetActiveTask struct {
	model.Task
}

// SaveSchedule asks the timer to persist the schedule and start the active task.
type SaveSchedule struct{}

// StartTask starts a one-off task; duration is in seconds.
type StartTask struct {
	model.Task
}

func (SetSchedule) Type() Type   { return TypeSetSchedule }
func (SetActiveTask) Type() Type { return TypeSetActiveTask }
func (SaveSchedule) Type() Type  { return TypeSaveSchedule }
func (StartTask) Type() Type     { return TypeStartTask }

// Envelope is the wire form of a message.
type Envelope struct {
	ID      string          `json:"id"`
	Type    Type            `json:"type"`
	At      time.Time       `json:"at"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type unknownTypeError struct {
	typ Type
}

func (e unknownTypeError) Error() string {
	return fmt.Sprintf("unknown message type: %q", string(e.typ))
}

// IsUnknownType reports whether err came from decoding an envelope of an unknown type.
func IsUnknownType(err error) bool {
	_, ok := err.(unknownTypeError)
	return ok
}

func Wrap(msg Message, now time.Time) (Envelope, error) {
	env := Envelope{ID: newID(now), Type: msg.Type(), At: now.UTC()}
	if _, empty := msg.(SaveSchedule); empty {
		return env, nil
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s: %w", msg.Type(), err)
	}
	env.Payload = b
	return env, nil
}

// Decode returns the typed message carried by e.
func (e Envelope) Decode() (Message, error) {
	var msg Message
	switch e.Type {
	case TypeSetSchedule:
		var m SetSchedule
		if err := e.unmarshal(&m); err != nil {
			return nil, err
		}
		msg = m
	case TypeSetActiveTask:
		var m SetActiveTask
		if err := e.unmarshal(&m); err != nil {
			return nil, err
		}
		msg = m
	case TypeSaveSchedule:
		msg = SaveSchedule{}
	case TypeStartTask:
		var m StartTask
		if err := e.unmarshal(&m); err != nil {
			return nil, err
		}
		msg = m
	default:
		return nil, unknownTypeError{typ: e.Type}
	}
	return msg, nil
}

func (e Envelope) unmarshal(v any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("decode %s: %w", e.Type, err)
	}
	return nil
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newID(now time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
