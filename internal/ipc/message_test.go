package ipc

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cue-cli/internal/model"
)

func TestWrapDecode_PayloadShapes(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	env, err := Wrap(StartTask{Task: model.Task{Name: "Focus", Duration: 750}}, now)
	require.NoError(t, err)
	assert.Equal(t, TypeStartTask, env.Type)
	assert.JSONEq(t, `{"name":"Focus","duration":750}`, string(env.Payload))
	assert.Len(t, env.ID, 26)

	msg, err := env.Decode()
	require.NoError(t, err)
	assert.Equal(t, StartTask{Task: model.Task{Name: "Focus", Duration: 750}}, msg)

	env, err = Wrap(SaveSchedule{}, now)
	require.NoError(t, err)
	assert.Empty(t, env.Payload)
	msg, err = env.Decode()
	require.NoError(t, err)
	assert.Equal(t, SaveSchedule{}, msg)
}

func TestWrap_IDsAreOrdered(t *testing.T) {
	now := time.Now()
	a, err := Wrap(SetSchedule{Text: "a"}, now)
	require.NoError(t, err)
	b, err := Wrap(SetSchedule{Text: "b"}, now)
	require.NoError(t, err)
	assert.Less(t, a.ID, b.ID)
}

func TestDecode_UnknownType(t *testing.T) {
	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","type":"reboot"}`), &env))
	_, err := env.Decode()
	require.Error(t, err)
	assert.True(t, IsUnknownType(err))
}

func TestTee(t *testing.T) {
	var got []Type
	rec := SenderFunc(func(m Message) { got = append(got, m.Type()) })
	Tee(rec, nil, rec).Send(SaveSchedule{})
	assert.Equal(t, []Type{TypeSaveSchedule, TypeSaveSchedule}, got)
}
