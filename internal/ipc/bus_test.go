package ipc

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cue-cli/internal/model"
)

func TestBus_FanOut(t *testing.T) {
	b := NewBus(zerolog.Nop())
	a := b.Subscribe(4)
	c := b.Subscribe(4)

	b.Send(SetActiveTask{Task: model.Task{Name: "a", Duration: 1}})

	for _, ch := range []<-chan Envelope{a, c} {
		env := <-ch
		msg, err := env.Decode()
		require.NoError(t, err)
		assert.Equal(t, SetActiveTask{Task: model.Task{Name: "a", Duration: 1}}, msg)
	}
}

func TestBus_FullQueueDropsInsteadOfBlocking(t *testing.T) {
	b := NewBus(zerolog.Nop())
	ch := b.Subscribe(1)

	b.Send(SetSchedule{Text: "1"})
	b.Send(SetSchedule{Text: "2"})

	env := <-ch
	msg, err := env.Decode()
	require.NoError(t, err)
	assert.Equal(t, SetSchedule{Text: "1"}, msg)
	assert.Empty(t, ch)
}

func TestBus_UnsubscribeAndClose(t *testing.T) {
	b := NewBus(zerolog.Nop())
	a := b.Subscribe(1)
	c := b.Subscribe(1)

	b.Unsubscribe(a)
	_, open := <-a
	assert.False(t, open)

	b.Close()
	_, open = <-c
	assert.False(t, open)

	b.Send(SaveSchedule{})
	late := b.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}
