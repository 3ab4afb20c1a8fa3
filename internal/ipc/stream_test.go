package ipc

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cue-cli/internal/model"
)

func TestStream_RoundTripInOrder(t *testing.T) {
	var buf bytes.Buffer
	s := NewStreamSender(&buf, zerolog.Nop())
	s.Send(SetSchedule{Text: "a\t|　1"})
	s.Send(SetActiveTask{Task: model.Task{Name: "a", Duration: 1}})
	s.Send(SaveSchedule{})

	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	var got []Message
	err := ReadStream(context.Background(), &buf, zerolog.Nop(), func(_ Envelope, m Message) error {
		got = append(got, m)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Message{
		SetSchedule{Text: "a\t|　1"},
		SetActiveTask{Task: model.Task{Name: "a", Duration: 1}},
		SaveSchedule{},
	}, got)
}

func TestReadStream_SkipsBlankAndUnknown(t *testing.T) {
	in := "\n" +
		`{"id":"1","type":"reboot"}` + "\n" +
		`{"id":"2","type":"save-schedule"}` + "\n"
	n := 0
	err := ReadStream(context.Background(), strings.NewReader(in), zerolog.Nop(), func(_ Envelope, m Message) error {
		n++
		assert.Equal(t, SaveSchedule{}, m)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReadStream_MalformedLineReportsLineNumber(t *testing.T) {
	in := `{"id":"1","type":"save-schedule"}` + "\nnot json\n"
	err := ReadStream(context.Background(), strings.NewReader(in), zerolog.Nop(), func(Envelope, Message) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
