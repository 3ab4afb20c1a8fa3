package ipc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"cue-cli/internal/logx"
)

// maxLineBytes bounds one envelope; a schedule is plain text, 4 MiB is plenty.
const maxLineBytes = 4 << 20

// StreamSender writes one JSON envelope per line.
type StreamSender struct {
	log zerolog.Logger
	now func() time.Time

	mu sync.Mutex
	w  io.Writer
}

func NewStreamSender(w io.Writer, log zerolog.Logger) *StreamSender {
	return &StreamSender{
		w:   w,
		log: logx.Component(log, "stream"),
		now: time.Now,
	}
}

func (s *StreamSender) Send(msg Message) {
	env, err := Wrap(msg, s.now())
	if err != nil {
		s.log.Error().Err(err).Msg("wrap message")
		return
	}
	if err := s.Write(env); err != nil {
		s.log.Error().Err(err).Str("type", string(env.Type)).Msg("write envelope")
	}
}

func (s *StreamSender) Write(env Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	b = append(b, '\n')
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.w.Write(b)
	return err
}

// ReadStream decodes envelopes line by line and hands each message to fn.
// Blank lines are skipped; envelopes of unknown type are logged and skipped.
// It stops at EOF, on ctx cancellation, or on the first error from fn.
func ReadStream(ctx context.Context, r io.Reader, log zerolog.Logger, fn func(Envelope, Message) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var env Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		msg, err := env.Decode()
		if IsUnknownType(err) {
			log.Warn().Int("line", lineNo).Str("type", string(env.Type)).Msg("skipping unknown message")
			continue
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := fn(env, msg); err != nil {
			return err
		}
	}
	return sc.Err()
}
