package ipc

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"cue-cli/internal/logx"
)

// Bus fans messages out to in-process subscribers.
//
// Send never blocks: a subscriber whose queue is full misses the message.
type Bus struct {
	log zerolog.Logger
	now func() time.Time

	mu     sync.Mutex
	subs   []chan Envelope
	closed bool
}

func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		log: logx.Component(log, "bus"),
		now: time.Now,
	}
}

func (b *Bus) Subscribe(buffer int) <-chan Envelope {
	ch := make(chan Envelope, buffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

func (b *Bus) Unsubscribe(ch <-chan Envelope) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == ch {
			last := len(b.subs) - 1
			b.subs[i] = b.subs[last]
			b.subs[last] = nil
			b.subs = b.subs[:last]
			close(s)
			return
		}
	}
}

func (b *Bus) Send(msg Message) {
	env, err := Wrap(msg, b.now())
	if err != nil {
		b.log.Error().Err(err).Str("type", string(msg.Type())).Msg("wrap message")
		return
	}
	b.Publish(env)
}

// Publish delivers an already wrapped envelope.
func (b *Bus) Publish(env Envelope) {
	// Hold mu while sending so Unsubscribe/Close cannot close a channel mid-send.
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- env:
		default:
			b.log.Warn().Str("type", string(env.Type)).Str("id", env.ID).Msg("subscriber queue full; message dropped")
		}
	}
}

// Close closes every subscription. Later sends are dropped.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
