// Package timer is the process the views notify: it holds the latest
// schedule, counts the active task down and moves on to the next line.
package timer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"cue-cli/internal/ipc"
	"cue-cli/internal/logx"
	"cue-cli/internal/model"
	"cue-cli/internal/schedule"
)

// Persister is the durable side of the timer.
type Persister interface {
	SaveState(ctx context.Context, text string, active model.ActiveTask) error
	RecordCompletion(ctx context.Context, c model.Completion) error
}

type Options struct {
	TickInterval time.Duration
	Cooldown     time.Duration
	// AutoAdvance starts the next schedule line after the cooldown.
	AutoAdvance bool
	Now         func() time.Time
}

// Snapshot is the state the countdown view renders.
type Snapshot struct {
	Phase Phase
	Task  model.ActiveTask
	// Elapsed and Remaining refer to the task while running and to the
	// cooldown while cooling down.
	Elapsed   time.Duration
	Remaining time.Duration
	// Progress of the task in [0, 1].
	Progress float64
	Schedule string
	Staged   model.ActiveTask
}

type Runner struct {
	log   zerolog.Logger
	store Persister
	opts  Options

	mu       sync.Mutex
	schedule string
	staged   model.ActiveTask
	active   model.ActiveTask
	phase    Phase
	elapsed  time.Duration
	cooldown time.Duration
	subs     []chan Snapshot

	// seq numbers durable states under mu; persisted is the newest one
	// written, guarded by persistMu.
	seq       uint64
	persistMu sync.Mutex
	persisted uint64
}

func New(store Persister, opts Options, log zerolog.Logger) *Runner {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second / model.TicksPerSecond
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{
		log:   logx.Component(log, "timer"),
		store: store,
		opts:  opts,
	}
}

// Restore seeds the runner with persisted state without starting anything.
func (r *Runner) Restore(text string, staged model.ActiveTask) {
	r.mu.Lock()
	r.schedule = text
	r.staged = staged
	r.mu.Unlock()
	r.publish()
}

func (r *Runner) SetCooldown(d time.Duration) {
	r.mu.Lock()
	r.opts.Cooldown = d
	r.mu.Unlock()
}

func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

func (r *Runner) snapshotLocked() Snapshot {
	s := Snapshot{
		Phase:    r.phase,
		Task:     r.active,
		Schedule: r.schedule,
		Staged:   r.staged,
	}
	total := r.active.Duration()
	switch r.phase {
	case PhaseRunning:
		s.Elapsed = r.elapsed
		s.Remaining = max(total-r.elapsed, 0)
		if total > 0 {
			s.Progress = min(float64(r.elapsed)/float64(total), 1)
		}
	case PhaseCooldown:
		s.Elapsed = r.opts.Cooldown - r.cooldown
		s.Remaining = r.cooldown
		s.Progress = 1
	}
	return s
}

// Handle applies one notification.
func (r *Runner) Handle(ctx context.Context, msg ipc.Message) error {
	var w write

	r.mu.Lock()
	switch m := msg.(type) {
	case ipc.SetSchedule:
		r.schedule = m.Text
	case ipc.SetActiveTask:
		r.staged = model.ActiveTask{}
		if !m.Task.IsZero() {
			r.staged = model.ActiveTask{Name: m.Name, Seconds: m.Duration * 60, FromSchedule: true}
		}
	case ipc.SaveSchedule:
		w.state = r.stateLocked()
		if !r.staged.IsZero() {
			r.startLocked(r.staged)
		}
	case ipc.StartTask:
		r.startLocked(model.ActiveTask{Name: m.Name, Seconds: m.Duration})
	default:
		r.mu.Unlock()
		return errors.New("timer: unsupported message")
	}
	r.mu.Unlock()

	r.publish()
	return r.persist(ctx, w)
}

func (r *Runner) startLocked(t model.ActiveTask) {
	r.active = t
	r.phase = PhaseRunning
	r.elapsed = 0
	r.cooldown = 0
	r.log.Info().Str("task", t.Name).Float64("seconds", t.Seconds).Bool("scheduled", t.FromSchedule).Msg("task started")
}

// Advance moves the clock forward by d.
func (r *Runner) Advance(ctx context.Context, d time.Duration) {
	var w write

	r.mu.Lock()
	changed := r.phase != PhaseIdle
	dirty := false
	switch r.phase {
	case PhaseRunning:
		r.elapsed += d
		if r.elapsed >= r.active.Duration() {
			c, marked := r.completeLocked()
			w.completion = &c
			dirty = marked
			if r.cooldown <= 0 {
				dirty = r.endCooldownLocked() || dirty
			}
		}
	case PhaseCooldown:
		r.cooldown -= d
		if r.cooldown <= 0 {
			dirty = r.endCooldownLocked()
		}
	}
	if dirty {
		w.state = r.stateLocked()
	}
	r.mu.Unlock()

	if changed {
		r.publish()
	}
	if err := r.persist(ctx, w); err != nil {
		r.log.Error().Err(err).Msg("persist timer state")
	}
}

// completeLocked enters the cooldown and marks a scheduled task's line done.
func (r *Runner) completeLocked() (model.Completion, bool) {
	done := r.active
	c := model.Completion{Name: done.Name, Seconds: done.Seconds, CompletedAt: r.opts.Now()}
	r.log.Info().Str("task", done.Name).Msg("task completed")

	marked := false
	if done.FromSchedule && schedule.NextTask(r.schedule).Name == done.Name {
		if text, ok := schedule.MarkDone(r.schedule); ok {
			r.schedule = text
			marked = true
		}
	}
	r.phase = PhaseCooldown
	r.cooldown = r.opts.Cooldown
	return c, marked
}

// endCooldownLocked goes idle or starts the next line. It reports whether the
// durable state changed.
func (r *Runner) endCooldownLocked() bool {
	last := r.active
	r.phase = PhaseIdle
	r.elapsed = 0
	r.cooldown = 0

	if !r.opts.AutoAdvance || !last.FromSchedule {
		return false
	}
	next := schedule.NextTask(r.schedule)
	if next.IsZero() {
		r.staged = model.ActiveTask{}
		r.active = model.ActiveTask{}
		return true
	}
	r.staged = model.ActiveTask{Name: next.Name, Seconds: next.Duration * 60, FromSchedule: true}
	r.startLocked(r.staged)
	return true
}

// write is what one state change has to persist. state is nil when the
// durable state did not change.
type write struct {
	completion *model.Completion
	state      *stateWrite
}

type stateWrite struct {
	seq    uint64
	text   string
	staged model.ActiveTask
}

func (r *Runner) stateLocked() *stateWrite {
	r.seq++
	return &stateWrite{seq: r.seq, text: r.schedule, staged: r.staged}
}

// persist applies w under persistMu. Writes are taken in state order: a state
// older than the last one written is dropped, so a slow writer can never put
// back a schedule that a later change replaced.
func (r *Runner) persist(ctx context.Context, w write) error {
	if w.completion == nil && w.state == nil {
		return nil
	}
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	var errs []error
	if w.completion != nil {
		if err := r.store.RecordCompletion(ctx, *w.completion); err != nil {
			errs = append(errs, err)
		}
	}
	if w.state != nil && w.state.seq > r.persisted {
		if err := r.store.SaveState(ctx, w.state.text, w.state.staged); err != nil {
			errs = append(errs, err)
		} else {
			r.persisted = w.state.seq
		}
	}
	return errors.Join(errs...)
}

// Subscribe returns a channel that always holds the most recent snapshot.
func (r *Runner) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 1)
	r.mu.Lock()
	r.subs = append(r.subs, ch)
	ch <- r.snapshotLocked()
	r.mu.Unlock()
	return ch
}

func (r *Runner) publish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := r.snapshotLocked()
	for _, ch := range r.subs {
		// Replace a stale snapshot the reader has not picked up yet.
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

func (r *Runner) closeSubs() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ch := range r.subs {
		close(ch)
	}
	r.subs = nil
}

// Run consumes envelopes from in and ticks the clock until ctx is done.
// Envelopes already queued when ctx ends are still applied. Writes use a
// context that outlives ctx so shutdown does not drop the last save.
func (r *Runner) Run(ctx context.Context, in <-chan ipc.Envelope) error {
	defer r.closeSubs()

	wctx := context.WithoutCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				r.drain(wctx, in)
				return nil
			case env, ok := <-in:
				if !ok {
					return nil
				}
				r.apply(wctx, env)
			}
		}
	})
	g.Go(func() error {
		t := time.NewTicker(r.opts.TickInterval)
		defer t.Stop()
		last := r.opts.Now()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-t.C:
				now := r.opts.Now()
				r.Advance(wctx, now.Sub(last))
				last = now
			}
		}
	})
	return g.Wait()
}

func (r *Runner) apply(ctx context.Context, env ipc.Envelope) {
	msg, err := env.Decode()
	if err != nil {
		r.log.Warn().Err(err).Str("id", env.ID).Msg("dropping message")
		return
	}
	if err := r.Handle(ctx, msg); err != nil {
		r.log.Error().Err(err).Str("type", string(env.Type)).Msg("handle message")
	}
}

// drain applies whatever is queued on in without waiting for more.
func (r *Runner) drain(ctx context.Context, in <-chan ipc.Envelope) {
	for {
		select {
		case env, ok := <-in:
			if !ok {
				return
			}
			r.apply(ctx, env)
		default:
			return
		}
	}
}
