// Package draw runs the prize draw: a short reveal animation of random names
// followed by an independent, uniform pick of the winner.
package draw

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/clock"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/random"
)

const (
	// DefaultTicks is the number of animated names shown before the commit.
	DefaultTicks = 30
	// DefaultInterval is the delay between animation ticks.
	DefaultInterval = 50 * time.Millisecond
	// Placeholder is displayed before the first draw and after a reset.
	Placeholder = "準備抽籤"
)

var (
	ErrEmptyPool      = errors.New("no eligible participants left to draw")
	ErrDrawInProgress = errors.New("a draw is already in progress")
	ErrEngineClosed   = errors.New("draw engine is closed")
)

// State is the phase of the draw state machine.
type State int

const (
	Idle State = iota
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return "unknown"
	}
}

// Config configures an Engine. Zero values fall back to the defaults.
type Config struct {
	Ticks     int
	Interval  time.Duration
	Scheduler clock.Scheduler
	Source    random.Source

	// Winners seeds the history, most recent first.
	Winners     []string
	AllowRepeat bool

	// OnTick is called after every animation tick with the name on display.
	OnTick func(name string, tick int)
	// OnCommit is called once per draw with the winner before it enters the
	// history. The engine stays in Drawing until it returns; an error
	// discards the winner.
	OnCommit func(winner string) error
}

// Snapshot is a copy of the engine's observable state.
type Snapshot struct {
	State       State
	Current     string
	Tick        int
	Ticks       int
	Winners     []string
	AllowRepeat bool
}

// Engine owns the winner history and drives one animated draw at a time.
// Callbacks run without the engine lock held, so they may call back into it.
type Engine struct {
	ticks    int
	interval time.Duration
	sched    clock.Scheduler
	src      random.Source
	onTick   func(string, int)
	onCommit func(string) error

	mu          sync.Mutex
	state       State
	current     string
	// shown is what current held before the draw started.
	shown       string
	tick        int
	pool        []string
	winners     []string
	allowRepeat bool
	timer       clock.Timer
	closed      bool
}

// New creates an idle Engine.
func New(cfg Config) *Engine {
	e := &Engine{
		ticks:       cfg.Ticks,
		interval:    cfg.Interval,
		sched:       cfg.Scheduler,
		src:         cfg.Source,
		onTick:      cfg.OnTick,
		onCommit:    cfg.OnCommit,
		current:     Placeholder,
		winners:     append([]string(nil), cfg.Winners...),
		allowRepeat: cfg.AllowRepeat,
	}
	if e.ticks <= 0 {
		e.ticks = DefaultTicks
	}
	if e.interval <= 0 {
		e.interval = DefaultInterval
	}
	if e.sched == nil {
		e.sched = clock.Real()
	}
	if e.src == nil {
		e.src = random.Default()
	}
	return e
}

// EligiblePool derives who can still win. With repeats disallowed, every
// entry whose name has already won is excluded, including duplicate copies.
func EligiblePool(participants, winners []string, allowRepeat bool) []string {
	if allowRepeat {
		return append([]string(nil), participants...)
	}
	won := make(map[string]bool, len(winners))
	for _, w := range winners {
		won[w] = true
	}
	pool := make([]string, 0, len(participants))
	for _, p := range participants {
		if !won[p] {
			pool = append(pool, p)
		}
	}
	return pool
}

// Pool returns the eligible pool for participants under the engine's
// current history and repeat setting.
func (e *Engine) Pool(participants []string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return EligiblePool(participants, e.winners, e.allowRepeat)
}

// Start begins an animated draw over a snapshot of participants. It returns
// immediately; the winner is committed once the last tick fires.
func (e *Engine) Start(participants []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}
	if e.state == Drawing {
		return ErrDrawInProgress
	}
	pool := EligiblePool(participants, e.winners, e.allowRepeat)
	if len(pool) == 0 {
		return ErrEmptyPool
	}

	e.state = Drawing
	e.pool = pool
	e.shown = e.current
	e.tick = 0
	e.timer = e.sched.AfterFunc(e.interval, e.advance)

	slog.Debug("Draw started", "pool_size", len(pool), "ticks", e.ticks)
	return nil
}

// advance is the timer callback for one animation tick. The next tick is only
// scheduled after this one has updated the display.
func (e *Engine) advance() {
	e.mu.Lock()
	if e.closed || e.state != Drawing {
		e.mu.Unlock()
		return
	}

	e.tick++
	e.current = random.Pick(e.src, e.pool)
	name, tick := e.current, e.tick

	if tick < e.ticks {
		e.timer = e.sched.AfterFunc(e.interval, e.advance)
		e.mu.Unlock()
		if e.onTick != nil {
			e.onTick(name, tick)
		}
		return
	}

	// The winner is drawn independently of the last animated name.
	winner := random.Pick(e.src, e.pool)
	e.timer = nil
	e.mu.Unlock()

	if e.onTick != nil {
		e.onTick(name, tick)
	}
	if e.onCommit != nil {
		if err := e.onCommit(winner); err != nil {
			slog.Warn("Draw commit failed", "winner", winner, "error", err)
			e.finish(winner, false)
			return
		}
	}
	e.finish(winner, true)
}

// finish leaves Drawing, recording winner when the commit succeeded and
// restoring the previous display otherwise.
func (e *Engine) finish(winner string, committed bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed || e.state != Drawing {
		return
	}
	e.state = Idle
	e.pool = nil
	if committed {
		e.current = winner
		e.winners = append([]string{winner}, e.winners...)
		slog.Debug("Draw committed", "winner", winner)
		return
	}
	e.current = e.shown
}

// SetAllowRepeat toggles whether past winners stay eligible. The setting
// cannot change while a draw is running.
func (e *Engine) SetAllowRepeat(allow bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Drawing {
		return ErrDrawInProgress
	}
	e.allowRepeat = allow
	return nil
}

// Reset clears the winner history and restores the placeholder. Callers are
// responsible for confirming the action with the user first.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Drawing {
		return ErrDrawInProgress
	}
	e.winners = nil
	e.current = Placeholder
	return nil
}

// Drawing reports whether an animation is in flight.
func (e *Engine) Drawing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == Drawing
}

// Winners returns the history, most recent first.
func (e *Engine) Winners() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.winners...)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		State:       e.state,
		Current:     e.current,
		Tick:        e.tick,
		Ticks:       e.ticks,
		Winners:     append([]string(nil), e.winners...),
		AllowRepeat: e.allowRepeat,
	}
}

// Close cancels any pending tick. An interrupted draw commits nothing.
// Close is safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.closed = true
	e.state = Idle
	e.pool = nil
}
