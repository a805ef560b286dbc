package grouping

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/clock"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/random"
)

// DefaultDelay is the pause before a generation result is published. It is
// only there so the organizer sees something happen.
const DefaultDelay = 500 * time.Millisecond

var (
	ErrGenerationInProgress = errors.New("group generation already in progress")
	ErrGeneratorClosed      = errors.New("group generator is closed")
)

// GeneratorConfig configures a Generator. Zero values fall back to defaults.
type GeneratorConfig struct {
	Delay     time.Duration
	Scheduler clock.Scheduler
	Source    random.Source

	// Groups seeds the current partition.
	Groups [][]string
}

// Generator produces a new partition after a short delay and keeps the
// latest one. Only one generation may be pending at a time.
type Generator struct {
	delay time.Duration
	sched clock.Scheduler
	src   random.Source

	mu     sync.Mutex
	busy   bool
	timer  clock.Timer
	groups [][]string
	closed bool
}

// NewGenerator creates an idle Generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	g := &Generator{
		delay:  cfg.Delay,
		sched:  cfg.Scheduler,
		src:    cfg.Source,
		groups: clone(cfg.Groups),
	}
	if g.delay <= 0 {
		g.delay = DefaultDelay
	}
	if g.sched == nil {
		g.sched = clock.Real()
	}
	if g.src == nil {
		g.src = random.Default()
	}
	return g
}

// Start validates the request, then generates from a snapshot of
// participants once the delay elapses. The new partition replaces the old
// one and is handed to done (which may be nil) outside the generator lock.
func (g *Generator) Start(participants []string, size int, done func([][]string)) error {
	if err := Validate(participants, size); err != nil {
		return err
	}
	snapshot := append([]string(nil), participants...)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return ErrGeneratorClosed
	}
	if g.busy {
		return ErrGenerationInProgress
	}
	g.busy = true
	g.timer = g.sched.AfterFunc(g.delay, func() {
		g.finish(snapshot, size, done)
	})
	return nil
}

func (g *Generator) finish(participants []string, size int, done func([][]string)) {
	g.mu.Lock()
	if g.closed || !g.busy {
		g.mu.Unlock()
		return
	}
	groups := Partition(Shuffle(participants, g.src), size)
	g.groups = groups
	g.busy = false
	g.timer = nil
	result := clone(groups)
	g.mu.Unlock()

	slog.Debug("Groups generated", "participants", len(participants), "group_size", size, "groups", len(groups))
	if done != nil {
		done(result)
	}
}

// Busy reports whether a generation is pending.
func (g *Generator) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}

// Groups returns a copy of the latest partition.
func (g *Generator) Groups() [][]string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return clone(g.groups)
}

// Close cancels a pending generation. Safe to call more than once.
func (g *Generator) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.busy = false
	g.closed = true
}

func clone(groups [][]string) [][]string {
	if groups == nil {
		return nil
	}
	out := make([][]string, len(groups))
	for i, group := range groups {
		out[i] = append([]string(nil), group...)
	}
	return out
}
