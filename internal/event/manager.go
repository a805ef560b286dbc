// Package event manages event sessions: one participant list per session,
// with a draw engine and a group generator derived from it.
//
// The participant list, draw history and group partition are mirrored into
// storage on every change. The engines themselves live in memory and are
// rebuilt from storage on first use after a restart of the manager.
package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/clock"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/draw"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/grouping"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/metrics"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/models"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/random"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/storage"
)

var (
	ErrConfirmationRequired = errors.New("this action must be confirmed")
	ErrManagerClosed        = errors.New("event manager is closed")
)

// Participant sources, used as metric labels.
const (
	SourceText   = "text"
	SourceCSV    = "csv"
	SourceSample = "sample"
)

// Config tunes the engines created for each session.
type Config struct {
	DrawTicks        int
	DrawInterval     time.Duration
	GroupDelay       time.Duration
	DefaultGroupSize int

	Scheduler clock.Scheduler
	Source    random.Source
}

// Manager is safe for concurrent use.
type Manager struct {
	store   storage.Store
	metrics *metrics.Metrics
	cfg     Config

	mu       sync.Mutex
	runtimes map[string]*runtime
	closed   bool

	// participantsMu serializes read-modify-write cycles on participant lists.
	participantsMu sync.Mutex
}

// runtime is the in-memory machinery of one session.
type runtime struct {
	draw   *draw.Engine
	groups *grouping.Generator

	// mu orders draw starts against settings changes, so the store is
	// written before the engine and never behind it.
	mu sync.Mutex

	// closed is closed once the runtime is torn down.
	closed    chan struct{}
	closeOnce sync.Once
}

func (r *runtime) close() {
	r.closeOnce.Do(func() {
		r.draw.Close()
		r.groups.Close()
		close(r.closed)
	})
}

// NewManager creates a Manager over store. m may be nil.
func NewManager(store storage.Store, m *metrics.Metrics, cfg Config) *Manager {
	if cfg.DefaultGroupSize < 1 {
		cfg.DefaultGroupSize = grouping.DefaultGroupSize
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = clock.Real()
	}
	if cfg.Source == nil {
		cfg.Source = random.Default()
	}
	if m == nil {
		m = metrics.New()
	}
	return &Manager{
		store:    store,
		metrics:  m,
		cfg:      cfg,
		runtimes: make(map[string]*runtime),
	}
}

// CreateSession starts a new, empty event session.
func (m *Manager) CreateSession(ctx context.Context, name string) (*models.Session, error) {
	session := &models.Session{
		Name:      name,
		GroupSize: m.cfg.DefaultGroupSize,
	}
	if err := m.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	if _, err := m.runtime(ctx, session.ID); err != nil {
		return nil, err
	}

	slog.Info("Session created", "session_id", session.ID, "name", session.Name)
	return session, nil
}

// Session returns the stored state of a session.
func (m *Manager) Session(ctx context.Context, sessionID string) (*models.Session, error) {
	return m.store.GetSession(ctx, sessionID)
}

// CloseSession tears down the session's engines, cancelling any pending
// animation or generation, and deletes it.
func (m *Manager) CloseSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	rt, ok := m.runtimes[sessionID]
	delete(m.runtimes, sessionID)
	m.mu.Unlock()

	if ok {
		rt.close()
		m.metrics.SessionsActive.Dec()
	}
	if err := m.store.DeleteSession(ctx, sessionID); err != nil {
		return err
	}

	slog.Info("Session closed", "session_id", sessionID)
	return nil
}

// Close tears down every session runtime. Stored state is left alone.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, rt := range m.runtimes {
		rt.close()
		delete(m.runtimes, id)
		m.metrics.SessionsActive.Dec()
	}
	m.closed = true
}

// runtime returns the engines for a session, building them from storage if
// needed.
func (m *Manager) runtime(ctx context.Context, sessionID string) (*runtime, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrManagerClosed
	}
	if rt, ok := m.runtimes[sessionID]; ok {
		m.mu.Unlock()
		return rt, nil
	}
	m.mu.Unlock()

	session, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrManagerClosed
	}
	// Another request may have built it while the store was read.
	if rt, ok := m.runtimes[sessionID]; ok {
		return rt, nil
	}

	rt := &runtime{
		draw: draw.New(draw.Config{
			Ticks:       m.cfg.DrawTicks,
			Interval:    m.cfg.DrawInterval,
			Scheduler:   m.cfg.Scheduler,
			Source:      m.cfg.Source,
			Winners:     session.Winners,
			AllowRepeat: session.AllowRepeat,
			OnCommit:    func(winner string) error {
				return m.commitWinner(sessionID, winner)
			},
		}),
		groups: grouping.NewGenerator(grouping.GeneratorConfig{
			Delay:     m.cfg.GroupDelay,
			Scheduler: m.cfg.Scheduler,
			Source:    m.cfg.Source,
			Groups:    session.Groups,
		}),
		closed: make(chan struct{}),
	}
	m.runtimes[sessionID] = rt
	m.metrics.SessionsActive.Inc()
	return rt, nil
}

// commitWinner runs on the draw timer once a winner is final, while the
// engine still reports Drawing. A failed write drops the winner.
func (m *Manager) commitWinner(sessionID, winner string) error {
	if err := m.store.AddWinner(context.Background(), sessionID, winner); err != nil {
		slog.Error("Failed to store winner", "session_id", sessionID, "winner", winner, "error", err)
		return err
	}
	m.metrics.DrawsCommitted.Inc()
	slog.Info("Winner committed", "session_id", sessionID, "winner", winner)
	return nil
}
