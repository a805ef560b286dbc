package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/draw"
)

// DrawState is what the draw screen shows.
type DrawState struct {
	Drawing     bool
	Current     string
	Tick        int
	Ticks       int
	Winners     []string
	AllowRepeat bool
	// Eligible is the size of the pool the next draw would use.
	Eligible int
}

// StartDraw begins an animated draw over the current participant list.
// Poll DrawState to follow the animation.
func (m *Manager) StartDraw(ctx context.Context, sessionID string) error {
	rt, err := m.runtime(ctx, sessionID)
	if err != nil {
		return err
	}
	session, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	rt.mu.Lock()
	err = rt.draw.Start(session.Participants)
	rt.mu.Unlock()
	if err != nil {
		m.metrics.DrawsRejected.WithLabelValues(rejectReason(err)).Inc()
		slog.Warn("Draw rejected", "session_id", sessionID, "error", err)
		return err
	}

	m.metrics.DrawsStarted.Inc()
	slog.Info("Draw started", "session_id", sessionID, "participants", len(session.Participants))
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, draw.ErrEmptyPool):
		return "empty_pool"
	case errors.Is(err, draw.ErrDrawInProgress):
		return "in_progress"
	default:
		return "other"
	}
}

// DrawState reports the animation and history of a session.
func (m *Manager) DrawState(ctx context.Context, sessionID string) (*DrawState, error) {
	rt, err := m.runtime(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snap := rt.draw.Snapshot()
	return &DrawState{
		Drawing:     snap.State == draw.Drawing,
		Current:     snap.Current,
		Tick:        snap.Tick,
		Ticks:       snap.Ticks,
		Winners:     snap.Winners,
		AllowRepeat: snap.AllowRepeat,
		Eligible:    len(draw.EligiblePool(session.Participants, snap.Winners, snap.AllowRepeat)),
	}, nil
}

// SetAllowRepeat changes whether past winners may win again. It is refused
// while a draw is running.
func (m *Manager) SetAllowRepeat(ctx context.Context, sessionID string, allow bool) error {
	rt, err := m.runtime(ctx, sessionID)
	if err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.draw.Drawing() {
		return draw.ErrDrawInProgress
	}
	if err := m.store.SetAllowRepeat(ctx, sessionID, allow); err != nil {
		return fmt.Errorf("failed to save allow_repeat: %w", err)
	}
	if err := rt.draw.SetAllowRepeat(allow); err != nil {
		return err
	}
	slog.Info("Repeat winners setting changed", "session_id", sessionID, "allow_repeat", allow)
	return nil
}

// ResetDraw clears the winner history. confirmed must be true.
func (m *Manager) ResetDraw(ctx context.Context, sessionID string, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("reset draw: %w", ErrConfirmationRequired)
	}
	rt, err := m.runtime(ctx, sessionID)
	if err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.draw.Drawing() {
		return draw.ErrDrawInProgress
	}
	if err := m.store.ClearWinners(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear winners: %w", err)
	}
	if err := rt.draw.Reset(); err != nil {
		return err
	}
	slog.Info("Draw history reset", "session_id", sessionID)
	return nil
}
