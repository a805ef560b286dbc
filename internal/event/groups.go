package event

import (
	"context"
	"log/slog"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/grouping"
)

// GenerateGroups shuffles the current participants into groups of size and
// waits for the result. If ctx ends first the generation still completes
// and is stored; only the wait is abandoned. Closing the session ends the
// wait with grouping.ErrGeneratorClosed.
func (m *Manager) GenerateGroups(ctx context.Context, sessionID string, size int) ([][]string, error) {
	rt, err := m.runtime(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	done := make(chan [][]string, 1)
	err = rt.groups.Start(session.Participants, size, func(groups [][]string) {
		if err := m.store.SetGroups(context.Background(), sessionID, size, groups); err != nil {
			slog.Error("Failed to store groups", "session_id", sessionID, "error", err)
		}
		m.metrics.GroupingsTotal.Inc()
		m.metrics.GroupSize.Observe(float64(size))
		done <- groups
	})
	if err != nil {
		slog.Warn("Group generation rejected", "session_id", sessionID, "group_size", size, "error", err)
		return nil, err
	}

	select {
	case groups := <-done:
		slog.Info("Groups generated", "session_id", sessionID, "group_size", size, "groups", len(groups))
		return groups, nil
	case <-rt.closed:
		return nil, grouping.ErrGeneratorClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// GroupsState is the current partition of a session.
type GroupsState struct {
	Groups [][]string
	// Size is the group size the partition was made with.
	Size       int
	Generating bool
}

// Groups returns the current partition.
func (m *Manager) Groups(ctx context.Context, sessionID string) (*GroupsState, error) {
	rt, err := m.runtime(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &GroupsState{
		Groups:     rt.groups.Groups(),
		Size:       session.GroupSize,
		Generating: rt.groups.Busy(),
	}, nil
}

// ExportGroups renders the current partition as CSV.
func (m *Manager) ExportGroups(ctx context.Context, sessionID string) ([]byte, error) {
	rt, err := m.runtime(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	data, err := grouping.ExportCSV(rt.groups.Groups())
	if err != nil {
		return nil, err
	}
	m.metrics.ExportsTotal.Inc()
	return data, nil
}
