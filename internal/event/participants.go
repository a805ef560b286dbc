package event

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/roster"
)

// Roster is the participant list together with its duplicate report.
type Roster struct {
	Names []string
	// Duplicates lists names entered more than once, in first-seen order.
	Duplicates []string
	// Redundant is how many entries RemoveDuplicates would drop.
	Redundant int
}

// Roster returns the session's participant list.
func (m *Manager) Roster(ctx context.Context, sessionID string) (*Roster, error) {
	session, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return newRoster(session.Participants), nil
}

func newRoster(names []string) *Roster {
	return &Roster{
		Names:      names,
		Duplicates: roster.DuplicateNames(names),
		Redundant:  roster.RedundantCount(names),
	}
}

// AddText appends one participant per non-blank line of text.
func (m *Manager) AddText(ctx context.Context, sessionID, text string) (*Roster, int, error) {
	return m.appendNames(ctx, sessionID, SourceText, roster.ParseText(text))
}

// AddCSV appends every non-blank cell of an uploaded CSV. A malformed file
// adds nothing.
func (m *Manager) AddCSV(ctx context.Context, sessionID string, r io.Reader) (*Roster, int, error) {
	names, err := roster.ParseCSV(r)
	if err != nil {
		slog.Warn("CSV upload rejected", "session_id", sessionID, "error", err)
		return nil, 0, err
	}
	return m.appendNames(ctx, sessionID, SourceCSV, names)
}

// AddSample appends the demo roster.
func (m *Manager) AddSample(ctx context.Context, sessionID string) (*Roster, int, error) {
	return m.appendNames(ctx, sessionID, SourceSample, roster.SampleNames())
}

func (m *Manager) appendNames(ctx context.Context, sessionID, source string, names []string) (*Roster, int, error) {
	r, err := m.updateParticipants(ctx, sessionID, func(current []string) ([]string, error) {
		if len(names) == 0 {
			return current, nil
		}
		return append(current, names...), nil
	})
	if err != nil {
		return nil, 0, err
	}
	if len(names) > 0 {
		m.metrics.ParticipantsAdded.WithLabelValues(source).Add(float64(len(names)))
		slog.Info("Participants added", "session_id", sessionID, "source", source, "count", len(names), "total", len(r.Names))
	}
	return r, len(names), nil
}

// RemoveParticipant drops the entry at index.
func (m *Manager) RemoveParticipant(ctx context.Context, sessionID string, index int) (*Roster, error) {
	return m.updateParticipants(ctx, sessionID, func(current []string) ([]string, error) {
		return roster.Remove(current, index)
	})
}

// ClearParticipants empties the list. confirmed must be true.
func (m *Manager) ClearParticipants(ctx context.Context, sessionID string, confirmed bool) (*Roster, error) {
	if !confirmed {
		return nil, fmt.Errorf("clear participants: %w", ErrConfirmationRequired)
	}
	r, err := m.updateParticipants(ctx, sessionID, func([]string) ([]string, error) {
		return nil, nil
	})
	if err == nil {
		slog.Info("Participants cleared", "session_id", sessionID)
	}
	return r, err
}

// RemoveDuplicates collapses the list to first occurrences.
func (m *Manager) RemoveDuplicates(ctx context.Context, sessionID string) (*Roster, int, error) {
	removed := 0
	r, err := m.updateParticipants(ctx, sessionID, func(current []string) ([]string, error) {
		deduped := roster.Dedup(current)
		removed = len(current) - len(deduped)
		return deduped, nil
	})
	if err != nil {
		return nil, 0, err
	}
	return r, removed, nil
}

// updateParticipants applies fn to the stored list and saves the result.
// Nothing is written if fn fails.
func (m *Manager) updateParticipants(ctx context.Context, sessionID string, fn func([]string) ([]string, error)) (*Roster, error) {
	m.participantsMu.Lock()
	defer m.participantsMu.Unlock()

	session, err := m.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	updated, err := fn(session.Participants)
	if err != nil {
		return nil, err
	}
	if err := m.store.SetParticipants(ctx, sessionID, updated); err != nil {
		return nil, fmt.Errorf("failed to save participants: %w", err)
	}
	return newRoster(updated), nil
}
