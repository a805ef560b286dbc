// Package storage provides abstractions for session state storage.
package storage

import (
	"context"
	"errors"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/models"
)

// ErrNotFound is returned when a session ID does not exist.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for session storage operations.
// This abstraction keeps the session layer independent of the backend.
type Store interface {
	// CreateSession persists a new session.
	// The session.ID, CreatedAt and UpdatedAt fields are populated by the store.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session with its participants, winners and groups.
	// Returns ErrNotFound if the session does not exist.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// DeleteSession removes a session and everything it owns.
	DeleteSession(ctx context.Context, sessionID string) error

	// SetParticipants replaces the participant list, keeping the given order.
	SetParticipants(ctx context.Context, sessionID string, names []string) error

	// AddWinner records a new winner at the head of the history.
	AddWinner(ctx context.Context, sessionID string, name string) error

	// ClearWinners empties the draw history.
	ClearWinners(ctx context.Context, sessionID string) error

	// SetAllowRepeat stores the repeat-winner setting.
	SetAllowRepeat(ctx context.Context, sessionID string, allow bool) error

	// SetGroups replaces the group partition and the group size it was made with.
	SetGroups(ctx context.Context, sessionID string, size int, groups [][]string) error

	// Close releases any resources held by the store.
	Close() error
}
