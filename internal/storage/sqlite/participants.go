package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// SetParticipants replaces the participant list of a session.
func (s *SQLiteStore) SetParticipants(ctx context.Context, sessionID string, names []string) error {
	return s.inTx(ctx, sessionID, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE session_id = ?", sessionID); err != nil {
			return fmt.Errorf("failed to clear participants: %w", err)
		}
		return insertParticipants(ctx, tx, sessionID, names)
	})
}

func insertParticipants(ctx context.Context, tx *sql.Tx, sessionID string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO participants (session_id, position, name) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare participant insert: %w", err)
	}
	defer stmt.Close()

	for i, name := range names {
		if _, err := stmt.ExecContext(ctx, sessionID, i, name); err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}
