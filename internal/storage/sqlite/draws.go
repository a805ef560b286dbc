package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// AddWinner appends a winner to the session's history.
func (s *SQLiteStore) AddWinner(ctx context.Context, sessionID string, name string) error {
	return s.inTx(ctx, sessionID, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO winners (session_id, seq, name)
			 SELECT ?, COALESCE(MAX(seq), 0) + 1, ? FROM winners WHERE session_id = ?`,
			sessionID, name, sessionID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert winner: %w", err)
		}
		return nil
	})
}

// ClearWinners removes the session's draw history.
func (s *SQLiteStore) ClearWinners(ctx context.Context, sessionID string) error {
	return s.inTx(ctx, sessionID, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM winners WHERE session_id = ?", sessionID); err != nil {
			return fmt.Errorf("failed to clear winners: %w", err)
		}
		return nil
	})
}

// SetAllowRepeat stores whether past winners stay eligible.
func (s *SQLiteStore) SetAllowRepeat(ctx context.Context, sessionID string, allow bool) error {
	return s.inTx(ctx, sessionID, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE sessions SET allow_repeat = ? WHERE id = ?", allow, sessionID); err != nil {
			return fmt.Errorf("failed to update allow_repeat: %w", err)
		}
		return nil
	})
}
