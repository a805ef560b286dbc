package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// SetGroups replaces the session's group partition.
func (s *SQLiteStore) SetGroups(ctx context.Context, sessionID string, size int, groups [][]string) error {
	return s.inTx(ctx, sessionID, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE sessions SET group_size = ? WHERE id = ?", size, sessionID); err != nil {
			return fmt.Errorf("failed to update group size: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE session_id = ?", sessionID); err != nil {
			return fmt.Errorf("failed to clear groups: %w", err)
		}

		for gi, group := range groups {
			for pos, name := range group {
				_, err := tx.ExecContext(ctx,
					"INSERT INTO group_members (session_id, group_index, position, name) VALUES (?, ?, ?, ?)",
					sessionID, gi, pos, name,
				)
				if err != nil {
					return fmt.Errorf("failed to insert group member: %w", err)
				}
			}
		}
		return nil
	})
}

// listGroups rebuilds the partition from its rows.
func (s *SQLiteStore) listGroups(ctx context.Context, sessionID string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT group_index, name FROM group_members WHERE session_id = ? ORDER BY group_index, position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get groups: %w", err)
	}
	defer rows.Close()

	var groups [][]string
	for rows.Next() {
		var index int
		var name string
		if err := rows.Scan(&index, &name); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		for len(groups) <= index {
			groups = append(groups, nil)
		}
		groups[index] = append(groups[index], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	return groups, nil
}
