package models

// Session is one event's participant list, draw history and groups.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// Name is a display label chosen by the organizer (e.g., "Year-end party").
	Name string

	// Participants is the ordered participant list. Duplicates are allowed.
	Participants []string

	// Winners is the draw history, most recent first.
	Winners []string

	// AllowRepeat keeps past winners in the eligible pool.
	AllowRepeat bool

	// GroupSize is the last requested group size.
	GroupSize int

	// Groups is the current partition; empty until the first generation.
	Groups [][]string

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last change.
	UpdatedAt int64
}
