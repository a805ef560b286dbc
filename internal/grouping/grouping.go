// Package grouping shuffles participants and partitions them into groups of
// a fixed size, and renders a partition as a spreadsheet-friendly CSV.
package grouping

import (
	"errors"
	"fmt"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/random"
)

// DefaultGroupSize is the size offered before the organizer picks one.
const DefaultGroupSize = 4

var (
	ErrEmptyParticipants = errors.New("participant list is empty")
	ErrInvalidGroupSize  = errors.New("group size must be at least 1")
)

// Shuffle returns a uniformly random permutation of names using a
// Fisher-Yates pass from the last element down. names is not modified.
func Shuffle(names []string, src random.Source) []string {
	out := append([]string(nil), names...)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Partition cuts names into consecutive chunks of size. The last chunk holds
// the remainder. The chunks share no backing array with names.
func Partition(names []string, size int) [][]string {
	groups := make([][]string, 0, (len(names)+size-1)/size)
	for start := 0; start < len(names); start += size {
		end := min(start+size, len(names))
		groups = append(groups, append([]string(nil), names[start:end]...))
	}
	return groups
}

// Generate shuffles participants and partitions them into groups of size.
func Generate(participants []string, size int, src random.Source) ([][]string, error) {
	if err := Validate(participants, size); err != nil {
		return nil, err
	}
	return Partition(Shuffle(participants, src), size), nil
}

// Validate reports why a generation request cannot run, if it cannot.
func Validate(participants []string, size int) error {
	if len(participants) == 0 {
		return ErrEmptyParticipants
	}
	if size < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidGroupSize, size)
	}
	return nil
}

// Label is the human-readable name of the group at index i.
func Label(i int) string {
	return fmt.Sprintf("第 %d 組", i+1)
}
