// Package roster holds the participant list operations: parsing names from
// pasted text or an uploaded CSV, positional removal, and duplicate handling.
//
// Every function is pure. Callers own the list and replace it with the
// returned slice.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	ErrMalformedCSV    = errors.New("malformed CSV file")
	ErrIndexOutOfRange = errors.New("participant index out of range")
)

const bom = "\uFEFF"

// ParseText splits pasted text into names, one per line. Lines are trimmed
// and blank lines dropped.
func ParseText(text string) []string {
	var names []string
	for _, line := range strings.Split(text, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParseCSV flattens every cell of every row into a single list of names.
// Rows may have different lengths and unquoted cells may contain quotes, as
// in Bob "Bobby" Smith. A name spanning lines is rejected. On any parse
// error nothing is returned.
func ParseCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}

	var names []string
	for i, record := range records {
		for j, cell := range record {
			if i == 0 && j == 0 {
				cell = strings.TrimPrefix(cell, bom)
			}
			if !utf8.ValidString(cell) {
				return nil, fmt.Errorf("%w: row %d is not valid UTF-8", ErrMalformedCSV, i+1)
			}
			name := strings.TrimSpace(cell)
			if strings.ContainsAny(name, "\r\n") {
				return nil, fmt.Errorf("%w: row %d has a line break inside a cell", ErrMalformedCSV, i+1)
			}
			if name != "" {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// Remove returns a copy of names without the entry at index.
func Remove(names []string, index int) ([]string, error) {
	if index < 0 || index >= len(names) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(names))
	}
	out := make([]string, 0, len(names)-1)
	out = append(out, names[:index]...)
	return append(out, names[index+1:]...), nil
}

// Dedup collapses names to their first occurrences, keeping order.
func Dedup(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Duplicates returns the set of names that occur at least twice.
func Duplicates(names []string) map[string]bool {
	counts := make(map[string]int, len(names))
	for _, name := range names {
		counts[name]++
	}
	dups := make(map[string]bool)
	for name, n := range counts {
		if n > 1 {
			dups[name] = true
		}
	}
	return dups
}

// DuplicateNames lists the duplicated names in order of first appearance.
func DuplicateNames(names []string) []string {
	dups := Duplicates(names)
	var out []string
	for _, name := range Dedup(names) {
		if dups[name] {
			out = append(out, name)
		}
	}
	return out
}

// RedundantCount is how many entries Dedup would remove.
func RedundantCount(names []string) int {
	return len(names) - len(Dedup(names))
}

// SampleNames returns the demo roster. It contains duplicates on purpose so
// the duplicate tools have something to show.
func SampleNames() []string {
	return []string{
		"王小明", "李大華", "張三", "李四", "王五", "趙六", "孫七", "周八", "吳九", "鄭十",
		"陳一", "林二", "黃三", "張三", "李四",
	}
}
