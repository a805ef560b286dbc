package grouping

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/random"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		size      int
		wantSizes []int
	}{
		{"five into pairs", 5, 2, []int{2, 2, 1}},
		{"even split", 8, 4, []int{4, 4}},
		{"size larger than list", 3, 10, []int{3}},
		{"singletons", 3, 1, []int{1, 1, 1}},
		{"one participant", 1, 4, []int{1}},
		{"remainder of three", 11, 4, []int{4, 4, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participants := names(tt.count)
			groups, err := Generate(participants, tt.size, random.Seeded(1))
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			var sizes []int
			var flat []string
			for _, g := range groups {
				sizes = append(sizes, len(g))
				flat = append(flat, g...)
			}
			if diff := cmp.Diff(tt.wantSizes, sizes); diff != "" {
				t.Errorf("group sizes mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(sorted(participants), sorted(flat)); diff != "" {
				t.Errorf("groups are not a permutation of the input (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateExample(t *testing.T) {
	groups, err := Generate([]string{"A", "B", "C", "D", "E"}, 2, random.Default())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	seen := make(map[string]int)
	for _, g := range groups {
		for _, m := range g {
			seen[m]++
		}
	}
	for _, n := range []string{"A", "B", "C", "D", "E"} {
		if seen[n] != 1 {
			t.Errorf("%s appears %d times", n, seen[n])
		}
	}
}

func TestGenerateKeepsDuplicates(t *testing.T) {
	groups, err := Generate([]string{"A", "A", "B"}, 2, random.Seeded(3))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	var flat []string
	for _, g := range groups {
		flat = append(flat, g...)
	}
	if diff := cmp.Diff([]string{"A", "A", "B"}, sorted(flat)); diff != "" {
		t.Errorf("multiset changed (-want +got):\n%s", diff)
	}
}

func TestGenerateErrors(t *testing.T) {
	if _, err := Generate(nil, 2, random.Default()); !errors.Is(err, ErrEmptyParticipants) {
		t.Errorf("Generate(nil) error = %v, want ErrEmptyParticipants", err)
	}
	for _, size := range []int{0, -3} {
		if _, err := Generate([]string{"A"}, size, random.Default()); !errors.Is(err, ErrInvalidGroupSize) {
			t.Errorf("Generate(size=%d) error = %v, want ErrInvalidGroupSize", size, err)
		}
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	in := []string{"A", "B", "C", "D"}
	Shuffle(in, random.Seeded(5))
	if diff := cmp.Diff([]string{"A", "B", "C", "D"}, in); diff != "" {
		t.Errorf("Shuffle mutated input (-want +got):\n%s", diff)
	}
}

// Every permutation of three names should come up about equally often.
func TestShuffleIsUniform(t *testing.T) {
	src := random.Seeded(2024)
	counts := make(map[string]int)

	const runs = 60000
	for i := 0; i < runs; i++ {
		counts[fmt.Sprint(Shuffle([]string{"A", "B", "C"}, src))]++
	}
	if len(counts) != 6 {
		t.Fatalf("saw %d distinct permutations, want 6", len(counts))
	}
	for perm, n := range counts {
		// Expected 10000 each.
		if n < 9400 || n > 10600 {
			t.Errorf("permutation %s seen %d times, outside the expected band", perm, n)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(0); got != "第 1 組" {
		t.Errorf("Label(0) = %q", got)
	}
	if got := Label(11); got != "第 12 組" {
		t.Errorf("Label(11) = %q", got)
	}
}

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("P%02d", i)
	}
	return out
}

func sorted(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
