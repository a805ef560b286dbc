package grouping

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/clock"
	"github.com/Lin-Yi-Zhi/HR-Event-Helper/internal/random"
)

func newTestGenerator(t *testing.T) (*Generator, *clock.Manual) {
	t.Helper()
	sched := clock.NewManual()
	g := NewGenerator(GeneratorConfig{Scheduler: sched, Source: random.Seeded(11)})
	t.Cleanup(g.Close)
	return g, sched
}

func TestGeneratorDelaysResult(t *testing.T) {
	g, sched := newTestGenerator(t)

	var got [][]string
	if err := g.Start(names(5), 2, func(groups [][]string) { got = groups }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !g.Busy() {
		t.Fatal("expected Busy after Start")
	}

	sched.Advance(DefaultDelay - time.Millisecond)
	if got != nil || g.Groups() != nil {
		t.Fatal("result published before the delay elapsed")
	}

	sched.Advance(time.Millisecond)
	if g.Busy() {
		t.Error("still busy after the delay")
	}
	if len(got) != 3 {
		t.Fatalf("callback got %d groups, want 3", len(got))
	}
	if len(g.Groups()) != 3 {
		t.Errorf("Groups() = %v", g.Groups())
	}
}

// The delay only postpones the result: the same seed gives the same groups
// as a direct Generate call.
func TestGeneratorDelayDoesNotChangeResult(t *testing.T) {
	sched := clock.NewManual()
	g := NewGenerator(GeneratorConfig{Scheduler: sched, Source: random.Seeded(42), Delay: time.Second})
	defer g.Close()

	if err := g.Start(names(9), 4, nil); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	sched.Advance(time.Second)

	want, _ := Generate(names(9), 4, random.Seeded(42))
	got := g.Groups()
	if len(got) != len(want) {
		t.Fatalf("got %d groups, want %d", len(got), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if got[i][j] != want[i][j] {
				t.Fatalf("group %d differs: %v vs %v", i, got[i], want[i])
			}
		}
	}
}

func TestGeneratorRejectsWhileBusy(t *testing.T) {
	g, sched := newTestGenerator(t)

	if err := g.Start(names(4), 2, nil); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := g.Start(names(4), 2, nil); !errors.Is(err, ErrGenerationInProgress) {
		t.Fatalf("second Start() error = %v, want ErrGenerationInProgress", err)
	}
	if sched.Pending() != 1 {
		t.Errorf("pending = %d, want 1", sched.Pending())
	}
}

func TestGeneratorValidatesBeforeScheduling(t *testing.T) {
	g, sched := newTestGenerator(t)

	if err := g.Start(nil, 2, nil); !errors.Is(err, ErrEmptyParticipants) {
		t.Errorf("Start(nil) error = %v", err)
	}
	if err := g.Start(names(3), 0, nil); !errors.Is(err, ErrInvalidGroupSize) {
		t.Errorf("Start(size 0) error = %v", err)
	}
	if g.Busy() || sched.Pending() != 0 {
		t.Error("invalid request left the generator busy")
	}
}

func TestGeneratorReplacesPartition(t *testing.T) {
	g, sched := newTestGenerator(t)

	if err := g.Start(names(6), 2, nil); err != nil {
		t.Fatal(err)
	}
	sched.Advance(DefaultDelay)
	if len(g.Groups()) != 3 {
		t.Fatalf("first run: %d groups", len(g.Groups()))
	}

	if err := g.Start(names(6), 6, nil); err != nil {
		t.Fatal(err)
	}
	sched.Advance(DefaultDelay)
	if got := g.Groups(); len(got) != 1 || len(got[0]) != 6 {
		t.Errorf("second run = %v, want one group of 6", got)
	}
}

func TestGeneratorSnapshotsParticipants(t *testing.T) {
	g, sched := newTestGenerator(t)
	participants := names(4)

	if err := g.Start(participants, 4, nil); err != nil {
		t.Fatal(err)
	}
	participants[0] = "changed"
	sched.Advance(DefaultDelay)

	for _, m := range g.Groups()[0] {
		if m == "changed" {
			t.Fatal("generator read the caller's slice after Start returned")
		}
	}
}

func TestGeneratorClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	called := make(chan struct{}, 1)
	g := NewGenerator(GeneratorConfig{Delay: 5 * time.Millisecond})
	if err := g.Start(names(3), 2, func([][]string) { called <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	g.Close()
	time.Sleep(30 * time.Millisecond)

	select {
	case <-called:
		t.Error("callback ran after Close")
	default:
	}
	if err := g.Start(names(3), 2, nil); !errors.Is(err, ErrGeneratorClosed) {
		t.Errorf("Start() after Close error = %v", err)
	}
	g.Close()
}
