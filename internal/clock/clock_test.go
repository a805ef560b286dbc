package clock

import (
	"testing"
	"time"
)

func TestManualFiresInOrder(t *testing.T) {
	m := NewManual()
	var got []string

	m.AfterFunc(20*time.Millisecond, func() { got = append(got, "b") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(20*time.Millisecond, func() { got = append(got, "c") })

	m.Advance(15 * time.Millisecond)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("after 15ms got %v, want [a]", got)
	}

	m.Advance(5 * time.Millisecond)
	if len(got) != 3 || got[1] != "b" || got[2] != "c" {
		t.Fatalf("after 20ms got %v, want [a b c]", got)
	}
	if m.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", m.Pending())
	}
}

func TestManualChainedCallbacks(t *testing.T) {
	m := NewManual()
	count := 0

	var tick func()
	tick = func() {
		count++
		if count < 5 {
			m.AfterFunc(10*time.Millisecond, tick)
		}
	}
	m.AfterFunc(10*time.Millisecond, tick)

	m.Advance(35 * time.Millisecond)
	if count != 3 {
		t.Errorf("count after 35ms = %d, want 3", count)
	}

	m.Advance(time.Second)
	if count != 5 {
		t.Errorf("count after 1s = %d, want 5", count)
	}
	if m.Now() != 35*time.Millisecond+time.Second {
		t.Errorf("Now() = %v", m.Now())
	}
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	fired := false

	timer := m.AfterFunc(time.Millisecond, func() { fired = true })
	if !timer.Stop() {
		t.Fatal("first Stop() should report true")
	}
	if timer.Stop() {
		t.Error("second Stop() should report false")
	}

	m.Advance(time.Second)
	if fired {
		t.Error("stopped callback fired")
	}
}

func TestRealScheduler(t *testing.T) {
	done := make(chan struct{})
	Real().AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real scheduler never fired")
	}

	stopped := Real().AfterFunc(time.Hour, func() {})
	if !stopped.Stop() {
		t.Error("Stop() on pending real timer should report true")
	}
}
