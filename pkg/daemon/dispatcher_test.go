package daemon

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/pomobar/pkg/notify"
	"tableflip.dev/pomobar/pkg/timer"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type recorder struct {
	messages []string
	err      error
}

func (r *recorder) Notify(summary string) error {
	r.messages = append(r.messages, summary)
	return r.err
}

func newTestDispatcher() (*Dispatcher, *fakeClock, *recorder) {
	clock := &fakeClock{now: time.Date(2026, time.October, 14, 9, 0, 0, 0, time.Local)}
	rec := &recorder{}
	d := NewDispatcher(rec)
	d.Now = clock.Now
	return d, clock, rec
}

func statusOf(t *testing.T, d *Dispatcher) timer.State {
	t.Helper()
	ev, reply := NewStatus()
	d.Handle(ev)
	select {
	case data := <-reply:
		s, err := timer.Unmarshal(data)
		if err != nil {
			t.Fatalf("decode reply %s: %v", data, err)
		}
		return s
	default:
		t.Fatalf("status produced no reply")
		return nil
	}
}

func TestToggleScenario(t *testing.T) {
	d, clock, rec := newTestDispatcher()

	d.Handle(Toggle{})
	s := d.State()
	if s.Name() != timer.NameWork || s.CycleCount() != 0 {
		t.Fatalf("expected fresh work, got %s/%d", s.Name(), s.CycleCount())
	}
	if got := s.Remaining(clock.Now()); got != timer.WorkDuration {
		t.Fatalf("expected 25m, got %v", got)
	}

	clock.advance(10 * time.Minute)
	d.Handle(Toggle{})
	if d.State().Name() != timer.NamePaused {
		t.Fatalf("expected paused, got %s", d.State().Name())
	}
	if got := d.State().Remaining(clock.Now()); got != 15*time.Minute {
		t.Fatalf("expected 15m paused, got %v", got)
	}

	clock.advance(time.Hour)
	d.Handle(Toggle{})
	if d.State().Name() != timer.NameWork {
		t.Fatalf("expected resumed work, got %s", d.State().Name())
	}
	if got := d.State().Remaining(clock.Now()); got != 15*time.Minute {
		t.Fatalf("expected 15m after resume, got %v", got)
	}

	clock.advance(15 * time.Minute)
	d.Handle(Tick{})
	s = d.State()
	if s.Name() != timer.NameShortBreak || s.CycleCount() != 1 {
		t.Fatalf("expected short break with 1 cycle, got %s/%d", s.Name(), s.CycleCount())
	}

	want := []string{timer.MessageStart, timer.MessagePause, timer.MessageResume, timer.MessageWorkDone}
	if len(rec.messages) != len(want) {
		t.Fatalf("unexpected notifications %v", rec.messages)
	}
	for i := range want {
		if rec.messages[i] != want[i] {
			t.Fatalf("notification %d: expected %q, got %q", i, want[i], rec.messages[i])
		}
	}
}

func TestToggleDuringBreakIsNoop(t *testing.T) {
	for _, b := range []timer.State{
		timer.ShortBreak{StartedAt: time.Now(), Cycles: 2},
		timer.LongBreak{StartedAt: time.Now(), Cycles: 4},
	} {
		d, clock, rec := newTestDispatcher()
		d.state = b
		clock.now = time.Now()
		d.Handle(Toggle{})
		if d.State() != b {
			t.Fatalf("%s: toggle changed state to %#v", b.Name(), d.State())
		}
		if len(rec.messages) != 0 {
			t.Fatalf("%s: unexpected notifications %v", b.Name(), rec.messages)
		}
	}
}

func TestResetFromAnyState(t *testing.T) {
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.Local)
	for _, s := range []timer.State{
		timer.NewIdle(),
		timer.Work{StartedAt: now, Cycles: 7},
		timer.Paused{Left: time.Minute, Cycles: 3},
		timer.ShortBreak{StartedAt: now, Cycles: 5},
		timer.LongBreak{StartedAt: now, Cycles: 8},
	} {
		d, _, rec := newTestDispatcher()
		d.state = s
		d.Handle(Reset{})
		if _, ok := d.State().(timer.Idle); !ok {
			t.Fatalf("%s: expected idle after reset, got %s", s.Name(), d.State().Name())
		}
		if d.State().CycleCount() != 0 {
			t.Fatalf("%s: expected cycles reset", s.Name())
		}
		if len(rec.messages) != 1 || rec.messages[0] != timer.MessageReset {
			t.Fatalf("%s: expected reset notification, got %v", s.Name(), rec.messages)
		}
	}
}

func TestFourthWorkSessionTriggersLongBreak(t *testing.T) {
	d, clock, _ := newTestDispatcher()
	d.Handle(Toggle{})

	for i := 1; i <= 4; i++ {
		clock.advance(timer.WorkDuration)
		d.Handle(Tick{})
		want := timer.NameShortBreak
		if i == 4 {
			want = timer.NameLongBreak
		}
		if d.State().Name() != want {
			t.Fatalf("session %d: expected %s, got %s", i, want, d.State().Name())
		}
		if d.State().CycleCount() != uint32(i) {
			t.Fatalf("session %d: expected %d cycles, got %d", i, i, d.State().CycleCount())
		}

		clock.advance(d.State().(timer.Timed).Duration())
		d.Handle(Tick{})
		if d.State().Name() != timer.NameWork {
			t.Fatalf("session %d: expected work after break, got %s", i, d.State().Name())
		}
	}
}

func TestLateTickFinishesExactlyOnce(t *testing.T) {
	d, clock, rec := newTestDispatcher()
	d.Handle(Toggle{})

	// Simulate a suspended machine: the next tick arrives long after the deadline.
	clock.advance(3 * time.Hour)
	d.Handle(Tick{})
	if d.State().Name() != timer.NameShortBreak {
		t.Fatalf("expected short break, got %s", d.State().Name())
	}
	d.Handle(Tick{})
	if d.State().Name() != timer.NameShortBreak {
		t.Fatalf("second tick must not finish the fresh break, got %s", d.State().Name())
	}
	if d.State().CycleCount() != 1 {
		t.Fatalf("expected 1 cycle, got %d", d.State().CycleCount())
	}
	if len(rec.messages) != 2 {
		t.Fatalf("expected start and break notifications, got %v", rec.messages)
	}
}

func TestTickBeforeDeadlineIsNoop(t *testing.T) {
	d, clock, _ := newTestDispatcher()
	d.Handle(Toggle{})
	clock.advance(timer.WorkDuration - time.Second)
	d.Handle(Tick{})
	if d.State().Name() != timer.NameWork {
		t.Fatalf("expected work, got %s", d.State().Name())
	}
}

func TestTickIgnoredWhenIdleOrPaused(t *testing.T) {
	d, clock, _ := newTestDispatcher()
	clock.advance(time.Hour)
	d.Handle(Tick{})
	if d.State().Name() != timer.NameIdle {
		t.Fatalf("expected idle, got %s", d.State().Name())
	}

	d.state = timer.Paused{Left: 0, Cycles: 2}
	d.Handle(Tick{})
	if d.State().Name() != timer.NamePaused {
		t.Fatalf("expected paused, got %s", d.State().Name())
	}
}

func TestStatusDoesNotMutate(t *testing.T) {
	d, clock, rec := newTestDispatcher()
	d.Handle(Toggle{})
	clock.advance(5 * time.Minute)

	before := d.State()
	s := statusOf(t, d)
	if d.State() != before {
		t.Fatalf("status changed state")
	}
	if s.Name() != timer.NameWork || s.Remaining(clock.Now()) != 20*time.Minute {
		t.Fatalf("unexpected reply %s %v", s.Name(), s.Remaining(clock.Now()))
	}
	if len(rec.messages) != 1 {
		t.Fatalf("status must not notify, got %v", rec.messages)
	}
}

func TestStatusReplyDroppedWhenSinkFull(t *testing.T) {
	d, _, _ := newTestDispatcher()
	reply := make(chan []byte, 1)
	reply <- []byte("occupied")
	d.Handle(Status{Reply: reply})
	d.Handle(Status{Reply: nil})
	if got := string(<-reply); got != "occupied" {
		t.Fatalf("unexpected reply %q", got)
	}
}

func TestNotificationFailureKeepsTransition(t *testing.T) {
	d, _, rec := newTestDispatcher()
	rec.err = errors.New("no notification daemon")
	d.Handle(Toggle{})
	if d.State().Name() != timer.NameWork {
		t.Fatalf("expected work despite notification failure, got %s", d.State().Name())
	}
}

func TestOnTransitionObservesChanges(t *testing.T) {
	d, _, _ := newTestDispatcher()
	var seen []string
	d.OnTransition = func(from, to timer.State) {
		seen = append(seen, from.Name()+">"+to.Name())
	}
	d.Handle(Toggle{})
	d.Handle(Toggle{})
	d.Handle(Reset{})
	want := []string{"idle>work", "work>paused", "paused>idle"}
	if len(seen) != len(want) {
		t.Fatalf("unexpected transitions %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transition %d: expected %s, got %s", i, want[i], seen[i])
		}
	}
}

func TestRunProcessesQueueInOrder(t *testing.T) {
	d := NewDispatcher(notify.Discard{})
	events := make(chan Event, QueueSize)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx, events) }()

	events <- Toggle{}
	events <- Toggle{}
	ev, reply := NewStatus()
	events <- ev

	select {
	case data := <-reply:
		s, err := timer.Unmarshal(data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if s.Name() != timer.NamePaused {
			t.Fatalf("expected paused, got %s", s.Name())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for status")
	}

	close(events)
	if err := <-done; err != nil {
		t.Fatalf("run: %v", err)
	}
}
