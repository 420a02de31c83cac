package daemon

import (
	"context"
	"fmt"
	"log"
	"time"

	"tableflip.dev/pomobar/pkg/notify"
	"tableflip.dev/pomobar/pkg/timer"
)

// QueueSize is the capacity of the event queue shared by all producers.
const QueueSize = 64

// Logf prints debug output. A nil Logf discards it.
type Logf func(format string, args ...any)

// Printf forwards to l when it is set.
func (l Logf) Printf(format string, args ...any) {
	if l != nil {
		l(format, args...)
	}
}

// Dispatcher owns the timer state and applies events to it one at a time.
// It must only be driven from a single goroutine, normally through Run.
type Dispatcher struct {
	// Notifier receives a message for every transition and for Reset.
	Notifier notify.Notifier
	// Now reads the wall clock. Defaults to time.Now.
	Now func() time.Time
	// OnTransition, if set, observes every state change.
	OnTransition func(from, to timer.State)
	// Debug receives verbose logging.
	Debug Logf

	state timer.State
}

// NewDispatcher returns a dispatcher holding a fresh idle timer.
func NewDispatcher(n notify.Notifier) *Dispatcher {
	return &Dispatcher{Notifier: n, state: timer.NewIdle()}
}

// State returns the current state. Only safe from the owning goroutine.
func (d *Dispatcher) State() timer.State {
	if d.state == nil {
		d.state = timer.NewIdle()
	}
	return d.state
}

// Run consumes events until ctx is done or events is closed.
func (d *Dispatcher) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			d.Handle(ev)
		}
	}
}

// Handle applies a single event.
func (d *Dispatcher) Handle(ev Event) {
	now := d.now()
	switch e := ev.(type) {
	case Toggle:
		d.toggle(now)
	case Reset:
		d.replace(timer.NewIdle(), timer.MessageReset)
		d.Debug.Printf("state reset to %s", timer.NameIdle)
	case Status:
		d.reply(e)
	case Tick:
		d.tick(now)
	default:
		panic(fmt.Sprintf("daemon: unhandled event %T", ev))
	}
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Dispatcher) toggle(now time.Time) {
	switch s := d.State().(type) {
	case timer.Idle:
		d.replace(s.Start(now), timer.MessageStart)
	case timer.Work:
		d.replace(s.Pause(now), timer.MessagePause)
	case timer.Paused:
		d.replace(s.Resume(now), timer.MessageResume)
	case timer.Break:
		// Breaks always run to completion.
	default:
		panic(fmt.Sprintf("daemon: unexpected state %T", s))
	}
	d.Debug.Printf("toggled state to %s", d.state.Name())
}

// tick finishes a timed state once its remaining time is used up. The check
// is level-triggered so a late tick still fires.
func (d *Dispatcher) tick(now time.Time) {
	if d.State().Remaining(now) > 0 {
		return
	}
	switch s := d.state.(type) {
	case timer.Work:
		d.replace(s.Finish(now), timer.MessageWorkDone)
	case timer.ShortBreak:
		d.replace(s.Finish(now), timer.MessageShortBreakEnd)
	case timer.LongBreak:
		d.replace(s.Finish(now), timer.MessageLongBreakEnd)
	default:
		return
	}
	d.Debug.Printf("timer finished, transitioned to %s", d.state.Name())
}

func (d *Dispatcher) replace(next timer.State, message string) {
	prev := d.State()
	d.state = next
	if d.OnTransition != nil {
		d.OnTransition(prev, next)
	}
	if d.Notifier == nil {
		return
	}
	if err := d.Notifier.Notify(message); err != nil {
		log.Printf("notification %q failed: %v", message, err)
	}
}

func (d *Dispatcher) reply(e Status) {
	data, err := timer.Marshal(d.State())
	if err != nil {
		data = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	select {
	case e.Reply <- data:
	default:
		d.Debug.Printf("status reply dropped: requester not listening")
	}
}
