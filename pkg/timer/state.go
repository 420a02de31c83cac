// Package timer models the pomodoro timer as a closed set of state values.
//
// Every variant is a plain value. Transitions are methods defined only on
// the variant they apply to, so pausing an idle timer does not compile, and
// each transition returns a fresh value instead of mutating its receiver.
package timer

import "time"

const (
	// WorkDuration is the length of one focus session.
	WorkDuration = 25 * time.Minute
	// ShortBreakDuration is the break taken after most work sessions.
	ShortBreakDuration = 5 * time.Minute
	// LongBreakDuration is the break taken after every LongBreakEvery sessions.
	LongBreakDuration = 15 * time.Minute
	// LongBreakEvery is the number of completed sessions between long breaks.
	LongBreakEvery = 4
)

// State names as reported to clients.
const (
	NameIdle       = "idle"
	NameWork       = "work"
	NamePaused     = "paused"
	NameShortBreak = "short_break"
	NameLongBreak  = "long_break"
)

// State is implemented by Idle, Work, Paused, ShortBreak and LongBreak only.
type State interface {
	// Name returns one of the Name* constants.
	Name() string
	// Remaining returns the time left in the current state, never negative.
	// Idle reports a full work session.
	Remaining(now time.Time) time.Duration
	// CycleCount returns the number of completed work sessions.
	CycleCount() uint32

	state()
}

// Timed is a state that runs against the clock and finishes on its own.
type Timed interface {
	State
	// Started is the instant the state became active.
	Started() time.Time
	// Duration is the nominal length of the state.
	Duration() time.Duration
}

// Break is the destination of a finished work session.
type Break interface {
	Timed
	// Finish ends the break and starts the next work session.
	Finish(now time.Time) Work

	breakState()
}

// Idle is the initial state. It has no countdown.
type Idle struct{}

// Work is an active focus session.
type Work struct {
	StartedAt time.Time
	Cycles    uint32
}

// Paused is a suspended focus session. Left is stored, not derived.
type Paused struct {
	Left   time.Duration
	Cycles uint32
}

// ShortBreak follows a work session whose count is not a multiple of
// LongBreakEvery.
type ShortBreak struct {
	StartedAt time.Time
	Cycles    uint32
}

// LongBreak follows every LongBreakEvery-th work session.
type LongBreak struct {
	StartedAt time.Time
	Cycles    uint32
}

// NewIdle returns the initial timer state.
func NewIdle() Idle {
	return Idle{}
}

// wall strips the monotonic reading so elapsed time follows the wall clock,
// including time spent suspended.
func wall(t time.Time) time.Time {
	return t.Round(0)
}

func remaining(t Timed, now time.Time) time.Duration {
	left := t.Duration() - wall(now).Sub(wall(t.Started()))
	if left < 0 {
		return 0
	}
	return left
}

// Start begins the first work session.
func (Idle) Start(now time.Time) Work {
	return Work{StartedAt: wall(now)}
}

func (Idle) Name() string { return NameIdle }
func (Idle) Remaining(time.Time) time.Duration { return WorkDuration }
func (Idle) CycleCount() uint32 { return 0 }
func (Idle) state() {}

// Pause freezes the session, storing the time that was left.
func (w Work) Pause(now time.Time) Paused {
	return Paused{Left: remaining(w, now), Cycles: w.Cycles}
}

// Finish completes the session and picks the break that follows it.
func (w Work) Finish(now time.Time) Break {
	cycles := w.Cycles + 1
	if cycles%LongBreakEvery == 0 {
		return LongBreak{StartedAt: wall(now), Cycles: cycles}
	}
	return ShortBreak{StartedAt: wall(now), Cycles: cycles}
}

func (w Work) Name() string { return NameWork }
func (w Work) Remaining(now time.Time) time.Duration { return remaining(w, now) }
func (w Work) CycleCount() uint32 { return w.Cycles }
func (w Work) Started() time.Time { return w.StartedAt }
func (w Work) Duration() time.Duration { return WorkDuration }
func (Work) state() {}

// Resume restarts the session with a start time that keeps the original
// deadline.
func (p Paused) Resume(now time.Time) Work {
	left := p.Remaining(now)
	return Work{StartedAt: wall(now).Add(-(WorkDuration - left)), Cycles: p.Cycles}
}

func (p Paused) Name() string { return NamePaused }

// Remaining returns the stored time left.
func (p Paused) Remaining(time.Time) time.Duration {
	if p.Left < 0 {
		return 0
	}
	return p.Left
}

func (p Paused) CycleCount() uint32 { return p.Cycles }
func (Paused) state() {}

// Finish ends the break and starts a new work session.
func (b ShortBreak) Finish(now time.Time) Work {
	return Work{StartedAt: wall(now), Cycles: b.Cycles}
}

func (b ShortBreak) Name() string { return NameShortBreak }
func (b ShortBreak) Remaining(now time.Time) time.Duration { return remaining(b, now) }
func (b ShortBreak) CycleCount() uint32 { return b.Cycles }
func (b ShortBreak) Started() time.Time { return b.StartedAt }
func (b ShortBreak) Duration() time.Duration { return ShortBreakDuration }
func (ShortBreak) state() {}
func (ShortBreak) breakState() {}

// Finish ends the break and starts a new work session.
func (b LongBreak) Finish(now time.Time) Work {
	return Work{StartedAt: wall(now), Cycles: b.Cycles}
}

func (b LongBreak) Name() string { return NameLongBreak }
func (b LongBreak) Remaining(now time.Time) time.Duration { return remaining(b, now) }
func (b LongBreak) CycleCount() uint32 { return b.Cycles }
func (b LongBreak) Started() time.Time { return b.StartedAt }
func (b LongBreak) Duration() time.Duration { return LongBreakDuration }
func (LongBreak) state() {}
func (LongBreak) breakState() {}
