package timer

import (
	"fmt"
	"time"

	"tableflip.dev/pomobar/pkg/timeutil"
)

// View is the status-bar projection of a state, shaped for a Waybar custom
// module with return-type json.
type View struct {
	Text    string `json:"text"`
	Alt     string `json:"alt"`
	Class   string `json:"class"`
	Tooltip string `json:"tooltip"`
}

// NewView projects s at the instant now.
func NewView(s State, now time.Time) View {
	name := s.Name()
	return View{
		Text:    timeutil.FormatClock(s.Remaining(now)),
		Alt:     name,
		Class:   name,
		Tooltip: fmt.Sprintf("Completed %d pomodoros.", s.CycleCount()),
	}
}

// Deadline returns when a timed state runs out. Idle and Paused have none.
func Deadline(s State) (time.Time, bool) {
	t, ok := s.(Timed)
	if !ok {
		return time.Time{}, false
	}
	return t.Started().Add(t.Duration()), true
}

// Progress returns the elapsed fraction of the current state in [0, 1].
// Idle is 0; Paused reports how much of its work session was used.
func Progress(s State, now time.Time) float64 {
	var total time.Duration
	switch v := s.(type) {
	case Timed:
		total = v.Duration()
	case Paused:
		total = WorkDuration
	default:
		return 0
	}
	done := float64(total-s.Remaining(now)) / float64(total)
	if done < 0 {
		return 0
	}
	if done > 1 {
		return 1
	}
	return done
}
