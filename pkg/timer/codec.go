package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownStatus is returned when a payload names no known state.
	ErrUnknownStatus = errors.New("timer: unknown status")
	// ErrMissingField is returned when a payload lacks a field its status requires.
	ErrMissingField = errors.New("timer: missing field")
)

type wireState struct {
	Status    string     `json:"status"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Remaining string     `json:"remaining,omitempty"`
	Cycles    *uint32    `json:"cycles,omitempty"`
}

// Marshal encodes s in the daemon's status wire format. Timestamps are
// written in local time.
func Marshal(s State) ([]byte, error) {
	w := wireState{Status: s.Name()}
	switch v := s.(type) {
	case Idle:
	case Paused:
		cycles := v.Cycles
		w.Remaining = v.Remaining(time.Time{}).String()
		w.Cycles = &cycles
	case Timed:
		started := v.Started().Local()
		cycles := v.CycleCount()
		w.StartedAt = &started
		w.Cycles = &cycles
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownStatus, s)
	}
	return json.Marshal(w)
}

// Unmarshal decodes a status payload produced by Marshal.
func Unmarshal(data []byte) (State, error) {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("timer: decode status: %w", err)
	}

	var cycles uint32
	if w.Cycles != nil {
		cycles = *w.Cycles
	}

	switch w.Status {
	case NameIdle:
		return NewIdle(), nil
	case NamePaused:
		if w.Remaining == "" {
			return nil, fmt.Errorf("%w: remaining", ErrMissingField)
		}
		left, err := time.ParseDuration(w.Remaining)
		if err != nil {
			return nil, fmt.Errorf("timer: decode remaining: %w", err)
		}
		if left > WorkDuration {
			left = WorkDuration
		}
		return Paused{Left: left, Cycles: cycles}, nil
	case NameWork, NameShortBreak, NameLongBreak:
		if w.StartedAt == nil {
			return nil, fmt.Errorf("%w: started_at", ErrMissingField)
		}
		started := *w.StartedAt
		switch w.Status {
		case NameWork:
			return Work{StartedAt: started, Cycles: cycles}, nil
		case NameShortBreak:
			return ShortBreak{StartedAt: started, Cycles: cycles}, nil
		default:
			return LongBreak{StartedAt: started, Cycles: cycles}, nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, w.Status)
	}
}
