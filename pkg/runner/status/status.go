// Package status prints the daemon's current state.
package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/pomobar/pkg/client"
	"tableflip.dev/pomobar/pkg/daemon"
	"tableflip.dev/pomobar/pkg/timer"
	"tableflip.dev/pomobar/pkg/timeutil"
)

// Format selects how the state is printed.
type Format string

const (
	// FormatWaybar prints the status-bar view, one JSON object per line.
	FormatWaybar Format = "waybar"
	// FormatRaw prints the daemon's reply untouched.
	FormatRaw Format = "raw"
	// FormatPretty prints a colored line for humans.
	FormatPretty Format = "pretty"
)

// Status queries the daemon once and prints the answer.
type Status struct {
	Client *client.Client
	Format Format
	Out    io.Writer
	Now    func() time.Time
}

func (s *Status) Do(ctx context.Context) error {
	data, err := s.Client.Send(ctx, daemon.CommandStatus)
	if err != nil {
		return err
	}

	out := s.Out
	if out == nil {
		out = color.Output
	}

	if s.Format == FormatRaw {
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	state, err := timer.Unmarshal(data)
	if err != nil {
		return err
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	switch s.Format {
	case FormatPretty:
		_, err = fmt.Fprintln(out, Pretty(state, now))
	case FormatWaybar, "":
		var b []byte
		if b, err = json.Marshal(timer.NewView(state, now)); err == nil {
			_, err = fmt.Fprintln(out, string(b))
		}
	default:
		err = fmt.Errorf("unknown status format %q", s.Format)
	}
	return err
}

var palette = map[string]*color.Color{
	timer.NameIdle:       color.New(color.Faint),
	timer.NameWork:       color.New(color.FgRed, color.Bold),
	timer.NamePaused:     color.New(color.FgYellow),
	timer.NameShortBreak: color.New(color.FgGreen),
	timer.NameLongBreak:  color.New(color.FgCyan, color.Bold),
}

// Pretty renders state as a single human readable line.
func Pretty(state timer.State, now time.Time) string {
	name := state.Name()
	label := name
	if c, ok := palette[name]; ok {
		label = c.Sprint(name)
	}

	line := fmt.Sprintf("%s %s", label, timeutil.FormatClock(state.Remaining(now)))
	if end, ok := timer.Deadline(state); ok {
		line += fmt.Sprintf(" (until %s)", end.Local().Format("15:04"))
	}
	return line + fmt.Sprintf(", %d completed", state.CycleCount())
}
