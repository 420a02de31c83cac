// Package key prints a legend of timer states and how Waybar sees them.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pomobar/pkg/timer"
	"tableflip.dev/pomobar/pkg/timeutil"
)

type entry struct {
	name     string
	length   string
	meaning  string
	notifies string
}

var legend = []entry{
	{timer.NameIdle, "-", "Nothing running, toggle starts work.", timer.MessageReset},
	{timer.NameWork, timeutil.FormatSpan(timer.WorkDuration), "Focus session; toggle pauses.", timer.MessageStart},
	{timer.NamePaused, "-", "Work on hold; toggle resumes.", timer.MessagePause},
	{timer.NameShortBreak, timeutil.FormatSpan(timer.ShortBreakDuration), "Rest after a work session.", timer.MessageWorkDone},
	{timer.NameLongBreak, timeutil.FormatSpan(timer.LongBreakDuration),
		fmt.Sprintf("Rest after every %d work sessions.", timer.LongBreakEvery), timer.MessageWorkDone},
}

// Key renders the state legend.
type Key struct {
	Out io.Writer
}

func (k *Key) Do(_ context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Class"), bold.Sprint("Length"), bold.Sprint("Meaning"), bold.Sprint("Notifies"))
	for _, e := range legend {
		tbl.AddRow(e.name, e.length, e.meaning, e.notifies)
	}
	tbl.RightAlign(0)

	_, err := fmt.Fprintln(out, tbl)
	return err
}
