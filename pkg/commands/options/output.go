package options

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/timer"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	Out  io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Report failures as a Waybar object instead of exiting non-zero.")
}

// HandleError passes err through, unless --json is set, in which case err is
// printed as an "error" class view so the bar keeps rendering.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	out := o.Out
	if out == nil {
		out = color.Output
	}
	b, merr := json.Marshal(timer.View{
		Text:    "--:--",
		Alt:     "error",
		Class:   "error",
		Tooltip: err.Error(),
	})
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(out, string(b))
	return nil
}
