// Package info describes where pomobar reads its settings from and whether a
// daemon is answering.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pomobar/pkg/client"
	"tableflip.dev/pomobar/pkg/config"
)

type Info struct {
	Config *config.Config
	// Client is used to probe the daemon; nil skips the probe.
	Client *client.Client
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Config == nil {
		var err error
		if n.Config, err = config.Load(nil); err != nil {
			return err
		}
	}

	if override := os.Getenv(config.PathEnv); override != "" {
		_, _ = fmt.Fprintf(out, "%s found on env, using %s\n", config.PathEnv, override)
	} else {
		_, _ = fmt.Fprintf(out, "%s env var not set\n", config.PathEnv)
	}
	if f := n.Config.File(); f != "" {
		_, _ = fmt.Fprintf(out, "Config file: %s\n", f)
	} else {
		_, _ = fmt.Fprintln(out, "Config file: none, using defaults")
	}
	_, _ = fmt.Fprintln(out, "")

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Setting"), bold.Sprint("Value"))
	for _, row := range n.Config.Settings() {
		tbl.AddRow(row[0], row[1])
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)

	if n.Client == nil {
		return nil
	}
	_, _ = fmt.Fprintln(out, "")
	state, err := n.Client.Status(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Daemon: %s\n", color.RedString("not reachable (%v)", err))
		return nil
	}
	_, _ = fmt.Fprintf(out, "Daemon: %s, %s with %d completed\n",
		color.GreenString("running"), state.Name(), state.CycleCount())
	return nil
}
