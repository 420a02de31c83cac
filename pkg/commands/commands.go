package commands

import (
	"errors"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/pomobar/pkg/commands/options"
)

// ErrNoCommand is returned when pomobar runs without a subcommand.
var ErrNoCommand = errors.New("no command given")

var (
	do = &options.DaemonOptions{}
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:           "pomobar",
		Short:         base.Wrap80("A Pomodoro timer daemon and Waybar client."),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return ErrNoCommand
		},
	}

	options.AddDaemonArgs(cmd, do)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addStatus(topLevel)
	addToggle(topLevel)
	addReset(topLevel)
	addDaemon(topLevel)
	addWatch(topLevel)
	addInfo(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
