package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/commands/options"
	"tableflip.dev/pomobar/pkg/daemon"
	"tableflip.dev/pomobar/pkg/runner/control"
)

func addToggle(topLevel *cobra.Command) {
	addControl(topLevel, daemon.CommandToggle, "Start, pause or resume the timer.", `
pomobar toggle
pomobar toggle --status
`)
}

func addReset(topLevel *cobra.Command) {
	addControl(topLevel, daemon.CommandReset, "Stop the timer and clear completed pomodoros.", `
pomobar reset
`)
}

func addControl(topLevel *cobra.Command, command daemon.Command, short, example string) {
	var then bool
	so := &options.StatusOptions{}
	cmd := &cobra.Command{
		Use:     string(command),
		Short:   short,
		Example: example,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := do.Config(cmd)
			if err != nil {
				return err
			}
			c := &control.Control{
				Client:  do.Client(cfg),
				Command: command,
			}
			if then {
				if c.Then, err = newStatus(cmd, so); err != nil {
					return err
				}
			}
			return c.Do(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&then, "status", false,
		"Print the resulting state afterwards.")
	options.AddStatusArgs(cmd, so)
	topLevel.AddCommand(cmd)
}
