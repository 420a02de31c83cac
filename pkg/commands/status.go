package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/commands/options"
	"tableflip.dev/pomobar/pkg/runner/status"
)

func addStatus(topLevel *cobra.Command) {
	so := &options.StatusOptions{}
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the timer state for Waybar.",
		Example: `
pomobar status
pomobar status --pretty
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			oo.Out = cmd.OutOrStdout()
			s, err := newStatus(cmd, so)
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddStatusArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func newStatus(cmd *cobra.Command, so *options.StatusOptions) (*status.Status, error) {
	format, err := so.Format()
	if err != nil {
		return nil, err
	}
	cfg, err := do.Config(cmd)
	if err != nil {
		return nil, err
	}
	return &status.Status{
		Client: do.Client(cfg),
		Format: format,
		Out:    cmd.OutOrStdout(),
	}, nil
}
