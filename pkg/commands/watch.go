package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/commands/options"
	"tableflip.dev/pomobar/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	wo := &options.WatchOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the timer in the terminal.",
		Example: `
pomobar watch
pomobar watch --refresh 500ms
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			refresh, err := wo.Interval()
			if err != nil {
				return err
			}
			cfg, err := do.Config(cmd)
			if err != nil {
				return err
			}
			w := &watch.Watch{
				Client:  do.Client(cfg),
				Refresh: refresh,
			}
			return w.Do(cmd.Context())
		},
	}

	options.AddWatchArgs(cmd, wo)
	topLevel.AddCommand(cmd)
}
