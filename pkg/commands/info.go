package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and the daemon.",
		Example: `
pomobar info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := do.Config(cmd)
			if err != nil {
				return err
			}
			s := info.Info{
				Config: cfg,
				Client: do.Client(cfg),
				Out:    cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
