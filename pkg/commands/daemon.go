package commands

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/commands/options"
	"tableflip.dev/pomobar/pkg/runner/serve"
)

func addDaemon(topLevel *cobra.Command) {
	no := &options.NotifyOptions{}
	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the timer and listen for commands.",
		Example: `
pomobar daemon
pomobar daemon --notifications=false --socket ~/.cache/pomobar.sock
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := do.Config(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := &serve.Serve{
				Config: cfg,
				Ready: func(path string) {
					log.Printf("pomobar daemon listening on %s", path)
				},
			}
			return s.Do(ctx)
		},
	}

	options.AddNotifyArgs(cmd, no)
	topLevel.AddCommand(cmd)
}
