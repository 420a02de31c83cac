package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/client"
	"tableflip.dev/pomobar/pkg/config"
)

// DaemonOptions locate and reach the daemon.
type DaemonOptions struct {
	Socket  string
	Timeout time.Duration
	Verbose bool
}

func AddDaemonArgs(cmd *cobra.Command, o *DaemonOptions) {
	cmd.PersistentFlags().StringVar(&o.Socket, config.KeySocket, config.DefaultSocket,
		"Path of the daemon's Unix socket.")
	cmd.PersistentFlags().DurationVar(&o.Timeout, config.KeyTimeout, client.DefaultTimeout,
		"How long a request may take before giving up.")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, config.KeyVerbose, "v", false,
		"Log debug output.")
}

// Config resolves settings with the flags of cmd taking precedence.
func (o *DaemonOptions) Config(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(cmd.Flags())
}

// Client returns a client for the configured socket.
func (o *DaemonOptions) Client(cfg *config.Config) *client.Client {
	return client.New(cfg.SocketPath(), cfg.Timeout())
}
