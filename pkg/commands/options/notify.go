package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/config"
)

// NotifyOptions
type NotifyOptions struct {
	Notifications bool
}

func AddNotifyArgs(cmd *cobra.Command, o *NotifyOptions) {
	cmd.Flags().BoolVar(&o.Notifications, config.KeyNotifications, true,
		"Show desktop notifications on transitions.")
}
