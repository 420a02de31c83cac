package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/timeutil"
)

// WatchOptions
type WatchOptions struct {
	Refresh string
}

func AddWatchArgs(cmd *cobra.Command, o *WatchOptions) {
	cmd.Flags().StringVarP(&o.Refresh, "refresh", "r", timeutil.DefaultRefresh,
		`How often to poll the daemon, example: --refresh=500ms.`)
}

func (o *WatchOptions) Interval() (time.Duration, error) {
	d, _, err := timeutil.ParseInterval(o.Refresh)
	return d, err
}
