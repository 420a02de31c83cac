package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/pomobar/pkg/runner/status"
)

// StatusOptions
type StatusOptions struct {
	Raw    bool
	Pretty bool
}

func AddStatusArgs(cmd *cobra.Command, o *StatusOptions) {
	cmd.Flags().BoolVar(&o.Raw, "raw", false,
		"Print the daemon's reply as is.")
	cmd.Flags().BoolVar(&o.Pretty, "pretty", false,
		"Print a colored line instead of Waybar JSON.")
}

func (o *StatusOptions) Format() (status.Format, error) {
	switch {
	case o.Raw && o.Pretty:
		return "", errors.New("--raw and --pretty are mutually exclusive")
	case o.Raw:
		return status.FormatRaw, nil
	case o.Pretty:
		return status.FormatPretty, nil
	}
	return status.FormatWaybar, nil
}
