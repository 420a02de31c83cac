// Package control sends toggle and reset commands to the daemon.
package control

import (
	"context"
	"fmt"

	"tableflip.dev/pomobar/pkg/client"
	"tableflip.dev/pomobar/pkg/daemon"
	"tableflip.dev/pomobar/pkg/runner/status"
)

type Control struct {
	Client  *client.Client
	Command daemon.Command
	// Then, if set, runs after the command is accepted.
	Then *status.Status
}

func (c *Control) Do(ctx context.Context) error {
	switch c.Command {
	case daemon.CommandToggle, daemon.CommandReset:
	default:
		return fmt.Errorf("%q is not a control command", c.Command)
	}
	if _, err := c.Client.Send(ctx, c.Command); err != nil {
		return err
	}
	if c.Then != nil {
		return c.Then.Do(ctx)
	}
	return nil
}
