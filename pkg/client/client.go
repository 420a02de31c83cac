// Package client talks to a running pomobar daemon over its Unix socket.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"tableflip.dev/pomobar/pkg/daemon"
	"tableflip.dev/pomobar/pkg/timer"
)

var (
	// ErrDaemonUnavailable is returned when the socket cannot be reached.
	ErrDaemonUnavailable = errors.New("pomobar daemon is not running")
	// ErrNoReply is returned when a status request gets an empty answer.
	ErrNoReply = errors.New("pomobar daemon sent no reply")
)

// DefaultTimeout bounds a request when Client.Timeout is unset.
const DefaultTimeout = 2 * time.Second

// Client sends one command per connection.
type Client struct {
	SocketPath string
	Timeout    time.Duration
}

// New returns a client for the socket at path.
func New(path string, timeout time.Duration) *Client {
	return &Client{SocketPath: path, Timeout: timeout}
}

// Send writes cmd and, for status queries, returns the daemon's raw reply.
// Toggle and reset have no reply; Send returns nil data once the daemon has
// accepted them.
func (c *Client) Send(ctx context.Context, cmd daemon.Command) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", c.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %v", ErrDaemonUnavailable, c.SocketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := conn.Write([]byte(cmd)); err != nil {
		return nil, fmt.Errorf("send %s: %w", cmd, err)
	}

	if daemon.ParseCommand(string(cmd)) != daemon.CommandStatus {
		// The daemon closes once the command is queued; waiting for that keeps
		// a follow-up request ordered after this one.
		if _, err := io.Copy(io.Discard, conn); err != nil {
			return nil, fmt.Errorf("send %s: %w", cmd, err)
		}
		return nil, nil
	}

	data, err := io.ReadAll(io.LimitReader(conn, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("read %s reply: %w", cmd, err)
	}
	if len(data) == 0 {
		return nil, ErrNoReply
	}
	return data, nil
}

// Status fetches and decodes the daemon's current state.
func (c *Client) Status(ctx context.Context) (timer.State, error) {
	data, err := c.Send(ctx, daemon.CommandStatus)
	if err != nil {
		return nil, err
	}
	return timer.Unmarshal(data)
}

// Toggle starts, pauses or resumes the timer.
func (c *Client) Toggle(ctx context.Context) error {
	_, err := c.Send(ctx, daemon.CommandToggle)
	return err
}

// Reset returns the timer to idle.
func (c *Client) Reset(ctx context.Context) error {
	_, err := c.Send(ctx, daemon.CommandReset)
	return err
}
