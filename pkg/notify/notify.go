// Package notify delivers best-effort desktop notifications.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/godbus/dbus/v5"
)

// ErrQueueFull is returned by Queue.Notify when delivery is backed up.
var ErrQueueFull = errors.New("notify: queue full")

// Notifier shows a one-line summary to the user.
type Notifier interface {
	Notify(summary string) error
}

// Func adapts a function to Notifier.
type Func func(summary string) error

// Notify calls f.
func (f Func) Notify(summary string) error {
	return f(summary)
}

// Discard drops every notification.
type Discard struct{}

// Notify does nothing.
func (Discard) Notify(string) error { return nil }

const (
	busName      = "org.freedesktop.Notifications"
	objectPath   = "/org/freedesktop/Notifications"
	notifyMethod = busName + ".Notify"

	urgencyLow byte = 0
)

// DBus sends notifications to the freedesktop notification server on the
// session bus. The connection is opened on first use and reused.
type DBus struct {
	AppName string
	Icon    string
	// Timeout bounds a single Notify round trip.
	Timeout time.Duration

	mu   sync.Mutex
	conn *dbus.Conn
}

// NewDBus returns a DBus notifier tagged with appName and icon.
func NewDBus(appName, icon string) *DBus {
	return &DBus{AppName: appName, Icon: icon, Timeout: 2 * time.Second}
}

// Notify shows summary with low urgency and the server's default expiry.
func (d *DBus) Notify(summary string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("notify: connect session bus: %w", err)
		}
		d.conn = conn
	}

	timeout := d.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(urgencyLow),
	}
	obj := d.conn.Object(busName, dbus.ObjectPath(objectPath))
	call := obj.CallWithContext(ctx, notifyMethod, 0,
		d.AppName,
		uint32(0),
		d.Icon,
		summary,
		"",
		[]string{},
		hints,
		int32(-1),
	)
	if call.Err != nil {
		// Drop the connection so the next call redials; the bus may have
		// restarted underneath us.
		_ = d.conn.Close()
		d.conn = nil
		return fmt.Errorf("notify: %w", call.Err)
	}
	return nil
}

// Close releases the bus connection.
func (d *DBus) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// Gate forwards to Next only while enabled. It is safe for concurrent use.
type Gate struct {
	Next    Notifier
	enabled atomic.Bool
}

// NewGate returns a Gate in the given state.
func NewGate(next Notifier, enabled bool) *Gate {
	g := &Gate{Next: next}
	g.enabled.Store(enabled)
	return g
}

// SetEnabled switches delivery on or off.
func (g *Gate) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

// Enabled reports whether notifications are forwarded.
func (g *Gate) Enabled() bool {
	return g.enabled.Load()
}

// Notify forwards summary when the gate is open.
func (g *Gate) Notify(summary string) error {
	if !g.enabled.Load() || g.Next == nil {
		return nil
	}
	return g.Next.Notify(summary)
}

// Queue hands notifications to a background goroutine so callers never wait
// on delivery. When the buffer is full new messages are rejected.
type Queue struct {
	next    Notifier
	pending chan string
}

// NewQueue buffers up to size messages for next.
func NewQueue(next Notifier, size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{next: next, pending: make(chan string, size)}
}

// Notify enqueues summary without blocking.
func (q *Queue) Notify(summary string) error {
	select {
	case q.pending <- summary:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run delivers queued messages until ctx is done. Delivery failures are
// logged and otherwise ignored.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case summary := <-q.pending:
			if err := q.next.Notify(summary); err != nil {
				log.Printf("notification %q not shown: %v", summary, err)
			}
		}
	}
}
