// Package serve runs the pomobar daemon: the dispatcher, the ticker, the
// socket server and notification delivery, until the context ends.
package serve

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"tableflip.dev/pomobar/pkg/config"
	"tableflip.dev/pomobar/pkg/daemon"
	"tableflip.dev/pomobar/pkg/notify"
	"tableflip.dev/pomobar/pkg/timer"
)

// notifyBacklog is how many notifications may wait for delivery.
const notifyBacklog = 16

// Serve holds what the daemon needs to run.
type Serve struct {
	Config *config.Config
	// Notifier replaces the desktop notification backend when set.
	Notifier notify.Notifier
	// TickInterval overrides daemon.TickInterval.
	TickInterval time.Duration
	// Ready, if set, is called once the socket is listening.
	Ready func(path string)
}

// Do binds the socket and blocks until ctx is cancelled. Failing to bind is
// returned before anything else starts.
func (s *Serve) Do(ctx context.Context) error {
	cfg := s.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(nil); err != nil {
			return err
		}
	}

	var debug daemon.Logf
	if cfg.Verbose() {
		debug = log.Printf
	}

	srv, err := daemon.Listen(cfg.SocketPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Printf("closing %s: %v", srv.Path(), err)
		}
	}()
	srv.Debug = debug

	backend := s.Notifier
	if backend == nil {
		dbus := notify.NewDBus(cfg.AppName(), cfg.Icon())
		defer func() { _ = dbus.Close() }()
		backend = dbus
	}
	queue := notify.NewQueue(backend, notifyBacklog)
	gate := notify.NewGate(queue, cfg.Notifications())
	if cfg.Watch(func(c *config.Config) {
		gate.SetEnabled(c.Notifications())
		debug.Printf("config reloaded, notifications=%t", c.Notifications())
	}) {
		debug.Printf("watching %s", cfg.File())
	}

	d := daemon.NewDispatcher(gate)
	d.Debug = debug
	d.OnTransition = func(from, to timer.State) {
		debug.Printf("%s -> %s (cycles %d)", from.Name(), to.Name(), to.CycleCount())
	}

	events := make(chan daemon.Event, daemon.QueueSize)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return queue.Run(ctx) })
	g.Go(func() error { return d.Run(ctx, events) })
	g.Go(func() error { return daemon.Ticker{Interval: s.TickInterval}.Run(ctx, events) })
	g.Go(func() error { return srv.Serve(ctx, events) })

	if s.Ready != nil {
		s.Ready(srv.Path())
	}
	return g.Wait()
}
