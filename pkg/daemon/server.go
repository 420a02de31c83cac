package daemon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"net"
	"os"
	"sync"
	"time"
)

const (
	// MaxRequest is the largest command a client may send in one write.
	MaxRequest = 1024

	defaultReadTimeout  = 2 * time.Second
	defaultReplyTimeout = 5 * time.Second
	acceptBackoff       = 100 * time.Millisecond
)

// Server accepts client connections on a Unix socket and turns each request
// into a dispatcher event.
type Server struct {
	// ReadTimeout bounds how long a client may take to send its command.
	ReadTimeout time.Duration
	// ReplyTimeout bounds the wait for a status reply.
	ReplyTimeout time.Duration
	// Debug receives verbose logging.
	Debug Logf

	path     string
	listener net.Listener
	wg       sync.WaitGroup
}

// Listen binds a Unix socket at path, removing any stale socket file first.
func Listen(path string) (*Server, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("daemon: remove stale socket %s: %w", path, err)
	}

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("daemon: listen on %s: %w", path, err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		return nil, fmt.Errorf("daemon: chmod %s: %w", path, err)
	}

	return &Server{
		ReadTimeout:  defaultReadTimeout,
		ReplyTimeout: defaultReplyTimeout,
		path:         path,
		listener:     ln,
	}, nil
}

// Path returns the socket path the server is bound to.
func (s *Server) Path() string {
	return s.path
}

// Serve accepts connections until ctx is done or the server is closed. Each
// connection is handled on its own goroutine; Serve waits for them before
// returning.
func (s *Server) Serve(ctx context.Context, events chan<- Event) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.listener.Close()
		case <-stop:
		}
	}()
	defer s.wg.Wait()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("accept on %s: %v", s.path, err)
			select {
			case <-time.After(acceptBackoff):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handle(ctx, conn, events)
		}()
	}
}

// Close stops accepting and removes the socket file.
func (s *Server) Close() error {
	err := s.listener.Close()
	if errors.Is(err, net.ErrClosed) {
		err = nil
	}
	if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
		err = fmt.Errorf("daemon: remove socket %s: %w", s.path, rmErr)
	}
	return err
}

func (s *Server) handle(ctx context.Context, conn net.Conn, events chan<- Event) {
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(timeoutOr(s.ReadTimeout, defaultReadTimeout)))
	buf := make([]byte, MaxRequest)
	n, err := conn.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) && !isTimeout(err) {
		log.Printf("read request: %v", err)
		return
	}

	cmd := ParseCommand(string(buf[:n]))
	s.Debug.Printf("received %q as %s", buf[:n], cmd)

	switch cmd {
	case CommandToggle:
		sendEvent(ctx, events, Toggle{})
	case CommandReset:
		sendEvent(ctx, events, Reset{})
	default:
		ev, reply := NewStatus()
		if !sendEvent(ctx, events, ev) {
			return
		}
		var data []byte
		select {
		case data = <-reply:
		case <-ctx.Done():
			return
		case <-time.After(timeoutOr(s.ReplyTimeout, defaultReplyTimeout)):
			log.Printf("status reply timed out")
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(timeoutOr(s.ReadTimeout, defaultReadTimeout)))
		if _, err := conn.Write(data); err != nil {
			s.Debug.Printf("write reply: %v", err)
		}
	}
}

func sendEvent(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func timeoutOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
