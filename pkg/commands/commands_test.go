package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tableflip.dev/pomobar/pkg/client"
	"tableflip.dev/pomobar/pkg/config"
	"tableflip.dev/pomobar/pkg/notify"
	"tableflip.dev/pomobar/pkg/runner/serve"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "pomobar")
	if err != nil {
		t.Fatalf("mkdir temp: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	t.Setenv(config.PathEnv, dir)
	t.Setenv("HOME", dir)
	t.Setenv("POMOBAR_SOCKET", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNoCommandPrintsHelp(t *testing.T) {
	isolate(t)
	out, err := execute(t)
	if !errors.Is(err, ErrNoCommand) {
		t.Fatalf("expected ErrNoCommand, got %v", err)
	}
	if !strings.Contains(out, "Available Commands") {
		t.Fatalf("expected help output, got %s", out)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := []string{"status", "toggle", "reset", "daemon", "watch", "info", "key", "version", "completion"}
	for _, name := range want {
		if c, _, err := New().Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("missing subcommand %s: %v", name, err)
		}
	}
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestCompletionShells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		out, err := execute(t, "completion", shell)
		if err != nil || !strings.Contains(out, "pomobar") {
			t.Fatalf("%s completion failed: %v", shell, err)
		}
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Fatal("expected error for unsupported shell")
	}
}

func TestStatusRejectsConflictingFormats(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "status", "--raw", "--pretty"); err == nil {
		t.Fatal("expected error")
	}
}

func TestStatusWithoutDaemon(t *testing.T) {
	dir := isolate(t)
	sock := filepath.Join(dir, "none.sock")
	if _, err := execute(t, "status", "--socket", sock, "--timeout", "100ms"); !errors.Is(err, client.ErrDaemonUnavailable) {
		t.Fatalf("expected ErrDaemonUnavailable, got %v", err)
	}
}

func TestClientCommandsAgainstDaemon(t *testing.T) {
	dir := isolate(t)
	sock := filepath.Join(dir, "d.sock")
	t.Setenv("POMOBAR_SOCKET", sock)
	cfg, err := config.Load(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	ready := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	s := &serve.Serve{Config: cfg, Notifier: notify.Discard{}, Ready: func(string) { close(ready) }}
	go func() { done <- s.Do(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("daemon never became ready")
	}

	out, err := execute(t, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if out != `{"text":"25:00","alt":"idle","class":"idle","tooltip":"Completed 0 pomodoros."}`+"\n" {
		t.Fatalf("unexpected status %q", out)
	}

	out, err = execute(t, "toggle", "--status", "--raw")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !strings.HasPrefix(out, `{"status":"work"`) {
		t.Fatalf("expected work after toggle, got %q", out)
	}

	out, err = execute(t, "reset", "--status")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !strings.Contains(out, `"alt":"idle"`) {
		t.Fatalf("expected idle after reset, got %q", out)
	}
}

func TestStatusJSONReportsFailureAsView(t *testing.T) {
	dir := isolate(t)
	out, err := execute(t, "status", "--json", "--socket", filepath.Join(dir, "none.sock"), "--timeout", "100ms")
	if err != nil {
		t.Fatalf("expected nil error with --json, got %v", err)
	}
	if !strings.Contains(out, `"class":"error"`) {
		t.Fatalf("unexpected output %q", out)
	}
}
