package timeutil

import (
	"testing"
	"time"
)

func TestParseIntervalDefault(t *testing.T) {
	dur, label, err := ParseInterval("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != time.Second {
		t.Fatalf("expected %v, got %v", time.Second, dur)
	}
	if label != "1s" {
		t.Fatalf("expected label 1s, got %s", label)
	}
}

func TestParseIntervalComposite(t *testing.T) {
	dur, label, err := ParseInterval("1m30s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 90 * time.Second
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "1m30s" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseIntervalMilliseconds(t *testing.T) {
	dur, label, err := ParseInterval("250ms")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != 250*time.Millisecond {
		t.Fatalf("unexpected duration %v", dur)
	}
	if label != "250ms" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseIntervalInvalid(t *testing.T) {
	for _, in := range []string{"noop", "5w", "0s"} {
		if _, _, err := ParseInterval(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{25 * time.Minute, "25:00"},
		{15*time.Minute + 59*time.Second + 900*time.Millisecond, "15:59"},
		{61 * time.Second, "01:01"},
		{0, "00:00"},
		{-3 * time.Second, "00:00"},
		{125 * time.Minute, "125:00"},
	}
	for _, tc := range cases {
		if got := FormatClock(tc.in); got != tc.want {
			t.Fatalf("FormatClock(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatSpan(t *testing.T) {
	if got := FormatSpan(12*time.Minute + 30*time.Second); got != "12m30s" {
		t.Fatalf("unexpected span %q", got)
	}
	if got := FormatSpan(0); got != "0s" {
		t.Fatalf("unexpected zero span %q", got)
	}
}
