package dashboard

import "testing"

func TestIsStaleNilTimestampNeverStale(t *testing.T) {
	if IsStale(nil, 1800, 10_000) {
		t.Fatalf("nil timestamp must never be stale")
	}
}

func TestIsStaleBeyondThreshold(t *testing.T) {
	ts := int64(1000)
	if !IsStale(&ts, 1800, 1000+1801) {
		t.Fatalf("expected stale once elapsed exceeds threshold")
	}
}

func TestIsStaleWithinThreshold(t *testing.T) {
	ts := int64(1000)
	if IsStale(&ts, 1800, 1000+1799) {
		t.Fatalf("expected not stale before threshold elapses")
	}
}

func TestElapsedSecondsClampsNegative(t *testing.T) {
	ts := int64(5000)
	secs, ok := ElapsedSeconds(&ts, 1000)
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if secs != 0 {
		t.Fatalf("expected clamped elapsed of 0, got %d", secs)
	}
}

func TestFormatDuration(t *testing.T) {
	got := FormatDuration(3725)
	if got != "01:02:05" {
		t.Fatalf("got %q, want %q", got, "01:02:05")
	}
}
