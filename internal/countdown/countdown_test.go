package countdown

import (
	"testing"
	"time"
)

func TestTargetSameYear(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	got := Target(now, time.UTC, time.December, 25)
	want := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestTargetAtInstantIsZero(t *testing.T) {
	now := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	if got := Format(Remaining(now, time.UTC)); got != "0d 0h 0m 0s" {
		t.Fatalf("expected zero countdown, got %q", got)
	}
}

func TestTargetRollsOverAfterHoliday(t *testing.T) {
	now := time.Date(2024, 12, 25, 0, 0, 1, 0, time.UTC)
	got := Target(now, time.UTC, time.December, 25)
	want := time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	rem := Remaining(now, time.UTC)
	if rem.Days != 364 || rem.Hours != 23 || rem.Minutes != 59 || rem.Seconds != 59 {
		t.Fatalf("unexpected remaining %v", rem)
	}
}

func TestRemainingFloors(t *testing.T) {
	now := time.Date(2024, 12, 24, 23, 59, 58, 900_000_000, time.UTC)
	if got := Format(Remaining(now, time.UTC)); got != "0d 0h 0m 1s" {
		t.Fatalf("expected floored seconds, got %q", got)
	}
	now = time.Date(2024, 12, 23, 22, 58, 57, 0, time.UTC)
	if got := Format(Remaining(now, time.UTC)); got != "1d 1h 1m 3s" {
		t.Fatalf("unexpected breakdown %q", got)
	}
}

func TestTargetUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	now := time.Date(2024, 12, 24, 14, 0, 0, 0, time.UTC)
	rem := Remaining(now, loc)
	if rem != (Duration{}) {
		t.Fatalf("expected midnight in UTC+10 to have arrived, got %v", rem)
	}
	if Remaining(now, time.UTC).Hours != 10 {
		t.Fatalf("expected 10h left in UTC, got %v", Remaining(now, time.UTC))
	}
}

func TestSplitNegativeIsZero(t *testing.T) {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	if got := Split(now, now.Add(-time.Hour)); got != (Duration{}) {
		t.Fatalf("expected zero, got %v", got)
	}
}

func TestFormatPattern(t *testing.T) {
	d := Duration{Days: 12, Hours: 3, Minutes: 0, Seconds: 9}
	if d.String() != "12d 3h 0m 9s" {
		t.Fatalf("unexpected format %q", d.String())
	}
}
