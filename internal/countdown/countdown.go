// Package countdown computes and presents the time left until the next
// holiday target.
package countdown

import (
	"fmt"
	"time"
)

// Default target date.
const (
	DefaultMonth = time.December
	DefaultDay   = 25
)

// Duration is a non-negative span broken into whole units.
type Duration struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// ValidDate reports whether month/day names a day present in every year.
// February 29 is rejected.
func ValidDate(month time.Month, day int) bool {
	if month < time.January || month > time.December || day < 1 {
		return false
	}
	t := time.Date(2001, month, day, 0, 0, 0, 0, time.UTC)
	return t.Month() == month && t.Day() == day
}

// Target returns midnight on month/day of now's year in loc, or of the
// following year once now is strictly after that instant.
func Target(now time.Time, loc *time.Location, month time.Month, day int) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	t := time.Date(local.Year(), month, day, 0, 0, 0, 0, loc)
	if local.After(t) {
		t = time.Date(local.Year()+1, month, day, 0, 0, 0, 0, loc)
	}
	return t
}

// Split floors the span between now and target into days, hours, minutes and
// seconds. Negative spans yield zero.
func Split(now, target time.Time) Duration {
	diff := target.Sub(now)
	if diff <= 0 {
		return Duration{}
	}
	total := int64(diff / time.Second)
	return Duration{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// Remaining returns the floored time left until the default target.
func Remaining(now time.Time, loc *time.Location) Duration {
	return Split(now, Target(now, loc, DefaultMonth, DefaultDay))
}

// Format renders d as "{d}d {h}h {m}m {s}s".
func Format(d Duration) string {
	return fmt.Sprintf("%dd %dh %dm %ds", d.Days, d.Hours, d.Minutes, d.Seconds)
}

func (d Duration) String() string { return Format(d) }
