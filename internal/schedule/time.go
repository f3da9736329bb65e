package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time with no date or timezone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// AddMinutes returns t advanced by m minutes, normalized so that minute
// overflow rolls into hours and times past 24:00 wrap back to 0:00.
// No day count is tracked; a plan crossing midnight is a documented
// limitation, not an error.
func (t TimeOfDay) AddMinutes(m int) TimeOfDay {
	total := t.Hour*60 + t.Minute + m
	total %= 24 * 60
	if total < 0 {
		total += 24 * 60
	}
	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// Minutes returns the time as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// String formats the time as zero-padded 24-hour "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses "H:MM" or "HH:MM". Both parts must be integers
// and within range (hour 0–23, minute 0–59); out-of-range values are
// rejected rather than normalized.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("time %q out of range", s)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}
