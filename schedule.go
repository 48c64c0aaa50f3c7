package main

import (
	"fmt"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// parseClock parses "H:MM" or "HH:MM" into minutes since midnight.
func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, okH := atoiDigits(hh)
	m, okM := atoiDigits(mm)
	if !okH || !okM || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}

// atoiDigits accepts ASCII digits only (no sign, no spaces).
func atoiDigits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// Window is a daily time range [Start, End) in minutes since midnight.
// A window with Start > End wraps past midnight.
type Window struct {
	Start, End int
}

// Contains reports whether minute falls inside w.
// Start == End is treated as the whole day, not as an empty window.
func (w Window) Contains(minute int) bool {
	switch {
	case w.Start == w.End:
		return true
	case w.Start < w.End:
		return minute >= w.Start && minute < w.End
	default:
		return minute >= w.Start || minute < w.End
	}
}

func (w Window) String() string {
	return fmt.Sprintf("%s-%s", formatClock(w.Start), formatClock(w.End))
}

func formatClock(minute int) string {
	minute = ((minute % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// minutesIn returns the wall-clock minute of t in loc.
func minutesIn(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	return t.Hour()*60 + t.Minute()
}
