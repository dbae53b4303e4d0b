package provider

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts "HH:MM" or "HH:MM:SS" into minutes since midnight.
// Seconds are truncated; bookings are minute-granular.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in clock value %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in clock value %q", s)
	}
	if len(parts) == 3 {
		if sec, err := strconv.Atoi(parts[2]); err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("invalid second in clock value %q", s)
		}
	}

	return hour*60 + minute, nil
}

// windowSpan returns the window bounds in minutes since midnight.
func windowSpan(w AvailabilityWindow) (int, int, error) {
	start, err := ParseClock(w.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseClock(w.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// WindowsContain reports whether any window contains the given instant.
// Bounds are inclusive: a window 09:00-17:00 contains both 09:00 and 17:00.
func WindowsContain(windows []AvailabilityWindow, minuteOfDay int) bool {
	for _, w := range windows {
		start, end, err := windowSpan(w)
		if err != nil {
			continue // malformed rows never grant availability
		}
		if start <= minuteOfDay && minuteOfDay <= end {
			return true
		}
	}
	return false
}

// WindowsCover reports whether a single window contains the whole slot
// [startMin, endMin]. A slot spanning two adjacent windows is not covered.
func WindowsCover(windows []AvailabilityWindow, startMin, endMin int) bool {
	for _, w := range windows {
		start, end, err := windowSpan(w)
		if err != nil {
			continue
		}
		if start <= startMin && endMin <= end {
			return true
		}
	}
	return false
}
