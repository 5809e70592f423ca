package schedule

import (
	"fmt"
	"time"
)

// Countdown is the remaining time until a target instant, floor-decomposed
// into whole days, hours and minutes. All components are zero when the
// target is not in the future.
type Countdown struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	IsPast  bool `json:"isPast"`
}

// FormatInZone renders an epoch-millisecond instant in the given IANA
// timezone using a standard time layout.
func FormatInZone(epochMs int64, timezone, layout string) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.UnixMilli(epochMs).In(loc).Format(layout), nil
}

// TimeUntil decomposes the remaining time until target.
func TimeUntil(target, now time.Time) Countdown {
	if !target.After(now) {
		return Countdown{IsPast: true}
	}

	minutes := int(target.Sub(now).Minutes())
	return Countdown{
		Days:    minutes / (24 * 60),
		Hours:   (minutes % (24 * 60)) / 60,
		Minutes: minutes % 60,
	}
}

// Relative produces a coarse human-relative string ("in 3 days",
// "4 hours ago") bucketed at minute, hour and day granularity. Anything
// under a minute in either direction is "just now".
func Relative(t, now time.Time) string {
	diff := t.Sub(now)
	future := diff > 0
	if !future {
		diff = -diff
	}

	var n int
	var unit string
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		n = int(diff / time.Minute)
		unit = "minute"
	case diff < 24*time.Hour:
		n = int(diff / time.Hour)
		unit = "hour"
	default:
		n = int(diff / (24 * time.Hour))
		unit = "day"
	}

	if n != 1 {
		unit += "s"
	}
	if future {
		return fmt.Sprintf("in %d %s", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
