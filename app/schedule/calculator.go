package schedule

import (
	"fmt"
	"time"
)

// Slots are aligned to a fixed anchor day so the cadence forms a stable,
// non-drifting sequence regardless of when the calculator is invoked or
// how often the config is edited.
const (
	anchorYear  = 2024
	anchorMonth = time.January
	anchorDay   = 1
)

// Slot is one computed publish slot: when the post goes live and when the
// external generator should have the draft ready. Both are epoch millis.
type Slot struct {
	ScheduledAt int64 `json:"scheduledAt"`
	CreateAt    int64 `json:"createAt"`
}

// ComputeNextSlot returns the next cadence-aligned publish slot strictly
// after now, plus the matching draft-creation instant. The computation is
// pure: the same now and config always yield the same slot.
func ComputeNextSlot(now time.Time, cfg CadenceConfig) (Slot, error) {
	if err := cfg.Validate(); err != nil {
		return Slot{}, fmt.Errorf("invalid cadence config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Slot{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	local := now.In(loc)
	base := time.Date(local.Year(), local.Month(), local.Day(), cfg.PublishHour, 0, 0, 0, loc)
	if !base.After(now) {
		base = time.Date(local.Year(), local.Month(), local.Day()+1, cfg.PublishHour, 0, 0, 0, loc)
	}

	anchor := time.Date(anchorYear, anchorMonth, anchorDay, cfg.PublishHour, 0, 0, 0, loc)
	days := civilDaysBetween(anchor, base)
	rem := ((days % cfg.IntervalDays) + cfg.IntervalDays) % cfg.IntervalDays
	if rem != 0 {
		base = time.Date(base.Year(), base.Month(), base.Day()+cfg.IntervalDays-rem, cfg.PublishHour, 0, 0, 0, loc)
	}

	// The lead offset is applied in local wall-clock time so a DST shift
	// between creation and publication keeps both at their intended hour.
	create := time.Date(base.Year(), base.Month(), base.Day(), base.Hour()-cfg.DraftLeadHours, 0, 0, 0, loc)

	return Slot{
		ScheduledAt: base.UnixMilli(),
		CreateAt:    create.UnixMilli(),
	}, nil
}

// civilDaysBetween counts whole calendar days between two local instants.
// Dates are re-anchored to UTC midnights first so DST transitions cannot
// make a day count fractional.
func civilDaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}
