package schedule

import (
	"testing"
	"time"
)

func torontoConfig() CadenceConfig {
	return CadenceConfig{
		IntervalDays:   2,
		PublishHour:    10,
		Timezone:       "America/Toronto",
		DraftLeadHours: 24,
	}
}

func mustLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("Failed to load location %s: %v", name, err)
	}
	return loc
}

func TestComputeNextSlot_BeforePublishHour(t *testing.T) {
	loc := mustLocation(t, "America/Toronto")

	// Tuesday 2025-03-04 is an even number of days from the 2024-01-01
	// anchor, so it is a valid slot for a 2-day cadence.
	now := time.Date(2025, 3, 4, 9, 0, 0, 0, loc)

	slot, err := ComputeNextSlot(now, torontoConfig())
	if err != nil {
		t.Fatalf("ComputeNextSlot returned error: %v", err)
	}

	wantScheduled := time.Date(2025, 3, 4, 10, 0, 0, 0, loc)
	if slot.ScheduledAt != wantScheduled.UnixMilli() {
		t.Errorf("Expected scheduledAt %v, got %v", wantScheduled, time.UnixMilli(slot.ScheduledAt).In(loc))
	}

	wantCreate := time.Date(2025, 3, 3, 10, 0, 0, 0, loc)
	if slot.CreateAt != wantCreate.UnixMilli() {
		t.Errorf("Expected createAt %v, got %v", wantCreate, time.UnixMilli(slot.CreateAt).In(loc))
	}
}

func TestComputeNextSlot_AfterPublishHourAdvancesAndAligns(t *testing.T) {
	loc := mustLocation(t, "America/Toronto")

	// Past today's publish hour: the base candidate becomes Wednesday,
	// which is off-cadence, so the slot lands on Thursday.
	now := time.Date(2025, 3, 4, 11, 0, 0, 0, loc)

	slot, err := ComputeNextSlot(now, torontoConfig())
	if err != nil {
		t.Fatalf("ComputeNextSlot returned error: %v", err)
	}

	wantScheduled := time.Date(2025, 3, 6, 10, 0, 0, 0, loc)
	if slot.ScheduledAt != wantScheduled.UnixMilli() {
		t.Errorf("Expected scheduledAt %v, got %v", wantScheduled, time.UnixMilli(slot.ScheduledAt).In(loc))
	}
}

func TestComputeNextSlot_ExactPublishInstantIsNotStrictlyFuture(t *testing.T) {
	loc := mustLocation(t, "America/Toronto")

	now := time.Date(2025, 3, 4, 10, 0, 0, 0, loc)

	slot, err := ComputeNextSlot(now, torontoConfig())
	if err != nil {
		t.Fatalf("ComputeNextSlot returned error: %v", err)
	}

	if slot.ScheduledAt <= now.UnixMilli() {
		t.Errorf("Expected a slot strictly in the future, got %v", time.UnixMilli(slot.ScheduledAt).In(loc))
	}
	wantScheduled := time.Date(2025, 3, 6, 10, 0, 0, 0, loc)
	if slot.ScheduledAt != wantScheduled.UnixMilli() {
		t.Errorf("Expected scheduledAt %v, got %v", wantScheduled, time.UnixMilli(slot.ScheduledAt).In(loc))
	}
}

func TestComputeNextSlot_ConsecutiveSlotsAreIntervalDaysApart(t *testing.T) {
	loc := mustLocation(t, "America/Toronto")
	cfg := torontoConfig()

	now := time.Date(2025, 3, 4, 9, 0, 0, 0, loc)
	for i := 0; i < 10; i++ {
		first, err := ComputeNextSlot(now, cfg)
		if err != nil {
			t.Fatalf("ComputeNextSlot returned error: %v", err)
		}

		second, err := ComputeNextSlot(time.UnixMilli(first.ScheduledAt+1), cfg)
		if err != nil {
			t.Fatalf("ComputeNextSlot returned error: %v", err)
		}

		firstLocal := time.UnixMilli(first.ScheduledAt).In(loc)
		wantSecond := time.Date(firstLocal.Year(), firstLocal.Month(), firstLocal.Day()+cfg.IntervalDays, cfg.PublishHour, 0, 0, 0, loc)
		if second.ScheduledAt != wantSecond.UnixMilli() {
			t.Errorf("Expected next slot %v, got %v", wantSecond, time.UnixMilli(second.ScheduledAt).In(loc))
		}

		now = time.UnixMilli(second.ScheduledAt + 1)
	}
}

func TestComputeNextSlot_Idempotent(t *testing.T) {
	loc := mustLocation(t, "America/Toronto")
	cfg := torontoConfig()
	now := time.Date(2025, 7, 18, 14, 30, 0, 0, loc)

	first, err := ComputeNextSlot(now, cfg)
	if err != nil {
		t.Fatalf("ComputeNextSlot returned error: %v", err)
	}
	second, err := ComputeNextSlot(now, cfg)
	if err != nil {
		t.Fatalf("ComputeNextSlot returned error: %v", err)
	}

	if first != second {
		t.Errorf("Expected identical slots for identical inputs, got %+v and %+v", first, second)
	}
}

func TestComputeNextSlot_DraftLeadCrossesDSTTransition(t *testing.T) {
	loc := mustLocation(t, "America/Toronto")

	// DST starts 2025-03-09 in Toronto. A slot on the 10th with a 24h
	// lead must put draft creation at the same wall-clock hour on the
	// 9th, even though only 23 real hours separate the two instants.
	cfg := torontoConfig()
	now := time.Date(2025, 3, 9, 23, 0, 0, 0, loc)

	slot, err := ComputeNextSlot(now, cfg)
	if err != nil {
		t.Fatalf("ComputeNextSlot returned error: %v", err)
	}

	scheduledLocal := time.UnixMilli(slot.ScheduledAt).In(loc)
	createLocal := time.UnixMilli(slot.CreateAt).In(loc)

	if createLocal.Hour() != scheduledLocal.Hour() {
		t.Errorf("Expected draft creation at the same local hour as publication, got %v and %v", createLocal, scheduledLocal)
	}
	if !createLocal.AddDate(0, 0, 1).Equal(scheduledLocal) {
		t.Errorf("Expected createAt one calendar day before scheduledAt, got %v and %v", createLocal, scheduledLocal)
	}
}

func TestComputeNextSlot_InvalidConfig(t *testing.T) {
	loc := mustLocation(t, "America/Toronto")
	now := time.Date(2025, 3, 4, 9, 0, 0, 0, loc)

	cases := []struct {
		name string
		cfg  CadenceConfig
	}{
		{"unknown timezone", CadenceConfig{IntervalDays: 2, PublishHour: 10, Timezone: "Mars/Olympus_Mons", DraftLeadHours: 24}},
		{"zero interval", CadenceConfig{IntervalDays: 0, PublishHour: 10, Timezone: "UTC", DraftLeadHours: 24}},
		{"publish hour out of range", CadenceConfig{IntervalDays: 2, PublishHour: 24, Timezone: "UTC", DraftLeadHours: 24}},
		{"zero draft lead", CadenceConfig{IntervalDays: 2, PublishHour: 10, Timezone: "UTC", DraftLeadHours: 0}},
		{"empty timezone", CadenceConfig{IntervalDays: 2, PublishHour: 10, Timezone: "", DraftLeadHours: 24}},
	}

	for _, tc := range cases {
		if _, err := ComputeNextSlot(now, tc.cfg); err == nil {
			t.Errorf("Expected error for %s, got none", tc.name)
		}
	}
}

func TestComputeNextSlot_UTCSingleDayInterval(t *testing.T) {
	cfg := CadenceConfig{IntervalDays: 1, PublishHour: 0, Timezone: "UTC", DraftLeadHours: 6}
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	slot, err := ComputeNextSlot(now, cfg)
	if err != nil {
		t.Fatalf("ComputeNextSlot returned error: %v", err)
	}

	wantScheduled := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	if slot.ScheduledAt != wantScheduled.UnixMilli() {
		t.Errorf("Expected scheduledAt %v, got %v", wantScheduled, time.UnixMilli(slot.ScheduledAt).UTC())
	}
	wantCreate := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	if slot.CreateAt != wantCreate.UnixMilli() {
		t.Errorf("Expected createAt %v, got %v", wantCreate, time.UnixMilli(slot.CreateAt).UTC())
	}
}
